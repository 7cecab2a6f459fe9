package employee

import (
	"github.com/gestionpro/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	UserID    *string `json:"user_id,omitempty"`
	Code      string  `json:"code"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Position  string  `json:"position"`
	ServiceID *string `json:"service_id,omitempty"`
	HiredAt   string  `json:"hired_at"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position is required"})
	}
	if _, ok := validator.IsValidDate(r.HiredAt); !ok {
		errs = append(errs, validator.ValidationError{Field: "hired_at", Message: "hired_at must be a date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID        string  `json:"-"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Position  *string `json:"position,omitempty"`
	ServiceID *string `json:"service_id,omitempty"`
}

type CreateContractRequest struct {
	EmployeeID string  `json:"-"`
	Type       string  `json:"type"`
	Salary     string  `json:"salary"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date,omitempty"`
}

func (r *CreateContractRequest) Validate() error {
	var errs validator.ValidationErrors

	switch ContractType(r.Type) {
	case ContractPermanent, ContractFixedTerm, ContractIntern:
	default:
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of PERMANENT, FIXED_TERM, INTERN"})
	}
	if salary, err := decimal.NewFromString(r.Salary); err != nil || !salary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must be a positive number"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be a date in YYYY-MM-DD format"})
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be a date in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be a date in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be a date in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectLeaveRequest struct {
	Reason string `json:"reason"`
}

type CreateLoanRequest struct {
	EmployeeID   string `json:"employee_id"`
	Amount       string `json:"amount"`
	Installments int    `json:"installments"`
}

func (r *CreateLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if amount, err := decimal.NewFromString(r.Amount); err != nil || !amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be a positive number"})
	}
	if r.Installments < 1 || r.Installments > 36 {
		errs = append(errs, validator.ValidationError{Field: "installments", Message: "installments must be between 1 and 36"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEmployeesRequest struct {
	Page      int
	Limit     int
	Search    string
	ServiceID *string
}

type EmployeeResponse struct {
	ID        string  `json:"id"`
	UserID    *string `json:"user_id,omitempty"`
	Code      string  `json:"code"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Position  string  `json:"position"`
	ServiceID *string `json:"service_id,omitempty"`
	HiredAt   string  `json:"hired_at"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Code:      e.Code,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Position:  e.Position,
		ServiceID: e.ServiceID,
		HiredAt:   e.HiredAt.Format("2006-01-02"),
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type ContractResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"`
	Salary     string  `json:"salary"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date,omitempty"`
}

func ToContractResponse(c Contract) ContractResponse {
	var endDate *string
	if c.EndDate != nil {
		s := c.EndDate.Format("2006-01-02")
		endDate = &s
	}
	return ContractResponse{
		ID:         c.ID,
		EmployeeID: c.EmployeeID,
		Type:       string(c.Type),
		Salary:     c.Salary.String(),
		StartDate:  c.StartDate.Format("2006-01-02"),
		EndDate:    endDate,
	}
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func ToLeaveResponse(l LeaveRequest) LeaveResponse {
	var decidedAt *string
	if l.DecidedAt != nil {
		s := l.DecidedAt.Format("2006-01-02T15:04:05Z07:00")
		decidedAt = &s
	}
	return LeaveResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		StartDate:       l.StartDate.Format("2006-01-02"),
		EndDate:         l.EndDate.Format("2006-01-02"),
		Reason:          l.Reason,
		Status:          string(l.Status),
		DecidedBy:       l.DecidedBy,
		DecidedAt:       decidedAt,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type LoanResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	Amount             string  `json:"amount"`
	Installments       int     `json:"installments"`
	MonthlyInstallment string  `json:"monthly_installment"`
	Status             string  `json:"status"`
	DecidedBy          *string `json:"decided_by,omitempty"`
	DecidedAt          *string `json:"decided_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

func ToLoanResponse(l Loan) LoanResponse {
	var decidedAt *string
	if l.DecidedAt != nil {
		s := l.DecidedAt.Format("2006-01-02T15:04:05Z07:00")
		decidedAt = &s
	}
	return LoanResponse{
		ID:                 l.ID,
		EmployeeID:         l.EmployeeID,
		Amount:             l.Amount.String(),
		Installments:       l.Installments,
		MonthlyInstallment: l.MonthlyInstallment().String(),
		Status:             string(l.Status),
		DecidedBy:          l.DecidedBy,
		DecidedAt:          decidedAt,
		CreatedAt:          l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
