package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	leaveRepo    employee.LeaveRepository
	loanRepo     employee.LoanRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	leaveRepo employee.LeaveRepository,
	loanRepo employee.LoanRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		leaveRepo:    leaveRepo,
		loanRepo:     loanRepo,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	exists, err := s.employeeRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to check employee code: %w", err)
	}
	if exists {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}

	hiredAt, err := time.Parse("2006-01-02", req.HiredAt)
	if err != nil {
		return employee.Employee{}, err
	}

	return s.employeeRepo.Create(ctx, employee.Employee{
		UserID:    req.UserID,
		Code:      req.Code,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
		ServiceID: req.ServiceID,
		HiredAt:   hiredAt,
	})
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, req employee.ListEmployeesRequest) ([]employee.Employee, int64, error) {
	return s.employeeRepo.List(ctx, req)
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return s.employeeRepo.Update(ctx, req)
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.employeeRepo.SetActive(ctx, id, false)
}

// AddContract implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AddContract(ctx context.Context, req employee.CreateContractRequest) (employee.Contract, error) {
	if err := req.Validate(); err != nil {
		return employee.Contract{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.Contract{}, err
	}

	salary, err := decimal.NewFromString(req.Salary)
	if err != nil {
		return employee.Contract{}, err
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return employee.Contract{}, err
	}
	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return employee.Contract{}, err
		}
		endDate = &parsed
	}

	return s.employeeRepo.CreateContract(ctx, employee.Contract{
		EmployeeID: req.EmployeeID,
		Type:       employee.ContractType(req.Type),
		Salary:     salary,
		StartDate:  startDate,
		EndDate:    endDate,
	})
}

// Contracts implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Contracts(ctx context.Context, employeeID string) ([]employee.Contract, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.employeeRepo.ListContracts(ctx, employeeID)
}

// RequestLeave implements employee.EmployeeService. Overlapping pending or
// approved requests are refused.
func (s *EmployeeServiceImpl) RequestLeave(ctx context.Context, req employee.CreateLeaveRequest) (employee.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return employee.LeaveRequest{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.LeaveRequest{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	overlap, err := s.leaveRepo.HasOverlap(ctx, req.EmployeeID, start, end)
	if err != nil {
		return employee.LeaveRequest{}, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	if overlap {
		return employee.LeaveRequest{}, employee.ErrOverlappingLeave
	}

	return s.leaveRepo.Create(ctx, employee.LeaveRequest{
		EmployeeID: req.EmployeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     employee.LeaveStatusPending,
	})
}

func (s *EmployeeServiceImpl) decideLeave(ctx context.Context, leaveID, deciderID string, status employee.LeaveStatus, rejectionReason *string) (employee.LeaveRequest, error) {
	l, err := s.leaveRepo.GetByID(ctx, leaveID)
	if err != nil {
		return employee.LeaveRequest{}, err
	}
	if l.Status != employee.LeaveStatusPending {
		return employee.LeaveRequest{}, employee.ErrLeaveAlreadyProcessed
	}

	now := time.Now()
	l.Status = status
	l.DecidedBy = &deciderID
	l.DecidedAt = &now
	l.RejectionReason = rejectionReason

	if err := s.leaveRepo.UpdateDecision(ctx, l); err != nil {
		return employee.LeaveRequest{}, err
	}
	return l, nil
}

// ApproveLeave implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ApproveLeave(ctx context.Context, leaveID, deciderID string) (employee.LeaveRequest, error) {
	return s.decideLeave(ctx, leaveID, deciderID, employee.LeaveStatusApproved, nil)
}

// RejectLeave implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RejectLeave(ctx context.Context, leaveID, deciderID, reason string) (employee.LeaveRequest, error) {
	var rejectionReason *string
	if reason != "" {
		rejectionReason = &reason
	}
	return s.decideLeave(ctx, leaveID, deciderID, employee.LeaveStatusRejected, rejectionReason)
}

// PendingLeaves implements employee.EmployeeService.
func (s *EmployeeServiceImpl) PendingLeaves(ctx context.Context, page, limit int) ([]employee.LeaveRequest, int64, error) {
	return s.leaveRepo.ListPending(ctx, page, limit)
}

// RequestLoan implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RequestLoan(ctx context.Context, req employee.CreateLoanRequest) (employee.Loan, error) {
	if err := req.Validate(); err != nil {
		return employee.Loan{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.Loan{}, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return employee.Loan{}, err
	}

	return s.loanRepo.Create(ctx, employee.Loan{
		EmployeeID:   req.EmployeeID,
		Amount:       amount,
		Installments: req.Installments,
		Status:       employee.LoanStatusPending,
	})
}

func (s *EmployeeServiceImpl) decideLoan(ctx context.Context, loanID, deciderID string, status employee.LoanStatus) (employee.Loan, error) {
	l, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return employee.Loan{}, err
	}
	if l.Status != employee.LoanStatusPending {
		return employee.Loan{}, employee.ErrLoanAlreadyProcessed
	}

	now := time.Now()
	l.Status = status
	l.DecidedBy = &deciderID
	l.DecidedAt = &now

	if err := s.loanRepo.UpdateDecision(ctx, l); err != nil {
		return employee.Loan{}, err
	}
	return l, nil
}

// ApproveLoan implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ApproveLoan(ctx context.Context, loanID, deciderID string) (employee.Loan, error) {
	return s.decideLoan(ctx, loanID, deciderID, employee.LoanStatusApproved)
}

// RejectLoan implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RejectLoan(ctx context.Context, loanID, deciderID string) (employee.Loan, error) {
	return s.decideLoan(ctx, loanID, deciderID, employee.LoanStatusRejected)
}

// PendingLoans implements employee.EmployeeService.
func (s *EmployeeServiceImpl) PendingLoans(ctx context.Context, page, limit int) ([]employee.Loan, int64, error) {
	return s.loanRepo.ListPending(ctx, page, limit)
}
