package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID        string
	UserID    *string
	Code      string
	FirstName string
	LastName  string
	Position  string
	ServiceID *string
	HiredAt   time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContractType string

const (
	ContractPermanent ContractType = "PERMANENT"
	ContractFixedTerm ContractType = "FIXED_TERM"
	ContractIntern    ContractType = "INTERN"
)

type Contract struct {
	ID         string
	EmployeeID string
	Type       ContractType
	Salary     decimal.Decimal
	StartDate  time.Time
	EndDate    *time.Time
	CreatedAt  time.Time
}

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusRejected LeaveStatus = "REJECTED"
)

type LeaveRequest struct {
	ID              string
	EmployeeID      string
	StartDate       time.Time
	EndDate         time.Time
	Reason          string
	Status          LeaveStatus
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string
	CreatedAt       time.Time
}

type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "PENDING"
	LoanStatusApproved LoanStatus = "APPROVED"
	LoanStatusRejected LoanStatus = "REJECTED"
	LoanStatusRepaid   LoanStatus = "REPAID"
)

type Loan struct {
	ID           string
	EmployeeID   string
	Amount       decimal.Decimal
	Installments int
	Status       LoanStatus
	DecidedBy    *string
	DecidedAt    *time.Time
	CreatedAt    time.Time
}

// MonthlyInstallment is the amount withheld per pay period, rounded to cents.
func (l *Loan) MonthlyInstallment() decimal.Decimal {
	if l.Installments <= 0 {
		return decimal.Zero
	}
	return l.Amount.DivRound(decimal.NewFromInt(int64(l.Installments)), 2)
}
