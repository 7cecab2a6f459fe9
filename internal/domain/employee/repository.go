package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context, req ListEmployeesRequest) ([]Employee, int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	SetActive(ctx context.Context, id string, active bool) error
	ExistsByCode(ctx context.Context, code string) (bool, error)

	CreateContract(ctx context.Context, c Contract) (Contract, error)
	ListContracts(ctx context.Context, employeeID string) ([]Contract, error)
}

type LeaveRepository interface {
	Create(ctx context.Context, l LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListPending(ctx context.Context, page, limit int) ([]LeaveRequest, int64, error)
	UpdateDecision(ctx context.Context, l LeaveRequest) error
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
}

type LoanRepository interface {
	Create(ctx context.Context, l Loan) (Loan, error)
	GetByID(ctx context.Context, id string) (Loan, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Loan, error)
	ListPending(ctx context.Context, page, limit int) ([]Loan, int64, error)
	UpdateDecision(ctx context.Context, l Loan) error
}

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, req ListEmployeesRequest) ([]Employee, int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	Deactivate(ctx context.Context, id string) error
	AddContract(ctx context.Context, req CreateContractRequest) (Contract, error)
	Contracts(ctx context.Context, employeeID string) ([]Contract, error)

	RequestLeave(ctx context.Context, req CreateLeaveRequest) (LeaveRequest, error)
	ApproveLeave(ctx context.Context, leaveID, deciderID string) (LeaveRequest, error)
	RejectLeave(ctx context.Context, leaveID, deciderID, reason string) (LeaveRequest, error)
	PendingLeaves(ctx context.Context, page, limit int) ([]LeaveRequest, int64, error)

	RequestLoan(ctx context.Context, req CreateLoanRequest) (Loan, error)
	ApproveLoan(ctx context.Context, loanID, deciderID string) (Loan, error)
	RejectLoan(ctx context.Context, loanID, deciderID string) (Loan, error)
	PendingLoans(ctx context.Context, page, limit int) ([]Loan, int64, error)
}
