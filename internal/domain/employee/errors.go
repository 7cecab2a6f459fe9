package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeCodeExists    = errors.New("employee code already exists")
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request already processed")
	ErrOverlappingLeave      = errors.New("overlapping leave request exists")
	ErrLoanNotFound          = errors.New("loan not found")
	ErrLoanAlreadyProcessed  = errors.New("loan already processed")
	ErrContractNotFound      = errors.New("contract not found")
)
