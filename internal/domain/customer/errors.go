package customer

import "errors"

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrCustomerEmailExists = errors.New("customer email already registered")
	ErrAlreadyConverted    = errors.New("customer is not a prospect")
)
