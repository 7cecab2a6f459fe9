package material

import "errors"

var (
	ErrMaterialNotFound  = errors.New("material not found")
	ErrReferenceExists   = errors.New("material reference already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidAdjustment = errors.New("adjustment quantity must not be zero")
)
