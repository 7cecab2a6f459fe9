package quote

import "errors"

var (
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrQuoteNotEditable    = errors.New("quote can only be edited while in draft")
	ErrInvalidTransition   = errors.New("transition not allowed from current status")
	ErrTransitionForbidden = errors.New("missing permission for this transition")
	ErrQuoteAlreadyMoved   = errors.New("quote status changed concurrently")
	ErrValidUntilPast      = errors.New("valid_until must be in the future")
	ErrNoItems             = errors.New("quote requires at least one line item")
)
