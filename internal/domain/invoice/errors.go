package invoice

import "errors"

var (
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrQuoteNotAccepted      = errors.New("invoice can only be issued from a client-accepted quote")
	ErrQuoteAlreadyInvoiced  = errors.New("quote already has an invoice")
	ErrInvoiceCancelled      = errors.New("invoice is cancelled")
	ErrInvoiceAlreadyPaid    = errors.New("invoice is already fully paid")
	ErrInvoiceNotCancellable = errors.New("invoice can no longer be cancelled")
	ErrPaymentExceedsDue     = errors.New("payment exceeds remaining balance")
)
