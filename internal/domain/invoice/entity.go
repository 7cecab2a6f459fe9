package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusIssued        Status = "ISSUED"
	StatusPartiallyPaid Status = "PARTIALLY_PAID"
	StatusPaid          Status = "PAID"
	StatusOverdue       Status = "OVERDUE"
	StatusCancelled     Status = "CANCELLED"
)

type Invoice struct {
	ID          string
	Number      string
	QuoteID     *string
	CustomerID  string
	Status      Status
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	DueDate     time.Time
	IssuedAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Payment struct {
	ID         string
	InvoiceID  string
	Amount     decimal.Decimal
	Method     string
	Reference  *string
	RecordedBy string
	PaidAt     time.Time
	CreatedAt  time.Time
}

// Balance is the amount still owed.
func (i *Invoice) Balance() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// StatusAfterPayment derives the status after paid has been applied.
func (i *Invoice) StatusAfterPayment(now time.Time) Status {
	switch {
	case i.PaidAmount.GreaterThanOrEqual(i.TotalAmount):
		return StatusPaid
	case i.PaidAmount.IsPositive():
		return StatusPartiallyPaid
	case now.After(i.DueDate):
		return StatusOverdue
	default:
		return StatusIssued
	}
}
