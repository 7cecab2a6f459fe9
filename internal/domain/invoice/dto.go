package invoice

import (
	"github.com/gestionpro/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest issues an invoice from an accepted quote.
type CreateInvoiceRequest struct {
	QuoteID string `json:"quote_id"`
	DueDate string `json:"due_date"`
}

func (r *CreateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.QuoteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "quote_id",
			Message: "quote_id is required",
		})
	} else if !validator.IsValidUUID(r.QuoteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "quote_id",
			Message: "quote_id must be a valid UUID",
		})
	}

	if _, ok := validator.IsValidDate(r.DueDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "due_date",
			Message: "due_date must be a date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordPaymentRequest struct {
	InvoiceID string  `json:"-"`
	Amount    string  `json:"amount"`
	Method    string  `json:"method"`
	Reference *string `json:"reference,omitempty"`
	PaidAt    string  `json:"paid_at"`
}

var paymentMethods = map[string]struct{}{
	"cash": {}, "cheque": {}, "transfer": {}, "card": {},
}

func (r *RecordPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if amount, err := decimal.NewFromString(r.Amount); err != nil || !amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a positive number",
		})
	}

	if _, ok := paymentMethods[r.Method]; !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of cash, cheque, transfer, card",
		})
	}

	if _, ok := validator.IsValidDate(r.PaidAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "paid_at",
			Message: "paid_at must be a date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListInvoicesRequest struct {
	Page       int
	Limit      int
	Search     string
	Status     *string
	CustomerID *string
}

type PaymentResponse struct {
	ID        string  `json:"id"`
	Amount    string  `json:"amount"`
	Method    string  `json:"method"`
	Reference *string `json:"reference,omitempty"`
	PaidAt    string  `json:"paid_at"`
}

type InvoiceResponse struct {
	ID          string            `json:"id"`
	Number      string            `json:"number"`
	QuoteID     *string           `json:"quote_id,omitempty"`
	CustomerID  string            `json:"customer_id"`
	Status      string            `json:"status"`
	TotalAmount string            `json:"total_amount"`
	PaidAmount  string            `json:"paid_amount"`
	Balance     string            `json:"balance"`
	DueDate     string            `json:"due_date"`
	IssuedAt    string            `json:"issued_at"`
	Payments    []PaymentResponse `json:"payments,omitempty"`
}

func ToResponse(i Invoice, payments []Payment) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          i.ID,
		Number:      i.Number,
		QuoteID:     i.QuoteID,
		CustomerID:  i.CustomerID,
		Status:      string(i.Status),
		TotalAmount: i.TotalAmount.String(),
		PaidAmount:  i.PaidAmount.String(),
		Balance:     i.Balance().String(),
		DueDate:     i.DueDate.Format("2006-01-02"),
		IssuedAt:    i.IssuedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:        p.ID,
			Amount:    p.Amount.String(),
			Method:    p.Method,
			Reference: p.Reference,
			PaidAt:    p.PaidAt.Format("2006-01-02"),
		})
	}
	return resp
}
