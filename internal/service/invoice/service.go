package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/invoice"
	"github.com/gestionpro/erp-backend-go/internal/domain/quote"
	"github.com/shopspring/decimal"
)

type InvoiceServiceImpl struct {
	invoiceRepo invoice.InvoiceRepository
	quoteRepo   quote.QuoteRepository

	now func() time.Time
}

func NewInvoiceService(invoiceRepo invoice.InvoiceRepository, quoteRepo quote.QuoteRepository) invoice.InvoiceService {
	return &InvoiceServiceImpl{
		invoiceRepo: invoiceRepo,
		quoteRepo:   quoteRepo,
		now:         time.Now,
	}
}

// IssueFromQuote implements invoice.InvoiceService. Only a client-accepted
// quote can be invoiced, and only once; the amount is frozen from the quote.
func (s *InvoiceServiceImpl) IssueFromQuote(ctx context.Context, req invoice.CreateInvoiceRequest) (invoice.Invoice, error) {
	if err := req.Validate(); err != nil {
		return invoice.Invoice{}, err
	}

	q, err := s.quoteRepo.GetByID(ctx, req.QuoteID)
	if err != nil {
		return invoice.Invoice{}, err
	}
	if q.Status != quote.StatusAcceptedByClient {
		return invoice.Invoice{}, invoice.ErrQuoteNotAccepted
	}

	if _, err := s.invoiceRepo.GetByQuoteID(ctx, req.QuoteID); err == nil {
		return invoice.Invoice{}, invoice.ErrQuoteAlreadyInvoiced
	} else if !errors.Is(err, invoice.ErrInvoiceNotFound) {
		return invoice.Invoice{}, fmt.Errorf("failed to check existing invoice: %w", err)
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return invoice.Invoice{}, err
	}

	number, err := s.invoiceRepo.NextNumber(ctx, s.now().Year())
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	return s.invoiceRepo.Create(ctx, invoice.Invoice{
		Number:      number,
		QuoteID:     &q.ID,
		CustomerID:  q.CustomerID,
		Status:      invoice.StatusIssued,
		TotalAmount: q.TotalAmount,
		PaidAmount:  decimal.Zero,
		DueDate:     dueDate,
	})
}

// GetByID implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) GetByID(ctx context.Context, id string) (invoice.Invoice, []invoice.Payment, error) {
	i, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return invoice.Invoice{}, nil, err
	}
	payments, err := s.invoiceRepo.ListPayments(ctx, id)
	if err != nil {
		return invoice.Invoice{}, nil, err
	}
	return i, payments, nil
}

// List implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) List(ctx context.Context, req invoice.ListInvoicesRequest) ([]invoice.Invoice, int64, error) {
	return s.invoiceRepo.List(ctx, req)
}

// RecordPayment implements invoice.InvoiceService. Overpayment is refused
// rather than credited.
func (s *InvoiceServiceImpl) RecordPayment(ctx context.Context, recordedBy string, req invoice.RecordPaymentRequest) (invoice.Invoice, error) {
	if err := req.Validate(); err != nil {
		return invoice.Invoice{}, err
	}

	i, err := s.invoiceRepo.GetByID(ctx, req.InvoiceID)
	if err != nil {
		return invoice.Invoice{}, err
	}
	switch i.Status {
	case invoice.StatusCancelled:
		return invoice.Invoice{}, invoice.ErrInvoiceCancelled
	case invoice.StatusPaid:
		return invoice.Invoice{}, invoice.ErrInvoiceAlreadyPaid
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return invoice.Invoice{}, err
	}
	if amount.GreaterThan(i.Balance()) {
		return invoice.Invoice{}, invoice.ErrPaymentExceedsDue
	}

	paidAt, err := time.Parse("2006-01-02", req.PaidAt)
	if err != nil {
		return invoice.Invoice{}, err
	}

	if _, err := s.invoiceRepo.CreatePayment(ctx, invoice.Payment{
		InvoiceID:  i.ID,
		Amount:     amount,
		Method:     req.Method,
		Reference:  req.Reference,
		RecordedBy: recordedBy,
		PaidAt:     paidAt,
	}); err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to record payment: %w", err)
	}

	i.PaidAmount = i.PaidAmount.Add(amount)
	i.Status = i.StatusAfterPayment(s.now())
	if err := s.invoiceRepo.UpdatePaidAmountAndStatus(ctx, i); err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to update invoice: %w", err)
	}

	return i, nil
}

// Cancel implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Cancel(ctx context.Context, id string) error {
	return s.invoiceRepo.Cancel(ctx, id)
}
