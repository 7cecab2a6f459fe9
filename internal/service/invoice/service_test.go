package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/invoice"
	"github.com/gestionpro/erp-backend-go/internal/domain/quote"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	invoices map[string]invoice.Invoice
	payments map[string][]invoice.Payment
	seq      int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]invoice.Invoice),
		payments: make(map[string][]invoice.Payment),
	}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, i invoice.Invoice) (invoice.Invoice, error) {
	r.seq++
	i.ID = fmt.Sprintf("inv-%d", r.seq)
	r.invoices[i.ID] = i
	return i, nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (invoice.Invoice, error) {
	i, ok := r.invoices[id]
	if !ok {
		return invoice.Invoice{}, invoice.ErrInvoiceNotFound
	}
	return i, nil
}

func (r *fakeInvoiceRepo) GetByQuoteID(_ context.Context, quoteID string) (invoice.Invoice, error) {
	for _, i := range r.invoices {
		if i.QuoteID != nil && *i.QuoteID == quoteID {
			return i, nil
		}
	}
	return invoice.Invoice{}, invoice.ErrInvoiceNotFound
}

func (r *fakeInvoiceRepo) List(_ context.Context, _ invoice.ListInvoicesRequest) ([]invoice.Invoice, int64, error) {
	return nil, 0, nil
}

func (r *fakeInvoiceRepo) UpdatePaidAmountAndStatus(_ context.Context, i invoice.Invoice) error {
	if _, ok := r.invoices[i.ID]; !ok {
		return invoice.ErrInvoiceNotFound
	}
	r.invoices[i.ID] = i
	return nil
}

func (r *fakeInvoiceRepo) Cancel(_ context.Context, id string) error {
	i, ok := r.invoices[id]
	if !ok {
		return invoice.ErrInvoiceNotFound
	}
	if i.Status == invoice.StatusPaid || i.Status == invoice.StatusCancelled {
		return invoice.ErrInvoiceNotCancellable
	}
	i.Status = invoice.StatusCancelled
	r.invoices[id] = i
	return nil
}

func (r *fakeInvoiceRepo) NextNumber(_ context.Context, year int) (string, error) {
	return fmt.Sprintf("F-%d-%04d", year, len(r.invoices)+1), nil
}

func (r *fakeInvoiceRepo) CreatePayment(_ context.Context, p invoice.Payment) (invoice.Payment, error) {
	p.ID = fmt.Sprintf("pay-%d", len(r.payments[p.InvoiceID])+1)
	r.payments[p.InvoiceID] = append(r.payments[p.InvoiceID], p)
	return p, nil
}

func (r *fakeInvoiceRepo) ListPayments(_ context.Context, invoiceID string) ([]invoice.Payment, error) {
	return r.payments[invoiceID], nil
}

type fakeQuoteRepo struct {
	quotes map[string]quote.Quote
}

func (r *fakeQuoteRepo) Create(_ context.Context, q quote.Quote) (quote.Quote, error) { return q, nil }

func (r *fakeQuoteRepo) GetByID(_ context.Context, id string) (quote.Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return quote.Quote{}, quote.ErrQuoteNotFound
	}
	return q, nil
}

func (r *fakeQuoteRepo) List(_ context.Context, _ quote.ListQuotesRequest) ([]quote.Quote, int64, error) {
	return nil, 0, nil
}

func (r *fakeQuoteRepo) UpdateContent(_ context.Context, q quote.Quote) (quote.Quote, error) {
	return q, nil
}

func (r *fakeQuoteRepo) UpdateStatus(_ context.Context, _ quote.UpdateStatusRequest) error {
	return nil
}

func (r *fakeQuoteRepo) ListStatusChanges(_ context.Context, _ string) ([]quote.StatusChange, error) {
	return nil, nil
}

func (r *fakeQuoteRepo) ExpireDue(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

func (r *fakeQuoteRepo) NextNumber(_ context.Context, _ int) (string, error) { return "", nil }

func newTestService(t *testing.T) (*InvoiceServiceImpl, *fakeInvoiceRepo, *fakeQuoteRepo) {
	t.Helper()
	invoiceRepo := newFakeInvoiceRepo()
	quoteRepo := &fakeQuoteRepo{quotes: map[string]quote.Quote{
		"q-accepted": {
			ID:          "q-accepted",
			Number:      "Q-2026-0001",
			CustomerID:  "cust-1",
			Status:      quote.StatusAcceptedByClient,
			TotalAmount: decimal.RequireFromString("1200.50"),
		},
		"q-draft": {
			ID:         "q-draft",
			CustomerID: "cust-1",
			Status:     quote.StatusDraft,
		},
	}}
	svc := NewInvoiceService(invoiceRepo, quoteRepo).(*InvoiceServiceImpl)
	return svc, invoiceRepo, quoteRepo
}

func TestIssueFromQuoteFreezesAmount(t *testing.T) {
	svc, _, _ := newTestService(t)

	inv, err := svc.IssueFromQuote(context.Background(), invoice.CreateInvoiceRequest{
		QuoteID: "q-accepted",
		DueDate: "2026-10-15",
	})
	require.NoError(t, err)

	assert.Equal(t, invoice.StatusIssued, inv.Status)
	assert.Equal(t, "cust-1", inv.CustomerID)
	assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("1200.50")))
	assert.True(t, inv.PaidAmount.IsZero())
	require.NotNil(t, inv.QuoteID)
	assert.Equal(t, "q-accepted", *inv.QuoteID)
}

func TestIssueFromQuoteRequiresClientAcceptance(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.IssueFromQuote(context.Background(), invoice.CreateInvoiceRequest{
		QuoteID: "q-draft",
		DueDate: "2026-10-15",
	})
	assert.ErrorIs(t, err, invoice.ErrQuoteNotAccepted)
}

func TestIssueFromQuoteRefusesSecondInvoice(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := invoice.CreateInvoiceRequest{QuoteID: "q-accepted", DueDate: "2026-10-15"}
	_, err := svc.IssueFromQuote(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.IssueFromQuote(context.Background(), req)
	assert.ErrorIs(t, err, invoice.ErrQuoteAlreadyInvoiced)
}

func TestRecordPaymentPartialThenFull(t *testing.T) {
	svc, repo, _ := newTestService(t)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) }

	inv, err := svc.IssueFromQuote(context.Background(), invoice.CreateInvoiceRequest{
		QuoteID: "q-accepted",
		DueDate: "2026-10-15",
	})
	require.NoError(t, err)

	updated, err := svc.RecordPayment(context.Background(), "acct-1", invoice.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    "200.50",
		Method:    "transfer",
		PaidAt:    "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPartiallyPaid, updated.Status)
	assert.Equal(t, "1000", updated.Balance().String())

	updated, err = svc.RecordPayment(context.Background(), "acct-1", invoice.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    "1000",
		Method:    "transfer",
		PaidAt:    "2026-09-10",
	})
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, updated.Status)
	assert.True(t, updated.Balance().IsZero())

	payments, err := repo.ListPayments(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, "acct-1", payments[0].RecordedBy)
}

func TestRecordPaymentRefusesOverpayment(t *testing.T) {
	svc, _, _ := newTestService(t)

	inv, err := svc.IssueFromQuote(context.Background(), invoice.CreateInvoiceRequest{
		QuoteID: "q-accepted",
		DueDate: "2026-10-15",
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), "acct-1", invoice.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    "1200.51",
		Method:    "transfer",
		PaidAt:    "2026-09-01",
	})
	assert.ErrorIs(t, err, invoice.ErrPaymentExceedsDue)
}

func TestRecordPaymentOnPaidInvoiceRefused(t *testing.T) {
	svc, _, _ := newTestService(t)

	inv, err := svc.IssueFromQuote(context.Background(), invoice.CreateInvoiceRequest{
		QuoteID: "q-accepted",
		DueDate: "2026-10-15",
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), "acct-1", invoice.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    "1200.50",
		Method:    "transfer",
		PaidAt:    "2026-09-01",
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), "acct-1", invoice.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    "1",
		Method:    "transfer",
		PaidAt:    "2026-09-02",
	})
	assert.ErrorIs(t, err, invoice.ErrInvoiceAlreadyPaid)
}

func TestCancelPaidInvoiceRefused(t *testing.T) {
	svc, _, _ := newTestService(t)

	inv, err := svc.IssueFromQuote(context.Background(), invoice.CreateInvoiceRequest{
		QuoteID: "q-accepted",
		DueDate: "2026-10-15",
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), "acct-1", invoice.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    "1200.50",
		Method:    "transfer",
		PaidAt:    "2026-09-01",
	})
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), inv.ID)
	assert.ErrorIs(t, err, invoice.ErrInvoiceNotCancellable)
}

func TestOverdueStatusAfterDueDate(t *testing.T) {
	inv := invoice.Invoice{
		TotalAmount: decimal.RequireFromString("100"),
		PaidAmount:  decimal.Zero,
		DueDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, invoice.StatusIssued, inv.StatusAfterPayment(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, invoice.StatusOverdue, inv.StatusAfterPayment(time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)))
}
