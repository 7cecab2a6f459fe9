package invoice

import "context"

type InvoiceRepository interface {
	Create(ctx context.Context, i Invoice) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	GetByQuoteID(ctx context.Context, quoteID string) (Invoice, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int64, error)
	UpdatePaidAmountAndStatus(ctx context.Context, i Invoice) error
	Cancel(ctx context.Context, id string) error
	NextNumber(ctx context.Context, year int) (string, error)

	CreatePayment(ctx context.Context, p Payment) (Payment, error)
	ListPayments(ctx context.Context, invoiceID string) ([]Payment, error)
}

type InvoiceService interface {
	IssueFromQuote(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, []Payment, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int64, error)
	RecordPayment(ctx context.Context, recordedBy string, req RecordPaymentRequest) (Invoice, error)
	Cancel(ctx context.Context, id string) error
}
