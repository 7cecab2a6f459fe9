package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gestionpro/erp-backend-go/internal/domain/invoice"
	"github.com/gestionpro/erp-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type invoiceRepositoryImpl struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) invoice.InvoiceRepository {
	return &invoiceRepositoryImpl{db: db}
}

const invoiceColumns = `id, number, quote_id, customer_id, status, total_amount, paid_amount, due_date, issued_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var i invoice.Invoice
	err := row.Scan(
		&i.ID,
		&i.Number,
		&i.QuoteID,
		&i.CustomerID,
		&i.Status,
		&i.TotalAmount,
		&i.PaidAmount,
		&i.DueDate,
		&i.IssuedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return invoice.Invoice{}, invoice.ErrInvoiceNotFound
	}
	if err != nil {
		return invoice.Invoice{}, err
	}
	return i, nil
}

// Create implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) Create(ctx context.Context, i invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoices (id, number, quote_id, customer_id, status, total_amount, paid_amount, due_date, issued_at, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW(), NOW())
		RETURNING ` + invoiceColumns

	return scanInvoice(q.QueryRow(ctx, query,
		i.Number, i.QuoteID, i.CustomerID, string(i.Status),
		i.TotalAmount, i.PaidAmount, i.DueDate))
}

// GetByID implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) GetByID(ctx context.Context, id string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return scanInvoice(q.QueryRow(ctx, query, id))
}

// GetByQuoteID implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) GetByQuoteID(ctx context.Context, quoteID string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE quote_id = $1`
	return scanInvoice(q.QueryRow(ctx, query, quoteID))
}

// List implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) List(ctx context.Context, req invoice.ListInvoicesRequest) ([]invoice.Invoice, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"TRUE"}
	args := []interface{}{}
	idx := 1

	if req.Search != "" {
		where = append(where, fmt.Sprintf("number ILIKE $%d", idx))
		args = append(args, "%"+req.Search+"%")
		idx++
	}
	if req.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", idx))
		args = append(args, *req.Status)
		idx++
	}
	if req.CustomerID != nil {
		where = append(where, fmt.Sprintf("customer_id = $%d", idx))
		args = append(args, *req.CustomerID)
		idx++
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM invoices WHERE %s ORDER BY issued_at DESC LIMIT $%d OFFSET $%d`,
		invoiceColumns, whereClause, idx, idx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		item, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, item)
	}
	return invoices, total, rows.Err()
}

// UpdatePaidAmountAndStatus implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) UpdatePaidAmountAndStatus(ctx context.Context, i invoice.Invoice) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE invoices SET paid_amount = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		i.PaidAmount, string(i.Status), i.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}

// Cancel implements invoice.InvoiceRepository. Paid invoices cannot be
// cancelled; the WHERE clause enforces it.
func (r *invoiceRepositoryImpl) Cancel(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2 AND status NOT IN ($3, $4)`,
		string(invoice.StatusCancelled), id, string(invoice.StatusPaid), string(invoice.StatusCancelled))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return invoice.ErrInvoiceNotCancellable
	}
	return nil
}

// NextNumber implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) NextNumber(ctx context.Context, year int) (string, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE number LIKE $1`,
		fmt.Sprintf("F-%d-%%", year)).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("F-%d-%04d", year, count+1), nil
}

// CreatePayment implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) CreatePayment(ctx context.Context, p invoice.Payment) (invoice.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoice_payments (id, invoice_id, amount, method, reference, recorded_by, paid_at, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, invoice_id, amount, method, reference, recorded_by, paid_at, created_at`

	var created invoice.Payment
	err := q.QueryRow(ctx, query,
		p.InvoiceID, p.Amount, p.Method, p.Reference, p.RecordedBy, p.PaidAt,
	).Scan(&created.ID, &created.InvoiceID, &created.Amount, &created.Method,
		&created.Reference, &created.RecordedBy, &created.PaidAt, &created.CreatedAt)
	if err != nil {
		return invoice.Payment{}, err
	}
	return created, nil
}

// ListPayments implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) ListPayments(ctx context.Context, invoiceID string) ([]invoice.Payment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, invoice_id, amount, method, reference, recorded_by, paid_at, created_at
		FROM invoice_payments WHERE invoice_id = $1 ORDER BY paid_at ASC`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []invoice.Payment
	for rows.Next() {
		var p invoice.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method,
			&p.Reference, &p.RecordedBy, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
