package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/quote"
	"github.com/gestionpro/erp-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type quoteRepositoryImpl struct {
	db *database.DB
}

func NewQuoteRepository(db *database.DB) quote.QuoteRepository {
	return &quoteRepositoryImpl{db: db}
}

const quoteColumns = `id, number, customer_id, author_id, subject, notes, status, total_amount, valid_until, created_at, updated_at`

func scanQuote(row pgx.Row) (quote.Quote, error) {
	var q quote.Quote
	err := row.Scan(
		&q.ID,
		&q.Number,
		&q.CustomerID,
		&q.AuthorID,
		&q.Subject,
		&q.Notes,
		&q.Status,
		&q.TotalAmount,
		&q.ValidUntil,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return quote.Quote{}, quote.ErrQuoteNotFound
	}
	if err != nil {
		return quote.Quote{}, err
	}
	return q, nil
}

func (r *quoteRepositoryImpl) loadItems(ctx context.Context, quoteID string) ([]quote.QuoteItem, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, quote_id, position, description, quantity, unit_price, line_total
		FROM quote_items WHERE quote_id = $1 ORDER BY position ASC`, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []quote.QuoteItem
	for rows.Next() {
		var item quote.QuoteItem
		if err := rows.Scan(&item.ID, &item.QuoteID, &item.Position, &item.Description,
			&item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *quoteRepositoryImpl) insertItems(ctx context.Context, quoteID string, items []quote.QuoteItem) error {
	q := GetQuerier(ctx, r.db)

	for i, item := range items {
		if _, err := q.Exec(ctx, `
			INSERT INTO quote_items (id, quote_id, position, description, quantity, unit_price, line_total)
			VALUES (uuidv7(), $1, $2, $3, $4, $5, $6)`,
			quoteID, i+1, item.Description, item.Quantity, item.UnitPrice, item.LineTotal); err != nil {
			return err
		}
	}
	return nil
}

// Create implements quote.QuoteRepository.
func (r *quoteRepositoryImpl) Create(ctx context.Context, newQuote quote.Quote) (quote.Quote, error) {
	var created quote.Quote
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO quotes (id, number, customer_id, author_id, subject, notes, status, total_amount, valid_until, created_at, updated_at)
			VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			RETURNING ` + quoteColumns

		var err error
		created, err = scanQuote(q.QueryRow(txCtx, query,
			newQuote.Number,
			newQuote.CustomerID,
			newQuote.AuthorID,
			newQuote.Subject,
			newQuote.Notes,
			string(newQuote.Status),
			newQuote.TotalAmount,
			newQuote.ValidUntil,
		))
		if err != nil {
			return err
		}

		if err := r.insertItems(txCtx, created.ID, newQuote.Items); err != nil {
			return err
		}

		items, err := r.loadItems(txCtx, created.ID)
		if err != nil {
			return err
		}
		created.Items = items
		return nil
	})
	if err != nil {
		return quote.Quote{}, err
	}
	return created, nil
}

// GetByID implements quote.QuoteRepository.
func (r *quoteRepositoryImpl) GetByID(ctx context.Context, id string) (quote.Quote, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanQuote(q.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if err != nil {
		return quote.Quote{}, err
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return quote.Quote{}, err
	}
	found.Items = items
	return found, nil
}

// List implements quote.QuoteRepository. Items are not loaded for lists.
func (r *quoteRepositoryImpl) List(ctx context.Context, req quote.ListQuotesRequest) ([]quote.Quote, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"TRUE"}
	args := []interface{}{}
	idx := 1

	if req.Search != "" {
		where = append(where, fmt.Sprintf("(number ILIKE $%d OR subject ILIKE $%d)", idx, idx))
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
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM quotes WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM quotes WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		quoteColumns, whereClause, idx, idx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quotes []quote.Quote
	for rows.Next() {
		item, err := scanQuote(rows)
		if err != nil {
			return nil, 0, err
		}
		quotes = append(quotes, item)
	}
	return quotes, total, rows.Err()
}

// UpdateContent implements quote.QuoteRepository. The service guarantees the
// quote is DRAFT; the WHERE clause re-checks so a concurrent submit wins.
func (r *quoteRepositoryImpl) UpdateContent(ctx context.Context, updated quote.Quote) (quote.Quote, error) {
	var result quote.Quote
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			UPDATE quotes
			SET subject = $1, notes = $2, total_amount = $3, valid_until = $4, updated_at = NOW()
			WHERE id = $5 AND status = $6
			RETURNING ` + quoteColumns

		var err error
		result, err = scanQuote(q.QueryRow(txCtx, query,
			updated.Subject, updated.Notes, updated.TotalAmount, updated.ValidUntil,
			updated.ID, string(quote.StatusDraft)))
		if errors.Is(err, quote.ErrQuoteNotFound) {
			return quote.ErrQuoteNotEditable
		}
		if err != nil {
			return err
		}

		if _, err := q.Exec(txCtx, `DELETE FROM quote_items WHERE quote_id = $1`, updated.ID); err != nil {
			return err
		}
		if err := r.insertItems(txCtx, updated.ID, updated.Items); err != nil {
			return err
		}

		items, err := r.loadItems(txCtx, updated.ID)
		if err != nil {
			return err
		}
		result.Items = items
		return nil
	})
	if err != nil {
		return quote.Quote{}, err
	}
	return result, nil
}

// UpdateStatus implements quote.QuoteRepository. The FromStatus guard makes
// the transition atomic: if another actor moved the quote first, zero rows
// match and ErrQuoteAlreadyMoved is returned.
func (r *quoteRepositoryImpl) UpdateStatus(ctx context.Context, req quote.UpdateStatusRequest) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		tag, err := q.Exec(txCtx,
			`UPDATE quotes SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
			string(req.ToStatus), req.ID, string(req.FromStatus))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return quote.ErrQuoteAlreadyMoved
		}

		_, err = q.Exec(txCtx, `
			INSERT INTO quote_status_changes (id, quote_id, action, from_status, to_status, actor_id, reason, created_at)
			VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW())`,
			req.ID, string(req.Action), string(req.FromStatus), string(req.ToStatus), req.ActorID, req.Reason)
		return err
	})
}

// ListStatusChanges implements quote.QuoteRepository.
func (r *quoteRepositoryImpl) ListStatusChanges(ctx context.Context, quoteID string) ([]quote.StatusChange, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, quote_id, action, from_status, to_status, actor_id, reason, created_at
		FROM quote_status_changes WHERE quote_id = $1 ORDER BY created_at ASC`, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []quote.StatusChange
	for rows.Next() {
		var c quote.StatusChange
		if err := rows.Scan(&c.ID, &c.QuoteID, &c.Action, &c.FromStatus, &c.ToStatus,
			&c.ActorID, &c.Reason, &c.CreatedAt); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

// ExpireDue implements quote.QuoteRepository.
func (r *quoteRepositoryImpl) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	var moved int64
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		nonTerminal := []string{
			string(quote.StatusDraft),
			string(quote.StatusSubmittedForServiceApproval),
			string(quote.StatusApprovedByServiceManager),
			string(quote.StatusSubmittedForDGApproval),
			string(quote.StatusApprovedByDG),
		}

		rows, err := q.Query(txCtx, `
			UPDATE quotes SET status = $1, updated_at = NOW()
			WHERE valid_until < $2 AND status = ANY($3)
			RETURNING id, (SELECT q2.status FROM quotes q2 WHERE q2.id = quotes.id)`,
			string(quote.StatusExpired), now, nonTerminal)
		if err != nil {
			return err
		}
		type expired struct{ id, from string }
		var hits []expired
		for rows.Next() {
			var e expired
			if err := rows.Scan(&e.id, &e.from); err != nil {
				rows.Close()
				return err
			}
			hits = append(hits, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, e := range hits {
			if _, err := q.Exec(txCtx, `
				INSERT INTO quote_status_changes (id, quote_id, action, from_status, to_status, actor_id, reason, created_at)
				VALUES (uuidv7(), $1, $2, $3, $4, NULL, NULL, NOW())`,
				e.id, string(quote.ActionExpire), e.from, string(quote.StatusExpired)); err != nil {
				return err
			}
		}
		moved = int64(len(hits))
		return nil
	})
	return moved, err
}

// NextNumber implements quote.QuoteRepository. Numbers are per-year
// sequential, e.g. Q-2026-0042.
func (r *quoteRepositoryImpl) NextNumber(ctx context.Context, year int) (string, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM quotes WHERE number LIKE $1`,
		fmt.Sprintf("Q-%d-%%", year)).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Q-%d-%04d", year, count+1), nil
}
