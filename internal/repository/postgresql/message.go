package postgresql

import (
	"context"
	"errors"

	"github.com/gestionpro/erp-backend-go/internal/domain/message"
	"github.com/gestionpro/erp-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type messageRepositoryImpl struct {
	db *database.DB
}

func NewMessageRepository(db *database.DB) message.MessageRepository {
	return &messageRepositoryImpl{db: db}
}

const messageColumns = `id, sender_id, recipient_id, subject, body, read_at, created_at`

func scanMessage(row pgx.Row) (message.Message, error) {
	var m message.Message
	err := row.Scan(
		&m.ID,
		&m.SenderID,
		&m.RecipientID,
		&m.Subject,
		&m.Body,
		&m.ReadAt,
		&m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return message.Message{}, message.ErrMessageNotFound
	}
	if err != nil {
		return message.Message{}, err
	}
	return m, nil
}

// Create implements message.MessageRepository.
func (r *messageRepositoryImpl) Create(ctx context.Context, m message.Message) (message.Message, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO messages (id, sender_id, recipient_id, subject, body, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW())
		RETURNING ` + messageColumns

	return scanMessage(q.QueryRow(ctx, query, m.SenderID, m.RecipientID, m.Subject, m.Body))
}

// GetByID implements message.MessageRepository.
func (r *messageRepositoryImpl) GetByID(ctx context.Context, id string) (message.Message, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	return scanMessage(q.QueryRow(ctx, query, id))
}

// ListForUser implements message.MessageRepository.
func (r *messageRepositoryImpl) ListForUser(ctx context.Context, req message.ListMessagesRequest) ([]message.Message, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `recipient_id = $1`
	args := []interface{}{req.UserID}
	if req.Unread {
		where += ` AND read_at IS NULL`
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, req.Limit, (req.Page-1)*req.Limit)
	rows, err := q.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE `+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []message.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		messages = append(messages, m)
	}
	return messages, total, rows.Err()
}

// MarkRead implements message.MessageRepository. Re-reading is harmless; the
// original read_at is kept.
func (r *messageRepositoryImpl) MarkRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE messages SET read_at = NOW() WHERE id = $1 AND read_at IS NULL`, id)
	return err
}

// CountUnread implements message.MessageRepository.
func (r *messageRepositoryImpl) CountUnread(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND read_at IS NULL`,
		userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
