package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gestionpro/erp-backend-go/internal/domain/message"
	"github.com/gestionpro/erp-backend-go/internal/domain/user"
)

// UnreadCache is the badge-count cache (Redis in production). Cache failures
// are logged and absorbed; the database remains the source of truth.
type UnreadCache interface {
	Get(ctx context.Context, userID string) (int64, bool, error)
	Set(ctx context.Context, userID string, count int64) error
	Invalidate(ctx context.Context, userID string) error
}

type MessageServiceImpl struct {
	messageRepo message.MessageRepository
	userRepo    user.UserRepository
	unread      UnreadCache
}

func NewMessageService(messageRepo message.MessageRepository, userRepo user.UserRepository, unread UnreadCache) message.MessageService {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		unread:      unread,
	}
}

// Send implements message.MessageService.
func (s *MessageServiceImpl) Send(ctx context.Context, senderID string, req message.SendMessageRequest) (message.Message, error) {
	if err := req.Validate(); err != nil {
		return message.Message{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return message.Message{}, message.ErrRecipientUnknown
		}
		return message.Message{}, fmt.Errorf("failed to check recipient: %w", err)
	}

	m, err := s.messageRepo.Create(ctx, message.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Body:        req.Body,
	})
	if err != nil {
		return message.Message{}, err
	}

	if err := s.unread.Invalidate(ctx, req.RecipientID); err != nil {
		slog.WarnContext(ctx, "failed to invalidate unread cache", slog.Any("error", err))
	}
	return m, nil
}

// Inbox implements message.MessageService.
func (s *MessageServiceImpl) Inbox(ctx context.Context, req message.ListMessagesRequest) ([]message.Message, int64, error) {
	return s.messageRepo.ListForUser(ctx, req)
}

// Read implements message.MessageService. Only the recipient may open a
// message.
func (s *MessageServiceImpl) Read(ctx context.Context, userID, messageID string) (message.Message, error) {
	m, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return message.Message{}, err
	}
	if m.RecipientID != userID {
		return message.Message{}, message.ErrNotRecipient
	}

	if !m.IsRead() {
		if err := s.messageRepo.MarkRead(ctx, messageID); err != nil {
			return message.Message{}, err
		}
		if err := s.unread.Invalidate(ctx, userID); err != nil {
			slog.WarnContext(ctx, "failed to invalidate unread cache", slog.Any("error", err))
		}
		return s.messageRepo.GetByID(ctx, messageID)
	}
	return m, nil
}

// UnreadCount implements message.MessageService. Serves from cache when warm,
// recounts and refills on a miss.
func (s *MessageServiceImpl) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if count, found, err := s.unread.Get(ctx, userID); err == nil && found {
		return count, nil
	}

	count, err := s.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.unread.Set(ctx, userID, count); err != nil {
		slog.WarnContext(ctx, "failed to refill unread cache", slog.Any("error", err))
	}
	return count, nil
}
