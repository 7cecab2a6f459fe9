package message

import "context"

type MessageRepository interface {
	Create(ctx context.Context, m Message) (Message, error)
	GetByID(ctx context.Context, id string) (Message, error)
	ListForUser(ctx context.Context, req ListMessagesRequest) ([]Message, int64, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type MessageService interface {
	Send(ctx context.Context, senderID string, req SendMessageRequest) (Message, error)
	Inbox(ctx context.Context, req ListMessagesRequest) ([]Message, int64, error)
	Read(ctx context.Context, userID, messageID string) (Message, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}
