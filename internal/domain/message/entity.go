package message

import "time"

type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Subject     string
	Body        string
	ReadAt      *time.Time
	CreatedAt   time.Time
}

func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}
