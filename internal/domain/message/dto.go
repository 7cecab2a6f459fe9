package message

import (
	"github.com/gestionpro/erp-backend-go/internal/pkg/validator"
)

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

func (r *SendMessageRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecipientID) {
		errs = append(errs, validator.ValidationError{Field: "recipient_id", Message: "recipient_id is required"})
	}
	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{Field: "subject", Message: "subject is required"})
	} else if len(r.Subject) > 255 {
		errs = append(errs, validator.ValidationError{Field: "subject", Message: "subject must not exceed 255 characters"})
	}
	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "body is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListMessagesRequest struct {
	UserID string
	Page   int
	Limit  int
	Unread bool
}

type MessageResponse struct {
	ID          string `json:"id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	Read        bool   `json:"read"`
	CreatedAt   string `json:"created_at"`
}

func ToResponse(m Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Subject:     m.Subject,
		Body:        m.Body,
		Read:        m.IsRead(),
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
