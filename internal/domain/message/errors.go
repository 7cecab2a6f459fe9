package message

import "errors"

var (
	ErrMessageNotFound  = errors.New("message not found")
	ErrNotRecipient     = errors.New("only the recipient can read this message")
	ErrRecipientUnknown = errors.New("recipient not found")
)
