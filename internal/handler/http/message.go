package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/message"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
	"github.com/go-chi/chi/v5"
)

type MessageHandler interface {
	SendMessage(w http.ResponseWriter, r *http.Request)
	ListInbox(w http.ResponseWriter, r *http.Request)
	ReadMessage(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
}

type MessageHandlerImpl struct {
	messageService message.MessageService
}

func NewMessageHandler(messageService message.MessageService) MessageHandler {
	return &MessageHandlerImpl{messageService: messageService}
}

// SendMessage implements MessageHandler.
func (h *MessageHandlerImpl) SendMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var sendReq message.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&sendReq); err != nil {
		slog.Error("SendMessage decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sent, err := h.messageService.Send(r.Context(), session.UserID, sendReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Message sent successfully", message.ToResponse(sent))
}

// ListInbox implements MessageHandler. unread=true narrows to unread only.
func (h *MessageHandlerImpl) ListInbox(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	page, limit := parsePagination(r)
	listReq := message.ListMessagesRequest{
		UserID: session.UserID,
		Page:   page,
		Limit:  limit,
		Unread: r.URL.Query().Get("unread") == "true",
	}

	messages, total, err := h.messageService.Inbox(r.Context(), listReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]message.MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, message.ToResponse(m))
	}
	response.SuccessWithMeta(w, items, paginationMeta(page, limit, total))
}

// ReadMessage implements MessageHandler. Opening marks the message read.
func (h *MessageHandlerImpl) ReadMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	m, err := h.messageService.Read(r.Context(), session.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, message.ToResponse(m))
}

type unreadCountResponse struct {
	Count int64 `json:"count"`
}

// UnreadCount implements MessageHandler.
func (h *MessageHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	count, err := h.messageService.UnreadCount(r.Context(), session.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, unreadCountResponse{Count: count})
}
