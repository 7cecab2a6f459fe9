package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/quote"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
	"github.com/go-chi/chi/v5"
)

type QuoteHandler interface {
	CreateQuote(w http.ResponseWriter, r *http.Request)
	GetQuote(w http.ResponseWriter, r *http.Request)
	ListQuotes(w http.ResponseWriter, r *http.Request)
	UpdateQuote(w http.ResponseWriter, r *http.Request)
	TransitionQuote(w http.ResponseWriter, r *http.Request)
	RecordClientDecision(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type QuoteHandlerImpl struct {
	quoteService quote.QuoteService
}

func NewQuoteHandler(quoteService quote.QuoteService) QuoteHandler {
	return &QuoteHandlerImpl{quoteService: quoteService}
}

// CreateQuote implements QuoteHandler. The session user becomes the author.
func (h *QuoteHandlerImpl) CreateQuote(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var createReq quote.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateQuote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.quoteService.Create(r.Context(), session.UserID, createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Quote created", "quote_id", created.ID, "number", created.Number)
	response.Created(w, "Quote created successfully", quote.ToResponse(created))
}

// GetQuote implements QuoteHandler.
func (h *QuoteHandlerImpl) GetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := h.quoteService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, quote.ToResponse(q))
}

// ListQuotes implements QuoteHandler.
func (h *QuoteHandlerImpl) ListQuotes(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	listReq := quote.ListQuotesRequest{
		Page:   page,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !quote.IsValidStatus(status) {
			response.BadRequest(w, "Unknown quote status", map[string]string{"status": status})
			return
		}
		listReq.Status = &status
	}
	if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
		listReq.CustomerID = &customerID
	}

	quotes, total, err := h.quoteService.List(r.Context(), listReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]quote.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, quote.ToResponse(q))
	}
	response.SuccessWithMeta(w, items, paginationMeta(page, limit, total))
}

// UpdateQuote implements QuoteHandler. Only DRAFT quotes accept edits.
func (h *QuoteHandlerImpl) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	var updateReq quote.UpdateQuoteRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateQuote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	updated, err := h.quoteService.UpdateContent(r.Context(), updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Quote updated successfully", quote.ToResponse(updated))
}

// TransitionQuote implements QuoteHandler. The action name comes from the
// URL; the service decides whether it is legal from the current status and
// whether the session holds the required permission.
func (h *QuoteHandlerImpl) TransitionQuote(w http.ResponseWriter, r *http.Request) {
	var transitionReq quote.TransitionRequest
	// The body is optional; most actions carry no reason.
	_ = json.NewDecoder(r.Body).Decode(&transitionReq)

	quoteID := chi.URLParam(r, "id")
	action := quote.Action(chi.URLParam(r, "action"))

	moved, err := h.quoteService.Transition(r.Context(), quoteID, action, transitionReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Quote transitioned successfully", quote.ToResponse(moved))
}

// RecordClientDecision implements QuoteHandler. Staff record the customer's
// answer on a quote approved by the direction.
func (h *QuoteHandlerImpl) RecordClientDecision(w http.ResponseWriter, r *http.Request) {
	var decisionReq quote.ClientDecisionRequest

	if err := json.NewDecoder(r.Body).Decode(&decisionReq); err != nil {
		slog.Error("RecordClientDecision decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	quoteID := chi.URLParam(r, "id")
	moved, err := h.quoteService.RecordClientDecision(r.Context(), quoteID, decisionReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Client decision recorded", "quote_id", quoteID, "accepted", decisionReq.Accepted)
	response.SuccessWithMessage(w, "Client decision recorded successfully", quote.ToResponse(moved))
}

// GetHistory implements QuoteHandler.
func (h *QuoteHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	changes, err := h.quoteService.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]quote.StatusChangeResponse, 0, len(changes))
	for _, c := range changes {
		items = append(items, quote.ToStatusChangeResponse(c))
	}
	response.Success(w, items)
}
