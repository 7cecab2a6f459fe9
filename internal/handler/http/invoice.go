package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/invoice"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
	"github.com/go-chi/chi/v5"
)

type InvoiceHandler interface {
	CreateInvoice(w http.ResponseWriter, r *http.Request)
	GetInvoice(w http.ResponseWriter, r *http.Request)
	ListInvoices(w http.ResponseWriter, r *http.Request)
	RecordPayment(w http.ResponseWriter, r *http.Request)
	CancelInvoice(w http.ResponseWriter, r *http.Request)
}

type InvoiceHandlerImpl struct {
	invoiceService invoice.InvoiceService
}

func NewInvoiceHandler(invoiceService invoice.InvoiceService) InvoiceHandler {
	return &InvoiceHandlerImpl{invoiceService: invoiceService}
}

// CreateInvoice implements InvoiceHandler. The amount is frozen from the
// accepted quote; the request only picks the quote and the due date.
func (h *InvoiceHandlerImpl) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var createReq invoice.CreateInvoiceRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateInvoice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.invoiceService.IssueFromQuote(r.Context(), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Invoice issued", "invoice_id", created.ID, "number", created.Number)
	response.Created(w, "Invoice issued successfully", invoice.ToResponse(created, nil))
}

// GetInvoice implements InvoiceHandler.
func (h *InvoiceHandlerImpl) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, payments, err := h.invoiceService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, invoice.ToResponse(inv, payments))
}

// ListInvoices implements InvoiceHandler.
func (h *InvoiceHandlerImpl) ListInvoices(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	listReq := invoice.ListInvoicesRequest{
		Page:   page,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		listReq.Status = &status
	}
	if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
		listReq.CustomerID = &customerID
	}

	invoices, total, err := h.invoiceService.List(r.Context(), listReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]invoice.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, invoice.ToResponse(inv, nil))
	}
	response.SuccessWithMeta(w, items, paginationMeta(page, limit, total))
}

// RecordPayment implements InvoiceHandler.
func (h *InvoiceHandlerImpl) RecordPayment(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var paymentReq invoice.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&paymentReq); err != nil {
		slog.Error("RecordPayment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	paymentReq.InvoiceID = chi.URLParam(r, "id")

	updated, err := h.invoiceService.RecordPayment(r.Context(), session.UserID, paymentReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Payment recorded", "invoice_id", updated.ID, "status", updated.Status)
	response.SuccessWithMessage(w, "Payment recorded successfully", invoice.ToResponse(updated, nil))
}

// CancelInvoice implements InvoiceHandler. Paid invoices cannot be cancelled;
// accounting fixes those with a credit note outside this system.
func (h *InvoiceHandlerImpl) CancelInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.invoiceService.Cancel(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Invoice cancelled", "invoice_id", id)
	response.SuccessWithMessage(w, "Invoice cancelled successfully", nil)
}
