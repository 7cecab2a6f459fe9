package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/customer"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CustomerHandler interface {
	CreateCustomer(w http.ResponseWriter, r *http.Request)
	GetCustomer(w http.ResponseWriter, r *http.Request)
	ListCustomers(w http.ResponseWriter, r *http.Request)
	UpdateCustomer(w http.ResponseWriter, r *http.Request)
	ConvertProspect(w http.ResponseWriter, r *http.Request)
	DeleteCustomer(w http.ResponseWriter, r *http.Request)
}

type CustomerHandlerImpl struct {
	customerService customer.CustomerService
}

func NewCustomerHandler(customerService customer.CustomerService) CustomerHandler {
	return &CustomerHandlerImpl{customerService: customerService}
}

// CreateCustomer implements CustomerHandler.
func (h *CustomerHandlerImpl) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var createReq customer.CreateCustomerRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateCustomer decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.customerService.Create(r.Context(), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Customer created successfully", customer.ToResponse(created))
}

// GetCustomer implements CustomerHandler.
func (h *CustomerHandlerImpl) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.customerService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, customer.ToResponse(c))
}

// ListCustomers implements CustomerHandler.
func (h *CustomerHandlerImpl) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	listReq := customer.ListCustomersRequest{
		Page:   page,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
	}
	if prospect := r.URL.Query().Get("is_prospect"); prospect != "" {
		isProspect := prospect == "true"
		listReq.IsProspect = &isProspect
	}

	customers, total, err := h.customerService.List(r.Context(), listReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]customer.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, customer.ToResponse(c))
	}
	response.SuccessWithMeta(w, items, paginationMeta(page, limit, total))
}

// UpdateCustomer implements CustomerHandler.
func (h *CustomerHandlerImpl) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var updateReq customer.UpdateCustomerRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateCustomer decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	updated, err := h.customerService.Update(r.Context(), updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer updated successfully", customer.ToResponse(updated))
}

// ConvertProspect implements CustomerHandler.
func (h *CustomerHandlerImpl) ConvertProspect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	converted, err := h.customerService.ConvertProspect(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Prospect converted to customer", "customer_id", id)
	response.SuccessWithMessage(w, "Prospect converted successfully", customer.ToResponse(converted))
}

// DeleteCustomer implements CustomerHandler.
func (h *CustomerHandlerImpl) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.customerService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer deleted successfully", nil)
}
