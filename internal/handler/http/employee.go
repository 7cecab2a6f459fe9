package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/employee"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeactivateEmployee(w http.ResponseWriter, r *http.Request)
	AddContract(w http.ResponseWriter, r *http.Request)
	ListContracts(w http.ResponseWriter, r *http.Request)

	RequestLeave(w http.ResponseWriter, r *http.Request)
	ApproveLeave(w http.ResponseWriter, r *http.Request)
	RejectLeave(w http.ResponseWriter, r *http.Request)
	ListPendingLeaves(w http.ResponseWriter, r *http.Request)

	RequestLoan(w http.ResponseWriter, r *http.Request)
	ApproveLoan(w http.ResponseWriter, r *http.Request)
	RejectLoan(w http.ResponseWriter, r *http.Request)
	ListPendingLoans(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// CreateEmployee implements EmployeeHandler.
func (h *EmployeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var createReq employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.Create(r.Context(), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", employee.ToResponse(created))
}

// GetEmployee implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.employeeService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToResponse(e))
}

// ListEmployees implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	listReq := employee.ListEmployeesRequest{
		Page:   page,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
	}
	if serviceID := r.URL.Query().Get("service_id"); serviceID != "" {
		listReq.ServiceID = &serviceID
	}

	employees, total, err := h.employeeService.List(r.Context(), listReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, employee.ToResponse(e))
	}
	response.SuccessWithMeta(w, items, paginationMeta(page, limit, total))
}

// UpdateEmployee implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var updateReq employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	if err := h.employeeService.Update(r.Context(), updateReq); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", nil)
}

// DeactivateEmployee implements EmployeeHandler.
func (h *EmployeeHandlerImpl) DeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated successfully", nil)
}

// AddContract implements EmployeeHandler.
func (h *EmployeeHandlerImpl) AddContract(w http.ResponseWriter, r *http.Request) {
	var contractReq employee.CreateContractRequest

	if err := json.NewDecoder(r.Body).Decode(&contractReq); err != nil {
		slog.Error("AddContract decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	contractReq.EmployeeID = chi.URLParam(r, "id")

	created, err := h.employeeService.AddContract(r.Context(), contractReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contract added successfully", employee.ToContractResponse(created))
}

// ListContracts implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.employeeService.Contracts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]employee.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		items = append(items, employee.ToContractResponse(c))
	}
	response.Success(w, items)
}

// RequestLeave implements EmployeeHandler.
func (h *EmployeeHandlerImpl) RequestLeave(w http.ResponseWriter, r *http.Request) {
	var leaveReq employee.CreateLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&leaveReq); err != nil {
		slog.Error("RequestLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.RequestLeave(r.Context(), leaveReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", employee.ToLeaveResponse(created))
}

// ApproveLeave implements EmployeeHandler. The session user is recorded as
// the decider.
func (h *EmployeeHandlerImpl) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	approved, err := h.employeeService.ApproveLeave(r.Context(), chi.URLParam(r, "id"), session.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave approved successfully", employee.ToLeaveResponse(approved))
}

// RejectLeave implements EmployeeHandler.
func (h *EmployeeHandlerImpl) RejectLeave(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var rejectReq employee.RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&rejectReq); err != nil {
		slog.Error("RejectLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rejected, err := h.employeeService.RejectLeave(r.Context(), chi.URLParam(r, "id"), session.UserID, rejectReq.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave rejected", employee.ToLeaveResponse(rejected))
}

// ListPendingLeaves implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListPendingLeaves(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	leaves, total, err := h.employeeService.PendingLeaves(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]employee.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		items = append(items, employee.ToLeaveResponse(l))
	}
	response.SuccessWithMeta(w, items, paginationMeta(page, limit, total))
}

// RequestLoan implements EmployeeHandler.
func (h *EmployeeHandlerImpl) RequestLoan(w http.ResponseWriter, r *http.Request) {
	var loanReq employee.CreateLoanRequest

	if err := json.NewDecoder(r.Body).Decode(&loanReq); err != nil {
		slog.Error("RequestLoan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.RequestLoan(r.Context(), loanReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Loan request submitted successfully", employee.ToLoanResponse(created))
}

// ApproveLoan implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ApproveLoan(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	approved, err := h.employeeService.ApproveLoan(r.Context(), chi.URLParam(r, "id"), session.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Loan approved successfully", employee.ToLoanResponse(approved))
}

// RejectLoan implements EmployeeHandler.
func (h *EmployeeHandlerImpl) RejectLoan(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	rejected, err := h.employeeService.RejectLoan(r.Context(), chi.URLParam(r, "id"), session.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Loan rejected", employee.ToLoanResponse(rejected))
}

// ListPendingLoans implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListPendingLoans(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	loans, total, err := h.employeeService.PendingLoans(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]employee.LoanResponse, 0, len(loans))
	for _, l := range loans {
		items = append(items, employee.ToLoanResponse(l))
	}
	response.SuccessWithMeta(w, items, paginationMeta(page, limit, total))
}
