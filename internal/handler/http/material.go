package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/material"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
	"github.com/go-chi/chi/v5"
)

type MaterialHandler interface {
	CreateMaterial(w http.ResponseWriter, r *http.Request)
	GetMaterial(w http.ResponseWriter, r *http.Request)
	ListMaterials(w http.ResponseWriter, r *http.Request)
	AdjustStock(w http.ResponseWriter, r *http.Request)
	ListMovements(w http.ResponseWriter, r *http.Request)
}

type MaterialHandlerImpl struct {
	materialService material.MaterialService
}

func NewMaterialHandler(materialService material.MaterialService) MaterialHandler {
	return &MaterialHandlerImpl{materialService: materialService}
}

// CreateMaterial implements MaterialHandler.
func (h *MaterialHandlerImpl) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var createReq material.CreateMaterialRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateMaterial decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.materialService.Create(r.Context(), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Material created successfully", material.ToResponse(created))
}

// GetMaterial implements MaterialHandler.
func (h *MaterialHandlerImpl) GetMaterial(w http.ResponseWriter, r *http.Request) {
	m, err := h.materialService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, material.ToResponse(m))
}

// ListMaterials implements MaterialHandler. below_min=true narrows the list
// to materials under their reorder threshold.
func (h *MaterialHandlerImpl) ListMaterials(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	listReq := material.ListMaterialsRequest{
		Page:     page,
		Limit:    limit,
		Search:   r.URL.Query().Get("search"),
		BelowMin: r.URL.Query().Get("below_min") == "true",
	}

	materials, total, err := h.materialService.List(r.Context(), listReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]material.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		items = append(items, material.ToResponse(m))
	}
	response.SuccessWithMeta(w, items, paginationMeta(page, limit, total))
}

// AdjustStock implements MaterialHandler. Manual corrections only; mission
// completions move stock through their own path.
func (h *MaterialHandlerImpl) AdjustStock(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var adjustReq material.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&adjustReq); err != nil {
		slog.Error("AdjustStock decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	adjustReq.MaterialID = chi.URLParam(r, "id")

	adjusted, err := h.materialService.Adjust(r.Context(), session.UserID, adjustReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Stock adjusted", "material_id", adjusted.ID, "stock_qty", adjusted.StockQty)
	response.SuccessWithMessage(w, "Stock adjusted successfully", material.ToResponse(adjusted))
}

// ListMovements implements MaterialHandler.
func (h *MaterialHandlerImpl) ListMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := h.materialService.Movements(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]material.StockMovementResponse, 0, len(movements))
	for _, mv := range movements {
		items = append(items, material.ToMovementResponse(mv))
	}
	response.Success(w, items)
}
