package material

import (
	"github.com/gestionpro/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateMaterialRequest struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	StockQty  string `json:"stock_qty"`
	MinStock  string `json:"min_stock"`
}

func (r *CreateMaterialRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reference) {
		errs = append(errs, validator.ValidationError{Field: "reference", Message: "reference is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Unit) {
		errs = append(errs, validator.ValidationError{Field: "unit", Message: "unit is required"})
	}
	if qty, err := decimal.NewFromString(r.StockQty); err != nil || qty.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "stock_qty", Message: "stock_qty must be a non-negative number"})
	}
	if min, err := decimal.NewFromString(r.MinStock); err != nil || min.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "min_stock", Message: "min_stock must be a non-negative number"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustStockRequest struct {
	MaterialID string `json:"-"`
	Quantity   string `json:"quantity"`
	Reason     string `json:"reason"`
}

func (r *AdjustStockRequest) Validate() error {
	var errs validator.ValidationErrors

	qty, err := decimal.NewFromString(r.Quantity)
	if err != nil || qty.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "quantity must be a non-zero number"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListMaterialsRequest struct {
	Page     int
	Limit    int
	Search   string
	BelowMin bool
}

type MaterialResponse struct {
	ID         string `json:"id"`
	Reference  string `json:"reference"`
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	StockQty   string `json:"stock_qty"`
	MinStock   string `json:"min_stock"`
	IsBelowMin bool   `json:"is_below_min"`
}

func ToResponse(m Material) MaterialResponse {
	return MaterialResponse{
		ID:         m.ID,
		Reference:  m.Reference,
		Name:       m.Name,
		Unit:       m.Unit,
		StockQty:   m.StockQty.String(),
		MinStock:   m.MinStock.String(),
		IsBelowMin: m.IsBelowMin(),
	}
}

type StockMovementResponse struct {
	ID         string  `json:"id"`
	MaterialID string  `json:"material_id"`
	Quantity   string  `json:"quantity"`
	Reason     string  `json:"reason"`
	ActorID    *string `json:"actor_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func ToMovementResponse(m StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		Quantity:   m.Quantity.String(),
		Reason:     m.Reason,
		ActorID:    m.ActorID,
		CreatedAt:  m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
