package material

import (
	"context"
	"fmt"

	"github.com/gestionpro/erp-backend-go/internal/domain/material"
	"github.com/shopspring/decimal"
)

type MaterialServiceImpl struct {
	materialRepo material.MaterialRepository
}

func NewMaterialService(materialRepo material.MaterialRepository) material.MaterialService {
	return &MaterialServiceImpl{materialRepo: materialRepo}
}

// Create implements material.MaterialService.
func (s *MaterialServiceImpl) Create(ctx context.Context, req material.CreateMaterialRequest) (material.Material, error) {
	if err := req.Validate(); err != nil {
		return material.Material{}, err
	}

	exists, err := s.materialRepo.ExistsByReference(ctx, req.Reference)
	if err != nil {
		return material.Material{}, fmt.Errorf("failed to check material reference: %w", err)
	}
	if exists {
		return material.Material{}, material.ErrReferenceExists
	}

	stockQty, err := decimal.NewFromString(req.StockQty)
	if err != nil {
		return material.Material{}, err
	}
	minStock, err := decimal.NewFromString(req.MinStock)
	if err != nil {
		return material.Material{}, err
	}

	return s.materialRepo.Create(ctx, material.Material{
		Reference: req.Reference,
		Name:      req.Name,
		Unit:      req.Unit,
		StockQty:  stockQty,
		MinStock:  minStock,
	})
}

// GetByID implements material.MaterialService.
func (s *MaterialServiceImpl) GetByID(ctx context.Context, id string) (material.Material, error) {
	return s.materialRepo.GetByID(ctx, id)
}

// List implements material.MaterialService.
func (s *MaterialServiceImpl) List(ctx context.Context, req material.ListMaterialsRequest) ([]material.Material, int64, error) {
	return s.materialRepo.List(ctx, req)
}

// Adjust implements material.MaterialService.
func (s *MaterialServiceImpl) Adjust(ctx context.Context, actorID string, req material.AdjustStockRequest) (material.Material, error) {
	if err := req.Validate(); err != nil {
		return material.Material{}, err
	}

	delta, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return material.Material{}, err
	}
	if delta.IsZero() {
		return material.Material{}, material.ErrInvalidAdjustment
	}

	return s.materialRepo.AdjustStock(ctx, req.MaterialID, delta, req.Reason, &actorID)
}

// Movements implements material.MaterialService.
func (s *MaterialServiceImpl) Movements(ctx context.Context, materialID string) ([]material.StockMovement, error) {
	if _, err := s.materialRepo.GetByID(ctx, materialID); err != nil {
		return nil, err
	}
	return s.materialRepo.ListMovements(ctx, materialID)
}
