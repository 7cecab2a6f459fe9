package material

import (
	"context"

	"github.com/shopspring/decimal"
)

type MaterialRepository interface {
	Create(ctx context.Context, m Material) (Material, error)
	GetByID(ctx context.Context, id string) (Material, error)
	List(ctx context.Context, req ListMaterialsRequest) ([]Material, int64, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)

	// AdjustStock applies a delta to stock_qty and records the movement.
	// Negative results must be refused at the SQL level.
	AdjustStock(ctx context.Context, materialID string, delta decimal.Decimal, reason string, actorID *string) (Material, error)
	ListMovements(ctx context.Context, materialID string) ([]StockMovement, error)
}

type MaterialService interface {
	Create(ctx context.Context, req CreateMaterialRequest) (Material, error)
	GetByID(ctx context.Context, id string) (Material, error)
	List(ctx context.Context, req ListMaterialsRequest) ([]Material, int64, error)
	Adjust(ctx context.Context, actorID string, req AdjustStockRequest) (Material, error)
	Movements(ctx context.Context, materialID string) ([]StockMovement, error)
}
