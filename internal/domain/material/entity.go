package material

import (
	"time"

	"github.com/shopspring/decimal"
)

type Material struct {
	ID        string
	Reference string
	Name      string
	Unit      string
	StockQty  decimal.Decimal
	MinStock  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBelowMin reports whether current stock has fallen under the restock level.
func (m *Material) IsBelowMin() bool {
	return m.StockQty.LessThan(m.MinStock)
}

// StockMovement records one adjustment, positive for intake, negative for
// consumption.
type StockMovement struct {
	ID         string
	MaterialID string
	Quantity   decimal.Decimal
	Reason     string
	ActorID    *string
	CreatedAt  time.Time
}
