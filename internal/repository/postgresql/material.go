package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gestionpro/erp-backend-go/internal/domain/material"
	"github.com/gestionpro/erp-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type materialRepositoryImpl struct {
	db *database.DB
}

func NewMaterialRepository(db *database.DB) material.MaterialRepository {
	return &materialRepositoryImpl{db: db}
}

const materialColumns = `id, reference, name, unit, stock_qty, min_stock, created_at, updated_at`

func scanMaterial(row pgx.Row) (material.Material, error) {
	var m material.Material
	err := row.Scan(
		&m.ID,
		&m.Reference,
		&m.Name,
		&m.Unit,
		&m.StockQty,
		&m.MinStock,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return material.Material{}, material.ErrMaterialNotFound
	}
	if err != nil {
		return material.Material{}, err
	}
	return m, nil
}

// Create implements material.MaterialRepository.
func (r *materialRepositoryImpl) Create(ctx context.Context, m material.Material) (material.Material, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO materials (id, reference, name, unit, stock_qty, min_stock, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + materialColumns

	return scanMaterial(q.QueryRow(ctx, query,
		m.Reference, m.Name, m.Unit, m.StockQty, m.MinStock))
}

// GetByID implements material.MaterialRepository.
func (r *materialRepositoryImpl) GetByID(ctx context.Context, id string) (material.Material, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	return scanMaterial(q.QueryRow(ctx, query, id))
}

// List implements material.MaterialRepository.
func (r *materialRepositoryImpl) List(ctx context.Context, req material.ListMaterialsRequest) ([]material.Material, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"TRUE"}
	args := []interface{}{}
	idx := 1

	if req.Search != "" {
		where = append(where, fmt.Sprintf("(reference ILIKE $%d OR name ILIKE $%d)", idx, idx))
		args = append(args, "%"+req.Search+"%")
		idx++
	}
	if req.BelowMin {
		where = append(where, "stock_qty < min_stock")
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM materials WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM materials WHERE %s ORDER BY reference ASC LIMIT $%d OFFSET $%d`,
		materialColumns, whereClause, idx, idx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var materials []material.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, 0, err
		}
		materials = append(materials, m)
	}
	return materials, total, rows.Err()
}

// ExistsByReference implements material.MaterialRepository.
func (r *materialRepositoryImpl) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM materials WHERE reference = $1)`, reference).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// AdjustStock implements material.MaterialRepository. The WHERE clause
// refuses adjustments that would drive stock negative, so two concurrent
// consumers cannot both take the last unit.
func (r *materialRepositoryImpl) AdjustStock(ctx context.Context, materialID string, delta decimal.Decimal, reason string, actorID *string) (material.Material, error) {
	var adjusted material.Material
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			UPDATE materials SET stock_qty = stock_qty + $1, updated_at = NOW()
			WHERE id = $2 AND stock_qty + $1 >= 0
			RETURNING ` + materialColumns

		var err error
		adjusted, err = scanMaterial(q.QueryRow(txCtx, query, delta, materialID))
		if errors.Is(err, material.ErrMaterialNotFound) {
			if _, getErr := r.GetByID(txCtx, materialID); getErr != nil {
				return getErr
			}
			return material.ErrInsufficientStock
		}
		if err != nil {
			return err
		}

		_, err = q.Exec(txCtx, `
			INSERT INTO stock_movements (id, material_id, quantity, reason, actor_id, created_at)
			VALUES (uuidv7(), $1, $2, $3, $4, NOW())`,
			materialID, delta, reason, actorID)
		return err
	})
	if err != nil {
		return material.Material{}, err
	}
	return adjusted, nil
}

// ListMovements implements material.MaterialRepository.
func (r *materialRepositoryImpl) ListMovements(ctx context.Context, materialID string) ([]material.StockMovement, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, material_id, quantity, reason, actor_id, created_at
		FROM stock_movements WHERE material_id = $1 ORDER BY created_at DESC`, materialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []material.StockMovement
	for rows.Next() {
		var m material.StockMovement
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.Quantity, &m.Reason, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
