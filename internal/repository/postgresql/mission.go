package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/mission"
	"github.com/gestionpro/erp-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type missionRepositoryImpl struct {
	db *database.DB
}

func NewMissionRepository(db *database.DB) mission.MissionRepository {
	return &missionRepositoryImpl{db: db}
}

const missionColumns = `id, reference, customer_id, quote_id, title, description, status, start_date, end_date, created_at, updated_at`

func scanMission(row pgx.Row) (mission.Mission, error) {
	var m mission.Mission
	err := row.Scan(
		&m.ID,
		&m.Reference,
		&m.CustomerID,
		&m.QuoteID,
		&m.Title,
		&m.Description,
		&m.Status,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return mission.Mission{}, mission.ErrMissionNotFound
	}
	if err != nil {
		return mission.Mission{}, err
	}
	return m, nil
}

// Create implements mission.MissionRepository.
func (r *missionRepositoryImpl) Create(ctx context.Context, m mission.Mission) (mission.Mission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO missions (id, reference, customer_id, quote_id, title, description, status, start_date, end_date, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + missionColumns

	return scanMission(q.QueryRow(ctx, query,
		m.Reference, m.CustomerID, m.QuoteID, m.Title, m.Description,
		string(m.Status), m.StartDate, m.EndDate))
}

// GetByID implements mission.MissionRepository.
func (r *missionRepositoryImpl) GetByID(ctx context.Context, id string) (mission.Mission, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + missionColumns + ` FROM missions WHERE id = $1`
	return scanMission(q.QueryRow(ctx, query, id))
}

// List implements mission.MissionRepository.
func (r *missionRepositoryImpl) List(ctx context.Context, req mission.ListMissionsRequest) ([]mission.Mission, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"TRUE"}
	args := []interface{}{}
	idx := 1

	if req.Search != "" {
		where = append(where, fmt.Sprintf("(reference ILIKE $%d OR title ILIKE $%d)", idx, idx))
		args = append(args, "%"+req.Search+"%")
		idx++
	}
	if req.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", idx))
		args = append(args, *req.Status)
		idx++
	}
	if req.CustomerID != nil {
		where = append(where, fmt.Sprintf("customer_id = $%d", idx))
		args = append(args, *req.CustomerID)
		idx++
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM missions WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM missions WHERE %s ORDER BY start_date DESC LIMIT $%d OFFSET $%d`,
		missionColumns, whereClause, idx, idx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var missions []mission.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, 0, err
		}
		missions = append(missions, m)
	}
	return missions, total, rows.Err()
}

// Update implements mission.MissionRepository.
func (r *missionRepositoryImpl) Update(ctx context.Context, req mission.UpdateMissionRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	idx := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}
	if req.EndDate != nil {
		addSet("end_date", *req.EndDate)
	}

	query := fmt.Sprintf(`UPDATE missions SET %s WHERE id = $%d`, strings.Join(sets, ", "), idx)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mission.ErrMissionNotFound
	}
	return nil
}

// NextReference implements mission.MissionRepository.
func (r *missionRepositoryImpl) NextReference(ctx context.Context, year int) (string, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM missions WHERE reference LIKE $1`,
		fmt.Sprintf("M-%d-%%", year)).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("M-%d-%04d", year, count+1), nil
}

const interventionColumns = `id, mission_id, technician_id, scheduled_at, status, report, created_at, updated_at`

func scanIntervention(row pgx.Row) (mission.Intervention, error) {
	var iv mission.Intervention
	err := row.Scan(
		&iv.ID,
		&iv.MissionID,
		&iv.TechnicianID,
		&iv.ScheduledAt,
		&iv.Status,
		&iv.Report,
		&iv.CreatedAt,
		&iv.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return mission.Intervention{}, mission.ErrInterventionNotFound
	}
	if err != nil {
		return mission.Intervention{}, err
	}
	return iv, nil
}

func (r *missionRepositoryImpl) loadMaterials(ctx context.Context, interventionID string) ([]mission.MaterialUsage, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT material_id, quantity FROM intervention_materials WHERE intervention_id = $1 ORDER BY material_id`,
		interventionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []mission.MaterialUsage
	for rows.Next() {
		var u mission.MaterialUsage
		if err := rows.Scan(&u.MaterialID, &u.Quantity); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}

// CreateIntervention implements mission.MissionRepository.
func (r *missionRepositoryImpl) CreateIntervention(ctx context.Context, iv mission.Intervention) (mission.Intervention, error) {
	var created mission.Intervention
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO interventions (id, mission_id, technician_id, scheduled_at, status, report, created_at, updated_at)
			VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING ` + interventionColumns

		var err error
		created, err = scanIntervention(q.QueryRow(txCtx, query,
			iv.MissionID, iv.TechnicianID, iv.ScheduledAt, string(iv.Status), iv.Report))
		if err != nil {
			return err
		}

		for _, u := range iv.Materials {
			if _, err := q.Exec(txCtx,
				`INSERT INTO intervention_materials (intervention_id, material_id, quantity) VALUES ($1, $2, $3)`,
				created.ID, u.MaterialID, u.Quantity); err != nil {
				return err
			}
		}
		created.Materials = iv.Materials
		return nil
	})
	if err != nil {
		return mission.Intervention{}, err
	}
	return created, nil
}

// GetIntervention implements mission.MissionRepository.
func (r *missionRepositoryImpl) GetIntervention(ctx context.Context, id string) (mission.Intervention, error) {
	q := GetQuerier(ctx, r.db)

	iv, err := scanIntervention(q.QueryRow(ctx,
		`SELECT `+interventionColumns+` FROM interventions WHERE id = $1`, id))
	if err != nil {
		return mission.Intervention{}, err
	}

	materials, err := r.loadMaterials(ctx, id)
	if err != nil {
		return mission.Intervention{}, err
	}
	iv.Materials = materials
	return iv, nil
}

// ListInterventions implements mission.MissionRepository.
func (r *missionRepositoryImpl) ListInterventions(ctx context.Context, missionID string) ([]mission.Intervention, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+interventionColumns+` FROM interventions WHERE mission_id = $1 ORDER BY scheduled_at ASC`,
		missionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interventions []mission.Intervention
	for rows.Next() {
		iv, err := scanIntervention(rows)
		if err != nil {
			return nil, err
		}
		interventions = append(interventions, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range interventions {
		materials, err := r.loadMaterials(ctx, interventions[i].ID)
		if err != nil {
			return nil, err
		}
		interventions[i].Materials = materials
	}
	return interventions, nil
}

// UpdateIntervention implements mission.MissionRepository. Only scheduled
// interventions can change; done or cancelled ones hit zero rows.
func (r *missionRepositoryImpl) UpdateIntervention(ctx context.Context, iv mission.Intervention) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE interventions SET status = $1, report = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4`,
		string(iv.Status), iv.Report, iv.ID, string(mission.InterventionScheduled))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mission.ErrInterventionProcessed
	}
	return nil
}

// TechnicianBusy implements mission.MissionRepository. A technician with a
// scheduled intervention on the same day is busy.
func (r *missionRepositoryImpl) TechnicianBusy(ctx context.Context, technicianID string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var busy bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM interventions
			WHERE technician_id = $1 AND status = $2 AND scheduled_at::date = $3::date
		)`,
		technicianID, string(mission.InterventionScheduled), at).Scan(&busy)
	if err != nil {
		return false, err
	}
	return busy, nil
}
