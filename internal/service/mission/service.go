package mission

import (
	"context"
	"fmt"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/customer"
	"github.com/gestionpro/erp-backend-go/internal/domain/employee"
	"github.com/gestionpro/erp-backend-go/internal/domain/material"
	"github.com/gestionpro/erp-backend-go/internal/domain/mission"
	"github.com/shopspring/decimal"
)

type MissionServiceImpl struct {
	missionRepo  mission.MissionRepository
	customerRepo customer.CustomerRepository
	employeeRepo employee.EmployeeRepository
	materialRepo material.MaterialRepository

	now func() time.Time
}

func NewMissionService(
	missionRepo mission.MissionRepository,
	customerRepo customer.CustomerRepository,
	employeeRepo employee.EmployeeRepository,
	materialRepo material.MaterialRepository,
) mission.MissionService {
	return &MissionServiceImpl{
		missionRepo:  missionRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		materialRepo: materialRepo,
		now:          time.Now,
	}
}

// Create implements mission.MissionService.
func (s *MissionServiceImpl) Create(ctx context.Context, req mission.CreateMissionRequest) (mission.Mission, error) {
	if err := req.Validate(); err != nil {
		return mission.Mission{}, err
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return mission.Mission{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return mission.Mission{}, err
	}

	reference, err := s.missionRepo.NextReference(ctx, s.now().Year())
	if err != nil {
		return mission.Mission{}, fmt.Errorf("failed to allocate mission reference: %w", err)
	}

	return s.missionRepo.Create(ctx, mission.Mission{
		Reference:   reference,
		CustomerID:  req.CustomerID,
		QuoteID:     req.QuoteID,
		Title:       req.Title,
		Description: req.Description,
		Status:      mission.StatusPlanned,
		StartDate:   startDate,
	})
}

// GetByID implements mission.MissionService.
func (s *MissionServiceImpl) GetByID(ctx context.Context, id string) (mission.Mission, error) {
	return s.missionRepo.GetByID(ctx, id)
}

// List implements mission.MissionService.
func (s *MissionServiceImpl) List(ctx context.Context, req mission.ListMissionsRequest) ([]mission.Mission, int64, error) {
	return s.missionRepo.List(ctx, req)
}

// Update implements mission.MissionService.
func (s *MissionServiceImpl) Update(ctx context.Context, req mission.UpdateMissionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.missionRepo.Update(ctx, req)
}

// ScheduleIntervention implements mission.MissionService. Stock is checked at
// scheduling so the planner learns about shortages immediately, but deducted
// only at completion, when the material actually leaves the depot.
func (s *MissionServiceImpl) ScheduleIntervention(ctx context.Context, req mission.ScheduleInterventionRequest) (mission.Intervention, error) {
	if err := req.Validate(); err != nil {
		return mission.Intervention{}, err
	}

	m, err := s.missionRepo.GetByID(ctx, req.MissionID)
	if err != nil {
		return mission.Intervention{}, err
	}
	if m.Status == mission.StatusCompleted || m.Status == mission.StatusCancelled {
		return mission.Intervention{}, mission.ErrMissionNotActive
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.TechnicianID); err != nil {
		return mission.Intervention{}, mission.ErrTechnicianNotFound
	}

	scheduledAt, err := time.Parse("2006-01-02", req.ScheduledAt)
	if err != nil {
		return mission.Intervention{}, err
	}

	busy, err := s.missionRepo.TechnicianBusy(ctx, req.TechnicianID, scheduledAt)
	if err != nil {
		return mission.Intervention{}, fmt.Errorf("failed to check technician availability: %w", err)
	}
	if busy {
		return mission.Intervention{}, mission.ErrTechnicianUnavailable
	}

	usages := make([]mission.MaterialUsage, 0, len(req.Materials))
	for _, mr := range req.Materials {
		qty, err := decimal.NewFromString(mr.Quantity)
		if err != nil {
			return mission.Intervention{}, err
		}

		mat, err := s.materialRepo.GetByID(ctx, mr.MaterialID)
		if err != nil {
			return mission.Intervention{}, err
		}
		if mat.StockQty.LessThan(qty) {
			return mission.Intervention{}, mission.ErrInsufficientStock
		}

		usages = append(usages, mission.MaterialUsage{
			MaterialID: mr.MaterialID,
			Quantity:   qty,
		})
	}

	return s.missionRepo.CreateIntervention(ctx, mission.Intervention{
		MissionID:    m.ID,
		TechnicianID: req.TechnicianID,
		ScheduledAt:  scheduledAt,
		Status:       mission.InterventionScheduled,
		Materials:    usages,
	})
}

// CompleteIntervention implements mission.MissionService. Completion deducts
// the planned materials; a shortage discovered here aborts the completion.
func (s *MissionServiceImpl) CompleteIntervention(ctx context.Context, req mission.CompleteInterventionRequest) (mission.Intervention, error) {
	iv, err := s.missionRepo.GetIntervention(ctx, req.InterventionID)
	if err != nil {
		return mission.Intervention{}, err
	}
	if iv.Status != mission.InterventionScheduled {
		return mission.Intervention{}, mission.ErrInterventionProcessed
	}

	for _, u := range iv.Materials {
		reason := fmt.Sprintf("intervention %s", iv.ID)
		if _, err := s.materialRepo.AdjustStock(ctx, u.MaterialID, u.Quantity.Neg(), reason, &iv.TechnicianID); err != nil {
			return mission.Intervention{}, err
		}
	}

	iv.Status = mission.InterventionDone
	iv.Report = req.Report
	if err := s.missionRepo.UpdateIntervention(ctx, iv); err != nil {
		return mission.Intervention{}, err
	}
	return iv, nil
}

// CancelIntervention implements mission.MissionService. Cancelling releases
// the planned materials without any stock movement.
func (s *MissionServiceImpl) CancelIntervention(ctx context.Context, interventionID string) (mission.Intervention, error) {
	iv, err := s.missionRepo.GetIntervention(ctx, interventionID)
	if err != nil {
		return mission.Intervention{}, err
	}
	if iv.Status != mission.InterventionScheduled {
		return mission.Intervention{}, mission.ErrInterventionProcessed
	}

	iv.Status = mission.InterventionCancelled
	if err := s.missionRepo.UpdateIntervention(ctx, iv); err != nil {
		return mission.Intervention{}, err
	}
	return iv, nil
}

// Interventions implements mission.MissionService.
func (s *MissionServiceImpl) Interventions(ctx context.Context, missionID string) ([]mission.Intervention, error) {
	if _, err := s.missionRepo.GetByID(ctx, missionID); err != nil {
		return nil, err
	}
	return s.missionRepo.ListInterventions(ctx, missionID)
}
