package mission

import (
	"context"
	"testing"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/customer"
	"github.com/gestionpro/erp-backend-go/internal/domain/employee"
	"github.com/gestionpro/erp-backend-go/internal/domain/material"
	"github.com/gestionpro/erp-backend-go/internal/domain/mission"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMissionRepo struct {
	missions      map[string]mission.Mission
	interventions map[string]mission.Intervention
	nextID        int
}

func newFakeMissionRepo() *fakeMissionRepo {
	return &fakeMissionRepo{
		missions:      map[string]mission.Mission{},
		interventions: map[string]mission.Intervention{},
	}
}

func (f *fakeMissionRepo) Create(_ context.Context, m mission.Mission) (mission.Mission, error) {
	f.nextID++
	m.ID = string(rune('a' + f.nextID))
	f.missions[m.ID] = m
	return m, nil
}

func (f *fakeMissionRepo) GetByID(_ context.Context, id string) (mission.Mission, error) {
	m, ok := f.missions[id]
	if !ok {
		return mission.Mission{}, mission.ErrMissionNotFound
	}
	return m, nil
}

func (f *fakeMissionRepo) List(_ context.Context, _ mission.ListMissionsRequest) ([]mission.Mission, int64, error) {
	return nil, 0, nil
}

func (f *fakeMissionRepo) Update(_ context.Context, _ mission.UpdateMissionRequest) error {
	return nil
}

func (f *fakeMissionRepo) NextReference(_ context.Context, _ int) (string, error) {
	return "M-2026-0001", nil
}

func (f *fakeMissionRepo) CreateIntervention(_ context.Context, iv mission.Intervention) (mission.Intervention, error) {
	f.nextID++
	iv.ID = string(rune('A' + f.nextID))
	f.interventions[iv.ID] = iv
	return iv, nil
}

func (f *fakeMissionRepo) GetIntervention(_ context.Context, id string) (mission.Intervention, error) {
	iv, ok := f.interventions[id]
	if !ok {
		return mission.Intervention{}, mission.ErrInterventionNotFound
	}
	return iv, nil
}

func (f *fakeMissionRepo) ListInterventions(_ context.Context, missionID string) ([]mission.Intervention, error) {
	var out []mission.Intervention
	for _, iv := range f.interventions {
		if iv.MissionID == missionID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeMissionRepo) UpdateIntervention(_ context.Context, iv mission.Intervention) error {
	stored, ok := f.interventions[iv.ID]
	if !ok || stored.Status != mission.InterventionScheduled {
		return mission.ErrInterventionProcessed
	}
	f.interventions[iv.ID] = iv
	return nil
}

func (f *fakeMissionRepo) TechnicianBusy(_ context.Context, technicianID string, at time.Time) (bool, error) {
	for _, iv := range f.interventions {
		if iv.TechnicianID == technicianID && iv.Status == mission.InterventionScheduled &&
			iv.ScheduledAt.Format("2006-01-02") == at.Format("2006-01-02") {
			return true, nil
		}
	}
	return false, nil
}

type fakeCustomerRepo struct{}

func (fakeCustomerRepo) Create(_ context.Context, c customer.Customer) (customer.Customer, error) {
	return c, nil
}

func (fakeCustomerRepo) GetByID(_ context.Context, id string) (customer.Customer, error) {
	return customer.Customer{ID: id}, nil
}

func (fakeCustomerRepo) List(_ context.Context, _ customer.ListCustomersRequest) ([]customer.Customer, int64, error) {
	return nil, 0, nil
}

func (fakeCustomerRepo) Update(_ context.Context, _ customer.UpdateCustomerRequest) (customer.Customer, error) {
	return customer.Customer{}, nil
}

func (fakeCustomerRepo) ConvertProspect(_ context.Context, _ string) (customer.Customer, error) {
	return customer.Customer{}, nil
}

func (fakeCustomerRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) { return false, nil }

func (fakeCustomerRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeEmployeeRepo struct{}

func (fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	return employee.Employee{ID: id, IsActive: true}, nil
}

func (fakeEmployeeRepo) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (fakeEmployeeRepo) List(_ context.Context, _ employee.ListEmployeesRequest) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (fakeEmployeeRepo) Update(_ context.Context, _ employee.UpdateEmployeeRequest) error { return nil }

func (fakeEmployeeRepo) SetActive(_ context.Context, _ string, _ bool) error { return nil }

func (fakeEmployeeRepo) ExistsByCode(_ context.Context, _ string) (bool, error) { return false, nil }

func (fakeEmployeeRepo) CreateContract(_ context.Context, c employee.Contract) (employee.Contract, error) {
	return c, nil
}

func (fakeEmployeeRepo) ListContracts(_ context.Context, _ string) ([]employee.Contract, error) {
	return nil, nil
}

type fakeMaterialRepo struct {
	materials map[string]material.Material
}

func (f *fakeMaterialRepo) Create(_ context.Context, m material.Material) (material.Material, error) {
	return m, nil
}

func (f *fakeMaterialRepo) GetByID(_ context.Context, id string) (material.Material, error) {
	m, ok := f.materials[id]
	if !ok {
		return material.Material{}, material.ErrMaterialNotFound
	}
	return m, nil
}

func (f *fakeMaterialRepo) List(_ context.Context, _ material.ListMaterialsRequest) ([]material.Material, int64, error) {
	return nil, 0, nil
}

func (f *fakeMaterialRepo) ExistsByReference(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakeMaterialRepo) AdjustStock(_ context.Context, materialID string, delta decimal.Decimal, _ string, _ *string) (material.Material, error) {
	m, ok := f.materials[materialID]
	if !ok {
		return material.Material{}, material.ErrMaterialNotFound
	}
	next := m.StockQty.Add(delta)
	if next.IsNegative() {
		return material.Material{}, material.ErrInsufficientStock
	}
	m.StockQty = next
	f.materials[materialID] = m
	return m, nil
}

func (f *fakeMaterialRepo) ListMovements(_ context.Context, _ string) ([]material.StockMovement, error) {
	return nil, nil
}

func newTestService(t *testing.T) (*MissionServiceImpl, *fakeMissionRepo, *fakeMaterialRepo) {
	t.Helper()
	missionRepo := newFakeMissionRepo()
	materialRepo := &fakeMaterialRepo{materials: map[string]material.Material{
		"mat-1": {ID: "mat-1", Reference: "CBL-01", StockQty: decimal.NewFromInt(10)},
	}}
	svc := NewMissionService(missionRepo, fakeCustomerRepo{}, fakeEmployeeRepo{}, materialRepo).(*MissionServiceImpl)
	return svc, missionRepo, materialRepo
}

func createMission(t *testing.T, svc *MissionServiceImpl) mission.Mission {
	t.Helper()
	m, err := svc.Create(context.Background(), mission.CreateMissionRequest{
		CustomerID: "0191d2a0-0000-7000-8000-0000000000aa",
		Title:      "Network rollout",
		StartDate:  time.Now().Format("2006-01-02"),
	})
	require.NoError(t, err)
	return m
}

func scheduleDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestScheduleInterventionChecksStockWithoutDeducting(t *testing.T) {
	svc, _, materials := newTestService(t)
	m := createMission(t, svc)

	iv, err := svc.ScheduleIntervention(context.Background(), mission.ScheduleInterventionRequest{
		MissionID:    m.ID,
		TechnicianID: "tech-1",
		ScheduledAt:  scheduleDate(),
		Materials:    []mission.MaterialUsageRequest{{MaterialID: "mat-1", Quantity: "4"}},
	})
	require.NoError(t, err)
	assert.Equal(t, mission.InterventionScheduled, iv.Status)

	// Scheduling reserves nothing; the depot still holds everything.
	assert.Equal(t, "10", materials.materials["mat-1"].StockQty.String())
}

func TestScheduleInterventionInsufficientStock(t *testing.T) {
	svc, _, _ := newTestService(t)
	m := createMission(t, svc)

	_, err := svc.ScheduleIntervention(context.Background(), mission.ScheduleInterventionRequest{
		MissionID:    m.ID,
		TechnicianID: "tech-1",
		ScheduledAt:  scheduleDate(),
		Materials:    []mission.MaterialUsageRequest{{MaterialID: "mat-1", Quantity: "11"}},
	})
	assert.ErrorIs(t, err, mission.ErrInsufficientStock)
}

func TestScheduleInterventionTechnicianDoubleBooked(t *testing.T) {
	svc, _, _ := newTestService(t)
	m := createMission(t, svc)
	date := scheduleDate()

	_, err := svc.ScheduleIntervention(context.Background(), mission.ScheduleInterventionRequest{
		MissionID:    m.ID,
		TechnicianID: "tech-1",
		ScheduledAt:  date,
	})
	require.NoError(t, err)

	_, err = svc.ScheduleIntervention(context.Background(), mission.ScheduleInterventionRequest{
		MissionID:    m.ID,
		TechnicianID: "tech-1",
		ScheduledAt:  date,
	})
	assert.ErrorIs(t, err, mission.ErrTechnicianUnavailable)
}

func TestCompleteInterventionDeductsStock(t *testing.T) {
	svc, _, materials := newTestService(t)
	m := createMission(t, svc)

	iv, err := svc.ScheduleIntervention(context.Background(), mission.ScheduleInterventionRequest{
		MissionID:    m.ID,
		TechnicianID: "tech-1",
		ScheduledAt:  scheduleDate(),
		Materials:    []mission.MaterialUsageRequest{{MaterialID: "mat-1", Quantity: "4"}},
	})
	require.NoError(t, err)

	report := "replaced faulty cabling"
	done, err := svc.CompleteIntervention(context.Background(), mission.CompleteInterventionRequest{
		InterventionID: iv.ID,
		Report:         &report,
	})
	require.NoError(t, err)
	assert.Equal(t, mission.InterventionDone, done.Status)
	assert.Equal(t, "6", materials.materials["mat-1"].StockQty.String())

	// A second completion is refused and deducts nothing more.
	_, err = svc.CompleteIntervention(context.Background(), mission.CompleteInterventionRequest{InterventionID: iv.ID})
	assert.ErrorIs(t, err, mission.ErrInterventionProcessed)
	assert.Equal(t, "6", materials.materials["mat-1"].StockQty.String())
}

func TestCancelInterventionLeavesStockAlone(t *testing.T) {
	svc, _, materials := newTestService(t)
	m := createMission(t, svc)

	iv, err := svc.ScheduleIntervention(context.Background(), mission.ScheduleInterventionRequest{
		MissionID:    m.ID,
		TechnicianID: "tech-1",
		ScheduledAt:  scheduleDate(),
		Materials:    []mission.MaterialUsageRequest{{MaterialID: "mat-1", Quantity: "4"}},
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelIntervention(context.Background(), iv.ID)
	require.NoError(t, err)
	assert.Equal(t, mission.InterventionCancelled, cancelled.Status)
	assert.Equal(t, "10", materials.materials["mat-1"].StockQty.String())
}

func TestScheduleOnInactiveMission(t *testing.T) {
	svc, repo, _ := newTestService(t)
	m := createMission(t, svc)

	stored := repo.missions[m.ID]
	stored.Status = mission.StatusCancelled
	repo.missions[m.ID] = stored

	_, err := svc.ScheduleIntervention(context.Background(), mission.ScheduleInterventionRequest{
		MissionID:    m.ID,
		TechnicianID: "tech-1",
		ScheduledAt:  scheduleDate(),
	})
	assert.ErrorIs(t, err, mission.ErrMissionNotActive)
}
