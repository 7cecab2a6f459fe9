package mission

import (
	"context"
	"time"
)

type MissionRepository interface {
	Create(ctx context.Context, m Mission) (Mission, error)
	GetByID(ctx context.Context, id string) (Mission, error)
	List(ctx context.Context, req ListMissionsRequest) ([]Mission, int64, error)
	Update(ctx context.Context, req UpdateMissionRequest) error
	NextReference(ctx context.Context, year int) (string, error)

	CreateIntervention(ctx context.Context, iv Intervention) (Intervention, error)
	GetIntervention(ctx context.Context, id string) (Intervention, error)
	ListInterventions(ctx context.Context, missionID string) ([]Intervention, error)
	UpdateIntervention(ctx context.Context, iv Intervention) error
	TechnicianBusy(ctx context.Context, technicianID string, at time.Time) (bool, error)
}

type MissionService interface {
	Create(ctx context.Context, req CreateMissionRequest) (Mission, error)
	GetByID(ctx context.Context, id string) (Mission, error)
	List(ctx context.Context, req ListMissionsRequest) ([]Mission, int64, error)
	Update(ctx context.Context, req UpdateMissionRequest) error

	ScheduleIntervention(ctx context.Context, req ScheduleInterventionRequest) (Intervention, error)
	CompleteIntervention(ctx context.Context, req CompleteInterventionRequest) (Intervention, error)
	CancelIntervention(ctx context.Context, interventionID string) (Intervention, error)
	Interventions(ctx context.Context, missionID string) ([]Intervention, error)
}
