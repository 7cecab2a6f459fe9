package mission

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPlanned    Status = "PLANNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

type Mission struct {
	ID          string
	Reference   string
	CustomerID  string
	QuoteID     *string
	Title       string
	Description *string
	Status      Status
	StartDate   time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type InterventionStatus string

const (
	InterventionScheduled InterventionStatus = "SCHEDULED"
	InterventionDone      InterventionStatus = "DONE"
	InterventionCancelled InterventionStatus = "CANCELLED"
)

type Intervention struct {
	ID           string
	MissionID    string
	TechnicianID string
	ScheduledAt  time.Time
	Status       InterventionStatus
	Report       *string
	Materials    []MaterialUsage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MaterialUsage is a planned quantity of one material for an intervention.
// Stock is checked at scheduling and deducted at completion.
type MaterialUsage struct {
	MaterialID string
	Quantity   decimal.Decimal
}
