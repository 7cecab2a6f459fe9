package mission

import (
	"github.com/gestionpro/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateMissionRequest struct {
	CustomerID  string  `json:"customer_id"`
	QuoteID     *string `json:"quote_id,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StartDate   string  `json:"start_date"`
}

func (r *CreateMissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CustomerID) {
		errs = append(errs, validator.ValidationError{Field: "customer_id", Message: "customer_id is required"})
	} else if !validator.IsValidUUID(r.CustomerID) {
		errs = append(errs, validator.ValidationError{Field: "customer_id", Message: "customer_id must be a valid UUID"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be a date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateMissionRequest struct {
	ID          string  `json:"-"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

func (r *UpdateMissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil {
		switch Status(*r.Status) {
		case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		default:
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of PLANNED, IN_PROGRESS, COMPLETED, CANCELLED"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be a date in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MaterialUsageRequest struct {
	MaterialID string `json:"material_id"`
	Quantity   string `json:"quantity"`
}

type ScheduleInterventionRequest struct {
	MissionID    string                 `json:"-"`
	TechnicianID string                 `json:"technician_id"`
	ScheduledAt  string                 `json:"scheduled_at"`
	Materials    []MaterialUsageRequest `json:"materials,omitempty"`
}

func (r *ScheduleInterventionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TechnicianID) {
		errs = append(errs, validator.ValidationError{Field: "technician_id", Message: "technician_id is required"})
	}
	if _, ok := validator.IsValidDate(r.ScheduledAt); !ok {
		errs = append(errs, validator.ValidationError{Field: "scheduled_at", Message: "scheduled_at must be a date in YYYY-MM-DD format"})
	}
	for _, m := range r.Materials {
		if validator.IsEmpty(m.MaterialID) {
			errs = append(errs, validator.ValidationError{Field: "materials", Message: "material_id is required"})
		}
		if qty, err := decimal.NewFromString(m.Quantity); err != nil || !qty.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: "materials", Message: "material quantity must be a positive number"})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CompleteInterventionRequest struct {
	InterventionID string  `json:"-"`
	Report         *string `json:"report,omitempty"`
}

type ListMissionsRequest struct {
	Page       int
	Limit      int
	Search     string
	Status     *string
	CustomerID *string
}

type MissionResponse struct {
	ID          string  `json:"id"`
	Reference   string  `json:"reference"`
	CustomerID  string  `json:"customer_id"`
	QuoteID     *string `json:"quote_id,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

func ToResponse(m Mission) MissionResponse {
	var endDate *string
	if m.EndDate != nil {
		s := m.EndDate.Format("2006-01-02")
		endDate = &s
	}
	return MissionResponse{
		ID:          m.ID,
		Reference:   m.Reference,
		CustomerID:  m.CustomerID,
		QuoteID:     m.QuoteID,
		Title:       m.Title,
		Description: m.Description,
		Status:      string(m.Status),
		StartDate:   m.StartDate.Format("2006-01-02"),
		EndDate:     endDate,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type MaterialUsageResponse struct {
	MaterialID string `json:"material_id"`
	Quantity   string `json:"quantity"`
}

type InterventionResponse struct {
	ID           string                  `json:"id"`
	MissionID    string                  `json:"mission_id"`
	TechnicianID string                  `json:"technician_id"`
	ScheduledAt  string                  `json:"scheduled_at"`
	Status       string                  `json:"status"`
	Report       *string                 `json:"report,omitempty"`
	Materials    []MaterialUsageResponse `json:"materials,omitempty"`
}

func ToInterventionResponse(iv Intervention) InterventionResponse {
	materials := make([]MaterialUsageResponse, 0, len(iv.Materials))
	for _, u := range iv.Materials {
		materials = append(materials, MaterialUsageResponse{
			MaterialID: u.MaterialID,
			Quantity:   u.Quantity.String(),
		})
	}
	return InterventionResponse{
		ID:           iv.ID,
		MissionID:    iv.MissionID,
		TechnicianID: iv.TechnicianID,
		ScheduledAt:  iv.ScheduledAt.Format("2006-01-02"),
		Status:       string(iv.Status),
		Report:       iv.Report,
		Materials:    materials,
	}
}
