package quote

import (
	"github.com/gestionpro/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type QuoteItemRequest struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type CreateQuoteRequest struct {
	CustomerID string             `json:"customer_id"`
	Subject    string             `json:"subject"`
	Notes      *string            `json:"notes,omitempty"`
	ValidUntil string             `json:"valid_until"`
	Items      []QuoteItemRequest `json:"items"`
}

func validateItems(items []QuoteItemRequest, errs validator.ValidationErrors) validator.ValidationErrors {
	if len(items) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "items",
			Message: "at least one line item is required",
		})
		return errs
	}
	for _, item := range items {
		if validator.IsEmpty(item.Description) {
			errs = append(errs, validator.ValidationError{
				Field:   "items",
				Message: "item description is required",
			})
		}
		if qty, err := decimal.NewFromString(item.Quantity); err != nil || !qty.IsPositive() {
			errs = append(errs, validator.ValidationError{
				Field:   "items",
				Message: "item quantity must be a positive number",
			})
		}
		if price, err := decimal.NewFromString(item.UnitPrice); err != nil || price.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "items",
				Message: "item unit_price must be a non-negative number",
			})
		}
	}
	return errs
}

func (r *CreateQuoteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CustomerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "customer_id",
			Message: "customer_id is required",
		})
	} else if !validator.IsValidUUID(r.CustomerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "customer_id",
			Message: "customer_id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject is required",
		})
	} else if len(r.Subject) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject must not exceed 255 characters",
		})
	}

	if _, ok := validator.IsValidDate(r.ValidUntil); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "valid_until",
			Message: "valid_until must be a date in YYYY-MM-DD format",
		})
	}

	errs = validateItems(r.Items, errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateQuoteRequest replaces quote content. Accepted only while DRAFT.
type UpdateQuoteRequest struct {
	ID         string             `json:"-"`
	Subject    *string            `json:"subject,omitempty"`
	Notes      *string            `json:"notes,omitempty"`
	ValidUntil *string            `json:"valid_until,omitempty"`
	Items      []QuoteItemRequest `json:"items,omitempty"`
}

func (r *UpdateQuoteRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Subject != nil && validator.IsEmpty(*r.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject must not be empty",
		})
	}
	if r.ValidUntil != nil {
		if _, ok := validator.IsValidDate(*r.ValidUntil); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "valid_until",
				Message: "valid_until must be a date in YYYY-MM-DD format",
			})
		}
	}
	if r.Items != nil {
		errs = validateItems(r.Items, errs)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TransitionRequest carries the optional reason attached to an approval or
// rejection.
type TransitionRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ClientDecisionRequest records the customer's answer on a DG-approved quote.
type ClientDecisionRequest struct {
	Accepted bool    `json:"accepted"`
	Reason   *string `json:"reason,omitempty"`
}

type ListQuotesRequest struct {
	Page       int
	Limit      int
	Search     string
	Status     *string
	CustomerID *string
}

type QuoteItemResponse struct {
	ID          string `json:"id"`
	Position    int    `json:"position"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type QuoteResponse struct {
	ID               string              `json:"id"`
	Number           string              `json:"number"`
	CustomerID       string              `json:"customer_id"`
	AuthorID         string              `json:"author_id"`
	Subject          string              `json:"subject"`
	Notes            *string             `json:"notes,omitempty"`
	Status           string              `json:"status"`
	Items            []QuoteItemResponse `json:"items,omitempty"`
	TotalAmount      string              `json:"total_amount"`
	ValidUntil       string              `json:"valid_until"`
	AvailableActions []string            `json:"available_actions"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
}

func ToResponse(q Quote) QuoteResponse {
	items := make([]QuoteItemResponse, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, QuoteItemResponse{
			ID:          item.ID,
			Position:    item.Position,
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   item.UnitPrice.String(),
			LineTotal:   item.LineTotal.String(),
		})
	}

	actions := make([]string, 0)
	for _, a := range AvailableActions(q.Status) {
		actions = append(actions, string(a))
	}

	return QuoteResponse{
		ID:               q.ID,
		Number:           q.Number,
		CustomerID:       q.CustomerID,
		AuthorID:         q.AuthorID,
		Subject:          q.Subject,
		Notes:            q.Notes,
		Status:           string(q.Status),
		Items:            items,
		TotalAmount:      q.TotalAmount.String(),
		ValidUntil:       q.ValidUntil.Format("2006-01-02"),
		AvailableActions: actions,
		CreatedAt:        q.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:        q.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type StatusChangeResponse struct {
	ID         string  `json:"id"`
	Action     string  `json:"action"`
	FromStatus string  `json:"from_status"`
	ToStatus   string  `json:"to_status"`
	ActorID    *string `json:"actor_id,omitempty"`
	Reason     *string `json:"reason,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func ToStatusChangeResponse(c StatusChange) StatusChangeResponse {
	return StatusChangeResponse{
		ID:         c.ID,
		Action:     string(c.Action),
		FromStatus: string(c.FromStatus),
		ToStatus:   string(c.ToStatus),
		ActorID:    c.ActorID,
		Reason:     c.Reason,
		CreatedAt:  c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
