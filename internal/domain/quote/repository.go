package quote

import (
	"context"
	"time"
)

// UpdateStatusRequest moves a quote between statuses. FromStatus is a guard:
// the repository must refuse the update when the stored status no longer
// matches, so a transition decided on stale state cannot apply.
type UpdateStatusRequest struct {
	ID         string
	FromStatus Status
	ToStatus   Status
	Action     Action
	ActorID    *string
	Reason     *string
}

type QuoteRepository interface {
	Create(ctx context.Context, q Quote) (Quote, error)
	GetByID(ctx context.Context, id string) (Quote, error)
	List(ctx context.Context, req ListQuotesRequest) ([]Quote, int64, error)
	UpdateContent(ctx context.Context, q Quote) (Quote, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) error
	ListStatusChanges(ctx context.Context, quoteID string) ([]StatusChange, error)

	// ExpireDue marks every non-terminal quote whose validity date has
	// elapsed as EXPIRED and returns how many were moved.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	NextNumber(ctx context.Context, year int) (string, error)
}

// QuoteService is the single choke point for quote mutations; handlers never
// touch statuses directly.
type QuoteService interface {
	Create(ctx context.Context, authorID string, req CreateQuoteRequest) (Quote, error)
	GetByID(ctx context.Context, id string) (Quote, error)
	List(ctx context.Context, req ListQuotesRequest) ([]Quote, int64, error)
	UpdateContent(ctx context.Context, req UpdateQuoteRequest) (Quote, error)
	Transition(ctx context.Context, quoteID string, action Action, req TransitionRequest) (Quote, error)
	RecordClientDecision(ctx context.Context, quoteID string, req ClientDecisionRequest) (Quote, error)
	History(ctx context.Context, quoteID string) ([]StatusChange, error)
	ExpireDue(ctx context.Context) (int64, error)
}
