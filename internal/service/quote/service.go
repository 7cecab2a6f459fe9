package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/customer"
	"github.com/gestionpro/erp-backend-go/internal/domain/quote"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
	"github.com/shopspring/decimal"
)

type QuoteServiceImpl struct {
	quoteRepo    quote.QuoteRepository
	customerRepo customer.CustomerRepository

	// now is swappable so validity-window behavior is testable.
	now func() time.Time
}

func NewQuoteService(quoteRepo quote.QuoteRepository, customerRepo customer.CustomerRepository) quote.QuoteService {
	return &QuoteServiceImpl{
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

func buildItems(reqs []quote.QuoteItemRequest) ([]quote.QuoteItem, error) {
	items := make([]quote.QuoteItem, 0, len(reqs))
	for i, r := range reqs {
		qty, err := decimal.NewFromString(r.Quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity on item %d: %w", i+1, err)
		}
		price, err := decimal.NewFromString(r.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_price on item %d: %w", i+1, err)
		}
		items = append(items, quote.QuoteItem{
			Position:    i + 1,
			Description: r.Description,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return items, nil
}

// Create implements quote.QuoteService.
func (s *QuoteServiceImpl) Create(ctx context.Context, authorID string, req quote.CreateQuoteRequest) (quote.Quote, error) {
	if err := req.Validate(); err != nil {
		return quote.Quote{}, err
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return quote.Quote{}, err
	}

	validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
	if err != nil {
		return quote.Quote{}, err
	}
	if !validUntil.After(s.now()) {
		return quote.Quote{}, quote.ErrValidUntilPast
	}

	items, err := buildItems(req.Items)
	if err != nil {
		return quote.Quote{}, err
	}

	number, err := s.quoteRepo.NextNumber(ctx, s.now().Year())
	if err != nil {
		return quote.Quote{}, fmt.Errorf("failed to allocate quote number: %w", err)
	}

	newQuote := quote.Quote{
		Number:     number,
		CustomerID: req.CustomerID,
		AuthorID:   authorID,
		Subject:    req.Subject,
		Notes:      req.Notes,
		Status:     quote.StatusDraft,
		Items:      items,
		ValidUntil: validUntil,
	}
	newQuote.ComputeTotals()

	return s.quoteRepo.Create(ctx, newQuote)
}

// GetByID implements quote.QuoteService. Reads past the validity date settle
// the quote into EXPIRED before returning, so callers never see a stale
// actionable status.
func (s *QuoteServiceImpl) GetByID(ctx context.Context, id string) (quote.Quote, error) {
	q, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return quote.Quote{}, err
	}
	return s.settleExpiry(ctx, q)
}

func (s *QuoteServiceImpl) settleExpiry(ctx context.Context, q quote.Quote) (quote.Quote, error) {
	if !q.IsExpiredAt(s.now()) {
		return q, nil
	}

	err := s.quoteRepo.UpdateStatus(ctx, quote.UpdateStatusRequest{
		ID:         q.ID,
		FromStatus: q.Status,
		ToStatus:   quote.StatusExpired,
		Action:     quote.ActionExpire,
	})
	if err != nil && !errors.Is(err, quote.ErrQuoteAlreadyMoved) {
		return quote.Quote{}, fmt.Errorf("failed to expire quote: %w", err)
	}
	// Someone else moved it first; either way the stored row is current.
	return s.quoteRepo.GetByID(ctx, q.ID)
}

// List implements quote.QuoteService.
func (s *QuoteServiceImpl) List(ctx context.Context, req quote.ListQuotesRequest) ([]quote.Quote, int64, error) {
	return s.quoteRepo.List(ctx, req)
}

// UpdateContent implements quote.QuoteService.
func (s *QuoteServiceImpl) UpdateContent(ctx context.Context, req quote.UpdateQuoteRequest) (quote.Quote, error) {
	if err := req.Validate(); err != nil {
		return quote.Quote{}, err
	}

	q, err := s.quoteRepo.GetByID(ctx, req.ID)
	if err != nil {
		return quote.Quote{}, err
	}
	if !q.IsEditable() {
		return quote.Quote{}, quote.ErrQuoteNotEditable
	}

	if req.Subject != nil {
		q.Subject = *req.Subject
	}
	if req.Notes != nil {
		q.Notes = req.Notes
	}
	if req.ValidUntil != nil {
		validUntil, err := time.Parse("2006-01-02", *req.ValidUntil)
		if err != nil {
			return quote.Quote{}, err
		}
		if !validUntil.After(s.now()) {
			return quote.Quote{}, quote.ErrValidUntilPast
		}
		q.ValidUntil = validUntil
	}
	if req.Items != nil {
		items, err := buildItems(req.Items)
		if err != nil {
			return quote.Quote{}, err
		}
		q.Items = items
	}
	q.ComputeTotals()

	return s.quoteRepo.UpdateContent(ctx, q)
}

// Transition implements quote.QuoteService. Legality is decided from the
// stored status, then the caller's permission, in that order; the repository
// re-checks the from-status so a concurrent transition cannot double-apply.
func (s *QuoteServiceImpl) Transition(ctx context.Context, quoteID string, action quote.Action, req quote.TransitionRequest) (quote.Quote, error) {
	q, err := s.GetByID(ctx, quoteID)
	if err != nil {
		return quote.Quote{}, err
	}

	to, required, err := quote.Next(q.Status, action)
	if err != nil {
		return quote.Quote{}, err
	}
	if !authctx.HasPermission(ctx, required) {
		return quote.Quote{}, quote.ErrTransitionForbidden
	}

	var actorID *string
	if session, ok := authctx.FromContext(ctx); ok {
		actorID = &session.UserID
	}

	err = s.quoteRepo.UpdateStatus(ctx, quote.UpdateStatusRequest{
		ID:         q.ID,
		FromStatus: q.Status,
		ToStatus:   to,
		Action:     action,
		ActorID:    actorID,
		Reason:     req.Reason,
	})
	if err != nil {
		return quote.Quote{}, err
	}

	slog.InfoContext(ctx, "quote transitioned",
		slog.String("quote_id", q.ID),
		slog.String("action", string(action)),
		slog.String("from", string(q.Status)),
		slog.String("to", string(to)),
	)

	return s.quoteRepo.GetByID(ctx, q.ID)
}

// RecordClientDecision implements quote.QuoteService. The decision is entered
// by staff on the client's behalf; clients have no account here.
func (s *QuoteServiceImpl) RecordClientDecision(ctx context.Context, quoteID string, req quote.ClientDecisionRequest) (quote.Quote, error) {
	action := quote.ActionClientReject
	if req.Accepted {
		action = quote.ActionClientAccept
	}
	return s.Transition(ctx, quoteID, action, quote.TransitionRequest{Reason: req.Reason})
}

// History implements quote.QuoteService.
func (s *QuoteServiceImpl) History(ctx context.Context, quoteID string) ([]quote.StatusChange, error) {
	if _, err := s.quoteRepo.GetByID(ctx, quoteID); err != nil {
		return nil, err
	}
	return s.quoteRepo.ListStatusChanges(ctx, quoteID)
}

// ExpireDue implements quote.QuoteService. Called by the scheduler; lazy
// expiry on read covers the window between sweeps.
func (s *QuoteServiceImpl) ExpireDue(ctx context.Context) (int64, error) {
	return s.quoteRepo.ExpireDue(ctx, s.now())
}
