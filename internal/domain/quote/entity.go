package quote

import (
	"time"

	"github.com/shopspring/decimal"
)

type Quote struct {
	ID          string
	Number      string
	CustomerID  string
	AuthorID    string
	Subject     string
	Notes       *string
	Status      Status
	Items       []QuoteItem
	TotalAmount decimal.Decimal
	ValidUntil  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type QuoteItem struct {
	ID          string
	QuoteID     string
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// StatusChange records one lifecycle transition for audit.
type StatusChange struct {
	ID         string
	QuoteID    string
	Action     Action
	FromStatus Status
	ToStatus   Status
	ActorID    *string
	Reason     *string
	CreatedAt  time.Time
}

// IsEditable reports whether line items and amounts may still change.
// Everything after DRAFT is a read-only snapshot.
func (q *Quote) IsEditable() bool {
	return q.Status == StatusDraft
}

// IsExpiredAt reports whether the validity date has elapsed while the quote
// sits in a non-terminal state.
func (q *Quote) IsExpiredAt(now time.Time) bool {
	return !IsTerminal(q.Status) && now.After(q.ValidUntil)
}

// ComputeTotals recalculates line totals and the quote total from quantities
// and unit prices.
func (q *Quote) ComputeTotals() {
	total := decimal.Zero
	for i := range q.Items {
		q.Items[i].LineTotal = q.Items[i].Quantity.Mul(q.Items[i].UnitPrice)
		total = total.Add(q.Items[i].LineTotal)
	}
	q.TotalAmount = total
}
