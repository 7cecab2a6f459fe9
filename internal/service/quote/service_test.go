package quote

import (
	"context"
	"testing"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/customer"
	"github.com/gestionpro/erp-backend-go/internal/domain/quote"
	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuoteRepo struct {
	quotes  map[string]quote.Quote
	changes map[string][]quote.StatusChange
	nextID  int
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes:  map[string]quote.Quote{},
		changes: map[string][]quote.StatusChange{},
	}
}

func (f *fakeQuoteRepo) Create(_ context.Context, q quote.Quote) (quote.Quote, error) {
	f.nextID++
	q.ID = string(rune('a' + f.nextID))
	f.quotes[q.ID] = q
	return q, nil
}

func (f *fakeQuoteRepo) GetByID(_ context.Context, id string) (quote.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return quote.Quote{}, quote.ErrQuoteNotFound
	}
	return q, nil
}

func (f *fakeQuoteRepo) List(_ context.Context, _ quote.ListQuotesRequest) ([]quote.Quote, int64, error) {
	return nil, 0, nil
}

func (f *fakeQuoteRepo) UpdateContent(_ context.Context, q quote.Quote) (quote.Quote, error) {
	stored, ok := f.quotes[q.ID]
	if !ok || stored.Status != quote.StatusDraft {
		return quote.Quote{}, quote.ErrQuoteNotEditable
	}
	f.quotes[q.ID] = q
	return q, nil
}

func (f *fakeQuoteRepo) UpdateStatus(_ context.Context, req quote.UpdateStatusRequest) error {
	q, ok := f.quotes[req.ID]
	if !ok || q.Status != req.FromStatus {
		return quote.ErrQuoteAlreadyMoved
	}
	q.Status = req.ToStatus
	f.quotes[req.ID] = q
	f.changes[req.ID] = append(f.changes[req.ID], quote.StatusChange{
		QuoteID:    req.ID,
		Action:     req.Action,
		FromStatus: req.FromStatus,
		ToStatus:   req.ToStatus,
		ActorID:    req.ActorID,
		Reason:     req.Reason,
	})
	return nil
}

func (f *fakeQuoteRepo) ListStatusChanges(_ context.Context, quoteID string) ([]quote.StatusChange, error) {
	return f.changes[quoteID], nil
}

func (f *fakeQuoteRepo) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	var moved int64
	for id, q := range f.quotes {
		if q.IsExpiredAt(now) {
			q.Status = quote.StatusExpired
			f.quotes[id] = q
			moved++
		}
	}
	return moved, nil
}

func (f *fakeQuoteRepo) NextNumber(_ context.Context, year int) (string, error) {
	return "Q-2026-0001", nil
}

type fakeCustomerRepo struct {
	customers map[string]customer.Customer
}

func (f *fakeCustomerRepo) Create(_ context.Context, c customer.Customer) (customer.Customer, error) {
	return c, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return customer.Customer{}, customer.ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepo) List(_ context.Context, _ customer.ListCustomersRequest) ([]customer.Customer, int64, error) {
	return nil, 0, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, _ customer.UpdateCustomerRequest) (customer.Customer, error) {
	return customer.Customer{}, nil
}

func (f *fakeCustomerRepo) ConvertProspect(_ context.Context, _ string) (customer.Customer, error) {
	return customer.Customer{}, nil
}

func (f *fakeCustomerRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, _ string) error { return nil }

const customerID = "0191d2a0-0000-7000-8000-0000000000aa"

func newTestService(t *testing.T) (*QuoteServiceImpl, *fakeQuoteRepo) {
	t.Helper()
	quoteRepo := newFakeQuoteRepo()
	customerRepo := &fakeCustomerRepo{customers: map[string]customer.Customer{
		customerID: {ID: customerID, Name: "Acme"},
	}}
	svc := NewQuoteService(quoteRepo, customerRepo).(*QuoteServiceImpl)
	return svc, quoteRepo
}

func ctxWith(permissions ...user.Permission) context.Context {
	session := authctx.NewSession("0191d2a0-0000-7000-8000-000000000001", "u@example.com",
		user.RoleEmployee, nil, permissions)
	return authctx.WithSession(context.Background(), session)
}

func createDraft(t *testing.T, svc *QuoteServiceImpl) quote.Quote {
	t.Helper()
	q, err := svc.Create(context.Background(), "author-1", quote.CreateQuoteRequest{
		CustomerID: customerID,
		Subject:    "Annual maintenance",
		ValidUntil: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		Items: []quote.QuoteItemRequest{
			{Description: "Labor", Quantity: "10", UnitPrice: "50.00"},
			{Description: "Parts", Quantity: "2", UnitPrice: "125.50"},
		},
	})
	require.NoError(t, err)
	return q
}

func TestCreateComputesTotals(t *testing.T) {
	svc, _ := newTestService(t)

	q := createDraft(t, svc)

	assert.Equal(t, quote.StatusDraft, q.Status)
	assert.Equal(t, "751", q.TotalAmount.String())
	assert.Equal(t, "Q-2026-0001", q.Number)
}

func TestCreateRejectsPastValidity(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "author-1", quote.CreateQuoteRequest{
		CustomerID: customerID,
		Subject:    "Old quote",
		ValidUntil: "2020-01-01",
		Items:      []quote.QuoteItemRequest{{Description: "Labor", Quantity: "1", UnitPrice: "10"}},
	})
	assert.ErrorIs(t, err, quote.ErrValidUntilPast)
}

func TestCreateUnknownCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "author-1", quote.CreateQuoteRequest{
		CustomerID: "0191d2a0-0000-7000-8000-0000000000ff",
		Subject:    "Quote",
		ValidUntil: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		Items:      []quote.QuoteItemRequest{{Description: "Labor", Quantity: "1", UnitPrice: "10"}},
	})
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

func TestTransitionHappyPathToAcceptance(t *testing.T) {
	svc, _ := newTestService(t)
	q := createDraft(t, svc)

	steps := []struct {
		action     quote.Action
		permission user.Permission
		want       quote.Status
	}{
		{quote.ActionSubmit, user.PermissionQuotesSubmitForApproval, quote.StatusSubmittedForServiceApproval},
		{quote.ActionApproveService, user.PermissionQuotesApproveService, quote.StatusApprovedByServiceManager},
		{quote.ActionSubmitDG, user.PermissionQuotesSubmitForApproval, quote.StatusSubmittedForDGApproval},
		{quote.ActionApproveDG, user.PermissionQuotesApproveDG, quote.StatusApprovedByDG},
		{quote.ActionClientAccept, user.PermissionQuotesRecordClientDecision, quote.StatusAcceptedByClient},
	}
	for _, step := range steps {
		updated, err := svc.Transition(ctxWith(step.permission), q.ID, step.action, quote.TransitionRequest{})
		require.NoError(t, err, "action %s", step.action)
		assert.Equal(t, step.want, updated.Status)
	}

	history, err := svc.History(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Len(t, history, len(steps))
	assert.NotNil(t, history[0].ActorID)
}

func TestTransitionWithoutPermissionForbidden(t *testing.T) {
	svc, _ := newTestService(t)
	q := createDraft(t, svc)

	// Holding an unrelated permission is not enough.
	_, err := svc.Transition(ctxWith(user.PermissionQuotesRead), q.ID, quote.ActionSubmit, quote.TransitionRequest{})
	assert.ErrorIs(t, err, quote.ErrTransitionForbidden)

	// No session at all fails closed the same way.
	_, err = svc.Transition(context.Background(), q.ID, quote.ActionSubmit, quote.TransitionRequest{})
	assert.ErrorIs(t, err, quote.ErrTransitionForbidden)
}

func TestTransitionIllegalActionRejectedBeforePermissionCheck(t *testing.T) {
	svc, _ := newTestService(t)
	q := createDraft(t, svc)

	// approve_dg is never legal from DRAFT, even with the permission in hand.
	_, err := svc.Transition(ctxWith(user.PermissionQuotesApproveDG), q.ID, quote.ActionApproveDG, quote.TransitionRequest{})
	assert.ErrorIs(t, err, quote.ErrInvalidTransition)
}

func TestTransitionConcurrentMoveDetected(t *testing.T) {
	svc, repo := newTestService(t)
	q := createDraft(t, svc)

	// Another actor submits between our read and our write.
	ctx := ctxWith(user.PermissionQuotesSubmitForApproval)
	stored := repo.quotes[q.ID]
	stored.Status = quote.StatusSubmittedForServiceApproval
	repo.quotes[q.ID] = stored

	_, err := svc.Transition(ctx, q.ID, quote.ActionSubmit, quote.TransitionRequest{})
	// The fresh read sees the submitted status, from which submit is illegal.
	assert.ErrorIs(t, err, quote.ErrInvalidTransition)
}

func TestRecordClientDecisionReject(t *testing.T) {
	svc, repo := newTestService(t)
	q := createDraft(t, svc)

	stored := repo.quotes[q.ID]
	stored.Status = quote.StatusApprovedByDG
	repo.quotes[q.ID] = stored

	reason := "budget cut"
	updated, err := svc.RecordClientDecision(ctxWith(user.PermissionQuotesRecordClientDecision), q.ID,
		quote.ClientDecisionRequest{Accepted: false, Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, quote.StatusRejectedByClient, updated.Status)
}

func TestTerminalQuoteAcceptsNoAction(t *testing.T) {
	svc, repo := newTestService(t)
	q := createDraft(t, svc)

	stored := repo.quotes[q.ID]
	stored.Status = quote.StatusRejectedByDG
	repo.quotes[q.ID] = stored

	_, err := svc.Transition(ctxWith(user.PermissionQuotesSubmitForApproval), q.ID, quote.ActionSubmit, quote.TransitionRequest{})
	assert.ErrorIs(t, err, quote.ErrInvalidTransition)
}

func TestReadSettlesExpiredQuote(t *testing.T) {
	svc, _ := newTestService(t)
	q := createDraft(t, svc)

	// Jump past the validity date.
	svc.now = func() time.Time { return time.Now().AddDate(0, 2, 0) }

	got, err := svc.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, quote.StatusExpired, got.Status)

	// Expired is terminal: nothing is legal anymore.
	_, err = svc.Transition(ctxWith(user.PermissionQuotesSubmitForApproval), q.ID, quote.ActionSubmit, quote.TransitionRequest{})
	assert.ErrorIs(t, err, quote.ErrInvalidTransition)
}

func TestExpireDueSweep(t *testing.T) {
	svc, _ := newTestService(t)
	createDraft(t, svc)

	svc.now = func() time.Time { return time.Now().AddDate(0, 2, 0) }

	moved, err := svc.ExpireDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), moved)
}

func TestUpdateContentOnlyWhileDraft(t *testing.T) {
	svc, repo := newTestService(t)
	q := createDraft(t, svc)

	subject := "Revised maintenance"
	updated, err := svc.UpdateContent(context.Background(), quote.UpdateQuoteRequest{
		ID:      q.ID,
		Subject: &subject,
		Items: []quote.QuoteItemRequest{
			{Description: "Labor", Quantity: "4", UnitPrice: "100"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Revised maintenance", updated.Subject)
	assert.Equal(t, "400", updated.TotalAmount.String())

	stored := repo.quotes[q.ID]
	stored.Status = quote.StatusSubmittedForServiceApproval
	repo.quotes[q.ID] = stored

	_, err = svc.UpdateContent(context.Background(), quote.UpdateQuoteRequest{ID: q.ID, Subject: &subject})
	assert.ErrorIs(t, err, quote.ErrQuoteNotEditable)
}
