package quote

import (
	"testing"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_LegalTransitions(t *testing.T) {
	cases := []struct {
		from       Status
		action     Action
		to         Status
		permission user.Permission
	}{
		{StatusDraft, ActionSubmit, StatusSubmittedForServiceApproval, user.PermissionQuotesSubmitForApproval},
		{StatusSubmittedForServiceApproval, ActionApproveService, StatusApprovedByServiceManager, user.PermissionQuotesApproveService},
		{StatusSubmittedForServiceApproval, ActionRejectService, StatusRejectedByServiceManager, user.PermissionQuotesApproveService},
		{StatusApprovedByServiceManager, ActionSubmitDG, StatusSubmittedForDGApproval, user.PermissionQuotesSubmitForApproval},
		{StatusSubmittedForDGApproval, ActionApproveDG, StatusApprovedByDG, user.PermissionQuotesApproveDG},
		{StatusSubmittedForDGApproval, ActionRejectDG, StatusRejectedByDG, user.PermissionQuotesApproveDG},
		{StatusApprovedByDG, ActionClientAccept, StatusAcceptedByClient, user.PermissionQuotesRecordClientDecision},
		{StatusApprovedByDG, ActionClientReject, StatusRejectedByClient, user.PermissionQuotesRecordClientDecision},
	}

	for _, tc := range cases {
		to, perm, err := Next(tc.from, tc.action)
		require.NoError(t, err, "%s/%s", tc.from, tc.action)
		assert.Equal(t, tc.to, to)
		assert.Equal(t, tc.permission, perm)
	}
}

func TestNext_NoTierSkipping(t *testing.T) {
	// A draft cannot jump past the service tier.
	_, _, err := Next(StatusDraft, ActionApproveDG)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, _, err = Next(StatusDraft, ActionApproveService)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, _, err = Next(StatusDraft, ActionClientAccept)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Service approval does not reach the client without the DG tier.
	_, _, err = Next(StatusApprovedByServiceManager, ActionClientAccept)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, _, err = Next(StatusApprovedByServiceManager, ActionApproveDG)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNext_TerminalStatesHaveNoExits(t *testing.T) {
	terminals := []Status{
		StatusRejectedByServiceManager,
		StatusRejectedByDG,
		StatusRejectedByClient,
		StatusAcceptedByClient,
		StatusExpired,
	}
	actions := []Action{
		ActionSubmit, ActionApproveService, ActionRejectService, ActionSubmitDG,
		ActionApproveDG, ActionRejectDG, ActionClientAccept, ActionClientReject,
	}

	for _, from := range terminals {
		assert.True(t, IsTerminal(from))
		for _, action := range actions {
			_, _, err := Next(from, action)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s must be terminal, %s escaped", from, action)
		}
	}
}

func TestNext_RepeatedActionRejected(t *testing.T) {
	// Approving moves the quote; approving again from the new status is illegal.
	to, _, err := Next(StatusSubmittedForServiceApproval, ActionApproveService)
	require.NoError(t, err)
	_, _, err = Next(to, ActionApproveService)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAvailableActions(t *testing.T) {
	assert.Equal(t, []Action{ActionSubmit}, AvailableActions(StatusDraft))
	assert.Equal(t,
		[]Action{ActionApproveService, ActionRejectService},
		AvailableActions(StatusSubmittedForServiceApproval))
	assert.Equal(t,
		[]Action{ActionClientAccept, ActionClientReject},
		AvailableActions(StatusApprovedByDG))
	assert.Nil(t, AvailableActions(StatusExpired))
	assert.Nil(t, AvailableActions(StatusAcceptedByClient))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("DRAFT"))
	assert.True(t, IsValidStatus("EXPIRED"))
	assert.True(t, IsValidStatus("SUBMITTED_FOR_DG_APPROVAL"))
	assert.False(t, IsValidStatus("draft"))
	assert.False(t, IsValidStatus("APPROVED"))
}

func TestQuote_IsExpiredAt(t *testing.T) {
	now := time.Now()
	q := Quote{Status: StatusSubmittedForDGApproval, ValidUntil: now.Add(-time.Hour)}
	assert.True(t, q.IsExpiredAt(now))

	q.ValidUntil = now.Add(time.Hour)
	assert.False(t, q.IsExpiredAt(now))

	// Terminal states never flip to EXPIRED, however old.
	q = Quote{Status: StatusAcceptedByClient, ValidUntil: now.Add(-24 * time.Hour)}
	assert.False(t, q.IsExpiredAt(now))
}

func TestQuote_IsEditable(t *testing.T) {
	q := Quote{Status: StatusDraft}
	assert.True(t, q.IsEditable())

	for _, s := range []Status{
		StatusSubmittedForServiceApproval, StatusApprovedByServiceManager,
		StatusApprovedByDG, StatusAcceptedByClient, StatusExpired,
	} {
		q.Status = s
		assert.False(t, q.IsEditable(), "status %s must be read-only", s)
	}
}

func TestQuote_ComputeTotals(t *testing.T) {
	q := Quote{
		Items: []QuoteItem{
			{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("10.50")},
			{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("0.25")},
		},
	}
	q.ComputeTotals()

	assert.True(t, q.Items[0].LineTotal.Equal(decimal.RequireFromString("31.50")))
	assert.True(t, q.Items[1].LineTotal.Equal(decimal.RequireFromString("0.50")))
	assert.True(t, q.TotalAmount.Equal(decimal.RequireFromString("32.00")))
}
