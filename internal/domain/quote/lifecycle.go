package quote

import (
	"github.com/gestionpro/erp-backend-go/internal/domain/user"
)

type Status string

const (
	StatusDraft                        Status = "DRAFT"
	StatusSubmittedForServiceApproval  Status = "SUBMITTED_FOR_SERVICE_APPROVAL"
	StatusApprovedByServiceManager     Status = "APPROVED_BY_SERVICE_MANAGER"
	StatusRejectedByServiceManager     Status = "REJECTED_BY_SERVICE_MANAGER"
	StatusSubmittedForDGApproval       Status = "SUBMITTED_FOR_DG_APPROVAL"
	StatusApprovedByDG                 Status = "APPROVED_BY_DG"
	StatusRejectedByDG                 Status = "REJECTED_BY_DG"
	StatusAcceptedByClient             Status = "ACCEPTED_BY_CLIENT"
	StatusRejectedByClient             Status = "REJECTED_BY_CLIENT"
	StatusExpired                      Status = "EXPIRED"
)

type Action string

const (
	ActionSubmit         Action = "submit"
	ActionApproveService Action = "approve_service"
	ActionRejectService  Action = "reject_service"
	ActionSubmitDG       Action = "submit_dg"
	ActionApproveDG      Action = "approve_dg"
	ActionRejectDG       Action = "reject_dg"
	ActionClientAccept   Action = "client_accept"
	ActionClientReject   Action = "client_reject"
	ActionExpire         Action = "expire"
)

type transition struct {
	To         Status
	Permission user.Permission
}

// transitions is the single source of truth for lifecycle legality. The
// current status fully determines which actions are legal; no action skips an
// approval tier.
var transitions = map[Status]map[Action]transition{
	StatusDraft: {
		ActionSubmit: {StatusSubmittedForServiceApproval, user.PermissionQuotesSubmitForApproval},
	},
	StatusSubmittedForServiceApproval: {
		ActionApproveService: {StatusApprovedByServiceManager, user.PermissionQuotesApproveService},
		ActionRejectService:  {StatusRejectedByServiceManager, user.PermissionQuotesApproveService},
	},
	StatusApprovedByServiceManager: {
		ActionSubmitDG: {StatusSubmittedForDGApproval, user.PermissionQuotesSubmitForApproval},
	},
	StatusSubmittedForDGApproval: {
		ActionApproveDG: {StatusApprovedByDG, user.PermissionQuotesApproveDG},
		ActionRejectDG:  {StatusRejectedByDG, user.PermissionQuotesApproveDG},
	},
	StatusApprovedByDG: {
		ActionClientAccept: {StatusAcceptedByClient, user.PermissionQuotesRecordClientDecision},
		ActionClientReject: {StatusRejectedByClient, user.PermissionQuotesRecordClientDecision},
	},
}

// terminal states have no outgoing transitions, not even for admins.
var terminal = map[Status]struct{}{
	StatusRejectedByServiceManager: {},
	StatusRejectedByDG:             {},
	StatusRejectedByClient:         {},
	StatusAcceptedByClient:         {},
	StatusExpired:                  {},
}

func IsTerminal(s Status) bool {
	_, ok := terminal[s]
	return ok
}

func IsValidStatus(s string) bool {
	if _, ok := transitions[Status(s)]; ok {
		return true
	}
	return IsTerminal(Status(s))
}

// Next resolves the transition for an action in the current status. It
// returns the target status and the permission the caller must hold.
// Illegal pairs return ErrInvalidTransition before any check of the caller.
func Next(current Status, action Action) (Status, user.Permission, error) {
	actions, ok := transitions[current]
	if !ok {
		return "", "", ErrInvalidTransition
	}
	t, ok := actions[action]
	if !ok {
		return "", "", ErrInvalidTransition
	}
	return t.To, t.Permission, nil
}

// AvailableActions lists the actions legal from the current status, in a
// stable order. Terminal states return nothing.
func AvailableActions(current Status) []Action {
	actions, ok := transitions[current]
	if !ok {
		return nil
	}
	ordered := []Action{
		ActionSubmit,
		ActionApproveService,
		ActionRejectService,
		ActionSubmitDG,
		ActionApproveDG,
		ActionRejectDG,
		ActionClientAccept,
		ActionClientReject,
	}
	var out []Action
	for _, a := range ordered {
		if _, ok := actions[a]; ok {
			out = append(out, a)
		}
	}
	return out
}
