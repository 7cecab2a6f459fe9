package response

import (
	"errors"
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/auth"
	"github.com/gestionpro/erp-backend-go/internal/domain/customer"
	"github.com/gestionpro/erp-backend-go/internal/domain/employee"
	"github.com/gestionpro/erp-backend-go/internal/domain/invoice"
	"github.com/gestionpro/erp-backend-go/internal/domain/material"
	"github.com/gestionpro/erp-backend-go/internal/domain/message"
	"github.com/gestionpro/erp-backend-go/internal/domain/mission"
	"github.com/gestionpro/erp-backend-go/internal/domain/quote"
	"github.com/gestionpro/erp-backend-go/internal/domain/report"
	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountDeactivated):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrRefreshTokenInvalid):
		Unauthorized(w, "Refresh token is invalid or revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUnknownPermission):
		BadRequest(w, "Unknown permission name", nil)
	case errors.Is(err, user.ErrCannotDeleteUser):
		Conflict(w, "Users are deactivated, never deleted")

	// Customer domain errors
	case errors.Is(err, customer.ErrCustomerNotFound):
		NotFound(w, "Customer not found")
	case errors.Is(err, customer.ErrCustomerEmailExists):
		Conflict(w, "Customer email already registered")
	case errors.Is(err, customer.ErrAlreadyConverted):
		Conflict(w, "Customer is not a prospect")

	// Quote domain errors
	case errors.Is(err, quote.ErrQuoteNotFound):
		NotFound(w, "Quote not found")
	case errors.Is(err, quote.ErrQuoteNotEditable):
		Conflict(w, "Quote can only be edited while in draft")
	case errors.Is(err, quote.ErrInvalidTransition):
		Conflict(w, "Transition not allowed from current status")
	case errors.Is(err, quote.ErrTransitionForbidden):
		Forbidden(w, "Missing permission for this transition")
	case errors.Is(err, quote.ErrQuoteAlreadyMoved):
		Conflict(w, "Quote status changed concurrently, reload and retry")
	case errors.Is(err, quote.ErrValidUntilPast):
		BadRequest(w, "valid_until must be in the future", nil)
	case errors.Is(err, quote.ErrNoItems):
		BadRequest(w, "Quote requires at least one line item", nil)

	// Invoice domain errors
	case errors.Is(err, invoice.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, invoice.ErrQuoteNotAccepted):
		Conflict(w, "Invoice can only be issued from a client-accepted quote")
	case errors.Is(err, invoice.ErrQuoteAlreadyInvoiced):
		Conflict(w, "Quote already has an invoice")
	case errors.Is(err, invoice.ErrInvoiceCancelled):
		Conflict(w, "Invoice is cancelled")
	case errors.Is(err, invoice.ErrInvoiceAlreadyPaid):
		Conflict(w, "Invoice is already fully paid")
	case errors.Is(err, invoice.ErrInvoiceNotCancellable):
		Conflict(w, "Invoice can no longer be cancelled")
	case errors.Is(err, invoice.ErrPaymentExceedsDue):
		BadRequest(w, "Payment exceeds remaining balance", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, employee.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, employee.ErrOverlappingLeave):
		Conflict(w, "Overlapping leave request exists")
	case errors.Is(err, employee.ErrLoanNotFound):
		NotFound(w, "Loan not found")
	case errors.Is(err, employee.ErrLoanAlreadyProcessed):
		Conflict(w, "Loan already processed")
	case errors.Is(err, employee.ErrContractNotFound):
		NotFound(w, "Contract not found")

	// Mission domain errors
	case errors.Is(err, mission.ErrMissionNotFound):
		NotFound(w, "Mission not found")
	case errors.Is(err, mission.ErrMissionNotActive):
		Conflict(w, "Mission is completed or cancelled")
	case errors.Is(err, mission.ErrInterventionNotFound):
		NotFound(w, "Intervention not found")
	case errors.Is(err, mission.ErrInterventionProcessed):
		Conflict(w, "Intervention already completed or cancelled")
	case errors.Is(err, mission.ErrTechnicianNotFound):
		NotFound(w, "Technician not found")
	case errors.Is(err, mission.ErrTechnicianUnavailable):
		Conflict(w, "Technician already booked at this time")
	case errors.Is(err, mission.ErrInsufficientStock):
		Conflict(w, "Insufficient stock for requested materials")

	// Material domain errors
	case errors.Is(err, material.ErrMaterialNotFound):
		NotFound(w, "Material not found")
	case errors.Is(err, material.ErrReferenceExists):
		Conflict(w, "Material reference already exists")
	case errors.Is(err, material.ErrInsufficientStock):
		Conflict(w, "Insufficient stock")
	case errors.Is(err, material.ErrInvalidAdjustment):
		BadRequest(w, "Adjustment quantity must not be zero", nil)

	// Message domain errors
	case errors.Is(err, message.ErrMessageNotFound):
		NotFound(w, "Message not found")
	case errors.Is(err, message.ErrNotRecipient):
		Forbidden(w, "Only the recipient can read this message")
	case errors.Is(err, message.ErrRecipientUnknown):
		NotFound(w, "Recipient not found")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidYear):
		BadRequest(w, "Year must be between 2000 and 2100", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
