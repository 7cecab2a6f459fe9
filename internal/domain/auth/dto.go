package auth

import (
	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LoginResponse carries the token pair plus the resolved permission set so
// the client can gate navigation without a second round trip.
type LoginResponse struct {
	User                 user.UserResponse `json:"user"`
	AccessToken          string            `json:"token"`
	AccessTokenExpiresIn int64             `json:"token_expires_in"`
	RefreshToken         string            `json:"refresh_token"`
	Permissions          []string          `json:"permissions"`
}

type ProfileResponse struct {
	User        user.UserResponse `json:"user"`
	Permissions []string          `json:"permissions"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"token"`
	AccessTokenExpiresIn int64  `json:"token_expires_in"`
}
