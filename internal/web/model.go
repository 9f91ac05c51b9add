// File: internal/web/model.go
package web

import (
	"unicode"

	"caricom_connects_backend/internal/session"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// LoginRequest is the email/password login form.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	// Remember is advisory UI state only. It never changes the trust model
	// and nothing is persisted because of it.
	Remember bool `json:"remember"`
}

// RegisterRequest is the registration form. The password policy and the role
// set are enforced here, at the validation boundary, before the session
// manager ever talks to the provider.
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=128"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,passwordpolicy"`
	Role     string `json:"role" binding:"required,oneof=buyer seller"`
}

// VerifyRequest carries the two opaque parameters from an emailed
// verification link. Neither is validated here: presence checking belongs to
// the verification flow, which must fail locally without a provider call.
type VerifyRequest struct {
	UserID string `json:"userId" form:"userId"`
	Secret string `json:"secret" form:"secret"`
}

// UserResponse is the identity record returned to the browser.
type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Role          string `json:"role"`
}

// ToUserResponse maps a session user; nil in, nil out.
func ToUserResponse(u *session.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Role:          u.Role,
	}
}

// SessionResponse is the snapshot view consumed by the browser and the
// page views.
type SessionResponse struct {
	State         session.State `json:"state"`
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

// ToSessionResponse maps a session snapshot.
func ToSessionResponse(snap session.Snapshot) SessionResponse {
	return SessionResponse{
		State:         snap.State,
		Authenticated: snap.IsAuthenticated(),
		User:          ToUserResponse(snap.User),
	}
}

// RegisterValidations installs the custom validation tags on Gin's binding
// validator. Must run once before the router handles requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("passwordpolicy", passwordPolicy)
}

// passwordPolicy enforces min length 8 with at least one uppercase letter,
// one lowercase letter, one digit and one special character.
func passwordPolicy(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
