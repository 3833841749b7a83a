// File: internal/account/model.go
package account

import (
	"strings"

	"adventure_backend/internal/profile"
	"adventure_backend/internal/shared"
)

// NavigateMain tells the client to open its main screen.
const NavigateMain = "main"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) trim() {
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}

// RegisterRequest carries either registration form. The full form sends first and last
// name, birthday and a chosen avatar; the quick form sends only a display name.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Birthday    string `json:"birthday"`
	PhotoURL    string `json:"photoUrl"`
	DisplayName string `json:"displayName"`

	// Quick forces the display-name form regardless of which fields are present.
	Quick bool `json:"-"`
}

func (r *RegisterRequest) trim() {
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Birthday = strings.TrimSpace(r.Birthday)
	r.PhotoURL = strings.TrimSpace(r.PhotoURL)
	r.DisplayName = strings.TrimSpace(r.DisplayName)
}

// IsQuick reports whether the request is the display-name form.
func (r *RegisterRequest) IsQuick() bool {
	if r.Quick {
		return true
	}
	return r.DisplayName != "" && r.FirstName == "" && r.LastName == "" && r.Birthday == ""
}

// fullForm and quickForm hold the required-field rules of each registration form.
type fullForm struct {
	Email     string `validate:"required"`
	Password  string `validate:"required"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Birthday  string `validate:"required"`
}

type quickForm struct {
	Email       string `validate:"required"`
	Password    string `validate:"required"`
	DisplayName string `validate:"required"`
}

// LoginResult is returned to the client after a successful sign-in.
type LoginResult struct {
	Session  *shared.Session `json:"session"`
	Navigate string          `json:"navigate"`
}

// RegisterResult is returned to the client after a successful registration. CustomToken
// is exchanged by the client for a signed-in session.
type RegisterResult struct {
	Profile     *profile.Profile `json:"profile"`
	CustomToken string           `json:"customToken,omitempty"`
	Navigate    string           `json:"navigate"`
}
