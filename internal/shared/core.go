// File: internal/shared/core.go
package shared

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials is returned by IdentityProvider.SignIn for any rejected sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailInUse is returned by IdentityProvider.CreateAccount when the email is taken.
	ErrEmailInUse = errors.New("the email address is already in use by another account")
	// ErrAccountRejected is returned by IdentityProvider.CreateAccount when the auth service
	// refuses the submitted email or password.
	ErrAccountRejected = errors.New("account details rejected")
	// ErrInvalidToken is returned by TokenVerifier for expired, revoked or malformed ID tokens.
	ErrInvalidToken = errors.New("invalid or expired ID token")
)

// AccountSpec is what the auth service needs to create a credentialed account.
type AccountSpec struct {
	Email       string
	Password    string
	DisplayName string
	PhotoURL    string
}

// Session is the result of a successful email/password sign-in.
type Session struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	IDToken      string    `json:"idToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// IdentityProvider is the remote authentication service.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	CreateAccount(ctx context.Context, spec AccountSpec) (uid string, err error)
	CustomToken(ctx context.Context, uid string) (string, error)
	RevokeSessions(ctx context.Context, uid string) error
}

// VerifiedToken is the subset of ID token claims the HTTP layer cares about.
type VerifiedToken struct {
	UID   string
	Email string
}

// TokenVerifier checks ID tokens presented by the mobile client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*VerifiedToken, error)
}
