// File: internal/account/service.go
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adventure_backend/internal/audit"
	"adventure_backend/internal/config"
	"adventure_backend/internal/profile"
	"adventure_backend/internal/shared"

	"go.uber.org/zap"
)

// AvatarCatalog is the subset of the avatar catalog registration needs.
type AvatarCatalog interface {
	Contains(url string) bool
	Default() string
}

// ProfileWriter writes the profile document created at registration.
type ProfileWriter interface {
	Create(ctx context.Context, p *profile.Profile) error
}

// ProfileIndexer makes a new profile searchable.
type ProfileIndexer interface {
	IndexProfile(ctx context.Context, summary shared.ProfileSummary) error
}

// Service runs the login, registration and sign-out flows.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Logout(ctx context.Context, uid string) error
}

type service struct {
	identity shared.IdentityProvider
	profiles ProfileWriter
	indexer  ProfileIndexer
	recorder audit.Recorder
	avatars  AvatarCatalog
	forms    *formValidator
	logger   *zap.Logger
}

// NewService creates the account service.
func NewService(
	identity shared.IdentityProvider,
	profiles ProfileWriter,
	indexer ProfileIndexer,
	recorder audit.Recorder,
	avatars AvatarCatalog,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		identity: identity,
		profiles: profiles,
		indexer:  indexer,
		recorder: recorder,
		avatars:  avatars,
		forms:    newFormValidator(cfg.MinPasswordLength, avatars),
		logger:   logger.Named("AccountService"),
	}
}

// Login checks the form and signs the user in. Any rejection from the auth service is
// reported with the same generic message.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.trim()
	if err := s.forms.checkLogin(&req); err != nil {
		return nil, err
	}

	session, err := s.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Warn("signInWithEmail:failure", zap.String("email", req.Email), zap.Error(err))
		s.record(ctx, &audit.AuthEvent{Kind: audit.KindLoginFailed, Email: req.Email, Detail: err.Error()})
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return nil, ErrLoginFailed
		}
		return nil, ErrLoginFailed.WithDetails("The authentication service could not be reached.")
	}

	s.logger.Info("signInWithEmail:success", zap.String("uid", session.UID))
	s.record(ctx, &audit.AuthEvent{Kind: audit.KindLoginSucceeded, UID: session.UID, Email: session.Email})
	return &LoginResult{Session: session, Navigate: NavigateMain}, nil
}

// Register creates the account, then writes its profile document. A failed profile write
// leaves the account in place; the orphan is recorded in the audit trail.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	req.trim()
	if err := s.forms.checkRegistration(&req); err != nil {
		return nil, err
	}

	p := &profile.Profile{Email: req.Email, Points: 0}
	if req.IsQuick() {
		p.Name = req.DisplayName
		p.PhotoURL = s.avatars.Default()
	} else {
		p.FirstName = req.FirstName
		p.LastName = req.LastName
		p.Name = profile.FullName(req.FirstName, req.LastName)
		p.Birthday = req.Birthday
		p.PhotoURL = req.PhotoURL
	}

	uid, err := s.identity.CreateAccount(ctx, shared.AccountSpec{
		Email:       p.Email,
		Password:    req.Password,
		DisplayName: p.Name,
		PhotoURL:    p.PhotoURL,
	})
	if err != nil {
		s.logger.Warn("createUserWithEmail:failure", zap.String("email", req.Email), zap.Error(err))
		s.record(ctx, &audit.AuthEvent{Kind: audit.KindRegistrationAuthFailed, Email: req.Email, Detail: err.Error()})
		return nil, accountCreationError(err)
	}
	s.logger.Info("createUserWithEmail:success", zap.String("uid", uid))

	p.UID = uid
	if err := s.profiles.Create(ctx, p); err != nil {
		s.logger.Warn("Error adding document", zap.String("uid", uid), zap.Error(err))
		s.record(ctx, &audit.AuthEvent{Kind: audit.KindRegistrationProfileFailed, UID: uid, Email: req.Email, Detail: err.Error()})
		return nil, ErrProfileSaveFailed
	}
	s.logger.Debug("User profile successfully written", zap.String("uid", uid))

	if err := s.indexer.IndexProfile(ctx, p.Summary()); err != nil {
		s.logger.Warn("Failed to index new profile for search", zap.String("uid", uid), zap.Error(err))
	}

	token, err := s.identity.CustomToken(ctx, uid)
	if err != nil {
		s.logger.Warn("Registered without a sign-in token", zap.String("uid", uid), zap.Error(err))
		token = ""
	}

	s.record(ctx, &audit.AuthEvent{Kind: audit.KindRegistrationSucceeded, UID: uid, Email: req.Email})
	return &RegisterResult{Profile: p, CustomToken: token, Navigate: NavigateMain}, nil
}

// Logout revokes every refresh token issued to uid.
func (s *service) Logout(ctx context.Context, uid string) error {
	if err := s.identity.RevokeSessions(ctx, uid); err != nil {
		return fmt.Errorf("could not sign out %s: %w", uid, err)
	}
	s.logger.Info("User signed out", zap.String("uid", uid))
	return nil
}

func (s *service) record(ctx context.Context, event *audit.AuthEvent) {
	if err := s.recorder.Record(ctx, event); err != nil {
		s.logger.Error("Failed to record auth event", zap.String("kind", string(event.Kind)), zap.Error(err))
	}
}

// accountCreationError turns an auth service failure into "Authentication failed: <reason>".
// Rejected input is the caller's fault; anything else is an upstream failure.
func accountCreationError(err error) error {
	if errors.Is(err, shared.ErrEmailInUse) {
		return ErrEmailInUse
	}
	if errors.Is(err, shared.ErrAccountRejected) {
		reason := strings.TrimPrefix(err.Error(), shared.ErrAccountRejected.Error()+": ")
		return ErrAccountRejected.WithMessage("Authentication failed: " + reason)
	}
	reason := err.Error()
	if inner := errors.Unwrap(err); inner != nil {
		reason = inner.Error()
	}
	return ErrAccountCreation.WithMessage("Authentication failed: " + reason)
}
