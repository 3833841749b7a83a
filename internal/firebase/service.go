package firebase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"adventure_backend/internal/config"
	"adventure_backend/internal/shared"
)

// FirebaseService is the gateway to the hosted auth service and document store.
// It implements shared.IdentityProvider and shared.TokenVerifier.
type FirebaseService struct {
	authClient *auth.Client
	firestore  *firestore.Client
	toolkit    *identitytoolkit.Service
	logger     *zap.Logger
}

var (
	_ shared.IdentityProvider = (*FirebaseService)(nil)
	_ shared.TokenVerifier    = (*FirebaseService)(nil)
)

// NewFirebaseService initializes the Firebase Admin SDK, the Firestore client and the
// Identity Toolkit client used for password sign-in. The returned cleanup closes Firestore.
func NewFirebaseService(cfg *config.Config, logger *zap.Logger) (*FirebaseService, func(), error) {
	logger = logger.Named("firebase")
	if cfg.FirebaseServiceAccountKeyPath == "" {
		logger.Error("Firebase service account key path is not configured.")
		return nil, nil, fmt.Errorf("firebase service account key path is required")
	}

	ctx := context.Background()
	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)
	opt := option.WithCredentialsFile(cleanPath)

	var conf *firebase.Config
	if cfg.FirebaseProjectID != "" {
		conf = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}
	app, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		logger.Error("Failed to get Firestore client", zap.Error(err))
		return nil, nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	toolkit, err := newIdentityToolkit(ctx, cfg.FirebaseWebAPIKey, cfg.IdentityToolkitEndpoint)
	if err != nil {
		fsClient.Close()
		logger.Error("Failed to create Identity Toolkit client", zap.Error(err))
		return nil, nil, fmt.Errorf("error creating Identity Toolkit client: %w", err)
	}
	if cfg.FirebaseWebAPIKey == "" {
		logger.Warn("FIREBASE_WEB_API_KEY is not set; email/password sign-in will be rejected.")
	}

	cleanup := func() {
		if err := fsClient.Close(); err != nil {
			logger.Error("Failed to close Firestore client", zap.Error(err))
		}
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &FirebaseService{
		authClient: authClient,
		firestore:  fsClient,
		toolkit:    toolkit,
		logger:     logger,
	}, cleanup, nil
}

func newIdentityToolkit(ctx context.Context, apiKey, endpoint string, extra ...option.ClientOption) (*identitytoolkit.Service, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	opts = append(opts, extra...)
	return identitytoolkit.NewService(ctx, opts...)
}

// Firestore exposes the document store client to the repositories.
func (s *FirebaseService) Firestore() *firestore.Client {
	return s.firestore
}

// SignIn verifies email and password against the auth service and returns fresh tokens.
func (s *FirebaseService) SignIn(ctx context.Context, email, password string) (*shared.Session, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	resp, err := s.toolkit.Relyingparty.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		mapped := mapSignInError(err)
		if errors.Is(mapped, shared.ErrInvalidCredentials) {
			s.logger.Info("Sign-in rejected", zap.String("email", email), zap.Error(err))
		} else {
			s.logger.Error("Sign-in call failed", zap.String("email", email), zap.Error(err))
		}
		return nil, mapped
	}

	s.logger.Debug("Sign-in succeeded", zap.String("uid", resp.LocalId))
	return &shared.Session{
		UID:          resp.LocalId,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

// mapSignInError folds every credential rejection into shared.ErrInvalidCredentials.
func mapSignInError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusBadRequest {
		switch gerr.Message {
		case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED", "INVALID_EMAIL", "MISSING_PASSWORD":
			return fmt.Errorf("%w: %s", shared.ErrInvalidCredentials, gerr.Message)
		}
	}
	return fmt.Errorf("sign-in request failed: %w", err)
}

// providerMinPasswordLength is the shortest password the auth service accepts.
const providerMinPasswordLength = 6

var accountValidator = validator.New()

// checkAccountSpec rejects input the Admin SDK would refuse before sending any request.
func checkAccountSpec(spec shared.AccountSpec) error {
	if err := accountValidator.Var(spec.Email, "required,email"); err != nil {
		return fmt.Errorf("%w: The email address is badly formatted.", shared.ErrAccountRejected)
	}
	if len(spec.Password) < providerMinPasswordLength {
		return fmt.Errorf("%w: The given password is invalid. [ Password should be at least %d characters ]",
			shared.ErrAccountRejected, providerMinPasswordLength)
	}
	return nil
}

// CreateAccount creates a credentialed account and returns its uid.
func (s *FirebaseService) CreateAccount(ctx context.Context, spec shared.AccountSpec) (string, error) {
	if err := checkAccountSpec(spec); err != nil {
		s.logger.Info("Account creation rejected before sending", zap.String("email", spec.Email), zap.Error(err))
		return "", err
	}

	params := (&auth.UserToCreate{}).Email(spec.Email).Password(spec.Password)
	if spec.DisplayName != "" {
		params = params.DisplayName(spec.DisplayName)
	}
	if spec.PhotoURL != "" {
		params = params.PhotoURL(spec.PhotoURL)
	}

	record, err := s.authClient.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			s.logger.Info("Account creation rejected, email already exists", zap.String("email", spec.Email))
			return "", shared.ErrEmailInUse
		}
		if errorutils.IsInvalidArgument(err) {
			s.logger.Info("Account creation rejected by auth service", zap.String("email", spec.Email), zap.Error(err))
			return "", fmt.Errorf("%w: %v", shared.ErrAccountRejected, err)
		}
		s.logger.Warn("createUserWithEmail:failure", zap.String("email", spec.Email), zap.Error(err))
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("Account created", zap.String("uid", record.UID))
	return record.UID, nil
}

// CustomToken mints a token the client exchanges for a signed-in session.
func (s *FirebaseService) CustomToken(ctx context.Context, uid string) (string, error) {
	token, err := s.authClient.CustomToken(ctx, uid)
	if err != nil {
		s.logger.Error("Failed to mint custom token", zap.String("uid", uid), zap.Error(err))
		return "", fmt.Errorf("failed to mint custom token: %w", err)
	}
	return token, nil
}

// VerifyIDToken verifies a Firebase ID token, rejecting revoked sessions.
func (s *FirebaseService) VerifyIDToken(ctx context.Context, idToken string) (*shared.VerifiedToken, error) {
	if idToken == "" {
		return nil, fmt.Errorf("%w: empty token", shared.ErrInvalidToken)
	}

	token, err := s.authClient.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}

	verified := &shared.VerifiedToken{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		verified.Email = email
	}
	s.logger.Debug("Firebase ID token verified successfully", zap.String("uid", token.UID))
	return verified, nil
}

// RevokeSessions revokes all refresh tokens for a given user.
func (s *FirebaseService) RevokeSessions(ctx context.Context, uid string) error {
	if err := s.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("Failed to revoke refresh tokens", zap.Error(err), zap.String("uid", uid))
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.logger.Info("Successfully revoked refresh tokens for user", zap.String("uid", uid))
	return nil
}
