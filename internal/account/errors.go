// File: internal/account/errors.go
package account

import (
	"net/http"

	"adventure_backend/internal/common"
)

// User-facing failures of the login and registration flows.
var (
	ErrMissingFields     = common.NewAPIError(http.StatusUnprocessableEntity, "MISSING_FIELDS", "Please fill all fields")
	ErrWeakPassword      = common.NewAPIError(http.StatusUnprocessableEntity, "WEAK_PASSWORD", "Password must be at least 6 characters")
	ErrAvatarRequired    = common.NewAPIError(http.StatusUnprocessableEntity, "AVATAR_REQUIRED", "Please select an avatar")
	ErrInvalidBirthday   = common.NewAPIError(http.StatusUnprocessableEntity, "INVALID_BIRTHDAY", "Birthday must be formatted as M/D/YYYY")
	ErrLoginFailed       = common.NewAPIError(http.StatusUnauthorized, "AUTHENTICATION_FAILED", "Authentication failed.")
	ErrEmailInUse        = common.NewAPIError(http.StatusConflict, "EMAIL_IN_USE", "Authentication failed: The email address is already in use by another account.")
	ErrInvalidEmail      = common.NewAPIError(http.StatusUnprocessableEntity, "INVALID_EMAIL", "Authentication failed: The email address is badly formatted.")
	ErrAccountRejected   = common.NewAPIError(http.StatusUnprocessableEntity, "ACCOUNT_REJECTED", "Authentication failed.")
	ErrAccountCreation   = common.NewAPIError(http.StatusBadGateway, "ACCOUNT_CREATION_FAILED", "Authentication failed.")
	ErrProfileSaveFailed = common.NewAPIError(http.StatusInternalServerError, "PROFILE_SAVE_FAILED", "Registration failed: could not save user data.")
)
