// File: internal/middleware/auth.go
package middleware

import (
	"adventure_backend/internal/common"
	"adventure_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the Firebase ID token in the Authorization header and stores
// the caller's uid and email in the Gin context.
func AuthMiddleware(verifier shared.TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(common.AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		idToken := common.GetTokenFromContext(c)
		if idToken == "" {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired ID token."))
			return
		}

		c.Set(common.FirebaseUIDKey, token.UID)
		c.Set(common.UserEmailKey, token.Email)

		logger.Debug("User authenticated successfully",
			zap.String("uid", token.UID),
			zap.String("email", token.Email),
		)

		c.Next()
	}
}
