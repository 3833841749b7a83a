// File: internal/account/handler.go
package account

import (
	"adventure_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the login and registration screens over HTTP.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new account handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for authentication operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.login)
		authGroup.POST("/register", h.register)
		authGroup.POST("/register/quick", h.registerQuick)
		authGroup.POST("/logout", authMW, h.logout)
	}
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Login: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Login successful!", result)
}

func (h *Handler) register(c *gin.Context) {
	h.handleRegister(c, false)
}

func (h *Handler) registerQuick(c *gin.Context) {
	h.handleRegister(c, true)
}

func (h *Handler) handleRegister(c *gin.Context, quick bool) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Register: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	req.Quick = quick

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Registration successful!", result)
}

func (h *Handler) logout(c *gin.Context) {
	uid := common.GetFirebaseUIDFromContext(c)
	if uid == "" {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	if err := h.service.Logout(c.Request.Context(), uid); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Signed out.", nil)
}
