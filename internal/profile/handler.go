// File: internal/profile/handler.go
package profile

import (
	"adventure_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's own profile.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts /profile/me under router, behind authMW.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/profile", authMW)
	{
		group.GET("/me", h.getMe)
		group.PATCH("/me", h.updateMe)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	uid := common.GetFirebaseUIDFromContext(c)
	p, err := h.service.GetProfile(c.Request.Context(), uid)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", p)
}

func (h *Handler) updateMe(c *gin.Context) {
	var req UpdateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update profile: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	uid := common.GetFirebaseUIDFromContext(c)
	p, err := h.service.UpdateBio(c.Request.Context(), uid, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Bio updated.", p)
}
