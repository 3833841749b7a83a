// File: internal/search/handler.go
package search

import (
	"adventure_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the friends search.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.GET("/users/search", authMW, h.searchUsers)
}

func (h *Handler) searchUsers(c *gin.Context) {
	results, err := h.service.SearchByName(c.Request.Context(), common.GetFirebaseUIDFromContext(c), c.Query("q"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", results)
}
