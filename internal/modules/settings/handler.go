package settings

import (
	"github.com/gin-gonic/gin"
	"github.com/lueur-studio/core/internal/models"
	"github.com/lueur-studio/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	rg.GET("/settings", h.get)
	rg.PUT("/settings", adminMW, h.update)
}

func (h *Handler) get(c *gin.Context) {
	cfg, err := h.svc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cfg)
}

func (h *Handler) update(c *gin.Context) {
	var in models.SiteSettings
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	cfg, err := h.svc.Update(c.Request.Context(), in)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cfg)
}
