package catalog

import (
	"errors"

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
	rg.GET("/services", h.listPublic)
	rg.GET("/services/:id", h.get)

	// The admin surface lives under its own prefix so the id wildcard
	// on the public routes stays unambiguous.
	admin := rg.Group("/admin/services", adminMW)
	{
		admin.GET("", h.listAll)
		admin.POST("", h.create)
		admin.PUT("/:id", h.update)
		admin.DELETE("/:id", h.remove)
	}
}

func (h *Handler) listPublic(c *gin.Context) {
	services, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if services == nil {
		services = []*models.Service{}
	}
	response.OK(c, services)
}

func (h *Handler) listAll(c *gin.Context) {
	services, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if services == nil {
		services = []*models.Service{}
	}
	response.OK(c, services)
}

func (h *Handler) get(c *gin.Context) {
	svc, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if svc == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, svc)
}

func (h *Handler) create(c *gin.Context) {
	var in models.Service
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	svc, err := h.svc.Create(c.Request.Context(), &in)
	switch {
	case errors.Is(err, ErrMissingTitle):
		response.UnprocessableEntity(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Created(c, svc)
	}
}

func (h *Handler) update(c *gin.Context) {
	var in models.Service
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	svc, err := h.svc.Update(c.Request.Context(), c.Param("id"), &in)
	switch {
	case errors.Is(err, ErrMissingTitle):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(c)
	case err != nil:
		response.InternalError(c, err)
	default:
		response.OK(c, svc)
	}
}

func (h *Handler) remove(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c)
	case err != nil:
		response.InternalError(c, err)
	default:
		response.NoContent(c)
	}
}
