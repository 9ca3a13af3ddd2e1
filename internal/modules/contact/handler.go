package contact

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
	rg.POST("/contact", h.submit)

	admin := rg.Group("/contact", adminMW)
	{
		admin.GET("", h.list)
		admin.PATCH("/:id/status", h.setStatus)
		admin.DELETE("/:id", h.remove)
	}
}

func (h *Handler) submit(c *gin.Context) {
	var in SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	sub, err := h.svc.Submit(c.Request.Context(), in)
	switch {
	case errors.Is(err, ErrMissingFields):
		response.UnprocessableEntity(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Created(c, sub)
	}
}

func (h *Handler) list(c *gin.Context) {
	subs, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if subs == nil {
		subs = []*models.ContactSubmission{}
	}
	response.OK(c, subs)
}

func (h *Handler) setStatus(c *gin.Context) {
	var body struct {
		Status models.ContactStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), body.Status)
	switch {
	case errors.Is(err, ErrBadStatus):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(c)
	case err != nil:
		response.InternalError(c, err)
	default:
		response.NoContent(c)
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
