package portfolio

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
	pub := rg.Group("/portfolio")
	{
		pub.GET("", h.list)
		pub.GET("/:id", h.get)
	}

	admin := rg.Group("/portfolio", adminMW)
	{
		admin.POST("", h.create)
		admin.PUT("/:id", h.save)
		admin.DELETE("/:id", h.remove)
	}
}

func (h *Handler) list(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	response.OK(c, projects)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	p, err := h.svc.Create(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) save(c *gin.Context) {
	var p models.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "invalid project payload: "+err.Error())
		return
	}
	p.ID = c.Param("id")
	if err := h.svc.Save(c.Request.Context(), &p); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, &p)
}

func (h *Handler) remove(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err == ErrProjectNotFound:
		response.NotFound(c)
	case err != nil:
		response.InternalError(c, err)
	default:
		response.NoContent(c)
	}
}
