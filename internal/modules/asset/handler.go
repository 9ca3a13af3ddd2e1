package asset

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/lueur-studio/core/internal/pkg/response"
)

// maxUploadBytes bounds a single uploaded file (50 MiB).
const maxUploadBytes = 50 << 20

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the asset library. The whole surface is an
// admin tool; nothing here is public.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	g := rg.Group("/assets", adminMW)

	g.POST("", h.upload)
	g.GET("", h.list)
	g.GET("/unused", h.listUnused)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/usages/:ownerId", h.markUsed)
	g.DELETE("/:id/usages/:ownerId", h.markUnused)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.UnprocessableEntity(c, "file too large")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	result, err := h.svc.Upload(c.Request.Context(), UploadInput{
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		if errors.Is(err, ErrEmptyFile) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) list(c *gin.Context) {
	assets, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, assets)
}

func (h *Handler) listUnused(c *gin.Context) {
	assets, err := h.svc.ListUnused(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, assets)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err == nil {
		response.NoContent(c)
		return
	}

	var inUse *InUseError
	switch {
	case errors.As(err, &inUse):
		response.ConflictDetail(c, inUse.Error(), gin.H{"usedIn": inUse.UsedIn})
	case errors.Is(err, ErrNotFound):
		response.NotFound(c)
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) markUsed(c *gin.Context) {
	h.usage(c, h.svc.MarkUsed)
}

func (h *Handler) markUnused(c *gin.Context) {
	h.usage(c, h.svc.MarkUnused)
}

func (h *Handler) usage(c *gin.Context, op func(ctx context.Context, assetID, ownerID string) error) {
	err := op(c.Request.Context(), c.Param("id"), c.Param("ownerId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
