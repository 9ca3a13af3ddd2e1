package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lueur-studio/core/internal/middleware"
	"github.com/lueur-studio/core/internal/modules/asset"
	"github.com/lueur-studio/core/internal/modules/catalog"
	"github.com/lueur-studio/core/internal/modules/contact"
	"github.com/lueur-studio/core/internal/modules/portfolio"
	"github.com/lueur-studio/core/internal/modules/settings"
	"github.com/lueur-studio/core/internal/pkg/blob"
)

func (a *App) registerRoutes(blobs blob.Store) {
	admins := middleware.NewAdminList(a.cfg.AdminIDs)
	adminMW := middleware.AdminOnly(admins)

	api := a.router.Group("/api/v1")
	api.Use(middleware.RateLimit(a.rc.Raw(), a.cfg.RateLimit))

	assetSvc := asset.NewService(asset.NewMongoRepository(a.db), blobs, a.logger)
	portfolioSvc := portfolio.NewService(portfolio.NewMongoRepository(a.db), assetSvc, a.logger)
	contactSvc := contact.NewService(contact.NewMongoRepository(a.db), a.logger)
	catalogSvc := catalog.NewService(catalog.NewMongoRepository(a.db))
	settingsSvc := settings.NewService(a.db)

	asset.NewHandler(assetSvc).RegisterRoutes(api, adminMW)
	portfolio.NewHandler(portfolioSvc).RegisterRoutes(api, adminMW)
	contact.NewHandler(contactSvc).RegisterRoutes(api, adminMW)
	catalog.NewHandler(catalogSvc).RegisterRoutes(api, adminMW)
	settings.NewHandler(settingsSvc).RegisterRoutes(api, adminMW)

	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(processStart).Round(time.Second).String(),
		})
	})
}

var processStart = time.Now()
