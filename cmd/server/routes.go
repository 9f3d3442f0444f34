package main

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/launches/internal/config"
	"github.com/Nixie-Tech-LLC/launches/internal/http/api"
	launchendpoints "github.com/Nixie-Tech-LLC/launches/internal/http/api/launches/endpoints"
	"github.com/Nixie-Tech-LLC/launches/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/launches/internal/http/pages"
	"github.com/Nixie-Tech-LLC/launches/internal/launchapi"
	"github.com/Nixie-Tech-LLC/launches/internal/view"
	"github.com/Nixie-Tech-LLC/launches/internal/web"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, fetcher launchapi.Fetcher, router *view.Router, tmpl *template.Template) {
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.RequestLogger())
	// CORS for the JSON proxy; global so preflight requests are answered too
	r.Use(corsMiddleware(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.StaticFS("/static", http.FS(web.Static()))

	api.MountGroup(r, api.GroupConfig{},
		pages.PagesModule(router),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api",
		Middleware: []gin.HandlerFunc{noStore()},
	},
		launchendpoints.LaunchModule(fetcher),
	)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods: []string{
			"GET",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return cors.New(c)
}

// noStore keeps intermediaries from caching proxied upstream data.
func noStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
