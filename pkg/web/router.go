package web

import (
	"context"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/scienceol/molview/internal/config"
	"github.com/scienceol/molview/pkg/core/structure"
	"github.com/scienceol/molview/pkg/middleware/logger"
	"github.com/scienceol/molview/pkg/web/views/health"
	structureView "github.com/scienceol/molview/pkg/web/views/structure"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(ctx context.Context, g *gin.Engine, svc structure.Service) {
	installMiddleware(g)
	installURL(ctx, g, svc)
}

func installMiddleware(g *gin.Engine) {
	g.ContextWithFallback = true
	server := config.Global().Server
	g.Use(cors.Default())
	g.Use(otelgin.Middleware(fmt.Sprintf("%s-%s", server.Platform, server.Service)))
	g.Use(logger.LogWithWriter())
}

func installURL(_ context.Context, g *gin.Engine, svc structure.Service) {
	api := g.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/health/live", health.Live)
	api.GET("/health/ready", health.Ready)

	{
		v1 := api.Group("/v1")
		sHandle := structureView.NewHandle(svc)
		structureRouter := v1.Group("/structure")
		structureRouter.GET("/view", sHandle.View)
		structureRouter.GET("/sdf", sHandle.SDF)
		structureRouter.GET("/stream", sHandle.Stream)
	}
}
