package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/papermill/internal/config"
	"github.com/polkiloo/papermill/internal/server/http/handlers"
	"github.com/polkiloo/papermill/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.BrokerFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	if h := corsHandler(cfg, logger); h != nil {
		engine.Use(h)
	}
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	ruleHandler := handlers.NewRuleHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	pricing := authed.Group("/pricing")
	pricing.POST("/quote", orderHandler.Quote)
	pricing.GET("/rules", ruleHandler.Active)

	orders := authed.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id", orderHandler.Update)
	orders.POST("/:id/status", orderHandler.Transition)
	orders.POST("/:id/cancel", orderHandler.Cancel)
	orders.PUT("/:id/instructions", orderHandler.Instructions)
	orders.POST("/:id/review", orderHandler.Review)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.PATCH("/orders/:id", orderHandler.AdminUpdate)
	admin.GET("/pricing-rules", ruleHandler.List)
	admin.POST("/pricing-rules", ruleHandler.Create)
	admin.DELETE("/pricing-rules", ruleHandler.DeleteAll)
	admin.POST("/pricing-rules/seed", ruleHandler.Seed)
	admin.GET("/pricing-rules/:id", ruleHandler.Get)
	admin.PUT("/pricing-rules/:id", ruleHandler.Update)
	admin.DELETE("/pricing-rules/:id", ruleHandler.Delete)

	return engine
}

// corsHandler returns nil when no origins are configured or the configuration is unusable.
func corsHandler(cfg *config.Config, logger *slog.Logger) gin.HandlerFunc {
	if cfg == nil || len(cfg.CORSAllowedOrigins) == 0 {
		return nil
	}

	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Encoding", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Authorization", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
		corsCfg.AllowCredentials = true
	}

	if err := corsCfg.Validate(); err != nil {
		logger.Warn("cors disabled", slog.String("error", err.Error()))
		return nil
	}
	return cors.New(corsCfg)
}
