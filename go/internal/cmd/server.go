package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
	"github.com/pgdem/desporto/go/internal/gateway"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(cfg *Config, services *Services, ws *gateway.WebSocketHandler) *http.Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	registerServices(router, services)
	ws.RegisterRoutes(router)
	setupHealthCheck(router)

	handler := c.Handler(router)

	// Setup HTTP/2 server
	return &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func registerServices(router *gin.Engine, services *Services) {
	public := router.Group("/api")
	services.Users.RegisterPublicRoutes(public)

	authed := router.Group("/api", api.RequireUser(services.UsersApp))
	services.Users.RegisterRoutes(authed)
	services.Audit.RegisterRoutes(authed)
	services.Notifications.RegisterRoutes(authed)
	services.Catalog.RegisterRoutes(authed)
	services.Schools.RegisterRoutes(authed)
	services.Athletes.RegisterRoutes(authed)
	services.Games.RegisterRoutes(authed)
	services.Ranking.RegisterRoutes(authed)
	services.Dashboard.RegisterRoutes(authed)
}

func setupHealthCheck(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Str("user_id", c.GetHeader(api.UserHeader)).
			Msg("request")
	}
}
