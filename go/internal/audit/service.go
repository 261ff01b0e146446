package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
)

// Service exposes the audit trail over HTTP
type Service struct {
	app *App
}

// NewService creates a new audit HTTP service
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the audit endpoints on rg
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit", s.List)
}

// List handles GET /audit?actor=&action=&origin=&limit=
func (s *Service) List(c *gin.Context) {
	filter := ListFilter{
		ActorID: c.Query("actor"),
		Action:  c.Query("action"),
		Origin:  c.Query("origin"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		filter.Limit = limit
	}

	logs, err := s.app.List(c.Request.Context(), api.CurrentUser(c), filter)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
