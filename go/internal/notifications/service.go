package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
)

// Service exposes notifications over HTTP
type Service struct {
	app *App
}

// NewService creates a new notifications HTTP service
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the notification endpoints on rg
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", s.List)
	rg.POST("/notifications", s.Send)
	rg.POST("/notifications/:id/read", s.MarkAsRead)
}

func (s *Service) List(c *gin.Context) {
	items, err := s.app.GetNotifications(c.Request.Context(), api.CurrentUser(c))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Service) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}

	n, err := s.app.Send(c.Request.Context(), api.CurrentUser(c), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (s *Service) MarkAsRead(c *gin.Context) {
	n, err := s.app.MarkAsRead(c.Request.Context(), api.CurrentUser(c), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}
