package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
)

// Service exposes dashboard statistics over HTTP
type Service struct {
	app *App
}

// NewService creates a new dashboard HTTP service
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts GET /dashboard on rg
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", s.Stats)
}

// Stats handles GET /dashboard?municipality=. Municipal users always get
// their own municipality's figures.
func (s *Service) Stats(c *gin.Context) {
	user := api.CurrentUser(c)
	municipalityID := c.Query("municipality")
	if !user.Role.IsElevated() && user.MunicipalityID != "" {
		municipalityID = user.MunicipalityID
	}

	stats, err := s.app.Stats(c.Request.Context(), municipalityID)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
