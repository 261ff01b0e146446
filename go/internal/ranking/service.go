package ranking

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
)

// Service exposes rankings over HTTP
type Service struct {
	app *App
}

// NewService creates a new ranking HTTP service
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts GET /rankings/:modalityId on rg
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rankings/:modalityId", s.GetRanking)
}

// GetRanking handles GET /rankings/:modalityId?municipality=
func (s *Service) GetRanking(c *gin.Context) {
	entries, err := s.app.CalculateRanking(c.Request.Context(), c.Param("modalityId"), c.Query("municipality"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
