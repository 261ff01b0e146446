package schools

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
)

// Service exposes schools over HTTP
type Service struct {
	app *App
}

// NewService creates a new schools HTTP service
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the school endpoints on rg
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/schools", s.ListSchools)
	rg.GET("/schools/:id", s.GetSchool)
	rg.POST("/schools", s.CreateSchool)
}

// ListSchools handles GET /schools?municipality=
func (s *Service) ListSchools(c *gin.Context) {
	schools, err := s.app.GetSchools(c.Request.Context(), c.Query("municipality"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, schools)
}

func (s *Service) GetSchool(c *gin.Context) {
	school, err := s.app.GetSchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

func (s *Service) CreateSchool(c *gin.Context) {
	var req CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	school, err := s.app.CreateSchool(c.Request.Context(), api.CurrentUser(c), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, school)
}
