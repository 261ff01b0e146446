package athletes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
	"github.com/pgdem/desporto/go/internal/models"
)

// Service exposes athletes over HTTP
type Service struct {
	app *App
}

// NewService creates a new athletes HTTP service
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the athlete endpoints on rg
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/athletes", s.ListAthletes)
	rg.GET("/athletes/:id", s.GetAthlete)
	rg.POST("/athletes", s.RegisterAthlete)
	rg.PUT("/athletes/:id", s.UpdateAthlete)
	rg.DELETE("/athletes/:id", s.DeleteAthlete)
}

// ListAthletes handles GET /athletes?school=&municipality=&gender=&status=
func (s *Service) ListAthletes(c *gin.Context) {
	filter := AthleteFilter{
		SchoolID:       c.Query("school"),
		MunicipalityID: c.Query("municipality"),
		Gender:         models.Gender(c.Query("gender")),
		Status:         models.AthleteStatus(c.Query("status")),
	}
	items, err := s.app.GetAthletes(c.Request.Context(), filter)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Service) GetAthlete(c *gin.Context) {
	athlete, err := s.app.GetAthlete(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, athlete)
}

func (s *Service) RegisterAthlete(c *gin.Context) {
	var req RegisterAthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	athlete, err := s.app.RegisterAthlete(c.Request.Context(), api.CurrentUser(c), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, athlete)
}

func (s *Service) UpdateAthlete(c *gin.Context) {
	var req UpdateAthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	athlete, err := s.app.UpdateAthlete(c.Request.Context(), api.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, athlete)
}

func (s *Service) DeleteAthlete(c *gin.Context) {
	if err := s.app.DeleteAthlete(c.Request.Context(), api.CurrentUser(c), c.Param("id")); err != nil {
		api.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
