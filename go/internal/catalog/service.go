package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
)

// Service exposes the catalog over HTTP
type Service struct {
	app *App
}

// NewService creates a new catalog HTTP service
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the catalog endpoints on rg
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/municipalities", s.ListMunicipalities)
	rg.GET("/modalities", s.ListModalities)
	rg.POST("/modalities", s.CreateModality)
	rg.GET("/age-groups", s.ListAgeGroups)
	rg.POST("/age-groups", s.CreateAgeGroup)
}

func (s *Service) ListMunicipalities(c *gin.Context) {
	items, err := s.app.GetMunicipalities(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Service) ListModalities(c *gin.Context) {
	items, err := s.app.GetModalities(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListAgeGroups handles GET /age-groups?modality=
func (s *Service) ListAgeGroups(c *gin.Context) {
	items, err := s.app.GetAgeGroups(c.Request.Context(), c.Query("modality"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Service) CreateModality(c *gin.Context) {
	var req CreateModalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	m, err := s.app.CreateModality(c.Request.Context(), api.CurrentUser(c), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (s *Service) CreateAgeGroup(c *gin.Context) {
	var req CreateAgeGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	g, err := s.app.CreateAgeGroup(c.Request.Context(), api.CurrentUser(c), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}
