package games

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
	"github.com/pgdem/desporto/go/internal/models"
)

// Service exposes the game lifecycle over HTTP
type Service struct {
	app *App
}

// NewService creates a new games HTTP service
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the game endpoints on rg
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/games", s.ListGames)
	rg.GET("/games/:id", s.GetGame)
	rg.POST("/games", s.ScheduleGame)
	rg.POST("/games/result", s.SaveGameResult)
	rg.POST("/games/:id/validate", s.ValidateGame)
}

// ListGames handles GET /games?modality=&municipality=&status=&school=
func (s *Service) ListGames(c *gin.Context) {
	filter := GameFilter{
		ModalityID:     c.Query("modality"),
		MunicipalityID: c.Query("municipality"),
		Status:         models.GameStatus(c.Query("status")),
		School:         c.Query("school"),
	}
	games, err := s.app.GetGames(c.Request.Context(), filter)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (s *Service) GetGame(c *gin.Context) {
	g, err := s.app.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Service) ScheduleGame(c *gin.Context) {
	var req ScheduleGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	g, err := s.app.ScheduleGame(c.Request.Context(), api.CurrentUser(c), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (s *Service) SaveGameResult(c *gin.Context) {
	var game models.Game
	if err := c.ShouldBindJSON(&game); err != nil {
		api.BadRequest(c, err)
		return
	}
	g, err := s.app.SaveGameResult(c.Request.Context(), api.CurrentUser(c), game)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Service) ValidateGame(c *gin.Context) {
	var req ValidateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	g, err := s.app.ValidateGame(c.Request.Context(), api.CurrentUser(c), c.Param("id"), req.Status)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}
