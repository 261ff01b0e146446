package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
)

// Service exposes user management over HTTP
type Service struct {
	app *App
}

// NewService creates a new users HTTP service
func NewService(app *App) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the authenticated user endpoints on rg
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", s.Me)
	rg.GET("/users", s.ListUsers)
	rg.GET("/users/:id", s.GetUser)
	rg.POST("/users", s.CreateUser)
	rg.PUT("/users/:id", s.UpdateUser)
	rg.DELETE("/users/:id", s.DeleteUser)
}

// RegisterPublicRoutes mounts endpoints that run before a user is known
func (s *Service) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", s.Login)
	rg.POST("/register", s.Register)
}

func (s *Service) Me(c *gin.Context) {
	c.JSON(http.StatusOK, api.CurrentUser(c))
}

func (s *Service) ListUsers(c *gin.Context) {
	users, err := s.app.ListUsers(c.Request.Context(), api.CurrentUser(c))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Service) GetUser(c *gin.Context) {
	user, err := s.app.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Service) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	user, err := s.app.CreateUser(c.Request.Context(), api.CurrentUser(c), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Service) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	user, err := s.app.UpdateUser(c.Request.Context(), api.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Service) DeleteUser(c *gin.Context) {
	if err := s.app.DeleteUser(c.Request.Context(), api.CurrentUser(c), c.Param("id")); err != nil {
		api.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Service) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	user, err := s.app.Login(c.Request.Context(), req.Email)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Service) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	user, err := s.app.Register(c.Request.Context(), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
