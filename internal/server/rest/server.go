// Package rest exposes the service layer over HTTP/JSON. It owns route
// registration, request/response DTO shaping, bearer-token identity
// resolution, and the mapping from error kinds to status codes.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jtech/tasklist/internal/logging"
	"github.com/jtech/tasklist/internal/server/services"
)

type Server struct {
	address string
	logger  logging.Logger
	auth    *services.AuthService
	lists   *services.TaskListService
	tasks   *services.TaskService
	echo    *echo.Echo
}

func NewServer(address string, l logging.Logger, a *services.AuthService, tl *services.TaskListService, t *services.TaskService) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "rest_server"),
		auth:    a,
		lists:   tl,
		tasks:   t,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = s.errorHandler
	s.routes(e)

	s.echo = e
	return s
}

func (s *Server) routes(e *echo.Echo) {
	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/refresh", s.refresh)
	authGroup.GET("/me", s.currentUser, s.requireAuth)

	lists := api.Group("/task-lists", s.requireAuth)
	lists.POST("", s.createTaskList)
	lists.GET("", s.listTaskLists)
	lists.GET("/all", s.listAllTaskLists)
	lists.GET("/:id", s.getTaskList)
	lists.PUT("/:id", s.updateTaskList)
	lists.DELETE("/:id", s.deleteTaskList)

	tasks := api.Group("/tasks", s.requireAuth)
	tasks.POST("", s.createTask)
	tasks.GET("", s.listTasks)
	tasks.GET("/all", s.listAllTasks)
	tasks.GET("/:id", s.getTask)
	tasks.PUT("/:id", s.updateTask)
	tasks.DELETE("/:id", s.deleteTask)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
