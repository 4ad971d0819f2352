package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) register(c echo.Context) error {
	req := &registerRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	user, err := s.auth.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

func (s *Server) login(c echo.Context) error {
	req := &loginRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, pair, err := s.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		User:         toUserResponse(user),
	})
}

func (s *Server) refresh(c echo.Context) error {
	req := &refreshRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	pair, err := s.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}

func (s *Server) currentUser(c echo.Context) error {
	return c.JSON(http.StatusOK, toUserResponse(requestUser(c)))
}
