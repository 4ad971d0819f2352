package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jtech/tasklist/internal/server/repositories/tasklists"
	"github.com/jtech/tasklist/internal/server/services"
)

func (s *Server) createTaskList(c echo.Context) error {
	req := &taskListRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	list, err := s.lists.Create(c.Request().Context(), requestUser(c), strOrEmpty(req.Name))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskListResponse(list))
}

func (s *Server) listTaskLists(c echo.Context) error {
	filter := tasklists.Filter{Name: c.QueryParam("name")}

	page, err := s.lists.List(c.Request().Context(), requestUser(c), filter, pageRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toTaskListResponse))
}

func (s *Server) listAllTaskLists(c echo.Context) error {
	filter := tasklists.Filter{Name: c.QueryParam("name")}

	items, err := s.lists.ListAll(c.Request().Context(), requestUser(c), filter)
	if err != nil {
		return err
	}

	out := make([]taskListResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toTaskListResponse(item))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getTaskList(c echo.Context) error {
	list, err := s.lists.Get(c.Request().Context(), requestUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskListResponse(list))
}

func (s *Server) updateTaskList(c echo.Context) error {
	req := &taskListRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	list, err := s.lists.Update(c.Request().Context(), requestUser(c), c.Param("id"),
		services.TaskListPatch{Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskListResponse(list))
}

func (s *Server) deleteTaskList(c echo.Context) error {
	if err := s.lists.Delete(c.Request().Context(), requestUser(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
