package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jtech/tasklist/internal/server/repositories/tasks"
	"github.com/jtech/tasklist/internal/server/services"
)

func (s *Server) createTask(c echo.Context) error {
	req := &taskRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	in := services.NewTask{
		Title:       strOrEmpty(req.Title),
		Description: strOrEmpty(req.Description),
		TaskListID:  strOrEmpty(req.TaskListID),
	}
	if req.Completed != nil {
		in.Completed = *req.Completed
	}

	task, err := s.tasks.Create(c.Request().Context(), requestUser(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

func taskFilter(c echo.Context) tasks.Filter {
	return tasks.Filter{
		Title:      c.QueryParam("title"),
		TaskListID: c.QueryParam("taskListId"),
	}
}

func (s *Server) listTasks(c echo.Context) error {
	page, err := s.tasks.List(c.Request().Context(), requestUser(c), taskFilter(c), pageRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toTaskResponse))
}

func (s *Server) listAllTasks(c echo.Context) error {
	items, err := s.tasks.ListAll(c.Request().Context(), requestUser(c), taskFilter(c))
	if err != nil {
		return err
	}

	out := make([]taskResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toTaskResponse(item))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getTask(c echo.Context) error {
	task, err := s.tasks.Get(c.Request().Context(), requestUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) updateTask(c echo.Context) error {
	req := &taskRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	patch := services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		TaskListID:  req.TaskListID,
	}

	task, err := s.tasks.Update(c.Request().Context(), requestUser(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) deleteTask(c echo.Context) error {
	if err := s.tasks.Delete(c.Request().Context(), requestUser(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
