package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jtech/tasklist/internal/common"
)

type errorResponse struct {
	Error  string                   `json:"error"`
	Fields []common.FieldViolation  `json:"fields,omitempty"`
}

// errorHandler maps error kinds to status codes. Anything unclassified is
// logged with full detail server-side and answered with a generic message.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := errorResponse{Error: "internal error"}

	var verr *common.ValidationError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		body = errorResponse{Error: "validation failed", Fields: verr.Violations}
	case errors.Is(err, common.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Error = common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrUnauthenticated):
		status = http.StatusUnauthorized
		body.Error = common.ErrUnauthenticated.Error()
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
		body.Error = common.ErrNotFound.Error()
	case errors.Is(err, common.ErrDuplicateEmail):
		status = http.StatusConflict
		body.Error = common.ErrDuplicateEmail.Error()
	case errors.Is(err, common.ErrConflict):
		status = http.StatusConflict
		body.Error = common.ErrConflict.Error()
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			body.Error = msg
		}
	default:
		s.logger.Error(c.Request().Context(), "internal error",
			"method", c.Request().Method, "path", c.Path(), "error", err.Error())
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		s.logger.Error(c.Request().Context(), "error response write failed", "error", writeErr.Error())
	}
}
