package rest

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jtech/tasklist/internal/server/models"
)

const currentUserKey = "currentUser"

// requireAuth resolves the caller's identity from the Authorization header
// exactly once per request and stores the user in the request context.
// Identity resolution happens before any resource lookup, so an
// unauthenticated caller never learns whether a resource exists.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

		user, err := s.auth.ResolveIdentity(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(currentUserKey, user)
		return next(c)
	}
}

func requestUser(c echo.Context) *models.User {
	user, _ := c.Get(currentUserKey).(*models.User)
	return user
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
