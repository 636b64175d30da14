package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-manager/internal/api/middleware"
	"github.com/taskflow/task-manager/internal/core/domain"
)

// ctxUser returns the user the Auth middleware resolved. Its absence means
// the route was registered without the middleware, which is reported as
// unauthorized rather than trusted.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserKey).(*domain.User)
	if user == nil || user.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
