package router

import (
	"github.com/labstack/echo/v4"

	"kitaconnect/internal/adapter/api/handler"
)

// SetupDevRouter registers the local-testing endpoints. Never routed in
// production.
func SetupDevRouter(e *echo.Echo, environment string, devTokenHandler *handler.DevTokenHandler) {
	if environment == "production" {
		return
	}

	e.POST("/v1/dev/token", devTokenHandler.GenerateToken)
	e.POST("/v1/dev/users", devTokenHandler.CreateUser)
}
