package router

import (
	"github.com/labstack/echo/v4"

	"kitaconnect/internal/adapter/api/handler"
	"kitaconnect/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	messageHandler *handler.MessageHandler,
	careGroupHandler *handler.CareGroupHandler,
	profileHandler *handler.ProfileHandler,
	healthHandler *handler.HealthHandler,
) {
	SetupHealthRouter(e, healthHandler)
	SetupMessageRouter(e, messageHandler, authMiddleware)
	SetupCareGroupRouter(e, careGroupHandler, authMiddleware)
	SetupProfileRouter(e, profileHandler, authMiddleware)
}
