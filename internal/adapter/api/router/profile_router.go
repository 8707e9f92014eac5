package router

import (
	"github.com/labstack/echo/v4"

	"kitaconnect/internal/adapter/api/handler"
	"kitaconnect/internal/adapter/api/middleware"
)

// SetupProfileRouter registers the profile-directory routes.
func SetupProfileRouter(e *echo.Echo, profileHandler *handler.ProfileHandler, authMiddleware *middleware.AuthMiddleware) {
	userGroup := e.Group("/v1/users")
	userGroup.Use(authMiddleware.Authenticate)
	userGroup.GET("/:id", profileHandler.GetUser) // GET /v1/users/:id

	caregiverGroup := e.Group("/v1/caregivers")
	caregiverGroup.Use(authMiddleware.Authenticate)
	caregiverGroup.GET("", profileHandler.SearchCaregivers) // GET /v1/caregivers?postalCode=
	caregiverGroup.GET("/:id", profileHandler.GetCaregiver) // GET /v1/caregivers/:id
}
