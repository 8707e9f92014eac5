package router

import (
	"github.com/labstack/echo/v4"

	"kitaconnect/internal/adapter/api/handler"
	"kitaconnect/internal/adapter/api/middleware"
)

// SetupCareGroupRouter registers the care-group routes.
func SetupCareGroupRouter(e *echo.Echo, careGroupHandler *handler.CareGroupHandler, authMiddleware *middleware.AuthMiddleware) {
	groupGroup := e.Group("/v1/care-groups")
	groupGroup.Use(authMiddleware.Authenticate)

	groupGroup.GET("", careGroupHandler.GetByUser)                     // GET /v1/care-groups?userId=
	groupGroup.GET("/me", careGroupHandler.GetMine)                    // GET /v1/care-groups/me
	groupGroup.PUT("", careGroupHandler.Save)                          // PUT /v1/care-groups
	groupGroup.DELETE("/:caregiverId", careGroupHandler.Delete)        // DELETE /v1/care-groups/:caregiverId
	groupGroup.POST("/me/leave", careGroupHandler.Leave)               // POST /v1/care-groups/me/leave
	groupGroup.POST("/me/messages", careGroupHandler.SendGroupMessage) // POST /v1/care-groups/me/messages
}
