package router

import (
	"github.com/labstack/echo/v4"

	"kitaconnect/internal/adapter/api/handler"
	"kitaconnect/internal/adapter/api/middleware"
)

// SetupMessageRouter registers the direct-messaging routes.
func SetupMessageRouter(e *echo.Echo, messageHandler *handler.MessageHandler, authMiddleware *middleware.AuthMiddleware) {
	messageGroup := e.Group("/v1/messages")
	messageGroup.Use(authMiddleware.Authenticate)

	messageGroup.GET("", messageHandler.ListConversations)                      // GET /v1/messages - caller's conversations
	messageGroup.GET("/:conversationId", messageHandler.GetMessages)            // GET /v1/messages/:conversationId - thread messages
	messageGroup.POST("/:conversationId", messageHandler.SendMessage)           // POST /v1/messages/:conversationId - append a message
	messageGroup.DELETE("/:conversationId", messageHandler.DeleteConversation)  // DELETE /v1/messages/:conversationId?confirm=true
	messageGroup.POST("/:conversationId/read", messageHandler.MarkRead)         // POST /v1/messages/:conversationId/read
}
