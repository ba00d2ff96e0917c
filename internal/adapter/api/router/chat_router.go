package router

import (
	"github.com/labstack/echo/v4"

	"rentio/internal/adapter/api/handler"
	"rentio/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all chat-related routes (excluding WebSocket).
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("/resolve", chatHandler.ResolveChat)       // POST /v1/chats/resolve - Find or create a conversation
	chatGroup.GET("", chatHandler.GetChatList)                // GET /v1/chats - Conversation previews for the caller
	chatGroup.GET("/:id/messages", chatHandler.GetChatMessages) // GET /v1/chats/:id/messages - Messages, oldest first
	chatGroup.PUT("/:id/read", chatHandler.MarkChatAsRead)    // PUT /v1/chats/:id/read - Clear unread state

	messageGroup := e.Group("/v1/messages")
	messageGroup.Use(authMiddleware.Authenticate)
	messageGroup.POST("", chatHandler.SendMessage) // POST /v1/messages - Send a message
}
