package router

import (
	"github.com/labstack/echo/v4"

	"rentio/internal/adapter/api/handler"
	"rentio/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	authGroup := e.Group("/v1/auth")

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, authMiddleware.Authenticate)
	authGroup.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}
