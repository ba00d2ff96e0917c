package router

import (
	"github.com/labstack/echo/v4"

	"rentio/internal/adapter/api/handler"
	"rentio/internal/adapter/api/middleware"
)

func SetupItemRouter(e *echo.Echo, itemHandler *handler.ItemHandler, authMiddleware *middleware.AuthMiddleware) {
	itemGroup := e.Group("/v1/items")

	itemGroup.GET("", itemHandler.ListItems)
	itemGroup.GET("/:id", itemHandler.GetItem)
	itemGroup.POST("", itemHandler.CreateItem, authMiddleware.Authenticate)
}
