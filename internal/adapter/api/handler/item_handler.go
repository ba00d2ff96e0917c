package handler

import (
	"github.com/labstack/echo/v4"

	"rentio/internal/domain/entity"
	"rentio/internal/usecase"
	"rentio/pkg/response"
)

type ItemHandler struct {
	itemUseCase *usecase.ItemUseCase
}

func NewItemHandler(itemUseCase *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
	}
}

type createItemRequest struct {
	Title     string  `json:"title" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Distance  float64 `json:"distance"`
	Image     string  `json:"image" validate:"omitempty,url"`
	Category  string  `json:"category"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	item, err := h.itemUseCase.CreateItem(c.Request().Context(), userID, usecase.CreateItemInput{
		Title:    req.Title,
		Price:    req.Price,
		Distance: req.Distance,
		Image:    req.Image,
		Category: req.Category,
		Location: entity.Location{Latitude: req.Latitude, Longitude: req.Longitude},
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

// ListItems supports ?search= (title substring) and ?category= filters.
func (h *ItemHandler) ListItems(c echo.Context) error {
	items, err := h.itemUseCase.ListItems(c.Request().Context(), c.QueryParam("search"), c.QueryParam("category"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	item, err := h.itemUseCase.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}
