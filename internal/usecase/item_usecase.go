package usecase

import (
	"context"
	"log"
	"strings"

	"rentio/internal/domain/entity"
	"rentio/internal/domain/repository"
	"rentio/pkg/errors"
)

type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{
		itemRepo: itemRepo,
	}
}

type CreateItemInput struct {
	Title    string
	Price    float64
	Distance float64
	Image    string
	Category string
	Location entity.Location
}

func (uc *ItemUseCase) CreateItem(ctx context.Context, ownerID string, input CreateItemInput) (*entity.Item, error) {
	if input.Title == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if input.Price < 0 {
		return nil, errors.BadRequest("Price cannot be negative", nil)
	}

	item := &entity.Item{
		Title:    input.Title,
		Price:    input.Price,
		Distance: input.Distance,
		Image:    input.Image,
		Category: input.Category,
		Location: input.Location,
		OwnerID:  ownerID,
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		log.Printf("CreateItem Error: Failed to create item for owner %s: %v", ownerID, err)
		return nil, err
	}

	return item, nil
}

// ListItems returns all listings, filtered client-side by a
// case-insensitive title substring and an exact category match, the
// same way the browse screen filters its result set.
func (uc *ItemUseCase) ListItems(ctx context.Context, search, category string) ([]*entity.Item, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		log.Printf("ListItems Error: Failed to list items: %v", err)
		return nil, err
	}

	if search == "" && category == "" {
		return items, nil
	}

	needle := strings.ToLower(search)
	var filtered []*entity.Item
	for _, item := range items {
		if needle != "" && !strings.Contains(strings.ToLower(item.Title), needle) {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		filtered = append(filtered, item)
	}

	return filtered, nil
}

func (uc *ItemUseCase) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	return uc.itemRepo.GetByID(ctx, id)
}
