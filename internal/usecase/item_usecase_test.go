package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentio/internal/domain/entity"
	apperrors "rentio/pkg/errors"
)

type fakeItemRepository struct {
	seq   int
	items map[string]*entity.Item
}

func newFakeItemRepository() *fakeItemRepository {
	return &fakeItemRepository{items: make(map[string]*entity.Item)}
}

func (f *fakeItemRepository) Create(_ context.Context, item *entity.Item) error {
	f.seq++
	item.ID = fmt.Sprintf("item-%d", f.seq)
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepository) GetByID(_ context.Context, id string) (*entity.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("Item", nil)
	}
	return item, nil
}

func (f *fakeItemRepository) List(_ context.Context) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func seedItems(t *testing.T, uc *ItemUseCase) {
	t.Helper()
	fixtures := []CreateItemInput{
		{Title: "Vintage Chair", Price: 15, Category: "Furniture"},
		{Title: "Office Chair", Price: 10, Category: "Furniture"},
		{Title: "Mountain Bike", Price: 25, Category: "Sports"},
	}
	for _, input := range fixtures {
		_, err := uc.CreateItem(context.Background(), "owner-1", input)
		require.NoError(t, err)
	}
}

func TestCreateItemValidation(t *testing.T) {
	uc := NewItemUseCase(newFakeItemRepository())
	ctx := context.Background()

	_, err := uc.CreateItem(ctx, "owner-1", CreateItemInput{Title: "", Price: 10})
	assert.True(t, apperrors.Is(err, "BAD_REQUEST"))

	_, err = uc.CreateItem(ctx, "owner-1", CreateItemInput{Title: "Chair", Price: -1})
	assert.True(t, apperrors.Is(err, "BAD_REQUEST"))

	item, err := uc.CreateItem(ctx, "owner-1", CreateItemInput{Title: "Chair", Price: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "owner-1", item.OwnerID)
}

func TestListItemsSearchFilter(t *testing.T) {
	uc := NewItemUseCase(newFakeItemRepository())
	seedItems(t, uc)
	ctx := context.Background()

	all, err := uc.ListItems(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Case-insensitive substring match on the title.
	chairs, err := uc.ListItems(ctx, "chair", "")
	require.NoError(t, err)
	assert.Len(t, chairs, 2)

	none, err := uc.ListItems(ctx, "sofa", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListItemsCategoryFilter(t *testing.T) {
	uc := NewItemUseCase(newFakeItemRepository())
	seedItems(t, uc)
	ctx := context.Background()

	sports, err := uc.ListItems(ctx, "", "Sports")
	require.NoError(t, err)
	require.Len(t, sports, 1)
	assert.Equal(t, "Mountain Bike", sports[0].Title)

	// Search and category combine.
	combined, err := uc.ListItems(ctx, "office", "Furniture")
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "Office Chair", combined[0].Title)

	mismatch, err := uc.ListItems(ctx, "bike", "Furniture")
	require.NoError(t, err)
	assert.Empty(t, mismatch)
}
