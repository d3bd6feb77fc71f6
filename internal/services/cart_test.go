package service_test

import (
	"context"
	"testing"

	"github.com/freshcutsco/meat-delivery-platform/internal/catalog"
	"github.com/freshcutsco/meat-delivery-platform/internal/errors"
	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	repository "github.com/freshcutsco/meat-delivery-platform/internal/repositories"
	service "github.com/freshcutsco/meat-delivery-platform/internal/services"
	"github.com/freshcutsco/meat-delivery-platform/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	sale := 239.0

	cat, err := catalog.New([]models.Product{
		{ID: 1, Name: "Chicken Curry Cut", Price: 320, SalePrice: &sale, Weight: "500g", Category: "chicken"},
		{ID: 2, Name: "Mutton Shoulder", Price: 660, Weight: "500g", Category: "mutton"},
		{ID: 3, Name: "Chicken Breast", Price: 340, Weight: "450g", Category: "chicken",
			VariantPrices: map[string]float64{"900g": 599}},
	})
	require.NoError(t, err)

	return cat
}

func newCartService(t *testing.T) (service.CartService, storage.Store, uuid.UUID) {
	t.Helper()

	store := storage.NewMemoryStore()

	return service.NewCartService(repository.NewCartRepo(store), testCatalog(t)), store, uuid.New()
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - New Line", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		summary, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 1, Quantity: 2})

		require.NoError(t, err)
		require.Len(t, summary.Lines, 1)
		assert.Equal(t, 2, summary.ItemCount)
		assert.NotEmpty(t, summary.Lines[0].ID)
		assert.InDelta(t, 478.0, summary.TotalPrice, 0.001)
	})

	t.Run("Success - Same Product Merges Into One Line", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		_, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 1, Quantity: 1})
		require.NoError(t, err)

		summary, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 1, Quantity: 3})
		require.NoError(t, err)

		require.Len(t, summary.Lines, 1)
		assert.Equal(t, 4, summary.Lines[0].Quantity)
	})

	t.Run("Success - Different Variant Stays Separate", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		_, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 3, Quantity: 1})
		require.NoError(t, err)

		summary, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 3, Quantity: 1, Variant: "900g"})
		require.NoError(t, err)

		require.Len(t, summary.Lines, 2)
		assert.InDelta(t, 340.0, summary.Lines[0].UnitPrice, 0.001)
		assert.InDelta(t, 599.0, summary.Lines[1].UnitPrice, 0.001)
	})

	t.Run("Success - Totals Use Sale Price", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		_, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 1, Quantity: 2})
		require.NoError(t, err)

		summary, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 2, Quantity: 1})
		require.NoError(t, err)

		assert.Equal(t, 3, summary.ItemCount)
		assert.InDelta(t, 239.0*2+660.0, summary.TotalPrice, 0.001)
		assert.InDelta(t, (320.0-239.0)*2, summary.TotalDiscount, 0.001)
	})

	t.Run("Failure - Zero Quantity", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		_, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 1, Quantity: 0})

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		_, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 99, Quantity: 1})

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		summary, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 1, Quantity: 1})
		require.NoError(t, err)

		summary, err = svc.RemoveItem(ctx, userID, summary.Lines[0].ID)
		require.NoError(t, err)
		assert.Empty(t, summary.Lines)
	})

	t.Run("Success - Unknown Line Is No-Op", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		_, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 1, Quantity: 1})
		require.NoError(t, err)

		summary, err := svc.RemoveItem(ctx, userID, uuid.NewString())
		require.NoError(t, err)
		assert.Len(t, summary.Lines, 1)
	})
}

func TestCartService_SetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Overwrite", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		summary, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 2, Quantity: 1})
		require.NoError(t, err)

		summary, err = svc.SetQuantity(ctx, userID,
			&models.UpdateQuantityRequest{LineID: summary.Lines[0].ID, Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, summary.Lines[0].Quantity)
	})

	t.Run("Success - Zero Removes Line", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		summary, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 2, Quantity: 3})
		require.NoError(t, err)

		summary, err = svc.SetQuantity(ctx, userID,
			&models.UpdateQuantityRequest{LineID: summary.Lines[0].ID, Quantity: 0})
		require.NoError(t, err)
		assert.Empty(t, summary.Lines)
	})

	t.Run("Failure - Unknown Line", func(t *testing.T) {
		svc, _, userID := newCartService(t)

		_, err := svc.SetQuantity(ctx, userID,
			&models.UpdateQuantityRequest{LineID: uuid.NewString(), Quantity: 2})

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestCartService_Persistence(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Snapshot Survives Service Restart", func(t *testing.T) {
		store := storage.NewMemoryStore()
		repo := repository.NewCartRepo(store)
		userID := uuid.New()

		svc := service.NewCartService(repo, testCatalog(t))

		_, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 1, Quantity: 2})
		require.NoError(t, err)

		reborn := service.NewCartService(repository.NewCartRepo(store), testCatalog(t))

		summary, err := reborn.GetCart(ctx, userID)
		require.NoError(t, err)
		require.Len(t, summary.Lines, 1)
		assert.Equal(t, 2, summary.ItemCount)
	})

	t.Run("Success - Clear Empties Snapshot", func(t *testing.T) {
		svc, store, userID := newCartService(t)

		_, err := svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: 1, Quantity: 2})
		require.NoError(t, err)

		summary, err := svc.Clear(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, summary.Lines)

		reborn := service.NewCartService(repository.NewCartRepo(store), testCatalog(t))

		summary, err = reborn.GetCart(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, summary.Lines)
	})
}
