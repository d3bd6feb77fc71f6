package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	repository "github.com/freshcutsco/meat-delivery-platform/internal/repositories"
	"github.com/freshcutsco/meat-delivery-platform/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Append And List", func(t *testing.T) {
		repo := repository.NewOrderRepo(storage.NewMemoryStore())
		userID := uuid.New()

		first := &models.Order{ID: uuid.New(), UserID: userID, TotalPrice: 1138, Status: models.OrderStatusPlaced}
		second := &models.Order{ID: uuid.New(), UserID: userID, TotalPrice: 660, Status: models.OrderStatusPlaced}

		require.NoError(t, repo.Append(ctx, first))
		require.NoError(t, repo.Append(ctx, second))

		orders, err := repo.List(ctx, userID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, first.ID, orders[0].ID)
		assert.Equal(t, second.ID, orders[1].ID)
	})

	t.Run("Success - Empty History", func(t *testing.T) {
		repo := repository.NewOrderRepo(storage.NewMemoryStore())

		orders, err := repo.List(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("Success - Histories Are Per User", func(t *testing.T) {
		repo := repository.NewOrderRepo(storage.NewMemoryStore())
		userA, userB := uuid.New(), uuid.New()

		require.NoError(t, repo.Append(ctx, &models.Order{ID: uuid.New(), UserID: userA}))

		orders, err := repo.List(ctx, userB)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("Success - Malformed Snapshot Is Discarded", func(t *testing.T) {
		store := storage.NewMemoryStore()
		repo := repository.NewOrderRepo(store)
		userID := uuid.New()

		require.NoError(t, store.Set(ctx, fmt.Sprintf("orders:%s", userID), "[broken", 0))

		orders, err := repo.List(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}
