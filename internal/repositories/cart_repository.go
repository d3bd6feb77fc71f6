package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	"github.com/freshcutsco/meat-delivery-platform/internal/storage"
	"github.com/google/uuid"
)

type CartRepository interface {
	Load(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	store storage.Store
}

func NewCartRepo(store storage.Store) CartRepository {
	return &cartRepository{store: store}
}

// Load rehydrates the cart snapshot. A missing or malformed snapshot yields a
// fresh empty cart rather than an error; only storage failures propagate.
func (r *cartRepository) Load(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	value, found, err := r.store.Get(ctx, cartKey(userID.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	if !found {
		return emptyCart(userID), nil
	}

	var cart models.Cart

	if err := json.Unmarshal([]byte(value), &cart); err != nil {
		slog.Warn("Discarding malformed cart snapshot",
			slog.String("userId", userID.String()), slog.String("error", err.Error()))

		return emptyCart(userID), nil
	}

	cart.UserID = userID

	return &cart, nil
}

// Save serializes the full cart state, overwriting any previous snapshot.
func (r *cartRepository) Save(ctx context.Context, cart *models.Cart) error {

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.store.Set(ctx, cartKey(cart.UserID.String()), string(data), 0); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}

	return nil
}

func emptyCart(userID uuid.UUID) *models.Cart {
	return &models.Cart{
		UserID:    userID,
		Lines:     []models.CartLine{},
		UpdatedAt: time.Now(),
	}
}
