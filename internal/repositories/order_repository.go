package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	"github.com/freshcutsco/meat-delivery-platform/internal/storage"
	"github.com/google/uuid"
)

type OrderRepository interface {
	Append(ctx context.Context, order *models.Order) error
	List(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// orderRepository keeps a user's order history as one JSON array snapshot.
type orderRepository struct {
	store storage.Store
}

func NewOrderRepo(store storage.Store) OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {

	value, found, err := r.store.Get(ctx, ordersKey(userID.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to load orders snapshot: %w", err)
	}

	if !found {
		return []models.Order{}, nil
	}

	var orders []models.Order

	if err := json.Unmarshal([]byte(value), &orders); err != nil {
		slog.Warn("Discarding malformed orders snapshot",
			slog.String("userId", userID.String()), slog.String("error", err.Error()))

		return []models.Order{}, nil
	}

	return orders, nil
}

func (r *orderRepository) Append(ctx context.Context, order *models.Order) error {

	orders, err := r.List(ctx, order.UserID)
	if err != nil {
		return err
	}

	orders = append(orders, *order)

	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to marshal orders: %w", err)
	}

	if err := r.store.Set(ctx, ordersKey(order.UserID.String()), string(data), 0); err != nil {
		return fmt.Errorf("failed to save orders snapshot: %w", err)
	}

	return nil
}
