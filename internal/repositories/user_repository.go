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

type UserRepository interface {
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
	SetCurrentUserID(ctx context.Context, userID uuid.UUID) error
}

// userRepository keeps the whole users table as one JSON document keyed by
// phone number, mirroring the table-in-a-key layout of the backing store.
type userRepository struct {
	store storage.Store
}

func NewUserRepo(store storage.Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) loadTable(ctx context.Context) (map[string]models.User, error) {

	value, found, err := r.store.Get(ctx, usersTableKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load users table: %w", err)
	}

	if !found {
		return map[string]models.User{}, nil
	}

	var table map[string]models.User

	if err := json.Unmarshal([]byte(value), &table); err != nil {
		slog.Warn("Discarding malformed users table", slog.String("error", err.Error()))

		return map[string]models.User{}, nil
	}

	return table, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {

	table, err := r.loadTable(ctx)
	if err != nil {
		return nil, err
	}

	user, ok := table[phone]
	if !ok {
		return nil, nil
	}

	return &user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {

	table, err := r.loadTable(ctx)
	if err != nil {
		return err
	}

	table[user.Phone] = *user

	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal users table: %w", err)
	}

	if err := r.store.Set(ctx, usersTableKey, string(data), 0); err != nil {
		return fmt.Errorf("failed to save users table: %w", err)
	}

	return nil
}

func (r *userRepository) SetCurrentUserID(ctx context.Context, userID uuid.UUID) error {

	if err := r.store.Set(ctx, currentSessionKey, userID.String(), 0); err != nil {
		return fmt.Errorf("failed to save session user id: %w", err)
	}

	return nil
}
