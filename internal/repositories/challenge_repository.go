package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	"github.com/freshcutsco/meat-delivery-platform/internal/storage"
)

type ChallengeRepository interface {
	Save(ctx context.Context, challenge *models.Challenge) error
	Get(ctx context.Context, phone string) (*models.Challenge, error)
	Delete(ctx context.Context, phone string) error
}

type challengeRepository struct {
	store storage.Store
}

func NewChallengeRepo(store storage.Store) ChallengeRepository {
	return &challengeRepository{store: store}
}

// Save overwrites any pending challenge for the phone; at most one is live at
// a time. The storage ttl is twice the challenge lifetime so a stale record is
// still readable and verification can report "expired" instead of "not found".
func (r *challengeRepository) Save(ctx context.Context, challenge *models.Challenge) error {

	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	ttl := 2 * time.Until(challenge.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("challenge already expired at save time")
	}

	if err := r.store.Set(ctx, challengeKey(challenge.Phone), string(data), ttl); err != nil {
		return fmt.Errorf("failed to save challenge: %w", err)
	}

	return nil
}

// Get returns nil without error when no challenge is pending.
func (r *challengeRepository) Get(ctx context.Context, phone string) (*models.Challenge, error) {

	value, found, err := r.store.Get(ctx, challengeKey(phone))
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}

	if !found {
		return nil, nil
	}

	var challenge models.Challenge

	if err := json.Unmarshal([]byte(value), &challenge); err != nil {
		slog.Warn("Discarding malformed challenge record", slog.String("error", err.Error()))

		return nil, nil
	}

	return &challenge, nil
}

func (r *challengeRepository) Delete(ctx context.Context, phone string) error {

	if err := r.store.Delete(ctx, challengeKey(phone)); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}

	return nil
}
