package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fridge-assistant-backend/domain"

	"github.com/go-redis/redis/v8"
)

type (
	// SessionStore keeps the ingredient requirements of the most recently
	// generated recipe between suggestion and cooking confirmation. State is
	// keyed per owner, never shared across users, and expires on its own: a
	// new suggestion overwrites the previous one, confirming consumes it.
	SessionStore interface {
		Save(ctx context.Context, userID string, ingredients []domain.IngredientRequirement) error
		Consume(ctx context.Context, userID string) ([]domain.IngredientRequirement, error)
	}

	redisSessionStore struct {
		client *redis.Client
		ttl    time.Duration
	}
)

func NewSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func sessionKey(userID string) string {
	return fmt.Sprintf("cooking:session:%s", userID)
}

func (s *redisSessionStore) Save(ctx context.Context, userID string, ingredients []domain.IngredientRequirement) error {
	data, err := json.Marshal(ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal cooking session: %w", err)
	}
	return s.client.Set(ctx, sessionKey(userID), data, s.ttl).Err()
}

func (s *redisSessionStore) Consume(ctx context.Context, userID string) ([]domain.IngredientRequirement, error) {
	key := sessionKey(userID)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNoPendingRecipe
		}
		return nil, fmt.Errorf("failed to get cooking session: %w", err)
	}

	// A second rapid confirm sees no session and becomes a no-op.
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return nil, fmt.Errorf("failed to delete cooking session: %w", err)
	}

	var ingredients []domain.IngredientRequirement
	if err := json.Unmarshal(data, &ingredients); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cooking session: %w", err)
	}
	return ingredients, nil
}
