package cooking

import (
	"context"
	"testing"
	"time"

	"fridge-assistant-backend/domain"
	"fridge-assistant-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryInventoryRepository struct {
	entries map[uuid.UUID]*entities.ProductEntry
}

func newMemoryInventoryRepository() *memoryInventoryRepository {
	return &memoryInventoryRepository{entries: make(map[uuid.UUID]*entities.ProductEntry)}
}

func (r *memoryInventoryRepository) FindMergeTarget(_ context.Context, userID, name, unit string, expiry *time.Time) (*entities.ProductEntry, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryInventoryRepository) CreateEntry(_ context.Context, entry *entities.ProductEntry) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *memoryInventoryRepository) GetEntryByID(_ context.Context, id string) (*entities.ProductEntry, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	entry, ok := r.entries[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return entry, nil
}

func (r *memoryInventoryRepository) UpdateQuantity(_ context.Context, id uuid.UUID, quantity float64) error {
	if entry, ok := r.entries[id]; ok {
		entry.Quantity = quantity
	}
	return nil
}

func (r *memoryInventoryRepository) DeleteEntry(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

func (r *memoryInventoryRepository) ListByUser(_ context.Context, userID string) ([]*entities.ProductEntry, error) {
	var entries []*entities.ProductEntry
	for _, e := range r.entries {
		if e.UserID.String() == userID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *memoryInventoryRepository) ListExpiringWithin(_ context.Context, userID string, until time.Time) ([]*entities.ProductEntry, error) {
	return nil, nil
}

type memorySessionStore struct {
	sessions map[string][]domain.IngredientRequirement
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string][]domain.IngredientRequirement)}
}

func (s *memorySessionStore) Save(_ context.Context, userID string, ingredients []domain.IngredientRequirement) error {
	s.sessions[userID] = ingredients
	return nil
}

func (s *memorySessionStore) Consume(_ context.Context, userID string) ([]domain.IngredientRequirement, error) {
	ingredients, ok := s.sessions[userID]
	if !ok {
		return nil, domain.ErrNoPendingRecipe
	}
	delete(s.sessions, userID)
	return ingredients, nil
}

func futureDate(days int) *time.Time {
	d := time.Now().AddDate(0, 0, days)
	return &d
}

func TestConfirmCooking(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	seed := func(repo *memoryInventoryRepository, name string, quantity float64, unit string, expiry *time.Time) uuid.UUID {
		id := uuid.New()
		repo.entries[id] = &entities.ProductEntry{
			ID:         id,
			UserID:     userID,
			Name:       name,
			Quantity:   quantity,
			Unit:       unit,
			ExpiryDate: expiry,
		}
		return id
	}

	t.Run("applies updates and deletes and consumes the session", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		sessions := newMemorySessionStore()
		service := NewCookingService(repo, sessions)

		milkID := seed(repo, "milk", 1, "l", futureDate(5))
		eggsID := seed(repo, "eggs", 6, "pcs", futureDate(3))

		require.NoError(t, sessions.Save(ctx, userID.String(), []domain.IngredientRequirement{
			{Name: "milk", Unit: "l", Quantity: 0.5},
			{Name: "eggs", Unit: "pcs", Quantity: 10},
		}))

		res, err := service.ConfirmCooking(ctx, userID.String())
		require.NoError(t, err)
		require.Len(t, res.Actions, 2)

		require.Equal(t, 0.5, repo.entries[milkID].Quantity)
		require.NotContains(t, repo.entries, eggsID)

		// session is one-shot
		_, err = service.ConfirmCooking(ctx, userID.String())
		require.ErrorIs(t, err, domain.ErrNoPendingRecipe)
	})

	t.Run("ingredient names match batches case-insensitively", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		sessions := newMemorySessionStore()
		service := NewCookingService(repo, sessions)

		id := seed(repo, "Milk", 1, "l", futureDate(5))
		require.NoError(t, sessions.Save(ctx, userID.String(), []domain.IngredientRequirement{
			{Name: "milk", Unit: "l", Quantity: 0.25},
		}))

		_, err := service.ConfirmCooking(ctx, userID.String())
		require.NoError(t, err)
		require.Equal(t, 0.75, repo.entries[id].Quantity)
	})

	t.Run("missing ingredients are absorbed without error", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		sessions := newMemorySessionStore()
		service := NewCookingService(repo, sessions)

		require.NoError(t, sessions.Save(ctx, userID.String(), []domain.IngredientRequirement{
			{Name: "saffron", Unit: "g", Quantity: 1},
		}))

		res, err := service.ConfirmCooking(ctx, userID.String())
		require.NoError(t, err)
		require.Empty(t, res.Actions)
	})

	t.Run("no pending session is an error", func(t *testing.T) {
		service := NewCookingService(newMemoryInventoryRepository(), newMemorySessionStore())

		_, err := service.ConfirmCooking(ctx, userID.String())
		require.ErrorIs(t, err, domain.ErrNoPendingRecipe)
	})
}
