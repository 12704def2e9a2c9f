package inventory

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
	for _, e := range r.entries {
		if e.UserID.String() != userID || e.Name != name || e.Unit != unit {
			continue
		}
		if expiry == nil && e.ExpiryDate == nil {
			return e, nil
		}
		if expiry != nil && e.ExpiryDate != nil && expiry.Equal(*e.ExpiryDate) {
			return e, nil
		}
	}
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
	var entries []*entities.ProductEntry
	for _, e := range r.entries {
		if e.UserID.String() == userID && e.ExpiryDate != nil && !e.ExpiryDate.After(until) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func TestParseAndStore(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("repeated insert merges into one batch", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		service := NewInventoryService(repo)

		_, err := service.ParseAndStore(ctx, userID, "Apple 1 kg")
		require.NoError(t, err)
		_, err = service.ParseAndStore(ctx, userID, "Apple 1 kg")
		require.NoError(t, err)

		require.Len(t, repo.entries, 1)
		for _, e := range repo.entries {
			require.Equal(t, 2.0, e.Quantity)
		}
	})

	t.Run("different expiry dates stay separate batches", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		service := NewInventoryService(repo)

		_, err := service.ParseAndStore(ctx, userID, "Milk 1 l 05.09.2026, Milk 1 l 10.09.2026")
		require.NoError(t, err)

		require.Len(t, repo.entries, 2)
	})

	t.Run("dated batch never merges into undated batch", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		service := NewInventoryService(repo)

		_, err := service.ParseAndStore(ctx, userID, "Milk 1 l")
		require.NoError(t, err)
		_, err = service.ParseAndStore(ctx, userID, "Milk 1 l 05.09.2026")
		require.NoError(t, err)

		require.Len(t, repo.entries, 2)
	})

	t.Run("unparseable clauses reduce the stored count silently", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		service := NewInventoryService(repo)

		res, err := service.ParseAndStore(ctx, userID, "Milk 1 l, garbage, Eggs 10 pcs")
		require.NoError(t, err)
		require.Equal(t, 2, res.EntriesStored)
		require.Len(t, repo.entries, 2)
	})

	t.Run("rejects malformed user id", func(t *testing.T) {
		service := NewInventoryService(newMemoryInventoryRepository())

		_, err := service.ParseAndStore(ctx, "not-a-uuid", "Milk 1 l")
		require.ErrorIs(t, err, domain.ErrParseUUID)
	})
}

func TestConsumeEntry(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	seed := func(repo *memoryInventoryRepository, quantity float64) uuid.UUID {
		id := uuid.New()
		repo.entries[id] = &entities.ProductEntry{
			ID:       id,
			UserID:   userID,
			Name:     "milk",
			Quantity: quantity,
			Unit:     "l",
		}
		return id
	}

	t.Run("partial consumption updates the remainder", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		service := NewInventoryService(repo)
		id := seed(repo, 2)

		res, err := service.ConsumeEntry(ctx, id.String(), userID.String(), 0.5)
		require.NoError(t, err)
		require.False(t, res.Deleted)
		require.Equal(t, 1.5, res.Remaining)
		require.Equal(t, 1.5, repo.entries[id].Quantity)
	})

	t.Run("consuming the exact quantity deletes the batch", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		service := NewInventoryService(repo)
		id := seed(repo, 2)

		res, err := service.ConsumeEntry(ctx, id.String(), userID.String(), 2)
		require.NoError(t, err)
		require.True(t, res.Deleted)
		require.NotContains(t, repo.entries, id)
	})

	t.Run("consuming more than stored fails", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		service := NewInventoryService(repo)
		id := seed(repo, 2)

		_, err := service.ConsumeEntry(ctx, id.String(), userID.String(), 2.5)
		require.ErrorIs(t, err, domain.ErrInsufficientQuantity)
		require.Equal(t, 2.0, repo.entries[id].Quantity)
	})

	t.Run("non positive amount fails", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		service := NewInventoryService(repo)
		id := seed(repo, 2)

		_, err := service.ConsumeEntry(ctx, id.String(), userID.String(), 0)
		require.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("unknown batch fails", func(t *testing.T) {
		service := NewInventoryService(newMemoryInventoryRepository())

		_, err := service.ConsumeEntry(ctx, uuid.New().String(), userID.String(), 1)
		require.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	t.Run("foreign batch is not consumable", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		service := NewInventoryService(repo)
		id := seed(repo, 2)

		_, err := service.ConsumeEntry(ctx, id.String(), uuid.New().String(), 1)
		require.ErrorIs(t, err, domain.ErrUserNotAllowed)
	})
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("deleting a missing batch is a no-op", func(t *testing.T) {
		service := NewInventoryService(newMemoryInventoryRepository())

		require.NoError(t, service.DeleteEntry(ctx, uuid.New().String(), userID.String()))
	})

	t.Run("deleting a foreign batch is rejected", func(t *testing.T) {
		repo := newMemoryInventoryRepository()
		service := NewInventoryService(repo)
		id := uuid.New()
		repo.entries[id] = &entities.ProductEntry{ID: id, UserID: userID, Name: "milk", Quantity: 1, Unit: "l"}

		err := service.DeleteEntry(ctx, id.String(), uuid.New().String())
		require.ErrorIs(t, err, domain.ErrUserNotAllowed)
		require.Contains(t, repo.entries, id)
	})
}

func TestRound3(t *testing.T) {
	require.Equal(t, 0.3, Round3(0.1+0.2))
	require.Equal(t, 1.667, Round3(1.6666))
	require.Equal(t, 0.0, Round3(1.0-0.5-0.5))
}
