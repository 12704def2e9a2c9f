package inventory

import (
	"context"
	"time"

	"fridge-assistant-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	InventoryRepository interface {
		FindMergeTarget(ctx context.Context, userID, name, unit string, expiry *time.Time) (*entities.ProductEntry, error)
		CreateEntry(ctx context.Context, entry *entities.ProductEntry) error
		GetEntryByID(ctx context.Context, id string) (*entities.ProductEntry, error)
		UpdateQuantity(ctx context.Context, id uuid.UUID, quantity float64) error
		DeleteEntry(ctx context.Context, id uuid.UUID) error
		ListByUser(ctx context.Context, userID string) ([]*entities.ProductEntry, error)
		ListExpiringWithin(ctx context.Context, userID string, until time.Time) ([]*entities.ProductEntry, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// FindMergeTarget looks up the single entry matching the merge key
// (user, name, unit, expiry). An entry without expiry only matches another
// entry without expiry; dated entries match on exact date equality.
func (r *inventoryRepository) FindMergeTarget(ctx context.Context, userID, name, unit string, expiry *time.Time) (*entities.ProductEntry, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND unit = ?", userID, name, unit)

	if expiry == nil {
		query = query.Where("expiry_date IS NULL")
	} else {
		query = query.Where("expiry_date = ?", *expiry)
	}

	var entry entities.ProductEntry
	if err := query.First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *inventoryRepository) CreateEntry(ctx context.Context, entry *entities.ProductEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *inventoryRepository) GetEntryByID(ctx context.Context, id string) (*entities.ProductEntry, error) {
	var entry entities.ProductEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *inventoryRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity float64) error {
	return r.db.WithContext(ctx).Model(&entities.ProductEntry{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *inventoryRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ProductEntry{}).Error
}

func (r *inventoryRepository) ListByUser(ctx context.Context, userID string) ([]*entities.ProductEntry, error) {
	var entries []*entities.ProductEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expiry_date ASC NULLS LAST").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *inventoryRepository) ListExpiringWithin(ctx context.Context, userID string, until time.Time) ([]*entities.ProductEntry, error) {
	var entries []*entities.ProductEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ?", userID, until).
		Order("expiry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
