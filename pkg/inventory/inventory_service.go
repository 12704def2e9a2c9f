package inventory

import (
	"context"
	"errors"
	"math"
	"time"

	"fridge-assistant-backend/domain"
	"fridge-assistant-backend/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultExpiringDays = 2

type (
	InventoryService interface {
		ParseAndStore(ctx context.Context, userID, text string) (domain.AddProductsResponse, error)
		GetFridge(ctx context.Context, userID string) ([]domain.ProductEntryResponse, error)
		DeleteEntry(ctx context.Context, id string, userID string) error
		ConsumeEntry(ctx context.Context, id string, userID string, amount float64) (domain.ConsumeEntryResponse, error)
		GetExpiring(ctx context.Context, userID string, days int) ([]domain.ProductEntryResponse, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
	}
)

func NewInventoryService(inventoryRepository InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepository: inventoryRepository}
}

// Round3 rounds a quantity to the 3-decimal precision used throughout the
// inventory, keeping repeated float additions and deductions stable.
func Round3(q float64) float64 {
	return math.Round(q*1000) / 1000
}

// ParseAndStore parses free text into product candidates and merges each one
// into the fridge. A candidate matching an existing (name, unit, expiry) key
// adds its quantity to that batch; otherwise a new batch is inserted.
func (s *inventoryService) ParseAndStore(ctx context.Context, userID, text string) (domain.AddProductsResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.AddProductsResponse{}, domain.ErrParseUUID
	}

	items := ParseEntries(text)
	zap.L().Info("parsed product input",
		zap.String("user_id", userID),
		zap.Int("candidates", len(items)),
	)

	for _, item := range items {
		existing, err := s.inventoryRepository.FindMergeTarget(ctx, userID, item.Name, item.Unit, item.ExpiryDate)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.AddProductsResponse{}, err
			}
			entry := &entities.ProductEntry{
				ID:         uuid.New(),
				UserID:     userUUID,
				Name:       item.Name,
				Quantity:   item.Quantity,
				Unit:       item.Unit,
				ExpiryDate: item.ExpiryDate,
			}
			if err := s.inventoryRepository.CreateEntry(ctx, entry); err != nil {
				return domain.AddProductsResponse{}, err
			}
			continue
		}

		merged := Round3(existing.Quantity + item.Quantity)
		if err := s.inventoryRepository.UpdateQuantity(ctx, existing.ID, merged); err != nil {
			return domain.AddProductsResponse{}, err
		}
	}

	return domain.AddProductsResponse{EntriesStored: len(items)}, nil
}

func (s *inventoryService) GetFridge(ctx context.Context, userID string) ([]domain.ProductEntryResponse, error) {
	entries, err := s.inventoryRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

// DeleteEntry removes a batch entirely. A batch that no longer exists is a
// no-op, so a raced deletion never surfaces as an error.
func (s *inventoryService) DeleteEntry(ctx context.Context, id string, userID string) error {
	entry, err := s.inventoryRepository.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if entry.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	return s.inventoryRepository.DeleteEntry(ctx, entry.ID)
}

// ConsumeEntry removes amount from a single batch. Consuming the exact
// remaining quantity deletes the batch; the quantity is never stored at zero.
func (s *inventoryService) ConsumeEntry(ctx context.Context, id string, userID string, amount float64) (domain.ConsumeEntryResponse, error) {
	if amount <= 0 {
		return domain.ConsumeEntryResponse{}, domain.ErrInvalidAmount
	}

	entry, err := s.inventoryRepository.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ConsumeEntryResponse{}, domain.ErrEntryNotFound
		}
		return domain.ConsumeEntryResponse{}, err
	}

	if entry.UserID.String() != userID {
		return domain.ConsumeEntryResponse{}, domain.ErrUserNotAllowed
	}

	remaining := Round3(entry.Quantity - amount)
	if remaining < 0 {
		return domain.ConsumeEntryResponse{}, domain.ErrInsufficientQuantity
	}

	if remaining == 0 {
		if err := s.inventoryRepository.DeleteEntry(ctx, entry.ID); err != nil {
			return domain.ConsumeEntryResponse{}, err
		}
		return domain.ConsumeEntryResponse{Deleted: true, Unit: entry.Unit}, nil
	}

	if err := s.inventoryRepository.UpdateQuantity(ctx, entry.ID, remaining); err != nil {
		return domain.ConsumeEntryResponse{}, err
	}
	return domain.ConsumeEntryResponse{Remaining: remaining, Unit: entry.Unit}, nil
}

func (s *inventoryService) GetExpiring(ctx context.Context, userID string, days int) ([]domain.ProductEntryResponse, error) {
	if days < 0 {
		days = DefaultExpiringDays
	}
	until := time.Now().AddDate(0, 0, days)

	entries, err := s.inventoryRepository.ListExpiringWithin(ctx, userID, until)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

func toEntryResponses(entries []*entities.ProductEntry) []domain.ProductEntryResponse {
	responses := make([]domain.ProductEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, domain.ProductEntryResponse{
			ID:         e.ID.String(),
			Name:       e.Name,
			Quantity:   e.Quantity,
			Unit:       e.Unit,
			ExpiryDate: e.ExpiryDate,
		})
	}
	return responses
}
