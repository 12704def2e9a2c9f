package cooking

import (
	"context"
	"strings"
	"time"

	"fridge-assistant-backend/domain"
	"fridge-assistant-backend/pkg/inventory"
	"fridge-assistant-backend/pkg/recipe"

	"go.uber.org/zap"
)

type (
	CookingService interface {
		ConfirmCooking(ctx context.Context, userID string) (domain.ConfirmCookResponse, error)
	}

	cookingService struct {
		inventoryRepository inventory.InventoryRepository
		sessions            recipe.SessionStore
	}
)

func NewCookingService(inventoryRepository inventory.InventoryRepository, sessions recipe.SessionStore) CookingService {
	return &cookingService{
		inventoryRepository: inventoryRepository,
		sessions:            sessions,
	}
}

// ConfirmCooking consumes the user's pending recipe session, computes the
// FEFO deduction plan against their current batches and applies it. A
// requirement the fridge cannot fully cover is absorbed silently; the
// shortfall is only logged.
func (s *cookingService) ConfirmCooking(ctx context.Context, userID string) (domain.ConfirmCookResponse, error) {
	ingredients, err := s.sessions.Consume(ctx, userID)
	if err != nil {
		return domain.ConfirmCookResponse{}, err
	}
	if len(ingredients) == 0 {
		return domain.ConfirmCookResponse{}, domain.ErrNoPendingRecipe
	}

	requirements := make(map[RequirementKey]float64, len(ingredients))
	for _, ing := range ingredients {
		requirements[RequirementKey{Name: ing.Name, Unit: ing.Unit}] = ing.Quantity
	}

	entries, err := s.inventoryRepository.ListByUser(ctx, userID)
	if err != nil {
		return domain.ConfirmCookResponse{}, err
	}

	batches := make(map[RequirementKey][]Batch)
	for _, e := range entries {
		key := RequirementKey{Name: strings.ToLower(e.Name), Unit: e.Unit}
		batches[key] = append(batches[key], Batch{
			ID:         e.ID,
			Quantity:   e.Quantity,
			ExpiryDate: e.ExpiryDate,
		})
	}

	plan := ComputePlan(requirements, batches, time.Now())
	for key, missing := range plan.Shortfall {
		zap.L().Warn("ingredient not fully covered by fridge",
			zap.String("user_id", userID),
			zap.String("name", key.Name),
			zap.String("unit", key.Unit),
			zap.Float64("missing", missing),
		)
	}

	res := domain.ConfirmCookResponse{Actions: make([]domain.BatchActionResponse, 0, len(plan.Actions))}
	for _, action := range plan.Actions {
		switch action.Kind {
		case ActionUpdate:
			if err := s.inventoryRepository.UpdateQuantity(ctx, action.BatchID, action.NewQuantity); err != nil {
				return domain.ConfirmCookResponse{}, err
			}
		case ActionDelete:
			if err := s.inventoryRepository.DeleteEntry(ctx, action.BatchID); err != nil {
				return domain.ConfirmCookResponse{}, err
			}
		}
		res.Actions = append(res.Actions, domain.BatchActionResponse{
			BatchID:     action.BatchID.String(),
			Name:        action.Key.Name,
			Unit:        action.Key.Unit,
			Kind:        string(action.Kind),
			NewQuantity: action.NewQuantity,
		})
	}

	return res, nil
}
