package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fridge-assistant-backend/domain"
	"fridge-assistant-backend/entities"
	"fridge-assistant-backend/internal/utils"
	"fridge-assistant-backend/pkg/inventory"
	"fridge-assistant-backend/pkg/profile"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// basicIngredients are pantry staples the recipe model may freely use even
// when they are not in the fridge.
var basicIngredients = []string{
	"salt", "pepper", "sugar", "flour", "baking soda", "baking powder", "vinegar",
	"oil", "butter", "vegetable oil", "honey", "water",
	"spices", "dried garlic", "dried onion", "paprika", "bay leaf",
	"cinnamon", "ginger", "vanilla",
	"bread", "breadcrumbs", "mustard", "soy sauce", "tomato paste", "ketchup", "mayonnaise",
	"starch",
}

var mealNames = map[string]string{
	"breakfast": "breakfast",
	"lunch":     "lunch",
	"dinner":    "dinner",
	"snack":     "a snack",
}

type (
	RecipeService interface {
		SuggestRecipe(ctx context.Context, userID, mealType string) (domain.SuggestRecipeResponse, error)
	}

	recipeService struct {
		inventoryRepository inventory.InventoryRepository
		profileRepository   profile.ProfileRepository
		sessions            SessionStore
		client              *resty.Client
	}
)

func NewRecipeService(inventoryRepository inventory.InventoryRepository, profileRepository profile.ProfileRepository, sessions SessionStore) RecipeService {
	client := resty.New().
		SetBaseURL(utils.GetConfig("OPENAI_BASE_URL")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", utils.GetConfig("OPENAI_API_KEY"))).
		SetTimeout(60 * time.Second)

	return &recipeService{
		inventoryRepository: inventoryRepository,
		profileRepository:   profileRepository,
		sessions:            sessions,
		client:              client,
	}
}

// SuggestRecipe generates one recipe from the user's usable fridge contents
// and stores the extracted ingredient requirements as the user's pending
// cooking session.
func (s *recipeService) SuggestRecipe(ctx context.Context, userID, mealType string) (domain.SuggestRecipeResponse, error) {
	entries, err := s.inventoryRepository.ListByUser(ctx, userID)
	if err != nil {
		return domain.SuggestRecipeResponse{}, err
	}
	if len(entries) == 0 {
		return domain.SuggestRecipeResponse{}, domain.ErrEmptyFridge
	}

	userProfile, err := s.profileRepository.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SuggestRecipeResponse{}, err
		}
		userProfile = &entities.UserProfile{}
	}

	available := usableIngredients(entries, userProfile, time.Now())
	if len(available) == 0 {
		return domain.SuggestRecipeResponse{}, domain.ErrNoUsableIngredients
	}

	prompt := buildPrompt(available, userProfile, mealType)
	content, err := s.complete(ctx, prompt)
	if err != nil {
		zap.L().Error("recipe generation failed", zap.String("user_id", userID), zap.Error(err))
		return domain.SuggestRecipeResponse{}, domain.ErrRecipeServiceFailed
	}

	if !HasRecipeStructure(content) {
		return domain.SuggestRecipeResponse{}, domain.ErrMalformedRecipe
	}

	ingredients, err := ExtractIngredients(content)
	if err != nil {
		return domain.SuggestRecipeResponse{}, err
	}

	if err := s.sessions.Save(ctx, userID, ingredients); err != nil {
		return domain.SuggestRecipeResponse{}, err
	}

	return domain.SuggestRecipeResponse{
		RecipeText:  content,
		Ingredients: ingredients,
	}, nil
}

// usableIngredients drops expired batches and batches whose name contains an
// allergy or dislike token, then lists batches expiring by tomorrow first so
// the model prioritizes them. Expiry comparisons happen at calendar-date
// precision, same as the deduction allocator.
func usableIngredients(entries []*entities.ProductEntry, userProfile *entities.UserProfile, now time.Time) []string {
	excluded := append(profile.SplitTokens(userProfile.Allergies), profile.SplitTokens(userProfile.Dislikes)...)

	today := dateOnly(now)
	tomorrow := today.AddDate(0, 0, 1)

	var priority, others []string
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		if containsAny(name, excluded) {
			continue
		}

		var expiry *time.Time
		if e.ExpiryDate != nil {
			d := dateOnly(*e.ExpiryDate)
			expiry = &d
		}
		if expiry != nil && expiry.Before(today) {
			continue
		}

		item := fmt.Sprintf("%s %g %s", e.Name, e.Quantity, e.Unit)
		if expiry != nil && !expiry.After(tomorrow) {
			priority = append(priority, item)
		} else {
			others = append(others, item)
		}
	}

	return append(priority, others...)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func containsAny(name string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(name, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

func buildPrompt(available []string, userProfile *entities.UserProfile, mealType string) string {
	meal, ok := mealNames[mealType]
	if !ok {
		meal = "a meal"
	}

	var profileNote strings.Builder
	switch userProfile.Status {
	case domain.StatusVegan:
		profileNote.WriteString("The user is vegan. Do not include any animal products.\n")
	case domain.StatusVegetarian:
		profileNote.WriteString("The user is vegetarian. Do not include meat, fish or seafood.\n")
	}
	if allergies := profile.SplitTokens(userProfile.Allergies); len(allergies) > 0 {
		profileNote.WriteString(fmt.Sprintf("Do not include these products: %s — the user is allergic to them.\n", strings.Join(allergies, ", ")))
	}
	if dislikes := profile.SplitTokens(userProfile.Dislikes); len(dislikes) > 0 {
		profileNote.WriteString(fmt.Sprintf("Do not include these products: %s — the user dislikes them.\n", strings.Join(dislikes, ", ")))
	}

	return fmt.Sprintf(
		"You are a cooking assistant. Compose one recipe for %s from the products in the user's fridge.\n\n"+
			"Products in the fridge: %s.\n\n"+
			"%s\n"+
			"Important:\n"+
			"- Do not invent products that are not in this list.\n"+
			"- You may freely use these basic ingredients even if they are not in the fridge: %s.\n"+
			"- Do not change product names, not even singular/plural form. Use them exactly as listed so the fridge stock can be updated correctly.\n"+
			"- Units must be exactly as listed. Do not replace 'pcs' with anything else, do not change unit scale; use fractional quantities like 0.1 l if needed.\n\n"+
			"Response format (follow exactly):\n"+
			"1. Dish name on its own line\n"+
			"2. The mandatory subheading Ingredients:\n"+
			"- Name, Quantity Unit\n"+
			"- Name, Quantity Unit\n"+
			"3. The mandatory subheading Steps:\n"+
			"1. Step one\n"+
			"2. Step two\n"+
			"No wishes, comments or explanations. Only the recipe in the given format.",
		meal,
		strings.Join(available, ", "),
		strings.TrimSpace(profileNote.String()),
		strings.Join(basicIngredients, ", "),
	)
}

// complete sends a chat-completion request to the configured
// OpenAI-compatible endpoint and returns the generated text.
func (s *recipeService) complete(ctx context.Context, prompt string) (string, error) {
	req := map[string]interface{}{
		"model": utils.GetConfig("OPENAI_MODEL"),
		"messages": []map[string]string{
			{"role": "system", "content": "You are a cooking assistant."},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  700,
		"temperature": 0.6,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send completion request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("completion API returned %s: %s", resp.Status(), resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse completion response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return result.Choices[0].Message.Content, nil
}
