package domain

import "errors"

var (
	MessageSuccessSuggestRecipe = "recipe generated successfully"
	MessageSuccessConfirmCook   = "fridge updated after cooking"

	MessageFailedSuggestRecipe = "failed to generate recipe"
	MessageFailedConfirmCook   = "failed to update fridge after cooking"

	// ErrEmptyFridge and ErrNoUsableIngredients are distinct outcomes: the
	// first means nothing is stored at all, the second means everything stored
	// is expired or excluded by the dietary profile.
	ErrEmptyFridge         = errors.New("fridge is empty")
	ErrNoUsableIngredients = errors.New("no usable ingredients in fridge")
	ErrMalformedRecipe     = errors.New("recipe text does not match expected structure")
	ErrNoPendingRecipe     = errors.New("no pending recipe to cook")
	ErrRecipeServiceFailed = errors.New("recipe generation service failed")
)

type (
	SuggestRecipeRequest struct {
		MealType string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	}

	// IngredientRequirement is one entry of the ephemeral requirement map
	// derived from a generated recipe; it lives only between suggestion and
	// cooking confirmation.
	IngredientRequirement struct {
		Name     string  `json:"name"`
		Unit     string  `json:"unit"`
		Quantity float64 `json:"quantity"`
	}

	SuggestRecipeResponse struct {
		RecipeText  string                  `json:"recipe_text"`
		Ingredients []IngredientRequirement `json:"ingredients"`
	}

	BatchActionResponse struct {
		BatchID     string  `json:"batch_id"`
		Name        string  `json:"name"`
		Unit        string  `json:"unit"`
		Kind        string  `json:"kind"` // "update" or "delete"
		NewQuantity float64 `json:"new_quantity,omitempty"`
	}

	ConfirmCookResponse struct {
		Actions []BatchActionResponse `json:"actions"`
	}
)
