package handlers

import (
	"errors"

	"fridge-assistant-backend/domain"
	"fridge-assistant-backend/internal/api/presenters"
	"fridge-assistant-backend/pkg/cooking"
	"fridge-assistant-backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		SuggestRecipe(c *fiber.Ctx) error
		ConfirmCooking(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService  recipe.RecipeService
		cookingService cooking.CookingService
		validator      *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, cookingService cooking.CookingService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService:  recipeService,
		cookingService: cookingService,
		validator:      validator,
	}
}

func (h *recipeHandler) SuggestRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SuggestRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSuggestRecipe, err)
	}

	res, err := h.recipeService.SuggestRecipe(c.Context(), userID, req.MealType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyFridge), errors.Is(err, domain.ErrNoUsableIngredients):
			// Not a failure: the UI offers adding products or editing the profile.
			return presenters.SuccessResponse(c, fiber.Map{
				"recipe_text": "",
				"reason":      err.Error(),
			}, fiber.StatusOK, domain.MessageFailedSuggestRecipe)
		case errors.Is(err, domain.ErrMalformedRecipe):
			// Distinct condition so the UI can offer a retry.
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedSuggestRecipe, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedSuggestRecipe, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSuggestRecipe)
}

func (h *recipeHandler) ConfirmCooking(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.cookingService.ConfirmCooking(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoPendingRecipe) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedConfirmCook, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirmCook, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConfirmCook)
}
