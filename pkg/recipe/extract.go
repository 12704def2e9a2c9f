package recipe

import (
	"regexp"
	"strconv"
	"strings"

	"fridge-assistant-backend/domain"
)

const (
	ingredientsMarker = "Ingredients:"
	stepsMarker       = "Steps:"
)

var ingredientsBlock = regexp.MustCompile(`(?s)Ingredients:(.*?)Steps:`)

// ExtractIngredients pulls the requirement map out of generated recipe text.
// The text must contain an "Ingredients:" section followed by a "Steps:"
// section, with each ingredient line shaped "- Name, Quantity Unit". Lines
// that do not match are skipped; a duplicate (name, unit) key keeps the
// last-seen quantity. Missing section markers fail extraction as a whole so
// the caller can treat the recipe as malformed.
func ExtractIngredients(text string) ([]domain.IngredientRequirement, error) {
	match := ingredientsBlock.FindStringSubmatch(text)
	if match == nil {
		return nil, domain.ErrMalformedRecipe
	}

	var ingredients []domain.IngredientRequirement
	index := make(map[string]int)

	for _, line := range strings.Split(strings.TrimSpace(match[1]), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")

		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			continue
		}

		name := strings.ToLower(strings.TrimSpace(parts[0]))
		qtyUnit := strings.SplitN(strings.TrimSpace(parts[1]), " ", 2)
		if name == "" || len(qtyUnit) != 2 {
			continue
		}

		quantity, err := strconv.ParseFloat(strings.ReplaceAll(qtyUnit[0], ",", "."), 64)
		if err != nil {
			continue
		}
		unit := strings.TrimSpace(qtyUnit[1])

		key := name + "|" + unit
		if i, ok := index[key]; ok {
			ingredients[i].Quantity = quantity
			continue
		}
		index[key] = len(ingredients)
		ingredients = append(ingredients, domain.IngredientRequirement{
			Name:     name,
			Unit:     unit,
			Quantity: quantity,
		})
	}

	return ingredients, nil
}

// HasRecipeStructure reports whether generated text carries both required
// section markers.
func HasRecipeStructure(text string) bool {
	return strings.Contains(text, ingredientsMarker) && strings.Contains(text, stepsMarker)
}
