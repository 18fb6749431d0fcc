package backup

import (
	"fmt"

	"barkeep/core/utils"
	"barkeep/feature/catalog/models"
)

// Mode selects how an imported document is applied to the live catalog.
type Mode string

const (
	// ModeMerge appends incoming records that do not conflict with existing
	// ones; conflicting records are dropped.
	ModeMerge Mode = "merge"
	// ModeOverwrite replaces both collections wholesale.
	ModeOverwrite Mode = "overwrite"
)

// ParseMode validates a mode string. The empty string defaults to merge,
// matching the least destructive interpretation.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMerge, "":
		return ModeMerge, nil
	case ModeOverwrite:
		return ModeOverwrite, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrMalformedImport, s)
	}
}

// MergeSummary aggregates a merge outcome. Skipped records are not reported
// individually; the operator only needs to know duplicates were dropped.
type MergeSummary struct {
	IngredientsAdded   int `json:"ingredientsAdded"`
	IngredientsSkipped int `json:"ingredientsSkipped"`
	RecipesAdded       int `json:"recipesAdded"`
	RecipesSkipped     int `json:"recipesSkipped"`
}

// Merge folds the incoming document into the current one. Both collections
// are handled independently: an incoming record is appended unless it
// conflicts with an already-present record by id or by normalized name
// (nameZh for both kinds, nameEn additionally for ingredients when both
// sides carry one). Records earlier in the incoming document win against
// later duplicates within the same import.
func Merge(current, incoming Document) (Document, MergeSummary) {
	var summary MergeSummary

	merged := Document{
		Ingredients: append([]models.Ingredient{}, current.Ingredients...),
		Recipes:     append([]models.Recipe{}, current.Recipes...),
	}

	for _, ing := range incoming.Ingredients {
		if ingredientConflicts(merged.Ingredients, ing) {
			summary.IngredientsSkipped++
			continue
		}
		merged.Ingredients = append(merged.Ingredients, ing)
		summary.IngredientsAdded++
	}

	for _, rec := range incoming.Recipes {
		if recipeConflicts(merged.Recipes, rec) {
			summary.RecipesSkipped++
			continue
		}
		merged.Recipes = append(merged.Recipes, rec)
		summary.RecipesAdded++
	}

	return merged, summary
}

func ingredientConflicts(existing []models.Ingredient, candidate models.Ingredient) bool {
	nameZh := utils.NormalizeName(candidate.NameZh)
	nameEn := utils.NormalizeName(candidate.NameEn)
	for _, cur := range existing {
		if cur.ID == candidate.ID {
			return true
		}
		if nameZh != "" && utils.NormalizeName(cur.NameZh) == nameZh {
			return true
		}
		if nameEn != "" && utils.NormalizeName(cur.NameEn) == nameEn {
			return true
		}
	}
	return false
}

func recipeConflicts(existing []models.Recipe, candidate models.Recipe) bool {
	nameZh := utils.NormalizeName(candidate.NameZh)
	for _, cur := range existing {
		if cur.ID == candidate.ID {
			return true
		}
		if nameZh != "" && utils.NormalizeName(cur.NameZh) == nameZh {
			return true
		}
	}
	return false
}
