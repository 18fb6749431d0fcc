package catalog

import (
	"strings"

	"barkeep/feature/catalog/models"

	"go.uber.org/zap"
)

// Service layers listing and filtering over the repository.
type Service struct {
	repo   *Repository
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(repo *Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Repo exposes the underlying repository to sibling features.
func (s *Service) Repo() *Repository {
	return s.repo
}

// RecipeFilter narrows a recipe listing.
type RecipeFilter struct {
	// Category filters by recipe type; "all" or empty matches everything.
	Category string
	// Search matches NameZh by substring and NameEn case-insensitively.
	Search string
	// BaseSpirits matches any of the given base spirit labels.
	BaseSpirits []string
	// Tags requires every given tag to be present.
	Tags []string
}

func matchesSearch(nameZh, nameEn, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(nameZh, search) ||
		strings.Contains(strings.ToLower(nameEn), strings.ToLower(search))
}

// ListRecipes returns the recipes matching the filter, in collection order.
func (s *Service) ListRecipes(f RecipeFilter) []models.Recipe {
	out := []models.Recipe{}
	for _, rec := range s.repo.Recipes() {
		if f.Category != "" && f.Category != "all" && rec.Type != f.Category {
			continue
		}
		if !matchesSearch(rec.NameZh, rec.NameEn, f.Search) {
			continue
		}
		if len(f.BaseSpirits) > 0 && !contains(f.BaseSpirits, rec.BaseSpirit) {
			continue
		}
		if !containsAll(rec.Tags, f.Tags) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// IngredientFilter narrows an ingredient listing.
type IngredientFilter struct {
	// Category filters by category id; "all" or empty matches everything.
	Category string
	// Search matches NameZh by substring and NameEn case-insensitively.
	Search string
}

// ListIngredients returns the ingredients matching the filter.
func (s *Service) ListIngredients(f IngredientFilter) []models.Ingredient {
	out := []models.Ingredient{}
	for _, ing := range s.repo.Ingredients() {
		if f.Category != "" && f.Category != "all" && ing.Type != f.Category {
			continue
		}
		if !matchesSearch(ing.NameZh, ing.NameEn, f.Search) {
			continue
		}
		out = append(out, ing)
	}
	return out
}

// ListSingles returns the alcohol-category ingredients sellable as neat
// pours, matching the search term.
func (s *Service) ListSingles(search string) []models.Ingredient {
	out := []models.Ingredient{}
	for _, ing := range s.repo.Ingredients() {
		if ing.Type != models.CategoryAlcohol || !ing.Single() {
			continue
		}
		if !matchesSearch(ing.NameZh, ing.NameEn, search) {
			continue
		}
		out = append(out, ing)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		if !contains(have, w) {
			return false
		}
	}
	return true
}
