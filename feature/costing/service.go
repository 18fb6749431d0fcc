package costing

import (
	"barkeep/feature/catalog"
	"barkeep/feature/catalog/models"

	"go.uber.org/zap"
)

// Service exposes costing over the catalog.
type Service struct {
	catalog    *catalog.Service
	logger     *zap.Logger
	targetRate float64
}

// NewService creates a costing service. targetRate is the operator-configured
// default cost rate; zero falls back to the built-in 0.25.
func NewService(catalogSvc *catalog.Service, logger *zap.Logger, targetRate float64) *Service {
	if targetRate <= 0 {
		targetRate = DefaultTargetCostRate
	}
	return &Service{catalog: catalogSvc, logger: logger, targetRate: targetRate}
}

// TargetRate returns the configured default cost rate.
func (s *Service) TargetRate() float64 {
	return s.targetRate
}

// RecipeListing pairs a recipe with its derived stats for list views.
type RecipeListing struct {
	Recipe models.Recipe `json:"recipe"`
	Stats  Stats         `json:"stats"`
}

// ListRecipes returns filtered recipes, each with stats derived against the
// current catalog. The same engine serves the list view, the single-recipe
// view, and drafts.
func (s *Service) ListRecipes(filter catalog.RecipeFilter) []RecipeListing {
	ingredients := s.catalog.Repo().Ingredients()
	recipes := s.catalog.ListRecipes(filter)

	out := make([]RecipeListing, len(recipes))
	for i, rec := range recipes {
		out[i] = RecipeListing{
			Recipe: rec,
			Stats:  ComputeStatsAtRate(rec, ingredients, s.targetRate),
		}
	}
	return out
}

// RecipeStats derives the stats for one stored recipe.
func (s *Service) RecipeStats(id string) (Stats, error) {
	rec, ok := s.catalog.Repo().RecipeByID(id)
	if !ok {
		return Stats{}, catalog.ErrNotFound
	}
	return ComputeStatsAtRate(rec, s.catalog.Repo().Ingredients(), s.targetRate), nil
}

// DraftStats derives the stats for an unsaved recipe assembled from
// arbitrary ingredient picks.
func (s *Service) DraftStats(draft models.Recipe) Stats {
	return ComputeStatsAtRate(draft, s.catalog.Repo().Ingredients(), s.targetRate)
}

// SinglePour is an ingredient with its neat-pour pricing table.
type SinglePour struct {
	Ingredient models.Ingredient `json:"ingredient"`
	Pours      []PourQuote       `json:"pours"`
}

// ListSingles returns the neat-sellable ingredients with pricing tables at
// the given rate (zero uses the configured default).
func (s *Service) ListSingles(search string, rate float64) []SinglePour {
	if rate <= 0 {
		rate = s.targetRate
	}
	singles := s.catalog.ListSingles(search)
	out := make([]SinglePour, len(singles))
	for i, ing := range singles {
		out[i] = SinglePour{Ingredient: ing, Pours: PourTable(ing, rate)}
	}
	return out
}

// IngredientPours returns the pricing table for one ingredient.
func (s *Service) IngredientPours(id string, rate float64) ([]PourQuote, error) {
	if rate <= 0 {
		rate = s.targetRate
	}
	ing, ok := s.catalog.Repo().IngredientByID(id)
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return PourTable(ing, rate), nil
}
