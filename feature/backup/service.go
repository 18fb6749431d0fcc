package backup

import (
	"time"

	"barkeep/feature/catalog"

	"go.uber.org/zap"
)

// Service drives export and import against the live catalog repository.
type Service struct {
	repo   *catalog.Repository
	logger *zap.Logger

	now func() time.Time
}

// NewService creates a backup service over the catalog repository.
func NewService(repo *catalog.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Export snapshots the catalog into a backup document and returns the
// dated filename alongside the encoded bytes.
func (s *Service) Export() (string, []byte, error) {
	doc := Document{
		Ingredients: s.repo.Ingredients(),
		Recipes:     s.repo.Recipes(),
	}
	data, err := doc.Encode()
	if err != nil {
		return "", nil, err
	}
	return Filename(s.now()), data, nil
}

// Import parses and applies a backup payload. Merge mode folds incoming
// records into the catalog and reports aggregate counts; overwrite mode
// replaces both collections wholesale. A parse failure leaves the catalog
// unchanged.
func (s *Service) Import(data []byte, mode Mode) (MergeSummary, error) {
	incoming, err := Parse(data)
	if err != nil {
		return MergeSummary{}, err
	}

	switch mode {
	case ModeOverwrite:
		s.repo.ReplaceAll(incoming.Ingredients, incoming.Recipes)
		s.logger.Info("backup imported",
			zap.String("mode", string(ModeOverwrite)),
			zap.Int("ingredients", len(incoming.Ingredients)),
			zap.Int("recipes", len(incoming.Recipes)))
		return MergeSummary{
			IngredientsAdded: len(incoming.Ingredients),
			RecipesAdded:     len(incoming.Recipes),
		}, nil
	default:
		current := Document{
			Ingredients: s.repo.Ingredients(),
			Recipes:     s.repo.Recipes(),
		}
		merged, summary := Merge(current, incoming)
		s.repo.ReplaceAll(merged.Ingredients, merged.Recipes)
		s.logger.Info("backup merged",
			zap.Int("ingredients_added", summary.IngredientsAdded),
			zap.Int("ingredients_skipped", summary.IngredientsSkipped),
			zap.Int("recipes_added", summary.RecipesAdded),
			zap.Int("recipes_skipped", summary.RecipesSkipped))
		return summary, nil
	}
}
