package backup

import (
	"barkeep/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the backup feature. offsite may be nil when no storage
// provider is configured; the offsite routes are then not registered.
func NewFeature(repo *catalog.Repository, offsite *Offsite, logger *zap.Logger) *Feature {
	svc := NewService(repo, logger)
	return &Feature{handler: NewHandler(svc, offsite)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "backup"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
