package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"barkeep/core/config"
	"barkeep/core/database"
	"barkeep/core/loader"
	"barkeep/core/logger"
	"barkeep/core/middleware/auth"
	"barkeep/core/middleware/rayid"
	"barkeep/core/storage"
	"barkeep/core/store"

	"barkeep/feature/backup"
	"barkeep/feature/catalog"
	"barkeep/feature/costing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "barkeep/docs/swagger"
)

// @title Barkeep API
// @version 1.0
// @description API for bar catalog management, drink costing, and backups.
// @host localhost:8080
// @BasePath /

// openStore selects the persistence backend from configuration.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "database":
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return store.NewDBStore(db)
	case "file", "":
		return store.NewFileStore(cfg.Store.Dir)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// openRepository opens the configured store and loads the catalog from it.
func openRepository(cfg *config.Config, logg *zap.Logger) (*catalog.Repository, error) {
	s, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	repo := catalog.NewRepository(s, logg)
	if err := repo.Load(); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return repo, nil
}

// newOffsite creates the offsite backup component when storage is enabled.
func newOffsite(cfg *config.Config, logg *zap.Logger) (*backup.Offsite, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return backup.NewOffsite(client, cfg.Storage.Bucket, logg), nil
}

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the barkeep server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Open the catalog over the configured store
		repo, err := openRepository(cfg, logg)
		if err != nil {
			logg.Fatal("Failed to open catalog", zap.Error(err))
		}
		logg.Info("Catalog loaded",
			zap.String("driver", cfg.Store.Driver),
			zap.Int("ingredients", len(repo.Ingredients())),
			zap.Int("recipes", len(repo.Recipes())))

		// 4. Offsite backup storage (Optional)
		offsite, err := newOffsite(cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize offsite backup", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		catalogFeature := catalog.NewFeature(repo, logg)
		mgr.Register(catalogFeature)
		mgr.Register(costing.NewFeature(catalogFeature.Service(), logg, cfg.Pricing.TargetCostRate))
		mgr.Register(backup.NewFeature(repo, offsite, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		if cfg.Server.AuthEnabled() {
			app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		} else {
			logg.Warn("API key not configured, serving unauthenticated")
		}

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
