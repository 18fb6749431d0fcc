package costing

import (
	"errors"
	"strings"

	"barkeep/feature/catalog"
	"barkeep/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for costing.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the costing routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/costing")
	group.Get("/recipes", h.HandleListRecipes)
	group.Get("/recipes/:id", h.HandleRecipeStats)
	group.Post("/draft", h.HandleDraftStats)
	group.Get("/singles", h.HandleListSingles)
	group.Get("/ingredients/:id/pours", h.HandleIngredientPours)
}

// HandleListRecipes lists recipes with derived stats.
// @Summary List Recipes With Stats
// @Description List filtered recipes, each carrying cost, ABV and pricing stats.
// @Tags costing
// @Produce json
// @Param category query string false "Recipe type (all, classic, signature)"
// @Param search query string false "Search term"
// @Param base query string false "Comma-separated base spirit labels"
// @Param tags query string false "Comma-separated flavor tags"
// @Success 200 {array} RecipeListing
// @Router /costing/recipes [get]
func (h *Handler) HandleListRecipes(c *fiber.Ctx) error {
	filter := catalog.RecipeFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if base := c.Query("base"); base != "" {
		filter.BaseSpirits = strings.Split(base, ",")
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}
	return c.JSON(h.service.ListRecipes(filter))
}

// HandleRecipeStats derives stats for a stored recipe.
// @Summary Recipe Stats
// @Tags costing
// @Produce json
// @Param id path string true "Recipe id"
// @Success 200 {object} Stats
// @Failure 404 {object} map[string]string
// @Router /costing/recipes/{id} [get]
func (h *Handler) HandleRecipeStats(c *fiber.Ctx) error {
	stats, err := h.service.RecipeStats(c.Params("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// HandleDraftStats derives stats for an unsaved draft recipe.
// @Summary Draft Stats
// @Description Compute stats for a recipe body that has not been saved.
// @Tags costing
// @Accept json
// @Produce json
// @Param draft body models.Recipe true "Draft recipe"
// @Success 200 {object} Stats
// @Router /costing/draft [post]
func (h *Handler) HandleDraftStats(c *fiber.Ctx) error {
	var draft models.Recipe
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	return c.JSON(h.service.DraftStats(draft))
}

// HandleListSingles lists neat-pour pricing tables.
// @Summary List Singles
// @Description List neat-sellable ingredients with reference pour pricing.
// @Tags costing
// @Produce json
// @Param search query string false "Search term"
// @Param rate query number false "Target cost rate override (0-1)"
// @Success 200 {array} SinglePour
// @Router /costing/singles [get]
func (h *Handler) HandleListSingles(c *fiber.Ctx) error {
	return c.JSON(h.service.ListSingles(c.Query("search"), c.QueryFloat("rate")))
}

// HandleIngredientPours returns the pour pricing table for an ingredient.
// @Summary Ingredient Pours
// @Tags costing
// @Produce json
// @Param id path string true "Ingredient id"
// @Param rate query number false "Target cost rate override (0-1)"
// @Success 200 {array} PourQuote
// @Failure 404 {object} map[string]string
// @Router /costing/ingredients/{id}/pours [get]
func (h *Handler) HandleIngredientPours(c *fiber.Ctx) error {
	quotes, err := h.service.IngredientPours(c.Params("id"), c.QueryFloat("rate"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(quotes)
}
