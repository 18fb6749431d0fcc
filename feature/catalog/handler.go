package catalog

import (
	"errors"
	"io"
	"strings"

	"barkeep/core/logger"
	"barkeep/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	ingredients := app.Group("/ingredients")
	ingredients.Get("/", h.HandleListIngredients)
	ingredients.Get("/new", h.HandleNewIngredient)
	ingredients.Post("/", h.HandleUpsertIngredient)
	ingredients.Delete("/:id", h.HandleDeleteIngredient)

	recipes := app.Group("/recipes")
	recipes.Get("/", h.HandleListRecipes)
	// "new" must register before ":id"
	recipes.Get("/new", h.HandleNewRecipe)
	recipes.Get("/:id", h.HandleGetRecipe)
	recipes.Post("/", h.HandleUpsertRecipe)
	recipes.Post("/:id/image", h.HandleSetRecipeImage)
	recipes.Delete("/:id", h.HandleDeleteRecipe)

	prefs := app.Group("/preferences")
	prefs.Get("/", h.HandleGetPreferences)
	prefs.Post("/techniques", h.HandleAddTechnique)
	prefs.Post("/tags", h.HandleAddTag)
	prefs.Post("/glasses", h.HandleAddGlass)
	prefs.Get("/options", h.HandleGetOptions)
	prefs.Post("/categories", h.HandleAddCategory)
	prefs.Delete("/categories/:id", h.HandleDeleteCategory)

	app.Post("/reset", h.HandleReset)
}

// respondError maps domain errors to HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	var refErr *ReferentialIntegrityError
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNameRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrConfirmationRequired):
		return c.Status(fiber.StatusPreconditionRequired).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrProtectedCategory):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &refErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      refErr.Error(),
			"ingredient": refErr.IngredientName,
			"blocked_by": refErr.BlockedBy,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// confirmed checks the confirm query parameter gating destructive actions.
func confirmed(c *fiber.Ctx) bool {
	return c.Query("confirm") == "true"
}

func splitMulti(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// HandleListIngredients lists ingredients with optional filtering.
// @Summary List Ingredients
// @Description List catalog ingredients filtered by category and search term.
// @Tags catalog
// @Produce json
// @Param category query string false "Category id (all, alcohol, soft, other, custom)"
// @Param search query string false "Search term matched against names"
// @Success 200 {array} models.Ingredient
// @Router /ingredients [get]
func (h *Handler) HandleListIngredients(c *fiber.Ctx) error {
	return c.JSON(h.service.ListIngredients(IngredientFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}))
}

// HandleNewIngredient returns an ingredient editor template.
// @Summary New Ingredient Template
// @Description Return an unsaved ingredient pre-filled with editor defaults.
// @Tags catalog
// @Produce json
// @Success 200 {object} models.Ingredient
// @Router /ingredients/new [get]
func (h *Handler) HandleNewIngredient(c *fiber.Ctx) error {
	return c.JSON(h.service.Repo().NewIngredient())
}

// HandleUpsertIngredient creates or replaces an ingredient.
// @Summary Upsert Ingredient
// @Description Create a new ingredient or replace the one with the same id.
// @Tags catalog
// @Accept json
// @Produce json
// @Param ingredient body models.Ingredient true "Ingredient"
// @Success 200 {object} models.Ingredient
// @Failure 400 {object} map[string]string "Validation error"
// @Router /ingredients [post]
func (h *Handler) HandleUpsertIngredient(c *fiber.Ctx) error {
	var ing models.Ingredient
	if err := c.BodyParser(&ing); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	saved, err := h.service.Repo().UpsertIngredient(ing)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(saved)
}

// HandleDeleteIngredient deletes an ingredient not referenced by any recipe.
// @Summary Delete Ingredient
// @Description Delete an ingredient. Blocked while any recipe references it.
// @Tags catalog
// @Produce json
// @Param id path string true "Ingredient id"
// @Param confirm query bool true "Must be true to confirm the destructive action"
// @Success 204
// @Failure 409 {object} map[string]interface{} "Referenced by recipes"
// @Failure 428 {object} map[string]string "Confirmation required"
// @Router /ingredients/{id} [delete]
func (h *Handler) HandleDeleteIngredient(c *fiber.Ctx) error {
	if !confirmed(c) {
		return respondError(c, ErrConfirmationRequired)
	}
	l := logger.WithRayID(zap.L(), c)
	if err := h.service.Repo().DeleteIngredient(c.Params("id")); err != nil {
		l.Warn("Ingredient deletion rejected", zap.String("id", c.Params("id")), zap.Error(err))
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListRecipes lists recipes with optional filtering.
// @Summary List Recipes
// @Description List recipes filtered by category, search term, base spirits (any-of) and tags (all-of).
// @Tags catalog
// @Produce json
// @Param category query string false "Recipe type (all, classic, signature)"
// @Param search query string false "Search term matched against names"
// @Param base query string false "Comma-separated base spirit labels"
// @Param tags query string false "Comma-separated flavor tags"
// @Success 200 {array} models.Recipe
// @Router /recipes [get]
func (h *Handler) HandleListRecipes(c *fiber.Ctx) error {
	return c.JSON(h.service.ListRecipes(RecipeFilter{
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		BaseSpirits: splitMulti(c.Query("base")),
		Tags:        splitMulti(c.Query("tags")),
	}))
}

// HandleNewRecipe returns a recipe editor template.
// @Summary New Recipe Template
// @Tags catalog
// @Produce json
// @Success 200 {object} models.Recipe
// @Router /recipes/new [get]
func (h *Handler) HandleNewRecipe(c *fiber.Ctx) error {
	return c.JSON(h.service.Repo().NewRecipe())
}

// HandleGetRecipe returns a single recipe with its history.
// @Summary Get Recipe
// @Tags catalog
// @Produce json
// @Param id path string true "Recipe id"
// @Success 200 {object} models.Recipe
// @Failure 404 {object} map[string]string
// @Router /recipes/{id} [get]
func (h *Handler) HandleGetRecipe(c *fiber.Ctx) error {
	rec, ok := h.service.Repo().RecipeByID(c.Params("id"))
	if !ok {
		return respondError(c, ErrNotFound)
	}
	return c.JSON(rec)
}

// HandleUpsertRecipe creates or replaces a recipe, snapshotting the prior
// version into history on overwrite.
// @Summary Upsert Recipe
// @Tags catalog
// @Accept json
// @Produce json
// @Param recipe body models.Recipe true "Recipe"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} map[string]string "Validation error"
// @Router /recipes [post]
func (h *Handler) HandleUpsertRecipe(c *fiber.Ctx) error {
	var rec models.Recipe
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	saved, err := h.service.Repo().UpsertRecipe(rec)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(saved)
}

// HandleSetRecipeImage attaches an uploaded photo to a recipe.
// @Summary Set Recipe Image
// @Description Upload a photo; it is downscaled and embedded on the recipe.
// @Tags catalog
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Recipe id"
// @Param image formData file true "Photo"
// @Success 204
// @Failure 400 {object} map[string]string "Undecodable image"
// @Router /recipes/{id}/image [post]
func (h *Handler) HandleSetRecipeImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}
	src, err := file.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return respondError(c, err)
	}

	dataURI, err := NormalizeImage(data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.service.Repo().SetRecipeImage(c.Params("id"), dataURI); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteRecipe deletes a recipe.
// @Summary Delete Recipe
// @Tags catalog
// @Produce json
// @Param id path string true "Recipe id"
// @Param confirm query bool true "Must be true to confirm the destructive action"
// @Success 204
// @Failure 428 {object} map[string]string "Confirmation required"
// @Router /recipes/{id} [delete]
func (h *Handler) HandleDeleteRecipe(c *fiber.Ctx) error {
	if !confirmed(c) {
		return respondError(c, ErrConfirmationRequired)
	}
	if err := h.service.Repo().DeleteRecipe(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetPreferences returns the vocabularies bundle.
// @Summary Get Preferences
// @Tags preferences
// @Produce json
// @Success 200 {object} models.Preferences
// @Router /preferences [get]
func (h *Handler) HandleGetPreferences(c *fiber.Ctx) error {
	return c.JSON(h.service.Repo().Preferences())
}

// HandleGetOptions returns the fixed editor option lists.
// @Summary Get Editor Options
// @Description Return the fixed base spirit and unit vocabularies.
// @Tags preferences
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /preferences/options [get]
func (h *Handler) HandleGetOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"baseSpirits": models.BaseSpirits(),
		"units":       models.Units(),
	})
}

type vocabRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleAddVocab(c *fiber.Ctx, add func(string)) error {
	var req vocabRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	add(req.Name)
	return c.JSON(h.service.Repo().Preferences())
}

// HandleAddTechnique adds a technique to the vocabulary.
// @Summary Add Technique
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body vocabRequest true "Technique name"
// @Success 200 {object} models.Preferences
// @Router /preferences/techniques [post]
func (h *Handler) HandleAddTechnique(c *fiber.Ctx) error {
	return h.handleAddVocab(c, h.service.Repo().AddTechnique)
}

// HandleAddTag adds a flavor tag to the vocabulary.
// @Summary Add Tag
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body vocabRequest true "Tag name"
// @Success 200 {object} models.Preferences
// @Router /preferences/tags [post]
func (h *Handler) HandleAddTag(c *fiber.Ctx) error {
	return h.handleAddVocab(c, h.service.Repo().AddTag)
}

// HandleAddGlass adds a glassware label to the vocabulary.
// @Summary Add Glass
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body vocabRequest true "Glass label"
// @Success 200 {object} models.Preferences
// @Router /preferences/glasses [post]
func (h *Handler) HandleAddGlass(c *fiber.Ctx) error {
	return h.handleAddVocab(c, h.service.Repo().AddGlass)
}

// HandleAddCategory creates an ingredient category.
// @Summary Add Ingredient Category
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body vocabRequest true "Category label"
// @Success 200 {object} models.Category
// @Router /preferences/categories [post]
func (h *Handler) HandleAddCategory(c *fiber.Ctx) error {
	var req vocabRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	cat, err := h.service.Repo().AddCategory(req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cat)
}

// HandleDeleteCategory removes a user-defined ingredient category.
// @Summary Delete Ingredient Category
// @Tags preferences
// @Produce json
// @Param id path string true "Category id"
// @Success 204
// @Failure 403 {object} map[string]string "Built-in category"
// @Router /preferences/categories/{id} [delete]
func (h *Handler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.Repo().DeleteCategory(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReset wipes the catalog and restores default preferences.
// @Summary Reset
// @Description Delete all ingredients, recipes and custom vocabularies.
// @Tags catalog
// @Produce json
// @Param confirm query bool true "Must be true to confirm the destructive action"
// @Success 204
// @Failure 428 {object} map[string]string "Confirmation required"
// @Router /reset [post]
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	if !confirmed(c) {
		return respondError(c, ErrConfirmationRequired)
	}
	h.service.Repo().Reset()
	return c.SendStatus(fiber.StatusNoContent)
}
