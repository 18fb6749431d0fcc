package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"barkeep/core/store"
	"barkeep/feature/catalog/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository owns the in-memory catalog: the ingredient and recipe
// collections plus the preferences bundle. Every successful mutation writes
// the affected collection back to the injected store as a whole document.
//
// Access is single-threaded by design: the application is a single-operator
// tool and mutations run to completion before the next one is processed.
type Repository struct {
	store  store.Store
	logger *zap.Logger

	ingredients []models.Ingredient
	recipes     []models.Recipe
	prefs       models.Preferences

	// now and newID are injectable for deterministic tests.
	now   func() time.Time
	newID func() string
}

// NewRepository returns an empty repository backed by s. Call Load to
// populate it from durable storage.
func NewRepository(s store.Store, logger *zap.Logger) *Repository {
	return &Repository{
		store:  s,
		logger: logger,
		prefs:  models.DefaultPreferences(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Load reads the three durable documents. Absent keys fall back to empty
// collections and the built-in preference defaults.
func (r *Repository) Load() error {
	if err := r.loadKey(store.KeyIngredients, &r.ingredients); err != nil {
		return err
	}
	if err := r.loadKey(store.KeyRecipes, &r.recipes); err != nil {
		return err
	}

	data, ok, err := r.store.Load(store.KeyPreferences)
	if err != nil {
		return err
	}
	if ok {
		var prefs models.Preferences
		if err := json.Unmarshal(data, &prefs); err != nil {
			return fmt.Errorf("failed to decode %s: %w", store.KeyPreferences, err)
		}
		// Individually absent vocabularies keep their defaults.
		defaults := models.DefaultPreferences()
		if prefs.Techniques == nil {
			prefs.Techniques = defaults.Techniques
		}
		if prefs.Tags == nil {
			prefs.Tags = defaults.Tags
		}
		if prefs.Glasses == nil {
			prefs.Glasses = defaults.Glasses
		}
		if prefs.IngredientCategories == nil {
			prefs.IngredientCategories = defaults.IngredientCategories
		}
		r.prefs = prefs
	}
	return nil
}

func (r *Repository) loadKey(key string, target any) error {
	data, ok, err := r.store.Load(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// persist mirrors a collection to durable storage. Persistence failures are
// logged, not returned: the in-memory mutation already happened and the
// accepted crash window is a single-user, single-device risk.
func (r *Repository) persist(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn("Failed to encode collection for persistence",
			zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.store.Save(key, data); err != nil {
		r.logger.Warn("Failed to persist collection",
			zap.String("key", key), zap.Error(err))
	}
}

func (r *Repository) persistIngredients() { r.persist(store.KeyIngredients, r.ingredients) }
func (r *Repository) persistRecipes()     { r.persist(store.KeyRecipes, r.recipes) }
func (r *Repository) persistPrefs()       { r.persist(store.KeyPreferences, r.prefs) }

// Ingredients returns a copy of the ingredient collection.
func (r *Repository) Ingredients() []models.Ingredient {
	return append([]models.Ingredient(nil), r.ingredients...)
}

// Recipes returns a deep copy of the recipe collection.
func (r *Repository) Recipes() []models.Recipe {
	out := make([]models.Recipe, len(r.recipes))
	for i, rec := range r.recipes {
		out[i] = rec.Clone()
	}
	return out
}

// Preferences returns a copy of the preferences bundle.
func (r *Repository) Preferences() models.Preferences {
	return r.prefs.Clone()
}

// IngredientByID resolves an ingredient.
func (r *Repository) IngredientByID(id string) (models.Ingredient, bool) {
	for _, ing := range r.ingredients {
		if ing.ID == id {
			return ing, true
		}
	}
	return models.Ingredient{}, false
}

// RecipeByID resolves a recipe.
func (r *Repository) RecipeByID(id string) (models.Recipe, bool) {
	for _, rec := range r.recipes {
		if rec.ID == id {
			return rec.Clone(), true
		}
	}
	return models.Recipe{}, false
}

// NewIngredient returns an editor template with a generated id. Nothing is
// stored until the template comes back through UpsertIngredient.
func (r *Repository) NewIngredient() models.Ingredient {
	return models.NewIngredient(r.newID())
}

// NewRecipe returns an editor template with a generated id.
func (r *Repository) NewRecipe() models.Recipe {
	return models.NewRecipe(r.newID())
}

// UpsertIngredient replaces the record with the same id or appends a new one.
// A missing id is assigned. No history is kept for ingredients.
func (r *Repository) UpsertIngredient(ing models.Ingredient) (models.Ingredient, error) {
	if strings.TrimSpace(ing.NameZh) == "" {
		return models.Ingredient{}, ErrNameRequired
	}
	if ing.ID == "" {
		ing.ID = r.newID()
	}

	replaced := false
	for i := range r.ingredients {
		if r.ingredients[i].ID == ing.ID {
			r.ingredients[i] = ing
			replaced = true
			break
		}
	}
	if !replaced {
		r.ingredients = append(r.ingredients, ing)
	}

	r.persistIngredients()
	return ing, nil
}

// UpsertRecipe replaces the record with the same id or appends a new one.
// When overwriting, a snapshot of the prior record (without its own history)
// is prepended to the new record's history, newest first.
func (r *Repository) UpsertRecipe(rec models.Recipe) (models.Recipe, error) {
	if strings.TrimSpace(rec.NameZh) == "" {
		return models.Recipe{}, ErrNameRequired
	}
	if rec.ID == "" {
		rec.ID = r.newID()
	}

	replaced := false
	for i := range r.recipes {
		if r.recipes[i].ID == rec.ID {
			prior := r.recipes[i]
			entry := models.HistoryEntry{Date: r.now(), Snapshot: prior.Snapshot()}
			rec.History = append([]models.HistoryEntry{entry}, prior.History...)
			r.recipes[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		r.recipes = append(r.recipes, rec)
	}

	r.persistRecipes()
	return rec.Clone(), nil
}

// SetRecipeImage attaches an image to a recipe without creating a history
// entry; history tracks recipe edits, not photo swaps.
func (r *Repository) SetRecipeImage(id, dataURI string) error {
	for i := range r.recipes {
		if r.recipes[i].ID == id {
			r.recipes[i].Image = dataURI
			r.persistRecipes()
			return nil
		}
	}
	return ErrNotFound
}

// DeleteIngredient removes an ingredient. Deletion is rejected with a
// ReferentialIntegrityError naming every blocking recipe while any recipe
// still references the ingredient.
func (r *Repository) DeleteIngredient(id string) error {
	target, found := r.IngredientByID(id)
	if !found {
		return ErrNotFound
	}

	var blockedBy []string
	for _, rec := range r.recipes {
		for _, ri := range rec.Ingredients {
			if ri.IngredientID == id {
				blockedBy = append(blockedBy, rec.NameZh)
				break
			}
		}
	}
	if len(blockedBy) > 0 {
		return &ReferentialIntegrityError{IngredientName: target.NameZh, BlockedBy: blockedBy}
	}

	kept := r.ingredients[:0]
	for _, ing := range r.ingredients {
		if ing.ID != id {
			kept = append(kept, ing)
		}
	}
	r.ingredients = kept

	r.persistIngredients()
	return nil
}

// DeleteRecipe removes a recipe. Recipes are leaf records, so no
// referential guard applies.
func (r *Repository) DeleteRecipe(id string) error {
	for i, rec := range r.recipes {
		if rec.ID == id {
			r.recipes = append(r.recipes[:i], r.recipes[i+1:]...)
			r.persistRecipes()
			return nil
		}
	}
	return ErrNotFound
}

// ReplaceAll swaps in both collections wholesale. Used by backup import.
func (r *Repository) ReplaceAll(ingredients []models.Ingredient, recipes []models.Recipe) {
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	r.ingredients = ingredients
	r.recipes = recipes
	r.persistIngredients()
	r.persistRecipes()
}

// Reset wipes both collections and restores the default preferences.
func (r *Repository) Reset() {
	r.ingredients = nil
	r.recipes = nil
	r.prefs = models.DefaultPreferences()
	r.persistIngredients()
	r.persistRecipes()
	r.persistPrefs()
}

// AddTechnique appends a technique to the vocabulary if not already present.
func (r *Repository) AddTechnique(name string) {
	r.addVocab(&r.prefs.Techniques, name)
}

// AddTag appends a flavor tag to the vocabulary if not already present.
func (r *Repository) AddTag(name string) {
	r.addVocab(&r.prefs.Tags, name)
}

// AddGlass appends a glassware label to the vocabulary if not already present.
func (r *Repository) AddGlass(name string) {
	r.addVocab(&r.prefs.Glasses, name)
}

// addVocab mutates the vocabulary in place so the appended entry is already
// part of the bundle when it is persisted.
func (r *Repository) addVocab(list *[]string, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	for _, existing := range *list {
		if existing == name {
			return
		}
	}
	*list = append(*list, name)
	r.persistPrefs()
}

// AddCategory creates a new ingredient category with a generated id.
func (r *Repository) AddCategory(label string) (models.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return models.Category{}, ErrNameRequired
	}
	cat := models.Category{ID: r.newID(), Label: label}
	r.prefs.IngredientCategories = append(r.prefs.IngredientCategories, cat)
	r.persistPrefs()
	return cat, nil
}

// DeleteCategory removes a user-defined category. The three built-in
// categories are protected.
func (r *Repository) DeleteCategory(id string) error {
	switch id {
	case models.CategoryAlcohol, models.CategorySoft, models.CategoryOther:
		return ErrProtectedCategory
	}
	for i, cat := range r.prefs.IngredientCategories {
		if cat.ID == id {
			r.prefs.IngredientCategories = append(
				r.prefs.IngredientCategories[:i], r.prefs.IngredientCategories[i+1:]...)
			r.persistPrefs()
			return nil
		}
	}
	return ErrNotFound
}
