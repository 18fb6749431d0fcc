package catalog_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"barkeep/core/store"
	"barkeep/feature/catalog"
	"barkeep/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*fiber.App, *catalog.Repository) {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	assert.NoError(t, err)

	repo := catalog.NewRepository(s, zap.NewNop())
	assert.NoError(t, repo.Load())

	app := fiber.New()
	feature := catalog.NewFeature(repo, zap.NewNop())
	assert.NoError(t, feature.Load(app))
	return app, repo
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	raw, _ := io.ReadAll(resp.Body)
	rec.Body = bytes.NewBuffer(raw)
	return rec
}

func TestHandleUpsertIngredient(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/ingredients/", models.Ingredient{NameZh: "琴酒", Price: 600, Volume: 700})
	assert.Equal(t, fiber.StatusOK, resp.Code)

	var saved models.Ingredient
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.ID)

	// Missing primary name is a validation error
	resp = postJSON(t, app, "/ingredients/", models.Ingredient{NameEn: "Gin"})
	assert.Equal(t, fiber.StatusBadRequest, resp.Code)
}

func TestHandleDeleteIngredient(t *testing.T) {
	app, repo := newTestApp(t)

	gin, _ := repo.UpsertIngredient(models.Ingredient{NameZh: "琴酒"})
	repo.UpsertRecipe(models.Recipe{
		NameZh:      "琴通寧",
		Ingredients: []models.RecipeIngredient{{IngredientID: gin.ID, Amount: 45}},
	})

	// Without confirm: precondition required, nothing deleted
	resp, err := app.Test(httptest.NewRequest("DELETE", "/ingredients/"+gin.ID, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusPreconditionRequired, resp.StatusCode)
	assert.Len(t, repo.Ingredients(), 1)

	// Confirmed but referenced: conflict naming the blocking recipe
	resp, err = app.Test(httptest.NewRequest("DELETE", "/ingredients/"+gin.ID+"?confirm=true", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var payload struct {
		BlockedBy []string `json:"blocked_by"`
	}
	raw, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, []string{"琴通寧"}, payload.BlockedBy)
}

func TestHandleGetRecipe(t *testing.T) {
	app, repo := newTestApp(t)

	rec, _ := repo.UpsertRecipe(models.Recipe{NameZh: "馬丁尼"})

	resp, err := app.Test(httptest.NewRequest("GET", "/recipes/"+rec.ID, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/recipes/nope", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleReset(t *testing.T) {
	app, repo := newTestApp(t)
	repo.UpsertIngredient(models.Ingredient{NameZh: "琴酒"})

	resp, err := app.Test(httptest.NewRequest("POST", "/reset", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusPreconditionRequired, resp.StatusCode)
	assert.Len(t, repo.Ingredients(), 1)

	resp, err = app.Test(httptest.NewRequest("POST", "/reset?confirm=true", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, repo.Ingredients())
}

func TestHandlePreferences(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/preferences/glasses", map[string]string{"name": "Nick & Nora"})
	assert.Equal(t, fiber.StatusOK, resp.Code)

	var prefs models.Preferences
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &prefs))
	assert.Contains(t, prefs.Glasses, "Nick & Nora")

	// Built-in categories refuse deletion
	del, err := app.Test(httptest.NewRequest("DELETE", "/preferences/categories/alcohol", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, del.StatusCode)
}

func TestHandleTemplatesAndOptions(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/ingredients/new", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var ing models.Ingredient
	raw, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(raw, &ing))
	assert.NotEmpty(t, ing.ID)
	assert.Equal(t, models.CategoryAlcohol, ing.Type)
	assert.Equal(t, models.FlexFloat(700), ing.Volume)
	assert.Equal(t, "ml", ing.Unit)

	// /recipes/new must not be swallowed by the /recipes/:id route
	resp, err = app.Test(httptest.NewRequest("GET", "/recipes/new", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rec models.Recipe
	raw, _ = io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, models.RecipeClassic, rec.Type)

	resp, err = app.Test(httptest.NewRequest("GET", "/preferences/options", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var options map[string][]string
	raw, _ = io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(raw, &options))
	assert.Len(t, options["baseSpirits"], 8)
	assert.Contains(t, options["units"], "dash")
}
