package catalog

import (
	"testing"
	"time"

	"barkeep/core/store"
	"barkeep/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	assert.NoError(t, err)

	repo := NewRepository(s, zap.NewNop())
	assert.NoError(t, repo.Load())
	return repo
}

func TestRepository_LoadDefaults(t *testing.T) {
	repo := newTestRepo(t)

	assert.Empty(t, repo.Ingredients())
	assert.Empty(t, repo.Recipes())

	prefs := repo.Preferences()
	assert.Contains(t, prefs.Techniques, "搖盪")
	assert.Len(t, prefs.IngredientCategories, 3)
}

func TestRepository_Load_Persisted(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	assert.NoError(t, err)

	repo := NewRepository(s, zap.NewNop())
	assert.NoError(t, repo.Load())

	_, err = repo.UpsertIngredient(models.Ingredient{NameZh: "琴酒", Price: 600, Volume: 700})
	assert.NoError(t, err)
	repo.AddTag("鹹")

	// A fresh repository over the same store sees the persisted state
	reloaded := NewRepository(s, zap.NewNop())
	assert.NoError(t, reloaded.Load())
	assert.Len(t, reloaded.Ingredients(), 1)
	assert.Equal(t, "琴酒", reloaded.Ingredients()[0].NameZh)
	assert.Contains(t, reloaded.Preferences().Tags, "鹹")
}

func TestUpsertIngredient(t *testing.T) {
	repo := newTestRepo(t)

	t.Run("RequiresName", func(t *testing.T) {
		_, err := repo.UpsertIngredient(models.Ingredient{NameEn: "Gin"})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("AssignsID", func(t *testing.T) {
		saved, err := repo.UpsertIngredient(models.Ingredient{NameZh: "琴酒"})
		assert.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
	})

	t.Run("ReplacesByID", func(t *testing.T) {
		saved, err := repo.UpsertIngredient(models.Ingredient{NameZh: "伏特加", Price: 500})
		assert.NoError(t, err)

		saved.Price = 550
		_, err = repo.UpsertIngredient(saved)
		assert.NoError(t, err)

		got, ok := repo.IngredientByID(saved.ID)
		assert.True(t, ok)
		assert.Equal(t, models.FlexFloat(550), got.Price)

		// Replacement, not duplication
		count := 0
		for _, ing := range repo.Ingredients() {
			if ing.ID == saved.ID {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestUpsertRecipe_History(t *testing.T) {
	repo := newTestRepo(t)

	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return t0 }

	first, err := repo.UpsertRecipe(models.Recipe{NameZh: "馬丁尼", Method: "v1"})
	assert.NoError(t, err)
	assert.Empty(t, first.History)

	// First overwrite: exactly one history entry holding the v1 snapshot
	first.Method = "v2"
	second, err := repo.UpsertRecipe(first)
	assert.NoError(t, err)
	assert.Len(t, second.History, 1)
	assert.Equal(t, t0, second.History[0].Date)
	assert.Equal(t, "v1", second.History[0].Snapshot.Method)
	assert.Nil(t, second.History[0].Snapshot.History)

	// Second overwrite: new entry prepended, prior entry preserved in order
	t1 := t0.Add(time.Hour)
	repo.now = func() time.Time { return t1 }
	second.Method = "v3"
	third, err := repo.UpsertRecipe(second)
	assert.NoError(t, err)
	assert.Len(t, third.History, 2)
	assert.Equal(t, t1, third.History[0].Date)
	assert.Equal(t, "v2", third.History[0].Snapshot.Method)
	assert.Equal(t, "v1", third.History[1].Snapshot.Method)

	// Snapshots never nest their own history
	for _, entry := range third.History {
		assert.Nil(t, entry.Snapshot.History)
	}
}

func TestDeleteIngredient_ReferentialGuard(t *testing.T) {
	repo := newTestRepo(t)

	gin, err := repo.UpsertIngredient(models.Ingredient{NameZh: "琴酒"})
	assert.NoError(t, err)
	tonic, err := repo.UpsertIngredient(models.Ingredient{NameZh: "通寧水"})
	assert.NoError(t, err)

	_, err = repo.UpsertRecipe(models.Recipe{
		NameZh:      "琴通寧",
		Ingredients: []models.RecipeIngredient{{IngredientID: gin.ID, Amount: 45}},
	})
	assert.NoError(t, err)

	// Referenced ingredient: rejected, both collections unchanged
	err = repo.DeleteIngredient(gin.ID)
	var refErr *ReferentialIntegrityError
	assert.ErrorAs(t, err, &refErr)
	assert.Equal(t, "琴酒", refErr.IngredientName)
	assert.Equal(t, []string{"琴通寧"}, refErr.BlockedBy)
	assert.Len(t, repo.Ingredients(), 2)
	assert.Len(t, repo.Recipes(), 1)

	// Unreferenced ingredient: removed
	assert.NoError(t, repo.DeleteIngredient(tonic.ID))
	assert.Len(t, repo.Ingredients(), 1)

	// Unknown id
	assert.ErrorIs(t, repo.DeleteIngredient("missing"), ErrNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	repo := newTestRepo(t)

	gin, _ := repo.UpsertIngredient(models.Ingredient{NameZh: "琴酒"})
	rec, err := repo.UpsertRecipe(models.Recipe{
		NameZh:      "琴通寧",
		Ingredients: []models.RecipeIngredient{{IngredientID: gin.ID, Amount: 45}},
	})
	assert.NoError(t, err)

	// Recipes are leaf records; no guard applies
	assert.NoError(t, repo.DeleteRecipe(rec.ID))
	assert.Empty(t, repo.Recipes())
	assert.ErrorIs(t, repo.DeleteRecipe(rec.ID), ErrNotFound)
}

func TestReset(t *testing.T) {
	repo := newTestRepo(t)

	repo.UpsertIngredient(models.Ingredient{NameZh: "琴酒"})
	repo.UpsertRecipe(models.Recipe{NameZh: "馬丁尼"})
	repo.AddTechnique("窒息式搖盪")

	repo.Reset()

	assert.Empty(t, repo.Ingredients())
	assert.Empty(t, repo.Recipes())
	assert.NotContains(t, repo.Preferences().Techniques, "窒息式搖盪")
}

func TestVocabularies(t *testing.T) {
	repo := newTestRepo(t)

	repo.AddTechnique("拋接")
	repo.AddTechnique("拋接") // duplicate ignored
	techniques := repo.Preferences().Techniques
	count := 0
	for _, tech := range techniques {
		if tech == "拋接" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	repo.AddGlass("Nick & Nora")
	assert.Contains(t, repo.Preferences().Glasses, "Nick & Nora")

	cat, err := repo.AddCategory("苦精")
	assert.NoError(t, err)
	assert.NotEmpty(t, cat.ID)

	_, err = repo.AddCategory("  ")
	assert.ErrorIs(t, err, ErrNameRequired)

	assert.NoError(t, repo.DeleteCategory(cat.ID))
	assert.ErrorIs(t, repo.DeleteCategory(cat.ID), ErrNotFound)

	// The three built-in categories are protected
	for _, id := range []string{"alcohol", "soft", "other"} {
		assert.ErrorIs(t, repo.DeleteCategory(id), ErrProtectedCategory)
	}
}

func TestVocabularies_PersistedImmediately(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	assert.NoError(t, err)

	repo := NewRepository(s, zap.NewNop())
	assert.NoError(t, repo.Load())

	// Each add must write the already-appended bundle, not the prior one
	repo.AddTechnique("拋接")
	repo.AddTag("鹹")
	repo.AddGlass("Nick & Nora")

	reloaded := NewRepository(s, zap.NewNop())
	assert.NoError(t, reloaded.Load())
	assert.Contains(t, reloaded.Preferences().Techniques, "拋接")
	assert.Contains(t, reloaded.Preferences().Tags, "鹹")
	assert.Contains(t, reloaded.Preferences().Glasses, "Nick & Nora")
}

func TestSetRecipeImage(t *testing.T) {
	repo := newTestRepo(t)

	rec, _ := repo.UpsertRecipe(models.Recipe{NameZh: "馬丁尼"})

	assert.NoError(t, repo.SetRecipeImage(rec.ID, "data:image/jpeg;base64,xxx"))

	got, _ := repo.RecipeByID(rec.ID)
	assert.Equal(t, "data:image/jpeg;base64,xxx", got.Image)
	// Image swaps do not create history entries
	assert.Empty(t, got.History)

	assert.ErrorIs(t, repo.SetRecipeImage("missing", "x"), ErrNotFound)
}
