package costing

import (
	"math"
	"testing"

	"barkeep/feature/catalog/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats_StirredGin(t *testing.T) {
	// Worked example: 45ml of a 600/750ml 40% spirit, stirred.
	catalog := []models.Ingredient{
		{ID: "gin", NameZh: "琴酒", Type: "alcohol", Price: 600, Volume: 750, Unit: "ml", ABV: 40},
	}
	recipe := models.Recipe{
		NameZh:      "教父",
		Technique:   "攪拌",
		Ingredients: []models.RecipeIngredient{{IngredientID: "gin", Amount: 45}},
	}

	stats := ComputeStats(recipe, catalog)

	assert.InDelta(t, 36, stats.TotalCost, 1e-9)          // 600/750*45
	assert.InDelta(t, 65, stats.FinalVolume, 1e-9)        // 45 + 20 dilution
	assert.InDelta(t, 18.0/65*100, stats.FinalABV, 1e-9)  // 45*0.4 alcohol
	assert.InDelta(t, 150, stats.SuggestedPrice, 1e-9)    // ceil(36/0.25/10)*10
	assert.InDelta(t, 150, stats.Price, 1e-9)             // no custom price
	assert.InDelta(t, 36.0/150*100, stats.CostRate, 1e-9) // 24%
	assert.InDelta(t, 114, stats.Margin, 1e-9)
}

func TestComputeStats_EmptyAndDangling(t *testing.T) {
	catalog := []models.Ingredient{
		{ID: "gin", Price: 600, Volume: 750, ABV: 40},
	}

	for name, recipe := range map[string]models.Recipe{
		"NoIngredients": {NameZh: "空"},
		"AllDangling": {
			NameZh:      "幽靈",
			Ingredients: []models.RecipeIngredient{{IngredientID: "ghost", Amount: 30}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			stats := ComputeStats(recipe, catalog)
			assert.Zero(t, stats.TotalCost)
			assert.Zero(t, stats.FinalABV)
			assert.Zero(t, stats.SuggestedPrice)
			assert.Zero(t, stats.Price)
			assert.Zero(t, stats.CostRate)
		})
	}
}

func TestComputeStats_VolumeGating(t *testing.T) {
	catalog := []models.Ingredient{
		{ID: "rum", Type: "alcohol", Price: 500, Volume: 700, Unit: "ml", ABV: 40},
		{ID: "sugar", Type: "other", Price: 100, Volume: 1000, Unit: "g"},
		{ID: "mint", Type: "other", Price: 50, Volume: 1, Unit: "片"},
		{ID: "bitters", Type: "alcohol", Price: 300, Volume: 100, Unit: "dash", ABV: 44},
	}
	recipe := models.Recipe{
		NameZh: "摩西多",
		Ingredients: []models.RecipeIngredient{
			{IngredientID: "rum", Amount: 45},
			{IngredientID: "sugar", Amount: 10},
			{IngredientID: "mint", Amount: 6},
			{IngredientID: "bitters", Amount: 2},
		},
	}

	stats := ComputeStats(recipe, catalog)

	// Cost counts everything
	expectedCost := 500.0/700*45 + 100.0/1000*10 + 50.0*6 + 300.0/100*2
	assert.InDelta(t, expectedCost, stats.TotalCost, 1e-9)

	// Volume and ABV count only ml-denominated, non-"other" ingredients:
	// just the rum. Bitters are alcohol but dash-denominated.
	assert.InDelta(t, 45, stats.FinalVolume, 1e-9)
	assert.InDelta(t, 45*0.4/45*100, stats.FinalABV, 1e-9)
}

func TestComputeStats_UnspecifiedUnitCountsAsML(t *testing.T) {
	catalog := []models.Ingredient{
		{ID: "gin", Type: "alcohol", Price: 600, Volume: 750, ABV: 40}, // no unit
	}
	recipe := models.Recipe{
		NameZh:      "純飲",
		Ingredients: []models.RecipeIngredient{{IngredientID: "gin", Amount: 30}},
	}

	stats := ComputeStats(recipe, catalog)
	assert.InDelta(t, 30, stats.FinalVolume, 1e-9)
	assert.InDelta(t, 40, stats.FinalABV, 1e-9)
}

func TestComputeStats_CustomPrice(t *testing.T) {
	catalog := []models.Ingredient{
		{ID: "gin", Type: "alcohol", Price: 600, Volume: 750, Unit: "ml", ABV: 40},
	}
	base := models.Recipe{
		NameZh:      "馬丁尼",
		Ingredients: []models.RecipeIngredient{{IngredientID: "gin", Amount: 60}},
	}

	t.Run("OverridesSuggested", func(t *testing.T) {
		recipe := base
		recipe.CustomPrice = 300
		stats := ComputeStats(recipe, catalog)
		assert.InDelta(t, 300, stats.Price, 1e-9)
		assert.InDelta(t, stats.TotalCost/300*100, stats.CostRate, 1e-9)
	})

	t.Run("ZeroMeansUnset", func(t *testing.T) {
		recipe := base
		recipe.CustomPrice = 0
		stats := ComputeStats(recipe, catalog)
		assert.Equal(t, stats.SuggestedPrice, stats.Price)
	})
}

func TestDilutionFor(t *testing.T) {
	cases := map[string]float64{
		"攪拌":          20,
		"Stir":        20,
		"stir & fold": 20,
		"搖盪":          30,
		"Hard Shake":  30,
		"直調":          0,
		"":            0,
		"分層":          0,
	}
	for technique, want := range cases {
		assert.Equal(t, want, dilutionFor(technique), "technique %q", technique)
	}
}

func TestSuggestedPrice_RoundingProperty(t *testing.T) {
	// suggestedPrice is a non-negative multiple of 10 and at least
	// cost / 0.25 whenever cost > 0.
	catalog := []models.Ingredient{
		{ID: "x", Type: "alcohol", Price: 777, Volume: 700, Unit: "ml", ABV: 43},
	}
	for _, amount := range []float64{1, 7.5, 30, 44.4, 60, 123} {
		recipe := models.Recipe{
			NameZh:      "r",
			Ingredients: []models.RecipeIngredient{{IngredientID: "x", Amount: models.FlexFloat(amount)}},
		}
		stats := ComputeStats(recipe, catalog)
		assert.Greater(t, stats.TotalCost, 0.0)
		assert.GreaterOrEqual(t, stats.SuggestedPrice, stats.TotalCost/0.25)
		assert.InDelta(t, 0, math.Mod(stats.SuggestedPrice, 10), 1e-9)
	}
}
