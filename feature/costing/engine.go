package costing

import (
	"math"
	"strings"

	"barkeep/feature/catalog/models"
)

// DefaultTargetCostRate is the cost/price ratio suggested prices aim for:
// a drink priced at the suggestion carries at most 25% ingredient cost.
const DefaultTargetCostRate = 0.25

// Ice-melt dilution added by technique, in ml. Stirring melts less than
// shaking; every other technique (or none) adds nothing.
const (
	stirDilution  = 20.0
	shakeDilution = 30.0
)

// Stats is the derived costing summary for one recipe.
type Stats struct {
	// TotalCost is the summed ingredient cost.
	TotalCost float64 `json:"totalCost"`
	// FinalABV is the dilution-adjusted alcohol by volume, percent.
	FinalABV float64 `json:"finalAbv"`
	// SuggestedPrice is the cost-rate-driven price, rounded up to the
	// nearest multiple of 10 currency units.
	SuggestedPrice float64 `json:"suggestedPrice"`
	// CostRate is TotalCost over the effective price, percent.
	CostRate float64 `json:"costRate"`
	// Margin is the effective price minus TotalCost.
	Margin float64 `json:"margin"`
	// FinalVolume is the liquid volume including dilution, ml.
	FinalVolume float64 `json:"finalVolume"`
	// Price is the effective sale price: the operator's custom price when
	// set and non-zero, otherwise SuggestedPrice.
	Price float64 `json:"price"`
}

// ComputeStats derives the costing summary for a recipe against the
// ingredient catalog. It is a pure function: dangling ingredient references
// contribute nothing, and every field degrades toward zero on missing data.
//
// Volume and alcohol only accumulate for ml-denominated ingredients outside
// the "other" category; solids and garnish count toward cost but not toward
// the ABV and dilution math.
func ComputeStats(recipe models.Recipe, catalog []models.Ingredient) Stats {
	return ComputeStatsAtRate(recipe, catalog, DefaultTargetCostRate)
}

// ComputeStatsAtRate is ComputeStats with an explicit target cost rate.
func ComputeStatsAtRate(recipe models.Recipe, catalog []models.Ingredient, targetRate float64) Stats {
	byID := make(map[string]models.Ingredient, len(catalog))
	for _, ing := range catalog {
		byID[ing.ID] = ing
	}

	var totalCost, totalVolume, totalAlcohol float64
	for _, item := range recipe.Ingredients {
		ing, ok := byID[item.IngredientID]
		if !ok {
			continue
		}
		amount := float64(item.Amount)
		totalCost += ing.CostPerUnit() * amount
		if ing.Type != models.CategoryOther && (ing.Unit == "ml" || ing.Unit == "") {
			totalVolume += amount
			totalAlcohol += amount * float64(ing.ABV) / 100
		}
	}

	finalVolume := totalVolume + dilutionFor(recipe.Technique)

	finalABV := 0.0
	if finalVolume > 0 {
		finalABV = totalAlcohol / finalVolume * 100
	}

	suggestedPrice := 0.0
	if totalCost > 0 {
		suggestedPrice = roundPriceUp(totalCost, targetRate)
	}

	price := float64(recipe.CustomPrice)
	if price == 0 {
		price = suggestedPrice
	}

	costRate := 0.0
	if price > 0 {
		costRate = totalCost / price * 100
	}

	return Stats{
		TotalCost:      totalCost,
		FinalABV:       finalABV,
		SuggestedPrice: suggestedPrice,
		CostRate:       costRate,
		Margin:         price - totalCost,
		FinalVolume:    finalVolume,
		Price:          price,
	}
}

// dilutionFor maps a technique label to its ice-melt dilution. Matching is
// case-insensitive by substring so both English and Chinese labels hit.
func dilutionFor(technique string) float64 {
	t := strings.ToLower(technique)
	switch {
	case strings.Contains(t, "stir") || strings.Contains(t, "攪拌"):
		return stirDilution
	case strings.Contains(t, "shake") || strings.Contains(t, "搖盪"):
		return shakeDilution
	default:
		return 0
	}
}

// roundPriceUp lifts a cost to the sale price hitting the target cost rate,
// rounded up to the next multiple of 10 currency units.
func roundPriceUp(cost, targetRate float64) float64 {
	if targetRate <= 0 {
		targetRate = DefaultTargetCostRate
	}
	return math.Ceil(cost/targetRate/10) * 10
}
