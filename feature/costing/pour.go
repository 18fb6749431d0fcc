package costing

import (
	"fmt"

	"barkeep/feature/catalog/models"
)

// PourQuote prices a neat pour of a single ingredient.
type PourQuote struct {
	// Label names the pour size (e.g. "Shot (30ml)").
	Label string `json:"label"`
	// Amount is the pour size in the ingredient's unit.
	Amount float64 `json:"amount"`
	// Cost is the ingredient cost for the pour.
	Cost float64 `json:"cost"`
	// SuggestedPrice is the cost lifted to the target rate, rounded up to
	// the next multiple of 10.
	SuggestedPrice float64 `json:"suggestedPrice"`
}

// QuotePour prices an arbitrary pour of an ingredient at a target cost rate.
func QuotePour(ing models.Ingredient, amount, targetRate float64) PourQuote {
	cost := ing.CostPerUnit() * amount
	suggested := 0.0
	if cost > 0 {
		suggested = roundPriceUp(cost, targetRate)
	}
	return PourQuote{
		Label:          fmt.Sprintf("%.0f%s", amount, unitLabel(ing)),
		Amount:         amount,
		Cost:           cost,
		SuggestedPrice: suggested,
	}
}

// PourTable quotes the standard reference pours for a neat-sellable
// ingredient: shot, glass, double, and the full container.
func PourTable(ing models.Ingredient, targetRate float64) []PourQuote {
	sizes := []struct {
		label  string
		amount float64
	}{
		{"Shot (30ml)", 30},
		{"Glass (50ml)", 50},
		{"Double (60ml)", 60},
	}

	quotes := make([]PourQuote, 0, len(sizes)+1)
	for _, size := range sizes {
		q := QuotePour(ing, size.amount, targetRate)
		q.Label = size.label
		quotes = append(quotes, q)
	}

	if float64(ing.Volume) > 0 {
		full := QuotePour(ing, float64(ing.Volume), targetRate)
		full.Label = fmt.Sprintf("Bottle (%.0f%s)", float64(ing.Volume), unitLabel(ing))
		quotes = append(quotes, full)
	}
	return quotes
}

func unitLabel(ing models.Ingredient) string {
	if ing.Unit == "" {
		return "ml"
	}
	return ing.Unit
}
