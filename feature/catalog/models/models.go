package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"barkeep/core/utils"
)

// FlexFloat is a float64 that tolerates sloppy JSON: quoted numbers, empty
// strings, and null all unmarshal without error, and anything non-numeric
// becomes 0. Backup files written by hand or by older releases carry these
// shapes, so the boundary absorbs them instead of failing the import.
type FlexFloat float64

// UnmarshalJSON implements lenient numeric decoding.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(utils.ToFloat(s))
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// Ingredient is a stocked item: a bottle, a mixer, or a garnish.
type Ingredient struct {
	// ID is an opaque unique identifier within the ingredient collection.
	ID string `json:"id"`
	// NameZh is the primary display name and duplicate-match key.
	NameZh string `json:"nameZh"`
	// NameEn is the secondary display name.
	NameEn string `json:"nameEn"`
	// Type is a category id (alcohol, soft, other, or a custom category).
	Type string `json:"type"`
	// Price is the purchase price for the stocked container.
	Price FlexFloat `json:"price"`
	// Volume is the stocked quantity in Unit.
	Volume FlexFloat `json:"volume"`
	// Unit is the stocking unit (ml when empty).
	Unit string `json:"unit"`
	// ABV is alcohol by volume in percent; 0 for non-alcoholic stock.
	ABV FlexFloat `json:"abv"`
	// IsSingle marks the ingredient as sellable as a neat pour.
	// nil means true (the historical default).
	IsSingle *bool `json:"isSingle,omitempty"`
}

// Single reports whether the ingredient may be sold as a neat pour.
func (i Ingredient) Single() bool {
	return i.IsSingle == nil || *i.IsSingle
}

// CostPerUnit is the purchase price spread over the stocked quantity.
// A zero volume counts as 1 to avoid division by zero.
func (i Ingredient) CostPerUnit() float64 {
	volume := float64(i.Volume)
	if volume == 0 {
		volume = 1
	}
	return float64(i.Price) / volume
}

// RecipeIngredient references a catalog ingredient with a quantity in that
// ingredient's unit. The json key "id" matches the backup file format.
type RecipeIngredient struct {
	IngredientID string    `json:"id"`
	Amount       FlexFloat `json:"amount"`
}

// Recipe is a stored cocktail build.
type Recipe struct {
	ID     string `json:"id"`
	NameZh string `json:"nameZh"`
	NameEn string `json:"nameEn"`
	// Type categorizes the recipe for listing (classic, signature).
	Type string `json:"type"`
	// BaseSpirit is an optional base spirit label.
	BaseSpirit string `json:"baseSpirit,omitempty"`
	// Technique is the preparation technique; it also drives the dilution
	// model during costing.
	Technique string `json:"technique"`
	// Glass is the selected glassware label.
	Glass string `json:"glass"`
	// Tags are flavor tags, order preserved for display.
	Tags []string `json:"tags"`
	// Ingredients is the ordered build.
	Ingredients []RecipeIngredient `json:"ingredients"`
	// CustomPrice overrides the suggested price when non-zero.
	CustomPrice FlexFloat `json:"customPrice,omitempty"`
	// Method is free-text preparation steps.
	Method string `json:"method,omitempty"`
	// FlavorDescription is a free-text tasting note.
	FlavorDescription string `json:"flavorDescription,omitempty"`
	// Image is an embedded bitmap as a data URI.
	Image string `json:"image,omitempty"`
	// Allergens is a free-text warning.
	Allergens string `json:"allergens,omitempty"`
	// History holds prior versions, newest first.
	History []HistoryEntry `json:"history,omitempty"`
}

// HistoryEntry is a full prior copy of a recipe, captured immediately before
// an overwrite. The snapshot never carries its own history.
type HistoryEntry struct {
	Date     time.Time `json:"date"`
	Snapshot Recipe    `json:"snapshot"`
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	if r.Ingredients != nil {
		out.Ingredients = append([]RecipeIngredient(nil), r.Ingredients...)
	}
	if r.History != nil {
		out.History = make([]HistoryEntry, len(r.History))
		for i, h := range r.History {
			out.History[i] = HistoryEntry{Date: h.Date, Snapshot: h.Snapshot.Clone()}
		}
	}
	return out
}

// Snapshot returns a deep copy of the recipe with its history stripped,
// suitable for embedding in a HistoryEntry.
func (r Recipe) Snapshot() Recipe {
	out := r.Clone()
	out.History = nil
	return out
}

// Category is an operator-defined ingredient category.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Preferences bundles the operator-extensible vocabularies.
type Preferences struct {
	Techniques           []string   `json:"techniques"`
	Tags                 []string   `json:"tags"`
	Glasses              []string   `json:"glasses"`
	IngredientCategories []Category `json:"ingredientCategories"`
}

// Clone returns a deep copy of the preferences bundle.
func (p Preferences) Clone() Preferences {
	out := Preferences{}
	out.Techniques = append([]string(nil), p.Techniques...)
	out.Tags = append([]string(nil), p.Tags...)
	out.Glasses = append([]string(nil), p.Glasses...)
	out.IngredientCategories = append([]Category(nil), p.IngredientCategories...)
	return out
}
