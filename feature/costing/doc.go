// Package costing derives cost, ABV and pricing statistics from recipes and
// the ingredient catalog.
//
// The engine is a pure function over a recipe and the full ingredient
// collection. One function serves every surface that shows stats: the recipe
// list, the single-recipe view, and ad-hoc drafts. A companion single-pour
// path prices neat pours of individual ingredients at reference volumes.
//
// The dilution model is deliberately coarse: stirred drinks gain 20 ml of
// ice melt, shaken drinks 30 ml, everything else nothing. Only ml-denominated
// ingredients outside the "other" category count toward volume and ABV;
// solids and garnish still count toward cost.
package costing
