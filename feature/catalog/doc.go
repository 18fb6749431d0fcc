// Package catalog owns the two entity collections at the heart of the
// application: stocked ingredients and cocktail recipes, plus the
// operator-extensible vocabularies (techniques, tags, glasses, categories).
//
// The Repository holds both collections in memory and mirrors each one to
// durable storage after every successful mutation. Mutation contracts:
//
//   - UpsertIngredient: replace-or-append by id, no history.
//   - UpsertRecipe: replace-or-append by id; overwrites snapshot the prior
//     version into the recipe's history, newest first.
//   - DeleteIngredient: rejected while any recipe references the ingredient;
//     the error names every blocking recipe.
//   - DeleteRecipe: unguarded, recipes are leaf records.
//
// Destructive operations (deletes, reset) additionally require explicit
// operator confirmation at the HTTP or CLI boundary.
package catalog
