package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced to the operator. None of them are fatal; the
// application stays usable after reporting any of them.
var (
	// ErrNameRequired blocks saving a record without a primary name.
	ErrNameRequired = errors.New("name is required")
	// ErrNotFound reports a lookup or delete against an unknown id.
	ErrNotFound = errors.New("record not found")
	// ErrConfirmationRequired gates destructive actions behind an explicit
	// operator confirmation.
	ErrConfirmationRequired = errors.New("confirmation required for destructive action")
	// ErrProtectedCategory blocks deletion of the built-in categories.
	ErrProtectedCategory = errors.New("built-in category cannot be deleted")
)

// ReferentialIntegrityError reports an ingredient deletion blocked by
// recipes that still reference it.
type ReferentialIntegrityError struct {
	// IngredientName is the display name of the blocked ingredient.
	IngredientName string
	// BlockedBy lists the names of the recipes using the ingredient.
	BlockedBy []string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("ingredient %q is used by recipes: %s",
		e.IngredientName, strings.Join(e.BlockedBy, ", "))
}
