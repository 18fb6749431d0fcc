package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"barkeep/feature/catalog/models"
)

// ErrMalformedImport indicates an import payload that could not be parsed.
// The catalog is left untouched when this is returned.
var ErrMalformedImport = errors.New("malformed backup document")

// Document is the backup file format: both catalog collections in one JSON
// object. Collections absent from the file decode as empty, not nil, so an
// overwrite import of a partial file clears the missing collection.
type Document struct {
	Ingredients []models.Ingredient `json:"ingredients"`
	Recipes     []models.Recipe     `json:"recipes"`
}

// Parse decodes a backup document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if doc.Ingredients == nil {
		doc.Ingredients = []models.Ingredient{}
	}
	if doc.Recipes == nil {
		doc.Recipes = []models.Recipe{}
	}
	return doc, nil
}

// Encode serializes the document for export. Indented so hand inspection of
// a backup file stays practical.
func (d Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Filename returns the export filename for the given day, e.g.
// "bar_backup_2026-08-28.json".
func Filename(t time.Time) string {
	return fmt.Sprintf("bar_backup_%s.json", t.Format("2006-01-02"))
}
