package store

// Fixed keys for the three durable documents. The v3 suffix tracks the
// storage schema generation carried over from earlier releases.
const (
	KeyIngredients = "bar_ingredients_v3"
	KeyRecipes     = "bar_recipes_v3"
	KeyPreferences = "bar_preferences_v3"
)

// Store is the durable key/value persistence contract.
type Store interface {
	// Load returns the value for key. The second return is false when the
	// key has never been written, which callers treat as "use defaults".
	Load(key string) ([]byte, bool, error)
	// Save writes the value for key, replacing any prior value.
	Save(key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// Config holds configuration for catalog persistence.
type Config struct {
	// Driver selects the persistence backend (file, database).
	Driver string `mapstructure:"driver" default:"file"`
	// Dir is the data directory used by the file driver.
	Dir string `mapstructure:"dir" default:"data"`
}
