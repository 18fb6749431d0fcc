package models

// Category ids protected from deletion.
const (
	CategoryAlcohol = "alcohol"
	CategorySoft    = "soft"
	CategoryOther   = "other"
)

// Recipe types. "single" is a view over neat-pour ingredients, not a stored
// recipe type, so it never appears here.
const (
	RecipeClassic   = "classic"
	RecipeSignature = "signature"
)

// DefaultTechniques seeds the technique vocabulary.
func DefaultTechniques() []string {
	return []string{"直調", "搖盪", "攪拌", "滾動", "攪打", "分層"}
}

// DefaultTags seeds the flavor tag vocabulary.
func DefaultTags() []string {
	return []string{"酸", "甜", "苦", "辣", "氣泡", "清爽", "重酒感", "果香", "花香", "煙燻", "草本", "木質", "奶油", "咖啡", "茶香"}
}

// DefaultGlasses seeds the glassware vocabulary.
func DefaultGlasses() []string {
	return []string{
		"Highball (高球杯)", "Rock (古典杯)", "Martini (馬丁尼杯)",
		"Coupe (寬口香檳杯)", "Collins (柯林斯杯)", "Shot (一口杯)",
		"Flute (香檳杯)", "Tiki (提基杯)", "Mug (馬克杯)",
	}
}

// BaseSpirits is the base spirit labels offered for recipe filtering.
func BaseSpirits() []string {
	return []string{
		"琴酒 (Gin)", "伏特加 (Vodka)", "蘭姆酒 (Rum)", "龍舌蘭 (Tequila)",
		"威士忌 (Whiskey)", "白蘭地 (Brandy)", "利口酒 (Liqueur)", "其他 (Other)",
	}
}

// Units is the fixed stocking unit vocabulary.
func Units() []string {
	return []string{"ml", "oz", "g", "kg", "顆", "片", "dash", "tsp", "drop", "瓶"}
}

// DefaultCategories seeds the ingredient category list.
func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryAlcohol, Label: "酒類"},
		{ID: CategorySoft, Label: "軟飲"},
		{ID: CategoryOther, Label: "其他"},
	}
}

// DefaultPreferences assembles the seeded preferences bundle.
func DefaultPreferences() Preferences {
	return Preferences{
		Techniques:           DefaultTechniques(),
		Tags:                 DefaultTags(),
		Glasses:              DefaultGlasses(),
		IngredientCategories: DefaultCategories(),
	}
}

// NewIngredient returns an ingredient pre-filled with editor defaults.
func NewIngredient(id string) Ingredient {
	return Ingredient{
		ID:     id,
		Type:   CategoryAlcohol,
		Volume: 700,
		Unit:   "ml",
	}
}

// NewRecipe returns a recipe pre-filled with editor defaults.
func NewRecipe(id string) Recipe {
	return Recipe{
		ID:          id,
		Type:        RecipeClassic,
		Tags:        []string{},
		Ingredients: []RecipeIngredient{},
		History:     []HistoryEntry{},
	}
}
