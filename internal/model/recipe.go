package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a single recipe row. Macro amounts are stored as grams per
// serving; percentage-of-calories figures live in the recipe_macro_pct view.
// The id is generated in BeforeCreate rather than by a database default so
// the schema migrates identically on Postgres and SQLite.
type Recipe struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	URL        string    `gorm:"size:512" json:"url"`
	Calories   float64   `gorm:"not null" json:"calories"`
	CarbsG     float64   `gorm:"column:carbs_g" json:"carbs_g"`
	FatG       float64   `gorm:"column:fat_g" json:"fat_g"`
	ProteinG   float64   `gorm:"column:protein_g" json:"protein_g"`
	Rating     *float64  `json:"rating"`
	CategoryID *int64    `json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName overrides the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns a fresh id when none was provided.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Category is a recipe category lookup row.
type Category struct {
	ID   int64  `gorm:"column:category_id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:category_name;size:100;not null;unique" json:"name"`
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}

// Allergen is an allergen lookup row.
type Allergen struct {
	ID   int64  `gorm:"column:allergen_id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;size:100;not null;unique" json:"name"`
}

// TableName overrides the table name for Allergen
func (Allergen) TableName() string {
	return "allergens"
}

// DietLabel is a diet label lookup row (vegan, keto, ...).
type DietLabel struct {
	ID   int64  `gorm:"column:label_id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:label_name;size:100;not null;unique" json:"name"`
}

// TableName overrides the table name for DietLabel
func (DietLabel) TableName() string {
	return "diet_labels"
}

// RecipeAllergen links a recipe to an allergen it contains.
type RecipeAllergen struct {
	RecipeID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	AllergenID int64     `gorm:"column:allergen_id;primaryKey" json:"allergen_id"`
}

// TableName overrides the table name for RecipeAllergen
func (RecipeAllergen) TableName() string {
	return "recipe_allergens"
}

// RecipeDietLabel links a recipe to a diet label it satisfies.
type RecipeDietLabel struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	LabelID  int64     `gorm:"column:label_id;primaryKey" json:"label_id"`
}

// TableName overrides the table name for RecipeDietLabel
func (RecipeDietLabel) TableName() string {
	return "recipe_diet_labels"
}
