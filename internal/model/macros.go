package model

import "github.com/google/uuid"

// MacroRow is one row of the recipe_macro_pct view joined with the recipe
// and category tables. It is what the search query returns.
type MacroRow struct {
	RecipeID     uuid.UUID `gorm:"column:recipe_id" json:"recipe_id"`
	Name         string    `gorm:"column:name" json:"name"`
	URL          string    `gorm:"column:url" json:"url"`
	Calories     float64   `gorm:"column:calories" json:"calories"`
	PctCarbs     float64   `gorm:"column:pct_carbs" json:"pct_carbs"`
	PctFat       float64   `gorm:"column:pct_fat" json:"pct_fat"`
	PctProtein   float64   `gorm:"column:pct_protein" json:"pct_protein"`
	CategoryName *string   `gorm:"column:category_name" json:"category_name"`
	Rating       *float64  `gorm:"column:rating" json:"rating"`
}
