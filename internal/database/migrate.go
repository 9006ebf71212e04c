package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/fcontreras/macrofilter/internal/model"
)

// macroViewDDL derives percentage-of-calories figures from the stored gram
// amounts using the 4/9/4 kcal-per-gram factors. The same statement runs on
// both Postgres and SQLite, which keeps the in-memory test setup honest.
const macroViewDDL = `
CREATE VIEW recipe_macro_pct AS
SELECT
    r.id AS recipe_id,
    r.name AS name,
    r.url AS url,
    r.calories AS calories,
    CASE WHEN (4 * r.carbs_g + 9 * r.fat_g + 4 * r.protein_g) > 0
         THEN 100.0 * 4 * r.carbs_g / (4 * r.carbs_g + 9 * r.fat_g + 4 * r.protein_g)
         ELSE 0 END AS pct_carbs,
    CASE WHEN (4 * r.carbs_g + 9 * r.fat_g + 4 * r.protein_g) > 0
         THEN 100.0 * 9 * r.fat_g / (4 * r.carbs_g + 9 * r.fat_g + 4 * r.protein_g)
         ELSE 0 END AS pct_fat,
    CASE WHEN (4 * r.carbs_g + 9 * r.fat_g + 4 * r.protein_g) > 0
         THEN 100.0 * 4 * r.protein_g / (4 * r.carbs_g + 9 * r.fat_g + 4 * r.protein_g)
         ELSE 0 END AS pct_protein
FROM recipes r`

// Migrate creates the schema and the recipe_macro_pct view.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Allergen{},
		&model.DietLabel{},
		&model.Recipe{},
		&model.RecipeAllergen{},
		&model.RecipeDietLabel{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := db.Exec("DROP VIEW IF EXISTS recipe_macro_pct").Error; err != nil {
		return fmt.Errorf("failed to drop macro view: %w", err)
	}
	if err := db.Exec(macroViewDDL).Error; err != nil {
		return fmt.Errorf("failed to create macro view: %w", err)
	}

	log.Printf("Schema migration complete")
	return nil
}
