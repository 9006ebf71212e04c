package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/fcontreras/macrofilter/internal/filter"
	"github.com/fcontreras/macrofilter/internal/model"
)

// SearchService builds and executes the recipe filter query. Every value
// that originates from user input is passed through parameter binding;
// nothing is interpolated into the query text.
type SearchService struct {
	db    *gorm.DB
	limit int
}

// NewSearchService creates a new SearchService instance. limit caps the
// number of returned rows; 0 disables the cap.
func NewSearchService(db *gorm.DB, limit int) *SearchService {
	return &SearchService{db: db, limit: limit}
}

// Search returns the recipes matching the filter state, ordered by calories
// ascending with recipe id as a tiebreaker so repeat queries over an
// unchanged dataset yield identical ordering.
func (s *SearchService) Search(ctx context.Context, f filter.State) ([]model.MacroRow, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).
		Table("recipe_macro_pct v").
		Select("v.recipe_id, v.name, v.url, v.calories, v.pct_carbs, v.pct_fat, v.pct_protein, c.category_name, r.rating").
		Joins("JOIN recipes r ON r.id = v.recipe_id").
		Joins("LEFT JOIN categories c ON c.category_id = r.category_id").
		Where("v.calories BETWEEN ? AND ?", f.CalMin, f.CalMax).
		Where("v.pct_carbs BETWEEN ? AND ?", f.CarbTarget-f.Margin, f.CarbTarget+f.Margin).
		Where("v.pct_fat BETWEEN ? AND ?", f.FatTarget-f.Margin, f.FatTarget+f.Margin).
		Where("v.pct_protein BETWEEN ? AND ?", f.ProteinTarget-f.Margin, f.ProteinTarget+f.Margin)

	if f.HasCategory() {
		q = q.Where("LOWER(c.category_name) = LOWER(?)", f.Category)
	}

	if len(f.ExcludeAllergenIDs) > 0 {
		q = q.Where(
			"NOT EXISTS (SELECT 1 FROM recipe_allergens ra WHERE ra.recipe_id = v.recipe_id AND ra.allergen_id IN ?)",
			f.ExcludeAllergenIDs,
		)
	}

	// Inclusive OR across selected labels: one matching link row is enough.
	if len(f.DietLabelIDs) > 0 {
		q = q.Where(
			"EXISTS (SELECT 1 FROM recipe_diet_labels rdl WHERE rdl.recipe_id = v.recipe_id AND rdl.label_id IN ?)",
			f.DietLabelIDs,
		)
	}

	q = q.Order("v.calories ASC, v.recipe_id ASC")
	if s.limit > 0 {
		q = q.Limit(s.limit)
	}

	var rows []model.MacroRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
