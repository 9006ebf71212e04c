package api

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fcontreras/macrofilter/internal/database"
	"github.com/fcontreras/macrofilter/internal/model"
	"github.com/fcontreras/macrofilter/internal/service"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	searchService := service.NewSearchService(db, 500)
	referenceService := service.NewReferenceService(db, nil, time.Hour)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewSearchHandler(searchService, referenceService).RegisterRoutes(v1)
	NewReferenceHandler(referenceService).RegisterRoutes(v1)
	return router, db
}

// seedRecipe inserts a recipe whose view percentages come out as the given
// triple (summing to 100), derived from a 1000 kcal macro budget.
func seedRecipe(t *testing.T, db *gorm.DB, name string, calories, pctCarbs, pctFat, pctProtein float64, categoryID *int64) uuid.UUID {
	t.Helper()
	r := model.Recipe{
		ID:         uuid.New(),
		Name:       name,
		URL:        "https://example.com/" + name,
		Calories:   calories,
		CarbsG:     pctCarbs * 10 / 4,
		FatG:       pctFat * 10 / 9,
		ProteinG:   pctProtein * 10 / 4,
		CategoryID: categoryID,
	}
	require.NoError(t, db.Create(&r).Error)
	return r.ID
}

func seedCategory(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	c := model.Category{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c.ID
}

func seedAllergen(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	a := model.Allergen{Name: name}
	require.NoError(t, db.Create(&a).Error)
	return a.ID
}

func seedDietLabel(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	l := model.DietLabel{Name: name}
	require.NoError(t, db.Create(&l).Error)
	return l.ID
}
