package main

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fcontreras/macrofilter/config"
	"github.com/fcontreras/macrofilter/internal/database"
	"github.com/fcontreras/macrofilter/internal/model"
)

var categories = []string{"Breakfast", "Lunch", "Dinner", "Dessert", "Snack"}

var allergens = []string{"Dairy", "Eggs", "Fish", "Peanuts", "Shellfish", "Soy", "Tree Nuts", "Wheat"}

var dietLabels = []string{"Gluten-Free", "Keto", "Low-Carb", "Paleo", "Vegan", "Vegetarian"}

type seedRecipe struct {
	name      string
	url       string
	calories  float64
	carbsG    float64
	fatG      float64
	proteinG  float64
	rating    float64
	category  string
	allergens []string
	labels    []string
}

var recipes = []seedRecipe{
	{"Overnight Oats with Berries", "https://example.com/overnight-oats", 420, 62, 9, 18, 4.6, "Breakfast",
		[]string{"Dairy"}, []string{"Vegetarian"}},
	{"Grilled Chicken Quinoa Bowl", "https://example.com/chicken-quinoa", 560, 48, 16, 42, 4.8, "Lunch",
		nil, []string{"Gluten-Free"}},
	{"Lentil Coconut Curry", "https://example.com/lentil-curry", 510, 58, 18, 21, 4.4, "Dinner",
		nil, []string{"Vegan", "Vegetarian", "Gluten-Free"}},
	{"Peanut Butter Energy Bites", "https://example.com/energy-bites", 210, 20, 12, 7, 4.2, "Snack",
		[]string{"Peanuts"}, []string{"Vegetarian"}},
	{"Keto Salmon with Asparagus", "https://example.com/keto-salmon", 480, 8, 34, 36, 4.7, "Dinner",
		[]string{"Fish"}, []string{"Keto", "Low-Carb", "Paleo", "Gluten-Free"}},
	{"Flourless Chocolate Cake", "https://example.com/flourless-cake", 390, 38, 24, 8, 4.9, "Dessert",
		[]string{"Eggs", "Dairy"}, []string{"Gluten-Free", "Vegetarian"}},
	{"Shrimp Pad Thai", "https://example.com/pad-thai", 620, 74, 18, 28, 4.3, "Dinner",
		[]string{"Shellfish", "Peanuts", "Eggs"}, nil},
	{"Tofu Scramble Wrap", "https://example.com/tofu-wrap", 380, 40, 14, 24, 4.1, "Breakfast",
		[]string{"Soy", "Wheat"}, []string{"Vegan", "Vegetarian"}},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seed(db.DB); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d categories, %d allergens, %d diet labels, %d recipes",
		len(categories), len(allergens), len(dietLabels), len(recipes))
}

func seed(db *gorm.DB) error {
	categoryIDs := make(map[string]int64)
	for _, name := range categories {
		c := model.Category{Name: name}
		if err := db.Where("category_name = ?", name).FirstOrCreate(&c).Error; err != nil {
			return err
		}
		categoryIDs[name] = c.ID
	}

	allergenIDs := make(map[string]int64)
	for _, name := range allergens {
		a := model.Allergen{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&a).Error; err != nil {
			return err
		}
		allergenIDs[name] = a.ID
	}

	labelIDs := make(map[string]int64)
	for _, name := range dietLabels {
		l := model.DietLabel{Name: name}
		if err := db.Where("label_name = ?", name).FirstOrCreate(&l).Error; err != nil {
			return err
		}
		labelIDs[name] = l.ID
	}

	for _, r := range recipes {
		var count int64
		if err := db.Model(&model.Recipe{}).Where("name = ?", r.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		catID := categoryIDs[r.category]
		rating := r.rating
		rec := model.Recipe{
			ID:         uuid.New(),
			Name:       r.name,
			URL:        r.url,
			Calories:   r.calories,
			CarbsG:     r.carbsG,
			FatG:       r.fatG,
			ProteinG:   r.proteinG,
			Rating:     &rating,
			CategoryID: &catID,
		}
		if err := db.Create(&rec).Error; err != nil {
			return err
		}
		for _, a := range r.allergens {
			link := model.RecipeAllergen{RecipeID: rec.ID, AllergenID: allergenIDs[a]}
			if err := db.Create(&link).Error; err != nil {
				return err
			}
		}
		for _, l := range r.labels {
			link := model.RecipeDietLabel{RecipeID: rec.ID, LabelID: labelIDs[l]}
			if err := db.Create(&link).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
