package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/database"
	"github.com/recipeshare/backend/internal/models"
)

// Development seeder: one demo account plus a handful of recipes covering
// every category, so the list filters have something to chew on.

var seedRecipes = []models.Recipe{
	{
		Title:        "Blueberry Pancakes",
		Description:  "Fluffy pancakes loaded with fresh blueberries.",
		Ingredients:  models.JSONBStringArray{"2 cups flour", "2 eggs", "1 cup milk", "1 cup blueberries", "2 tbsp sugar"},
		Instructions: models.JSONBStringArray{"Whisk the dry ingredients.", "Fold in eggs, milk and blueberries.", "Cook on a buttered griddle until golden."},
		Category:     "breakfast",
		Difficulty:   "easy",
		PrepTime:     10,
		CookTime:     15,
		Servings:     4,
		Tags:         models.JSONBStringArray{"pancakes", "quick"},
		Dietary:      models.JSONBStringArray{"vegetarian"},
	},
	{
		Title:        "Chickpea Buddha Bowl",
		Description:  "A bright lunch bowl with roasted chickpeas and tahini dressing.",
		Ingredients:  models.JSONBStringArray{"1 can chickpeas", "2 cups spinach", "1 cup quinoa", "2 tbsp tahini", "1 lemon"},
		Instructions: models.JSONBStringArray{"Roast the chickpeas.", "Cook the quinoa.", "Assemble the bowl and drizzle with dressing."},
		Category:     "lunch",
		Difficulty:   "easy",
		PrepTime:     15,
		CookTime:     25,
		Servings:     2,
		Tags:         models.JSONBStringArray{"bowl", "healthy"},
		Dietary:      models.JSONBStringArray{"vegan", "gluten-free"},
	},
	{
		Title:        "Braised Short Ribs",
		Description:  "Slow-braised beef short ribs in red wine.",
		Ingredients:  models.JSONBStringArray{"3 lbs short ribs", "1 bottle red wine", "2 carrots", "1 onion", "4 cloves garlic"},
		Instructions: models.JSONBStringArray{"Sear the ribs on all sides.", "Soften the vegetables.", "Braise everything in wine for three hours."},
		Category:     "dinner",
		Difficulty:   "hard",
		PrepTime:     30,
		CookTime:     180,
		Servings:     6,
		Tags:         models.JSONBStringArray{"beef", "slow-cooked"},
	},
	{
		Title:        "Chocolate Lava Cake",
		Description:  "Individual chocolate cakes with a molten center.",
		Ingredients:  models.JSONBStringArray{"200g dark chocolate", "100g butter", "3 eggs", "80g sugar", "40g flour"},
		Instructions: models.JSONBStringArray{"Melt chocolate and butter.", "Whisk in eggs and sugar.", "Bake 12 minutes at 200C."},
		Category:     "dessert",
		Difficulty:   "medium",
		PrepTime:     15,
		CookTime:     12,
		Servings:     4,
		Tags:         models.JSONBStringArray{"chocolate", "baking"},
		Dietary:      models.JSONBStringArray{"vegetarian"},
	},
	{
		Title:        "Spiced Roasted Almonds",
		Description:  "Crunchy smoked-paprika almonds for snacking.",
		Ingredients:  models.JSONBStringArray{"2 cups almonds", "1 tbsp olive oil", "1 tsp smoked paprika", "1 tsp sea salt"},
		Instructions: models.JSONBStringArray{"Toss almonds with oil and spices.", "Roast 15 minutes at 180C, stirring once."},
		Category:     "snack",
		Difficulty:   "easy",
		PrepTime:     5,
		CookTime:     15,
		Servings:     8,
		Tags:         models.JSONBStringArray{"nuts", "party"},
		Dietary:      models.JSONBStringArray{"vegan", "keto", "paleo"},
	},
	{
		Title:        "Tomato Bruschetta",
		Description:  "Grilled bread topped with marinated tomatoes and basil.",
		Ingredients:  models.JSONBStringArray{"1 baguette", "4 tomatoes", "1 bunch basil", "2 cloves garlic", "3 tbsp olive oil"},
		Instructions: models.JSONBStringArray{"Dice and marinate the tomatoes.", "Grill the bread slices.", "Rub with garlic and top with tomatoes."},
		Category:     "appetizer",
		Difficulty:   "easy",
		PrepTime:     15,
		CookTime:     5,
		Servings:     6,
		Tags:         models.JSONBStringArray{"italian", "starter"},
		Dietary:      models.JSONBStringArray{"vegetarian"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var user models.User
	err = db.Where("email = ?", "demo@recipeshare.dev").First(&user).Error
	if err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user = models.User{Email: "demo@recipeshare.dev", PasswordHash: string(hash)}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		profile := models.UserProfile{UserID: user.ID, Username: "demo_cook", Bio: "Seeded demo account"}
		if err := db.Create(&profile).Error; err != nil {
			log.Fatalf("Failed to create demo profile: %v", err)
		}
	}

	seeded := 0
	for i := range seedRecipes {
		recipe := seedRecipes[i]
		recipe.AuthorID = user.ID

		var count int64
		db.Model(&models.Recipe{}).Where("title = ? AND author_id = ?", recipe.Title, user.ID).Count(&count)
		if count > 0 {
			continue
		}
		if err := recipe.Validate(); err != nil {
			log.Fatalf("Seed recipe %q is invalid: %v", recipe.Title, err)
		}
		if err := db.Create(&recipe).Error; err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", recipe.Title, err)
		}
		seeded++
	}

	log.Printf("Seed complete: %d new recipes for %s", seeded, user.Email)
}
