package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrValidation marks errors caused by invalid recipe input. Callers can
// test for it with errors.Is and translate it to a 400 response.
var ErrValidation = errors.New("recipe validation failed")

// Categories and difficulties accepted by the recipe schema.
var (
	Categories   = []string{"breakfast", "lunch", "dinner", "dessert", "snack", "appetizer"}
	Difficulties = []string{"easy", "medium", "hard"}
	DietaryTags  = []string{"vegetarian", "vegan", "gluten-free", "dairy-free", "keto", "paleo"}
)

// JSONBStringArray stores an ordered string array in a JSONB column.
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for JSONBStringArray", value)
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text;not null" json:"description"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Images       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	Category     string           `gorm:"size:50;not null;index" json:"category"`
	Difficulty   string           `gorm:"size:20;not null" json:"difficulty"`
	PrepTime     int              `gorm:"not null" json:"prep_time"`
	CookTime     int              `gorm:"not null" json:"cook_time"`
	Servings     int              `gorm:"not null" json:"servings"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Dietary      JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary"`
	AuthorID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"author_id"`

	Author  User           `gorm:"foreignKey:AuthorID" json:"author"`
	Likes   []RecipeLike   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"likes"`
	Ratings []RecipeRating `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ratings"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Validate checks the required fields and enumerated values of a recipe.
// Title and description must be non-empty after trimming, ingredients and
// instructions need at least one entry, and category/difficulty/dietary
// must come from their fixed sets.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("%w: at least one ingredient is required", ErrValidation)
	}
	if len(r.Instructions) == 0 {
		return fmt.Errorf("%w: at least one instruction is required", ErrValidation)
	}
	if !contains(Categories, r.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, r.Category)
	}
	if !contains(Difficulties, r.Difficulty) {
		return fmt.Errorf("%w: unknown difficulty %q", ErrValidation, r.Difficulty)
	}
	for _, d := range r.Dietary {
		if !contains(DietaryTags, d) {
			return fmt.Errorf("%w: unknown dietary tag %q", ErrValidation, d)
		}
	}
	if r.PrepTime < 0 || r.CookTime < 0 || r.Servings < 0 {
		return fmt.Errorf("%w: prep time, cook time and servings must not be negative", ErrValidation)
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
