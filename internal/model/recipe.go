package model

import "time"

// MealType tags a recipe as a lunch dish or a dinner dish. The week plan uses
// it to offer only lunch recipes for lunch slots and dinner recipes for
// dinner slots.
//
// Like Unit, the values are the frontend's French wire values.
type MealType string

const (
	MealDejeuner MealType = "dejeuner" // lunch
	MealDiner    MealType = "diner"    // dinner
)

// ValidMealType reports whether t is a known meal type.
func ValidMealType(t MealType) bool {
	return t == MealDejeuner || t == MealDiner
}

// Ingredient is one line of a recipe's ingredient list.
// Quantity is always strictly positive — a zero-quantity ingredient line is
// rejected at the service boundary.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
}

// Recipe is a named dish with free-text instructions and an ordered
// ingredient list.
type Recipe struct {
	ID           string       `json:"id"           db:"id"`
	Name         string       `json:"name"         db:"name"`
	Type         MealType     `json:"type"         db:"type"`
	Instructions string       `json:"instructions" db:"instructions"`
	Ingredients  []Ingredient `json:"ingredients"  db:"ingredients"`
	UserID       string       `json:"userId"       db:"user_id"`
	CreatedAt    time.Time    `json:"createdAt"    db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt"    db:"updated_at"`
}
