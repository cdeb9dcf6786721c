package models

import "time"

// RecipeDB represents a recipe row in the database
type RecipeDB struct {
	ID         int64     `json:"id" db:"id"`                   // Primary key
	Title      string    `json:"title" db:"title"`             // Recipe title, searchable
	Category   string    `json:"category" db:"category"`       // Food tag
	Body       string    `json:"body" db:"body"`               // Recipe text
	OwnerLogin string    `json:"owner_login" db:"owner_login"` // Login of the author
	CreatedAt  time.Time `json:"created_at" db:"created_at"`   // Set once on insert
}

// RecipeFields holds the user-editable part of a recipe.
type RecipeFields struct {
	Title    string
	Category string
	Body     string
}
