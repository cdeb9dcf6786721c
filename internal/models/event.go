package models

import "time"

// Recipe event types published after a committed change.
const (
	RecipeCreated = "recipe.created"
	RecipeUpdated = "recipe.updated"
	RecipeDeleted = "recipe.deleted"
)

// RecipeEvent describes a committed change to a recipe.
type RecipeEvent struct {
	EventID    string    `json:"event_id"`    // Unique identifier of the event
	Type       string    `json:"type"`        // One of the Recipe* constants
	RecipeID   int64     `json:"recipe_id"`   // Affected recipe
	OwnerLogin string    `json:"owner_login"` // Author of the recipe
	Title      string    `json:"title"`       // Title at the time of the event
	OccurredAt time.Time `json:"occurred_at"` // When the change was committed
}
