package domain

import (
	"time"

	"github.com/google/uuid"
)

type RecipePublishedEvent struct {
	RecipeID    uuid.UUID `json:"recipe_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	RecipeName  string    `json:"recipe_name"`
	PublishedAt time.Time `json:"published_at"`
}
