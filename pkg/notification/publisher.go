package notification

import (
	"context"

	"foodgram/domain"
	"foodgram/internal/logging"
)

type (
	Publisher interface {
		PublishRecipePublished(ctx context.Context, event domain.RecipePublishedEvent) error
	}

	Consumer interface {
		ConsumeRecipePublished(ctx context.Context, handler func(context.Context, domain.RecipePublishedEvent) error) error
	}

	logPublisher struct{}
)

// NewLogPublisher returns a Publisher that only logs events. It is used when no broker is configured.
func NewLogPublisher() Publisher {
	return logPublisher{}
}

func (logPublisher) PublishRecipePublished(_ context.Context, event domain.RecipePublishedEvent) error {
	logging.Debug().
		Str("recipe_id", event.RecipeID.String()).
		Str("author_id", event.AuthorID.String()).
		Msg("recipe published, no broker configured")
	return nil
}
