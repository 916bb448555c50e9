package subscription

import (
	"context"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/metrics"
	"foodgram/pkg/recipe"
	"foodgram/pkg/user"

	"github.com/google/uuid"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, viewer domain.Viewer, authorID uuid.UUID, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, viewer domain.Viewer, authorID uuid.UUID) error
		GetSubscriptions(ctx context.Context, viewer domain.Viewer, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		userRepository         user.UserRepository
		recipeRepository       recipe.RecipeRepository
	}
)

func NewSubscriptionService(
	subscriptionRepository SubscriptionRepository,
	userRepository user.UserRepository,
	recipeRepository recipe.RecipeRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		userRepository:         userRepository,
		recipeRepository:       recipeRepository,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, viewer domain.Viewer, authorID uuid.UUID, recipesLimit int) (domain.SubscriptionResponse, error) {
	if viewer.IsAnonymous() {
		return domain.SubscriptionResponse{}, domain.ErrAnonymous
	}
	if viewer.Is(authorID) {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscription
	}
	author, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if err := s.subscriptionRepository.Subscribe(ctx, viewer.ID, authorID); err != nil {
		return domain.SubscriptionResponse{}, err
	}
	metrics.Subscriptions.WithLabelValues("subscribe").Inc()

	res, err := s.present(ctx, []*entities.User{author}, recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	return res[0], nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, viewer domain.Viewer, authorID uuid.UUID) error {
	if viewer.IsAnonymous() {
		return domain.ErrAnonymous
	}
	if _, err := s.userRepository.GetUserByID(ctx, authorID); err != nil {
		return err
	}
	if err := s.subscriptionRepository.Unsubscribe(ctx, viewer.ID, authorID); err != nil {
		return err
	}
	metrics.Subscriptions.WithLabelValues("unsubscribe").Inc()
	return nil
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context, viewer domain.Viewer, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error) {
	if viewer.IsAnonymous() {
		return nil, 0, domain.ErrAnonymous
	}
	authors, count, err := s.subscriptionRepository.GetSubscriptions(ctx, viewer.ID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	res, err := s.present(ctx, authors, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return res, count, nil
}

// present builds the followed-author view. Every author listed here is followed by the viewer.
func (s *subscriptionService) present(ctx context.Context, authors []*entities.User, recipesLimit int) ([]domain.SubscriptionResponse, error) {
	ids := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	counts, err := s.recipeRepository.CountRecipesByAuthors(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, a := range authors {
		recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, a.ID, recipesLimit)
		if err != nil {
			return nil, err
		}
		short := make([]domain.RecipeShortResponse, 0, len(recipes))
		for _, r := range recipes {
			short = append(short, recipe.ToRecipeShort(r))
		}
		res = append(res, domain.SubscriptionResponse{
			UserResponse: user.ToUserResponse(a, true),
			Recipes:      short,
			RecipesCount: counts[a.ID],
		})
	}
	return res, nil
}
