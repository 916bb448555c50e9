package membership

import (
	"context"

	"foodgram/domain"
	"foodgram/internal/metrics"
	"foodgram/pkg/recipe"

	"github.com/google/uuid"
)

type (
	MembershipService interface {
		AddRecipe(ctx context.Context, viewer domain.Viewer, kind domain.ListKind, recipeID uuid.UUID) (domain.RecipeShortResponse, error)
		RemoveRecipe(ctx context.Context, viewer domain.Viewer, kind domain.ListKind, recipeID uuid.UUID) error
	}

	membershipService struct {
		membershipRepository MembershipRepository
		recipeRepository     recipe.RecipeRepository
	}
)

func NewMembershipService(membershipRepository MembershipRepository, recipeRepository recipe.RecipeRepository) MembershipService {
	return &membershipService{
		membershipRepository: membershipRepository,
		recipeRepository:     recipeRepository,
	}
}

func (s *membershipService) AddRecipe(ctx context.Context, viewer domain.Viewer, kind domain.ListKind, recipeID uuid.UUID) (domain.RecipeShortResponse, error) {
	if viewer.IsAnonymous() {
		return domain.RecipeShortResponse{}, domain.ErrAnonymous
	}
	if !kind.Valid() {
		return domain.RecipeShortResponse{}, domain.NewFieldError("list", "unknown list")
	}
	found, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if err := s.membershipRepository.AddRecipe(ctx, kind, viewer.ID, recipeID); err != nil {
		return domain.RecipeShortResponse{}, err
	}
	metrics.ListMemberships.WithLabelValues(kind.String(), "add").Inc()
	return recipe.ToRecipeShort(found), nil
}

func (s *membershipService) RemoveRecipe(ctx context.Context, viewer domain.Viewer, kind domain.ListKind, recipeID uuid.UUID) error {
	if viewer.IsAnonymous() {
		return domain.ErrAnonymous
	}
	if !kind.Valid() {
		return domain.NewFieldError("list", "unknown list")
	}
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		return err
	}
	if err := s.membershipRepository.RemoveRecipe(ctx, kind, viewer.ID, recipeID); err != nil {
		return err
	}
	metrics.ListMemberships.WithLabelValues(kind.String(), "remove").Inc()
	return nil
}
