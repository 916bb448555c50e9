// Package personalization computes the per-viewer flags shown on recipes and users.
// Flags are looked up on every read and never stored on the entities themselves.
package personalization

import (
	"context"

	"foodgram/domain"

	"github.com/google/uuid"
)

type (
	// MembershipChecker answers favorite and shopping cart lookups.
	MembershipChecker interface {
		Exists(ctx context.Context, kind domain.ListKind, userID, recipeID uuid.UUID) (bool, error)
		RecipeIDsIn(ctx context.Context, kind domain.ListKind, userID uuid.UUID, recipeIDs []uuid.UUID) ([]uuid.UUID, error)
	}

	// FollowChecker answers subscription lookups.
	FollowChecker interface {
		IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
		FollowedAmong(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) ([]uuid.UUID, error)
	}

	Resolver interface {
		IsFavorited(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID) (bool, error)
		IsInShoppingCart(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID) (bool, error)
		IsSubscribed(ctx context.Context, viewer domain.Viewer, authorID uuid.UUID) (bool, error)
		RecipeFlags(ctx context.Context, viewer domain.Viewer, recipeIDs []uuid.UUID) (map[uuid.UUID]domain.RecipeFlags, error)
		SubscribedAuthors(ctx context.Context, viewer domain.Viewer, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	}

	resolver struct {
		memberships MembershipChecker
		follows     FollowChecker
	}
)

func NewResolver(memberships MembershipChecker, follows FollowChecker) Resolver {
	return &resolver{memberships: memberships, follows: follows}
}

func (r *resolver) IsFavorited(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID) (bool, error) {
	return r.inList(ctx, domain.ListFavorite, viewer, recipeID)
}

func (r *resolver) IsInShoppingCart(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID) (bool, error) {
	return r.inList(ctx, domain.ListShoppingCart, viewer, recipeID)
}

func (r *resolver) inList(ctx context.Context, kind domain.ListKind, viewer domain.Viewer, recipeID uuid.UUID) (bool, error) {
	if viewer.IsAnonymous() {
		return false, nil
	}
	return r.memberships.Exists(ctx, kind, viewer.ID, recipeID)
}

func (r *resolver) IsSubscribed(ctx context.Context, viewer domain.Viewer, authorID uuid.UUID) (bool, error) {
	if viewer.IsAnonymous() || viewer.Is(authorID) {
		return false, nil
	}
	return r.follows.IsFollowing(ctx, viewer.ID, authorID)
}

// RecipeFlags returns an entry for every id in recipeIDs.
func (r *resolver) RecipeFlags(ctx context.Context, viewer domain.Viewer, recipeIDs []uuid.UUID) (map[uuid.UUID]domain.RecipeFlags, error) {
	flags := make(map[uuid.UUID]domain.RecipeFlags, len(recipeIDs))
	for _, id := range recipeIDs {
		flags[id] = domain.RecipeFlags{}
	}
	if viewer.IsAnonymous() || len(recipeIDs) == 0 {
		return flags, nil
	}

	favorited, err := r.memberships.RecipeIDsIn(ctx, domain.ListFavorite, viewer.ID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := r.memberships.RecipeIDsIn(ctx, domain.ListShoppingCart, viewer.ID, recipeIDs)
	if err != nil {
		return nil, err
	}

	for _, id := range favorited {
		if f, ok := flags[id]; ok {
			f.IsFavorited = true
			flags[id] = f
		}
	}
	for _, id := range inCart {
		if f, ok := flags[id]; ok {
			f.IsInShoppingCart = true
			flags[id] = f
		}
	}
	return flags, nil
}

// SubscribedAuthors returns an entry for every id in authorIDs.
func (r *resolver) SubscribedAuthors(ctx context.Context, viewer domain.Viewer, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	subscribed := make(map[uuid.UUID]bool, len(authorIDs))
	others := make([]uuid.UUID, 0, len(authorIDs))
	for _, id := range authorIDs {
		subscribed[id] = false
		if !viewer.Is(id) {
			others = append(others, id)
		}
	}
	if viewer.IsAnonymous() || len(others) == 0 {
		return subscribed, nil
	}

	followed, err := r.follows.FollowedAmong(ctx, viewer.ID, others)
	if err != nil {
		return nil, err
	}
	for _, id := range followed {
		if _, ok := subscribed[id]; ok && !viewer.Is(id) {
			subscribed[id] = true
		}
	}
	return subscribed, nil
}
