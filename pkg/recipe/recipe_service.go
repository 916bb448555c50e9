package recipe

import (
	"context"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/logging"
	"foodgram/internal/metrics"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/notification"
	"foodgram/pkg/personalization"
	"foodgram/pkg/tag"

	"github.com/google/uuid"
)

const recipeImageFolder = "recipes"

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, viewer domain.Viewer, req domain.RecipeRequest) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID, req domain.RecipeRequest) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID) error
		GetRecipe(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, viewer domain.Viewer, query domain.RecipeListQuery, page, limit int) ([]domain.RecipeResponse, int64, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
		tagRepository        tag.TagRepository
		resolver             personalization.Resolver
		s3                   storage.AwsS3
		publisher            notification.Publisher
		now                  func() time.Time
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	ingredientRepository ingredient.IngredientRepository,
	tagRepository tag.TagRepository,
	resolver personalization.Resolver,
	s3 storage.AwsS3,
	publisher notification.Publisher,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		tagRepository:        tagRepository,
		resolver:             resolver,
		s3:                   s3,
		publisher:            publisher,
		now:                  time.Now,
	}
}

// ValidateComposition checks the cooking time, ingredient amounts and tag list of a request.
// Duplicates are rejected, never merged.
func ValidateComposition(req domain.RecipeRequest) error {
	if req.CookingTime < domain.MinCookingTime {
		return domain.ErrCookingTimeBelowMin
	}

	if len(req.Ingredients) == 0 {
		return domain.ErrIngredientsRequired
	}
	seenIngredients := make(map[uuid.UUID]struct{}, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing.Amount < domain.MinIngredientAmount || ing.Amount > domain.MaxIngredientAmount {
			return domain.ErrIngredientAmount
		}
		if _, ok := seenIngredients[ing.ID]; ok {
			return domain.ErrDuplicateIngredient
		}
		seenIngredients[ing.ID] = struct{}{}
	}

	if len(req.Tags) == 0 {
		return domain.ErrTagsRequired
	}
	seenTags := make(map[uuid.UUID]struct{}, len(req.Tags))
	for _, id := range req.Tags {
		if _, ok := seenTags[id]; ok {
			return domain.ErrDuplicateTag
		}
		seenTags[id] = struct{}{}
	}
	return nil
}

func (s *recipeService) checkReferences(ctx context.Context, req domain.RecipeRequest) error {
	ids := make([]uuid.UUID, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ids = append(ids, ing.ID)
	}
	ingredients, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(ingredients) != len(ids) {
		return domain.ErrIngredientNotFound
	}

	tags, err := s.tagRepository.GetTagsByIDs(ctx, req.Tags)
	if err != nil {
		return err
	}
	if len(tags) != len(req.Tags) {
		return domain.ErrTagNotFound
	}
	return nil
}

func toRecipeIngredients(items []domain.RecipeIngredientRequest) []entities.RecipeIngredient {
	rows := make([]entities.RecipeIngredient, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return rows
}

func (s *recipeService) uploadImage(ctx context.Context, recipeID uuid.UUID, encoded string) (string, error) {
	content, err := storage.DecodeBase64Image(encoded)
	if err != nil {
		return "", err
	}
	fileName := recipeID.String() + "-" + uuid.NewString()[:8]
	return s.s3.UploadFile(ctx, fileName, content, recipeImageFolder, storage.AllowImage...)
}

func (s *recipeService) discardImage(ctx context.Context, objectKey string) {
	if objectKey == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		logging.Warn().Err(err).Str("object_key", objectKey).Msg("failed to delete recipe image")
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, viewer domain.Viewer, req domain.RecipeRequest) (domain.RecipeResponse, error) {
	if viewer.IsAnonymous() {
		return domain.RecipeResponse{}, domain.ErrAnonymous
	}
	if err := ValidateComposition(req); err != nil {
		return domain.RecipeResponse{}, err
	}
	if req.Image == "" {
		return domain.RecipeResponse{}, domain.ErrImageRequired
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return domain.RecipeResponse{}, err
	}

	recipeID := uuid.New()
	objectKey, err := s.uploadImage(ctx, recipeID, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	now := s.now()
	recipe := entities.Recipe{
		ID:          recipeID,
		AuthorID:    viewer.ID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       s.s3.GetPublicLinkKey(objectKey),
		CookingTime: req.CookingTime,
		PubDate:     now,
		Timestamp:   entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.recipeRepository.CreateRecipe(ctx, &recipe, toRecipeIngredients(req.Ingredients), req.Tags); err != nil {
		s.discardImage(ctx, objectKey)
		return domain.RecipeResponse{}, err
	}
	metrics.RecipeWrites.WithLabelValues("create").Inc()

	created, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	s.announce(ctx, created)
	return s.present(ctx, viewer, created)
}

// announce publishes the new recipe for follower notifications. Failures do not fail the request.
func (s *recipeService) announce(ctx context.Context, recipe *entities.Recipe) {
	event := domain.RecipePublishedEvent{
		RecipeID:    recipe.ID,
		AuthorID:    recipe.AuthorID,
		RecipeName:  recipe.Name,
		PublishedAt: recipe.PubDate,
	}
	if recipe.Author != nil {
		event.AuthorName = recipe.Author.Username
	}
	if err := s.publisher.PublishRecipePublished(ctx, event); err != nil {
		logging.Warn().Err(err).Str("recipe_id", recipe.ID.String()).Msg("failed to publish recipe event")
	}
}

func (s *recipeService) loadOwned(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID) (*entities.Recipe, error) {
	if viewer.IsAnonymous() {
		return nil, domain.ErrAnonymous
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != viewer.ID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID, req domain.RecipeRequest) (domain.RecipeResponse, error) {
	existing, err := s.loadOwned(ctx, viewer, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := ValidateComposition(req); err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return domain.RecipeResponse{}, err
	}

	image := existing.Image
	var newKey string
	if req.Image != "" {
		newKey, err = s.uploadImage(ctx, existing.ID, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		image = s.s3.GetPublicLinkKey(newKey)
	}

	recipe := entities.Recipe{
		ID:          existing.ID,
		AuthorID:    existing.AuthorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       image,
		CookingTime: req.CookingTime,
		PubDate:     existing.PubDate,
		Timestamp:   entities.Timestamp{CreatedAt: existing.CreatedAt, UpdatedAt: s.now()},
	}
	if err := s.recipeRepository.UpdateRecipe(ctx, &recipe, toRecipeIngredients(req.Ingredients), req.Tags); err != nil {
		s.discardImage(ctx, newKey)
		return domain.RecipeResponse{}, err
	}
	metrics.RecipeWrites.WithLabelValues("update").Inc()

	if newKey != "" {
		s.discardImage(ctx, s.s3.GetObjectKeyFromLink(existing.Image))
	}

	updated, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.present(ctx, viewer, updated)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID) error {
	existing, err := s.loadOwned(ctx, viewer, recipeID)
	if err != nil {
		return err
	}
	if err := s.recipeRepository.DeleteRecipe(ctx, existing.ID); err != nil {
		return err
	}
	metrics.RecipeWrites.WithLabelValues("delete").Inc()
	s.discardImage(ctx, s.s3.GetObjectKeyFromLink(existing.Image))
	return nil
}

func (s *recipeService) GetRecipe(ctx context.Context, viewer domain.Viewer, recipeID uuid.UUID) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.present(ctx, viewer, recipe)
}

func (s *recipeService) GetRecipes(ctx context.Context, viewer domain.Viewer, query domain.RecipeListQuery, page, limit int) ([]domain.RecipeResponse, int64, error) {
	filter := domain.RecipeFilter{AuthorID: query.AuthorID, TagSlugs: query.TagSlugs}
	// membership filters only apply to a signed-in viewer
	if !viewer.IsAnonymous() {
		viewerID := viewer.ID
		if query.IsFavorited {
			filter.FavoritedBy = &viewerID
		}
		if query.IsInShoppingCart {
			filter.InCartOf = &viewerID
		}
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}
	flags, err := s.resolver.RecipeFlags(ctx, viewer, recipeIDs)
	if err != nil {
		return nil, 0, err
	}
	subscribed, err := s.resolver.SubscribedAuthors(ctx, viewer, authorIDs)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, ToRecipeResponse(r, flags[r.ID], subscribed[r.AuthorID]))
	}
	return res, count, nil
}

func (s *recipeService) present(ctx context.Context, viewer domain.Viewer, recipe *entities.Recipe) (domain.RecipeResponse, error) {
	favorited, err := s.resolver.IsFavorited(ctx, viewer, recipe.ID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	inCart, err := s.resolver.IsInShoppingCart(ctx, viewer, recipe.ID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	subscribed, err := s.resolver.IsSubscribed(ctx, viewer, recipe.AuthorID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	flags := domain.RecipeFlags{IsFavorited: favorited, IsInShoppingCart: inCart}
	return ToRecipeResponse(recipe, flags, subscribed), nil
}
