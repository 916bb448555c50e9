package recipe

import (
	"context"
	"sort"
	"sync"
	"time"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
)

const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// memoryStore keeps recipes, reference data and list memberships in memory.
type memoryStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*entities.User
	tags        map[uuid.UUID]*entities.Tag
	ingredients map[uuid.UUID]*entities.Ingredient
	recipes     map[uuid.UUID]*entities.Recipe
	recipeIngs  map[uuid.UUID][]entities.RecipeIngredient
	recipeTags  map[uuid.UUID][]uuid.UUID
	lists       map[domain.ListKind]map[[2]uuid.UUID]bool
	follows     map[[2]uuid.UUID]bool
	failUpdate  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:       map[uuid.UUID]*entities.User{},
		tags:        map[uuid.UUID]*entities.Tag{},
		ingredients: map[uuid.UUID]*entities.Ingredient{},
		recipes:     map[uuid.UUID]*entities.Recipe{},
		recipeIngs:  map[uuid.UUID][]entities.RecipeIngredient{},
		recipeTags:  map[uuid.UUID][]uuid.UUID{},
		lists: map[domain.ListKind]map[[2]uuid.UUID]bool{
			domain.ListFavorite:     {},
			domain.ListShoppingCart: {},
		},
		follows: map[[2]uuid.UUID]bool{},
	}
}

func (s *memoryStore) addUser(username string) *entities.User {
	u := &entities.User{ID: uuid.New(), Username: username, Email: username + "@example.com"}
	s.users[u.ID] = u
	return u
}

func (s *memoryStore) addTag(name string) *entities.Tag {
	t := &entities.Tag{ID: uuid.New(), Name: name, Slug: name, Color: "#FFFFFF"}
	s.tags[t.ID] = t
	return t
}

func (s *memoryStore) addIngredient(name, unit string) *entities.Ingredient {
	i := &entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	s.ingredients[i.ID] = i
	return i
}

func (s *memoryStore) CreateRecipe(_ context.Context, recipe *entities.Recipe, ingredients []entities.RecipeIngredient, tagIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *recipe
	s.recipes[recipe.ID] = &cp
	s.recipeIngs[recipe.ID] = append([]entities.RecipeIngredient(nil), ingredients...)
	s.recipeTags[recipe.ID] = append([]uuid.UUID(nil), tagIDs...)
	return nil
}

func (s *memoryStore) UpdateRecipe(_ context.Context, recipe *entities.Recipe, ingredients []entities.RecipeIngredient, tagIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdate != nil {
		return s.failUpdate
	}
	if _, ok := s.recipes[recipe.ID]; !ok {
		return domain.ErrRecipeNotFound
	}
	cp := *recipe
	s.recipes[recipe.ID] = &cp
	s.recipeIngs[recipe.ID] = append([]entities.RecipeIngredient(nil), ingredients...)
	s.recipeTags[recipe.ID] = append([]uuid.UUID(nil), tagIDs...)
	return nil
}

func (s *memoryStore) DeleteRecipe(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[id]; !ok {
		return domain.ErrRecipeNotFound
	}
	delete(s.recipes, id)
	delete(s.recipeIngs, id)
	delete(s.recipeTags, id)
	for _, members := range s.lists {
		for key := range members {
			if key[1] == id {
				delete(members, key)
			}
		}
	}
	return nil
}

func (s *memoryStore) detailed(id uuid.UUID) *entities.Recipe {
	r := *s.recipes[id]
	r.Author = s.users[r.AuthorID]
	r.Tags = nil
	for _, tagID := range s.recipeTags[id] {
		r.Tags = append(r.Tags, *s.tags[tagID])
	}
	r.Ingredients = nil
	for _, ri := range s.recipeIngs[id] {
		ri.RecipeID = id
		ri.Ingredient = s.ingredients[ri.IngredientID]
		r.Ingredients = append(r.Ingredients, ri)
	}
	return &r
}

func (s *memoryStore) GetRecipeByID(_ context.Context, id uuid.UUID) (*entities.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[id]; !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return s.detailed(id), nil
}

func (s *memoryStore) GetRecipes(_ context.Context, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entities.Recipe
	for id, r := range s.recipes {
		if filter.AuthorID != nil && r.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.FavoritedBy != nil && !s.lists[domain.ListFavorite][[2]uuid.UUID{*filter.FavoritedBy, id}] {
			continue
		}
		if filter.InCartOf != nil && !s.lists[domain.ListShoppingCart][[2]uuid.UUID{*filter.InCartOf, id}] {
			continue
		}
		out = append(out, s.detailed(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PubDate.After(out[j].PubDate) })
	total := int64(len(out))
	start := (page - 1) * limit
	if start > len(out) {
		start = len(out)
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (s *memoryStore) GetRecipesByAuthor(_ context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	recipes, _, err := s.GetRecipes(context.Background(), domain.RecipeFilter{AuthorID: &authorID}, 1, 1000)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes, nil
}

func (s *memoryStore) CountRecipesByAuthors(_ context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[uuid.UUID]int64{}
	for _, id := range authorIDs {
		counts[id] = 0
	}
	for _, r := range s.recipes {
		if _, ok := counts[r.AuthorID]; ok {
			counts[r.AuthorID]++
		}
	}
	return counts, nil
}

// ingredient and tag repositories

type ingredientRepo struct{ *memoryStore }

func (r ingredientRepo) CreateIngredient(context.Context, *entities.Ingredient) error { return nil }

func (r ingredientRepo) GetIngredientByID(_ context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	if i, ok := r.ingredients[id]; ok {
		return i, nil
	}
	return nil, domain.ErrIngredientNotFound
}

func (r ingredientRepo) GetIngredients(context.Context, string) ([]*entities.Ingredient, error) {
	return nil, nil
}

func (r ingredientRepo) GetIngredientsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var out []*entities.Ingredient
	for _, id := range ids {
		if i, ok := r.ingredients[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

type tagRepo struct{ *memoryStore }

func (r tagRepo) CreateTag(context.Context, *entities.Tag) error { return nil }

func (r tagRepo) GetTagByID(_ context.Context, id uuid.UUID) (*entities.Tag, error) {
	if t, ok := r.tags[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTagNotFound
}

func (r tagRepo) GetTags(context.Context) ([]*entities.Tag, error) { return nil, nil }

func (r tagRepo) GetTagsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var out []*entities.Tag
	for _, id := range ids {
		if t, ok := r.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// membership and follow lookups for the resolver

func (s *memoryStore) Exists(_ context.Context, kind domain.ListKind, userID, recipeID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists[kind][[2]uuid.UUID{userID, recipeID}], nil
}

func (s *memoryStore) RecipeIDsIn(_ context.Context, kind domain.ListKind, userID uuid.UUID, recipeIDs []uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uuid.UUID
	for _, id := range recipeIDs {
		if s.lists[kind][[2]uuid.UUID{userID, id}] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *memoryStore) IsFollowing(_ context.Context, userID, authorID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follows[[2]uuid.UUID{userID, authorID}], nil
}

func (s *memoryStore) FollowedAmong(_ context.Context, userID uuid.UUID, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uuid.UUID
	for _, id := range authorIDs {
		if s.follows[[2]uuid.UUID{userID, id}] {
			out = append(out, id)
		}
	}
	return out, nil
}

// storage and publisher

type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: map[string][]byte{}}
}

func (m *memoryObjects) UploadFile(_ context.Context, fileName string, content []byte, folder string, _ ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := folder + "/" + fileName + ".png"
	m.objects[key] = content
	return key, nil
}

func (m *memoryObjects) DeleteFile(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectKey)
	m.deleted = append(m.deleted, objectKey)
	return nil
}

func (m *memoryObjects) GetPublicLinkKey(objectKey string) string {
	return "http://media.test/" + objectKey
}

func (m *memoryObjects) GetObjectKeyFromLink(link string) string {
	const prefix = "http://media.test/"
	if len(link) <= len(prefix) {
		return ""
	}
	return link[len(prefix):]
}

type recordingPublisher struct {
	events []domain.RecipePublishedEvent
}

func (p *recordingPublisher) PublishRecipePublished(_ context.Context, e domain.RecipePublishedEvent) error {
	p.events = append(p.events, e)
	return nil
}

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}
