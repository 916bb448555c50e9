package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecipeService struct {
	lastQuery  domain.RecipeListQuery
	lastViewer domain.Viewer
}

func (s *stubRecipeService) CreateRecipe(_ context.Context, viewer domain.Viewer, req domain.RecipeRequest) (domain.RecipeResponse, error) {
	if viewer.IsAnonymous() {
		return domain.RecipeResponse{}, domain.ErrAnonymous
	}
	return domain.RecipeResponse{ID: uuid.New(), Name: req.Name, Author: domain.UserResponse{ID: viewer.ID}}, nil
}

func (s *stubRecipeService) UpdateRecipe(context.Context, domain.Viewer, uuid.UUID, domain.RecipeRequest) (domain.RecipeResponse, error) {
	return domain.RecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
}

func (s *stubRecipeService) DeleteRecipe(context.Context, domain.Viewer, uuid.UUID) error {
	return nil
}

func (s *stubRecipeService) GetRecipe(context.Context, domain.Viewer, uuid.UUID) (domain.RecipeResponse, error) {
	return domain.RecipeResponse{}, domain.ErrRecipeNotFound
}

func (s *stubRecipeService) GetRecipes(_ context.Context, viewer domain.Viewer, query domain.RecipeListQuery, _, _ int) ([]domain.RecipeResponse, int64, error) {
	s.lastQuery = query
	s.lastViewer = viewer
	return []domain.RecipeResponse{}, 0, nil
}

type stubMembershipService struct {
	added map[domain.ListKind]bool
}

func (s *stubMembershipService) AddRecipe(_ context.Context, _ domain.Viewer, kind domain.ListKind, recipeID uuid.UUID) (domain.RecipeShortResponse, error) {
	if s.added[kind] {
		return domain.RecipeShortResponse{}, domain.ErrAlreadyInList(kind)
	}
	s.added[kind] = true
	return domain.RecipeShortResponse{ID: recipeID, Name: "soup"}, nil
}

func (s *stubMembershipService) RemoveRecipe(_ context.Context, _ domain.Viewer, kind domain.ListKind, _ uuid.UUID) error {
	if !s.added[kind] {
		return domain.ErrNotInList(kind)
	}
	delete(s.added, kind)
	return nil
}

type stubShoppingService struct{}

func (stubShoppingService) AggregateShoppingList(context.Context, domain.Viewer) ([]domain.ShoppingListItem, error) {
	return nil, nil
}

func (stubShoppingService) DownloadShoppingList(_ context.Context, viewer domain.Viewer) (string, []byte, error) {
	if viewer.IsAnonymous() {
		return "", nil, domain.ErrAnonymous
	}
	return "shopping_list.txt", []byte("flour (g) - 150\nsugar (g) - 50"), nil
}

var testUserID = uuid.New()

// withUser stands in for the auth middleware.
func withUser(c *fiber.Ctx) error {
	if c.Get("X-Test-User") != "" {
		c.Locals(middleware.LocalUserID, testUserID.String())
	}
	return c.Next()
}

func newRecipeApp() (*fiber.App, *stubRecipeService) {
	recipes := &stubRecipeService{}
	h := NewRecipeHandler(recipes, &stubMembershipService{added: map[domain.ListKind]bool{}}, stubShoppingService{}, utils.NewValidator())

	app := fiber.New()
	app.Use(withUser)
	app.Get("/recipes", h.GetRecipes)
	app.Post("/recipes", h.CreateRecipe)
	app.Get("/recipes/download_shopping_cart", h.DownloadShoppingCart)
	app.Get("/recipes/:id", h.GetRecipe)
	app.Patch("/recipes/:id", h.UpdateRecipe)
	app.Delete("/recipes/:id", h.DeleteRecipe)
	app.Post("/recipes/:id/favorite", h.AddFavorite)
	app.Delete("/recipes/:id/favorite", h.RemoveFavorite)
	return app, recipes
}

func do(t *testing.T, app *fiber.App, method, target, body string, authed bool) (int, []byte, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("X-Test-User", "1")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	headers := map[string]string{
		"Content-Type":        resp.Header.Get("Content-Type"),
		"Content-Disposition": resp.Header.Get("Content-Disposition"),
	}
	return resp.StatusCode, data, headers
}

func TestCreateRecipeHandler(t *testing.T) {
	app, _ := newRecipeApp()
	body := `{"name":"soup","text":"boil","cooking_time":10,"image":"x","tags":["` + uuid.NewString() + `"],
		"ingredients":[{"id":"` + uuid.NewString() + `","amount":5}]}`

	status, data, _ := do(t, app, "POST", "/recipes", body, true)
	assert.Equal(t, fiber.StatusCreated, status)
	var res struct {
		Status bool                  `json:"status"`
		Data   domain.RecipeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &res))
	assert.True(t, res.Status)
	assert.Equal(t, testUserID, res.Data.Author.ID)

	status, _, _ = do(t, app, "POST", "/recipes", body, false)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, data, _ = do(t, app, "POST", "/recipes", `{"text":"boil"}`, true)
	assert.Equal(t, fiber.StatusBadRequest, status)
	var failed presenters.Response
	require.NoError(t, json.Unmarshal(data, &failed))
	assert.Contains(t, failed.Fields, "name")
}

func TestRecipeErrorStatuses(t *testing.T) {
	app, _ := newRecipeApp()

	status, _, _ := do(t, app, "GET", "/recipes/not-a-uuid", "", false)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _, _ = do(t, app, "GET", "/recipes/"+uuid.NewString(), "", false)
	assert.Equal(t, fiber.StatusNotFound, status)

	body := `{"name":"soup","text":"boil","cooking_time":10,"tags":[],"ingredients":[]}`
	status, _, _ = do(t, app, "PATCH", "/recipes/"+uuid.NewString(), body, true)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _, _ = do(t, app, "DELETE", "/recipes/"+uuid.NewString(), "", true)
	assert.Equal(t, fiber.StatusNoContent, status)
}

func TestGetRecipesParsesFilters(t *testing.T) {
	app, recipes := newRecipeApp()
	author := uuid.New()

	status, _, _ := do(t, app, "GET", "/recipes?author="+author.String()+"&tags=lunch&tags=dinner&is_favorited=1", "", true)
	assert.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, recipes.lastQuery.AuthorID)
	assert.Equal(t, author, *recipes.lastQuery.AuthorID)
	assert.Equal(t, []string{"lunch", "dinner"}, recipes.lastQuery.TagSlugs)
	assert.True(t, recipes.lastQuery.IsFavorited)
	assert.False(t, recipes.lastQuery.IsInShoppingCart)
	assert.Equal(t, testUserID, recipes.lastViewer.ID)

	status, _, _ = do(t, app, "GET", "/recipes?author=bob", "", false)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestFavoriteHandlers(t *testing.T) {
	app, _ := newRecipeApp()
	target := "/recipes/" + uuid.NewString() + "/favorite"

	status, _, _ := do(t, app, "POST", target, "", true)
	assert.Equal(t, fiber.StatusCreated, status)

	status, data, _ := do(t, app, "POST", target, "", true)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(data), "already exists")

	status, _, _ = do(t, app, "DELETE", target, "", true)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _, _ = do(t, app, "DELETE", target, "", true)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDownloadShoppingCart(t *testing.T) {
	app, _ := newRecipeApp()

	status, data, headers := do(t, app, "GET", "/recipes/download_shopping_cart", "", true)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "text/plain; charset=utf-8", headers["Content-Type"])
	assert.Contains(t, headers["Content-Disposition"], `filename="shopping_list.txt"`)
	assert.Equal(t, "flour (g) - 150\nsugar (g) - 50", string(data))

	status, _, _ = do(t, app, "GET", "/recipes/download_shopping_cart", "", false)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
