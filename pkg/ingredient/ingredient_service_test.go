package ingredient

import (
	"context"
	"sort"
	"strings"
	"testing"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngredientRepository struct {
	ingredients []*entities.Ingredient
}

func (r *fakeIngredientRepository) CreateIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	for _, i := range r.ingredients {
		if i.Name == ingredient.Name && i.MeasurementUnit == ingredient.MeasurementUnit {
			return domain.ErrIngredientAlreadyExists
		}
	}
	cp := *ingredient
	r.ingredients = append(r.ingredients, &cp)
	return nil
}

func (r *fakeIngredientRepository) GetIngredientByID(_ context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	for _, i := range r.ingredients {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, domain.ErrIngredientNotFound
}

func (r *fakeIngredientRepository) GetIngredients(_ context.Context, namePrefix string) ([]*entities.Ingredient, error) {
	var out []*entities.Ingredient
	for _, i := range r.ingredients {
		if strings.HasPrefix(i.Name, strings.ToLower(namePrefix)) {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (r *fakeIngredientRepository) GetIngredientsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var out []*entities.Ingredient
	for _, id := range ids {
		if i, err := r.GetIngredientByID(context.Background(), id); err == nil {
			out = append(out, i)
		}
	}
	return out, nil
}

func TestCreateIngredientNormalizesName(t *testing.T) {
	svc := NewIngredientService(&fakeIngredientRepository{})

	res, err := svc.CreateIngredient(context.Background(), domain.IngredientCreateRequest{Name: "  Flour ", MeasurementUnit: "g"})
	require.NoError(t, err)
	assert.Equal(t, "flour", res.Name)
	assert.Equal(t, "g", res.MeasurementUnit)

	_, err = svc.CreateIngredient(context.Background(), domain.IngredientCreateRequest{Name: "FLOUR", MeasurementUnit: "g"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// the same name with another unit is a different ingredient
	_, err = svc.CreateIngredient(context.Background(), domain.IngredientCreateRequest{Name: "flour", MeasurementUnit: "cup"})
	assert.NoError(t, err)
}

func TestSearchIngredientsByPrefix(t *testing.T) {
	svc := NewIngredientService(&fakeIngredientRepository{})
	ctx := context.Background()
	for _, name := range []string{"sugar", "salt", "flour"} {
		_, err := svc.CreateIngredient(ctx, domain.IngredientCreateRequest{Name: name, MeasurementUnit: "g"})
		require.NoError(t, err)
	}

	res, err := svc.SearchIngredients(ctx, " s")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "salt", res[0].Name)
	assert.Equal(t, "sugar", res[1].Name)

	all, err := svc.SearchIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetIngredientNotFound(t *testing.T) {
	svc := NewIngredientService(&fakeIngredientRepository{})

	_, err := svc.GetIngredient(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
