package tag

import (
	"context"
	"sort"
	"testing"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTagRepository struct {
	tags []*entities.Tag
}

func (r *fakeTagRepository) CreateTag(_ context.Context, tag *entities.Tag) error {
	for _, t := range r.tags {
		if t.Slug == tag.Slug || t.Name == tag.Name {
			return domain.ErrTagAlreadyExists
		}
	}
	cp := *tag
	r.tags = append(r.tags, &cp)
	return nil
}

func (r *fakeTagRepository) GetTagByID(_ context.Context, id uuid.UUID) (*entities.Tag, error) {
	for _, t := range r.tags {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrTagNotFound
}

func (r *fakeTagRepository) GetTags(_ context.Context) ([]*entities.Tag, error) {
	out := append([]*entities.Tag(nil), r.tags...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTagRepository) GetTagsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var out []*entities.Tag
	for _, t := range r.tags {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func TestCreateTagGeneratesSlug(t *testing.T) {
	svc := NewTagService(&fakeTagRepository{})

	tag, err := svc.CreateTag(context.Background(), domain.TagCreateRequest{Name: "Sweet Dessert", Color: "#e26c2d"})
	require.NoError(t, err)
	assert.Equal(t, "sweet-dessert", tag.Slug)
	assert.Equal(t, "#E26C2D", tag.Color)

	tag, err = svc.CreateTag(context.Background(), domain.TagCreateRequest{Name: "Breakfast", Color: "#000000", Slug: "Morning Meal"})
	require.NoError(t, err)
	assert.Equal(t, "morning-meal", tag.Slug)
}

func TestCreateTagConflicts(t *testing.T) {
	svc := NewTagService(&fakeTagRepository{})
	ctx := context.Background()

	_, err := svc.CreateTag(ctx, domain.TagCreateRequest{Name: "Dinner", Color: "#111111"})
	require.NoError(t, err)

	_, err = svc.CreateTag(ctx, domain.TagCreateRequest{Name: "dinner!", Color: "#111111", Slug: "dinner"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.CreateTag(ctx, domain.TagCreateRequest{Name: "!!!", Color: "#111111"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetTagsOrderedByName(t *testing.T) {
	svc := NewTagService(&fakeTagRepository{})
	ctx := context.Background()
	for _, name := range []string{"Lunch", "Breakfast", "Dinner"} {
		_, err := svc.CreateTag(ctx, domain.TagCreateRequest{Name: name, Color: "#123456"})
		require.NoError(t, err)
	}

	tags, err := svc.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, []string{"Breakfast", "Dinner", "Lunch"}, []string{tags[0].Name, tags[1].Name, tags[2].Name})

	_, err = svc.GetTag(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
