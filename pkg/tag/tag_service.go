package tag

import (
	"context"
	"strings"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type (
	TagService interface {
		CreateTag(ctx context.Context, req domain.TagCreateRequest) (domain.TagResponse, error)
		GetTag(ctx context.Context, id uuid.UUID) (domain.TagResponse, error)
		GetTags(ctx context.Context) ([]domain.TagResponse, error)
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func ToTagResponse(tag *entities.Tag) domain.TagResponse {
	return domain.TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func (s *tagService) CreateTag(ctx context.Context, req domain.TagCreateRequest) (domain.TagResponse, error) {
	source := req.Slug
	if source == "" {
		source = req.Name
	}
	tagSlug := slug.Make(source)
	if tagSlug == "" {
		return domain.TagResponse{}, domain.ErrTagSlugEmpty
	}

	tag := entities.Tag{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(req.Name),
		Color: strings.ToUpper(req.Color),
		Slug:  tagSlug,
	}
	if err := s.tagRepository.CreateTag(ctx, &tag); err != nil {
		return domain.TagResponse{}, err
	}
	return ToTagResponse(&tag), nil
}

func (s *tagService) GetTag(ctx context.Context, id uuid.UUID) (domain.TagResponse, error) {
	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		return domain.TagResponse{}, err
	}
	return ToTagResponse(tag), nil
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.TagResponse, 0, len(tags))
	for _, t := range tags {
		res = append(res, ToTagResponse(t))
	}
	return res, nil
}
