package tag

import (
	"context"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TagRepository interface {
		CreateTag(ctx context.Context, tag *entities.Tag) error
		GetTagByID(ctx context.Context, id uuid.UUID) (*entities.Tag, error)
		GetTags(ctx context.Context) ([]*entities.Tag, error)
		GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error)
	}

	tagRepository struct {
		db *gorm.DB
	}
)

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	err := r.db.WithContext(ctx).Create(tag).Error
	return utils.TranslateDBError(err, nil, domain.ErrTagAlreadyExists)
}

func (r *tagRepository) GetTagByID(ctx context.Context, id uuid.UUID) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, utils.TranslateDBError(err, domain.ErrTagNotFound, nil)
	}
	return &tag, nil
}

func (r *tagRepository) GetTags(ctx context.Context) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
