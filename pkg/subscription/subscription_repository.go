package subscription

import (
	"context"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	SubscriptionRepository interface {
		Subscribe(ctx context.Context, userID, authorID uuid.UUID) error
		Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error
		IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
		FollowedAmong(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) ([]uuid.UUID, error)
		GetSubscriptions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.User, int64, error)
		GetFollowerEmails(ctx context.Context, authorID uuid.UUID) ([]string, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Subscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("User", "Author").
		Create(&entities.Follow{ID: uuid.New(), UserID: userID, AuthorID: authorID, CreatedAt: time.Now()})
	if res.Error != nil {
		return utils.TranslateDBError(res.Error, domain.ErrUserNotFound, domain.ErrAlreadySubscribed)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadySubscribed
	}
	return nil
}

func (r *subscriptionRepository) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&entities.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSubscriptionMissing
	}
	return nil
}

func (r *subscriptionRepository) IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepository) FollowedAmong(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// GetSubscriptions pages through the authors userID follows, ordered by username.
func (r *subscriptionRepository) GetSubscriptions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	var count int64
	offset := (page - 1) * limit

	followed := func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN follows ON follows.author_id = users.id").
			Where("follows.user_id = ?", userID)
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Scopes(followed).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(followed).
		Order("users.username asc").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, count, nil
}

func (r *subscriptionRepository) GetFollowerEmails(ctx context.Context, authorID uuid.UUID) ([]string, error) {
	var emails []string
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN follows ON follows.user_id = users.id").
		Where("follows.author_id = ?", authorID).
		Pluck("users.email", &emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}
