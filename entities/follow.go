package entities

import (
	"github.com/google/uuid"
	"time"
)

// Follow is a subscription of UserID to the recipes of AuthorID.
type Follow struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_user_author;check:chk_follow_not_self,user_id <> author_id" json:"user_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_user_author;index" json:"author_id"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone" json:"created_at"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
