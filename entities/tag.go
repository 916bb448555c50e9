package entities

import "github.com/google/uuid"

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name  string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Color string    `gorm:"type:varchar(7);not null" json:"color"`
	Slug  string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
}
