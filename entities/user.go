package entities

import "github.com/google/uuid"

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	FirstName string    `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(150);not null" json:"last_name"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`

	Timestamp
}
