package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the personal details attached to a user account.
type Profile struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	FirstName   string     `gorm:"column:first_name;not null"`
	LastName    string     `gorm:"column:last_name;not null"`
	Phone       *string    `gorm:"column:phone"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth;type:date"`
	AvatarURL   *string    `gorm:"column:avatar_url"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
