package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

// Client is a training client record. UserID is set only when the client has
// a login account provisioned.
type Client struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName string             `gorm:"column:first_name;not null"`
	LastName  string             `gorm:"column:last_name;not null"`
	Email     string             `gorm:"column:email;not null;uniqueIndex"`
	Phone     *string            `gorm:"column:phone"`
	Plan      enums.ClientPlan   `gorm:"column:plan;not null;default:Basic"`
	Status    enums.ClientStatus `gorm:"column:status;not null;default:Attivo"`
	Notes     *string            `gorm:"column:notes"`
	UserID    *uuid.UUID         `gorm:"column:user_id;type:uuid;uniqueIndex"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
