package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

// UserRole grants a user an application role. A user may hold several roles;
// the (user_id, role) pair is unique.
type UserRole struct {
	ID        uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID     `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_roles_user_role"`
	Role      enums.AppRole `gorm:"column:role;type:app_role;not null;uniqueIndex:idx_user_roles_user_role"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
}
