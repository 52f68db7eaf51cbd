package roles

import (
	"context"
	"errors"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes role-grant persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a roles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Grant assigns the role to the user. Granting an already-held role is a no-op.
func (r *Repository) Grant(ctx context.Context, userID uuid.UUID, role enums.AppRole) error {
	var existing models.UserRole
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	grant := models.UserRole{ID: uuid.New(), UserID: userID, Role: role}
	return r.db.WithContext(ctx).Create(&grant).Error
}

// HasRole reports whether the user holds the given role.
func (r *Repository) HasRole(ctx context.Context, userID uuid.UUID, role enums.AppRole) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForUser returns every role granted to the user.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]enums.AppRole, error) {
	var grants []models.UserRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("role asc").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}

	roles := make([]enums.AppRole, 0, len(grants))
	for _, g := range grants {
		roles = append(roles, g.Role)
	}
	return roles, nil
}

// PrimaryRole resolves the role a token should carry. Admin wins over client,
// client over user; users with no grant default to user.
func (r *Repository) PrimaryRole(ctx context.Context, userID uuid.UUID) (enums.AppRole, error) {
	granted, err := r.ListForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return Primary(granted), nil
}

// Primary picks the highest-precedence role from the provided grants.
func Primary(granted []enums.AppRole) enums.AppRole {
	precedence := []enums.AppRole{
		enums.AppRoleAdmin,
		enums.AppRoleClient,
		enums.AppRoleUser,
	}
	for _, candidate := range precedence {
		for _, role := range granted {
			if role == candidate {
				return candidate
			}
		}
	}
	return enums.AppRoleUser
}

// Revoke removes the role grant if present.
func (r *Repository) Revoke(ctx context.Context, userID uuid.UUID, role enums.AppRole) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&models.UserRole{}).Error
}
