package schedules

import (
	"context"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes work-schedule persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a schedules repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForStaff returns the stored schedule rows for the employee, ordered by weekday.
func (r *Repository) ListForStaff(ctx context.Context, staffID uuid.UUID) ([]models.WorkSchedule, error) {
	var rows []models.WorkSchedule
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("day_of_week asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteForStaff clears every schedule row for the employee.
func (r *Repository) DeleteForStaff(ctx context.Context, staffID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Delete(&models.WorkSchedule{}).Error
}

// CreateBatch inserts the provided schedule rows.
func (r *Repository) CreateBatch(ctx context.Context, rows []models.WorkSchedule) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
