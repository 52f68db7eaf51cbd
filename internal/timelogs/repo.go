package timelogs

import (
	"context"
	"time"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes time-log persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a time logs repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new time log and returns the persisted model.
func (r *Repository) Create(ctx context.Context, log *models.TimeLog) (*models.TimeLog, error) {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}

// FindByStaffAndDate loads the entry for one employee on one day.
func (r *Repository) FindByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) (*models.TimeLog, error) {
	var log models.TimeLog
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND date = ?", staffID, date).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// ListForStaff returns the employee's entries between from and to, newest first.
func (r *Repository) ListForStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]models.TimeLog, error) {
	var logs []models.TimeLog
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND date >= ? AND date <= ?", staffID, from, to).
		Order("date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// Save persists the full entry.
func (r *Repository) Save(ctx context.Context, log *models.TimeLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}
