package exercises

import (
	"context"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListFilter narrows and pages the exercise listing. ViewerID scopes the
// result to public entries plus the viewer's own private ones.
type ListFilter struct {
	ViewerID    uuid.UUID
	Search      string
	MuscleGroup string
	Difficulty  string
	Cursor      *pagination.Cursor
	Limit       int
}

// Repository exposes exercise persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an exercises repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new exercise and returns the persisted model.
func (r *Repository) Create(ctx context.Context, exercise *models.Exercise) (*models.Exercise, error) {
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return nil, err
	}
	return exercise, nil
}

// FindByID loads an exercise by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := r.db.WithContext(ctx).First(&exercise, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exercise, nil
}

// List returns exercises visible to the viewer, newest-first on
// (created_at, id). It fetches limit+1 rows so callers can detect the
// next page.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Exercise, error) {
	query := r.db.WithContext(ctx).Model(&models.Exercise{}).
		Where("is_public = ? OR created_by = ?", true, filter.ViewerID)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", pattern)
	}
	if filter.MuscleGroup != "" {
		query = query.Where("? = ANY(muscle_groups)", filter.MuscleGroup)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty_level = ?", filter.Difficulty)
	}
	if filter.Cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			filter.Cursor.CreatedAt, filter.Cursor.ID,
		)
	}

	var rows []models.Exercise
	err := query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(filter.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the non-nil fields of input to the exercise row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input UpdateExerciseInput) error {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = input.Description
	}
	if input.DifficultyLevel != nil {
		updates["difficulty_level"] = input.DifficultyLevel
	}
	if input.Equipment != nil {
		updates["equipment"] = input.Equipment
	}
	if input.Instructions != nil {
		updates["instructions"] = input.Instructions
	}
	if input.MuscleGroups != nil {
		updates["muscle_groups"] = pq.StringArray(input.MuscleGroups)
	}
	if input.Sets != nil {
		updates["sets"] = input.Sets
	}
	if input.Reps != nil {
		updates["reps"] = input.Reps
	}
	if input.RestTime != nil {
		updates["rest_time"] = input.RestTime
	}
	if input.IsPublic != nil {
		updates["is_public"] = *input.IsPublic
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.Exercise{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateVideoURL sets the hosted video location for the exercise.
func (r *Repository) UpdateVideoURL(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.Exercise{}).
		Where("id = ?", id).
		Update("video_url", url).Error
}

// Delete removes the exercise row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Exercise{}, "id = ?", id).Error
}
