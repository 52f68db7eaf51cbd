package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Exercise is a library entry trainers assign to clients. Public exercises are
// visible to every authenticated user; private ones only to their creator.
type Exercise struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string         `gorm:"column:name;not null"`
	Description     *string        `gorm:"column:description"`
	DifficultyLevel *string        `gorm:"column:difficulty_level"`
	Equipment       *string        `gorm:"column:equipment"`
	Instructions    *string        `gorm:"column:instructions"`
	MuscleGroups    pq.StringArray `gorm:"column:muscle_groups;type:text[];not null;default:ARRAY[]::text[]"`
	Sets            *int           `gorm:"column:sets"`
	Reps            *int           `gorm:"column:reps"`
	RestTime        *int           `gorm:"column:rest_time"`
	VideoURL        *string        `gorm:"column:video_url"`
	IsPublic        bool           `gorm:"column:is_public;not null;default:false"`
	CreatedBy       uuid.UUID      `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
