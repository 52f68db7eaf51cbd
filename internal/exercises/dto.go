package exercises

import (
	"time"

	"github.com/google/uuid"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
)

// ExerciseDTO is the transport shape for one library entry.
type ExerciseDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DifficultyLevel *string   `json:"difficulty_level,omitempty"`
	Equipment       *string   `json:"equipment,omitempty"`
	Instructions    *string   `json:"instructions,omitempty"`
	MuscleGroups    []string  `json:"muscle_groups"`
	Sets            *int      `json:"sets,omitempty"`
	Reps            *int      `json:"reps,omitempty"`
	RestTime        *int      `json:"rest_time,omitempty"`
	VideoURL        *string   `json:"video_url,omitempty"`
	IsPublic        bool      `json:"is_public"`
	CreatedBy       uuid.UUID `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ListPage is one page of exercises plus the cursor for the next one.
type ListPage struct {
	Exercises  []ExerciseDTO `json:"exercises"`
	NextCursor *string       `json:"next_cursor,omitempty"`
}

// CreateExerciseInput is the payload for adding a library entry.
type CreateExerciseInput struct {
	Name            string   `json:"name" validate:"required"`
	Description     *string  `json:"description,omitempty"`
	DifficultyLevel *string  `json:"difficulty_level,omitempty"`
	Equipment       *string  `json:"equipment,omitempty"`
	Instructions    *string  `json:"instructions,omitempty"`
	MuscleGroups    []string `json:"muscle_groups,omitempty"`
	Sets            *int     `json:"sets,omitempty" validate:"omitempty,min=1"`
	Reps            *int     `json:"reps,omitempty" validate:"omitempty,min=1"`
	RestTime        *int     `json:"rest_time,omitempty" validate:"omitempty,min=0"`
	IsPublic        bool     `json:"is_public"`
}

// UpdateExerciseInput carries partial updates; nil fields are untouched.
type UpdateExerciseInput struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DifficultyLevel *string  `json:"difficulty_level,omitempty"`
	Equipment       *string  `json:"equipment,omitempty"`
	Instructions    *string  `json:"instructions,omitempty"`
	MuscleGroups    []string `json:"muscle_groups,omitempty"`
	Sets            *int     `json:"sets,omitempty"`
	Reps            *int     `json:"reps,omitempty"`
	RestTime        *int     `json:"rest_time,omitempty"`
	IsPublic        *bool    `json:"is_public,omitempty"`
}

func FromModel(m *models.Exercise) *ExerciseDTO {
	if m == nil {
		return nil
	}

	groups := make([]string, len(m.MuscleGroups))
	copy(groups, m.MuscleGroups)

	return &ExerciseDTO{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		DifficultyLevel: m.DifficultyLevel,
		Equipment:       m.Equipment,
		Instructions:    m.Instructions,
		MuscleGroups:    groups,
		Sets:            m.Sets,
		Reps:            m.Reps,
		RestTime:        m.RestTime,
		VideoURL:        m.VideoURL,
		IsPublic:        m.IsPublic,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
