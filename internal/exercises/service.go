package exercises

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/fitnesspro/fitnesspro-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
}

// Actor identifies who is calling the exercise library. Admins can edit
// any entry; everyone else only their own.
type Actor struct {
	UserID uuid.UUID
	Role   enums.AppRole
}

// ListQuery carries the exercise listing inputs from the controller.
type ListQuery struct {
	Search      string
	MuscleGroup string
	Difficulty  string
	Page        pagination.Params
}

// Service defines the behavior needed by the exercises controller.
type Service interface {
	List(ctx context.Context, actor Actor, query ListQuery) (*ListPage, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*ExerciseDTO, error)
	Create(ctx context.Context, actor Actor, input CreateExerciseInput) (*ExerciseDTO, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateExerciseInput) (*ExerciseDTO, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	UploadVideo(ctx context.Context, actor Actor, id uuid.UUID, filename, contentType string, body io.Reader) (string, error)
}

type exerciseRepository interface {
	Create(ctx context.Context, exercise *models.Exercise) (*models.Exercise, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Exercise, error)
	List(ctx context.Context, filter ListFilter) ([]models.Exercise, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateExerciseInput) error
	UpdateVideoURL(ctx context.Context, id uuid.UUID, url string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type videoBucket interface {
	Upload(ctx context.Context, objectName, contentType string, body io.Reader) error
	PublicURL(objectName string) string
}

type service struct {
	exercises exerciseRepository
	videos    videoBucket
}

// ServiceParams bundles the dependencies required to build an exercises service.
type ServiceParams struct {
	ExerciseRepo exerciseRepository
	VideoBucket  videoBucket
}

// NewService constructs an exercises service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ExerciseRepo == nil {
		return nil, fmt.Errorf("exercise repository is required")
	}
	if params.VideoBucket == nil {
		return nil, fmt.Errorf("video bucket is required")
	}
	return &service{
		exercises: params.ExerciseRepo,
		videos:    params.VideoBucket,
	}, nil
}

func (s *service) List(ctx context.Context, actor Actor, query ListQuery) (*ListPage, error) {
	cursor, err := pagination.ParseCursor(query.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(query.Page.Limit)
	rows, err := s.exercises.List(ctx, ListFilter{
		ViewerID:    actor.UserID,
		Search:      strings.TrimSpace(query.Search),
		MuscleGroup: strings.TrimSpace(query.MuscleGroup),
		Difficulty:  strings.TrimSpace(query.Difficulty),
		Cursor:      cursor,
		Limit:       limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list exercises")
	}

	page := &ListPage{Exercises: make([]ExerciseDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		page.Exercises = append(page.Exercises, *FromModel(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	return page, nil
}

func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*ExerciseDTO, error) {
	exercise, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, exercise) {
		// Private entries read as absent to everyone but their creator.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "exercise not found")
	}
	return FromModel(exercise), nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateExerciseInput) (*ExerciseDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := validateIntervals(input.Sets, input.Reps, input.RestTime); err != nil {
		return nil, err
	}

	exercise := &models.Exercise{
		ID:              uuid.New(),
		Name:            name,
		Description:     input.Description,
		DifficultyLevel: input.DifficultyLevel,
		Equipment:       input.Equipment,
		Instructions:    input.Instructions,
		MuscleGroups:    pq.StringArray(normalizeGroups(input.MuscleGroups)),
		Sets:            input.Sets,
		Reps:            input.Reps,
		RestTime:        input.RestTime,
		IsPublic:        input.IsPublic,
		CreatedBy:       actor.UserID,
	}
	created, err := s.exercises.Create(ctx, exercise)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create exercise")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateExerciseInput) (*ExerciseDTO, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if err := validateIntervals(input.Sets, input.Reps, input.RestTime); err != nil {
		return nil, err
	}

	exercise, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(actor, exercise) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the creator can modify this exercise")
	}
	if input.MuscleGroups != nil {
		input.MuscleGroups = normalizeGroups(input.MuscleGroups)
	}

	if err := s.exercises.Update(ctx, id, input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update exercise")
	}
	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	exercise, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !s.canEdit(actor, exercise) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the creator can delete this exercise")
	}
	if err := s.exercises.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete exercise")
	}
	return nil
}

// UploadVideo stores the clip under {exerciseID}/video{ext} and persists the
// resulting public URL on the exercise.
func (s *service) UploadVideo(ctx context.Context, actor Actor, id uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedVideoExtensions[ext] {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported video file type").
			WithDetails(map[string]any{"extension": ext})
	}

	exercise, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	if !s.canEdit(actor, exercise) {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "only the creator can upload a video")
	}

	objectName := fmt.Sprintf("%s/video%s", id, ext)
	if err := s.videos.Upload(ctx, objectName, contentType, body); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload exercise video")
	}

	url := s.videos.PublicURL(objectName)
	if err := s.exercises.UpdateVideoURL(ctx, id, url); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist video url")
	}
	return url, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	exercise, err := s.exercises.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "exercise not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup exercise")
	}
	return exercise, nil
}

func (s *service) canView(actor Actor, exercise *models.Exercise) bool {
	return exercise.IsPublic || s.canEdit(actor, exercise)
}

func (s *service) canEdit(actor Actor, exercise *models.Exercise) bool {
	return actor.Role == enums.AppRoleAdmin || exercise.CreatedBy == actor.UserID
}

func validateIntervals(sets, reps, restTime *int) error {
	if sets != nil && *sets < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "sets must be at least 1")
	}
	if reps != nil && *reps < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reps must be at least 1")
	}
	if restTime != nil && *restTime < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rest_time cannot be negative")
	}
	return nil
}

func normalizeGroups(groups []string) []string {
	out := make([]string, 0, len(groups))
	seen := map[string]bool{}
	for _, group := range groups {
		group = strings.ToLower(strings.TrimSpace(group))
		if group == "" || seen[group] {
			continue
		}
		seen[group] = true
		out = append(out, group)
	}
	return out
}
