package schedules

import (
	"context"
	"fmt"
	"time"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db"
	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the schedules controller.
type Service interface {
	Week(ctx context.Context, staffID uuid.UUID) (*WeekDTO, error)
	Replace(ctx context.Context, staffID uuid.UUID, input ReplaceInput) (*WeekDTO, error)
}

type service struct {
	db *db.Client
}

// ServiceParams bundles the dependencies required to build a schedules service.
type ServiceParams struct {
	DB *db.Client
}

// NewService constructs a schedules service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB}, nil
}

// Week returns all seven weekdays; days without a stored row come back as
// non-working with the default 09:00-17:00 window.
func (s *service) Week(ctx context.Context, staffID uuid.UUID) (*WeekDTO, error) {
	repo := NewRepository(s.db.DB())
	rows, err := repo.ListForStaff(ctx, staffID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list schedule")
	}

	stored := map[int]DayDTO{}
	for i := range rows {
		stored[rows[i].DayOfWeek] = dayFromModel(&rows[i])
	}

	week := &WeekDTO{StaffID: staffID, Days: make([]DayDTO, 0, daysPerWeek)}
	for day := 0; day < daysPerWeek; day++ {
		if dto, ok := stored[day]; ok {
			week.Days = append(week.Days, dto)
			continue
		}
		week.Days = append(week.Days, defaultDay(day))
	}
	return week, nil
}

// Replace swaps the employee's entire week in one transaction: every stored
// row is deleted, then the provided days are inserted.
func (s *service) Replace(ctx context.Context, staffID uuid.UUID, input ReplaceInput) (*WeekDTO, error) {
	if err := validateDays(input.Days); err != nil {
		return nil, err
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if err := repo.DeleteForStaff(ctx, staffID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear schedule")
		}

		rows := make([]models.WorkSchedule, 0, len(input.Days))
		for _, day := range input.Days {
			rows = append(rows, models.WorkSchedule{
				ID:           uuid.New(),
				StaffID:      staffID,
				DayOfWeek:    day.DayOfWeek,
				StartTime:    day.StartTime,
				EndTime:      day.EndTime,
				IsWorkingDay: day.IsWorkingDay,
			})
		}
		if err := repo.CreateBatch(ctx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert schedule")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Week(ctx, staffID)
}

func validateDays(days []DayDTO) error {
	if len(days) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one day is required")
	}
	if len(days) > daysPerWeek {
		return pkgerrors.New(pkgerrors.CodeValidation, "a week has at most seven days")
	}

	seen := map[int]bool{}
	for _, day := range days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return pkgerrors.New(pkgerrors.CodeValidation, "day_of_week must be between 0 and 6")
		}
		if seen[day.DayOfWeek] {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate day_of_week").
				WithDetails(map[string]any{"day_of_week": day.DayOfWeek})
		}
		seen[day.DayOfWeek] = true

		start, err := parseClock(day.StartTime)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "start_time must be HH:MM")
		}
		end, err := parseClock(day.EndTime)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "end_time must be HH:MM")
		}
		if day.IsWorkingDay && !end.After(start) {
			return pkgerrors.New(pkgerrors.CodeValidation, "end_time must be after start_time").
				WithDetails(map[string]any{"day_of_week": day.DayOfWeek})
		}
	}
	return nil
}

func parseClock(value string) (time.Time, error) {
	return time.Parse("15:04", value)
}
