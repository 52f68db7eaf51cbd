package timelogs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the time logs controller.
type Service interface {
	ListForStaff(ctx context.Context, staffID uuid.UUID, from, to string) ([]TimeLogDTO, error)
	ClockIn(ctx context.Context, staffID uuid.UUID, input ClockInInput) (*TimeLogDTO, error)
	ClockOut(ctx context.Context, staffID uuid.UUID, input ClockOutInput) (*TimeLogDTO, error)
}

type timeLogRepository interface {
	Create(ctx context.Context, log *models.TimeLog) (*models.TimeLog, error)
	FindByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) (*models.TimeLog, error)
	ListForStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]models.TimeLog, error)
	Save(ctx context.Context, log *models.TimeLog) error
}

type service struct {
	logs timeLogRepository
}

// ServiceParams bundles the dependencies required to build a time logs service.
type ServiceParams struct {
	TimeLogRepo timeLogRepository
}

// NewService constructs a time logs service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TimeLogRepo == nil {
		return nil, fmt.Errorf("time log repository is required")
	}
	return &service{logs: params.TimeLogRepo}, nil
}

func (s *service) ListForStaff(ctx context.Context, staffID uuid.UUID, from, to string) ([]TimeLogDTO, error) {
	fromDate, err := parseDate(from)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "from must be YYYY-MM-DD")
	}
	toDate, err := parseDate(to)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must be YYYY-MM-DD")
	}
	if toDate.Before(fromDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not precede from")
	}

	rows, err := s.logs.ListForStaff(ctx, staffID, fromDate, toDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list time logs")
	}

	dtos := make([]TimeLogDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) ClockIn(ctx context.Context, staffID uuid.UUID, input ClockInInput) (*TimeLogDTO, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	if _, err := parseClock(input.ClockIn); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clock_in must be HH:MM")
	}

	if _, err := s.logs.FindByStaffAndDate(ctx, staffID, date); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "already clocked in for that date")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check time log")
	}

	clockIn := input.ClockIn
	log := &models.TimeLog{
		ID:      uuid.New(),
		StaffID: staffID,
		Date:    date,
		ClockIn: &clockIn,
		Notes:   input.Notes,
	}
	created, err := s.logs.Create(ctx, log)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create time log")
	}
	return FromModel(created), nil
}

func (s *service) ClockOut(ctx context.Context, staffID uuid.UUID, input ClockOutInput) (*TimeLogDTO, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	out, err := parseClock(input.ClockOut)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clock_out must be HH:MM")
	}
	if input.BreakDuration != nil && *input.BreakDuration < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "break_duration cannot be negative")
	}

	log, err := s.logs.FindByStaffAndDate(ctx, staffID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no open time log for that date")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup time log")
	}
	if log.ClockIn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "time log has no clock-in")
	}
	if log.ClockOut != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "already clocked out for that date")
	}

	in, err := parseClock(*log.ClockIn)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stored clock_in is malformed")
	}
	if !out.After(in) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clock_out must be after clock_in")
	}

	breakMinutes := log.BreakDuration
	if input.BreakDuration != nil {
		breakMinutes = *input.BreakDuration
	}

	total, err := computeTotalHours(in, out, breakMinutes)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "compute total hours")
	}

	clockOut := input.ClockOut
	log.ClockOut = &clockOut
	log.BreakDuration = breakMinutes
	log.TotalHours = &total
	if input.Notes != nil {
		log.Notes = input.Notes
	}

	if err := s.logs.Save(ctx, log); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save time log")
	}
	return FromModel(log), nil
}

// computeTotalHours derives worked hours from the clock window minus the break,
// rounded to two decimals.
func computeTotalHours(in, out time.Time, breakMinutes int) (decimal.Decimal, error) {
	worked := out.Sub(in) - time.Duration(breakMinutes)*time.Minute
	if worked < 0 {
		return decimal.Zero, fmt.Errorf("break exceeds the clocked window")
	}
	return decimal.NewFromFloat(worked.Hours()).Round(2), nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}

func parseClock(value string) (time.Time, error) {
	return time.Parse("15:04", value)
}
