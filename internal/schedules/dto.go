package schedules

import (
	"github.com/google/uuid"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
)

const (
	defaultStartTime = "09:00"
	defaultEndTime   = "17:00"
	daysPerWeek      = 7
)

// DayDTO is one weekday of an employee's recurring schedule.
type DayDTO struct {
	DayOfWeek    int    `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsWorkingDay bool   `json:"is_working_day"`
}

// WeekDTO is the full seven-day schedule for an employee, Sunday first.
type WeekDTO struct {
	StaffID uuid.UUID `json:"staff_id"`
	Days    []DayDTO  `json:"days"`
}

// ReplaceInput is the payload replacing an employee's entire week.
type ReplaceInput struct {
	Days []DayDTO `json:"days" validate:"required,min=1,max=7,dive"`
}

func dayFromModel(m *models.WorkSchedule) DayDTO {
	return DayDTO{
		DayOfWeek:    m.DayOfWeek,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		IsWorkingDay: m.IsWorkingDay,
	}
}

func defaultDay(dayOfWeek int) DayDTO {
	return DayDTO{
		DayOfWeek:    dayOfWeek,
		StartTime:    defaultStartTime,
		EndTime:      defaultEndTime,
		IsWorkingDay: false,
	}
}
