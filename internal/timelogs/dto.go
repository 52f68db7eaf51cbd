package timelogs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
)

// TimeLogDTO is the transport shape for one day of attendance.
type TimeLogDTO struct {
	ID            uuid.UUID        `json:"id"`
	StaffID       uuid.UUID        `json:"staff_id"`
	Date          string           `json:"date"`
	ClockIn       *string          `json:"clock_in,omitempty"`
	ClockOut      *string          `json:"clock_out,omitempty"`
	BreakDuration int              `json:"break_duration"`
	TotalHours    *decimal.Decimal `json:"total_hours,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ClockInInput opens an attendance entry for a day.
type ClockInInput struct {
	Date    string  `json:"date" validate:"required"`
	ClockIn string  `json:"clock_in" validate:"required"`
	Notes   *string `json:"notes,omitempty"`
}

// ClockOutInput closes an open attendance entry.
type ClockOutInput struct {
	Date          string  `json:"date" validate:"required"`
	ClockOut      string  `json:"clock_out" validate:"required"`
	BreakDuration *int    `json:"break_duration,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

func FromModel(m *models.TimeLog) *TimeLogDTO {
	if m == nil {
		return nil
	}

	return &TimeLogDTO{
		ID:            m.ID,
		StaffID:       m.StaffID,
		Date:          m.Date.Format(time.DateOnly),
		ClockIn:       m.ClockIn,
		ClockOut:      m.ClockOut,
		BreakDuration: m.BreakDuration,
		TotalHours:    m.TotalHours,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
