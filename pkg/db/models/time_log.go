package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeLog records one day of attendance for an employee. ClockIn/ClockOut are
// stored as HH:MM; TotalHours is derived when the employee clocks out.
type TimeLog struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StaffID       uuid.UUID        `gorm:"column:staff_id;type:uuid;not null;uniqueIndex:idx_time_logs_staff_date"`
	Date          time.Time        `gorm:"column:date;type:date;not null;uniqueIndex:idx_time_logs_staff_date"`
	ClockIn       *string          `gorm:"column:clock_in;type:time"`
	ClockOut      *string          `gorm:"column:clock_out;type:time"`
	BreakDuration int              `gorm:"column:break_duration;not null;default:0"`
	TotalHours    *decimal.Decimal `gorm:"column:total_hours;type:numeric(5,2)"`
	Notes         *string          `gorm:"column:notes"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
