package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkSchedule is one weekday entry of an employee's recurring schedule.
// DayOfWeek runs 0 (Sunday) through 6. Times are stored as HH:MM.
type WorkSchedule struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StaffID      uuid.UUID `gorm:"column:staff_id;type:uuid;not null;uniqueIndex:idx_work_schedules_staff_day"`
	DayOfWeek    int       `gorm:"column:day_of_week;not null;uniqueIndex:idx_work_schedules_staff_day"`
	StartTime    string    `gorm:"column:start_time;type:time;not null"`
	EndTime      string    `gorm:"column:end_time;type:time;not null"`
	IsWorkingDay bool      `gorm:"column:is_working_day;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
