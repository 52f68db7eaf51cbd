package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

// Staff is an employee record linked to a user account.
type Staff struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID string            `gorm:"column:employee_id;not null;uniqueIndex"`
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Position   string            `gorm:"column:position;not null"`
	Department enums.Department  `gorm:"column:department;not null"`
	HireDate   time.Time         `gorm:"column:hire_date;type:date;not null"`
	Salary     *decimal.Decimal  `gorm:"column:salary;type:numeric(10,2)"`
	Status     enums.StaffStatus `gorm:"column:status;not null;default:active"`
	Notes      *string           `gorm:"column:notes"`
	ManagerID  *uuid.UUID        `gorm:"column:manager_id;type:uuid"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the pluralized default; the table is named staff.
func (Staff) TableName() string {
	return "staff"
}
