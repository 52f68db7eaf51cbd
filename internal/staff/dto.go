package staff

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

// StaffDTO is the transport shape for an employee, including the joined
// profile details admins see in the roster.
type StaffDTO struct {
	ID         uuid.UUID         `json:"id"`
	EmployeeID string            `json:"employee_id"`
	UserID     uuid.UUID         `json:"user_id"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Phone      *string           `json:"phone,omitempty"`
	Position   string            `json:"position"`
	Department enums.Department  `json:"department"`
	HireDate   time.Time         `json:"hire_date"`
	Salary     *decimal.Decimal  `json:"salary,omitempty"`
	Status     enums.StaffStatus `json:"status"`
	Notes      *string           `json:"notes,omitempty"`
	ManagerID  *uuid.UUID        `json:"manager_id,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// CreateStaffDTO holds the data required by the repo to persist a new employee.
type CreateStaffDTO struct {
	EmployeeID string
	UserID     uuid.UUID
	Position   string
	Department enums.Department
	HireDate   time.Time
	Salary     *decimal.Decimal
	Status     enums.StaffStatus
	Notes      *string
	ManagerID  *uuid.UUID
}

// UpdateStaffInput carries partial staff updates. Nil fields are left untouched.
type UpdateStaffInput struct {
	Position   *string            `json:"position,omitempty"`
	Department *enums.Department  `json:"department,omitempty"`
	HireDate   *time.Time         `json:"hire_date,omitempty"`
	Salary     *decimal.Decimal   `json:"salary,omitempty"`
	Status     *enums.StaffStatus `json:"status,omitempty"`
	Notes      *string            `json:"notes,omitempty"`
	ManagerID  *uuid.UUID         `json:"manager_id,omitempty"`
}

// ListPage is one page of staff plus the cursor for the next one.
type ListPage struct {
	Staff      []StaffDTO `json:"staff"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

// StaffWithProfile joins the staff row with the owning user's profile.
type StaffWithProfile struct {
	models.Staff
	FirstName string  `gorm:"column:first_name"`
	LastName  string  `gorm:"column:last_name"`
	Phone     *string `gorm:"column:phone"`
}

func FromJoined(row *StaffWithProfile) *StaffDTO {
	if row == nil {
		return nil
	}

	return &StaffDTO{
		ID:         row.ID,
		EmployeeID: row.EmployeeID,
		UserID:     row.UserID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Phone:      row.Phone,
		Position:   row.Position,
		Department: row.Department,
		HireDate:   row.HireDate,
		Salary:     row.Salary,
		Status:     row.Status,
		Notes:      row.Notes,
		ManagerID:  row.ManagerID,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func (c CreateStaffDTO) ToModel() *models.Staff {
	status := c.Status
	if status == "" {
		status = enums.StaffStatusActive
	}

	return &models.Staff{
		ID:         uuid.New(),
		EmployeeID: c.EmployeeID,
		UserID:     c.UserID,
		Position:   c.Position,
		Department: c.Department,
		HireDate:   c.HireDate,
		Salary:     c.Salary,
		Status:     status,
		Notes:      c.Notes,
		ManagerID:  c.ManagerID,
	}
}
