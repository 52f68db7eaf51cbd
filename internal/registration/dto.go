package registration

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fitnesspro/fitnesspro-backend/internal/clients"
	"github.com/fitnesspro/fitnesspro-backend/internal/profiles"
	"github.com/fitnesspro/fitnesspro-backend/internal/staff"
	"github.com/fitnesspro/fitnesspro-backend/internal/users"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

// RegisterUserInput creates a bare login account with the generic user role.
type RegisterUserInput struct {
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=6"`
	Phone       *string    `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

// RegisterClientInput creates a login account plus the client record in one
// step. Plan, status and notes are only honored for admin-driven signups.
type RegisterClientInput struct {
	FirstName   string              `json:"first_name" validate:"required"`
	LastName    string              `json:"last_name" validate:"required"`
	Email       string              `json:"email" validate:"required,email"`
	Password    string              `json:"password" validate:"required,min=6"`
	Phone       *string             `json:"phone,omitempty"`
	DateOfBirth *time.Time          `json:"date_of_birth,omitempty"`
	Plan        *enums.ClientPlan   `json:"plan,omitempty"`
	Status      *enums.ClientStatus `json:"status,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
}

// RegisterStaffInput creates a login account plus the employee record. When
// Password is empty a temporary one is generated and returned once.
type RegisterStaffInput struct {
	FirstName  string           `json:"first_name" validate:"required"`
	LastName   string           `json:"last_name" validate:"required"`
	Email      string           `json:"email" validate:"required,email"`
	Password   string           `json:"password,omitempty" validate:"omitempty,min=6"`
	Phone      *string          `json:"phone,omitempty"`
	Position   string           `json:"position" validate:"required"`
	Department enums.Department `json:"department" validate:"required"`
	HireDate   *time.Time       `json:"hire_date,omitempty"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	ManagerID  *uuid.UUID       `json:"manager_id,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

// UserRegistrationDTO is everything created by a bare account signup.
type UserRegistrationDTO struct {
	User    *users.UserDTO       `json:"user"`
	Profile *profiles.ProfileDTO `json:"profile"`
}

// ClientRegistrationDTO is everything created by a client signup.
type ClientRegistrationDTO struct {
	User    *users.UserDTO       `json:"user"`
	Profile *profiles.ProfileDTO `json:"profile"`
	Client  *clients.ClientDTO   `json:"client"`
}

// StaffRegistrationDTO is everything created by an employee signup.
// TempPassword is set only when the caller did not supply one.
type StaffRegistrationDTO struct {
	User         *users.UserDTO       `json:"user"`
	Profile      *profiles.ProfileDTO `json:"profile"`
	Staff        *staff.StaffDTO      `json:"staff"`
	TempPassword *string              `json:"temp_password,omitempty"`
}
