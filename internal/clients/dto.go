package clients

import (
	"time"

	"github.com/google/uuid"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

// ClientDTO is the transport shape for a training client.
type ClientDTO struct {
	ID        uuid.UUID          `json:"id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     string             `json:"email"`
	Phone     *string            `json:"phone,omitempty"`
	Plan      enums.ClientPlan   `json:"plan"`
	Status    enums.ClientStatus `json:"status"`
	Notes     *string            `json:"notes,omitempty"`
	UserID    *uuid.UUID         `json:"user_id,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CreateClientDTO holds the data required by the repo to persist a new client.
type CreateClientDTO struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Plan      enums.ClientPlan
	Status    enums.ClientStatus
	Notes     *string
	UserID    *uuid.UUID
}

// UpdateClientInput carries partial client updates. Nil fields are left untouched.
type UpdateClientInput struct {
	FirstName *string             `json:"first_name,omitempty"`
	LastName  *string             `json:"last_name,omitempty"`
	Email     *string             `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string             `json:"phone,omitempty"`
	Plan      *enums.ClientPlan   `json:"plan,omitempty"`
	Status    *enums.ClientStatus `json:"status,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
}

// ListPage is one page of clients plus the cursor for the next one.
type ListPage struct {
	Clients    []ClientDTO `json:"clients"`
	NextCursor *string     `json:"next_cursor,omitempty"`
}

func FromModel(c *models.Client) *ClientDTO {
	if c == nil {
		return nil
	}

	return &ClientDTO{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Plan:      c.Plan,
		Status:    c.Status,
		Notes:     c.Notes,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (c CreateClientDTO) ToModel() *models.Client {
	plan := c.Plan
	if plan == "" {
		plan = enums.ClientPlanBasic
	}
	status := c.Status
	if status == "" {
		status = enums.ClientStatusActive
	}

	return &models.Client{
		ID:        uuid.New(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Plan:      plan,
		Status:    status,
		Notes:     c.Notes,
		UserID:    c.UserID,
	}
}
