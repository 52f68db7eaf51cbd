package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/fitnesspro/fitnesspro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListQuery carries the client listing inputs from the controller.
type ListQuery struct {
	Search string
	Status *enums.ClientStatus
	Page   pagination.Params
}

// CreateRecordInput is the payload for adding a client without a login account.
type CreateRecordInput struct {
	FirstName string              `json:"first_name" validate:"required"`
	LastName  string              `json:"last_name" validate:"required"`
	Email     string              `json:"email" validate:"required,email"`
	Phone     *string             `json:"phone,omitempty"`
	Plan      *enums.ClientPlan   `json:"plan,omitempty"`
	Status    *enums.ClientStatus `json:"status,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
}

// Service defines the behavior needed by the clients controller.
type Service interface {
	List(ctx context.Context, query ListQuery) (*ListPage, error)
	Get(ctx context.Context, id uuid.UUID) (*ClientDTO, error)
	CreateRecord(ctx context.Context, input CreateRecordInput) (*ClientDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*ClientDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientRepository interface {
	Create(ctx context.Context, dto CreateClientDTO) (*models.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	List(ctx context.Context, filter ListFilter) ([]models.Client, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	clients clientRepository
}

// ServiceParams bundles the dependencies required to build a clients service.
type ServiceParams struct {
	ClientRepo clientRepository
}

// NewService constructs a clients service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ClientRepo == nil {
		return nil, fmt.Errorf("client repository is required")
	}
	return &service{clients: params.ClientRepo}, nil
}

func (s *service) List(ctx context.Context, query ListQuery) (*ListPage, error) {
	cursor, err := pagination.ParseCursor(query.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if query.Status != nil && !query.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid client status")
	}

	limit := pagination.NormalizeLimit(query.Page.Limit)
	rows, err := s.clients.List(ctx, ListFilter{
		Search: strings.TrimSpace(query.Search),
		Status: query.Status,
		Cursor: cursor,
		Limit:  limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list clients")
	}

	page := &ListPage{Clients: make([]ClientDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		page.Clients = append(page.Clients, *FromModel(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	return page, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup client")
	}
	return FromModel(client), nil
}

func (s *service) CreateRecord(ctx context.Context, input CreateRecordInput) (*ClientDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if input.Plan != nil && !input.Plan.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid client plan")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid client status")
	}

	if _, err := s.clients.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "client email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check client email")
	}

	dto := CreateClientDTO{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Phone:     input.Phone,
		Notes:     input.Notes,
	}
	if input.Plan != nil {
		dto.Plan = *input.Plan
	}
	if input.Status != nil {
		dto.Status = *input.Status
	}

	client, err := s.clients.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create client")
	}
	return FromModel(client), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*ClientDTO, error) {
	if input.Plan != nil && !input.Plan.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid client plan")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid client status")
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		if existing, err := s.clients.FindByEmail(ctx, email); err == nil && existing.ID != id {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "client email already exists")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check client email")
		}
		input.Email = &email
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, id, input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update client")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete client")
	}
	return nil
}
