package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/fitnesspro/fitnesspro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListQuery carries the staff listing inputs from the controller.
type ListQuery struct {
	Search     string
	Department *enums.Department
	Status     *enums.StaffStatus
	Page       pagination.Params
}

// Service defines the behavior needed by the staff controller.
type Service interface {
	List(ctx context.Context, query ListQuery) (*ListPage, error)
	Get(ctx context.Context, id uuid.UUID) (*StaffDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateStaffInput) (*StaffDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type staffRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StaffWithProfile, error)
	List(ctx context.Context, filter ListFilter) ([]StaffWithProfile, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateStaffInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	staff staffRepository
}

// ServiceParams bundles the dependencies required to build a staff service.
type ServiceParams struct {
	StaffRepo staffRepository
}

// NewService constructs a staff service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.StaffRepo == nil {
		return nil, fmt.Errorf("staff repository is required")
	}
	return &service{staff: params.StaffRepo}, nil
}

func (s *service) List(ctx context.Context, query ListQuery) (*ListPage, error) {
	cursor, err := pagination.ParseCursor(query.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if query.Department != nil && !query.Department.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid department")
	}
	if query.Status != nil && !query.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid staff status")
	}

	limit := pagination.NormalizeLimit(query.Page.Limit)
	rows, err := s.staff.List(ctx, ListFilter{
		Search:     strings.TrimSpace(query.Search),
		Department: query.Department,
		Status:     query.Status,
		Cursor:     cursor,
		Limit:      limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list staff")
	}

	page := &ListPage{Staff: make([]StaffDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		page.Staff = append(page.Staff, *FromJoined(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	return page, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*StaffDTO, error) {
	row, err := s.staff.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "staff member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup staff member")
	}
	return FromJoined(row), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateStaffInput) (*StaffDTO, error) {
	if input.Department != nil && !input.Department.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid department")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid staff status")
	}
	if input.Position != nil && strings.TrimSpace(*input.Position) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "position cannot be empty")
	}
	if input.Salary != nil && input.Salary.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salary cannot be negative")
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.staff.Update(ctx, id, input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update staff member")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.staff.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete staff member")
	}
	return nil
}
