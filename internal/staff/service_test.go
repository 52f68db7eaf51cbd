package staff

import (
	"context"
	"testing"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubStaffRepo struct {
	byID    map[uuid.UUID]*StaffWithProfile
	updated *UpdateStaffInput
	deleted []uuid.UUID
}

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{byID: map[uuid.UUID]*StaffWithProfile{}}
}

func (s *stubStaffRepo) FindByID(ctx context.Context, id uuid.UUID) (*StaffWithProfile, error) {
	if row, ok := s.byID[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStaffRepo) List(ctx context.Context, filter ListFilter) ([]StaffWithProfile, error) {
	return nil, nil
}

func (s *stubStaffRepo) Update(ctx context.Context, id uuid.UUID, input UpdateStaffInput) error {
	s.updated = &input
	return nil
}

func (s *stubStaffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newStaffService(t *testing.T, repo *stubStaffRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{StaffRepo: repo})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestUpdate_RejectsNegativeSalary(t *testing.T) {
	repo := newStubStaffRepo()
	svc := newStaffService(t, repo)

	negative := decimal.NewFromInt(-1)
	_, err := svc.Update(context.Background(), uuid.New(), UpdateStaffInput{Salary: &negative})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("expected repo update to be skipped")
	}
}

func TestUpdate_RejectsUnknownDepartment(t *testing.T) {
	repo := newStubStaffRepo()
	svc := newStaffService(t, repo)

	bad := enums.Department("spa")
	_, err := svc.Update(context.Background(), uuid.New(), UpdateStaffInput{Department: &bad})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestUpdate_AppliesChanges(t *testing.T) {
	repo := newStubStaffRepo()
	id := uuid.New()
	repo.byID[id] = &StaffWithProfile{
		Staff:     models.Staff{ID: id, EmployeeID: "EMP-0001", Status: enums.StaffStatusActive},
		FirstName: "Luca",
		LastName:  "Verdi",
	}
	svc := newStaffService(t, repo)

	position := "Head Trainer"
	dto, err := svc.Update(context.Background(), id, UpdateStaffInput{Position: &position})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if repo.updated == nil || repo.updated.Position == nil || *repo.updated.Position != position {
		t.Fatal("expected position update to reach the repo")
	}
	if dto.FirstName != "Luca" {
		t.Fatalf("expected joined profile name, got %q", dto.FirstName)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := newStubStaffRepo()
	svc := newStaffService(t, repo)

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
