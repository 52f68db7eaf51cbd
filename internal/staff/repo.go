package staff

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	"github.com/fitnesspro/fitnesspro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const employeeIDPrefix = "EMP-"

// ListFilter narrows and pages the staff listing.
type ListFilter struct {
	Search     string
	Department *enums.Department
	Status     *enums.StaffStatus
	Cursor     *pagination.Cursor
	Limit      int
}

// Repository exposes staff persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a staff repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new staff row and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateStaffDTO) (*models.Staff, error) {
	row := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID loads a staff row joined with the owning user's profile.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*StaffWithProfile, error) {
	var row StaffWithProfile
	err := r.joined(ctx).Where("staff.id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByUserID loads the staff row owned by the given user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*StaffWithProfile, error) {
	var row StaffWithProfile
	err := r.joined(ctx).Where("staff.user_id = ?", userID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns staff newest-first with profile details, keyed on
// (created_at, id) for stable cursors. It fetches limit+1 rows so callers can
// detect the next page.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]StaffWithProfile, error) {
	query := r.joined(ctx)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"profiles.first_name ILIKE ? OR profiles.last_name ILIKE ? OR staff.employee_id ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Department != nil {
		query = query.Where("staff.department = ?", *filter.Department)
	}
	if filter.Status != nil {
		query = query.Where("staff.status = ?", *filter.Status)
	}
	if filter.Cursor != nil {
		query = query.Where(
			"(staff.created_at, staff.id) < (?, ?)",
			filter.Cursor.CreatedAt, filter.Cursor.ID,
		)
	}

	var rows []StaffWithProfile
	err := query.
		Order("staff.created_at DESC, staff.id DESC").
		Limit(pagination.LimitWithBuffer(filter.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Select("staff.*, profiles.first_name, profiles.last_name, profiles.phone").
		Joins("JOIN profiles ON profiles.user_id = staff.user_id")
}

// Update applies the non-nil fields of input to the staff row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input UpdateStaffInput) error {
	updates := map[string]any{}
	if input.Position != nil {
		updates["position"] = *input.Position
	}
	if input.Department != nil {
		updates["department"] = *input.Department
	}
	if input.HireDate != nil {
		updates["hire_date"] = *input.HireDate
	}
	if input.Salary != nil {
		updates["salary"] = *input.Salary
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Notes != nil {
		updates["notes"] = input.Notes
	}
	if input.ManagerID != nil {
		updates["manager_id"] = input.ManagerID
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes the staff row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Staff{}, "id = ?", id).Error
}

// Count returns the number of staff, optionally filtered by status.
func (r *Repository) Count(ctx context.Context, status *enums.StaffStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Staff{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextEmployeeID allocates the next sequential EMP-NNNN identifier. The
// length-first ordering keeps EMP-10000 above EMP-9999 once the suffix
// outgrows its padding. The read is not locked; if two registrations race to
// the same ID the unique index rejects the second transaction.
func (r *Repository) NextEmployeeID(ctx context.Context) (string, error) {
	var latest string
	err := r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Select("employee_id").
		Order("length(employee_id) DESC, employee_id DESC").
		Limit(1).
		Scan(&latest).Error
	if err != nil {
		return "", err
	}
	return nextEmployeeID(latest)
}

func nextEmployeeID(latest string) (string, error) {
	if latest == "" {
		return fmt.Sprintf("%s%04d", employeeIDPrefix, 1), nil
	}
	suffix := strings.TrimPrefix(latest, employeeIDPrefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", fmt.Errorf("malformed employee id %q: %w", latest, err)
	}
	return fmt.Sprintf("%s%04d", employeeIDPrefix, n+1), nil
}
