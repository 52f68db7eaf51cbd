package clients

import (
	"context"
	"time"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	"github.com/fitnesspro/fitnesspro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows and pages the client listing.
type ListFilter struct {
	Search string
	Status *enums.ClientStatus
	Cursor *pagination.Cursor
	Limit  int
}

// Repository exposes client persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a clients repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new client and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateClientDTO) (*models.Client, error) {
	client := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// FindByID loads a client by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByEmail retrieves the client matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List returns clients newest-first, keyed on (created_at, id) for stable cursors.
// It fetches limit+1 rows so callers can detect the next page.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Client, error) {
	query := r.db.WithContext(ctx).Model(&models.Client{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			filter.Cursor.CreatedAt, filter.Cursor.ID,
		)
	}

	var rows []models.Client
	err := query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(filter.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the non-nil fields of input to the client row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) error {
	updates := map[string]any{}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = input.Phone
	}
	if input.Plan != nil {
		updates["plan"] = *input.Plan
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Notes != nil {
		updates["notes"] = input.Notes
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// AttachUser links a login account to an existing client record.
func (r *Repository) AttachUser(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Update("user_id", userID).Error
}

// Delete removes the client row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id).Error
}

// CountCreatedSince returns the number of clients added on or after the cutoff.
func (r *Repository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountGroupedByPlan returns client counts keyed by membership plan.
func (r *Repository) CountGroupedByPlan(ctx context.Context) (map[enums.ClientPlan]int64, error) {
	var rows []struct {
		Plan  enums.ClientPlan
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Select("plan, COUNT(*) AS count").
		Group("plan").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[enums.ClientPlan]int64, len(rows))
	for _, row := range rows {
		out[row.Plan] = row.Count
	}
	return out, nil
}

// Count returns the number of clients, optionally filtered by status.
func (r *Repository) Count(ctx context.Context, status *enums.ClientStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Client{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
