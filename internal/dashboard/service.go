package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
)

// StatsDTO is the admin landing-page summary.
type StatsDTO struct {
	TotalClients        int64 `json:"total_clients"`
	ActiveClients       int64 `json:"active_clients"`
	ExpiringClients     int64 `json:"expiring_clients"`
	SuspendedClients    int64 `json:"suspended_clients"`
	InactiveClients     int64 `json:"inactive_clients"`
	NewClientsThisMonth int64 `json:"new_clients_this_month"`
	TotalStaff          int64 `json:"total_staff"`
	ActiveStaff         int64 `json:"active_staff"`

	// PlanBreakdown always carries every plan, zeroes included.
	PlanBreakdown map[enums.ClientPlan]int64 `json:"plan_breakdown"`
}

// Service defines the behavior needed by the dashboard controller.
type Service interface {
	Stats(ctx context.Context) (*StatsDTO, error)
}

type clientCounter interface {
	Count(ctx context.Context, status *enums.ClientStatus) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountGroupedByPlan(ctx context.Context) (map[enums.ClientPlan]int64, error)
}

type staffCounter interface {
	Count(ctx context.Context, status *enums.StaffStatus) (int64, error)
}

type service struct {
	clients clientCounter
	staff   staffCounter
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build a dashboard service.
type ServiceParams struct {
	ClientRepo clientCounter
	StaffRepo  staffCounter
	Now        func() time.Time
}

// NewService constructs a dashboard service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ClientRepo == nil {
		return nil, fmt.Errorf("client repository is required")
	}
	if params.StaffRepo == nil {
		return nil, fmt.Errorf("staff repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		clients: params.ClientRepo,
		staff:   params.StaffRepo,
		now:     now,
	}, nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	stats := &StatsDTO{}

	var err error
	if stats.TotalClients, err = s.clients.Count(ctx, nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count clients")
	}

	clientBuckets := []struct {
		status enums.ClientStatus
		target *int64
	}{
		{enums.ClientStatusActive, &stats.ActiveClients},
		{enums.ClientStatusExpiring, &stats.ExpiringClients},
		{enums.ClientStatusSuspended, &stats.SuspendedClients},
		{enums.ClientStatusInactive, &stats.InactiveClients},
	}
	for _, bucket := range clientBuckets {
		status := bucket.status
		count, err := s.clients.Count(ctx, &status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count clients by status")
		}
		*bucket.target = count
	}

	byPlan, err := s.clients.CountGroupedByPlan(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count clients by plan")
	}
	stats.PlanBreakdown = make(map[enums.ClientPlan]int64, len(enums.ClientPlans()))
	for _, plan := range enums.ClientPlans() {
		stats.PlanBreakdown[plan] = byPlan[plan]
	}

	monthStart := startOfMonth(s.now().UTC())
	if stats.NewClientsThisMonth, err = s.clients.CountCreatedSince(ctx, monthStart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count new clients")
	}

	if stats.TotalStaff, err = s.staff.Count(ctx, nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count staff")
	}
	activeStaff := enums.StaffStatusActive
	if stats.ActiveStaff, err = s.staff.Count(ctx, &activeStaff); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active staff")
	}

	return stats, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
