package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

type stubClientCounter struct {
	total    int64
	byStatus map[enums.ClientStatus]int64
	byPlan   map[enums.ClientPlan]int64
	since    *time.Time
	newCount int64
}

func (s *stubClientCounter) Count(ctx context.Context, status *enums.ClientStatus) (int64, error) {
	if status == nil {
		return s.total, nil
	}
	return s.byStatus[*status], nil
}

func (s *stubClientCounter) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	s.since = &since
	return s.newCount, nil
}

func (s *stubClientCounter) CountGroupedByPlan(ctx context.Context) (map[enums.ClientPlan]int64, error) {
	return s.byPlan, nil
}

type stubStaffCounter struct {
	total  int64
	active int64
}

func (s *stubStaffCounter) Count(ctx context.Context, status *enums.StaffStatus) (int64, error) {
	if status == nil {
		return s.total, nil
	}
	if *status == enums.StaffStatusActive {
		return s.active, nil
	}
	return 0, nil
}

func TestStats_AggregatesCounts(t *testing.T) {
	clientCounter := &stubClientCounter{
		total: 42,
		byStatus: map[enums.ClientStatus]int64{
			enums.ClientStatusActive:    30,
			enums.ClientStatusExpiring:  5,
			enums.ClientStatusSuspended: 4,
			enums.ClientStatusInactive:  3,
		},
		byPlan: map[enums.ClientPlan]int64{
			enums.ClientPlanBasic:   20,
			enums.ClientPlanPremium: 12,
		},
		newCount: 7,
	}
	fixed := time.Date(2025, time.September, 18, 14, 30, 0, 0, time.UTC)
	svc, err := NewService(ServiceParams{
		ClientRepo: clientCounter,
		StaffRepo:  &stubStaffCounter{total: 9, active: 8},
		Now:        func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.TotalClients != 42 || stats.ActiveClients != 30 || stats.ExpiringClients != 5 {
		t.Fatalf("unexpected client counts: %+v", stats)
	}
	if stats.SuspendedClients != 4 || stats.InactiveClients != 3 {
		t.Fatalf("unexpected client status counts: %+v", stats)
	}
	if stats.NewClientsThisMonth != 7 {
		t.Fatalf("unexpected new client count: %d", stats.NewClientsThisMonth)
	}
	if stats.TotalStaff != 9 || stats.ActiveStaff != 8 {
		t.Fatalf("unexpected staff counts: %+v", stats)
	}

	if stats.PlanBreakdown[enums.ClientPlanBasic] != 20 || stats.PlanBreakdown[enums.ClientPlanPremium] != 12 {
		t.Fatalf("unexpected plan breakdown: %+v", stats.PlanBreakdown)
	}
	// Plans with no clients still show up with a zero count.
	if count, ok := stats.PlanBreakdown[enums.ClientPlanVIP]; !ok || count != 0 {
		t.Fatalf("expected zero VIP bucket, got %+v", stats.PlanBreakdown)
	}

	wantMonthStart := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	if clientCounter.since == nil || !clientCounter.since.Equal(wantMonthStart) {
		t.Fatalf("expected month-start cutoff %v, got %v", wantMonthStart, clientCounter.since)
	}
}
