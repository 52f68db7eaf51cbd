package staff

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fitnesspro/fitnesspro-backend/pkg/config"
	"github.com/fitnesspro/fitnesspro-backend/pkg/db"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

func setupStaffRepoTestDB(t *testing.T) *db.Client {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		DSN:    "file:staffrepo?mode=memory&cache=shared",
		Driver: "sqlite",
	}, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	ddl := `CREATE TABLE IF NOT EXISTS staff (
  id TEXT PRIMARY KEY,
  employee_id TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL UNIQUE,
  position TEXT NOT NULL,
  department TEXT NOT NULL,
  hire_date DATETIME NOT NULL,
  salary NUMERIC,
  status TEXT NOT NULL,
  notes TEXT,
  manager_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := client.Exec(context.Background(), ddl).Error; err != nil {
		t.Fatalf("create staff table: %v", err)
	}
	if err := client.Exec(context.Background(), "DELETE FROM staff").Error; err != nil {
		t.Fatalf("truncate staff table: %v", err)
	}

	return client
}

func TestNextEmployeeID_ReadsAndWritesTheStaffTable(t *testing.T) {
	client := setupStaffRepoTestDB(t)
	repo := NewRepository(client.DB())

	next, err := repo.NextEmployeeID(context.Background())
	if err != nil {
		t.Fatalf("NextEmployeeID on empty table failed: %v", err)
	}
	if next != "EMP-0001" {
		t.Fatalf("expected EMP-0001 on empty table, got %q", next)
	}

	// EMP-10000 sorts before EMP-9999 lexicographically; the allocator must
	// still treat it as the latest.
	for _, employeeID := range []string{"EMP-9999", "EMP-10000"} {
		if _, err := repo.Create(context.Background(), CreateStaffDTO{
			EmployeeID: employeeID,
			UserID:     uuid.New(),
			Position:   "Personal Trainer",
			Department: enums.DepartmentFitness,
			HireDate:   time.Now().UTC(),
			Status:     enums.StaffStatusActive,
		}); err != nil {
			t.Fatalf("seed staff row %s: %v", employeeID, err)
		}
	}

	next, err = repo.NextEmployeeID(context.Background())
	if err != nil {
		t.Fatalf("NextEmployeeID failed: %v", err)
	}
	if next != "EMP-10001" {
		t.Fatalf("expected EMP-10001 after EMP-10000, got %q", next)
	}
}

func TestNextEmployeeID(t *testing.T) {
	cases := []struct {
		name    string
		latest  string
		want    string
		wantErr bool
	}{
		{"first hire", "", "EMP-0001", false},
		{"increments", "EMP-0041", "EMP-0042", false},
		{"rolls past padding", "EMP-9999", "EMP-10000", false},
		{"malformed", "STAFF-12", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := nextEmployeeID(tc.latest)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.latest)
				}
				return
			}
			if err != nil {
				t.Fatalf("nextEmployeeID(%q) failed: %v", tc.latest, err)
			}
			if got != tc.want {
				t.Fatalf("nextEmployeeID(%q) = %q, want %q", tc.latest, got, tc.want)
			}
		})
	}
}
