package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fitnesspro/fitnesspro-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir failed: %v", err)
	}
}

func TestIdentityMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_identity_tables.sql")

	checks := []string{
		"CREATE TYPE app_role AS ENUM ('admin', 'client', 'user')",
		"CREATE UNIQUE INDEX idx_users_email ON users (email)",
		"CREATE UNIQUE INDEX idx_profiles_user_id ON profiles (user_id)",
		"CREATE UNIQUE INDEX idx_user_roles_user_role ON user_roles (user_id, role)",
		"DROP TYPE app_role",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestScheduleMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_schedules_and_time_logs.sql")

	checks := []string{
		"CHECK (day_of_week BETWEEN 0 AND 6)",
		"CREATE UNIQUE INDEX idx_work_schedules_staff_day ON work_schedules (staff_id, day_of_week)",
		"CREATE UNIQUE INDEX idx_time_logs_staff_date ON time_logs (staff_id, date)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
