package schedules

import (
	"context"
	"testing"

	"github.com/fitnesspro/fitnesspro-backend/pkg/config"
	"github.com/fitnesspro/fitnesspro-backend/pkg/db"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupScheduleTestDB(t *testing.T) *db.Client {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		DSN:    "file::memory:?cache=shared",
		Driver: "sqlite",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ddl := `
CREATE TABLE IF NOT EXISTS work_schedules (
  id TEXT PRIMARY KEY,
  staff_id TEXT NOT NULL,
  day_of_week INTEGER NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  is_working_day INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (staff_id, day_of_week)
);`
	require.NoError(t, client.Exec(context.Background(), ddl).Error)
	require.NoError(t, client.Exec(context.Background(), "DELETE FROM work_schedules").Error)

	return client
}

func newScheduleService(t *testing.T, client *db.Client) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{DB: client})
	require.NoError(t, err)
	return svc
}

func TestWeek_FillsMissingDaysWithDefaults(t *testing.T) {
	client := setupScheduleTestDB(t)
	svc := newScheduleService(t, client)
	staffID := uuid.New()

	_, err := svc.Replace(context.Background(), staffID, ReplaceInput{
		Days: []DayDTO{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "16:00", IsWorkingDay: true},
		},
	})
	require.NoError(t, err)

	week, err := svc.Week(context.Background(), staffID)
	require.NoError(t, err)
	require.Len(t, week.Days, 7)

	monday := week.Days[1]
	require.True(t, monday.IsWorkingDay)
	require.Equal(t, "08:00", monday.StartTime)

	sunday := week.Days[0]
	require.False(t, sunday.IsWorkingDay)
	require.Equal(t, "09:00", sunday.StartTime)
	require.Equal(t, "17:00", sunday.EndTime)
}

func TestReplace_SwapsEntireWeek(t *testing.T) {
	client := setupScheduleTestDB(t)
	svc := newScheduleService(t, client)
	staffID := uuid.New()

	_, err := svc.Replace(context.Background(), staffID, ReplaceInput{
		Days: []DayDTO{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "16:00", IsWorkingDay: true},
			{DayOfWeek: 2, StartTime: "08:00", EndTime: "16:00", IsWorkingDay: true},
		},
	})
	require.NoError(t, err)

	week, err := svc.Replace(context.Background(), staffID, ReplaceInput{
		Days: []DayDTO{
			{DayOfWeek: 5, StartTime: "10:00", EndTime: "18:00", IsWorkingDay: true},
		},
	})
	require.NoError(t, err)

	require.False(t, week.Days[1].IsWorkingDay, "prior monday row should be gone")
	require.False(t, week.Days[2].IsWorkingDay, "prior tuesday row should be gone")
	require.True(t, week.Days[5].IsWorkingDay)
	require.Equal(t, "10:00", week.Days[5].StartTime)
}

func TestReplace_ValidatesInput(t *testing.T) {
	client := setupScheduleTestDB(t)
	svc := newScheduleService(t, client)
	staffID := uuid.New()

	cases := []struct {
		name string
		days []DayDTO
	}{
		{"empty week", nil},
		{"bad weekday", []DayDTO{{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}}},
		{"duplicate weekday", []DayDTO{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "18:00"},
		}},
		{"bad clock", []DayDTO{{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00"}}},
		{"inverted window", []DayDTO{{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00", IsWorkingDay: true}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Replace(context.Background(), staffID, ReplaceInput{Days: tc.days})
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			require.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}
