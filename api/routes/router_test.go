package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fitnesspro/fitnesspro-backend/internal/clients"
	"github.com/fitnesspro/fitnesspro-backend/internal/dashboard"
	"github.com/fitnesspro/fitnesspro-backend/internal/exercises"
	"github.com/fitnesspro/fitnesspro-backend/internal/identity"
	"github.com/fitnesspro/fitnesspro-backend/internal/profiles"
	"github.com/fitnesspro/fitnesspro-backend/internal/registration"
	"github.com/fitnesspro/fitnesspro-backend/internal/schedules"
	"github.com/fitnesspro/fitnesspro-backend/internal/staff"
	"github.com/fitnesspro/fitnesspro-backend/internal/timelogs"
	pkgAuth "github.com/fitnesspro/fitnesspro-backend/pkg/auth"
	"github.com/fitnesspro/fitnesspro-backend/pkg/auth/session"
	"github.com/fitnesspro/fitnesspro-backend/pkg/config"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	"github.com/fitnesspro/fitnesspro-backend/pkg/logger"
)

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubIdentityService struct{}

func (stubIdentityService) Login(ctx context.Context, input identity.LoginInput, clientIP string) (*identity.AuthResultDTO, error) {
	return &identity.AuthResultDTO{}, nil
}

func (stubIdentityService) Refresh(ctx context.Context, input identity.RefreshInput) (*identity.TokenPairDTO, error) {
	return &identity.TokenPairDTO{}, nil
}

func (stubIdentityService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubIdentityService) Me(ctx context.Context, userID uuid.UUID) (*identity.AccountDTO, error) {
	return &identity.AccountDTO{}, nil
}

func (stubIdentityService) UpdateAccount(ctx context.Context, userID uuid.UUID, input identity.UpdateAccountInput) (*identity.AccountDTO, error) {
	return &identity.AccountDTO{}, nil
}

type stubRegistrationService struct{}

func (stubRegistrationService) RegisterUser(ctx context.Context, input registration.RegisterUserInput) (*registration.UserRegistrationDTO, error) {
	return &registration.UserRegistrationDTO{}, nil
}

func (stubRegistrationService) RegisterClient(ctx context.Context, input registration.RegisterClientInput) (*registration.ClientRegistrationDTO, error) {
	return &registration.ClientRegistrationDTO{}, nil
}

func (stubRegistrationService) RegisterStaff(ctx context.Context, input registration.RegisterStaffInput) (*registration.StaffRegistrationDTO, error) {
	return &registration.StaffRegistrationDTO{}, nil
}

type stubClientService struct{}

func (stubClientService) List(ctx context.Context, query clients.ListQuery) (*clients.ListPage, error) {
	return &clients.ListPage{}, nil
}

func (stubClientService) Get(ctx context.Context, id uuid.UUID) (*clients.ClientDTO, error) {
	return &clients.ClientDTO{}, nil
}

func (stubClientService) CreateRecord(ctx context.Context, input clients.CreateRecordInput) (*clients.ClientDTO, error) {
	return &clients.ClientDTO{}, nil
}

func (stubClientService) Update(ctx context.Context, id uuid.UUID, input clients.UpdateClientInput) (*clients.ClientDTO, error) {
	return &clients.ClientDTO{}, nil
}

func (stubClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubStaffService struct{}

func (stubStaffService) List(ctx context.Context, query staff.ListQuery) (*staff.ListPage, error) {
	return &staff.ListPage{}, nil
}

func (stubStaffService) Get(ctx context.Context, id uuid.UUID) (*staff.StaffDTO, error) {
	return &staff.StaffDTO{}, nil
}

func (stubStaffService) Update(ctx context.Context, id uuid.UUID, input staff.UpdateStaffInput) (*staff.StaffDTO, error) {
	return &staff.StaffDTO{}, nil
}

func (stubStaffService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubScheduleService struct{}

func (stubScheduleService) Week(ctx context.Context, staffID uuid.UUID) (*schedules.WeekDTO, error) {
	return &schedules.WeekDTO{StaffID: staffID}, nil
}

func (stubScheduleService) Replace(ctx context.Context, staffID uuid.UUID, input schedules.ReplaceInput) (*schedules.WeekDTO, error) {
	return &schedules.WeekDTO{StaffID: staffID}, nil
}

type stubTimeLogService struct{}

func (stubTimeLogService) ListForStaff(ctx context.Context, staffID uuid.UUID, from, to string) ([]timelogs.TimeLogDTO, error) {
	return nil, nil
}

func (stubTimeLogService) ClockIn(ctx context.Context, staffID uuid.UUID, input timelogs.ClockInInput) (*timelogs.TimeLogDTO, error) {
	return &timelogs.TimeLogDTO{}, nil
}

func (stubTimeLogService) ClockOut(ctx context.Context, staffID uuid.UUID, input timelogs.ClockOutInput) (*timelogs.TimeLogDTO, error) {
	return &timelogs.TimeLogDTO{}, nil
}

type stubExerciseService struct{}

func (stubExerciseService) List(ctx context.Context, actor exercises.Actor, query exercises.ListQuery) (*exercises.ListPage, error) {
	return &exercises.ListPage{}, nil
}

func (stubExerciseService) Get(ctx context.Context, actor exercises.Actor, id uuid.UUID) (*exercises.ExerciseDTO, error) {
	return &exercises.ExerciseDTO{}, nil
}

func (stubExerciseService) Create(ctx context.Context, actor exercises.Actor, input exercises.CreateExerciseInput) (*exercises.ExerciseDTO, error) {
	return &exercises.ExerciseDTO{}, nil
}

func (stubExerciseService) Update(ctx context.Context, actor exercises.Actor, id uuid.UUID, input exercises.UpdateExerciseInput) (*exercises.ExerciseDTO, error) {
	return &exercises.ExerciseDTO{}, nil
}

func (stubExerciseService) Delete(ctx context.Context, actor exercises.Actor, id uuid.UUID) error {
	return nil
}

func (stubExerciseService) UploadVideo(ctx context.Context, actor exercises.Actor, id uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	return "", nil
}

type stubProfileService struct{}

func (stubProfileService) Get(ctx context.Context, userID uuid.UUID) (*profiles.ProfileDTO, error) {
	return &profiles.ProfileDTO{}, nil
}

func (stubProfileService) Update(ctx context.Context, userID uuid.UUID, input profiles.UpdateProfileInput) (*profiles.ProfileDTO, error) {
	return &profiles.ProfileDTO{}, nil
}

func (stubProfileService) UploadAvatar(ctx context.Context, userID uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	return "", nil
}

type stubDashboardService struct{}

func (stubDashboardService) Stats(ctx context.Context) (*dashboard.StatsDTO, error) {
	return &dashboard.StatsDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubSessionChecker{},
		nil,
		nil,
		nil,
		Services{
			Identity:     stubIdentityService{},
			Registration: stubRegistrationService{},
			Clients:      stubClientService{},
			Staff:        stubStaffService{},
			Schedules:    stubScheduleService{},
			TimeLogs:     stubTimeLogService{},
			Exercises:    stubExerciseService{},
			Profiles:     stubProfileService{},
			Dashboard:    stubDashboardService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.AppRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestBackOfficeRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestBackOfficeRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/v1/clients/", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AppRoleClient))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/clients/", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AppRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestDashboardRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	client := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	client.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AppRoleClient))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, client)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AppRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestSharedSurfaceAdmitsClients(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AppRoleClient))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for client profile got %d", resp.Code)
	}

	list := httptest.NewRequest(http.MethodGet, "/api/v1/exercises/", nil)
	list.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AppRoleUser))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, list)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for exercise list got %d", resp.Code)
	}
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if resp.Header().Get("X-FitnessPro-Env") != "test" {
		t.Fatalf("expected env header, got %q", resp.Header().Get("X-FitnessPro-Env"))
	}
}

func TestPublicRegistrationReachableWithoutToken(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"email":"new@client.fit","password":"sup3rsafe","first_name":"Ada","last_name":"Nguyen"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for public signup got %d", resp.Code)
	}
}
