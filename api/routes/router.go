package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitnesspro/fitnesspro-backend/api/controllers"
	"github.com/fitnesspro/fitnesspro-backend/api/middleware"
	"github.com/fitnesspro/fitnesspro-backend/internal/clients"
	"github.com/fitnesspro/fitnesspro-backend/internal/dashboard"
	"github.com/fitnesspro/fitnesspro-backend/internal/exercises"
	"github.com/fitnesspro/fitnesspro-backend/internal/identity"
	"github.com/fitnesspro/fitnesspro-backend/internal/profiles"
	"github.com/fitnesspro/fitnesspro-backend/internal/registration"
	"github.com/fitnesspro/fitnesspro-backend/internal/schedules"
	"github.com/fitnesspro/fitnesspro-backend/internal/staff"
	"github.com/fitnesspro/fitnesspro-backend/internal/timelogs"
	"github.com/fitnesspro/fitnesspro-backend/pkg/auth/session"
	"github.com/fitnesspro/fitnesspro-backend/pkg/config"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	"github.com/fitnesspro/fitnesspro-backend/pkg/logger"
	"github.com/fitnesspro/fitnesspro-backend/pkg/metrics"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Identity     identity.Service
	Registration registration.Service
	Clients      clients.Service
	Staff        staff.Service
	Schedules    schedules.Service
	TimeLogs     timelogs.Service
	Exercises    exercises.Service
	Profiles     profiles.Service
	Dashboard    dashboard.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	sessions session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	readiness map[string]controllers.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	adminRole := string(enums.AppRoleAdmin)
	clientRole := string(enums.AppRoleClient)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.RegisterUser(svcs.Registration, logg))
		r.Post("/login", controllers.AuthLogin(svcs.Identity, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Identity, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Identity, logg))
			r.Get("/me", controllers.AuthMe(svcs.Identity, logg))
			r.Patch("/me", controllers.AuthUpdateMe(svcs.Identity, logg))
		})
	})

	// Public self-serve client signup.
	r.Post("/api/v1/register", controllers.RegisterClient(svcs.Registration, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		// Back-office surface, admins only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(adminRole, logg))

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", controllers.ListClients(svcs.Clients, logg))
				r.Post("/", controllers.CreateClientRecord(svcs.Clients, logg))
				r.Post("/register", controllers.AdminRegisterClient(svcs.Registration, logg))
				r.Get("/{id}", controllers.GetClient(svcs.Clients, logg))
				r.Patch("/{id}", controllers.UpdateClient(svcs.Clients, logg))
				r.Delete("/{id}", controllers.DeleteClient(svcs.Clients, logg))
			})

			r.Route("/staff", func(r chi.Router) {
				r.Get("/", controllers.ListStaff(svcs.Staff, logg))
				r.Post("/register", controllers.AdminRegisterStaff(svcs.Registration, logg))
				r.Get("/{id}", controllers.GetStaff(svcs.Staff, logg))
				r.Patch("/{id}", controllers.UpdateStaff(svcs.Staff, logg))
				r.Delete("/{id}", controllers.DeleteStaff(svcs.Staff, logg))

				r.Get("/{id}/schedule", controllers.GetWeekSchedule(svcs.Schedules, logg))
				r.Put("/{id}/schedule", controllers.ReplaceWeekSchedule(svcs.Schedules, logg))

				r.Get("/{id}/time-logs", controllers.ListTimeLogs(svcs.TimeLogs, logg))
				r.Post("/{id}/time-logs/clock-in", controllers.ClockIn(svcs.TimeLogs, logg))
				r.Post("/{id}/time-logs/clock-out", controllers.ClockOut(svcs.TimeLogs, logg))
			})

			r.Get("/dashboard/stats", controllers.DashboardStats(svcs.Dashboard, logg))
		})

		// Shared surface for any signed-in account.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, adminRole, clientRole, string(enums.AppRoleUser)))

			r.Route("/exercises", func(r chi.Router) {
				r.Get("/", controllers.ListExercises(svcs.Exercises, logg))
				r.Post("/", controllers.CreateExercise(svcs.Exercises, logg))
				r.Get("/{id}", controllers.GetExercise(svcs.Exercises, logg))
				r.Patch("/{id}", controllers.UpdateExercise(svcs.Exercises, logg))
				r.Delete("/{id}", controllers.DeleteExercise(svcs.Exercises, logg))
				r.Post("/{id}/video", controllers.UploadExerciseVideo(svcs.Exercises, cfg, logg))
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.GetMyProfile(svcs.Profiles, logg))
				r.Patch("/", controllers.UpdateMyProfile(svcs.Profiles, logg))
				r.Post("/avatar", controllers.UploadAvatar(svcs.Profiles, cfg, logg))
			})
		})
	})

	return r
}
