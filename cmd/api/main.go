package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fitnesspro/fitnesspro-backend/api/controllers"
	"github.com/fitnesspro/fitnesspro-backend/api/routes"
	"github.com/fitnesspro/fitnesspro-backend/internal/clients"
	"github.com/fitnesspro/fitnesspro-backend/internal/dashboard"
	"github.com/fitnesspro/fitnesspro-backend/internal/exercises"
	"github.com/fitnesspro/fitnesspro-backend/internal/identity"
	"github.com/fitnesspro/fitnesspro-backend/internal/profiles"
	"github.com/fitnesspro/fitnesspro-backend/internal/registration"
	"github.com/fitnesspro/fitnesspro-backend/internal/roles"
	"github.com/fitnesspro/fitnesspro-backend/internal/schedules"
	"github.com/fitnesspro/fitnesspro-backend/internal/staff"
	"github.com/fitnesspro/fitnesspro-backend/internal/timelogs"
	"github.com/fitnesspro/fitnesspro-backend/internal/users"
	"github.com/fitnesspro/fitnesspro-backend/pkg/auth/session"
	"github.com/fitnesspro/fitnesspro-backend/pkg/config"
	"github.com/fitnesspro/fitnesspro-backend/pkg/db"
	"github.com/fitnesspro/fitnesspro-backend/pkg/logger"
	"github.com/fitnesspro/fitnesspro-backend/pkg/metrics"
	"github.com/fitnesspro/fitnesspro-backend/pkg/migrate"
	"github.com/fitnesspro/fitnesspro-backend/pkg/redis"
	"github.com/fitnesspro/fitnesspro-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}
	avatarBucket := gcsClient.BucketHandle(cfg.GCS.AvatarBucket)
	videoBucket := gcsClient.BucketHandle(cfg.GCS.ExerciseBucket)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	roleRepo := roles.NewRepository(gormDB)
	profileRepo := profiles.NewRepository(gormDB)
	clientRepo := clients.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	timeLogRepo := timelogs.NewRepository(gormDB)
	exerciseRepo := exercises.NewRepository(gormDB)

	identityService, err := identity.NewService(identity.ServiceParams{
		UserRepo:    userRepo,
		RoleRepo:    roleRepo,
		ProfileRepo: profileRepo,
		Sessions:    sessionManager,
		Limiter:     redisClient,
		JWT:         cfg.JWT,
		Password:    cfg.Password,
		RateLimit:   cfg.AuthRateLimit,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	registrationService, err := registration.NewService(registration.ServiceParams{
		DB:       dbClient,
		Password: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create registration service", err)
		os.Exit(1)
	}

	clientService, err := clients.NewService(clients.ServiceParams{ClientRepo: clientRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create clients service", err)
		os.Exit(1)
	}

	staffService, err := staff.NewService(staff.ServiceParams{StaffRepo: staffRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}

	scheduleService, err := schedules.NewService(schedules.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create schedules service", err)
		os.Exit(1)
	}

	timeLogService, err := timelogs.NewService(timelogs.ServiceParams{TimeLogRepo: timeLogRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create time logs service", err)
		os.Exit(1)
	}

	exerciseService, err := exercises.NewService(exercises.ServiceParams{
		ExerciseRepo: exerciseRepo,
		VideoBucket:  videoBucket,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create exercises service", err)
		os.Exit(1)
	}

	profileService, err := profiles.NewService(profiles.ServiceParams{
		ProfileRepo:  profileRepo,
		AvatarBucket: avatarBucket,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create profiles service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		ClientRepo: clientRepo,
		StaffRepo:  staffRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	router := routes.NewRouter(
		cfg,
		logg,
		sessionManager,
		httpMetrics,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
			"gcs":      gcsClient,
		},
		routes.Services{
			Identity:     identityService,
			Registration: registrationService,
			Clients:      clientService,
			Staff:        staffService,
			Schedules:    scheduleService,
			TimeLogs:     timeLogService,
			Exercises:    exerciseService,
			Profiles:     profileService,
			Dashboard:    dashboardService,
		},
	)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
