package app

import (
	"context"
	"time"

	"go-attendance/internal/attendance"
	"go-attendance/internal/auth"
	"go-attendance/internal/backend"
	"go-attendance/internal/geocode"
	"go-attendance/internal/leave"
	"go-attendance/internal/middleware"
	"go-attendance/internal/rbac"
	"go-attendance/internal/rbac/infra"
	"go-attendance/internal/shared/config"
	"go-attendance/internal/shared/metrics"
	"go-attendance/internal/timer"
	"go-attendance/internal/user"
	"go-attendance/internal/worklocation"
	"go-attendance/internal/worktime"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg config.Config,
	inf *resources,
	m *metrics.Metrics,
) error {
	// --- Backend ---
	backendClient := backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, m)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	scheduleLoc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- Config caches ---
	workTimeProvider := worktime.NewConfigProvider(ctx, inf.store, backendClient, cfg.ConfigFreshness, m)
	locationsProvider := worklocation.NewLocationsProvider(ctx, inf.store, backendClient, cfg.ConfigFreshness, m)

	// --- Services ---
	authService := auth.NewService(backendClient, auth.NewRepository(inf.store), cfg.JWTSecret, cfg.SessionTTL)
	workTimeService := worktime.NewService(backendClient, workTimeProvider, scheduleLoc)
	workLocationService := worklocation.NewService(backendClient, locationsProvider)
	timerService := timer.NewService(inf.store, workTimeService)
	leaveService := leave.NewService(backendClient)
	userService := user.NewService(backendClient)
	attendanceService := attendance.NewService(attendance.Deps{
		Repo:      backendClient,
		Locations: workLocationService,
		WorkTime:  workTimeService,
		Timer:     timerService,
		Geocoder:  newGeocoder(cfg, inf),
		Publisher: inf.publisher,
		Metrics:   m,
	})

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), cfg.SessionTTL)
	attendanceHandler := attendance.NewHandler(attendanceService, rbacService)
	leaveHandler := leave.NewHandler(leaveService, rbacService)
	rbacHandler := rbac.NewHandler(rbacService)
	timerHandler := timer.NewHandler(timerService)
	userHandler := user.NewHandler(userService)
	workLocationHandler := worklocation.NewHandler(workLocationService)
	workTimeHandler := worktime.NewHandler(workTimeService)

	// A typed nil *redis.Client would defeat the nil check in Idempotency.
	var idempotencyStore redis.Cmdable
	if inf.rdb != nil {
		idempotencyStore = inf.rdb
	}

	authMW := middleware.AuthMiddleware(authService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, authMW)
		rbac.RegisterRoutes(api, rbacHandler, authMW)
		attendance.RegisterRoutes(api, attendanceHandler, authMW, rbacService, idempotencyStore)
		timer.RegisterRoutes(api, timerHandler, authMW, rbacService)
		leave.RegisterRoutes(api, leaveHandler, authMW, rbacService)
		user.RegisterRoutes(api, userHandler, authMW, rbacService)
		worklocation.RegisterRoutes(api, workLocationHandler, authMW, rbacService)
		worktime.RegisterRoutes(api, workTimeHandler, authMW, rbacService)
	}

	zap.L().Named("app").Info("modules registered",
		zap.Duration("config_freshness", cfg.ConfigFreshness),
		zap.String("work_timezone", scheduleLoc.String()),
	)
	return nil
}

func newGeocoder(cfg config.Config, inf *resources) geocode.Geocoder {
	if cfg.GeocodeURL == "" {
		return geocode.Noop{}
	}
	return geocode.NewClient(geocode.Options{
		BaseURL:   cfg.GeocodeURL,
		UserAgent: cfg.GeocodeUserAgent,
		RPS:       cfg.GeocodeRPS,
		Timeout:   5 * time.Second,
		Store:     inf.store,
	})
}
