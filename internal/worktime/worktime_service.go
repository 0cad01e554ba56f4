package worktime

import (
	"context"
	"time"

	"go-attendance/internal/configcache"
	"go-attendance/internal/kvstore"
	"go-attendance/internal/shared/metrics"

	"go.uber.org/zap"
)

// ConfigKey is where the work-time snapshot is persisted.
var ConfigKey = kvstore.NewKey[configcache.Snapshot[WorkTimeConfig]]("config:work_time")

type Backend interface {
	GetWorkTimeConfig(ctx context.Context) (WorkTimeConfig, error)
	UpdateWorkTimeConfig(ctx context.Context, cfg WorkTimeConfig) (WorkTimeConfig, error)
}

// ConfigProvider is the part of configcache.Provider the service uses.
type ConfigProvider interface {
	GetSync() WorkTimeConfig
	Get(ctx context.Context, forceRefresh bool) configcache.Result[WorkTimeConfig]
	Set(ctx context.Context, value WorkTimeConfig)
}

// NewConfigProvider wires the work-time cache to the backend.
func NewConfigProvider(ctx context.Context, store kvstore.Store, b Backend, freshness time.Duration, m *metrics.Metrics) *configcache.Provider[WorkTimeConfig] {
	return configcache.NewProvider(ctx, configcache.Options[WorkTimeConfig]{
		Name:      "work_time",
		Key:       ConfigKey,
		Store:     store,
		Fetch:     b.GetWorkTimeConfig,
		Default:   Default(),
		Freshness: freshness,
		Metrics:   m,
	})
}

type Service interface {
	Get(ctx context.Context, forceRefresh bool) ConfigResponse
	Current() WorkTimeConfig
	Update(ctx context.Context, cfg WorkTimeConfig) (ConfigResponse, error)
}

type service struct {
	backend  Backend
	provider ConfigProvider
	loc      *time.Location
	logger   *zap.Logger
}

// NewService reads the schedule in loc; nil keeps timestamps in their own zone.
func NewService(b Backend, provider ConfigProvider, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("worktime.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worktime.service")
	}
	return &service{backend: b, provider: provider, loc: loc, logger: l}
}

func (s *service) Get(ctx context.Context, forceRefresh bool) ConfigResponse {
	return mapToResponse(s.provider.Get(ctx, forceRefresh))
}

func (s *service) Current() WorkTimeConfig {
	return s.provider.GetSync().In(s.loc)
}

func (s *service) Update(ctx context.Context, cfg WorkTimeConfig) (ConfigResponse, error) {
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("update work time config validation failed", zap.Error(err))
		return ConfigResponse{}, err
	}

	saved, err := s.backend.UpdateWorkTimeConfig(ctx, cfg)
	if err != nil {
		s.logger.Error("update work time config failed", zap.Error(err))
		return ConfigResponse{}, err
	}
	// Some backends answer 204; keep what was sent in that case.
	if saved.StandardStartTime == "" {
		saved = cfg
	}

	s.provider.Set(ctx, saved)
	s.logger.Info("work time config updated",
		zap.String("start", saved.StandardStartTime),
		zap.String("end", saved.StandardEndTime),
	)
	return mapToResponse(configcache.Result[WorkTimeConfig]{
		Value:     saved,
		Source:    configcache.SourceFresh,
		FetchedAt: time.Now(),
	}), nil
}

func mapToResponse(r configcache.Result[WorkTimeConfig]) ConfigResponse {
	resp := ConfigResponse{
		Config: r.Value,
		Source: string(r.Source),
		Stale:  r.Stale(),
	}
	if !r.FetchedAt.IsZero() {
		v := r.FetchedAt.UTC().Format(time.RFC3339)
		resp.FetchedAt = &v
	}
	if r.Err != nil {
		resp.Warning = "Could not refresh schedule settings, showing the last known values"
	}
	return resp
}
