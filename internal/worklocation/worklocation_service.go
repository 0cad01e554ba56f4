package worklocation

import (
	"context"
	"strings"
	"time"

	"go-attendance/internal/configcache"
	"go-attendance/internal/kvstore"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/metrics"
	worklocationerrors "go-attendance/internal/worklocation/errors"

	"go.uber.org/zap"
)

// ConfigKey is where the work-locations snapshot is persisted.
var ConfigKey = kvstore.NewKey[configcache.Snapshot[[]WorkLocation]]("config:work_locations")

type Backend interface {
	ListWorkLocations(ctx context.Context) ([]WorkLocation, error)
	CreateWorkLocation(ctx context.Context, loc WorkLocation) (WorkLocation, error)
	UpdateWorkLocation(ctx context.Context, id string, loc WorkLocation) (WorkLocation, error)
	DeleteWorkLocation(ctx context.Context, id string) error
}

type LocationsProvider interface {
	GetSync() []WorkLocation
	Get(ctx context.Context, forceRefresh bool) configcache.Result[[]WorkLocation]
	Invalidate()
}

func NewLocationsProvider(ctx context.Context, store kvstore.Store, b Backend, freshness time.Duration, m *metrics.Metrics) *configcache.Provider[[]WorkLocation] {
	return configcache.NewProvider(ctx, configcache.Options[[]WorkLocation]{
		Name:      "work_locations",
		Key:       ConfigKey,
		Store:     store,
		Fetch:     b.ListWorkLocations,
		Default:   DefaultLocations(),
		Freshness: freshness,
		Metrics:   m,
	})
}

type Service interface {
	List(ctx context.Context, forceRefresh bool) ListResponse
	// Locations is the geofence view: whatever the cache can serve right now.
	Locations(ctx context.Context) []WorkLocation
	Create(ctx context.Context, req LocationRequest) (WorkLocation, error)
	Update(ctx context.Context, id string, req LocationRequest) (WorkLocation, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	backend  Backend
	provider LocationsProvider
	logger   *zap.Logger
}

func NewService(b Backend, provider LocationsProvider, logger ...*zap.Logger) Service {
	l := zap.L().Named("worklocation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worklocation.service")
	}
	return &service{backend: b, provider: provider, logger: l}
}

func (s *service) List(ctx context.Context, forceRefresh bool) ListResponse {
	r := s.provider.Get(ctx, forceRefresh)
	resp := ListResponse{
		Locations: r.Value,
		Source:    string(r.Source),
		Stale:     r.Stale(),
	}
	if resp.Locations == nil {
		resp.Locations = []WorkLocation{}
	}
	if !r.FetchedAt.IsZero() {
		v := r.FetchedAt.UTC().Format(time.RFC3339)
		resp.FetchedAt = &v
	}
	if r.Err != nil {
		resp.Warning = "Could not refresh work locations, showing the last known values"
	}
	return resp
}

func (s *service) Locations(ctx context.Context) []WorkLocation {
	return s.provider.Get(ctx, false).Value
}

func (s *service) Create(ctx context.Context, req LocationRequest) (WorkLocation, error) {
	loc := req.toEntity()
	loc.Name = strings.TrimSpace(loc.Name)
	if err := loc.Validate(); err != nil {
		return WorkLocation{}, err
	}

	created, err := s.backend.CreateWorkLocation(ctx, loc)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("create work location failed", zap.String("name", loc.Name), zap.Error(err))
		return WorkLocation{}, err
	}

	s.refresh(ctx)
	s.logger.Info("work location created", zap.String("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, req LocationRequest) (WorkLocation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return WorkLocation{}, worklocationerrors.ErrInvalidLocationID
	}
	loc := req.toEntity()
	loc.ID = id
	loc.Name = strings.TrimSpace(loc.Name)
	if err := loc.Validate(); err != nil {
		return WorkLocation{}, err
	}

	updated, err := s.backend.UpdateWorkLocation(ctx, id, loc)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("update work location failed", zap.String("id", id), zap.Error(err))
		return WorkLocation{}, err
	}

	s.refresh(ctx)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return worklocationerrors.ErrInvalidLocationID
	}
	if err := s.backend.DeleteWorkLocation(ctx, id); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("delete work location failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.refresh(ctx)
	s.logger.Info("work location deleted", zap.String("id", id))
	return nil
}

// refresh drops the cached list and refetches it so geofence checks see the
// change immediately.
func (s *service) refresh(ctx context.Context) {
	s.provider.Invalidate()
	if r := s.provider.Get(ctx, true); r.Err != nil {
		s.logger.Warn("work locations refresh after write failed", zap.Error(r.Err))
	}
}
