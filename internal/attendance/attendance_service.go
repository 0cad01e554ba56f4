package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/backend"
	"go-attendance/internal/events"
	"go-attendance/internal/geocode"
	"go-attendance/internal/geofence"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/metrics"
	"go-attendance/internal/timer"
	timererrors "go-attendance/internal/timer/errors"
	"go-attendance/internal/worklocation"
	worklocationerrors "go-attendance/internal/worklocation/errors"
	"go-attendance/internal/worktime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	actionClockIn  = "clock_in"
	actionClockOut = "clock_out"
	actionCheck    = "check"

	dateLayout = "2006-01-02"
)

// LocationSource serves the configured offices; worklocation.Service satisfies it.
type LocationSource interface {
	Locations(ctx context.Context) []worklocation.WorkLocation
}

type WorkTime interface {
	Current() worktime.WorkTimeConfig
}

type Timer interface {
	Start(ctx context.Context, userID string, clockIn time.Time, locationID, locationName string) (timer.StatusResponse, error)
	Stop(ctx context.Context, userID string, at time.Time) (timer.StatusResponse, error)
}

type Service interface {
	CheckLocation(ctx context.Context, req LocationCheckRequest) (geofence.Result, error)
	ClockIn(ctx context.Context, userID string, req ClockRequest) (ClockResponse, error)
	ClockOut(ctx context.Context, userID string, req ClockRequest) (ClockResponse, error)
	GetByDate(ctx context.Context, userID, date string) ([]AttendanceResponse, error)
	GetRange(ctx context.Context, userID, from, to string) ([]AttendanceResponse, error)
}

type Deps struct {
	Repo      Repository
	Locations LocationSource
	WorkTime  WorkTime
	Timer     Timer
	Geocoder  geocode.Geocoder
	Publisher kafka.Publisher
	Metrics   *metrics.Metrics
}

type service struct {
	repo      Repository
	locations LocationSource
	worktime  WorkTime
	timer     Timer
	geocoder  geocode.Geocoder
	publisher kafka.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(d Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	s := &service{
		repo:      d.Repo,
		locations: d.Locations,
		worktime:  d.WorkTime,
		timer:     d.Timer,
		geocoder:  d.Geocoder,
		publisher: d.Publisher,
		metrics:   d.Metrics,
		now:       time.Now,
		logger:    l,
	}
	if s.geocoder == nil {
		s.geocoder = geocode.Noop{}
	}
	if s.publisher == nil {
		s.publisher = kafka.NoopPublisher{}
	}
	return s
}

func (s *service) CheckLocation(ctx context.Context, req LocationCheckRequest) (geofence.Result, error) {
	return s.evaluate(ctx, actionCheck, ClockRequest{Latitude: req.Latitude, Longitude: req.Longitude})
}

func (s *service) ClockIn(ctx context.Context, userID string, req ClockRequest) (ClockResponse, error) {
	return s.clock(ctx, actionClockIn, userID, req)
}

func (s *service) ClockOut(ctx context.Context, userID string, req ClockRequest) (ClockResponse, error) {
	return s.clock(ctx, actionClockOut, userID, req)
}

func (s *service) clock(ctx context.Context, action, userID string, req ClockRequest) (ClockResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	res, err := s.evaluate(ctx, action, req)
	if err != nil {
		return ClockResponse{}, err
	}
	if !res.IsWithinOffice {
		log.Info("clock rejected outside geofence",
			zap.String("action", action),
			zap.String("user_id", userID),
			zap.String("office", res.Office.Name),
			zap.Float64("distance", res.Distance),
			zap.Float64("radius", res.Office.Radius),
		)
		s.publishRejected(ctx, action, userID, req.point(), res)
		return ClockResponse{}, attendanceerrors.ErrOutsideGeofence.WithDetails(res)
	}

	p := req.point()
	backendReq := backend.ClockRequest{
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Accuracy:     req.Accuracy,
		Distance:     res.Distance,
		LocationID:   res.Office.ID,
		LocationName: res.Office.Name,
		Address:      s.geocoder.Reverse(ctx, p),
		Notes:        req.Notes,
	}

	var rec backend.AttendanceRecord
	if action == actionClockIn {
		rec, err = s.repo.ClockIn(ctx, backendReq)
	} else {
		rec, err = s.repo.ClockOut(ctx, backendReq)
	}
	if err != nil {
		log.Warn("backend rejected clock action", zap.String("action", action), zap.Error(err))
		return ClockResponse{}, err
	}

	out := ClockResponse{
		Record:   mapToResponse(rec, s.worktime.Current()),
		Geofence: res,
	}
	if st, err := s.syncTimer(ctx, action, userID, rec, res.Office); err == nil {
		out.Timer = &st
	} else if !errors.Is(err, timererrors.ErrNotRunning) {
		log.Warn("timer update failed", zap.String("action", action), zap.Error(err))
	}

	s.publishRecorded(ctx, action, userID, p, rec, res)
	log.Info("clock action recorded",
		zap.String("action", action),
		zap.String("user_id", userID),
		zap.String("record_id", rec.ID),
		zap.String("office", res.Office.Name),
	)
	return out, nil
}

func (s *service) evaluate(ctx context.Context, action string, req ClockRequest) (geofence.Result, error) {
	p := req.point()
	if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
		return geofence.Result{}, attendanceerrors.ErrInvalidCoordinates
	}

	res, ok := geofence.EvaluateNearest(p, s.locations.Locations(ctx))
	if !ok {
		return geofence.Result{}, worklocationerrors.ErrNoLocationsConfigured
	}
	s.metrics.ObserveGeofence(action, res.IsWithinOffice)
	return res, nil
}

func (s *service) syncTimer(ctx context.Context, action, userID string, rec backend.AttendanceRecord, office worklocation.WorkLocation) (timer.StatusResponse, error) {
	if s.timer == nil {
		return timer.StatusResponse{}, timererrors.ErrNotRunning
	}
	if action == actionClockIn {
		at := rec.ClockIn
		if at.IsZero() {
			at = s.now()
		}
		return s.timer.Start(ctx, userID, at, office.ID, office.Name)
	}
	at := s.now()
	if rec.ClockOut != nil {
		at = *rec.ClockOut
	}
	return s.timer.Stop(ctx, userID, at)
}

func (s *service) GetByDate(ctx context.Context, userID, date string) ([]AttendanceResponse, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}

	rows, err := s.repo.AttendanceByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return s.mapAll(rows), nil
}

func (s *service) GetRange(ctx context.Context, userID, from, to string) ([]AttendanceResponse, error) {
	f, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	t, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	if f.After(t) {
		return nil, attendanceerrors.ErrInvalidRange
	}

	rows, err := s.repo.AttendanceRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return s.mapAll(rows), nil
}

func (s *service) mapAll(rows []backend.AttendanceRecord) []AttendanceResponse {
	cfg := s.worktime.Current()
	out := make([]AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r, cfg))
	}
	return out
}

func (s *service) publishRecorded(ctx context.Context, action, userID string, p geofence.Point, rec backend.AttendanceRecord, res geofence.Result) {
	s.publish(ctx, userID, events.AttendanceRecordedType, events.AttendanceRecordedEvent{
		EventID:      uuid.NewString(),
		EventType:    events.AttendanceRecordedType,
		Action:       action,
		UserID:       userID,
		RecordID:     rec.ID,
		LocationID:   res.Office.ID,
		LocationName: res.Office.Name,
		Distance:     res.Distance,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		RequestID:    contextutil.GetRequestID(ctx),
		OccurredAt:   s.now().UTC(),
	})
}

func (s *service) publishRejected(ctx context.Context, action, userID string, p geofence.Point, res geofence.Result) {
	s.publish(ctx, userID, events.AttendanceGeofenceRejectedType, events.GeofenceRejectedEvent{
		EventID:      uuid.NewString(),
		EventType:    events.AttendanceGeofenceRejectedType,
		Action:       action,
		UserID:       userID,
		LocationName: res.Office.Name,
		Distance:     res.Distance,
		Radius:       res.Office.Radius,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		RequestID:    contextutil.GetRequestID(ctx),
		OccurredAt:   s.now().UTC(),
	})
}

func (s *service) publish(ctx context.Context, userID, eventType string, payload any) {
	event, err := kafka.NewEvent(events.AttendanceTopic, userID, eventType, contextutil.GetRequestID(ctx), payload)
	if err == nil {
		err = s.publisher.Publish(ctx, event)
	}
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("publish attendance event failed",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func mapToResponse(r backend.AttendanceRecord, cfg worktime.WorkTimeConfig) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		UserName:       r.UserName,
		Date:           r.Date,
		ClockIn:        cfg.Local(r.ClockIn).Format(time.RFC3339),
		ClockInDisplay: cfg.FormatClock(r.ClockIn),
		LocationName:   r.LocationName,
		Address:        r.Address,
		Status:         r.Status,
		Notes:          r.Notes,
	}

	end := r.ClockIn
	if r.ClockOut != nil {
		end = *r.ClockOut
		v := cfg.Local(*r.ClockOut).Format(time.RFC3339)
		resp.ClockOut = &v
		resp.ClockOutDisplay = cfg.FormatClock(*r.ClockOut)
	}

	day := worktime.Evaluate(cfg, r.ClockIn, end, worktime.RecordedBreaks(cfg, end.Sub(r.ClockIn)))
	resp.IsLate = day.IsLate
	resp.LateMinutes = day.LateMinutes
	if r.ClockOut != nil {
		resp.WorkedHours = day.WorkedHours
		resp.OvertimeHours = day.OvertimeHours
	}
	return resp
}
