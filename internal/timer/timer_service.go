package timer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-attendance/internal/kvstore"
	timererrors "go-attendance/internal/timer/errors"
	"go-attendance/internal/worktime"

	"go.uber.org/zap"
)

// stateTTL drops shifts nobody clocked out of.
const stateTTL = 36 * time.Hour

// WorkTime is the schedule source; worktime.Service satisfies it.
type WorkTime interface {
	Current() worktime.WorkTimeConfig
}

type Service interface {
	Start(ctx context.Context, userID string, clockIn time.Time, locationID, locationName string) (StatusResponse, error)
	StartBreak(ctx context.Context, userID string) (StatusResponse, error)
	EndBreak(ctx context.Context, userID string) (StatusResponse, error)
	// Stop returns the final status of the shift and clears it.
	Stop(ctx context.Context, userID string, at time.Time) (StatusResponse, error)
	Get(ctx context.Context, userID string) (StatusResponse, error)
}

type service struct {
	store    kvstore.Store
	worktime WorkTime
	now      func() time.Time
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(store kvstore.Store, wt WorkTime, logger ...*zap.Logger) Service {
	l := zap.L().Named("timer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timer.service")
	}
	return &service{store: store, worktime: wt, now: time.Now, logger: l}
}

func (s *service) Start(ctx context.Context, userID string, clockIn time.Time, locationID, locationName string) (StatusResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		UserID:       userID,
		ClockIn:      clockIn,
		LocationID:   locationID,
		LocationName: locationName,
	}
	if err := kvstore.Save(ctx, s.store, StateKey(userID), st, stateTTL); err != nil {
		return StatusResponse{}, err
	}
	return s.status(st, s.now()), nil
}

func (s *service) StartBreak(ctx context.Context, userID string) (StatusResponse, error) {
	return s.update(ctx, userID, func(st *State, now time.Time) error {
		if st.OnBreak() {
			return timererrors.ErrAlreadyOnBreak
		}
		st.BreakStart = &now
		st.BreakCount++
		return nil
	})
}

func (s *service) EndBreak(ctx context.Context, userID string) (StatusResponse, error) {
	return s.update(ctx, userID, func(st *State, now time.Time) error {
		if !st.OnBreak() {
			return timererrors.ErrNotOnBreak
		}
		st.BreakTotal = st.BreaksAt(now)
		st.BreakStart = nil
		return nil
	})
}

func (s *service) Stop(ctx context.Context, userID string, at time.Time) (StatusResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, userID)
	if err != nil {
		return StatusResponse{}, err
	}
	st.BreakTotal = st.BreaksAt(at)
	st.BreakStart = nil

	if err := kvstore.Clear(ctx, s.store, StateKey(userID)); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return StatusResponse{}, err
	}

	res := s.status(st, at)
	res.Running = false
	return res, nil
}

func (s *service) Get(ctx context.Context, userID string) (StatusResponse, error) {
	st, err := s.load(ctx, userID)
	if errors.Is(err, timererrors.ErrNotRunning) {
		return StatusResponse{}, nil
	}
	if err != nil {
		return StatusResponse{}, err
	}
	return s.status(st, s.now()), nil
}

func (s *service) update(ctx context.Context, userID string, fn func(st *State, now time.Time) error) (StatusResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, userID)
	if err != nil {
		return StatusResponse{}, err
	}
	now := s.now()
	if err := fn(&st, now); err != nil {
		return StatusResponse{}, err
	}
	if err := kvstore.Save(ctx, s.store, StateKey(userID), st, stateTTL); err != nil {
		return StatusResponse{}, err
	}
	return s.status(st, now), nil
}

func (s *service) load(ctx context.Context, userID string) (State, error) {
	st, err := kvstore.Load(ctx, s.store, StateKey(userID))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return State{}, timererrors.ErrNotRunning
		}
		s.logger.Error("load timer state failed", zap.String("user_id", userID), zap.Error(err))
		return State{}, err
	}
	return st, nil
}

func (s *service) status(st State, now time.Time) StatusResponse {
	cfg := s.worktime.Current()
	breaks := st.BreaksAt(now)
	elapsed := now.Sub(st.ClockIn)
	if elapsed < 0 {
		elapsed = 0
	}
	worked := elapsed - breaks
	if worked < 0 {
		worked = 0
	}
	day := worktime.Evaluate(cfg, st.ClockIn, now, breaks)
	clockIn := st.ClockIn

	return StatusResponse{
		Running:        true,
		OnBreak:        st.OnBreak(),
		ClockIn:        &clockIn,
		ClockInDisplay: cfg.FormatClock(st.ClockIn),
		ElapsedSeconds: int64(elapsed / time.Second),
		WorkedSeconds:  int64(worked / time.Second),
		BreakSeconds:   int64(breaks / time.Second),
		BreakCount:     st.BreakCount,
		LocationName:   st.LocationName,
		Day:            &day,
	}
}
