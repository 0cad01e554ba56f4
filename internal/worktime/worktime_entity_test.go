package worktime

import (
	"testing"
	"time"

	worktimeerrors "go-attendance/internal/worktime/errors"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "09:00", cfg.StandardStartTime)
	assert.Equal(t, "17:00", cfg.StandardEndTime)
	assert.Equal(t, 8.0, cfg.FullWorkingHours)
	assert.Equal(t, 60, cfg.LunchBreakDuration)
	assert.Equal(t, 15, cfg.ShortBreakDuration)
	assert.Equal(t, 15, cfg.LateThresholdMinutes)
	assert.Equal(t, 8.0, cfg.OvertimeAfterHours)
	assert.Equal(t, []int{0, 6}, cfg.WeekendDays)
	assert.True(t, cfg.Use24HourFormat)
	assert.False(t, cfg.ShowSeconds)
	assert.NoError(t, cfg.Validate())
}

func TestWorkTimeConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *WorkTimeConfig)
		err    error
	}{
		{"bad start", func(c *WorkTimeConfig) { c.StandardStartTime = "9am" }, worktimeerrors.ErrInvalidStartTime},
		{"bad end", func(c *WorkTimeConfig) { c.StandardEndTime = "25:00" }, worktimeerrors.ErrInvalidEndTime},
		{"zero hours", func(c *WorkTimeConfig) { c.FullWorkingHours = 0 }, worktimeerrors.ErrInvalidHours},
		{"negative overtime", func(c *WorkTimeConfig) { c.OvertimeAfterHours = -1 }, worktimeerrors.ErrInvalidHours},
		{"negative lunch", func(c *WorkTimeConfig) { c.LunchBreakDuration = -5 }, worktimeerrors.ErrInvalidMinutes},
		{"weekend out of range", func(c *WorkTimeConfig) { c.WeekendDays = []int{7} }, worktimeerrors.ErrInvalidWeekendDay},
		{"end before start is accepted", func(c *WorkTimeConfig) { c.StandardStartTime, c.StandardEndTime = "18:00", "08:00" }, nil},
		{"overtime below full hours is accepted", func(c *WorkTimeConfig) { c.OvertimeAfterHours = 4 }, nil},
		{"no weekend", func(c *WorkTimeConfig) { c.WeekendDays = nil }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestWorkTimeConfig_IsWeekend(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.IsWeekend(time.Sunday))
	assert.True(t, cfg.IsWeekend(time.Saturday))
	assert.False(t, cfg.IsWeekend(time.Friday))

	cfg.WeekendDays = []int{5}
	assert.True(t, cfg.IsWeekend(time.Friday))
}

func TestWorkTimeConfig_StartEndOn(t *testing.T) {
	loc := time.FixedZone("LKT", 5*3600+1800)
	day := time.Date(2024, 1, 3, 13, 45, 0, 0, loc)
	cfg := Default()

	assert.Equal(t, time.Date(2024, 1, 3, 9, 0, 0, 0, loc), cfg.StartOn(day))
	assert.Equal(t, time.Date(2024, 1, 3, 17, 0, 0, 0, loc), cfg.EndOn(day))
}

func TestWorkTimeConfig_FormatClock(t *testing.T) {
	at := time.Date(2024, 1, 3, 14, 5, 9, 0, time.UTC)

	cfg := Default()
	assert.Equal(t, "14:05", cfg.FormatClock(at))

	cfg.ShowSeconds = true
	assert.Equal(t, "14:05:09", cfg.FormatClock(at))

	cfg.Use24HourFormat = false
	assert.Equal(t, "02:05:09 PM", cfg.FormatClock(at))

	cfg.ShowSeconds = false
	assert.Equal(t, "02:05 PM", cfg.FormatClock(at))
}

func TestEvaluate(t *testing.T) {
	cfg := Default()
	wed := func(h, m int) time.Time { return time.Date(2024, 1, 3, h, m, 0, 0, time.UTC) }

	t.Run("late with overtime", func(t *testing.T) {
		st := Evaluate(cfg, wed(9, 20), wed(18, 30), time.Hour)

		assert.True(t, st.IsLate)
		assert.Equal(t, 20, st.LateMinutes)
		assert.Equal(t, 8.17, st.WorkedHours)
		assert.Equal(t, 0.0, st.RemainingHours)
		assert.True(t, st.IsOvertime)
		assert.Equal(t, 0.17, st.OvertimeHours)
		assert.False(t, st.IsWeekend)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		st := Evaluate(cfg, wed(9, 15), wed(12, 15), 0)

		assert.False(t, st.IsLate)
		assert.Equal(t, 0, st.LateMinutes)
		assert.Equal(t, 3.0, st.WorkedHours)
		assert.Equal(t, 5.0, st.RemainingHours)
		assert.False(t, st.IsOvertime)
	})

	t.Run("breaks longer than shift", func(t *testing.T) {
		st := Evaluate(cfg, wed(9, 0), wed(9, 30), time.Hour)
		assert.Equal(t, 0.0, st.WorkedHours)
		assert.Equal(t, 8.0, st.RemainingHours)
	})

	t.Run("weekend", func(t *testing.T) {
		sat := time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)
		st := Evaluate(cfg, sat, sat.Add(2*time.Hour), 0)
		assert.True(t, st.IsWeekend)
	})
}

func TestEvaluate_ScheduleTimezone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	cfg := Default().In(ist)

	// 10:30 in the office arrives from the backend as 05:00 UTC.
	clockIn := time.Date(2024, 1, 3, 10, 30, 0, 0, ist).UTC()

	st := Evaluate(cfg, clockIn, clockIn.Add(time.Hour), 0)
	assert.True(t, st.IsLate)
	assert.Equal(t, 90, st.LateMinutes)
	assert.Equal(t, "10:30", cfg.FormatClock(clockIn))
	assert.Equal(t, time.Date(2024, 1, 3, 9, 0, 0, 0, ist), cfg.StartOn(clockIn))

	t.Run("weekend follows the office calendar day", func(t *testing.T) {
		// Saturday 01:00 in the office is still Friday in UTC.
		sat := time.Date(2024, 1, 6, 1, 0, 0, 0, ist).UTC()
		assert.Equal(t, time.Friday, sat.Weekday())
		assert.True(t, Evaluate(cfg, sat, sat.Add(time.Hour), 0).IsWeekend)
	})

	t.Run("without a zone the timestamp zone is used", func(t *testing.T) {
		st := Evaluate(Default(), clockIn, clockIn.Add(time.Hour), 0)
		assert.False(t, st.IsLate)
		assert.Equal(t, "05:00", Default().FormatClock(clockIn))
	})
}

func TestRecordedBreaks(t *testing.T) {
	cfg := Default()

	assert.Equal(t, time.Duration(0), RecordedBreaks(cfg, 3*time.Hour))
	assert.Equal(t, time.Duration(0), RecordedBreaks(cfg, 4*time.Hour))
	assert.Equal(t, time.Hour, RecordedBreaks(cfg, 9*time.Hour))

	cfg.LunchBreakDuration = 30
	assert.Equal(t, 30*time.Minute, RecordedBreaks(cfg, 8*time.Hour))
}
