package worktime

import (
	"time"

	worktimeerrors "go-attendance/internal/worktime/errors"
)

// WorkTimeConfig is the work-schedule policy. Times are HH:MM (24-hour),
// durations in minutes, WeekendDays uses time.Weekday numbering (Sunday=0).
type WorkTimeConfig struct {
	StandardStartTime    string  `json:"standardStartTime" binding:"required,hhmm"`
	StandardEndTime      string  `json:"standardEndTime" binding:"required,hhmm"`
	FullWorkingHours     float64 `json:"fullWorkingHours" binding:"gt=0"`
	LunchBreakDuration   int     `json:"lunchBreakDuration" binding:"min=0"`
	ShortBreakDuration   int     `json:"shortBreakDuration" binding:"min=0"`
	LateThresholdMinutes int     `json:"lateThresholdMinutes" binding:"min=0"`
	OvertimeAfterHours   float64 `json:"overtimeAfterHours" binding:"gt=0"`
	WeekendDays          []int   `json:"weekendDays" binding:"dive,min=0,max=6"`
	Use24HourFormat      bool    `json:"use24HourFormat"`
	ShowSeconds          bool    `json:"showSeconds"`

	// loc is the office timezone the HH:MM schedule is written in. It is
	// not part of the backend payload; nil keeps each timestamp's own zone.
	loc *time.Location
}

// In returns a copy of c whose schedule is read in loc.
func (c WorkTimeConfig) In(loc *time.Location) WorkTimeConfig {
	c.loc = loc
	return c
}

// Local converts t to the schedule timezone.
func (c WorkTimeConfig) Local(t time.Time) time.Time {
	if c.loc == nil {
		return t
	}
	return t.In(c.loc)
}

// Default is served until the backend has answered once.
func Default() WorkTimeConfig {
	return WorkTimeConfig{
		StandardStartTime:    "09:00",
		StandardEndTime:      "17:00",
		FullWorkingHours:     8,
		LunchBreakDuration:   60,
		ShortBreakDuration:   15,
		LateThresholdMinutes: 15,
		OvertimeAfterHours:   8,
		WeekendDays:          []int{0, 6},
		Use24HourFormat:      true,
		ShowSeconds:          false,
	}
}

// Validate checks every field on its own. Start/end ordering and the
// overtime/full-hours relation are not checked against each other.
func (c WorkTimeConfig) Validate() error {
	if _, err := time.Parse(clockLayout, c.StandardStartTime); err != nil {
		return worktimeerrors.ErrInvalidStartTime
	}
	if _, err := time.Parse(clockLayout, c.StandardEndTime); err != nil {
		return worktimeerrors.ErrInvalidEndTime
	}
	if !(c.FullWorkingHours > 0) || !(c.OvertimeAfterHours > 0) {
		return worktimeerrors.ErrInvalidHours
	}
	if c.LunchBreakDuration < 0 || c.ShortBreakDuration < 0 || c.LateThresholdMinutes < 0 {
		return worktimeerrors.ErrInvalidMinutes
	}
	for _, d := range c.WeekendDays {
		if d < 0 || d > 6 {
			return worktimeerrors.ErrInvalidWeekendDay
		}
	}
	return nil
}

func (c WorkTimeConfig) IsWeekend(day time.Weekday) bool {
	for _, d := range c.WeekendDays {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}

const clockLayout = "15:04"

// StartOn returns the scheduled start on the schedule-local calendar day of t.
func (c WorkTimeConfig) StartOn(t time.Time) time.Time {
	return atClock(c.Local(t), c.StandardStartTime)
}

// EndOn returns the scheduled end on the schedule-local calendar day of t.
func (c WorkTimeConfig) EndOn(t time.Time) time.Time {
	return atClock(c.Local(t), c.StandardEndTime)
}

func atClock(day time.Time, hhmm string) time.Time {
	clock, err := time.Parse(clockLayout, hhmm)
	if err != nil {
		clock = time.Time{}
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, day.Location())
}

// FormatClock renders t the way the dashboards display times.
func (c WorkTimeConfig) FormatClock(t time.Time) string {
	layout := "03:04 PM"
	if c.ShowSeconds {
		layout = "03:04:05 PM"
	}
	if c.Use24HourFormat {
		layout = "15:04"
		if c.ShowSeconds {
			layout = "15:04:05"
		}
	}
	return c.Local(t).Format(layout)
}
