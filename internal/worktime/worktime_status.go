package worktime

import (
	"math"
	"time"
)

// DayStatus is what the status badges show for one working day.
type DayStatus struct {
	IsLate         bool    `json:"isLate"`
	LateMinutes    int     `json:"lateMinutes"`
	WorkedHours    float64 `json:"workedHours"`
	RemainingHours float64 `json:"remainingHours"`
	OvertimeHours  float64 `json:"overtimeHours"`
	IsOvertime     bool    `json:"isOvertime"`
	IsWeekend      bool    `json:"isWeekend"`
}

// Evaluate computes the day status of a shift that started at clockIn and
// ended (or is observed) at end, excluding breaks.
//
// Late is measured from the scheduled start; the threshold only decides
// whether it counts.
func Evaluate(cfg WorkTimeConfig, clockIn, end time.Time, breaks time.Duration) DayStatus {
	var st DayStatus

	start := cfg.StartOn(clockIn)
	grace := start.Add(time.Duration(cfg.LateThresholdMinutes) * time.Minute)
	if clockIn.After(grace) {
		st.IsLate = true
		st.LateMinutes = int(clockIn.Sub(start) / time.Minute)
	}

	worked := end.Sub(clockIn) - breaks
	if worked < 0 {
		worked = 0
	}
	hours := worked.Hours()
	st.WorkedHours = round2(hours)
	st.RemainingHours = round2(math.Max(0, cfg.FullWorkingHours-hours))
	if hours > cfg.OvertimeAfterHours {
		st.IsOvertime = true
		st.OvertimeHours = round2(hours - cfg.OvertimeAfterHours)
	}
	st.IsWeekend = cfg.IsWeekend(cfg.Local(clockIn).Weekday())
	return st
}

// RecordedBreaks is the break time assumed for a finished backend record,
// which carries no break timestamps: the lunch break, once the shift is
// longer than half a working day.
func RecordedBreaks(cfg WorkTimeConfig, span time.Duration) time.Duration {
	halfDay := time.Duration(cfg.FullWorkingHours * float64(time.Hour) / 2)
	if span <= halfDay {
		return 0
	}
	return time.Duration(cfg.LunchBreakDuration) * time.Minute
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
