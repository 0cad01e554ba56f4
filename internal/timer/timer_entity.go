package timer

import (
	"time"

	"go-attendance/internal/kvstore"
)

// State is the in-progress shift of one user. It is cleared on clock-out.
type State struct {
	UserID       string        `json:"user_id"`
	ClockIn      time.Time     `json:"clock_in"`
	BreakStart   *time.Time    `json:"break_start,omitempty"`
	BreakTotal   time.Duration `json:"break_total"`
	BreakCount   int           `json:"break_count"`
	LocationID   string        `json:"location_id,omitempty"`
	LocationName string        `json:"location_name,omitempty"`
}

func (s State) OnBreak() bool {
	return s.BreakStart != nil
}

// BreaksAt is the total break time as of now, counting an open break.
func (s State) BreaksAt(now time.Time) time.Duration {
	total := s.BreakTotal
	if s.BreakStart != nil && now.After(*s.BreakStart) {
		total += now.Sub(*s.BreakStart)
	}
	return total
}

func StateKey(userID string) kvstore.Key[State] {
	return kvstore.NewKey[State]("timer:" + userID)
}
