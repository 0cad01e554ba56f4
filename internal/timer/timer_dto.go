package timer

import (
	"time"

	"go-attendance/internal/worktime"
)

type StatusResponse struct {
	Running        bool                `json:"running"`
	OnBreak        bool                `json:"onBreak"`
	ClockIn        *time.Time          `json:"clockIn,omitempty"`
	ClockInDisplay string              `json:"clockInDisplay,omitempty"`
	ElapsedSeconds int64               `json:"elapsedSeconds"`
	WorkedSeconds  int64               `json:"workedSeconds"`
	BreakSeconds   int64               `json:"breakSeconds"`
	BreakCount     int                 `json:"breakCount"`
	LocationName   string              `json:"locationName,omitempty"`
	Day            *worktime.DayStatus `json:"day,omitempty"`
}
