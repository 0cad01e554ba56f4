package events

import "time"

const (
	AttendanceTopic = "attendance.clock.v1"

	AttendanceRecordedType         = "attendance.recorded"
	AttendanceGeofenceRejectedType = "attendance.geofence_rejected"
)

// AttendanceRecordedEvent is published after the backend accepted a clock action.
type AttendanceRecordedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	Action       string    `json:"action"`
	UserID       string    `json:"user_id"`
	RecordID     string    `json:"record_id"`
	LocationID   string    `json:"location_id,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	Distance     float64   `json:"distance"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RequestID    string    `json:"request_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// GeofenceRejectedEvent is published when a clock action was refused for
// being outside every work location.
type GeofenceRejectedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	Action       string    `json:"action"`
	UserID       string    `json:"user_id"`
	LocationName string    `json:"location_name,omitempty"`
	Distance     float64   `json:"distance"`
	Radius       float64   `json:"radius"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RequestID    string    `json:"request_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
