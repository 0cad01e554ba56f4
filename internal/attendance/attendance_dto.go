package attendance

import (
	"go-attendance/internal/geofence"
	"go-attendance/internal/timer"
)

type LocationCheckRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type ClockRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Accuracy  *float64 `json:"accuracy" binding:"omitempty,min=0"`
	Notes     string   `json:"notes" binding:"max=500"`
}

func (r ClockRequest) point() geofence.Point {
	var p geofence.Point
	if r.Latitude != nil {
		p.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		p.Longitude = *r.Longitude
	}
	return p
}

type DateQuery struct {
	Date   string `form:"date" binding:"required"`
	UserID string `form:"user_id"`
}

type RangeQuery struct {
	From     string `form:"from" binding:"required"`
	To       string `form:"to" binding:"required"`
	UserID   string `form:"user_id"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type AttendanceResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	UserName        string  `json:"userName,omitempty"`
	Date            string  `json:"date"`
	ClockIn         string  `json:"clockIn"`
	ClockInDisplay  string  `json:"clockInDisplay"`
	ClockOut        *string `json:"clockOut,omitempty"`
	ClockOutDisplay string  `json:"clockOutDisplay,omitempty"`
	LocationName    string  `json:"locationName,omitempty"`
	Address         string  `json:"address,omitempty"`
	Status          string  `json:"status,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	IsLate          bool    `json:"isLate"`
	LateMinutes     int     `json:"lateMinutes"`
	WorkedHours     float64 `json:"workedHours,omitempty"`
	OvertimeHours   float64 `json:"overtimeHours,omitempty"`
}

// ClockResponse is returned by clock-in and clock-out.
type ClockResponse struct {
	Record   AttendanceResponse    `json:"record"`
	Geofence geofence.Result       `json:"geofence"`
	Timer    *timer.StatusResponse `json:"timer,omitempty"`
}
