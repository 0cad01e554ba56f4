package attendance

import (
	"context"

	"go-attendance/internal/backend"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock

// Repository is where attendance records live: the backend.
type Repository interface {
	ClockIn(ctx context.Context, req backend.ClockRequest) (backend.AttendanceRecord, error)
	ClockOut(ctx context.Context, req backend.ClockRequest) (backend.AttendanceRecord, error)
	AttendanceByDate(ctx context.Context, userID, date string) ([]backend.AttendanceRecord, error)
	AttendanceRange(ctx context.Context, userID, from, to string) ([]backend.AttendanceRecord, error)
}
