package leave

import (
	"context"
	"strings"
	"time"

	"go-attendance/internal/backend"
	leaveerrors "go-attendance/internal/leave/errors"
	"go-attendance/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"

	TypeAnnual = "ANNUAL"
	TypeSick   = "SICK"
	TypeUnpaid = "UNPAID"

	dateLayout = "2006-01-02"
)

// Repository is where leave requests live: the backend.
type Repository interface {
	CreateLeave(ctx context.Context, req backend.CreateLeaveRequest) (backend.Leave, error)
	ListLeaves(ctx context.Context, userID string) ([]backend.Leave, error)
	UpdateLeave(ctx context.Context, id string, req backend.UpdateLeaveRequest) (backend.Leave, error)
}

type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	// GetAll lists leaves of userID, or of everyone when userID is empty.
	GetAll(ctx context.Context, userID, status string) ([]LeaveResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave requested",
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	leaveType := strings.ToUpper(strings.TrimSpace(req.LeaveType))
	switch leaveType {
	case TypeAnnual, TypeSick, TypeUnpaid:
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	row, err := s.repo.CreateLeave(ctx, backend.CreateLeaveRequest{
		LeaveType: leaveType,
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Reason:    strings.TrimSpace(req.Reason),
	})
	if err != nil {
		log.Warn("create leave failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("leave created", zap.String("leave_id", row.ID), zap.String("leave_type", leaveType))
	return mapToResponse(row), nil
}

func (s *service) GetAll(ctx context.Context, userID, status string) ([]LeaveResponse, error) {
	rows, err := s.repo.ListLeaves(ctx, userID)
	if err != nil {
		return nil, err
	}

	status = strings.ToUpper(status)
	out := make([]LeaveResponse, 0, len(rows))
	for _, row := range rows {
		if status != "" && !strings.EqualFold(row.Status, status) {
			continue
		}
		out = append(out, mapToResponse(row))
	}
	return out, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	reason := strings.TrimSpace(req.RejectionReason)
	switch status {
	case StatusApproved:
		reason = ""
	case StatusRejected:
		if reason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	row, err := s.repo.UpdateLeave(ctx, id, backend.UpdateLeaveRequest{Status: status, RejectionReason: reason})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("update leave failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave status updated", zap.String("leave_id", id), zap.String("status", status))
	return mapToResponse(row), nil
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

// totalDays counts calendar days inclusive of both ends; 0 when unparsable.
func totalDays(startStr, endStr string) int {
	start, end, err := parseDateRange(startStr, endStr)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func mapToResponse(l backend.Leave) LeaveResponse {
	return LeaveResponse{
		ID:              l.ID,
		UserID:          l.UserID,
		UserName:        l.UserName,
		LeaveType:       l.LeaveType,
		StartDate:       l.StartDate,
		EndDate:         l.EndDate,
		TotalDays:       totalDays(l.StartDate, l.EndDate),
		Reason:          l.Reason,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
	}
}
