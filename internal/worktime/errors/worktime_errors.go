package worktimeerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrInvalidStartTime = apperror.New(
		apperror.CodeInvalidInput,
		"standardStartTime must be HH:MM (24-hour)",
		http.StatusBadRequest,
	)
	ErrInvalidEndTime = apperror.New(
		apperror.CodeInvalidInput,
		"standardEndTime must be HH:MM (24-hour)",
		http.StatusBadRequest,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"fullWorkingHours and overtimeAfterHours must be positive",
		http.StatusBadRequest,
	)
	ErrInvalidMinutes = apperror.New(
		apperror.CodeInvalidInput,
		"break durations and late threshold must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidWeekendDay = apperror.New(
		apperror.CodeInvalidInput,
		"weekendDays must contain values between 0 (Sunday) and 6 (Saturday)",
		http.StatusBadRequest,
	)
)
