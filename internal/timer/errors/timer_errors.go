package timererrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrNotRunning = apperror.New(
		apperror.CodeInvalidState,
		"No shift in progress, clock in first",
		http.StatusConflict,
	)
	ErrAlreadyOnBreak = apperror.New(
		apperror.CodeInvalidState,
		"A break is already in progress",
		http.StatusConflict,
	)
	ErrNotOnBreak = apperror.New(
		apperror.CodeInvalidState,
		"No break in progress",
		http.StatusConflict,
	)
)
