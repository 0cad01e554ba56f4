package attendanceerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrOutsideGeofence = apperror.New(
		apperror.CodeOutsideGeofence,
		"You are outside the allowed work location",
		http.StatusForbidden,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must not be after to",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = apperror.New(
		apperror.CodeInvalidInput,
		"latitude must be within [-90, 90] and longitude within [-180, 180]",
		http.StatusBadRequest,
	)
)
