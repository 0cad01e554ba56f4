package worklocationerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"location name is required",
		http.StatusBadRequest,
	)
	ErrInvalidLatitude = apperror.New(
		apperror.CodeInvalidInput,
		"latitude must be between -90 and 90",
		http.StatusBadRequest,
	)
	ErrInvalidLongitude = apperror.New(
		apperror.CodeInvalidInput,
		"longitude must be between -180 and 180",
		http.StatusBadRequest,
	)
	ErrInvalidRadius = apperror.New(
		apperror.CodeInvalidInput,
		"radius must be greater than 0 meters",
		http.StatusBadRequest,
	)
	ErrInvalidLocationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid work location id",
		http.StatusBadRequest,
	)
	ErrNoLocationsConfigured = apperror.New(
		apperror.CodeInvalidState,
		"no work location is configured",
		http.StatusConflict,
	)
)
