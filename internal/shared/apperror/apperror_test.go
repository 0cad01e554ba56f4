package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-attendance/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
	StartTime   string `json:"start_time" validate:"hhmm"`
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", apperror.ErrForbidden)
		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusForbidden, got.Status)
		assert.Equal(t, apperror.CodeForbidden, got.Code)
	})

	t.Run("unknown error hides message", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.ErrInternal.Message, got.Message)
	})

	t.Run("details survive copy", func(t *testing.T) {
		err := apperror.ErrNotFound.WithDetails(map[string]string{"id": "x"})
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
		assert.Nil(t, apperror.ErrNotFound.Details)
		assert.NotNil(t, apperror.ToHTTP(err).Details)
	})
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	apperror.RegisterValidations(v)

	err := v.Struct(sample{StartTime: "09:00"})
	got := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Equal(t, "New Password is required", got.Message)

	err = v.Struct(sample{NewPassword: "longenough", StartTime: "25:00"})
	got = apperror.ToHTTP(err)
	assert.Equal(t, "Start Time is invalid", got.Message)
}
