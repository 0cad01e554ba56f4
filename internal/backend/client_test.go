package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/worklocation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ForwardsTokenAndDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer backend-token", r.Header.Get("Authorization"))
		assert.Equal(t, "rid-1", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "/api/work-locations", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []worklocation.WorkLocation{{ID: "loc-1", Name: "HQ", Latitude: 6.9, Longitude: 79.8, Radius: 80}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, nil)
	ctx := contextutil.WithBackendToken(context.Background(), "backend-token")
	ctx = contextutil.WithRequestID(ctx, "rid-1")

	locs, err := c.ListWorkLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "HQ", locs[0].Name)
	assert.Equal(t, 80.0, locs[0].Radius)
}

func TestClient_DecodesBarePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-05-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-05-31", r.URL.Query().Get("to"))
		assert.Equal(t, "u-1", r.URL.Query().Get("userId"))
		_, _ = w.Write([]byte(`[{"id":"a1","userId":"u-1","date":"2026-05-02","clockIn":"2026-05-02T03:30:00Z"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	recs, err := c.AttendanceRange(context.Background(), "u-1", "2026-05-01", "2026-05-31")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 3, recs[0].ClockIn.Hour())
	assert.Nil(t, recs[0].ClockOut)
}

func TestClient_BackendMessagesAreVerbatim(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		code   string
		msg    string
		http   int
	}{
		{"validation", http.StatusUnprocessableEntity, `{"message":"Password must be at least 8 characters"}`, apperror.CodeInvalidInput, "Password must be at least 8 characters", http.StatusUnprocessableEntity},
		{"unauthorized", http.StatusUnauthorized, `{"error":"Token expired"}`, apperror.CodeUnauthorized, "Token expired", http.StatusUnauthorized},
		{"nested", http.StatusConflict, `{"error":{"message":"Already clocked in today"}}`, apperror.CodeConflict, "Already clocked in today", http.StatusConflict},
		{"server", http.StatusInternalServerError, `oops`, apperror.CodeUpstreamError, "oops", http.StatusBadGateway},
		{"empty not found", http.StatusNotFound, ``, apperror.CodeNotFound, apperror.ErrNotFound.Message, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL, time.Second, nil).DeleteUser(context.Background(), "u/1")
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.msg, appErr.Message)
			assert.Equal(t, tc.http, appErr.HTTPStatus)
		})
	}
}

func TestClient_LongPlainMessageKeepsWholeRunes(t *testing.T) {
	// "ශ" is three bytes, so 200 bytes falls inside a rune.
	body := "x" + strings.Repeat("ශ", 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second, nil).DeleteUser(context.Background(), "u-1")
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, utf8.ValidString(appErr.Message))
	assert.LessOrEqual(t, len(appErr.Message), maxPlainMessage)
	assert.Equal(t, "x"+strings.Repeat("ශ", 66), appErr.Message)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "a", truncate("aé", 2))
	assert.Equal(t, "", truncate("é", 1))
}

func TestClient_TransportFailureIsServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second, nil).GetWorkTimeConfig(context.Background())
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeServiceUnavailable, appErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
}

func TestClient_PathIsEscaped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/a%2Fb/reset-password", r.URL.EscapedPath())
		var body ResetPasswordRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "n3w-passw0rd", body.NewPassword)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second, nil).ResetPassword(context.Background(), "a/b", ResetPasswordRequest{NewPassword: "n3w-passw0rd"})
	assert.NoError(t, err)
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(statusError(http.StatusUnauthorized, nil)))
	assert.False(t, IsUnauthorized(statusError(http.StatusForbidden, nil)))
	assert.False(t, IsUnauthorized(errors.New("x")))
}
