package backend

import (
	"context"
	"net/http"
	"net/url"

	"go-attendance/internal/worklocation"
	"go-attendance/internal/worktime"
)

// --- Auth ---

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, call{method: http.MethodPost, route: "/api/auth/login", path: "/api/auth/login", body: req, out: &out})
	return out, err
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, call{method: http.MethodGet, route: "/api/auth/me", path: "/api/auth/me", out: &out})
	return out, err
}

// --- Users ---

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, call{method: http.MethodGet, route: "/api/users", path: "/api/users", out: &out})
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (User, error) {
	var out User
	err := c.do(ctx, call{method: http.MethodPost, route: "/api/users", path: "/api/users", body: req, out: &out})
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, route: "/api/users/:id", path: "/api/users/" + url.PathEscape(id)})
}

func (c *Client) ResetPassword(ctx context.Context, id string, req ResetPasswordRequest) error {
	return c.do(ctx, call{
		method: http.MethodPost,
		route:  "/api/users/:id/reset-password",
		path:   "/api/users/" + url.PathEscape(id) + "/reset-password",
		body:   req,
	})
}

// --- Attendance ---

func (c *Client) ClockIn(ctx context.Context, req ClockRequest) (AttendanceRecord, error) {
	var out AttendanceRecord
	err := c.do(ctx, call{method: http.MethodPost, route: "/api/attendance/clock-in", path: "/api/attendance/clock-in", body: req, out: &out})
	return out, err
}

func (c *Client) ClockOut(ctx context.Context, req ClockRequest) (AttendanceRecord, error) {
	var out AttendanceRecord
	err := c.do(ctx, call{method: http.MethodPost, route: "/api/attendance/clock-out", path: "/api/attendance/clock-out", body: req, out: &out})
	return out, err
}

// AttendanceByDate lists records of one day; userID empty means all users
// the token may see.
func (c *Client) AttendanceByDate(ctx context.Context, userID, date string) ([]AttendanceRecord, error) {
	q := url.Values{"date": {date}}
	if userID != "" {
		q.Set("userId", userID)
	}
	var out []AttendanceRecord
	err := c.do(ctx, call{method: http.MethodGet, route: "/api/attendance", path: "/api/attendance", query: q, out: &out})
	return out, err
}

func (c *Client) AttendanceRange(ctx context.Context, userID, from, to string) ([]AttendanceRecord, error) {
	q := url.Values{"from": {from}, "to": {to}}
	if userID != "" {
		q.Set("userId", userID)
	}
	var out []AttendanceRecord
	err := c.do(ctx, call{method: http.MethodGet, route: "/api/attendance/range", path: "/api/attendance/range", query: q, out: &out})
	return out, err
}

// --- Leave ---

func (c *Client) CreateLeave(ctx context.Context, req CreateLeaveRequest) (Leave, error) {
	var out Leave
	err := c.do(ctx, call{method: http.MethodPost, route: "/api/leaves", path: "/api/leaves", body: req, out: &out})
	return out, err
}

func (c *Client) ListLeaves(ctx context.Context, userID string) ([]Leave, error) {
	var q url.Values
	if userID != "" {
		q = url.Values{"userId": {userID}}
	}
	var out []Leave
	err := c.do(ctx, call{method: http.MethodGet, route: "/api/leaves", path: "/api/leaves", query: q, out: &out})
	return out, err
}

func (c *Client) UpdateLeave(ctx context.Context, id string, req UpdateLeaveRequest) (Leave, error) {
	var out Leave
	err := c.do(ctx, call{method: http.MethodPut, route: "/api/leaves/:id", path: "/api/leaves/" + url.PathEscape(id), body: req, out: &out})
	return out, err
}

// --- Work locations ---

func (c *Client) ListWorkLocations(ctx context.Context) ([]worklocation.WorkLocation, error) {
	var out []worklocation.WorkLocation
	err := c.do(ctx, call{method: http.MethodGet, route: "/api/work-locations", path: "/api/work-locations", out: &out})
	return out, err
}

func (c *Client) CreateWorkLocation(ctx context.Context, loc worklocation.WorkLocation) (worklocation.WorkLocation, error) {
	var out worklocation.WorkLocation
	err := c.do(ctx, call{method: http.MethodPost, route: "/api/work-locations", path: "/api/work-locations", body: loc, out: &out})
	return out, err
}

func (c *Client) UpdateWorkLocation(ctx context.Context, id string, loc worklocation.WorkLocation) (worklocation.WorkLocation, error) {
	var out worklocation.WorkLocation
	err := c.do(ctx, call{
		method: http.MethodPut,
		route:  "/api/work-locations/:id",
		path:   "/api/work-locations/" + url.PathEscape(id),
		body:   loc,
		out:    &out,
	})
	return out, err
}

func (c *Client) DeleteWorkLocation(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, route: "/api/work-locations/:id", path: "/api/work-locations/" + url.PathEscape(id)})
}

// --- Work time configuration ---

func (c *Client) GetWorkTimeConfig(ctx context.Context) (worktime.WorkTimeConfig, error) {
	var out worktime.WorkTimeConfig
	err := c.do(ctx, call{method: http.MethodGet, route: "/api/work-time-config", path: "/api/work-time-config", out: &out})
	return out, err
}

func (c *Client) UpdateWorkTimeConfig(ctx context.Context, cfg worktime.WorkTimeConfig) (worktime.WorkTimeConfig, error) {
	var out worktime.WorkTimeConfig
	err := c.do(ctx, call{method: http.MethodPut, route: "/api/work-time-config", path: "/api/work-time-config", body: cfg, out: &out})
	return out, err
}
