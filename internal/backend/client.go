// Package backend is the typed client of the external attendance REST API.
// Every call forwards the session's bearer token found in the context and
// maps non-2xx answers to apperror values carrying the backend's message.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/metrics"

	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		metrics: m,
		logger:  zap.L().Named("backend.client"),
	}
}

// call describes one request. route is the path template used as metric label.
type call struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
	out    any
}

func (c *Client) do(ctx context.Context, cl call) error {
	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := contextutil.GetBackendToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	log := contextutil.GetLogger(ctx, c.logger)
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(cl.method, cl.route, "error", time.Since(started))
		log.Warn("backend request failed",
			zap.String("method", cl.method),
			zap.String("route", cl.route),
			zap.Error(err),
		)
		return apperror.Wrap(err, apperror.ErrServiceUnavailable.Code, apperror.ErrServiceUnavailable.Message, apperror.ErrServiceUnavailable.HTTPStatus)
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackend(cl.method, cl.route, strconv.Itoa(resp.StatusCode), time.Since(started))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrServiceUnavailable.Code, apperror.ErrServiceUnavailable.Message, apperror.ErrServiceUnavailable.HTTPStatus)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug("backend returned error",
			zap.String("method", cl.method),
			zap.String("route", cl.route),
			zap.Int("status", resp.StatusCode),
		)
		return statusError(resp.StatusCode, raw)
	}

	if cl.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return decodeBody(raw, cl.out)
}

// decodeBody accepts both bare payloads and {"data": ...} envelopes.
func decodeBody(raw []byte, out any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			raw = env.Data
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.Wrap(err, apperror.CodeUpstreamError, "unexpected response from backend", http.StatusBadGateway)
	}
	return nil
}

// statusError keeps the backend's own message so validation failures reach
// the user verbatim.
func statusError(status int, raw []byte) error {
	msg := extractMessage(raw)
	switch {
	case status == http.StatusUnauthorized:
		return apperror.New(apperror.CodeUnauthorized, orDefault(msg, apperror.ErrUnauthorized.Message), status)
	case status == http.StatusForbidden:
		return apperror.New(apperror.CodeForbidden, orDefault(msg, apperror.ErrForbidden.Message), status)
	case status == http.StatusNotFound:
		return apperror.New(apperror.CodeNotFound, orDefault(msg, apperror.ErrNotFound.Message), status)
	case status == http.StatusConflict:
		return apperror.New(apperror.CodeConflict, orDefault(msg, "request conflicts with current state"), status)
	case status == http.StatusTooManyRequests:
		return apperror.New(apperror.CodeTooManyRequests, orDefault(msg, "too many requests"), status)
	case status >= 400 && status < 500:
		return apperror.New(apperror.CodeInvalidInput, orDefault(msg, apperror.ErrInvalidInput.Message), status)
	default:
		return apperror.New(apperror.CodeUpstreamError, orDefault(msg, "backend error"), http.StatusBadGateway)
	}
}

func extractMessage(raw []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		text := strings.TrimSpace(string(raw))
		return truncate(text, maxPlainMessage)
	}
	for _, k := range []string{"message", "error", "detail"} {
		switch v := payload[k].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case map[string]any:
			if m, ok := v["message"].(string); ok && m != "" {
				return m
			}
		}
	}
	return ""
}

const maxPlainMessage = 200

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == apperror.CodeUnauthorized
}
