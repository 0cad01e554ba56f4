// Package geocode resolves clock coordinates to a street address. Lookups are
// best effort: any failure yields an empty address.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-attendance/internal/geofence"
	"go-attendance/internal/kvstore"
	"go-attendance/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	cacheTTL       = 24 * time.Hour
	defaultTimeout = 5 * time.Second
	defaultBudget  = 1500 * time.Millisecond
)

var errRateLimited = errors.New("geocode: rate limited")

// Geocoder is what clock actions depend on.
type Geocoder interface {
	Reverse(ctx context.Context, p geofence.Point) string
}

type Options struct {
	BaseURL   string
	UserAgent string
	// RPS caps outbound lookups; public Nominatim allows one per second.
	RPS     float64
	Timeout time.Duration
	// Budget bounds a whole Reverse call, including the outbound request.
	Budget time.Duration
	Store  kvstore.Store
	Logger  *zap.Logger
}

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	budget    time.Duration
	limiter   *rate.Limiter
	group     singleflight.Group
	store     kvstore.Store
	logger    *zap.Logger
}

func NewClient(opts Options) *Client {
	if opts.RPS <= 0 {
		opts.RPS = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Budget <= 0 {
		opts.Budget = defaultBudget
	}
	l := opts.Logger
	if l == nil {
		l = zap.L()
	}
	return &Client{
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		http:      &http.Client{Timeout: opts.Timeout},
		budget:    opts.Budget,
		limiter:   rate.NewLimiter(rate.Limit(opts.RPS), 1),
		store:     opts.Store,
		logger:    l.Named("geocode"),
	}
}

// CacheKey rounds to 4 decimals (about 11 m) so nearby clocks share a lookup.
func CacheKey(p geofence.Point) kvstore.Key[string] {
	return kvstore.NewKey[string](fmt.Sprintf("geocode:%.4f,%.4f", p.Latitude, p.Longitude))
}

// Reverse returns "" when the lookup fails, the outbound rate is exhausted
// or the budget runs out. It never waits for a rate limit token.
func (c *Client) Reverse(ctx context.Context, p geofence.Point) string {
	key := CacheKey(p)
	log := contextutil.GetLogger(ctx, c.logger)

	ctx, cancel := context.WithTimeout(ctx, c.budget)
	defer cancel()

	if c.store != nil {
		if addr, err := kvstore.Load(ctx, c.store, key); err == nil {
			return addr
		} else if !errors.Is(err, kvstore.ErrNotFound) {
			log.Debug("geocode cache read failed", zap.Error(err))
		}
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		addr, err := c.lookup(ctx, p)
		if err != nil {
			return "", err
		}
		if c.store != nil && addr != "" {
			if err := kvstore.Save(ctx, c.store, key, addr, cacheTTL); err != nil {
				log.Debug("geocode cache write failed", zap.Error(err))
			}
		}
		return addr, nil
	})
	if errors.Is(err, errRateLimited) {
		log.Debug("reverse geocode skipped, rate limited")
		return ""
	}
	if err != nil {
		log.Warn("reverse geocode failed",
			zap.Float64("lat", p.Latitude),
			zap.Float64("lng", p.Longitude),
			zap.Error(err),
		)
		return ""
	}
	return v.(string)
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

func (c *Client) lookup(ctx context.Context, p geofence.Point) (string, error) {
	if !c.limiter.Allow() {
		return "", errRateLimited
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(p.Latitude, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(p.Longitude, 'f', 6, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode: status %d", res.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("geocode: decode: %w", err)
	}
	if body.Error != "" {
		return "", fmt.Errorf("geocode: %s", body.Error)
	}
	return body.DisplayName, nil
}

// Noop is used when no geocoder is configured.
type Noop struct{}

func (Noop) Reverse(context.Context, geofence.Point) string { return "" }
