// Package geocoding resolves map pins to addresses and addresses to pins through Nominatim.
// Lookups never fail loudly: network or decode errors degrade to an empty result.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"bioscrap/internal/pkg/resilience"
)

const (
	userAgent   = "bioscrap-booking/1.0"
	searchLimit = 5
)

// Place is one forward-geocoding candidate.
type Place struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
}

type Client struct {
	baseURL string
	country string
	http    *http.Client
	breaker *resilience.CircuitBreaker
	logger  *zap.Logger
}

type Options struct {
	Country string
	Timeout time.Duration
	Breaker *resilience.CircuitBreaker
	Logger  *zap.Logger
}

func NewClient(baseURL string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		country: opts.Country,
		http:    &http.Client{Timeout: timeout},
		breaker: opts.Breaker,
		logger:  log,
	}
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Reverse returns the display address for a coordinate, or "" when none could be resolved.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("zoom", "18")
	q.Set("addressdetails", "1")

	var out reverseResult
	if err := c.get(ctx, "/reverse", q, &out); err != nil {
		c.logger.Debug("reverse geocoding failed", zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		return ""
	}
	return out.DisplayName
}

// Search returns ranked candidates for a free-text query; empty on failure.
func (c *Client) Search(ctx context.Context, query string) []Place {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(searchLimit))
	if c.country != "" {
		q.Set("countrycodes", c.country)
	}

	var raw []searchResult
	if err := c.get(ctx, "/search", q, &raw); err != nil {
		c.logger.Debug("forward geocoding failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	places := make([]Place, 0, len(raw))
	for _, r := range raw {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lng, errLng := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLng != nil {
			continue
		}
		places = append(places, Place{Lat: lat, Lng: lng, DisplayName: r.DisplayName})
	}
	return places
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("nominatim %s: status %d", path, resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	if c.breaker == nil {
		return call()
	}
	return c.breaker.Execute(call)
}
