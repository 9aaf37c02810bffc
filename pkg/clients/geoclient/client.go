// Package geoclient resolves venue addresses to coordinates and computes
// driving distances between them. It talks to a Nominatim-compatible
// geocoding endpoint and an OSRM-compatible routing endpoint; failures are
// reported with a typed category so callers can distinguish bad input from
// service trouble.
package geoclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrorCategory classifies a geocoding/routing failure
type ErrorCategory string

const (
	CategoryInvalidInput     ErrorCategory = "invalid_input"
	CategoryLocationNotFound ErrorCategory = "location_not_found"
	CategoryRouteNotFound    ErrorCategory = "route_not_found"
	CategoryRateLimited      ErrorCategory = "rate_limited"
	CategoryAPIError         ErrorCategory = "api_error"
)

// Error is a classified geocoding/routing failure
type Error struct {
	Category ErrorCategory
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

// CategoryOf returns the category of err if it is a geoclient Error,
// or the empty string otherwise
func CategoryOf(err error) ErrorCategory {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Category
	}
	return ""
}

func newError(category ErrorCategory, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

const (
	defaultGeocodeBaseURL = "https://nominatim.openstreetmap.org"
	defaultRouteBaseURL   = "https://router.project-osrm.org"
	requestTimeout        = 15 * time.Second
	userAgent             = "gigplan/1.0"
)

// Client calls the geocoding and routing services
type Client struct {
	httpClient     *http.Client
	geocodeBaseURL string
	routeBaseURL   string
}

// NewClient creates a geo client. Empty base URLs fall back to the public
// Nominatim and OSRM instances.
func NewClient(geocodeBaseURL, routeBaseURL string) *Client {
	if geocodeBaseURL == "" {
		geocodeBaseURL = defaultGeocodeBaseURL
	}
	if routeBaseURL == "" {
		routeBaseURL = defaultRouteBaseURL
	}
	return &Client{
		httpClient:     &http.Client{Timeout: requestTimeout},
		geocodeBaseURL: strings.TrimRight(geocodeBaseURL, "/"),
		routeBaseURL:   strings.TrimRight(routeBaseURL, "/"),
	}
}

// Location is a geocoded place
type Location struct {
	DisplayName string
	Lat         float64
	Lon         float64
}

// Geocode resolves a free-text address to a location
func (c *Client) Geocode(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, newError(CategoryInvalidInput, "address must not be empty")
	}

	reqURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.geocodeBaseURL, url.QueryEscape(query))
	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var results []struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, newError(CategoryAPIError, "failed to parse geocode response: %v", err)
	}
	if len(results) == 0 {
		return nil, newError(CategoryLocationNotFound, "no location found for %q", query)
	}

	var lat, lon float64
	if _, err := fmt.Sscanf(results[0].Lat, "%f", &lat); err != nil {
		return nil, newError(CategoryAPIError, "invalid latitude in geocode response: %v", err)
	}
	if _, err := fmt.Sscanf(results[0].Lon, "%f", &lon); err != nil {
		return nil, newError(CategoryAPIError, "invalid longitude in geocode response: %v", err)
	}

	return &Location{
		DisplayName: results[0].DisplayName,
		Lat:         lat,
		Lon:         lon,
	}, nil
}

// RouteResult is a driving route between two locations
type RouteResult struct {
	DistanceKM      float64
	DurationMinutes float64
}

// Route computes the driving route between two geocoded locations
func (c *Client) Route(ctx context.Context, from, to Location) (*RouteResult, error) {
	reqURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.routeBaseURL, from.Lon, from.Lat, to.Lon, to.Lat)
	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var result struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"routes"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, newError(CategoryAPIError, "failed to parse route response: %v", err)
	}
	if result.Code != "Ok" || len(result.Routes) == 0 {
		return nil, newError(CategoryRouteNotFound, "no route found between %s and %s", from.DisplayName, to.DisplayName)
	}

	return &RouteResult{
		DistanceKM:      result.Routes[0].Distance / 1000.0,
		DurationMinutes: result.Routes[0].Duration / 60.0,
	}, nil
}

// DistanceResult is the distance lookup output for display
type DistanceResult struct {
	LocationName    string
	DistanceKM      float64
	DurationMinutes float64
}

// Distance geocodes both addresses and computes the driving distance
// between them
func (c *Client) Distance(ctx context.Context, fromAddress, toAddress string) (*DistanceResult, error) {
	from, err := c.Geocode(ctx, fromAddress)
	if err != nil {
		return nil, err
	}
	to, err := c.Geocode(ctx, toAddress)
	if err != nil {
		return nil, err
	}

	route, err := c.Route(ctx, *from, *to)
	if err != nil {
		return nil, err
	}

	return &DistanceResult{
		LocationName:    to.DisplayName,
		DistanceKM:      route.DistanceKM,
		DurationMinutes: route.DurationMinutes,
	}, nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, newError(CategoryInvalidInput, "failed to build request: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(CategoryAPIError, "request failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, newError(CategoryRateLimited, "rate limited by %s", req.URL.Host)
	case resp.StatusCode != http.StatusOK:
		return nil, newError(CategoryAPIError, "unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(CategoryAPIError, "failed to read response: %v", err)
	}
	return body, nil
}
