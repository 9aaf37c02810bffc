package geoclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geocodeHandler(t *testing.T, responses map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		query := r.URL.Query().Get("q")
		body, ok := responses[query]
		if !ok {
			fmt.Fprint(w, "[]")
			return
		}
		fmt.Fprint(w, body)
	}
}

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(geocodeHandler(t, map[string]string{
		"Paradiso Amsterdam": `[{"display_name":"Paradiso, Weteringschans 6, Amsterdam","lat":"52.3624","lon":"4.8839"}]`,
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	loc, err := client.Geocode(context.Background(), "Paradiso Amsterdam")
	require.NoError(t, err)
	assert.Equal(t, "Paradiso, Weteringschans 6, Amsterdam", loc.DisplayName)
	assert.InDelta(t, 52.3624, loc.Lat, 0.0001)
	assert.InDelta(t, 4.8839, loc.Lon, 0.0001)
}

func TestGeocode_EmptyInput(t *testing.T) {
	client := NewClient("http://unused.invalid", "")

	_, err := client.Geocode(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, CategoryInvalidInput, CategoryOf(err))
}

func TestGeocode_NotFound(t *testing.T) {
	server := httptest.NewServer(geocodeHandler(t, nil))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.Geocode(context.Background(), "nowhere at all")
	require.Error(t, err)
	assert.Equal(t, CategoryLocationNotFound, CategoryOf(err))
}

func TestGeocode_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.Geocode(context.Background(), "anywhere")
	require.Error(t, err)
	assert.Equal(t, CategoryRateLimited, CategoryOf(err))
}

func TestGeocode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.Geocode(context.Background(), "anywhere")
	require.Error(t, err)
	assert.Equal(t, CategoryAPIError, CategoryOf(err))
}

func TestRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/route/v1/driving/")
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":42000,"duration":2400}]}`)
	}))
	defer server.Close()

	client := NewClient("", server.URL)

	route, err := client.Route(context.Background(),
		Location{DisplayName: "A", Lat: 52.0, Lon: 4.0},
		Location{DisplayName: "B", Lat: 52.4, Lon: 4.9})
	require.NoError(t, err)
	assert.InDelta(t, 42.0, route.DistanceKM, 0.001)
	assert.InDelta(t, 40.0, route.DurationMinutes, 0.001)
}

func TestRoute_NoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"NoRoute","routes":[]}`)
	}))
	defer server.Close()

	client := NewClient("", server.URL)

	_, err := client.Route(context.Background(), Location{}, Location{})
	require.Error(t, err)
	assert.Equal(t, CategoryRouteNotFound, CategoryOf(err))
}

func TestDistance(t *testing.T) {
	geocodeSrv := httptest.NewServer(geocodeHandler(t, map[string]string{
		"Rehearsal Room":     `[{"display_name":"Rehearsal Room, Utrecht","lat":"52.0907","lon":"5.1214"}]`,
		"Paradiso Amsterdam": `[{"display_name":"Paradiso, Amsterdam","lat":"52.3624","lon":"4.8839"}]`,
	}))
	defer geocodeSrv.Close()

	routeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":45500,"duration":2700}]}`)
	}))
	defer routeSrv.Close()

	client := NewClient(geocodeSrv.URL, routeSrv.URL)

	result, err := client.Distance(context.Background(), "Rehearsal Room", "Paradiso Amsterdam")
	require.NoError(t, err)
	assert.Equal(t, "Paradiso, Amsterdam", result.LocationName)
	assert.InDelta(t, 45.5, result.DistanceKM, 0.001)
	assert.InDelta(t, 45.0, result.DurationMinutes, 0.001)
}

func TestDistance_VenueNotFound(t *testing.T) {
	geocodeSrv := httptest.NewServer(geocodeHandler(t, map[string]string{
		"Rehearsal Room": `[{"display_name":"Rehearsal Room, Utrecht","lat":"52.0907","lon":"5.1214"}]`,
	}))
	defer geocodeSrv.Close()

	client := NewClient(geocodeSrv.URL, "")

	_, err := client.Distance(context.Background(), "Rehearsal Room", "no such venue")
	require.Error(t, err)
	assert.Equal(t, CategoryLocationNotFound, CategoryOf(err))
}
