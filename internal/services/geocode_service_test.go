package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/safereport/safereport-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nominatimBody = `[{"place_id":12345,"display_name":"Main St, Springfield","lat":"39.78","lon":"-89.65"}]`

func geocodeTestConfig(baseURL string) *config.Config {
	return &config.Config{
		GeocodeBaseURL:   baseURL,
		GeocodeUserAgent: "SafeReport-App",
		GeocodeTimeout:   2 * time.Second,
		GeocodeCacheTTL:  time.Hour,
	}
}

func TestGeocodeSearch_BlankQuerySkipsUpstream(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	svc := NewGeocodeService(setupTestDB(t), geocodeTestConfig(srv.URL))

	for _, q := range []string{"", "   ", "\t\n"} {
		suggestions, err := svc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	}
	assert.Equal(t, 0, hits)
}

func TestGeocodeSearch_ParsesSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SafeReport-App", r.Header.Get("User-Agent"))
		assert.Equal(t, "Main St", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(nominatimBody))
	}))
	defer srv.Close()

	svc := NewGeocodeService(setupTestDB(t), geocodeTestConfig(srv.URL))

	suggestions, err := svc.Search(context.Background(), "Main St")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Main St, Springfield", suggestions[0].DisplayName)
	assert.Equal(t, "39.78", suggestions[0].Lat)
	assert.Equal(t, "-89.65", suggestions[0].Lon)
}

func TestGeocodeSearch_ServesRepeatsFromCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(nominatimBody))
	}))
	defer srv.Close()

	svc := NewGeocodeService(setupTestDB(t), geocodeTestConfig(srv.URL))

	first, err := svc.Search(context.Background(), "Main St")
	require.NoError(t, err)
	// Same query, different case: normalized to one cache key.
	second, err := svc.Search(context.Background(), "MAIN ST")
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, first, second)
}

func TestGeocodeSearch_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewGeocodeService(setupTestDB(t), geocodeTestConfig(srv.URL))

	suggestions, err := svc.Search(context.Background(), "Main St")
	assert.Nil(t, suggestions)
	assert.ErrorIs(t, err, ErrGeocodeUnavailable)
}
