package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/safereport/safereport-backend/internal/config"
	"github.com/safereport/safereport-backend/internal/dto"
	"github.com/safereport/safereport-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrGeocodeUnavailable = errors.New("geocoding service unavailable")

// GeocodeService proxies Nominatim forward searches and caches raw
// responses in the database for the configured TTL.
type GeocodeService struct {
	db     *gorm.DB
	cfg    *config.Config
	client *http.Client
}

func NewGeocodeService(db *gorm.DB, cfg *config.Config) *GeocodeService {
	return &GeocodeService{
		db:  db,
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.GeocodeTimeout,
		},
	}
}

// Search returns up to five suggestions for the query. A blank query
// returns an empty slice without touching the upstream API.
func (s *GeocodeService) Search(ctx context.Context, query string) ([]dto.GeocodeSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []dto.GeocodeSuggestion{}, nil
	}

	normalized := strings.ToLower(query)
	if payload, ok := s.cacheLookup(normalized); ok {
		return parseSuggestions(payload)
	}

	payload, err := s.fetchUpstream(ctx, query)
	if err != nil {
		return nil, err
	}

	s.cacheStore(normalized, payload)
	return parseSuggestions(payload)
}

func (s *GeocodeService) fetchUpstream(ctx context.Context, query string) ([]byte, error) {
	u := s.cfg.GeocodeBaseURL + "/search?q=" + url.QueryEscape(query) +
		"&format=json&addressdetails=1&limit=5&accept-language=en"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.GeocodeUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("geocode upstream request failed", "error", err)
		return nil, ErrGeocodeUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("geocode upstream returned non-200", "status", resp.StatusCode)
		return nil, ErrGeocodeUnavailable
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, ErrGeocodeUnavailable
	}
	return body, nil
}

func (s *GeocodeService) cacheLookup(normalized string) ([]byte, bool) {
	var entry models.GeocodeCacheEntry
	err := s.db.Where("query = ?", normalized).First(&entry).Error
	if err != nil {
		return nil, false
	}
	if time.Since(entry.FetchedAt) > s.cfg.GeocodeCacheTTL {
		return nil, false
	}
	return entry.Payload, true
}

func (s *GeocodeService) cacheStore(normalized string, payload []byte) {
	entry := models.GeocodeCacheEntry{
		ID:        uuid.New(),
		Query:     normalized,
		Payload:   datatypes.JSON(payload),
		FetchedAt: time.Now().UTC(),
	}

	// Refresh an existing row rather than violating the unique index.
	err := s.db.Where("query = ?", normalized).
		Assign(map[string]interface{}{
			"payload":    entry.Payload,
			"fetched_at": entry.FetchedAt,
		}).
		FirstOrCreate(&entry).Error
	if err != nil {
		slog.Error("failed to store geocode cache entry", "error", err, "query", normalized)
	}
}

func parseSuggestions(payload []byte) ([]dto.GeocodeSuggestion, error) {
	var suggestions []dto.GeocodeSuggestion
	if err := json.Unmarshal(payload, &suggestions); err != nil {
		return nil, ErrGeocodeUnavailable
	}
	return suggestions, nil
}
