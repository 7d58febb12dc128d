package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GeocodeCacheEntry stores a raw Nominatim response keyed by the
// normalized query, so repeated autocomplete lookups don't hit the
// public API inside the TTL window.
type GeocodeCacheEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Query     string         `gorm:"size:500;not null;uniqueIndex" json:"query"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	FetchedAt time.Time      `gorm:"not null;index" json:"fetched_at"`
	CreatedAt time.Time      `json:"created_at"`
}
