package models

import (
	"time"

	"github.com/google/uuid"
)

// Report statuses. Every report is in exactly one of these states.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusDismissed  = "dismissed"
)

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// Report is a citizen-submitted incident. ReportID is the public handle
// shared with the reporter; the uuid primary key never leaves the backend.
type Report struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID    string     `gorm:"size:20;not null;uniqueIndex" json:"reportId"`
	ReporterID  *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Title       string     `gorm:"not null;size:255" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Location    string     `gorm:"size:500" json:"location"`
	Latitude    *float64   `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude   *float64   `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	Status      string     `gorm:"not null;default:'pending';size:50" json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
