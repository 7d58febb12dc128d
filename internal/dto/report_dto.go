package dto

import "github.com/safereport/safereport-backend/internal/models"

// ReportEnvelope is the GET response shape. The PATCH path returns the
// raw record instead; the asymmetry is part of the published contract.
type ReportEnvelope struct {
	Success bool           `json:"success"`
	Report  *models.Report `json:"report"`
}

type CreateReportRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

type CreateReportResponse struct {
	Success  bool   `json:"success"`
	ReportID string `json:"reportId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ReportListResponse struct {
	Reports []models.Report `json:"reports"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// ReportError is the fixed-shape error body for the /api/reports surface.
// Message texts are stable: clients match on status codes, not text, but
// the strings themselves are part of the published contract.
type ReportError struct {
	Error string `json:"error"`
}
