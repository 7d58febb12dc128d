package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/safereport/safereport-backend/internal/authctx"
	"github.com/safereport/safereport-backend/internal/dto"
	"github.com/safereport/safereport-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidStatus  = errors.New("invalid status")
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// GetByReportID performs an exact-match lookup on the public report_id,
// never the surrogate key.
func (s *ReportService) GetByReportID(reportID string) (*models.Report, error) {
	var report models.Report
	if err := s.db.Where("report_id = ?", reportID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	return &report, nil
}

// UpdateStatus transitions the report identified by reportID. The status
// is validated against the enumeration before any store call, and only
// the status column is written. The updated record is returned.
func (s *ReportService) UpdateStatus(reportID, status string) (*models.Report, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	result := s.db.Model(&models.Report{}).
		Where("report_id = ?", reportID).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrReportNotFound
	}

	return s.GetByReportID(reportID)
}

// Create stores a new report with a generated public id and pending status.
// reporterID is nil for anonymous submissions.
func (s *ReportService) Create(reporterID *uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, errors.New("description is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, errors.New("location is required")
	}

	report := models.Report{
		ID:          uuid.New(),
		ReportID:    newReportID(),
		ReporterID:  reporterID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      models.StatusPending,
	}

	err := s.db.Create(&report).Error
	if err != nil && isUniqueViolation(err) {
		// One retry on public-id collision.
		report.ReportID = newReportID()
		err = s.db.Create(&report).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// List returns reports for the staff dashboard, newest first.
func (s *ReportService) List(status string, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// ListByReporter returns the caller's own submissions, newest first.
func (s *ReportService) ListByReporter(userID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.Scopes(authctx.OwnedBy(userID)).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// newReportID generates a shareable public id, e.g. "SR-4F09A1B2C3".
func newReportID() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to uuid entropy
		copy(b, uuid.New().NodeID())
	}
	return "SR-" + strings.ToUpper(hex.EncodeToString(b))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
