package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/safereport/safereport-backend/internal/dto"
	"github.com/safereport/safereport-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "could not open test DB")

	err = db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.Report{}, &models.GeocodeCacheEntry{})
	require.NoError(t, err, "migration failed")
	return db
}

func seedReport(t *testing.T, db *gorm.DB) models.Report {
	t.Helper()
	report := models.Report{
		ID:          uuid.New(),
		ReportID:    "SR-1001",
		Title:       "Streetlight out",
		Description: "Pole 12 dark",
		Location:    "Main St",
		Status:      models.StatusPending,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&report).Error)
	return report
}

func TestGetByReportID_ReturnsStoredRecord(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedReport(t, db)
	svc := NewReportService(db)

	got, err := svc.GetByReportID("SR-1001")
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, "SR-1001", got.ReportID)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, "Streetlight out", got.Title)
	assert.Equal(t, "Pole 12 dark", got.Description)
	assert.Equal(t, "Main St", got.Location)
}

func TestGetByReportID_UnknownID(t *testing.T) {
	db := setupTestDB(t)
	seedReport(t, db)
	svc := NewReportService(db)

	got, err := svc.GetByReportID("UNKNOWN-ID")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestUpdateStatus_OnlyStatusChanges(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedReport(t, db)
	svc := NewReportService(db)

	updated, err := svc.UpdateStatus("SR-1001", models.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, updated.Status)

	// Everything except status stays as stored.
	assert.Equal(t, seeded.ID, updated.ID)
	assert.Equal(t, seeded.ReportID, updated.ReportID)
	assert.Equal(t, seeded.Title, updated.Title)
	assert.Equal(t, seeded.Description, updated.Description)
	assert.Equal(t, seeded.Location, updated.Location)
	assert.True(t, seeded.CreatedAt.Equal(updated.CreatedAt))

	// Subsequent reads reflect the transition.
	got, err := svc.GetByReportID("SR-1001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, got.Status)
}

func TestUpdateStatus_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	seedReport(t, db)
	svc := NewReportService(db)

	first, err := svc.UpdateStatus("SR-1001", models.StatusInProgress)
	require.NoError(t, err)

	second, err := svc.UpdateStatus("SR-1001", models.StatusInProgress)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Title, second.Title)
}

func TestUpdateStatus_InvalidStatusNeverTouchesStore(t *testing.T) {
	db := setupTestDB(t)
	seedReport(t, db)
	svc := NewReportService(db)

	for _, bad := range []string{"archived", "RESOLVED", "", "pending; drop table"} {
		got, err := svc.UpdateStatus("SR-1001", bad)
		assert.Nil(t, got, "status %q", bad)
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", bad)
	}

	stored, err := svc.GetByReportID("SR-1001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestUpdateStatus_UnknownIDIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	got, err := svc.UpdateStatus("SR-9999", models.StatusResolved)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestCreate_GeneratesPublicID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	report, err := svc.Create(nil, &dto.CreateReportRequest{
		Title:       "Pothole",
		Description: "Deep pothole near the crossing",
		Location:    "5th Ave",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^SR-[0-9A-F]{10}$`), report.ReportID)
	assert.Equal(t, models.StatusPending, report.Status)
	assert.Nil(t, report.ReporterID)

	stored, err := svc.GetByReportID(report.ReportID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, stored.ID)
}

func TestCreate_RequiresFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	cases := []dto.CreateReportRequest{
		{Title: "  ", Description: "d", Location: "l"},
		{Title: "t", Description: "", Location: "l"},
		{Title: "t", Description: "d", Location: "\t"},
	}
	for _, req := range cases {
		got, err := svc.Create(nil, &req)
		assert.Nil(t, got)
		assert.Error(t, err)
	}
}

func TestCreate_BindsReporter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	reporter := uuid.New()
	report, err := svc.Create(&reporter, &dto.CreateReportRequest{
		Title:       "Graffiti",
		Description: "Wall tagging at the underpass",
		Location:    "Station Rd",
	})
	require.NoError(t, err)
	require.NotNil(t, report.ReporterID)
	assert.Equal(t, reporter, *report.ReporterID)

	mine, err := svc.ListByReporter(reporter)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, report.ReportID, mine[0].ReportID)
}

func TestList_FiltersByStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	for i, status := range []string{models.StatusPending, models.StatusPending, models.StatusResolved} {
		report := models.Report{
			ID:          uuid.New(),
			ReportID:    "SR-000000000" + string(rune('A'+i)),
			Title:       "t",
			Description: "d",
			Location:    "l",
			Status:      status,
		}
		require.NoError(t, db.Create(&report).Error)
	}

	pending, total, err := svc.List(models.StatusPending, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, pending, 2)

	all, total, err := svc.List("", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)
}
