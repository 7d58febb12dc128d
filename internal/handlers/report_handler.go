package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safereport/safereport-backend/internal/authctx"
	"github.com/safereport/safereport-backend/internal/dto"
	"github.com/safereport/safereport-backend/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetReport handles GET /api/reports/:reportId. The response wraps the
// record in a {success, report} envelope; PATCH returns the raw record.
// That asymmetry is part of the published contract and kept on purpose.
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	reportID := c.Params("reportId")

	report, err := h.reportService.GetByReportID(reportID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ReportError{
				Error: "Report not found",
			})
		}
		slog.Error("error fetching report", "report_id", reportID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ReportError{
			Error: "Error fetching report",
		})
	}

	return c.JSON(dto.ReportEnvelope{Success: true, Report: report})
}

// UpdateStatus handles PATCH /api/reports/:reportId. Routed behind the
// JWT and staff guards; the status value is validated against the
// enumeration before any store write.
func (h *ReportHandler) UpdateStatus(c *fiber.Ctx) error {
	reportID := c.Params("reportId")

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ReportError{
			Error: "Invalid request body",
		})
	}

	report, err := h.reportService.UpdateStatus(reportID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ReportError{
				Error: "Invalid status",
			})
		}
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ReportError{
				Error: "Report not found",
			})
		}
		slog.Error("error updating report", "report_id", reportID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ReportError{
			Error: "Error updating report",
		})
	}

	return c.JSON(report)
}

// CreateReport handles POST /api/reports. Submission is open to anonymous
// citizens; a valid bearer token binds the report to the caller.
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ReportError{
			Error: "Invalid request body",
		})
	}

	var reporterID *uuid.UUID
	if id, err := authctx.GetUserID(c); err == nil {
		reporterID = &id
	}

	report, err := h.reportService.Create(reporterID, &req)
	if err != nil {
		slog.Error("error creating report", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ReportError{
			Error: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateReportResponse{
		Success:  true,
		ReportID: report.ReportID,
	})
}

// ListReports handles GET /api/reports for the staff dashboard.
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status", "")
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	if limit > 100 {
		limit = 100
	}

	reports, total, err := h.reportService.List(status, limit, offset)
	if err != nil {
		slog.Error("error listing reports", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ReportError{
			Error: "Error fetching reports",
		})
	}

	return c.JSON(dto.ReportListResponse{
		Reports: reports,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// MyReports handles GET /api/reports/mine for authenticated reporters.
func (h *ReportHandler) MyReports(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reports, err := h.reportService.ListByReporter(userID)
	if err != nil {
		slog.Error("error listing own reports", "user_id", userID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ReportError{
			Error: "Error fetching reports",
		})
	}

	return c.JSON(fiber.Map{"reports": reports})
}
