package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/safereport/safereport-backend/internal/dto"
	"github.com/safereport/safereport-backend/internal/services"
)

type GeocodeHandler struct {
	geocodeService *services.GeocodeService
}

func NewGeocodeHandler(geocodeService *services.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{geocodeService: geocodeService}
}

// Search handles GET /api/geocode?q=...
func (h *GeocodeHandler) Search(c *fiber.Ctx) error {
	suggestions, err := h.geocodeService.Search(c.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, services.ErrGeocodeUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ReportError{
				Error: "Geocoding service unavailable",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ReportError{
			Error: "Geocoding service unavailable",
		})
	}

	return c.JSON(dto.GeocodeResponse{Suggestions: suggestions})
}
