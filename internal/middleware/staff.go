package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safereport/safereport-backend/internal/authctx"
	"github.com/safereport/safereport-backend/internal/dto"
	"github.com/safereport/safereport-backend/internal/models"
	"gorm.io/gorm"
)

// StaffRequired gates report-status mutation. The role claim is checked
// first; the DB record is the authority when the claim is stale or absent.
func StaffRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authctx.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if role := authctx.GetRole(c); role == models.RoleStaff || role == models.RoleAdmin {
			return c.Next()
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err == nil {
			if user.CanManageReports() {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Staff access required",
		})
	}
}
