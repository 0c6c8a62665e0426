package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UsersHandler handles the users routes
type UsersHandler struct {
	DB *gorm.DB
}

// Current handles GET /api/v1/users/current
// @Summary Get the current user
// @Description Get the authenticated caller with its utility
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} handlers.CurrentUser
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /v1/users/current [get]
func (h *UsersHandler) Current(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(newCurrentUser(currentUser(c)))
}
