// common.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wbooks/notes-api/internal/middleware"
	"github.com/wbooks/notes-api/internal/models"
)

// currentUser returns the account resolved by the auth middleware.
// Routes behind AuthUser always have one; a nil return means a wiring bug.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(middleware.CurrentUserKey).(*models.User)
	return user
}

// parseIDParam parses a numeric id path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	return strconv.ParseUint(c.Params(name), 10, 64)
}
