package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wbooks/notes-api/internal/config"
	"github.com/wbooks/notes-api/internal/messages"
	"github.com/wbooks/notes-api/internal/services"
	"github.com/wbooks/notes-api/internal/types"
	"gorm.io/gorm"
)

// CurrentUserKey is the Locals key holding the resolved *models.User.
const CurrentUserKey = "currentUser"

// AuthUser validates the session cookie and resolves the caller to a local
// account with its utility. Requests without a valid, resolvable identity
// are rejected with 401 before any handler logic runs.
func AuthUser(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Lazy init with the first request's protocol/host for the redirect URL
		if !services.IsAuthorizerInitialized() {
			if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
				return &types.CustomError{
					Code:    fiber.StatusUnauthorized,
					Message: messages.Get(messages.Unauthorized),
					Type:    "notes.authentication",
				}
			}
		}

		session := c.Cookies("cookie_session")
		if session == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: messages.Get(messages.Unauthorized),
				Type:    "notes.authentication",
			}
		}

		identity, err := services.ValidateSession(session, []string{"user"})
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: messages.Get(messages.Unauthorized),
				Type:    "notes.authentication",
			}
		}

		user, err := services.ResolveUser(db, identity.Email)
		if err != nil {
			return err
		}

		c.Locals(CurrentUserKey, user)

		return c.Next()
	}
}
