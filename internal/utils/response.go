package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wbooks/notes-api/internal/messages"
)

// ErrorResponse sends the structured error body used across the API
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// MessageResponse sends a success body with a catalog message
func MessageResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

// NotFoundResponse sends a 404 with the catalog not-found message
func NotFoundResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, fiber.StatusNotFound, messages.Get(messages.NoteNotFound))
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error string `json:"error"`
}

// MessageResponseStruct defines the schema for success message responses
type MessageResponseStruct struct {
	Message string `json:"message"`
}
