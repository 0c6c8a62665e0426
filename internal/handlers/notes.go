// notes.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wbooks/notes-api/internal/messages"
	"github.com/wbooks/notes-api/internal/params"
	"github.com/wbooks/notes-api/internal/services"
	"github.com/wbooks/notes-api/internal/types"
	"github.com/wbooks/notes-api/internal/utils"
	"gorm.io/gorm"
)

// NotesHandler handles the notes routes
type NotesHandler struct {
	DB *gorm.DB
}

// createNoteBody is the creation payload. The external field is named "type";
// the validator maps it onto the internal note_type.
type createNoteBody struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Index handles GET /api/v1/notes
// @Summary List notes
// @Description List the caller's notes, filtered, ordered and paginated
// @Tags Notes
// @Accept json
// @Produce json
// @Param page query int true "1-indexed page number"
// @Param page_size query int true "Items per page"
// @Param order query string false "Sort order by creation time: asc (default) or desc"
// @Param type query string false "Filter by note type: review or critique"
// @Param title query string false "Filter by exact title"
// @Success 200 {array} handlers.IndexNote
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /v1/notes [get]
func (h *NotesHandler) Index(c *fiber.Ctx) error {
	user := currentUser(c)

	p, err := params.ParseList(c.Queries())
	if err != nil {
		return handleValidationError(c, err)
	}

	notes, err := services.ListNotes(h.DB, user.ID, p)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(newIndexNotes(notes, &user.Utility))
}

// Show handles GET /api/v1/notes/:id
// @Summary Get a note
// @Description Get the full projection of a note owned by the caller
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} handlers.ShowNote
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /v1/notes/{id} [get]
func (h *NotesHandler) Show(c *fiber.Ctx) error {
	user := currentUser(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.NotFoundResponse(c)
	}

	note, err := services.GetNote(h.DB, user.ID, id)
	if err != nil {
		return handleValidationError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(newShowNote(note, user))
}

// Create handles POST /api/v1/notes
// @Summary Create a note
// @Description Create a review or critique for the caller
// @Tags Notes
// @Accept json
// @Produce json
// @Param body body handlers.createNoteBody true "Note to create"
// @Success 201 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /v1/notes [post]
func (h *NotesHandler) Create(c *fiber.Ctx) error {
	user := currentUser(c)

	var body createNoteBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, messages.Get(messages.ParamsMissing))
	}

	p, err := params.ParseCreate(body.Title, body.Type, body.Content, user.Utility.MaxWordValidReview)
	if err != nil {
		return handleValidationError(c, err)
	}

	if _, err := services.CreateNote(h.DB, user, p); err != nil {
		return handleValidationError(c, err)
	}

	return utils.MessageResponse(c, fiber.StatusCreated, messages.Get(messages.SuccessNoteCreate))
}

// handleValidationError renders a CustomError with its own status code and
// lets anything else bubble to the global error handler as a 500.
func handleValidationError(c *fiber.Ctx, err error) error {
	var cerr *types.CustomError
	if errors.As(err, &cerr) {
		return utils.ErrorResponse(c, cerr.Code, cerr.Message)
	}
	return err
}
