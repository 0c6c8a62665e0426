// note_service.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wbooks/notes-api/internal/messages"
	"github.com/wbooks/notes-api/internal/models"
	"github.com/wbooks/notes-api/internal/params"
	"github.com/wbooks/notes-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ListNotes returns one page of the caller's notes. Results are always scoped
// to the owner, filtered by the allow-listed exact-match filters, ordered by
// created_at with id as tiebreak so pagination is deterministic, and paged
// with a 1-indexed page number. A page past the end is empty, not an error.
func ListNotes(db *gorm.DB, userID uint64, p params.ListParams) ([]models.Note, error) {
	query := db.Model(&models.Note{}).
		Clauses(hints.CommentBefore("select", "notes_list")).
		Where("user_id = ?", userID)

	for column, value := range p.Filters {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	notes := []models.Note{}
	err := query.
		Order(fmt.Sprintf("created_at %s, id %s", p.Order, p.Order)).
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// GetNote returns a single note owned by the caller. A note that does not
// exist or belongs to another user is a not-found, never a leak.
func GetNote(db *gorm.DB, userID, noteID uint64) (*models.Note, error) {
	var note models.Note
	err := db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.CustomError{
				Code:    http.StatusNotFound,
				Message: messages.Get(messages.NoteNotFound),
				Type:    "notes.not_found",
			}
		}
		return nil, err
	}

	return &note, nil
}

// CreateNote persists a validated creation payload for the user. The entity
// validation runs again here so callers that bypass the request validator
// (ingestion) get the same policy enforcement. All-or-nothing: any failure
// leaves no row behind.
func CreateNote(db *gorm.DB, user *models.User, p params.CreateParams) (*models.Note, error) {
	note := models.Note{
		Title:    p.Title,
		Content:  p.Content,
		NoteType: p.NoteType,
		UserID:   user.ID,
	}

	if err := note.Validate(&user.Utility); err != nil {
		return nil, err
	}

	if err := db.Create(&note).Error; err != nil {
		return nil, err
	}

	return &note, nil
}
