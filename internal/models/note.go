// note.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

package models

import (
	"net/http"
	"strings"
	"time"

	"github.com/wbooks/notes-api/internal/messages"
	"github.com/wbooks/notes-api/internal/types"
)

// Content length tiers derived from word count vs utility thresholds.
const (
	ContentLengthShort  = "short"
	ContentLengthMedium = "medium"
	ContentLengthLong   = "long"
)

// Note is a user-authored text item tagged review or critique. Word count and
// content length are derived on read, never stored, so a threshold change on
// the utility takes effect immediately.
type Note struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement"`
	Title     string         `gorm:"size:255;not null"`
	Content   string         `gorm:"type:text;not null"`
	NoteType  types.NoteType `gorm:"size:32;not null;index"`
	UserID    uint64         `gorm:"not null;index:idx_notes_user_created"`
	User      User
	CreatedAt time.Time `gorm:"index:idx_notes_user_created"`
	UpdatedAt time.Time
}

// TableName overrides the table name for Note
func (Note) TableName() string {
	return "notes"
}

// CountWords returns the number of whitespace-delimited tokens in content.
// Empty or blank content counts zero words.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// WordCount returns the word count of the note content.
func (n *Note) WordCount() int {
	return CountWords(n.Content)
}

// ContentLength classifies the note as short, medium or long against the
// utility thresholds. The cascade is monotonic in word count for a fixed
// utility; a crossed short/medium pair simply leaves the medium tier empty.
func (n *Note) ContentLength(u *Utility) string {
	wc := n.WordCount()
	switch {
	case wc <= u.MaxWordShortContent:
		return ContentLengthShort
	case wc <= u.MaxWordMediumContent:
		return ContentLengthMedium
	default:
		return ContentLengthLong
	}
}

// Validate checks the note against entity rules and the utility policy:
// title and content present, note type in the enum, and review-type notes
// within the utility review word limit. Critiques have no length ceiling.
// Pure derivation and checks only, persistence is the caller's concern.
func (n *Note) Validate(u *Utility) error {
	if strings.TrimSpace(n.Title) == "" || strings.TrimSpace(n.Content) == "" {
		return &types.CustomError{
			Code:    http.StatusBadRequest,
			Message: messages.Get(messages.ParamsMissing),
			Type:    "notes.validation.presence",
		}
	}

	if !n.NoteType.Valid() {
		return &types.CustomError{
			Code:    http.StatusUnprocessableEntity,
			Message: messages.Get(messages.InvalidNoteType),
			Type:    "notes.validation.note_type",
		}
	}

	if n.NoteType == types.NoteTypeReview && n.WordCount() > u.MaxWordValidReview {
		return &types.CustomError{
			Code:    http.StatusUnprocessableEntity,
			Message: messages.Getf(messages.ReviewWordCount, u.MaxWordValidReview),
			Type:    "notes.validation.review_word_count",
		}
	}

	return nil
}
