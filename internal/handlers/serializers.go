// serializers.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

package handlers

import (
	"time"

	"github.com/wbooks/notes-api/internal/models"
	"github.com/wbooks/notes-api/internal/types"
)

// IndexNote is the reduced note projection returned by listings.
// Content is intentionally omitted.
type IndexNote struct {
	ID            uint64         `json:"id"`
	Title         string         `json:"title"`
	Type          types.NoteType `json:"type"`
	ContentLength string         `json:"content_length"`
}

// UserSummary is the owner summary embedded in the full note projection.
type UserSummary struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ShowNote is the full note projection returned by single fetch.
type ShowNote struct {
	ID            uint64         `json:"id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Type          types.NoteType `json:"type"`
	WordCount     int            `json:"word_count"`
	ContentLength string         `json:"content_length"`
	CreatedAt     time.Time      `json:"created_at"`
	User          UserSummary    `json:"user"`
}

// CurrentUser is the projection returned by the users/current endpoint.
type CurrentUser struct {
	ID        uint64         `json:"id"`
	Email     string         `json:"email"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Utility   UtilitySummary `json:"utility"`
}

// UtilitySummary is the owning-tenant summary embedded in user projections.
type UtilitySummary struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Code int    `json:"code"`
}

// newIndexNotes builds the listing projection. Content length is derived per
// note against the owner utility's thresholds, never read from storage.
func newIndexNotes(notes []models.Note, u *models.Utility) []IndexNote {
	out := make([]IndexNote, 0, len(notes))
	for i := range notes {
		note := &notes[i]
		out = append(out, IndexNote{
			ID:            note.ID,
			Title:         note.Title,
			Type:          note.NoteType,
			ContentLength: note.ContentLength(u),
		})
	}
	return out
}

func newShowNote(note *models.Note, owner *models.User) ShowNote {
	return ShowNote{
		ID:            note.ID,
		Title:         note.Title,
		Content:       note.Content,
		Type:          note.NoteType,
		WordCount:     note.WordCount(),
		ContentLength: note.ContentLength(&owner.Utility),
		CreatedAt:     note.CreatedAt,
		User: UserSummary{
			ID:        owner.ID,
			Email:     owner.Email,
			FirstName: owner.FirstName,
			LastName:  owner.LastName,
		},
	}
}

func newCurrentUser(user *models.User) CurrentUser {
	return CurrentUser{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Utility: UtilitySummary{
			ID:   user.Utility.ID,
			Name: user.Utility.Name,
			Code: user.Utility.Code,
		},
	}
}
