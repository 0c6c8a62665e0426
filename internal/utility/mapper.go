// mapper.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

// Package utility normalizes partner API payloads into the canonical book and
// note shapes. Each partner (selected by utility code) has its own mapper;
// all mappers are stateless pure functions over the payload bytes and are
// safe to invoke concurrently.
package utility

import (
	"fmt"

	"github.com/wbooks/notes-api/internal/models"
	"github.com/wbooks/notes-api/internal/types"
)

// MappedBook is the canonical book shape produced from a partner payload.
type MappedBook struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	ImageURL  string `json:"image_url"`
	Publisher string `json:"publisher"`
	Year      int    `json:"year"`
}

// MappedUser is the author summary embedded in a canonical note.
type MappedUser struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MappedBookRef is the book summary embedded in a canonical note.
type MappedBookRef struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

// MappedNote is the canonical note shape produced from a partner payload.
// Type is empty when the partner token did not resolve to a known note type;
// downstream validation rejects such notes instead of defaulting.
type MappedNote struct {
	Title     string         `json:"title"`
	Type      types.NoteType `json:"type"`
	CreatedAt string         `json:"created_at"`
	Content   string         `json:"content"`
	User      MappedUser     `json:"user"`
	Book      MappedBookRef  `json:"book"`
}

// BooksEnvelope is the canonical books batch handed to persistence.
type BooksEnvelope struct {
	Books []MappedBook `json:"books"`
}

// NotesEnvelope is the canonical notes batch handed to persistence.
type NotesEnvelope struct {
	Notes []MappedNote `json:"notes"`
}

// ResponseMapper translates one partner's raw API responses into the
// canonical envelopes. The status code is passed through from the fetch for
// mappers that need it; the current partners do not.
type ResponseMapper interface {
	RetrieveBooks(statusCode int, body []byte) (BooksEnvelope, error)
	RetrieveNotes(statusCode int, body []byte) (NotesEnvelope, error)
}

// MapperForUtility selects the response mapper for a utility by partner code.
func MapperForUtility(u *models.Utility) (ResponseMapper, error) {
	switch u.Code {
	case models.UtilityCodeNorth:
		return NorthResponseMapper{}, nil
	case models.UtilityCodeSouth:
		return SouthResponseMapper{}, nil
	default:
		return nil, fmt.Errorf("no response mapper for utility code %d", u.Code)
	}
}
