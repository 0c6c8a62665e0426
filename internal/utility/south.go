// south.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

package utility

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wbooks/notes-api/internal/types"
)

// SouthResponseMapper normalizes the South partner's payloads. South sends
// capitalized Spanish field names, signals review-vs-critique with a boolean,
// and packs the author name into a single "last first" field.
type SouthResponseMapper struct{}

type southBook struct {
	ID        uint64        `json:"Id"`
	Titulo    string        `json:"Titulo"`
	Autor     string        `json:"Autor"`
	Genero    string        `json:"Genero"`
	ImagenURL string        `json:"ImagenUrl"`
	Editorial string        `json:"Editorial"`
	Anio      types.FlexInt `json:"Año"`
}

type southNote struct {
	TituloNota          string `json:"TituloNota"`
	ReseniaNota         bool   `json:"ReseniaNota"`
	FechaCreacionNota   string `json:"FechaCreacionNota"`
	Contenido           string `json:"Contenido"`
	EmailAutor          string `json:"EmailAutor"`
	NombreCompletoAutor string `json:"NombreCompletoAutor"`
	TituloLibro         string `json:"TituloLibro"`
	NombreAutorLibro    string `json:"NombreAutorLibro"`
	GeneroLibro         string `json:"GeneroLibro"`
}

// RetrieveBooks maps a South books response body into the canonical envelope.
func (SouthResponseMapper) RetrieveBooks(_ int, body []byte) (BooksEnvelope, error) {
	var raw struct {
		Libros types.FlexList[southBook] `json:"Libros"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return BooksEnvelope{}, fmt.Errorf("south books payload: %w", err)
	}

	books := make([]MappedBook, 0, len(raw.Libros))
	for _, b := range raw.Libros.Slice() {
		books = append(books, MappedBook{
			ID:        b.ID,
			Title:     b.Titulo,
			Author:    b.Autor,
			Genre:     b.Genero,
			ImageURL:  b.ImagenURL,
			Publisher: b.Editorial,
			Year:      b.Anio.Int(),
		})
	}
	return BooksEnvelope{Books: books}, nil
}

// RetrieveNotes maps a South notes response body into the canonical envelope.
func (SouthResponseMapper) RetrieveNotes(_ int, body []byte) (NotesEnvelope, error) {
	var raw struct {
		Notas types.FlexList[southNote] `json:"Notas"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return NotesEnvelope{}, fmt.Errorf("south notes payload: %w", err)
	}

	notes := make([]MappedNote, 0, len(raw.Notas))
	for _, n := range raw.Notas.Slice() {
		firstName, lastName := splitFullName(n.NombreCompletoAutor)
		notes = append(notes, MappedNote{
			Title:     n.TituloNota,
			Type:      southNoteType(n.ReseniaNota),
			CreatedAt: n.FechaCreacionNota,
			Content:   n.Contenido,
			User: MappedUser{
				Email:     n.EmailAutor,
				FirstName: firstName,
				LastName:  lastName,
			},
			Book: MappedBookRef{
				Title:  n.TituloLibro,
				Author: n.NombreAutorLibro,
				Genre:  n.GeneroLibro,
			},
		})
	}
	return NotesEnvelope{Notes: notes}, nil
}

// splitFullName splits the South combined author name on the first whitespace.
// The field is ordered "last first", the reverse of North's separate fields.
func splitFullName(fullName string) (firstName, lastName string) {
	parts := strings.SplitN(fullName, " ", 2)
	lastName = parts[0]
	if len(parts) > 1 {
		firstName = parts[1]
	}
	return firstName, lastName
}

func southNoteType(esResenia bool) types.NoteType {
	if esResenia {
		return types.NoteTypeReview
	}
	return types.NoteTypeCritique
}
