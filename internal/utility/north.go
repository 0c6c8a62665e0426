// north.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

package utility

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wbooks/notes-api/internal/types"
)

// northNoteTypes maps the North partner's note type tokens to the canonical
// enum. Lookup is case-insensitive; an unmapped token yields an empty type.
var northNoteTypes = map[string]types.NoteType{
	"opinion": types.NoteTypeCritique,
	"critica": types.NoteTypeCritique,
	"resenia": types.NoteTypeReview,
}

// NorthResponseMapper normalizes the North partner's payloads. North sends
// lowercase Spanish field names, a free-form note type token, and nests the
// author's contact and personal data.
type NorthResponseMapper struct{}

type northBook struct {
	ID        uint64        `json:"id"`
	Titulo    string        `json:"titulo"`
	Autor     string        `json:"autor"`
	Genero    string        `json:"genero"`
	ImagenURL string        `json:"imagen_url"`
	Editorial string        `json:"editorial"`
	Anio      types.FlexInt `json:"año"`
}

type northNote struct {
	Titulo        string `json:"titulo"`
	Tipo          string `json:"tipo"`
	FechaCreacion string `json:"fecha_creacion"`
	Contenido     string `json:"contenido"`
	Autor         struct {
		DatosDeContacto struct {
			Email string `json:"email"`
		} `json:"datos_de_contacto"`
		DatosPersonales struct {
			Nombre   string `json:"nombre"`
			Apellido string `json:"apellido"`
		} `json:"datos_personales"`
	} `json:"autor"`
	Libro struct {
		Titulo string `json:"titulo"`
		Autor  string `json:"autor"`
		Genero string `json:"genero"`
	} `json:"libro"`
}

// RetrieveBooks maps a North books response body into the canonical envelope.
func (NorthResponseMapper) RetrieveBooks(_ int, body []byte) (BooksEnvelope, error) {
	var raw struct {
		Libros types.FlexList[northBook] `json:"libros"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return BooksEnvelope{}, fmt.Errorf("north books payload: %w", err)
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

// RetrieveNotes maps a North notes response body into the canonical envelope.
// Notes with an unrecognized type token keep an empty Type so downstream
// validation can reject them explicitly.
func (NorthResponseMapper) RetrieveNotes(_ int, body []byte) (NotesEnvelope, error) {
	var raw struct {
		Notas types.FlexList[northNote] `json:"notas"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return NotesEnvelope{}, fmt.Errorf("north notes payload: %w", err)
	}

	notes := make([]MappedNote, 0, len(raw.Notas))
	for _, n := range raw.Notas.Slice() {
		notes = append(notes, MappedNote{
			Title:     n.Titulo,
			Type:      northNoteTypes[strings.ToLower(strings.TrimSpace(n.Tipo))],
			CreatedAt: n.FechaCreacion,
			Content:   n.Contenido,
			User: MappedUser{
				Email:     n.Autor.DatosDeContacto.Email,
				FirstName: n.Autor.DatosPersonales.Nombre,
				LastName:  n.Autor.DatosPersonales.Apellido,
			},
			Book: MappedBookRef{
				Title:  n.Libro.Titulo,
				Author: n.Libro.Autor,
				Genre:  n.Libro.Genero,
			},
		})
	}
	return NotesEnvelope{Notes: notes}, nil
}
