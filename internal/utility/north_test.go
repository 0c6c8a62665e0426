package utility

import (
	"testing"

	"github.com/wbooks/notes-api/internal/types"
)

const northBooksBody = `{
	"libros": [
		{
			"id": 7,
			"titulo": "Rayuela",
			"autor": "Julio Cortazar",
			"genero": "novela",
			"imagen_url": "https://img.example.com/rayuela.jpg",
			"editorial": "Sudamericana",
			"año": 1963
		},
		{
			"id": 8,
			"titulo": "Ficciones",
			"autor": "Jorge Luis Borges",
			"genero": "cuento",
			"imagen_url": "",
			"editorial": "Sur",
			"año": "1944"
		}
	]
}`

func TestNorthRetrieveBooks(t *testing.T) {
	env, err := NorthResponseMapper{}.RetrieveBooks(200, []byte(northBooksBody))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(env.Books))
	}

	b := env.Books[0]
	if b.ID != 7 || b.Title != "Rayuela" || b.Author != "Julio Cortazar" ||
		b.Genre != "novela" || b.Publisher != "Sudamericana" || b.Year != 1963 {
		t.Errorf("unexpected first book: %+v", b)
	}
	if b.ImageURL != "https://img.example.com/rayuela.jpg" {
		t.Errorf("unexpected image url: %s", b.ImageURL)
	}

	// Year arrives as a quoted string in some North payloads.
	if env.Books[1].Year != 1944 {
		t.Errorf("expected year 1944 from string, got %d", env.Books[1].Year)
	}
}

func TestNorthRetrieveBooksSingleObject(t *testing.T) {
	body := `{"libros": {"id": 1, "titulo": "Solo", "autor": "A", "genero": "g", "imagen_url": "", "editorial": "E", "año": 2000}}`
	env, err := NorthResponseMapper{}.RetrieveBooks(200, []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Books) != 1 || env.Books[0].Title != "Solo" {
		t.Errorf("expected lone object promoted to a one-element list, got %+v", env.Books)
	}
}

func TestNorthRetrieveNotes(t *testing.T) {
	body := `{
		"notas": [
			{
				"titulo": "Una resenia",
				"tipo": "Resenia",
				"fecha_creacion": "2021-05-10",
				"contenido": "me gusto mucho",
				"autor": {
					"datos_de_contacto": {"email": "maria@example.com"},
					"datos_personales": {"nombre": "Maria", "apellido": "Gomez"}
				},
				"libro": {"titulo": "Rayuela", "autor": "Julio Cortazar", "genero": "novela"}
			},
			{
				"titulo": "Opinion fuerte",
				"tipo": "opinion",
				"fecha_creacion": "2021-05-11",
				"contenido": "no me convencio",
				"autor": {
					"datos_de_contacto": {"email": "pedro@example.com"},
					"datos_personales": {"nombre": "Pedro", "apellido": "Paramo"}
				},
				"libro": {"titulo": "Ficciones", "autor": "Jorge Luis Borges", "genero": "cuento"}
			}
		]
	}`

	env, err := NorthResponseMapper{}.RetrieveNotes(200, []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(env.Notes))
	}

	n := env.Notes[0]
	if n.Title != "Una resenia" || n.Content != "me gusto mucho" || n.CreatedAt != "2021-05-10" {
		t.Errorf("unexpected note fields: %+v", n)
	}
	if n.Type != types.NoteTypeReview {
		t.Errorf("Resenia should map to review case-insensitively, got %q", n.Type)
	}
	if n.User.Email != "maria@example.com" || n.User.FirstName != "Maria" || n.User.LastName != "Gomez" {
		t.Errorf("unexpected author: %+v", n.User)
	}
	if n.Book.Title != "Rayuela" || n.Book.Author != "Julio Cortazar" || n.Book.Genre != "novela" {
		t.Errorf("unexpected book ref: %+v", n.Book)
	}

	if env.Notes[1].Type != types.NoteTypeCritique {
		t.Errorf("opinion should map to critique, got %q", env.Notes[1].Type)
	}
}

func TestNorthNoteTypeTokens(t *testing.T) {
	cases := []struct {
		token string
		want  types.NoteType
	}{
		{"opinion", types.NoteTypeCritique},
		{"critica", types.NoteTypeCritique},
		{"CRITICA", types.NoteTypeCritique},
		{"resenia", types.NoteTypeReview},
		{" Resenia ", types.NoteTypeReview},
		{"sinapsis", ""},
		{"", ""},
	}
	for _, c := range cases {
		body := `{"notas": [{"titulo": "t", "tipo": "` + c.token + `", "fecha_creacion": "2021-01-01", "contenido": "c",
			"autor": {"datos_de_contacto": {"email": "a@b.c"}, "datos_personales": {"nombre": "N", "apellido": "A"}},
			"libro": {"titulo": "L", "autor": "A", "genero": "G"}}]}`
		env, err := NorthResponseMapper{}.RetrieveNotes(200, []byte(body))
		if err != nil {
			t.Fatalf("token %q: unexpected error: %v", c.token, err)
		}
		if env.Notes[0].Type != c.want {
			t.Errorf("token %q: got %q, want %q", c.token, env.Notes[0].Type, c.want)
		}
	}
}

func TestNorthRetrieveBooksMalformed(t *testing.T) {
	if _, err := (NorthResponseMapper{}).RetrieveBooks(200, []byte(`{"libros": 12}`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}
