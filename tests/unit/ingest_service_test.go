// ingest_service_test.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.
//

package unit

import (
	"testing"

	"github.com/wbooks/notes-api/internal/models"
	"github.com/wbooks/notes-api/internal/services"
	"github.com/wbooks/notes-api/tests/helpers"
)

const northBooksPayload = `{
	"libros": [
		{"id": 1, "titulo": "Rayuela", "autor": "Julio Cortazar", "genero": "novela",
		 "imagen_url": "https://img.example.com/rayuela.jpg", "editorial": "Sudamericana", "año": 1963},
		{"id": 2, "titulo": "Ficciones", "autor": "Jorge Luis Borges", "genero": "cuento",
		 "imagen_url": "", "editorial": "Sur", "año": "1944"}
	]
}`

const northNotesPayload = `{
	"notas": [
		{
			"titulo": "Una resenia corta", "tipo": "resenia", "fecha_creacion": "2021-05-10",
			"contenido": "me gusto mucho el final",
			"autor": {"datos_de_contacto": {"email": "maria@example.com"},
			          "datos_personales": {"nombre": "Maria", "apellido": "Gomez"}},
			"libro": {"titulo": "Rayuela", "autor": "Julio Cortazar", "genero": "novela"}
		},
		{
			"titulo": "Opinion", "tipo": "opinion", "fecha_creacion": "2021-05-11 09:30:00",
			"contenido": "el comienzo es lento",
			"autor": {"datos_de_contacto": {"email": "maria@example.com"},
			          "datos_personales": {"nombre": "Maria", "apellido": "Gomez"}},
			"libro": {"titulo": "Ficciones", "autor": "Jorge Luis Borges", "genero": "cuento"}
		}
	]
}`

func TestIngestBooks(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateNorthUtility(t, db)

	count, err := services.IngestBooks(db, utility, 200, []byte(northBooksPayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 books ingested, got %d", count)
	}

	var books []models.Book
	if err := db.Where("utility_id = ?", utility.ID).Order("id").Find(&books).Error; err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 persisted books, got %d", len(books))
	}
	if books[0].Title != "Rayuela" || books[0].Year != 1963 || books[0].Publisher != "Sudamericana" {
		t.Errorf("unexpected first book: %+v", books[0])
	}
	if books[1].Year != 1944 {
		t.Errorf("expected quoted year parsed, got %d", books[1].Year)
	}

	var record models.IngestionRecord
	if err := db.Where("utility_id = ? AND kind = ?", utility.ID, models.IngestionKindBooks).First(&record).Error; err != nil {
		t.Fatalf("expected an ingestion record: %v", err)
	}
	if record.StatusCode != 200 || record.ItemCount != 2 {
		t.Errorf("unexpected audit record: %+v", record)
	}
	if len(record.Payload.JSON) == 0 {
		t.Error("audit record should keep the raw payload")
	}
}

func TestIngestNotes(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateNorthUtility(t, db)

	count, err := services.IngestNotes(db, utility, 200, []byte(northNotesPayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 notes ingested, got %d", count)
	}

	// Both notes share an author, so exactly one account is created.
	var users []models.User
	if err := db.Where("utility_id = ?", utility.ID).Find(&users).Error; err != nil {
		t.Fatalf("find users failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 author account, got %d", len(users))
	}
	if users[0].Email != "maria@example.com" || users[0].FirstName != "Maria" || users[0].LastName != "Gomez" {
		t.Errorf("unexpected author: %+v", users[0])
	}
	if users[0].ExternalID == "" {
		t.Error("author should get an external id")
	}

	var notes []models.Note
	if err := db.Where("user_id = ?", users[0].ID).Order("id").Find(&notes).Error; err != nil {
		t.Fatalf("find notes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 persisted notes, got %d", len(notes))
	}
	if notes[0].NoteType != "review" || notes[1].NoteType != "critique" {
		t.Errorf("unexpected note types: %s, %s", notes[0].NoteType, notes[1].NoteType)
	}
	if notes[0].CreatedAt.Format("2006-01-02") != "2021-05-10" {
		t.Errorf("expected partner timestamp kept, got %s", notes[0].CreatedAt)
	}
}

func TestIngestNotesRejectsUnresolvedType(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateNorthUtility(t, db)

	// "sinapsis" is not a known north token, so the mapped type is empty and
	// entity validation aborts the whole batch.
	payload := `{
		"notas": [
			{
				"titulo": "Valida", "tipo": "critica", "fecha_creacion": "2021-05-10",
				"contenido": "bien",
				"autor": {"datos_de_contacto": {"email": "a@example.com"},
				          "datos_personales": {"nombre": "A", "apellido": "B"}},
				"libro": {"titulo": "L", "autor": "A", "genero": "G"}
			},
			{
				"titulo": "Invalida", "tipo": "sinapsis", "fecha_creacion": "2021-05-11",
				"contenido": "mal",
				"autor": {"datos_de_contacto": {"email": "c@example.com"},
				          "datos_personales": {"nombre": "C", "apellido": "D"}},
				"libro": {"titulo": "L", "autor": "A", "genero": "G"}
			}
		]
	}`

	if _, err := services.IngestNotes(db, utility, 200, []byte(payload)); err == nil {
		t.Fatal("expected the batch to be rejected")
	}

	var count int64
	db.Model(&models.Note{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected batch must leave no notes behind, got %d", count)
	}
	db.Model(&models.IngestionRecord{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected batch must leave no audit record, got %d", count)
	}
}

func TestIngestNotesEnforcesReviewCeiling(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateSouthUtility(t, db)

	long := helpers.WordsOfLength(101)
	payload := `{
		"Notas": [
			{
				"TituloNota": "Resenia larga", "ReseniaNota": true, "FechaCreacionNota": "2021-06-01",
				"Contenido": "` + long + `",
				"EmailAutor": "ana@example.com", "NombreCompletoAutor": "García Pérez",
				"TituloLibro": "El Aleph", "NombreAutorLibro": "Jorge Luis Borges", "GeneroLibro": "cuento"
			}
		]
	}`

	if _, err := services.IngestNotes(db, utility, 200, []byte(payload)); err == nil {
		t.Fatal("expected oversized review to abort the batch")
	}

	var count int64
	db.Model(&models.Note{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no notes persisted, got %d", count)
	}
}
