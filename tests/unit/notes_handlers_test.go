// notes_handlers_test.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.
//
// Handler tests against an in-memory sqlite database with the session
// middleware replaced by a stub that injects the caller directly.
//

package unit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wbooks/notes-api/internal/handlers"
	"github.com/wbooks/notes-api/internal/messages"
	"github.com/wbooks/notes-api/internal/middleware"
	"github.com/wbooks/notes-api/internal/models"
	"github.com/wbooks/notes-api/internal/types"
	"github.com/wbooks/notes-api/tests/helpers"
)

var dbSerial int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSerial++
	dsn := fmt.Sprintf("file:notes_handlers_%d?mode=memory&cache=shared", dbSerial)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Utility{}, &models.User{}, &models.Book{}, &models.Note{}, &models.IngestionRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// newTestApp wires the notes and users routes the way the server does, but
// with the auth middleware replaced by a stub that injects user directly.
func newTestApp(db *gorm.DB, user *models.User) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var cerr *types.CustomError
			if errors.As(err, &cerr) {
				return c.Status(cerr.Code).JSON(fiber.Map{"error": cerr.Message})
			}
			var ferr *fiber.Error
			if errors.As(err, &ferr) {
				return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	stubAuth := func(c *fiber.Ctx) error {
		c.Locals(middleware.CurrentUserKey, user)
		return c.Next()
	}

	notesHandler := &handlers.NotesHandler{DB: db}
	usersHandler := &handlers.UsersHandler{}

	v1 := app.Group("/api/v1", stubAuth)
	v1.Get("/notes", notesHandler.Index)
	v1.Get("/notes/:id", notesHandler.Show)
	v1.Post("/notes", notesHandler.Create)
	v1.Get("/users/current", usersHandler.Current)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body []byte) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestNotesIndexPagination(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateNorthUtility(t, db)
	user := helpers.CreateTestUser(t, db, utility, "reader@example.com")
	helpers.CreateTestNotes(t, db, user, "Nota", 5)
	app := newTestApp(db, user)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/notes?page=1&page_size=2&order=asc", nil)
	helpers.AssertStatus(t, resp, http.StatusOK)

	var notes []struct {
		ID            uint64 `json:"id"`
		Title         string `json:"title"`
		Type          string `json:"type"`
		ContentLength string `json:"content_length"`
	}
	helpers.ParseJSON(t, resp, &notes)
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes on page 1, got %d", len(notes))
	}
	if notes[0].Title != "Nota 1" || notes[1].Title != "Nota 2" {
		t.Errorf("expected earliest notes first, got %q, %q", notes[0].Title, notes[1].Title)
	}
	if notes[0].Type != "critique" || notes[0].ContentLength != "short" {
		t.Errorf("unexpected projection: %+v", notes[0])
	}

	// Last page is partial, past-the-end is empty.
	resp = doRequest(t, app, http.MethodGet, "/api/v1/notes?page=3&page_size=2", nil)
	helpers.ParseJSON(t, resp, &notes)
	if len(notes) != 1 || notes[0].Title != "Nota 5" {
		t.Errorf("expected partial last page with Nota 5, got %+v", notes)
	}
	resp = doRequest(t, app, http.MethodGet, "/api/v1/notes?page=9&page_size=2", nil)
	helpers.AssertStatus(t, resp, http.StatusOK)
	helpers.ParseJSON(t, resp, &notes)
	if len(notes) != 0 {
		t.Errorf("expected empty page past the end, got %+v", notes)
	}
}

func TestNotesIndexDescending(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateSouthUtility(t, db)
	user := helpers.CreateTestUser(t, db, utility, "reader@example.com")
	helpers.CreateTestNotes(t, db, user, "Nota", 3)
	app := newTestApp(db, user)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/notes?page=1&page_size=3&order=desc", nil)
	helpers.AssertStatus(t, resp, http.StatusOK)
	var notes []struct {
		Title string `json:"title"`
	}
	helpers.ParseJSON(t, resp, &notes)
	if len(notes) != 3 || notes[0].Title != "Nota 3" || notes[2].Title != "Nota 1" {
		t.Errorf("expected newest first, got %+v", notes)
	}
}

func TestNotesIndexFilters(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateNorthUtility(t, db)
	user := helpers.CreateTestUser(t, db, utility, "reader@example.com")
	helpers.CreateTestNote(t, db, user, "Resenia uno", types.NoteTypeReview, 10)
	helpers.CreateTestNote(t, db, user, "Critica uno", types.NoteTypeCritique, 10)
	helpers.CreateTestNote(t, db, user, "Resenia dos", types.NoteTypeReview, 10)
	app := newTestApp(db, user)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/notes?page=1&page_size=10&type=review", nil)
	helpers.AssertStatus(t, resp, http.StatusOK)
	var notes []struct {
		Title string `json:"title"`
		Type  string `json:"type"`
	}
	helpers.ParseJSON(t, resp, &notes)
	if len(notes) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(notes))
	}
	for _, n := range notes {
		if n.Type != "review" {
			t.Errorf("filter leaked a %s note: %+v", n.Type, n)
		}
	}

	resp = doRequest(t, app, http.MethodGet, "/api/v1/notes?page=1&page_size=10&title=Critica+uno", nil)
	helpers.ParseJSON(t, resp, &notes)
	if len(notes) != 1 || notes[0].Title != "Critica uno" {
		t.Errorf("expected exact title match, got %+v", notes)
	}
}

func TestNotesIndexScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateNorthUtility(t, db)
	owner := helpers.CreateTestUser(t, db, utility, "owner@example.com")
	other := helpers.CreateTestUser(t, db, utility, "other@example.com")
	helpers.CreateTestNotes(t, db, owner, "Mia", 2)
	helpers.CreateTestNotes(t, db, other, "Ajena", 3)
	app := newTestApp(db, owner)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/notes?page=1&page_size=10", nil)
	var notes []struct {
		Title string `json:"title"`
	}
	helpers.ParseJSON(t, resp, &notes)
	if len(notes) != 2 {
		t.Fatalf("expected only the caller's notes, got %+v", notes)
	}
}

func TestNotesIndexInvalidParams(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateNorthUtility(t, db)
	user := helpers.CreateTestUser(t, db, utility, "reader@example.com")
	app := newTestApp(db, user)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/notes?page=1&page_size=5&order=hola", nil)
	helpers.AssertStatus(t, resp, http.StatusUnprocessableEntity)
	helpers.AssertErrorMessage(t, resp, messages.Get(messages.InvalidOrderParam))

	for _, target := range []string{
		"/api/v1/notes?page=0&page_size=5",
		"/api/v1/notes?page_size=5",
		"/api/v1/notes?page=2",
		"/api/v1/notes?page=dos&page_size=5",
	} {
		resp := doRequest(t, app, http.MethodGet, target, nil)
		helpers.AssertStatus(t, resp, http.StatusUnprocessableEntity)
		helpers.AssertErrorMessage(t, resp, messages.Get(messages.InvalidPageParam))
	}
}

func TestNotesShow(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateSouthUtility(t, db)
	user := helpers.CreateTestUser(t, db, utility, "reader@example.com")
	note := helpers.CreateTestNote(t, db, user, "Mi resenia", types.NoteTypeReview, 67)
	app := newTestApp(db, user)

	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/notes/%d", note.ID), nil)
	helpers.AssertStatus(t, resp, http.StatusOK)

	var shown struct {
		ID            uint64 `json:"id"`
		Title         string `json:"title"`
		Content       string `json:"content"`
		Type          string `json:"type"`
		WordCount     int    `json:"word_count"`
		ContentLength string `json:"content_length"`
		User          struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	helpers.ParseJSON(t, resp, &shown)
	if shown.ID != note.ID || shown.Title != "Mi resenia" || shown.Type != "review" {
		t.Errorf("unexpected note projection: %+v", shown)
	}
	if shown.WordCount != 67 {
		t.Errorf("expected word count 67, got %d", shown.WordCount)
	}
	// 67 words sits in the south medium band (60 < wc <= 120).
	if shown.ContentLength != "medium" {
		t.Errorf("expected medium content length, got %s", shown.ContentLength)
	}
	if shown.User.Email != "reader@example.com" {
		t.Errorf("expected owner summary, got %+v", shown.User)
	}
}

func TestNotesShowNotFound(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateNorthUtility(t, db)
	user := helpers.CreateTestUser(t, db, utility, "reader@example.com")
	other := helpers.CreateTestUser(t, db, utility, "other@example.com")
	foreign := helpers.CreateTestNote(t, db, other, "Ajena", types.NoteTypeCritique, 5)
	app := newTestApp(db, user)

	// Missing note
	resp := doRequest(t, app, http.MethodGet, "/api/v1/notes/9999", nil)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
	helpers.AssertErrorMessage(t, resp, messages.Get(messages.NoteNotFound))

	// Another user's note looks identical to a missing one
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/notes/%d", foreign.ID), nil)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
	helpers.AssertErrorMessage(t, resp, messages.Get(messages.NoteNotFound))

	// Non-numeric id
	resp = doRequest(t, app, http.MethodGet, "/api/v1/notes/abc", nil)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
}

func TestNotesCreate(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateNorthUtility(t, db)
	user := helpers.CreateTestUser(t, db, utility, "writer@example.com")
	app := newTestApp(db, user)

	body, _ := json.Marshal(map[string]string{
		"title":   "Mi critica",
		"type":    "critique",
		"content": helpers.WordsOfLength(120),
	})
	resp := doRequest(t, app, http.MethodPost, "/api/v1/notes", body)
	helpers.AssertStatus(t, resp, http.StatusCreated)
	helpers.AssertMessage(t, resp, messages.Get(messages.SuccessNoteCreate))

	var count int64
	if err := db.Model(&models.Note{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 persisted note, got %d", count)
	}
}

func TestNotesCreateValidation(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateNorthUtility(t, db)
	user := helpers.CreateTestUser(t, db, utility, "writer@example.com")
	app := newTestApp(db, user)

	cases := []struct {
		name    string
		payload map[string]string
		status  int
		message string
	}{
		{
			"missing title",
			map[string]string{"type": "review", "content": "algo"},
			http.StatusBadRequest,
			messages.Get(messages.ParamsMissing),
		},
		{
			"missing content",
			map[string]string{"title": "Nota", "type": "review"},
			http.StatusBadRequest,
			messages.Get(messages.ParamsMissing),
		},
		{
			"unknown type",
			map[string]string{"title": "Nota", "type": "sinapsis", "content": "algo"},
			http.StatusUnprocessableEntity,
			messages.Get(messages.InvalidNoteType),
		},
		{
			"review over the ceiling",
			map[string]string{"title": "Nota", "type": "review", "content": helpers.WordsOfLength(51)},
			http.StatusUnprocessableEntity,
			messages.Getf(messages.ReviewWordCount, 50),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			body, _ := json.Marshal(c.payload)
			resp := doRequest(t, app, http.MethodPost, "/api/v1/notes", body)
			helpers.AssertStatus(t, resp, c.status)
			helpers.AssertErrorMessage(t, resp, c.message)
		})
	}

	var count int64
	db.Model(&models.Note{}).Count(&count)
	if count != 0 {
		t.Errorf("no note should persist on validation failure, got %d", count)
	}
}

func TestNotesCreateCeilingIsPerUtility(t *testing.T) {
	db := openTestDB(t)
	north := helpers.CreateNorthUtility(t, db)
	south := helpers.CreateSouthUtility(t, db)
	northUser := helpers.CreateTestUser(t, db, north, "north@example.com")
	southUser := helpers.CreateTestUser(t, db, south, "south@example.com")

	body, _ := json.Marshal(map[string]string{
		"title":   "Resenia de 80 palabras",
		"type":    "review",
		"content": helpers.WordsOfLength(80),
	})

	// 80 words is over the north ceiling of 50
	resp := doRequest(t, newTestApp(db, northUser), http.MethodPost, "/api/v1/notes", body)
	helpers.AssertStatus(t, resp, http.StatusUnprocessableEntity)
	helpers.AssertErrorMessage(t, resp, messages.Getf(messages.ReviewWordCount, 50))

	// but under the south ceiling of 100
	resp = doRequest(t, newTestApp(db, southUser), http.MethodPost, "/api/v1/notes", body)
	helpers.AssertStatus(t, resp, http.StatusCreated)
}

func TestUsersCurrent(t *testing.T) {
	db := openTestDB(t)
	utility := helpers.CreateSouthUtility(t, db)
	user := helpers.CreateTestUser(t, db, utility, "me@example.com")
	app := newTestApp(db, user)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/users/current", nil)
	helpers.AssertStatus(t, resp, http.StatusOK)

	var current struct {
		ID      uint64 `json:"id"`
		Email   string `json:"email"`
		Utility struct {
			Name string `json:"name"`
			Code int    `json:"code"`
		} `json:"utility"`
	}
	helpers.ParseJSON(t, resp, &current)
	if current.ID != user.ID || current.Email != "me@example.com" {
		t.Errorf("unexpected current user: %+v", current)
	}
	if current.Utility.Code != models.UtilityCodeSouth || current.Utility.Name != "Sur" {
		t.Errorf("unexpected utility summary: %+v", current.Utility)
	}
}
