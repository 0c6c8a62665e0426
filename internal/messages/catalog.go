// catalog.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

// Package messages is the keyed message catalog for user-facing API text.
// Handlers and validators select a key, the catalog owns the wording. Keys
// mirror the i18n catalog of the legacy notes service so log greps carry over.
package messages

import "fmt"

const (
	InvalidOrderParam = "invalid_order_param"
	InvalidPageParam  = "invalid_page_param"
	ParamsMissing     = "params_missing"
	InvalidNoteType   = "invalid_note_type"
	ReviewWordCount   = "review_word_count"
	SuccessNoteCreate = "success_note_create"
	NoteNotFound      = "note_not_found"
	Unauthorized      = "unauthorized"
)

var catalog = map[string]string{
	InvalidOrderParam: "order must be one of: asc, desc",
	InvalidPageParam:  "page and page_size are required and must be positive integers",
	ParamsMissing:     "title, type and content are required",
	InvalidNoteType:   "note type must be one of: review, critique",
	ReviewWordCount:   "review content exceeds the maximum of %d words",
	SuccessNoteCreate: "note successfully created",
	NoteNotFound:      "note not found",
	Unauthorized:      "authentication required",
}

// Get returns the message for key, or the key itself when the catalog has no
// entry, so a missing translation never turns into an empty response body.
func Get(key string) string {
	if msg, ok := catalog[key]; ok {
		return msg
	}
	return key
}

// Getf returns the message for key with interpolation data applied.
func Getf(key string, args ...interface{}) string {
	return fmt.Sprintf(Get(key), args...)
}
