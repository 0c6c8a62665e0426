// params.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

// Package params validates and normalizes inbound request parameters for the
// notes API. Validation is ordered and first-failure-wins: order, then page,
// then page_size for listings; key rename, required presence, enum membership,
// then the review word ceiling for creation. All failures are reported before
// any persistence is attempted.
package params

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wbooks/notes-api/internal/messages"
	"github.com/wbooks/notes-api/internal/models"
	"github.com/wbooks/notes-api/internal/types"
)

// Orderings accepted by the list endpoint.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// filterKeyMapping renames external filter keys to their internal column
// names before they are applied. Keys not in the allow list are dropped.
var filterKeyMapping = map[string]string{
	"type":  "note_type",
	"title": "title",
}

// ListParams is the normalized parameter bundle for the list operation.
type ListParams struct {
	Page     int
	PageSize int
	Order    string
	// Filters holds allow-listed exact-match filters keyed by column name.
	Filters map[string]string
}

// Offset returns the row offset for the 1-indexed page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// CreateParams is the normalized payload for note creation.
type CreateParams struct {
	Title    string
	NoteType types.NoteType
	Content  string
}

// ParseList validates the raw query parameters of a list request and returns
// the normalized bundle, or the first validation failure in fixed order.
func ParseList(query map[string]string) (ListParams, error) {
	p := ListParams{Order: OrderAsc, Filters: map[string]string{}}

	if order, ok := query["order"]; ok && order != "" {
		if order != OrderAsc && order != OrderDesc {
			return p, &types.CustomError{
				Code:    http.StatusUnprocessableEntity,
				Message: messages.Get(messages.InvalidOrderParam),
				Type:    "notes.validation.order",
			}
		}
		p.Order = order
	}

	page, err := parsePositiveInt(query["page"])
	if err != nil {
		return p, invalidPageError()
	}
	p.Page = page

	pageSize, err := parsePositiveInt(query["page_size"])
	if err != nil {
		return p, invalidPageError()
	}
	p.PageSize = pageSize

	for external, internal := range filterKeyMapping {
		if v, ok := query[external]; ok && v != "" {
			p.Filters[internal] = v
		}
	}

	return p, nil
}

// ParseCreate validates a creation payload. The external field named "type"
// is the note type; maxReviewWords is the owning utility's review ceiling.
func ParseCreate(title, noteType, content string, maxReviewWords int) (CreateParams, error) {
	p := CreateParams{}

	if strings.TrimSpace(title) == "" || strings.TrimSpace(noteType) == "" || strings.TrimSpace(content) == "" {
		return p, &types.CustomError{
			Code:    http.StatusBadRequest,
			Message: messages.Get(messages.ParamsMissing),
			Type:    "notes.validation.presence",
		}
	}

	nt := types.NoteType(noteType)
	if !nt.Valid() {
		return p, &types.CustomError{
			Code:    http.StatusUnprocessableEntity,
			Message: messages.Get(messages.InvalidNoteType),
			Type:    "notes.validation.note_type",
		}
	}

	if nt == types.NoteTypeReview && models.CountWords(content) > maxReviewWords {
		return p, &types.CustomError{
			Code:    http.StatusUnprocessableEntity,
			Message: messages.Getf(messages.ReviewWordCount, maxReviewWords),
			Type:    "notes.validation.review_word_count",
		}
	}

	p.Title = title
	p.NoteType = nt
	p.Content = content
	return p, nil
}

// parsePositiveInt parses a required positive integer parameter.
func parsePositiveInt(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func invalidPageError() *types.CustomError {
	return &types.CustomError{
		Code:    http.StatusUnprocessableEntity,
		Message: messages.Get(messages.InvalidPageParam),
		Type:    "notes.validation.page",
	}
}
