// ingest_service.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wbooks/notes-api/internal/models"
	"github.com/wbooks/notes-api/internal/utility"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Timestamp layouts seen across partner feeds.
var partnerTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IngestBooks maps a fetched partner books response for the utility and
// persists the canonical rows plus an audit record with the raw payload.
// The fetch itself happens upstream; this consumes the (status, body) pair.
func IngestBooks(db *gorm.DB, u *models.Utility, statusCode int, body []byte) (int, error) {
	mapper, err := utility.MapperForUtility(u)
	if err != nil {
		return 0, err
	}

	env, err := mapper.RetrieveBooks(statusCode, body)
	if err != nil {
		return 0, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, mb := range env.Books {
			book := models.Book{
				UtilityID: u.ID,
				Title:     mb.Title,
				Author:    mb.Author,
				Genre:     mb.Genre,
				ImageURL:  mb.ImageURL,
				Publisher: mb.Publisher,
				Year:      mb.Year,
			}
			if err := tx.Create(&book).Error; err != nil {
				return fmt.Errorf("persist book %q: %w", mb.Title, err)
			}
		}
		return recordIngestion(tx, u, models.IngestionKindBooks, statusCode, body, len(env.Books))
	})
	if err != nil {
		return 0, err
	}

	return len(env.Books), nil
}

// IngestNotes maps a fetched partner notes response for the utility and
// persists the canonical notes under their authors, creating author accounts
// on first sight. The whole batch is one transaction: a note that fails
// entity validation (including an unresolved note type) aborts the batch.
func IngestNotes(db *gorm.DB, u *models.Utility, statusCode int, body []byte) (int, error) {
	mapper, err := utility.MapperForUtility(u)
	if err != nil {
		return 0, err
	}

	env, err := mapper.RetrieveNotes(statusCode, body)
	if err != nil {
		return 0, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, mn := range env.Notes {
			user, err := findOrCreateAuthor(tx, u, mn.User)
			if err != nil {
				return err
			}

			note := models.Note{
				Title:    mn.Title,
				Content:  mn.Content,
				NoteType: mn.Type,
				UserID:   user.ID,
			}
			if err := note.Validate(u); err != nil {
				return fmt.Errorf("note %q rejected: %w", mn.Title, err)
			}
			if ts, ok := parsePartnerTime(mn.CreatedAt); ok {
				note.CreatedAt = ts
			}

			if err := tx.Create(&note).Error; err != nil {
				return fmt.Errorf("persist note %q: %w", mn.Title, err)
			}
		}
		return recordIngestion(tx, u, models.IngestionKindNotes, statusCode, body, len(env.Notes))
	})
	if err != nil {
		return 0, err
	}

	return len(env.Notes), nil
}

// findOrCreateAuthor resolves a mapped author to a local account in the
// utility, creating one with a fresh external id when the email is new.
func findOrCreateAuthor(tx *gorm.DB, u *models.Utility, mu utility.MappedUser) (*models.User, error) {
	user := models.User{
		ExternalID: uuid.NewString(),
		Email:      mu.Email,
		FirstName:  mu.FirstName,
		LastName:   mu.LastName,
		UtilityID:  u.ID,
	}
	err := tx.Where("email = ?", mu.Email).FirstOrCreate(&user).Error
	if err != nil {
		return nil, fmt.Errorf("resolve author %q: %w", mu.Email, err)
	}
	return &user, nil
}

func recordIngestion(tx *gorm.DB, u *models.Utility, kind string, statusCode int, body []byte, count int) error {
	record := models.IngestionRecord{
		UtilityID:  u.ID,
		Kind:       kind,
		StatusCode: statusCode,
		Payload:    models.JSON{JSON: datatypes.JSON(body)},
		ItemCount:  count,
	}
	return tx.Create(&record).Error
}

// parsePartnerTime tries the known partner timestamp layouts.
func parsePartnerTime(raw string) (time.Time, bool) {
	for _, layout := range partnerTimeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
