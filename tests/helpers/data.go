// data.go
//
// Test data builders for the notes/books domain.
//

package helpers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wbooks/notes-api/internal/models"
	"github.com/wbooks/notes-api/internal/types"
)

// CreateNorthUtility persists the north partner utility with its content
// length thresholds.
func CreateNorthUtility(t *testing.T, db *gorm.DB) *models.Utility {
	t.Helper()
	u := &models.Utility{
		Name:                 "Norte",
		Code:                 models.UtilityCodeNorth,
		MaxWordShortContent:  50,
		MaxWordMediumContent: 100,
		MaxWordValidReview:   50,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create north utility: %v", err)
	}
	return u
}

// CreateSouthUtility persists the south partner utility with its content
// length thresholds.
func CreateSouthUtility(t *testing.T, db *gorm.DB) *models.Utility {
	t.Helper()
	u := &models.Utility{
		Name:                 "Sur",
		Code:                 models.UtilityCodeSouth,
		MaxWordShortContent:  60,
		MaxWordMediumContent: 120,
		MaxWordValidReview:   100,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create south utility: %v", err)
	}
	return u
}

// CreateTestUser persists a user that belongs to the given utility.
func CreateTestUser(t *testing.T, db *gorm.DB, utility *models.Utility, email string) *models.User {
	t.Helper()
	user := &models.User{
		ExternalID: uuid.NewString(),
		Email:      email,
		FirstName:  "Test",
		LastName:   "User",
		UtilityID:  utility.ID,
		Utility:    *utility,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

// CreateTestNote persists a note owned by the given user.
func CreateTestNote(t *testing.T, db *gorm.DB, user *models.User, title string, noteType types.NoteType, words int) *models.Note {
	t.Helper()
	note := &models.Note{
		Title:    title,
		Content:  WordsOfLength(words),
		NoteType: noteType,
		UserID:   user.ID,
	}
	if err := db.Create(note).Error; err != nil {
		t.Fatalf("failed to create note %s: %v", title, err)
	}
	return note
}

// CreateTestNotes persists count notes owned by the given user, titled
// "<prefix> 1" through "<prefix> N" in creation order.
func CreateTestNotes(t *testing.T, db *gorm.DB, user *models.User, prefix string, count int) []*models.Note {
	t.Helper()
	notes := make([]*models.Note, 0, count)
	for i := 1; i <= count; i++ {
		notes = append(notes, CreateTestNote(t, db, user, fmt.Sprintf("%s %d", prefix, i), types.NoteTypeCritique, 10))
	}
	return notes
}

// WordsOfLength returns content with exactly n words.
func WordsOfLength(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}
