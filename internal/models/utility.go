// utility.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

package models

import (
	"time"
)

// Utility codes identify the partner integration behind a tenant.
const (
	UtilityCodeNorth = 1
	UtilityCodeSouth = 2
)

// Utility is a tenant: an organizational scope that owns users and defines
// the content-length and review-length word thresholds applied to their notes.
// Thresholds are administered out of band and are immutable during a request.
type Utility struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:255;not null"`
	Code int    `gorm:"uniqueIndex;not null"`

	// Partner integration endpoints and credentials
	BaseURL                      string `gorm:"size:255"`
	ExternalAPIKey               string `gorm:"size:255"`
	ExternalAPISecret            string `gorm:"size:255"`
	ExternalAPIAuthenticationURL string `gorm:"size:255"`
	BooksDataURL                 string `gorm:"size:255"`
	NotesDataURL                 string `gorm:"size:255"`

	// Word-count thresholds. Short/medium bound the content-length tiers,
	// the review limit caps how long a review-type note may be.
	MaxWordShortContent  int `gorm:"not null;default:0"`
	MaxWordMediumContent int `gorm:"not null;default:0"`
	MaxWordValidReview   int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Utility
func (Utility) TableName() string {
	return "utilities"
}
