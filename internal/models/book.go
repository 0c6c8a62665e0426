package models

import (
	"time"
)

// Book is a catalog entry. Rows are created either by the back office or by
// partner ingestion, in which case UserID is nil.
type Book struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	UtilityID uint64  `gorm:"not null;index"`
	UserID    *uint64 `gorm:"index"`
	Title     string  `gorm:"size:255;not null"`
	Author    string  `gorm:"size:255"`
	Genre     string  `gorm:"size:255"`
	ImageURL  string  `gorm:"size:255"`
	Publisher string  `gorm:"size:255"`
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Book
func (Book) TableName() string {
	return "books"
}
