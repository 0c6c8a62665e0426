package models

import (
	"time"
)

// Ingestion record kinds.
const (
	IngestionKindBooks = "books"
	IngestionKindNotes = "notes"
)

// IngestionRecord is the audit row written for every partner payload batch
// handed to the ingestion service. Payload keeps the raw body as received so
// a bad mapping can be replayed against a fixed mapper.
type IngestionRecord struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	UtilityID  uint64 `gorm:"not null;index"`
	Kind       string `gorm:"size:32;not null"`
	StatusCode int    `gorm:"not null"`
	Payload    JSON   `gorm:"type:json"`
	ItemCount  int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

// TableName overrides the table name for IngestionRecord
func (IngestionRecord) TableName() string {
	return "ingestion_records"
}
