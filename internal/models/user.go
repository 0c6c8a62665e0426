package models

import (
	"time"
)

// User is an account owned by exactly one utility. Accounts are provisioned
// by the external identity service; ExternalID carries the authorizer subject
// id so sessions can be matched back to a local row.
type User struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	ExternalID string `gorm:"type:char(36);index"`
	Email      string `gorm:"size:255;not null;uniqueIndex"`
	FirstName  string `gorm:"size:255"`
	LastName   string `gorm:"size:255"`
	UtilityID  uint64 `gorm:"not null;index"`
	Utility    Utility
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Notes []Note `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
