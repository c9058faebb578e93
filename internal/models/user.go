// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Accounts are created on registration
// and are never updated or deleted afterwards.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	Questions    []Question `gorm:"foreignKey:UserID" json:"questions,omitempty"`
}
