package models

import "time"

// Answer belongs to exactly one Question and one User. Answer text is
// limited to 64 characters by the schema and is not unique.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Text       string    `gorm:"column:answer_text;size:64;not null" json:"text"`
	QuestionID uint      `gorm:"not null" json:"question_id"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt  time.Time `json:"created_at"`
}
