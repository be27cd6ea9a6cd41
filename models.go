package main

import (
	"time"

	"gorm.io/datatypes"
)

// --- Question bank ---

// Question is one row of the read-mostly question bank. Subject is NULL until
// the bank has been categorized by question_no ranges.
type Question struct {
	ID            int64   `gorm:"primaryKey" json:"id"`
	QuestionNo    int     `gorm:"index" json:"question_no"`
	Subject       *string `gorm:"index;size:128" json:"subject,omitempty"`
	Question      string  `gorm:"not null" json:"question"`
	OptionA       string  `gorm:"column:option_a" json:"option_a"`
	OptionB       string  `gorm:"column:option_b" json:"option_b"`
	OptionC       string  `gorm:"column:option_c" json:"option_c"`
	OptionD       string  `gorm:"column:option_d" json:"option_d"`
	CorrectOption string  `gorm:"size:1" json:"correct_option"`
}

// --- Visitor ---

type Visitor struct {
	ID        uint   `gorm:"primaryKey"`
	PublicID  string `gorm:"uniqueIndex;size:36;not null"` // UUID kept in the cookie
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SeenQuestion is one member of a visitor's seen record.
type SeenQuestion struct {
	VisitorID  uint      `gorm:"primaryKey;autoIncrement:false"`
	QuestionID int64     `gorm:"primaryKey;autoIncrement:false"`
	SeenAt     time.Time `gorm:"not null"`
}

// --- Attempts ---

type Attempt struct {
	ID              string         `gorm:"primaryKey;size:36"`
	VisitorID       *uint          `gorm:"index"`
	Subject         string         `gorm:"size:128;not null"`
	DurationMinutes int            `gorm:"not null"`
	Score           float64        `gorm:"not null"`
	Total           int            `gorm:"not null"`
	Correct         int            `gorm:"not null"`
	Wrong           int            `gorm:"not null"`
	Skipped         int            `gorm:"not null"`
	Flagged         int            `gorm:"not null"`
	Analysis        datatypes.JSON // []AnalysisItem
	SubmittedAt     time.Time      `gorm:"not null;index"`
}
