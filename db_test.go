package main

import (
	"fmt"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exam.db")
	db, err := OpenDB("sqlite", path, gormLogger.Default.LogMode(gormLogger.Silent))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	_ = sqlDB.Close()
}

func strPtr(s string) *string { return &s }

// seedTwoSubjects stores ids 1-4 under "S1" and 5-8 under "S2". Every
// question's correct option is A.
func seedTwoSubjects(t *testing.T, db *gorm.DB) {
	t.Helper()
	var rows []Question
	for i := int64(1); i <= 8; i++ {
		subject := "S1"
		if i > 4 {
			subject = "S2"
		}
		rows = append(rows, Question{
			ID:            i,
			QuestionNo:    int(i),
			Subject:       strPtr(subject),
			Question:      fmt.Sprintf("Question %d", i),
			OptionA:       fmt.Sprintf("q%d-a", i),
			OptionB:       fmt.Sprintf("q%d-b", i),
			OptionC:       fmt.Sprintf("q%d-c", i),
			OptionD:       fmt.Sprintf("q%d-d", i),
			CorrectOption: "A",
		})
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestOpenDBUnsupportedDriver(t *testing.T) {
	if _, err := OpenDB("oracle", "x", nil); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestIsQuestionTableEmpty(t *testing.T) {
	db := newTestDB(t)
	empty, err := IsQuestionTableEmpty(db)
	if err != nil || !empty {
		t.Fatalf("IsQuestionTableEmpty() = %v, %v; want true, nil", empty, err)
	}
	seedTwoSubjects(t, db)
	empty, err = IsQuestionTableEmpty(db)
	if err != nil || empty {
		t.Fatalf("IsQuestionTableEmpty() = %v, %v; want false, nil", empty, err)
	}
}
