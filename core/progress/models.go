package progress

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Progress is the per-student, per-lesson completion record. One row per
// (student, lesson); an absent row means "not started".
type Progress struct {
	StudentID    int       `json:"student_id"`
	LessonID     int       `json:"lesson_id"`
	IsCompleted  bool      `json:"is_completed"`
	CompletedAt  null.Time `json:"completed_at"`
	LastAccessed time.Time `json:"last_accessed"` // UTC
}
