// Package inmem provides in-memory repositories honoring the same contracts
// as the sqlx ones, including uniqueness semantics. Used as test doubles.
package inmem

import (
	"sync"

	"github.com/johnlouisuru/jstutorial-sub002/core/attempt"
	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
	"github.com/johnlouisuru/jstutorial-sub002/core/progress"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

type (
	attemptKey struct {
		studentID int
		quizID    int
	}

	progressKey struct {
		studentID int
		lessonID  int
	}

	// DB is the shared table space. A single lock guards all tables so the
	// attempt repository can emulate the store's cross-table transaction.
	DB struct {
		mu sync.RWMutex

		students map[int]*student.Student
		topics   map[int]*catalog.Topic
		lessons  map[int]*catalog.Lesson
		quizzes  map[int]*catalog.Quiz
		attempts map[attemptKey]*attempt.Attempt
		progress map[progressKey]*progress.Progress

		studentPK int
		attemptPK int
	}
)

func NewDB() *DB {
	return &DB{
		students: make(map[int]*student.Student),
		topics:   make(map[int]*catalog.Topic),
		lessons:  make(map[int]*catalog.Lesson),
		quizzes:  make(map[int]*catalog.Quiz),
		attempts: make(map[attemptKey]*attempt.Attempt),
		progress: make(map[progressKey]*progress.Progress),
	}
}
