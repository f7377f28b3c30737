package inmem

import (
	"context"
	"time"

	"github.com/johnlouisuru/jstutorial-sub002/core/progress"
)

type progressRepository struct {
	db *DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) MarkCompleted(_ context.Context, studentID, lessonID int, at time.Time) (progress.Progress, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	key := progressKey{studentID: studentID, lessonID: lessonID}
	p, ok := repo.db.progress[key]
	if !ok {
		p = &progress.Progress{StudentID: studentID, LessonID: lessonID}
		repo.db.progress[key] = p
	}
	p.IsCompleted = true
	p.CompletedAt.SetValid(at.UTC())
	p.LastAccessed = at.UTC()
	return *p, nil
}

func (repo *progressRepository) ResetCompleted(_ context.Context, studentID, lessonID int, at time.Time) (progress.Progress, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	p, ok := repo.db.progress[progressKey{studentID: studentID, lessonID: lessonID}]
	if !ok {
		return progress.Progress{}, progress.ErrNotFound
	}
	p.IsCompleted = false
	p.CompletedAt.Valid = false
	p.CompletedAt.Time = time.Time{}
	p.LastAccessed = at.UTC()
	return *p, nil
}

func (repo *progressRepository) GetProgress(_ context.Context, studentID, lessonID int) (progress.Progress, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if p, ok := repo.db.progress[progressKey{studentID: studentID, lessonID: lessonID}]; ok {
		return *p, nil
	}
	return progress.Progress{}, progress.ErrNotFound
}
