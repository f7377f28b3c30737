package inmem

import (
	"context"

	"github.com/johnlouisuru/jstutorial-sub002/core/attempt"
)

type attemptRepository struct {
	db *DB
}

var _ attempt.Repository = (*attemptRepository)(nil) // interface compliance check

func NewAttemptRepository(db *DB) *attemptRepository {
	return &attemptRepository{db: db}
}

// CreateAttempt mirrors the transactional store: the insert and the score
// credit happen under one lock, and a duplicate (student, quiz) key rejects
// the whole operation with ErrAttemptExists.
func (repo *attemptRepository) CreateAttempt(_ context.Context, att attempt.Attempt, points int) (attempt.Attempt, int, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	key := attemptKey{studentID: att.StudentID, quizID: att.QuizID}
	if _, ok := repo.db.attempts[key]; ok {
		return attempt.Attempt{}, 0, attempt.ErrAttemptExists
	}

	stu, ok := repo.db.students[att.StudentID]
	if !ok || stu.DeletedAt.Valid {
		return attempt.Attempt{}, 0, attempt.ErrNotFound
	}

	repo.db.attemptPK++
	att.ID = repo.db.attemptPK
	repo.db.attempts[key] = &att
	stu.Score += points
	return att, stu.Score, nil
}

func (repo *attemptRepository) GetAttempt(_ context.Context, studentID, quizID int) (attempt.Attempt, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if att, ok := repo.db.attempts[attemptKey{studentID: studentID, quizID: quizID}]; ok {
		return *att, nil
	}
	return attempt.Attempt{}, attempt.ErrNotFound
}
