package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/johnlouisuru/jstutorial-sub002/core/progress"
)

type progressRow struct {
	StudentID    int       `db:"student_id"`
	LessonID     int       `db:"lesson_id"`
	IsCompleted  bool      `db:"is_completed"`
	CompletedAt  null.Time `db:"completed_at"`
	LastAccessed time.Time `db:"last_accessed"`
}

func (r progressRow) domain() progress.Progress {
	return progress.Progress(r)
}

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

// MarkCompleted converges to the same completed state no matter how often it
// runs; completed-at and last-accessed are refreshed every time.
func (repo progressRepository) MarkCompleted(ctx context.Context, studentID, lessonID int, at time.Time) (progress.Progress, error) {
	var row progressRow
	err := repo.db.GetContext(ctx, &row,
		`INSERT INTO progress (student_id, lesson_id, is_completed, completed_at, last_accessed)
		 VALUES ($1, $2, true, $3, $3)
		 ON CONFLICT (student_id, lesson_id) DO UPDATE
		   SET is_completed = true, completed_at = EXCLUDED.completed_at, last_accessed = EXCLUDED.last_accessed
		 RETURNING student_id, lesson_id, is_completed, completed_at, last_accessed`,
		studentID, lessonID, at.UTC())
	if err != nil {
		return progress.Progress{}, errors.Wrap(err, "marking lesson completed")
	}
	return row.domain(), nil
}

func (repo progressRepository) ResetCompleted(ctx context.Context, studentID, lessonID int, at time.Time) (progress.Progress, error) {
	var row progressRow
	err := repo.db.GetContext(ctx, &row,
		`UPDATE progress
		 SET is_completed = false, completed_at = NULL, last_accessed = $3
		 WHERE student_id = $1 AND lesson_id = $2
		 RETURNING student_id, lesson_id, is_completed, completed_at, last_accessed`,
		studentID, lessonID, at.UTC())
	if err != nil {
		return progress.Progress{}, trapNoRowsErr(err, progress.ErrNotFound, "resetting lesson progress")
	}
	return row.domain(), nil
}

func (repo progressRepository) GetProgress(ctx context.Context, studentID, lessonID int) (progress.Progress, error) {
	var row progressRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT student_id, lesson_id, is_completed, completed_at, last_accessed
		 FROM progress
		 WHERE student_id = $1 AND lesson_id = $2`,
		studentID, lessonID)
	if err != nil {
		return progress.Progress{}, trapNoRowsErr(err, progress.ErrNotFound, "finding lesson progress")
	}
	return row.domain(), nil
}
