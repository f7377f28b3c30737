package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core/attempt"
)

type attemptRow struct {
	ID               int       `db:"id"`
	StudentID        int       `db:"student_id"`
	QuizID           int       `db:"quiz_id"`
	SelectedOptionID int       `db:"selected_option_id"`
	IsCorrect        bool      `db:"is_correct"`
	TimeSpentSeconds int       `db:"time_spent_seconds"`
	AttemptedAt      time.Time `db:"attempted_at"`
}

func (r attemptRow) domain() attempt.Attempt {
	return attempt.Attempt(r)
}

type attemptRepository struct {
	db *sqlx.DB
}

var _ attempt.Repository = (*attemptRepository)(nil) // interface compliance check

func NewAttemptRepository(db *sqlx.DB) *attemptRepository {
	return &attemptRepository{db: db}
}

// CreateAttempt inserts the attempt and credits the score in one transaction.
// There is no prior existence check: the (student_id, quiz_id) constraint is
// the only duplicate defense, so two concurrent submissions resolve to one
// committed insert and one ErrAttemptExists.
func (repo attemptRepository) CreateAttempt(ctx context.Context, att attempt.Attempt, points int) (attempt.Attempt, int, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return attempt.Attempt{}, 0, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.GetContext(ctx, &att.ID,
		`INSERT INTO quiz_attempt (student_id, quiz_id, selected_option_id, is_correct, time_spent_seconds, attempted_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		att.StudentID, att.QuizID, att.SelectedOptionID, att.IsCorrect, att.TimeSpentSeconds, att.AttemptedAt)
	if err != nil {
		if isUniqueViolation(err, "quiz_attempt_student_quiz_key") {
			return attempt.Attempt{}, 0, attempt.ErrAttemptExists
		}
		return attempt.Attempt{}, 0, errors.Wrap(err, "inserting attempt")
	}

	var total int
	err = tx.GetContext(ctx, &total,
		`UPDATE student SET score = score + $2, updated_at = $3
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING score`,
		att.StudentID, points, att.AttemptedAt)
	if err != nil {
		return attempt.Attempt{}, 0, trapNoRowsErr(err, errors.New("student vanished during attempt"), "crediting score")
	}

	if err = tx.Commit(); err != nil {
		return attempt.Attempt{}, 0, errors.Wrap(err, "committing attempt")
	}
	return att, total, nil
}

func (repo attemptRepository) GetAttempt(ctx context.Context, studentID, quizID int) (attempt.Attempt, error) {
	var row attemptRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, student_id, quiz_id, selected_option_id, is_correct, time_spent_seconds, attempted_at
		 FROM quiz_attempt
		 WHERE student_id = $1 AND quiz_id = $2`,
		studentID, quizID)
	if err != nil {
		return attempt.Attempt{}, trapNoRowsErr(err, attempt.ErrNotFound, "finding attempt")
	}
	return row.domain(), nil
}
