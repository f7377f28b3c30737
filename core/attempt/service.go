package attempt

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

// ErrAttemptExists is reported by repositories when the store's
// (student, quiz) uniqueness constraint rejects an insert.
var ErrAttemptExists = errors.New("quiz already attempted")

type (
	Repository interface {
		// CreateAttempt persists att and credits points to the student's score
		// as one atomic unit: either both land or neither does. The store's
		// uniqueness constraint on (student, quiz) is the sole duplicate
		// defense; a rejected insert surfaces as ErrAttemptExists. Returns the
		// stored attempt and the student's new total score.
		CreateAttempt(ctx context.Context, att Attempt, points int) (Attempt, int, error)
		GetAttempt(ctx context.Context, studentID, quizID int) (Attempt, error)
	}

	Service struct {
		repo     Repository
		catalog  *catalog.Service
		sessions *student.SessionStore
	}
)

// ErrNotFound is reported by Repository.GetAttempt for a missing row.
var ErrNotFound = errors.New("attempt not found")

func NewService(repo Repository, catalogSvc *catalog.Service, sessions *student.SessionStore) *Service {
	return &Service{repo: repo, catalog: catalogSvc, sessions: sessions}
}

// Submit records the session student's attempt at a quiz and grants the fixed
// reward when the selected option is correct. Near-simultaneous submissions
// for the same (student, quiz) resolve to exactly one success and one
// ConflictError; there is deliberately no read-then-write duplicate check.
func (svc *Service) Submit(ctx context.Context, sess student.Session, quizID int, na NewAttempt) (Result, error) {
	if sess.ID == "" {
		return Result{}, core.NewAuthenticationError()
	}

	quiz, err := svc.catalog.GetQuiz(ctx, quizID)
	if err != nil {
		return Result{}, err
	}
	opt, ok := quiz.Option(na.SelectedOptionID)
	if !ok {
		return Result{}, core.NewValidationError(nil, core.FieldError{
			Field: "selected_option_id",
			Error: "option does not belong to this quiz",
		})
	}

	// the stored option decides correctness; the client's verdict is advisory
	isCorrect := opt.IsCorrect
	var points int
	if isCorrect {
		points = CorrectAnswerPoints
	}

	att := Attempt{
		StudentID:        sess.StudentID,
		QuizID:           quiz.ID,
		SelectedOptionID: opt.ID,
		IsCorrect:        isCorrect,
		TimeSpentSeconds: na.TimeSpentSeconds,
		AttemptedAt:      time.Now().UTC(),
	}
	att, total, err := svc.repo.CreateAttempt(ctx, att, points)
	if err != nil {
		if errors.Cause(err) == ErrAttemptExists {
			return Result{}, core.NewConflictError("this quiz has already been attempted")
		}
		return Result{}, core.NewPersistenceError(err, "recording attempt")
	}

	// the session score is a cache of the persisted value; resync before replying
	svc.sessions.SetScore(sess.ID, total)

	return Result{Points: points, NewTotalScore: total}, nil
}

// Get returns the session student's recorded attempt for a quiz, if any.
func (svc *Service) Get(ctx context.Context, sess student.Session, quizID int) (Attempt, bool, error) {
	if sess.ID == "" {
		return Attempt{}, false, core.NewAuthenticationError()
	}
	att, err := svc.repo.GetAttempt(ctx, sess.StudentID, quizID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Attempt{}, false, nil
		}
		return Attempt{}, false, core.NewPersistenceError(err, "finding attempt")
	}
	return att, true, nil
}
