package progress

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

var ErrNotFound = errors.New("progress not found")

type (
	Repository interface {
		// MarkCompleted upserts the (student, lesson) row: created if absent,
		// otherwise completion is set and completed-at/last-accessed refreshed
		// regardless of prior state.
		MarkCompleted(ctx context.Context, studentID, lessonID int, at time.Time) (Progress, error)
		// ResetCompleted un-completes the row; ErrNotFound when none exists.
		ResetCompleted(ctx context.Context, studentID, lessonID int, at time.Time) (Progress, error)
		GetProgress(ctx context.Context, studentID, lessonID int) (Progress, error)
	}

	Service struct {
		repo    Repository
		catalog *catalog.Service
	}
)

func NewService(repo Repository, catalogSvc *catalog.Service) *Service {
	return &Service{repo: repo, catalog: catalogSvc}
}

// MarkCompleted idempotently marks the lesson complete for the session
// student; repeated calls converge to the same state and all succeed.
func (svc *Service) MarkCompleted(ctx context.Context, sess student.Session, lessonID int) error {
	if sess.ID == "" {
		return core.NewAuthenticationError()
	}
	if _, err := svc.catalog.GetLesson(ctx, lessonID); err != nil {
		return err
	}
	if _, err := svc.repo.MarkCompleted(ctx, sess.StudentID, lessonID, time.Now().UTC()); err != nil {
		return core.NewPersistenceError(err, "marking lesson completed")
	}
	return nil
}

// Reset is the only operation allowed to un-complete a lesson; it is explicit,
// never implicit. Resetting a lesson that was never started still succeeds.
func (svc *Service) Reset(ctx context.Context, sess student.Session, lessonID int) error {
	if sess.ID == "" {
		return core.NewAuthenticationError()
	}
	if _, err := svc.catalog.GetLesson(ctx, lessonID); err != nil {
		return err
	}
	if _, err := svc.repo.ResetCompleted(ctx, sess.StudentID, lessonID, time.Now().UTC()); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return nil
		}
		return core.NewPersistenceError(err, "resetting lesson progress")
	}
	return nil
}

// Get returns the progress record for a lesson; ok is false when the lesson
// has not been started.
func (svc *Service) Get(ctx context.Context, sess student.Session, lessonID int) (Progress, bool, error) {
	if sess.ID == "" {
		return Progress{}, false, core.NewAuthenticationError()
	}
	if _, err := svc.catalog.GetLesson(ctx, lessonID); err != nil {
		return Progress{}, false, err
	}
	prg, err := svc.repo.GetProgress(ctx, sess.StudentID, lessonID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Progress{}, false, nil
		}
		return Progress{}, false, core.NewPersistenceError(err, "finding lesson progress")
	}
	return prg, true, nil
}
