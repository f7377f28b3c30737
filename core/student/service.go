package student

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core"
)

var (
	// errors
	ErrNotFound       = errors.New("student not found")
	ErrUsernameExists = errors.New("a student with this username already exists")
	ErrEmailExists    = errors.New("a student with this email already exists")
)

type (
	// GetFilter selects a single non-deleted student; the first set field wins.
	GetFilter struct {
		ID              int
		Username        string
		Email           string
		UsernameOrEmail string
	}

	Repository interface {
		// CheckUniqueness reports ErrUsernameExists/ErrEmailExists when a
		// non-deleted student already holds the given username or email.
		CheckUniqueness(ctx context.Context, username, email string) error
		CreateStudent(ctx context.Context, stu Student) (Student, error)
		GetStudent(ctx context.Context, filter GetFilter) (Student, error)
		UpdateStudent(ctx context.Context, stu Student) (Student, error)
		SetLastActive(ctx context.Context, id int, t time.Time) error
	}

	Service struct {
		repo     Repository
		sessions *SessionStore
	}
)

func NewService(repo Repository, sessions *SessionStore) *Service {
	return &Service{repo: repo, sessions: sessions}
}

func (svc *Service) CheckUniqueness(ctx context.Context, uname, email string) error {
	if err := svc.repo.CheckUniqueness(ctx, uname, email); err != nil {
		var field string
		switch errors.Cause(err) {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return core.NewPersistenceError(err, "checking student uniqueness")
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

// Register persists a new student and opens a session for them, exactly as a
// fresh login would.
func (svc *Service) Register(ctx context.Context, ns NewStudent) (Student, Session, error) {
	now := time.Now().UTC()
	stu := Student{
		Name:        ns.Name,
		Username:    ns.Username,
		Email:       ns.Email,
		AvatarColor: DeriveAvatarColor(ns.Email),
		Score:       0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := stu.SetPassword(ns.Password); err != nil {
		return Student{}, Session{}, errors.Wrap(err, "hashing password")
	}

	stu, err := svc.repo.CreateStudent(ctx, stu)
	if err != nil {
		return Student{}, Session{}, core.NewPersistenceError(err, "creating student")
	}
	return svc.openSession(ctx, stu)
}

// Authenticate verifies credentials and opens a session. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (svc *Service) Authenticate(ctx context.Context, uname, pwd string) (Student, Session, error) {
	stu, err := svc.repo.GetStudent(ctx, GetFilter{UsernameOrEmail: core.CleanString(uname)})
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Student{}, Session{}, core.NewAuthenticationError()
		}
		return Student{}, Session{}, core.NewPersistenceError(err, "finding student")
	}
	if err = stu.CheckPassword(pwd); err != nil {
		return Student{}, Session{}, core.NewAuthenticationError()
	}
	return svc.openSession(ctx, stu)
}

func (svc *Service) openSession(ctx context.Context, stu Student) (Student, Session, error) {
	now := time.Now().UTC()
	if err := svc.repo.SetLastActive(ctx, stu.ID, now); err != nil {
		return Student{}, Session{}, core.NewPersistenceError(err, "recording last active")
	}
	stu.LastActive.SetValid(now)
	return stu, svc.sessions.Open(stu), nil
}

// Logout records last-active and destroys the session. Idempotent: a second
// call for the same session is a successful no-op.
func (svc *Service) Logout(ctx context.Context, sess Session) error {
	if !svc.sessions.Close(sess.ID) {
		return nil
	}
	if err := svc.repo.SetLastActive(ctx, sess.StudentID, time.Now().UTC()); err != nil {
		return core.NewPersistenceError(err, "recording last active")
	}
	return nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudent(ctx, GetFilter{ID: id})
}

func (svc *Service) GetByUsernameOrEmail(ctx context.Context, uname string) (Student, error) {
	return svc.repo.GetStudent(ctx, GetFilter{UsernameOrEmail: core.CleanString(uname)})
}
