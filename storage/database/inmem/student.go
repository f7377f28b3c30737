package inmem

import (
	"context"
	"time"

	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CheckUniqueness(_ context.Context, username, email string) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.checkUniqueness(username, email)
}

func (repo *studentRepository) checkUniqueness(username, email string) error {
	for _, stu := range repo.db.students {
		if stu.DeletedAt.Valid {
			continue
		}
		if stu.Username == username {
			return student.ErrUsernameExists
		}
		if stu.Email == email {
			return student.ErrEmailExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(_ context.Context, stu student.Student) (student.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	// emulate the partial unique indexes
	if err := repo.checkUniqueness(stu.Username, stu.Email); err != nil {
		return student.Student{}, err
	}

	repo.db.studentPK++
	stu.ID = repo.db.studentPK
	repo.db.students[stu.ID] = &stu
	return stu, nil
}

func (repo *studentRepository) GetStudent(_ context.Context, filter student.GetFilter) (student.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, stu := range repo.db.students {
		if stu.DeletedAt.Valid {
			continue
		}
		switch {
		case filter.ID != 0 && stu.ID == filter.ID,
			filter.Username != "" && stu.Username == filter.Username,
			filter.Email != "" && stu.Email == filter.Email,
			filter.UsernameOrEmail != "" && (stu.Username == filter.UsernameOrEmail || stu.Email == filter.UsernameOrEmail):
			cp := *stu
			return cp, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(_ context.Context, stu student.Student) (student.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	orig, ok := repo.db.students[stu.ID]
	if !ok || orig.DeletedAt.Valid {
		return student.Student{}, student.ErrNotFound
	}
	orig.Name = stu.Name
	orig.Username = stu.Username
	orig.Email = stu.Email
	orig.AvatarColor = stu.AvatarColor
	if stu.PasswordHash != nil {
		orig.PasswordHash = stu.PasswordHash
	}
	orig.UpdatedAt = time.Now().UTC()
	return *orig, nil
}

func (repo *studentRepository) SetLastActive(_ context.Context, id int, t time.Time) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if stu, ok := repo.db.students[id]; ok && !stu.DeletedAt.Valid {
		stu.LastActive.SetValid(t.UTC())
	}
	return nil
}
