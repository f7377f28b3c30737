package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

type studentRow struct {
	ID           int       `db:"id"`
	Name         string    `db:"full_name"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	AvatarColor  string    `db:"avatar_color"`
	Score        int       `db:"score"`
	PasswordHash []byte    `db:"password_hash"`
	LastActive   null.Time `db:"last_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
	DeletedAt    null.Time `db:"deleted_at"`
}

func (r studentRow) domain() student.Student {
	return student.Student{
		ID:           r.ID,
		Name:         r.Name,
		Username:     r.Username,
		Email:        r.Email,
		AvatarColor:  r.AvatarColor,
		Score:        r.Score,
		PasswordHash: r.PasswordHash,
		LastActive:   r.LastActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		DeletedAt:    r.DeletedAt,
	}
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) CheckUniqueness(ctx context.Context, username, email string) error {
	var rows []studentRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, full_name, username, email, avatar_color, score, password_hash,
		        last_active, created_at, updated_at, deleted_at
		 FROM student
		 WHERE (username = $1 OR email = $2) AND deleted_at IS NULL`,
		username, email)
	if err != nil {
		return errors.Wrap(err, "checking student uniqueness")
	}
	for _, r := range rows {
		if r.Username == username {
			return student.ErrUsernameExists
		}
	}
	if len(rows) > 0 {
		return student.ErrEmailExists
	}
	return nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	err := repo.db.GetContext(ctx, &stu.ID,
		`INSERT INTO student (full_name, username, email, password_hash, avatar_color, score, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		stu.Name, stu.Username, stu.Email, stu.PasswordHash, stu.AvatarColor, stu.Score, stu.CreatedAt, stu.UpdatedAt)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return stu, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, filter student.GetFilter) (student.Student, error) {
	conds := []string{"deleted_at IS NULL"}
	args := make([]interface{}, 0, 2)

	switch {
	case filter.ID != 0:
		conds = append(conds, "id = $1")
		args = append(args, filter.ID)
	case filter.Username != "":
		conds = append(conds, "username = $1")
		args = append(args, filter.Username)
	case filter.Email != "":
		conds = append(conds, "email = $1")
		args = append(args, filter.Email)
	case filter.UsernameOrEmail != "":
		conds = append(conds, "(username = $1 OR email = $1)")
		args = append(args, filter.UsernameOrEmail)
	default:
		return student.Student{}, student.ErrNotFound
	}

	var row studentRow
	query := `SELECT id, full_name, username, email, avatar_color, score, password_hash,
	                 last_active, created_at, updated_at, deleted_at
	          FROM student WHERE ` + strings.Join(conds, " AND ")
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return student.Student{}, trapNoRowsErr(err, student.ErrNotFound, "finding student")
	}
	return row.domain(), nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	stu.UpdatedAt = time.Now().UTC()
	res, err := repo.db.ExecContext(ctx,
		`UPDATE student
		 SET full_name = $2, username = $3, email = $4, password_hash = $5, avatar_color = $6, updated_at = $7
		 WHERE id = $1 AND deleted_at IS NULL`,
		stu.ID, stu.Name, stu.Username, stu.Email, stu.PasswordHash, stu.AvatarColor, stu.UpdatedAt)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return stu, nil
}

func (repo studentRepository) SetLastActive(ctx context.Context, id int, t time.Time) error {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE student SET last_active = $2 WHERE id = $1 AND deleted_at IS NULL`, id, t.UTC())
	return errors.Wrap(err, "setting last active")
}

// interface compliance for the executor contract shared with transactions
var _ core.DBExecutor = (*sqlx.DB)(nil)
var _ core.DBExecutor = (*sqlx.Tx)(nil)
