package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core/stats"
)

type statsRepository struct {
	db *sqlx.DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *sqlx.DB) *statsRepository {
	return &statsRepository{db: db}
}

func (repo statsRepository) AttemptAggregate(ctx context.Context, studentID int) (stats.AttemptAggregate, error) {
	var agg stats.AttemptAggregate
	err := repo.db.GetContext(ctx, &agg,
		`SELECT COUNT(*)                                            AS total_attempts,
		        COUNT(*) FILTER (WHERE is_correct)                  AS correct_attempts,
		        COALESCE(SUM(time_spent_seconds), 0)                AS total_time_seconds
		 FROM quiz_attempt
		 WHERE student_id = $1`,
		studentID)
	if err != nil {
		return stats.AttemptAggregate{}, errors.Wrap(err, "aggregating attempts")
	}
	return agg, nil
}

func (repo statsRepository) TopicCompletion(ctx context.Context, studentID int) ([]stats.TopicCompletion, error) {
	var rows []stats.TopicCompletion
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT t.id                                                  AS topic_id,
		        t.name                                                AS topic_name,
		        COUNT(l.id)                                           AS total_lessons,
		        COUNT(p.lesson_id) FILTER (WHERE p.is_completed)      AS completed_lessons
		 FROM topic t
		 LEFT JOIN lesson l ON l.topic_id = t.id AND l.status = 'active'
		 LEFT JOIN progress p ON p.lesson_id = l.id AND p.student_id = $1
		 WHERE t.status = 'active'
		 GROUP BY t.id, t.name, t.position
		 ORDER BY t.position, t.id`,
		studentID)
	if err != nil {
		return nil, errors.Wrap(err, "aggregating topic completion")
	}
	return rows, nil
}
