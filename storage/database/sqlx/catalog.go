package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
)

type (
	topicRow struct {
		ID       int            `db:"id"`
		Name     string         `db:"name"`
		Position int            `db:"position"`
		Status   catalog.Status `db:"status"`
	}

	lessonRow struct {
		ID       int            `db:"id"`
		TopicID  int            `db:"topic_id"`
		Title    string         `db:"title"`
		Content  string         `db:"content"`
		Position int            `db:"position"`
		Status   catalog.Status `db:"status"`
	}

	quizRow struct {
		ID         int            `db:"id"`
		LessonID   int            `db:"lesson_id"`
		Question   string         `db:"question"`
		Difficulty string         `db:"difficulty"`
		Status     catalog.Status `db:"status"`
	}

	quizOptionRow struct {
		ID        int    `db:"id"`
		QuizID    int    `db:"quiz_id"`
		Text      string `db:"option_text"`
		IsCorrect bool   `db:"is_correct"`
		Position  int    `db:"position"`
	}
)

type catalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (repo catalogRepository) QueryTopics(ctx context.Context) ([]catalog.Topic, error) {
	var rows []topicRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, name, position, status FROM topic
		 WHERE status = 'active'
		 ORDER BY position, id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying topics")
	}
	topics := make([]catalog.Topic, 0, len(rows))
	for _, r := range rows {
		topics = append(topics, catalog.Topic(r))
	}
	return topics, nil
}

func (repo catalogRepository) GetTopic(ctx context.Context, id int) (catalog.Topic, error) {
	var row topicRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, name, position, status FROM topic WHERE id = $1 AND status = 'active'`, id)
	if err != nil {
		return catalog.Topic{}, trapNoRowsErr(err, catalog.ErrNotFound, "finding topic")
	}
	return catalog.Topic(row), nil
}

func (repo catalogRepository) QueryLessons(ctx context.Context, topicID int) ([]catalog.Lesson, error) {
	var rows []lessonRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, topic_id, title, content, position, status FROM lesson
		 WHERE topic_id = $1 AND status = 'active'
		 ORDER BY position, id`, topicID)
	if err != nil {
		return nil, errors.Wrap(err, "querying lessons")
	}
	lessons := make([]catalog.Lesson, 0, len(rows))
	for _, r := range rows {
		lessons = append(lessons, catalog.Lesson(r))
	}
	return lessons, nil
}

func (repo catalogRepository) GetLesson(ctx context.Context, id int) (catalog.Lesson, error) {
	var row lessonRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, topic_id, title, content, position, status FROM lesson
		 WHERE id = $1 AND status = 'active'`, id)
	if err != nil {
		return catalog.Lesson{}, trapNoRowsErr(err, catalog.ErrNotFound, "finding lesson")
	}
	return catalog.Lesson(row), nil
}

func (repo catalogRepository) GetQuiz(ctx context.Context, id int) (catalog.Quiz, error) {
	var row quizRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, lesson_id, question, difficulty, status FROM quiz
		 WHERE id = $1 AND status = 'active'`, id)
	if err != nil {
		return catalog.Quiz{}, trapNoRowsErr(err, catalog.ErrNotFound, "finding quiz")
	}

	var optRows []quizOptionRow
	err = repo.db.SelectContext(ctx, &optRows,
		`SELECT id, quiz_id, option_text, is_correct, position FROM quiz_option
		 WHERE quiz_id = $1
		 ORDER BY position, id`, id)
	if err != nil {
		return catalog.Quiz{}, errors.Wrap(err, "querying quiz options")
	}

	quiz := catalog.Quiz{
		ID:         row.ID,
		LessonID:   row.LessonID,
		Question:   row.Question,
		Difficulty: row.Difficulty,
		Status:     row.Status,
		Options:    make([]catalog.QuizOption, 0, len(optRows)),
	}
	for _, r := range optRows {
		quiz.Options = append(quiz.Options, catalog.QuizOption(r))
	}
	return quiz, nil
}

func (repo catalogRepository) UpsertTopic(ctx context.Context, t catalog.Topic) (catalog.Topic, error) {
	err := repo.db.GetContext(ctx, &t.ID,
		`INSERT INTO topic (id, name, position, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, position = EXCLUDED.position, status = EXCLUDED.status
		 RETURNING id`,
		t.ID, t.Name, t.Position, t.Status)
	if err != nil {
		return catalog.Topic{}, errors.Wrap(err, "upserting topic")
	}
	return t, nil
}

func (repo catalogRepository) UpsertLesson(ctx context.Context, l catalog.Lesson) (catalog.Lesson, error) {
	err := repo.db.GetContext(ctx, &l.ID,
		`INSERT INTO lesson (id, topic_id, title, content, position, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		   SET topic_id = EXCLUDED.topic_id, title = EXCLUDED.title, content = EXCLUDED.content,
		       position = EXCLUDED.position, status = EXCLUDED.status
		 RETURNING id`,
		l.ID, l.TopicID, l.Title, l.Content, l.Position, l.Status)
	if err != nil {
		return catalog.Lesson{}, errors.Wrap(err, "upserting lesson")
	}
	return l, nil
}

// UpsertQuiz replaces the quiz's option set wholesale; the catalog file is the
// source of truth for authoring.
func (repo catalogRepository) UpsertQuiz(ctx context.Context, q catalog.Quiz) (catalog.Quiz, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return catalog.Quiz{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.GetContext(ctx, &q.ID,
		`INSERT INTO quiz (id, lesson_id, question, difficulty, status)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		   SET lesson_id = EXCLUDED.lesson_id, question = EXCLUDED.question,
		       difficulty = EXCLUDED.difficulty, status = EXCLUDED.status
		 RETURNING id`,
		q.ID, q.LessonID, q.Question, q.Difficulty, q.Status)
	if err != nil {
		return catalog.Quiz{}, errors.Wrap(err, "upserting quiz")
	}

	for i := range q.Options {
		opt := &q.Options[i]
		opt.QuizID = q.ID
		err = tx.GetContext(ctx, &opt.ID,
			`INSERT INTO quiz_option (id, quiz_id, option_text, is_correct, position)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE
			   SET quiz_id = EXCLUDED.quiz_id, option_text = EXCLUDED.option_text,
			       is_correct = EXCLUDED.is_correct, position = EXCLUDED.position
			 RETURNING id`,
			opt.ID, opt.QuizID, opt.Text, opt.IsCorrect, opt.Position)
		if err != nil {
			return catalog.Quiz{}, errors.Wrap(err, "upserting quiz option")
		}
	}

	if err = tx.Commit(); err != nil {
		return catalog.Quiz{}, errors.Wrap(err, "committing quiz upsert")
	}
	return q, nil
}
