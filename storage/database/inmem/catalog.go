package inmem

import (
	"context"
	"sort"

	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
)

type catalogRepository struct {
	db *DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) QueryTopics(_ context.Context) ([]catalog.Topic, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	topics := make([]catalog.Topic, 0, len(repo.db.topics))
	for _, t := range repo.db.topics {
		if t.Status == catalog.StatusActive {
			topics = append(topics, *t)
		}
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Position != topics[j].Position {
			return topics[i].Position < topics[j].Position
		}
		return topics[i].ID < topics[j].ID
	})
	return topics, nil
}

func (repo *catalogRepository) GetTopic(_ context.Context, id int) (catalog.Topic, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if t, ok := repo.db.topics[id]; ok && t.Status == catalog.StatusActive {
		return *t, nil
	}
	return catalog.Topic{}, catalog.ErrNotFound
}

func (repo *catalogRepository) QueryLessons(_ context.Context, topicID int) ([]catalog.Lesson, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	lessons := make([]catalog.Lesson, 0)
	for _, l := range repo.db.lessons {
		if l.TopicID == topicID && l.Status == catalog.StatusActive {
			lessons = append(lessons, *l)
		}
	}
	sort.Slice(lessons, func(i, j int) bool {
		if lessons[i].Position != lessons[j].Position {
			return lessons[i].Position < lessons[j].Position
		}
		return lessons[i].ID < lessons[j].ID
	})
	return lessons, nil
}

func (repo *catalogRepository) GetLesson(_ context.Context, id int) (catalog.Lesson, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if l, ok := repo.db.lessons[id]; ok && l.Status == catalog.StatusActive {
		return *l, nil
	}
	return catalog.Lesson{}, catalog.ErrNotFound
}

func (repo *catalogRepository) GetQuiz(_ context.Context, id int) (catalog.Quiz, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if q, ok := repo.db.quizzes[id]; ok && q.Status == catalog.StatusActive {
		cp := *q
		cp.Options = append([]catalog.QuizOption(nil), q.Options...)
		return cp, nil
	}
	return catalog.Quiz{}, catalog.ErrNotFound
}

func (repo *catalogRepository) UpsertTopic(_ context.Context, t catalog.Topic) (catalog.Topic, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	repo.db.topics[t.ID] = &t
	return t, nil
}

func (repo *catalogRepository) UpsertLesson(_ context.Context, l catalog.Lesson) (catalog.Lesson, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	repo.db.lessons[l.ID] = &l
	return l, nil
}

func (repo *catalogRepository) UpsertQuiz(_ context.Context, q catalog.Quiz) (catalog.Quiz, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	for i := range q.Options {
		q.Options[i].QuizID = q.ID
	}
	repo.db.quizzes[q.ID] = &q
	return q, nil
}
