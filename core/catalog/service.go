package catalog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core"
)

var ErrNotFound = errors.New("catalog item not found")

type (
	// Repository reads serve active items only; unknown, draft and archived
	// rows all surface as ErrNotFound. Upserts are for the admin CLI and
	// write whatever state the catalog file declares.
	Repository interface {
		QueryTopics(ctx context.Context) ([]Topic, error)
		GetTopic(ctx context.Context, id int) (Topic, error)
		QueryLessons(ctx context.Context, topicID int) ([]Lesson, error)
		GetLesson(ctx context.Context, id int) (Lesson, error)
		GetQuiz(ctx context.Context, id int) (Quiz, error)
		UpsertTopic(ctx context.Context, t Topic) (Topic, error)
		UpsertLesson(ctx context.Context, l Lesson) (Lesson, error)
		UpsertQuiz(ctx context.Context, q Quiz) (Quiz, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryTopics(ctx context.Context) ([]Topic, error) {
	topics, err := svc.repo.QueryTopics(ctx)
	if err != nil {
		return nil, core.NewPersistenceError(err, "querying topics")
	}
	return topics, nil
}

func (svc *Service) QueryLessons(ctx context.Context, topicID int) ([]Lesson, error) {
	if _, err := svc.repo.GetTopic(ctx, topicID); err != nil {
		return nil, svc.trapNotFound(err, "unknown topic", "finding topic")
	}
	lessons, err := svc.repo.QueryLessons(ctx, topicID)
	if err != nil {
		return nil, core.NewPersistenceError(err, "querying lessons")
	}
	return lessons, nil
}

func (svc *Service) GetLesson(ctx context.Context, id int) (Lesson, error) {
	lesson, err := svc.repo.GetLesson(ctx, id)
	if err != nil {
		return Lesson{}, svc.trapNotFound(err, "unknown lesson", "finding lesson")
	}
	return lesson, nil
}

// GetLessonInTopic rejects lessons that do not belong to the stated topic.
func (svc *Service) GetLessonInTopic(ctx context.Context, topicID, lessonID int) (Lesson, error) {
	lesson, err := svc.GetLesson(ctx, lessonID)
	if err != nil {
		return Lesson{}, err
	}
	if lesson.TopicID != topicID {
		return Lesson{}, core.NewNotFoundError("unknown lesson")
	}
	return lesson, nil
}

func (svc *Service) GetQuiz(ctx context.Context, id int) (Quiz, error) {
	quiz, err := svc.repo.GetQuiz(ctx, id)
	if err != nil {
		return Quiz{}, svc.trapNotFound(err, "unknown quiz", "finding quiz")
	}
	return quiz, nil
}

func (svc *Service) trapNotFound(err error, notFoundMsg, wrapMsg string) error {
	if errors.Cause(err) == ErrNotFound {
		return core.NewNotFoundError(notFoundMsg)
	}
	return core.NewPersistenceError(err, wrapMsg)
}
