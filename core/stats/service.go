package stats

import (
	"context"
	"math"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

type (
	Repository interface {
		AttemptAggregate(ctx context.Context, studentID int) (AttemptAggregate, error)
		// TopicCompletion returns one row per active topic, in display order,
		// counting active lessons and the student's completed ones.
		TopicCompletion(ctx context.Context, studentID int) ([]TopicCompletion, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// QuizStatistics derives the session student's dashboard numbers. All rates
// are defined as 0 when their denominator is 0.
func (svc *Service) QuizStatistics(ctx context.Context, sess student.Session) (Statistics, error) {
	if sess.ID == "" {
		return Statistics{}, core.NewAuthenticationError()
	}

	agg, err := svc.repo.AttemptAggregate(ctx, sess.StudentID)
	if err != nil {
		return Statistics{}, core.NewPersistenceError(err, "aggregating attempts")
	}
	completion, err := svc.repo.TopicCompletion(ctx, sess.StudentID)
	if err != nil {
		return Statistics{}, core.NewPersistenceError(err, "aggregating topic completion")
	}

	st := Statistics{
		TotalAttempts:     agg.TotalAttempts,
		CorrectAttempts:   agg.CorrectAttempts,
		IncorrectAttempts: agg.TotalAttempts - agg.CorrectAttempts,
	}
	if agg.TotalAttempts > 0 {
		st.AccuracyRate = round1(float64(agg.CorrectAttempts) / float64(agg.TotalAttempts) * 100)
		st.AvgTimeSpent = round1(float64(agg.TotalTimeSeconds) / float64(agg.TotalAttempts))
	}

	var totalLessons, completedLessons int
	st.TopicsProgress = make([]TopicProgress, 0, len(completion))
	for _, tc := range completion {
		st.TopicsProgress = append(st.TopicsProgress, TopicProgress{
			TopicCompletion: tc,
			ProgressPercent: percent(tc.CompletedLessons, tc.TotalLessons),
		})
		totalLessons += tc.TotalLessons
		completedLessons += tc.CompletedLessons
	}
	st.LessonsCompletionRate = percent(completedLessons, totalLessons)

	return st, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
