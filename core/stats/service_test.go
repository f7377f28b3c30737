package stats_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/attempt"
	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
	"github.com/johnlouisuru/jstutorial-sub002/core/progress"
	"github.com/johnlouisuru/jstutorial-sub002/core/stats"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
	"github.com/johnlouisuru/jstutorial-sub002/storage/database/inmem"
	testutil "github.com/johnlouisuru/jstutorial-sub002/tests"
)

type fixture struct {
	svc      *stats.Service
	attempts *attempt.Service
	progress *progress.Service
	catRepo  catalog.Repository
	sess     student.Session
}

func setup(t *testing.T) fixture {
	db := inmem.NewDB()
	catRepo := inmem.NewCatalogRepository(db)
	stuRepo := inmem.NewStudentRepository(db)
	testutil.SeedCatalog(t, catRepo)

	sessions := student.NewSessionStore()
	stu := testutil.CreateStudent(t, stuRepo, "Ana Gomez", "ana", "ana@test.cd", "s3cret")
	sess := sessions.Open(stu)

	catSvc := catalog.NewService(catRepo)
	return fixture{
		svc:      stats.NewService(inmem.NewStatsRepository(db)),
		attempts: attempt.NewService(inmem.NewAttemptRepository(db), catSvc, sessions),
		progress: progress.NewService(inmem.NewProgressRepository(db), catSvc),
		catRepo:  catRepo,
		sess:     sess,
	}
}

func TestService_QuizStatistics_empty(t *testing.T) {
	fix := setup(t)

	st, err := fix.svc.QuizStatistics(context.Background(), fix.sess)
	require.NoError(t, err)

	// all rates are 0 when their denominator is 0; never NaN, never an error
	assert.Zero(t, st.TotalAttempts)
	assert.Zero(t, st.AccuracyRate)
	assert.Zero(t, st.AvgTimeSpent)
	assert.Zero(t, st.LessonsCompletionRate)

	// one row per active topic, in display order, even with no progress
	require.Len(t, st.TopicsProgress, 2)
	assert.Equal(t, "JavaScript Basics", st.TopicsProgress[0].TopicName)
	assert.Equal(t, 2, st.TopicsProgress[0].TotalLessons)
	assert.Zero(t, st.TopicsProgress[0].ProgressPercent)
}

func TestService_QuizStatistics(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	_, err := fix.attempts.Submit(ctx, fix.sess, 7, attempt.NewAttempt{SelectedOptionID: 71, IsCorrect: true, TimeSpentSeconds: 12})
	require.NoError(t, err)
	_, err = fix.attempts.Submit(ctx, fix.sess, 8, attempt.NewAttempt{SelectedOptionID: 81, TimeSpentSeconds: 7})
	require.NoError(t, err)
	require.NoError(t, fix.progress.MarkCompleted(ctx, fix.sess, 1))

	st, err := fix.svc.QuizStatistics(ctx, fix.sess)
	require.NoError(t, err)

	assert.Equal(t, 2, st.TotalAttempts)
	assert.Equal(t, 1, st.CorrectAttempts)
	assert.Equal(t, 1, st.IncorrectAttempts)
	assert.Equal(t, 50.0, st.AccuracyRate)
	assert.Equal(t, 9.5, st.AvgTimeSpent)

	require.Len(t, st.TopicsProgress, 2)
	jsBasics := st.TopicsProgress[0]
	assert.Equal(t, 1, jsBasics.CompletedLessons)
	assert.Equal(t, 2, jsBasics.TotalLessons)
	assert.Equal(t, 50, jsBasics.ProgressPercent)
	assert.Zero(t, st.TopicsProgress[1].ProgressPercent)

	// 1 of 3 active lessons completed
	assert.Equal(t, 33, st.LessonsCompletionRate)
}

func TestService_QuizStatistics_rounding(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	// attempts are unique per quiz; add a third active quiz for a 1/3 ratio
	_, err := fix.catRepo.UpsertQuiz(ctx, catalog.Quiz{
		ID: 10, LessonID: 2, Question: "What does % do?", Difficulty: "easy", Status: catalog.StatusActive,
		Options: []catalog.QuizOption{
			{ID: 100, QuizID: 10, Text: "remainder", IsCorrect: true, Position: 1},
			{ID: 101, QuizID: 10, Text: "percent", IsCorrect: false, Position: 2},
		},
	})
	require.NoError(t, err)

	_, err = fix.attempts.Submit(ctx, fix.sess, 7, attempt.NewAttempt{SelectedOptionID: 71, IsCorrect: true, TimeSpentSeconds: 10})
	require.NoError(t, err)
	_, err = fix.attempts.Submit(ctx, fix.sess, 8, attempt.NewAttempt{SelectedOptionID: 81, TimeSpentSeconds: 5})
	require.NoError(t, err)
	_, err = fix.attempts.Submit(ctx, fix.sess, 10, attempt.NewAttempt{SelectedOptionID: 101, TimeSpentSeconds: 5})
	require.NoError(t, err)

	st, err := fix.svc.QuizStatistics(ctx, fix.sess)
	require.NoError(t, err)

	// 1 correct of 3: 33.333... keeps one decimal place
	assert.Equal(t, 33.3, st.AccuracyRate)
	// 20s over 3 attempts: 6.666... likewise
	assert.Equal(t, 6.7, st.AvgTimeSpent)
}

func TestService_QuizStatistics_noSession(t *testing.T) {
	fix := setup(t)

	_, err := fix.svc.QuizStatistics(context.Background(), student.Session{})
	var aErr *core.AuthenticationError
	assert.ErrorAs(t, err, &aErr)
}
