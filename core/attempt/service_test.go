package attempt_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/attempt"
	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
	"github.com/johnlouisuru/jstutorial-sub002/storage/database/inmem"
	testutil "github.com/johnlouisuru/jstutorial-sub002/tests"
)

type fixture struct {
	svc      *attempt.Service
	sessions *student.SessionStore
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

	svc := attempt.NewService(inmem.NewAttemptRepository(db), catalog.NewService(catRepo), sessions)
	return fixture{svc: svc, sessions: sessions, sess: sess}
}

func TestService_Submit(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	res, err := fix.svc.Submit(ctx, fix.sess, 7, attempt.NewAttempt{
		SelectedOptionID: 71,
		IsCorrect:        true,
		TimeSpentSeconds: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Points)
	assert.Equal(t, 10, res.NewTotalScore)

	// the session score cache is resynced before the reply
	got, ok := fix.sessions.Get(fix.sess.ID)
	require.True(t, ok)
	assert.Equal(t, 10, got.Score)

	att, ok, err := fix.svc.Get(ctx, fix.sess, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, att.IsCorrect)
	assert.Equal(t, 12, att.TimeSpentSeconds)
}

func TestService_Submit_incorrect(t *testing.T) {
	fix := setup(t)

	res, err := fix.svc.Submit(context.Background(), fix.sess, 7, attempt.NewAttempt{
		SelectedOptionID: 70,
		IsCorrect:        false,
		TimeSpentSeconds: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Points)
	assert.Equal(t, 0, res.NewTotalScore)
}

func TestService_Submit_storedCorrectnessWins(t *testing.T) {
	fix := setup(t)

	// the client lies: claims the wrong option is correct
	res, err := fix.svc.Submit(context.Background(), fix.sess, 7, attempt.NewAttempt{
		SelectedOptionID: 70,
		IsCorrect:        true,
		TimeSpentSeconds: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Points)

	att, ok, err := fix.svc.Get(context.Background(), fix.sess, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, att.IsCorrect)
}

func TestService_Submit_duplicate(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	_, err := fix.svc.Submit(ctx, fix.sess, 7, attempt.NewAttempt{SelectedOptionID: 71, IsCorrect: true, TimeSpentSeconds: 12})
	require.NoError(t, err)

	_, err = fix.svc.Submit(ctx, fix.sess, 7, attempt.NewAttempt{SelectedOptionID: 70, TimeSpentSeconds: 3})
	var cErr *core.ConflictError
	require.ErrorAs(t, err, &cErr)

	// the rejected submission must not have credited anything
	got, ok := fix.sessions.Get(fix.sess.ID)
	require.True(t, ok)
	assert.Equal(t, 10, got.Score)
}

func TestService_Submit_concurrent(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	const n = 10
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fix.svc.Submit(ctx, fix.sess, 7, attempt.NewAttempt{
				SelectedOptionID: 71,
				IsCorrect:        true,
				TimeSpentSeconds: 12,
			})
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var cErr *core.ConflictError
		require.ErrorAs(t, err, &cErr)
		conflicts++
	}
	assert.Equal(t, 1, successes, "exactly one submission must win")
	assert.Equal(t, n-1, conflicts)

	got, ok := fix.sessions.Get(fix.sess.ID)
	require.True(t, ok)
	assert.Equal(t, 10, got.Score, "score must be credited exactly once")
}

func TestService_Submit_errors(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		sess    student.Session
		quizID  int
		data    attempt.NewAttempt
		wantErr interface{}
	}{
		{
			name:    "no session",
			quizID:  7,
			data:    attempt.NewAttempt{SelectedOptionID: 71},
			wantErr: new(*core.AuthenticationError),
		},
		{
			name:    "unknown quiz",
			sess:    fix.sess,
			quizID:  999,
			data:    attempt.NewAttempt{SelectedOptionID: 71},
			wantErr: new(*core.NotFoundError),
		},
		{
			name:    "draft quiz",
			sess:    fix.sess,
			quizID:  9,
			data:    attempt.NewAttempt{SelectedOptionID: 90},
			wantErr: new(*core.NotFoundError),
		},
		{
			name:    "option from another quiz",
			sess:    fix.sess,
			quizID:  7,
			data:    attempt.NewAttempt{SelectedOptionID: 80},
			wantErr: new(*core.ValidationError),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fix.svc.Submit(ctx, tt.sess, tt.quizID, tt.data)
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.wantErr)
		})
	}
}

func TestService_Get_notAttempted(t *testing.T) {
	fix := setup(t)

	_, ok, err := fix.svc.Get(context.Background(), fix.sess, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}
