package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnlouisuru/jstutorial-sub002/core/stats"
)

func Test_statsApi_retrieve(t *testing.T) {
	app := setup(t)
	_, token := app.login(t, "Ana Gomez", "ana", "ana@test.cd", "s3cret")

	t.Run("no token", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: errBody(t, errMissingToken)}
		req, rec := newRequest(http.MethodGet, "/v1/students/me/statistics")
		app.server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("fresh student", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/me/statistics", token)
		app.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var st stats.Statistics
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
		assert.Zero(t, st.TotalAttempts)
		assert.Zero(t, st.AccuracyRate)
		assert.Zero(t, st.AvgTimeSpent)
		require.Len(t, st.TopicsProgress, 2)
	})

	t.Run("after one correct attempt and one completed lesson", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{"selected_option_id": 71, "is_correct": true, "time_spent_seconds": 12})
		req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes/7/attempts", token, body)
		app.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		req, rec = newAuthRequest(http.MethodPut, "/v1/lessons/1/progress", token)
		app.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		req, rec = newAuthRequest(http.MethodGet, "/v1/students/me/statistics", token)
		app.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var st stats.Statistics
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
		assert.Equal(t, 1, st.TotalAttempts)
		assert.Equal(t, 1, st.CorrectAttempts)
		assert.Zero(t, st.IncorrectAttempts)
		assert.Equal(t, 100.0, st.AccuracyRate)
		assert.Equal(t, 12.0, st.AvgTimeSpent)

		require.Len(t, st.TopicsProgress, 2)
		assert.Equal(t, 50, st.TopicsProgress[0].ProgressPercent)
		assert.Equal(t, 33, st.LessonsCompletionRate)
	})
}
