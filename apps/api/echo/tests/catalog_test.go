package tests

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_catalogApi_queryTopics(t *testing.T) {
	app := setup(t)

	topics, err := app.catRepo.QueryTopics(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 2)

	tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, topics)}
	req, rec := newRequest(http.MethodGet, "/v1/topics")
	app.server.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_catalogApi_queryLessons(t *testing.T) {
	app := setup(t)

	lessons, err := app.catRepo.QueryLessons(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, lessons, 2)

	tests := []httpTest{
		{name: "ok", path: "/v1/topics/1/lessons", wantCode: http.StatusOK, wantData: marchallObj(t, lessons)},
		{name: "draft topic", path: "/v1/topics/3/lessons", wantCode: http.StatusNotFound, wantData: errBody(t, errUnknownTopic)},
		{name: "unknown topic", path: "/v1/topics/999/lessons", wantCode: http.StatusNotFound, wantData: errBody(t, errUnknownTopic)},
		{name: "garbage topic id", path: "/v1/topics/lol/lessons", wantCode: http.StatusNotFound, wantData: errBody(t, errPathNotFound)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_retrieveLesson(t *testing.T) {
	app := setup(t)

	lesson, err := app.catRepo.GetLesson(context.Background(), 1)
	require.NoError(t, err)

	tests := []httpTest{
		{name: "ok", path: "/v1/topics/1/lessons/1", wantCode: http.StatusOK, wantData: marchallObj(t, lesson)},
		{name: "lesson in another topic", path: "/v1/topics/2/lessons/1", wantCode: http.StatusNotFound, wantData: errBody(t, errUnknownLesson)},
		{name: "archived lesson", path: "/v1/topics/1/lessons/4", wantCode: http.StatusNotFound, wantData: errBody(t, errUnknownLesson)},
		{name: "unknown lesson", path: "/v1/topics/1/lessons/999", wantCode: http.StatusNotFound, wantData: errBody(t, errUnknownLesson)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_retrieveQuiz(t *testing.T) {
	app := setup(t)

	t.Run("ok, correctness withheld", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/quizzes/7")
		app.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := rec.Body.String()
		assert.Contains(t, body, "const")
		assert.NotContains(t, body, "is_correct", "option correctness must never leave the backend")
		assert.False(t, strings.Contains(body, "correct\":true"))
	})

	tests := []httpTest{
		{name: "draft quiz", path: "/v1/quizzes/9", wantCode: http.StatusNotFound, wantData: errBody(t, errUnknownQuiz)},
		{name: "unknown quiz", path: "/v1/quizzes/999", wantCode: http.StatusNotFound, wantData: errBody(t, errUnknownQuiz)},
		{name: "garbage quiz id", path: "/v1/quizzes/lol", wantCode: http.StatusNotFound, wantData: errBody(t, errPathNotFound)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
