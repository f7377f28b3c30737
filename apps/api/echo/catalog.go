package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
)

type catalogApi struct {
	svc *catalog.Service
}

func registerCatalogAPI(g *echo.Group, deps ServerDeps) {
	api := catalogApi{svc: deps.CatalogSvc}

	tg := g.Group("/topics")
	tg.GET("", api.queryTopics)
	tg.GET("/:id/lessons", api.queryLessons)
	tg.GET("/:id/lessons/:lid", api.retrieveLesson)

	g.GET("/quizzes/:id", api.retrieveQuiz)
}

// intParam parses a numeric path parameter; garbage never matches a record.
func intParam(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

// Handlers

func (api *catalogApi) queryTopics(ctx echo.Context) error {
	topics, err := api.svc.QueryTopics(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying topics")
	}
	if topics == nil {
		topics = []catalog.Topic{}
	}
	return ctx.JSON(http.StatusOK, topics)
}

func (api *catalogApi) queryLessons(ctx echo.Context) error {
	topicID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	lessons, err := api.svc.QueryLessons(ctx.Request().Context(), topicID)
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	if lessons == nil {
		lessons = []catalog.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *catalogApi) retrieveLesson(ctx echo.Context) error {
	topicID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	lessonID, err := intParam(ctx, "lid")
	if err != nil {
		return err
	}
	lesson, err := api.svc.GetLessonInTopic(ctx.Request().Context(), topicID, lessonID)
	if err != nil {
		return errors.Wrap(err, "finding lesson")
	}
	return ctx.JSON(http.StatusOK, lesson)
}

func (api *catalogApi) retrieveQuiz(ctx echo.Context) error {
	quizID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	quiz, err := api.svc.GetQuiz(ctx.Request().Context(), quizID)
	if err != nil {
		return errors.Wrap(err, "finding quiz")
	}
	return ctx.JSON(http.StatusOK, quiz)
}
