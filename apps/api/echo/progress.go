package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core/progress"
)

type progressApi struct {
	svc *progress.Service
}

func registerProgressAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := progressApi{svc: deps.ProgressSvc}

	pg := g.Group("/lessons/:id/progress", authed)
	pg.PUT("", api.markCompleted)
	pg.DELETE("", api.reset)
	pg.GET("", api.retrieve)
}

// Handlers

func (api *progressApi) markCompleted(ctx echo.Context) error {
	lessonID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.MarkCompleted(ctx.Request().Context(), sess, lessonID); err != nil {
		return errors.Wrap(err, "marking lesson completed")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (api *progressApi) reset(ctx echo.Context) error {
	lessonID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Reset(ctx.Request().Context(), sess, lessonID); err != nil {
		return errors.Wrap(err, "resetting lesson progress")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (api *progressApi) retrieve(ctx echo.Context) error {
	lessonID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	prog, ok, err := api.svc.Get(ctx.Request().Context(), sess, lessonID)
	if err != nil {
		return errors.Wrap(err, "finding lesson progress")
	}
	if !ok {
		return ctx.JSON(http.StatusOK, ProgressResponse{Started: false})
	}
	return ctx.JSON(http.StatusOK, ProgressResponse{Started: true, Progress: &prog})
}

type ProgressResponse struct {
	Started  bool               `json:"started"`
	Progress *progress.Progress `json:"progress,omitempty"`
}
