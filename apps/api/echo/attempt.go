package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core/attempt"
)

type attemptApi struct {
	svc      *attempt.Service
	validate *validator.Validate
}

func registerAttemptAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := attemptApi{svc: deps.AttemptSvc, validate: deps.Validate}

	ag := g.Group("/quizzes/:id/attempts", authed)
	ag.POST("", api.submit)
	ag.GET("", api.retrieve)
}

// Handlers

func (api *attemptApi) submit(ctx echo.Context) error {
	quizID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data attempt.NewAttempt
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttempt")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Submit(ctx.Request().Context(), sess, quizID, data)
	if err != nil {
		return errors.Wrap(err, "submitting attempt")
	}

	return ctx.JSON(http.StatusCreated, AttemptResponse{Success: true, Result: res})
}

func (api *attemptApi) retrieve(ctx echo.Context) error {
	quizID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	att, ok, err := api.svc.Get(ctx.Request().Context(), sess, quizID)
	if err != nil {
		return errors.Wrap(err, "finding attempt")
	}
	if !ok {
		return ctx.JSON(http.StatusOK, AttemptStatusResponse{Attempted: false})
	}
	return ctx.JSON(http.StatusOK, AttemptStatusResponse{Attempted: true, Attempt: &att})
}

type (
	AttemptResponse struct {
		Success bool `json:"success"`
		attempt.Result
	}

	AttemptStatusResponse struct {
		Attempted bool             `json:"attempted"`
		Attempt   *attempt.Attempt `json:"attempt,omitempty"`
	}
)
