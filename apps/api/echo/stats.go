package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core/stats"
)

type statsApi struct {
	svc *stats.Service
}

func registerStatsAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := statsApi{svc: deps.StatsSvc}

	g.GET("/students/me/statistics", api.retrieve, authed)
}

func (api *statsApi) retrieve(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	st, err := api.svc.QuizStatistics(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "aggregating statistics")
	}
	return ctx.JSON(http.StatusOK, st)
}
