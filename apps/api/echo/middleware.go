package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

// sessionMiddleware authenticates requests carrying a "Bearer <token>" header.
// The token's jti claim must resolve to a live entry in the session store; a
// valid token whose session has been destroyed (logout) is rejected all the
// same.
func sessionMiddleware(conf *core.Config, sessions *student.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return errTokenMissing
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				return errTokenMissing
			}

			claims, err := parseToken(conf, strings.TrimSpace(auth[len(prefix):]))
			if err != nil {
				return err
			}
			sess, ok := sessions.Get(claims.Id)
			if !ok {
				return errUnauthorized
			}

			ctx.Set(contextClaimsKey, claims)
			ctx.Set(contextSessionKey, sess)
			return next(ctx)
		}
	}
}
