package echoapi

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

const (
	contextClaimsKey  = "sessionClaims"
	contextSessionKey = "session"
)

// Claims is the authorization payload transmitted via a JWT. The token is only
// a bearer for the session id (the `jti` claim); the session snapshot lives in
// the server-side store and the claims carry display hints at most.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
}

func GetSessionClaims(conf *core.Config, sess student.Session) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   strconv.Itoa(sess.StudentID),
			Id:        sess.ID,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: sess.Username,
	}
}

// GenerateToken generates a signed JWT token string representing the session Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func parseToken(conf *core.Config, tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(conf.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized
	}
	return claims, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(*Claims); ok {
		return *claims, nil
	}
	return Claims{}, errUnauthorized
}

// getContextSession returns the live session resolved by sessionMiddleware.
func getContextSession(ctx echo.Context) (student.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(student.Session); ok {
		return sess, nil
	}
	return student.Session{}, errUnauthorized
}
