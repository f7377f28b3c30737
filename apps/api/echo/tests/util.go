package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/johnlouisuru/jstutorial-sub002/apps/api/echo"
	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/attempt"
	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
	"github.com/johnlouisuru/jstutorial-sub002/core/progress"
	"github.com/johnlouisuru/jstutorial-sub002/core/stats"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
	"github.com/johnlouisuru/jstutorial-sub002/storage/database/inmem"
	testutil "github.com/johnlouisuru/jstutorial-sub002/tests"
)

var (
	errMissingToken   = httpErr{Error: "missing or malformed token"}
	errNotAuthed      = httpErr{Error: "not authenticated"}
	errPathNotFound   = httpErr{Error: "not found"}
	errUnknownTopic   = httpErr{Error: "unknown topic"}
	errUnknownLesson  = httpErr{Error: "unknown lesson"}
	errUnknownQuiz    = httpErr{Error: "unknown quiz"}
	errAlreadyAttempt = httpErr{Error: "this quiz has already been attempted"}
	errAuthFailed     = httpErr{Error: "authentication failed"}
)

type testApp struct {
	server   *Server
	conf     *core.Config
	stuRepo  student.Repository
	catRepo  catalog.Repository
	sessions *student.SessionStore
	stuSvc   *student.Service
}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := testutil.NewConfig()
	db := inmem.NewDB()

	stuRepo := inmem.NewStudentRepository(db)
	catRepo := inmem.NewCatalogRepository(db)
	testutil.SeedCatalog(t, catRepo)

	sessions := student.NewSessionStore()
	stuSvc := student.NewService(stuRepo, sessions)
	catSvc := catalog.NewService(catRepo)
	attemptSvc := attempt.NewService(inmem.NewAttemptRepository(db), catSvc, sessions)
	progressSvc := progress.NewService(inmem.NewProgressRepository(db), catSvc)
	statsSvc := stats.NewService(inmem.NewStatsRepository(db))

	validate, translator := testutil.NewValidator()

	server := NewServer(
		ServerDeps{
			Conf:        conf,
			Logger:      testutil.NewLogger(),
			StudentSvc:  stuSvc,
			CatalogSvc:  catSvc,
			AttemptSvc:  attemptSvc,
			ProgressSvc: progressSvc,
			StatsSvc:    statsSvc,
			Sessions:    sessions,
			Validate:    validate,
			Translator:  translator,
		},
	)
	return &testApp{
		server:   server,
		conf:     conf,
		stuRepo:  stuRepo,
		catRepo:  catRepo,
		sessions: sessions,
		stuSvc:   stuSvc,
	}
}

// login registers a student and opens a live session, returning the bearer token.
func (app *testApp) login(t *testing.T, name, uname, email, pwd string) (student.Session, string) {
	t.Helper()

	stu := testutil.CreateStudent(t, app.stuRepo, name, uname, email, pwd)
	sess := app.sessions.Open(stu)
	token, err := GenerateToken(app.conf, GetSessionClaims(app.conf, sess))
	if err != nil {
		t.Fatalf("login() failed: %v", err)
	}
	return sess, token
}

type httpErr struct {
	Error interface{} `json:"error"`
}

func (e httpErr) envelope() map[string]interface{} {
	return map[string]interface{}{"success": false, "error": e.Error}
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func errBody(t *testing.T, e httpErr) []byte {
	return marchallObj(t, e.envelope())
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
