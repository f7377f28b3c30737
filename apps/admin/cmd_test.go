package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
	"github.com/johnlouisuru/jstutorial-sub002/storage/database/inmem"
	testutil "github.com/johnlouisuru/jstutorial-sub002/tests"
)

var (
	stuRepo student.Repository
	catRepo catalog.Repository
)

func setup(t *testing.T) *commandLine {
	t.Helper()

	db := inmem.NewDB()
	stuRepo = inmem.NewStudentRepository(db)
	catRepo = inmem.NewCatalogRepository(db)

	// start CLI; migrations are mocked so no live connection is needed
	return &commandLine{
		db:      new(sqlx.DB),
		stuRepo: stuRepo,
		catRepo: catRepo,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "topic", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addStudent(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addstudent"}, wantErr: errHelp},
		{name: "missing email", args: []string{"addstudent", "-username", "ana"}, wantErr: errHelp},
		{name: "no password", args: []string{"addstudent", "-username", "ana", "-email", "ana@test.cd"}, wantErr: errHelp},
		{name: "create", args: []string{"addstudent", "-username", "ana", "-email", "ana@test.cd", "-name", "Ana Gomez"}, extra: extra{pwd: "s3cret"}},
		{name: "update existing", args: []string{"addstudent", "-username", "ana", "-email", "ana@test.cd"}, extra: extra{pwd: "n3w-pwd"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				stu, err := stuRepo.GetStudent(context.Background(), student.GetFilter{Username: "ana"})
				if err != nil {
					t.Fatalf("GetStudent() failed, %v", err)
				}
				if stu.Email != "ana@test.cd" {
					t.Errorf("GetStudent() email = %s", stu.Email)
				}
				if cErr := stu.CheckPassword(tt.extra.(extra).pwd); cErr != nil {
					t.Error("failed to set password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	stu := testutil.CreateStudent(t, stuRepo, "Ana Gomez", "ana", "ana@test.cd", "s3cret")

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "student not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: student.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", stu.Username}, extra: extra{pwd: "lol-pwd"}},
		{name: "reset with email", args: []string{"resetpassword", "-username", stu.Email}, extra: extra{pwd: "lmao-pwd"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := stuRepo.GetStudent(context.Background(), student.GetFilter{ID: stu.ID})
				if err != nil {
					t.Fatalf("GetStudent() failed, %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, stu.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_loadCatalog(t *testing.T) {
	cli := setup(t)

	catalogJSON := `{
	  "topics": [
	    {
	      "id": 1, "name": "JavaScript Basics", "position": 1,
	      "lessons": [
	        {
	          "id": 1, "title": "Variables", "content": "let and const", "position": 1,
	          "quizzes": [
	            {
	              "id": 7, "question": "Which keyword declares a constant?", "difficulty": "easy",
	              "options": [
	                {"id": 70, "text": "let", "is_correct": false, "position": 1},
	                {"id": 71, "text": "const", "is_correct": true, "position": 2}
	              ]
	            }
	          ]
	        },
	        {"id": 4, "title": "Old Syntax", "content": "var", "position": 2, "status": "archived"}
	      ]
	    }
	  ]
	}`
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	tests := []cliTest{
		{name: "no args", args: []string{"loadcatalog"}, wantErr: errHelp},
		{name: "missing file", args: []string{"loadcatalog", "-file", "nope.json"}, wantErrStr: "no such file"},
		{name: "load", args: []string{"loadcatalog", "-file", path}},
		{name: "load again is a no-op", args: []string{"loadcatalog", "-file", path}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				if tt.wantErrStr != "" {
					t.Fatalf("cli.run() expected an error containing %q", tt.wantErrStr)
				}

				ctx := context.Background()
				topics, qErr := catRepo.QueryTopics(ctx)
				if qErr != nil || len(topics) != 1 {
					t.Fatalf("QueryTopics() = %v, %v", topics, qErr)
				}
				quiz, qErr := catRepo.GetQuiz(ctx, 7)
				if qErr != nil {
					t.Fatalf("GetQuiz() failed, %v", qErr)
				}
				if len(quiz.Options) != 2 || !quiz.Options[1].IsCorrect {
					t.Errorf("GetQuiz() options = %+v", quiz.Options)
				}
				// the archived lesson must stay invisible
				if _, qErr = catRepo.GetLesson(ctx, 4); qErr != catalog.ErrNotFound {
					t.Errorf("GetLesson(4) error = %v, want ErrNotFound", qErr)
				}
			} else if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			} else if tt.wantErrStr != "" {
				if !strings.Contains(err.Error(), tt.wantErrStr) {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			} else {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}
