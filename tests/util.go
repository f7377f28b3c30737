package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/johnlouisuru/jstutorial-sub002/core"
	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
	"github.com/johnlouisuru/jstutorial-sub002/core/student"
)

// NewConfig returns a self-contained test configuration; nothing is read from
// the environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:       "TEST",
		TestMode:  true,
		Build:     "test",
		AppName:   "Tutorial Portal",
		SecretKey: "s3cr3t-t3st-k3y",
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: time.Hour,
		},
	}
}

func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate, translator
}

// NewLogger returns a core.Logger that discards everything.
func NewLogger() core.Logger {
	return nopLogger{}
}

type nopLogger struct{}

var _ core.Logger = nopLogger{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name, uname, email, pwd string,
	createdAt ...time.Time,
) student.Student {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	stu := student.Student{
		Name:        name,
		Username:    uname,
		Email:       email,
		AvatarColor: student.DeriveAvatarColor(email),
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	}
	if pwd != "" {
		if err := stu.SetPassword(pwd); err != nil {
			t.Fatalf("CreateStudent() failed: %v", err)
		}
	}
	stu, err := repo.CreateStudent(context.Background(), stu)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

// SeedCatalog loads a small fixed catalog:
//
//	topic 1 "JavaScript Basics" (active)
//	  lesson 1 "Variables" (active)   - quiz 7 (options 70 wrong, 71 correct)
//	  lesson 2 "Operators" (active)
//	  lesson 4 "Old Syntax" (archived)
//	topic 2 "Functions" (active)
//	  lesson 3 "Declarations" (active) - quiz 8 (options 80 correct, 81 wrong)
//	topic 3 "Async" (draft)
//	quiz 9 on lesson 2 is draft and must stay invisible.
func SeedCatalog(t *testing.T, repo catalog.Repository) {
	t.Helper()
	ctx := context.Background()

	topics := []catalog.Topic{
		{ID: 1, Name: "JavaScript Basics", Position: 1, Status: catalog.StatusActive},
		{ID: 2, Name: "Functions", Position: 2, Status: catalog.StatusActive},
		{ID: 3, Name: "Async", Position: 3, Status: catalog.StatusDraft},
	}
	for _, topic := range topics {
		if _, err := repo.UpsertTopic(ctx, topic); err != nil {
			t.Fatalf("SeedCatalog() failed: %v", err)
		}
	}

	lessons := []catalog.Lesson{
		{ID: 1, TopicID: 1, Title: "Variables", Content: "let and const", Position: 1, Status: catalog.StatusActive},
		{ID: 2, TopicID: 1, Title: "Operators", Content: "arithmetic and logic", Position: 2, Status: catalog.StatusActive},
		{ID: 3, TopicID: 2, Title: "Declarations", Content: "function declarations", Position: 1, Status: catalog.StatusActive},
		{ID: 4, TopicID: 1, Title: "Old Syntax", Content: "var", Position: 3, Status: catalog.StatusArchived},
	}
	for _, lesson := range lessons {
		if _, err := repo.UpsertLesson(ctx, lesson); err != nil {
			t.Fatalf("SeedCatalog() failed: %v", err)
		}
	}

	quizzes := []catalog.Quiz{
		{
			ID: 7, LessonID: 1, Question: "Which keyword declares a constant?", Difficulty: "easy", Status: catalog.StatusActive,
			Options: []catalog.QuizOption{
				{ID: 70, QuizID: 7, Text: "let", IsCorrect: false, Position: 1},
				{ID: 71, QuizID: 7, Text: "const", IsCorrect: true, Position: 2},
			},
		},
		{
			ID: 8, LessonID: 3, Question: "Which keyword declares a function?", Difficulty: "easy", Status: catalog.StatusActive,
			Options: []catalog.QuizOption{
				{ID: 80, QuizID: 8, Text: "function", IsCorrect: true, Position: 1},
				{ID: 81, QuizID: 8, Text: "def", IsCorrect: false, Position: 2},
			},
		},
		{
			ID: 9, LessonID: 2, Question: "Unpublished question", Difficulty: "hard", Status: catalog.StatusDraft,
			Options: []catalog.QuizOption{
				{ID: 90, QuizID: 9, Text: "a", IsCorrect: true, Position: 1},
				{ID: 91, QuizID: 9, Text: "b", IsCorrect: false, Position: 2},
			},
		},
	}
	for _, quiz := range quizzes {
		if _, err := repo.UpsertQuiz(ctx, quiz); err != nil {
			t.Fatalf("SeedCatalog() failed: %v", err)
		}
	}
}
