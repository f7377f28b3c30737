package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
)

// catalog file format; unlike the API payloads it carries lifecycle states
// and option correctness.
type (
	catalogFile struct {
		Topics []topicEntry `json:"topics"`
	}

	topicEntry struct {
		ID       int           `json:"id"`
		Name     string        `json:"name"`
		Position int           `json:"position"`
		Status   string        `json:"status"`
		Lessons  []lessonEntry `json:"lessons"`
	}

	lessonEntry struct {
		ID       int         `json:"id"`
		Title    string      `json:"title"`
		Content  string      `json:"content"`
		Position int         `json:"position"`
		Status   string      `json:"status"`
		Quizzes  []quizEntry `json:"quizzes"`
	}

	quizEntry struct {
		ID         int           `json:"id"`
		Question   string        `json:"question"`
		Difficulty string        `json:"difficulty"`
		Status     string        `json:"status"`
		Options    []optionEntry `json:"options"`
	}

	optionEntry struct {
		ID        int    `json:"id"`
		Text      string `json:"text"`
		IsCorrect bool   `json:"is_correct"`
		Position  int    `json:"position"`
	}
)

func status(s string) catalog.Status {
	if s == "" {
		return catalog.StatusActive
	}
	return catalog.Status(s)
}

// loadCatalog upserts the catalog described in a JSON file. Re-running with
// the same file is a no-op.
func (cli *commandLine) loadCatalog(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading catalog file")
	}
	var file catalogFile
	if err = json.Unmarshal(raw, &file); err != nil {
		return errors.Wrap(err, "parsing catalog file")
	}

	ctx := context.Background()
	for _, te := range file.Topics {
		topic := catalog.Topic{
			ID:       te.ID,
			Name:     te.Name,
			Position: te.Position,
			Status:   status(te.Status),
		}
		if _, err = cli.catRepo.UpsertTopic(ctx, topic); err != nil {
			return errors.Wrapf(err, "upserting topic %d", te.ID)
		}

		for _, le := range te.Lessons {
			lesson := catalog.Lesson{
				ID:       le.ID,
				TopicID:  te.ID,
				Title:    le.Title,
				Content:  le.Content,
				Position: le.Position,
				Status:   status(le.Status),
			}
			if _, err = cli.catRepo.UpsertLesson(ctx, lesson); err != nil {
				return errors.Wrapf(err, "upserting lesson %d", le.ID)
			}

			for _, qe := range le.Quizzes {
				quiz := catalog.Quiz{
					ID:         qe.ID,
					LessonID:   le.ID,
					Question:   qe.Question,
					Difficulty: qe.Difficulty,
					Status:     status(qe.Status),
				}
				for _, oe := range qe.Options {
					quiz.Options = append(quiz.Options, catalog.QuizOption{
						ID:        oe.ID,
						QuizID:    qe.ID,
						Text:      oe.Text,
						IsCorrect: oe.IsCorrect,
						Position:  oe.Position,
					})
				}
				if _, err = cli.catRepo.UpsertQuiz(ctx, quiz); err != nil {
					return errors.Wrapf(err, "upserting quiz %d", qe.ID)
				}
			}
		}
	}
	return nil
}
