package inmem

import (
	"context"
	"sort"

	"github.com/johnlouisuru/jstutorial-sub002/core/catalog"
	"github.com/johnlouisuru/jstutorial-sub002/core/stats"
)

type statsRepository struct {
	db *DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *DB) *statsRepository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) AttemptAggregate(_ context.Context, studentID int) (stats.AttemptAggregate, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var agg stats.AttemptAggregate
	for _, att := range repo.db.attempts {
		if att.StudentID != studentID {
			continue
		}
		agg.TotalAttempts++
		if att.IsCorrect {
			agg.CorrectAttempts++
		}
		agg.TotalTimeSeconds += att.TimeSpentSeconds
	}
	return agg, nil
}

func (repo *statsRepository) TopicCompletion(_ context.Context, studentID int) ([]stats.TopicCompletion, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	topics := make([]*catalog.Topic, 0, len(repo.db.topics))
	for _, t := range repo.db.topics {
		if t.Status == catalog.StatusActive {
			topics = append(topics, t)
		}
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Position != topics[j].Position {
			return topics[i].Position < topics[j].Position
		}
		return topics[i].ID < topics[j].ID
	})

	rows := make([]stats.TopicCompletion, 0, len(topics))
	for _, t := range topics {
		tc := stats.TopicCompletion{TopicID: t.ID, TopicName: t.Name}
		for _, l := range repo.db.lessons {
			if l.TopicID != t.ID || l.Status != catalog.StatusActive {
				continue
			}
			tc.TotalLessons++
			if p, ok := repo.db.progress[progressKey{studentID: studentID, lessonID: l.ID}]; ok && p.IsCompleted {
				tc.CompletedLessons++
			}
		}
		rows = append(rows, tc)
	}
	return rows, nil
}
