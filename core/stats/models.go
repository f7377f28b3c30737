package stats

// AttemptAggregate is the raw per-student rollup over quiz attempts.
type AttemptAggregate struct {
	TotalAttempts    int `db:"total_attempts"`
	CorrectAttempts  int `db:"correct_attempts"`
	TotalTimeSeconds int `db:"total_time_seconds"`
}

// TopicCompletion counts a student's completed lessons against the active
// lesson set of one active topic.
type TopicCompletion struct {
	TopicID          int    `db:"topic_id" json:"topic_id"`
	TopicName        string `db:"topic_name" json:"topic_name"`
	TotalLessons     int    `db:"total_lessons" json:"total_lessons"`
	CompletedLessons int    `db:"completed_lessons" json:"completed_lessons"`
}

// TopicProgress adds the derived percentage for the dashboard.
type TopicProgress struct {
	TopicCompletion
	ProgressPercent int `json:"progress_percent"`
}

// Statistics is the full dashboard payload, derived on demand from current
// store state; nothing here is cached or persisted.
type Statistics struct {
	TotalAttempts         int             `json:"total_attempts"`
	CorrectAttempts       int             `json:"correct_attempts"`
	IncorrectAttempts     int             `json:"incorrect_attempts"`
	AccuracyRate          float64         `json:"accuracy_rate"`
	AvgTimeSpent          float64         `json:"avg_time_spent"`
	TopicsProgress        []TopicProgress `json:"topics_progress"`
	LessonsCompletionRate int             `json:"lessons_completion_rate"`
}
