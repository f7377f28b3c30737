package attempt

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// CorrectAnswerPoints is the fixed reward granted for a first correct attempt.
const CorrectAnswerPoints = 10

// Attempt records one student's single, final evaluation of a quiz. At most
// one attempt per (student, quiz) is authoritative; the first persisted one
// wins and later submissions are rejected, never overwritten.
type Attempt struct {
	ID               int       `json:"id"`
	StudentID        int       `json:"student_id"`
	QuizID           int       `json:"quiz_id"`
	SelectedOptionID int       `json:"selected_option_id"`
	IsCorrect        bool      `json:"is_correct"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	AttemptedAt      time.Time `json:"attempted_at"` // UTC
}

// NewAttempt is the submission payload. The client reports its own
// correctness verdict for wire compatibility with the portal pages, but the
// stored option's flag is authoritative (see Service.Submit).
type NewAttempt struct {
	SelectedOptionID int  `json:"selected_option_id" validate:"required"`
	IsCorrect        bool `json:"is_correct"`
	TimeSpentSeconds int  `json:"time_spent_seconds" validate:"min=0"`
}

func (na *NewAttempt) Validate(validate *validator.Validate) error {
	return validate.Struct(na)
}

// Result reports a successful submission.
type Result struct {
	Points        int `json:"points"`
	NewTotalScore int `json:"new_total_score"`
}
