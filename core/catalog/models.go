package catalog

// Status is the single lifecycle state of a catalog item. Only active items
// are visible to students.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Topic is a top-level named grouping of lessons, manually ordered.
type Topic struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Status   Status `json:"-"`
}

// Lesson is a unit of content within a Topic; content is opaque to the core.
type Lesson struct {
	ID       int    `json:"id"`
	TopicID  int    `json:"topic_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position int    `json:"position"`
	Status   Status `json:"-"`
}

// Quiz is a single multiple-choice question attached to a Lesson. Exactly one
// option is correct by construction; that is an authoring invariant, not one
// the core enforces.
type Quiz struct {
	ID         int          `json:"id"`
	LessonID   int          `json:"lesson_id"`
	Question   string       `json:"question"`
	Difficulty string       `json:"difficulty"`
	Status     Status       `json:"-"`
	Options    []QuizOption `json:"options"`
}

// Option returns the quiz option with the given id, if the quiz owns it.
func (q Quiz) Option(id int) (QuizOption, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return QuizOption{}, false
}

// QuizOption's correctness flag never leaves the backend.
type QuizOption struct {
	ID        int    `json:"id"`
	QuizID    int    `json:"quiz_id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"-"`
	Position  int    `json:"position"`
}
