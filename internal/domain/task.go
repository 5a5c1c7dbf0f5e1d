package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Task is a question-practice entry: a target number of questions and how
// many of them are done. Completed is normally derived from the counters but
// can also be flipped by hand, so the two may disagree.
type Task struct {
	ID                 string
	Title              string
	TotalQuestions     int
	CompletedQuestions int
	Completed          bool
	CreatedAt          time.Time
}

// NewTask creates a task with the given title and question target.
// Targets below one are raised to one.
func NewTask(title string, total int) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}

	return &Task{
		ID:             newID(),
		Title:          title,
		TotalQuestions: max(total, 1),
		CreatedAt:      time.Now().Truncate(time.Millisecond),
	}, nil
}

// Toggle flips the completed flag without touching the counters.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// Adjust adds delta to the completed count, clamped to [0, total], and
// recomputes the completed flag.
func (t *Task) Adjust(delta int) {
	t.CompletedQuestions = min(max(t.CompletedQuestions+delta, 0), t.TotalQuestions)
	t.Completed = t.CompletedQuestions == t.TotalQuestions
}

// Progress returns the completed share in [0, 1].
func (t *Task) Progress() float64 {
	if t.TotalQuestions <= 0 {
		return 0
	}
	return float64(t.CompletedQuestions) / float64(t.TotalQuestions)
}

// taskJSON is the stored shape; createdAt is Unix milliseconds.
type taskJSON struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	TotalQuestions     int    `json:"totalQuestions"`
	CompletedQuestions int    `json:"completedQuestions"`
	Completed          bool   `json:"completed"`
	CreatedAt          int64  `json:"createdAt"`
}

// MarshalJSON implements json.Marshaler.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		ID:                 t.ID,
		Title:              t.Title,
		TotalQuestions:     t.TotalQuestions,
		CompletedQuestions: t.CompletedQuestions,
		Completed:          t.Completed,
		CreatedAt:          t.CreatedAt.UnixMilli(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Counters from older or edited
// data are clamped back into range.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.ID = raw.ID
	t.Title = raw.Title
	t.TotalQuestions = max(raw.TotalQuestions, 1)
	t.CompletedQuestions = min(max(raw.CompletedQuestions, 0), t.TotalQuestions)
	t.Completed = raw.Completed
	t.CreatedAt = time.UnixMilli(raw.CreatedAt)
	return nil
}
