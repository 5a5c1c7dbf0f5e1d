package domain

import "slices"

// Ledger is the ordered list of tasks, newest first. Its methods return the
// affected task so callers can persist and report it.
type Ledger struct {
	tasks []*Task
}

// NewLedger wraps an existing task list. The slice is copied.
func NewLedger(tasks []*Task) *Ledger {
	return &Ledger{tasks: slices.Clone(tasks)}
}

// Tasks returns a copy of the ordered task list.
func (l *Ledger) Tasks() []*Task {
	out := make([]*Task, len(l.tasks))
	for i, t := range l.tasks {
		c := *t
		out[i] = &c
	}
	return out
}

// Len returns the number of tasks.
func (l *Ledger) Len() int {
	return len(l.tasks)
}

// Add creates a task and prepends it. Blank titles leave the ledger as is.
func (l *Ledger) Add(title string, total int) (*Task, error) {
	task, err := NewTask(title, total)
	if err != nil {
		return nil, err
	}
	l.tasks = slices.Insert(l.tasks, 0, task)
	c := *task
	return &c, nil
}

// Toggle flips the completed flag of a task.
func (l *Ledger) Toggle(id string) (*Task, error) {
	t := l.find(id)
	if t == nil {
		return nil, ErrTaskNotFound
	}
	t.Toggle()
	c := *t
	return &c, nil
}

// Adjust moves the completed count of a task by delta.
func (l *Ledger) Adjust(id string, delta int) (*Task, error) {
	t := l.find(id)
	if t == nil {
		return nil, ErrTaskNotFound
	}
	t.Adjust(delta)
	c := *t
	return &c, nil
}

// Delete removes a task. It reports whether anything was removed.
func (l *Ledger) Delete(id string) bool {
	n := len(l.tasks)
	l.tasks = slices.DeleteFunc(l.tasks, func(t *Task) bool { return t.ID == id })
	return len(l.tasks) != n
}

// Get returns a copy of the task with the given id.
func (l *Ledger) Get(id string) (*Task, error) {
	t := l.find(id)
	if t == nil {
		return nil, ErrTaskNotFound
	}
	c := *t
	return &c, nil
}

// Resolve finds a task by full id or unique id prefix.
func (l *Ledger) Resolve(ref string) (*Task, error) {
	if t := l.find(ref); t != nil {
		c := *t
		return &c, nil
	}
	var match *Task
	for _, t := range l.tasks {
		if len(ref) >= 4 && len(t.ID) >= len(ref) && t.ID[:len(ref)] == ref {
			if match != nil {
				return nil, ErrTaskNotFound
			}
			match = t
		}
	}
	if match == nil {
		return nil, ErrTaskNotFound
	}
	c := *match
	return &c, nil
}

// CompletedQuestions sums the completed counts across all tasks.
func (l *Ledger) CompletedQuestions() int {
	total := 0
	for _, t := range l.tasks {
		total += t.CompletedQuestions
	}
	return total
}

func (l *Ledger) find(id string) *Task {
	for _, t := range l.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
