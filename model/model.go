package model

import "strings"

const (
	StatusDue  = "due"
	StatusDone = "done"
)

// Task is an individual todo item.
type Task struct {
	ID    string
	Title string
	Done  bool
}

// Status returns the human label for the task's done flag.
func (t Task) Status() string {
	if t.Done {
		return StatusDone
	}
	return StatusDue
}

// Screen is the full state of the task list screen.
// EditingID is empty when no edit session is open.
type Screen struct {
	Tasks     []Task
	Draft     string
	EditingID string
	EditDraft string
	ModalOpen bool
}

// NewScreen returns an initialized empty screen.
func NewScreen() Screen {
	return Screen{
		Tasks: []Task{},
	}
}

// Clone returns a copy that shares no backing array with s.
func (s Screen) Clone() Screen {
	out := s
	out.Tasks = CloneTasks(s.Tasks)
	return out
}

// CloneTasks copies a task slice, never returning nil.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// IndexOf returns the position of the task with id, or -1.
func (s Screen) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Task returns the task with id.
func (s Screen) Task(id string) (Task, bool) {
	idx := s.IndexOf(id)
	if idx == -1 {
		return Task{}, false
	}
	return s.Tasks[idx], true
}

// Editing returns the task targeted by the open edit session.
func (s Screen) Editing() (Task, bool) {
	if !s.ModalOpen || s.EditingID == "" {
		return Task{}, false
	}
	return s.Task(s.EditingID)
}

// Counts returns how many tasks are done and due.
func (s Screen) Counts() (done, due int) {
	for _, t := range s.Tasks {
		if t.Done {
			done++
		} else {
			due++
		}
	}
	return done, due
}

// CanSubmit reports whether text is acceptable as a task title.
func CanSubmit(text string) bool {
	return strings.TrimSpace(text) != ""
}
