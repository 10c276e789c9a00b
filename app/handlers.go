package app

import (
	"errors"
	"strings"

	"tasklist/model"
)

var (
	ErrEmptyTitle    = errors.New("task title must not be empty")
	ErrTaskNotFound  = errors.New("task not found")
	ErrNotEditing    = errors.New("no task is being edited")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Handler maps one user intent onto a screen.
// A rejected intent returns the input screen unchanged together with the error.
type Handler func(model.Screen) (model.Screen, error)

// SetDraft replaces the add-input buffer.
func SetDraft(text string) Handler {
	return func(s model.Screen) (model.Screen, error) {
		out := s.Clone()
		out.Draft = text
		return out, nil
	}
}

// AddTask appends the current draft as a new due task identified by id.
func AddTask(id string) Handler {
	return func(s model.Screen) (model.Screen, error) {
		title := strings.TrimSpace(s.Draft)
		if title == "" {
			return s, ErrEmptyTitle
		}
		out := s.Clone()
		out.Tasks = append(out.Tasks, model.Task{ID: id, Title: title, Done: false})
		out.Draft = ""
		return out, nil
	}
}

// ToggleDone flips the done flag of one task.
func ToggleDone(id string) Handler {
	return func(s model.Screen) (model.Screen, error) {
		idx := s.IndexOf(id)
		if idx == -1 {
			return s, ErrTaskNotFound
		}
		out := s.Clone()
		out.Tasks[idx].Done = !out.Tasks[idx].Done
		return out, nil
	}
}

// DeleteTask removes one task. Deleting the task under edit ends the edit session.
func DeleteTask(id string) Handler {
	return func(s model.Screen) (model.Screen, error) {
		idx := s.IndexOf(id)
		if idx == -1 {
			return s, ErrTaskNotFound
		}
		out := s.Clone()
		out.Tasks = append(out.Tasks[:idx], out.Tasks[idx+1:]...)
		if out.EditingID == id {
			closeEdit(&out)
		}
		return out, nil
	}
}

// BeginEdit opens the edit overlay seeded with the task's title.
func BeginEdit(id string) Handler {
	return func(s model.Screen) (model.Screen, error) {
		task, ok := s.Task(id)
		if !ok {
			return s, ErrTaskNotFound
		}
		out := s.Clone()
		out.EditingID = task.ID
		out.EditDraft = task.Title
		out.ModalOpen = true
		return out, nil
	}
}

// SetEditDraft replaces the edit-overlay buffer.
func SetEditDraft(text string) Handler {
	return func(s model.Screen) (model.Screen, error) {
		if !s.ModalOpen || s.EditingID == "" {
			return s, ErrNotEditing
		}
		out := s.Clone()
		out.EditDraft = text
		return out, nil
	}
}

// SaveEdit commits the edit buffer as the new title of the edit target.
// The done flag is left as it was. A session whose target no longer exists
// is closed and reported with ErrTaskNotFound.
func SaveEdit() Handler {
	return func(s model.Screen) (model.Screen, error) {
		if !s.ModalOpen || s.EditingID == "" {
			return s, ErrNotEditing
		}
		title := strings.TrimSpace(s.EditDraft)
		if title == "" {
			return s, ErrEmptyTitle
		}
		idx := s.IndexOf(s.EditingID)
		if idx == -1 {
			out := s.Clone()
			closeEdit(&out)
			return out, ErrTaskNotFound
		}
		out := s.Clone()
		out.Tasks[idx].Title = title
		closeEdit(&out)
		return out, nil
	}
}

// CancelEdit closes the overlay without touching the tasks.
func CancelEdit() Handler {
	return func(s model.Screen) (model.Screen, error) {
		out := s.Clone()
		closeEdit(&out)
		return out, nil
	}
}

// restoreTasks swaps in a task snapshot and drops an edit session whose target vanished.
func restoreTasks(tasks []model.Task) Handler {
	return func(s model.Screen) (model.Screen, error) {
		out := s.Clone()
		out.Tasks = model.CloneTasks(tasks)
		if out.EditingID != "" && out.IndexOf(out.EditingID) == -1 {
			closeEdit(&out)
		}
		return out, nil
	}
}

func closeEdit(s *model.Screen) {
	s.ModalOpen = false
	s.EditingID = ""
	s.EditDraft = ""
}
