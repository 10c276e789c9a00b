package app

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"tasklist/model"
)

const undoStackLimit = 20

// Service holds the screen state and is its only writer.
// Handlers run one at a time under mu, so callers on any goroutine observe
// whole updates only.
type Service struct {
	mu     sync.Mutex
	screen model.Screen
	undo   [][]model.Task
	newID  func() string
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides how task ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a service over an empty screen.
func NewService(opts ...Option) *Service {
	s := &Service{
		screen: model.NewScreen(),
		undo:   [][]model.Task{},
		newID:  uuid.NewString,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Screen returns a copy of the current state.
func (s *Service) Screen() model.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.Clone()
}

// Tasks returns the tasks in display order as a copy.
func (s *Service) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneTasks(s.screen.Tasks)
}

func (s *Service) SetDraft(text string) {
	_, _ = s.apply("set-draft", "", false, SetDraft(text))
}

// AddTask commits the current draft and returns the created task.
func (s *Service) AddTask() (model.Task, error) {
	s.mu.Lock()
	id := s.newID()
	s.mu.Unlock()

	screen, err := s.apply("add", id, true, AddTask(id))
	if err != nil {
		return model.Task{}, err
	}
	task, _ := screen.Task(id)
	return task, nil
}

func (s *Service) ToggleDone(id string) (model.Task, error) {
	screen, err := s.apply("toggle", id, true, ToggleDone(id))
	if err != nil {
		return model.Task{}, err
	}
	task, _ := screen.Task(id)
	return task, nil
}

func (s *Service) DeleteTask(id string) error {
	_, err := s.apply("delete", id, true, DeleteTask(id))
	return err
}

func (s *Service) BeginEdit(id string) error {
	_, err := s.apply("begin-edit", id, false, BeginEdit(id))
	return err
}

func (s *Service) SetEditDraft(text string) error {
	_, err := s.apply("set-edit-draft", "", false, SetEditDraft(text))
	return err
}

// SaveEdit commits the edit buffer and returns the updated task.
func (s *Service) SaveEdit() (model.Task, error) {
	var id string
	screen, err := s.apply("save-edit", "", true, func(sc model.Screen) (model.Screen, error) {
		id = sc.EditingID
		return SaveEdit()(sc)
	})
	if err != nil {
		return model.Task{}, err
	}
	task, _ := screen.Task(id)
	return task, nil
}

func (s *Service) CancelEdit() {
	_, _ = s.apply("cancel-edit", "", false, CancelEdit())
}

// Undo reverts the latest task mutation.
func (s *Service) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	last := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.screen, _ = restoreTasks(last)(s.screen)
	s.logger.Debug("applied", "cmd", "undo", "tasks", len(s.screen.Tasks))
	return nil
}

// apply runs h against the current screen and commits its result.
// Handlers return their input on rejection, so committing is always safe.
func (s *Service) apply(name, id string, recordUndo bool, h Handler) (model.Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.screen
	next, err := h(before)
	s.screen = next
	if err != nil {
		s.logger.Debug("rejected", "cmd", name, "id", id, "err", err)
		return s.screen.Clone(), err
	}
	if recordUndo {
		s.pushUndo(before.Tasks)
	}
	s.logger.Debug("applied", "cmd", name, "id", id, "tasks", len(s.screen.Tasks))
	return s.screen.Clone(), nil
}

func (s *Service) pushUndo(tasks []model.Task) {
	s.undo = append(s.undo, model.CloneTasks(tasks))
	if len(s.undo) > undoStackLimit {
		s.undo = s.undo[len(s.undo)-undoStackLimit:]
	}
}
