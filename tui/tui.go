package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"tasklist/app"
	"tasklist/config"
	"tasklist/model"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

func (f focusArea) String() string {
	if f == focusList {
		return "list"
	}
	return "input"
}

type Model struct {
	svc    *app.Service
	cfg    *config.Config
	logger *log.Logger
	copyFn func(string) error

	focus  focusArea
	cursor int

	draft textinput.Model
	edit  textinput.Model

	keys   keyMap
	help   help.Model
	styles styles

	status    string
	statusErr bool

	width  int
	height int
}

func NewModel(svc *app.Service, cfg *config.Config, logger *log.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
		copyFn: clipboard.WriteAll,
		focus:  focusInput,
		draft:  newInput(cfg.UI.AddPlaceholder, cfg.UI.CharLimit),
		edit:   newInput(cfg.UI.EditPlaceholder, cfg.UI.CharLimit),
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: newStyles(cfg.Theme),
		status: "Ready",
	}
	m.draft.SetValue(svc.Screen().Draft)
	m.draft.Focus()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

// SetClipboard replaces the clipboard writer used by the copy action.
func (m *Model) SetClipboard(fn func(string) error) {
	if fn != nil {
		m.copyFn = fn
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.viewportWidth()
		m.layoutInputs()
		return m, nil
	case tea.KeyMsg:
		m.logger.Debug("key", "key", msg.String(), "focus", m.focus.String())
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.svc.Screen().ModalOpen {
			return m, m.updateOverlay(msg)
		}
		if m.focus == focusInput {
			return m, m.updateInput(msg)
		}
		return m, m.updateList(msg)
	}

	// Cursor blink and other internal messages go to whichever input is live.
	var cmd tea.Cmd
	if m.svc.Screen().ModalOpen {
		m.edit, cmd = m.edit.Update(msg)
	} else if m.focus == focusInput {
		m.draft, cmd = m.draft.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Add):
		m.addTask()
		return nil
	case key.Matches(msg, m.keys.LeaveEdit), key.Matches(msg, m.keys.SwitchFocus):
		m.focusOnList()
		return nil
	}

	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	m.svc.SetDraft(m.draft.Value())
	return cmd
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.FocusInput), key.Matches(msg, m.keys.SwitchFocus):
		return m.focusOnInput()
	case key.Matches(msg, m.keys.Undo):
		m.undo()
	case key.Matches(msg, m.keys.Copy):
		m.copyTasks()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) updateOverlay(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.saveEdit()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.cancelEdit()
		return nil
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	if err := m.svc.SetEditDraft(m.edit.Value()); err != nil {
		m.setStatus("Edit failed: "+err.Error(), true)
	}
	return cmd
}

func (m *Model) addTask() {
	task, err := m.svc.AddTask()
	if err != nil {
		if errors.Is(err, app.ErrEmptyTitle) {
			m.setStatus("Task title must not be empty", true)
			return
		}
		m.setStatus("Failed to add task: "+err.Error(), true)
		return
	}
	m.draft.SetValue("")
	m.cursor = m.indexOfTask(task.ID)
	m.setStatus(fmt.Sprintf("Added %q", task.Title), false)
}

func (m *Model) toggleSelected() {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected", false)
		return
	}
	updated, err := m.svc.ToggleDone(task.ID)
	if err != nil {
		m.setStatus("Failed to toggle task: "+err.Error(), true)
		return
	}
	if updated.Done {
		m.setStatus("Task done", false)
	} else {
		m.setStatus("Task due", false)
	}
}

func (m *Model) deleteSelected() {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected", false)
		return
	}
	if err := m.svc.DeleteTask(task.ID); err != nil {
		m.setStatus("Failed to delete task: "+err.Error(), true)
		return
	}
	m.ensureSelection()
	m.setStatus(fmt.Sprintf("Deleted %q • u undo", task.Title), false)
}

func (m *Model) startEdit() tea.Cmd {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected", false)
		return nil
	}
	if err := m.svc.BeginEdit(task.ID); err != nil {
		m.setStatus("Failed to edit task: "+err.Error(), true)
		return nil
	}
	m.edit.SetValue(m.svc.Screen().EditDraft)
	m.edit.CursorEnd()
	m.setStatus("Editing task", false)
	return m.edit.Focus()
}

func (m *Model) saveEdit() {
	task, err := m.svc.SaveEdit()
	switch {
	case errors.Is(err, app.ErrEmptyTitle):
		m.setStatus("Task title must not be empty", true)
		return
	case errors.Is(err, app.ErrTaskNotFound):
		m.closeOverlay()
		m.setStatus("Task no longer exists", true)
		return
	case err != nil:
		m.setStatus("Failed to save task: "+err.Error(), true)
		return
	}
	m.closeOverlay()
	m.setStatus(fmt.Sprintf("Updated %q", task.Title), false)
}

func (m *Model) cancelEdit() {
	m.svc.CancelEdit()
	m.closeOverlay()
	m.setStatus("Edit cancelled", false)
}

func (m *Model) closeOverlay() {
	m.edit.Blur()
	m.edit.SetValue("")
}

func (m *Model) undo() {
	if err := m.svc.Undo(); err != nil {
		if errors.Is(err, app.ErrNothingToUndo) {
			m.setStatus("Nothing to undo", false)
			return
		}
		m.setStatus("Undo failed: "+err.Error(), true)
		return
	}
	m.ensureSelection()
	m.setStatus("Undone", false)
}

func (m *Model) copyTasks() {
	tasks := m.svc.Tasks()
	if len(tasks) == 0 {
		m.setStatus("No tasks to copy", false)
		return
	}
	if err := m.copyFn(formatTasks(tasks)); err != nil {
		m.setStatus("Copy failed: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("%d tasks copied to clipboard", len(tasks)), false)
}

func (m *Model) focusOnInput() tea.Cmd {
	m.focus = focusInput
	return m.draft.Focus()
}

func (m *Model) focusOnList() {
	m.focus = focusList
	m.draft.Blur()
	m.ensureSelection()
}

func (m *Model) moveCursor(delta int) {
	tasks := m.svc.Tasks()
	if len(tasks) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(tasks)-1)
}

func (m *Model) ensureSelection() {
	tasks := m.svc.Tasks()
	if len(tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, len(tasks)-1)
}

// selectedTask resolves the cursor row to a task at the moment of the action,
// so handlers always receive an id rather than a position.
func (m *Model) selectedTask() (model.Task, bool) {
	tasks := m.svc.Tasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	if m.cursor < 0 || m.cursor >= len(tasks) {
		m.cursor = 0
	}
	return tasks[m.cursor], true
}

func (m *Model) indexOfTask(id string) int {
	idx := m.svc.Screen().IndexOf(id)
	if idx == -1 {
		return 0
	}
	return idx
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func formatTasks(tasks []model.Task) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		check := "[ ]"
		if t.Done {
			check = "[x]"
		}
		lines = append(lines, fmt.Sprintf("- %s %s", check, t.Title))
	}
	return strings.Join(lines, "\n")
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
