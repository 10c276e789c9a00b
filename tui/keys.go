package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// List
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	FocusInput key.Binding
	Undo       key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding

	// Add input
	Add       key.Binding
	LeaveEdit key.Binding

	// Edit overlay
	Save   key.Binding
	Cancel key.Binding

	SwitchFocus key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "done/due")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		FocusInput: key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "new task")),
		Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy list")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

		Add:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		LeaveEdit: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "to list")),

		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		SwitchFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// bindingSet adapts a fixed group of bindings to help.KeyMap.
type bindingSet struct {
	short []key.Binding
	full  [][]key.Binding
}

func (b bindingSet) ShortHelp() []key.Binding  { return b.short }
func (b bindingSet) FullHelp() [][]key.Binding { return b.full }

func (k keyMap) listHelp() bindingSet {
	return bindingSet{
		short: []key.Binding{k.Toggle, k.Edit, k.Delete, k.FocusInput, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Up, k.Down, k.SwitchFocus},
			{k.Toggle, k.Edit, k.Delete},
			{k.FocusInput, k.Undo, k.Copy},
			{k.Help, k.Quit, k.ForceQuit},
		},
	}
}

// inputHelp expects Add to already reflect whether the draft can be submitted.
func (k keyMap) inputHelp() bindingSet {
	return bindingSet{
		short: []key.Binding{k.Add, k.LeaveEdit, k.SwitchFocus, k.ForceQuit},
		full:  [][]key.Binding{{k.Add, k.LeaveEdit}, {k.SwitchFocus, k.ForceQuit}},
	}
}

func (k keyMap) overlayHelp() bindingSet {
	return bindingSet{
		short: []key.Binding{k.Save, k.Cancel, k.ForceQuit},
		full:  [][]key.Binding{{k.Save, k.Cancel}, {k.ForceQuit}},
	}
}
