package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"tasklist/model"
)

const (
	addButtonLabel    = "[ Add Task ]"
	addButtonShort    = "[+]"
	saveButtonLabel   = "[ Save ]"
	cancelButtonLabel = "[ Cancel ]"
	editLabel         = "Edit"
	deleteLabel       = "Delete"

	minTitleWidth   = 4
	minDraftWidth   = 10
	minOverlayWidth = 20
	maxOverlayWidth = 60

	// border (2) + padding (2) + cursor cell (1) + gap before the button (1)
	inputChrome = 6
	// horizontal padding inside the edit overlay
	overlayPadX = 2
)

// rowActions is one rendering of the Edit/Delete affordances, widest first.
type rowActions struct {
	edit, gap, del string
}

var rowActionSets = []rowActions{
	{editLabel, "  ", deleteLabel},
	{"E", " ", "D"},
}

func (a rowActions) width() int {
	// leading and trailing space around the labels
	return runewidth.StringWidth(a.edit+a.gap+a.del) + 2
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	st := m.svc.Screen()
	viewW := m.viewportWidth()

	header := m.renderHeader(st)
	inputRow := m.renderInputRow(st)
	footer := m.renderFooter(viewW)
	helpLine := m.help.View(m.helpBindings(st))

	listH := m.height - lipgloss.Height(header) - lipgloss.Height(inputRow) -
		lipgloss.Height(footer) - lipgloss.Height(helpLine) - 2
	if listH < 1 {
		listH = 1
	}

	body := m.renderTasks(st, viewW, listH)
	if st.ModalOpen {
		body = overlayOnList(body, m.renderOverlay(st, viewW, listH), viewW, listH)
	}

	out := strings.Join([]string{header, inputRow, "", body, "", footer, helpLine}, "\n")
	return clipView(out, viewW, m.height)
}

func (m *Model) viewportWidth() int {
	if m.width <= 0 {
		return 1
	}
	// One column is kept free so the right edge doesn't wrap in some terminals.
	if m.width > 1 {
		return m.width - 1
	}
	return m.width
}

// overlayWidth is the overlay width inside its border.
func (m *Model) overlayWidth(viewW int) int {
	w := viewW - 4
	if w > maxOverlayWidth {
		w = maxOverlayWidth
	}
	if w < minOverlayWidth {
		w = viewW - 2
	}
	if w < 1 {
		w = 1
	}
	return w
}

// addButton falls back to a short label when the full one would squeeze the input.
func (m *Model) addButton() string {
	free := m.viewportWidth() - lipgloss.Width(addButtonLabel) - inputChrome - lipgloss.Width(m.draft.Prompt)
	if free >= minDraftWidth {
		return addButtonLabel
	}
	return addButtonShort
}

// layoutInputs sizes both text inputs to the current terminal width.
func (m *Model) layoutInputs() {
	viewW := m.viewportWidth()
	draftW := viewW - lipgloss.Width(m.addButton()) - inputChrome - lipgloss.Width(m.draft.Prompt)
	if draftW < 1 {
		draftW = 1
	}
	m.draft.Width = draftW

	editW := m.overlayWidth(viewW) - 2*overlayPadX - lipgloss.Width(m.edit.Prompt) - 1
	if editW < 1 {
		editW = 1
	}
	m.edit.Width = editW
}

func (m *Model) renderHeader(st model.Screen) string {
	done, due := st.Counts()
	summary := fmt.Sprintf("  %d done • %d due", done, due)
	return lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.header.Render(m.cfg.UI.Header),
		m.styles.summary.Render(summary),
	)
}

func (m *Model) renderInputRow(st model.Screen) string {
	box := m.styles.inputBlurred
	if m.focus == focusInput && !st.ModalOpen {
		box = m.styles.inputFocused
	}
	input := box.Render(singleLine(m.draft.View(), m.draft.Width+lipgloss.Width(m.draft.Prompt)+1))

	label := m.addButton()
	button := m.styles.buttonDisabled.Render(label)
	if model.CanSubmit(st.Draft) {
		button = m.styles.button.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, input, " ", button)
}

func (m *Model) renderTasks(st model.Screen, width, height int) string {
	box := lipgloss.NewStyle().Width(width).Height(height).MaxWidth(width).MaxHeight(height)
	if len(st.Tasks) == 0 {
		return box.Render(m.styles.empty.Render("No tasks yet. Type a title above and press enter."))
	}

	start, end := visibleRange(len(st.Tasks), m.cursor, height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.cursor && m.focus == focusList
		lines = append(lines, m.renderRow(st.Tasks[i], selected, width))
	}
	return box.Render(strings.Join(lines, "\n"))
}

// renderRow draws one task as a line exactly width cells wide whose
// background follows its status. Action labels shrink, then disappear,
// before the title drops under minTitleWidth.
func (m *Model) renderRow(t model.Task, selected bool, width int) string {
	base := m.styles.dueRow
	check := "[ ]"
	if t.Done {
		base = m.styles.doneRow
		check = "[x]"
	}
	if selected {
		base = base.Bold(true)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	prefix := " " + cursor + check + " "
	prefixW := runewidth.StringWidth(prefix)

	for _, a := range rowActionSets {
		titleW := width - prefixW - a.width()
		if titleW < minTitleWidth {
			continue
		}
		return base.Render(prefix+fitTitle(t.Title, titleW)+" ") +
			base.Foreground(m.styles.accent).Bold(true).Render(a.edit) +
			base.Render(a.gap) +
			base.Foreground(m.styles.danger).Render(a.del) +
			base.Render(" ")
	}

	line := prefix + fitTitle(t.Title, max(width-prefixW, 1))
	return base.Render(runewidth.FillRight(runewidth.Truncate(line, width, ""), width))
}

func fitTitle(title string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(title, w, "…"), w)
}

// renderOverlay draws the edit dialog no taller than maxH, dropping
// spacing and then the border as the list area shrinks.
func (m *Model) renderOverlay(st model.Screen, viewW, maxH int) string {
	w := m.overlayWidth(viewW)
	bodyW := w - 2*overlayPadX

	save := m.styles.buttonDisabled.Render(saveButtonLabel)
	if model.CanSubmit(st.EditDraft) {
		save = m.styles.button.Render(saveButtonLabel)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, save, "  ", m.styles.cancelButton.Render(cancelButtonLabel))
	title := m.styles.overlayTitle.Render("Edit Task")
	input := m.edit.View()

	style := m.styles.overlay
	rows := []string{title, "", input, "", buttons}
	if maxH < len(rows)+4 {
		// border (2) + title, input and buttons
		if maxH >= 5 {
			style = style.Padding(0, overlayPadX)
			rows = []string{title, input, buttons}
		} else {
			style = lipgloss.NewStyle().Padding(0, overlayPadX)
			rows = []string{input, buttons}
		}
	}

	for i, r := range rows {
		rows[i] = singleLine(r, bodyW)
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

// overlayOnList centers overlay over base, keeping the list rows around it.
// The result is exactly height lines.
func overlayOnList(base, overlay string, width, height int) string {
	bg := fitLines(base, height)
	fg := fitLines(overlay, min(lipgloss.Height(overlay), height))

	fgW := 0
	for i, line := range fg {
		if xansi.StringWidth(line) > width {
			fg[i] = xansi.Truncate(line, width, "")
		}
		fgW = max(fgW, xansi.StringWidth(fg[i]))
	}

	top := (height - len(fg)) / 2
	left := (width - fgW) / 2
	for i, line := range fg {
		row := bg[top+i]
		lead := xansi.Truncate(row, left, "")
		if pad := left - xansi.StringWidth(lead); pad > 0 {
			lead += strings.Repeat(" ", pad)
		}
		if pad := fgW - xansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		bg[top+i] = lead + "\x1b[0m" + line + "\x1b[0m" + xansi.Cut(row, left+fgW, width)
	}
	return strings.Join(bg, "\n")
}

// fitLines returns exactly n lines of s, cutting or padding with blanks.
func fitLines(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

// clipView keeps the frame inside the terminal.
func clipView(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if xansi.StringWidth(line) > width {
			lines[i] = xansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter(width int) string {
	left := strings.TrimSpace(m.status)
	if left == "" {
		left = "Ready"
	}
	right := "focus: " + m.focus.String()

	statusStyle := m.styles.status
	if m.statusErr {
		statusStyle = m.styles.statusErr
	}

	rightW := runewidth.StringWidth(right)
	maxLeft := width - rightW - 1
	if maxLeft < 8 {
		maxLeft = 8
	}
	left = runewidth.Truncate(left, maxLeft, "…")

	padding := width - runewidth.StringWidth(left) - rightW
	if padding < 1 {
		padding = 1
	}
	return statusStyle.Render(left) + strings.Repeat(" ", padding) + m.styles.hint.Render(right)
}

func (m *Model) helpBindings(st model.Screen) bindingSet {
	k := m.keys
	if st.ModalOpen {
		k.Save.SetEnabled(model.CanSubmit(st.EditDraft))
		return k.overlayHelp()
	}
	if m.focus == focusInput {
		k.Add.SetEnabled(model.CanSubmit(st.Draft))
		return k.inputHelp()
	}
	return k.listHelp()
}

// visibleRange returns the window of rows to draw so the cursor stays on screen.
func visibleRange(total, cursor, height int) (int, int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}
	cursor = clamp(cursor, 0, total-1)
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := start + height
	if end > total {
		end = total
	}
	return start, end
}

// singleLine keeps an input view on one visual line no wider than w.
func singleLine(view string, w int) string {
	view = strings.ReplaceAll(view, "\n", " ")
	view = strings.ReplaceAll(view, "\r", " ")
	if w > 0 && xansi.StringWidth(view) > w {
		view = xansi.Cut(view, 0, w) + "\x1b[0m"
	}
	return view
}
