package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sarang-kernel/dotatui/internal/git"
	"github.com/sarang-kernel/dotatui/internal/ui"
)

const minListWidth = 30

// View renders the whole screen for the current state.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.state.Quitting {
		return ""
	}

	switch m.state.Mode {
	case ModeInitPrompt:
		return m.initPromptView()
	case ModeHelp:
		return m.helpView()
	case ModeLog:
		return m.logView()
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.filesPane(), m.diffPane())
	return lipgloss.JoinVertical(lipgloss.Left, main, m.statusBar(), m.bottomLine())
}

// mainHeight is the vertical space left for the panes after the status and
// input/help lines.
func (m Model) mainHeight() int {
	h := m.height - 2
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) listWidth() int {
	w := m.width * 2 / 5
	if w < minListWidth {
		w = minListWidth
	}
	if w > m.width-10 {
		w = m.width - 10
	}
	return w
}

func (m Model) diffWidth() int {
	w := m.width - m.listWidth()
	if w < 10 {
		w = 10
	}
	return w
}

func (m *Model) layoutViewport() {
	m.viewport.Width = m.diffWidth() - 4
	m.viewport.Height = m.mainHeight() - 3
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.viewport.SetContent(renderDiff(m.styles, m.state.Diff, m.diffWidth()))
}

// ── File pane ───────────────────────────────────────────────────────────────

func (m Model) filesPane() string {
	s := m.styles
	width := m.listWidth()
	innerWidth := width - 4

	panel := s.Panel
	if m.state.Focus == FocusFiles {
		panel = s.PanelFocused
	}

	var b strings.Builder
	title := "Changes"
	if m.state.Query != "" {
		title = fmt.Sprintf("Changes (filter: %s)", m.state.Query)
	}
	b.WriteString(s.PanelTitle.Render(ui.Truncate(title, innerWidth)))
	b.WriteString("\n")

	if len(m.state.Rows) == 0 {
		b.WriteString(s.ListDimmed.Render("nothing to show"))
	}
	for i, row := range m.state.Rows {
		b.WriteString("\n")
		if !row.Selectable() {
			b.WriteString(s.GroupHeader.Render(row.Header))
			continue
		}
		e := m.state.Filtered[row.Entry]
		line := ui.Truncate(fmt.Sprintf("%-9s %s", e.Kind.Label(), displayPath(e)), innerWidth)
		style := m.entryStyle(e)
		if int(m.state.Cursor) == i {
			b.WriteString(s.ListSelected.Render("▸ " + style.Render(line)))
		} else {
			b.WriteString(s.ListItem.Render(style.Render(line)))
		}
	}

	return panel.Width(width - 2).Height(m.mainHeight() - 2).Render(b.String())
}

func displayPath(e git.FileEntry) string {
	if e.OrigPath != "" {
		return e.OrigPath + " → " + e.Path
	}
	return e.Path
}

func (m Model) entryStyle(e git.FileEntry) lipgloss.Style {
	s := m.styles
	switch e.Kind {
	case git.KindConflicted:
		return s.FileConflict
	case git.KindNew:
		return s.FileAdded
	case git.KindDeleted:
		return s.FileDeleted
	case git.KindRenamed:
		return s.FileRenamed
	case git.KindTypeChange:
		return s.FileModified
	default:
		return s.FileModified
	}
}

// ── Diff pane ───────────────────────────────────────────────────────────────

func (m Model) diffPane() string {
	s := m.styles
	panel := s.Panel
	if m.state.Focus == FocusDiff {
		panel = s.PanelFocused
	}

	title := "Diff"
	if m.state.Diff.Path != "" {
		facet := "worktree"
		if m.state.Diff.Staged {
			facet = "staged"
		}
		title = fmt.Sprintf("Diff: %s (%s)", m.state.Diff.Path, facet)
	}

	body := s.PanelTitle.Render(ui.Truncate(title, m.diffWidth()-4)) + "\n" + m.viewport.View()
	return panel.Width(m.diffWidth() - 2).Height(m.mainHeight() - 2).Render(body)
}

// renderDiff colours each hunk line by origin.
func renderDiff(s ui.Styles, d Diff, width int) string {
	if d.Path == "" {
		return s.Muted.Render("select a file to see its changes")
	}
	if len(d.Hunks) == 0 {
		return s.Muted.Render("no changes")
	}

	var b strings.Builder
	for hi, h := range d.Hunks {
		if hi > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.DiffHunkHeader.Render(ui.Truncate(h.Header, width-4)))
		for _, line := range h.Lines {
			b.WriteString("\n")
			b.WriteString(s.DiffLineNum.Render(lineNum(line)))
			switch line.Origin {
			case git.LineAdded:
				b.WriteString(s.DiffAdded.Render(ui.Truncate("+"+line.Content, width-10)))
			case git.LineRemoved:
				b.WriteString(s.DiffRemoved.Render(ui.Truncate("-"+line.Content, width-10)))
			default:
				b.WriteString(s.DiffContext.Render(ui.Truncate(" "+line.Content, width-10)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func lineNum(l git.Line) string {
	switch l.Origin {
	case git.LineAdded:
		return fmt.Sprintf("%d", l.NewNum)
	case git.LineRemoved:
		return fmt.Sprintf("%d", l.OldNum)
	default:
		return fmt.Sprintf("%d", l.NewNum)
	}
}

// ── Bars ────────────────────────────────────────────────────────────────────

func (m Model) statusBar() string {
	s := m.styles

	var left string
	if m.state.Branch != "" {
		left = s.BranchName.Render(" " + m.state.Branch)
	}
	if m.state.Loading {
		left = ui.JoinNonEmpty("  ", left, m.spinner.View())
	}

	msg := m.state.Message
	msgStyle := s.Muted
	if m.state.MessageIsErr {
		msgStyle = s.ErrText
	}
	right := msgStyle.Render(ui.Truncate(msg, m.width/2))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return s.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// bottomLine is the input prompt in text modes, the key hints otherwise.
func (m Model) bottomLine() string {
	s := m.styles
	switch m.state.Mode {
	case ModeSearch:
		return s.HelpBar.Render(s.Prompt.Render("/") + m.state.Input.String() + "█")
	case ModeCommit:
		return s.HelpBar.Render(s.Prompt.Render("commit: ") + m.state.Input.String() + "█")
	case ModeAddRemote:
		return s.HelpBar.Render(s.Prompt.Render("remote url: ") + m.state.Input.String() + "█")
	}

	hints := []string{
		ui.RenderKeyValue(s, "s", "stage"),
		ui.RenderKeyValue(s, "u", "unstage"),
		ui.RenderKeyValue(s, "c", "commit"),
		ui.RenderKeyValue(s, "P", "push"),
		ui.RenderKeyValue(s, "l", "log"),
		ui.RenderKeyValue(s, "/", "search"),
		ui.RenderKeyValue(s, "?", "help"),
		ui.RenderKeyValue(s, "q", "quit"),
	}
	return s.HelpBar.Render(ui.Truncate(strings.Join(hints, "  "), m.width-2))
}

// ── Full-screen modes ───────────────────────────────────────────────────────

func (m Model) logView() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(s.PanelTitle.Render(fmt.Sprintf("Log — %s", m.state.Branch)))
	b.WriteString("\n")

	if len(m.state.Commits) == 0 {
		b.WriteString("\n")
		b.WriteString(s.ListDimmed.Render("no commits yet"))
	}

	visible := m.mainHeight() - 2
	start := 0
	if int(m.state.LogCursor) >= visible {
		start = int(m.state.LogCursor) - visible + 1
	}
	for i := start; i < len(m.state.Commits) && i < start+visible; i++ {
		c := m.state.Commits[i]
		b.WriteString("\n")
		line := ui.JoinNonEmpty("  ",
			s.CommitHash.Render(c.ShortHash),
			s.Date.Render(c.RelDate),
			s.Author.Render(c.Author),
			s.CommitMsg.Render(ui.Truncate(c.Subject, m.width/2)),
		)
		if int(m.state.LogCursor) == i {
			b.WriteString(s.ListSelected.Render("▸ " + line))
		} else {
			b.WriteString(s.ListItem.Render(line))
		}
	}

	body := lipgloss.NewStyle().Height(m.mainHeight()).Render(b.String())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar(), m.bottomLine())
}

func (m Model) helpView() string {
	s := m.styles
	rows := [][2]string{
		{"j/↓, k/↑", "move selection"},
		{"g, G", "top, bottom"},
		{"tab", "switch pane"},
		{"s, a", "stage file, stage all"},
		{"u, U", "unstage file, unstage all"},
		{"c", "commit staged changes"},
		{"P", "push to origin"},
		{"l", "commit log"},
		{"/", "search files"},
		{"y", "copy path or hash"},
		{"r", "refresh status"},
		{"?", "close help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(s.DialogTitle.Render("Keybindings"))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(s.KeyBind.Width(12).Render(r[0]))
		b.WriteString(s.KeyDesc.Render(r[1]))
	}
	return ui.PlaceCentre(m.width, m.height, s.Dialog.Render(b.String()))
}

func (m Model) initPromptView() string {
	s := m.styles
	body := s.DialogTitle.Render("No repository found") + "\n\n" +
		s.Body.Render(fmt.Sprintf("%s is not a Git repository.", m.cfg.RepoPath)) + "\n" +
		s.Body.Render("Initialize one here?") + "\n\n" +
		ui.RenderKeyValue(s, "y", "initialize") + "   " +
		ui.RenderKeyValue(s, "n", "quit")
	return ui.PlaceCentre(m.width, m.height, s.Dialog.Render(body))
}
