// Package app wires the event loop together: keypresses translate into
// actions, Reduce folds each action into the state, and the coordinator
// runs repository work off the loop, feeding results back as actions.
package app

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sarang-kernel/dotatui/internal/action"
	"github.com/sarang-kernel/dotatui/internal/config"
	"github.com/sarang-kernel/dotatui/internal/git"
	"github.com/sarang-kernel/dotatui/internal/ui"
)

// Model is the bubbletea model. All state transitions flow through Reduce;
// Update only translates inputs into actions and decides which background
// commands each action triggers.
type Model struct {
	cfg    *config.Config
	keys   KeyMap
	styles ui.Styles

	state State
	coord *Coordinator

	// pendingRemote holds the URL being added until its OpDone confirms,
	// so the config write records what was actually submitted.
	pendingRemote string

	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
	ready  bool
}

// New builds the model. When initPrompt is set the configured path holds no
// repository yet and the session starts by offering to create one.
func New(cfg *config.Config, initPrompt bool) Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	st := NewState()
	if initPrompt {
		st.Mode = ModeInitPrompt
		st.Loading = false
	}

	return Model{
		cfg:     cfg,
		keys:    DefaultKeyMap(),
		styles:  styles,
		state:   st,
		coord:   NewCoordinator(cfg.RepoPath),
		spinner: sp,
	}
}

// Init starts the first status load, unless there is no repository yet.
func (m Model) Init() tea.Cmd {
	if m.state.Mode == ModeInitPrompt {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.coord.RefreshStatus(), m.coord.LoadLog(m.cfg.MaxLogEntries))
}

// Update is the single consumer of the message loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutViewport()
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if act := m.keyToAction(msg); act != nil {
			return m, m.apply(act)
		}
		if m.state.Mode == ModeNormal && m.state.Focus == FocusDiff {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case action.Action:
		return m, m.apply(msg)
	}
	return m, nil
}

// keyToAction translates a keypress into an action for the current mode,
// or nil when the key is not bound.
func (m Model) keyToAction(msg tea.KeyMsg) action.Action {
	switch m.state.Mode {
	case ModeInitPrompt:
		switch msg.String() {
		case "y", "Y", "enter":
			return action.InitRepo{}
		case "n", "N", "q", "esc", "ctrl+c":
			return action.Quit{}
		}
		return nil

	case ModeHelp:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return action.Quit{}
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			return action.ToggleHelp{}
		}
		return nil

	case ModeSearch, ModeCommit, ModeAddRemote:
		return m.textModeAction(msg)

	case ModeLog:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return action.Quit{}
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Log):
			return action.EnterNormal{}
		case key.Matches(msg, m.keys.Up):
			return action.NavigateUp{}
		case key.Matches(msg, m.keys.Down):
			return action.NavigateDown{}
		case key.Matches(msg, m.keys.Top):
			return action.NavigateTop{}
		case key.Matches(msg, m.keys.Bottom):
			return action.NavigateBottom{}
		case key.Matches(msg, m.keys.Copy):
			return action.CopySelection{}
		}
		return nil
	}

	// Normal mode.
	switch {
	case key.Matches(msg, m.keys.Quit):
		return action.Quit{}
	case key.Matches(msg, m.keys.Help):
		return action.ToggleHelp{}
	case key.Matches(msg, m.keys.Refresh):
		return action.RefreshStatus{}
	case key.Matches(msg, m.keys.Up):
		if m.state.Focus == FocusDiff {
			return nil // viewport scroll
		}
		return action.NavigateUp{}
	case key.Matches(msg, m.keys.Down):
		if m.state.Focus == FocusDiff {
			return nil
		}
		return action.NavigateDown{}
	case key.Matches(msg, m.keys.Top):
		if m.state.Focus == FocusDiff {
			return nil
		}
		return action.NavigateTop{}
	case key.Matches(msg, m.keys.Bottom):
		if m.state.Focus == FocusDiff {
			return nil
		}
		return action.NavigateBottom{}
	case key.Matches(msg, m.keys.Focus):
		return action.CycleFocus{}
	case key.Matches(msg, m.keys.Stage):
		if e, ok := m.state.Selected(); ok {
			return action.StageFile{Path: e.Path}
		}
	case key.Matches(msg, m.keys.Unstage):
		if e, ok := m.state.Selected(); ok {
			return action.UnstageFile{Path: e.Path}
		}
	case key.Matches(msg, m.keys.StageAll):
		return action.StageAll{}
	case key.Matches(msg, m.keys.UnstageAll):
		return action.UnstageAll{}
	case key.Matches(msg, m.keys.Commit):
		return action.EnterCommit{}
	case key.Matches(msg, m.keys.Push):
		return action.Push{}
	case key.Matches(msg, m.keys.Log):
		return action.EnterLog{}
	case key.Matches(msg, m.keys.Search):
		return action.EnterSearch{}
	case key.Matches(msg, m.keys.Copy):
		return action.CopySelection{}
	}
	return nil
}

// textModeAction handles the three single-line input modes.
func (m Model) textModeAction(msg tea.KeyMsg) action.Action {
	switch msg.Type {
	case tea.KeyEsc:
		return action.EnterNormal{}
	case tea.KeyCtrlC:
		return action.Quit{}
	case tea.KeyBackspace:
		return action.InputDelete{}
	case tea.KeyEnter:
		switch m.state.Mode {
		case ModeSearch:
			return action.SearchAccept{}
		case ModeCommit:
			return action.Commit{}
		case ModeAddRemote:
			return action.AddRemote{}
		}
	case tea.KeySpace:
		return action.Input{Rune: ' '}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return action.Input{Rune: msg.Runes[0]}
		}
	case tea.KeyUp:
		if m.state.Mode == ModeSearch {
			return action.NavigateUp{}
		}
	case tea.KeyDown:
		if m.state.Mode == ModeSearch {
			return action.NavigateDown{}
		}
	}
	return nil
}

// apply reduces the action into the state, then decides which background
// commands it triggers. Input buffers are read from the pre-reduce state
// because Reduce clears them on submit.
func (m *Model) apply(act action.Action) tea.Cmd {
	prev := m.state
	m.state = Reduce(m.state, act)

	var cmds []tea.Cmd
	switch a := act.(type) {
	case action.Quit:
		return tea.Quit

	case action.RefreshStatus:
		cmds = append(cmds, m.coord.RefreshStatus(), m.spinner.Tick)

	case action.StageFile:
		cmds = append(cmds, m.coord.Stage(a.Path), m.spinner.Tick)
	case action.UnstageFile:
		cmds = append(cmds, m.coord.Unstage(a.Path), m.spinner.Tick)
	case action.StageAll:
		cmds = append(cmds, m.coord.StageAll(), m.spinner.Tick)
	case action.UnstageAll:
		cmds = append(cmds, m.coord.UnstageAll(), m.spinner.Tick)

	case action.Commit:
		if msg := strings.TrimSpace(prev.Input.String()); msg != "" {
			cmds = append(cmds, m.coord.Commit(msg), m.spinner.Tick)
		}

	case action.AddRemote:
		if url := strings.TrimSpace(prev.Input.String()); url != "" {
			m.pendingRemote = url
			cmds = append(cmds, m.coord.AddRemote(url), m.spinner.Tick)
		}

	case action.Push:
		cmds = append(cmds, m.coord.Push(), m.spinner.Tick)

	case action.InitRepo:
		cmds = append(cmds, m.coord.InitRepo(), m.spinner.Tick)

	case action.OpDone:
		if a.Err != nil {
			break
		}
		switch a.Op {
		case action.OpAddRemote:
			m.cfg.RemoteURL = m.pendingRemote
			if err := m.cfg.Save(); err != nil {
				cmds = append(cmds, func() tea.Msg { return action.ConfigSaved{Err: err} })
			}
		case action.OpInit:
			cmds = append(cmds, func() tea.Msg { return action.EnterAddRemote{} })
		}
		cmds = append(cmds, m.coord.RefreshStatus())

	case action.EnterLog:
		cmds = append(cmds, m.coord.LoadLog(m.cfg.MaxLogEntries))

	case action.DiffLoaded:
		if a.Err == nil && m.state.Diff.Path == a.Path {
			m.viewport.SetContent(renderDiff(m.styles, m.state.Diff, m.diffWidth()))
			m.viewport.GotoTop()
		}

	case action.CopySelection:
		if text, ok := m.copyText(); ok {
			cmds = append(cmds, copyCmd(text))
		}

	case action.StatusUpdated, action.NavigateUp, action.NavigateDown,
		action.NavigateTop, action.NavigateBottom,
		action.Input, action.InputDelete:
		if m.state.Diff.Path == "" && prev.Diff.Path != "" {
			m.viewport.SetContent(renderDiff(m.styles, m.state.Diff, m.diffWidth()))
		}
		if cmd := m.diffForSelection(prev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// diffForSelection loads the diff for the newly selected entry when the
// selection (or its staging facet) changed.
func (m Model) diffForSelection(prev State) tea.Cmd {
	cur, ok := m.state.Selected()
	if !ok {
		return nil
	}
	staged := cur.Staging == git.Staged
	if old, had := prev.Selected(); had && old.Path == cur.Path &&
		(old.Staging == git.Staged) == staged && m.state.Diff.Path == cur.Path {
		return nil
	}
	return m.coord.LoadDiff(cur.Path, staged)
}

// copyText picks what the copy key yanks in the current mode.
func (m Model) copyText() (string, bool) {
	if m.state.Mode == ModeLog {
		c, ok := m.state.SelectedCommit()
		return c.Hash, ok
	}
	e, ok := m.state.Selected()
	return e.Path, ok
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return action.ClipboardDone{Err: clipboard.WriteAll(text)}
	}
}
