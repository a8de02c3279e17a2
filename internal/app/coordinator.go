package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sarang-kernel/dotatui/internal/action"
	"github.com/sarang-kernel/dotatui/internal/git"
)

// Backend is the repository surface the coordinator drives. *git.Repo is
// the production implementation; tests substitute fakes.
type Backend interface {
	Head() (string, error)
	Status() ([]git.RawChange, error)
	Stage(path string) error
	StageAll() error
	Unstage(path string) error
	UnstageAll() error
	Commit(message string) error
	Hunks(path string, staged bool) ([]git.Hunk, error)
	Log(limit int) ([]git.Commit, error)
	Push() error
	AddRemote(url string) error
}

// Coordinator builds the commands that run repository operations off the
// event loop. Every command opens a fresh backend handle, runs exactly one
// operation, and delivers exactly one completion action; no handle is ever
// shared between concurrent commands.
type Coordinator struct {
	path string
	open func(path string) (Backend, error)
	init func(path string) error
}

// NewCoordinator returns a coordinator for the repository at path.
func NewCoordinator(path string) *Coordinator {
	return &Coordinator{
		path: path,
		open: func(p string) (Backend, error) { return git.Open(p) },
		init: func(p string) error { _, err := git.Init(p); return err },
	}
}

// InitRepo initializes a repository at the coordinator's path.
func (c *Coordinator) InitRepo() tea.Cmd {
	return func() tea.Msg {
		return action.OpDone{Op: action.OpInit, Err: c.init(c.path)}
	}
}

// RefreshStatus loads a fresh classified status snapshot.
func (c *Coordinator) RefreshStatus() tea.Cmd {
	return func() tea.Msg {
		b, err := c.open(c.path)
		if err != nil {
			return action.StatusUpdated{Err: err}
		}
		branch, err := b.Head()
		if err != nil {
			return action.StatusUpdated{Err: err}
		}
		raw, err := b.Status()
		if err != nil {
			return action.StatusUpdated{Err: err}
		}
		return action.StatusUpdated{Branch: branch, Entries: git.Classify(raw)}
	}
}

// LoadDiff loads the hunks for one path and facet.
func (c *Coordinator) LoadDiff(path string, staged bool) tea.Cmd {
	return func() tea.Msg {
		b, err := c.open(c.path)
		if err != nil {
			return action.DiffLoaded{Path: path, Staged: staged, Err: err}
		}
		hunks, err := b.Hunks(path, staged)
		return action.DiffLoaded{Path: path, Staged: staged, Hunks: hunks, Err: err}
	}
}

// LoadLog loads the most recent commits.
func (c *Coordinator) LoadLog(limit int) tea.Cmd {
	return func() tea.Msg {
		b, err := c.open(c.path)
		if err != nil {
			return action.LogLoaded{Err: err}
		}
		commits, err := b.Log(limit)
		return action.LogLoaded{Commits: commits, Err: err}
	}
}

// Stage stages one path.
func (c *Coordinator) Stage(path string) tea.Cmd {
	return c.op(action.OpStage, func(b Backend) error { return b.Stage(path) })
}

// Unstage unstages one path.
func (c *Coordinator) Unstage(path string) tea.Cmd {
	return c.op(action.OpUnstage, func(b Backend) error { return b.Unstage(path) })
}

// StageAll stages every change.
func (c *Coordinator) StageAll() tea.Cmd {
	return c.op(action.OpStageAll, func(b Backend) error { return b.StageAll() })
}

// UnstageAll unstages every change.
func (c *Coordinator) UnstageAll() tea.Cmd {
	return c.op(action.OpUnstageAll, func(b Backend) error { return b.UnstageAll() })
}

// Commit records a commit with the given message.
func (c *Coordinator) Commit(message string) tea.Cmd {
	return c.op(action.OpCommit, func(b Backend) error { return b.Commit(message) })
}

// AddRemote adds origin with the given URL.
func (c *Coordinator) AddRemote(url string) tea.Cmd {
	return c.op(action.OpAddRemote, func(b Backend) error { return b.AddRemote(url) })
}

// Push pushes the current branch to origin.
func (c *Coordinator) Push() tea.Cmd {
	return func() tea.Msg {
		b, err := c.open(c.path)
		if err != nil {
			return action.PushCompleted{Err: err}
		}
		return action.PushCompleted{Err: b.Push()}
	}
}

func (c *Coordinator) op(kind action.OpKind, run func(Backend) error) tea.Cmd {
	return func() tea.Msg {
		b, err := c.open(c.path)
		if err != nil {
			return action.OpDone{Op: kind, Err: err}
		}
		return action.OpDone{Op: kind, Err: run(b)}
	}
}
