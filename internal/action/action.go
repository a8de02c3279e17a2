// Package action defines the closed set of messages that drive the
// application. Every state change, whether triggered by a keypress, a
// finished background operation, or the filesystem watcher, arrives as
// exactly one Action on the program's message loop.
package action

import (
	"github.com/sarang-kernel/dotatui/internal/git"
)

// Action is the sealed message union. Only types in this package satisfy
// it, so a switch over actions is exhaustive by construction.
type Action interface {
	isAction()
}

// OpKind identifies a mutating repository operation for completion
// reporting.
type OpKind int

const (
	OpStage OpKind = iota
	OpUnstage
	OpStageAll
	OpUnstageAll
	OpCommit
	OpAddRemote
	OpInit
)

func (k OpKind) String() string {
	switch k {
	case OpStage:
		return "stage"
	case OpUnstage:
		return "unstage"
	case OpStageAll:
		return "stage-all"
	case OpUnstageAll:
		return "unstage-all"
	case OpCommit:
		return "commit"
	case OpAddRemote:
		return "add-remote"
	case OpInit:
		return "init"
	default:
		return "unknown"
	}
}

// ── Mode transitions ────────────────────────────────────────────────────────

// Quit asks the program to exit.
type Quit struct{}

// ToggleHelp shows or hides the keybinding overlay.
type ToggleHelp struct{}

// EnterSearch switches to search mode with an empty query.
type EnterSearch struct{}

// EnterCommit switches to commit-message entry.
type EnterCommit struct{}

// EnterAddRemote switches to remote-URL entry.
type EnterAddRemote struct{}

// EnterLog switches to the commit log view.
type EnterLog struct{}

// EnterNormal cancels the active mode and returns to the file list,
// discarding any in-progress input or search filter.
type EnterNormal struct{}

// SearchAccept leaves search mode but keeps the current filter applied.
type SearchAccept struct{}

// ── Requests ────────────────────────────────────────────────────────────────

// RefreshStatus asks for a fresh repository status snapshot.
type RefreshStatus struct{}

// StageFile stages one path.
type StageFile struct{ Path string }

// UnstageFile unstages one path.
type UnstageFile struct{ Path string }

// StageAll stages every change.
type StageAll struct{}

// UnstageAll unstages every change.
type UnstageAll struct{}

// Commit submits the commit-message buffer. A blank buffer is a no-op.
type Commit struct{}

// Push pushes the current branch to origin.
type Push struct{}

// InitRepo initializes a repository at the configured path.
type InitRepo struct{}

// AddRemote submits the remote-URL buffer as origin.
type AddRemote struct{}

// CopySelection copies the selected path (or commit hash) to the clipboard.
type CopySelection struct{}

// ── Completions ─────────────────────────────────────────────────────────────

// StatusUpdated carries a fresh classified status snapshot, or the error
// that prevented one. Snapshots replace the previous list wholesale.
type StatusUpdated struct {
	Branch  string
	Entries []git.FileEntry
	Err     error
}

// DiffLoaded carries the hunks for one path and facet. A clean file yields
// zero hunks, not an error.
type DiffLoaded struct {
	Path   string
	Staged bool
	Hunks  []git.Hunk
	Err    error
}

// LogLoaded carries the most recent commits.
type LogLoaded struct {
	Commits []git.Commit
	Err     error
}

// PushCompleted reports the outcome of a push. Err wraps git.ErrNoRemote
// when no origin is configured.
type PushCompleted struct{ Err error }

// OpDone reports completion of a mutating operation.
type OpDone struct {
	Op  OpKind
	Err error
}

// ClipboardDone reports the outcome of a clipboard copy.
type ClipboardDone struct{ Err error }

// ConfigSaved reports the outcome of persisting the config file.
type ConfigSaved struct{ Err error }

// ── Navigation and input ────────────────────────────────────────────────────

// NavigateUp moves the focused cursor up one row.
type NavigateUp struct{}

// NavigateDown moves the focused cursor down one row.
type NavigateDown struct{}

// NavigateTop moves the focused cursor to the first row.
type NavigateTop struct{}

// NavigateBottom moves the focused cursor to the last row.
type NavigateBottom struct{}

// CycleFocus moves focus to the next pane.
type CycleFocus struct{}

// Input appends one rune to the active text buffer.
type Input struct{ Rune rune }

// InputDelete removes the rune before the cursor in the active buffer.
type InputDelete struct{}

func (Quit) isAction() {}
func (ToggleHelp) isAction() {}
func (EnterSearch) isAction() {}
func (EnterCommit) isAction() {}
func (EnterAddRemote) isAction() {}
func (EnterLog) isAction() {}
func (EnterNormal) isAction() {}
func (SearchAccept) isAction() {}
func (RefreshStatus) isAction() {}
func (StageFile) isAction() {}
func (UnstageFile) isAction() {}
func (StageAll) isAction() {}
func (UnstageAll) isAction() {}
func (Commit) isAction() {}
func (Push) isAction() {}
func (InitRepo) isAction() {}
func (AddRemote) isAction() {}
func (CopySelection) isAction() {}
func (StatusUpdated) isAction() {}
func (DiffLoaded) isAction() {}
func (LogLoaded) isAction() {}
func (PushCompleted) isAction() {}
func (OpDone) isAction() {}
func (ClipboardDone) isAction() {}
func (ConfigSaved) isAction() {}
func (NavigateUp) isAction() {}
func (NavigateDown) isAction() {}
func (NavigateTop) isAction() {}
func (NavigateBottom) isAction() {}
func (CycleFocus) isAction() {}
func (Input) isAction() {}
func (InputDelete) isAction() {}
