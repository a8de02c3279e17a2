package app

import (
	"github.com/sarang-kernel/dotatui/internal/git"
	"github.com/sarang-kernel/dotatui/internal/selection"
)

// Mode is the current interaction mode. Exactly one mode is active; it
// decides how keypresses translate into actions and which overlay is drawn.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeCommit
	ModeAddRemote
	ModeHelp
	ModeLog
	ModeInitPrompt
)

// Focus targets for tab cycling in normal mode.
const (
	FocusFiles selection.Focus = iota
	FocusDiff

	focusCount = 2
)

// InputBuffer is the single-line text buffer backing search, commit, and
// remote-URL entry.
type InputBuffer struct {
	runes []rune
}

// Insert appends one rune.
func (b *InputBuffer) Insert(r rune) {
	b.runes = append(b.runes, r)
}

// Backspace removes the last rune, if any.
func (b *InputBuffer) Backspace() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

// Reset clears the buffer.
func (b *InputBuffer) Reset() {
	b.runes = nil
}

// Len returns the rune count.
func (b InputBuffer) Len() int { return len(b.runes) }

func (b InputBuffer) String() string { return string(b.runes) }

// Row is one visible line of the file pane: either a group header or a
// reference into the filtered entry list. Headers are not selectable.
type Row struct {
	Header string
	Entry  int
}

// Selectable reports whether the cursor may rest on this row.
func (r Row) Selectable() bool { return r.Header == "" }

// Diff is the hunk view for one path and facet.
type Diff struct {
	Path   string
	Staged bool
	Hunks  []git.Hunk
}

// State is the whole application state. Reduce is the only place it
// changes; everything else reads it.
type State struct {
	Mode Mode

	Branch  string
	Loading bool
	Loaded  bool

	// Message is the one-line feedback shown in the status bar.
	Message string
	// MessageIsErr marks the message for error styling.
	MessageIsErr bool

	// Entries is the last full status snapshot; Filtered applies the
	// search query, and Rows interleaves group headers for display.
	Entries  []git.FileEntry
	Query    string
	Filtered []git.FileEntry
	Rows     []Row

	Cursor selection.Cursor
	Focus  selection.Focus

	Commits   []git.Commit
	LogCursor selection.Cursor

	Diff Diff

	Input InputBuffer

	Quitting bool
}

// NewState returns the initial state: normal mode, nothing selected,
// status load pending.
func NewState() State {
	return State{
		Cursor:    selection.None,
		LogCursor: selection.None,
		Loading:   true,
	}
}

// Selected returns the file entry under the cursor, if any.
func (s State) Selected() (git.FileEntry, bool) {
	if s.Cursor.IsNone() || int(s.Cursor) >= len(s.Rows) {
		return git.FileEntry{}, false
	}
	row := s.Rows[int(s.Cursor)]
	if !row.Selectable() {
		return git.FileEntry{}, false
	}
	return s.Filtered[row.Entry], true
}

// SelectedCommit returns the commit under the log cursor, if any.
func (s State) SelectedCommit() (git.Commit, bool) {
	if s.LogCursor.IsNone() || int(s.LogCursor) >= len(s.Commits) {
		return git.Commit{}, false
	}
	return s.Commits[int(s.LogCursor)], true
}

// buildRows groups entries by staging state, inserting a header row before
// each non-empty group. Entries arrive sorted by path, so order within a
// group is stable.
func buildRows(entries []git.FileEntry) []Row {
	groups := []git.StagingState{git.Staged, git.PartiallyStaged, git.Unstaged}

	var rows []Row
	for _, g := range groups {
		header := false
		for i, e := range entries {
			if e.Staging != g {
				continue
			}
			if !header {
				rows = append(rows, Row{Header: g.Label()})
				header = true
			}
			rows = append(rows, Row{Entry: i})
		}
	}
	return rows
}

// selectableIn adapts a row slice to the selection package's predicate.
func selectableIn(rows []Row) func(int) bool {
	return func(i int) bool { return rows[i].Selectable() }
}
