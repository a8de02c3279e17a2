package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarang-kernel/dotatui/internal/action"
	"github.com/sarang-kernel/dotatui/internal/git"
	"github.com/sarang-kernel/dotatui/internal/selection"
)

// Status-bar feedback strings.
const (
	msgClean        = "Repository is clean. No changes found."
	msgFoundFmt     = "%d uncommitted changes found."
	msgRefreshedFmt = "Status updated. %d changes found."
	msgPushing      = "Pushing to remote..."
	msgPushOK       = "Push successful."
	msgPushFailFmt  = "Push failed: %v"
	msgRemotePrompt = "Enter the full SSH or HTTPS URL for the 'origin' remote."
	msgRemoteAdded  = "Remote 'origin' added."
	msgCommitted    = "Changes committed."
	msgCopied       = "Copied to clipboard."
	msgInitializing = "Initializing repository..."
	msgInitialized  = "Repository initialized."
	msgCfgSaveFmt   = "Failed to save config: %v"
)

// Reduce computes the next state for one action. It never performs I/O and
// never blocks; every transition here must hold for any interleaving of
// completion actions, since background results arrive in arbitrary order
// and the latest snapshot always wins.
func Reduce(s State, a action.Action) State {
	switch a := a.(type) {
	case action.Quit:
		s.Quitting = true

	case action.ToggleHelp:
		if s.Mode == ModeHelp {
			s.Mode = ModeNormal
		} else {
			s.Mode = ModeHelp
		}

	case action.EnterSearch:
		s.Mode = ModeSearch
		s.Input.Reset()
		s = refilter(s, "")

	case action.EnterCommit:
		s.Mode = ModeCommit
		s.Input.Reset()

	case action.EnterAddRemote:
		s.Mode = ModeAddRemote
		s.Input.Reset()
		s.Message = msgRemotePrompt
		s.MessageIsErr = false

	case action.EnterLog:
		s.Mode = ModeLog
		s.LogCursor = s.LogCursor.Revalidate(len(s.Commits))

	case action.EnterNormal:
		s.Mode = ModeNormal
		s.Input.Reset()
		if s.Query != "" {
			s = refilter(s, "")
		}

	case action.SearchAccept:
		s.Mode = ModeNormal
		s.Input.Reset()

	case action.RefreshStatus:
		s.Loading = true

	case action.StatusUpdated:
		s.Loading = false
		if a.Err != nil {
			s.Message = a.Err.Error()
			s.MessageIsErr = true
			break
		}
		prevCount := len(s.Entries)
		s.Branch = a.Branch
		s.Entries = a.Entries
		s = refilter(s, s.Query)
		s.MessageIsErr = false
		if s.Cursor.IsNone() {
			s.Diff = Diff{}
		}
		switch {
		case len(a.Entries) == 0:
			s.Message = msgClean
		case !s.Loaded || len(a.Entries) == prevCount:
			s.Message = fmt.Sprintf(msgFoundFmt, len(a.Entries))
		default:
			s.Message = fmt.Sprintf(msgRefreshedFmt, len(a.Entries))
		}
		s.Loaded = true

	case action.StageFile, action.UnstageFile, action.StageAll, action.UnstageAll:
		s.Loading = true

	case action.Commit:
		if strings.TrimSpace(s.Input.String()) == "" {
			break
		}
		s.Mode = ModeNormal
		s.Input.Reset()
		s.Loading = true

	case action.Push:
		s.Loading = true
		s.Message = msgPushing
		s.MessageIsErr = false

	case action.PushCompleted:
		s.Loading = false
		switch {
		case a.Err == nil:
			s.Message = msgPushOK
			s.MessageIsErr = false
		case errors.Is(a.Err, git.ErrNoRemote):
			s.Mode = ModeAddRemote
			s.Input.Reset()
			s.Message = msgRemotePrompt
			s.MessageIsErr = false
		default:
			s.Message = fmt.Sprintf(msgPushFailFmt, a.Err)
			s.MessageIsErr = true
		}

	case action.InitRepo:
		s.Loading = true
		s.Message = msgInitializing
		s.MessageIsErr = false

	case action.AddRemote:
		if strings.TrimSpace(s.Input.String()) == "" {
			break
		}
		s.Mode = ModeNormal
		s.Loading = true

	case action.OpDone:
		if a.Err != nil {
			s.Loading = false
			s.Message = a.Err.Error()
			s.MessageIsErr = true
			break
		}
		// A status refresh is chained after every successful operation,
		// so Loading stays set until the snapshot lands.
		switch a.Op {
		case action.OpCommit:
			s.Message = msgCommitted
			s.MessageIsErr = false
		case action.OpAddRemote:
			s.Input.Reset()
			s.Message = msgRemoteAdded
			s.MessageIsErr = false
		case action.OpInit:
			s.Mode = ModeNormal
			s.Message = msgInitialized
			s.MessageIsErr = false
		}

	case action.LogLoaded:
		if a.Err != nil {
			s.Message = a.Err.Error()
			s.MessageIsErr = true
			break
		}
		s.Commits = a.Commits
		s.LogCursor = s.LogCursor.Revalidate(len(a.Commits))

	case action.DiffLoaded:
		if a.Err != nil {
			s.Message = a.Err.Error()
			s.MessageIsErr = true
			break
		}
		// A result for a path that is no longer selected is stale.
		if e, ok := s.Selected(); !ok || e.Path != a.Path {
			break
		}
		s.Diff = Diff{Path: a.Path, Staged: a.Staged, Hunks: a.Hunks}

	case action.NavigateUp:
		s = navigate(s, -1)
	case action.NavigateDown:
		s = navigate(s, 1)
	case action.NavigateTop:
		if s.Mode == ModeLog {
			s.LogCursor = selection.Top(len(s.Commits))
		} else {
			s.Cursor = selection.Skip(selection.Top(len(s.Rows)), len(s.Rows), 1, selectableIn(s.Rows))
		}
	case action.NavigateBottom:
		if s.Mode == ModeLog {
			s.LogCursor = selection.Bottom(len(s.Commits))
		} else {
			s.Cursor = selection.Skip(selection.Bottom(len(s.Rows)), len(s.Rows), -1, selectableIn(s.Rows))
		}

	case action.CycleFocus:
		s.Focus = s.Focus.Cycle(focusCount)

	case action.Input:
		s.Input.Insert(a.Rune)
		if s.Mode == ModeSearch {
			s = refilter(s, s.Input.String())
		}

	case action.InputDelete:
		s.Input.Backspace()
		if s.Mode == ModeSearch {
			s = refilter(s, s.Input.String())
		}

	case action.ConfigSaved:
		if a.Err != nil {
			s.Message = fmt.Sprintf(msgCfgSaveFmt, a.Err)
			s.MessageIsErr = true
		}

	case action.ClipboardDone:
		if a.Err != nil {
			s.Message = a.Err.Error()
			s.MessageIsErr = true
		} else {
			s.Message = msgCopied
			s.MessageIsErr = false
		}

	case action.CopySelection:
		// Handled outside the reducer; feedback arrives as ClipboardDone.
	}

	return s
}

func navigate(s State, dir int) State {
	if s.Mode == ModeLog {
		if dir > 0 {
			s.LogCursor = s.LogCursor.Next(len(s.Commits))
		} else {
			s.LogCursor = s.LogCursor.Prev(len(s.Commits))
		}
		return s
	}
	if dir > 0 {
		s.Cursor = selection.NextSelectable(s.Cursor, len(s.Rows), selectableIn(s.Rows))
	} else {
		s.Cursor = selection.PrevSelectable(s.Cursor, len(s.Rows), selectableIn(s.Rows))
	}
	return s
}

// refilter re-applies the query to the current snapshot, rebuilds the row
// list, and re-validates the cursor against it.
func refilter(s State, query string) State {
	s.Query = query
	s.Filtered = Filter(s.Entries, query)
	s.Rows = buildRows(s.Filtered)
	s.Cursor = selection.RevalidateSelectable(s.Cursor, len(s.Rows), selectableIn(s.Rows))
	return s
}
