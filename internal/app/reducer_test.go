package app

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/sarang-kernel/dotatui/internal/action"
	"github.com/sarang-kernel/dotatui/internal/git"
)

func entry(path string, kind git.ChangeKind, staging git.StagingState) git.FileEntry {
	return git.FileEntry{Path: path, Kind: kind, Staging: staging}
}

func snapshot(entries ...git.FileEntry) action.StatusUpdated {
	return action.StatusUpdated{Branch: "main", Entries: entries}
}

func TestStatusUpdatedCleanRepo(t *testing.T) {
	s := Reduce(NewState(), snapshot())

	if s.Loading {
		t.Error("loading should clear once the snapshot lands")
	}
	if s.Message != msgClean {
		t.Errorf("message = %q, want %q", s.Message, msgClean)
	}
	if !s.Cursor.IsNone() {
		t.Errorf("cursor = %d, want None", s.Cursor)
	}
	if len(s.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(s.Rows))
	}
}

func TestStatusUpdatedSelectsFirstFile(t *testing.T) {
	s := Reduce(NewState(), snapshot(
		entry(".bashrc", git.KindModified, git.Staged),
		entry(".vimrc", git.KindModified, git.Unstaged),
	))

	if want := fmt.Sprintf(msgFoundFmt, 2); s.Message != want {
		t.Errorf("message = %q, want %q", s.Message, want)
	}
	if s.Branch != "main" {
		t.Errorf("branch = %q, want main", s.Branch)
	}
	// Row 0 is the "Staged" header, so the cursor lands on row 1.
	if s.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", s.Cursor)
	}
	e, ok := s.Selected()
	if !ok || e.Path != ".bashrc" {
		t.Errorf("selected = %+v ok=%v, want .bashrc", e, ok)
	}
}

func TestStatusUpdatedGroupsByStaging(t *testing.T) {
	s := Reduce(NewState(), snapshot(
		entry("a", git.KindModified, git.Unstaged),
		entry("b", git.KindNew, git.Staged),
		entry("c", git.KindModified, git.PartiallyStaged),
	))

	var got []string
	for _, r := range s.Rows {
		if r.Selectable() {
			got = append(got, s.Filtered[r.Entry].Path)
		} else {
			got = append(got, "["+r.Header+"]")
		}
	}
	want := []string{"[Staged]", "b", "[Partially staged]", "c", "[Unstaged]", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestStatusUpdatedLastWins(t *testing.T) {
	s := Reduce(NewState(), snapshot(
		entry("a", git.KindModified, git.Unstaged),
		entry("b", git.KindModified, git.Unstaged),
	))
	s = Reduce(s, snapshot(entry("c", git.KindNew, git.Unstaged)))

	if len(s.Entries) != 1 || s.Entries[0].Path != "c" {
		t.Fatalf("entries = %+v, want just c", s.Entries)
	}
	if want := fmt.Sprintf(msgRefreshedFmt, 1); s.Message != want {
		t.Errorf("message = %q, want %q", s.Message, want)
	}
}

func TestStatusUpdatedRevalidatesCursor(t *testing.T) {
	s := Reduce(NewState(), snapshot(
		entry("a", git.KindModified, git.Unstaged),
		entry("b", git.KindModified, git.Unstaged),
		entry("c", git.KindModified, git.Unstaged),
	))
	s = Reduce(s, action.NavigateDown{})
	s = Reduce(s, action.NavigateDown{})

	s = Reduce(s, snapshot(entry("a", git.KindModified, git.Unstaged)))
	e, ok := s.Selected()
	if !ok || e.Path != "a" {
		t.Errorf("selected after shrink = %+v ok=%v, want a", e, ok)
	}

	s = Reduce(s, snapshot())
	if !s.Cursor.IsNone() {
		t.Errorf("cursor after empty snapshot = %d, want None", s.Cursor)
	}
}

func TestStatusUpdatedError(t *testing.T) {
	prev := Reduce(NewState(), snapshot(entry("a", git.KindModified, git.Unstaged)))
	s := Reduce(prev, action.StatusUpdated{Err: errors.New("boom")})

	if !s.MessageIsErr || s.Message != "boom" {
		t.Errorf("message = %q isErr=%v, want boom error", s.Message, s.MessageIsErr)
	}
	if !reflect.DeepEqual(s.Entries, prev.Entries) {
		t.Error("a failed refresh must not touch the last good snapshot")
	}
}

func TestNavigationSkipsHeaders(t *testing.T) {
	s := Reduce(NewState(), snapshot(
		entry("a", git.KindModified, git.Staged),
		entry("b", git.KindModified, git.Unstaged),
	))
	// Rows: [Staged] a [Unstaged] b, cursor starts on a (row 1).

	s = Reduce(s, action.NavigateDown{})
	if e, _ := s.Selected(); e.Path != "b" {
		t.Fatalf("after down: selected %q, want b", e.Path)
	}
	s = Reduce(s, action.NavigateDown{})
	if e, _ := s.Selected(); e.Path != "a" {
		t.Fatalf("down wraps past headers: selected %q, want a", e.Path)
	}
	s = Reduce(s, action.NavigateUp{})
	if e, _ := s.Selected(); e.Path != "b" {
		t.Fatalf("up wraps: selected %q, want b", e.Path)
	}

	s = Reduce(s, action.NavigateTop{})
	if e, _ := s.Selected(); e.Path != "a" {
		t.Fatalf("top: selected %q, want a", e.Path)
	}
	s = Reduce(s, action.NavigateBottom{})
	if e, _ := s.Selected(); e.Path != "b" {
		t.Fatalf("bottom: selected %q, want b", e.Path)
	}
}

func TestPushNoRemoteOpensAddRemote(t *testing.T) {
	prev := Reduce(NewState(), snapshot(entry("a", git.KindModified, git.Staged)))
	prev = Reduce(prev, action.Push{})
	if prev.Message != msgPushing {
		t.Errorf("message = %q, want %q", prev.Message, msgPushing)
	}

	s := Reduce(prev, action.PushCompleted{Err: fmt.Errorf("push: %w", git.ErrNoRemote)})
	if s.Mode != ModeAddRemote {
		t.Fatalf("mode = %d, want ModeAddRemote", s.Mode)
	}
	if s.Message != msgRemotePrompt {
		t.Errorf("message = %q, want %q", s.Message, msgRemotePrompt)
	}
	if !reflect.DeepEqual(s.Entries, prev.Entries) || s.Cursor != prev.Cursor {
		t.Error("missing remote must not disturb the file list or cursor")
	}
}

func TestPushOutcomes(t *testing.T) {
	s := Reduce(NewState(), action.PushCompleted{})
	if s.Message != msgPushOK || s.MessageIsErr {
		t.Errorf("success message = %q isErr=%v", s.Message, s.MessageIsErr)
	}

	s = Reduce(NewState(), action.PushCompleted{Err: errors.New("rejected")})
	if !s.MessageIsErr || s.Message != "Push failed: rejected" {
		t.Errorf("failure message = %q isErr=%v", s.Message, s.MessageIsErr)
	}
}

func TestCommitEmptyBufferIsNoop(t *testing.T) {
	prev := Reduce(NewState(), action.EnterCommit{})
	s := Reduce(prev, action.Commit{})

	if !reflect.DeepEqual(s, prev) {
		t.Error("committing an empty buffer must change nothing")
	}
}

func TestCommitWhitespaceBufferIsNoop(t *testing.T) {
	prev := Reduce(NewState(), action.EnterCommit{})
	for _, r := range "   " {
		prev = Reduce(prev, action.Input{Rune: r})
	}
	s := Reduce(prev, action.Commit{})

	if s.Loading {
		t.Error("a blank message must not dispatch a commit")
	}
	if !reflect.DeepEqual(s, prev) {
		t.Error("committing a blank buffer must change nothing")
	}
}

func TestAddRemoteWhitespaceBufferIsNoop(t *testing.T) {
	prev := Reduce(NewState(), action.EnterAddRemote{})
	prev = Reduce(prev, action.Input{Rune: ' '})
	s := Reduce(prev, action.AddRemote{})

	if s.Loading || s.Mode != ModeAddRemote {
		t.Errorf("mode = %d loading = %v, want prompt unchanged", s.Mode, s.Loading)
	}
}

func TestCommitSubmitsAndResets(t *testing.T) {
	s := Reduce(NewState(), action.EnterCommit{})
	for _, r := range "update vimrc" {
		s = Reduce(s, action.Input{Rune: r})
	}
	if s.Input.String() != "update vimrc" {
		t.Fatalf("input = %q", s.Input.String())
	}

	s = Reduce(s, action.Commit{})
	if s.Mode != ModeNormal {
		t.Errorf("mode = %d, want ModeNormal", s.Mode)
	}
	if s.Input.Len() != 0 {
		t.Errorf("input not cleared: %q", s.Input.String())
	}
	if !s.Loading {
		t.Error("commit submission should mark loading")
	}
}

func TestSearchFiltersLive(t *testing.T) {
	s := Reduce(NewState(), snapshot(
		entry(".bashrc", git.KindModified, git.Unstaged),
		entry(".vimrc", git.KindModified, git.Unstaged),
	))
	s = Reduce(s, action.EnterSearch{})
	for _, r := range "vim" {
		s = Reduce(s, action.Input{Rune: r})
	}

	if len(s.Filtered) != 1 || s.Filtered[0].Path != ".vimrc" {
		t.Fatalf("filtered = %+v, want just .vimrc", s.Filtered)
	}
	if e, ok := s.Selected(); !ok || e.Path != ".vimrc" {
		t.Errorf("selected = %+v ok=%v, want .vimrc", e, ok)
	}

	s = Reduce(s, action.InputDelete{})
	s = Reduce(s, action.InputDelete{})
	s = Reduce(s, action.InputDelete{})
	if len(s.Filtered) != 2 {
		t.Errorf("emptying the query should restore all entries, got %d", len(s.Filtered))
	}
}

func TestSearchAcceptKeepsFilter(t *testing.T) {
	s := Reduce(NewState(), snapshot(
		entry(".bashrc", git.KindModified, git.Unstaged),
		entry(".vimrc", git.KindModified, git.Unstaged),
	))
	s = Reduce(s, action.EnterSearch{})
	for _, r := range "vim" {
		s = Reduce(s, action.Input{Rune: r})
	}

	s = Reduce(s, action.SearchAccept{})
	if s.Mode != ModeNormal {
		t.Errorf("mode = %d, want ModeNormal", s.Mode)
	}
	if len(s.Filtered) != 1 {
		t.Errorf("filter dropped on accept, got %d entries", len(s.Filtered))
	}

	s = Reduce(s, action.EnterNormal{})
	if len(s.Filtered) != 2 {
		t.Errorf("esc should clear the filter, got %d entries", len(s.Filtered))
	}
}

func TestHelpToggle(t *testing.T) {
	s := Reduce(NewState(), action.ToggleHelp{})
	if s.Mode != ModeHelp {
		t.Fatalf("mode = %d, want ModeHelp", s.Mode)
	}
	s = Reduce(s, action.ToggleHelp{})
	if s.Mode != ModeNormal {
		t.Fatalf("mode = %d, want ModeNormal", s.Mode)
	}
}

func TestOpDoneOutcomes(t *testing.T) {
	s := Reduce(NewState(), action.StageAll{})
	if !s.Loading {
		t.Fatal("stage-all should mark loading")
	}

	s = Reduce(s, action.OpDone{Op: action.OpStageAll})
	if !s.Loading {
		t.Error("loading stays set until the chained refresh lands")
	}

	s = Reduce(s, action.OpDone{Op: action.OpCommit})
	if s.Message != msgCommitted {
		t.Errorf("message = %q, want %q", s.Message, msgCommitted)
	}

	s = Reduce(s, action.OpDone{Op: action.OpStage, Err: errors.New("pathspec did not match")})
	if s.Loading || !s.MessageIsErr {
		t.Errorf("failed op: loading=%v isErr=%v, want false/true", s.Loading, s.MessageIsErr)
	}
}

func TestLogLoaded(t *testing.T) {
	s := Reduce(NewState(), action.EnterLog{})
	if s.Mode != ModeLog {
		t.Fatalf("mode = %d, want ModeLog", s.Mode)
	}

	s = Reduce(s, action.LogLoaded{Commits: []git.Commit{
		{Hash: "aaa", Subject: "first"},
		{Hash: "bbb", Subject: "second"},
	}})
	if s.LogCursor != 0 {
		t.Errorf("log cursor = %d, want 0", s.LogCursor)
	}

	s = Reduce(s, action.NavigateDown{})
	if c, _ := s.SelectedCommit(); c.Hash != "bbb" {
		t.Errorf("selected commit = %q, want bbb", c.Hash)
	}

	s = Reduce(s, action.NavigateDown{})
	if c, _ := s.SelectedCommit(); c.Hash != "aaa" {
		t.Errorf("log navigation wraps, got %q, want aaa", c.Hash)
	}
}

func TestDiffLoaded(t *testing.T) {
	s := Reduce(NewState(), snapshot(
		entry(".bashrc", git.KindModified, git.Unstaged),
		entry(".vimrc", git.KindModified, git.Unstaged),
	))

	hunks := []git.Hunk{{Header: "@@ -1 +1 @@"}}
	s = Reduce(s, action.DiffLoaded{Path: ".bashrc", Hunks: hunks})
	if s.Diff.Path != ".bashrc" || len(s.Diff.Hunks) != 1 {
		t.Fatalf("diff = %+v", s.Diff)
	}

	// A result for a path other than the selected one is stale.
	s = Reduce(s, action.DiffLoaded{Path: ".zshrc", Hunks: hunks})
	if s.Diff.Path != ".bashrc" {
		t.Errorf("diff = %+v, want .bashrc kept", s.Diff)
	}

	// Moving the selection makes the old path's results stale too. The
	// previous diff stays on screen untouched until the new one lands.
	s = Reduce(s, action.NavigateDown{})
	s = Reduce(s, action.DiffLoaded{Path: ".bashrc", Staged: true, Hunks: hunks})
	if s.Diff.Path != ".bashrc" || s.Diff.Staged {
		t.Errorf("diff = %+v, want stale .bashrc result dropped", s.Diff)
	}
	s = Reduce(s, action.DiffLoaded{Path: ".vimrc"})
	if s.Diff.Path != ".vimrc" {
		t.Errorf("diff = %+v, want .vimrc", s.Diff)
	}
}

func TestConfigSavedOutcomes(t *testing.T) {
	s := Reduce(NewState(), action.ConfigSaved{Err: errors.New("read-only filesystem")})
	if !s.MessageIsErr {
		t.Error("a failed config write must surface as an error")
	}
	if want := "Failed to save config: read-only filesystem"; s.Message != want {
		t.Errorf("message = %q, want %q", s.Message, want)
	}

	// A successful save is silent.
	s = Reduce(NewState(), action.ConfigSaved{})
	if s.Message != "" || s.MessageIsErr {
		t.Errorf("message = %q (err=%v), want none", s.Message, s.MessageIsErr)
	}
}

func TestCycleFocus(t *testing.T) {
	s := Reduce(NewState(), action.CycleFocus{})
	if s.Focus != FocusDiff {
		t.Fatalf("focus = %d, want FocusDiff", s.Focus)
	}
	s = Reduce(s, action.CycleFocus{})
	if s.Focus != FocusFiles {
		t.Fatalf("focus = %d, want FocusFiles", s.Focus)
	}
}

func TestReduceIsPure(t *testing.T) {
	base := Reduce(NewState(), snapshot(
		entry("a", git.KindModified, git.Staged),
		entry("b", git.KindModified, git.Unstaged),
	))
	before := fmt.Sprintf("%+v", base)

	_ = Reduce(base, action.NavigateDown{})
	_ = Reduce(base, action.EnterSearch{})
	_ = Reduce(base, snapshot())

	if after := fmt.Sprintf("%+v", base); after != before {
		t.Error("Reduce must not mutate its input state")
	}
}

func TestQuit(t *testing.T) {
	s := Reduce(NewState(), action.Quit{})
	if !s.Quitting {
		t.Error("quit flag not set")
	}
}
