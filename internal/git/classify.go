package git

import "sort"

// Classify converts raw per-path change flags into classified file entries.
//
// It is a pure function: the same raw change set always yields the same
// entries in the same order. The output is sorted lexicographically by path
// so list ordering never depends on backend iteration order.
//
// Per entry, exactly one ChangeKind is chosen by fixed priority:
// conflicted wins over everything, then new, deleted, renamed, type-change,
// modified; the first match across both the index and worktree facets wins.
// The staging state collapses the two facets: index-only changes are
// Staged, worktree-only changes are Unstaged, both is PartiallyStaged.
// Paths with neither facet changed are dropped.
func Classify(raw []RawChange) []FileEntry {
	entries := make([]FileEntry, 0, len(raw))
	for _, rc := range raw {
		if e, ok := classifyOne(rc); ok {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

func classifyOne(rc RawChange) (FileEntry, bool) {
	e := FileEntry{Path: rc.Path, OrigPath: rc.OrigPath}

	if isConflicted(rc) {
		// Conflicted paths need worktree-level resolution regardless of
		// what the index says.
		e.Kind = KindConflicted
		e.Staging = Unstaged
		return e, true
	}

	idx := indexChanged(rc.Index)
	wt := worktreeChanged(rc)
	if !idx && !wt {
		return FileEntry{}, false
	}

	e.Kind = changeKind(rc)
	switch {
	case idx && wt:
		e.Staging = PartiallyStaged
	case idx:
		e.Staging = Staged
	default:
		e.Staging = Unstaged
	}
	return e, true
}

// changeKind picks the single kind for a non-conflicted entry. The order of
// the checks is the classification priority and must not be reordered.
func changeKind(rc RawChange) ChangeKind {
	switch {
	case hasCode(rc, StatusAdded) || rc.Index == StatusUntracked:
		return KindNew
	case hasCode(rc, StatusDeleted):
		return KindDeleted
	case hasCode(rc, StatusRenamed) || hasCode(rc, StatusCopied):
		return KindRenamed
	case hasCode(rc, StatusTypeChanged):
		return KindTypeChange
	default:
		return KindModified
	}
}

// isConflicted reports merge conflicts: any unmerged column, or the
// both-added / both-deleted porcelain combinations.
func isConflicted(rc RawChange) bool {
	if rc.Index == StatusUnmerged || rc.Worktree == StatusUnmerged {
		return true
	}
	if rc.Index == StatusAdded && rc.Worktree == StatusAdded {
		return true
	}
	return rc.Index == StatusDeleted && rc.Worktree == StatusDeleted
}

func hasCode(rc RawChange, code StatusCode) bool {
	return rc.Index == code || rc.Worktree == code
}

func indexChanged(c StatusCode) bool {
	switch c {
	case StatusModified, StatusTypeChanged, StatusAdded, StatusDeleted, StatusRenamed, StatusCopied:
		return true
	default:
		return false
	}
}

func worktreeChanged(rc RawChange) bool {
	// '??' marks an untracked path: a worktree-relative new file.
	if rc.Index == StatusUntracked && rc.Worktree == StatusUntracked {
		return true
	}
	switch rc.Worktree {
	case StatusModified, StatusTypeChanged, StatusAdded, StatusDeleted, StatusRenamed, StatusCopied:
		return true
	default:
		return false
	}
}
