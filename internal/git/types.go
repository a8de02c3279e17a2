package git

import "time"

// StatusCode represents a single-character Git status indicator as reported
// by `git status --porcelain=v1` in the index or worktree column.
type StatusCode byte

// Git status codes as single-byte indicators.
const (
	StatusUnmodified  StatusCode = ' '
	StatusModified    StatusCode = 'M'
	StatusTypeChanged StatusCode = 'T'
	StatusAdded       StatusCode = 'A'
	StatusDeleted     StatusCode = 'D'
	StatusRenamed     StatusCode = 'R'
	StatusCopied      StatusCode = 'C'
	StatusUnmerged    StatusCode = 'U'
	StatusUntracked   StatusCode = '?'
	StatusIgnored     StatusCode = '!'
)

// String returns the single-character representation.
func (s StatusCode) String() string { return string(s) }

// RawChange is one path's raw change flags straight from the backend:
// the index-relative and worktree-relative porcelain codes, unclassified.
// Classify turns a set of these into FileEntry values.
type RawChange struct {
	Path     string
	OrigPath string // Only set for renames/copies.
	Index    StatusCode
	Worktree StatusCode
}

// ChangeKind is the classified kind of change for a path. Exactly one kind
// is assigned per entry, resolved by fixed priority (see Classify).
type ChangeKind int

// Change kinds, in classification priority order.
const (
	KindConflicted ChangeKind = iota
	KindNew
	KindDeleted
	KindRenamed
	KindTypeChange
	KindModified
)

// Label returns a human-readable description of the change kind.
func (k ChangeKind) Label() string {
	switch k {
	case KindConflicted:
		return "Conflicted"
	case KindNew:
		return "New"
	case KindDeleted:
		return "Deleted"
	case KindRenamed:
		return "Renamed"
	case KindTypeChange:
		return "Type changed"
	case KindModified:
		return "Modified"
	default:
		return ""
	}
}

// StagingState reports where a path's changes live relative to the index.
type StagingState int

// Staging states.
const (
	Unstaged StagingState = iota
	Staged
	PartiallyStaged
)

// Label returns a human-readable description of the staging state.
func (s StagingState) Label() string {
	switch s {
	case Staged:
		return "Staged"
	case Unstaged:
		return "Unstaged"
	case PartiallyStaged:
		return "Partially staged"
	default:
		return ""
	}
}

// FileEntry is one classified changed path. Entries are produced fresh on
// every status refresh and replaced wholesale, never mutated in place.
// At most one entry exists per path.
type FileEntry struct {
	Path     string
	OrigPath string // Only set for renames.
	Kind     ChangeKind
	Staging  StagingState
}

// Commit is one entry of the repository history.
type Commit struct {
	Hash      string
	ShortHash string
	Author    string
	Date      time.Time
	RelDate   string
	Subject   string
}
