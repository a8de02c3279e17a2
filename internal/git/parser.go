package git

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── Status parsing ──────────────────────────────────────────────────────────

// ParseStatusOutput parses `git status --porcelain=v1 -z` into raw changes.
// NUL-delimited scanning avoids allocating a []string for repos with
// thousands of changed files.
func ParseStatusOutput(out string) []RawChange {
	if len(out) == 0 {
		return nil
	}
	changes := make([]RawChange, 0, 32)

	for len(out) > 0 {
		nul := strings.IndexByte(out, '\x00')
		var entry string
		if nul < 0 {
			entry = out
			out = ""
		} else {
			entry = out[:nul]
			out = out[nul+1:]
		}
		if len(entry) < 4 {
			continue
		}

		rc := RawChange{
			Index:    StatusCode(entry[0]),
			Worktree: StatusCode(entry[1]),
			Path:     entry[3:],
		}

		// Renames/copies carry an extra NUL-separated field for the
		// original path.
		if rc.Index == StatusRenamed || rc.Index == StatusCopied ||
			rc.Worktree == StatusRenamed || rc.Worktree == StatusCopied {
			nul2 := strings.IndexByte(out, '\x00')
			if nul2 < 0 {
				rc.OrigPath = out
				out = ""
			} else {
				rc.OrigPath = out[:nul2]
				out = out[nul2+1:]
			}
		}

		changes = append(changes, rc)
	}
	return changes
}

// ── Log / commit parsing ────────────────────────────────────────────────────

const (
	logFormat    = "%H%x00%h%x00%an%x00%at%x00%ar%x00%s"
	logSeparator = "%x01"
)

// LogFormatFlag returns the --format flag for git log.
func LogFormatFlag() string {
	return fmt.Sprintf("--format=%s%s", logFormat, logSeparator)
}

// ParseLogOutput parses the raw output of git log using our custom format.
func ParseLogOutput(out string) []Commit {
	if len(out) == 0 {
		return nil
	}
	commits := make([]Commit, 0, 32)

	for len(out) > 0 {
		idx := strings.IndexByte(out, '\x01')
		var entry string
		if idx < 0 {
			entry = out
			out = ""
		} else {
			entry = out[:idx]
			out = out[idx+1:]
		}
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if c, ok := parseCommitEntry(entry); ok {
			commits = append(commits, c)
		}
	}
	return commits
}

func parseCommitEntry(entry string) (Commit, bool) {
	parts := strings.SplitN(entry, "\x00", 6)
	if len(parts) < 6 {
		return Commit{}, false
	}
	ts, _ := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
	return Commit{
		Hash:      strings.TrimSpace(parts[0]),
		ShortHash: strings.TrimSpace(parts[1]),
		Author:    strings.TrimSpace(parts[2]),
		Date:      time.Unix(ts, 0),
		RelDate:   strings.TrimSpace(parts[4]),
		Subject:   strings.TrimSpace(parts[5]),
	}, true
}
