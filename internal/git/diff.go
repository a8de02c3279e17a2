package git

import (
	"strconv"
	"strings"
)

// LineOrigin classifies a diff line so the presentation layer can colorize
// without re-deriving it from the raw text.
type LineOrigin int

// Line origins.
const (
	LineContext LineOrigin = iota
	LineAdded
	LineRemoved
)

// Line is a single line within a hunk.
type Line struct {
	Origin  LineOrigin
	Content string
	OldNum  int // 0 when the line is added
	NewNum  int // 0 when the line is removed
}

// Hunk is a contiguous region of a unified diff: an ordered, non-empty
// sequence of lines under one @@ header.
type Hunk struct {
	Header   string // the raw @@ line, including any section hint
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// ParseHunks re-parses a unified diff into discrete hunks for line-level
// review. File-level headers (diff --git, index, ---, +++) are skipped.
// An empty diff yields nil, never an error.
func ParseHunks(patch string) []Hunk {
	if strings.TrimSpace(patch) == "" {
		return nil
	}

	var hunks []Hunk
	var cur *Hunk
	oldNum, newNum := 0, 0

	for _, raw := range strings.Split(strings.TrimSuffix(patch, "\n"), "\n") {
		switch {
		case strings.HasPrefix(raw, "@@"):
			if cur != nil && len(cur.Lines) > 0 {
				hunks = append(hunks, *cur)
			}
			h := parseHunkHeader(raw)
			cur = &h
			oldNum = h.OldStart
			newNum = h.NewStart

		case cur == nil:
			// Preamble before the first hunk header.
			continue

		case strings.HasPrefix(raw, "+"):
			cur.Lines = append(cur.Lines, Line{Origin: LineAdded, Content: raw[1:], NewNum: newNum})
			newNum++

		case strings.HasPrefix(raw, "-"):
			cur.Lines = append(cur.Lines, Line{Origin: LineRemoved, Content: raw[1:], OldNum: oldNum})
			oldNum++

		case strings.HasPrefix(raw, "\\"):
			// "\ No newline at end of file" is metadata, not a diff line.
			continue

		case strings.HasPrefix(raw, " "):
			cur.Lines = append(cur.Lines, Line{Origin: LineContext, Content: raw[1:], OldNum: oldNum, NewNum: newNum})
			oldNum++
			newNum++

		case raw == "":
			// git emits a bare empty line for empty context lines at EOF.
			cur.Lines = append(cur.Lines, Line{Origin: LineContext, OldNum: oldNum, NewNum: newNum})
			oldNum++
			newNum++

		default:
			// A new file header terminates the current hunk.
			if len(cur.Lines) > 0 {
				hunks = append(hunks, *cur)
			}
			cur = nil
		}
	}
	if cur != nil && len(cur.Lines) > 0 {
		hunks = append(hunks, *cur)
	}
	return hunks
}

// parseHunkHeader parses "@@ -oldStart,oldCount +newStart,newCount @@ section".
// Counts default to 1 when omitted, per the unified diff format.
func parseHunkHeader(raw string) Hunk {
	h := Hunk{Header: raw, OldCount: 1, NewCount: 1}

	inner := strings.TrimPrefix(raw, "@@")
	if end := strings.Index(inner, "@@"); end >= 0 {
		inner = inner[:end]
	}
	for _, field := range strings.Fields(inner) {
		switch {
		case strings.HasPrefix(field, "-"):
			h.OldStart, h.OldCount = parseRange(field[1:])
		case strings.HasPrefix(field, "+"):
			h.NewStart, h.NewCount = parseRange(field[1:])
		}
	}
	return h
}

func parseRange(s string) (start, count int) {
	count = 1
	if comma := strings.IndexByte(s, ','); comma >= 0 {
		count, _ = strconv.Atoi(s[comma+1:])
		s = s[:comma]
	}
	start, _ = strconv.Atoi(s)
	return start, count
}
