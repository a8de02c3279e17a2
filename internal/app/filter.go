package app

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/sarang-kernel/dotatui/internal/git"
)

// fuzzyDistance is the maximum edit distance between the query and a
// file's base name for a non-substring match to count.
const fuzzyDistance = 2

// Filter returns the entries matching query, best matches first. Substring
// matches rank ahead of fuzzy ones and earlier match positions rank ahead
// of later ones; ties keep the incoming (path-sorted) order. An empty query
// returns the entries unchanged.
func Filter(entries []git.FileEntry, query string) []git.FileEntry {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)

	type scored struct {
		entry git.FileEntry
		score int
	}
	var matched []scored
	for _, e := range entries {
		p := strings.ToLower(e.Path)
		if idx := strings.Index(p, q); idx >= 0 {
			matched = append(matched, scored{e, idx})
			continue
		}
		base := strings.ToLower(filepath.Base(e.Path))
		if d := levenshtein.ComputeDistance(q, base); d <= fuzzyDistance {
			// Fuzzy matches always sort after substring matches.
			matched = append(matched, scored{e, 1000 + d})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score < matched[j].score
	})

	out := make([]git.FileEntry, len(matched))
	for i, m := range matched {
		out[i] = m.entry
	}
	return out
}
