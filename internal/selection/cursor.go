// Package selection owns the cursor and focus model for navigable lists.
//
// A Cursor is an index into a list of known length, or None. All movement
// wraps circularly, and a cursor must be re-validated whenever its list is
// replaced wholesale. Lists in this application are never patched in
// place, so Revalidate runs after every refresh.
package selection

// Cursor is the currently selected index into a list, or None.
type Cursor int

// None marks a cursor over an empty (or exhausted) list.
const None Cursor = -1

// IsNone reports whether no row is selected.
func (c Cursor) IsNone() bool { return c < 0 }

// Next advances the cursor, wrapping from the last index to 0.
func (c Cursor) Next(n int) Cursor {
	if n <= 0 {
		return None
	}
	if c.IsNone() {
		return 0
	}
	return Cursor((int(c) + 1) % n)
}

// Prev retreats the cursor, wrapping from 0 to the last index.
func (c Cursor) Prev(n int) Cursor {
	if n <= 0 {
		return None
	}
	if c.IsNone() {
		return 0
	}
	return Cursor((int(c) - 1 + n) % n)
}

// Top moves to the first index, or None for an empty list.
func Top(n int) Cursor {
	if n <= 0 {
		return None
	}
	return 0
}

// Bottom moves to the last index, or None for an empty list.
func Bottom(n int) Cursor {
	if n <= 0 {
		return None
	}
	return Cursor(n - 1)
}

// Revalidate re-validates the cursor after its list was replaced: an
// out-of-range index clamps to the last row, an empty list resets to None,
// and None over a non-empty list initializes to 0.
func (c Cursor) Revalidate(n int) Cursor {
	if n <= 0 {
		return None
	}
	if c.IsNone() {
		return 0
	}
	if int(c) >= n {
		return Cursor(n - 1)
	}
	return c
}

// ── Grouped lists ───────────────────────────────────────────────────────────

// Grouped lists interleave selectable rows with non-selectable header rows.
// After every move the cursor must skip over headers until it lands on a
// selectable row; a list of only headers yields None.

// Skip moves the cursor forward (dir > 0) or backward (dir < 0) past
// non-selectable rows. The cursor itself counts: if it already sits on a
// selectable row it stays. At most n rows are visited, so a pure-header
// list terminates with None.
func Skip(c Cursor, n, dir int, selectable func(int) bool) Cursor {
	if n <= 0 || c.IsNone() {
		return None
	}
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}
	i := int(c)
	for visited := 0; visited < n; visited++ {
		if selectable(i) {
			return Cursor(i)
		}
		i = (i + dir + n) % n
	}
	return None
}

// NextSelectable is Next followed by a forward header skip.
func NextSelectable(c Cursor, n int, selectable func(int) bool) Cursor {
	return Skip(c.Next(n), n, 1, selectable)
}

// PrevSelectable is Prev followed by a backward header skip.
func PrevSelectable(c Cursor, n int, selectable func(int) bool) Cursor {
	return Skip(c.Prev(n), n, -1, selectable)
}

// RevalidateSelectable re-validates against a grouped list, then skips
// forward to the nearest selectable row.
func RevalidateSelectable(c Cursor, n int, selectable func(int) bool) Cursor {
	return Skip(c.Revalidate(n), n, 1, selectable)
}

// ── Focus ───────────────────────────────────────────────────────────────────

// Focus indicates which of several independent lists (or panes) currently
// receives navigation. It is cycled explicitly, never inferred; each list
// keeps its own Cursor regardless of focus.
type Focus int

// Cycle advances focus to the next of n targets.
func (f Focus) Cycle(n int) Focus {
	if n <= 0 {
		return 0
	}
	return Focus((int(f) + 1) % n)
}
