// Package watcher monitors the repository's .git directory for state
// changes and tells the TUI to refresh. Only the handful of files inside
// .git that change on meaningful operations are watched; the working tree
// itself is not. A dotfiles repository typically has its worktree at $HOME,
// so recursive worktree watches are out of the question; working-tree
// edits are picked up on the next manual refresh or staging operation.
//
// Watched paths:
//   - .git/index      → staging changes
//   - .git/HEAD       → branch switches, commits
//   - .git/refs/heads → local branch updates
package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when relevant repository state changed.
type Event struct{}

// Watch monitors gitDir for state changes and sends Event values on the
// returned channel. Rapid bursts are coalesced via the debounce window.
// Call the returned stop function to tear down the watcher.
func Watch(gitDir string, debounce time.Duration) (<-chan Event, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	targets := []string{
		gitDir, // catches HEAD, index, ORIG_HEAD
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "refs/heads"),
	}
	for _, t := range targets {
		if info, statErr := os.Stat(t); statErr == nil && info.IsDir() {
			// Some dirs may not exist yet in a fresh repository.
			_ = w.Add(t)
		}
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ignored(ev.Name) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// ignored reports whether an event should not trigger a refresh.
func ignored(path string) bool {
	base := filepath.Base(path)

	// Git holds .lock files mid-operation; refreshing while a lock is
	// held would race the very command that triggered the event.
	if strings.HasSuffix(base, ".lock") {
		return true
	}

	// COMMIT_EDITMSG fires while a commit message is being typed.
	if base == "COMMIT_EDITMSG" {
		return true
	}

	// Editor swap and temp files.
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, "~") ||
		strings.HasPrefix(base, ".#") {
		return true
	}

	return base == "gc.log" || strings.HasPrefix(base, "fsmonitor")
}
