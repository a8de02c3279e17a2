package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotARepo is returned when the path is not inside a Git repository.
var ErrNotARepo = errors.New("not a git repository")

// ErrNoRemote is returned by Push when no 'origin' remote is configured.
// The reducer treats it as recoverable and opens the add-remote prompt.
var ErrNoRemote = errors.New("no remote 'origin' found")

// cmdTimeout is the maximum duration any single git command may run.
// Prevents hangs on huge repos or network operations.
const cmdTimeout = 30 * time.Second

// Repo wraps one open repository and shells out to the git CLI.
//
// A Repo is cheap to open and is NOT shared across concurrent operations:
// every background unit of work opens its own handle, so no lock is needed
// on the backend. Read commands run with GIT_OPTIONAL_LOCKS=0 so status
// queries never contend with a write in flight.
type Repo struct {
	root   string // Absolute path to the repo root.
	gitDir string // Path to the .git directory.
}

// Open opens the Git repository at the given path.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	topLevel, err := runGit(abs, nil, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, ErrNotARepo
	}
	gitDir, err := runGit(abs, nil, "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("finding .git directory: %w", err)
	}
	gd := strings.TrimSpace(gitDir)
	if !filepath.IsAbs(gd) {
		gd = filepath.Join(strings.TrimSpace(topLevel), gd)
	}
	return &Repo{
		root:   strings.TrimSpace(topLevel),
		gitDir: gd,
	}, nil
}

// Init creates a new repository at path and returns a handle to it. The
// directory is created first when missing.
func Init(path string) (*Repo, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := runGit(path, nil, "init"); err != nil {
		return nil, fmt.Errorf("initializing repository: %w", err)
	}
	return Open(path)
}

// RepoRoot returns the repository root path.
func (r *Repo) RepoRoot() string { return r.root }

// GitDir returns the path to the .git directory.
func (r *Repo) GitDir() string { return r.gitDir }

// ── helpers ─────────────────────────────────────────────────────────────────

// readEnv is the environment set on all read-only git commands.
// GIT_OPTIONAL_LOCKS=0 prevents git from acquiring optional locks.
var readEnv = []string{"GIT_OPTIONAL_LOCKS=0"}

func (r *Repo) run(args ...string) (string, error) {
	return runGit(r.root, readEnv, args...)
}

func (r *Repo) runWrite(args ...string) (string, error) {
	return runGit(r.root, nil, args...)
}

// runGit executes a git command with a context timeout. Stdout and stderr
// are separated so stderr noise doesn't corrupt output; on failure the
// stderr text is folded into the returned error so remote-side messages
// (push rejections etc.) survive to the UI.
func runGit(dir string, extraEnv []string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), errMsg, err)
	}
	return stdout.String(), nil
}

// ── Repository info ─────────────────────────────────────────────────────────

// Head returns the current HEAD ref, or the short hash when detached.
func (r *Repo) Head() (string, error) {
	ref, err := r.run("symbolic-ref", "--short", "HEAD")
	if err != nil {
		hash, hashErr := r.run("rev-parse", "--short", "HEAD")
		if hashErr != nil {
			return "", fmt.Errorf("getting HEAD: %w", err)
		}
		return strings.TrimSpace(hash), nil
	}
	return strings.TrimSpace(ref), nil
}

// ── Status & staging ────────────────────────────────────────────────────────

// Status returns the raw per-path change flags for the working tree.
func (r *Repo) Status() ([]RawChange, error) {
	out, err := r.run("status", "--porcelain=v1", "-z",
		"--no-optional-locks", "--untracked-files=all")
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}
	return ParseStatusOutput(out), nil
}

// Stage stages the given path.
func (r *Repo) Stage(path string) error {
	_, err := r.runWrite("add", "--", path)
	return err
}

// StageAll stages all changes.
func (r *Repo) StageAll() error { _, err := r.runWrite("add", "-A"); return err }

// Unstage unstages the given path.
func (r *Repo) Unstage(path string) error {
	_, err := r.runWrite("reset", "HEAD", "--", path)
	return err
}

// UnstageAll unstages all changes.
func (r *Repo) UnstageAll() error { _, err := r.runWrite("reset", "HEAD"); return err }

// ── Diff ────────────────────────────────────────────────────────────────────

// Diff returns the unified diff for a path. The staged facet diffs the
// index against HEAD; the unstaged facet diffs the working tree against
// the index. Untracked files have no blob to diff against, so the unstaged
// facet falls back to an intent-to-add style diff via --no-index.
func (r *Repo) Diff(path string, staged bool) (string, error) {
	args := []string{"diff", "--color=never", "--no-optional-locks", "--no-ext-diff"}
	if staged {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)
	out, err := r.run(args...)
	if err != nil {
		return "", err
	}
	if out == "" && !staged {
		return r.untrackedDiff(path)
	}
	return out, nil
}

// untrackedDiff renders a whole-file addition diff for an untracked path.
// git diff --no-index exits 1 when the files differ, which is expected.
func (r *Repo) untrackedDiff(path string) (string, error) {
	out, err := r.run("diff", "--color=never", "--no-index", "--", os.DevNull, path)
	if out != "" {
		return out, nil
	}
	if err != nil {
		// Missing or unreadable file: nothing to show, not an error.
		return "", nil
	}
	return out, nil
}

// Hunks returns the parsed hunks for a path's diff at the given facet.
// An empty diff yields an empty slice.
func (r *Repo) Hunks(path string, staged bool) ([]Hunk, error) {
	patch, err := r.Diff(path, staged)
	if err != nil {
		return nil, err
	}
	return ParseHunks(patch), nil
}

// ── Commits & history ───────────────────────────────────────────────────────

// Commit creates a new commit with the given message.
func (r *Repo) Commit(message string) error {
	_, err := r.runWrite("commit", "-m", message)
	return err
}

// Log returns up to limit entries of the commit history, newest first.
func (r *Repo) Log(limit int) ([]Commit, error) {
	out, err := r.run("log",
		fmt.Sprintf("--max-count=%d", limit),
		"--no-optional-locks", LogFormatFlag())
	if err != nil {
		// An unborn HEAD (no commits yet) is an empty history, not an error.
		if strings.Contains(err.Error(), "does not have any commits") {
			return nil, nil
		}
		return nil, fmt.Errorf("getting log: %w", err)
	}
	return ParseLogOutput(out), nil
}

// ── Remotes ─────────────────────────────────────────────────────────────────

// HasRemote reports whether an 'origin' remote is configured.
func (r *Repo) HasRemote() bool {
	_, err := r.run("remote", "get-url", "origin")
	return err == nil
}

// AddRemote configures url as the 'origin' remote.
func (r *Repo) AddRemote(url string) error {
	_, err := r.runWrite("remote", "add", "origin", url)
	return err
}

// Push pushes the current branch to origin. ErrNoRemote is returned before
// any network traffic when origin is not configured.
func (r *Repo) Push() error {
	if !r.HasRemote() {
		return ErrNoRemote
	}
	_, err := r.runWrite("push", "origin", "HEAD")
	return err
}
