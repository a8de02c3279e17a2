package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sarang-kernel/dotatui/internal/action"
	"github.com/sarang-kernel/dotatui/internal/app"
	"github.com/sarang-kernel/dotatui/internal/config"
	"github.com/sarang-kernel/dotatui/internal/git"
	"github.com/sarang-kernel/dotatui/internal/watcher"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// A TUI spends its time waiting on git subprocesses, fsnotify, and
	// terminal input; two OS threads cover the actual Go work. Respect an
	// explicit GOMAXPROCS override.
	if os.Getenv("GOMAXPROCS") == "" {
		maxProcs := 2
		if n := runtime.NumCPU(); n < maxProcs {
			maxProcs = n
		}
		runtime.GOMAXPROCS(maxProcs)
	}

	// Trigger the GC early and keep RSS low while the app idles in the
	// background terminal.
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dotatui",
		Short: "A TUI for managing your dotfiles Git repository",
		Long: `dotatui is a keyboard-first terminal client for the Git repository
that tracks your dotfiles.

It shows uncommitted changes grouped by staging state, previews diffs
hunk by hunk, and covers the whole edit-stage-commit-push loop without
leaving the terminal.`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"dotatui %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	rootCmd.Flags().StringP("path", "p", "", "Path to the dotfiles repository (overrides config)")

	return rootCmd
}

// buildVersionCmd creates the `dotatui version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("dotatui %s\n", version)
			fmt.Printf("  commit:  %s\n", commit)
			fmt.Printf("  built:   %s\n", date)
			fmt.Printf("  go:      %s\n", runtime.Version())
			fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `dotatui completion` subcommand.
func buildCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dotatui.

Examples:
  # Bash (add to ~/.bashrc)
  dotatui completion bash > /etc/bash_completion.d/dotatui

  # Zsh (add to ~/.zshrc before compinit)
  dotatui completion zsh > "${fpath[1]}/_dotatui"

  # Fish
  dotatui completion fish > ~/.config/fish/completions/dotatui.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagPath, _ := cmd.Flags().GetString("path"); flagPath != "" {
		cfg.RepoPath = flagPath
	}
	if cfg.RepoPath == "" {
		path, promptErr := promptRepoPath()
		if promptErr != nil {
			return promptErr
		}
		cfg.RepoPath = path
		if saveErr := cfg.Save(); saveErr != nil {
			return fmt.Errorf("saving config: %w", saveErr)
		}
	}

	repo, err := git.Open(cfg.RepoPath)
	initPrompt := false
	switch {
	case errors.Is(err, git.ErrNotARepo):
		initPrompt = true
	case err != nil:
		return fmt.Errorf("opening repository: %w", err)
	}

	model := app.New(cfg, initPrompt)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Refresh automatically when git state changes under our feet.
	if repo != nil {
		if watchCh, stop, watchErr := watcher.Watch(repo.GitDir(), 500*time.Millisecond); watchErr == nil {
			defer stop()
			go func() {
				for range watchCh {
					p.Send(action.RefreshStatus{})
				}
			}()
		}
	}

	_, err = p.Run()
	return err
}

// promptRepoPath asks for the dotfiles repository location on first run.
func promptRepoPath() (string, error) {
	home, _ := os.UserHomeDir()
	suggested := filepath.Join(home, "dotfiles")

	fmt.Printf("Where is (or should be) your dotfiles repository? [%s]: ", suggested)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading repository path: %w", err)
	}

	path := strings.TrimSpace(line)
	if path == "" {
		path = suggested
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
