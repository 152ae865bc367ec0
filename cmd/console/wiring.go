package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Console/internal/config"
	"github.com/LISSConsulting/LISSTech.Console/internal/console"
	"github.com/LISSConsulting/LISSTech.Console/internal/executor"
	"github.com/LISSConsulting/LISSTech.Console/internal/history"
	"github.com/LISSConsulting/LISSTech.Console/internal/logger"
	"github.com/LISSConsulting/LISSTech.Console/internal/markdown"
	"github.com/LISSConsulting/LISSTech.Console/internal/msglog"
	"github.com/LISSConsulting/LISSTech.Console/internal/notify"
	"github.com/LISSConsulting/LISSTech.Console/internal/tui"
)

// guideTitle and guideDetail make up the system message shown at startup.
const (
	guideTitle  = "**Console**"
	guideDetail = "# Quick Guide\n\n" +
		"* Commands are sent to the configured executor\n" +
		"* Press `↑`/`↓` to navigate command history, `ctrl+r` to search it\n" +
		"* `tab` focuses the log: `enter` shows details, `1`-`9` copy code blocks"
)

// defaultMarkdownWidth is used until the first window size arrives.
const defaultMarkdownWidth = 80

// runFlags holds the root command's flag values.
type runFlags struct {
	configPath    string
	url           string
	shell         string
	timestamps    bool
	timestampsSet bool
}

// loadConfig loads console.toml (or the defaults) and applies flag overrides.
func loadConfig(flags runFlags) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(flags.configPath)
	if err != nil {
		return nil, err
	}
	switch {
	case flags.shell != "":
		cfg.Executor.Kind = config.ExecutorShell
		cfg.Executor.Shell = flags.shell
	case flags.url != "":
		cfg.Executor.Kind = config.ExecutorHTTP
		cfg.Executor.URL = flags.url
	}
	if flags.timestampsSet {
		cfg.Console.Timestamps = flags.timestamps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging points the shared logger at the configured file. With no
// file configured, logging is discarded: the TUI owns the terminal.
func setupLogging(cfg config.LogConfig) (io.Closer, error) {
	logger.Configure()
	if err := logger.SetLevel(cfg.Level); err != nil {
		return nil, err
	}
	if cfg.File == "" {
		logger.Discard()
		return io.NopCloser(nil), nil
	}
	return logger.SetupFile(cfg.File)
}

// buildExecutor returns the executor selected by cfg and a short description
// of where commands go, for the header.
func buildExecutor(cfg config.ExecutorConfig) (executor.Executor, string, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	switch cfg.Kind {
	case config.ExecutorHTTP:
		return executor.NewHTTP(cfg.URL, timeout), cfg.URL, nil
	case config.ExecutorShell:
		target := cfg.Shell
		if cfg.Dir != "" {
			target += " @ " + cfg.Dir
		}
		return executor.NewShell(cfg.Shell, cfg.Dir, timeout), target, nil
	default:
		return nil, "", fmt.Errorf("executor: unknown kind %q", cfg.Kind)
	}
}

// openHistory opens the persisted history file, trims it to maxEntries and
// returns the commands to seed the in-memory history with. A nil File means
// history is kept in memory only.
func openHistory(cfg config.HistoryConfig) (*history.File, []string, error) {
	if cfg.File == "" {
		return nil, nil, nil
	}
	f, err := history.OpenFile(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	if err := f.EnforceRetention(cfg.MaxEntries); err != nil {
		logger.Named("history").Warnf("enforce retention: %v", err)
	}
	cmds, err := f.Commands(cfg.MaxEntries)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, cmds, nil
}

// closeHistory trims the file back to maxEntries and closes it.
func closeHistory(hf *history.File, maxEntries int) {
	if err := hf.EnforceRetention(maxEntries); err != nil {
		logger.Named("history").Warnf("enforce retention: %v", err)
	}
	if err := hf.Close(); err != nil {
		logger.Named("history").Warnf("close: %v", err)
	}
}

// newConsole builds the widget from configuration. hf may be nil.
func newConsole(cfg *config.Config, exec executor.Executor, conv markdown.Converter, hf *history.File, seed []string) *console.Console {
	opts := console.Options{
		Executor:     exec,
		Converter:    conv,
		MaxMessages:  cfg.Console.MaxMessages,
		HistoryLimit: cfg.History.MaxEntries,
	}
	if hf != nil {
		opts.Persister = hf
	}
	if n := cfg.Notifications; n.URL != "" {
		opts.Observer = notify.New(n.URL, cfg.Console.Title, n.OnComplete, n.OnError).Hook
	}

	c := console.New(opts)
	if cfg.Console.PromptSymbol != "" {
		c.SetPromptSymbol(cfg.Console.PromptSymbol)
	}
	if cfg.Console.Placeholder != "" {
		c.SetPlaceholder(cfg.Console.Placeholder)
	}
	c.SetTimestamps(cfg.Console.Timestamps)
	c.History().Load(seed)
	return c
}

// injectWelcome appends the quick guide and, when configured, the welcome
// markdown file. A file that cannot be read becomes an error entry.
func injectWelcome(c *console.Console, welcomeFile string) {
	c.PrintMarkdown(guideTitle, guideDetail)
	if welcomeFile == "" {
		return
	}
	data, err := os.ReadFile(welcomeFile)
	if err != nil {
		logger.Named("console").Warnf("welcome file: %v", err)
		c.Print(fmt.Sprintf("Error: failed to load welcome message: %v", err), msglog.StyleError, "")
		return
	}
	c.PrintMarkdown(string(data), "")
}

// runConsole wires configuration, executor, history and markdown into the
// widget and runs the TUI until the user quits.
func runConsole(flags runFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logCloser, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	exec, target, err := buildExecutor(cfg.Executor)
	if err != nil {
		return err
	}

	hf, seed, err := openHistory(cfg.History)
	if err != nil {
		logger.Named("history").Warnf("history disabled: %v", err)
	}
	if hf != nil {
		defer closeHistory(hf, cfg.History.MaxEntries)
	}

	conv := markdown.NewGlamour(defaultMarkdownWidth)
	c := newConsole(cfg, exec, conv, hf, seed)
	injectWelcome(c, cfg.Console.WelcomeFile)

	ctx, cancel := signalContext()
	defer cancel()
	registerQuitHandler()

	model := tui.New(c, tui.Options{
		Context:     ctx,
		Title:       cfg.Console.Title,
		Target:      target,
		AccentColor: cfg.TUI.AccentColor,
		OnResize:    conv.SetWidth,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	return finishTUI(program)
}

// finishTUI runs the TUI program and treats cancellation as a clean exit.
func finishTUI(program *tea.Program) error {
	_, err := program.Run()
	if err == nil || errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return nil
	}
	return fmt.Errorf("tui: %w", err)
}
