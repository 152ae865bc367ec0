// Package config parses console.toml widget configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Load.
const FileName = "console.toml"

// DefaultAccentColor is the default TUI accent color (indigo).
const DefaultAccentColor = "#7D56F4"

// DefaultMaxMessages is the default message log capacity.
const DefaultMaxMessages = 500

// Executor kinds.
const (
	ExecutorHTTP  = "http"
	ExecutorShell = "shell"
)

// hexColorRe matches a 6-digit hex color string like "#7D56F4".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Config is the top-level console.toml configuration.
type Config struct {
	Console       ConsoleConfig       `toml:"console"`
	History       HistoryConfig       `toml:"history"`
	Executor      ExecutorConfig      `toml:"executor"`
	Server        ServerConfig        `toml:"server"`
	TUI           TUIConfig           `toml:"tui"`
	Log           LogConfig           `toml:"log"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ConsoleConfig controls the widget itself.
type ConsoleConfig struct {
	Title        string `toml:"title"`
	PromptSymbol string `toml:"prompt_symbol"`
	Placeholder  string `toml:"placeholder"`
	Timestamps   bool   `toml:"timestamps"`
	MaxMessages  int    `toml:"max_messages"`
	WelcomeFile  string `toml:"welcome_file"` // markdown shown at startup; empty = none
}

// HistoryConfig controls command history persistence.
type HistoryConfig struct {
	File       string `toml:"file"`        // empty = in-memory only
	MaxEntries int    `toml:"max_entries"` // 0 = unlimited
}

// ExecutorConfig selects and configures the command executor.
type ExecutorConfig struct {
	Kind           string `toml:"kind"`
	URL            string `toml:"url"`
	Shell          string `toml:"shell"`
	Dir            string `toml:"dir"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // 0 = no timeout
}

// ServerConfig controls `console serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// NotificationsConfig controls webhook/ntfy.sh notifications for command results.
type NotificationsConfig struct {
	URL        string `toml:"url"`
	OnComplete bool   `toml:"on_complete"`
	OnError    bool   `toml:"on_error"`
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Console.MaxMessages < 0 {
		errs = append(errs, fmt.Errorf("console.max_messages must be >= 0 (0 = default %d)", DefaultMaxMessages))
	}
	if c.History.MaxEntries < 0 {
		errs = append(errs, fmt.Errorf("history.max_entries must be >= 0 (0 = unlimited)"))
	}

	switch c.Executor.Kind {
	case ExecutorHTTP:
		u, parseErr := url.ParseRequestURI(c.Executor.URL)
		if parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("executor.url must be a valid http or https URL"))
		}
	case ExecutorShell:
		if c.Executor.Shell == "" {
			errs = append(errs, fmt.Errorf("executor.shell must not be empty when executor.kind is \"shell\""))
		}
	default:
		errs = append(errs, fmt.Errorf("executor.kind must be %q or %q", ExecutorHTTP, ExecutorShell))
	}
	if c.Executor.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("executor.timeout_seconds must be >= 0 (0 = no timeout)"))
	}

	if c.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("server.addr must not be empty"))
	}

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. \"#7D56F4\")"))
	}

	if c.Log.Level != "" && !logLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log.level must be one of trace, debug, info, warn, error"))
	}

	if c.Notifications.URL != "" {
		u, parseErr := url.ParseRequestURI(c.Notifications.URL)
		if parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("notifications.url must be a valid http or https URL"))
		}
	}

	return errors.Join(errs...)
}

// Defaults returns a Config with the widget's built-in defaults.
func Defaults() Config {
	return Config{
		Console: ConsoleConfig{
			PromptSymbol: "> ",
			Placeholder:  "Type a command and press Enter to execute",
			Timestamps:   false,
			MaxMessages:  DefaultMaxMessages,
		},
		History: HistoryConfig{
			File:       filepath.Join(".console", "history.jsonl"),
			MaxEntries: 0,
		},
		Executor: ExecutorConfig{
			Kind:           ExecutorHTTP,
			URL:            "http://localhost:8000/execute",
			Shell:          "/bin/sh",
			TimeoutSeconds: 30,
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
		},
		Log: LogConfig{
			File:  filepath.Join(".console", "console.log"),
			Level: "info",
		},
		Notifications: NotificationsConfig{
			URL:        "",
			OnComplete: false,
			OnError:    true,
		},
	}
}

// Load reads console.toml from the given path. If path is empty, it walks up
// from the current working directory looking for console.toml. Returns an error
// if the file contains unknown keys (likely typos).
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, joinKeys(keys))
	}

	if cfg.Console.Title == "" {
		cfg.Console.Title = ProjectTitle(filepath.Dir(path))
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load, but when path is empty and no console.toml
// exists up the directory tree it returns Defaults for the working directory.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := findConfig(); errors.Is(err, ErrNotFound) {
		cfg := Defaults()
		if dir, wdErr := os.Getwd(); wdErr == nil {
			cfg.Console.Title = ProjectTitle(dir)
		}
		return &cfg, nil
	}
	return Load("")
}

// ErrNotFound is returned when no console.toml exists up the directory tree.
var ErrNotFound = errors.New("config: " + FileName + " not found")

// joinKeys formats a slice of key names for display.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}

// findConfig walks up from the current directory looking for console.toml.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched up from %s)", ErrNotFound, dir)
		}
		dir = parent
	}
}

// InitFile writes a default console.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}

	content := `# console.toml: terminal console configuration
# Place this file in the root of your project.

[console]
title = ""                 # header title; empty = detected project name
prompt_symbol = "> "
placeholder = "Type a command and press Enter to execute"
timestamps = false
max_messages = 500         # oldest messages are dropped beyond this
welcome_file = ""          # markdown shown at startup (e.g. "Welcome.md")

[history]
file = ".console/history.jsonl"  # empty = keep history in memory only
max_entries = 0                  # 0 = unlimited; the file is trimmed at start and exit

[executor]
kind = "http"              # "http" or "shell"
url = "http://localhost:8000/execute"
shell = "/bin/sh"
dir = ""                   # working directory for the shell executor
timeout_seconds = 30       # 0 = no timeout

[server]
addr = ":8000"             # listen address for ` + "`console serve`" + `

[tui]
accent_color = "#7D56F4"   # hex color for header/accent elements

[log]
file = ".console/console.log"
level = "info"

[notifications]
url = ""            # ntfy.sh topic URL or any HTTP webhook (empty = disabled)
on_complete = false # notify on every command result
on_error = true     # notify on failed commands
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}
