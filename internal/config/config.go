// Package config loads and validates grapnel configuration.
//
// Configuration lives in a single TOML file. A missing file yields the
// built-in defaults; a present but invalid file fails startup so a typo
// never silently reverts a rebind.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mkelly/grapnel/internal/key"
	"github.com/mkelly/grapnel/internal/keymap"
)

// Config errors.
var (
	// ErrInvalidLogLevel indicates an unrecognized log_level value.
	ErrInvalidLogLevel = errors.New("config: invalid log level")

	// ErrInvalidQueueSize indicates queue_size is not positive.
	ErrInvalidQueueSize = errors.New("config: queue size must be positive")

	// ErrInvalidWindow indicates the watchdog window does not parse or
	// is not positive.
	ErrInvalidWindow = errors.New("config: invalid watchdog window")
)

// ParseError wraps a TOML syntax error with its file path.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Watchdog configures the stuck-modifier recovery described in the
// tracker package.
type Watchdog struct {
	// Enabled turns the watchdog on.
	Enabled bool `toml:"enabled"`

	// Window is how long the held set may sit non-empty with no
	// events before it is reset, as a duration string like "10s".
	Window string `toml:"window"`
}

// Bindings holds the user's chord-to-action tables. Entries merge over
// the defaults; binding a chord to "" removes the default binding.
type Bindings struct {
	Global map[string]string `toml:"global"`
	Menu   map[string]string `toml:"menu"`
}

// Script configures the Lua extension hook.
type Script struct {
	// Path is the Lua file loaded at startup. Empty disables scripting.
	Path string `toml:"path"`
}

// Config is the root of the TOML file.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// QueueSize caps the hotkey hand-off queue.
	QueueSize int `toml:"queue_size"`

	// Leader is the modifier prefix applied to every global binding,
	// e.g. "Ctrl+Alt".
	Leader string `toml:"leader"`

	Watchdog Watchdog `toml:"watchdog"`
	Bindings Bindings `toml:"bindings"`
	Script   Script   `toml:"script"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		QueueSize: 32,
		Leader:    "Ctrl+Alt",
		Watchdog: Watchdog{
			Enabled: true,
			Window:  "10s",
		},
	}
}

// Load reads the file at path over the defaults. A missing file is not
// an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location, or "" if
// the user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "grapnel", "grapnel.toml")
}

// Validate checks every field that does not need the keymap parser.
// Chord specs are checked by Keymaps.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQueueSize, c.QueueSize)
	}

	if c.Watchdog.Enabled {
		if _, err := c.WatchdogWindow(); err != nil {
			return err
		}
	}

	if _, err := c.leaderMods(); err != nil {
		return err
	}

	return nil
}

// WatchdogWindow parses the watchdog window duration.
func (c *Config) WatchdogWindow() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watchdog.Window)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidWindow, c.Watchdog.Window, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, c.Watchdog.Window)
	}
	return d, nil
}

// leaderMods parses the leader spec into a modifier set. Every name in
// the spec must be a modifier key.
func (c *Config) leaderMods() (key.Modifier, error) {
	var mods key.Modifier
	if c.Leader == "" {
		return mods, nil
	}
	chord, err := key.ParseChord(c.Leader + "+" + "Escape") // sentinel trigger
	if err != nil {
		return 0, fmt.Errorf("config: leader %q: %w", c.Leader, err)
	}
	return chord.Mods, nil
}

// Keymaps builds the active keymap set: the defaults with the user's
// bindings merged over them. Unparsable or conflicting chords surface
// here and fail startup.
func (c *Config) Keymaps() (*keymap.Set, error) {
	leader, err := c.leaderMods()
	if err != nil {
		return nil, err
	}

	global := keymap.DefaultGlobal().WithLeader(leader)
	mergeBindings(global, c.Bindings.Global)

	menu := keymap.DefaultMenu()
	mergeBindings(menu, c.Bindings.Menu)

	return keymap.NewSet(global, menu)
}

// mergeBindings overlays user bindings onto a default table. A user
// entry for a chord already bound replaces the default; an empty action
// removes it.
func mergeBindings(k *keymap.Keymap, user map[string]string) {
	for keys, action := range user {
		replaced := false
		for i := range k.Bindings {
			if equalSpec(k.Bindings[i].Keys, keys) {
				replaced = true
				if action == "" {
					k.Bindings = append(k.Bindings[:i], k.Bindings[i+1:]...)
				} else {
					k.Bindings[i].Action = action
				}
				break
			}
		}
		if !replaced && action != "" {
			k.Add(keys, action)
		}
	}
}

// equalSpec compares two chord specs by their parsed form, falling back
// to a string compare when either fails to parse. Parse failures are
// reported later by Keymaps.
func equalSpec(a, b string) bool {
	ca, errA := key.ParseChord(a)
	cb, errB := key.ParseChord(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return ca == cb
}
