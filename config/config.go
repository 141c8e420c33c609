// Package config provides configuration loading for ggwalk using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Display settings
type Display struct {
	Color        bool `toml:"color"`
	MinWidth     int  `toml:"minWidth"`     // lower bound on wrap width
	DefaultWidth int  `toml:"defaultWidth"` // width when stdout is not a terminal
}

// Opener settings for content delegated to external programs
type Opener struct {
	Command string `toml:"command"` // empty = platform default (xdg-open / open)
}

// Bookmarks settings
type Bookmarks struct {
	File string `toml:"file"` // default file for the save/read commands
}

// Config is the main configuration struct
type Config struct {
	Display   Display   `toml:"display"`
	Opener    Opener    `toml:"opener"`
	Bookmarks Bookmarks `toml:"bookmarks"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Display: Display{
			Color:        true,
			MinWidth:     40,
			DefaultWidth: 80,
		},
		Opener: Opener{
			Command: "",
		},
		Bookmarks: Bookmarks{
			File: "config.json",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ggwalk"), nil
}

// Path returns the path to the user's config file.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	user := &Config{}
	md, err := toml.DecodeFile(path, user)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return merge(cfg, user, md), nil
}

// merge layers user config on top of defaults. Booleans go through
// toml.MetaData so an explicit false is not mistaken for unset.
func merge(defaults, user *Config, md toml.MetaData) *Config {
	result := *defaults
	if md.IsDefined("display", "color") {
		result.Display.Color = user.Display.Color
	}
	if user.Display.MinWidth != 0 {
		result.Display.MinWidth = user.Display.MinWidth
	}
	if user.Display.DefaultWidth != 0 {
		result.Display.DefaultWidth = user.Display.DefaultWidth
	}
	if user.Opener.Command != "" {
		result.Opener.Command = user.Opener.Command
	}
	if user.Bookmarks.File != "" {
		result.Bookmarks.File = user.Bookmarks.File
	}
	return &result
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# ggwalk configuration
# Save to ~/.config/ggwalk/config.toml and customize
# Only include settings you want to change from defaults

[display]
color = true          # ANSI color output
minWidth = 40         # Lower bound on text wrap width
defaultWidth = 80     # Width used when stdout is not a terminal

[opener]
command = ""          # External opener (empty = xdg-open / open)

[bookmarks]
file = "config.json"  # Default file for the save/read commands
`
}
