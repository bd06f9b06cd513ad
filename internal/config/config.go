// Package config loads scorekeeper configuration from an HCL file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/scorekeeper/internal/game"
)

// Config holds everything tunable about the app. Every field is optional in
// the file; missing values fall back to defaults.
type Config struct {
	SavePath     string   `hcl:"save_path,optional"`
	RetentionCap int      `hcl:"retention_cap,optional"`
	PlayerCounts []int    `hcl:"player_counts,optional"`
	LogLevel     string   `hcl:"log_level,optional"`
	Palette      []string `hcl:"palette,optional"`
	Icons        []string `hcl:"icons,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		SavePath:     defaultSavePath(),
		RetentionCap: 20,
		PlayerCounts: []int{3, 4, 5, 6},
		LogLevel:     "info",
		Palette:      game.DefaultPalette,
		Icons:        game.DefaultIcons,
	}
}

func defaultSavePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "saves.json"
	}
	return filepath.Join(home, ".scorekeeper", "saves.json")
}

// Load reads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	def := Default()
	if cfg.SavePath == "" {
		cfg.SavePath = def.SavePath
	}
	if cfg.RetentionCap == 0 {
		cfg.RetentionCap = def.RetentionCap
	}
	if len(cfg.PlayerCounts) == 0 {
		cfg.PlayerCounts = def.PlayerCounts
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = def.Palette
	}
	if len(cfg.Icons) == 0 {
		cfg.Icons = def.Icons
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the game cannot work with.
func (c *Config) Validate() error {
	if c.RetentionCap < 1 {
		return fmt.Errorf("retention_cap must be at least 1, got %d", c.RetentionCap)
	}

	maxPlayers := len(c.Palette)
	if len(c.Icons) < maxPlayers {
		maxPlayers = len(c.Icons)
	}
	for _, n := range c.PlayerCounts {
		if n < 3 {
			return fmt.Errorf("player count %d is below the minimum of 3", n)
		}
		if n > maxPlayers {
			return fmt.Errorf("player count %d exceeds available colors/icons (%d)", n, maxPlayers)
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	if err := uniqueStrings("palette", c.Palette); err != nil {
		return err
	}
	return uniqueStrings("icons", c.Icons)
}

func uniqueStrings(field string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" {
			return fmt.Errorf("%s contains an empty entry", field)
		}
		if seen[v] {
			return fmt.Errorf("%s contains duplicate entry %q", field, v)
		}
		seen[v] = true
	}
	return nil
}
