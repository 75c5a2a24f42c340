package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	SaveDirectory string       `toml:"save_directory"`
	Confirmations bool         `toml:"confirmations"`
	StartNode     bool         `toml:"start_node"`
	Grid          GridSpec     `toml:"grid"`
	Camera        CameraConfig `toml:"camera"`
	Node          NodeStyle    `toml:"node"`
	Theme         Theme        `toml:"theme"`
	Export        ExportConfig `toml:"export"`
}

// ExportConfig sizes headless exports, in screen units.
type ExportConfig struct {
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	PixelsPerUnit float64 `toml:"pixels_per_unit"`
}

func DefaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Confirmations: true,
		StartNode:     true,
		Grid:          DefaultGridSpec(),
		Camera:        CameraConfig{}.withDefaults(),
		Node:          DefaultNodeStyle(),
		Theme:         DefaultTheme(),
		Export:        ExportConfig{Width: 1024, Height: 768, PixelsPerUnit: 1},
	}
}

// ConfigDir honours XDG_CONFIG_HOME and falls back to ~/.config.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "lodcanvas")
}

func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadConfig reads path over the defaults. A missing file is not an error; a
// malformed one returns the defaults together with the parse error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}

	loaded := DefaultConfig()
	if err := toml.Unmarshal(data, loaded); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := loaded.Grid.Validate(); err != nil {
		return config, fmt.Errorf("config %s: %w", path, err)
	}
	loaded.normalize()
	return loaded, nil
}

func (c *Config) normalize() {
	c.Grid, _ = NewGridSpec(c.Grid.BaseUnit, c.Grid.CoarseMultiplier, c.Grid.SuperMultiplier)
	c.Camera = c.Camera.withDefaults()
	c.Node = c.Node.withDefaults()
	c.Theme = c.Theme.withDefaults()
	if c.Export.Width <= 0 {
		c.Export.Width = 1024
	}
	if c.Export.Height <= 0 {
		c.Export.Height = 768
	}
	if !(c.Export.PixelsPerUnit > 0) {
		c.Export.PixelsPerUnit = 1
	}
	if strings.HasPrefix(c.SaveDirectory, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			c.SaveDirectory = filepath.Join(home, strings.TrimPrefix(c.SaveDirectory, "~"))
		}
	}
	if c.SaveDirectory != "" && !filepath.IsAbs(c.SaveDirectory) {
		if abs, err := filepath.Abs(c.SaveDirectory); err == nil {
			c.SaveDirectory = abs
		}
	}
}

func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// GetSavePath joins filename onto the save directory, creating it if needed.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0o755)
	return filepath.Join(c.SaveDirectory, filename)
}
