package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error for a missing file, got %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `
save_directory = "`+filepath.ToSlash(dir)+`/out"
confirmations = false

[grid]
base_unit = 10
coarse_multiplier = 4
super_multiplier = 3

[camera]
zoom_factor = 1.5

[node]
width = 200
default_title = "Untitled"

[theme]
banner = "#123456"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Confirmations {
		t.Error("expected confirmations off")
	}
	if !cfg.StartNode {
		t.Error("expected start_node to keep its default")
	}
	if cfg.Grid.CurrentUnit() != 10 || cfg.Grid.VeryCoarseStep() != 12 {
		t.Errorf("expected unit 10 and very-coarse step 12, got %v and %d", cfg.Grid.CurrentUnit(), cfg.Grid.VeryCoarseStep())
	}
	if cfg.Camera.ZoomFactor != 1.5 || cfg.Camera.BaseScale != 1 {
		t.Errorf("expected zoom factor 1.5 and base scale 1, got %+v", cfg.Camera)
	}
	if cfg.Node.Width != 200 || cfg.Node.Height != 240 || cfg.Node.DefaultTitle != "Untitled" {
		t.Errorf("unexpected node style %+v", cfg.Node)
	}
	if cfg.Theme.Banner != "#123456" || cfg.Theme.Background != "#393939" {
		t.Errorf("unexpected theme %+v", cfg.Theme)
	}
	if want := filepath.Join(dir, "out"); cfg.SaveDirectory != want {
		t.Errorf("expected save directory %s, got %s", want, cfg.SaveDirectory)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	malformed := filepath.Join(dir, "bad.toml")
	writeFile(t, malformed, "confirmations = [oops")
	cfg, err := LoadConfig(malformed)
	if err == nil {
		t.Error("expected a parse error")
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("expected defaults alongside the parse error")
	}

	badGrid := filepath.Join(dir, "grid.toml")
	writeFile(t, badGrid, "[grid]\nbase_unit = 20\ncoarse_multiplier = 1\nsuper_multiplier = 5\n")
	cfg, err = LoadConfig(badGrid)
	if !errors.Is(err, ErrInvalidGridSpec) {
		t.Errorf("expected ErrInvalidGridSpec, got %v", err)
	}
	if cfg.Grid.CoarseMultiplier != 5 {
		t.Errorf("expected default grid, got %+v", cfg.Grid)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.SaveDirectory = filepath.Join(dir, "exports")
	cfg.Theme.SelectedBorder = "#00ff00"
	cfg.Export.PixelsPerUnit = 2
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestConfigDirHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got, want := DefaultConfigPath(), filepath.Join(dir, "lodcanvas", "config.toml"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestGetSavePath(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetSavePath("a.png"); got != "a.png" {
		t.Errorf("expected a bare name without a save directory, got %s", got)
	}

	cfg.SaveDirectory = filepath.Join(t.TempDir(), "out")
	if got, want := cfg.GetSavePath("a.png"), filepath.Join(cfg.SaveDirectory, "a.png"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if info, err := os.Stat(cfg.SaveDirectory); err != nil || !info.IsDir() {
		t.Errorf("expected save directory to be created, got %v", err)
	}
}
