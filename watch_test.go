package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func startWatcher(t *testing.T, path string) <-chan tea.Msg {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	msgs := make(chan tea.Msg, 16)
	send := func(msg tea.Msg) {
		select {
		case msgs <- msg:
		default:
		}
	}
	if err := watchConfig(ctx, path, send); err != nil {
		t.Fatalf("watchConfig: %v", err)
	}
	return msgs
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	msgs := startWatcher(t, path)

	writeFile(t, path, "[theme]\nbackground = \"#010203\"\n")

	select {
	case msg := <-msgs:
		reloaded, ok := msg.(configReloadedMsg)
		if !ok {
			t.Fatalf("expected configReloadedMsg, got %T", msg)
		}
		if reloaded.err != nil {
			t.Fatalf("expected a clean reload, got %v", reloaded.err)
		}
		if reloaded.config.Theme.Background != "#010203" {
			t.Errorf("expected background #010203, got %s", reloaded.config.Theme.Background)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected a reload after writing the config")
	}
}

func TestWatchConfigIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	msgs := startWatcher(t, filepath.Join(dir, "config.toml"))

	writeFile(t, filepath.Join(dir, "other.toml"), "[theme]\nbackground = \"#010203\"\n")

	select {
	case msg := <-msgs:
		t.Errorf("expected no reload for another file, got %#v", msg)
	case <-time.After(4 * configReloadDelay):
	}
}

func TestWatchConfigMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.toml")
	err := watchConfig(context.Background(), path, func(tea.Msg) {})
	if !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
