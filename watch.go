package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const configReloadDelay = 200 * time.Millisecond

// configReloadedMsg carries a freshly loaded config into the event loop.
type configReloadedMsg struct {
	config *Config
	err    error
}

// watchConfig reloads path whenever it is written and hands the result to
// send. Editors often write a file several times per save, so reloads are
// debounced. The directory is watched rather than the file so that
// rename-over-save editors keep working.
func watchConfig(ctx context.Context, path string, send func(tea.Msg)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if name, _ := filepath.Abs(event.Name); name != absPath {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(configReloadDelay, func() {
					cfg, err := LoadConfig(absPath)
					log.Printf("config watcher: reloaded %q (err=%v)", absPath, err)
					send(configReloadedMsg{config: cfg, err: err})
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watcher: error: %v", err)
			}
		}
	}()

	log.Printf("config watcher: watching %q", absPath)
	return nil
}

// applyConfigReload takes the parts of a reloaded config that can change
// while a canvas is open: the theme and the save directory.
func (m *model) applyConfigReload(msg configReloadedMsg) {
	if msg.err != nil {
		m.errorMessage = "config: " + msg.err.Error()
		return
	}
	m.config.Theme = msg.config.Theme
	m.config.SaveDirectory = msg.config.SaveDirectory
	m.canvas.SetTheme(msg.config.Theme)
	m.errorMessage = ""
	m.successMessage = "Config reloaded"
}
