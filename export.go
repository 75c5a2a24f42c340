package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNothingToExport = errors.New("nothing to export")
	ErrNoFilename      = errors.New("no filename given")
)

// exportName appends ext unless the name already carries it.
func exportName(name, ext string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNoFilename
	}
	if !strings.EqualFold(filepath.Ext(name), ext) {
		name += ext
	}
	return name, nil
}

// ExportPNG renders the canvas' current frame to path.
func ExportPNG(c *Canvas, path string, pixelsPerUnit float64) error {
	f := c.Frame()
	if f.Viewport.Width <= 0 || f.Viewport.Height <= 0 {
		return ErrNothingToExport
	}
	painter, err := NewImagePainter(pixelsPerUnit)
	if err != nil {
		return err
	}
	if err := painter.SavePNG(path, f); err != nil {
		return fmt.Errorf("export png %s: %w", path, err)
	}
	return nil
}

// ExportVisualTXT writes the canvas exactly as the terminal shows it, without colour.
func ExportVisualTXT(c *Canvas, path string) error {
	lines := RenderPlain(c.Frame())
	if len(lines) == 0 {
		return ErrNothingToExport
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(file, strings.TrimRight(line, " ")); err != nil {
			return fmt.Errorf("export txt %s: %w", path, err)
		}
	}
	return nil
}

func (m *model) exportPNG(name string) (string, error) {
	name, err := exportName(name, ".png")
	if err != nil {
		return "", err
	}
	path := m.config.GetSavePath(name)
	// One terminal cell becomes pngCellSize pixels.
	return path, ExportPNG(m.canvas, path, m.config.Export.PixelsPerUnit*pngCellSize)
}

func (m *model) exportVisualTXT(name string) (string, error) {
	name, err := exportName(name, ".txt")
	if err != nil {
		return "", err
	}
	path := m.config.GetSavePath(name)
	return path, ExportVisualTXT(m.canvas, path)
}
