package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const debugLogFile = "lodcanvas-debug.log"

var (
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	subtle = color.New(color.FgHiBlack)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		debug       bool
		noStartNode bool
	)

	cmd := &cobra.Command{
		Use:           "lodcanvas",
		Short:         "A zoomable node canvas for the terminal",
		Long:          "lodcanvas is a pannable, zoomable canvas of node cards over a level-of-detail grid.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCanvas(configPath, debug, !noStartNode)
			if err != nil {
				bad.Fprintf(cmd.ErrOrStderr(), "lodcanvas: %v\n", err)
			}
			return err
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath(), "path to the TOML config file")
	cmd.Flags().BoolVar(&debug, "debug", false, "write a debug log to "+debugLogFile)
	cmd.Flags().BoolVar(&noStartNode, "no-start-node", false, "start with an empty canvas")

	cmd.AddCommand(newExportCmd(&configPath))
	return cmd
}

func runCanvas(configPath string, debug, startNode bool) error {
	logger := log.New(io.Discard, "", 0)
	log.SetOutput(io.Discard)
	if debug {
		f, err := tea.LogToFile(debugLogFile, "lodcanvas")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	cfg, cfgErr := LoadConfig(configPath)
	if cfgErr != nil {
		log.Printf("config: %v, using defaults", cfgErr)
	}
	m, err := newModel(cfg, startNode && cfg.StartNode, logger)
	if err != nil {
		return err
	}
	if cfgErr != nil {
		m.errorMessage = "config: " + cfgErr.Error()
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := watchConfig(ctx, configPath, p.Send); err != nil {
		log.Printf("config watcher: %v", err)
	}

	_, err = p.Run()
	return err
}

func newExportCmd(configPath *string) *cobra.Command {
	var (
		width  int
		height int
		zoom   int
		panX   float64
		panY   float64
		nodes  []string
	)

	cmd := &cobra.Command{
		Use:   "export <file.png>",
		Short: "Render a canvas to a PNG without opening the terminal UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fail := func(err error) error {
				bad.Fprintf(cmd.ErrOrStderr(), "  export failed: %v\n", err)
				return err
			}

			cfg, err := LoadConfig(*configPath)
			if err != nil {
				subtle.Fprintf(cmd.ErrOrStderr(), "  config: %v (using defaults)\n", err)
			}
			if width <= 0 {
				width = cfg.Export.Width
			}
			if height <= 0 {
				height = cfg.Export.Height
			}

			path, err := exportName(args[0], ".png")
			if err != nil {
				return fail(err)
			}
			c, err := buildExportCanvas(cfg, Size{Width: width, Height: height}, zoom, Vec{panX, panY}, nodes)
			if err != nil {
				return fail(err)
			}
			if err := ExportPNG(c, path, cfg.Export.PixelsPerUnit); err != nil {
				return fail(err)
			}

			good.Fprintf(cmd.OutOrStdout(), "  exported %s", path)
			subtle.Fprintf(cmd.OutOrStdout(), " (%dx%d, zoom %d, grid %g, %d nodes)\n",
				width, height, c.Camera().ZoomLevel(), c.Grid().CurrentUnit(), c.Len())
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "viewport width in screen units (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "viewport height in screen units (default from config)")
	cmd.Flags().IntVar(&zoom, "zoom", 0, "zoom level, positive zooms in")
	cmd.Flags().Float64Var(&panX, "pan-x", 0, "horizontal pan in world units")
	cmd.Flags().Float64Var(&panY, "pan-y", 0, "vertical pan in world units")
	cmd.Flags().StringArrayVar(&nodes, "node", nil, "add a node as x,y[,title] (repeatable)")
	return cmd
}

// buildExportCanvas sets up a canvas the way the interactive program would
// after the given pan, zoom steps at the viewport centre, and node creations.
func buildExportCanvas(cfg *Config, viewport Size, zoom int, pan Vec, nodes []string) (*Canvas, error) {
	c, err := NewCanvas(
		WithGridSpec(cfg.Grid),
		WithCameraConfig(cfg.Camera),
		WithNodeStyle(cfg.Node),
		WithTheme(cfg.Theme),
	)
	if err != nil {
		return nil, err
	}
	c.OnViewportResize(viewport)
	c.Pan(pan)

	dir := 1
	if zoom < 0 {
		dir = -1
	}
	center := Vec{float64(viewport.Width) / 2, float64(viewport.Height) / 2}
	for i := 0; i < zoom*dir; i++ {
		if !c.Zoom(dir, center) {
			return nil, fmt.Errorf("zoom level %d is outside [%d, %d]", zoom,
				c.Camera().Config().MinZoomLevel, c.Camera().Config().MaxZoomLevel)
		}
	}

	for _, spec := range nodes {
		at, title, err := parseNodeFlag(spec)
		if err != nil {
			return nil, err
		}
		c.AddNode(at, title)
	}
	return c, nil
}

// parseNodeFlag reads "x,y" or "x,y,title". The title may contain commas.
func parseNodeFlag(s string) (Vec, string, error) {
	parts := strings.SplitN(s, ",", 3)
	if len(parts) < 2 {
		return Vec{}, "", fmt.Errorf("node %q: want x,y[,title]", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Vec{}, "", fmt.Errorf("node %q: bad x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Vec{}, "", fmt.Errorf("node %q: bad y: %w", s, err)
	}
	at := Vec{x, y}
	if !at.IsFinite() {
		return Vec{}, "", fmt.Errorf("node %q: position must be finite", s)
	}
	var title string
	if len(parts) == 3 {
		title = strings.TrimSpace(parts[2])
	}
	return at, title, nil
}
