package main

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0c0c0"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87d787"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffa637"))
)

var helpLines = []string{
	"LOD Canvas Help",
	"===============",
	"",
	"Mouse:",
	"------",
	"  Left click       Select the node under the pointer, empty space clears",
	"  Left drag        Move the selected node",
	"  Middle drag      Pan the view",
	"  Right click      Create a node at the pointer",
	"  Wheel            Zoom in/out around the pointer",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Pan the view",
	"  Shift+h/j/k/l    Pan 2x faster",
	"  + / =            Zoom in",
	"  -                Zoom out",
	"  0                Reset the view",
	"  f                Fit all nodes",
	"",
	"Nodes:",
	"------",
	"  n                Create a node at the pointer",
	"  p                Create a node titled from the clipboard",
	"  x/Delete         Delete the selection",
	"  ]                Raise the selection",
	"  [                Lower the selection",
	"  a                Select all nodes",
	"  Esc              Clear the selection",
	"",
	"Other:",
	"------",
	"  y                Copy the pointer coordinate",
	"  e                Export as PNG image",
	"  t                Export as text",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func newModel(cfg *Config, startNode bool, logger *log.Logger) (model, error) {
	status := &statusSink{}
	canvas, err := NewCanvas(
		WithGridSpec(cfg.Grid),
		WithCameraConfig(cfg.Camera),
		WithNodeStyle(cfg.Node),
		WithTheme(cfg.Theme),
		WithCoordinateSink(status.set),
		WithLogger(logger),
	)
	if err != nil {
		return model{}, err
	}
	registry := NewGraphRegistry()
	NewGraphBridge(canvas, registry, nil)
	if startNode {
		canvas.AddNode(Vec{}, "")
	}
	return model{
		canvas:   canvas,
		registry: registry,
		config:   cfg,
		status:   status,
		painter:  NewTermPainter(),
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas.OnViewportResize(Size{Width: msg.Width, Height: max(msg.Height-statusLines, 0)})
		// A node is far larger than a terminal cell, so the first real size
		// frames whatever is already on the canvas.
		if !m.fitted && msg.Width > 0 && msg.Height > statusLines {
			m.fitted = true
			if m.canvas.Len() > 0 {
				m.canvas.FitAll()
			}
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case configReloadedMsg:
		m.applyConfigReload(msg)
		return m, nil

	case tea.KeyMsg:
		if m.help {
			return m.updateHelp(msg)
		}
		switch m.mode {
		case ModeFileInput:
			return m.updateFileInput(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

// pointerEvent converts a terminal mouse report. Positions are taken at the
// cell centre. Motion and release reports that do not name a button are
// attributed to the drag in progress.
func pointerEvent(msg tea.MouseMsg, state InteractionState) (PointerEvent, bool) {
	ev := PointerEvent{Pos: Vec{float64(msg.X) + 0.5, float64(msg.Y) + 0.5}}
	switch msg.Action {
	case tea.MouseActionPress:
		ev.Phase = PhasePress
	case tea.MouseActionMotion:
		ev.Phase = PhaseMove
	case tea.MouseActionRelease:
		ev.Phase = PhaseRelease
	default:
		return ev, false
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = ButtonPrimary
	case tea.MouseButtonRight:
		ev.Button = ButtonSecondary
	case tea.MouseButtonMiddle:
		ev.Button = ButtonAuxiliary
	case tea.MouseButtonWheelUp:
		ev.Button = ButtonWheelUp
	case tea.MouseButtonWheelDown:
		ev.Button = ButtonWheelDown
	case tea.MouseButtonNone:
		switch state {
		case StatePanning:
			ev.Button = ButtonAuxiliary
		case StateDraggingSelection:
			ev.Button = ButtonPrimary
		}
	default:
		return ev, false
	}
	return ev, true
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	m.cursor = Vec{float64(msg.X) + 0.5, float64(msg.Y) + 0.5}
	if m.help || m.mode != ModeNormal {
		return
	}
	ev, ok := pointerEvent(msg, m.canvas.State())
	if !ok {
		return
	}
	// Presses on the status line are not canvas input.
	if ev.Phase == PhasePress && msg.Y >= m.canvas.Viewport().Height {
		return
	}
	m.canvas.OnPointerEvent(ev)
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		m.canvas.SetSelection(nil)
		m.errorMessage = ""
		m.successMessage = ""
		return m, nil
	}

	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		if !m.config.Confirmations {
			return m, tea.Quit
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
		return m, nil

	case "a":
		var ids []string
		for _, n := range m.canvas.Nodes() {
			ids = append(ids, n.ID())
		}
		m.canvas.SetSelection(ids)
		return m, nil

	case "?":
		m.help = true
		m.helpScroll = 0
		return m, nil

	case "n":
		m.canvas.AddNode(m.canvas.Camera().ScreenToWorld(m.cursor), "")
		return m, nil

	case "p":
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = "clipboard: " + err.Error()
			return m, nil
		}
		m.canvas.AddNode(m.canvas.Camera().ScreenToWorld(m.cursor), titleFromClipboard(text))
		return m, nil

	case "y":
		w := m.canvas.Camera().ScreenToWorld(m.cursor)
		coords := fmt.Sprintf("%d, %d", int(w.X), int(w.Y))
		if err := copyToClipboard(coords); err != nil {
			m.errorMessage = "clipboard: " + err.Error()
			return m, nil
		}
		m.errorMessage = ""
		m.successMessage = "Copied (" + coords + ")"
		return m, nil

	case "e", "t":
		m.mode = ModeFileInput
		m.fileOp = FileOpSavePNG
		if key == "t" {
			m.fileOp = FileOpSaveVisualTXT
		}
		m.filename = ""
		m.errorMessage = ""
		m.successMessage = ""
		return m, nil
	}

	ev, ok := canvasKeyEvent(key)
	if !ok {
		return m, nil
	}
	if ev.Action == ActionDelete && m.config.Confirmations && len(m.canvas.Selection()) > 1 {
		m.mode = ModeConfirm
		m.confirmAction = ConfirmDeleteSelection
		return m, nil
	}
	m.canvas.OnKeyEvent(ev)
	return m, nil
}

func (m model) updateFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return m, nil

	case tea.KeyEnter:
		var path string
		var err error
		switch m.fileOp {
		case FileOpSavePNG:
			path, err = m.exportPNG(m.filename)
		case FileOpSaveVisualTXT:
			path, err = m.exportVisualTXT(m.filename)
		}
		if err != nil {
			log.Printf("export failed: %v", err)
			m.errorMessage = err.Error()
			return m, nil
		}
		log.Printf("exported %s", path)
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		m.successMessage = "Exported to " + path
		return m, nil

	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.filename += " "
		return m, nil

	case tea.KeyRunes:
		m.filename += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeleteSelection:
			m.canvas.OnKeyEvent(KeyEvent{Action: ActionDelete})
		}
	}
	return m, nil
}

func (m model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	var result strings.Builder
	for _, line := range m.painter.RenderLines(m.canvas.Frame()) {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) statusLine() string {
	var line string
	switch m.mode {
	case ModeFileInput:
		op := "Export PNG"
		if m.fileOp == FileOpSaveVisualTXT {
			op = "Export text"
		}
		line = promptStyle.Render(fmt.Sprintf("Mode: FILE | %s filename: %s", op, m.filename)) +
			statusStyle.Render(" | Enter=confirm, Esc=cancel")
		if m.errorMessage != "" {
			line += errorStyle.Render(" | ERROR: " + m.errorMessage)
		}

	case ModeConfirm:
		message := "Quit? (y/n)"
		if m.confirmAction == ConfirmDeleteSelection {
			message = fmt.Sprintf("Delete %d nodes? (y/n)", len(m.canvas.Selection()))
		}
		line = promptStyle.Render("Mode: CONFIRM | " + message)

	default:
		cam := m.canvas.Camera()
		status := fmt.Sprintf("Mode: %s | %sZoom: %d | Grid: %g | Nodes: %d",
			m.modeString(), m.status.coords, cam.ZoomLevel(), m.canvas.Grid().CurrentUnit(), m.canvas.Len())
		if st := m.canvas.State(); st != StateIdle {
			status += " | " + strings.ToUpper(st.String())
		}
		line = statusStyle.Render(status)
		switch {
		case m.errorMessage != "":
			line += errorStyle.Render(" | ERROR: " + m.errorMessage)
		case m.successMessage != "":
			line += successStyle.Render(" | " + m.successMessage)
		default:
			line += statusStyle.Render(" | ? for help | q to quit")
		}
	}
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	start := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	end := min(start+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[start:end], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		start+1, end, len(helpLines))
	return result
}
