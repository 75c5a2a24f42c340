package main

// PointerEvent is a pointer press, move or release at a screen position.
type PointerEvent struct {
	Button Button
	Phase  Phase
	Pos    Vec
}

// KeyEvent is a keyboard action already resolved from the host's key map.
// Delta is only used by ActionPan and is in screen units.
type KeyEvent struct {
	Action KeyAction
	Delta  Vec
}

// NodeObserver is told about nodes entering and leaving a canvas.
type NodeObserver interface {
	NodeAdded(n *NodeItem)
	NodeRemoved(id string)
}

// statusSink holds the coordinate text the canvas reports. The model is
// copied on every update, so it keeps a pointer to the sink.
type statusSink struct {
	coords string
}

func (s *statusSink) set(text string) { s.coords = text }

type model struct {
	width          int
	height         int
	fitted         bool
	canvas         *Canvas
	registry       *GraphRegistry
	config         *Config
	mode           Mode
	help           bool
	helpScroll     int
	fileOp         FileOperation
	filename       string
	confirmAction  ConfirmAction
	cursor         Vec
	status         *statusSink
	errorMessage   string
	successMessage string
	painter        *TermPainter
}
