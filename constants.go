package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSavePNG FileOperation = iota
	FileOpSaveVisualTXT
)

type ConfirmAction int

const (
	ConfirmDeleteSelection ConfirmAction = iota
	ConfirmQuit
)

// InteractionState is the pointer drag mode of a Canvas.
type InteractionState int

const (
	StateIdle InteractionState = iota
	StatePanning
	StateDraggingSelection
)

func (s InteractionState) String() string {
	switch s {
	case StatePanning:
		return "panning"
	case StateDraggingSelection:
		return "dragging"
	}
	return "idle"
}

type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonAuxiliary
	ButtonWheelUp
	ButtonWheelDown
)

type Phase int

const (
	PhasePress Phase = iota
	PhaseMove
	PhaseRelease
)

type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionDelete
	ActionRaise
	ActionLower
	ActionZoomIn
	ActionZoomOut
	ActionResetView
	ActionFitAll
	ActionPan
)

const (
	fitPadding   = 2   // screen units kept free around FitAll
	panStepCells = 2.0 // keyboard pan distance per key press, in screen units
	pngCellSize  = 8.0 // pixels per terminal cell in image exports
	statusLines  = 1
)
