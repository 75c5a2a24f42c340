package main

// panKeyEvent turns a direction key into a keyboard pan. Moving the view right
// shifts the world left, so the delta is the opposite of the key's direction.
func panKeyEvent(key string) (KeyEvent, bool) {
	step := panStepCells * getMoveSpeed(key)
	var d Vec
	switch key {
	case "h", "left", "H", "shift+left":
		d = Vec{step, 0}
	case "l", "right", "L", "shift+right":
		d = Vec{-step, 0}
	case "k", "up", "K", "shift+up":
		d = Vec{0, step}
	case "j", "down", "J", "shift+down":
		d = Vec{0, -step}
	default:
		return KeyEvent{}, false
	}
	return KeyEvent{Action: ActionPan, Delta: d}, true
}

func getMoveSpeed(key string) float64 {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// canvasKeyEvent maps the canvas' own key bindings.
func canvasKeyEvent(key string) (KeyEvent, bool) {
	switch key {
	case "x", "delete", "backspace":
		return KeyEvent{Action: ActionDelete}, true
	case "]":
		return KeyEvent{Action: ActionRaise}, true
	case "[":
		return KeyEvent{Action: ActionLower}, true
	case "+", "=":
		return KeyEvent{Action: ActionZoomIn}, true
	case "-":
		return KeyEvent{Action: ActionZoomOut}, true
	case "0":
		return KeyEvent{Action: ActionResetView}, true
	case "f":
		return KeyEvent{Action: ActionFitAll}, true
	}
	return panKeyEvent(key)
}
