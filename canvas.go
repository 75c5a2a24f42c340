package main

import (
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/google/uuid"
)

// Canvas owns the camera, the grid spec and the node cards, and turns pointer
// and key events into camera motion, selection and node edits. Every mutation
// requests a redraw. It is not safe for concurrent use; the host event loop is
// its only caller.
type Canvas struct {
	camera *Camera
	grid   GridSpec
	style  NodeStyle
	theme  Theme

	nodes     map[string]*NodeItem
	order     []string
	nextSeq   uint64
	selection map[string]bool

	state      InteractionState
	dragAnchor Vec
	viewport   Size
	visible    Rect
	overflow   bool

	newID     func() string
	coordSink func(string)
	redraw    func()
	redraws   int
	observers []NodeObserver
	logger    *log.Logger
}

type CanvasOption func(*Canvas)

func WithGridSpec(g GridSpec) CanvasOption {
	return func(c *Canvas) { c.grid = g }
}

func WithCameraConfig(cfg CameraConfig) CanvasOption {
	return func(c *Canvas) { c.camera = NewCamera(cfg) }
}

func WithNodeStyle(s NodeStyle) CanvasOption {
	return func(c *Canvas) { c.style = s.withDefaults() }
}

func WithTheme(t Theme) CanvasOption {
	return func(c *Canvas) { c.theme = t }
}

func WithIDGenerator(gen func() string) CanvasOption {
	return func(c *Canvas) { c.newID = gen }
}

// WithCoordinateSink receives the world coordinate under the pointer as "(x, y) ".
func WithCoordinateSink(sink func(string)) CanvasOption {
	return func(c *Canvas) { c.coordSink = sink }
}

func WithRedrawHook(fn func()) CanvasOption {
	return func(c *Canvas) { c.redraw = fn }
}

func WithLogger(l *log.Logger) CanvasOption {
	return func(c *Canvas) { c.logger = l }
}

func WithObserver(o NodeObserver) CanvasOption {
	return func(c *Canvas) { c.observers = append(c.observers, o) }
}

func NewCanvas(opts ...CanvasOption) (*Canvas, error) {
	c := &Canvas{
		camera:    NewCamera(CameraConfig{}),
		grid:      DefaultGridSpec(),
		style:     DefaultNodeStyle(),
		theme:     DefaultTheme(),
		nodes:     make(map[string]*NodeItem),
		selection: make(map[string]bool),
		newID:     uuid.NewString,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.grid.Validate(); err != nil {
		return nil, fmt.Errorf("new canvas: %w", err)
	}
	c.grid.Rescale(c.camera.ZoomLevel(), c.camera.Scale())
	c.updateVisible()
	return c, nil
}

func (c *Canvas) Camera() *Camera         { return c.camera }
func (c *Canvas) Grid() GridSpec          { return c.grid }
func (c *Canvas) Theme() Theme            { return c.theme }
func (c *Canvas) State() InteractionState { return c.state }
func (c *Canvas) Viewport() Size          { return c.viewport }
func (c *Canvas) VisibleRect() Rect       { return c.visible }
func (c *Canvas) RedrawCount() int        { return c.redraws }
func (c *Canvas) Len() int                { return len(c.order) }

func (c *Canvas) AddObserver(o NodeObserver) {
	c.observers = append(c.observers, o)
}

func (c *Canvas) SetTheme(t Theme) {
	c.theme = t
	c.requestRedraw()
}

func (c *Canvas) requestRedraw() {
	c.redraws++
	if c.redraw != nil {
		c.redraw()
	}
}

func (c *Canvas) updateVisible() {
	c.visible = c.camera.VisibleRect(c.viewport)
	overflow := c.grid.Overflows(c.visible)
	if overflow && !c.overflow {
		c.logger.Printf("canvas: grid too dense at unit %g for %v, not drawing grid lines", c.grid.CurrentUnit(), c.visible)
	}
	c.overflow = overflow
}

// Node returns the node with the given id.
func (c *Canvas) Node(id string) (*NodeItem, bool) {
	n, ok := c.nodes[id]
	return n, ok
}

// Nodes returns the nodes in paint order: ascending z-order, ties in insertion order.
func (c *Canvas) Nodes() []*NodeItem {
	out := make([]*NodeItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.nodes[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].zOrder < out[j].zOrder
	})
	return out
}

// Selection returns the selected ids in insertion order.
func (c *Canvas) Selection() []string {
	var ids []string
	for _, id := range c.order {
		if c.selection[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *Canvas) nextZOrder() int {
	top := 0
	for _, n := range c.nodes {
		if n.zOrder > top {
			top = n.zOrder
		}
	}
	return top + 1
}

// AddNode places a new node with its top-left corner at world and returns its
// id. An empty title takes the style's default title.
func (c *Canvas) AddNode(world Vec, title string) string {
	if !world.IsFinite() {
		c.logger.Printf("canvas: rejected node at non-finite position %v", world)
		return ""
	}
	id := c.newID()
	for id == "" || c.nodes[id] != nil {
		id = uuid.NewString()
	}
	c.insert(id, world, title)
	return id
}

// AddNodeWithID is AddNode with a caller-chosen id. It reports false if the id
// is empty or already taken.
func (c *Canvas) AddNodeWithID(id string, world Vec, title string) bool {
	if id == "" || c.nodes[id] != nil || !world.IsFinite() {
		return false
	}
	c.insert(id, world, title)
	return true
}

func (c *Canvas) insert(id string, world Vec, title string) {
	if title == "" {
		title = c.style.DefaultTitle
	}
	n := &NodeItem{
		id:       id,
		title:    title,
		position: world,
		style:    c.style,
		zOrder:   c.nextZOrder(),
		seq:      c.nextSeq,
	}
	c.nextSeq++
	c.nodes[id] = n
	c.order = append(c.order, id)
	c.logger.Printf("canvas: added node %s %q at (%.1f, %.1f) z=%d", id, title, world.X, world.Y, n.zOrder)

	for _, o := range c.observers {
		o.NodeAdded(n)
	}
	c.requestRedraw()
}

// RemoveNode deletes a node. Unknown ids are ignored.
func (c *Canvas) RemoveNode(id string) {
	if c.nodes[id] == nil {
		return
	}
	delete(c.nodes, id)
	delete(c.selection, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.logger.Printf("canvas: removed node %s", id)

	for _, o := range c.observers {
		o.NodeRemoved(id)
	}
	c.requestRedraw()
}

// SetSelection replaces the selection. Unknown ids are dropped.
func (c *Canvas) SetSelection(ids []string) {
	for id := range c.selection {
		c.nodes[id].selected = false
	}
	c.selection = make(map[string]bool, len(ids))
	for _, id := range ids {
		if n := c.nodes[id]; n != nil {
			n.selected = true
			c.selection[id] = true
		}
	}
	c.requestRedraw()
}

func (c *Canvas) DeleteSelection() {
	for _, id := range c.Selection() {
		c.RemoveNode(id)
	}
	c.selection = make(map[string]bool)
	c.requestRedraw()
}

func (c *Canvas) Raise(id string) { c.shiftZ(id, 1) }
func (c *Canvas) Lower(id string) { c.shiftZ(id, -1) }

func (c *Canvas) shiftZ(id string, d int) {
	n := c.nodes[id]
	if n == nil {
		return
	}
	n.zOrder += d
	c.requestRedraw()
}

func (c *Canvas) RaiseSelection() {
	for _, id := range c.Selection() {
		c.nodes[id].zOrder++
	}
	c.requestRedraw()
}

func (c *Canvas) LowerSelection() {
	for _, id := range c.Selection() {
		c.nodes[id].zOrder--
	}
	c.requestRedraw()
}

// Pan shifts the camera by a world-space delta.
func (c *Canvas) Pan(delta Vec) {
	if !c.camera.Pan(delta) {
		c.logger.Printf("canvas: rejected pan %v", delta)
		return
	}
	c.updateVisible()
	c.requestRedraw()
}

// Zoom steps the camera in (+1) or out (-1) around a screen anchor. The grid
// unit and stroke widths are only recomputed when the zoom level lands on a
// multiple of the coarse multiplier.
func (c *Canvas) Zoom(direction int, anchor Vec) bool {
	if !c.camera.Zoom(direction, anchor) {
		c.logger.Printf("canvas: rejected zoom %d at %v (level %d)", direction, anchor, c.camera.ZoomLevel())
		return false
	}
	if level := c.camera.ZoomLevel(); c.grid.IsBoundary(level) {
		c.grid.Rescale(level, c.camera.Scale())
		c.logger.Printf("canvas: grid rescaled at zoom level %d, unit %g", level, c.grid.CurrentUnit())
	}
	c.updateVisible()
	c.requestRedraw()
	return true
}

func (c *Canvas) ResetView() {
	c.camera.Reset()
	c.grid.Rescale(0, c.camera.Scale())
	c.updateVisible()
	c.requestRedraw()
}

// FitAll zooms and pans so every node is visible. With no nodes it resets the view.
func (c *Canvas) FitAll() {
	if len(c.order) == 0 {
		c.ResetView()
		return
	}
	bounds := c.nodes[c.order[0]].Bounds()
	for _, id := range c.order[1:] {
		bounds = bounds.Union(c.nodes[id].Bounds())
	}
	if !c.camera.FitRect(bounds, c.viewport, fitPadding) {
		return
	}
	c.grid.Rescale(c.camera.ZoomLevel(), c.camera.Scale())
	c.updateVisible()
	c.requestRedraw()
}

func (c *Canvas) OnViewportResize(size Size) {
	c.viewport = Size{Width: max(size.Width, 0), Height: max(size.Height, 0)}
	c.updateVisible()
	c.requestRedraw()
}

// HitTest returns the topmost node under a screen position.
func (c *Canvas) HitTest(screen Vec) (*NodeItem, bool) {
	world := c.camera.ScreenToWorld(screen)
	nodes := c.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Contains(world) {
			return nodes[i], true
		}
	}
	return nil, false
}

func (c *Canvas) reportCoordinate(screen Vec) {
	if c.coordSink == nil {
		return
	}
	w := c.camera.ScreenToWorld(screen)
	c.coordSink(fmt.Sprintf("(%d, %d) ", int(w.X), int(w.Y)))
}

// OnPointerEvent runs the interaction state machine. Events with no matching
// transition are ignored.
func (c *Canvas) OnPointerEvent(ev PointerEvent) {
	if !ev.Pos.IsFinite() {
		return
	}
	if ev.Phase == PhaseMove {
		c.reportCoordinate(ev.Pos)
	}

	switch ev.Button {
	case ButtonAuxiliary:
		switch {
		case ev.Phase == PhasePress:
			c.state = StatePanning
			c.dragAnchor = ev.Pos
			c.camera.BeginPan(ev.Pos)
		case ev.Phase == PhaseMove && c.state == StatePanning:
			c.camera.PanTo(ev.Pos)
			c.dragAnchor = ev.Pos
			c.updateVisible()
			c.requestRedraw()
		case ev.Phase == PhaseRelease && c.state == StatePanning:
			c.camera.EndPan()
			c.state = StateIdle
		}

	case ButtonPrimary:
		switch {
		case ev.Phase == PhasePress && c.state == StateIdle:
			c.pressPrimary(ev.Pos)
		case ev.Phase == PhaseMove && c.state == StateDraggingSelection:
			c.dragSelection(ev.Pos)
		case ev.Phase == PhaseRelease && c.state == StateDraggingSelection:
			c.state = StateIdle
		}

	case ButtonSecondary:
		if ev.Phase == PhasePress {
			c.AddNode(c.camera.ScreenToWorld(ev.Pos), "")
		}

	case ButtonWheelUp, ButtonWheelDown:
		if ev.Phase == PhasePress {
			dir := 1
			if ev.Button == ButtonWheelDown {
				dir = -1
			}
			c.Zoom(dir, ev.Pos)
		}
	}
}

func (c *Canvas) pressPrimary(pos Vec) {
	hit, ok := c.HitTest(pos)
	if !ok {
		c.SetSelection(nil)
		return
	}
	c.SetSelection([]string{hit.id})
	c.dragAnchor = pos
	c.state = StateDraggingSelection
}

func (c *Canvas) dragSelection(pos Vec) {
	delta := c.camera.ScreenToWorld(pos).Sub(c.camera.ScreenToWorld(c.dragAnchor))
	for id := range c.selection {
		n := c.nodes[id]
		n.position = n.position.Add(delta)
	}
	c.dragAnchor = pos
	c.requestRedraw()
}

func (c *Canvas) OnKeyEvent(ev KeyEvent) {
	switch ev.Action {
	case ActionDelete:
		c.DeleteSelection()
	case ActionRaise:
		c.RaiseSelection()
	case ActionLower:
		c.LowerSelection()
	case ActionZoomIn, ActionZoomOut:
		dir := 1
		if ev.Action == ActionZoomOut {
			dir = -1
		}
		c.Zoom(dir, Vec{float64(c.viewport.Width) / 2, float64(c.viewport.Height) / 2})
	case ActionResetView:
		c.ResetView()
	case ActionFitAll:
		c.FitAll()
	case ActionPan:
		c.Pan(ev.Delta.Scale(1 / c.camera.Scale()))
	}
}

// NodeFrame is the display list of one node.
type NodeFrame struct {
	ID         string
	Primitives []Primitive
}

// Frame is everything a painter needs for one redraw. It is a pure function of
// canvas state.
type Frame struct {
	Viewport   Size
	Visible    Rect
	Scale      float64
	Pan        Vec
	Background string
	Grid       GridLines
	GridColors [3]string
	GridWidths [3]float64
	Nodes      []NodeFrame
}

// ToScreen maps a world point into the frame's screen space.
func (f Frame) ToScreen(p Vec) Vec {
	return Vec{(p.X + f.Pan.X) * f.Scale, (p.Y + f.Pan.Y) * f.Scale}
}

func (c *Canvas) Frame() Frame {
	f := Frame{
		Viewport:   c.viewport,
		Visible:    c.visible,
		Scale:      c.camera.Scale(),
		Pan:        c.camera.PanOffset(),
		Background: c.theme.Background,
		Grid:       RenderGrid(c.visible, c.grid),
	}
	for _, t := range []GridTier{TierFine, TierCoarse, TierVeryCoarse} {
		f.GridColors[t] = c.theme.GridColor(t)
		f.GridWidths[t] = c.grid.Width(t)
	}
	for _, n := range c.Nodes() {
		if !n.Bounds().Intersects(c.visible) {
			continue
		}
		f.Nodes = append(f.Nodes, NodeFrame{ID: n.id, Primitives: n.Paint(c.theme)})
	}
	return f
}
