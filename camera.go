package main

import "math"

// CameraConfig holds the zoom parameters of a Camera. Zero fields take defaults.
type CameraConfig struct {
	BaseScale    float64 `toml:"base_scale"`
	ZoomFactor   float64 `toml:"zoom_factor"`
	MinZoomLevel int     `toml:"min_zoom_level"`
	MaxZoomLevel int     `toml:"max_zoom_level"`
}

const (
	defaultZoomFactor   = 1.25
	defaultMinZoomLevel = -40
	defaultMaxZoomLevel = 40
)

func (c CameraConfig) withDefaults() CameraConfig {
	d := CameraConfig{
		BaseScale:    1,
		ZoomFactor:   defaultZoomFactor,
		MinZoomLevel: defaultMinZoomLevel,
		MaxZoomLevel: defaultMaxZoomLevel,
	}
	if c.BaseScale > 0 && !math.IsInf(c.BaseScale, 0) {
		d.BaseScale = c.BaseScale
	}
	if c.ZoomFactor > 1 && !math.IsInf(c.ZoomFactor, 0) {
		d.ZoomFactor = c.ZoomFactor
	}
	if c.MinZoomLevel != 0 || c.MaxZoomLevel != 0 {
		if c.MinZoomLevel <= 0 && c.MaxZoomLevel >= 0 {
			d.MinZoomLevel = c.MinZoomLevel
			d.MaxZoomLevel = c.MaxZoomLevel
		}
	}
	return d
}

// Camera maps between screen and world space:
//
//	screen = (world + pan) * scale
//	world  = screen / scale - pan
//
// The pan offset is a world-space vector and the scale is uniform on both axes.
type Camera struct {
	cfg       CameraConfig
	scale     float64
	pan       Vec
	zoomLevel int

	panAnchor Vec
}

func NewCamera(cfg CameraConfig) *Camera {
	cfg = cfg.withDefaults()
	return &Camera{cfg: cfg, scale: cfg.BaseScale}
}

func (c *Camera) Scale() float64       { return c.scale }
func (c *Camera) PanOffset() Vec       { return c.pan }
func (c *Camera) ZoomLevel() int       { return c.zoomLevel }
func (c *Camera) Config() CameraConfig { return c.cfg }

func (c *Camera) ScreenToWorld(p Vec) Vec {
	return Vec{p.X/c.scale - c.pan.X, p.Y/c.scale - c.pan.Y}
}

func (c *Camera) WorldToScreen(p Vec) Vec {
	return Vec{(p.X + c.pan.X) * c.scale, (p.Y + c.pan.Y) * c.scale}
}

// VisibleRect returns the world rectangle covered by a viewport of the given size.
func (c *Camera) VisibleRect(viewport Size) Rect {
	tl := c.ScreenToWorld(Vec{})
	br := c.ScreenToWorld(Vec{float64(viewport.Width), float64(viewport.Height)})
	return Rect{Left: tl.X, Top: tl.Y, Right: br.X, Bottom: br.Y}
}

func (c *Camera) scaleAt(level int) float64 {
	return c.cfg.BaseScale * math.Pow(c.cfg.ZoomFactor, float64(level))
}

// Zoom performs one discrete zoom step (+1 in, -1 out) keeping the world point
// under anchor fixed on screen. It reports false and leaves the camera untouched
// when the request is rejected: a direction other than ±1, a non-finite anchor,
// a zoom level outside the configured range, or a degenerate resulting scale.
func (c *Camera) Zoom(direction int, anchor Vec) bool {
	if direction != 1 && direction != -1 {
		return false
	}
	if !anchor.IsFinite() {
		return false
	}
	level := c.zoomLevel + direction
	if level < c.cfg.MinZoomLevel || level > c.cfg.MaxZoomLevel {
		return false
	}
	scale := c.scaleAt(level)
	if !(scale > 0) || math.IsInf(scale, 0) {
		return false
	}

	before := c.ScreenToWorld(anchor)
	c.scale = scale
	c.zoomLevel = level
	after := c.ScreenToWorld(anchor)
	c.pan = c.pan.Add(after.Sub(before))
	return true
}

func (c *Camera) BeginPan(screen Vec) {
	c.panAnchor = screen
}

// PanTo moves the pan offset by the screen distance travelled since the last
// anchor, converted to world units.
func (c *Camera) PanTo(screen Vec) {
	delta := screen.Sub(c.panAnchor).Scale(1 / c.scale)
	c.pan = c.pan.Add(delta)
	c.panAnchor = screen
}

func (c *Camera) EndPan() {
	c.panAnchor = Vec{}
}

// Pan shifts the pan offset by a world-space delta.
func (c *Camera) Pan(delta Vec) bool {
	if !delta.IsFinite() {
		return false
	}
	c.pan = c.pan.Add(delta)
	return true
}

func (c *Camera) Reset() {
	c.zoomLevel = 0
	c.scale = c.cfg.BaseScale
	c.pan = Vec{}
	c.panAnchor = Vec{}
}

// FitRect picks the highest zoom level at which world (plus padding screen units
// on every side) fits in the viewport, and centres it.
func (c *Camera) FitRect(world Rect, viewport Size, padding float64) bool {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return false
	}
	availW := float64(viewport.Width) - 2*padding
	availH := float64(viewport.Height) - 2*padding
	if availW <= 0 || availH <= 0 {
		return false
	}

	level := c.cfg.MinZoomLevel
	for l := c.cfg.MaxZoomLevel; l >= c.cfg.MinZoomLevel; l-- {
		s := c.scaleAt(l)
		if world.Width()*s <= availW && world.Height()*s <= availH {
			level = l
			break
		}
	}

	c.zoomLevel = level
	c.scale = c.scaleAt(level)
	center := Vec{float64(viewport.Width) / 2, float64(viewport.Height) / 2}
	c.pan = center.Scale(1 / c.scale).Sub(world.Center())
	return true
}
