package main

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidGridSpec = errors.New("invalid grid spec")

type GridTier int

const (
	TierFine GridTier = iota
	TierCoarse
	TierVeryCoarse
)

func (t GridTier) String() string {
	switch t {
	case TierFine:
		return "fine"
	case TierCoarse:
		return "coarse"
	case TierVeryCoarse:
		return "very-coarse"
	}
	return fmt.Sprintf("GridTier(%d)", int(t))
}

// Screen-space stroke widths of the three tiers, in pixels.
var gridScreenWidths = [3]float64{1, 2, 3}

// maxGridLinesPerAxis bounds the work of one RenderGrid call.
const maxGridLinesPerAxis = 100_000

// GridSpec describes the reference grid. CurrentUnit is derived from BaseUnit
// and only changes in Rescale, which the canvas calls at LOD boundaries.
type GridSpec struct {
	BaseUnit         int `toml:"base_unit"`
	CoarseMultiplier int `toml:"coarse_multiplier"`
	SuperMultiplier  int `toml:"super_multiplier"`

	currentUnit float64
	widths      [3]float64
}

func DefaultGridSpec() GridSpec {
	g, _ := NewGridSpec(20, 5, 5)
	return g
}

func NewGridSpec(baseUnit, coarse, super int) (GridSpec, error) {
	if baseUnit <= 0 {
		return GridSpec{}, fmt.Errorf("%w: base unit %d must be positive", ErrInvalidGridSpec, baseUnit)
	}
	if coarse < 2 || super < 2 {
		return GridSpec{}, fmt.Errorf("%w: multipliers %d/%d must be at least 2", ErrInvalidGridSpec, coarse, super)
	}
	g := GridSpec{BaseUnit: baseUnit, CoarseMultiplier: coarse, SuperMultiplier: super}
	g.Rescale(0, 1)
	return g, nil
}

func (g GridSpec) Validate() error {
	_, err := NewGridSpec(g.BaseUnit, g.CoarseMultiplier, g.SuperMultiplier)
	return err
}

func (g GridSpec) CurrentUnit() float64 {
	if g.currentUnit == 0 {
		return float64(g.BaseUnit)
	}
	return g.currentUnit
}

// VeryCoarseStep is the very-coarse spacing counted in current units.
func (g GridSpec) VeryCoarseStep() int {
	return g.CoarseMultiplier * g.SuperMultiplier
}

// Width returns the world-space stroke width of a tier, fixed at the last rescale.
func (g GridSpec) Width(t GridTier) float64 {
	if t < TierFine || t > TierVeryCoarse {
		t = TierFine
	}
	if g.widths[t] == 0 {
		return gridScreenWidths[t]
	}
	return g.widths[t]
}

// IsBoundary reports whether zoomLevel is an LOD boundary.
func (g GridSpec) IsBoundary(zoomLevel int) bool {
	return zoomLevel%g.CoarseMultiplier == 0
}

// Rescale recomputes the unit for an LOD boundary level and sets stroke widths
// so they render at their screen width under scale. Levels between boundaries
// snap toward zero to the nearest boundary.
func (g *GridSpec) Rescale(zoomLevel int, scale float64) {
	step := zoomLevel / g.CoarseMultiplier
	g.currentUnit = float64(g.BaseUnit) * math.Pow(2, float64(-step))
	for i, w := range gridScreenWidths {
		g.widths[i] = w / scale
	}
}

// Classify returns the tier of the grid line with integer index k (position k*unit).
func (g GridSpec) Classify(k int64) GridTier {
	switch {
	case k%int64(g.VeryCoarseStep()) == 0:
		return TierVeryCoarse
	case k%int64(g.CoarseMultiplier) == 0:
		return TierCoarse
	default:
		return TierFine
	}
}

// Overflows reports whether either axis of visible spans more than
// maxGridLinesPerAxis lines, in which case RenderGrid draws nothing on it.
func (g GridSpec) Overflows(visible Rect) bool {
	unit := g.CurrentUnit()
	too := func(lo, hi float64) bool {
		return math.Floor(hi/unit)-math.Ceil(lo/unit) > maxGridLinesPerAxis
	}
	return too(visible.Left, visible.Right) || too(visible.Top, visible.Bottom)
}

// GridLines holds the segments of one grid render, split by tier.
type GridLines struct {
	Fine       []Segment
	Coarse     []Segment
	VeryCoarse []Segment
}

func (l GridLines) Tier(t GridTier) []Segment {
	switch t {
	case TierFine:
		return l.Fine
	case TierCoarse:
		return l.Coarse
	case TierVeryCoarse:
		return l.VeryCoarse
	}
	return nil
}

func (l GridLines) Len() int {
	return len(l.Fine) + len(l.Coarse) + len(l.VeryCoarse)
}

func (l *GridLines) add(t GridTier, s Segment) {
	switch t {
	case TierFine:
		l.Fine = append(l.Fine, s)
	case TierCoarse:
		l.Coarse = append(l.Coarse, s)
	case TierVeryCoarse:
		l.VeryCoarse = append(l.VeryCoarse, s)
	}
}

// gridIndexRange returns the first and last k with lo <= k*unit <= hi.
func gridIndexRange(lo, hi, unit float64) (int64, int64, bool) {
	first := math.Ceil(lo / unit)
	last := math.Floor(hi / unit)
	if math.IsNaN(first) || math.IsNaN(last) || math.IsInf(first, 0) || math.IsInf(last, 0) {
		return 0, 0, false
	}
	if last < first || last-first > maxGridLinesPerAxis {
		return 0, 0, false
	}
	return int64(first), int64(last), true
}

// RenderGrid returns the grid segments clipped to visible. It has no side
// effects; the same inputs always give the same output. A degenerate rectangle
// yields no lines.
func RenderGrid(visible Rect, spec GridSpec) GridLines {
	var lines GridLines
	unit := spec.CurrentUnit()
	if visible.Empty() || !(unit > 0) || spec.CoarseMultiplier < 1 || spec.SuperMultiplier < 1 {
		return lines
	}

	if first, last, ok := gridIndexRange(visible.Top, visible.Bottom, unit); ok {
		for k := first; k <= last; k++ {
			y := float64(k) * unit
			lines.add(spec.Classify(k), Segment{Vec{visible.Left, y}, Vec{visible.Right, y}})
		}
	}
	if first, last, ok := gridIndexRange(visible.Left, visible.Right, unit); ok {
		for k := first; k <= last; k++ {
			x := float64(k) * unit
			lines.add(spec.Classify(k), Segment{Vec{x, visible.Top}, Vec{x, visible.Bottom}})
		}
	}
	return lines
}
