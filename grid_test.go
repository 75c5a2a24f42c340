package main

import (
	"errors"
	"reflect"
	"sort"
	"testing"
)

func verticalXs(segs []Segment) []float64 {
	var xs []float64
	for _, s := range segs {
		if s.From.X == s.To.X {
			xs = append(xs, s.From.X)
		}
	}
	sort.Float64s(xs)
	return xs
}

func horizontalYs(segs []Segment) []float64 {
	var ys []float64
	for _, s := range segs {
		if s.From.Y == s.To.Y {
			ys = append(ys, s.From.Y)
		}
	}
	sort.Float64s(ys)
	return ys
}

func TestRenderGridScenario(t *testing.T) {
	spec := DefaultGridSpec()
	lines := RenderGrid(Rect{Left: -50, Top: -50, Right: 50, Bottom: 50}, spec)

	if got, want := verticalXs(lines.Fine), []float64{-40, -20, 20, 40}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected fine vertical lines at %v, got %v", want, got)
	}
	if got, want := verticalXs(lines.VeryCoarse), []float64{0}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected very-coarse vertical line at %v, got %v", want, got)
	}
	if got := verticalXs(lines.Coarse); len(got) != 0 {
		t.Errorf("expected no coarse vertical lines, got %v", got)
	}
}

func TestRenderGridTiers(t *testing.T) {
	spec := DefaultGridSpec()
	lines := RenderGrid(Rect{Left: 0, Top: -10, Right: 1000, Bottom: 10}, spec)

	if got, want := verticalXs(lines.VeryCoarse), []float64{0, 500, 1000}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected very-coarse at %v, got %v", want, got)
	}
	if got, want := verticalXs(lines.Coarse), []float64{100, 200, 300, 400, 600, 700, 800, 900}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected coarse at %v, got %v", want, got)
	}
	if got := len(verticalXs(lines.Fine)); got != 40 {
		t.Errorf("expected 40 fine vertical lines, got %d", got)
	}
	if got, want := horizontalYs(lines.VeryCoarse), []float64{0}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected very-coarse horizontal at %v, got %v", want, got)
	}
}

func TestRenderGridTiling(t *testing.T) {
	rects := []Rect{
		{Left: -50, Top: -50, Right: 50, Bottom: 50},
		{Left: 13.7, Top: -999.1, Right: 1234.5, Bottom: -3},
		{Left: -0.5, Top: 0.25, Right: 0.5, Bottom: 19.75},
		{Left: 40, Top: 40, Right: 60, Bottom: 60},
	}
	spec := DefaultGridSpec()
	unit := spec.CurrentUnit()

	for _, r := range rects {
		lines := RenderGrid(r, spec)
		var all []Segment
		for _, tier := range []GridTier{TierFine, TierCoarse, TierVeryCoarse} {
			all = append(all, lines.Tier(tier)...)
		}
		for _, s := range all {
			for _, p := range []Vec{s.From, s.To} {
				if p.X < r.Left || p.X > r.Right || p.Y < r.Top || p.Y > r.Bottom {
					t.Errorf("rect %v: segment %v leaves the rectangle", r, s)
				}
			}
		}

		xs := verticalXs(all)
		for i := 1; i < len(xs); i++ {
			if xs[i]-xs[i-1] != unit {
				t.Errorf("rect %v: expected spacing %v between %v and %v", r, unit, xs[i-1], xs[i])
			}
		}
		ys := horizontalYs(all)
		for i := 1; i < len(ys); i++ {
			if ys[i]-ys[i-1] != unit {
				t.Errorf("rect %v: expected spacing %v between %v and %v", r, unit, ys[i-1], ys[i])
			}
		}
	}
}

func TestRenderGridTierExclusive(t *testing.T) {
	spec := DefaultGridSpec()
	r := Rect{Left: -2000, Top: -2000, Right: 2000, Bottom: 2000}
	lines := RenderGrid(r, spec)

	seen := make(map[float64]GridTier)
	for _, tier := range []GridTier{TierFine, TierCoarse, TierVeryCoarse} {
		for _, x := range verticalXs(lines.Tier(tier)) {
			if prev, ok := seen[x]; ok {
				t.Errorf("x=%v classified as both %v and %v", x, prev, tier)
			}
			seen[x] = tier
		}
	}
	if len(seen) != 201 {
		t.Errorf("expected 201 vertical positions, got %d", len(seen))
	}
	for k := int64(-100); k <= 100; k++ {
		if _, ok := seen[float64(k)*spec.CurrentUnit()]; !ok {
			t.Errorf("expected a line at k=%d", k)
		}
	}
}

func TestRenderGridDegenerate(t *testing.T) {
	spec := DefaultGridSpec()
	for _, r := range []Rect{
		{},
		{Left: 10, Top: 0, Right: 10, Bottom: 100},
		{Left: 0, Top: 5, Right: 100, Bottom: 5},
		{Left: 50, Top: 50, Right: -50, Bottom: -50},
	} {
		if got := RenderGrid(r, spec); got.Len() != 0 {
			t.Errorf("rect %v: expected no lines, got %d", r, got.Len())
		}
	}
}

func TestRenderGridIsPure(t *testing.T) {
	spec := DefaultGridSpec()
	r := Rect{Left: -123, Top: -77, Right: 456, Bottom: 310}
	a := RenderGrid(r, spec)
	b := RenderGrid(r, spec)
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical output for identical input")
	}
}

func TestGridRescale(t *testing.T) {
	tests := []struct {
		level int
		unit  float64
	}{
		{0, 20},
		{5, 10},
		{10, 5},
		{-5, 40},
		{-10, 80},
	}
	for _, tt := range tests {
		spec := DefaultGridSpec()
		spec.Rescale(tt.level, 2)
		if spec.CurrentUnit() != tt.unit {
			t.Errorf("level %d: expected unit %v, got %v", tt.level, tt.unit, spec.CurrentUnit())
		}
		if spec.Width(TierVeryCoarse) != 1.5 {
			t.Errorf("level %d: expected very-coarse width 1.5, got %v", tt.level, spec.Width(TierVeryCoarse))
		}
	}

	spec := DefaultGridSpec()
	for level, want := range map[int]bool{0: true, 1: false, 4: false, 5: true, -5: true, -3: false} {
		if got := spec.IsBoundary(level); got != want {
			t.Errorf("level %d: expected boundary %v, got %v", level, want, got)
		}
	}
}

func TestNewGridSpecValidation(t *testing.T) {
	tests := []struct {
		base, coarse, super int
	}{
		{0, 5, 5},
		{-20, 5, 5},
		{20, 1, 5},
		{20, 5, 0},
	}
	for _, tt := range tests {
		if _, err := NewGridSpec(tt.base, tt.coarse, tt.super); !errors.Is(err, ErrInvalidGridSpec) {
			t.Errorf("%+v: expected ErrInvalidGridSpec, got %v", tt, err)
		}
	}
	if _, err := NewGridSpec(10, 4, 3); err != nil {
		t.Errorf("expected valid spec, got %v", err)
	}
}

func TestGridClassify(t *testing.T) {
	spec := DefaultGridSpec()
	tests := map[int64]GridTier{
		0:   TierVeryCoarse,
		25:  TierVeryCoarse,
		-50: TierVeryCoarse,
		5:   TierCoarse,
		-10: TierCoarse,
		1:   TierFine,
		-24: TierFine,
	}
	for k, want := range tests {
		if got := spec.Classify(k); got != want {
			t.Errorf("k=%d: expected %v, got %v", k, want, got)
		}
	}
}

func TestGridWidthUnknownTier(t *testing.T) {
	spec := DefaultGridSpec()
	spec.Rescale(0, 2)
	for _, tier := range []GridTier{-1, 3, 42} {
		if got := spec.Width(tier); got != spec.Width(TierFine) {
			t.Errorf("tier %d: expected the fine width %v, got %v", tier, spec.Width(TierFine), got)
		}
	}
}

func TestGridOverflows(t *testing.T) {
	spec := DefaultGridSpec()
	if spec.Overflows(Rect{Left: 0, Top: 0, Right: 1000, Bottom: 1000}) {
		t.Error("expected a 50-line span to fit")
	}
	wide := Rect{Left: 0, Top: 0, Right: 3_000_000, Bottom: 10}
	if !spec.Overflows(wide) {
		t.Error("expected a 150000-line span to overflow")
	}
	if xs := verticalXs(RenderGrid(wide, spec).Tier(TierFine)); len(xs) != 0 {
		t.Errorf("expected no vertical lines on the overflowing axis, got %d", len(xs))
	}
}
