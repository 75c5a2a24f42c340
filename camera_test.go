package main

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func nearVec(a, b Vec) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera(CameraConfig{})
	cam.Pan(Vec{37.5, -12})
	cam.Zoom(1, Vec{10, 10})
	cam.Zoom(1, Vec{300, 2})
	cam.Zoom(1, Vec{-4, 80})

	points := []Vec{{0, 0}, {1, 1}, {512.25, 383.5}, {-100, 7}, {1e6, -1e6}}
	for _, p := range points {
		got := cam.WorldToScreen(cam.ScreenToWorld(p))
		if !nearVec(got, p) {
			t.Errorf("expected %v after round trip, got %v", p, got)
		}
	}
}

func TestCameraZoomKeepsAnchor(t *testing.T) {
	cam := NewCamera(CameraConfig{})
	anchor := Vec{123, 45}
	before := cam.ScreenToWorld(anchor)

	if !cam.Zoom(1, anchor) {
		t.Fatal("expected zoom in to succeed")
	}
	if got := cam.ScreenToWorld(anchor); !nearVec(got, before) {
		t.Errorf("expected world point %v under anchor, got %v", before, got)
	}
	if !near(cam.Scale(), 1.25) {
		t.Errorf("expected scale 1.25, got %v", cam.Scale())
	}
	if cam.ZoomLevel() != 1 {
		t.Errorf("expected zoom level 1, got %d", cam.ZoomLevel())
	}
}

func TestCameraZoomSymmetry(t *testing.T) {
	cam := NewCamera(CameraConfig{})
	cam.Pan(Vec{3, 4})
	anchor := Vec{200, 150}
	scale := cam.Scale()
	world := cam.ScreenToWorld(anchor)

	for i := 0; i < 7; i++ {
		cam.Zoom(1, anchor)
		cam.Zoom(-1, anchor)
	}
	if cam.Scale() != scale {
		t.Errorf("expected scale %v, got %v", scale, cam.Scale())
	}
	if got := cam.ScreenToWorld(anchor); !nearVec(got, world) {
		t.Errorf("expected world point %v, got %v", world, got)
	}
}

func TestCameraZoomRejects(t *testing.T) {
	tests := []struct {
		name      string
		direction int
		anchor    Vec
	}{
		{"zero direction", 0, Vec{}},
		{"double step", 2, Vec{}},
		{"nan anchor", 1, Vec{math.NaN(), 0}},
		{"inf anchor", -1, Vec{0, math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(CameraConfig{})
			if cam.Zoom(tt.direction, tt.anchor) {
				t.Fatal("expected zoom to be rejected")
			}
			if cam.Scale() != 1 || cam.ZoomLevel() != 0 || cam.PanOffset() != (Vec{}) {
				t.Errorf("expected untouched camera, got scale %v level %d pan %v",
					cam.Scale(), cam.ZoomLevel(), cam.PanOffset())
			}
		})
	}
}

func TestCameraZoomClamp(t *testing.T) {
	cam := NewCamera(CameraConfig{MinZoomLevel: -2, MaxZoomLevel: 3})
	for i := 0; i < 3; i++ {
		if !cam.Zoom(1, Vec{}) {
			t.Fatalf("expected step %d in to succeed", i+1)
		}
	}
	if cam.Zoom(1, Vec{}) {
		t.Error("expected zoom past the maximum level to be rejected")
	}
	if cam.ZoomLevel() != 3 {
		t.Errorf("expected zoom level 3, got %d", cam.ZoomLevel())
	}

	cam.Reset()
	cam.Zoom(-1, Vec{})
	cam.Zoom(-1, Vec{})
	if cam.Zoom(-1, Vec{}) {
		t.Error("expected zoom past the minimum level to be rejected")
	}
	if cam.Scale() <= 0 {
		t.Errorf("expected positive scale, got %v", cam.Scale())
	}
}

func TestCameraPanSymmetry(t *testing.T) {
	cam := NewCamera(CameraConfig{})
	cam.Zoom(1, Vec{5, 5})
	start := cam.PanOffset()

	d := Vec{17.25, -3.5}
	cam.Pan(d)
	cam.Pan(d.Scale(-1))
	if cam.PanOffset() != start {
		t.Errorf("expected pan %v, got %v", start, cam.PanOffset())
	}

	if cam.Pan(Vec{math.NaN(), 1}) {
		t.Error("expected non-finite pan to be rejected")
	}
	if cam.PanOffset() != start {
		t.Errorf("expected rejected pan to leave %v, got %v", start, cam.PanOffset())
	}
}

func TestCameraDragPan(t *testing.T) {
	cam := NewCamera(CameraConfig{BaseScale: 2})
	cam.BeginPan(Vec{10, 10})
	cam.PanTo(Vec{14, 6})
	cam.PanTo(Vec{20, 6})
	cam.EndPan()

	want := Vec{5, -2}
	if !nearVec(cam.PanOffset(), want) {
		t.Errorf("expected pan %v, got %v", want, cam.PanOffset())
	}
}

func TestCameraFitRect(t *testing.T) {
	cam := NewCamera(CameraConfig{})
	world := Rect{Left: 100, Top: 100, Right: 460, Bottom: 340}
	viewport := Size{Width: 80, Height: 40}

	if !cam.FitRect(world, viewport, 2) {
		t.Fatal("expected fit to succeed")
	}
	tl := cam.WorldToScreen(Vec{world.Left, world.Top})
	br := cam.WorldToScreen(Vec{world.Right, world.Bottom})
	if tl.X < 2-eps || tl.Y < 2-eps || br.X > 78+eps || br.Y > 38+eps {
		t.Errorf("expected %v inside padded viewport, got %v-%v", world, tl, br)
	}
	if cam.Zoom(1, Vec{}) {
		s := cam.Scale()
		if world.Width()*s <= 76 && world.Height()*s <= 36 {
			t.Errorf("expected fit to pick the highest fitting level, level %d also fits", cam.ZoomLevel())
		}
	}

	if cam.FitRect(world, Size{}, 2) {
		t.Error("expected fit into an empty viewport to fail")
	}
}
