package main

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	titleFontSize   = 14.0 // world units
	minTitlePixels  = 4.0
	borderLineWidth = 1.5 // pixels
)

// ImagePainter rasterises frames with gg. Every screen unit of the frame
// becomes pixelsPerUnit pixels.
type ImagePainter struct {
	pixelsPerUnit float64
	font          *truetype.Font
	faces         map[float64]font.Face
}

func NewImagePainter(pixelsPerUnit float64) (*ImagePainter, error) {
	if !(pixelsPerUnit > 0) {
		pixelsPerUnit = 1
	}
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &ImagePainter{
		pixelsPerUnit: pixelsPerUnit,
		font:          ttf,
		faces:         make(map[float64]font.Face),
	}, nil
}

func (p *ImagePainter) face(size float64) font.Face {
	size = math.Round(math.Max(size, minTitlePixels))
	if f, ok := p.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(p.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	p.faces[size] = f
	return f
}

func (p *ImagePainter) px(f Frame, v Vec) Vec {
	return f.ToScreen(v).Scale(p.pixelsPerUnit)
}

func (p *ImagePainter) draw(f Frame) *gg.Context {
	w := int(math.Round(float64(f.Viewport.Width) * p.pixelsPerUnit))
	h := int(math.Round(float64(f.Viewport.Height) * p.pixelsPerUnit))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.SetHexColor(f.Background)
	dc.Clear()

	for _, t := range []GridTier{TierFine, TierCoarse, TierVeryCoarse} {
		segs := f.Grid.Tier(t)
		if len(segs) == 0 {
			continue
		}
		dc.SetHexColor(f.GridColors[t])
		dc.SetLineWidth(f.GridWidths[t] * f.Scale * p.pixelsPerUnit)
		for _, s := range segs {
			a, b := p.px(f, s.From), p.px(f, s.To)
			dc.DrawLine(a.X, a.Y, b.X, b.Y)
		}
		dc.Stroke()
	}

	dc.SetFontFace(p.face(titleFontSize * f.Scale * p.pixelsPerUnit))
	for _, n := range f.Nodes {
		for _, prim := range n.Primitives {
			p.drawPrimitive(dc, f, prim)
		}
	}
	return dc
}

func (p *ImagePainter) drawPrimitive(dc *gg.Context, f Frame, prim Primitive) {
	tl := p.px(f, Vec{prim.Rect.Left, prim.Rect.Top})
	br := p.px(f, Vec{prim.Rect.Right, prim.Rect.Bottom})
	w, h := br.X-tl.X, br.Y-tl.Y
	r := prim.Radius * f.Scale * p.pixelsPerUnit

	dc.SetHexColor(prim.Color)
	switch prim.Kind {
	case PrimFillRoundedRect:
		dc.DrawRoundedRectangle(tl.X, tl.Y, w, h, r)
		dc.Fill()
	case PrimFillRect:
		dc.DrawRectangle(tl.X, tl.Y, w, h)
		dc.Fill()
	case PrimStrokeRoundedRect:
		dc.SetLineWidth(borderLineWidth)
		dc.DrawRoundedRectangle(tl.X, tl.Y, w, h, r)
		dc.Stroke()
	case PrimText:
		at := p.px(f, prim.At)
		dc.DrawRectangle(tl.X, tl.Y, w, h)
		dc.Clip()
		dc.DrawString(prim.Text, at.X, at.Y)
		dc.ResetClip()
	}
}

func (p *ImagePainter) Image(f Frame) image.Image {
	return p.draw(f).Image()
}

func (p *ImagePainter) WritePNG(w io.Writer, f Frame) error {
	return p.draw(f).EncodePNG(w)
}

func (p *ImagePainter) SavePNG(path string, f Frame) error {
	return p.draw(f).SavePNG(path)
}
