package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	lineHorizontal = 1 << iota
	lineVertical
)

type termCell struct {
	r     rune
	fg    string
	bg    string
	lines int
	tier  GridTier
}

// TermPainter rasterises frames into terminal cells, one screen unit per cell.
type TermPainter struct {
	styles map[[2]string]lipgloss.Style
}

func NewTermPainter() *TermPainter {
	return &TermPainter{styles: make(map[[2]string]lipgloss.Style)}
}

func (p *TermPainter) style(fg, bg string) lipgloss.Style {
	key := [2]string{fg, bg}
	if s, ok := p.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	p.styles[key] = s
	return s
}

// RenderLines returns one coloured string per viewport row.
func (p *TermPainter) RenderLines(f Frame) []string {
	cells := rasterize(f)
	out := make([]string, len(cells))
	for y, row := range cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].fg == row[start].fg && row[x].bg == row[start].bg {
				continue
			}
			var run strings.Builder
			for _, c := range row[start:x] {
				run.WriteRune(c.r)
			}
			b.WriteString(p.style(row[start].fg, row[start].bg).Render(run.String()))
			start = x
		}
		out[y] = b.String()
	}
	return out
}

// RenderPlain is RenderLines without colour.
func RenderPlain(f Frame) []string {
	cells := rasterize(f)
	out := make([]string, len(cells))
	for y, row := range cells {
		rs := make([]rune, len(row))
		for x, c := range row {
			rs[x] = c.r
		}
		out[y] = string(rs)
	}
	return out
}

func rasterize(f Frame) [][]termCell {
	w, h := f.Viewport.Width, f.Viewport.Height
	if w <= 0 || h <= 0 {
		return nil
	}
	cells := make([][]termCell, h)
	for y := range cells {
		cells[y] = make([]termCell, w)
		for x := range cells[y] {
			cells[y][x] = termCell{r: ' ', bg: f.Background}
		}
	}

	for _, t := range []GridTier{TierFine, TierCoarse, TierVeryCoarse} {
		for _, s := range f.Grid.Tier(t) {
			drawGridSegment(cells, f, s, t, f.GridColors[t])
		}
	}
	for y := range cells {
		for x := range cells[y] {
			c := &cells[y][x]
			switch c.lines {
			case lineHorizontal:
				c.r = '─'
			case lineVertical:
				c.r = '│'
			case lineHorizontal | lineVertical:
				c.r = '┼'
			}
		}
	}

	for _, n := range f.Nodes {
		for _, prim := range n.Primitives {
			drawPrimitive(cells, f, prim)
		}
	}
	return cells
}

func drawGridSegment(cells [][]termCell, f Frame, s Segment, t GridTier, color string) {
	from, to := f.ToScreen(s.From), f.ToScreen(s.To)
	h, w := len(cells), len(cells[0])
	mark := func(x, y, bit int) {
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		c := &cells[y][x]
		c.lines |= bit
		if c.fg == "" || t >= c.tier {
			c.fg = color
			c.tier = t
		}
	}
	if s.From.Y == s.To.Y {
		y := int(math.Floor(from.Y))
		for x := max(int(math.Floor(from.X)), 0); x < min(int(math.Ceil(to.X)), w); x++ {
			mark(x, y, lineHorizontal)
		}
		return
	}
	x := int(math.Floor(from.X))
	for y := max(int(math.Floor(from.Y)), 0); y < min(int(math.Ceil(to.Y)), h); y++ {
		mark(x, y, lineVertical)
	}
}

// cellSpan returns the cell range [lo, hi) whose centres fall in [a, b).
func cellSpan(a, b float64, limit int) (int, int) {
	lo := int(math.Ceil(a - 0.5))
	hi := int(math.Ceil(b - 0.5))
	return max(lo, 0), min(hi, limit)
}

func drawPrimitive(cells [][]termCell, f Frame, prim Primitive) {
	h, w := len(cells), len(cells[0])
	tl, br := f.ToScreen(Vec{prim.Rect.Left, prim.Rect.Top}), f.ToScreen(Vec{prim.Rect.Right, prim.Rect.Bottom})

	switch prim.Kind {
	case PrimFillRoundedRect, PrimFillRect:
		x0, x1 := cellSpan(tl.X, br.X, w)
		y0, y1 := cellSpan(tl.Y, br.Y, h)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				cells[y][x] = termCell{r: ' ', bg: prim.Color}
			}
		}

	case PrimStrokeRoundedRect:
		left, right := int(math.Floor(tl.X)), int(math.Ceil(br.X))-1
		top, bottom := int(math.Floor(tl.Y)), int(math.Ceil(br.Y))-1
		corners := [4]rune{'┌', '┐', '└', '┘'}
		if prim.Radius*f.Scale >= 0.5 {
			corners = [4]rune{'╭', '╮', '╰', '╯'}
		}
		set := func(x, y int, r rune) {
			if x >= 0 && y >= 0 && x < w && y < h {
				cells[y][x].r = r
				cells[y][x].fg = prim.Color
			}
		}
		for x := left + 1; x < right; x++ {
			set(x, top, '─')
			set(x, bottom, '─')
		}
		for y := top + 1; y < bottom; y++ {
			set(left, y, '│')
			set(right, y, '│')
		}
		set(left, top, corners[0])
		set(right, top, corners[1])
		set(left, bottom, corners[2])
		set(right, bottom, corners[3])

	case PrimText:
		top, bottom := int(math.Floor(tl.Y)), int(math.Ceil(br.Y))-1
		if bottom-top >= 2 {
			top, bottom = top+1, bottom-1
		}
		at := f.ToScreen(prim.At)
		row := min(max(int(math.Floor(at.Y)), top), bottom)
		if row < 0 || row >= h {
			return
		}
		left, right := int(math.Floor(tl.X))+1, int(math.Ceil(br.X))-1
		x := max(int(math.Floor(at.X)), left)
		for _, r := range prim.Text {
			if x >= right || x >= w {
				break
			}
			if x >= 0 {
				cells[row][x].r = r
				cells[row][x].fg = prim.Color
			}
			x++
		}
	}
}
