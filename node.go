package main

// NodeStyle is the fixed geometry shared by every node card on a canvas.
type NodeStyle struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	BannerHeight float64 `toml:"banner_height"`
	CornerRadius float64 `toml:"corner_radius"`
	TitleOffsetX float64 `toml:"title_offset_x"`
	TitleOffsetY float64 `toml:"title_offset_y"`
	DefaultTitle string  `toml:"default_title"`
}

func DefaultNodeStyle() NodeStyle {
	return NodeStyle{
		Width:        180,
		Height:       240,
		BannerHeight: 32,
		CornerRadius: 8,
		TitleOffsetX: 8,
		TitleOffsetY: 22,
		DefaultTitle: "New Node Title",
	}
}

func (s NodeStyle) withDefaults() NodeStyle {
	d := DefaultNodeStyle()
	if s.Width > 0 {
		d.Width = s.Width
	}
	if s.Height > 0 {
		d.Height = s.Height
	}
	if s.BannerHeight > 0 && s.BannerHeight <= d.Height {
		d.BannerHeight = s.BannerHeight
	}
	if s.CornerRadius > 0 && s.CornerRadius <= d.BannerHeight {
		d.CornerRadius = s.CornerRadius
	}
	if s.TitleOffsetX != 0 || s.TitleOffsetY != 0 {
		d.TitleOffsetX = s.TitleOffsetX
		d.TitleOffsetY = s.TitleOffsetY
	}
	if s.DefaultTitle != "" {
		d.DefaultTitle = s.DefaultTitle
	}
	return d
}

// Theme holds the hex colours used by the painters.
type Theme struct {
	Background     string `toml:"background"`
	GridFine       string `toml:"grid_fine"`
	GridCoarse     string `toml:"grid_coarse"`
	GridVeryCoarse string `toml:"grid_very_coarse"`
	Banner         string `toml:"banner"`
	Body           string `toml:"body"`
	Border         string `toml:"border"`
	SelectedBorder string `toml:"selected_border"`
	Title          string `toml:"title"`
}

func DefaultTheme() Theme {
	return Theme{
		Background:     "#393939",
		GridFine:       "#292929",
		GridCoarse:     "#202020",
		GridVeryCoarse: "#202020",
		Banner:         "#2f5d8a",
		Body:           "#212121",
		Border:         "#000000",
		SelectedBorder: "#ffa637",
		Title:          "#ffffff",
	}
}

func (t Theme) withDefaults() Theme {
	d := DefaultTheme()
	return Theme{
		Background:     orDefault(t.Background, d.Background),
		GridFine:       orDefault(t.GridFine, d.GridFine),
		GridCoarse:     orDefault(t.GridCoarse, d.GridCoarse),
		GridVeryCoarse: orDefault(t.GridVeryCoarse, d.GridVeryCoarse),
		Banner:         orDefault(t.Banner, d.Banner),
		Body:           orDefault(t.Body, d.Body),
		Border:         orDefault(t.Border, d.Border),
		SelectedBorder: orDefault(t.SelectedBorder, d.SelectedBorder),
		Title:          orDefault(t.Title, d.Title),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (t Theme) GridColor(tier GridTier) string {
	switch tier {
	case TierCoarse:
		return t.GridCoarse
	case TierVeryCoarse:
		return t.GridVeryCoarse
	}
	return t.GridFine
}

type PrimitiveKind int

const (
	PrimFillRoundedRect PrimitiveKind = iota
	PrimFillRect
	PrimStrokeRoundedRect
	PrimText
)

// Primitive is one world-space drawing instruction. For PrimText, At is the
// baseline origin and Rect is the clip region.
type Primitive struct {
	Kind   PrimitiveKind
	Rect   Rect
	Radius float64
	Color  string
	Text   string
	At     Vec
}

// NodeItem is a node card on the canvas. Only the owning Canvas changes its
// position, selection and z-order.
type NodeItem struct {
	id       string
	title    string
	position Vec
	style    NodeStyle
	selected bool
	zOrder   int
	seq      uint64
}

func (n *NodeItem) ID() string       { return n.id }
func (n *NodeItem) Title() string    { return n.title }
func (n *NodeItem) Position() Vec    { return n.position }
func (n *NodeItem) Selected() bool   { return n.selected }
func (n *NodeItem) ZOrder() int      { return n.zOrder }
func (n *NodeItem) Style() NodeStyle { return n.style }

// Movable and Selectable are always true for node cards.
func (n *NodeItem) Movable() bool    { return true }
func (n *NodeItem) Selectable() bool { return true }

// Bounds is the exact hit-test footprint, with no padding.
func (n *NodeItem) Bounds() Rect {
	return RectFromSize(n.position, n.style.Width, n.style.Height)
}

func (n *NodeItem) Contains(world Vec) bool {
	return n.Bounds().Contains(world)
}

// Paint returns the card's drawing instructions, back to front: body, banner
// (with its two bottom corners squared off), border, title.
func (n *NodeItem) Paint(theme Theme) []Primitive {
	x, y := n.position.X, n.position.Y
	w, h := n.style.Width, n.style.Height
	bh, r := n.style.BannerHeight, n.style.CornerRadius

	border := theme.Border
	if n.selected {
		border = theme.SelectedBorder
	}
	banner := RectFromSize(n.position, w, bh)

	return []Primitive{
		{Kind: PrimFillRoundedRect, Rect: RectFromSize(Vec{x, y + bh - r}, w, h-bh+r), Radius: r, Color: theme.Body},
		{Kind: PrimFillRoundedRect, Rect: banner, Radius: r, Color: theme.Banner},
		{Kind: PrimFillRect, Rect: RectFromSize(Vec{x, y + bh - r}, r, r), Color: theme.Banner},
		{Kind: PrimFillRect, Rect: RectFromSize(Vec{x + w - r, y + bh - r}, r, r), Color: theme.Banner},
		{Kind: PrimStrokeRoundedRect, Rect: n.Bounds(), Radius: r, Color: border},
		{Kind: PrimText, Rect: banner, Color: theme.Title, Text: n.title, At: n.position.Add(Vec{n.style.TitleOffsetX, n.style.TitleOffsetY})},
	}
}
