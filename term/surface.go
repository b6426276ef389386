package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/nightsky"
)

// Default size of one terminal cell in viewport pixels. Roughly the aspect of
// a monospace glyph, so circles stay round.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// ramp maps increasing cell intensity to glyphs.
var ramp = []rune{'.', '·', '+', '*', '✦'}

// cell accumulates light from every primitive drawn into it during a frame.
// Light adds up, the way the layer composites over page content.
type cell struct {
	r, g, b float64 // premultiplied
	a       float64
}

// Surface rasterizes engine primitives onto a tcell screen. Each cell covers
// CellWidth×CellHeight viewport pixels. Primitives accumulate into an
// in-memory buffer; Present writes it to the screen.
type Surface struct {
	screen     tcell.Screen
	cellW      float64
	cellH      float64
	cols, rows int
	buf        []cell
	bg         tcell.Style
}

// NewSurface wraps screen. Non-positive cell sizes select the defaults.
func NewSurface(screen tcell.Screen, cellW, cellH int) *Surface {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	s := &Surface{
		screen: screen,
		cellW:  float64(cellW),
		cellH:  float64(cellH),
		bg:     tcell.StyleDefault.Background(tcell.ColorBlack),
	}
	s.sync()
	return s
}

// sync matches the buffer to the screen's current cell grid.
func (s *Surface) sync() {
	cols, rows := s.screen.Size()
	if cols == s.cols && rows == s.rows && len(s.buf) == cols*rows {
		return
	}
	s.cols, s.rows = cols, rows
	s.buf = make([]cell, max(cols*rows, 0))
}

// Size implements nightsky.Surface, in viewport pixels.
func (s *Surface) Size() (int, int) {
	cols, rows := s.screen.Size()
	return cols * int(s.cellW), rows * int(s.cellH)
}

// CellToViewport returns the viewport pixel at the center of a cell.
func (s *Surface) CellToViewport(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

// Clear implements nightsky.Surface.
func (s *Surface) Clear() {
	s.sync()
	clear(s.buf)
}

// FillCircle implements nightsky.Surface. Circles smaller than a cell light
// the cell under their center, scaled by the covered fraction of the cell
// with a floor so faint stars stay visible.
func (s *Surface) FillCircle(x, y, r float64, c nightsky.Color) {
	if c.A <= 0 || r <= 0 {
		return
	}
	x0, y0 := s.cellOf(x-r, y-r)
	x1, y1 := s.cellOf(x+r, y+r)
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			cx, cy := s.CellToViewport(col, row)
			if x0 != x1 || y0 != y1 {
				if math.Hypot(cx-x, cy-y) > r+s.cellW/2 {
					continue
				}
			}
			s.add(col, row, c, coverage(r, s.cellW, s.cellH))
		}
	}
}

// StrokeCircle implements nightsky.Surface by plotting cells along the
// circumference.
func (s *Surface) StrokeCircle(x, y, r, width float64, c nightsky.Color) {
	if c.A <= 0 || r <= 0 {
		return
	}
	steps := max(8, int(2*math.Pi*r/s.cellW))
	lastCol, lastRow := -1, -1
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		col, row := s.cellOf(x+math.Cos(a)*r, y+math.Sin(a)*r)
		if col == lastCol && row == lastRow {
			continue
		}
		lastCol, lastRow = col, row
		s.add(col, row, c, 1)
	}
}

// StrokeLine implements nightsky.Surface, stepping cell by cell and coloring
// each step from the gradient.
func (s *Surface) StrokeLine(seg nightsky.Segment, g nightsky.Gradient) {
	dx := seg.To.X - seg.From.X
	dy := seg.To.Y - seg.From.Y
	steps := max(1, int(math.Max(math.Abs(dx)/s.cellW, math.Abs(dy)/s.cellH)+0.5))
	lastCol, lastRow := -1, -1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := nightsky.Vec2{X: seg.From.X + dx*t, Y: seg.From.Y + dy*t}
		col, row := s.cellOf(p.X, p.Y)
		if col == lastCol && row == lastRow {
			continue
		}
		lastCol, lastRow = col, row
		s.add(col, row, g.At(p), 1)
	}
}

// Present writes the accumulated frame to the screen and shows it.
func (s *Surface) Present() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			ch, style := s.glyph(s.buf[row*s.cols+col])
			s.screen.SetContent(col, row, ch, nil, style)
		}
	}
	s.screen.Show()
}

// glyph picks the rune and style for an accumulated cell.
func (s *Surface) glyph(c cell) (rune, tcell.Style) {
	a := min(c.a, 1)
	if a <= 0 {
		return ' ', s.bg
	}
	idx := min(int(a*float64(len(ramp))), len(ramp)-1)
	// Un-premultiply and scale by intensity so faint light reads darker.
	r := int32(min(c.r/c.a, 1) * a * 255)
	g := int32(min(c.g/c.a, 1) * a * 255)
	b := int32(min(c.b/c.a, 1) * a * 255)
	return ramp[idx], s.bg.Foreground(tcell.NewRGBColor(max(r, 48), max(g, 48), max(b, 48)))
}

// add accumulates color c at weight w into a cell; out-of-grid cells are
// ignored.
func (s *Surface) add(col, row int, c nightsky.Color, w float64) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	a := c.A * w
	p := &s.buf[row*s.cols+col]
	p.r += c.R * a
	p.g += c.G * a
	p.b += c.B * a
	p.a += a
}

func (s *Surface) cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

// coverage is the share of a cell lit by a circle of radius r, floored at
// 0.5 so sub-pixel dots still register.
func coverage(r, cw, ch float64) float64 {
	return math.Max(0.5, math.Min(1, math.Pi*r*r/(cw*ch)))
}
