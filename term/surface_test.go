package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/nightsky"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

var _ nightsky.Surface = (*Surface)(nil)

func TestSurfaceSize(t *testing.T) {
	s := NewSurface(newSimScreen(t, 80, 25), 0, 0)
	if w, h := s.Size(); w != 640 || h != 400 {
		t.Errorf("Size() = %dx%d, want 640x400", w, h)
	}

	s = NewSurface(newSimScreen(t, 10, 5), 4, 4)
	if w, h := s.Size(); w != 40 || h != 20 {
		t.Errorf("Size() = %dx%d, want 40x20", w, h)
	}
}

func TestCellToViewport(t *testing.T) {
	s := NewSurface(newSimScreen(t, 20, 10), 8, 16)
	x, y := s.CellToViewport(3, 2)
	if x != 28 || y != 40 {
		t.Errorf("CellToViewport(3, 2) = (%v, %v), want (28, 40)", x, y)
	}
}

func TestFillCircleLightsCell(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	s := NewSurface(screen, 8, 16)
	s.Clear()

	x, y := s.CellToViewport(5, 2)
	s.FillCircle(x, y, 3, nightsky.ColorWhite)

	for i, c := range s.buf {
		col, row := i%s.cols, i/s.cols
		lit := c.a > 0
		if (col == 5 && row == 2) != lit {
			t.Errorf("cell (%d, %d) lit = %v", col, row, lit)
		}
	}

	s.Present()
	cells, w, _ := screen.GetContents()
	got := cells[2*w+5]
	if len(got.Runes) == 0 || got.Runes[0] != '+' {
		t.Errorf("cell (5, 2) = %q, want '+'", got.Runes)
	}
}

func TestFillCircleOffGrid(t *testing.T) {
	s := NewSurface(newSimScreen(t, 10, 5), 8, 16)
	s.Clear()
	s.FillCircle(-200, -200, 2, nightsky.ColorWhite)
	s.FillCircle(10000, 10000, 2, nightsky.ColorWhite)
	for i, c := range s.buf {
		if c.a != 0 {
			t.Fatalf("cell %d lit by an off-grid circle", i)
		}
	}
}

func TestStrokeLineLightsRow(t *testing.T) {
	s := NewSurface(newSimScreen(t, 20, 4), 8, 16)
	s.Clear()

	seg := nightsky.Segment{From: nightsky.Vec2{X: 4, Y: 8}, To: nightsky.Vec2{X: 76, Y: 8}, Width: 1}
	g := nightsky.Gradient{Start: seg.From, End: seg.To, StartColor: nightsky.ColorWhite, EndColor: nightsky.ColorWhite}
	s.StrokeLine(seg, g)

	for col := 0; col < s.cols; col++ {
		lit := s.buf[col].a > 0
		if lit != (col <= 9) {
			t.Errorf("col %d lit = %v, want %v", col, lit, col <= 9)
		}
	}
	for i := s.cols; i < len(s.buf); i++ {
		if s.buf[i].a != 0 {
			t.Fatalf("cell %d below the line is lit", i)
		}
	}
}

func TestStrokeCircleRing(t *testing.T) {
	s := NewSurface(newSimScreen(t, 40, 20), 8, 16)
	s.Clear()
	cx, cy := s.CellToViewport(20, 10)
	s.StrokeCircle(cx, cy, 64, 1, nightsky.ColorStone)

	center := s.buf[10*s.cols+20]
	if center.a != 0 {
		t.Error("ring lit its own center")
	}
	lit := 0
	for _, c := range s.buf {
		if c.a > 0 {
			lit++
		}
	}
	if lit < 8 {
		t.Errorf("ring lit %d cells, want at least 8", lit)
	}
}

func TestClearResetsBuffer(t *testing.T) {
	s := NewSurface(newSimScreen(t, 10, 5), 8, 16)
	x, y := s.CellToViewport(1, 1)
	s.FillCircle(x, y, 4, nightsky.ColorWhite)
	s.Clear()
	for i, c := range s.buf {
		if c.a != 0 {
			t.Fatalf("cell %d still lit after Clear", i)
		}
	}
}

func TestGlyphRamp(t *testing.T) {
	s := NewSurface(newSimScreen(t, 1, 1), 8, 16)
	tests := []struct {
		a    float64
		want rune
	}{
		{0, ' '},
		{0.1, '.'},
		{0.3, '·'},
		{0.5, '+'},
		{0.7, '*'},
		{1, '✦'},
		{3, '✦'},
	}
	for _, tt := range tests {
		ch, _ := s.glyph(cell{r: tt.a, g: tt.a, b: tt.a, a: tt.a})
		if ch != tt.want {
			t.Errorf("glyph(a=%v) = %q, want %q", tt.a, ch, tt.want)
		}
	}
}

func TestCoverageFloor(t *testing.T) {
	if got := coverage(0.3, 8, 16); got != 0.5 {
		t.Errorf("coverage of a tiny dot = %v, want 0.5", got)
	}
	if got := coverage(100, 8, 16); got != 1 {
		t.Errorf("coverage of a large disc = %v, want 1", got)
	}
}
