package nightsky

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxGradientPieces caps how many sub-strokes approximate a gradient line.
const maxGradientPieces = 24

// ImageSurface adapts an *ebiten.Image to Surface using the vector package.
// Ebitengine has no gradient strokes, so StrokeLine is split into short
// pieces, each colored at its midpoint.
type ImageSurface struct {
	img *ebiten.Image
}

// NewImageSurface wraps img. img may be swapped later with SetImage.
func NewImageSurface(img *ebiten.Image) *ImageSurface {
	return &ImageSurface{img: img}
}

// Image returns the wrapped image.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

// SetImage replaces the wrapped image.
func (s *ImageSurface) SetImage(img *ebiten.Image) {
	s.img = img
}

// SetSize implements ResizableSurface by swapping in a new image when the
// dimensions change.
func (s *ImageSurface) SetSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if cw, ch := s.Size(); cw == w && ch == h {
		return
	}
	old := s.img
	s.img = ebiten.NewImage(w, h)
	old.Deallocate()
}

// Size implements Surface.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements Surface.
func (s *ImageSurface) Clear() {
	s.img.Clear()
}

// FillCircle implements Surface.
func (s *ImageSurface) FillCircle(x, y, r float64, c Color) {
	if c.A <= 0 || r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c.RGBA(), true)
}

// StrokeCircle implements Surface.
func (s *ImageSurface) StrokeCircle(x, y, r, width float64, c Color) {
	if c.A <= 0 || r <= 0 {
		return
	}
	vector.StrokeCircle(s.img, float32(x), float32(y), float32(r), float32(width), c.RGBA(), true)
}

// StrokeLine implements Surface.
func (s *ImageSurface) StrokeLine(seg Segment, g Gradient) {
	dx := seg.To.X - seg.From.X
	dy := seg.To.Y - seg.From.Y
	n := int(math.Ceil(math.Hypot(dx, dy) / 4))
	n = max(1, min(n, maxGradientPieces))

	for i := 0; i < n; i++ {
		t0 := float64(i) / float64(n)
		t1 := float64(i+1) / float64(n)
		p0 := Vec2{seg.From.X + dx*t0, seg.From.Y + dy*t0}
		p1 := Vec2{seg.From.X + dx*t1, seg.From.Y + dy*t1}
		c := g.At(Vec2{(p0.X + p1.X) / 2, (p0.Y + p1.Y) / 2})
		if c.A <= 0 {
			continue
		}
		vector.StrokeLine(s.img, float32(p0.X), float32(p0.Y), float32(p1.X), float32(p1.Y),
			float32(seg.Width), c.RGBA(), true)
	}

	if seg.RoundCap {
		r := seg.Width / 2
		s.FillCircle(seg.From.X, seg.From.Y, r, g.At(seg.From))
		s.FillCircle(seg.To.X, seg.To.Y, r, g.At(seg.To))
	}
}
