package nightsky

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestImageSurfaceSize(t *testing.T) {
	s := NewImageSurface(ebiten.NewImage(320, 200))
	if w, h := s.Size(); w != 320 || h != 200 {
		t.Errorf("Size() = %dx%d, want 320x200", w, h)
	}

	img := ebiten.NewImage(64, 48)
	s.SetImage(img)
	if s.Image() != img {
		t.Error("Image() did not return the swapped image")
	}
	if w, h := s.Size(); w != 64 || h != 48 {
		t.Errorf("Size() after SetImage = %dx%d, want 64x48", w, h)
	}
}

func TestImageSurfaceSetSize(t *testing.T) {
	s := NewImageSurface(ebiten.NewImage(100, 100))
	first := s.Image()

	s.SetSize(100, 100)
	if s.Image() != first {
		t.Error("same size should keep the image")
	}

	s.SetSize(300, 150)
	if w, h := s.Size(); w != 300 || h != 150 {
		t.Errorf("Size() = %dx%d, want 300x150", w, h)
	}

	s.SetSize(0, 10)
	if w, h := s.Size(); w != 300 || h != 150 {
		t.Errorf("invalid size applied: %dx%d", w, h)
	}
}

func TestImageSurfaceIsResizable(t *testing.T) {
	var _ ResizableSurface = (*ImageSurface)(nil)
}
