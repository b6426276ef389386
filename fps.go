package nightsky

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsOverlay shows FPS, TPS and live entity counts in the top-left corner.
// The text is refreshed every overlayRefreshFrames frames.
type statsOverlay struct {
	img     *ebiten.Image
	elapsed int
}

const overlayRefreshFrames = 30

func newStatsOverlay() *statsOverlay {
	// 140x64 fits four short lines of debug text.
	return &statsOverlay{img: ebiten.NewImage(140, 64), elapsed: overlayRefreshFrames}
}

func (o *statsOverlay) draw(screen *ebiten.Image, st FrameStats) {
	o.elapsed++
	if o.elapsed >= overlayRefreshFrames {
		o.elapsed = 0
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, overlayText(ebiten.ActualFPS(), ebiten.ActualTPS(), st))
	}
	screen.DrawImage(o.img, nil)
}

func overlayText(fps, tps float64, st FrameStats) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nstars: %d\nmeteors: %d bursts: %d",
		fps, tps, st.Stars, st.Meteors, st.Bursts)
}
