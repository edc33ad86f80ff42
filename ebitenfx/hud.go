package ebitenfx

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/glimmer"
)

// HUD is a small overlay with FPS, TPS and the frame's timeline and
// particle state. The text is refreshed every half second.
type HUD struct {
	img        *ebiten.Image
	lastUpdate float64
	text       string
}

// Update accumulates dt and rebuilds the text when due.
func (h *HUD) Update(dt float64, f glimmer.FrameState) {
	h.lastUpdate += dt
	if h.text != "" && h.lastUpdate < 0.5 {
		return
	}
	h.lastUpdate = 0
	h.text = hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), f)
}

func hudText(fps, tps float64, f glimmer.FrameState) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s %.2f\npts: %d %s",
		fps, tps, f.Phase, f.Progress, len(f.Particles), f.FormState)
}

// Draw paints the overlay in the top-left corner.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h.img == nil {
		h.img = ebiten.NewImage(140, 64)
	}
	h.img.Clear()
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, h.text)
	screen.DrawImage(h.img, nil)
}
