package ebitenfx

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/glimmer"
)

// Screenshot queues a labeled capture of the next drawn frame. Files land in
// ScreenshotDir as <timestamp>_<label>.png.
func (g *Game) Screenshot(label string) {
	g.shots = append(g.shots, label)
}

func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.shots) == 0 {
		return
	}
	defer func() { g.shots = g.shots[:0] }()

	dir := g.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		glimmer.Logger().Warn("glimmer: screenshot mkdir failed", "dir", dir, "err", err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := frameImage(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range g.shots {
		path := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
			glimmer.Logger().Warn("glimmer: screenshot failed", "path", path, "err", err)
			continue
		}
		glimmer.Logger().Info("glimmer: screenshot saved", "path", path)
	}
}

// frameImage turns premultiplied pixels read back from the GPU into a
// straight-alpha image, the form PNG stores.
func frameImage(pixels []byte, w, h int) *image.NRGBA {
	src := &image.RGBA{Pix: pixels, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	data := glimmer.ImageDataFrom(src)
	return &image.NRGBA{Pix: data.Pix, Stride: 4 * data.Width, Rect: image.Rect(0, 0, data.Width, data.Height)}
}

// sanitizeLabel joins the runs of letters, digits, '-' and '.' in label
// with '_'. Labels with none become "unlabeled".
func sanitizeLabel(label string) string {
	parts := strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '.'
	})
	if len(parts) == 0 {
		return "unlabeled"
	}
	return strings.Join(parts, "_")
}
