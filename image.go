package glimmer

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/go-gl/mathgl/mgl64"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageSource provides decoded pixels for the particle sampler.
type ImageSource interface {
	Load() (image.Image, error)
}

// ImageSourceFunc adapts a function to ImageSource.
type ImageSourceFunc func() (image.Image, error)

// Load implements ImageSource.
func (f ImageSourceFunc) Load() (image.Image, error) { return f() }

// FileImage loads and decodes an image file. PNG, JPEG, GIF, BMP and WebP
// are recognized.
type FileImage string

// Load implements ImageSource.
func (p FileImage) Load() (image.Image, error) {
	f, err := os.Open(string(p))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", string(p), err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", string(p), err)
	}
	return img, nil
}

// FSImage loads an image from a file system, e.g. an embed.FS.
type FSImage struct {
	FS   fs.FS
	Name string
}

// Load implements ImageSource.
func (s FSImage) Load() (image.Image, error) {
	f, err := s.FS.Open(s.Name)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", s.Name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", s.Name, err)
	}
	return img, nil
}

// StaticImage is an ImageSource for an already decoded image.
type StaticImage struct {
	Image image.Image
}

// Load implements ImageSource.
func (s StaticImage) Load() (image.Image, error) {
	if s.Image == nil {
		return nil, fmt.Errorf("load image: no image")
	}
	return s.Image, nil
}

// FitImage returns src unchanged when both sides are within maxDim, and a
// linearly resampled copy otherwise. Aspect ratio is preserved.
func FitImage(src image.Image, maxDim int) image.Image {
	if src == nil || maxDim <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}
	if w >= h {
		h = max(1, h*maxDim/w)
		w = maxDim
	} else {
		w = max(1, w*maxDim/h)
		h = maxDim
	}
	return transform.Resize(src, w, h, transform.Linear)
}

// LoadTargets loads src and samples it. A load failure is logged and yields
// an empty target set, leaving the simulation running with zero particles.
func LoadTargets(src ImageSource, opts SampleOptions) []mgl64.Vec3 {
	if src == nil {
		return nil
	}
	img, err := src.Load()
	if err != nil {
		Logger().Warn("glimmer: image load failed, continuing without particles", "err", err)
		return nil
	}
	targets := SampleImage(img, opts)
	Logger().Info("glimmer: sampled image", "targets", len(targets),
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy(), "step", opts.Step)
	return targets
}

// PendingTargets is a one-shot result of an asynchronous image sample.
// The frame loop polls it; nothing blocks on it.
type PendingTargets struct {
	ch      chan []mgl64.Vec3
	done    bool
	targets []mgl64.Vec3
}

// SampleAsync loads and samples src on a new goroutine. A cancelled context
// or a failed load resolves to an empty set.
func SampleAsync(ctx context.Context, src ImageSource, opts SampleOptions) *PendingTargets {
	p := &PendingTargets{ch: make(chan []mgl64.Vec3, 1)}
	go func() {
		if ctx.Err() != nil {
			p.ch <- nil
			return
		}
		targets := LoadTargets(src, opts)
		if ctx.Err() != nil {
			targets = nil
		}
		p.ch <- targets
	}()
	return p
}

// Resolved returns a PendingTargets that is already complete.
func Resolved(targets []mgl64.Vec3) *PendingTargets {
	return &PendingTargets{done: true, targets: targets}
}

// Poll reports the targets once sampling finished. It never blocks; ok is
// false while the load is still running.
func (p *PendingTargets) Poll() (targets []mgl64.Vec3, ok bool) {
	if p.done {
		return p.targets, true
	}
	select {
	case t := <-p.ch:
		p.done = true
		p.targets = t
		return t, true
	default:
		return nil, false
	}
}

// Wait blocks until sampling finishes or ctx ends. Intended for tools and
// tests; the frame loop uses Poll.
func (p *PendingTargets) Wait(ctx context.Context) ([]mgl64.Vec3, error) {
	if p.done {
		return p.targets, nil
	}
	select {
	case t := <-p.ch:
		p.done = true
		p.targets = t
		return t, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
