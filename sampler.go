package glimmer

import (
	"image"
	"image/draw"

	"github.com/go-gl/mathgl/mgl64"
)

// ImageData is a non-premultiplied 8-bit RGBA pixel buffer, row-major with a
// stride of 4*Width bytes.
type ImageData struct {
	Pix    []uint8
	Width  int
	Height int
}

// ImageDataFrom converts any image into non-premultiplied RGBA. *image.NRGBA
// with a tight stride is used without copying.
func ImageDataFrom(img image.Image) ImageData {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return ImageData{Pix: n.Pix, Width: b.Dx(), Height: b.Dy()}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return ImageData{Pix: dst.Pix, Width: b.Dx(), Height: b.Dy()}
}

// SampleOptions controls which pixels become particle targets.
type SampleOptions struct {
	// Step is the stride in pixels along both axes. Values below 1 become 1.
	Step int
	// BrightnessThreshold is compared against (r+g+b)/3; the pixel must be
	// strictly brighter.
	BrightnessThreshold float64
	// AlphaThreshold is compared against the 0-255 alpha; the pixel must be
	// strictly more opaque.
	AlphaThreshold float64
	// ZOffset is the Z coordinate given to every target.
	ZOffset float64
}

// DefaultSampleOptions matches the particle-plane defaults: every second
// pixel, brightness above 30, any non-trivial alpha, Z of 0.9.
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{Step: 2, BrightnessThreshold: 30, AlphaThreshold: 1, ZOffset: 0.9}
}

// Sample walks the image at stride opts.Step and returns one target per
// pixel passing both thresholds. Targets are centered on the image with Y
// pointing up: (x - w/2, h/2 - y, ZOffset). The result length depends on the
// data, so size particle buffers after sampling.
func Sample(data ImageData, opts SampleOptions) []mgl64.Vec3 {
	step := opts.Step
	if step < 1 {
		step = 1
	}
	if data.Width <= 0 || data.Height <= 0 || len(data.Pix) < 4*data.Width*data.Height {
		return nil
	}
	step = min(step, max(data.Width, data.Height))
	halfW := float64(data.Width) / 2
	halfH := float64(data.Height) / 2

	var out []mgl64.Vec3
	for y := 0; y < data.Height; y += step {
		row := y * data.Width * 4
		for x := 0; x < data.Width; x += step {
			i := row + x*4
			r, g, b, a := data.Pix[i], data.Pix[i+1], data.Pix[i+2], data.Pix[i+3]
			brightness := (float64(r) + float64(g) + float64(b)) / 3
			if brightness > opts.BrightnessThreshold && float64(a) > opts.AlphaThreshold {
				out = append(out, mgl64.Vec3{float64(x) - halfW, halfH - float64(y), opts.ZOffset})
			}
		}
	}
	return out
}

// SampleImage is Sample over any image.Image.
func SampleImage(img image.Image, opts SampleOptions) []mgl64.Vec3 {
	if img == nil {
		return nil
	}
	return Sample(ImageDataFrom(img), opts)
}
