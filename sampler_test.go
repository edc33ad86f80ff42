package glimmer

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func solidData(w, h int, r, g, b, a uint8) ImageData {
	pix := make([]uint8, 4*w*h)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return ImageData{Pix: pix, Width: w, Height: h}
}

func TestSample_BlackYieldsNothing(t *testing.T) {
	got := Sample(solidData(8, 8, 0, 0, 0, 255), SampleOptions{Step: 1, BrightnessThreshold: 30, AlphaThreshold: 1})
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestSample_WhiteStepOneYieldsEveryPixel(t *testing.T) {
	got := Sample(solidData(6, 4, 255, 255, 255, 255), SampleOptions{Step: 1, BrightnessThreshold: 30, AlphaThreshold: 1})
	if len(got) != 24 {
		t.Errorf("len = %d, want 24", len(got))
	}
}

func TestSample_StepCount(t *testing.T) {
	// ceil(7/2) * ceil(5/2) = 4 * 3
	got := Sample(solidData(7, 5, 255, 255, 255, 255), SampleOptions{Step: 2, BrightnessThreshold: 30, AlphaThreshold: 1})
	if len(got) != 12 {
		t.Errorf("len = %d, want 12", len(got))
	}
}

func TestSample_TransparentWhiteYieldsNothing(t *testing.T) {
	got := Sample(solidData(4, 4, 255, 255, 255, 1), SampleOptions{Step: 1, BrightnessThreshold: 30, AlphaThreshold: 1})
	if len(got) != 0 {
		t.Errorf("len = %d, want 0 (alpha must exceed threshold)", len(got))
	}
}

func TestSample_ThresholdIsStrict(t *testing.T) {
	got := Sample(solidData(2, 2, 30, 30, 30, 255), SampleOptions{Step: 1, BrightnessThreshold: 30, AlphaThreshold: 1})
	if len(got) != 0 {
		t.Errorf("len = %d, want 0 (brightness must exceed threshold)", len(got))
	}
}

func TestSample_CenteredCoordinates(t *testing.T) {
	data := solidData(4, 2, 0, 0, 0, 255)
	// Light up pixel (3, 0): top-right.
	i := 3 * 4
	data.Pix[i], data.Pix[i+1], data.Pix[i+2] = 255, 255, 255

	got := Sample(data, SampleOptions{Step: 1, BrightnessThreshold: 30, AlphaThreshold: 1, ZOffset: 0.9})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	assertVec(t, "target", got[0], mgl64.Vec3{1, 1, 0.9})
}

func TestSample_StepBelowOne(t *testing.T) {
	got := Sample(solidData(3, 3, 255, 255, 255, 255), SampleOptions{Step: 0, BrightnessThreshold: 30, AlphaThreshold: 1})
	if len(got) != 9 {
		t.Errorf("len = %d, want 9", len(got))
	}
}

func TestSample_InvalidData(t *testing.T) {
	if got := Sample(ImageData{Width: 4, Height: 4, Pix: make([]uint8, 3)}, DefaultSampleOptions()); got != nil {
		t.Errorf("Sample(short) = %v, want nil", got)
	}
	if got := Sample(ImageData{}, DefaultSampleOptions()); got != nil {
		t.Errorf("Sample(empty) = %v, want nil", got)
	}
}

func TestSampleImage_ConvertsRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 14, 12))
	img.Set(10, 10, color.RGBA{255, 255, 255, 255})

	got := SampleImage(img, SampleOptions{Step: 1, BrightnessThreshold: 30, AlphaThreshold: 1})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	assertVec(t, "target", got[0], mgl64.Vec3{-2, 1, 0})
}

func TestImageDataFrom_NRGBAFastPath(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	data := ImageDataFrom(img)
	if &data.Pix[0] != &img.Pix[0] {
		t.Error("tight NRGBA should be used without copying")
	}
}

func TestDefaultSampleOptions(t *testing.T) {
	o := DefaultSampleOptions()
	if o.Step != 2 {
		t.Errorf("Step = %d, want 2", o.Step)
	}
	assertNear(t, "BrightnessThreshold", o.BrightnessThreshold, 30)
	assertNear(t, "AlphaThreshold", o.AlphaThreshold, 1)
	assertNear(t, "ZOffset", o.ZOffset, 0.9)
}
