package glimmer

import "testing"

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#0058eb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertNear(t, "R", c.R, 0)
	assertNear(t, "G", c.G, 0x58/255.0)
	assertNear(t, "B", c.B, 0xeb/255.0)
	assertNear(t, "A", c.A, 1)

	if got := c.Hex(); got != "#0058eb" {
		t.Errorf("Hex() = %q, want %q", got, "#0058eb")
	}
}

func TestParseHexColor_Invalid(t *testing.T) {
	if _, err := ParseHexColor("blue"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestHueShift_FullTurnIsIdentity(t *testing.T) {
	c := Color{R: 1, G: 0, B: 0, A: 0.5}
	got := c.HueShift(1)
	assertNearEps(t, "R", got.R, 1, 1e-6)
	assertNearEps(t, "G", got.G, 0, 1e-6)
	assertNearEps(t, "B", got.B, 0, 1e-6)
	assertNear(t, "A", got.A, 0.5)
}

func TestHueShift_ThirdTurnRedToGreen(t *testing.T) {
	got := Color{R: 1, A: 1}.HueShift(1.0 / 3)
	assertNearEps(t, "R", got.R, 0, 1e-6)
	assertNearEps(t, "G", got.G, 1, 1e-6)
	assertNearEps(t, "B", got.B, 0, 1e-6)
}

func TestColorMix(t *testing.T) {
	got := Color{0, 0, 0, 1}.Mix(Color{1, 0.5, 0, 1}, 0.5)
	assertNear(t, "R", got.R, 0.5)
	assertNear(t, "G", got.G, 0.25)
	assertNear(t, "B", got.B, 0)
}

func TestColorRGBA_Premultiplied(t *testing.T) {
	got := Color{R: 1, G: 1, B: 1, A: 0.5}.RGBA()
	if got.A != 128 || got.R != 128 {
		t.Errorf("RGBA() = %+v, want R=128 A=128", got)
	}
}
