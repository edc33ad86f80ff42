package glimmer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

func blendParams() *Params {
	p := NewParams()
	p.DefineAll([]Parameter{
		{Key: KeyTunnelSpeed, Value: Number(5)},
		{Key: "tunnel.wallColor", Value: String("#ffffff")},
		{Key: "bloom.enabled", Value: Bool(true)},
		{Key: "camera.target", Value: Vector(0, 0, 0)},
	})
	return p
}

func TestTransition_Blends(t *testing.T) {
	p := blendParams()
	tr := NewTransition(p, &Preset{Params: map[string]any{
		KeyTunnelSpeed:     15.0,
		"tunnel.wallColor": "#000000",
		"bloom.enabled":    false,
		"camera.target":    []any{2.0, 4.0, -6.0},
	}}, 1, ease.Linear)

	if p.Bool("bloom.enabled", true) {
		t.Error("bool should be applied immediately")
	}
	assertNear(t, "speed before", p.Float(KeyTunnelSpeed, 0), 5)

	tr.Update(0.5)
	if tr.Done {
		t.Fatal("transition finished early")
	}
	assertNearEps(t, "speed mid", p.Float(KeyTunnelSpeed, 0), 10, 1e-5)
	if got := p.Vector("camera.target", mgl64.Vec3{}); got.Sub(mgl64.Vec3{1, 2, -3}).Len() > 1e-5 {
		t.Errorf("camera.target mid = %v", got)
	}
	if c := p.String("tunnel.wallColor", ""); c == "#ffffff" || c == "#000000" {
		t.Errorf("wall color mid = %q, want a blend", c)
	}

	tr.Update(0.6)
	if !tr.Done {
		t.Fatal("transition should be done")
	}
	assertNear(t, "speed end", p.Float(KeyTunnelSpeed, 0), 15)
	if c := p.String("tunnel.wallColor", ""); c != "#000000" {
		t.Errorf("wall color end = %q, want #000000", c)
	}
	if got := p.Vector("camera.target", mgl64.Vec3{}); got != (mgl64.Vec3{2, 4, -6}) {
		t.Errorf("camera.target end = %v", got)
	}

	tr.Update(1) // no-op once done
	assertNear(t, "speed after", p.Float(KeyTunnelSpeed, 0), 15)
}

func TestTransition_ZeroDurationAppliesAtOnce(t *testing.T) {
	p := blendParams()
	tr := NewTransition(p, &Preset{Params: map[string]any{KeyTunnelSpeed: 9.0}}, 0, nil)
	if !tr.Done {
		t.Error("zero-duration transition should be done")
	}
	assertNear(t, "speed", p.Float(KeyTunnelSpeed, 0), 9)
}

func TestTransition_UnknownAndMismatchedKeys(t *testing.T) {
	p := blendParams()
	NewTransition(p, &Preset{Params: map[string]any{
		"new.key":       3.0,
		KeyTunnelSpeed:  "fast",
		"camera.target": 1.0,
	}}, 1, nil)
	assertNear(t, "new.key", p.Float("new.key", 0), 3)
	if got := p.String(KeyTunnelSpeed, ""); got != "fast" {
		t.Errorf("speed = %q, want fast", got)
	}
	assertNear(t, "camera.target", p.Float("camera.target", 0), 1)
}

func TestTransition_NotifiesSubscribers(t *testing.T) {
	p := blendParams()
	var calls int
	p.OnChange(KeyTunnelSpeed, func(string, Value) { calls++ })
	tr := NewTransition(p, &Preset{Params: map[string]any{KeyTunnelSpeed: 6.0}}, 0.2, nil)
	for !tr.Done {
		tr.Update(0.05)
	}
	if calls < 4 {
		t.Errorf("OnChange calls = %d, want one per update", calls)
	}
}
