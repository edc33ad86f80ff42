package ebitenfx

import (
	"testing"

	"github.com/phanxgames/glimmer"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "move", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "params", "params": {"tunnel.speed": 8}}
		]
	}`)
	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(s.steps))
	}
	if s.steps[1].X != 100 || s.steps[1].Y != 200 {
		t.Errorf("step 1 = %+v", s.steps[1])
	}
	if s.steps[3].Params["tunnel.speed"] != 8.0 {
		t.Errorf("step 3 params = %v", s.steps[3].Params)
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	for name, data := range map[string]string{
		"not json": `not json`,
		"empty":    `{"steps": []}`,
		"unknown":  `{"steps": [{"action": "click"}]}`,
	} {
		if _, err := LoadScript([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestScript_SweepWaitsForQueue(t *testing.T) {
	cam := PlaneCamera()
	p := NewCursorPointer(&cam)
	p.cursor = nil
	p.SetScreenSize(800, 600)
	g := &Game{Pointer: p}

	s, err := LoadScript([]byte(`{"steps": [
		{"action": "sweep", "fromX": 0, "fromY": 0, "toX": 100, "toY": 0, "frames": 3},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	s.step(g)
	if p.Queued() != 4 {
		t.Fatalf("queued = %d, want 4", p.Queued())
	}
	s.step(g)
	if len(g.shots) != 0 {
		t.Fatal("screenshot should wait for the sweep to drain")
	}

	var last glimmer.PointerSample
	for i := 0; i < 3; i++ {
		last = p.Pointer()
		if !last.Present {
			t.Fatalf("sample %d absent", i)
		}
	}
	if p.Pointer().Present {
		t.Error("sweep should end with a leave")
	}

	s.step(g)
	if len(g.shots) != 1 || g.shots[0] != "after" {
		t.Errorf("shots = %v", g.shots)
	}
	if !s.Done() {
		t.Error("script should be done")
	}
}

func TestScript_WaitAndParams(t *testing.T) {
	params := glimmer.NewParams()
	params.DefineAll(glimmer.DefaultTunnelParams())
	d := glimmer.NewDriver(params, glimmer.DriverConfig{Tunnel: true})
	g := &Game{Driver: d}

	s, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 2},
		{"action": "params", "params": {"tunnel.speed": 9}}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.step(g) // wait, counts as frame one
	s.step(g) // frame two
	if params.Float(glimmer.KeyTunnelSpeed, 0) != 5 {
		t.Fatal("params applied too early")
	}
	s.step(g)
	if got := params.Float(glimmer.KeyTunnelSpeed, 0); got != 9 {
		t.Errorf("speed = %v, want 9", got)
	}
	if !s.Done() {
		t.Error("script should be done")
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := map[string]string{
		"":            "unlabeled",
		"  ":          "unlabeled",
		"after-burst": "after-burst",
		"a b/c":       "a_b_c",
		"v1.2":        "v1.2",
		"  a  / b ":   "a_b",
		"///":         "unlabeled",
	}
	for in, want := range tests {
		if got := sanitizeLabel(in); got != want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFrameImage(t *testing.T) {
	img := frameImage([]byte{64, 32, 0, 128, 255, 255, 255, 255}, 2, 1)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("bounds = %v, want 2x1", img.Bounds())
	}
	c := img.NRGBAAt(0, 0)
	if c.A != 128 || c.R != 127 || c.G != 63 || c.B != 0 {
		t.Errorf("pixel 0 = %+v", c)
	}
	if c := img.NRGBAAt(1, 0); c.R != 255 || c.A != 255 {
		t.Errorf("pixel 1 = %+v", c)
	}
}
