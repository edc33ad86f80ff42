package glimmer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParams_DefineAndGet(t *testing.T) {
	p := NewParams()
	p.Define(Parameter{Key: "speed", Value: Number(5), Range: &Range{Min: 0, Max: 100}, Folder: "tunnel"})

	v, ok := p.Get("speed")
	if !ok {
		t.Fatal("speed should be defined")
	}
	if v.Kind != KindNumber || v.Num != 5 {
		t.Errorf("Get = %+v, want number 5", v)
	}
	decl, _ := p.Parameter("speed")
	if decl.Range == nil || decl.Range.Max != 100 {
		t.Errorf("Range = %+v, want max 100", decl.Range)
	}
	if _, ok := p.Get("missing"); ok {
		t.Error("missing key should not be found")
	}
}

func TestParams_SetNotifiesSynchronously(t *testing.T) {
	p := NewParams()
	p.Define(Parameter{Key: "speed", Value: Number(5)})

	var got []float64
	p.OnChange("speed", func(_ string, v Value) { got = append(got, v.Num) })
	p.SetFloat("speed", 7)
	p.SetFloat("speed", 7)

	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if got[0] != 7 {
		t.Errorf("value = %v, want 7", got[0])
	}
}

func TestParams_DefineNotifiesOnlyOnChange(t *testing.T) {
	p := NewParams()
	calls := 0
	p.OnAnyChange(func(string, Value) { calls++ })

	p.Define(Parameter{Key: "a", Value: Number(1)})
	p.Define(Parameter{Key: "a", Value: Number(1)})
	p.Define(Parameter{Key: "a", Value: Number(2)})

	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestParams_CallbackRemove(t *testing.T) {
	p := NewParams()
	calls := 0
	h := p.OnChange("a", func(string, Value) { calls++ })
	p.SetFloat("a", 1)
	h.Remove()
	h.Remove()
	p.SetFloat("a", 2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	var zero CallbackHandle
	zero.Remove()
}

func TestParams_RemoveDuringNotify(t *testing.T) {
	p := NewParams()
	var h1 CallbackHandle
	first, second := 0, 0
	h1 = p.OnChange("a", func(string, Value) {
		first++
		h1.Remove()
	})
	p.OnChange("a", func(string, Value) { second++ })

	p.SetFloat("a", 1)
	p.SetFloat("a", 2)

	if first != 1 {
		t.Errorf("first = %d, want 1", first)
	}
	if second != 2 {
		t.Errorf("second = %d, want 2", second)
	}
}

func TestParams_SetUndeclared(t *testing.T) {
	p := NewParams()
	p.Set("extra", String("#ff0000"))
	keys := p.Keys()
	if len(keys) != 1 || keys[0] != "extra" {
		t.Errorf("Keys() = %v, want [extra]", keys)
	}
}

func TestParams_TypedReaders(t *testing.T) {
	p := NewParams()
	p.Set("n", Number(2.6))
	p.Set("b", Bool(true))
	p.Set("s", String("#00ff00"))
	p.Set("v", Vector(1, 2, 3))

	assertNear(t, "Float(n)", p.Float("n", 0), 2.6)
	assertNear(t, "Float(b)", p.Float("b", 0), 1)
	assertNear(t, "Float(s)", p.Float("s", -1), -1)
	if got := p.Int("n", 0); got != 3 {
		t.Errorf("Int(n) = %d, want 3", got)
	}
	if !p.Bool("b", false) {
		t.Error("Bool(b) should be true")
	}
	if got := p.String("s", ""); got != "#00ff00" {
		t.Errorf("String(s) = %q", got)
	}
	if got := p.Vector("v", mgl64.Vec3{}); got != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Vector(v) = %v", got)
	}
	c := p.Color("s", ColorWhite)
	assertNear(t, "Color(s).G", c.G, 1)
	assertNear(t, "Color(s).R", c.R, 0)
	if got := p.Color("n", ColorWhite); got != ColorWhite {
		t.Errorf("Color(n) = %+v, want fallback", got)
	}
}

func TestParams_IntSaturates(t *testing.T) {
	p := NewParams()
	p.Set("big", Number(1e300))
	p.Set("small", Number(-1e14))
	p.Set("nan", Number(math.NaN()))

	if got := p.Int("big", 0); got != math.MaxInt32 {
		t.Errorf("Int(big) = %d, want %d", got, math.MaxInt32)
	}
	if got := p.Int("small", 0); got != math.MinInt32 {
		t.Errorf("Int(small) = %d, want %d", got, math.MinInt32)
	}
	if got := p.Int("nan", 7); got != 7 {
		t.Errorf("Int(nan) = %d, want fallback 7", got)
	}
}

func TestParams_Folder(t *testing.T) {
	p := NewParams()
	p.DefineAll(DefaultTimelineParams())
	p.DefineAll(DefaultTunnelParams())

	keys := p.Folder("timeline")
	want := []string{KeyHold0, KeyRampUp, KeyHold1, KeyRampDown}
	if len(keys) != len(want) {
		t.Fatalf("Folder(timeline) = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Folder(timeline)[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestParams_Snapshot(t *testing.T) {
	p := NewParams()
	p.SetFloat("a", 1)
	snap := p.Snapshot()
	p.SetFloat("a", 2)
	if snap["a"].Num != 1 {
		t.Errorf("snapshot a = %v, want 1", snap["a"].Num)
	}
}

func TestValueEqual(t *testing.T) {
	if !Number(1).Equal(Number(1)) {
		t.Error("equal numbers should compare equal")
	}
	if Number(1).Equal(String("1")) {
		t.Error("different kinds should not compare equal")
	}
	if !Vector(1, 2, 3).Equal(Vector(1, 2, 3)) {
		t.Error("equal vectors should compare equal")
	}
}

func TestKindString(t *testing.T) {
	if KindColor.String() != "color" {
		t.Errorf("KindColor.String() = %q", KindColor.String())
	}
}
