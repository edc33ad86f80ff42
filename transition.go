package glimmer

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// blendKey is one parameter being eased from its current value to a preset's.
type blendKey struct {
	key      string
	kind     Kind
	fromNum  float64
	toNum    float64
	fromVec  mgl64.Vec3
	toVec    mgl64.Vec3
	fromCol  Color
	toCol    Color
	asString bool
}

// Transition eases the numeric, vector and color values of a preset in over
// a duration. Values that cannot be interpolated are set immediately when the
// transition is created. There is no global manager; call Update each tick.
type Transition struct {
	params *Params
	tween  *gween.Tween
	keys   []blendKey
	Done   bool
}

// NewTransition starts blending preset into params. A nil fn uses
// ease.Linear. A non-positive duration applies the preset at once and
// returns a finished transition.
func NewTransition(params *Params, preset *Preset, duration float64, fn ease.TweenFunc) *Transition {
	if fn == nil {
		fn = ease.Linear
	}
	t := &Transition{params: params}
	keys := make([]string, 0, len(preset.Params))
	for k := range preset.Params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		to, err := presetValue(preset.Params[k])
		if err != nil {
			continue
		}
		from, ok := params.Get(k)
		if duration <= 0 || !ok {
			params.Set(k, to)
			continue
		}
		b, ok := blendable(k, from, to)
		if !ok {
			params.Set(k, to)
			continue
		}
		t.keys = append(t.keys, b)
	}

	if len(t.keys) == 0 {
		t.Done = true
		return t
	}
	t.tween = gween.New(0, 1, float32(duration), fn)
	return t
}

func blendable(key string, from, to Value) (blendKey, bool) {
	b := blendKey{key: key, kind: from.Kind}
	switch {
	case from.Kind == KindNumber && to.Kind == KindNumber:
		b.fromNum, b.toNum = from.Num, to.Num
		return b, true
	case from.Kind == KindVector && to.Kind == KindVector:
		b.fromVec, b.toVec = from.Vec, to.Vec
		return b, true
	}
	fc, ok1 := resolveColor(from)
	tc, ok2 := resolveColor(to)
	if !ok1 || !ok2 {
		return b, false
	}
	b.kind = KindColor
	b.fromCol, b.toCol = fc, tc
	b.asString = from.Kind == KindString
	return b, true
}

// Update advances the transition by dt seconds and writes the blended values.
func (t *Transition) Update(dt float64) {
	if t.Done {
		return
	}
	x, finished := t.tween.Update(float32(dt))
	f := float64(x)
	if finished {
		f = 1
	}
	for _, b := range t.keys {
		t.params.Set(b.key, b.at(f))
	}
	t.Done = finished
}

func (b blendKey) at(f float64) Value {
	switch b.kind {
	case KindNumber:
		return Number(lerp(b.fromNum, b.toNum, f))
	case KindVector:
		v := lerpVec3(b.fromVec, b.toVec, f)
		return Vector(v[0], v[1], v[2])
	}
	c := b.fromCol.Mix(b.toCol, f)
	if b.asString {
		return String(c.Hex())
	}
	return ColorValue(c)
}
