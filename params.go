package glimmer

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind identifies which field of a Value is meaningful.
type Kind uint8

const (
	KindNumber Kind = iota // Num
	KindString             // Str
	KindVector             // Vec
	KindColor              // Color
	KindBool               // Bool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindVector:
		return "vector"
	case KindColor:
		return "color"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is the current setting of one tunable parameter.
type Value struct {
	Kind  Kind
	Num   float64
	Str   string
	Vec   mgl64.Vec3
	Color Color
	Bool  bool
}

// Number returns a numeric Value.
func Number(v float64) Value { return Value{Kind: KindNumber, Num: v} }

// String returns a string Value. Hex color strings stay strings here; the
// driver resolves them into colors when building uniforms.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Vector returns a 3-component vector Value.
func Vector(x, y, z float64) Value { return Value{Kind: KindVector, Vec: mgl64.Vec3{x, y, z}} }

// ColorValue returns a color Value.
func ColorValue(c Color) Value { return Value{Kind: KindColor, Color: c} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == o.Num || (math.IsNaN(v.Num) && math.IsNaN(o.Num))
	case KindString:
		return v.Str == o.Str
	case KindVector:
		return v.Vec == o.Vec
	case KindColor:
		return v.Color == o.Color
	case KindBool:
		return v.Bool == o.Bool
	}
	return false
}

// Parameter declares one tunable knob.
type Parameter struct {
	Key    string
	Value  Value
	Range  *Range
	Label  string
	Folder string
}

type changeHandler struct {
	id uint32
	fn func(key string, v Value)
}

// CallbackHandle allows removing a registered change callback.
type CallbackHandle struct {
	id    uint32
	key   string
	store *Params
}

// Remove unregisters this callback so it no longer fires. Safe to call more
// than once, and safe on the zero handle.
func (h CallbackHandle) Remove() {
	if h.store == nil {
		return
	}
	if h.key == "" {
		h.store.any = removeChangeHandler(h.store.any, h.id)
		return
	}
	h.store.subs[h.key] = removeChangeHandler(h.store.subs[h.key], h.id)
	if len(h.store.subs[h.key]) == 0 {
		delete(h.store.subs, h.key)
	}
}

func removeChangeHandler(s []changeHandler, id uint32) []changeHandler {
	// Copy instead of shifting in place: Remove may run from inside notify
	// while the old slice is still being iterated.
	for i, h := range s {
		if h.id == id {
			out := make([]changeHandler, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

// Params holds the current value of every tunable knob and notifies
// subscribers when one changes. It has a single writer (the control surface)
// and is read from inside the frame callback, so it does no locking.
type Params struct {
	params map[string]*Parameter
	order  []string
	subs   map[string][]changeHandler
	any    []changeHandler
	nextID uint32
}

// NewParams creates an empty store.
func NewParams() *Params {
	return &Params{
		params: make(map[string]*Parameter),
		subs:   make(map[string][]changeHandler),
	}
}

// Define declares a parameter, or replaces its declaration if the key
// already exists. Subscribers are notified when the value differs from the
// previous one.
func (p *Params) Define(param Parameter) {
	prev, ok := p.params[param.Key]
	cp := param
	if !ok {
		p.order = append(p.order, param.Key)
	}
	p.params[param.Key] = &cp
	if !ok || !prev.Value.Equal(param.Value) {
		p.notify(param.Key, param.Value)
	}
}

// DefineAll declares every parameter in order.
func (p *Params) DefineAll(params []Parameter) {
	for _, param := range params {
		p.Define(param)
	}
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (Value, bool) {
	param, ok := p.params[key]
	if !ok {
		return Value{}, false
	}
	return param.Value, true
}

// Parameter returns a copy of the declaration for key.
func (p *Params) Parameter(key string) (Parameter, bool) {
	param, ok := p.params[key]
	if !ok {
		return Parameter{}, false
	}
	return *param, true
}

// Set stores v under key and synchronously notifies subscribers. The value
// is not validated against the declared range; consumers clamp when they
// need to. Setting an undeclared key declares it without a range.
func (p *Params) Set(key string, v Value) {
	param, ok := p.params[key]
	if !ok {
		p.params[key] = &Parameter{Key: key, Value: v}
		p.order = append(p.order, key)
	} else {
		param.Value = v
	}
	p.notify(key, v)
}

// SetFloat is shorthand for Set(key, Number(v)).
func (p *Params) SetFloat(key string, v float64) {
	p.Set(key, Number(v))
}

// SetColorHex parses s and stores it as a color value.
func (p *Params) SetColorHex(key, s string) error {
	c, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	p.Set(key, ColorValue(c))
	return nil
}

// OnChange registers fn to run whenever key is set.
func (p *Params) OnChange(key string, fn func(key string, v Value)) CallbackHandle {
	p.nextID++
	p.subs[key] = append(p.subs[key], changeHandler{id: p.nextID, fn: fn})
	return CallbackHandle{id: p.nextID, key: key, store: p}
}

// OnAnyChange registers fn to run whenever any key is set.
func (p *Params) OnAnyChange(fn func(key string, v Value)) CallbackHandle {
	p.nextID++
	p.any = append(p.any, changeHandler{id: p.nextID, fn: fn})
	return CallbackHandle{id: p.nextID, store: p}
}

func (p *Params) notify(key string, v Value) {
	for _, h := range p.subs[key] {
		h.fn(key, v)
	}
	for _, h := range p.any {
		h.fn(key, v)
	}
}

// Keys returns every key in declaration order.
func (p *Params) Keys() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Folder returns the keys declared under folder, in declaration order.
func (p *Params) Folder(folder string) []string {
	var out []string
	for _, k := range p.order {
		if p.params[k].Folder == folder {
			out = append(out, k)
		}
	}
	return out
}

// Snapshot copies every current value into a new map.
func (p *Params) Snapshot() map[string]Value {
	out := make(map[string]Value, len(p.params))
	for k, param := range p.params {
		out[k] = param.Value
	}
	return out
}

// Float returns the numeric value of key, or fallback if it is missing or
// not a number. Booleans read as 0 or 1.
func (p *Params) Float(key string, fallback float64) float64 {
	v, ok := p.Get(key)
	if !ok {
		return fallback
	}
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	}
	return fallback
}

// Int returns the value of key rounded to the nearest integer. Values
// beyond the int32 range saturate; consumers still clamp to their own limits.
func (p *Params) Int(key string, fallback int) int {
	v, ok := p.Get(key)
	if !ok || v.Kind != KindNumber || math.IsNaN(v.Num) {
		return fallback
	}
	return int(math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Round(v.Num))))
}

// Bool returns the boolean value of key, or fallback.
func (p *Params) Bool(key string, fallback bool) bool {
	v, ok := p.Get(key)
	if !ok {
		return fallback
	}
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num != 0
	}
	return fallback
}

// String returns the string value of key, or fallback.
func (p *Params) String(key, fallback string) string {
	v, ok := p.Get(key)
	if !ok || v.Kind != KindString {
		return fallback
	}
	return v.Str
}

// Vector returns the vector value of key, or fallback.
func (p *Params) Vector(key string, fallback mgl64.Vec3) mgl64.Vec3 {
	v, ok := p.Get(key)
	if !ok || v.Kind != KindVector {
		return fallback
	}
	return v.Vec
}

// Color returns the color value of key. Hex strings are parsed on the fly;
// callers reading colors every tick should cache through OnChange instead.
func (p *Params) Color(key string, fallback Color) Color {
	v, ok := p.Get(key)
	if !ok {
		return fallback
	}
	c, ok := resolveColor(v)
	if !ok {
		return fallback
	}
	return c
}

// resolveColor converts a color value or a hex string into a Color.
func resolveColor(v Value) (Color, bool) {
	switch v.Kind {
	case KindColor:
		return v.Color, true
	case KindString:
		if !strings.HasPrefix(v.Str, "#") {
			return Color{}, false
		}
		c, err := ParseHexColor(v.Str)
		if err != nil {
			return Color{}, false
		}
		return c, true
	}
	return Color{}, false
}
