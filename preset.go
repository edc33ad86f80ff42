package glimmer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a preset file encoding.
type Format uint8

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the file extension. Anything that is
// not .toml is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Preset is a named set of parameter values. Values are numbers, strings
// (hex colors included), booleans, or 3-element lists for vectors.
type Preset struct {
	Name   string         `yaml:"name" toml:"name"`
	Params map[string]any `yaml:"params" toml:"params"`
}

// LoadPreset reads and parses a preset file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load preset %s: %w", path, err)
	}
	p, err := ParsePreset(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load preset %s: %w", path, err)
	}
	return p, nil
}

// ParsePreset decodes a preset and checks every value is representable.
func ParsePreset(data []byte, format Format) (*Preset, error) {
	var p Preset
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &p)
	default:
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s preset: %w", format, err)
	}
	for k, raw := range p.Params {
		if _, err := presetValue(raw); err != nil {
			return nil, fmt.Errorf("parse %s preset: key %q: %w", format, k, err)
		}
	}
	return &p, nil
}

// Apply sets every value of the preset on params in key order.
func (p *Preset) Apply(params *Params) {
	keys := make([]string, 0, len(p.Params))
	for k := range p.Params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v, err := presetValue(p.Params[k])
		if err != nil {
			continue
		}
		params.Set(k, v)
	}
}

// CapturePreset records the current value of every parameter in params.
func CapturePreset(name string, params *Params) *Preset {
	p := &Preset{Name: name, Params: make(map[string]any)}
	for _, k := range params.Keys() {
		v, _ := params.Get(k)
		switch v.Kind {
		case KindNumber:
			p.Params[k] = v.Num
		case KindString:
			p.Params[k] = v.Str
		case KindBool:
			p.Params[k] = v.Bool
		case KindVector:
			p.Params[k] = []float64{v.Vec[0], v.Vec[1], v.Vec[2]}
		case KindColor:
			p.Params[k] = v.Color.Hex()
		}
	}
	return p
}

// Marshal encodes the preset in format.
func (p *Preset) Marshal(format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(&buf).Encode(p)
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(p)
		if err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s preset: %w", format, err)
	}
	return buf.Bytes(), nil
}

func presetValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case float64:
		return Number(v), nil
	case float32:
		return Number(float64(v)), nil
	case int:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case []any:
		if len(v) != 3 {
			return Value{}, fmt.Errorf("vector needs 3 components, got %d", len(v))
		}
		var out [3]float64
		for i, c := range v {
			n, err := presetValue(c)
			if err != nil || n.Kind != KindNumber {
				return Value{}, fmt.Errorf("vector component %d is not a number", i)
			}
			out[i] = n.Num
		}
		return Vector(out[0], out[1], out[2]), nil
	case []float64:
		if len(v) != 3 {
			return Value{}, fmt.Errorf("vector needs 3 components, got %d", len(v))
		}
		return Vector(v[0], v[1], v[2]), nil
	}
	return Value{}, fmt.Errorf("unsupported value %T", raw)
}

// WatchPreset loads path once, then reloads it whenever it is written. Each
// successful load is delivered on the returned channel; when the frame loop
// falls behind only the newest preset is kept. Parse errors are logged and
// the previous values stay in effect. The channel closes when ctx ends.
func WatchPreset(ctx context.Context, path string) (<-chan *Preset, error) {
	first, err := LoadPreset(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch preset %s: %w", path, err)
	}
	// Editors often replace files by rename, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch preset %s: %w", path, err)
	}

	out := make(chan *Preset, 1)
	out <- first
	name := filepath.Clean(path)

	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				p, err := LoadPreset(path)
				if err != nil {
					Logger().Warn("glimmer: preset reload failed", "path", path, "err", err)
					continue
				}
				Logger().Info("glimmer: preset reloaded", "path", path, "name", p.Name)
				select {
				case <-out:
				default:
				}
				out <- p
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				Logger().Warn("glimmer: preset watcher error", "path", path, "err", err)
			}
		}
	}()
	return out, nil
}

// DrainPresets applies every preset waiting on ch without blocking and
// reports whether any was applied. Call it from the frame loop before Tick.
func DrainPresets(ch <-chan *Preset, params *Params) bool {
	applied := false
	for {
		select {
		case p, ok := <-ch:
			if !ok || p == nil {
				return applied
			}
			p.Apply(params)
			applied = true
		default:
			return applied
		}
	}
}

// LatestPreset returns the newest preset waiting on ch without blocking, or
// nil if none is waiting. Older presets still queued are discarded.
func LatestPreset(ch <-chan *Preset) *Preset {
	var latest *Preset
	for {
		select {
		case p, ok := <-ch:
			if !ok {
				return latest
			}
			if p != nil {
				latest = p
			}
		default:
			return latest
		}
	}
}
