package ebitenfx

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/glimmer"
)

// scriptStep is one action of a capture script.
type scriptStep struct {
	Action string         `json:"action"`
	Label  string         `json:"label,omitempty"`
	X      float64        `json:"x,omitempty"`
	Y      float64        `json:"y,omitempty"`
	FromX  float64        `json:"fromX,omitempty"`
	FromY  float64        `json:"fromY,omitempty"`
	ToX    float64        `json:"toX,omitempty"`
	ToY    float64        `json:"toY,omitempty"`
	Frames int            `json:"frames,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected pointer input, parameter changes and
// screenshots across frames, for recording a scene without a human at the
// mouse. Attach it with Game.Script.
//
// Actions: "move" (x, y), "leave", "sweep" (fromX, fromY, toX, toY,
// frames), "wait" (frames), "params" (params) and "screenshot" (label).
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON capture script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "move", "leave", "sweep", "wait", "params", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool { return s.done }

// step runs at most one action per frame. It waits for injected pointer
// samples to drain before advancing.
func (s *Script) step(g *Game) {
	if s.done {
		return
	}
	if g.Pointer != nil && g.Pointer.Queued() > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "move":
		if g.Pointer != nil {
			g.Pointer.InjectMove(st.X, st.Y)
		}
	case "leave":
		if g.Pointer != nil {
			g.Pointer.InjectLeave()
		}
	case "sweep":
		if g.Pointer != nil {
			g.Pointer.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		}
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1
		}
	case "params":
		if g.Driver != nil {
			p := &glimmer.Preset{Name: st.Label, Params: st.Params}
			p.Apply(g.Driver.Params())
		}
	case "screenshot":
		g.Screenshot(st.Label)
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && (g.Pointer == nil || g.Pointer.Queued() == 0) {
		s.done = true
	}
}
