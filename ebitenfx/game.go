package ebitenfx

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/glimmer"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// TPS is the fixed update rate. Zero keeps Ebitengine's default of 60.
	TPS int
	// ShowFPS draws the HUD overlay. F1 toggles it at runtime.
	ShowFPS bool
}

// Game adapts a Driver and Renderer to ebiten.Game. Each Update drains
// pending presets, then ticks the driver with a fixed 1/TPS delta.
type Game struct {
	Driver   *glimmer.Driver
	Renderer *Renderer
	// Pointer, when set, gets the layout size for unprojection.
	Pointer *CursorPointer
	// Presets are applied to the driver's params before each tick.
	Presets <-chan *glimmer.Preset
	// PresetBlend, when positive, eases each received preset in over that
	// many seconds instead of applying it at once.
	PresetBlend float64
	// OnDraw, when set, runs after the renderer with the last frame.
	OnDraw func(screen *ebiten.Image, f glimmer.FrameState)
	// Script, when set, injects pointer input and screenshots each tick.
	Script *Script
	// ScreenshotDir defaults to "screenshots".
	ScreenshotDir string

	ShowHUD bool
	hud     HUD

	ticks      int
	shots      []string
	transition *glimmer.Transition
}

// NewGame wires d to r. The renderer must be the driver's sink.
func NewGame(d *glimmer.Driver, r *Renderer) *Game {
	return &Game{Driver: d, Renderer: r}
}

// Elapsed returns seconds of simulated time.
func (g *Game) Elapsed() float64 {
	return float64(g.ticks) / float64(ebiten.TPS())
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.ShowHUD = !g.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return g.Step(1 / float64(ebiten.TPS()))
}

// Step advances one tick of dt seconds. Update calls it with 1/TPS; tests
// and tools call it directly.
func (g *Game) Step(dt float64) error {
	if g.Driver == nil {
		return fmt.Errorf("step: no driver")
	}
	if g.Presets != nil {
		if g.PresetBlend > 0 {
			if p := glimmer.LatestPreset(g.Presets); p != nil {
				g.transition = glimmer.NewTransition(g.Driver.Params(), p, g.PresetBlend, ease.InOutQuad)
			}
		} else {
			glimmer.DrainPresets(g.Presets, g.Driver.Params())
		}
	}
	if g.transition != nil {
		g.transition.Update(dt)
		if g.transition.Done {
			g.transition = nil
		}
	}
	if g.Script != nil {
		g.Script.step(g)
	}
	g.ticks++
	f := g.Driver.Tick(float64(g.ticks)*dt, dt)
	if g.ShowHUD {
		g.hud.Update(dt, f)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.Renderer != nil {
		g.Renderer.Draw(screen)
	}
	if g.OnDraw != nil && g.Driver != nil {
		g.OnDraw(screen, g.Driver.Last())
	}
	g.flushScreenshots(screen)
	if g.ShowHUD {
		g.hud.Draw(screen)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Pointer != nil {
		g.Pointer.SetScreenSize(outsideWidth, outsideHeight)
	}
	if g.Driver != nil {
		g.Driver.SetResolution(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs g until it is closed or Escape is pressed.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	g.ShowHUD = cfg.ShowFPS
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
