package engine

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/quadcore/engine/internal/render/ebitenrender"
	"github.com/quadcore/engine/internal/system"
)

// Game adapts a Context to ebiten's fixed-tick loop.
type Game struct {
	ctx    *Context
	device *ebitenrender.Device
	dt     float64
	clear  color.RGBA

	width, height int
}

// NewGame drives ctx at the configured tick rate. device must be the
// backend ctx was created with.
func NewGame(ctx *Context, device *ebitenrender.Device) *Game {
	tps := ctx.cfg.Window.TPS
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	cc := ctx.cfg.Renderer.ClearColor
	ctx.AddSystem(system.NewCameraControlSystem(ctx.camera, keyboard(defaultBindings)))
	return &Game{
		ctx:    ctx,
		device: device,
		dt:     1 / float64(tps),
		clear:  color.RGBA{R: cc[0], G: cc[1], B: cc[2], A: cc[3]},
		width:  ctx.cfg.Window.Width,
		height: ctx.cfg.Window.Height,
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.ctx.Step(g.dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.clear)
	g.device.SetTarget(screen)
	g.ctx.Render(g.width, g.height)
	g.device.SetTarget(nil)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.ctx.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

var defaultBindings = map[system.Action][]ebiten.Key{
	system.ActionPanLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	system.ActionPanRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	system.ActionPanUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	system.ActionPanDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	system.ActionZoomOut:  {ebiten.KeyQ},
	system.ActionZoomIn:   {ebiten.KeyE},
}

// keyboard maps actions to ebiten keys; any bound key held counts.
type keyboard map[system.Action][]ebiten.Key

func (k keyboard) Pressed(a system.Action) bool {
	for _, key := range k[a] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
