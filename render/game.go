package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/solarlune/signboard/interact"
)

// dragThreshold is how far (in pixels) the pointer has to move with the button held before a press counts as a drag rather than a click.
const dragThreshold = 4

// Game runs a signboard as an ebiten.Game. Dragging orbits the camera, the wheel zooms, and a click without a drag activates
// the content under the pointer.
type Game struct {
	Loop     *interact.Loop
	Renderer *Renderer

	// Quit, if set, is polled every Update; the game ends once it returns true.
	Quit func() bool

	pressX, pressY int
	lastX, lastY   int
	pressed        bool
	dragging       bool

	width, height int
}

// NewGame creates a Game running the loop and drawing with the renderer, which also becomes the loop's Presenter.
func NewGame(loop *interact.Loop, renderer *Renderer) *Game {
	loop.Presenter = renderer
	w, h := loop.Controller.Viewport().Size()
	return &Game{
		Loop:     loop,
		Renderer: renderer,
		width:    w,
		height:   h,
	}
}

func (g *Game) Update() error {

	if g.Quit != nil && g.Quit() {
		return ebiten.Termination
	}

	controller := g.Loop.Controller

	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < g.width && y < g.height

	if inside {
		controller.PointerMoved(float64(x), float64(y))
	} else {
		controller.PointerLeft()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressed = true
		g.dragging = false
		g.pressX, g.pressY = x, y
		g.lastX, g.lastY = x, y
	}

	if g.pressed && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {

		dx, dy := x-g.pressX, y-g.pressY
		if !g.dragging && dx*dx+dy*dy > dragThreshold*dragThreshold {
			g.dragging = true
		}

		if g.dragging && g.Loop.Orbit != nil {
			g.Loop.Orbit.Rotate(float32(x-g.lastX), float32(y-g.lastY))
		}

		g.lastX, g.lastY = x, y

	}

	if g.pressed && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if !g.dragging && inside {
			controller.Click(float64(x), float64(y))
		}
		g.pressed = false
		g.dragging = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 && g.Loop.Orbit != nil {
		g.Loop.Orbit.Zoom(float32(wy))
	}

	g.Loop.Step(1 / float32(ebiten.TPS()))

	return nil

}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Renderer.Draw(screen)
}

// Layout sizes the viewport after the window. A zero-sized window (e.g. while minimized) keeps the last valid size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Loop.Controller.Viewport().Configure(outsideWidth, outsideHeight)
	g.width, g.height = g.Loop.Controller.Viewport().Size()
	return g.width, g.height
}
