package interact

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/solarlune/signboard"
)

// State is the interaction state of the Controller.
type State int

const (
	StateIdle     State = iota // The pointer isn't over the interactive node
	StateHovering              // The pointer is over the interactive node
)

func (s State) String() string {
	if s == StateHovering {
		return "hovering"
	}
	return "idle"
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Logger      *slog.Logger
	Fetcher     Fetcher                    // Used by LoadedContent; defaults to a DefaultFetcher without progress output
	TextBuilder *signboard.TextMeshBuilder // Used by GeneratedContent; defaults to Go Regular at 32 pixels per em
	TextColor   signboard.Color
	PanelColor  signboard.Color
	// Context is the parent of the contexts background loads run with; cancelling it abandons in-flight loads.
	Context context.Context
}

// DefaultControllerOptions creates an instance of ControllerOptions with green text on a white panel.
func DefaultControllerOptions() *ControllerOptions {
	return &ControllerOptions{
		TextColor:  defaultTextColor(),
		PanelColor: defaultPanelColor(),
	}
}

// Controller owns a scene's interactive state: the current content, hover state, the highlight selection, and the pointer.
// Apart from Post and the PointerState, its methods must be called from the render thread
// (i.e. from within ebiten's Update).
type Controller struct {
	scene     *signboard.Scene
	camera    *signboard.Camera
	viewport  *Viewport
	highlight *Highlight
	pointer   *PointerState
	logger    *slog.Logger
	options   *ControllerOptions

	fetcher     Fetcher
	textBuilder *signboard.TextMeshBuilder
	ctx         context.Context

	state      State
	hovered    signboard.INode
	cursor     Cursor
	content    ContentHandle
	generation uint64

	mailboxMu sync.Mutex
	mailbox   []func(*Controller)
	loads     sync.WaitGroup

	handlers handlerRegistry
}

// NewController creates a Controller for the scene, viewed through the camera. Passing nil for options uses DefaultControllerOptions.
func NewController(scene *signboard.Scene, camera *signboard.Camera, options *ControllerOptions) (*Controller, error) {

	if options == nil {
		options = DefaultControllerOptions()
	}

	opts := *options
	if opts.TextColor == (signboard.Color{}) {
		opts.TextColor = defaultTextColor()
	}
	if opts.PanelColor == (signboard.Color{}) {
		opts.PanelColor = defaultPanelColor()
	}
	options = &opts

	c := &Controller{
		scene:     scene,
		camera:    camera,
		highlight: NewHighlight(),
		pointer:   &PointerState{},
		logger:    options.Logger,
		options:   options,
		fetcher:   options.Fetcher,
		ctx:       options.Context,
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.fetcher == nil {
		c.fetcher = NewDefaultFetcher(false)
	}

	if c.ctx == nil {
		c.ctx = context.Background()
	}

	c.textBuilder = options.TextBuilder
	if c.textBuilder == nil {
		tb, err := signboard.NewTextMeshBuilder(32)
		if err != nil {
			return nil, fmt.Errorf("create controller: %w", err)
		}
		c.textBuilder = tb
	}

	c.viewport = NewViewport(camera, c.highlight, c.logger)
	w, h := camera.Size()
	c.highlight.Resize(w, h)

	return c, nil

}

func (c *Controller) Scene() *signboard.Scene   { return c.scene }
func (c *Controller) Camera() *signboard.Camera { return c.camera }
func (c *Controller) Viewport() *Viewport       { return c.viewport }
func (c *Controller) Highlight() *Highlight     { return c.highlight }
func (c *Controller) Pointer() *PointerState    { return c.pointer }

// State returns the interaction state, and the hovered node while Hovering.
func (c *Controller) State() (State, signboard.INode) {
	return c.state, c.hovered
}

// Cursor returns the pointer affordance the presentation layer should show.
func (c *Controller) Cursor() Cursor {
	return c.cursor
}

// Content returns the handle of the content currently attached to the scene.
func (c *Controller) Content() ContentHandle {
	return c.content
}

// Replace asks the provider to replace the current content.
func (c *Controller) Replace(ctx context.Context, provider ContentProvider) (ContentHandle, error) {
	return provider.ReplaceContent(ctx, c)
}

// SetDisplayedText replaces the current content with generated text. Empty text is valid and shows just the panel.
func (c *Controller) SetDisplayedText(text string) {
	if _, err := c.Replace(c.ctx, GeneratedContent{Text: text}); err != nil {
		c.logger.Error("could not display text", "text", text, "error", err)
	}
}

// LoadModel starts loading a glTF / GLB model to replace the current content; interactive optionally names the node inside the model
// that reacts to the pointer. The returned handle only carries the request's generation; register with OnLoaded to learn the outcome.
func (c *Controller) LoadModel(location, interactive string) ContentHandle {
	handle, err := c.Replace(c.ctx, LoadedContent{Location: location, Interactive: interactive})
	if err != nil {
		c.logger.Error("could not load model", "location", location, "error", err)
		c.handlers.emitLoaded(handle, err)
	}
	return handle
}

// Post queues a function to run on the render thread at the start of the next Tick. It's safe to call from any goroutine.
func (c *Controller) Post(fn func(*Controller)) {
	c.mailboxMu.Lock()
	c.mailbox = append(c.mailbox, fn)
	c.mailboxMu.Unlock()
}

// Wait blocks until every background load has finished and queued its result. The results are applied by the next Tick.
func (c *Controller) Wait() {
	c.loads.Wait()
}

// OnActivate registers a callback run when the interactive node is clicked.
func (c *Controller) OnActivate(fn func(ContentActivated)) CallbackHandle {
	return c.handlers.addActivate(fn)
}

// OnLoaded registers a callback run on the render thread whenever a model load settles.
func (c *Controller) OnLoaded(fn func(ContentHandle, error)) CallbackHandle {
	return c.handlers.addLoaded(fn)
}

// OnCursorChange registers a callback run when the pointer affordance changes.
func (c *Controller) OnCursorChange(fn func(Cursor)) CallbackHandle {
	return c.handlers.addCursor(fn)
}

// PointerMoved records the pointer position in surface pixels.
func (c *Controller) PointerMoved(x, y float64) {
	c.pointer.Set(c.viewport.PixelsToNDC(x, y))
}

// PointerLeft forgets the pointer position, so nothing is hovered on the next Tick.
func (c *Controller) PointerLeft() {
	c.pointer.Clear()
}

// Tick runs one frame of interaction: queued work and finished loads are applied, then the pointer is picked against the scene
// and the hover state updated. The highlight and cursor only change when the state does.
func (c *Controller) Tick() {

	c.drainMailbox()

	ndc, known := c.pointer.Snapshot()

	over := false
	if known {
		over = c.isInteractive(c.pick(ndc))
	}

	switch {

	case c.state == StateIdle && over:
		c.state = StateHovering
		c.hovered = c.content.Interactive
		c.highlight.SetSelection(c.hovered)
		c.setCursor(CursorPointer)

	case c.state == StateHovering && !over:
		c.state = StateIdle
		c.hovered = nil
		c.highlight.Clear()
		c.setCursor(CursorDefault)

	}

}

// Click handles a click at surface pixel coordinates; see ClickNDC.
func (c *Controller) Click(x, y float64) bool {
	return c.ClickNDC(c.viewport.PixelsToNDC(x, y))
}

// ClickNDC picks the scene at the position (in normalized device coordinates) right away, and emits ContentActivated if the
// interactive node was hit. It returns whether the content was activated.
func (c *Controller) ClickNDC(ndc signboard.Vector2) bool {

	c.pointer.Set(ndc)

	if !c.isInteractive(c.pick(ndc)) {
		return false
	}

	c.logger.Debug("content activated", "node", c.content.Interactive.Name(), "generation", c.content.Generation)
	c.handlers.emitActivate(ContentActivated{Node: c.content.Interactive, Handle: c.content})

	return true

}

func (c *Controller) pick(ndc signboard.Vector2) signboard.INode {
	if hit := signboard.Pick(ndc, c.camera, c.scene.Root); hit != nil {
		return hit.Object
	}
	return nil
}

// isInteractive returns true if the node is the interactive node of the current content or one of its descendants.
func (c *Controller) isInteractive(node signboard.INode) bool {
	target := c.content.Interactive
	if target == nil {
		return false
	}
	for n := node; n != nil; n = n.Parent() {
		if n == target {
			return true
		}
	}
	return false
}

func (c *Controller) setCursor(cursor Cursor) {
	if c.cursor == cursor {
		return
	}
	c.cursor = cursor
	c.handlers.emitCursor(cursor)
}

func (c *Controller) nextGeneration() uint64 {
	c.generation++
	return c.generation
}

// attach swaps the content subtree: the old one is detached and the selection cleared before the new one goes in,
// so the scene never holds two and the highlight never refers to a detached node.
func (c *Controller) attach(root, interactive signboard.INode, source string) ContentHandle {

	if c.content.Root != nil {
		c.content.Root.Unparent()
	}

	c.highlight.Clear()

	c.scene.Root.AddChildren(root)

	c.content = ContentHandle{
		Root:        root,
		Interactive: interactive,
		Generation:  c.generation,
		Source:      source,
	}

	c.state = StateIdle
	c.hovered = nil
	c.setCursor(CursorDefault)

	return c.content

}

func (c *Controller) drainMailbox() {

	c.mailboxMu.Lock()
	queued := c.mailbox
	c.mailbox = nil
	c.mailboxMu.Unlock()

	for _, fn := range queued {
		fn(c)
	}

}
