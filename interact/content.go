package interact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/solarlune/signboard"
	"github.com/solarlune/signboard/colors"
)

var (
	// ErrSuperseded is reported for a load whose result arrived after a newer content request was made; the result is discarded.
	ErrSuperseded = errors.New("content request superseded by a newer one")
	// ErrNoContent is returned when a provider has nothing to display.
	ErrNoContent = errors.New("no content to display")
	// ErrLoadPanicked is reported for a load whose fetch or decode panicked.
	ErrLoadPanicked = errors.New("model load panicked")
)

// ContentHandle refers to the primary content shown in the scene. Only the handle returned by Controller.Content is current;
// a replacement invalidates the previous one.
type ContentHandle struct {
	Root        signboard.INode // Root of the content subtree; nil while a load is pending
	Interactive signboard.INode // The node (with its children) that reacts to hovering and clicking; may be nil
	Generation  uint64          // Request number; later requests have larger generations
	Source      string          // The text or asset location the content was made from
}

// IsZero returns true if the handle refers to no content.
func (h ContentHandle) IsZero() bool {
	return h.Root == nil
}

// ContentProvider builds content and hands it to the Controller, which swaps it in for the current content.
type ContentProvider interface {
	ReplaceContent(ctx context.Context, c *Controller) (ContentHandle, error)
}

// Panel sizes and offsets for generated content.
const (
	PanelWidth  = 3.5
	PanelHeight = 2
	PanelDepth  = 0.2
	PanelZ      = -0.15 // The panel's center; its front face sits at -0.05
	TextZ       = 0.05  // The text's center; with a depth of 0.1 its back face sits at 0
)

// GeneratedContent shows a piece of 3D text in front of a backing panel. The text is the interactive node.
type GeneratedContent struct {
	Text string
}

// ReplaceContent builds the text and panel synchronously and swaps them in.
func (g GeneratedContent) ReplaceContent(ctx context.Context, c *Controller) (ContentHandle, error) {

	if err := ctx.Err(); err != nil {
		return ContentHandle{}, err
	}

	c.nextGeneration()

	textMesh := c.textBuilder.Build(g.Text)
	textMesh.Translate(textMesh.Dimensions.Center().Invert())

	text := signboard.NewModel(textMesh, "Text")
	text.Color = c.options.TextColor
	text.SetLocalPosition(0, 0, TextZ)

	panel := signboard.NewModel(signboard.NewBoxMesh(PanelWidth, PanelHeight, PanelDepth), "Panel")
	panel.Color = c.options.PanelColor
	panel.BackfaceCulling = true
	panel.SetLocalPosition(0, 0, PanelZ)

	root := signboard.NewNode("Signboard")
	root.AddChildren(panel, text)

	handle := c.attach(root, text, g.Text)
	c.logger.Debug("displaying text", "text", g.Text, "generation", handle.Generation, "triangles", len(textMesh.Triangles))

	return handle, nil

}

// LoadedContent fetches and decodes a glTF / GLB asset in the background. The scene is left alone while loading; the decoded model
// is swapped in at the start of the next Controller.Tick after it arrives, unless a newer content request was made in the meantime.
type LoadedContent struct {
	Location string
	// Interactive names the node inside the model that should react to the pointer. If empty, the first node whose glTF extras
	// set "interactive" to true is used, and failing that the whole model is interactive.
	Interactive string
	Options     *signboard.GLTFLoadOptions
	// OnLoaded, if set, is called on the render thread with the final handle once the load settles, or with an error
	// (possibly ErrSuperseded) if nothing was attached.
	OnLoaded func(ContentHandle, error)
}

// ReplaceContent starts the load and returns a pending handle carrying only the request's generation.
func (l LoadedContent) ReplaceContent(ctx context.Context, c *Controller) (ContentHandle, error) {

	if err := ctx.Err(); err != nil {
		return ContentHandle{}, err
	}

	if l.Location == "" {
		return ContentHandle{}, fmt.Errorf("load model: %w", ErrNoContent)
	}

	gen := c.nextGeneration()
	pending := ContentHandle{Generation: gen, Source: l.Location}

	c.logger.Info("loading model", "location", l.Location, "generation", gen)

	c.loads.Add(1)

	go func() {

		defer c.loads.Done()

		root, err := l.load(ctx, c.fetcher)

		c.Post(func(c *Controller) {
			handle, err := c.completeLoad(pending, l, root, err)
			if l.OnLoaded != nil {
				l.OnLoaded(handle, err)
			}
			c.handlers.emitLoaded(handle, err)
		})

	}()

	return pending, nil

}

// load fetches and decodes the model off the render thread. A panic while fetching or decoding is returned as ErrLoadPanicked.
func (l LoadedContent) load(ctx context.Context, fetcher Fetcher) (root signboard.INode, err error) {

	defer func() {
		if r := recover(); r != nil {
			root = nil
			err = fmt.Errorf("load model %s: %w: %v", l.Location, ErrLoadPanicked, r)
		}
	}()

	data, err := fetcher.Fetch(ctx, l.Location)
	if err == nil {
		root, err = signboard.LoadGLTFModel(data, l.Options)
	}

	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", l.Location, err)
	}

	return root, nil

}

// completeLoad runs on the render thread and attaches a loaded model if it is still the latest request.
func (c *Controller) completeLoad(pending ContentHandle, l LoadedContent, root signboard.INode, err error) (ContentHandle, error) {

	if err != nil {
		c.logger.Error("model load failed", "location", l.Location, "generation", pending.Generation, "error", err)
		return pending, err
	}

	if pending.Generation != c.generation {
		c.logger.Debug("discarding superseded model", "location", l.Location, "generation", pending.Generation, "current", c.generation)
		return pending, ErrSuperseded
	}

	interactive := root
	if l.Interactive != "" {
		if found := signboard.FindByName(root, l.Interactive); found != nil {
			interactive = found
		} else {
			c.logger.Warn("interactive node not found in model; using the whole model", "name", l.Interactive, "location", l.Location)
		}
	} else if marked := signboard.FindByProperty(root, signboard.PropertyInteractive); marked != nil {
		interactive = marked
	}

	handle := c.attach(root, interactive, l.Location)
	c.logger.Info("model loaded", "location", l.Location, "generation", handle.Generation)
	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("loaded model hierarchy", "location", l.Location, "tree", root.HierarchyAsString())
	}

	return handle, nil

}

func defaultTextColor() signboard.Color  { return colors.Green() }
func defaultPanelColor() signboard.Color { return colors.White() }
