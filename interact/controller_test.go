package interact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarlune/signboard"
)

func TestHelloScenario(t *testing.T) {

	c := newTestController(t, nil)

	activations := []ContentActivated{}
	c.OnActivate(func(e ContentActivated) { activations = append(activations, e) })

	c.SetDisplayedText("Hello")
	c.Tick()

	content := c.Content()
	require.False(t, content.IsZero())
	assert.Equal(t, "Hello", content.Source)

	text, ok := content.Interactive.(*signboard.Model)
	require.True(t, ok, "the interactive node should be the text model")
	require.False(t, text.Mesh.IsEmpty())

	assert.True(t, c.ClickNDC(frontPoint(t, c, text)))

	require.Len(t, activations, 1)
	assert.Equal(t, content.Interactive, activations[0].Node)
	assert.Equal(t, content.Generation, activations[0].Handle.Generation)

}

func TestTextIsCenteredInFrontOfPanel(t *testing.T) {

	c := newTestController(t, nil)
	c.SetDisplayedText("Hello")

	text := c.Content().Interactive.(*signboard.Model)
	dim := text.WorldDimensions()

	assert.InDelta(t, 0, dim.Center().X, 1e-4)
	assert.InDelta(t, 0, dim.Center().Y, 1e-4)
	assert.InDelta(t, TextZ, dim.Center().Z, 1e-4)

	panel, ok := c.Content().Root.Get("Panel").(*signboard.Model)
	require.True(t, ok)
	assert.InDelta(t, PanelZ+PanelDepth/2, panel.WorldDimensions().Max.Z, 1e-4)
	assert.Less(t, panel.WorldDimensions().Max.Z, dim.Min.Z)

}

func TestClickOffTarget(t *testing.T) {

	c := newTestController(t, nil)

	activated := 0
	c.OnActivate(func(ContentActivated) { activated++ })

	c.SetDisplayedText("Hello")

	// Empty space.
	assert.False(t, c.ClickNDC(signboard.Vector2{X: 0.95, Y: 0.95}))

	// The panel's corner, away from the text.
	corner := c.Camera().WorldToNDC(signboard.Vector3{X: PanelWidth/2 - 0.1, Y: PanelHeight/2 - 0.1, Z: PanelZ})
	assert.False(t, c.ClickNDC(corner))

	assert.Zero(t, activated)

}

func TestClickWithoutContent(t *testing.T) {
	c := newTestController(t, nil)
	assert.False(t, c.ClickNDC(signboard.Vector2{}))
	assert.False(t, c.Click(400, 300))
}

func TestHoverTransitionsOnce(t *testing.T) {

	c := newTestController(t, nil)
	c.SetDisplayedText("Hello")
	c.Tick()

	cursors := []Cursor{}
	c.OnCursorChange(func(cur Cursor) { cursors = append(cursors, cur) })

	state, _ := c.State()
	require.Equal(t, StateIdle, state, "nothing is hovered before the pointer is known")

	text := c.Content().Interactive.(*signboard.Model)
	rev := c.Highlight().Revision()

	c.Pointer().Set(frontPoint(t, c, text))
	for i := 0; i < 5; i++ {
		c.Tick()
	}

	state, hovered := c.State()
	assert.Equal(t, StateHovering, state)
	assert.Equal(t, signboard.INode(text), hovered)
	assert.Equal(t, rev+1, c.Highlight().Revision(), "the selection is set once while hovering")
	assert.True(t, c.Highlight().Selected(text))
	assert.Equal(t, CursorPointer, c.Cursor())
	assert.Equal(t, []Cursor{CursorPointer}, cursors)

	c.PointerLeft()
	c.Tick()
	c.Tick()

	state, hovered = c.State()
	assert.Equal(t, StateIdle, state)
	assert.Nil(t, hovered)
	assert.True(t, c.Highlight().IsEmpty())
	assert.Equal(t, rev+2, c.Highlight().Revision())
	assert.Equal(t, []Cursor{CursorPointer, CursorDefault}, cursors)

}

func TestPointerMovedInPixels(t *testing.T) {

	c := newTestController(t, nil)
	c.SetDisplayedText("Hello")

	text := c.Content().Interactive.(*signboard.Model)
	px := c.Camera().NDCToPixels(frontPoint(t, c, text))

	c.PointerMoved(float64(px.X), float64(px.Y))
	c.Tick()

	state, _ := c.State()
	assert.Equal(t, StateHovering, state)

	assert.True(t, c.Click(float64(px.X), float64(px.Y)))

}

func TestReplaceLeavesOneSubtree(t *testing.T) {

	c := newTestController(t, nil)

	c.SetDisplayedText("First")
	first := c.Content()

	c.SetDisplayedText("Second")
	second := c.Content()

	roots := contentRoots(c)
	require.Len(t, roots, 1)
	assert.Equal(t, second.Root, roots[0])
	assert.Nil(t, first.Root.Parent(), "the old content is detached")
	assert.Greater(t, second.Generation, first.Generation)

}

func TestReplaceClearsHighlight(t *testing.T) {

	c := newTestController(t, nil)
	c.SetDisplayedText("Hello")

	text := c.Content().Interactive.(*signboard.Model)
	c.Pointer().Set(frontPoint(t, c, text))
	c.Tick()
	require.False(t, c.Highlight().IsEmpty())

	c.SetDisplayedText("Bye")

	assert.True(t, c.Highlight().IsEmpty())
	state, _ := c.State()
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, CursorDefault, c.Cursor())

}

func TestEmptyTextIsValid(t *testing.T) {

	c := newTestController(t, nil)
	c.SetDisplayedText("")

	content := c.Content()
	require.False(t, content.IsZero())

	text := content.Interactive.(*signboard.Model)
	assert.True(t, text.Mesh.IsEmpty())
	assert.NotNil(t, content.Root.Get("Panel"))

	// The panel is still there, but nothing can be activated.
	assert.False(t, c.ClickNDC(signboard.Vector2{}))

}

func TestLoadModel(t *testing.T) {

	c := newTestController(t, newGatedFetcher(t))

	results := []error{}
	c.OnLoaded(func(_ ContentHandle, err error) { results = append(results, err) })

	c.SetDisplayedText("Hello")
	pending := c.LoadModel("model.glb", "Quad")
	assert.True(t, pending.IsZero())

	c.Wait()

	// The scene isn't touched until the next tick.
	assert.Equal(t, "Hello", c.Content().Source)

	c.Tick()

	require.Equal(t, []error{nil}, results)

	content := c.Content()
	assert.Equal(t, "model.glb", content.Source)
	assert.Equal(t, pending.Generation, content.Generation)
	assert.Equal(t, "Quad", content.Interactive.Name())
	require.Len(t, contentRoots(c), 1)

	// The quad faces the camera; clicking its middle activates the content.
	assert.True(t, c.ClickNDC(signboard.Vector2{}))

}

func TestLoadModelWholeRootInteractive(t *testing.T) {

	c := newTestController(t, newGatedFetcher(t))

	c.LoadModel("model.glb", "Missing")
	c.Wait()
	c.Tick()

	content := c.Content()
	assert.Equal(t, content.Root, content.Interactive)
	assert.True(t, c.ClickNDC(signboard.Vector2{}), "hits inside the model count for the whole root")

}

func TestLoadModelInteractiveProperty(t *testing.T) {

	c := newTestController(t, newGatedFetcher(t))

	c.LoadModel("model.glb", "")
	c.Wait()
	c.Tick()

	require.NotNil(t, c.Content().Interactive)
	assert.Equal(t, "Quad", c.Content().Interactive.Name())

}

func TestLoadModelFailure(t *testing.T) {

	fetchErr := errors.New("no such model")

	c := newTestController(t, FetcherFunc(func(ctx context.Context, location string) ([]byte, error) {
		return nil, fetchErr
	}))

	results := []error{}
	c.OnLoaded(func(_ ContentHandle, err error) { results = append(results, err) })

	c.SetDisplayedText("Hello")
	before := c.Content()

	c.LoadModel("missing.glb", "")
	c.Wait()
	c.Tick()

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0], fetchErr)
	assert.Equal(t, before, c.Content(), "a failed load leaves the scene alone")
	assert.Len(t, contentRoots(c), 1)

	c.LoadModel("", "")
	require.Len(t, results, 2)
	assert.ErrorIs(t, results[1], ErrNoContent)

}

func TestLoadModelBadData(t *testing.T) {

	c := newTestController(t, FetcherFunc(func(ctx context.Context, location string) ([]byte, error) {
		return []byte("not a model"), nil
	}))

	var result error
	c.OnLoaded(func(_ ContentHandle, err error) { result = err })

	c.SetDisplayedText("Hello")
	c.LoadModel("broken.glb", "")
	c.Wait()
	c.Tick()

	assert.Error(t, result)
	assert.Equal(t, "Hello", c.Content().Source)

}

func TestLoadModelMalformedAsset(t *testing.T) {

	malformed := []byte(`{"asset":{"version":"2.0"},"scene":0,"scenes":[{"nodes":[0]}],"nodes":[{"mesh":0}],` +
		`"meshes":[{"primitives":[{"attributes":{"POSITION":7}}]}]}`)

	c := newTestController(t, FetcherFunc(func(ctx context.Context, location string) ([]byte, error) {
		if location == "panics.gltf" {
			panic("decoder exploded")
		}
		return malformed, nil
	}))

	results := []error{}
	c.OnLoaded(func(_ ContentHandle, err error) { results = append(results, err) })

	c.SetDisplayedText("Hello")
	before := c.Content()

	c.LoadModel("bad.gltf", "")
	c.Wait()
	c.Tick()

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0], signboard.ErrMalformedGLTF)
	assert.Equal(t, before, c.Content(), "a malformed asset leaves the scene alone")

	c.LoadModel("panics.gltf", "")
	c.Wait()
	c.Tick()

	require.Len(t, results, 2)
	assert.ErrorIs(t, results[1], ErrLoadPanicked)
	assert.Equal(t, before, c.Content())

	// The controller keeps working afterwards.
	c.SetDisplayedText("Still here")
	c.Tick()
	assert.Equal(t, "Still here", c.Content().Source)
	assert.Len(t, contentRoots(c), 1)

}

func TestSlowLoadSupersededFastArrivesFirst(t *testing.T) {

	fetcher := newGatedFetcher(t, "slow.glb")
	c := newTestController(t, fetcher)

	results := map[string]error{}
	c.OnLoaded(func(h ContentHandle, err error) { results[h.Source] = err })

	c.LoadModel("slow.glb", "")
	c.LoadModel("fast.glb", "")

	tickUntil(t, c, func() bool { _, ok := results["fast.glb"]; return ok })
	assert.Equal(t, "fast.glb", c.Content().Source)

	fetcher.release("slow.glb")
	c.Wait()
	c.Tick()

	assert.ErrorIs(t, results["slow.glb"], ErrSuperseded)
	assert.NoError(t, results["fast.glb"])
	assert.Equal(t, "fast.glb", c.Content().Source)
	assert.Len(t, contentRoots(c), 1)

}

func TestSlowLoadSupersededSlowArrivesFirst(t *testing.T) {

	fetcher := newGatedFetcher(t, "slow.glb", "fast.glb")
	c := newTestController(t, fetcher)

	results := map[string]error{}
	c.OnLoaded(func(h ContentHandle, err error) { results[h.Source] = err })

	c.SetDisplayedText("Hello")

	c.LoadModel("slow.glb", "")
	c.LoadModel("fast.glb", "")

	fetcher.release("slow.glb")
	tickUntil(t, c, func() bool { _, ok := results["slow.glb"]; return ok })

	assert.ErrorIs(t, results["slow.glb"], ErrSuperseded)
	assert.Equal(t, "Hello", c.Content().Source, "the superseded model is never attached")

	fetcher.release("fast.glb")
	c.Wait()
	c.Tick()

	assert.NoError(t, results["fast.glb"])
	assert.Equal(t, "fast.glb", c.Content().Source)
	assert.Len(t, contentRoots(c), 1)

}

func TestTextSupersedesPendingLoad(t *testing.T) {

	fetcher := newGatedFetcher(t, "model.glb")
	c := newTestController(t, fetcher)

	var result error
	c.OnLoaded(func(_ ContentHandle, err error) { result = err })

	c.LoadModel("model.glb", "")
	c.SetDisplayedText("Newer")

	fetcher.release("model.glb")
	c.Wait()
	c.Tick()

	assert.ErrorIs(t, result, ErrSuperseded)
	assert.Equal(t, "Newer", c.Content().Source)

}

func TestPostRunsOnTick(t *testing.T) {

	c := newTestController(t, nil)

	done := make(chan struct{})
	go func() {
		c.Post(func(c *Controller) { c.SetDisplayedText("From elsewhere") })
		close(done)
	}()
	<-done

	assert.True(t, c.Content().IsZero())
	c.Tick()
	assert.Equal(t, "From elsewhere", c.Content().Source)

}

func TestCallbackRemove(t *testing.T) {

	c := newTestController(t, nil)
	c.SetDisplayedText("Hello")

	text := c.Content().Interactive.(*signboard.Model)
	point := frontPoint(t, c, text)

	count := 0
	handle := c.OnActivate(func(ContentActivated) { count++ })

	c.ClickNDC(point)
	handle.Remove()
	c.ClickNDC(point)

	assert.Equal(t, 1, count)

	// Removing twice, or a zero handle, is harmless.
	handle.Remove()
	CallbackHandle{}.Remove()

}

func TestControllerTextBuilderSettings(t *testing.T) {

	builder, err := signboard.NewTextMeshBuilder(16)
	require.NoError(t, err)
	builder.Size = 0.5

	c, err := NewController(signboard.NewScene("Test"), signboard.NewCamera(100, 100), &ControllerOptions{TextBuilder: builder})
	require.NoError(t, err)

	c.SetDisplayedText("Hi")
	text := c.Content().Interactive.(*signboard.Model)
	assert.Less(t, text.Mesh.Dimensions.Height(), float32(0.5))
	assert.Equal(t, defaultTextColor(), text.Color)

}

func BenchmarkControllerTick(b *testing.B) {

	b.ReportAllocs()

	c := newTestController(b, nil)
	c.SetDisplayedText("Hello")
	c.Pointer().Set(signboard.Vector2{X: 0.1, Y: 0.05})

	for i := 0; i < b.N; i++ {
		c.Tick()
	}

}
