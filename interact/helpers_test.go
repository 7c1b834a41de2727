package interact

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"

	"github.com/solarlune/signboard"
)

// newTestController creates a controller over a scene with the camera 5 units back from the origin, as the signboard app sets it up.
func newTestController(t testing.TB, fetcher Fetcher) *Controller {

	scene := signboard.NewScene("Test")
	scene.World.AmbientLight = signboard.NewAmbientLight("ambient", 1, 1, 1, 1)

	camera := signboard.NewCamera(800, 600)
	camera.SetFieldOfView(70)
	camera.SetLocalPosition(0, 0, 5)
	scene.Root.AddChildren(camera)

	c, err := NewController(scene, camera, &ControllerOptions{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Fetcher: fetcher,
	})
	require.NoError(t, err)

	return c

}

// contentRoots returns the scene root's children that aren't the camera.
func contentRoots(c *Controller) []signboard.INode {
	out := []signboard.INode{}
	for _, child := range c.Scene().Root.Children() {
		if child != signboard.INode(c.Camera()) {
			out = append(out, child)
		}
	}
	return out
}

// frontPoint returns the NDC position of the center of a front-facing triangle of the model, which a pick there is sure to hit.
func frontPoint(t testing.TB, c *Controller, model *signboard.Model) signboard.Vector2 {
	for _, tri := range model.Mesh.Triangles {
		if tri.Normal.Z > 0.5 {
			return c.Camera().WorldToNDC(model.Transform().MultVec(tri.Center))
		}
	}
	t.Fatalf("model %s has no front-facing triangles", model.Name())
	return signboard.Vector2{}
}

// testGLB encodes a binary glTF document with a single quad named "Quad" under a node named "Holder". The quad is marked interactive
// through its extras.
func testGLB(t testing.TB) []byte {

	doc := gltf.NewDocument()

	pos := modeler.WritePosition(doc, [][3]float32{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}})
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "Quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
		}},
	})

	holder := &gltf.Node{Name: "Holder"}
	holder.Children = append(holder.Children, 1)

	doc.Nodes = append(doc.Nodes, holder, &gltf.Node{Name: "Quad", Mesh: gltf.Index(0), Extras: map[string]any{"interactive": true}})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	buf := &bytes.Buffer{}
	enc := gltf.NewEncoder(buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(doc))

	return buf.Bytes()

}

// gatedFetcher serves the same model for every location, but each location blocks until it's released.
type gatedFetcher struct {
	data  []byte
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func newGatedFetcher(t testing.TB, locations ...string) *gatedFetcher {
	f := &gatedFetcher{data: testGLB(t), gates: map[string]chan struct{}{}}
	for _, l := range locations {
		f.gates[l] = make(chan struct{})
	}
	return f
}

func (f *gatedFetcher) release(location string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	close(f.gates[location])
}

func (f *gatedFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	f.mu.Lock()
	gate, ok := f.gates[location]
	f.mu.Unlock()
	if ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.data, nil
}

// tickUntil ticks the controller until cond is true, failing the test if that takes too long.
func tickUntil(t testing.TB, c *Controller, cond func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the controller")
		}
		time.Sleep(time.Millisecond)
		c.Tick()
	}
}
