package signboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func BenchmarkDrawList(b *testing.B) {

	b.ReportAllocs()

	scene, camera, _ := newPickScene()

	tb, err := NewTextMeshBuilder(32)
	if err != nil {
		b.Fatal(err)
	}
	scene.Root.AddChildren(NewModel(tb.Build("Hello"), "Text"))

	for i := 0; i < b.N; i++ {
		camera.DrawList(scene)
	}

}

func TestDrawListBackfaceCulling(t *testing.T) {

	scene, camera, box := newPickScene()

	all := camera.DrawList(scene)
	assert.Len(t, all, 12)

	// Looking straight at the box, only the two triangles of its front face point towards the camera.
	box.BackfaceCulling = true
	culled := camera.DrawList(scene)
	require.Len(t, culled, 2)

	for _, tri := range culled {
		assert.Equal(t, box, tri.Model)
		assert.True(t, tri.Triangle.Normal.Equals(Vector3{0, 0, 1}))
	}

}

func TestDrawListPainterOrder(t *testing.T) {

	scene, camera, box := newPickScene()

	far := NewModel(NewBoxMesh(1, 1, 1), "Far")
	far.SetLocalPosition(0, 0, -10)
	scene.Root.AddChildren(far)

	box.BackfaceCulling = true
	far.BackfaceCulling = true

	list := camera.DrawList(scene)
	require.NotEmpty(t, list)

	assert.Equal(t, far, list[0].Model, "the farthest model is drawn first")
	assert.Equal(t, box, list[len(list)-1].Model, "the nearest model is drawn last")
	assert.GreaterOrEqual(t, list[0].Depth, list[len(list)-1].Depth)

}

func TestDrawListSkipsHiddenAndBehind(t *testing.T) {

	scene, camera, box := newPickScene()

	behind := NewModel(NewBoxMesh(1, 1, 1), "Behind")
	behind.SetLocalPosition(0, 0, 10)
	scene.Root.AddChildren(behind)

	for _, tri := range camera.DrawList(scene) {
		assert.NotEqual(t, behind, tri.Model, "models behind the camera aren't drawn")
	}

	box.SetVisible(false, true)
	assert.Empty(t, camera.DrawList(scene))

	assert.Nil(t, camera.DrawList(nil))

}

func TestDrawListLighting(t *testing.T) {

	scene, camera, box := newPickScene()
	box.Color = NewColor(1, 0.5, 0, 1)
	box.BackfaceCulling = true

	scene.World.AmbientLight = NewAmbientLight("ambient", 1, 1, 1, 0.5)

	list := camera.DrawList(scene)
	require.NotEmpty(t, list)
	assert.InDelta(t, 0.5, list[0].Color.R, 1e-4)
	assert.InDelta(t, 0.25, list[0].Color.G, 1e-4)

	scene.World.LightingOn = false
	list = camera.DrawList(scene)
	require.NotEmpty(t, list)
	assert.Equal(t, box.Color, list[0].Color)

}
