package signboard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeGLB builds a binary glTF document holding a red "Sign" quad with a "Button" triangle parented under it.
// If withMesh is false, the nodes carry no meshes.
func encodeGLB(t testing.TB, withMesh bool) []byte {

	doc := gltf.NewDocument()

	if withMesh {

		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: "Red",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{1, 0, 0, 1},
			},
		})

		quad := modeler.WritePosition(doc, [][3]float32{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}})
		quadIndices := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})

		tri := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {0.5, 0, 0}, {0, 0.5, 0}})

		doc.Meshes = append(doc.Meshes,
			&gltf.Mesh{
				Name: "Quad",
				Primitives: []*gltf.Primitive{{
					Indices:    gltf.Index(quadIndices),
					Attributes: gltf.PrimitiveAttributes{gltf.POSITION: quad},
					Material:   gltf.Index(0),
				}},
			},
			&gltf.Mesh{
				Name: "Tri",
				Primitives: []*gltf.Primitive{{
					Attributes: gltf.PrimitiveAttributes{gltf.POSITION: tri},
				}},
			},
		)

	}

	sign := &gltf.Node{Name: "Sign", Translation: [3]float64{0, 1, 0}}
	button := &gltf.Node{Name: "Button", Translation: [3]float64{0, 0, 0.5}, Extras: map[string]any{"interactive": true, "label": "Press"}}

	if withMesh {
		sign.Mesh = gltf.Index(0)
		button.Mesh = gltf.Index(1)
	} else {
		doc.Buffers = nil
	}

	sign.Children = append(sign.Children, 1)

	doc.Nodes = append(doc.Nodes, sign, button)
	doc.Scenes[0].Name = "Board"
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	buf := &bytes.Buffer{}
	enc := gltf.NewEncoder(buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(doc))

	return buf.Bytes()

}

func BenchmarkLoadGLTFData(b *testing.B) {

	b.ReportAllocs()

	data := encodeGLB(b, true)

	for i := 0; i < b.N; i++ {
		if _, err := LoadGLTFData(data, nil); err != nil {
			b.Fatal(err)
		}
	}

}

func TestLoadGLTFData(t *testing.T) {

	library, err := LoadGLTFData(encodeGLB(t, true), nil)
	require.NoError(t, err)

	scene := library.DefaultScene()
	require.NotNil(t, scene)
	assert.Equal(t, "Board", scene.Name)

	sign, ok := scene.Root.Get("Sign").(*Model)
	require.True(t, ok, "Sign should be loaded as a Model")
	assert.Len(t, sign.Mesh.Triangles, 2)
	assert.True(t, sign.WorldPosition().Equals(Vector3{0, 1, 0}))
	assert.InDelta(t, 1, sign.Color.R, 1e-5)
	assert.InDelta(t, 0, sign.Color.G, 1e-5)
	assert.InDelta(t, 1, sign.Color.A, 1e-5)

	button, ok := scene.Root.Get("Sign/Button").(*Model)
	require.True(t, ok, "Button should be loaded as a Model")
	assert.Len(t, button.Mesh.Triangles, 1)
	assert.True(t, button.WorldPosition().Equals(Vector3{0, 1, 0.5}))
	assert.Equal(t, NewColor(1, 1, 1, 1), button.Color, "meshes without a material are white")

	assert.True(t, button.Properties().Get(PropertyInteractive).AsBool())
	assert.Equal(t, "Press", button.Properties().Get("label").AsString())
	assert.False(t, sign.Properties().Has(PropertyInteractive))
	assert.Equal(t, INode(button), FindByProperty(scene.Root, PropertyInteractive))

	assert.Contains(t, library.Meshes, "Quad")
	assert.Contains(t, library.Meshes, "Tri")

}

func TestLoadGLTFModel(t *testing.T) {

	root, err := LoadGLTFModel(encodeGLB(t, true), nil)
	require.NoError(t, err)

	assert.Nil(t, root.Parent())
	require.Len(t, root.Children(), 1)
	assert.Equal(t, "Sign", root.Children()[0].Name())
	assert.NotNil(t, FindByName(root, "Button"))

}

func TestLoadGLTFModelErrors(t *testing.T) {

	_, err := LoadGLTFModel(encodeGLB(t, false), nil)
	assert.True(t, errors.Is(err, ErrNoMeshes), "got %v", err)

	_, err = LoadGLTFModel([]byte("definitely not a model"), nil)
	assert.Error(t, err)

	empty := gltf.NewDocument()
	empty.Scenes = nil
	empty.Scene = nil
	empty.Buffers = nil
	buf := &bytes.Buffer{}
	enc := gltf.NewEncoder(buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(empty))

	_, err = LoadGLTFModel(buf.Bytes(), nil)
	assert.True(t, errors.Is(err, ErrNoScene), "got %v", err)

}

func TestLoadGLTFMalformedAccessors(t *testing.T) {

	// A primitive naming an accessor the document doesn't have.
	missingPositions := `{"asset":{"version":"2.0"},"scene":0,"scenes":[{"nodes":[0]}],"nodes":[{"mesh":0}],` +
		`"meshes":[{"primitives":[{"attributes":{"POSITION":7}}]}]}`

	_, err := LoadGLTFModel([]byte(missingPositions), nil)
	assert.ErrorIs(t, err, ErrMalformedGLTF)

	cases := map[string]func(doc *gltf.Document){
		"missing index accessor": func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[0].Indices = gltf.Index(3)
		},
		"accessor without buffer view": func(doc *gltf.Document) {
			doc.Accessors[0].BufferView = nil
		},
		"missing buffer view": func(doc *gltf.Document) {
			doc.Accessors[0].BufferView = gltf.Index(9)
		},
	}

	for name, corrupt := range cases {
		t.Run(name, func(t *testing.T) {

			doc := gltf.NewDocument()
			positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
			doc.Meshes = []*gltf.Mesh{{Name: "Tri", Primitives: []*gltf.Primitive{{
				Attributes: gltf.PrimitiveAttributes{gltf.POSITION: positions},
			}}}}
			doc.Nodes = []*gltf.Node{{Name: "Tri", Mesh: gltf.Index(0)}}
			doc.Scenes = []*gltf.Scene{{Name: "Board", Nodes: []int{0}}}
			doc.Scene = gltf.Index(0)

			corrupt(doc)

			buf := &bytes.Buffer{}
			enc := gltf.NewEncoder(buf)
			enc.AsBinary = true
			require.NoError(t, enc.Encode(doc))

			_, err := LoadGLTFModel(buf.Bytes(), nil)
			assert.ErrorIs(t, err, ErrMalformedGLTF)

		})
	}

}

func TestLoadGLTFIndexPastVertices(t *testing.T) {

	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 5})
	doc.Meshes = []*gltf.Mesh{{Name: "Tri", Primitives: []*gltf.Primitive{{
		Indices:    gltf.Index(indices),
		Attributes: gltf.PrimitiveAttributes{gltf.POSITION: positions},
	}}}}
	doc.Nodes = []*gltf.Node{{Name: "Tri", Mesh: gltf.Index(0)}}
	doc.Scenes = []*gltf.Scene{{Name: "Board", Nodes: []int{0}}}
	doc.Scene = gltf.Index(0)

	buf := &bytes.Buffer{}
	enc := gltf.NewEncoder(buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(doc))

	_, err := LoadGLTFData(buf.Bytes(), nil)
	assert.ErrorIs(t, err, ErrMalformedGLTF)

}

func TestLoadGLTFPunctualLights(t *testing.T) {

	data := `{"asset":{"version":"2.0"},"extensionsUsed":["KHR_lights_punctual"],` +
		`"extensions":{"KHR_lights_punctual":{"lights":[{"type":"directional","color":[1,0.5,0],"intensity":2},{"type":"point","intensity":80}]}},` +
		`"scene":0,"scenes":[{"nodes":[0,1,2]}],"nodes":[` +
		`{"name":"Sun","extensions":{"KHR_lights_punctual":{"light":0}}},` +
		`{"name":"Bulb","extensions":{"KHR_lights_punctual":{"light":1}}},` +
		`{"name":"Stray","extensions":{"KHR_lights_punctual":{"light":4}}}]}`

	library, err := LoadGLTFData([]byte(data), nil)
	require.NoError(t, err)

	scene := library.DefaultScene()
	require.NotNil(t, scene)

	sun, ok := FindByName(scene.Root, "Sun").(*DirectionalLight)
	require.True(t, ok, "directional lights load as DirectionalLights")
	assert.Equal(t, NewColor(1, 0.5, 0, 1), sun.Color)
	assert.Equal(t, float32(2), sun.Energy)

	bulb, ok := FindByName(scene.Root, "Bulb").(*AmbientLight)
	require.True(t, ok, "point lights fall back to AmbientLights")
	assert.InDelta(t, 1, bulb.Energy, 1e-6)

	stray := FindByName(scene.Root, "Stray")
	require.NotNil(t, stray)
	assert.Equal(t, NodeTypeNode, stray.Type(), "a node naming a missing light stays a plain Node")

	assert.Len(t, scene.Lights(), 3, "the world's ambient light plus the two loaded lights")

}
