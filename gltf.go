package signboard

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/qmuntal/gltf/modeler"
	"github.com/solarlune/signboard/math32"
)

type GLTFLoadOptions struct {
	// Width and height of loaded Cameras. Defaults to 640x360 if either is zero or less.
	CameraWidth, CameraHeight int
	// If glTF material colors should be converted from linear space to sRGB when loaded. Defaults to true.
	ConvertColorsToSRGB bool
	// If Models loaded from the file should have backface culling enabled. glTF materials are single-sided unless marked otherwise,
	// so this defaults to false to render any loaded geometry from both sides.
	BackfaceCulling bool
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		CameraWidth:         640,
		CameraHeight:        360,
		ConvertColorsToSRGB: true,
	}
}

// LoadGLTFData loads a .gltf or .glb file from the byte data given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options. Each glTF scene becomes a Scene in the returned Library,
// with mesh-bearing nodes turned into Models, camera nodes into Cameras, KHR_lights_punctual lights into lights, and everything else
// into plain Nodes. Each node's extras become its Properties. Data referring to accessors or buffer views it doesn't hold returns
// ErrMalformedGLTF.
func LoadGLTFData(data []byte, gltfLoadOptions *GLTFLoadOptions) (*Library, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}

	if gltfLoadOptions == nil {
		gltfLoadOptions = DefaultGLTFLoadOptions()
	}

	camWidth := gltfLoadOptions.CameraWidth
	camHeight := gltfLoadOptions.CameraHeight

	if camWidth <= 0 || camHeight <= 0 {
		camWidth = 640
		camHeight = 360
	}

	library := NewLibrary()

	materialColors := make([]Color, len(doc.Materials))

	for i, gltfMat := range doc.Materials {

		color := NewColor(1, 1, 1, 1)

		if gltfMat.PBRMetallicRoughness != nil {
			factor := gltfMat.PBRMetallicRoughness.BaseColorFactorOrDefault()
			color = NewColor(float32(factor[0]), float32(factor[1]), float32(factor[2]), float32(factor[3]))
		}

		if gltfLoadOptions.ConvertColorsToSRGB {
			color = color.ConvertTosRGB()
		}

		materialColors[i] = color

	}

	meshes := make([]*Mesh, len(doc.Meshes))
	meshColors := make([]Color, len(doc.Meshes))

	for meshIndex, mesh := range doc.Meshes {

		name := mesh.Name
		if name == "" {
			name = "Mesh." + strconv.Itoa(meshIndex)
		}

		positions := []Vector3{}
		indices := []uint32{}
		meshColors[meshIndex] = NewColor(1, 1, 1, 1)
		colorSet := false

		for _, v := range mesh.Primitives {

			if v.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posAccessor, ok := v.Attributes[gltf.POSITION]
			if !ok {
				continue
			}

			posAcr, err := accessor(doc, posAccessor)
			if err != nil {
				return nil, fmt.Errorf("read positions of mesh %q: %w", name, err)
			}

			posBuffer := [][3]float32{}
			vertPos, err := modeler.ReadPosition(doc, posAcr, posBuffer)

			if err != nil {
				return nil, fmt.Errorf("read positions of mesh %q: %w", name, err)
			}

			start := uint32(len(positions))

			for _, p := range vertPos {
				positions = append(positions, Vector3{p[0], p[1], p[2]})
			}

			if v.Indices != nil {

				indexAcr, err := accessor(doc, *v.Indices)
				if err != nil {
					return nil, fmt.Errorf("read indices of mesh %q: %w", name, err)
				}

				indexBuffer := []uint32{}

				primIndices, err := modeler.ReadIndices(doc, indexAcr, indexBuffer)

				if err != nil {
					return nil, fmt.Errorf("read indices of mesh %q: %w", name, err)
				}

				for _, index := range primIndices {
					if int(index) >= len(vertPos) {
						return nil, fmt.Errorf("mesh %q indexes vertex %d of %d: %w", name, index, len(vertPos), ErrMalformedGLTF)
					}
					indices = append(indices, start+index)
				}

			} else {
				for i := range vertPos {
					indices = append(indices, start+uint32(i))
				}
			}

			// A Model has a single color, so the first primitive's material wins
			if v.Material != nil && !colorSet && int(*v.Material) < len(materialColors) {
				meshColors[meshIndex] = materialColors[*v.Material]
				colorSet = true
			}

		}

		newMesh := NewMeshFromIndices(name, positions, indices)
		library.Meshes[name] = newMesh
		meshes[meshIndex] = newMesh

	}

	var instantiate func(nodeIndex int, depth int) (INode, error)

	instantiate = func(nodeIndex int, depth int) (INode, error) {

		if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
			return nil, fmt.Errorf("gltf node index %d out of range", nodeIndex)
		}

		// glTF node hierarchies are required to be trees; a depth past the node count means a cycle
		if depth > len(doc.Nodes) {
			return nil, fmt.Errorf("gltf node %d is part of a cycle", nodeIndex)
		}

		node := doc.Nodes[nodeIndex]

		name := node.Name
		if name == "" {
			name = "Node." + strconv.Itoa(nodeIndex)
		}

		var obj INode

		if node.Mesh != nil && int(*node.Mesh) < len(meshes) {

			model := NewModel(meshes[*node.Mesh], name)
			model.Color = meshColors[*node.Mesh]
			model.BackfaceCulling = gltfLoadOptions.BackfaceCulling
			obj = model

		} else if node.Camera != nil && int(*node.Camera) < len(doc.Cameras) {

			gltfCam := doc.Cameras[*node.Camera]

			newCam := NewCamera(camWidth, camHeight)
			newCam.name = name

			if gltfCam.Perspective != nil {
				newCam.SetNear(float32(gltfCam.Perspective.Znear))
				if gltfCam.Perspective.Zfar != nil {
					newCam.SetFar(float32(*gltfCam.Perspective.Zfar))
				}
				newCam.SetFieldOfView(math32.ToDegrees(float32(gltfCam.Perspective.Yfov)))
			}

			obj = newCam

		} else if light := punctualLight(doc, node, name); light != nil {
			obj = light
		} else {
			obj = NewNode(name)
		}

		// Custom properties ("extras") of the glTF node
		if extras, ok := node.Extras.(map[string]any); ok {
			for name, value := range extras {
				obj.Properties().Get(name).Set(value)
			}
		}

		mtData := node.MatrixOrDefault()

		// glTF matrices are column-major, which lines up with signboard's row-vector layout when read row by row.
		matrix := NewMatrix4()
		matrix.SetRow(0, Vector4{float32(mtData[0]), float32(mtData[1]), float32(mtData[2]), float32(mtData[3])})
		matrix.SetRow(1, Vector4{float32(mtData[4]), float32(mtData[5]), float32(mtData[6]), float32(mtData[7])})
		matrix.SetRow(2, Vector4{float32(mtData[8]), float32(mtData[9]), float32(mtData[10]), float32(mtData[11])})
		matrix.SetRow(3, Vector4{float32(mtData[12]), float32(mtData[13]), float32(mtData[14]), float32(mtData[15])})

		if !matrix.IsIdentity() {

			p, s, r := matrix.Decompose()

			obj.SetLocalPositionVec(p)
			obj.SetLocalScale(s.X, s.Y, s.Z)
			obj.SetLocalRotation(r)

		} else {

			t := node.TranslationOrDefault()
			s := node.ScaleOrDefault()
			r := node.RotationOrDefault()

			obj.SetLocalPosition(float32(t[0]), float32(t[1]), float32(t[2]))
			obj.SetLocalScale(float32(s[0]), float32(s[1]), float32(s[2]))
			obj.SetLocalRotation(NewQuaternion(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3])).Unit().Matrix4())

		}

		// Set up parenting
		for _, childIndex := range node.Children {
			child, err := instantiate(int(childIndex), depth+1)
			if err != nil {
				return nil, err
			}
			obj.AddChildren(child)
		}

		return obj, nil

	}

	for sceneIndex, gltfScene := range doc.Scenes {

		name := gltfScene.Name
		if name == "" {
			name = "Scene." + strconv.Itoa(sceneIndex)
		}

		scene := library.AddScene(name)

		for _, nodeIndex := range gltfScene.Nodes {
			obj, err := instantiate(int(nodeIndex), 0)
			if err != nil {
				return nil, fmt.Errorf("load scene %q: %w", name, err)
			}
			scene.Root.AddChildren(obj)
		}

		if doc.Scene != nil && int(*doc.Scene) == sceneIndex {
			library.ExportedScene = scene
		}

	}

	return library, nil

}

// accessor returns the accessor at the given index once it and the buffer view it reads from are known to exist.
func accessor(doc *gltf.Document, index int) (*gltf.Accessor, error) {

	if index < 0 || index >= len(doc.Accessors) || doc.Accessors[index] == nil {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors): %w", index, len(doc.Accessors), ErrMalformedGLTF)
	}

	acr := doc.Accessors[index]

	if acr.BufferView == nil {
		return nil, fmt.Errorf("accessor %d has no buffer view: %w", index, ErrMalformedGLTF)
	}

	view := *acr.BufferView

	if view < 0 || view >= len(doc.BufferViews) || doc.BufferViews[view] == nil {
		return nil, fmt.Errorf("accessor %d reads buffer view %d out of range (%d views): %w", index, view, len(doc.BufferViews), ErrMalformedGLTF)
	}

	bv := doc.BufferViews[view]

	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) || bv.ByteOffset < 0 || acr.ByteOffset < 0 || acr.ByteOffset > bv.ByteLength {
		return nil, fmt.Errorf("accessor %d reads outside of buffer view %d: %w", index, view, ErrMalformedGLTF)
	}

	return acr, nil

}

// punctualLight creates the light a node refers to through KHR_lights_punctual, or returns nil if it refers to none.
// Directional lights keep their color and intensity; any other light type becomes an ambient light, as signboard has no
// point or spot lights.
func punctualLight(doc *gltf.Document, node *gltf.Node, name string) Light {

	index, ok := node.Extensions[lightspunctual.ExtensionName].(lightspunctual.LightIndex)
	if !ok {
		return nil
	}

	lights, ok := doc.Extensions[lightspunctual.ExtensionName].(lightspunctual.Lights)
	if !ok || int(index) < 0 || int(index) >= len(lights) || lights[index] == nil {
		return nil
	}

	lightData := lights[index]
	color := lightData.ColorOrDefault()
	energy := float32(lightData.IntensityOrDefault())

	if lightData.Type == lightspunctual.TypeDirectional {
		return NewDirectionalLight(name, float32(color[0]), float32(color[1]), float32(color[2]), energy) // Sun is in "energy"
	}

	// Point and spot lights have wattage energy
	return NewAmbientLight(name, float32(color[0]), float32(color[1]), float32(color[2]), energy/80)

}

// LoadGLTFModel decodes glTF data and returns the contents of its default scene parented under a single new Node, ready to be
// attached to another scene. ErrNoScene is returned if the data holds no scenes, and ErrNoMeshes if the chosen scene has no Models.
func LoadGLTFModel(data []byte, gltfLoadOptions *GLTFLoadOptions) (INode, error) {

	library, err := LoadGLTFData(data, gltfLoadOptions)
	if err != nil {
		return nil, err
	}

	scene := library.DefaultScene()
	if scene == nil {
		return nil, ErrNoScene
	}

	root := NewNode(scene.Name)
	root.AddChildren(scene.Root.Children()...)

	hasMesh := false
	root.Walk(func(node INode) bool {
		if model, ok := node.(*Model); ok && !model.Mesh.IsEmpty() {
			hasMesh = true
			return false
		}
		return true
	})

	if !hasMesh {
		return nil, fmt.Errorf("load scene %q: %w", scene.Name, ErrNoMeshes)
	}

	return root, nil

}
