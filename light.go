package signboard

import "github.com/solarlune/signboard/math32"

// Light represents an interface that is fulfilled by an object that emits light, returning the light level a triangle should be given
// its world-space normal.
type Light interface {
	INode
	begin()
	Light(normal Vector3) (float32, float32, float32)
	IsOn() bool
}

//---------------//

// AmbientLight represents an ambient light that colors the entire Scene.
type AmbientLight struct {
	*Node
	Color Color // Color is the color of the AmbientLight.
	// Energy is the overall energy of the Light. Internally, technically there's no difference between a brighter color and a
	// higher energy, but this is here for convenience / adherance to GLTF / 3D modelers.
	Energy float32
	On     bool // If the light is on and contributing to the scene.
}

// NewAmbientLight returns a new AmbientLight.
func NewAmbientLight(name string, r, g, b, energy float32) *AmbientLight {
	amb := &AmbientLight{
		Node:   NewNode(name),
		Color:  NewColor(r, g, b, 1),
		Energy: energy,
		On:     true,
	}
	amb.Node.self = amb
	return amb
}

// Type returns the NodeType for this object.
func (amb *AmbientLight) Type() NodeType {
	return NodeTypeAmbientLight
}

func (amb *AmbientLight) begin() {}

// Light returns the global light level for the ambient light. It doesn't use the normal argument; this is just to make it adhere to the Light interface.
func (amb *AmbientLight) Light(normal Vector3) (float32, float32, float32) {
	return amb.Color.R * amb.Energy, amb.Color.G * amb.Energy, amb.Color.B * amb.Energy
}

// IsOn returns if the light is on and contributing to the scene.
func (amb *AmbientLight) IsOn() bool {
	return amb.On
}

//---------------//

// DirectionalLight represents a directional light of infinite distance.
type DirectionalLight struct {
	*Node
	Color Color // Color is the color of the DirectionalLight.
	// Energy is the overall energy of the Light. Internally, technically there's no difference between a brighter color and a
	// higher energy, but this is here for convenience / adherance to GLTF / 3D modelers.
	Energy float32
	On     bool // If the light is on and contributing to the scene.

	forward Vector3 // internal forward vector so we don't have to calculate it for every triangle using this light
}

// NewDirectionalLight creates a new Directional Light with the specified RGB color and energy (assuming 1.0 energy is standard / "100%" lighting).
func NewDirectionalLight(name string, r, g, b, energy float32) *DirectionalLight {
	sun := &DirectionalLight{
		Node:   NewNode(name),
		Color:  NewColor(r, g, b, 1),
		Energy: energy,
		On:     true,
	}
	sun.Node.self = sun
	return sun
}

// Type returns the NodeType for this object.
func (sun *DirectionalLight) Type() NodeType {
	return NodeTypeDirectionalLight
}

func (sun *DirectionalLight) begin() {
	sun.forward = sun.WorldRotation().Forward()
}

// Light returns the R, G, and B values for the directional light given the world-space normal provided.
func (sun *DirectionalLight) Light(normal Vector3) (float32, float32, float32) {

	diffuseFactor := math32.Max(normal.Dot(sun.forward), 0.0)

	return sun.Color.R * diffuseFactor * sun.Energy, sun.Color.G * diffuseFactor * sun.Energy, sun.Color.B * diffuseFactor * sun.Energy

}

// IsOn returns if the light is on and contributing to the scene.
func (sun *DirectionalLight) IsOn() bool {
	return sun.On
}
