package signboard

// Model represents a singular visual instantiation of a Mesh. A Mesh contains the vertex information (what to draw); a Model references the Mesh to draw it with a specific
// Position, Rotation, and/or Scale (where and how to draw).
type Model struct {
	*Node
	Mesh            *Mesh
	Color           Color // The overall color of the Model.
	BackfaceCulling bool  // Whether the Model's backfaces are culled when rendering. Picking is always double-sided.
}

// NewModel creates a new Model (or instance) of the Mesh and Name provided. A Model represents a singular visual instantiation of a Mesh.
func NewModel(mesh *Mesh, name string) *Model {

	if mesh == nil {
		mesh = NewMesh(name)
	}

	model := &Model{
		Node:  NewNode(name),
		Mesh:  mesh,
		Color: NewColor(1, 1, 1, 1),
	}

	// Parenting and traversal hand out the Model rather than its embedded Node.
	model.Node.self = model

	return model

}

// Type returns the NodeType for this object.
func (model *Model) Type() NodeType {
	return NodeTypeModel
}

// WorldDimensions returns the axis-aligned bounds of the Model's Mesh in world space.
func (model *Model) WorldDimensions() Dimensions {
	return model.Mesh.Dimensions.Transformed(model.Transform())
}

// ScreenCenter returns the normalized device coordinates of the center of the Model's bounds, as seen through the given Camera.
func (model *Model) ScreenCenter(camera *Camera) Vector2 {
	return camera.WorldToNDC(model.Transform().MultVec(model.Mesh.Dimensions.Center()))
}
