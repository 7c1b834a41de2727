package signboard

import (
	"github.com/solarlune/signboard/math32"
)

// Dimensions represents the minimum and maximum spatial dimensions of a Mesh.
type Dimensions struct {
	Min, Max Vector3
}

// Center returns the center point inbetween the two corners of the dimension set.
func (dim Dimensions) Center() Vector3 {
	return Vector3{
		(dim.Max.X + dim.Min.X) / 2,
		(dim.Max.Y + dim.Min.Y) / 2,
		(dim.Max.Z + dim.Min.Z) / 2,
	}
}

func (dim Dimensions) Width() float32 {
	return dim.Max.X - dim.Min.X
}

func (dim Dimensions) Height() float32 {
	return dim.Max.Y - dim.Min.Y
}

func (dim Dimensions) Depth() float32 {
	return dim.Max.Z - dim.Min.Z
}

// Transformed returns the axis-aligned Dimensions enclosing these Dimensions after being transformed by the given matrix.
func (dim Dimensions) Transformed(transform Matrix4) Dimensions {

	corners := [8]Vector3{
		{dim.Min.X, dim.Min.Y, dim.Min.Z},
		{dim.Max.X, dim.Min.Y, dim.Min.Z},
		{dim.Min.X, dim.Max.Y, dim.Min.Z},
		{dim.Max.X, dim.Max.Y, dim.Min.Z},
		{dim.Min.X, dim.Min.Y, dim.Max.Z},
		{dim.Max.X, dim.Min.Y, dim.Max.Z},
		{dim.Min.X, dim.Max.Y, dim.Max.Z},
		{dim.Max.X, dim.Max.Y, dim.Max.Z},
	}

	out := Dimensions{}

	for i, c := range corners {
		t := transform.MultVec(c)
		if i == 0 {
			out.Min, out.Max = t, t
			continue
		}
		out.Min = out.Min.Min(t)
		out.Max = out.Max.Max(t)
	}

	return out

}

// Mesh represents a collection of vertices and the triangles indexing them. Meshes are not Nodes; a Model places a Mesh in a Scene.
type Mesh struct {
	Name            string
	VertexPositions []Vector3
	Triangles       []*Triangle
	Dimensions      Dimensions
	triIndex        int
}

// NewMesh takes a name and a number of vertex positions, and returns a new Mesh. If you provide positions, the number must be
// divisible by 3, as each three positions constitute a triangle.
func NewMesh(name string, positions ...Vector3) *Mesh {

	mesh := &Mesh{
		Name:            name,
		VertexPositions: []Vector3{},
		Triangles:       []*Triangle{},
	}

	if len(positions)%3 != 0 {
		panic("Error: NewMesh() has not been given a correct number of vertices to constitute triangles (it needs to be divisible by 3).")
	}

	if len(positions) > 0 {
		mesh.AddTriangles(positions...)
	}

	return mesh

}

// NewMeshFromIndices creates a Mesh from a vertex position buffer and an index buffer (three indices per triangle), as glTF primitives
// are laid out. Any incomplete trailing triangle is ignored.
func NewMeshFromIndices(name string, positions []Vector3, indices []uint32) *Mesh {

	mesh := NewMesh(name)
	mesh.VertexPositions = append(mesh.VertexPositions, positions...)

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := int(indices[i]), int(indices[i+1]), int(indices[i+2])
		if a >= len(positions) || b >= len(positions) || c >= len(positions) {
			continue
		}
		mesh.addTriangle(a, b, c)
	}

	mesh.UpdateBounds()

	return mesh

}

// AddTriangles adds triangles consisting of vertex positions to the Mesh. You must provide a number of positions divisible by 3.
func (mesh *Mesh) AddTriangles(positions ...Vector3) {

	if len(positions) == 0 || len(positions)%3 != 0 {
		panic("Error: AddTriangles() has not been given a correct number of vertices to constitute triangles (it needs to be greater than 0 and divisible by 3).")
	}

	for i := 0; i < len(positions); i += 3 {
		start := len(mesh.VertexPositions)
		mesh.VertexPositions = append(mesh.VertexPositions, positions[i], positions[i+1], positions[i+2])
		mesh.addTriangle(start, start+1, start+2)
	}

	mesh.UpdateBounds()

}

func (mesh *Mesh) addTriangle(a, b, c int) {
	tri := &Triangle{
		ID:            mesh.triIndex,
		VertexIndices: [3]int{a, b, c},
		Mesh:          mesh,
	}
	tri.Recalculate()
	mesh.Triangles = append(mesh.Triangles, tri)
	mesh.triIndex++
}

// Append adds all of the triangles of the other Mesh into this one, offsetting them by the given amount.
func (mesh *Mesh) Append(other *Mesh, offset Vector3) {

	start := len(mesh.VertexPositions)

	for _, p := range other.VertexPositions {
		mesh.VertexPositions = append(mesh.VertexPositions, p.Add(offset))
	}

	for _, tri := range other.Triangles {
		mesh.addTriangle(start+tri.VertexIndices[0], start+tri.VertexIndices[1], start+tri.VertexIndices[2])
	}

	mesh.UpdateBounds()

}

// Translate moves every vertex of the Mesh by the given offset.
func (mesh *Mesh) Translate(offset Vector3) {

	for i := range mesh.VertexPositions {
		mesh.VertexPositions[i] = mesh.VertexPositions[i].Add(offset)
	}

	for _, tri := range mesh.Triangles {
		tri.Recalculate()
	}

	mesh.UpdateBounds()

}

// UpdateBounds updates the mesh's dimensions; call this after manually changing vertex positions. An empty Mesh has
// zero-sized Dimensions at the origin.
func (mesh *Mesh) UpdateBounds() {

	if len(mesh.VertexPositions) == 0 {
		mesh.Dimensions = Dimensions{}
		return
	}

	dim := Dimensions{
		Min: Vector3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: Vector3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}

	for _, p := range mesh.VertexPositions {
		dim.Min = dim.Min.Min(p)
		dim.Max = dim.Max.Max(p)
	}

	mesh.Dimensions = dim

}

// IsEmpty returns true if the Mesh has no triangles.
func (mesh *Mesh) IsEmpty() bool {
	return len(mesh.Triangles) == 0
}

// NewBoxMesh creates a new box Mesh of the given width, height, and depth, centered on the origin.
func NewBoxMesh(width, height, depth float32) *Mesh {

	w, h, d := width/2, height/2, depth/2

	mesh := NewMesh("Box",

		// Top

		Vector3{-w, h, -d},
		Vector3{w, h, d},
		Vector3{w, h, -d},

		Vector3{-w, h, d},
		Vector3{w, h, d},
		Vector3{-w, h, -d},

		// Bottom

		Vector3{w, -h, -d},
		Vector3{w, -h, d},
		Vector3{-w, -h, -d},

		Vector3{-w, -h, -d},
		Vector3{w, -h, d},
		Vector3{-w, -h, d},

		// Front

		Vector3{-w, h, d},
		Vector3{w, -h, d},
		Vector3{w, h, d},

		Vector3{-w, -h, d},
		Vector3{w, -h, d},
		Vector3{-w, h, d},

		// Back

		Vector3{w, h, -d},
		Vector3{w, -h, -d},
		Vector3{-w, h, -d},

		Vector3{-w, h, -d},
		Vector3{w, -h, -d},
		Vector3{-w, -h, -d},

		// Right

		Vector3{w, h, -d},
		Vector3{w, h, d},
		Vector3{w, -h, -d},

		Vector3{w, -h, -d},
		Vector3{w, h, d},
		Vector3{w, -h, d},

		// Left

		Vector3{-w, -h, -d},
		Vector3{-w, h, d},
		Vector3{-w, h, -d},

		Vector3{-w, -h, d},
		Vector3{-w, h, d},
		Vector3{-w, -h, -d},
	)

	return mesh

}

// A Triangle represents the smallest renderable object in signboard; it indexes three vertex positions in its owning Mesh.
type Triangle struct {
	ID            int
	VertexIndices [3]int
	Center        Vector3
	Normal        Vector3
	Mesh          *Mesh
}

// Vertices returns the three local-space vertex positions of the Triangle.
func (tri *Triangle) Vertices() (Vector3, Vector3, Vector3) {
	p := tri.Mesh.VertexPositions
	return p[tri.VertexIndices[0]], p[tri.VertexIndices[1]], p[tri.VertexIndices[2]]
}

// Recalculate updates the Triangle's center and normal from its current vertex positions.
func (tri *Triangle) Recalculate() {
	v0, v1, v2 := tri.Vertices()
	tri.Center = v0.Add(v1).Add(v2).Divide(3)
	tri.Normal = calculateNormal(v0, v1, v2)
}

func calculateNormal(p1, p2, p3 Vector3) Vector3 {
	v0 := p2.Sub(p1)
	v1 := p3.Sub(p2)
	return v0.Cross(v1).Unit()
}
