package signboard

import (
	"sort"

	"github.com/solarlune/signboard/math32"
)

// Ray represents a half-line starting at Origin and extending infinitely in Direction (which should be of unit length).
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// At returns the world position along the Ray at the given distance.
func (ray Ray) At(distance float32) Vector3 {
	return ray.Origin.Add(ray.Direction.Scale(distance))
}

// RayHit represents the result of a raycast test.
type RayHit struct {
	Object   *Model  // Object is a pointer to the Model that was struck by the raycast.
	Position Vector3 // Position is the world position that the object was struck.
	Normal   Vector3 // Normal is the world-space normal of the surface the ray struck.
	Triangle *Triangle
	distance float32
}

// Distance returns the distance from the RayHit's originating ray source point to the struck position.
func (r RayHit) Distance() float32 {
	return r.distance
}

// RayTest casts the ray against every visible Model in the tree starting at root, and returns all hits sorted by distance.
// Hits at equal distances keep the depth-first order the Models were found in, so the result is deterministic.
// Triangles are tested double-sided.
func RayTest(ray Ray, root INode) []RayHit {

	results := []RayHit{}

	if root == nil {
		return results
	}

	var walk func(node INode)

	walk = func(node INode) {

		if !node.Visible() {
			return
		}

		if model, ok := node.(*Model); ok {
			if hit, ok := modelRayTest(ray, model); ok {
				results = append(results, hit)
			}
		}

		for _, child := range node.Children() {
			walk(child)
		}

	}

	walk(root)

	sort.SliceStable(results, func(i, j int) bool { return results[i].distance < results[j].distance })

	return results

}

// Pick casts a ray from the camera through the pointer position (given in normalized device coordinates, ranging from -1 to 1 with Y
// pointing up), and returns the nearest hit against the Models under root, or nil if nothing was struck. Pick does not modify anything.
func Pick(pointer Vector2, camera *Camera, root INode) *RayHit {

	if camera == nil || root == nil {
		return nil
	}

	hits := RayTest(camera.PickRay(pointer.X, pointer.Y), root)

	if len(hits) == 0 {
		return nil
	}

	return &hits[0]

}

// modelRayTest returns the closest triangle of the Model struck by the ray, if any.
func modelRayTest(ray Ray, model *Model) (RayHit, bool) {

	mesh := model.Mesh

	if mesh == nil || mesh.IsEmpty() {
		return RayHit{}, false
	}

	transform := model.Transform()
	inverted := transform.Inverted()

	// The local direction is deliberately left unnormalized so that ray parameters stay in world units.
	localOrigin := inverted.MultVec(ray.Origin)
	localDir := inverted.MultVecNoTranslate(ray.Direction)

	if !aabbRayTest(localOrigin, localDir, mesh.Dimensions) {
		return RayHit{}, false
	}

	closest := float32(-1)
	var hitTri *Triangle

	for _, tri := range mesh.Triangles {

		v0, v1, v2 := tri.Vertices()

		// Skip because the triangle is degenerate
		if v0.Equals(v1) || v1.Equals(v2) || v2.Equals(v0) {
			continue
		}

		if t, ok := triangleRayTest(localOrigin, localDir, v0, v1, v2); ok && (closest < 0 || t < closest) {
			closest = t
			hitTri = tri
		}

	}

	if hitTri == nil {
		return RayHit{}, false
	}

	return RayHit{
		Object:   model,
		Position: ray.At(closest),
		Normal:   transform.MultVecNoTranslate(hitTri.Normal).Unit(),
		Triangle: hitTri,
		distance: closest,
	}, true

}

// aabbRayTest is a slab test of the ray against the box; it passes if the box is in front of or around the ray's origin.
func aabbRayTest(origin, dir Vector3, dim Dimensions) bool {

	tmin := -math32.MaxFloat32
	tmax := math32.MaxFloat32

	axes := [3][4]float32{
		{origin.X, dir.X, dim.Min.X, dim.Max.X},
		{origin.Y, dir.Y, dim.Min.Y, dim.Max.Y},
		{origin.Z, dir.Z, dim.Min.Z, dim.Max.Z},
	}

	const epsilon = 1e-5

	for _, a := range axes {

		o, d, lo, hi := a[0], a[1], a[2]-epsilon, a[3]+epsilon

		if math32.Abs(d) < 1e-12 {
			// Parallel to this slab; it has to start inside of it
			if o < lo || o > hi {
				return false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)

		if tmin > tmax {
			return false
		}

	}

	return tmax >= 0

}

// triangleRayTest is a double-sided Möller-Trumbore intersection; it returns the ray parameter of the struck point.
func triangleRayTest(origin, dir, v0, v1, v2 Vector3) (float32, bool) {

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	p := dir.Cross(edge2)
	det := edge1.Dot(p)

	if math32.Abs(det) < 1e-12 {
		return 0, false
	}

	invDet := 1 / det

	s := origin.Sub(v0)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * invDet
	if t < 0 {
		return 0, false
	}

	return t, true

}
