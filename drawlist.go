package signboard

import "github.com/solarlune/signboard/math32"

// DrawTriangle is a single triangle of a Model, transformed into screen space and lit, ready to be drawn.
type DrawTriangle struct {
	Model    *Model
	Triangle *Triangle
	Screen   [3]Vector2 // Pixel positions of the three vertices
	Depth    float32    // Distance from the camera to the triangle's center, in world units
	Color    Color      // The Model's color multiplied by the lighting the triangle receives
}

// DrawList transforms every visible Model under the Scene's root through the Camera and returns the resulting triangles sorted
// back-to-front (painter's order). Triangles crossing the near plane are skipped, as are back faces of Models with BackfaceCulling on.
func (camera *Camera) DrawList(scene *Scene) []DrawTriangle {

	if scene == nil || scene.Root == nil {
		return nil
	}

	vp := camera.ViewProjection()
	camPos := camera.WorldPosition()
	w, h := camera.Size()

	lights := []Light{}
	if scene.World == nil || scene.World.LightingOn {
		lights = scene.Lights()
		for _, light := range lights {
			light.begin()
		}
	}

	out := []DrawTriangle{}
	sorting := []sortingTriangle{}
	minDepth, maxDepth := math32.MaxFloat32, float32(0)

	var walk func(node INode)

	walk = func(node INode) {

		if !node.Visible() {
			return
		}

		if model, ok := node.(*Model); ok && model.Mesh != nil {

			transform := model.Transform()
			mvp := transform.Mult(vp)

			for _, tri := range model.Mesh.Triangles {

				v0, v1, v2 := tri.Vertices()
				c0, c1, c2 := mvp.MultVecW(v0), mvp.MultVecW(v1), mvp.MultVecW(v2)

				if c0.W < camera.near || c1.W < camera.near || c2.W < camera.near {
					continue
				}

				dt := DrawTriangle{
					Model:    model,
					Triangle: tri,
					Screen: [3]Vector2{
						clipToPixels(c0, w, h),
						clipToPixels(c1, w, h),
						clipToPixels(c2, w, h),
					},
					Depth: transform.MultVec(tri.Center).DistanceTo(camPos),
					Color: model.Color,
				}

				// Screen-space winding; Y points down in pixel space, so counter-clockwise front faces have a negative signed area
				area := (dt.Screen[1].X-dt.Screen[0].X)*(dt.Screen[2].Y-dt.Screen[0].Y) - (dt.Screen[2].X-dt.Screen[0].X)*(dt.Screen[1].Y-dt.Screen[0].Y)
				if model.BackfaceCulling && area > 0 {
					continue
				}

				if len(lights) > 0 {
					normal := transform.MultVecNoTranslate(tri.Normal).Unit()
					var r, g, b float32
					for _, light := range lights {
						lr, lg, lb := light.Light(normal)
						r += lr
						g += lg
						b += lb
					}
					dt.Color.R *= r
					dt.Color.G *= g
					dt.Color.B *= b
				}

				minDepth = math32.Min(minDepth, dt.Depth)
				maxDepth = math32.Max(maxDepth, dt.Depth)
				sorting = append(sorting, sortingTriangle{index: len(out), depth: dt.Depth})
				out = append(out, dt)

			}

		}

		for _, child := range node.Children() {
			walk(child)
		}

	}

	walk(scene.Root)

	if len(out) == 0 {
		return out
	}

	bucket := newSortingTriangleBucket(512)
	bucket.Sort(sorting, minDepth, maxDepth)

	sorted := make([]DrawTriangle, 0, len(out))
	bucket.ForEachBackToFront(func(index int) {
		sorted = append(sorted, out[index])
	})

	return sorted

}

func clipToPixels(clip Vector4, width, height int) Vector2 {
	return Vector2{
		(clip.X/clip.W + 1) / 2 * float32(width),
		(1 - clip.Y/clip.W) / 2 * float32(height),
	}
}
