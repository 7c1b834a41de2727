package signboard

import (
	"github.com/solarlune/signboard/math32"
)

// Camera represents a camera (where you look from) in signboard. Cameras look down their local -Z axis.
// Cameras don't own any render targets; they only describe the perspective projection and can be used to project points to the screen
// and to cast picking rays into the scene.
type Camera struct {
	*Node

	width, height int
	fieldOfView   float32 // Vertical field of view in degrees for a perspective projection camera
	near, far     float32

	updateProjectionMatrix bool
	cachedProjectionMatrix Matrix4
}

// NewCamera creates a new Camera with the specified width and height; the aspect ratio is derived from these.
// The default field of view is 60 degrees, with a near plane of 0.1 and a far plane of 100.
func NewCamera(w, h int) *Camera {

	cam := &Camera{
		Node:                   NewNode("Camera"),
		fieldOfView:            60,
		near:                   0.1,
		far:                    100,
		width:                  1,
		height:                 1,
		updateProjectionMatrix: true,
	}

	cam.Node.self = cam

	cam.Resize(w, h)

	return cam

}

// Type returns the NodeType for this object.
func (camera *Camera) Type() NodeType {
	return NodeTypeCamera
}

// Resize sets the width and height the Camera projects to. If either dimension is zero or negative, Resize does nothing and returns false,
// leaving the previous (valid) aspect ratio in place. If the width and height are already set to the specified arguments, Resize also does nothing.
func (camera *Camera) Resize(w, h int) bool {

	if w <= 0 || h <= 0 {
		return false
	}

	if w == camera.width && h == camera.height {
		return true
	}

	camera.width = w
	camera.height = h
	camera.updateProjectionMatrix = true
	return true

}

// Size returns the width and height the camera projects to.
func (camera *Camera) Size() (w, h int) {
	return camera.width, camera.height
}

// AspectRatio returns the camera's aspect ratio (width / height).
func (camera *Camera) AspectRatio() float32 {
	return float32(camera.width) / float32(camera.height)
}

// ViewMatrix returns the Camera's view matrix.
func (camera *Camera) ViewMatrix() Matrix4 {
	return camera.Transform().Inverted()
}

// Projection returns the Camera's projection matrix.
func (camera *Camera) Projection() Matrix4 {

	if !camera.updateProjectionMatrix {
		return camera.cachedProjectionMatrix
	}

	camera.updateProjectionMatrix = false
	camera.cachedProjectionMatrix = NewProjectionPerspective(camera.fieldOfView, camera.near, camera.far, camera.AspectRatio())

	return camera.cachedProjectionMatrix

}

// ViewProjection returns the combined view and projection matrices, transforming world-space points into clip space.
func (camera *Camera) ViewProjection() Matrix4 {
	return camera.ViewMatrix().Mult(camera.Projection())
}

// SetFieldOfView sets the vertical field of view of the camera in degrees.
func (camera *Camera) SetFieldOfView(fovY float32) {
	if camera.fieldOfView == fovY {
		return
	}
	camera.fieldOfView = fovY
	camera.updateProjectionMatrix = true
}

// FieldOfView returns the vertical field of view in degrees.
func (camera *Camera) FieldOfView() float32 {
	return camera.fieldOfView
}

// Near returns the near plane of a camera.
func (camera *Camera) Near() float32 {
	return camera.near
}

// SetNear sets the near plane of a camera.
func (camera *Camera) SetNear(near float32) {
	if camera.near == near {
		return
	}
	camera.near = near
	camera.updateProjectionMatrix = true
}

// Far returns the far plane of a camera.
func (camera *Camera) Far() float32 {
	return camera.far
}

// SetFar sets the far plane of the camera.
func (camera *Camera) SetFar(far float32) {
	if camera.far == far {
		return
	}
	camera.far = far
	camera.updateProjectionMatrix = true
}

// LookAt rotates the camera so that it points towards the target world position.
func (camera *Camera) LookAt(target Vector3) {
	camera.SetLocalRotation(NewLookAtMatrix(camera.WorldPosition(), target, WorldUp))
}

// WorldToClip transforms a 3D position in the world to clip space (homogeneous, before the perspective divide).
func (camera *Camera) WorldToClip(vert Vector3) Vector4 {
	return camera.ViewProjection().MultVecW(vert)
}

// WorldToNDC transforms a 3D position in the world to a 2D vector, with X and Y ranging from -1 to 1 across the view (Y pointing up).
func (camera *Camera) WorldToNDC(vert Vector3) Vector2 {
	clip := camera.WorldToClip(vert)
	w := clip.W
	if w < 0 {
		w *= -1
	}
	if w == 0 {
		return Vector2{}
	}
	return Vector2{clip.X / w, clip.Y / w}
}

// NDCToPixels converts normalized device coordinates into pixel coordinates, with (0, 0) at the top-left.
func (camera *Camera) NDCToPixels(ndc Vector2) Vector2 {
	return Vector2{
		(ndc.X + 1) / 2 * float32(camera.width),
		(1 - ndc.Y) / 2 * float32(camera.height),
	}
}

// PixelsToNDC converts a pixel position on the Camera's view into normalized device coordinates ranging from -1 to 1 (Y pointing up).
func (camera *Camera) PixelsToNDC(x, y float32) Vector2 {
	return Vector2{
		x/float32(camera.width)*2 - 1,
		-(y/float32(camera.height)*2 - 1),
	}
}

// PickRay returns a Ray starting at the camera's position and passing through the given point in normalized device coordinates.
func (camera *Camera) PickRay(ndcX, ndcY float32) Ray {

	tan := math32.Tan(math32.ToRadians(camera.fieldOfView) / 2)

	// Direction in view space; the camera looks down -Z.
	dir := Vector3{ndcX * tan * camera.AspectRatio(), ndcY * tan, -1}

	return Ray{
		Origin:    camera.WorldPosition(),
		Direction: camera.Transform().MultVecNoTranslate(dir).Unit(),
	}

}
