package interact

import (
	"github.com/solarlune/signboard"
	"github.com/solarlune/signboard/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// orbitAxis is one damped orbit parameter: the value the camera currently uses and the tween carrying it towards its goal.
type orbitAxis struct {
	value float32
	goal  float32
	tween *gween.Tween
}

func (a *orbitAxis) setGoal(goal, damping float32) {
	a.goal = goal
	if damping <= 0 {
		a.value = goal
		a.tween = nil
		return
	}
	a.tween = gween.New(a.value, goal, damping, ease.OutQuad)
}

// update advances the tween and returns true if the value changed.
func (a *orbitAxis) update(dt float32) bool {
	if a.tween == nil {
		return false
	}
	val, done := a.tween.Update(dt)
	a.value = val
	if done {
		a.value = a.goal
		a.tween = nil
	}
	return true
}

// OrbitControl orbits a camera around a target point with yaw, pitch, and distance. Changes ease towards their goal over
// Damping seconds.
type OrbitControl struct {
	Camera      *signboard.Camera
	Target      signboard.Vector3
	Damping     float32 // Seconds taken to ease into a new orbit; 0 applies changes immediately
	RotateSpeed float32 // Radians of rotation per pixel dragged
	ZoomSpeed   float32 // Fraction of the distance zoomed per wheel step
	MinDistance float32
	MaxDistance float32

	yaw, pitch, distance orbitAxis
	dirty                bool
}

const maxPitch = 89 * math32.Pi / 180

// NewOrbitControl creates an OrbitControl around the target, starting from the camera's current position.
func NewOrbitControl(camera *signboard.Camera, target signboard.Vector3) *OrbitControl {

	oc := &OrbitControl{
		Camera:      camera,
		Target:      target,
		Damping:     0.25,
		RotateSpeed: 0.01,
		ZoomSpeed:   0.1,
		MinDistance: 1,
		MaxDistance: 100,
	}

	offset := camera.WorldPosition().Sub(target)
	distance := offset.Magnitude()

	oc.distance.value = distance
	if distance > 0 {
		oc.yaw.value = math32.Atan2(offset.X, offset.Z)
		oc.pitch.value = math32.Clamp(math32.Atan2(offset.Y, math32.Sqrt(offset.X*offset.X+offset.Z*offset.Z)), -maxPitch, maxPitch)
	}

	oc.yaw.goal, oc.pitch.goal, oc.distance.goal = oc.yaw.value, oc.pitch.value, oc.distance.value

	return oc

}

// Rotate turns the orbit by a drag of dx, dy pixels. Dragging right swings the camera left around the target, like grabbing the scene.
func (oc *OrbitControl) Rotate(dx, dy float32) {
	oc.yaw.setGoal(oc.yaw.goal-dx*oc.RotateSpeed, oc.Damping)
	oc.pitch.setGoal(math32.Clamp(oc.pitch.goal+dy*oc.RotateSpeed, -maxPitch, maxPitch), oc.Damping)
	oc.dirty = true
}

// Zoom moves the camera towards (positive steps) or away from (negative steps) the target.
func (oc *OrbitControl) Zoom(steps float32) {
	goal := oc.distance.goal * (1 - steps*oc.ZoomSpeed)
	oc.distance.setGoal(math32.Clamp(goal, oc.MinDistance, oc.MaxDistance), oc.Damping)
	oc.dirty = true
}

// Angles returns the current yaw and pitch (in radians) and distance of the orbit.
func (oc *OrbitControl) Angles() (yaw, pitch, distance float32) {
	return oc.yaw.value, oc.pitch.value, oc.distance.value
}

// Update advances the damping by dt seconds and moves the camera if the orbit changed.
func (oc *OrbitControl) Update(dt float32) {

	changed := oc.yaw.update(dt)
	changed = oc.pitch.update(dt) || changed
	changed = oc.distance.update(dt) || changed

	if !changed && !oc.dirty {
		return
	}

	oc.dirty = false

	cp := math32.Cos(oc.pitch.value)

	offset := signboard.Vector3{
		X: cp * math32.Sin(oc.yaw.value),
		Y: math32.Sin(oc.pitch.value),
		Z: cp * math32.Cos(oc.yaw.value),
	}.Scale(oc.distance.value)

	oc.Camera.SetWorldPositionVec(oc.Target.Add(offset))
	oc.Camera.LookAt(oc.Target)

}
