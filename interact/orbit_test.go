package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solarlune/signboard"
	"github.com/solarlune/signboard/math32"
)

func newTestOrbit() (*OrbitControl, *signboard.Camera) {
	camera := signboard.NewCamera(800, 600)
	camera.SetLocalPosition(0, 0, 5)
	return NewOrbitControl(camera, signboard.Vector3{}), camera
}

func TestOrbitStartsAtCamera(t *testing.T) {

	orbit, _ := newTestOrbit()

	yaw, pitch, distance := orbit.Angles()
	assert.InDelta(t, 0, yaw, 1e-5)
	assert.InDelta(t, 0, pitch, 1e-5)
	assert.InDelta(t, 5, distance, 1e-5)

}

func TestOrbitRotateImmediate(t *testing.T) {

	orbit, camera := newTestOrbit()
	orbit.Damping = 0
	orbit.RotateSpeed = 1

	orbit.Rotate(-math32.Pi/2, 0)
	orbit.Update(1.0 / 60)

	// A quarter turn puts the camera on +X, still looking at the target.
	assert.True(t, camera.WorldPosition().Equals(signboard.Vector3{X: 5}), "position %s", camera.WorldPosition())
	assert.True(t, camera.WorldRotation().Forward().Equals(signboard.Vector3{X: 1}), "forward %s", camera.WorldRotation().Forward())

}

func TestOrbitDamping(t *testing.T) {

	orbit, camera := newTestOrbit()
	orbit.Damping = 0.25

	orbit.Zoom(5) // Halve the distance

	orbit.Update(0.05)
	_, _, mid := orbit.Angles()
	assert.Less(t, mid, float32(5))
	assert.Greater(t, mid, float32(2.5))

	for i := 0; i < 60; i++ {
		orbit.Update(1.0 / 60)
	}

	_, _, end := orbit.Angles()
	assert.InDelta(t, 2.5, end, 1e-4)
	assert.InDelta(t, 2.5, camera.WorldPosition().Magnitude(), 1e-3)

}

func TestOrbitClamps(t *testing.T) {

	orbit, _ := newTestOrbit()
	orbit.Damping = 0

	orbit.Rotate(0, 1000)
	orbit.Update(0)
	_, pitch, _ := orbit.Angles()
	assert.InDelta(t, 89*math32.Pi/180, pitch, 1e-4)

	orbit.Zoom(-1000)
	orbit.Update(0)
	_, _, distance := orbit.Angles()
	assert.Equal(t, orbit.MaxDistance, distance)

	orbit.Zoom(1000)
	orbit.Update(0)
	_, _, distance = orbit.Angles()
	assert.Equal(t, orbit.MinDistance, distance)

}

func TestLoopStep(t *testing.T) {

	c := newTestController(t, nil)
	c.SetDisplayedText("Hello")

	presented := 0
	loop := &Loop{
		Orbit:      NewOrbitControl(c.Camera(), signboard.Vector3{}),
		Controller: c,
		Presenter:  presenterFunc(func() { presented++ }),
	}

	text := c.Content().Interactive.(*signboard.Model)
	c.Pointer().Set(frontPoint(t, c, text))

	loop.Step(1.0 / 60)

	state, _ := c.State()
	assert.Equal(t, StateHovering, state)
	assert.Equal(t, 1, presented)

}

type presenterFunc func()

func (p presenterFunc) Present() { p() }
