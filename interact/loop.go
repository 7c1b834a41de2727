package interact

// Presenter composes a frame from the current scene and interaction state.
type Presenter interface {
	Present()
}

// Loop is one frame of the signboard: the orbit moves the camera, the controller updates interaction state, and the presenter
// composes the frame. Nothing in a step blocks.
type Loop struct {
	Orbit      *OrbitControl // May be nil
	Controller *Controller
	Presenter  Presenter // May be nil
}

// Step runs one frame, dt seconds after the last.
func (l *Loop) Step(dt float32) {

	if l.Orbit != nil {
		l.Orbit.Update(dt)
	}

	l.Controller.Tick()

	if l.Presenter != nil {
		l.Presenter.Present()
	}

}
