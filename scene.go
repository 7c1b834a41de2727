package signboard

// Scene represents a world of sorts, and can contain a variety of Models and Nodes under its Root. A Scene also has a World,
// which controls the clear color and ambient lighting.
type Scene struct {
	Name    string
	Root    INode  // The Root Node of the Scene.
	World   *World // The World used to render the Scene.
	library *Library
}

// NewScene creates a new Scene by the name given.
func NewScene(name string) *Scene {

	scene := &Scene{
		Name:  name,
		World: NewWorld("World"),
	}

	root := NewNode("Root")
	root.scene = scene
	scene.Root = root

	return scene

}

// Library returns the Library from which this Scene was loaded. If it was created through code and not associated with a Library, this function will return nil.
func (scene *Scene) Library() *Library {
	return scene.library
}

// Lights returns every Light in the Scene (including the World's ambient light, if lighting is on and it's active).
func (scene *Scene) Lights() []Light {

	lights := []Light{}

	if scene.World != nil && scene.World.AmbientLight != nil && scene.World.AmbientLight.IsOn() {
		lights = append(lights, scene.World.AmbientLight)
	}

	scene.Root.Walk(func(node INode) bool {
		if light, ok := node.(Light); ok && light.IsOn() {
			lights = append(lights, light)
		}
		return true
	})

	return lights

}
