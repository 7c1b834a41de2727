package signboard

// World represents a collection of settings that one uses to control lighting and ambience. This includes the screen clear color,
// whether lighting is globally enabled or not, and finally the ambient lighting level (using the World's AmbientLight).
type World struct {
	Name         string
	ClearColor   Color         // The clear color of the screen
	LightingOn   bool          // If lighting is enabled when rendering the scene.
	AmbientLight *AmbientLight // Ambient lighting for this world
}

// NewWorld creates a new World with the specified name and default values for lighting.
func NewWorld(name string) *World {

	return &World{
		Name:         name,
		LightingOn:   true,
		ClearColor:   NewColor(0.08, 0.09, 0.1, 1),
		AmbientLight: NewAmbientLight("ambient light", 1, 1, 1, 0),
	}

}
