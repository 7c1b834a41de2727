package signboard

// Library represents a collection of Scenes and Meshes, as loaded from an intermediary file format (.gltf / .glb).
type Library struct {
	Scenes        []*Scene         // A slice of Scenes
	ExportedScene *Scene           // The default scene of the file, if it specified one
	Meshes        map[string]*Mesh // A Map of Meshes to their names
}

// NewLibrary creates a new Library.
func NewLibrary() *Library {
	return &Library{
		Scenes: []*Scene{},
		Meshes: map[string]*Mesh{},
	}
}

// AddScene creates a new Scene in the Library and returns it.
func (lib *Library) AddScene(sceneName string) *Scene {
	newScene := NewScene(sceneName)
	newScene.library = lib
	lib.Scenes = append(lib.Scenes, newScene)
	return newScene
}

// DefaultScene returns the exported scene if there is one, or the first Scene otherwise. It returns nil for an empty Library.
func (lib *Library) DefaultScene() *Scene {
	if lib.ExportedScene != nil {
		return lib.ExportedScene
	}
	if len(lib.Scenes) > 0 {
		return lib.Scenes[0]
	}
	return nil
}
