package signboard

import "errors"

const ErrorNoScenesInFile = "error: no scenes in the given glTF data"
const ErrorNoMeshesInScene = "error: the chosen scene has no mesh geometry"
const ErrorMalformedGLTF = "error: the glTF data refers to data it doesn't hold"

var (
	// ErrNoScene is returned by the glTF loader when the data holds no scenes to instantiate.
	ErrNoScene = errors.New(ErrorNoScenesInFile)
	// ErrNoMeshes is returned by the glTF loader when the chosen scene holds no mesh geometry to display.
	ErrNoMeshes = errors.New(ErrorNoMeshesInScene)
	// ErrMalformedGLTF is returned by the glTF loader when a mesh refers to accessors, buffer views, or vertices that don't exist.
	ErrMalformedGLTF = errors.New(ErrorMalformedGLTF)
)
