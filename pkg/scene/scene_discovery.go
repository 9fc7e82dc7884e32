package scene

import (
	"sort"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	Name        string `json:"name"`        // Identifier used on the command line and API
	Description string `json:"description"` // One-line description
}

type sceneEntry struct {
	description string
	build       func(cameraOverrides ...renderer.CameraConfig) *Scene
}

var builtinScenes = map[string]sceneEntry{
	"final":     {finalDescription, NewFinalScene},
	"materials": {materialsDescription, NewMaterialsScene},
	"defocus":   {defocusDescription, NewDefocusScene},
	"diffuse":   {diffuseDescription, NewDiffuseScene},
	"ring":      {ringDescription, NewRingScene},
}

// DefaultSceneName is rendered when no scene is requested
const DefaultSceneName = "final"

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns metadata for every built-in scene, sorted by name
func List() []SceneInfo {
	names := Names()
	scenes := make([]SceneInfo, 0, len(names))
	for _, name := range names {
		scenes = append(scenes, SceneInfo{
			Name:        name,
			Description: builtinScenes[name].description,
		})
	}
	return scenes
}

// New creates the named built-in scene with optional camera overrides
func New(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	entry, ok := builtinScenes[name]
	if !ok {
		return nil, errorsmod.Wrapf(core.ErrUnknownScene, "%q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return entry.build(cameraOverrides...), nil
}
