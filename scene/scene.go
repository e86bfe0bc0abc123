// Package scene loads the TOML scene description: cube placements, the
// starting camera position, lighting and terrain size.
package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// ErrBadVector reports a vector with the wrong number of components.
var ErrBadVector = errors.New("bad vector")

// File mirrors the on-disk layout.
type File struct {
	Rectangles struct {
		Values [][]float32 `toml:"values"`
	} `toml:"rectangles"`
	Camera struct {
		Position []float32 `toml:"position"`
	} `toml:"camera"`
	Light struct {
		Ambient  []float32 `toml:"ambient"`
		Diffuse  []float32 `toml:"diffuse"`
		Position []float32 `toml:"position"`
	} `toml:"light"`
	Terrain struct {
		Size int   `toml:"size"`
		Seed int64 `toml:"seed"`
	} `toml:"terrain"`
}

// Scene is a validated scene description.
type Scene struct {
	Cubes       []mgl32.Vec3
	CameraStart mgl32.Vec3
	Ambient     mgl32.Vec4
	Diffuse     mgl32.Vec4
	LightPos    mgl32.Vec3
	TerrainSize int
	TerrainSeed int64
}

// Default is used when no scene file is configured.
func Default() Scene {
	return Scene{
		Cubes:       []mgl32.Vec3{{0, 0, -2}, {1, 0.5, -3}, {-1, -0.5, -3}},
		CameraStart: mgl32.Vec3{0, 0, 1},
		Ambient:     mgl32.Vec4{0.2, 0.2, 0.2, 1},
		Diffuse:     mgl32.Vec4{1, 1, 1, 1},
		LightPos:    mgl32.Vec3{0, 4, 0},
		TerrainSize: 32,
		TerrainSeed: 1,
	}
}

// Load reads and parses a scene file.
func Load(path string) (Scene, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene. Absent sections keep Default values.
func Parse(b []byte) (Scene, error) {
	var f File
	if err := toml.Unmarshal(b, &f); err != nil {
		return Scene{}, fmt.Errorf("decode scene: %w", err)
	}

	s := Default()
	if f.Rectangles.Values != nil {
		s.Cubes = make([]mgl32.Vec3, 0, len(f.Rectangles.Values))
		for i, v := range f.Rectangles.Values {
			p, err := vec3(v)
			if err != nil {
				return Scene{}, fmt.Errorf("rectangles.values[%d]: %w", i, err)
			}
			s.Cubes = append(s.Cubes, p)
		}
	}

	var err error
	if f.Camera.Position != nil {
		if s.CameraStart, err = vec3(f.Camera.Position); err != nil {
			return Scene{}, fmt.Errorf("camera.position: %w", err)
		}
	}
	if f.Light.Ambient != nil {
		if s.Ambient, err = vec4(f.Light.Ambient); err != nil {
			return Scene{}, fmt.Errorf("light.ambient: %w", err)
		}
	}
	if f.Light.Diffuse != nil {
		if s.Diffuse, err = vec4(f.Light.Diffuse); err != nil {
			return Scene{}, fmt.Errorf("light.diffuse: %w", err)
		}
	}
	if f.Light.Position != nil {
		if s.LightPos, err = vec3(f.Light.Position); err != nil {
			return Scene{}, fmt.Errorf("light.position: %w", err)
		}
	}
	if f.Terrain.Size != 0 {
		s.TerrainSize = f.Terrain.Size
	}
	if f.Terrain.Seed != 0 {
		s.TerrainSeed = f.Terrain.Seed
	}
	return s, nil
}

func vec3(v []float32) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%w: want 3 components, got %d", ErrBadVector, len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}

func vec4(v []float32) (mgl32.Vec4, error) {
	if len(v) != 4 {
		return mgl32.Vec4{}, fmt.Errorf("%w: want 4 components, got %d", ErrBadVector, len(v))
	}
	return mgl32.Vec4{v[0], v[1], v[2], v[3]}, nil
}
