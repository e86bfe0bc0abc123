package render

import (
	"image/color"

	perlin "github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// Kind selects the pipeline a draw call goes through.
type Kind uint8

const (
	KindColorCube Kind = iota
	KindUVCube
	KindTriangle
	KindTerrain
)

func (k Kind) String() string {
	switch k {
	case KindColorCube:
		return "color-cube"
	case KindUVCube:
		return "uv-cube"
	case KindTriangle:
		return "triangle"
	case KindTerrain:
		return "terrain"
	default:
		return "unknown"
	}
}

// Draw is one queued draw call. Mesh is used for KindTerrain and may
// override the built-in geometry of the other kinds.
type Draw struct {
	Kind  Kind
	Model mgl32.Mat4
	Mesh  *Mesh
}

// Light is a single point light with an ambient term. Colours are 0..1.
type Light struct {
	Ambient mgl32.Vec4
	Diffuse mgl32.Vec4
	Pos     mgl32.Vec3
}

// DefaultLight is a dim ambient with a white light overhead.
func DefaultLight() Light {
	return Light{
		Ambient: mgl32.Vec4{0.2, 0.2, 0.2, 1},
		Diffuse: mgl32.Vec4{1, 1, 1, 1},
		Pos:     mgl32.Vec3{0, 4, 0},
	}
}

// Model composes translation * rotation * scale.
func Model(t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(t[0], t[1], t[2]).Mul4(r.Mat4()).Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// Perspective is a right-handed projection; fovY is in radians.
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(fovY, aspect, near, far)
}

// NoiseHeight returns a 2D Perlin height field in roughly [-1,1].
func NoiseHeight(seed int64, frequency float32) func(x, z float32) float32 {
	p := perlin.NewPerlin(2, 2, 3, seed)
	return func(x, z float32) float32 {
		return float32(p.Noise2D(float64(x*frequency), float64(z*frequency))) * 1.5
	}
}

var (
	cubeFaceColors = []color.RGBA{White, Pink, White, Pink, White, Pink}
	builtinCube    = Cube(0.25, 0.25, 0.25, cubeFaceColors)
	builtinUVCube  = UVCube(0.25, 0.25, 0.25)
	builtinTri     = Triangle(0.5, Yellow)
)

func (d Draw) mesh() *Mesh {
	if d.Mesh != nil {
		return d.Mesh
	}
	switch d.Kind {
	case KindColorCube:
		return &builtinCube
	case KindUVCube:
		return &builtinUVCube
	case KindTriangle:
		return &builtinTri
	default:
		return nil
	}
}
