package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	Color  color.RGBA
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

var (
	White     = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Pink      = color.RGBA{R: 0xFF, G: 0xC0, B: 0xCB, A: 0xFF}
	Red       = color.RGBA{R: 0xFF, A: 0xFF}
	Yellow    = color.RGBA{R: 0xFF, G: 0xFF, A: 0xFF}
	SkyBlue   = color.RGBA{R: 0x33, G: 0xB2, B: 0xCC, A: 0xFF}
	faceNorms = [6]mgl32.Vec3{{0, -1, 0}, {0, 1, 0}, {1, 0, 0}, {0, 0, 1}, {-1, 0, 0}, {0, 0, -1}}
)

// Cube builds a box with half extents w, h, l: 36 vertices, 6 faces in the
// order bottom, top, right, front, left, back. Face i takes
// faceColors[i%len(faceColors)], or white if none are given.
func Cube(w, h, l float32, faceColors []color.RGBA) Mesh {
	corners := [36][3]float32{
		// bottom
		{w, -h, -l}, {w, -h, l}, {-w, -h, l}, {w, -h, -l}, {-w, -h, l}, {-w, -h, -l},
		// top
		{w, h, -l}, {-w, h, -l}, {-w, h, l}, {w, h, -l}, {-w, h, l}, {w, h, l},
		// right
		{w, -h, -l}, {w, h, -l}, {w, h, l}, {w, -h, -l}, {w, h, l}, {w, -h, l},
		// front
		{w, -h, l}, {w, h, l}, {-w, h, l}, {w, -h, l}, {-w, h, l}, {-w, -h, l},
		// left
		{-w, -h, l}, {-w, h, l}, {-w, h, -l}, {-w, -h, l}, {-w, h, -l}, {-w, -h, -l},
		// back
		{w, h, -l}, {w, -h, -l}, {-w, -h, -l}, {w, h, -l}, {-w, -h, -l}, {-w, h, -l},
	}
	m := Mesh{Vertices: make([]Vertex, len(corners)), Indices: make([]uint16, len(corners))}
	for i, p := range corners {
		face := i / 6
		c := White
		if len(faceColors) > 0 {
			c = faceColors[face%len(faceColors)]
		}
		m.Vertices[i] = Vertex{Pos: mgl32.Vec3{p[0], p[1], p[2]}, Normal: faceNorms[face], Color: c}
		m.Indices[i] = uint16(i)
	}
	return m
}

// UVCube is a cube whose vertex colours encode their position in the box,
// the software stand-in for a texture-coordinate pipeline.
func UVCube(w, h, l float32) Mesh {
	m := Cube(w, h, l, nil)
	for i := range m.Vertices {
		p := m.Vertices[i].Pos
		m.Vertices[i].Color = color.RGBA{
			R: unitByte(p[0], w),
			G: unitByte(p[1], h),
			B: unitByte(p[2], l),
			A: 0xFF,
		}
	}
	return m
}

func unitByte(v, half float32) uint8 {
	if half == 0 {
		return 0x80
	}
	t := (v/half + 1) / 2
	return uint8(clampF32(t, 0, 1) * 255)
}

// Triangle is a single upward-pointing triangle in the XY plane.
func Triangle(radius float32, c color.RGBA) Mesh {
	n := mgl32.Vec3{0, 0, 1}
	return Mesh{
		Vertices: []Vertex{
			{Pos: mgl32.Vec3{-radius, -radius, 0}, Normal: n, Color: c},
			{Pos: mgl32.Vec3{radius, -radius, 0}, Normal: n, Color: c},
			{Pos: mgl32.Vec3{0, radius, 0}, Normal: n, Color: c},
		},
		Indices: []uint16{0, 1, 2},
	}
}

// HeightColor maps a terrain height to its band colour: snow, rock, grass,
// dirt, water.
func HeightColor(height float32) color.RGBA {
	switch {
	case height > 0.6:
		return color.RGBA{R: 230, G: 230, B: 230, A: 0xFF}
	case height > 0.3:
		return color.RGBA{R: 178, G: 178, B: 178, A: 0xFF}
	case height > -0.2:
		return color.RGBA{R: 51, G: 178, B: 51, A: 0xFF}
	case height > -0.5:
		return color.RGBA{R: 178, G: 102, B: 51, A: 0xFF}
	default:
		return color.RGBA{R: 51, G: 51, B: 178, A: 0xFF}
	}
}

// Terrain builds an n×n cell grid spanning [-1,1] in X and Z with heights
// from height(x, z). n is clamped to [1, 180] so indices fit in uint16.
func Terrain(n int, height func(x, z float32) float32) Mesh {
	if n < 1 {
		n = 1
	}
	if n > 180 {
		n = 180
	}
	side := n + 1
	m := Mesh{
		Vertices: make([]Vertex, 0, side*side),
		Indices:  make([]uint16, 0, n*n*6),
	}
	for iz := 0; iz < side; iz++ {
		for ix := 0; ix < side; ix++ {
			x := float32(ix)/float32(n)*2 - 1
			z := float32(iz)/float32(n)*2 - 1
			var y float32
			if height != nil {
				y = height(x, z)
			}
			m.Vertices = append(m.Vertices, Vertex{
				Pos:    mgl32.Vec3{x, y, z},
				Normal: mgl32.Vec3{0, 1, 0},
				Color:  HeightColor(y),
			})
		}
	}
	for iz := 0; iz < n; iz++ {
		for ix := 0; ix < n; ix++ {
			i0 := uint16(iz*side + ix)
			i1 := i0 + 1
			i2 := i0 + uint16(side)
			i3 := i2 + 1
			m.Indices = append(m.Indices, i0, i2, i1, i1, i2, i3)
		}
	}
	return m
}
