package render

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countNot(t *MemTarget, bg color.RGBA) int {
	n := 0
	for _, p := range t.Pix {
		if p != bg {
			n++
		}
	}
	return n
}

func testView() (mgl32.Mat4, mgl32.Mat4) {
	view := mgl32.Translate3D(0, 0, -2)
	proj := Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	return view, proj
}

func TestRenderCubeCoversCenter(t *testing.T) {
	r := NewRenderer()
	tgt := NewMemTarget(64, 64)
	view, proj := testView()

	r.Submit(Draw{Kind: KindColorCube})
	require.Equal(t, 1, r.Pending())
	r.Render(tgt, view, proj)

	assert.Zero(t, r.Pending(), "queue must be drained")
	assert.NotEqual(t, r.ClearColor, tgt.At(32, 32))
	assert.Equal(t, r.ClearColor, tgt.At(0, 0))
}

func TestRenderEachKind(t *testing.T) {
	view, proj := testView()
	terrain := Terrain(4, func(x, z float32) float32 { return x * z })
	for _, d := range []Draw{
		{Kind: KindColorCube},
		{Kind: KindUVCube},
		{Kind: KindTriangle},
		{Kind: KindTerrain, Mesh: &terrain, Model: mgl32.HomogRotate3DX(mgl32.DegToRad(90))},
	} {
		r := NewRenderer()
		tgt := NewMemTarget(48, 48)
		r.Submit(d)
		r.Render(tgt, view, proj)
		assert.NotZero(t, countNot(tgt, r.ClearColor), "kind %v drew nothing", d.Kind)
	}
}

func TestTerrainWithoutMeshDrawsNothing(t *testing.T) {
	r := NewRenderer()
	tgt := NewMemTarget(16, 16)
	view, proj := testView()
	r.Submit(Draw{Kind: KindTerrain})
	r.Render(tgt, view, proj)
	assert.Zero(t, countNot(tgt, r.ClearColor))
}

func TestBehindCameraIsRejected(t *testing.T) {
	r := NewRenderer()
	tgt := NewMemTarget(32, 32)
	view, proj := testView()
	r.Submit(Draw{Kind: KindColorCube, Model: mgl32.Translate3D(0, 0, 5)})
	r.Render(tgt, view, proj)
	assert.Zero(t, countNot(tgt, r.ClearColor))
}

func TestDepthKeepsNearest(t *testing.T) {
	view, proj := testView()
	near := Cube(0.25, 0.25, 0.25, []color.RGBA{Red})
	far := Cube(0.5, 0.5, 0.5, []color.RGBA{Yellow})

	r := NewRenderer()
	r.Light = Light{Ambient: mgl32.Vec4{1, 1, 1, 1}}
	tgt := NewMemTarget(64, 64)
	r.Submit(Draw{Kind: KindColorCube, Mesh: &near, Model: mgl32.Translate3D(0, 0, 0.5)})
	r.Submit(Draw{Kind: KindColorCube, Mesh: &far, Model: mgl32.Translate3D(0, 0, -1)})
	r.Render(tgt, view, proj)

	assert.Equal(t, Red, tgt.At(32, 32))
}

func TestWireframeDrawsLessThanSolid(t *testing.T) {
	view, proj := testView()

	solid := NewRenderer()
	st := NewMemTarget(64, 64)
	solid.Submit(Draw{Kind: KindColorCube})
	solid.Render(st, view, proj)

	wire := NewRenderer()
	wire.Mode = ModeWireframe
	wt := NewMemTarget(64, 64)
	wire.Submit(Draw{Kind: KindColorCube})
	wire.Render(wt, view, proj)

	assert.NotZero(t, countNot(wt, wire.ClearColor))
	assert.Less(t, countNot(wt, wire.ClearColor), countNot(st, solid.ClearColor))
}

func TestRGB565Target(t *testing.T) {
	buf := make([]byte, 4*2*2)
	tgt := &RGB565Target{Buf: buf, Stride: 8, W: 4, H: 2}
	tgt.Clear(color.RGBA{})
	tgt.SetPixel(1, 1, White)
	tgt.SetPixel(9, 9, White)

	off := 1*8 + 1*2
	assert.Equal(t, uint16(0xFFFF), uint16(buf[off])|uint16(buf[off+1])<<8)
	assert.Equal(t, byte(0), buf[0])
	assert.Equal(t, uint16(0xF800), RGB565(0xFF, 0, 0))
}

func TestCubeGeometry(t *testing.T) {
	m := Cube(1, 2, 3, []color.RGBA{Red, Yellow})
	require.Len(t, m.Vertices, 36)
	require.Len(t, m.Indices, 36)
	assert.Equal(t, Red, m.Vertices[0].Color)
	assert.Equal(t, Yellow, m.Vertices[6].Color)
	for _, v := range m.Vertices {
		assert.InDelta(t, 1, abs32(v.Pos[0]), 1e-6)
		assert.InDelta(t, 2, abs32(v.Pos[1]), 1e-6)
		assert.InDelta(t, 3, abs32(v.Pos[2]), 1e-6)
	}
}

func TestTerrainGrid(t *testing.T) {
	m := Terrain(3, func(x, z float32) float32 { return 1 })
	assert.Len(t, m.Vertices, 16)
	assert.Len(t, m.Indices, 54)
	assert.Equal(t, HeightColor(1), m.Vertices[0].Color)

	big := Terrain(1000, nil)
	assert.Len(t, big.Vertices, 181*181)
}

func TestHeightColorBands(t *testing.T) {
	bands := []float32{0.9, 0.5, 0, -0.3, -0.9}
	seen := map[color.RGBA]bool{}
	for _, h := range bands {
		seen[HeightColor(h)] = true
	}
	assert.Len(t, seen, len(bands))
}

func TestNoiseHeightIsDeterministic(t *testing.T) {
	a := NoiseHeight(42, 3)
	b := NoiseHeight(42, 3)
	assert.Equal(t, a(0.3, -0.7), b(0.3, -0.7))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestPerspectiveGuardsAspect(t *testing.T) {
	want := mgl32.Perspective(1, 1, 0.1, 10)
	if got := Perspective(1, 0, 0.1, 10); got != want {
		t.Fatalf("Perspective(aspect=0)=%v, want %v", got, want)
	}
}
