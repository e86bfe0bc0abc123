package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects the rasterization mode.
type Mode uint8

const (
	ModeSolid Mode = iota
	ModeWireframe
)

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       Mode
	Depth      bool
	ClearColor color.RGBA
	Light      Light

	queue    []Draw
	depthBuf []float32
}

// NewRenderer returns a solid, depth-tested renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		Mode:       ModeSolid,
		Depth:      true,
		ClearColor: SkyBlue,
		Light:      DefaultLight(),
	}
}

// Submit queues a draw call for the next Render.
func (r *Renderer) Submit(d Draw) {
	if d.Model == (mgl32.Mat4{}) {
		d.Model = mgl32.Ident4()
	}
	r.queue = append(r.queue, d)
}

// Pending reports the number of queued draw calls.
func (r *Renderer) Pending() int { return len(r.queue) }

// Render clears t, draws every queued call with the given view and
// projection, and empties the queue.
func (r *Renderer) Render(t Target, view, proj mgl32.Mat4) {
	if r == nil || t == nil {
		return
	}
	defer func() { r.queue = r.queue[:0] }()

	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)
	if r.Depth {
		r.resetDepth(w * h)
	}

	vp := proj.Mul4(view)
	for _, d := range r.queue {
		switch d.Kind {
		case KindColorCube, KindUVCube, KindTriangle, KindTerrain:
			if m := d.mesh(); m != nil {
				r.drawMesh(t, w, h, vp, d.Model, m)
			}
		}
	}
}

func (r *Renderer) resetDepth(n int) {
	if cap(r.depthBuf) < n {
		r.depthBuf = make([]float32, n)
	}
	r.depthBuf = r.depthBuf[:n]
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

type screenPoint struct {
	x, y int
	z    float32
}

func (r *Renderer) drawMesh(t Target, w, h int, vp, model mgl32.Mat4, m *Mesh) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	mvp := vp.Mul4(model)

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		s0, ok0 := project(mvp, v0.Pos, w, h)
		s1, ok1 := project(mvp, v1.Pos, w, h)
		s2, ok2 := project(mvp, v2.Pos, w, h)
		// Trivial clip: drop triangles touching the near plane.
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		shade := r.intensity(model, v0.Pos, v1.Pos, v2.Pos)
		c0, c1, c2 := scale(v0.Color, shade), scale(v1.Color, shade), scale(v2.Color, shade)

		if r.Mode == ModeWireframe {
			drawLine(t, s0.x, s0.y, s1.x, s1.y, c0)
			drawLine(t, s1.x, s1.y, s2.x, s2.y, c1)
			drawLine(t, s2.x, s2.y, s0.x, s0.y, c2)
			continue
		}
		r.fillTriangle(t, w, h, s0, c0, s1, c1, s2, c2)
	}
}

func project(mvp mgl32.Mat4, p mgl32.Vec3, w, h int) (screenPoint, bool) {
	c := mvp.Mul4x1(p.Vec4(1))
	if c[3] <= 1e-6 {
		return screenPoint{}, false
	}
	inv := 1 / c[3]
	nx, ny, nz := c[0]*inv, c[1]*inv, c[2]*inv
	sx := (nx*0.5 + 0.5) * float32(w-1)
	sy := (1 - (ny*0.5 + 0.5)) * float32(h-1)
	return screenPoint{x: int(sx + 0.5), y: int(sy + 0.5), z: nz}, true
}

// intensity is flat lambert shading of the world-space triangle against
// the point light, plus ambient.
func (r *Renderer) intensity(model mgl32.Mat4, a, b, c mgl32.Vec3) float32 {
	wa := mgl32.TransformCoordinate(a, model)
	wb := mgl32.TransformCoordinate(b, model)
	wc := mgl32.TransformCoordinate(c, model)

	amb := clampF32(r.Light.Ambient[0]+r.Light.Ambient[1]+r.Light.Ambient[2], 0, 3) / 3
	dif := clampF32(r.Light.Diffuse[0]+r.Light.Diffuse[1]+r.Light.Diffuse[2], 0, 3) / 3

	n := wb.Sub(wa).Cross(wc.Sub(wa))
	if n.Len() == 0 {
		return clampF32(amb, 0, 1)
	}
	n = n.Normalize()
	centroid := wa.Add(wb).Add(wc).Mul(1.0 / 3)
	l := r.Light.Pos.Sub(centroid)
	if l.Len() == 0 {
		return clampF32(amb+dif, 0, 1)
	}
	d := n.Dot(l.Normalize())
	if d < 0 {
		// Two-sided: winding varies across the built-in meshes.
		d = -d
	}
	return clampF32(amb+d*dif, 0, 1)
}

func scale(c color.RGBA, s float32) color.RGBA {
	mul := func(ch uint8) uint8 { return uint8(clampF32(float32(ch)*s, 0, 255)) }
	return color.RGBA{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

func (r *Renderer) depthTest(w, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is in [-1,1]; map to [0,1].
	d := clampF32(z*0.5+0.5, 0, 1)
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

func drawLine(t Target, x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Renderer) fillTriangle(t Target, w, h int, p0 screenPoint, c0 color.RGBA, p1 screenPoint, c1 color.RGBA, p2 screenPoint, c2 color.RGBA) {
	minX, maxX := max(min(p0.x, p1.x, p2.x), 0), min(max(p0.x, p1.x, p2.x), w-1)
	minY, maxY := max(min(p0.y, p1.y, p2.y), 0), min(max(p0.y, p1.y, p2.y), h-1)
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(p0.x, p0.y, p1.x, p1.y, p2.x, p2.y)
	if area == 0 {
		return
	}
	invArea := 1 / float32(area)
	flat := c0 == c1 && c1 == c2

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(p1.x, p1.y, p2.x, p2.y, x, y)
			w1 := edgeFn(p2.x, p2.y, p0.x, p0.y, x, y)
			w2 := edgeFn(p0.x, p0.y, p1.x, p1.y, x, y)
			// Accept both windings.
			if area > 0 && (w0|w1|w2) < 0 {
				continue
			}
			if area < 0 && (w0 > 0 || w1 > 0 || w2 > 0) {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			if !r.depthTest(w, x, y, a0*p0.z+a1*p1.z+a2*p2.z) {
				continue
			}
			if flat {
				t.SetPixel(x, y, c0)
				continue
			}
			t.SetPixel(x, y, color.RGBA{
				R: uint8(clampF32(a0*float32(c0.R)+a1*float32(c1.R)+a2*float32(c2.R), 0, 255)),
				G: uint8(clampF32(a0*float32(c0.G)+a1*float32(c1.G)+a2*float32(c2.G), 0, 255)),
				B: uint8(clampF32(a0*float32(c0.B)+a1*float32(c1.B)+a2*float32(c2.B), 0, 255)),
				A: 0xFF,
			})
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
