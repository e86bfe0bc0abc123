// Package camera implements a first-person camera driven by a unit quaternion.
//
// Orientation is updated incrementally: every mouse-look step composes a small
// rotation onto the current orientation and renormalizes, so long sessions do
// not drift or lock. The basis vectors used for movement are always read back
// from the view matrix and never stored.
package camera

import "github.com/go-gl/mathgl/mgl32"

// Camera tracks an eye position and orientation.
//
// A Camera is owned by a single frame loop and is not safe for concurrent use.
type Camera struct {
	position    mgl32.Vec3
	orientation mgl32.Quat

	// Bookkeeping only; orientation is never rebuilt from these.
	yaw, pitch, roll float32
}

// New returns a camera at the origin facing -Z with +Y up.
func New() *Camera {
	return &Camera{orientation: mgl32.QuatIdent()}
}

// NewAt returns a camera at p facing -Z with +Y up.
func NewAt(p mgl32.Vec3) *Camera {
	c := New()
	c.position = p
	return c
}

// View returns rotation(orientation) * translation(-position).
func (c *Camera) View() mgl32.Mat4 {
	r := c.orientation.Mat4()
	t := mgl32.Translate3D(-c.position[0], -c.position[1], -c.position[2])
	return r.Mul4(t)
}

// Position returns the eye position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Rotation returns the current orientation.
func (c *Camera) Rotation() mgl32.Quat { return c.orientation }

// Angles returns the accumulated yaw, pitch and roll in radians.
func (c *Camera) Angles() (yaw, pitch, roll float32) { return c.yaw, c.pitch, c.roll }

// Forward is the negated third column of the view rotation.
func (c *Camera) Forward() mgl32.Vec3 { return c.View().Col(2).Vec3().Mul(-1) }

// Right is the first column of the view rotation.
func (c *Camera) Right() mgl32.Vec3 { return c.View().Col(0).Vec3() }

// Up is the second column of the view rotation.
func (c *Camera) Up() mgl32.Vec3 { return c.View().Col(1).Vec3() }

func (c *Camera) moveDir(s float32, dir mgl32.Vec3) {
	c.position = c.position.Add(dir.Mul(s))
}

func (c *Camera) MoveForward(s float32)  { c.moveDir(s, c.Forward()) }
func (c *Camera) MoveBackward(s float32) { c.moveDir(-s, c.Forward()) }
func (c *Camera) MoveLeft(s float32)     { c.moveDir(-s, c.Right()) }
func (c *Camera) MoveRight(s float32)    { c.moveDir(s, c.Right()) }
func (c *Camera) MoveUp(s float32)       { c.moveDir(s, c.Up()) }
func (c *Camera) MoveDown(s float32)     { c.moveDir(-s, c.Up()) }

// PanX translates along world X regardless of orientation.
func (c *Camera) PanX(d float32) { c.position[0] += d }

// PanY translates along world Y regardless of orientation.
func (c *Camera) PanY(d float32) { c.position[1] += d }

// RotateTo applies mouse-look for a cursor moving from prev to cur.
//
// The delta rotation is built from (pitch, yaw, roll) and left-multiplied
// onto the orientation, i.e. applied in world space.
func (c *Camera) RotateTo(cur, prev, sensitivity mgl32.Vec2) {
	d := cur.Sub(prev)
	yawDelta := sensitivity[0] * d[0]
	pitchDelta := sensitivity[1] * d[1]
	if yawDelta == 0 && pitchDelta == 0 && c.roll == 0 {
		return
	}

	delta := mgl32.AnglesToQuat(pitchDelta, yawDelta, c.roll, mgl32.XYZ)
	c.orientation = delta.Mul(c.orientation).Normalize()

	c.yaw += yawDelta
	c.pitch += pitchDelta
}
