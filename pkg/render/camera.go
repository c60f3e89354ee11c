package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits Center. Elevation and Azimuth are in degrees, azimuth is
// measured from +x towards +y and up is +z.
type Camera struct {
	Distance  float64
	Elevation float64
	Azimuth   float64
	Center    mgl64.Vec3
	FOV       float64 // vertical, degrees
}

func DefaultCamera() Camera {
	return Camera{Distance: 10, Elevation: 30, Azimuth: 45, FOV: 60}
}

// Eye is the camera position in world space.
func (c Camera) Eye() mgl64.Vec3 {
	e, a := mgl64.DegToRad(c.Elevation), mgl64.DegToRad(c.Azimuth)
	return c.Center.Add(mgl64.Vec3{
		math.Cos(e) * math.Cos(a),
		math.Cos(e) * math.Sin(a),
		math.Sin(e),
	}.Mul(c.Distance))
}

func (c Camera) View() mgl64.Mat4 {
	up := mgl64.Vec3{0, 0, 1}
	// looking straight down or up, fall back to an up vector in the ground
	// plane that keeps azimuth meaningful
	if math.Abs(math.Cos(mgl64.DegToRad(c.Elevation))) < 1e-9 {
		a := mgl64.DegToRad(c.Azimuth)
		up = mgl64.Vec3{-math.Cos(a), -math.Sin(a), 0}
	}
	return mgl64.LookAtV(c.Eye(), c.Center, up)
}

func (c Camera) Projection(aspect float64) mgl64.Mat4 {
	fov := c.FOV
	if fov <= 0 {
		fov = 60
	}
	far := max(c.Distance*4, 100)
	return mgl64.Perspective(mgl64.DegToRad(fov), aspect, Near, far)
}

// Near is the distance of the near clipping plane.
const Near = 0.1

// Orbit rotates the camera by screen deltas in degrees.
func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	c.Azimuth = math.Mod(c.Azimuth+dAzimuth, 360)
	c.Elevation = mgl64.Clamp(c.Elevation+dElevation, -90, 90)
}

// Zoom scales the distance, factors below one move closer.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = mgl64.Clamp(c.Distance*factor, 1, 1000)
}

// Rig eases a camera towards a target pose with critically damped springs.
type Rig struct {
	spring      harmonica.Spring
	cur, target Camera
	vel         [3]float64
}

func NewRig(fps int, cam Camera) *Rig {
	return &Rig{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		cur:    cam,
		target: cam,
	}
}

// SetTarget makes cam the pose the rig moves to. The azimuth is unwrapped so
// the camera turns the short way round.
func (r *Rig) SetTarget(cam Camera) {
	d := math.Mod(cam.Azimuth-r.cur.Azimuth, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	cam.Azimuth = r.cur.Azimuth + d
	r.target = cam
}

// Jump moves to cam immediately.
func (r *Rig) Jump(cam Camera) {
	r.cur, r.target = cam, cam
	r.vel = [3]float64{}
}

func (r *Rig) Target() Camera { return r.target }

func (r *Rig) Camera() Camera { return r.cur }

// Step advances the springs one frame and returns the eased camera.
func (r *Rig) Step() Camera {
	r.cur.Distance, r.vel[0] = r.spring.Update(r.cur.Distance, r.vel[0], r.target.Distance)
	r.cur.Elevation, r.vel[1] = r.spring.Update(r.cur.Elevation, r.vel[1], r.target.Elevation)
	r.cur.Azimuth, r.vel[2] = r.spring.Update(r.cur.Azimuth, r.vel[2], r.target.Azimuth)
	r.cur.Center = r.target.Center
	r.cur.FOV = r.target.FOV
	return r.cur
}

// Settled reports whether the camera is within eps of the target.
func (r *Rig) Settled(eps float64) bool {
	return math.Abs(r.cur.Distance-r.target.Distance) < eps &&
		math.Abs(r.cur.Elevation-r.target.Elevation) < eps &&
		math.Abs(r.cur.Azimuth-r.target.Azimuth) < eps &&
		math.Abs(r.vel[0])+math.Abs(r.vel[1])+math.Abs(r.vel[2]) < eps
}
