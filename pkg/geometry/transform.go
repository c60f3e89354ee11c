package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// AlignZ returns the rotation taking +Z onto dir as an angle in degrees and a
// rotation axis. ok is false when dir has no direction.
func AlignZ(dir mgl64.Vec3) (angle float64, axis mgl64.Vec3, ok bool) {
	l := dir.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return 0, mgl64.Vec3{}, false
	}
	c := mgl64.Clamp(AxisZ.Dot(dir)/l, -1, 1)
	angle = mgl64.RadToDeg(math.Acos(c))
	axis = AxisZ.Cross(dir)
	if axis.Len() < 1e-12 {
		if c > 0 {
			return 0, mgl64.Vec3{}, true
		}
		// anti-parallel, any perpendicular axis will do
		return 180, AxisX, true
	}
	return angle, axis.Normalize(), true
}

// Rotation returns a rotation of angle degrees around axis. A zero axis or
// zero angle yields the identity.
func Rotation(angle float64, axis mgl64.Vec3) mgl64.Mat4 {
	if angle == 0 || axis.Len() == 0 {
		return mgl64.Ident4()
	}
	return mgl64.HomogRotate3D(mgl64.DegToRad(angle), axis.Normalize())
}

func Translation(v mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(v[0], v[1], v[2])
}

// Finite reports whether every component is a real number.
func Finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// TransformPoint applies m to p as a point (w=1).
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}
