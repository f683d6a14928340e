package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// lookAtEpsilon is the distance under which eye and target coincide.
	lookAtEpsilon = 1e-12
	// parallelEpsilon bounds |forward x up| before up is replaced.
	parallelEpsilon = 1e-6
)

// LookAt rotates the node so that its local -Z axis points from its world
// translation toward target, with up as a hint for the local +Y axis.
// It is a no-op when the node already sits on target.
//
// When up is zero or parallel to the view direction, world +Y is used
// instead, or world +Z when the view direction is itself vertical.
func (t *Transform) LookAt(target, up mgl64.Vec3) {
	dir := target.Sub(t.WorldTranslation())
	if dir.Len() <= lookAtEpsilon {
		return
	}

	rotation := lookRotation(dir.Normalize(), up)
	if p := t.Parent(); p != nil {
		rotation = p.WorldRotation().Inverse().Mul(rotation)
	}
	t.SetRotation(rotation.Normalize())
}

// lookRotation returns the world orientation whose -Z axis is forward.
func lookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	up = stableUp(forward, up)
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)

	basis := mgl64.Mat3FromCols(right, trueUp, forward.Mul(-1))
	return mgl64.Mat4ToQuat(basis.Mat4()).Normalize()
}

func stableUp(forward, up mgl64.Vec3) mgl64.Vec3 {
	if up.Len() > parallelEpsilon {
		up = up.Normalize()
		if forward.Cross(up).Len() > parallelEpsilon {
			return up
		}
	}
	if math.Abs(forward.Y()) < 1-parallelEpsilon {
		return mgl64.Vec3{0, 1, 0}
	}
	return mgl64.Vec3{0, 0, 1}
}
