package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap, touching faces included
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Transform returns the box enclosing the 8 corners of a mapped through m.
func (a AABB) Transform(m mgl64.Mat4) AABB {
	inf := math.Inf(1)
	out := AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
	for i := 0; i < 8; i++ {
		corner := a.Min
		if i&1 != 0 {
			corner[0] = a.Max[0]
		}
		if i&2 != 0 {
			corner[1] = a.Max[1]
		}
		if i&4 != 0 {
			corner[2] = a.Max[2]
		}
		p := m.Mul4x1(corner.Vec4(1)).Vec3()
		for axis := 0; axis < 3; axis++ {
			out.Min[axis] = math.Min(out.Min[axis], p[axis])
			out.Max[axis] = math.Max(out.Max[axis], p[axis])
		}
	}
	return out
}

// WorldBounds maps a local-space box into world space using the cached
// world matrix.
func (t *Transform) WorldBounds(local AABB) AABB {
	return local.Transform(t.WorldMatrix())
}
