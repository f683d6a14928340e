package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func unitBox() AABB {
	return AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}
}

func TestAABBContainsPoint(t *testing.T) {
	tests := []struct {
		name  string
		point mgl64.Vec3
		want  bool
	}{
		{"center", mgl64.Vec3{0, 0, 0}, true},
		{"on face", mgl64.Vec3{1, 0, 0}, true},
		{"corner", mgl64.Vec3{1, 1, 1}, true},
		{"outside X", mgl64.Vec3{1.1, 0, 0}, false},
		{"outside Z", mgl64.Vec3{0, 0, -2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unitBox().ContainsPoint(tt.point); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestAABBOverlaps(t *testing.T) {
	tests := []struct {
		name  string
		other AABB
		want  bool
	}{
		{"identical", unitBox(), true},
		{"touching", AABB{Min: mgl64.Vec3{1, -1, -1}, Max: mgl64.Vec3{2, 1, 1}}, true},
		{"separated on Y", AABB{Min: mgl64.Vec3{-1, 2, -1}, Max: mgl64.Vec3{1, 3, 1}}, false},
		{"contained", AABB{Min: mgl64.Vec3{-0.5, -0.5, -0.5}, Max: mgl64.Vec3{0.5, 0.5, 0.5}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unitBox().Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(unitBox()); got != tt.want {
				t.Errorf("Overlaps() symmetry = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	m := mgl64.Translate3D(10, 0, 0).Mul4(mgl64.HomogRotate3DZ(math.Pi / 4)).Mul4(mgl64.Scale3D(2, 1, 1))
	got := unitBox().Transform(m)

	// corner (2,1) rotated by 45 degrees reaches 3/sqrt(2) on both axes
	extent := 3 / math.Sqrt2
	want := AABB{
		Min: mgl64.Vec3{10 - extent, -extent, -1},
		Max: mgl64.Vec3{10 + extent, extent, 1},
	}
	if !vec3AlmostEqual(got.Min, want.Min, 1e-9) || !vec3AlmostEqual(got.Max, want.Max, 1e-9) {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
}

func TestWorldBounds_FollowsParent(t *testing.T) {
	tree := newTestTree()
	p := tree.add(nil)
	c := tree.add(p)
	c.SetTranslation(mgl64.Vec3{1, 0, 0})
	p.SetUniformScale(2)

	got := c.WorldBounds(unitBox())
	want := AABB{Min: mgl64.Vec3{0, -2, -2}, Max: mgl64.Vec3{4, 2, 2}}
	if !vec3AlmostEqual(got.Min, want.Min, 1e-12) || !vec3AlmostEqual(got.Max, want.Max, 1e-12) {
		t.Errorf("WorldBounds() = %+v, want %+v", got, want)
	}
}
