package transform

import "github.com/go-gl/mathgl/mgl64"

// SRT is the durable local state of a node: scale, rotation and translation.
// Cached matrices are never part of it.
type SRT struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

// Identity returns the default SRT: no translation, identity rotation, unit scale.
func Identity() SRT {
	return SRT{
		Translation: mgl64.Vec3{0, 0, 0},
		Rotation:    mgl64.QuatIdent(),
		Scale:       mgl64.Vec3{1, 1, 1},
	}
}

// Matrix composes the SRT: translate, then rotate and scale.
func (s SRT) Matrix() mgl64.Mat4 {
	t := mgl64.Translate3D(s.Translation.X(), s.Translation.Y(), s.Translation.Z())
	rs := s.Rotation.Mat4().Mul4(mgl64.Scale3D(s.Scale.X(), s.Scale.Y(), s.Scale.Z()))
	return t.Mul4(rs)
}
