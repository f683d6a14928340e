package transform

import "github.com/go-gl/mathgl/mgl64"

// Decompose extracts an SRT from an affine matrix built as T*R*S.
// Shear cannot be represented and is lost. A negative determinant is folded
// into the X scale. When any axis has zero scale the rotation is identity.
func Decompose(m mgl64.Mat4) SRT {
	x := m.Col(0).Vec3()
	y := m.Col(1).Vec3()
	z := m.Col(2).Vec3()

	scale := mgl64.Vec3{x.Len(), y.Len(), z.Len()}
	if m.Mat3().Det() < 0 {
		scale[0] = -scale[0]
	}

	rotation := mgl64.QuatIdent()
	if scale[0] != 0 && scale[1] != 0 && scale[2] != 0 {
		basis := mgl64.Mat3FromCols(x.Mul(1/scale[0]), y.Mul(1/scale[1]), z.Mul(1/scale[2]))
		rotation = mgl64.Mat4ToQuat(basis.Mat4()).Normalize()
	}

	return SRT{
		Translation: m.Col(3).Vec3(),
		Rotation:    rotation,
		Scale:       scale,
	}
}
