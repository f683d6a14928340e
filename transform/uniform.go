package transform

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// ModelMatrix32 returns the world matrix in the single precision layout
// expected by shader uniforms. The value is a copy: later mutations do not
// change it.
func (t *Transform) ModelMatrix32() mgl32.Mat4 {
	return mat4To32(t.WorldMatrix())
}

// ModelViewProjection returns projection * view * model.
func (t *Transform) ModelViewProjection(view, projection mgl64.Mat4) mgl32.Mat4 {
	return mat4To32(projection.Mul4(view).Mul4(t.WorldMatrix()))
}

// NormalMatrix32 returns the inverse transpose of the world rotation/scale
// block, used to transform normals under non-uniform scale.
func (t *Transform) NormalMatrix32() mgl32.Mat3 {
	n := t.WorldInverse().Mat3().Transpose()
	var out mgl32.Mat3
	for i := range n {
		out[i] = float32(n[i])
	}
	return out
}

func mat4To32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}
