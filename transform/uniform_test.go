package transform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

func TestModelMatrix32_IsCopy(t *testing.T) {
	tr := New()
	tr.SetTranslation(mgl64.Vec3{1, 2, 3})

	model := tr.ModelMatrix32()
	tr.SetTranslation(mgl64.Vec3{9, 9, 9})

	if model.Col(3).Vec3() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("copied model translation = %v, want (1,2,3)", model.Col(3).Vec3())
	}
	if tr.ModelMatrix32().Col(3).Vec3() != (mgl32.Vec3{9, 9, 9}) {
		t.Errorf("fresh model translation = %v, want (9,9,9)", tr.ModelMatrix32().Col(3).Vec3())
	}
}

func TestModelViewProjection(t *testing.T) {
	tr := New()
	tr.SetTranslation(mgl64.Vec3{0, 0, -5})
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
	projection := mgl64.Perspective(mgl64.DegToRad(60), 16.0/9.0, 0.1, 100)

	want := projection.Mul4(view).Mul4(tr.WorldMatrix())
	got := tr.ModelViewProjection(view, projection)
	for i := range got {
		if !almostEqual(float64(got[i]), want[i], 1e-5) {
			t.Fatalf("MVP[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormalMatrix32_UniformScale(t *testing.T) {
	tr := New()
	tr.SetUniformScale(2)

	n := tr.NormalMatrix32()
	for i := 0; i < 3; i++ {
		if !almostEqual(float64(n.At(i, i)), 0.5, 1e-6) {
			t.Errorf("normal[%d][%d] = %v, want 0.5", i, i, n.At(i, i))
		}
	}
}
