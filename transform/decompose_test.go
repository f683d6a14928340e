package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDecompose_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		srt  SRT
	}{
		{name: "identity", srt: Identity()},
		{
			name: "translated",
			srt:  SRT{Translation: mgl64.Vec3{1, -2, 3}, Rotation: mgl64.QuatIdent(), Scale: mgl64.Vec3{1, 1, 1}},
		},
		{
			name: "rotated and scaled",
			srt: SRT{
				Translation: mgl64.Vec3{4, 0, -1},
				Rotation:    mgl64.QuatRotate(1.2, mgl64.Vec3{1, 1, 0}.Normalize()),
				Scale:       mgl64.Vec3{2, 3, 0.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decompose(tt.srt.Matrix())

			if !vec3AlmostEqual(got.Translation, tt.srt.Translation, 1e-9) {
				t.Errorf("Translation = %v, want %v", got.Translation, tt.srt.Translation)
			}
			if !vec3AlmostEqual(got.Scale, tt.srt.Scale, 1e-9) {
				t.Errorf("Scale = %v, want %v", got.Scale, tt.srt.Scale)
			}
			if !got.Matrix().ApproxEqualThreshold(tt.srt.Matrix(), 1e-9) {
				t.Errorf("recomposed matrix = %v, want %v", got.Matrix(), tt.srt.Matrix())
			}
		})
	}
}

func TestDecompose_Mirrored(t *testing.T) {
	m := mgl64.Scale3D(-1, 1, 1)
	got := Decompose(m)

	if !almostEqual(got.Scale.X(), -1, 1e-12) {
		t.Errorf("Scale.X = %v, want -1", got.Scale.X())
	}
	if !got.Matrix().ApproxEqualThreshold(m, 1e-9) {
		t.Errorf("recomposed = %v, want %v", got.Matrix(), m)
	}
}

func TestDecompose_ZeroScale(t *testing.T) {
	got := Decompose(mgl64.Scale3D(0, 1, 1))
	if got.Rotation != mgl64.QuatIdent() {
		t.Errorf("Rotation = %v, want identity", got.Rotation)
	}
	if math.IsNaN(got.Scale.Y()) {
		t.Error("scale should not be NaN")
	}
}
