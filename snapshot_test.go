package scenegraph

import (
	"testing"

	"github.com/akmonengine/scenegraph/transform"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_ParentsFirst(t *testing.T) {
	s := NewScene()
	leaf := s.Add("leaf", translated(0, 0, 1))
	root := s.Add("root", translated(1, 0, 0))
	mid := s.Add("mid", translated(0, 1, 0))
	require.NoError(t, s.Attach(mid, root))
	require.NoError(t, s.Attach(leaf, mid))

	records := s.Snapshot()

	require.Len(t, records, 3)
	assert.Equal(t, Record{Name: "root", SRT: translated(1, 0, 0), Parent: NoParent}, records[0])
	assert.Equal(t, Record{Name: "mid", SRT: translated(0, 1, 0), Parent: 0}, records[1])
	assert.Equal(t, Record{Name: "leaf", SRT: translated(0, 0, 1), Parent: 1}, records[2])
}

func TestRestore_RoundTrip(t *testing.T) {
	src := NewScene()
	root := src.Add("root", translated(1, 0, 0))
	a := src.Add("a", transform.SRT{
		Translation: mgl64.Vec3{0, 2, 0},
		Rotation:    mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0}),
		Scale:       mgl64.Vec3{2, 2, 2},
	})
	b := src.Add("b", translated(0, 0, 3))
	require.NoError(t, src.Attach(a, root))
	require.NoError(t, src.Attach(b, a))

	dst := NewScene()
	ids, err := dst.Restore(src.Snapshot())
	require.NoError(t, err)
	require.Len(t, ids, 3)

	assert.Equal(t, src.Snapshot(), dst.Snapshot())
	for _, id := range ids {
		assert.True(t, dst.Transform(id).Invalid(transform.All), "restored caches start invalid")
	}
	assert.Equal(t, src.Transform(b).WorldMatrix(), dst.Transform(ids[2]).WorldMatrix())
}

func TestRestore_AppendsToExistingScene(t *testing.T) {
	s := NewScene()
	existing := s.Add("existing", transform.Identity())

	ids, err := s.Restore([]Record{
		{Name: "child", SRT: transform.Identity(), Parent: 1},
		{Name: "parent", SRT: transform.Identity(), Parent: NoParent},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(existing))
	assert.Equal(t, []NodeID{ids[0]}, s.Children(ids[1]))
}

func TestRestore_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    error
	}{
		{
			name:    "parent out of range",
			records: []Record{{SRT: transform.Identity(), Parent: 3}},
			want:    ErrInvalidRecord,
		},
		{
			name:    "negative parent",
			records: []Record{{SRT: transform.Identity(), Parent: -7}},
			want:    ErrInvalidRecord,
		},
		{
			name:    "self parent",
			records: []Record{{SRT: transform.Identity(), Parent: 0}},
			want:    ErrCycle,
		},
		{
			name: "loop",
			records: []Record{
				{SRT: transform.Identity(), Parent: NoParent},
				{SRT: transform.Identity(), Parent: 3},
				{SRT: transform.Identity(), Parent: 1},
				{SRT: transform.Identity(), Parent: 2},
			},
			want: ErrCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			ids, err := s.Restore(tt.records)

			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, ids)
			assert.Equal(t, 0, s.Len(), "nothing added on error")
		})
	}
}
