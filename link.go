package scenegraph

import (
	"iter"

	"github.com/akmonengine/scenegraph/transform"
)

// link resolves a transform's neighbours through the scene table. It holds
// a slot index rather than pointers, so the table can grow freely.
type link struct {
	scene *Scene
	index uint32
}

func (l link) Parent() *transform.Transform {
	if p := l.scene.get(l.scene.nodes[l.index].parent); p != nil {
		return p.transform
	}
	return nil
}

func (l link) Children() iter.Seq[*transform.Transform] {
	return func(yield func(*transform.Transform) bool) {
		for _, id := range l.scene.nodes[l.index].children {
			if c := l.scene.get(id); c != nil {
				if !yield(c.transform) {
					return
				}
			}
		}
	}
}
