// Package scenegraph owns a table of transform nodes and the parent/child
// edges between them. Edges are node ids, never owning pointers, so a node
// can be destroyed without consulting its neighbours' lifetimes.
//
// A Scene is not safe for concurrent use; serialize every mutation and
// world-matrix read behind one lock per scene. Update is the only method
// that fans out to goroutines, and it must not overlap with mutations.
package scenegraph

import (
	"fmt"
	"iter"
	"slices"

	"github.com/akmonengine/scenegraph/transform"
	"github.com/pkg/errors"
)

const DEFAULT_WORKERS = 1

// NodeID addresses a node slot. Version changes every time the slot is
// reused, so ids of destroyed nodes never resolve again.
type NodeID struct {
	Index   uint32
	Version uint32
}

// Nil is the zero NodeID; it never resolves and stands for "no parent".
var Nil NodeID

// IsNil reports whether id is the zero handle.
func (id NodeID) IsNil() bool { return id.Version == 0 }

func (id NodeID) String() string {
	if id.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", id.Index, id.Version)
}

// DestroyPolicy decides what happens to the children of a destroyed node.
type DestroyPolicy int

const (
	// OrphanChildren turns every child into a root.
	OrphanChildren DestroyPolicy = iota
	// ReparentChildren hands the children over to the destroyed node's parent.
	ReparentChildren
	// DestroySubtree destroys every descendant as well.
	DestroySubtree
)

func (p DestroyPolicy) String() string {
	switch p {
	case OrphanChildren:
		return "orphan"
	case ReparentChildren:
		return "reparent"
	case DestroySubtree:
		return "subtree"
	}
	return fmt.Sprintf("DestroyPolicy(%d)", int(p))
}

type node struct {
	name      string
	transform *transform.Transform
	parent    NodeID
	children  []NodeID
	version   uint32
	alive     bool
}

type Scene struct {
	nodes []node
	free  []uint32
	count int

	// Workers bounds the goroutines used by Update.
	Workers int
}

// NewScene returns an empty scene with DEFAULT_WORKERS.
func NewScene() *Scene {
	return &Scene{Workers: DEFAULT_WORKERS}
}

// Add creates a root node with the given local state.
func (s *Scene) Add(name string, srt transform.SRT) NodeID {
	var index uint32
	if k := len(s.free); k > 0 {
		index = s.free[k-1]
		s.free = s.free[:k-1]
	} else {
		index = uint32(len(s.nodes))
		s.nodes = append(s.nodes, node{})
	}

	n := &s.nodes[index]
	n.version++
	n.alive = true
	n.name = name
	n.parent = Nil
	n.children = n.children[:0]
	n.transform = transform.NewFromSRT(srt)
	n.transform.SetLink(link{scene: s, index: index})
	s.count++

	return NodeID{Index: index, Version: n.version}
}

// Len returns the number of live nodes.
func (s *Scene) Len() int { return s.count }

// Contains reports whether id resolves to a live node.
func (s *Scene) Contains(id NodeID) bool { return s.get(id) != nil }

// Transform returns the transform of id, or nil if id does not resolve.
func (s *Scene) Transform(id NodeID) *transform.Transform {
	if n := s.get(id); n != nil {
		return n.transform
	}
	return nil
}

// Name returns the name of id, or "" if id does not resolve.
func (s *Scene) Name(id NodeID) string {
	if n := s.get(id); n != nil {
		return n.name
	}
	return ""
}

// Parent returns the parent of id and whether it has one.
func (s *Scene) Parent(id NodeID) (NodeID, bool) {
	n := s.get(id)
	if n == nil || n.parent.IsNil() {
		return Nil, false
	}
	return n.parent, true
}

// Children returns a copy of the direct children of id in insertion order.
func (s *Scene) Children(id NodeID) []NodeID {
	n := s.get(id)
	if n == nil {
		return nil
	}
	return slices.Clone(n.children)
}

// Roots returns every node without a parent, in slot order.
func (s *Scene) Roots() []NodeID {
	var roots []NodeID
	for i := range s.nodes {
		n := &s.nodes[i]
		if n.alive && n.parent.IsNil() {
			roots = append(roots, NodeID{Index: uint32(i), Version: n.version})
		}
	}
	return roots
}

// Walk yields id and its descendants in pre-order.
func (s *Scene) Walk(id NodeID) iter.Seq2[NodeID, *transform.Transform] {
	return func(yield func(NodeID, *transform.Transform) bool) {
		stack := []NodeID{id}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			n := s.get(cur)
			if n == nil {
				continue
			}
			if !yield(cur, n.transform) {
				return
			}
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}
}

// Attach makes child the last child of parent. The child's world caches,
// and those of its subtree, are invalidated. Attaching a node under itself
// or under one of its descendants fails with ErrCycle and leaves the
// hierarchy unchanged.
func (s *Scene) Attach(child, parent NodeID) error {
	c := s.get(child)
	if c == nil {
		return errors.Wrapf(ErrUnknownNode, "attach child %v", child)
	}
	if s.get(parent) == nil {
		return errors.Wrapf(ErrUnknownNode, "attach parent %v", parent)
	}
	if c.parent == parent {
		return nil
	}
	if s.isAncestor(child, parent) {
		Logger().Warn("scenegraph: rejected attach", "child", child, "parent", parent)
		return errors.Wrapf(ErrCycle, "attach %v under %v", child, parent)
	}

	s.unlink(child)
	c.parent = parent
	p := s.get(parent)
	p.children = append(p.children, child)
	c.transform.InvalidateWorld()

	Logger().Debug("scenegraph: attach", "child", child, "parent", parent)
	return nil
}

// Detach turns child into a root. No-op when it already is one.
func (s *Scene) Detach(child NodeID) error {
	c := s.get(child)
	if c == nil {
		return errors.Wrapf(ErrUnknownNode, "detach %v", child)
	}
	if c.parent.IsNil() {
		return nil
	}

	s.unlink(child)
	c.transform.InvalidateWorld()

	Logger().Debug("scenegraph: detach", "child", child)
	return nil
}

// Destroy removes id from its parent and from the scene. Its children are
// handled according to policy. The removed transforms are unlinked, so a
// caller still holding one sees a standalone root.
func (s *Scene) Destroy(id NodeID, policy DestroyPolicy) error {
	n := s.get(id)
	if n == nil {
		return errors.Wrapf(ErrUnknownNode, "destroy %v", id)
	}
	if policy < OrphanChildren || policy > DestroySubtree {
		return errors.Wrapf(ErrInvalidPolicy, "destroy %v: %v", id, policy)
	}

	grandparent := n.parent
	s.unlink(id)
	children := slices.Clone(n.children)
	n.children = n.children[:0]

	switch policy {
	case DestroySubtree:
		for _, c := range children {
			var subtree []NodeID
			for d := range s.Walk(c) {
				subtree = append(subtree, d)
			}
			for _, d := range subtree {
				s.release(d)
			}
		}
	case ReparentChildren:
		gp := s.get(grandparent)
		for _, c := range children {
			cn := s.get(c)
			if gp != nil {
				cn.parent = grandparent
				gp.children = append(gp.children, c)
			} else {
				cn.parent = Nil
			}
			cn.transform.InvalidateWorld()
		}
	case OrphanChildren:
		for _, c := range children {
			cn := s.get(c)
			cn.parent = Nil
			cn.transform.InvalidateWorld()
		}
	}

	s.release(id)
	Logger().Debug("scenegraph: destroy", "node", id, "policy", policy, "children", len(children))
	return nil
}

func (s *Scene) get(id NodeID) *node {
	if id.IsNil() || int(id.Index) >= len(s.nodes) {
		return nil
	}
	n := &s.nodes[id.Index]
	if !n.alive || n.version != id.Version {
		return nil
	}
	return n
}

// isAncestor reports whether candidate is id or one of its ancestors.
func (s *Scene) isAncestor(candidate, id NodeID) bool {
	for cur := id; !cur.IsNil(); {
		if cur == candidate {
			return true
		}
		n := s.get(cur)
		if n == nil {
			return false
		}
		cur = n.parent
	}
	return false
}

// unlink removes id from its parent's child list and clears its parent.
func (s *Scene) unlink(id NodeID) {
	n := s.get(id)
	p := s.get(n.parent)
	n.parent = Nil
	if p == nil {
		return
	}
	if i := slices.Index(p.children, id); i >= 0 {
		copy(p.children[i:], p.children[i+1:])
		p.children[len(p.children)-1] = Nil
		p.children = p.children[:len(p.children)-1]
	}
}

func (s *Scene) release(id NodeID) {
	n := s.get(id)
	n.transform.SetLink(nil)
	n.transform = nil
	n.alive = false
	n.name = ""
	n.parent = Nil
	n.children = n.children[:0]
	s.free = append(s.free, id.Index)
	s.count--
}
