// Package transform holds the per-node spatial state of a scene graph:
// local scale/rotation/translation and the lazily computed local and world
// matrices derived from it.
//
// A Transform is not safe for concurrent use. Reads mutate the caches.
package transform

import (
	"iter"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Link resolves the neighbours of a Transform inside the hierarchy that owns
// it. The Transform never owns its parent or children.
type Link interface {
	Parent() *Transform
	Children() iter.Seq[*Transform]
}

// Stats counts how many times each cached slot was recomputed.
type Stats struct {
	LocalMatrix  uint64
	LocalInverse uint64
	WorldMatrix  uint64
	WorldInverse uint64
}

// Transform represents the local SRT of a node and its cached matrices.
type Transform struct {
	translation mgl64.Vec3
	rotation    mgl64.Quat
	scale       mgl64.Vec3

	localMatrix  mgl64.Mat4
	localInverse mgl64.Mat4
	worldMatrix  mgl64.Mat4
	worldInverse mgl64.Mat4

	valid Mask
	link  Link
	stats Stats
}

// New creates an identity transform with every cache invalid.
func New() *Transform {
	return NewFromSRT(Identity())
}

// NewFromSRT creates a transform from a stored SRT with every cache invalid.
func NewFromSRT(srt SRT) *Transform {
	return &Transform{
		translation: srt.Translation,
		rotation:    srt.Rotation,
		scale:       srt.Scale,
	}
}

// SetLink binds the transform to its hierarchy. The ancestor chain may have
// changed, so world caches are dropped for the whole subtree.
func (t *Transform) SetLink(link Link) {
	t.link = link
	t.invalidate(World)
}

// Parent returns the parent transform, or nil for a root.
func (t *Transform) Parent() *Transform {
	if t.link == nil {
		return nil
	}
	return t.link.Parent()
}

// Translation returns the local translation.
func (t *Transform) Translation() mgl64.Vec3 { return t.translation }

// Rotation returns the local rotation.
func (t *Transform) Rotation() mgl64.Quat { return t.rotation }

// Scale returns the local scale.
func (t *Transform) Scale() mgl64.Vec3 { return t.scale }

// SRT returns the local state in its durable form.
func (t *Transform) SRT() SRT {
	return SRT{Translation: t.translation, Rotation: t.rotation, Scale: t.scale}
}

// SetTranslation replaces the local translation.
func (t *Transform) SetTranslation(translation mgl64.Vec3) {
	t.translation = translation
	t.invalidate(All)
}

// AddTranslation moves the node by delta in its parent's space.
func (t *Transform) AddTranslation(delta mgl64.Vec3) {
	t.translation = t.translation.Add(delta)
	t.invalidate(All)
}

// SetRotation replaces the local rotation. q is stored as given.
func (t *Transform) SetRotation(q mgl64.Quat) {
	t.rotation = q
	t.invalidate(All)
}

// SetAxisAngle sets the rotation to angle radians around axis.
func (t *Transform) SetAxisAngle(axis mgl64.Vec3, angle float64) {
	t.SetRotation(mgl64.QuatRotate(angle, axis.Normalize()))
}

// SetScale replaces the local scale. Zero components are accepted.
func (t *Transform) SetScale(scale mgl64.Vec3) {
	t.scale = scale
	t.invalidate(All)
}

// SetUniformScale sets the same scale on all three axes.
func (t *Transform) SetUniformScale(scale float64) {
	t.SetScale(mgl64.Vec3{scale, scale, scale})
}

// SetSRT replaces the whole local state at once.
func (t *Transform) SetSRT(srt SRT) {
	t.translation = srt.Translation
	t.rotation = srt.Rotation
	t.scale = srt.Scale
	t.invalidate(All)
}

// InvalidateWorld drops the world caches of t and of every descendant.
// Local caches are left untouched.
func (t *Transform) InvalidateWorld() {
	t.invalidate(World)
}

// Valid reports whether all the given caches are current.
func (t *Transform) Valid(flags Mask) bool { return t.valid.Has(flags) }

// Invalid reports whether any of the given caches is stale.
func (t *Transform) Invalid(flags Mask) bool { return !t.valid.Has(flags) }

// Stats returns the recompute counters.
func (t *Transform) Stats() Stats { return t.stats }

// ResetStats zeroes the recompute counters.
func (t *Transform) ResetStats() { t.stats = Stats{} }

// LocalMatrix returns translate(translation) * rotate(rotation) * scale(scale).
func (t *Transform) LocalMatrix() mgl64.Mat4 {
	if !t.valid.Has(LocalMatrix) {
		t.localMatrix = t.SRT().Matrix()
		t.valid |= LocalMatrix
		t.stats.LocalMatrix++
	}
	return t.localMatrix
}

// LocalInverse returns the inverse of LocalMatrix. A zero scale on any axis
// makes the matrix singular and the result undefined.
func (t *Transform) LocalInverse() mgl64.Mat4 {
	if !t.valid.Has(LocalInverse) {
		t.localInverse = t.LocalMatrix().Inv()
		t.valid |= LocalInverse
		t.stats.LocalInverse++
	}
	return t.localInverse
}

// WorldMatrix returns parent.WorldMatrix() * LocalMatrix(), or LocalMatrix()
// for a root. Only the stale part of the ancestor chain is recomputed.
func (t *Transform) WorldMatrix() mgl64.Mat4 {
	if t.valid.Has(WorldMatrix) {
		return t.worldMatrix
	}

	// nearest first; the parent of the last entry is a root or current
	chain := []*Transform{t}
	for p := t.Parent(); p != nil && !p.valid.Has(WorldMatrix); p = p.Parent() {
		chain = append(chain, p)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		if p := n.Parent(); p != nil {
			n.worldMatrix = p.worldMatrix.Mul4(n.LocalMatrix())
		} else {
			n.worldMatrix = n.LocalMatrix()
		}
		n.valid |= WorldMatrix
		n.stats.WorldMatrix++
	}
	return t.worldMatrix
}

// WorldInverse returns the inverse of WorldMatrix.
func (t *Transform) WorldInverse() mgl64.Mat4 {
	if !t.valid.Has(WorldInverse) {
		t.worldInverse = t.WorldMatrix().Inv()
		t.valid |= WorldInverse
		t.stats.WorldInverse++
	}
	return t.worldInverse
}

// WorldTranslation returns the node origin in world space. Not cached.
func (t *Transform) WorldTranslation() mgl64.Vec3 {
	p := t.Parent()
	if p == nil {
		return t.translation
	}
	return p.WorldMatrix().Mul4x1(t.translation.Vec4(1)).Vec3()
}

// WorldRotation returns the product of rotations from the root down to t.
// Not cached.
func (t *Transform) WorldRotation() mgl64.Quat {
	q := t.rotation
	for p := t.Parent(); p != nil; p = p.Parent() {
		q = p.rotation.Mul(q)
	}
	return q
}

// WorldScale returns the component-wise product of scales along the
// ancestor chain. It ignores shear introduced by rotated non-uniform
// parents. Not cached.
func (t *Transform) WorldScale() mgl64.Vec3 {
	s := t.scale
	for p := t.Parent(); p != nil; p = p.Parent() {
		s = mgl64.Vec3{s[0] * p.scale[0], s[1] * p.scale[1], s[2] * p.scale[2]}
	}
	return s
}

// invalidate clears flags on t, then the world bits of every descendant,
// pre-order.
func (t *Transform) invalidate(flags Mask) {
	t.valid &^= flags

	stack := pushChildren(nil, t)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n.valid &^= World
		stack = pushChildren(stack, n)
	}
}

// pushChildren appends the children of t in reverse so the first child is
// popped first.
func pushChildren(stack []*Transform, t *Transform) []*Transform {
	if t.link == nil {
		return stack
	}
	mark := len(stack)
	for child := range t.link.Children() {
		stack = append(stack, child)
	}
	slices.Reverse(stack[mark:])
	return stack
}
