package transform

// Mask is a set of validity bits, one per cached matrix of a Transform.
// A set bit means the cached value is current.
type Mask uint8

const (
	LocalMatrix Mask = 1 << iota
	LocalInverse
	WorldMatrix
	WorldInverse

	// World covers everything derived from the ancestor chain.
	World = WorldMatrix | WorldInverse
	All   = LocalMatrix | LocalInverse | World
)

// Has reports whether every bit of flags is set in m.
func (m Mask) Has(flags Mask) bool {
	return m&flags == flags
}

func (m Mask) String() string {
	if m == 0 {
		return "none"
	}
	names := [...]string{"local", "local-inverse", "world", "world-inverse"}
	out := ""
	for i, name := range names {
		if m&(1<<i) == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += name
	}
	return out
}
