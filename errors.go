package scenegraph

import "github.com/pkg/errors"

var (
	// ErrUnknownNode is returned for ids that do not resolve to a live node.
	ErrUnknownNode = errors.New("scenegraph: unknown node")
	// ErrCycle is returned when an attach would make a node its own ancestor.
	ErrCycle = errors.New("scenegraph: attach would create a cycle")
	// ErrInvalidPolicy is returned by Destroy for an unknown DestroyPolicy.
	ErrInvalidPolicy = errors.New("scenegraph: invalid destroy policy")
	// ErrInvalidRecord is returned by Restore for malformed snapshots.
	ErrInvalidRecord = errors.New("scenegraph: invalid record")
)
