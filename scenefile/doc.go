// Package scenefile reads and writes scene hierarchies.
//
// Only the durable node state travels through these formats: name, local
// translation/rotation/scale and the parent edge. Cached matrices are always
// rebuilt lazily after loading.
package scenefile

import "github.com/pkg/errors"

// ErrInvalidDocument is returned for documents that do not describe a tree.
var ErrInvalidDocument = errors.New("scenefile: invalid document")
