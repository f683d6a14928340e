package scenegraph

import (
	"github.com/akmonengine/scenegraph/transform"
	"github.com/pkg/errors"
)

// NoParent marks a root in Record.Parent.
const NoParent = -1

// Record is the durable form of one node: its local state and the index of
// its parent in the same record slice. Caches are never stored.
type Record struct {
	Name   string
	SRT    transform.SRT
	Parent int
}

// Snapshot returns every node, parents before children, roots in slot order
// and children in insertion order.
func (s *Scene) Snapshot() []Record {
	records := make([]Record, 0, s.count)
	index := make(map[NodeID]int, s.count)

	for _, root := range s.Roots() {
		for id, t := range s.Walk(root) {
			parent := NoParent
			if p, ok := s.Parent(id); ok {
				parent = index[p]
			}
			index[id] = len(records)
			records = append(records, Record{Name: s.Name(id), SRT: t.SRT(), Parent: parent})
		}
	}
	return records
}

// Restore adds the records to the scene and returns their ids by record
// index. The records are validated first; on error nothing is added.
func (s *Scene) Restore(records []Record) ([]NodeID, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	ids := make([]NodeID, len(records))
	for i, r := range records {
		ids[i] = s.Add(r.Name, r.SRT)
	}
	for i, r := range records {
		if r.Parent == NoParent {
			continue
		}
		if err := s.Attach(ids[i], ids[r.Parent]); err != nil {
			return nil, errors.Wrapf(err, "restore record %d", i)
		}
	}

	Logger().Debug("scenegraph: restore", "nodes", len(records))
	return ids, nil
}

func validateRecords(records []Record) error {
	const (
		unknown = iota
		visiting
		done
	)
	state := make([]uint8, len(records))

	for i, r := range records {
		if r.Parent != NoParent && (r.Parent < 0 || r.Parent >= len(records)) {
			return errors.Wrapf(ErrInvalidRecord, "record %d: parent %d out of range", i, r.Parent)
		}
	}

	for i := range records {
		var path []int
		for cur := i; cur != NoParent && state[cur] != done; cur = records[cur].Parent {
			if state[cur] == visiting {
				return errors.Wrapf(ErrCycle, "record %d: parent chain loops", i)
			}
			state[cur] = visiting
			path = append(path, cur)
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}
