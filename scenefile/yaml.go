package scenefile

import (
	"io"
	"os"

	"github.com/akmonengine/scenegraph"
	"github.com/akmonengine/scenegraph/transform"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a scene. Nodes reference their parent by id;
// an empty parent marks a root.
type Document struct {
	Nodes []NodeRecord `yaml:"nodes"`
}

// NodeRecord is one node of a Document. A missing rotation or scale takes
// the identity value; an explicit zero is kept as written.
type NodeRecord struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name,omitempty"`
	Parent      string      `yaml:"parent,omitempty"`
	Translation [3]float64  `yaml:"translation,flow"`
	Rotation    *[4]float64 `yaml:"rotation,omitempty,flow"` // x, y, z, w
	Scale       *[3]float64 `yaml:"scale,omitempty,flow"`
}

// FromScene converts every node of scene, parents first. Node ids are
// freshly generated.
func FromScene(scene *scenegraph.Scene) Document {
	records := scene.Snapshot()
	ids := make([]string, len(records))
	doc := Document{Nodes: make([]NodeRecord, len(records))}

	for i, r := range records {
		ids[i] = uuid.New().String()
		q := r.SRT.Rotation
		scale := [3]float64(r.SRT.Scale)
		nr := NodeRecord{
			ID:          ids[i],
			Name:        r.Name,
			Translation: r.SRT.Translation,
			Rotation:    &[4]float64{q.V[0], q.V[1], q.V[2], q.W},
			Scale:       &scale,
		}
		if r.Parent != scenegraph.NoParent {
			nr.Parent = ids[r.Parent]
		}
		doc.Nodes[i] = nr
	}
	return doc
}

// Apply adds the nodes of doc to scene and returns their ids in document
// order. Nothing is added when doc is invalid.
func (doc Document) Apply(scene *scenegraph.Scene) ([]scenegraph.NodeID, error) {
	index := make(map[uuid.UUID]int, len(doc.Nodes))
	for i, n := range doc.Nodes {
		id, err := uuid.Parse(n.ID)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidDocument, "node %d: id %q: %v", i, n.ID, err)
		}
		if _, dup := index[id]; dup {
			return nil, errors.Wrapf(ErrInvalidDocument, "node %d: duplicate id %s", i, id)
		}
		index[id] = i
	}

	records := make([]scenegraph.Record, len(doc.Nodes))
	for i, n := range doc.Nodes {
		records[i] = scenegraph.Record{Name: n.Name, SRT: n.srt(), Parent: scenegraph.NoParent}
		if n.Parent == "" {
			continue
		}
		pid, err := uuid.Parse(n.Parent)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidDocument, "node %d: parent %q: %v", i, n.Parent, err)
		}
		p, ok := index[pid]
		if !ok {
			return nil, errors.Wrapf(ErrInvalidDocument, "node %d: unknown parent %s", i, pid)
		}
		records[i].Parent = p
	}

	ids, err := scene.Restore(records)
	if err != nil {
		return nil, errors.Wrap(err, "apply document")
	}
	return ids, nil
}

// srt fills in the defaults for omitted rotation and scale.
func (n NodeRecord) srt() transform.SRT {
	srt := transform.Identity()
	srt.Translation = n.Translation
	if r := n.Rotation; r != nil {
		srt.Rotation = mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	}
	if n.Scale != nil {
		srt.Scale = *n.Scale
	}
	return srt
}

// Encode writes scene as a YAML document.
func Encode(w io.Writer, scene *scenegraph.Scene) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromScene(scene)); err != nil {
		return errors.Wrap(err, "encode scene")
	}
	return errors.Wrap(enc.Close(), "encode scene")
}

// Decode reads a single YAML document and adds its nodes to scene. An empty
// input is an empty document; a stream holding more than one document is
// rejected.
func Decode(r io.Reader, scene *scenegraph.Scene) ([]scenegraph.NodeID, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err != io.EOF {
			return nil, errors.Wrap(err, "decode scene")
		}
		return doc.Apply(scene)
	}

	var trailing yaml.Node
	if err := dec.Decode(&trailing); err != io.EOF {
		if err != nil {
			return nil, errors.Wrap(err, "decode scene")
		}
		return nil, errors.Wrap(ErrInvalidDocument, "trailing yaml document")
	}
	return doc.Apply(scene)
}

// Save writes scene to path as YAML.
func Save(path string, scene *scenegraph.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := Encode(f, scene); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// Load reads the YAML document at path and adds its nodes to scene.
func Load(path string, scene *scenegraph.Scene) ([]scenegraph.NodeID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	ids, err := Decode(f, scene)
	return ids, errors.Wrapf(err, "load %s", path)
}
