package scenefile

import (
	"github.com/akmonengine/scenegraph"
	"github.com/akmonengine/scenegraph/transform"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

var identityMatrix = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// ImportGLTF adds one scene node per glTF node and mirrors the children
// edges. The returned ids are indexed like doc.Nodes. Nodes carrying a
// matrix instead of TRS are decomposed.
func ImportGLTF(doc *gltf.Document, scene *scenegraph.Scene) ([]scenegraph.NodeID, error) {
	records := make([]scenegraph.Record, len(doc.Nodes))
	for i := range records {
		records[i].Parent = scenegraph.NoParent
	}

	for i, n := range doc.Nodes {
		records[i].Name = n.Name
		records[i].SRT = nodeSRT(n)
		for _, c := range n.Children {
			if int(c) >= len(doc.Nodes) {
				return nil, errors.Wrapf(ErrInvalidDocument, "gltf node %d: child %d out of range", i, c)
			}
			if records[c].Parent != scenegraph.NoParent {
				return nil, errors.Wrapf(ErrInvalidDocument, "gltf node %d has two parents", c)
			}
			records[c].Parent = i
		}
	}

	ids, err := scene.Restore(records)
	if err != nil {
		return nil, errors.Wrap(err, "import gltf")
	}
	return ids, nil
}

// LoadGLTF opens a .gltf or .glb file and imports its nodes.
func LoadGLTF(path string, scene *scenegraph.Scene) ([]scenegraph.NodeID, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return ImportGLTF(doc, scene)
}

// ExportGLTF builds a document holding only the node hierarchy of scene.
// Roots are listed in the default scene.
func ExportGLTF(scene *scenegraph.Scene) *gltf.Document {
	doc := gltf.NewDocument()
	records := scene.Snapshot()

	for _, r := range records {
		doc.Nodes = append(doc.Nodes, exportNode(r))
	}
	for i, r := range records {
		if r.Parent == scenegraph.NoParent {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(i))
			continue
		}
		parent := doc.Nodes[r.Parent]
		parent.Children = append(parent.Children, uint32(i))
	}
	return doc
}

// SaveGLTF writes the node hierarchy of scene to path.
func SaveGLTF(path string, scene *scenegraph.Scene) error {
	return errors.Wrapf(gltf.Save(ExportGLTF(scene), path), "save %s", path)
}

// exportNode writes TRS fields. An all-zero scale is indistinguishable from
// an unset field in gltf.Node, so such a node is written as its matrix.
func exportNode(r scenegraph.Record) *gltf.Node {
	if r.SRT.Scale == (mgl64.Vec3{}) {
		var m [16]float32
		for i, v := range r.SRT.Matrix() {
			m[i] = float32(v)
		}
		return &gltf.Node{Name: r.Name, Matrix: m}
	}

	q := r.SRT.Rotation
	return &gltf.Node{
		Name:        r.Name,
		Translation: vec3To32(r.SRT.Translation),
		Rotation:    [4]float32{float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W)},
		Scale:       vec3To32(r.SRT.Scale),
	}
}

// nodeSRT reads a node as gltf.Node holds it in memory: a zero Rotation or
// Scale is an unset field and takes the glTF default.
func nodeSRT(n *gltf.Node) transform.SRT {
	if n.Matrix != ([16]float32{}) && n.Matrix != identityMatrix {
		var m mgl64.Mat4
		for i, v := range n.Matrix {
			m[i] = float64(v)
		}
		return transform.Decompose(m)
	}

	srt := transform.Identity()
	srt.Translation = mgl64.Vec3{float64(n.Translation[0]), float64(n.Translation[1]), float64(n.Translation[2])}
	if n.Rotation != ([4]float32{}) {
		r := n.Rotation
		srt.Rotation = mgl64.Quat{W: float64(r[3]), V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])}}
	}
	if n.Scale != ([3]float32{}) {
		srt.Scale = mgl64.Vec3{float64(n.Scale[0]), float64(n.Scale[1]), float64(n.Scale[2])}
	}
	return srt
}

func vec3To32(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
