package hemesh

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	vertexTolerance  = 1e-9
)

// Picker answers ray picking queries against one built mesh. It owns an AABB
// tree over the mesh faces (leaf i is face i) and an R-tree over the vertex
// positions. A Picker is read-only after construction and safe for
// concurrent use.
type Picker struct {
	mesh     *Mesh
	tree     *AabbTree
	vertices *rtreego.Rtree
	opts     []TraceOption
}

type vertexEntry struct {
	id   VertexID
	rect rtreego.Rect
}

func (v *vertexEntry) Bounds() rtreego.Rect {
	return v.rect
}

// NewPicker indexes m. The options are applied to every tree query made by
// the picker.
func NewPicker(m *Mesh, opts ...TraceOption) (*Picker, error) {
	triangles := make([]Triangle, m.NumFaces())
	for i := range triangles {
		tri, err := m.FaceTriangle(FaceID(i))
		if err != nil {
			return nil, fmt.Errorf("index face %d: %w", i, err)
		}
		triangles[i] = tri
	}

	entries := make([]rtreego.Spatial, m.NumVertices())
	for i, v := range m.vertices {
		p := v.Position
		entries[i] = &vertexEntry{
			id:   VertexID(i),
			rect: rtreego.Point{p[0], p[1], p[2]}.ToRect(vertexTolerance),
		}
	}

	return &Picker{
		mesh:     m,
		tree:     NewAabbTree(triangles),
		vertices: rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren, entries...),
		opts:     opts,
	}, nil
}

func (p *Picker) Mesh() *Mesh     { return p.mesh }
func (p *Picker) Tree() *AabbTree { return p.tree }

// Pick returns the nearest face struck by r using the AABB tree.
func (p *Picker) Pick(r Ray, opts ...TraceOption) (Hit, bool) {
	th, ok := RayTreeHit(r, p.tree, p.options(opts)...)
	if !ok {
		return Hit{Face: NoFace}, false
	}
	return Hit{Face: FaceID(th.Index), T: th.T, Point: th.Point}, true
}

// PickBruteForce is Pick without the tree. It exists as a reference for the
// accelerated path.
func (p *Picker) PickBruteForce(r Ray) (Hit, bool, error) {
	return IntersectedFace(r, p.mesh)
}

// NearestVertex returns the mesh vertex closest to point. ok is false only
// for a mesh without vertices.
func (p *Picker) NearestVertex(point mgl64.Vec3) (VertexID, bool) {
	found := p.vertices.NearestNeighbor(rtreego.Point{point[0], point[1], point[2]})
	if found == nil {
		return NoVertex, false
	}
	return found.(*vertexEntry).id, true
}

// PickVertex picks a face with r and returns the corner of the mesh nearest
// to the hit point.
func (p *Picker) PickVertex(r Ray, opts ...TraceOption) (VertexID, Hit, bool) {
	hit, ok := p.Pick(r, opts...)
	if !ok {
		return NoVertex, hit, false
	}
	v, ok := p.NearestVertex(hit.Point)
	return v, hit, ok
}

// Neighbourhood returns the faces sharing an edge with face.
func (p *Picker) Neighbourhood(face FaceID) ([]FaceID, error) {
	return p.mesh.GetAdjacentFaces(face)
}

func (p *Picker) options(extra []TraceOption) []TraceOption {
	if len(extra) == 0 {
		return p.opts
	}
	all := make([]TraceOption, 0, len(p.opts)+len(extra))
	all = append(all, p.opts...)
	return append(all, extra...)
}
