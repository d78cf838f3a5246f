package hemesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// FlatMesh is an indexed triangle soup: vertex i sits at Positions[i], and
// each triangle lists three vertex indices in a consistent winding order.
type FlatMesh struct {
	Positions []mgl64.Vec3
	Triangles [][3]int
}

func NewFlatMesh() *FlatMesh {
	return &FlatMesh{
		Positions: make([]mgl64.Vec3, 0, 64),
		Triangles: make([][3]int, 0, 64),
	}
}

// AddPosition appends a vertex and returns its index.
func (fm *FlatMesh) AddPosition(p mgl64.Vec3) int {
	fm.Positions = append(fm.Positions, p)
	return len(fm.Positions) - 1
}

func (fm *FlatMesh) AddTriangle(a, b, c int) {
	fm.Triangles = append(fm.Triangles, [3]int{a, b, c})
}

// AddPolygon fan-triangulates a convex polygon given by vertex indices.
// Polygons with fewer than three corners are ignored.
func (fm *FlatMesh) AddPolygon(indices ...int) {
	for i := 2; i < len(indices); i++ {
		fm.AddTriangle(indices[0], indices[i-1], indices[i])
	}
}

// Validate reports the first triangle with an out-of-range or repeated
// vertex index.
func (fm *FlatMesh) Validate() error {
	for i, tri := range fm.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(fm.Positions) {
				return fmt.Errorf("triangle %d: index %d of %d positions: %w", i, idx, len(fm.Positions), ErrVertexIndex)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			return fmt.Errorf("triangle %d: %v: %w", i, tri, ErrDegenerateFace)
		}
	}
	return nil
}

// Triangle returns the corner positions of triangle i.
func (fm *FlatMesh) Triangle(i int) Triangle {
	tri := fm.Triangles[i]
	return Triangle{fm.Positions[tri[0]], fm.Positions[tri[1]], fm.Positions[tri[2]]}
}

// TriangleList resolves every triangle to positions, in input order.
func (fm *FlatMesh) TriangleList() []Triangle {
	out := make([]Triangle, len(fm.Triangles))
	for i := range fm.Triangles {
		out[i] = fm.Triangle(i)
	}
	return out
}

func (fm *FlatMesh) Bounds() Box {
	return BoxFromPoints(fm.Positions...)
}

// BuildMesh turns a flat mesh into a half-edge mesh. Face i of the result is
// triangle i of the input, and every face starts its cycle at the edge from
// its first to its second vertex. Faces with an edge lacking a twin are
// registered as boundary faces.
//
// Two triangles that traverse the same directed edge (flipped winding or a
// non-manifold edge) are rejected with ErrDuplicateEdge.
func BuildMesh(flat *FlatMesh) (*Mesh, error) {
	if err := flat.Validate(); err != nil {
		return nil, err
	}

	m := NewMesh()
	for i, tri := range flat.Triangles {
		if err := m.addTriangle(flat, tri); err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
	}

	for i, he := range m.halfEdges {
		if he.Twin != NoEdge {
			continue
		}
		if _, err := m.AddBoundary(EdgeID(i)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Mesh) addTriangle(flat *FlatMesh, tri [3]int) error {
	for i := 0; i < 3; i++ {
		a, b := tri[i], tri[(i+1)%3]
		if _, found := m.edgeIndex[edgeKey(a, b)]; found {
			return fmt.Errorf("edge %d->%d: %w", a, b, ErrDuplicateEdge)
		}
	}

	face := m.AddFace()
	v0 := m.AddVertex(tri[0], flat.Positions[tri[0]])
	v1 := m.AddVertex(tri[1], flat.Positions[tri[1]])
	v2 := m.AddVertex(tri[2], flat.Positions[tri[2]])

	// e0 goes first so it becomes the face's entry edge; its successor is
	// linked once e1 exists.
	e0, err := m.AddHalfEdge(v0, v1, face, NoEdge)
	if err != nil {
		return err
	}
	e2, err := m.AddHalfEdge(v2, v0, face, e0)
	if err != nil {
		return err
	}
	e1, err := m.AddHalfEdge(v1, v2, face, e2)
	if err != nil {
		return err
	}
	return m.SetNext(e0, e1)
}
