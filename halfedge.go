package hemesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// VertexID, EdgeID and FaceID index the arenas owned by a Mesh. Every
// cross-reference inside the mesh is one of these, so the reference graph can
// be cyclic without anything owning anything else.
type (
	VertexID int32
	EdgeID   int32
	FaceID   int32
)

const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
	NoFace   FaceID   = -1
)

type Vertex struct {
	// OriginalIndex is the index the vertex had in the flat input mesh. It
	// is the vertex identity used for deduplication.
	OriginalIndex int
	Position      mgl64.Vec3
	// Outgoing is the first half-edge created with this vertex as origin.
	Outgoing EdgeID
}

// HalfEdge is one directed side of a triangle. Its destination is the origin
// of Next.
type HalfEdge struct {
	Origin VertexID
	Face   FaceID
	Next   EdgeID
	Twin   EdgeID // NoEdge on the mesh boundary
}

type Face struct {
	Adjacent EdgeID // entry point of the face's half-edge cycle
}

// Mesh is a half-edge mesh built incrementally from an indexed triangle soup.
// Construction is not safe for concurrent use; once built, any number of
// goroutines may query it.
type Mesh struct {
	vertices  []Vertex
	halfEdges []HalfEdge
	faces     []Face

	boundary    []FaceID
	boundarySet map[FaceID]struct{}

	vertexIndex map[int]VertexID
	edgeIndex   map[uint64]EdgeID
}

func NewMesh() *Mesh {
	return &Mesh{
		boundarySet: make(map[FaceID]struct{}),
		vertexIndex: make(map[int]VertexID),
		edgeIndex:   make(map[uint64]EdgeID),
	}
}

// AddFace appends a face with no half-edges yet.
func (m *Mesh) AddFace() FaceID {
	m.faces = append(m.faces, Face{Adjacent: NoEdge})
	return FaceID(len(m.faces) - 1)
}

// AddVertex returns the vertex registered under originalIndex, creating it
// at position on first use. Later calls with the same index return the same
// vertex and ignore position.
func (m *Mesh) AddVertex(originalIndex int, position mgl64.Vec3) VertexID {
	if id, found := m.vertexIndex[originalIndex]; found {
		return id
	}

	m.vertices = append(m.vertices, Vertex{
		OriginalIndex: originalIndex,
		Position:      position,
		Outgoing:      NoEdge,
	})
	id := VertexID(len(m.vertices) - 1)
	m.vertexIndex[originalIndex] = id
	return id
}

// AddHalfEdge adds the half-edge origin->dest belonging to face, with next as
// its successor in the face cycle (NoEdge if it is not known yet, see
// SetNext).
//
// At most one half-edge exists per ordered (origin, dest) pair: if one is
// already indexed it is returned unchanged. Otherwise the new edge is linked
// with the opposite edge dest->origin as its twin, if that exists. The first
// edge added for a face becomes the face's entry point.
func (m *Mesh) AddHalfEdge(origin, dest VertexID, face FaceID, next EdgeID) (EdgeID, error) {
	if !m.validVertex(origin) || !m.validVertex(dest) {
		return NoEdge, fmt.Errorf("add half-edge %d->%d: %w", origin, dest, ErrUnknownVertex)
	}
	if !m.validFace(face) {
		return NoEdge, fmt.Errorf("add half-edge %d->%d: face %d: %w", origin, dest, face, ErrUnknownFace)
	}
	if next != NoEdge && !m.validEdge(next) {
		return NoEdge, fmt.Errorf("add half-edge %d->%d: next %d: %w", origin, dest, next, ErrUnknownEdge)
	}

	a := m.vertices[origin].OriginalIndex
	b := m.vertices[dest].OriginalIndex
	if !validOriginalIndex(a) || !validOriginalIndex(b) {
		return NoEdge, fmt.Errorf("add half-edge %d->%d: original indices %d->%d: %w", origin, dest, a, b, ErrVertexIndex)
	}

	if existing, found := m.edgeIndex[edgeKey(a, b)]; found {
		if m.faces[face].Adjacent == NoEdge && m.halfEdges[existing].Face == face {
			m.faces[face].Adjacent = existing
		}
		return existing, nil
	}

	id := EdgeID(len(m.halfEdges))
	he := HalfEdge{Origin: origin, Face: face, Next: next, Twin: NoEdge}
	if twin, found := m.edgeIndex[edgeKey(b, a)]; found {
		he.Twin = twin
		m.halfEdges[twin].Twin = id
	}

	m.halfEdges = append(m.halfEdges, he)
	m.edgeIndex[edgeKey(a, b)] = id

	if m.faces[face].Adjacent == NoEdge {
		m.faces[face].Adjacent = id
	}
	if m.vertices[origin].Outgoing == NoEdge {
		m.vertices[origin].Outgoing = id
	}
	return id, nil
}

// SetNext links edge to next. Builders use it to close a face cycle whose
// first edge was added before its successor existed.
func (m *Mesh) SetNext(edge, next EdgeID) error {
	if !m.validEdge(edge) {
		return fmt.Errorf("set next of %d: %w", edge, ErrUnknownEdge)
	}
	if !m.validEdge(next) {
		return fmt.Errorf("set next of %d to %d: %w", edge, next, ErrUnknownEdge)
	}
	m.halfEdges[edge].Next = next
	return nil
}

// GetAdjacentFaces returns the faces across each edge of face that has a
// twin, in edge order starting at the face's entry edge.
func (m *Mesh) GetAdjacentFaces(face FaceID) ([]FaceID, error) {
	cycle, err := m.faceCycle(face)
	if err != nil {
		return nil, err
	}

	adjacent := make([]FaceID, 0, 3)
	for _, e := range cycle {
		twin := m.halfEdges[e].Twin
		if twin == NoEdge {
			continue
		}
		if f := m.halfEdges[twin].Face; f != NoFace {
			adjacent = append(adjacent, f)
		}
	}
	return adjacent, nil
}

// AddBoundary records the face owning edge as a boundary face. Adding the
// same face twice has no effect.
func (m *Mesh) AddBoundary(edge EdgeID) (FaceID, error) {
	if !m.validEdge(edge) {
		return NoFace, fmt.Errorf("add boundary %d: %w", edge, ErrUnknownEdge)
	}

	f := m.halfEdges[edge].Face
	if _, found := m.boundarySet[f]; !found {
		m.boundarySet[f] = struct{}{}
		m.boundary = append(m.boundary, f)
	}
	return f, nil
}

// GetVerticesForFace returns the origins of the face's three half-edges in
// cycle order.
func (m *Mesh) GetVerticesForFace(face FaceID) ([3]VertexID, error) {
	cycle, err := m.faceCycle(face)
	if err != nil {
		return [3]VertexID{NoVertex, NoVertex, NoVertex}, err
	}
	return [3]VertexID{
		m.halfEdges[cycle[0]].Origin,
		m.halfEdges[cycle[1]].Origin,
		m.halfEdges[cycle[2]].Origin,
	}, nil
}

// FaceTriangle returns the positions of the face's corners in cycle order.
func (m *Mesh) FaceTriangle(face FaceID) (Triangle, error) {
	ids, err := m.GetVerticesForFace(face)
	if err != nil {
		return Triangle{}, err
	}
	return Triangle{
		m.vertices[ids[0]].Position,
		m.vertices[ids[1]].Position,
		m.vertices[ids[2]].Position,
	}, nil
}

// faceCycle returns the entry edge of face and its two successors.
func (m *Mesh) faceCycle(face FaceID) ([3]EdgeID, error) {
	cycle := [3]EdgeID{NoEdge, NoEdge, NoEdge}
	if !m.validFace(face) {
		return cycle, fmt.Errorf("face %d: %w", face, ErrUnknownFace)
	}

	e := m.faces[face].Adjacent
	for i := 0; i < 3; i++ {
		if !m.validEdge(e) {
			return cycle, fmt.Errorf("face %d: %w", face, ErrIncompleteFace)
		}
		cycle[i] = e
		e = m.halfEdges[e].Next
	}
	return cycle, nil
}

func (m *Mesh) Vertex(id VertexID) (Vertex, bool) {
	if !m.validVertex(id) {
		return Vertex{}, false
	}
	return m.vertices[id], true
}

func (m *Mesh) HalfEdge(id EdgeID) (HalfEdge, bool) {
	if !m.validEdge(id) {
		return HalfEdge{}, false
	}
	return m.halfEdges[id], true
}

func (m *Mesh) Face(id FaceID) (Face, bool) {
	if !m.validFace(id) {
		return Face{}, false
	}
	return m.faces[id], true
}

// Destination returns the vertex a half-edge points to, which is the origin
// of its successor.
func (m *Mesh) Destination(edge EdgeID) (VertexID, bool) {
	if !m.validEdge(edge) {
		return NoVertex, false
	}
	next := m.halfEdges[edge].Next
	if !m.validEdge(next) {
		return NoVertex, false
	}
	return m.halfEdges[next].Origin, true
}

// FindVertex looks a vertex up by its original index.
func (m *Mesh) FindVertex(originalIndex int) (VertexID, bool) {
	id, found := m.vertexIndex[originalIndex]
	return id, found
}

// FindHalfEdge looks up the half-edge running from original vertex index a
// to original vertex index b.
func (m *Mesh) FindHalfEdge(a, b int) (EdgeID, bool) {
	if !validOriginalIndex(a) || !validOriginalIndex(b) {
		return NoEdge, false
	}
	id, found := m.edgeIndex[edgeKey(a, b)]
	return id, found
}

func (m *Mesh) NumVertices() int  { return len(m.vertices) }
func (m *Mesh) NumHalfEdges() int { return len(m.halfEdges) }
func (m *Mesh) NumFaces() int     { return len(m.faces) }

// Faces returns every face ID in creation order.
func (m *Mesh) Faces() []FaceID {
	ids := make([]FaceID, len(m.faces))
	for i := range m.faces {
		ids[i] = FaceID(i)
	}
	return ids
}

// BoundaryFaces returns the registered boundary faces in registration order.
func (m *Mesh) BoundaryFaces() []FaceID {
	out := make([]FaceID, len(m.boundary))
	copy(out, m.boundary)
	return out
}

func (m *Mesh) IsBoundary(face FaceID) bool {
	_, found := m.boundarySet[face]
	return found
}

func (m *Mesh) validVertex(id VertexID) bool { return id >= 0 && int(id) < len(m.vertices) }
func (m *Mesh) validEdge(id EdgeID) bool     { return id >= 0 && int(id) < len(m.halfEdges) }
func (m *Mesh) validFace(id FaceID) bool     { return id >= 0 && int(id) < len(m.faces) }

// validOriginalIndex reports whether i can take part in an edge key. Keys of
// indices in [0, MaxInt32] never overflow and never collide.
func validOriginalIndex(i int) bool { return i >= 0 && i <= math.MaxInt32 }
