package hemesh

import (
	"errors"
	"fmt"
)

// Validate checks the topological invariants of a built mesh and returns
// every violation found, joined into one error. A nil result means:
//
//   - every face has a closed cycle of exactly three half-edges, each owned
//     by that face;
//   - twins are mutual and run in opposite directions;
//   - every face with a twin-less edge is registered as a boundary face.
//
// Validate never modifies the mesh.
func (m *Mesh) Validate() error {
	var errs []error
	for i := range m.faces {
		errs = append(errs, m.validateFace(FaceID(i))...)
	}
	return errors.Join(errs...)
}

func (m *Mesh) validateFace(face FaceID) []error {
	cycle, err := m.faceCycle(face)
	if err != nil {
		return []error{err}
	}

	var errs []error
	if m.halfEdges[cycle[2]].Next != cycle[0] {
		errs = append(errs, fmt.Errorf("face %d: cycle does not close after three edges: %w", face, ErrIncompleteFace))
	}

	open := false
	for _, e := range cycle {
		he := m.halfEdges[e]
		if he.Face != face {
			errs = append(errs, fmt.Errorf("face %d: edge %d belongs to face %d", face, e, he.Face))
		}
		if he.Twin == NoEdge {
			open = true
			continue
		}

		twin := m.halfEdges[he.Twin]
		if twin.Twin != e {
			errs = append(errs, fmt.Errorf("face %d: edge %d twin %d is not mutual", face, e, he.Twin))
		}
		if dest, ok := m.Destination(e); ok && twin.Origin != dest {
			errs = append(errs, fmt.Errorf("face %d: edge %d twin %d does not run the opposite way", face, e, he.Twin))
		}
	}

	if open && !m.IsBoundary(face) {
		errs = append(errs, fmt.Errorf("face %d: has an edge without twin but is not a boundary face", face))
	}
	return errs
}
