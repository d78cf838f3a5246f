package hemesh

import "errors"

var (
	// ErrIncompleteFace is returned by adjacency queries on a face whose
	// three half-edges are not linked into a cycle yet.
	ErrIncompleteFace = errors.New("hemesh: face cycle is incomplete")

	ErrUnknownVertex = errors.New("hemesh: unknown vertex")
	ErrUnknownEdge   = errors.New("hemesh: unknown half-edge")
	ErrUnknownFace   = errors.New("hemesh: unknown face")

	// Builder input errors.
	ErrVertexIndex    = errors.New("hemesh: vertex index out of range")
	ErrDegenerateFace = errors.New("hemesh: face repeats a vertex")
	ErrDuplicateEdge  = errors.New("hemesh: directed edge already belongs to another face")

	ErrUnsupportedFormat = errors.New("hemesh: unsupported mesh format")
)
