package hemesh

import "github.com/go-gl/mathgl/mgl64"

// Hit is the nearest intersection of a ray with a mesh.
type Hit struct {
	Face  FaceID
	T     float64 // distance in multiples of the ray direction
	Point mgl64.Vec3
}

// IsInsideTriangle reports whether p, which must already lie in the plane of
// the triangle, is strictly inside it. Points on an edge are outside.
func IsInsideTriangle(v0, v1, v2, p mgl64.Vec3) bool {
	edge0 := v1.Sub(v0)
	edge1 := v2.Sub(v1)
	edge2 := v0.Sub(v2)
	n := edge0.Cross(edge1)

	return n.Dot(edge0.Cross(p.Sub(v0))) > 0 &&
		n.Dot(edge1.Cross(p.Sub(v1))) > 0 &&
		n.Dot(edge2.Cross(p.Sub(v2))) > 0
}

// RayTriangleIntersect is the Möller-Trumbore ray/triangle test. It returns
// the distance t along the ray and true when the ray meets the triangle at
// t >= 0. Rays parallel to the triangle's plane never hit.
func RayTriangleIntersect(r Ray, v0, v1, v2 mgl64.Vec3) (float64, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	p := r.Direction.Cross(e2)
	a := e1.Dot(p)
	if a == 0 {
		return 0, false
	}

	f := 1.0 / a
	s := r.Origin.Sub(v0)
	u := f * s.Dot(p)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * e2.Dot(q)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// RayFaceIntersect tests r against one face of m.
func RayFaceIntersect(r Ray, m *Mesh, face FaceID) (float64, bool, error) {
	tri, err := m.FaceTriangle(face)
	if err != nil {
		return 0, false, err
	}
	t, ok := RayTriangleIntersect(r, tri[0], tri[1], tri[2])
	return t, ok, nil
}

// RayMeshIntersect tests r against every face of m and returns the smallest
// hit distance. It is linear in the number of faces; use a tree for repeated
// queries.
func RayMeshIntersect(r Ray, m *Mesh) (float64, bool, error) {
	hit, ok, err := IntersectedFace(r, m)
	if err != nil || !ok {
		return 0, false, err
	}
	return hit.T, true, nil
}

// IntersectedFace returns the face of m nearest along r. ok is false when the
// ray misses every face.
func IntersectedFace(r Ray, m *Mesh) (Hit, bool, error) {
	nearest := Hit{Face: NoFace}
	found := false

	for i := range m.faces {
		face := FaceID(i)
		t, ok, err := RayFaceIntersect(r, m, face)
		if err != nil {
			return Hit{Face: NoFace}, false, err
		}
		if ok && (!found || t < nearest.T) {
			nearest.Face = face
			nearest.T = t
			found = true
		}
	}

	if !found {
		return Hit{Face: NoFace}, false, nil
	}
	nearest.Point = r.At(nearest.T)
	return nearest, true, nil
}

// RayBoxIntersect is the slab test. Division by a zero direction component
// yields ±Inf, which makes axis-parallel rays work without special cases.
// The test is on the infinite line's entry/exit interval only; boxes lying
// wholly behind the origin are not rejected here.
func RayBoxIntersect(r Ray, b Box) bool {
	tmin := (b.Min[0] - r.Origin[0]) / r.Direction[0]
	tmax := (b.Max[0] - r.Origin[0]) / r.Direction[0]
	if tmin > tmax {
		tmin, tmax = tmax, tmin
	}

	for axis := 1; axis < 3; axis++ {
		amin := (b.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		amax := (b.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if amin > amax {
			amin, amax = amax, amin
		}

		if tmin > amax || amin > tmax {
			return false
		}
		if amin > tmin {
			tmin = amin
		}
		if amax < tmax {
			tmax = amax
		}
	}
	return true
}
