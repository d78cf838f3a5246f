package hemesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func NewBox(min, max mgl64.Vec3) Box {
	return Box{Min: min, Max: max}
}

// BoxFromPoints returns the smallest box containing every point.
func BoxFromPoints(points ...mgl64.Vec3) Box {
	if len(points) == 0 {
		return Box{}
	}

	b := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b
}

// Extend returns the box grown to contain p.
func (b Box) Extend(p mgl64.Vec3) Box {
	for axis := 0; axis < 3; axis++ {
		b.Min[axis] = math.Min(b.Min[axis], p[axis])
		b.Max[axis] = math.Max(b.Max[axis], p[axis])
	}
	return b
}

func (b Box) Union(other Box) Box {
	return b.Extend(other.Min).Extend(other.Max)
}

func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// LongestAxis returns 0, 1 or 2 for X, Y or Z.
func (b Box) LongestAxis() int {
	size := b.Size()
	if size.X() >= size.Y() && size.X() >= size.Z() {
		return 0
	}
	if size.Y() >= size.Z() {
		return 1
	}
	return 2
}

// Contains reports whether p lies inside b or on its surface.
func (b Box) Contains(p mgl64.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis] || p[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// ContainsBox reports whether other lies entirely inside b.
func (b Box) ContainsBox(other Box) bool {
	return b.Contains(other.Min) && b.Contains(other.Max)
}
