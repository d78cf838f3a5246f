package hemesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BoxMesh returns the closed box spanning min..max as 12 triangles wound
// counter-clockwise when seen from outside.
func BoxMesh(min, max mgl64.Vec3) *FlatMesh {
	fm := NewFlatMesh()
	// Corner i has x from bit 0, y from bit 1 and z from bit 2.
	for i := 0; i < 8; i++ {
		p := min
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				p[axis] = max[axis]
			}
		}
		fm.AddPosition(p)
	}

	fm.AddPolygon(0, 4, 6, 2) // -X
	fm.AddPolygon(1, 3, 7, 5) // +X
	fm.AddPolygon(0, 1, 5, 4) // -Y
	fm.AddPolygon(2, 6, 7, 3) // +Y
	fm.AddPolygon(0, 2, 3, 1) // -Z
	fm.AddPolygon(4, 5, 7, 6) // +Z
	return fm
}

// UVSphere returns a closed sphere around the origin with the poles on the Y
// axis, wound counter-clockwise when seen from outside. slices is clamped to
// at least 3 and stacks to at least 2.
func UVSphere(radius float64, slices, stacks int) *FlatMesh {
	slices = max(slices, 3)
	stacks = max(stacks, 2)

	fm := NewFlatMesh()
	top := fm.AddPosition(mgl64.Vec3{0, radius, 0})

	rings := make([][]int, stacks-1)
	for i := range rings {
		phi := math.Pi * float64(i+1) / float64(stacks)
		y := radius * math.Cos(phi)
		ringRadius := radius * math.Sin(phi)

		rings[i] = make([]int, slices)
		for j := 0; j < slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			rings[i][j] = fm.AddPosition(mgl64.Vec3{
				ringRadius * math.Cos(theta),
				y,
				ringRadius * math.Sin(theta),
			})
		}
	}
	bottom := fm.AddPosition(mgl64.Vec3{0, -radius, 0})

	first, last := rings[0], rings[len(rings)-1]
	for j := 0; j < slices; j++ {
		k := (j + 1) % slices
		fm.AddTriangle(top, first[k], first[j])
		fm.AddTriangle(bottom, last[j], last[k])
	}

	for i := 0; i+1 < len(rings); i++ {
		upper, lower := rings[i], rings[i+1]
		for j := 0; j < slices; j++ {
			k := (j + 1) % slices
			fm.AddPolygon(upper[j], upper[k], lower[k], lower[j])
		}
	}
	return fm
}
