package hemesh

import "github.com/go-gl/mathgl/mgl64"

// Ray is a half-line starting at Origin. Direction does not need to be
// normalised; distances returned by the intersection functions are
// multiples of Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayThrough returns the ray starting at from and passing through to.
// The distance to `to` along the returned ray is 1.
func NewRayThrough(from, to mgl64.Vec3) Ray {
	return Ray{Origin: from, Direction: to.Sub(from)}
}

// At returns origin + t*direction.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectionPoint is the point reached after travelling t along r.
func IntersectionPoint(r Ray, t float64) mgl64.Vec3 {
	return r.At(t)
}
