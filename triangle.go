package hemesh

import "github.com/go-gl/mathgl/mgl64"

// Triangle holds three corner positions in winding order.
type Triangle [3]mgl64.Vec3

func NewTriangle(v0, v1, v2 mgl64.Vec3) Triangle {
	return Triangle{v0, v1, v2}
}

func (t Triangle) Bounds() Box {
	return BoxFromPoints(t[0], t[1], t[2])
}

func (t Triangle) Centroid() mgl64.Vec3 {
	return t[0].Add(t[1]).Add(t[2]).Mul(1.0 / 3.0)
}

// Normal is the unnormalised face normal, (v1-v0) x (v2-v0). Its length is
// twice the triangle's area.
func (t Triangle) Normal() mgl64.Vec3 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
}
