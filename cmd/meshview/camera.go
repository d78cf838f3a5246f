package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/hemesh"
)

// orbitCamera circles a target point. Yaw turns around the world Y axis,
// pitch tilts towards the poles.
type orbitCamera struct {
	target   mgl64.Vec3
	distance float64
	yaw      float64
	pitch    float64
	fovY     float64
	near     float64
	far      float64
}

const maxPitch = math.Pi/2 - 0.01

func newOrbitCamera(target mgl64.Vec3, distance float64) *orbitCamera {
	return &orbitCamera{
		target:   target,
		distance: distance,
		pitch:    0.3,
		fovY:     mgl64.DegToRad(45),
		near:     distance / 100,
		far:      distance * 100,
	}
}

func (c *orbitCamera) AddAngle(yaw, pitch float64) {
	c.yaw += yaw
	c.pitch = mgl64.Clamp(c.pitch+pitch, -maxPitch, maxPitch)
}

func (c *orbitCamera) Zoom(factor float64) {
	c.distance = mgl64.Clamp(c.distance*factor, c.near*2, c.far/2)
}

func (c *orbitCamera) Eye() mgl64.Vec3 {
	rot := mgl64.HomogRotate3DY(c.yaw).Mul4(mgl64.HomogRotate3DX(-c.pitch))
	offset := rot.Mul4x1(mgl64.Vec4{0, 0, c.distance, 0}).Vec3()
	return c.target.Add(offset)
}

func (c *orbitCamera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.target, mgl64.Vec3{0, 1, 0})
}

func (c *orbitCamera) Projection(width, height int) mgl64.Mat4 {
	return mgl64.Perspective(c.fovY, float64(width)/float64(height), c.near, c.far)
}

// Project maps a world position to screen pixels with y pointing down. ok is
// false for points behind the camera.
func (c *orbitCamera) Project(p mgl64.Vec3, viewProj mgl64.Mat4, width, height int) (float32, float32, bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= c.near {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x := (ndc.X() + 1) / 2 * float64(width)
	y := (1 - ndc.Y()) / 2 * float64(height)
	return float32(x), float32(y), true
}

// RayAt returns the world-space pick ray through screen pixel (x, y).
func (c *orbitCamera) RayAt(x, y, width, height int) (hemesh.Ray, error) {
	view := c.View()
	proj := c.Projection(width, height)
	winY := float64(height - y)

	near, err := mgl64.UnProject(mgl64.Vec3{float64(x), winY, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return hemesh.Ray{}, err
	}
	far, err := mgl64.UnProject(mgl64.Vec3{float64(x), winY, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return hemesh.Ray{}, err
	}
	return hemesh.NewRayThrough(near, far), nil
}
