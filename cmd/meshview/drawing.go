package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// solid is a 1x1 white source taken from the middle of a 3x3 image so that
// sampling never bleeds past its edge.
var solid = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// screenTri is a projected face in pixel coordinates.
type screenTri struct {
	x, y [3]float32
}

var triIndices = []uint16{0, 1, 2}

func fillTriangle(dst *ebiten.Image, tri screenTri, clr color.RGBA) {
	vertices := make([]ebiten.Vertex, 3)
	for i := range vertices {
		vertices[i].DstX = tri.x[i]
		vertices[i].DstY = tri.y[i]
	}
	tint(vertices, clr)
	dst.DrawTriangles(vertices, triIndices, solid, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func strokeTriangle(dst *ebiten.Image, tri screenTri, width float32, clr color.RGBA) {
	var path vector.Path
	path.MoveTo(tri.x[0], tri.y[0])
	path.LineTo(tri.x[1], tri.y[1])
	path.LineTo(tri.x[2], tri.y[2])
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: width})
	tint(vertices, clr)
	dst.DrawTriangles(vertices, indices, solid, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// tint points every vertex at the solid source and colours it.
func tint(vertices []ebiten.Vertex, clr color.RGBA) {
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range vertices {
		vertices[i].SrcX, vertices[i].SrcY = 1, 1
		vertices[i].ColorR = r
		vertices[i].ColorG = g
		vertices[i].ColorB = b
		vertices[i].ColorA = a
	}
}

// shade darkens base the further a face turns from the viewer. facing is the
// cosine between the face normal and the direction to the eye.
func shade(base color.RGBA, facing float64) color.RGBA {
	const ambient = 0.65
	brightness := ambient + (1-ambient)*math.Max(facing, 0)

	darken := 240 - int(brightness*240)
	return color.RGBA{
		R: channel(base.R, darken),
		G: channel(base.G, darken),
		B: channel(base.B, darken),
		A: base.A,
	}
}

func channel(v uint8, darken int) uint8 {
	return uint8(clamp(int(v)-darken, 7, 255))
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
