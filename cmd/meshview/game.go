package main

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/hemesh"
)

const (
	screenWidth  = 640
	screenHeight = 480
	dragSpeed    = 0.01
	clickSlop    = 3
)

var (
	surfaceColor  = color.RGBA{R: 90, G: 120, B: 230, A: 255}
	boundaryColor = color.RGBA{R: 230, G: 160, B: 60, A: 255}
	pickedColor   = color.RGBA{R: 240, G: 40, B: 40, A: 255}
	neighbourLine = color.RGBA{R: 255, G: 230, B: 0, A: 255}
	wireColor     = color.RGBA{R: 100, G: 100, B: 100, A: 40}
)

// Game renders a half-edge mesh and picks faces under the mouse.
type Game struct {
	mesh      *hemesh.Mesh
	picker    *hemesh.Picker
	triangles []hemesh.Triangle
	camera    *orbitCamera

	bruteForce bool
	picked     hemesh.FaceID
	neighbours []hemesh.FaceID
	lastHit    hemesh.Hit
	pickedVert hemesh.VertexID

	pressX, pressY int
	lastX, lastY   int
	dragged        bool
}

func NewGame(mesh *hemesh.Mesh, picker *hemesh.Picker) (*Game, error) {
	triangles := make([]hemesh.Triangle, mesh.NumFaces())
	bounds := hemesh.Box{}
	for i := range triangles {
		tri, err := mesh.FaceTriangle(hemesh.FaceID(i))
		if err != nil {
			return nil, err
		}
		triangles[i] = tri
		if i == 0 {
			bounds = tri.Bounds()
		} else {
			bounds = bounds.Union(tri.Bounds())
		}
	}

	radius := bounds.Size().Len() / 2
	if radius == 0 {
		radius = 1
	}

	return &Game{
		mesh:       mesh,
		picker:     picker,
		triangles:  triangles,
		camera:     newOrbitCamera(bounds.Center(), radius*3),
		picked:     hemesh.NoFace,
		pickedVert: hemesh.NoVertex,
	}, nil
}

func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressX, g.pressY = x, y
		g.lastX, g.lastY = x, y
		g.dragged = false
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		dx, dy := x-g.lastX, y-g.lastY
		if abs(x-g.pressX) > clickSlop || abs(y-g.pressY) > clickSlop {
			g.dragged = true
		}
		if g.dragged {
			g.camera.AddAngle(-float64(dx)*dragSpeed, float64(dy)*dragSpeed)
		}
		g.lastX, g.lastY = x, y
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && !g.dragged {
		g.pick(x, y)
	}

	if _, wheel := ebiten.Wheel(); wheel != 0 {
		if wheel > 0 {
			g.camera.Zoom(0.9)
		} else {
			g.camera.Zoom(1.1)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.bruteForce = !g.bruteForce
		log.Printf("brute force picking: %t", g.bruteForce)
	}
	return nil
}

func (g *Game) pick(x, y int) {
	ray, err := g.camera.RayAt(x, y, screenWidth, screenHeight)
	if err != nil {
		log.Printf("pick ray: %v", err)
		return
	}

	var hit hemesh.Hit
	var ok bool
	if g.bruteForce {
		hit, ok, err = g.picker.PickBruteForce(ray)
		if err != nil {
			log.Printf("pick: %v", err)
			return
		}
	} else {
		hit, ok = g.picker.Pick(ray)
	}

	if !ok {
		g.picked, g.neighbours, g.pickedVert = hemesh.NoFace, nil, hemesh.NoVertex
		return
	}

	neighbours, err := g.picker.Neighbourhood(hit.Face)
	if err != nil {
		log.Printf("adjacent faces of %d: %v", hit.Face, err)
	}
	g.picked, g.neighbours, g.lastHit = hit.Face, neighbours, hit
	g.pickedVert, _ = g.picker.NearestVertex(hit.Point)
	log.Printf("picked face %d at t=%.4f, %d neighbours", hit.Face, hit.T, len(neighbours))
}

type drawFace struct {
	face  hemesh.FaceID
	depth float64
}

func (g *Game) Draw(screen *ebiten.Image) {
	eye := g.camera.Eye()
	viewProj := g.camera.Projection(screenWidth, screenHeight).Mul4(g.camera.View())

	// Painter's order: farthest faces first.
	order := make([]drawFace, 0, len(g.triangles))
	for i, tri := range g.triangles {
		order = append(order, drawFace{face: hemesh.FaceID(i), depth: tri.Centroid().Sub(eye).Len()})
	}
	sort.Slice(order, func(i, j int) bool {
		return order[i].depth > order[j].depth
	})

	for _, df := range order {
		tri := g.triangles[df.face]
		st, ok := g.projectTriangle(tri, viewProj)
		if !ok {
			continue
		}

		normal := tri.Normal().Normalize()
		toEye := eye.Sub(tri.Centroid()).Normalize()
		facing := normal.Dot(toEye)
		if facing <= 0 {
			continue
		}

		base := surfaceColor
		if g.mesh.IsBoundary(df.face) {
			base = boundaryColor
		}
		if df.face == g.picked {
			base = pickedColor
		}
		fillTriangle(screen, st, shade(base, facing))
		strokeTriangle(screen, st, 1, wireColor)
	}

	for _, n := range g.neighbours {
		if st, ok := g.projectTriangle(g.triangles[n], viewProj); ok {
			strokeTriangle(screen, st, 2, neighbourLine)
		}
	}

	ebitenutil.DebugPrint(screen, g.status())
}

// projectTriangle fails if any corner is behind the near plane; such faces
// are skipped rather than clipped.
func (g *Game) projectTriangle(tri hemesh.Triangle, viewProj mgl64.Mat4) (screenTri, bool) {
	var st screenTri
	for i, p := range tri {
		x, y, ok := g.camera.Project(p, viewProj, screenWidth, screenHeight)
		if !ok {
			return screenTri{}, false
		}
		st.x[i], st.y[i] = x, y
	}
	return st, true
}

func (g *Game) status() string {
	s := fmt.Sprintf("FPS: %0.2f  faces: %d  boundary: %d  brute force [B]: %t",
		ebiten.ActualFPS(), g.mesh.NumFaces(), len(g.mesh.BoundaryFaces()), g.bruteForce)
	if g.picked == hemesh.NoFace {
		return s + "\nclick a face to pick it, drag to orbit, wheel to zoom"
	}
	s += fmt.Sprintf("\nface %d  t=%.4f  point %.3f %.3f %.3f  neighbours %v",
		g.picked, g.lastHit.T, g.lastHit.Point.X(), g.lastHit.Point.Y(), g.lastHit.Point.Z(), g.neighbours)
	if v, ok := g.mesh.Vertex(g.pickedVert); ok {
		s += fmt.Sprintf("\nnearest vertex %d (input %d)", g.pickedVert, v.OriginalIndex)
	}
	return s
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
