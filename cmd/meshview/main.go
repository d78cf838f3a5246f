// Command meshview shows a triangle mesh and lets the user pick faces with
// the mouse.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/hemesh"
)

func main() {
	meshName := flag.String("mesh", "sphere", "mesh file (.ply or .dxf), or 'box' / 'sphere'")
	acceptZero := flag.Bool("accept-zero", false, "keep hits exactly at the ray origin")
	verbose := flag.Bool("v", false, "log tree traversal for every pick")
	flag.Parse()

	log.Println("Loading mesh...")
	flat, err := hemesh.LoadMesh(*meshName)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Building half-edge mesh with %d triangles...", len(flat.Triangles))
	mesh, err := hemesh.BuildMesh(flat)
	if err != nil {
		log.Fatal(err)
	}

	opts := []hemesh.TraceOption{}
	if *acceptZero {
		opts = append(opts, hemesh.WithZeroDistance(hemesh.AcceptZeroDistance))
	}
	if *verbose {
		opts = append(opts, hemesh.WithObserver(hemesh.NewLogObserver(log.Default(), false)))
	}

	picker, err := hemesh.NewPicker(mesh, opts...)
	if err != nil {
		log.Fatal(err)
	}
	stats := picker.Tree().Stats()
	log.Printf("AABB tree: %d nodes, %d leaves, depth %d", stats.Nodes, stats.Leaves, stats.MaxDepth)

	game, err := NewGame(mesh, picker)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("meshview")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
