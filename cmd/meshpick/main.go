// Command meshpick loads a triangle mesh, casts one ray at it and prints the
// nearest face it strikes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/hemesh"
)

func main() {
	meshName := flag.String("mesh", "sphere", "mesh file (.ply or .dxf), or 'box' / 'sphere'")
	originFlag := flag.String("origin", "0,0,5", "ray origin as x,y,z")
	dirFlag := flag.String("dir", "0,0,-1", "ray direction as x,y,z")
	brute := flag.Bool("brute", false, "test every face instead of walking the AABB tree")
	acceptZero := flag.Bool("accept-zero", false, "keep hits exactly at the ray origin")
	export := flag.String("export", "", "write the loaded mesh to this DXF file")
	verbose := flag.Bool("v", false, "log tree traversal")
	flag.Parse()

	origin, err := parseVec3(*originFlag)
	if err != nil {
		log.Fatalf("-origin: %v", err)
	}
	dir, err := parseVec3(*dirFlag)
	if err != nil {
		log.Fatalf("-dir: %v", err)
	}

	flat, err := hemesh.LoadMesh(*meshName)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Loaded %d positions, %d triangles", len(flat.Positions), len(flat.Triangles))

	if *export != "" {
		if err := hemesh.SaveDXFFile(*export, flat); err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote %s", *export)
	}

	mesh, err := hemesh.BuildMesh(flat)
	if err != nil {
		log.Fatalf("build half-edge mesh: %v", err)
	}
	log.Printf("Half-edge mesh: %d vertices, %d half-edges, %d faces, %d boundary faces",
		mesh.NumVertices(), mesh.NumHalfEdges(), mesh.NumFaces(), len(mesh.BoundaryFaces()))

	opts := []hemesh.TraceOption{}
	if *acceptZero {
		opts = append(opts, hemesh.WithZeroDistance(hemesh.AcceptZeroDistance))
	}
	if *verbose {
		opts = append(opts, hemesh.WithObserver(hemesh.NewLogObserver(log.Default(), true)))
	}

	picker, err := hemesh.NewPicker(mesh, opts...)
	if err != nil {
		log.Fatal(err)
	}

	ray := hemesh.NewRay(origin, dir)
	var hit hemesh.Hit
	var ok bool
	if *brute {
		hit, ok, err = picker.PickBruteForce(ray)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		hit, ok = picker.Pick(ray)
	}

	if !ok {
		fmt.Println("no intersection")
		os.Exit(1)
	}

	fmt.Printf("face:     %d\n", hit.Face)
	fmt.Printf("distance: %g\n", hit.T)
	fmt.Printf("point:    %.6f %.6f %.6f\n", hit.Point.X(), hit.Point.Y(), hit.Point.Z())

	neighbours, err := picker.Neighbourhood(hit.Face)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("adjacent: %v\n", neighbours)
	fmt.Printf("boundary: %t\n", mesh.IsBoundary(hit.Face))

	if v, found := picker.NearestVertex(hit.Point); found {
		vert, _ := mesh.Vertex(v)
		fmt.Printf("vertex:   %d (input index %d) at %.6f %.6f %.6f\n",
			v, vert.OriginalIndex, vert.Position.X(), vert.Position.Y(), vert.Position.Z())
	}
}

func parseVec3(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v mgl64.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = f
	}
	return v, nil
}
