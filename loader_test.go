package hemesh

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const quadPLY = `ply
format ascii 1.0
comment a unit square
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`

func TestReadPLY(t *testing.T) {
	fm, err := ReadPLY(strings.NewReader(quadPLY))
	if err != nil {
		t.Fatalf("ReadPLY: %v", err)
	}

	if len(fm.Positions) != 4 {
		t.Fatalf("got %d positions, want 4", len(fm.Positions))
	}
	if !vecAlmostEqual(fm.Positions[2], mgl64.Vec3{1, 1, 0}) {
		t.Errorf("position 2 = %v, want (1, 1, 0)", fm.Positions[2])
	}

	expected := [][3]int{{0, 1, 2}, {0, 2, 3}}
	if len(fm.Triangles) != len(expected) {
		t.Fatalf("got %d triangles, want %d", len(fm.Triangles), len(expected))
	}
	for i := range expected {
		if fm.Triangles[i] != expected[i] {
			t.Errorf("triangle %d = %v, want %v", i, fm.Triangles[i], expected[i])
		}
	}
}

func TestReadPLYErrors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "Binary format",
			input:   "ply\nformat binary_little_endian 1.0\nelement vertex 0\nend_header\n",
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "Missing magic",
			input:   "format ascii 1.0\nelement vertex 0\nend_header\n",
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:  "Truncated vertices",
			input: "ply\nformat ascii 1.0\nelement vertex 3\nend_header\n0 0 0\n",
		},
		{
			name:  "Bad coordinate",
			input: "ply\nformat ascii 1.0\nelement vertex 1\nend_header\n0 x 0\n",
		},
		{
			name:  "Short face",
			input: "ply\nformat ascii 1.0\nelement vertex 3\nelement face 1\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1\n",
		},
		{
			name:  "Negative vertex count",
			input: "ply\nformat ascii 1.0\nelement vertex -1\nend_header\n",
		},
		{
			name:  "Negative face count",
			input: "ply\nformat ascii 1.0\nelement vertex 0\nelement face -3\nend_header\n",
		},
		{
			name:  "Negative corner count",
			input: "ply\nformat ascii 1.0\nelement vertex 3\nelement face 1\nend_header\n0 0 0\n1 0 0\n0 1 0\n-1 0 1 2\n",
		},
		{
			name:  "Huge vertex count",
			input: "ply\nformat ascii 1.0\nelement vertex 4000000000000\nend_header\n0 0 0\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadPLY(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// dxfFaces builds a minimal DXF document from 3DFACE corner lists.
func dxfFaces(faces ...[4]mgl64.Vec3) string {
	var sb strings.Builder
	sb.WriteString("0\nSECTION\n2\nENTITIES\n")
	// Entities other than 3DFACE are skipped.
	sb.WriteString("0\nLINE\n8\n0\n10\n5\n20\n5\n30\n5\n")
	for _, f := range faces {
		sb.WriteString("0\n3DFACE\n8\n0\n")
		for corner, p := range f {
			for axis := 0; axis < 3; axis++ {
				fmt.Fprintf(&sb, "%d\n%v\n", 10*(axis+1)+corner, p[axis])
			}
		}
	}
	sb.WriteString("0\nENDSEC\n0\nEOF\n")
	return sb.String()
}

func TestReadDXFWeldsCorners(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{1, 0, 0}
	c := mgl64.Vec3{0, 1, 0}
	d := mgl64.Vec3{2, 0, 0}
	f := mgl64.Vec3{2, 1, 0}

	input := dxfFaces(
		[4]mgl64.Vec3{a, b, c, c}, // triangle
		[4]mgl64.Vec3{b, d, f, c}, // quad
	)
	fm, err := ReadDXF(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDXF: %v", err)
	}

	if len(fm.Positions) != 5 {
		t.Errorf("got %d positions, want 5 after welding", len(fm.Positions))
	}
	if len(fm.Triangles) != 3 {
		t.Fatalf("got %d triangles, want 3", len(fm.Triangles))
	}

	m, err := BuildMesh(fm)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	adj, err := m.GetAdjacentFaces(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(adj) != 1 || adj[0] != 2 {
		t.Errorf("faces next to the triangle = %v, want [2]", adj)
	}
}

func TestReadDXFCollapsedFace(t *testing.T) {
	p := mgl64.Vec3{1, 1, 1}
	q := mgl64.Vec3{2, 1, 1}
	fm, err := ReadDXF(strings.NewReader(dxfFaces([4]mgl64.Vec3{p, p, q, q})))
	if err != nil {
		t.Fatal(err)
	}
	if len(fm.Triangles) != 0 {
		t.Errorf("collapsed face produced triangles %v", fm.Triangles)
	}
}

func TestReadDXFBadGroupCode(t *testing.T) {
	if _, err := ReadDXF(strings.NewReader("zero\n3DFACE\n")); err == nil {
		t.Error("expected an error for a non-numeric group code")
	}
	if _, err := ReadDXF(strings.NewReader("0\n3DFACE\n10\nnope\n")); err == nil {
		t.Error("expected an error for a non-numeric coordinate")
	}
}

func TestDXFRoundTrip(t *testing.T) {
	box := BoxMesh(mgl64.Vec3{-1, -2, -3}, mgl64.Vec3{1, 2, 3})

	var buf bytes.Buffer
	if err := WriteDXF(&buf, box); err != nil {
		t.Fatalf("WriteDXF: %v", err)
	}
	fm, err := ReadDXF(&buf)
	if err != nil {
		t.Fatalf("ReadDXF: %v", err)
	}

	if len(fm.Positions) != 8 || len(fm.Triangles) != 12 {
		t.Fatalf("round trip gave %d positions, %d triangles, want 8, 12", len(fm.Positions), len(fm.Triangles))
	}
	for i := range box.Triangles {
		if fm.Triangle(i) != box.Triangle(i) {
			t.Errorf("triangle %d = %v, want %v", i, fm.Triangle(i), box.Triangle(i))
		}
	}

	m, err := BuildMesh(fm)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	if len(m.BoundaryFaces()) != 0 {
		t.Errorf("welded box has boundary faces %v", m.BoundaryFaces())
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteDXFReportsWriteErrors(t *testing.T) {
	errDiskFull := errors.New("disk full")
	testCases := []struct {
		name string
		mesh *FlatMesh
	}{
		{"Fits in the buffer", BoxMesh(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})},
		{"Overflows the buffer", UVSphere(1, 24, 12)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := WriteDXF(failingWriter{errDiskFull}, tc.mesh); !errors.Is(err, errDiskFull) {
				t.Errorf("WriteDXF err = %v, want %v", err, errDiskFull)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	plyPath := filepath.Join(dir, "quad.PLY")
	if err := os.WriteFile(plyPath, []byte(quadPLY), 0o644); err != nil {
		t.Fatal(err)
	}
	fm, err := LoadFile(plyPath)
	if err != nil {
		t.Fatalf("LoadFile(%s): %v", plyPath, err)
	}
	if len(fm.Triangles) != 2 {
		t.Errorf("PLY gave %d triangles, want 2", len(fm.Triangles))
	}

	dxfPath := filepath.Join(dir, "box.dxf")
	if err := SaveDXFFile(dxfPath, BoxMesh(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})); err != nil {
		t.Fatal(err)
	}
	fm, err = LoadFile(dxfPath)
	if err != nil {
		t.Fatalf("LoadFile(%s): %v", dxfPath, err)
	}
	if len(fm.Triangles) != 12 {
		t.Errorf("DXF gave %d triangles, want 12", len(fm.Triangles))
	}

	if _, err := LoadFile(filepath.Join(dir, "mesh.obj")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadFile(.obj) err = %v, want %v", err, ErrUnsupportedFormat)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.ply")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadMesh(t *testing.T) {
	testCases := []struct {
		name      string
		triangles int
	}{
		{"box", 12},
		{"sphere", 528},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fm, err := LoadMesh(tc.name)
			if err != nil {
				t.Fatalf("LoadMesh(%q): %v", tc.name, err)
			}
			if len(fm.Triangles) != tc.triangles {
				t.Errorf("LoadMesh(%q) gave %d triangles, want %d", tc.name, len(fm.Triangles), tc.triangles)
			}
		})
	}

	path := filepath.Join(t.TempDir(), "quad.ply")
	if err := os.WriteFile(path, []byte(quadPLY), 0o644); err != nil {
		t.Fatal(err)
	}
	fm, err := LoadMesh(path)
	if err != nil || len(fm.Triangles) != 2 {
		t.Errorf("LoadMesh(%s) = %v, %v, want the quad", path, fm, err)
	}
	if _, err := LoadMesh("cone"); err == nil {
		t.Error("expected an error for an unknown name")
	}
}
