package hemesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// maxPreallocate bounds the capacity reserved from a PLY header's element
// counts.
const maxPreallocate = 1 << 16

// LoadMesh returns one of the built-in meshes by name ("box", a cube of side
// 2, or "sphere", a unit UV sphere) and otherwise loads name with LoadFile.
func LoadMesh(name string) (*FlatMesh, error) {
	switch name {
	case "box":
		return BoxMesh(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}), nil
	case "sphere":
		return UVSphere(1, 24, 12), nil
	default:
		return LoadFile(name)
	}
}

// LoadFile reads a flat mesh, choosing the parser from the file extension
// (.ply or .dxf).
func LoadFile(fileName string) (*FlatMesh, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ply":
		return LoadPLYFile(fileName)
	case ".dxf":
		return LoadDXFFile(fileName)
	default:
		return nil, fmt.Errorf("load %s: %w", fileName, ErrUnsupportedFormat)
	}
}

func LoadPLYFile(fileName string) (*FlatMesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("open PLY %s: %w", fileName, err)
	}
	defer file.Close()

	fm, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("parse PLY %s: %w", fileName, err)
	}
	return fm, nil
}

// ReadPLY parses an ASCII PLY file. Only the first three properties of each
// vertex (x, y, z) are used; colour or normal columns after them are
// ignored. Polygons are fan-triangulated.
func ReadPLY(reader io.Reader) (*FlatMesh, error) {
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	sawMagic := false

header:
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "ply":
			sawMagic = true
		case "format":
			if len(parts) > 1 && parts[1] != "ascii" {
				return nil, fmt.Errorf("PLY format %q: %w", parts[1], ErrUnsupportedFormat)
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("element %s count: %w", parts[1], err)
			}
			if n < 0 {
				return nil, fmt.Errorf("element %s has negative count %d", parts[1], n)
			}
			switch parts[1] {
			case "vertex":
				vertexCount = n
			case "face":
				faceCount = n
			}
		case "end_header":
			break header
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading PLY header: %w", err)
	}
	if !sawMagic {
		return nil, fmt.Errorf("missing ply magic: %w", ErrUnsupportedFormat)
	}

	// The header counts are untrusted; append grows past the cap if needed.
	fm := &FlatMesh{
		Positions: make([]mgl64.Vec3, 0, min(vertexCount, maxPreallocate)),
		Triangles: make([][3]int, 0, min(faceCount, maxPreallocate)),
	}

	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("PLY ended before vertex %d", i)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return nil, fmt.Errorf("vertex %d: want 3 coordinates, got %q", i, scanner.Text())
		}
		var p mgl64.Vec3
		for axis := 0; axis < 3; axis++ {
			v, err := strconv.ParseFloat(parts[axis], 64)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			p[axis] = v
		}
		fm.AddPosition(p)
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("PLY ended before face %d", i)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("face %d: empty line", i)
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil || n < 0 || len(parts) < n+1 {
			return nil, fmt.Errorf("face %d: bad corner list %q", i, scanner.Text())
		}

		indices := make([]int, n)
		for j := range indices {
			idx, err := strconv.Atoi(parts[j+1])
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			indices[j] = idx
		}
		fm.AddPolygon(indices...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	return fm, nil
}

func LoadDXFFile(fileName string) (*FlatMesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("open DXF %s: %w", fileName, err)
	}
	defer file.Close()

	fm, err := ReadDXF(file)
	if err != nil {
		return nil, fmt.Errorf("parse DXF %s: %w", fileName, err)
	}
	return fm, nil
}

// ReadDXF collects the 3DFACE entities of a DXF file. DXF stores each face
// with its own corner coordinates, so corners at the same position are
// welded into one vertex; without that no two faces would share an edge.
// A quad becomes two triangles; a face whose fourth corner repeats the third
// becomes one.
func ReadDXF(reader io.Reader) (*FlatMesh, error) {
	scanner := bufio.NewScanner(reader)
	welder := newPositionWelder()

	var corners [4]mgl64.Vec3
	inFace := false

	flush := func() {
		if !inFace {
			return
		}
		inFace = false
		idx := [4]int{}
		for i, c := range corners {
			idx[i] = welder.add(c)
		}
		if idx[3] == idx[2] {
			welder.addTriangle(idx[0], idx[1], idx[2])
			return
		}
		welder.addTriangle(idx[0], idx[1], idx[2])
		welder.addTriangle(idx[0], idx[2], idx[3])
	}

	for line := 1; scanner.Scan(); line += 2 {
		code, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad group code %q: %w", line, scanner.Text(), err)
		}
		if !scanner.Scan() {
			return nil, fmt.Errorf("line %d: group code %d has no value", line, code)
		}
		value := strings.TrimSpace(scanner.Text())

		if code == 0 {
			flush()
			if value == "3DFACE" {
				inFace = true
				corners = [4]mgl64.Vec3{}
			}
			continue
		}
		if !inFace {
			continue
		}

		// 10-13 are the x coordinates of corners 1-4, 20-23 y, 30-33 z.
		axis, corner := code/10-1, code%10
		if axis < 0 || axis > 2 || corner > 3 {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: could not parse float value '%s': %w", line+1, value, err)
		}
		corners[corner][axis] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	flush()

	return welder.mesh, nil
}

// WriteDXF writes every triangle of fm as a 3DFACE entity, repeating the
// third corner as the fourth.
func WriteDXF(w io.Writer, fm *FlatMesh) error {
	dw := &dxfWriter{w: bufio.NewWriter(w)}

	dw.section("HEADER")
	dw.pair(0, "SECTION")
	dw.pair(2, "ENTITIES")
	for i := range fm.Triangles {
		tri := fm.Triangle(i)
		dw.pair(0, "3DFACE")
		dw.pair(8, "0")
		for corner := 0; corner < 4; corner++ {
			p := tri[min(corner, 2)]
			for axis := 0; axis < 3; axis++ {
				dw.pair(10*(axis+1)+corner, p[axis])
			}
		}
	}
	dw.pair(0, "ENDSEC")
	dw.pair(0, "EOF")

	if dw.err != nil {
		return fmt.Errorf("write DXF: %w", dw.err)
	}
	return dw.w.Flush()
}

// dxfWriter emits group code/value pairs and stops at the first write error.
type dxfWriter struct {
	w   *bufio.Writer
	err error
}

func (d *dxfWriter) pair(code int, value any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%d\n%v\n", code, value)
}

// section writes an empty section.
func (d *dxfWriter) section(name string) {
	d.pair(0, "SECTION")
	d.pair(2, name)
	d.pair(0, "ENDSEC")
}

func SaveDXFFile(fileName string, fm *FlatMesh) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	if err := WriteDXF(file, fm); err != nil {
		return fmt.Errorf("could not write DXF file %s: %w", fileName, err)
	}
	return nil
}

// positionWelder builds a flat mesh from unindexed corners, giving equal
// positions the same index.
type positionWelder struct {
	mesh  *FlatMesh
	index map[mgl64.Vec3]int
}

func newPositionWelder() *positionWelder {
	return &positionWelder{
		mesh:  NewFlatMesh(),
		index: make(map[mgl64.Vec3]int),
	}
}

func (pw *positionWelder) add(p mgl64.Vec3) int {
	if i, found := pw.index[p]; found {
		return i
	}
	i := pw.mesh.AddPosition(p)
	pw.index[p] = i
	return i
}

// addTriangle drops triangles that collapse after welding.
func (pw *positionWelder) addTriangle(a, b, c int) {
	if a == b || b == c || c == a {
		return
	}
	pw.mesh.AddTriangle(a, b, c)
}
