package hemesh

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newBoxPicker(t *testing.T, opts ...TraceOption) *Picker {
	t.Helper()
	m, err := BuildMesh(BoxMesh(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}))
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	p, err := NewPicker(m, opts...)
	if err != nil {
		t.Fatalf("NewPicker: %v", err)
	}
	return p
}

func TestPick(t *testing.T) {
	p := newBoxPicker(t)
	r := NewRay(mgl64.Vec3{0.2, 0.3, 5}, mgl64.Vec3{0, 0, -1})

	hit, ok := p.Pick(r)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !almostEqual(hit.T, 4) || !vecAlmostEqual(hit.Point, mgl64.Vec3{0.2, 0.3, 1}) {
		t.Errorf("hit = %+v, want t=4 at (0.2, 0.3, 1)", hit)
	}

	brute, ok, err := p.PickBruteForce(r)
	if err != nil || !ok {
		t.Fatalf("PickBruteForce = %+v, %t, %v", brute, ok, err)
	}
	if brute.Face != hit.Face || !almostEqual(brute.T, hit.T) {
		t.Errorf("tree picked %+v, brute force picked %+v", hit, brute)
	}

	neighbours, err := p.Neighbourhood(hit.Face)
	if err != nil {
		t.Fatal(err)
	}
	if len(neighbours) != 3 {
		t.Errorf("Neighbourhood(%d) = %v, want three faces", hit.Face, neighbours)
	}
}

func TestPickMiss(t *testing.T) {
	p := newBoxPicker(t)
	hit, ok := p.Pick(NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1}))
	if ok || hit.Face != NoFace {
		t.Errorf("Pick = %+v, %t, want a miss", hit, ok)
	}
	if v, _, ok := p.PickVertex(NewRay(mgl64.Vec3{3, 3, 3}, mgl64.Vec3{1, 0, 0})); ok || v != NoVertex {
		t.Errorf("PickVertex = %d, %t, want a miss", v, ok)
	}
}

func TestPickZeroDistanceOptions(t *testing.T) {
	// Starts on the +Z side and points through the box.
	r := NewRay(mgl64.Vec3{0.2, 0.3, 1}, mgl64.Vec3{0, 0, -1})

	testCases := []struct {
		name   string
		picker []TraceOption
		call   []TraceOption
		expect float64
	}{
		{"Default", nil, nil, 2},
		{"Picker accepts", []TraceOption{WithZeroDistance(AcceptZeroDistance)}, nil, 0},
		{"Call accepts", nil, []TraceOption{WithZeroDistance(AcceptZeroDistance)}, 0},
		{"Call overrides picker", []TraceOption{WithZeroDistance(AcceptZeroDistance)}, []TraceOption{WithZeroDistance(RejectZeroDistance)}, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newBoxPicker(t, tc.picker...)
			hit, ok := p.Pick(r, tc.call...)
			if !ok || !almostEqual(hit.T, tc.expect) {
				t.Errorf("Pick = %+v, %t, want t=%v", hit, ok, tc.expect)
			}
		})
	}
}

func TestNearestVertex(t *testing.T) {
	p := newBoxPicker(t)

	testCases := []struct {
		point  mgl64.Vec3
		expect mgl64.Vec3
	}{
		{mgl64.Vec3{0.9, 0.9, 1.2}, mgl64.Vec3{1, 1, 1}},
		{mgl64.Vec3{-5, -4, -3}, mgl64.Vec3{-1, -1, -1}},
		{mgl64.Vec3{0.8, -0.7, -0.6}, mgl64.Vec3{1, -1, -1}},
	}

	for _, tc := range testCases {
		id, ok := p.NearestVertex(tc.point)
		if !ok {
			t.Fatalf("NearestVertex(%v) found nothing", tc.point)
		}
		v, _ := p.Mesh().Vertex(id)
		if v.Position != tc.expect {
			t.Errorf("NearestVertex(%v) = %v, want %v", tc.point, v.Position, tc.expect)
		}
	}
}

func TestPickVertex(t *testing.T) {
	p := newBoxPicker(t)
	id, hit, ok := p.PickVertex(NewRay(mgl64.Vec3{0.9, 0.8, 5}, mgl64.Vec3{0, 0, -1}))
	if !ok {
		t.Fatal("expected a vertex")
	}
	v, _ := p.Mesh().Vertex(id)
	if v.Position != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("picked vertex at %v, want (1, 1, 1)", v.Position)
	}
	if !almostEqual(hit.T, 4) {
		t.Errorf("hit distance = %v, want 4", hit.T)
	}
}

func TestPickConcurrent(t *testing.T) {
	p := newBoxPicker(t)

	var wg sync.WaitGroup
	errs := make(chan Hit, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := float64(i%8)/8 - 0.45
			hit, ok := p.Pick(NewRay(mgl64.Vec3{x, 0.1, 5}, mgl64.Vec3{0, 0, -1}))
			if !ok || !almostEqual(hit.T, 4) {
				errs <- hit
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for hit := range errs {
		t.Errorf("concurrent pick returned %+v", hit)
	}
}

func TestPickerTreeIndexesFaces(t *testing.T) {
	p := newBoxPicker(t)
	if p.Tree().Len() != p.Mesh().NumFaces() {
		t.Fatalf("tree has %d leaves, mesh has %d faces", p.Tree().Len(), p.Mesh().NumFaces())
	}
	for _, f := range p.Mesh().Faces() {
		tri, err := p.Mesh().FaceTriangle(f)
		if err != nil {
			t.Fatal(err)
		}
		hit, ok := p.Pick(NewRayThrough(tri.Centroid().Mul(3), tri.Centroid()))
		if !ok || hit.Face != f {
			t.Errorf("ray at the centroid of face %d picked %+v", f, hit)
		}
	}
}
