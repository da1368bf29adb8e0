package picking

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpaint/internal/geometry"
	"github.com/Faultbox/meshpaint/pkg/math"
)

func cube() *geometry.Mesh {
	return geometry.Merge([]geometry.Primitive{geometry.Box(1, 1, 1)}, geometry.MergeOptions{})
}

func TestRaycastNearestFace(t *testing.T) {
	mesh := cube()

	tests := []struct {
		name    string
		origin  math.Vec3
		wantTri int
	}{
		// +z face holds triangles 8 and 9, split along y == x.
		{"upper left", math.Vec3{X: -0.2, Y: 0.1, Z: 4}, 8},
		{"lower right", math.Vec3{X: 0.2, Y: 0.1, Z: 4}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := Raycast(mesh, Ray{tt.origin, math.Vec3{Z: -1}}, math.Identity())
			if !ok {
				t.Fatal("Raycast() missed")
			}
			if hit.TriangleIndex != tt.wantTri {
				t.Errorf("TriangleIndex = %d, want %d", hit.TriangleIndex, tt.wantTri)
			}
			if math32.Abs(hit.Distance-3.5) > 1e-5 {
				t.Errorf("Distance = %v, want 3.5", hit.Distance)
			}
			if math32.Abs(hit.LocalPoint.Z-0.5) > 1e-5 {
				t.Errorf("LocalPoint = %v, want z 0.5", hit.LocalPoint)
			}
		})
	}
}

func TestRaycastMiss(t *testing.T) {
	mesh := cube()

	rays := []Ray{
		{math.Vec3{Z: 4}, math.Vec3{Z: 1}},
		{math.Vec3{X: 5, Y: 5, Z: 4}, math.Vec3{Z: -1}},
	}
	for _, r := range rays {
		if hit, ok := Raycast(mesh, r, math.Identity()); ok {
			t.Errorf("Raycast(%v) = %+v, want miss", r, hit)
		}
	}
}

func TestRaycastModelTransform(t *testing.T) {
	mesh := cube()
	model := math.Translate(2, 0, 0)

	hit, ok := Raycast(mesh, Ray{math.Vec3{X: 2.2, Y: 0.1, Z: 4}, math.Vec3{Z: -1}}, model)
	if !ok {
		t.Fatal("Raycast() missed")
	}
	if !near(hit.LocalPoint, math.Vec3{X: 0.2, Y: 0.1, Z: 0.5}, 1e-5) {
		t.Errorf("LocalPoint = %v, want (0.2,0.1,0.5)", hit.LocalPoint)
	}
	if !near(hit.WorldPoint, math.Vec3{X: 2.2, Y: 0.1, Z: 0.5}, 1e-5) {
		t.Errorf("WorldPoint = %v, want (2.2,0.1,0.5)", hit.WorldPoint)
	}
	if math32.Abs(hit.Distance-3.5) > 1e-5 {
		t.Errorf("Distance = %v, want 3.5", hit.Distance)
	}
}

func TestRaycastRotatedModel(t *testing.T) {
	mesh := cube()
	// A quarter turn brings the local +x face to world +z.
	model := math.RotateY(-math32.Pi / 2)

	hit, ok := Raycast(mesh, Ray{math.Vec3{Z: 4}, math.Vec3{Z: -1}}, model)
	if !ok {
		t.Fatal("Raycast() missed")
	}
	if math32.Abs(hit.LocalPoint.X-0.5) > 1e-5 {
		t.Errorf("LocalPoint = %v, want x 0.5", hit.LocalPoint)
	}
	if hit.TriangleIndex > 1 {
		t.Errorf("TriangleIndex = %d, want a +x face triangle", hit.TriangleIndex)
	}
}

func TestRaycastTieKeepsFirst(t *testing.T) {
	tri := []float32{-1, -1, 0, 1, -1, 0, 0, 1, 0}
	mesh := geometry.Merge([]geometry.Primitive{
		{Name: "a", Positions: append([]float32(nil), tri...)},
		{Name: "b", Positions: append([]float32(nil), tri...)},
	}, geometry.MergeOptions{})

	ray := Ray{math.Vec3{Z: 1}, math.Vec3{Z: -1}}
	hit, ok := Raycast(mesh, ray, math.Identity())
	if !ok || hit.TriangleIndex != 0 {
		t.Errorf("Raycast() = %d, %v; want triangle 0", hit.TriangleIndex, ok)
	}

	hit, ok = BuildBVH(mesh).Raycast(ray, math.Identity())
	if !ok || hit.TriangleIndex != 0 {
		t.Errorf("BVH.Raycast() = %d, %v; want triangle 0", hit.TriangleIndex, ok)
	}
}

func TestBVHMatchesLinear(t *testing.T) {
	mesh := geometry.Merge(geometry.Robot(), geometry.MergeOptions{})
	bvh := BuildBVH(mesh)
	model := math.RotateY(0.7)

	if bvh.NodeCount() < 2 {
		t.Fatalf("NodeCount() = %d, want a split tree", bvh.NodeCount())
	}

	rng := rand.New(rand.NewSource(1))
	hits := 0
	for i := 0; i < 500; i++ {
		origin := math.Vec3{
			X: rng.Float32()*8 - 4,
			Y: rng.Float32()*8 - 4,
			Z: 4 + rng.Float32(),
		}
		target := math.Vec3{
			X: rng.Float32()*2 - 1,
			Y: rng.Float32()*3.5 - 1.6,
			Z: rng.Float32() - 0.5,
		}
		ray := Ray{Origin: origin, Direction: target.Sub(origin).Normalize()}

		want, wantOK := Raycast(mesh, ray, model)
		got, gotOK := bvh.Raycast(ray, model)
		if wantOK != gotOK {
			t.Fatalf("ray %d: BVH hit = %v, linear hit = %v", i, gotOK, wantOK)
		}
		if !wantOK {
			continue
		}
		hits++
		if got.TriangleIndex != want.TriangleIndex {
			t.Errorf("ray %d: BVH triangle %d, linear triangle %d", i, got.TriangleIndex, want.TriangleIndex)
		}
		if got.Distance != want.Distance {
			t.Errorf("ray %d: BVH distance %v, linear distance %v", i, got.Distance, want.Distance)
		}
	}
	if hits == 0 {
		t.Error("no ray hit the robot")
	}
}

func TestBVHEmptyMesh(t *testing.T) {
	bvh := BuildBVH(&geometry.Mesh{})
	if _, ok := bvh.Raycast(Ray{Direction: math.Vec3{Z: -1}}, math.Identity()); ok {
		t.Error("Raycast() on empty BVH should miss")
	}
}

func TestPickerPick(t *testing.T) {
	vp := Viewport{Width: 800, Height: 800}
	for _, useBVH := range []bool{false, true} {
		p := NewPicker(cube(), useBVH)
		hit, ok := p.Pick(testCamera(), vp, 400, 400, math.Identity())
		if !ok {
			t.Fatalf("Pick(useBVH=%v) missed", useBVH)
		}
		if math32.Abs(hit.WorldPoint.Z-0.5) > 1e-3 {
			t.Errorf("WorldPoint = %v, want z 0.5", hit.WorldPoint)
		}

		if _, ok := p.Pick(testCamera(), vp, 5, 5, math.Identity()); ok {
			t.Errorf("Pick(useBVH=%v) in the corner should miss", useBVH)
		}
	}
}
