package gizmo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestRowMajorRoundTrip(t *testing.T) {
	m := mgl64.Perspective(math.Pi/4, 1.5, 0.1, 100.0)
	got := mat4FromRowMajor(RowMajor(m))

	for i := 0; i < 16; i++ {
		if m[i] != got[i] {
			t.Fatalf("element %d: expected %v, got %v", i, m[i], got[i])
		}
	}
}

func TestRectIsFinite(t *testing.T) {
	if !NewRect(0, 0, 800, 600).IsFinite() {
		t.Errorf("Expected a plain rect to be finite")
	}
	if NewRect(math.Inf(1), 0, 800, 600).IsFinite() {
		t.Errorf("Expected an infinite rect to be non-finite")
	}
	if NewRect(math.NaN(), 0, 800, 600).IsFinite() {
		t.Errorf("Expected a NaN rect to be non-finite")
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	projection := mgl64.Perspective(math.Pi/4, 1.0, 0.1, 100.0)
	viewProj := projection.Mul4(view)
	viewport := NewRect(0, 0, 800, 800)

	world := mgl64.Vec3{0.5, -0.25, 0}
	screen, ok := worldToScreen(viewport, viewProj, world)
	assert.True(t, ok)

	// Unproject at the depth the point landed on, then reproject.
	back, ok2 := worldToScreen(viewport, viewProj, screenToWorld(viewport, viewProj.Inv(), screen, projectedDepth(viewProj, world)))
	assert.True(t, ok2)
	assert.InDelta(t, screen.X(), back.X(), 1e-6)
	assert.InDelta(t, screen.Y(), back.Y(), 1e-6)
}

func projectedDepth(viewProj mgl64.Mat4, world mgl64.Vec3) float64 {
	clip := viewProj.Mul4x1(world.Vec4(1))
	return clip.Z() / clip.W()
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	projection := mgl64.Perspective(math.Pi/4, 1.0, 0.1, 100.0)
	viewProj := projection.Mul4(view)

	_, ok := worldToScreen(NewRect(0, 0, 800, 800), viewProj, mgl64.Vec3{0, 0, 20})
	assert.False(t, ok, "points behind the camera should not project")
}

func TestRayToRay(t *testing.T) {
	// Pointer ray passing over the X axis above x=2.
	t1 := rayToRay(
		mgl64.Vec3{2, 1, 0}, mgl64.Vec3{0, -1, 0},
		mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0},
	)
	assert.InDelta(t, 2.0, t1, 1e-10)

	// Parallel rays degrade to zero.
	t2 := rayToRay(
		mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0},
	)
	assert.Equal(t, 0.0, t2)
}

func TestSegmentToSegment(t *testing.T) {
	// Crossing segments meet in the middle.
	ta, tb := segmentToSegment(
		mgl64.Vec3{-1, 1, 0}, mgl64.Vec3{1, 1, 0},
		mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 1},
	)
	assert.InDelta(t, 0.5, ta, 1e-10)
	assert.InDelta(t, 0.5, tb, 1e-10)

	// Disjoint segments clamp to their closest endpoints.
	ta, tb = segmentToSegment(
		mgl64.Vec3{2, 0, 0}, mgl64.Vec3{3, 0, 0},
		mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0},
	)
	assert.InDelta(t, 0.0, ta, 1e-10)
	assert.InDelta(t, 1.0, tb, 1e-10)
}

func TestIntersectPlane(t *testing.T) {
	normal := mgl64.Vec3{0, 0, 1}

	d, ok := intersectPlane(normal, mgl64.Vec3{}, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1})
	assert.True(t, ok)
	assert.InDelta(t, 5.0, d, 1e-10)

	// Parallel ray misses.
	_, ok = intersectPlane(normal, mgl64.Vec3{}, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{1, 0, 0})
	assert.False(t, ok)

	// Plane behind the ray misses.
	_, ok = intersectPlane(normal, mgl64.Vec3{}, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1})
	assert.False(t, ok)
}

func TestRayToPlaneOriginMissIsInf(t *testing.T) {
	d, dist := rayToPlaneOrigin(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{}, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{1, 0, 0})
	assert.True(t, math.IsInf(d, 1))
	assert.True(t, math.IsInf(dist, 1))
}

func TestRoundToInterval(t *testing.T) {
	assert.InDelta(t, math.Pi/32, roundToInterval(0.11, math.Pi/32), 1e-12)
	assert.InDelta(t, 0.0, roundToInterval(0.04, 0.1), 1e-12)
	assert.InDelta(t, -0.2, roundToInterval(-0.16, 0.1), 1e-12)
}

func TestNormalizeOrZero(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{}, normalizeOrZero(mgl64.Vec3{}))
	v := normalizeOrZero(mgl64.Vec3{3, 0, 0})
	assert.InDelta(t, 1.0, v.Len(), 1e-12)
}
