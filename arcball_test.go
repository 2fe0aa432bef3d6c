package gizmo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcballPickAlwaysLosesTies(t *testing.T) {
	cfg := testCameraConfig(800, 800, 10.0)
	prepared := preparedTestConfig(cfg, IdentityTransform())

	s := newArcballSubGizmo(prepared)

	tt, picked := s.pick(Ray{ScreenPos: mgl64.Vec2{420, 400}})
	assert.True(t, picked)
	assert.Equal(t, math.MaxFloat64, tt)

	// Outside the trackball radius.
	_, picked = s.pick(Ray{ScreenPos: mgl64.Vec2{400 + 76, 400}})
	assert.False(t, picked)
}

func TestArcballDragRotatesAboutUp(t *testing.T) {
	cfg := testCameraConfig(800, 800, 10.0)
	prepared := preparedTestConfig(cfg, IdentityTransform())

	s := newArcballSubGizmo(prepared)
	_, picked := s.pick(Ray{ScreenPos: mgl64.Vec2{400, 400}})
	require.True(t, picked)

	// Dragging right from the center swings the trackball direction in the
	// camera's right/forward plane: a rotation about the camera's up axis.
	result, ok := s.update(Ray{ScreenPos: mgl64.Vec2{430, 400}})
	require.True(t, ok)
	assert.Equal(t, ResultArcball, result.Kind)

	axis := mgl64.Vec3{result.ArcballDelta.X(), result.ArcballDelta.Y(), result.ArcballDelta.Z()}
	axis = normalizeOrZero(axis)
	assert.InDelta(t, 1.0, math.Abs(axis.Y()), 1e-6)
	assert.InDelta(t, 1.0, result.ArcballDelta.Len(), 1e-9)
}

func TestArcballTotalAccumulates(t *testing.T) {
	cfg := testCameraConfig(800, 800, 10.0)
	prepared := preparedTestConfig(cfg, IdentityTransform())

	s := newArcballSubGizmo(prepared)
	_, picked := s.pick(Ray{ScreenPos: mgl64.Vec2{400, 400}})
	require.True(t, picked)

	r1, ok := s.update(Ray{ScreenPos: mgl64.Vec2{415, 400}})
	require.True(t, ok)
	r2, ok := s.update(Ray{ScreenPos: mgl64.Vec2{430, 400}})
	require.True(t, ok)

	// The total is the composition of the per-frame deltas.
	want := r2.ArcballDelta.Mul(r1.ArcballDelta).Normalize()
	got := r2.ArcballTotal
	assert.InDelta(t, want.W, got.W, 1e-9)
	assert.InDelta(t, want.X(), got.X(), 1e-9)
	assert.InDelta(t, want.Y(), got.Y(), 1e-9)
	assert.InDelta(t, want.Z(), got.Z(), 1e-9)
}

func TestArcballDrawOnlyWhenHighlighted(t *testing.T) {
	cfg := testCameraConfig(800, 800, 10.0)
	prepared := preparedTestConfig(cfg, IdentityTransform())

	s := newArcballSubGizmo(prepared)
	assert.Empty(t, s.draw().Vertices)

	s.setFocused(true)
	assert.NotEmpty(t, s.draw().Vertices)
}
