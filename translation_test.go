package gizmo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preparedTestConfig(cfg GizmoConfig, targets ...Transform) PreparedConfig {
	p := newPreparedConfig()
	p.updateForConfig(cfg)
	p.updateForTargets(targets)
	return p
}

func pointerRayThrough(cfg GizmoConfig, world mgl64.Vec3) Ray {
	viewProj := mat4FromRowMajor(cfg.ProjectionMatrix).Mul4(mat4FromRowMajor(cfg.ViewMatrix))
	screen, _ := worldToScreen(cfg.Viewport, viewProj, world)

	inv := viewProj.Inv()
	origin := screenToWorld(cfg.Viewport, inv, screen, -1.0)
	target := screenToWorld(cfg.Viewport, inv, screen, 1.0)
	return Ray{
		ScreenPos: screen,
		Origin:    origin,
		Direction: normalizeOrZero(target.Sub(origin)),
	}
}

func TestTranslationAxisPickAndDrag(t *testing.T) {
	cfg := testCameraConfig(800, 800, 10.0)
	cfg.Modes = ModeTranslate
	prepared := preparedTestConfig(cfg, IdentityTransform())

	s := newTranslationSubGizmo(prepared, DirectionX, KindAxis)

	_, picked := s.pick(pointerRayThrough(cfg, mgl64.Vec3{0.5, 0, 0}))
	require.True(t, picked)

	// Off-axis presses miss.
	_, picked2 := s.pick(pointerRayThrough(cfg, mgl64.Vec3{0.5, 0.5, 0}))
	assert.False(t, picked2)

	// Re-arm on the axis and drag one unit along +X.
	_, picked = s.pick(pointerRayThrough(cfg, mgl64.Vec3{0.5, 0, 0}))
	require.True(t, picked)

	result, ok := s.update(pointerRayThrough(cfg, mgl64.Vec3{1.5, 0, 0}))
	require.True(t, ok)
	assert.InDelta(t, 1.0, result.TranslationTotal.X(), 1e-6)
	assert.InDelta(t, 1.0, result.TranslationDelta.X(), 1e-6)

	// A second frame at the same spot reports a zero delta but keeps the
	// accumulated total.
	result, ok = s.update(pointerRayThrough(cfg, mgl64.Vec3{1.5, 0, 0}))
	require.True(t, ok)
	assert.InDelta(t, 0.0, result.TranslationDelta.Len(), 1e-9)
	assert.InDelta(t, 1.0, result.TranslationTotal.X(), 1e-6)
}

func TestTranslationAxisSnapping(t *testing.T) {
	cfg := testCameraConfig(800, 800, 10.0)
	cfg.Modes = ModeTranslate
	cfg.Snapping = true
	cfg.SnapDistance = 0.5
	prepared := preparedTestConfig(cfg, IdentityTransform())

	s := newTranslationSubGizmo(prepared, DirectionX, KindAxis)
	_, picked := s.pick(pointerRayThrough(cfg, mgl64.Vec3{0.5, 0, 0}))
	require.True(t, picked)

	result, ok := s.update(pointerRayThrough(cfg, mgl64.Vec3{1.2, 0, 0}))
	require.True(t, ok)
	assert.InDelta(t, 0.5, result.TranslationTotal.X(), 1e-6)
}

func TestTranslationPlaneDrag(t *testing.T) {
	cfg := testCameraConfig(800, 800, 10.0)
	cfg.Modes = ModeTranslate
	prepared := preparedTestConfig(cfg, IdentityTransform())

	// The Z plane handle sits offset into the XY quadrant.
	s := newTranslationSubGizmo(prepared, DirectionZ, KindPlane)
	origin := s.planeOrigin()

	_, picked := s.pick(pointerRayThrough(cfg, origin))
	require.True(t, picked)

	moved := origin.Add(mgl64.Vec3{0.3, -0.2, 0})
	result, ok := s.update(pointerRayThrough(cfg, moved))
	require.True(t, ok)
	assert.InDelta(t, 0.3, result.TranslationTotal.X(), 1e-6)
	assert.InDelta(t, -0.2, result.TranslationTotal.Y(), 1e-6)
	assert.InDelta(t, 0.0, result.TranslationTotal.Z(), 1e-9)
}

func TestTranslationLocalSpaceReportsLocalDelta(t *testing.T) {
	cfg := testCameraConfig(800, 800, 10.0)
	cfg.Modes = ModeTranslate
	cfg.Orientation = OrientationLocal

	// Target rotated a quarter turn about Z: its local X axis is world Y.
	rot := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	prepared := preparedTestConfig(cfg, NewTransform(mgl64.Vec3{1, 1, 1}, rot, mgl64.Vec3{}))

	s := newTranslationSubGizmo(prepared, DirectionX, KindAxis)

	// The handle itself points along world Y now.
	assert.InDelta(t, 1.0, s.normal().Y(), 1e-9)

	_, picked := s.pick(pointerRayThrough(cfg, mgl64.Vec3{0, 0.5, 0}))
	require.True(t, picked)

	result, ok := s.update(pointerRayThrough(cfg, mgl64.Vec3{0, 1.5, 0}))
	require.True(t, ok)
	// Reported in the gizmo's local frame: a pure local X move.
	assert.InDelta(t, 1.0, result.TranslationTotal.X(), 1e-6)
	assert.InDelta(t, 0.0, result.TranslationTotal.Y(), 1e-6)
}
