package gizmo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestGizmoModes(t *testing.T) {
	modes := ModeRotate | ModeScale
	assert.True(t, modes.Has(ModeRotate))
	assert.True(t, modes.Has(ModeScale))
	assert.False(t, modes.Has(ModeTranslate))
	assert.Equal(t, 2, modes.Count())
	assert.Equal(t, 0, GizmoModes(0).Count())
}

func TestEffectiveOrientationForcesLocalForScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orientation = OrientationGlobal

	cfg.Modes = ModeTranslate
	assert.Equal(t, OrientationGlobal, cfg.EffectiveOrientation())

	cfg.Modes = ModeTranslate | ModeScale
	assert.Equal(t, OrientationLocal, cfg.EffectiveOrientation())
}

func TestColorWithAlpha(t *testing.T) {
	c := RGB(255, 0, 125)
	assert.Equal(t, uint8(255), c[3])
	// 0.7*255 = 178.5, rounded half up.
	assert.Equal(t, uint8(179), c.withAlpha(0.7)[3])
	assert.Equal(t, uint8(0), c.withAlpha(-1.0)[3])
	assert.Equal(t, uint8(255), c.withAlpha(2.0)[3])
	// The base color is untouched.
	assert.Equal(t, uint8(255), c[3])
}

func TestColorLinear(t *testing.T) {
	white := RGB(255, 255, 255).linear()
	assert.InDelta(t, 1.0, float64(white[0]), 1e-6)
	assert.InDelta(t, 1.0, float64(white[3]), 1e-6)

	black := RGB(0, 0, 0).linear()
	assert.Equal(t, float32(0), black[0])

	// Mid gray lands well below 0.5 in linear space.
	gray := RGB(128, 128, 128).linear()
	assert.InDelta(t, 0.2158, float64(gray[1]), 1e-3)
}

func TestUpdateForTargetsAggregates(t *testing.T) {
	p := newPreparedConfig()

	rot := mgl64.QuatRotate(math.Pi/3, mgl64.Vec3{0, 1, 0})
	p.updateForTargets([]Transform{
		{Scale: mgl64.Vec3{1, 1, 1}, Rotation: mgl64.QuatIdent(), Translation: mgl64.Vec3{-2, 0, 0}},
		{Scale: mgl64.Vec3{3, 3, 3}, Rotation: rot, Translation: mgl64.Vec3{4, 2, 0}},
	})

	assert.InDelta(t, 1.0, p.translation.X(), 1e-12)
	assert.InDelta(t, 1.0, p.translation.Y(), 1e-12)
	assert.InDelta(t, 2.0, p.scale.X(), 1e-12)
	// Groups take the rotation of the last target.
	assert.InDelta(t, rot.W, p.rotation.W, 1e-12)
}

func TestUpdateForTargetsEmpty(t *testing.T) {
	p := newPreparedConfig()
	p.updateForTargets(nil)

	assert.Equal(t, mgl64.Vec3{1, 1, 1}, p.scale)
	assert.Equal(t, mgl64.Vec3{}, p.translation)
}

func TestHandednessDetection(t *testing.T) {
	p := newPreparedConfig()

	cfg := DefaultConfig()
	cfg.ProjectionMatrix = RowMajor(mgl64.Perspective(math.Pi/4, 1.0, 0.1, 100.0))
	p.updateForConfig(cfg)
	assert.False(t, p.leftHanded, "right-handed perspective")

	cfg.ProjectionMatrix = RowMajor(mgl64.Ortho(-1, 1, -1, 1, 0.1, 100.0))
	p.updateForConfig(cfg)
	assert.False(t, p.leftHanded, "right-handed orthographic")

	// Flip the z row to fake a left-handed perspective projection.
	lh := mgl64.Perspective(math.Pi/4, 1.0, 0.1, 100.0)
	lh[11] = -lh[11]
	lh[10] = -lh[10]
	cfg.ProjectionMatrix = RowMajor(lh)
	p.updateForConfig(cfg)
	assert.True(t, p.leftHanded, "left-handed perspective")
}

func TestScaleFactorAndFocusDistance(t *testing.T) {
	cfg := testCameraConfig(800, 800, 10.0)
	p := newPreparedConfig()
	p.updateForConfig(cfg)
	p.updateForTargets([]Transform{IdentityTransform()})

	// World units per pixel at depth d: d / proj00 / width * 2.
	proj00 := cfg.ProjectionMatrix[0]
	want := 10.0 / proj00 / 800.0 * 2.0
	assert.InDelta(t, want, p.scaleFactor, 1e-9)
	assert.InDelta(t, want*(cfg.Visuals.StrokeWidth/2.0+5.0), p.focusDistance, 1e-9)
	assert.InDelta(t, want*cfg.Visuals.GizmoSize, p.gizmoSizeWorld(), 1e-9)
}

func TestEyeToModelDirPointsAtCamera(t *testing.T) {
	p := newPreparedConfig()
	p.updateForConfig(testCameraConfig(800, 800, 10.0))
	p.updateForTargets([]Transform{IdentityTransform()})

	// Camera sits on +Z looking at the origin.
	assert.InDelta(t, 1.0, p.eyeToModelDir.Len(), 1e-9)
	assert.Greater(t, p.eyeToModelDir.Z(), 0.99)
}

// testCameraConfig builds a config with the camera on +Z at the given
// distance, looking at the origin.
func testCameraConfig(width, height, distance float64) GizmoConfig {
	cfg := DefaultConfig()
	cfg.ViewMatrix = RowMajor(mgl64.LookAtV(
		mgl64.Vec3{0, 0, distance}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0},
	))
	cfg.ProjectionMatrix = RowMajor(mgl64.Perspective(math.Pi/4, width/height, 0.1, 100.0))
	cfg.Viewport = NewRect(0, 0, width, height)
	return cfg
}
