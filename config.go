package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Default snap increments, matching the widget's visual granularity.
const (
	DefaultSnapAngle    = math.Pi / 32.0
	DefaultSnapDistance = 0.1
	DefaultSnapScale    = 0.1
)

// GizmoModes is a bitset of enabled operation modes.
type GizmoModes uint8

const (
	ModeRotate GizmoModes = 1 << iota
	ModeTranslate
	ModeScale
)

func (m GizmoModes) Has(mode GizmoModes) bool { return m&mode != 0 }

// Count returns the number of enabled modes.
func (m GizmoModes) Count() int {
	n := 0
	for _, mode := range []GizmoModes{ModeRotate, ModeTranslate, ModeScale} {
		if m.Has(mode) {
			n++
		}
	}
	return n
}

// GizmoOrientation selects the basis the transformation axes are expressed in.
type GizmoOrientation int

const (
	// OrientationGlobal aligns axes to world space.
	OrientationGlobal GizmoOrientation = iota
	// OrientationLocal aligns axes to the target's orientation.
	OrientationLocal
)

// PivotPoint is the point in space rotations are centered on.
type PivotPoint int

const (
	// PivotMedianPoint rotates every target about the shared median point.
	PivotMedianPoint PivotPoint = iota
	// PivotIndividualOrigins rotates each target in place about its own origin.
	PivotIndividualOrigins
)

// GizmoDirection identifies the axis or view direction a subgizmo acts along.
type GizmoDirection int

const (
	DirectionX GizmoDirection = iota
	DirectionY
	DirectionZ
	DirectionView
)

// Color is a non-premultiplied 8-bit sRGB color with alpha.
type Color [4]uint8

func RGB(r, g, b uint8) Color { return Color{r, g, b, 255} }

func (c Color) withAlpha(alpha float64) Color {
	a := alpha
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c[3] = uint8(a*255.0 + 0.5)
	return c
}

// linear converts the sRGB color into linear RGBA floats for the draw output.
func (c Color) linear() [4]float32 {
	srgbToLinear := func(v uint8) float32 {
		f := float64(v) / 255.0
		if f <= 0.04045 {
			return float32(f / 12.92)
		}
		return float32(math.Pow((f+0.055)/1.055, 2.4))
	}
	return [4]float32{
		srgbToLinear(c[0]),
		srgbToLinear(c[1]),
		srgbToLinear(c[2]),
		float32(c[3]) / 255.0,
	}
}

// GizmoVisuals controls the visual style of the gizmo.
type GizmoVisuals struct {
	XColor Color
	YColor Color
	ZColor Color
	// SColor is used for view direction handles.
	SColor Color
	// InactiveAlpha is the color alpha when a handle is not hovered.
	InactiveAlpha float64
	// HighlightAlpha is the color alpha for hovered and active handles.
	HighlightAlpha float64
	// HighlightColor overrides the axis color for hovered handles when set.
	HighlightColor *Color
	// StrokeWidth is the handle stroke thickness in logical pixels.
	StrokeWidth float64
	// GizmoSize is the widget radius in logical pixels.
	GizmoSize float64
}

func DefaultVisuals() GizmoVisuals {
	return GizmoVisuals{
		XColor:         RGB(255, 0, 125),
		YColor:         RGB(0, 255, 125),
		ZColor:         RGB(0, 125, 255),
		SColor:         RGB(255, 255, 255),
		InactiveAlpha:  0.7,
		HighlightAlpha: 1.0,
		StrokeWidth:    4.0,
		GizmoSize:      75.0,
	}
}

// AxisVisibility toggles a handle kind per direction.
type AxisVisibility struct {
	X    bool
	Y    bool
	Z    bool
	View bool
}

func allAxes() AxisVisibility { return AxisVisibility{X: true, Y: true, Z: true, View: true} }

func (v AxisVisibility) active(direction GizmoDirection) bool {
	switch direction {
	case DirectionX:
		return v.X
	case DirectionY:
		return v.Y
	case DirectionZ:
		return v.Z
	default:
		return v.View
	}
}

// GizmoVisibility toggles individual subgizmo primitives.
type GizmoVisibility struct {
	TranslationArrow AxisVisibility
	TranslationPlane AxisVisibility
	ScaleArrow       AxisVisibility
	ScalePlane       AxisVisibility
	RotationArc      AxisVisibility
	Arcball          bool
}

func DefaultVisibility() GizmoVisibility {
	return GizmoVisibility{
		TranslationArrow: allAxes(),
		TranslationPlane: allAxes(),
		ScaleArrow:       allAxes(),
		ScalePlane:       allAxes(),
		RotationArc:      allAxes(),
		Arcball:          true,
	}
}

// GizmoConfig is the per-frame configuration snapshot supplied by the host.
// The gizmo never mutates it; a new snapshot replaces it wholesale.
type GizmoConfig struct {
	// ViewMatrix is the camera view matrix, row-major.
	ViewMatrix [16]float64
	// ProjectionMatrix is the camera projection matrix, row-major.
	ProjectionMatrix [16]float64
	// Viewport is the screen area the gizmo is displayed in.
	Viewport Rect
	// Modes is the set of enabled operation modes.
	Modes GizmoModes
	// Orientation selects global or local transformation axes.
	Orientation GizmoOrientation
	// PivotPoint selects the rotation pivot.
	PivotPoint PivotPoint
	// Snapping quantizes deltas to the snap increments below.
	Snapping     bool
	SnapAngle    float64
	SnapDistance float64
	SnapScale    float64
	Visuals      GizmoVisuals
	Visibility   GizmoVisibility
	// PixelsPerPoint is the ratio of physical to logical pixel size. The
	// core math works entirely in logical pixels and does not consume it;
	// it is carried so hosts converting framebuffer coordinates to cursor
	// positions have the ratio in one place.
	PixelsPerPoint float64
}

func DefaultConfig() GizmoConfig {
	return GizmoConfig{
		ViewMatrix:       RowMajor(mgl64.Ident4()),
		ProjectionMatrix: RowMajor(mgl64.Ident4()),
		Viewport:         NewRect(math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)),
		Modes:            ModeRotate,
		Orientation:      OrientationGlobal,
		PivotPoint:       PivotMedianPoint,
		Snapping:         false,
		SnapAngle:        DefaultSnapAngle,
		SnapDistance:     DefaultSnapDistance,
		SnapScale:        DefaultSnapScale,
		Visuals:          DefaultVisuals(),
		Visibility:       DefaultVisibility(),
		PixelsPerPoint:   1.0,
	}
}

// EffectiveOrientation returns the orientation actually used for
// transformations. Scaling is only defined on local axes, so enabling the
// scale mode forces local orientation.
func (c GizmoConfig) EffectiveOrientation() GizmoOrientation {
	if c.Modes.Has(ModeScale) {
		return OrientationLocal
	}
	return c.Orientation
}

func (c GizmoConfig) localSpace() bool {
	return c.EffectiveOrientation() == OrientationLocal
}

// View basis vectors, read from the view matrix rows.
func (c GizmoConfig) viewForward() mgl64.Vec3 {
	return mgl64.Vec3{c.ViewMatrix[8], c.ViewMatrix[9], c.ViewMatrix[10]}
}

func (c GizmoConfig) viewUp() mgl64.Vec3 {
	return mgl64.Vec3{c.ViewMatrix[4], c.ViewMatrix[5], c.ViewMatrix[6]}
}

func (c GizmoConfig) viewRight() mgl64.Vec3 {
	return mgl64.Vec3{c.ViewMatrix[0], c.ViewMatrix[1], c.ViewMatrix[2]}
}

// PreparedConfig is the per-frame derived state: the raw config plus every
// camera-relative scalar the subgizmos need. It is recomputed wholesale on
// every config or transform change, never field by field.
type PreparedConfig struct {
	GizmoConfig

	// Aggregate transform of the targets.
	rotation    mgl64.Quat
	translation mgl64.Vec3
	scale       mgl64.Vec3

	viewProjection mgl64.Mat4
	modelMatrix    mgl64.Mat4
	mvp            mgl64.Mat4

	// World units per logical pixel at the gizmo's depth.
	scaleFactor float64
	// Screen space pick tolerance in world units.
	focusDistance float64
	leftHanded    bool
	// Unit vector from the gizmo towards the camera near plane, zero when
	// the distance degenerates.
	eyeToModelDir mgl64.Vec3
}

func newPreparedConfig() PreparedConfig {
	p := PreparedConfig{GizmoConfig: DefaultConfig()}
	p.scale = mgl64.Vec3{1, 1, 1}
	p.rotation = mgl64.QuatIdent()
	p.updateForConfig(p.GizmoConfig)
	return p
}

// updateForConfig installs a new config snapshot and re-derives everything.
func (p *PreparedConfig) updateForConfig(config GizmoConfig) {
	projection := mat4FromRowMajor(config.ProjectionMatrix)
	view := mat4FromRowMajor(config.ViewMatrix)

	// Handedness follows the sign pattern of the projection's third row.
	// Perspective projections carry it in the w term, orthographic ones in
	// the z scale term.
	var leftHanded bool
	if projection.At(3, 2) == 0.0 {
		leftHanded = projection.At(2, 2) > 0.0
	} else {
		leftHanded = projection.At(3, 2) > 0.0
	}

	p.GizmoConfig = config
	p.viewProjection = projection.Mul4(view)
	p.leftHanded = leftHanded

	p.updateTransform(Transform{
		Scale:       p.scale,
		Rotation:    p.rotation,
		Translation: p.translation,
	})
}

// updateForTargets derives the aggregate transform from the current targets:
// mean translation and scale, and the rotation of the last target. Rotations
// do not average well, so the single-target convention is kept for groups.
func (p *PreparedConfig) updateForTargets(targets []Transform) {
	scale := mgl64.Vec3{}
	translation := mgl64.Vec3{}
	rotation := mgl64.QuatIdent()

	for _, target := range targets {
		scale = scale.Add(target.Scale)
		translation = translation.Add(target.Translation)
		rotation = target.Rotation
	}

	if len(targets) == 0 {
		scale = mgl64.Vec3{1, 1, 1}
	} else {
		inv := 1.0 / float64(len(targets))
		translation = translation.Mul(inv)
		scale = scale.Mul(inv)
	}

	p.updateTransform(Transform{
		Scale:       scale,
		Rotation:    rotation,
		Translation: translation,
	})
}

// updateTransform re-derives every transform-dependent scalar.
func (p *PreparedConfig) updateTransform(transform Transform) {
	p.translation = transform.Translation
	p.rotation = transform.Rotation
	p.scale = transform.Scale
	p.modelMatrix = transform.Mat4()
	p.mvp = p.viewProjection.Mul4(p.modelMatrix)

	projXScale := p.ProjectionMatrix[0]
	if projXScale != 0 && p.Viewport.Width() != 0 {
		p.scaleFactor = p.mvp.At(3, 3) / projXScale / p.Viewport.Width() * 2.0
	} else {
		p.scaleFactor = 0.0
	}

	p.focusDistance = p.scaleFactor * (p.Visuals.StrokeWidth/2.0 + 5.0)

	gizmoScreenPos, _ := worldToScreen(p.Viewport, p.mvp, mgl64.Vec3{})
	gizmoViewNear := screenToWorld(p.Viewport, p.viewProjection.Inv(), gizmoScreenPos, -1.0)
	p.eyeToModelDir = normalizeOrZero(gizmoViewNear.Sub(p.translation))
}

// asTransform returns the aggregate transform the gizmo currently tracks.
func (p *PreparedConfig) asTransform() Transform {
	return Transform{
		Scale:       p.scale,
		Rotation:    p.rotation,
		Translation: p.translation,
	}
}

// gizmoSizeWorld is the widget radius converted to world units.
func (p *PreparedConfig) gizmoSizeWorld() float64 {
	return p.scaleFactor * p.Visuals.GizmoSize
}
