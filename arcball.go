package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// arcballSubGizmo freely rotates the targets with a virtual trackball. The
// pointer is projected onto a bounding sphere in view space; cursor points
// inside the sphere map onto its surface, points outside onto a hyperbolic
// sheet so the mapping stays continuous.
type arcballSubGizmo struct {
	subGizmoBase

	lastDir  mgl64.Vec3
	totalRot mgl64.Quat
}

func newArcballSubGizmo(cfg PreparedConfig) *arcballSubGizmo {
	return &arcballSubGizmo{subGizmoBase: newSubGizmoBase(cfg, DirectionView, KindPlane)}
}

func (s *arcballSubGizmo) radius() float64 {
	return s.cfg.Visuals.GizmoSize
}

func (s *arcballSubGizmo) pick(ray Ray) (float64, bool) {
	dist, ok := s.screenDistanceToGizmo(ray)
	if !ok {
		return 0, false
	}

	s.lastDir = s.trackballDir(ray.ScreenPos)
	s.totalRot = mgl64.QuatIdent()

	// Reported at the far end of the parameter range so any other handle
	// under the pointer wins the closest-hit comparison.
	return math.MaxFloat64, dist <= s.radius()
}

func (s *arcballSubGizmo) update(ray Ray) (GizmoResult, bool) {
	dir := s.trackballDir(ray.ScreenPos)
	if dir.Len() == 0 || s.lastDir.Len() == 0 {
		return GizmoResult{}, false
	}

	delta := mgl64.QuatBetweenVectors(s.lastDir, dir).Normalize()
	s.lastDir = dir
	s.totalRot = delta.Mul(s.totalRot).Normalize()

	return GizmoResult{
		Kind:         ResultArcball,
		ArcballDelta: delta,
		ArcballTotal: s.totalRot,
	}, true
}

// trackballDir maps a screen position onto the trackball sphere, expressed
// in world space through the camera basis.
func (s *arcballSubGizmo) trackballDir(screenPos mgl64.Vec2) mgl64.Vec3 {
	center, ok := worldToScreen(s.cfg.Viewport, s.cfg.mvp, mgl64.Vec3{})
	if !ok {
		return mgl64.Vec3{}
	}

	r := s.radius()
	x := (screenPos.X() - center.X()) / r
	// Screen y grows downward.
	y := -(screenPos.Y() - center.Y()) / r

	d2 := x*x + y*y
	var z float64
	if d2 <= 0.5 {
		// On the sphere.
		z = math.Sqrt(1.0 - d2)
	} else {
		// On the hyperbolic sheet.
		z = 0.5 / math.Sqrt(d2)
	}

	// eyeToModelDir points from the gizmo towards the camera near plane.
	toCamera := s.cfg.eyeToModelDir
	if toCamera.Len() == 0 {
		toCamera = s.cfg.viewForward()
	}

	world := s.cfg.viewRight().Mul(x).
		Add(s.cfg.viewUp().Mul(y)).
		Add(toCamera.Mul(z))
	return normalizeOrZero(world)
}

func (s *arcballSubGizmo) draw() DrawData {
	p := newPainter(&s.cfg)
	if !s.highlighted() {
		return p.finish()
	}

	color := s.cfg.Visuals.SColor.withAlpha(0.15)
	radius := s.cfg.scaleFactor * s.radius()
	p.fillCircle3D(s.cfg.translation, s.cfg.viewRight(), s.cfg.viewUp(), radius, color)
	return p.finish()
}
