package gizmo

import (
	"github.com/go-gl/mathgl/mgl64"
)

// scaleSubGizmo scales the targets along an axis, or uniformly for the view
// variant. The drag is driven by the screen distance between the pointer and
// the gizmo origin, so the factor is a ratio relative to the drag start.
type scaleSubGizmo struct {
	subGizmoBase

	startDistance float64
}

func newScaleSubGizmo(cfg PreparedConfig, direction GizmoDirection, kind TransformKind) *scaleSubGizmo {
	return &scaleSubGizmo{subGizmoBase: newSubGizmoBase(cfg, direction, kind)}
}

func (s *scaleSubGizmo) pick(ray Ray) (float64, bool) {
	var t float64
	var picked bool

	if s.kind == KindAxis {
		t, _, picked = pickArrow(&s.cfg, ray, s.normal())
	} else if s.direction == DirectionView {
		t, _, picked = pickPlane(&s.cfg, ray, s.normal(), s.cfg.translation, s.planeSize())
	} else {
		t, _, picked = pickPlane(&s.cfg, ray, s.normal(), s.planeOrigin(), s.planeSize())
	}

	dist, ok := s.screenDistanceToGizmo(ray)
	if !ok || dist < 1e-4 {
		dist = 1e-4
	}
	s.startDistance = dist

	return t, picked
}

func (s *scaleSubGizmo) update(ray Ray) (GizmoResult, bool) {
	dist, ok := s.screenDistanceToGizmo(ray)
	if !ok {
		return GizmoResult{}, false
	}

	ratio := dist / s.startDistance
	if s.cfg.Snapping {
		ratio = roundToInterval(ratio, s.cfg.SnapScale)
	}
	if ratio < 1e-4 {
		ratio = 1e-4
	}

	return GizmoResult{
		Kind:       ResultScale,
		ScaleTotal: mgl64.Vec3{1, 1, 1}.Add(s.scaleAxis().Mul(ratio - 1.0)),
	}, true
}

// scaleAxis is the per-axis weight of the scale factor. The uniform view
// handle scales every axis.
func (s *scaleSubGizmo) scaleAxis() mgl64.Vec3 {
	switch s.direction {
	case DirectionX:
		return mgl64.Vec3{1, 0, 0}
	case DirectionY:
		return mgl64.Vec3{0, 1, 0}
	case DirectionZ:
		return mgl64.Vec3{0, 0, 1}
	default:
		return mgl64.Vec3{1, 1, 1}
	}
}

func (s *scaleSubGizmo) draw() DrawData {
	p := newPainter(&s.cfg)
	color := handleColor(&s.cfg, s.direction, s.highlighted())

	if s.kind == KindAxis {
		drawScaleArrow(p, s.normal(), color)
	} else if s.direction == DirectionView {
		p.strokeCircle3D(s.cfg.translation, s.cfg.viewRight(), s.cfg.viewUp(),
			s.planeSize(), s.cfg.Visuals.StrokeWidth, color)
	} else {
		drawPlaneHandle(p, s.planeOrigin(), s.planeTangent(), s.planeBitangent(), s.planeSize(), color)
	}
	return p.finish()
}

// drawScaleArrow draws a stem ending in a square cap instead of an arrowhead.
func drawScaleArrow(p *painter3d, dir mgl64.Vec3, color Color) {
	cfg := p.cfg
	length := cfg.gizmoSizeWorld()
	origin := cfg.translation
	end := origin.Add(dir.Mul(length * 0.9))

	p.strokeLine3D(origin.Add(dir.Mul(length*0.1)), end, cfg.Visuals.StrokeWidth, color)

	capSize := cfg.scaleFactor * cfg.Visuals.StrokeWidth * 1.5
	drawPlaneHandle(p, origin.Add(dir.Mul(length)), cfg.viewRight(), cfg.viewUp(), capSize, color)
}
