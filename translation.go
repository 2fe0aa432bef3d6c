package gizmo

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Far enough to act as an infinite pointer ray in segment tests.
const pickRayLength = 1e14

// translationSubGizmo moves the targets along an axis or within a plane.
type translationSubGizmo struct {
	subGizmoBase

	// World space contact point captured when picking started, and the
	// point reached on the previous drag frame.
	startPoint mgl64.Vec3
	lastPoint  mgl64.Vec3
}

func newTranslationSubGizmo(cfg PreparedConfig, direction GizmoDirection, kind TransformKind) *translationSubGizmo {
	return &translationSubGizmo{subGizmoBase: newSubGizmoBase(cfg, direction, kind)}
}

func (s *translationSubGizmo) pick(ray Ray) (float64, bool) {
	var t float64
	var contact mgl64.Vec3
	var picked bool

	if s.kind == KindAxis {
		t, contact, picked = pickArrow(&s.cfg, ray, s.normal())
	} else {
		t, contact, picked = pickPlane(&s.cfg, ray, s.normal(), s.planeOrigin(), s.planeSize())
	}

	s.startPoint = contact
	s.lastPoint = contact
	return t, picked
}

func (s *translationSubGizmo) update(ray Ray) (GizmoResult, bool) {
	var newPoint mgl64.Vec3

	if s.kind == KindAxis {
		dir := s.normal()
		t := rayToRay(ray.Origin, ray.Direction, s.cfg.translation, dir)
		newPoint = s.cfg.translation.Add(dir.Mul(t))

		delta := newPoint.Sub(s.startPoint)
		if s.cfg.Snapping {
			amount := roundToInterval(delta.Dot(dir), s.cfg.SnapDistance)
			delta = dir.Mul(amount)
		}
		newPoint = s.startPoint.Add(delta)
	} else {
		normal := s.normal()
		t, ok := intersectPlane(normal, s.planeOrigin(), ray.Origin, ray.Direction)
		if !ok {
			return GizmoResult{}, false
		}
		newPoint = ray.Origin.Add(ray.Direction.Mul(t))

		delta := newPoint.Sub(s.startPoint)
		if s.cfg.Snapping {
			tangent := s.planeTangent()
			bitangent := s.planeBitangent()
			along := roundToInterval(delta.Dot(tangent), s.cfg.SnapDistance)
			across := roundToInterval(delta.Dot(bitangent), s.cfg.SnapDistance)
			delta = tangent.Mul(along).Add(bitangent.Mul(across))
		}
		newPoint = s.startPoint.Add(delta)
	}

	frameDelta := newPoint.Sub(s.lastPoint)
	total := newPoint.Sub(s.startPoint)
	s.lastPoint = newPoint

	// Local orientation reports the delta in the gizmo's local frame; the
	// orchestrator rotates it back into each target's own frame.
	if s.cfg.localSpace() {
		inv := s.cfg.rotation.Inverse()
		frameDelta = inv.Rotate(frameDelta)
		total = inv.Rotate(total)
	}

	return GizmoResult{
		Kind:             ResultTranslation,
		TranslationDelta: frameDelta,
		TranslationTotal: total,
	}, true
}

func (s *translationSubGizmo) draw() DrawData {
	p := newPainter(&s.cfg)
	color := handleColor(&s.cfg, s.direction, s.highlighted())

	if s.kind == KindAxis {
		drawArrow(p, s.normal(), color)
	} else if s.direction == DirectionView {
		p.fillCircle3D(s.cfg.translation, s.cfg.viewRight(), s.cfg.viewUp(), s.planeSize(), color)
	} else {
		drawPlaneHandle(p, s.planeOrigin(), s.planeTangent(), s.planeBitangent(), s.planeSize(), color)
	}
	return p.finish()
}

// pickArrow tests the ray against an axis arrow handle. It returns the ray
// parameter, the closest axis point and whether the handle was hit.
func pickArrow(cfg *PreparedConfig, ray Ray, dir mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	length := cfg.gizmoSizeWorld()
	origin := cfg.translation
	start := origin.Add(dir.Mul(length * 0.1))
	end := origin.Add(dir.Mul(length))

	rayEnd := ray.Origin.Add(ray.Direction.Mul(pickRayLength))
	rayT, axisT := segmentToSegment(ray.Origin, rayEnd, start, end)

	rayPoint := ray.Origin.Add(ray.Direction.Mul(pickRayLength * rayT))
	axisPoint := start.Add(end.Sub(start).Mul(axisT))

	dist := rayPoint.Sub(axisPoint).Len()
	return pickRayLength * rayT, axisPoint, dist <= cfg.focusDistance
}

// pickPlane tests the ray against a plane handle bounded by halfSize.
func pickPlane(cfg *PreparedConfig, ray Ray, normal, origin mgl64.Vec3, halfSize float64) (float64, mgl64.Vec3, bool) {
	t, dist := rayToPlaneOrigin(normal, origin, ray.Origin, ray.Direction)
	if dist > halfSize {
		return t, origin, false
	}
	return t, ray.Origin.Add(ray.Direction.Mul(t)), true
}

func drawArrow(p *painter3d, dir mgl64.Vec3, color Color) {
	cfg := p.cfg
	length := cfg.gizmoSizeWorld()
	origin := cfg.translation

	stemEnd := origin.Add(dir.Mul(length * 0.85))
	tip := origin.Add(dir.Mul(length))

	p.strokeLine3D(origin.Add(dir.Mul(length*0.1)), stemEnd, cfg.Visuals.StrokeWidth, color)
	p.arrowhead3D(stemEnd, tip, cfg.Visuals.StrokeWidth*3.0, color)
}

func drawPlaneHandle(p *painter3d, origin, tangent, bitangent mgl64.Vec3, halfSize float64, color Color) {
	t := tangent.Mul(halfSize)
	b := bitangent.Mul(halfSize)
	p.quad3D([4]mgl64.Vec3{
		origin.Sub(t).Sub(b),
		origin.Sub(t).Add(b),
		origin.Add(t).Add(b),
		origin.Add(t).Sub(b),
	}, color)
}
