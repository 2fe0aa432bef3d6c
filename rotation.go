package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// rotationSubGizmo rotates the targets about one axis, or about the view
// direction. The drag angle is the signed angle between the drag start
// contact direction and the current contact direction in the arc plane,
// accumulated across the ±π wrap so long drags keep counting.
type rotationSubGizmo struct {
	subGizmoBase

	// Contact direction in the arc plane at drag start.
	startDir mgl64.Vec3
	// Raw angle reported on the previous frame, for wrap handling.
	lastRawAngle float64
	// Accumulated raw and snapped totals.
	totalAngle     float64
	lastTotalAngle float64
}

func newRotationSubGizmo(cfg PreparedConfig, direction GizmoDirection) *rotationSubGizmo {
	return &rotationSubGizmo{subGizmoBase: newSubGizmoBase(cfg, direction, KindAxis)}
}

// arcRadius is the ring radius in world units. The view ring encloses the
// axis rings.
func (s *rotationSubGizmo) arcRadius() float64 {
	radius := s.cfg.gizmoSizeWorld()
	if s.direction == DirectionView {
		radius *= 1.2
	}
	return radius
}

func (s *rotationSubGizmo) pick(ray Ray) (float64, bool) {
	normal := s.normal()
	origin := s.cfg.translation

	t, distFromOrigin := rayToPlaneOrigin(normal, origin, ray.Origin, ray.Direction)
	if math.IsInf(t, 1) {
		return 0, false
	}

	hit := ray.Origin.Add(ray.Direction.Mul(t))
	s.startDir = normalizeOrZero(hit.Sub(origin))
	s.lastRawAngle = 0
	s.totalAngle = 0
	s.lastTotalAngle = 0

	distFromRing := math.Abs(distFromOrigin - s.arcRadius())
	return t, distFromRing <= s.cfg.focusDistance
}

func (s *rotationSubGizmo) update(ray Ray) (GizmoResult, bool) {
	normal := s.normal()
	origin := s.cfg.translation

	t, ok := intersectPlane(normal, origin, ray.Origin, ray.Direction)
	if !ok {
		return GizmoResult{}, false
	}
	hit := ray.Origin.Add(ray.Direction.Mul(t))
	dir := normalizeOrZero(hit.Sub(origin))
	if dir.Len() == 0 || s.startDir.Len() == 0 {
		return GizmoResult{}, false
	}

	// Signed angle from the start direction to the current one about the
	// arc normal, in (-π, π].
	raw := math.Atan2(s.startDir.Cross(dir).Dot(normal), s.startDir.Dot(dir))

	// Accumulate frame to frame so the total may exceed a half turn.
	step := raw - s.lastRawAngle
	if step > math.Pi {
		step -= 2 * math.Pi
	} else if step < -math.Pi {
		step += 2 * math.Pi
	}
	s.lastRawAngle = raw
	s.totalAngle += step

	total := s.totalAngle
	if s.cfg.Snapping {
		total = roundToInterval(total, s.cfg.SnapAngle)
	}
	delta := total - s.lastTotalAngle
	s.lastTotalAngle = total

	return GizmoResult{
		Kind:          ResultRotation,
		RotationAxis:  s.resultAxis(),
		RotationDelta: delta,
		RotationTotal: total,
		IsViewAxis:    s.direction == DirectionView,
	}, true
}

// resultAxis is the axis reported to the host: the unrotated local axis for
// X/Y/Z so the orchestrator can re-orient it per target, and the world space
// view normal for the view ring.
func (s *rotationSubGizmo) resultAxis() mgl64.Vec3 {
	if s.direction == DirectionView {
		return s.normal()
	}
	return s.localNormal()
}

func (s *rotationSubGizmo) draw() DrawData {
	p := newPainter(&s.cfg)
	color := handleColor(&s.cfg, s.direction, s.highlighted())

	normal := s.normal()
	tangent := normalizeOrZero(perpendicular(normal))
	bitangent := normal.Cross(tangent)
	origin := s.cfg.translation
	radius := s.arcRadius()

	p.strokeCircle3D(origin, tangent, bitangent, radius, s.cfg.Visuals.StrokeWidth, color)

	if s.active && s.startDir.Len() > 0 {
		// Start and current spokes of the drag.
		p.strokeLine3D(origin, origin.Add(s.startDir.Mul(radius)), s.cfg.Visuals.StrokeWidth, color)
		rot := mgl64.QuatRotate(s.lastTotalAngle, normal)
		cur := rot.Rotate(s.startDir)
		p.strokeLine3D(origin, origin.Add(cur.Mul(radius)), s.cfg.Visuals.StrokeWidth, color)
	}
	return p.finish()
}

// perpendicular returns an arbitrary vector orthogonal to v.
func perpendicular(v mgl64.Vec3) mgl64.Vec3 {
	ref := mgl64.Vec3{0, 1, 0}
	if math.Abs(v.Dot(ref)) > 0.99 {
		ref = mgl64.Vec3{1, 0, 0}
	}
	return v.Cross(ref)
}
