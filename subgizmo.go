package gizmo

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// TransformKind distinguishes handles acting along an axis from handles
// acting in a plane.
type TransformKind int

const (
	KindAxis TransformKind = iota
	KindPlane
)

// subGizmo is one interactive primitive of the gizmo. The set of variants is
// closed: translation arrows and planes, scale arrows and planes, rotation
// arcs and the arcball.
type subGizmo interface {
	// id uniquely identifies the subgizmo instance within its gizmo.
	id() string
	// pick tests the pointer ray against the handle. It returns the ray
	// parameter of the closest valid hit, or false when the handle is not
	// under the pointer. Picking captures the drag reference state.
	pick(ray Ray) (float64, bool)
	// update advances the drag with the current pointer ray. It returns
	// false when the ray is degenerate this frame, which means no movement.
	update(ray Ray) (GizmoResult, bool)
	updateConfig(cfg PreparedConfig)
	setFocused(focused bool)
	setActive(active bool)
	isFocused() bool
	isActive() bool
	// draw emits the handle's viewport space geometry.
	draw() DrawData
}

// subGizmoBase carries the state shared by every variant: identity, the last
// received prepared config and the focused/active flags.
type subGizmoBase struct {
	uid       string
	direction GizmoDirection
	kind      TransformKind
	cfg       PreparedConfig
	focused   bool
	active    bool
}

func newSubGizmoBase(cfg PreparedConfig, direction GizmoDirection, kind TransformKind) subGizmoBase {
	return subGizmoBase{
		uid:       uuid.NewString(),
		direction: direction,
		kind:      kind,
		cfg:       cfg,
	}
}

func (s *subGizmoBase) id() string { return s.uid }

func (s *subGizmoBase) updateConfig(cfg PreparedConfig) { s.cfg = cfg }

func (s *subGizmoBase) setFocused(focused bool) { s.focused = focused }

func (s *subGizmoBase) setActive(active bool) { s.active = active }

func (s *subGizmoBase) isFocused() bool { return s.focused }

func (s *subGizmoBase) isActive() bool { return s.active }

// localNormal is the handle normal before any gizmo rotation is applied.
// The view direction points from the gizmo towards the camera.
func (s *subGizmoBase) localNormal() mgl64.Vec3 {
	switch s.direction {
	case DirectionX:
		return mgl64.Vec3{1, 0, 0}
	case DirectionY:
		return mgl64.Vec3{0, 1, 0}
	case DirectionZ:
		return mgl64.Vec3{0, 0, 1}
	default:
		forward := s.cfg.viewForward()
		if s.cfg.leftHanded {
			return forward
		}
		return forward.Mul(-1)
	}
}

// normal is the handle normal in world space, honoring local orientation.
func (s *subGizmoBase) normal() mgl64.Vec3 {
	normal := s.localNormal()
	if s.cfg.localSpace() && s.direction != DirectionView {
		normal = s.cfg.rotation.Rotate(normal)
	}
	return normal
}

// planeTangent and planeBitangent span the plane a plane-kind handle acts
// in. For axis directions the pair is the two remaining axes.
func (s *subGizmoBase) planeTangent() mgl64.Vec3 {
	var tangent mgl64.Vec3
	switch s.direction {
	case DirectionX:
		tangent = mgl64.Vec3{0, 0, 1}
	case DirectionY:
		tangent = mgl64.Vec3{1, 0, 0}
	case DirectionZ:
		tangent = mgl64.Vec3{0, 1, 0}
	default:
		return s.cfg.viewRight()
	}
	if s.cfg.localSpace() {
		tangent = s.cfg.rotation.Rotate(tangent)
	}
	return tangent
}

func (s *subGizmoBase) planeBitangent() mgl64.Vec3 {
	var bitangent mgl64.Vec3
	switch s.direction {
	case DirectionX:
		bitangent = mgl64.Vec3{0, 1, 0}
	case DirectionY:
		bitangent = mgl64.Vec3{0, 0, 1}
	case DirectionZ:
		bitangent = mgl64.Vec3{1, 0, 0}
	default:
		return s.cfg.viewUp()
	}
	if s.cfg.localSpace() {
		bitangent = s.cfg.rotation.Rotate(bitangent)
	}
	return bitangent
}

// planeOrigin is the world space center of a plane handle. Axis planes sit
// offset from the gizmo origin so they do not overlap the arrows.
func (s *subGizmoBase) planeOrigin() mgl64.Vec3 {
	origin := s.cfg.translation
	if s.direction == DirectionView {
		return origin
	}
	offset := s.planeTangent().Add(s.planeBitangent()).Mul(s.cfg.gizmoSizeWorld() * 0.5)
	return origin.Add(offset)
}

// planeSize is the half extent of a plane handle in world units.
func (s *subGizmoBase) planeSize() float64 {
	if s.direction == DirectionView {
		return s.cfg.gizmoSizeWorld() * 0.25
	}
	return s.cfg.gizmoSizeWorld() * 0.2
}

// screenDistanceToGizmo is the logical pixel distance between the pointer
// and the gizmo origin on screen.
func (s *subGizmoBase) screenDistanceToGizmo(ray Ray) (float64, bool) {
	gizmoPos, ok := worldToScreen(s.cfg.Viewport, s.cfg.mvp, mgl64.Vec3{})
	if !ok {
		return 0, false
	}
	return ray.ScreenPos.Sub(gizmoPos).Len(), true
}

func (s *subGizmoBase) highlighted() bool {
	return s.focused || s.active
}
