package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const arcSegments = 64

// painter3d projects world space handle geometry through the prepared
// view-projection matrix and tessellates it into viewport space triangles.
type painter3d struct {
	cfg  *PreparedConfig
	data DrawData
}

func newPainter(cfg *PreparedConfig) *painter3d {
	return &painter3d{cfg: cfg}
}

func (p *painter3d) screenPos(world mgl64.Vec3) (mgl64.Vec2, bool) {
	return worldToScreen(p.cfg.Viewport, p.cfg.viewProjection, world)
}

func (p *painter3d) vertex(pos mgl64.Vec2, color Color) uint32 {
	idx := uint32(len(p.data.Vertices))
	p.data.Vertices = append(p.data.Vertices, [2]float32{float32(pos.X()), float32(pos.Y())})
	p.data.Colors = append(p.data.Colors, color.linear())
	return idx
}

func (p *painter3d) triangle(a, b, c uint32) {
	p.data.Indices = append(p.data.Indices, a, b, c)
}

// strokeSegment emits one stroked line segment as a screen space quad.
func (p *painter3d) strokeSegment(a, b mgl64.Vec2, width float64, color Color) {
	dir := b.Sub(a)
	l := dir.Len()
	if l < 1e-6 {
		return
	}
	dir = dir.Mul(1.0 / l)
	n := mgl64.Vec2{-dir.Y(), dir.X()}.Mul(width * 0.5)

	i0 := p.vertex(a.Sub(n), color)
	i1 := p.vertex(a.Add(n), color)
	i2 := p.vertex(b.Add(n), color)
	i3 := p.vertex(b.Sub(n), color)
	p.triangle(i0, i1, i2)
	p.triangle(i0, i2, i3)
}

// strokeLine3D strokes a world space segment.
func (p *painter3d) strokeLine3D(from, to mgl64.Vec3, width float64, color Color) {
	a, okA := p.screenPos(from)
	b, okB := p.screenPos(to)
	if !okA || !okB {
		return
	}
	p.strokeSegment(a, b, width, color)
}

// strokePolyline3D strokes consecutive world space points.
func (p *painter3d) strokePolyline3D(points []mgl64.Vec3, width float64, color Color) {
	for i := 0; i+1 < len(points); i++ {
		p.strokeLine3D(points[i], points[i+1], width, color)
	}
}

// circlePoints samples a circle lying in the plane spanned by two world
// space tangents.
func circlePoints(center, tangent, bitangent mgl64.Vec3, radius float64, startAngle, endAngle float64, segments int) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := startAngle + (endAngle-startAngle)*float64(i)/float64(segments)
		sin, cos := math.Sincos(angle)
		offset := tangent.Mul(cos * radius).Add(bitangent.Mul(sin * radius))
		points = append(points, center.Add(offset))
	}
	return points
}

// strokeCircle3D strokes a full circle in the given plane.
func (p *painter3d) strokeCircle3D(center, tangent, bitangent mgl64.Vec3, radius, width float64, color Color) {
	p.strokePolyline3D(circlePoints(center, tangent, bitangent, radius, 0, 2*math.Pi, arcSegments), width, color)
}

// fillPolygon3D fills a convex world space polygon as a triangle fan.
func (p *painter3d) fillPolygon3D(points []mgl64.Vec3, color Color) {
	if len(points) < 3 {
		return
	}
	screen := make([]mgl64.Vec2, 0, len(points))
	for _, pt := range points {
		s, ok := p.screenPos(pt)
		if !ok {
			return
		}
		screen = append(screen, s)
	}
	first := p.vertex(screen[0], color)
	prev := p.vertex(screen[1], color)
	for i := 2; i < len(screen); i++ {
		cur := p.vertex(screen[i], color)
		p.triangle(first, prev, cur)
		prev = cur
	}
}

// fillCircle3D fills a disc in the given plane.
func (p *painter3d) fillCircle3D(center, tangent, bitangent mgl64.Vec3, radius float64, color Color) {
	p.fillPolygon3D(circlePoints(center, tangent, bitangent, radius, 0, 2*math.Pi, arcSegments), color)
}

// arrowhead3D fills a screen space arrow head at tip, pointing away from from.
func (p *painter3d) arrowhead3D(from, tip mgl64.Vec3, widthPx float64, color Color) {
	a, okA := p.screenPos(from)
	b, okB := p.screenPos(tip)
	if !okA || !okB {
		return
	}
	dir := b.Sub(a)
	l := dir.Len()
	if l < 1e-6 {
		return
	}
	dir = dir.Mul(1.0 / l)
	n := mgl64.Vec2{-dir.Y(), dir.X()}.Mul(widthPx * 0.5)

	i0 := p.vertex(a.Sub(n), color)
	i1 := p.vertex(a.Add(n), color)
	i2 := p.vertex(b, color)
	p.triangle(i0, i1, i2)
}

// quad3D fills a world space quad.
func (p *painter3d) quad3D(corners [4]mgl64.Vec3, color Color) {
	p.fillPolygon3D(corners[:], color)
}

func (p *painter3d) finish() DrawData {
	return p.data
}

// handleColor resolves the draw color for a subgizmo direction, applying the
// hover highlight rules from the visuals.
func handleColor(cfg *PreparedConfig, direction GizmoDirection, highlighted bool) Color {
	visuals := cfg.Visuals

	var color Color
	switch direction {
	case DirectionX:
		color = visuals.XColor
	case DirectionY:
		color = visuals.YColor
	case DirectionZ:
		color = visuals.ZColor
	default:
		color = visuals.SColor
	}

	if highlighted && visuals.HighlightColor != nil {
		color = *visuals.HighlightColor
	}

	alpha := visuals.InactiveAlpha
	if highlighted {
		alpha = visuals.HighlightAlpha
	}
	return color.withAlpha(alpha)
}
