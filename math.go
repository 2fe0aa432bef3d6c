package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is a viewport rectangle in logical pixels.
type Rect struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{Min: mgl64.Vec2{minX, minY}, Max: mgl64.Vec2{maxX, maxY}}
}

func (r Rect) Width() float64  { return r.Max.X() - r.Min.X() }
func (r Rect) Height() float64 { return r.Max.Y() - r.Min.Y() }

func (r Rect) Center() mgl64.Vec2 {
	return mgl64.Vec2{(r.Min.X() + r.Max.X()) * 0.5, (r.Min.Y() + r.Max.Y()) * 0.5}
}

// IsFinite reports whether every coordinate is a finite number.
// A degenerate viewport disables both interaction and drawing.
func (r Rect) IsFinite() bool {
	for _, v := range []float64{r.Min.X(), r.Min.Y(), r.Max.X(), r.Max.Y()} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Ray is a world space ray cast from the pointer position.
type Ray struct {
	ScreenPos mgl64.Vec2
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// mat4FromRowMajor builds an mgl64 matrix (column-major storage) from a
// row-major flat array, the layout used for the public config matrices.
func mat4FromRowMajor(m [16]float64) mgl64.Mat4 {
	var out mgl64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[col*4+row] = m[row*4+col]
		}
	}
	return out
}

// RowMajor flattens a matrix into the row-major layout expected by
// GizmoConfig. Hosts working with mgl64 matrices can use this directly.
func RowMajor(m mgl64.Mat4) [16]float64 {
	var out [16]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}

// screenToWorld unprojects a screen position at the given NDC depth
// (-1 near plane, 1 far plane) using an inverse view-projection matrix.
func screenToWorld(viewport Rect, invViewProj mgl64.Mat4, screenPos mgl64.Vec2, z float64) mgl64.Vec3 {
	x := (screenPos.X()-viewport.Min.X())/viewport.Width()*2.0 - 1.0
	y := (screenPos.Y()-viewport.Min.Y())/viewport.Height()*2.0 - 1.0

	world := invViewProj.Mul4x1(mgl64.Vec4{x, -y, z, 1.0})
	if world.W() == 0 {
		return mgl64.Vec3{}
	}
	invW := 1.0 / world.W()
	return mgl64.Vec3{world.X() * invW, world.Y() * invW, world.Z() * invW}
}

// worldToScreen projects a world position into viewport coordinates.
// Returns false when the point is behind the projection (w too small).
func worldToScreen(viewport Rect, mvp mgl64.Mat4, pos mgl64.Vec3) (mgl64.Vec2, bool) {
	clip := mvp.Mul4x1(pos.Vec4(1.0))
	if clip.W() < 1e-10 {
		return mgl64.Vec2{}, false
	}
	invW := 1.0 / clip.W()
	x := clip.X() * invW
	y := -clip.Y() * invW

	return mgl64.Vec2{
		viewport.Min.X() + (x+1.0)*0.5*viewport.Width(),
		viewport.Min.Y() + (y+1.0)*0.5*viewport.Height(),
	}, true
}

// rayToRay returns the parameter along ray b of the point closest to ray a.
// Both directions must be unit length. Parallel rays yield zero.
func rayToRay(aOrigin, aDir, bOrigin, bDir mgl64.Vec3) float64 {
	b := aDir.Dot(bDir)
	w := aOrigin.Sub(bOrigin)
	d := aDir.Dot(w)
	e := bDir.Dot(w)
	denom := 1.0 - b*b
	if denom < 1e-10 {
		return 0.0
	}
	return (e - b*d) / denom
}

// segmentToSegment returns the normalized parameters of the closest points
// between segments a1-a2 and b1-b2.
func segmentToSegment(a1, a2, b1, b2 mgl64.Vec3) (float64, float64) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	la := da.Dot(da)
	lb := db.Dot(db)
	dd := da.Dot(db)
	d1 := a1.Sub(b1)
	d := da.Dot(d1)
	e := db.Dot(d1)

	n := la*lb - dd*dd

	var sn, tn float64
	sd := n
	td := n

	if n < 1e-10 {
		sn = 0.0
		sd = 1.0
		tn = e
		td = lb
	} else {
		sn = dd*e - lb*d
		tn = la*e - dd*d
		if sn < 0.0 {
			sn = 0.0
			tn = e
			td = lb
		} else if sn > sd {
			sn = sd
			tn = e + dd
			td = lb
		}
	}

	if tn < 0.0 {
		tn = 0.0
		if -d < 0.0 {
			sn = 0.0
		} else if -d > la {
			sn = sd
		} else {
			sn = -d
			sd = la
		}
	} else if tn > td {
		tn = td
		if -d+dd < 0.0 {
			sn = 0.0
		} else if -d+dd > la {
			sn = sd
		} else {
			sn = -d + dd
			sd = la
		}
	}

	ta := 0.0
	if math.Abs(sn) >= 1e-10 {
		ta = sn / sd
	}
	tb := 0.0
	if math.Abs(tn) >= 1e-10 {
		tb = tn / td
	}
	return ta, tb
}

// intersectPlane returns the parameter along the ray where it crosses the
// plane, or false for rays parallel to the plane or pointing away from it.
func intersectPlane(planeNormal, planeOrigin, rayOrigin, rayDir mgl64.Vec3) (float64, bool) {
	denom := planeNormal.Dot(rayDir)
	if math.Abs(denom) < 1e-10 {
		return 0, false
	}
	t := planeOrigin.Sub(rayOrigin).Dot(planeNormal) / denom
	if t < 0.0 {
		return 0, false
	}
	return t, true
}

// rayToPlaneOrigin intersects the ray with a plane and additionally returns
// the distance from the hit point to the plane origin. Misses report both
// values as +Inf so they always lose a closest-hit comparison.
func rayToPlaneOrigin(planeNormal, planeOrigin, rayOrigin, rayDir mgl64.Vec3) (float64, float64) {
	t, ok := intersectPlane(planeNormal, planeOrigin, rayOrigin, rayDir)
	if !ok {
		return math.Inf(1), math.Inf(1)
	}
	hit := rayOrigin.Add(rayDir.Mul(t))
	return t, hit.Sub(planeOrigin).Len()
}

// roundToInterval quantizes a value to the nearest multiple of interval.
func roundToInterval(value, interval float64) float64 {
	return math.Round(value/interval) * interval
}

// normalizeOrZero normalizes a vector, degenerating to the zero vector
// instead of producing NaN for zero-length input.
func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return v.Mul(1.0 / l)
}
