package gizmo

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a scale/rotation/translation triple. It is a plain value:
// targets are passed in and handed back every frame, the gizmo never
// retains them.
type Transform struct {
	Scale       mgl64.Vec3
	Rotation    mgl64.Quat
	Translation mgl64.Vec3
}

// IdentityTransform returns a transform with unit scale, identity rotation
// and zero translation.
func IdentityTransform() Transform {
	return Transform{
		Scale:    mgl64.Vec3{1, 1, 1},
		Rotation: mgl64.QuatIdent(),
	}
}

// NewTransform builds a transform from explicit components.
func NewTransform(scale mgl64.Vec3, rotation mgl64.Quat, translation mgl64.Vec3) Transform {
	return Transform{Scale: scale, Rotation: rotation, Translation: translation}
}

// Mat4 composes the transform into a model matrix, scale applied first.
func (t Transform) Mat4() mgl64.Mat4 {
	translate := mgl64.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	scale := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}
