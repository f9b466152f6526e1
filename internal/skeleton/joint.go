package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"skelpose/internal/mathutil"
)

// Joint is a rigid transform of one skeletal frame, relative to its parent
// (local pose) or to the root frame (global pose).
type Joint struct {
	Position    mathutil.Vec3
	Orientation mathutil.Quat
}

// NewJoint builds a joint from a position and orientation.
func NewJoint(position mathutil.Vec3, orientation mathutil.Quat) Joint {
	return Joint{Position: position, Orientation: orientation}
}

// IdentityJoint has no translation and no rotation.
func IdentityJoint() Joint {
	return Joint{Orientation: mathutil.QuatIdentity()}
}

// Apply transforms point p by the joint: rotate, then translate.
func (j Joint) Apply(p mathutil.Vec3) mathutil.Vec3 {
	return j.Orientation.Rotate(p).Add(j.Position)
}

// Matrix returns the joint as a 4×4 column-major affine matrix.
func (j Joint) Matrix() mgl64.Mat4 {
	t := mgl64.Translate3D(j.Position[0], j.Position[1], j.Position[2])
	return t.Mul4(j.Orientation.MGL().Mat4())
}
