package mathutil

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"
)

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float64

// QuatIdentity is the rotation that leaves every vector unchanged.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

func (q Quat) X() float64 { return q[0] }
func (q Quat) Y() float64 { return q[1] }
func (q Quat) Z() float64 { return q[2] }
func (q Quat) W() float64 { return q[3] }

func (q Quat) number() quat.Number {
	return quat.Number{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]}
}

func fromNumber(n quat.Number) Quat {
	return Quat{n.Imag, n.Jmag, n.Kmag, n.Real}
}

// Mul returns the Hamilton product q·r. Applied to a vector, r acts first.
func (q Quat) Mul(r Quat) Quat {
	return fromNumber(quat.Mul(q.number(), r.number()))
}

// Conj returns the conjugate, which is the inverse of a unit quaternion.
func (q Quat) Conj() Quat {
	return fromNumber(quat.Conj(q.number()))
}

func (q Quat) Neg() Quat {
	return Quat{-q[0], -q[1], -q[2], -q[3]}
}

func (q Quat) Dot(r Quat) float64 {
	return q[0]*r[0] + q[1]*r[1] + q[2]*r[2] + q[3]*r[3]
}

func (q Quat) Len() float64 {
	return quat.Abs(q.number())
}

// Normalize returns q scaled to unit length. A degenerate quaternion
// normalizes to the identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l < 1e-12 || math.IsNaN(l) {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// Rotate applies the unit quaternion q to v.
// Expanded form of q·v·q*: t = 2(u×v), v' = v + w·t + u×t.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q[0], q[1], q[2]}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q[3])).Add(u.Cross(t))
}

// Slerp interpolates between unit quaternions a and b along the shorter arc.
// t outside [0,1] extrapolates.
func Slerp(a, b Quat, t float64) Quat {
	if a.Dot(b) < 0 {
		b = b.Neg()
	}
	return FromMGL(mgl64.QuatSlerp(a.MGL(), b.MGL(), t))
}

// EqualRotation reports whether q and r describe the same rotation within tol,
// treating q and -q as equal.
func (q Quat) EqualRotation(r Quat, tol float64) bool {
	n := r.Neg()
	return floats.EqualApprox(q[:], r[:], tol) || floats.EqualApprox(q[:], n[:], tol)
}

// MGL converts q to the mathgl representation.
func (q Quat) MGL() mgl64.Quat {
	return mgl64.Quat{W: q[3], V: mgl64.Vec3{q[0], q[1], q[2]}}
}

func FromMGL(q mgl64.Quat) Quat {
	return Quat{q.V[0], q.V[1], q.V[2], q.W}
}

func (q Quat) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", q[0], q[1], q[2], q[3])
}

// AxisAngle builds the unit quaternion rotating by angle radians around axis.
func AxisAngle(axis Vec3, angle float64) Quat {
	n := axis.Normalize()
	s, c := math.Sin(angle*0.5), math.Cos(angle*0.5)
	return Quat{n[0] * s, n[1] * s, n[2] * s, c}
}

// Mat3 returns the row-major rotation matrix of the unit quaternion q.
func (q Quat) Mat3() Mat3 {
	// mathgl is column-major; the transpose is our row-major layout.
	return Mat3(q.MGL().Mat4().Mat3().Transpose())
}
