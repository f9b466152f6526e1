package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"skelpose/internal/mathutil"
)

// LocalToGlobal expresses every joint of a local pose in the root frame.
//
// Joints are resolved in index order: each parent precedes its children, so the
// parent's global transform is always ready when a child is reached. A parent
// index that breaks that ordering is reported as ErrIndexOutOfRange.
func LocalToGlobal(local Pose, parents Parents) (Pose, error) {
	n := local.Len()
	if n != parents.Len() {
		return Pose{}, sizeMismatch("local to global: pose vs parents", n, parents.Len())
	}

	global := newPoseCap(n)
	if n == 0 {
		return global, nil
	}

	// Root frame is its own global frame.
	global.Append(local.joints[0])

	for k := 1; k < n; k++ {
		parent, err := global.At(parents[k])
		if err != nil {
			return Pose{}, err
		}
		child := local.joints[k]

		global.Append(Joint{
			Position:    parent.Orientation.Rotate(child.Position).Add(parent.Position),
			Orientation: parent.Orientation.Mul(child.Orientation),
		})
	}

	return global, nil
}

// Inverse returns the inverse rigid transform of every joint.
func Inverse(pose Pose) Pose {
	out := newPoseCap(pose.Len())
	for _, j := range pose.All() {
		qInv := j.Orientation.Conj()
		out.Append(Joint{
			Position:    qInv.Rotate(j.Position.Neg()),
			Orientation: qInv,
		})
	}
	return out
}

// Multiply composes the poses joint by joint: joint k of a followed by joint k of b.
func Multiply(a, b Pose) (Pose, error) {
	if a.Len() != b.Len() {
		return Pose{}, sizeMismatch("multiply", a.Len(), b.Len())
	}

	out := newPoseCap(a.Len())
	for k, j1 := range a.All() {
		j2 := b.joints[k]
		out.Append(Joint{
			Position:    j1.Position.Add(j1.Orientation.Rotate(j2.Position)),
			Orientation: j1.Orientation.Mul(j2.Orientation),
		})
	}
	return out, nil
}

// ExtractBones returns one (parent, child) position pair per non-root joint,
// flattened: 2·(N-1) points for N joints.
func ExtractBones(global Pose, parents Parents) ([]mathutil.Vec3, error) {
	n := global.Len()
	if n != parents.Len() {
		return nil, sizeMismatch("extract bones: pose vs parents", n, parents.Len())
	}
	if n < 2 {
		return nil, nil
	}

	points := make([]mathutil.Vec3, 0, 2*(n-1))
	for k := 1; k < n; k++ {
		parent, err := global.At(parents[k])
		if err != nil {
			return nil, err
		}
		points = append(points, parent.Position, global.joints[k].Position)
	}
	return points, nil
}

// Interpolate blends two poses: positions linearly, orientations by slerp
// along the shorter arc. alpha 0 gives a, alpha 1 gives b; values outside
// [0,1] extrapolate. Endpoint orientations match up to quaternion sign: when
// dot(a, b) < 0, alpha 1 yields -b, which is the same rotation.
func Interpolate(a, b Pose, alpha float64) (Pose, error) {
	if a.Len() != b.Len() {
		return Pose{}, sizeMismatch("interpolate", a.Len(), b.Len())
	}

	out := newPoseCap(a.Len())
	for k, j1 := range a.All() {
		j2 := b.joints[k]
		out.Append(Joint{
			Position:    mathutil.Lerp(j1.Position, j2.Position, alpha),
			Orientation: mathutil.Slerp(j1.Orientation, j2.Orientation, alpha),
		})
	}
	return out, nil
}

// SkinningMatrices returns current·bind⁻¹ for every joint, both poses global.
// The result maps bind-pose vertices to their current position.
func SkinningMatrices(current, bind Pose) ([]mgl64.Mat4, error) {
	skin, err := Multiply(current, Inverse(bind))
	if err != nil {
		return nil, err
	}
	return skin.Matrices(), nil
}
