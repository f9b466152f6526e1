package skeleton

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skelpose/internal/mathutil"
)

func TestPoseAccess(t *testing.T) {
	t.Parallel()
	var p Pose
	assert.Equal(t, 0, p.Len())

	p.Append(IdentityJoint(), NewJoint(mathutil.Vec3{1, 2, 3}, mathutil.QuatIdentity()))
	require.Equal(t, 2, p.Len())

	j, err := p.At(1)
	require.NoError(t, err)
	assert.Equal(t, mathutil.Vec3{1, 2, 3}, j.Position)

	for _, i := range []int{-1, 2, 100} {
		_, err := p.At(i)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "index %d: %v", i, err)
		assert.True(t, errors.Is(p.Set(i, j), ErrIndexOutOfRange))
		ref, err := p.Ref(i)
		assert.Nil(t, ref)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	}

	ref, err := p.Ref(0)
	require.NoError(t, err)
	ref.Position = mathutil.Vec3{9, 9, 9}
	j, _ = p.At(0)
	assert.Equal(t, mathutil.Vec3{9, 9, 9}, j.Position)

	require.NoError(t, p.Set(1, IdentityJoint()))
	j, _ = p.At(1)
	assert.Equal(t, IdentityJoint(), j)

	p.Clear()
	assert.Equal(t, 0, p.Len())
	_, err = p.At(0)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestPoseCopyClearKeepsOriginal(t *testing.T) {
	t.Parallel()
	orig := NewPose(IdentityJoint(), IdentityJoint())
	cp := orig
	cp.Clear()
	cp.Append(NewJoint(mathutil.Vec3{7, 7, 7}, mathutil.QuatIdentity()))

	require.Equal(t, 2, orig.Len())
	j, err := orig.At(0)
	require.NoError(t, err)
	assert.Equal(t, IdentityJoint(), j)
	assert.Equal(t, 1, cp.Len())
}

func TestPoseClone(t *testing.T) {
	t.Parallel()
	orig := NewPose(IdentityJoint())
	cl := orig.Clone()
	require.NoError(t, cl.Set(0, NewJoint(mathutil.Vec3{1, 0, 0}, mathutil.QuatIdentity())))

	j, _ := orig.At(0)
	assert.Equal(t, IdentityJoint(), j)
}

func TestPoseMethodsOnReturnedValues(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, NewPose(IdentityJoint()).Len())
	assert.Equal(t, 0, Inverse(Pose{}).Len())

	j, err := Inverse(NewPose(NewJoint(mathutil.Vec3{1, 2, 3}, mathutil.QuatIdentity()))).At(0)
	require.NoError(t, err)
	assert.Equal(t, mathutil.Vec3{-1, -2, -3}, j.Position)

	assert.Len(t, NewPose(IdentityJoint(), IdentityJoint()).Matrices(), 2)
	assert.Len(t, NewPose(IdentityJoint()).Joints(), 1)
	assert.Equal(t, "[0 0 0] ; (0, 0, 0, 1)\n", NewPose(IdentityJoint()).String())
	n := 0
	for range NewPose(IdentityJoint(), IdentityJoint()).All() {
		n++
	}
	assert.Equal(t, 2, n)
}

func TestPoseIteration(t *testing.T) {
	t.Parallel()
	p := NewPose(
		NewJoint(mathutil.Vec3{0, 0, 0}, mathutil.QuatIdentity()),
		NewJoint(mathutil.Vec3{1, 0, 0}, mathutil.QuatIdentity()),
		NewJoint(mathutil.Vec3{2, 0, 0}, mathutil.QuatIdentity()),
	)

	// Restartable.
	for range 2 {
		var xs []float64
		for i, j := range p.All() {
			assert.Equal(t, float64(i), j.Position[0])
			xs = append(xs, j.Position[0])
		}
		assert.Equal(t, []float64{0, 1, 2}, xs)
	}

	for _, j := range p.Refs() {
		j.Position[1] = 5
	}
	for _, j := range p.All() {
		assert.Equal(t, 5.0, j.Position[1])
	}

	// Early break.
	count := 0
	for range p.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestNewPoseCopies(t *testing.T) {
	t.Parallel()
	joints := []Joint{IdentityJoint()}
	p := NewPose(joints...)
	joints[0].Position = mathutil.Vec3{1, 1, 1}

	j, err := p.At(0)
	require.NoError(t, err)
	assert.Equal(t, mathutil.Vec3{}, j.Position)

	out := p.Joints()
	out[0].Position = mathutil.Vec3{2, 2, 2}
	j, _ = p.At(0)
	assert.Equal(t, mathutil.Vec3{}, j.Position)
}

func TestPoseString(t *testing.T) {
	t.Parallel()
	p := NewPose(NewJoint(mathutil.Vec3{1, 2, 3}, mathutil.QuatIdentity()))
	assert.Equal(t, "[1 2 3] ; (0, 0, 0, 1)\n", p.String())
}

func TestParentsValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		parents Parents
		ok      bool
	}{
		{"empty", Parents{}, true},
		{"root only", Parents{-1}, true},
		{"chain", Parents{-1, 0, 1, 2}, true},
		{"branching", Parents{-1, 0, 0, 1, 2}, true},
		{"self parent", Parents{-1, 1}, false},
		{"forward parent", Parents{-1, 2, 0}, false},
		{"negative", Parents{-1, 0, -3}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.parents.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrIndexOutOfRange), "%v", err)
			}
		})
	}
}

func TestParentsDepthsAndChildren(t *testing.T) {
	t.Parallel()
	parents := Parents{-1, 0, 1, 0, 3, 3}

	depths, err := parents.Depths()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 1, 2, 2}, depths)

	assert.Equal(t, []int{1, 3}, parents.Children(0))
	assert.Equal(t, []int{4, 5}, parents.Children(3))
	assert.Empty(t, parents.Children(5))

	_, err = Parents{-1, 1}.Depths()
	assert.Error(t, err)
}
