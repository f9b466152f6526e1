package skeleton

import (
	"fmt"
	"iter"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Pose is an ordered sequence of joints. Index i identifies a joint and must
// match the indexing of the parent table used with it.
//
// A copied Pose shares its joints with the original for Set and Ref; use
// Clone for an independent copy.
type Pose struct {
	joints []Joint
}

// NewPose returns a pose holding a copy of joints.
func NewPose(joints ...Joint) Pose {
	p := Pose{joints: make([]Joint, 0, len(joints))}
	p.joints = append(p.joints, joints...)
	return p
}

// Clone returns a pose that shares no storage with p.
func (p Pose) Clone() Pose {
	return NewPose(p.joints...)
}

func newPoseCap(n int) Pose {
	return Pose{joints: make([]Joint, 0, n)}
}

// Len returns the number of joints.
func (p Pose) Len() int {
	return len(p.joints)
}

func (p Pose) check(i int) error {
	if i < 0 || i >= len(p.joints) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, pose has %d joints", i, len(p.joints))
	}
	return nil
}

// At returns the joint at index i.
func (p Pose) At(i int) (Joint, error) {
	if err := p.check(i); err != nil {
		return Joint{}, err
	}
	return p.joints[i], nil
}

// Ref returns a pointer to the joint at index i for in-place edits.
// The pointer is invalidated by Append and Clear.
func (p *Pose) Ref(i int) (*Joint, error) {
	if err := p.check(i); err != nil {
		return nil, err
	}
	return &p.joints[i], nil
}

// Set replaces the joint at index i.
func (p *Pose) Set(i int, j Joint) error {
	if err := p.check(i); err != nil {
		return err
	}
	p.joints[i] = j
	return nil
}

// Append adds joints to the end of the pose.
func (p *Pose) Append(j ...Joint) {
	p.joints = append(p.joints, j...)
}

// Clear removes every joint. The backing array is released, so copies of
// the pose keep their joints.
func (p *Pose) Clear() {
	p.joints = nil
}

// All yields every joint with its index.
func (p Pose) All() iter.Seq2[int, Joint] {
	return func(yield func(int, Joint) bool) {
		for i, j := range p.joints {
			if !yield(i, j) {
				return
			}
		}
	}
}

// Refs yields a pointer to every joint, for in-place edits.
func (p *Pose) Refs() iter.Seq2[int, *Joint] {
	return func(yield func(int, *Joint) bool) {
		for i := range p.joints {
			if !yield(i, &p.joints[i]) {
				return
			}
		}
	}
}

// Joints returns a copy of the joints.
func (p Pose) Joints() []Joint {
	out := make([]Joint, len(p.joints))
	copy(out, p.joints)
	return out
}

// Matrices returns every joint as a 4×4 affine matrix, in index order.
func (p Pose) Matrices() []mgl64.Mat4 {
	out := make([]mgl64.Mat4, len(p.joints))
	for i, j := range p.joints {
		out[i] = j.Matrix()
	}
	return out
}

// String prints one "position ; orientation" line per joint.
func (p Pose) String() string {
	var b strings.Builder
	for _, j := range p.joints {
		fmt.Fprintf(&b, "%v ; %v\n", j.Position, j.Orientation)
	}
	return b.String()
}
