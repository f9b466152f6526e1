package skeleton

import "github.com/pkg/errors"

// Parents maps each joint index to the index of its parent joint.
// Entry 0 belongs to the root and is ignored (conventionally -1).
type Parents []int

// Len returns the number of joints described by the table.
func (p Parents) Len() int {
	return len(p)
}

// Validate checks that every non-root joint has a parent that precedes it,
// which is what single-pass propagation relies on.
func (p Parents) Validate() error {
	for k := 1; k < len(p); k++ {
		if p[k] < 0 || p[k] >= k {
			return errors.Wrapf(ErrIndexOutOfRange, "joint %d: parent %d must be in [0,%d)", k, p[k], k)
		}
	}
	return nil
}

// Depths returns the distance of every joint from the root.
func (p Parents) Depths() ([]int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	depths := make([]int, len(p))
	for k := 1; k < len(p); k++ {
		depths[k] = depths[p[k]] + 1
	}
	return depths, nil
}

// Children returns the direct children of joint i, in index order.
func (p Parents) Children(i int) []int {
	var out []int
	for k := 1; k < len(p); k++ {
		if p[k] == i {
			out = append(out, k)
		}
	}
	return out
}
