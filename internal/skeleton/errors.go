package skeleton

import "github.com/pkg/errors"

var (
	// ErrIndexOutOfRange is returned when a joint index is negative or past the end of a pose.
	ErrIndexOutOfRange = errors.New("joint index out of range")

	// ErrSizeMismatch is returned when a pose and a parent table, or two poses, differ in size.
	ErrSizeMismatch = errors.New("size mismatch")
)

func sizeMismatch(what string, a, b int) error {
	return errors.Wrapf(ErrSizeMismatch, "%s: %d vs %d joints", what, a, b)
}
