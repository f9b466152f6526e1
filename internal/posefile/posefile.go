// Package posefile reads and writes local poses as plain text.
//
// One joint per line, eight whitespace-separated numbers:
//
//	parent_index pos_x pos_y pos_z quat_x quat_y quat_z quat_w
//
// Blank lines and lines starting with '#' are ignored. Joints are numbered in
// file order.
package posefile

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"skelpose/internal/mathutil"
	"skelpose/internal/skeleton"
)

const fieldsPerLine = 8

// ErrMalformed is returned for a data line that is not eight numbers.
var ErrMalformed = errors.New("malformed pose line")

// FileError reports a pose file that could not be opened or created.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return "posefile: cannot " + e.Op + " file " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Load reads the pose file at path.
func Load(path string) (skeleton.Pose, skeleton.Parents, error) {
	f, err := os.Open(path)
	if err != nil {
		return skeleton.Pose{}, nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	pose, parents, err := Read(f)
	if err != nil {
		return skeleton.Pose{}, nil, errors.Wrapf(err, "posefile: load %s", path)
	}
	return pose, parents, nil
}

// Read parses a pose from r. Orientations are normalized to unit length.
// Nothing is returned unless the whole input parses.
func Read(r io.Reader) (skeleton.Pose, skeleton.Parents, error) {
	var (
		pose    skeleton.Pose
		parents skeleton.Parents
	)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		parent, joint, err := parseLine(line)
		if err != nil {
			return skeleton.Pose{}, nil, errors.Wrapf(err, "line %d", lineNo)
		}
		pose.Append(joint)
		parents = append(parents, parent)
	}
	if err := sc.Err(); err != nil {
		return skeleton.Pose{}, nil, errors.Wrap(err, "posefile: read")
	}

	return pose, parents, nil
}

func parseLine(line string) (int, skeleton.Joint, error) {
	fields := strings.Fields(line)
	if len(fields) != fieldsPerLine {
		return 0, skeleton.Joint{}, errors.Wrapf(ErrMalformed, "%d fields, want %d", len(fields), fieldsPerLine)
	}

	parent, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, skeleton.Joint{}, errors.Wrapf(ErrMalformed, "parent index %q", fields[0])
	}

	var v [fieldsPerLine - 1]float64
	for i, s := range fields[1:] {
		v[i], err = strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return 0, skeleton.Joint{}, errors.Wrapf(ErrMalformed, "field %d %q", i+2, s)
		}
	}

	joint := skeleton.Joint{
		Position:    mathutil.Vec3{v[0], v[1], v[2]},
		Orientation: mathutil.Quat{v[3], v[4], v[5], v[6]}.Normalize(),
	}
	return parent, joint, nil
}

// Save writes pose and its parent table to path. The sizes are checked
// before the file is created.
func Save(path string, pose skeleton.Pose, parents skeleton.Parents) error {
	if pose.Len() != parents.Len() {
		return sizeMismatch(pose, parents)
	}

	f, err := os.Create(path)
	if err != nil {
		return &FileError{Op: "create", Path: path, Err: err}
	}

	if err := Write(f, pose, parents); err != nil {
		f.Close()
		return errors.Wrapf(err, "posefile: save %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "posefile: close %s", path)
	}
	return nil
}

// Write encodes pose to w, one joint per line, using the shortest
// representation that parses back to the same float.
func Write(w io.Writer, pose skeleton.Pose, parents skeleton.Parents) error {
	if pose.Len() != parents.Len() {
		return sizeMismatch(pose, parents)
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 128)
	for k, j := range pose.All() {
		buf = strconv.AppendInt(buf[:0], int64(parents[k]), 10)
		for _, f := range [...]float64{
			j.Position[0], j.Position[1], j.Position[2],
			j.Orientation.X(), j.Orientation.Y(), j.Orientation.Z(), j.Orientation.W(),
		} {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return errors.Wrap(err, "posefile: write")
		}
	}
	return errors.Wrap(bw.Flush(), "posefile: write")
}

func sizeMismatch(pose skeleton.Pose, parents skeleton.Parents) error {
	return errors.Wrapf(skeleton.ErrSizeMismatch, "posefile: pose has %d joints, parent table has %d", pose.Len(), parents.Len())
}
