package raster

import (
	"image"
	"image/color"
	"sort"
	"strconv"

	"skelpose/internal/mathutil"
	"skelpose/internal/postprocess"
	"skelpose/internal/skeleton"
)

// Style controls how a skeleton preview is drawn.
type Style struct {
	Size        int     // output edge in pixels
	Supersample int     // render scale before downsampling
	LineWidth   float64 // bone stroke width at output scale
	JointRadius float64 // joint marker radius at output scale
	Labels      bool    // draw joint indices

	Background color.NRGBA
	Bone       color.NRGBA
	Joint      color.NRGBA
	Label      color.NRGBA
}

// DefaultStyle returns the preview style used when no config overrides it.
func DefaultStyle() Style {
	return Style{
		Size:        512,
		Supersample: 2,
		LineWidth:   2,
		JointRadius: 3,
		Background:  color.NRGBA{24, 26, 32, 255},
		Bone:        color.NRGBA{220, 224, 232, 255},
		Joint:       color.NRGBA{255, 150, 40, 255},
		Label:       color.NRGBA{140, 200, 255, 255},
	}
}

type bone struct {
	a, b  mathutil.Vec3
	depth float64
}

// RenderPose draws the bones and joints of a global pose seen through view.
// Bones further from the camera are drawn first and dimmed.
func RenderPose(global skeleton.Pose, parents skeleton.Parents, view mathutil.Mat3, st Style) (*image.NRGBA, error) {
	segments, err := skeleton.ExtractBones(global, parents)
	if err != nil {
		return nil, err
	}

	ss := st.Supersample
	if ss < 1 {
		ss = 1
	}
	renderSize := st.Size * ss

	joints := make([]mathutil.Vec3, 0, global.Len())
	for _, j := range global.All() {
		joints = append(joints, view.MulVec3(j.Position))
	}

	bones := make([]bone, 0, len(segments)/2)
	for i := 0; i+1 < len(segments); i += 2 {
		a, b := view.MulVec3(segments[i]), view.MulVec3(segments[i+1])
		bones = append(bones, bone{a: a, b: b, depth: (a[2] + b[2]) / 2})
	}
	// Larger z is nearer the viewer.
	sort.SliceStable(bones, func(i, j int) bool { return bones[i].depth < bones[j].depth })

	c := NewCanvas(renderSize, st.Background)
	margin := int(16+st.JointRadius) * ss
	c.Fit(joints, margin)

	near, far := depthRange(joints)
	var br Brush
	for _, b := range bones {
		x0, y0 := c.Project(b.a)
		x1, y1 := c.Project(b.b)
		col := depthCue(st.Bone, b.depth, near, far)
		br.Segment(c.Img, x0, y0, x1, y1, st.LineWidth*float64(ss), col)
	}
	for _, p := range joints {
		x, y := c.Project(p)
		br.Disc(c.Img, x, y, st.JointRadius*float64(ss), depthCue(st.Joint, p[2], near, far))
	}

	img := c.Img
	if ss > 1 {
		img = postprocess.Downsample(img, st.Size)
	}

	if st.Labels {
		for i, p := range joints {
			x, y := c.Project(p)
			DrawLabel(img, int(x)/ss+int(st.JointRadius)+1, int(y)/ss, strconv.Itoa(i), st.Label)
		}
	}

	return img, nil
}

func depthRange(points []mathutil.Vec3) (near, far float64) {
	if len(points) == 0 {
		return 0, 0
	}
	near, far = points[0][2], points[0][2]
	for _, p := range points[1:] {
		if p[2] > near {
			near = p[2]
		}
		if p[2] < far {
			far = p[2]
		}
	}
	return near, far
}

// depthCue darkens c linearly down to 55% at the far end of the depth range.
func depthCue(c color.NRGBA, z, near, far float64) color.NRGBA {
	if near-far < 1e-9 {
		return c
	}
	t := (near - z) / (near - far)
	k := 1 - 0.45*t
	return color.NRGBA{
		R: uint8(float64(c.R)*k + 0.5),
		G: uint8(float64(c.G)*k + 0.5),
		B: uint8(float64(c.B)*k + 0.5),
		A: c.A,
	}
}
