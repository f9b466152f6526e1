package config

import (
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skelpose/internal/mathutil"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.json", `{
		"output_dir": "out",
		"format": "tga",
		"render_size": 256,
		"pitch": 0,
		"bone_color": "#ff0000"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "tga", cfg.Format)
	assert.Equal(t, 256, cfg.RenderSize)
	require.NotNil(t, cfg.Pitch)
	assert.Equal(t, 0.0, *cfg.Pitch)
	assert.Nil(t, cfg.Yaw)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.yaml", `
output_dir: previews
supersample: 4
yaw: 90
labels: true
workers: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "previews", cfg.OutputDir)
	assert.Equal(t, 4, cfg.Supersample)
	require.NotNil(t, cfg.Yaw)
	assert.Equal(t, 90.0, *cfg.Yaw)
	assert.True(t, cfg.Labels)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	_, err = Load(writeFile(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Load(writeFile(t, "bad.yml", "render_size: [1, 2"))
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolveDefaults(t *testing.T) {
	t.Parallel()
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, "renders", cfg.OutputDir)
	assert.Equal(t, "webp", cfg.Format)
	assert.Equal(t, 512, cfg.RenderSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 2.0, cfg.LineWidth)
	assert.Equal(t, 3.0, cfg.JointRadius)
	assert.Equal(t, 30.0, *cfg.Yaw)
	assert.Equal(t, -15.0, *cfg.Pitch)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestResolveFlagsOverride(t *testing.T) {
	t.Parallel()
	zero := 0.0
	cfg := Config{OutputDir: "file", Format: "png", RenderSize: 128, Pitch: &zero}
	cfg.Resolve(Flags{OutputDir: "flag", Size: 64, Workers: 2, Labels: true})

	assert.Equal(t, "flag", cfg.OutputDir)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, 64, cfg.RenderSize)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Labels)
	// An explicit zero pitch survives Resolve.
	assert.Equal(t, 0.0, *cfg.Pitch)
}

func TestView(t *testing.T) {
	t.Parallel()
	yaw, pitch := 0.0, 0.0
	cfg := Config{Yaw: &yaw, Pitch: &pitch}
	assert.Equal(t, mathutil.Mat3Identity(), cfg.View())
}

func TestStyle(t *testing.T) {
	t.Parallel()
	cfg := Config{BoneColor: "#10203040", Background: "000000"}
	cfg.Resolve(Flags{Size: 100})

	st, err := cfg.Style()
	require.NoError(t, err)
	assert.Equal(t, 100, st.Size)
	assert.Equal(t, color.NRGBA{0x10, 0x20, 0x30, 0x40}, st.Bone)
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, st.Background)

	cfg.JointColor = "#zzz"
	_, err = cfg.Style()
	assert.ErrorContains(t, err, "joint_color")
}

func TestParseColor(t *testing.T) {
	t.Parallel()
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 128, 0, 255}, c)

	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
