package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"skelpose/internal/mathutil"
	"skelpose/internal/output"
	"skelpose/internal/raster"
)

// Config holds output paths and preview render settings.
type Config struct {
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	Format    string `json:"format" yaml:"format"`

	// Render settings
	RenderSize  int      `json:"render_size" yaml:"render_size"`
	Supersample int      `json:"supersample" yaml:"supersample"`
	LineWidth   float64  `json:"line_width" yaml:"line_width"`
	JointRadius float64  `json:"joint_radius" yaml:"joint_radius"`
	Yaw         *float64 `json:"yaw" yaml:"yaw"`     // degrees; nil means default
	Pitch       *float64 `json:"pitch" yaml:"pitch"` // degrees; nil means default
	Labels      bool     `json:"labels" yaml:"labels"`

	// Colors as "#rrggbb" or "#rrggbbaa"
	Background string `json:"background" yaml:"background"`
	BoneColor  string `json:"bone_color" yaml:"bone_color"`
	JointColor string `json:"joint_color" yaml:"joint_color"`

	Workers int `json:"workers" yaml:"workers"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Format    string
	Size      int
	Workers   int
	Labels    bool
}

// Resolve applies CLI flags and fills in defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Labels {
		c.Labels = true
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.Format == "" {
		c.Format = string(output.WebP)
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.LineWidth <= 0 {
		c.LineWidth = 2
	}
	if c.JointRadius <= 0 {
		c.JointRadius = 3
	}
	if c.Yaw == nil {
		c.Yaw = ptr(30.0)
	}
	if c.Pitch == nil {
		c.Pitch = ptr(-15.0)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// View returns the camera rotation for the configured yaw and pitch.
func (c *Config) View() mathutil.Mat3 {
	var yaw, pitch float64
	if c.Yaw != nil {
		yaw = *c.Yaw
	}
	if c.Pitch != nil {
		pitch = *c.Pitch
	}
	return mathutil.OrbitView(yaw, pitch)
}

func ptr[T any](v T) *T {
	return &v
}

// Style converts the render settings to a raster style. Colors that are
// empty keep the default style's colors.
func (c *Config) Style() (raster.Style, error) {
	st := raster.DefaultStyle()
	st.Size = c.RenderSize
	st.Supersample = c.Supersample
	st.LineWidth = c.LineWidth
	st.JointRadius = c.JointRadius
	st.Labels = c.Labels

	for _, f := range []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"background", c.Background, &st.Background},
		{"bone_color", c.BoneColor, &st.Bone},
		{"joint_color", c.JointColor, &st.Joint},
	} {
		if f.hex == "" {
			continue
		}
		col, err := ParseColor(f.hex)
		if err != nil {
			return raster.Style{}, fmt.Errorf("config: %s: %w", f.name, err)
		}
		*f.dst = col
	}
	return st, nil
}

// ParseColor reads "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("bad color %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
