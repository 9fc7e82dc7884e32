package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// RenderConfig represents the render configuration.
// Zero-valued camera fields, empty vectors and nil pointers mean "use the scene's default".
type RenderConfig struct {
	Scene         string    `yaml:"scene" mapstructure:"scene"`
	Width         int       `yaml:"width,omitempty" mapstructure:"width"`
	AspectRatio   float64   `yaml:"aspect_ratio,omitempty" mapstructure:"aspect_ratio"`
	Samples       int       `yaml:"samples,omitempty" mapstructure:"samples"`
	MaxDepth      *int      `yaml:"max_depth,omitempty" mapstructure:"max_depth"`
	VFov          float64   `yaml:"vfov,omitempty" mapstructure:"vfov"`
	LookFrom      []float64 `yaml:"look_from,omitempty,flow" mapstructure:"look_from"`
	LookAt        []float64 `yaml:"look_at,omitempty,flow" mapstructure:"look_at"`
	ViewUp        []float64 `yaml:"view_up,omitempty,flow" mapstructure:"view_up"`
	DefocusAngle  *float64  `yaml:"defocus_angle,omitempty" mapstructure:"defocus_angle"`
	FocusDistance float64   `yaml:"focus_distance,omitempty" mapstructure:"focus_distance"`
	Seed          int64     `yaml:"seed,omitempty" mapstructure:"seed"`
	Workers       int       `yaml:"workers,omitempty" mapstructure:"workers"`
	Format        string    `yaml:"format" mapstructure:"format"`
	Output        string    `yaml:"output,omitempty" mapstructure:"output"`
	LogLevel      string    `yaml:"log_level" mapstructure:"log_level"`
}

// DefaultRenderConfig returns a default configuration
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		Scene:    scene.DefaultSceneName,
		Format:   output.FormatPPM,
		LogLevel: zerolog.InfoLevel.String(),
	}
}

// Validate checks the configuration before it is applied to a scene camera
func (c *RenderConfig) Validate() error {
	if c.Width < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "width must be positive, got %d", c.Width)
	}
	if c.AspectRatio < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if c.Samples < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "samples must be positive, got %d", c.Samples)
	}
	if c.MaxDepth != nil && *c.MaxDepth < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "max depth cannot be negative, got %d", *c.MaxDepth)
	}
	if c.VFov < 0 || c.VFov >= 180 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "vfov must be in (0, 180), got %g", c.VFov)
	}
	if c.DefocusAngle != nil && *c.DefocusAngle < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "defocus angle cannot be negative, got %g", *c.DefocusAngle)
	}
	if c.FocusDistance < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "focus distance cannot be negative, got %g", c.FocusDistance)
	}
	if c.Workers < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "workers cannot be negative, got %d", c.Workers)
	}

	for name, vec := range map[string][]float64{"look_from": c.LookFrom, "look_at": c.LookAt, "view_up": c.ViewUp} {
		if len(vec) != 0 && len(vec) != 3 {
			return errorsmod.Wrapf(core.ErrInvalidConfig, "%s needs 3 components, got %d", name, len(vec))
		}
	}

	if _, err := output.ContentType(c.Format); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "log level %q", c.LogLevel)
	}

	return nil
}

// ApplyCamera overlays the configured camera fields onto a scene's camera defaults
func (c *RenderConfig) ApplyCamera(base renderer.CameraConfig) renderer.CameraConfig {
	override := renderer.CameraConfig{
		AspectRatio:     c.AspectRatio,
		ImageWidth:      c.Width,
		SamplesPerPixel: c.Samples,
		VFov:            c.VFov,
		FocusDistance:   c.FocusDistance,
		Seed:            c.Seed,
		Workers:         c.Workers,
	}

	result := renderer.MergeCameraConfig(base, override)

	// Zero is meaningful for these, so they are applied whenever present
	if len(c.LookFrom) == 3 {
		result.LookFrom = toVec3(c.LookFrom)
	}
	if len(c.LookAt) == 3 {
		result.LookAt = toVec3(c.LookAt)
	}
	if len(c.ViewUp) == 3 {
		result.ViewUp = toVec3(c.ViewUp)
	}
	if c.MaxDepth != nil {
		result.MaxDepth = *c.MaxDepth
	}
	if c.DefocusAngle != nil {
		result.DefocusAngle = *c.DefocusAngle
	}

	return result
}

// ValidateCamera checks a fully resolved camera configuration
func ValidateCamera(cfg renderer.CameraConfig) error {
	if cfg.ImageWidth < 1 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "image width must be at least 1, got %d", cfg.ImageWidth)
	}
	if cfg.AspectRatio <= 0 || math.IsInf(cfg.AspectRatio, 0) || math.IsNaN(cfg.AspectRatio) {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "aspect ratio must be positive, got %g", cfg.AspectRatio)
	}
	if cfg.SamplesPerPixel < 1 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "samples per pixel must be at least 1, got %d", cfg.SamplesPerPixel)
	}
	if cfg.MaxDepth < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "max depth cannot be negative, got %d", cfg.MaxDepth)
	}
	if cfg.VFov <= 0 || cfg.VFov >= 180 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "vfov must be in (0, 180), got %g", cfg.VFov)
	}
	if cfg.DefocusAngle < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "defocus angle cannot be negative, got %g", cfg.DefocusAngle)
	}

	viewDirection := cfg.LookAt.Subtract(cfg.LookFrom)
	if viewDirection.NearZero() {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "look_from and look_at coincide at %v", cfg.LookFrom)
	}
	if cfg.ViewUp.Cross(viewDirection).NearZero() {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "view_up %v is parallel to the view direction", cfg.ViewUp)
	}
	if cfg.FocusDistance < 0 {
		return errorsmod.Wrapf(core.ErrInvalidConfig, "focus distance cannot be negative, got %g", cfg.FocusDistance)
	}

	return nil
}

// WriteDefault writes the default configuration as YAML to path.
// An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errorsmod.Wrapf(core.ErrInvalidConfig, "%s already exists", path)
		}
	}

	data, err := yaml.Marshal(DefaultRenderConfig())
	if err != nil {
		return errorsmod.Wrap(core.ErrOutput, err.Error())
	}

	header := "# Render settings. Camera fields left out fall back to the selected scene's defaults.\n"

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errorsmod.Wrap(core.ErrOutput, err.Error())
		}
	}
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return errorsmod.Wrap(core.ErrOutput, fmt.Sprintf("failed to write %s: %v", path, err))
	}
	return nil
}

func toVec3(components []float64) core.Vec3 {
	return core.NewVec3(components[0], components[1], components[2])
}
