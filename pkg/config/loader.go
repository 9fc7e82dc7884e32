package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// EnvPrefix prefixes every environment variable, e.g. RAYTRACER_WIDTH
const EnvPrefix = "RAYTRACER"

// ConfigName is the file name searched for when no config file is given
const ConfigName = "raytracer"

// keys lists every configuration key so environment variables can be bound up front
var keys = []string{
	"scene", "width", "aspect_ratio", "samples", "max_depth", "vfov",
	"look_from", "look_at", "view_up", "defocus_angle", "focus_distance",
	"seed", "workers", "format", "output", "log_level",
}

// flagKeys maps command-line flag names onto configuration keys
var flagKeys = map[string]string{
	"scene":         "scene",
	"width":         "width",
	"aspect":        "aspect_ratio",
	"samples":       "samples",
	"depth":         "max_depth",
	"vfov":          "vfov",
	"look-from":     "look_from",
	"look-at":       "look_at",
	"view-up":       "view_up",
	"defocus-angle": "defocus_angle",
	"focus-dist":    "focus_distance",
	"seed":          "seed",
	"workers":       "workers",
	"format":        "format",
	"output":        "output",
	"log-level":     "log_level",
}

// Loader layers configuration sources: flags over environment over config file over defaults
type Loader struct {
	v           *viper.Viper
	configFile  string
	searchPaths []string
}

// NewLoader creates a loader that searches the working directory and $HOME/.raytracer
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	defaults := DefaultRenderConfig()
	v.SetDefault("scene", defaults.Scene)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("log_level", defaults.LogLevel)

	searchPaths := []string{"."}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".raytracer"))
	}

	return &Loader{v: v, searchPaths: searchPaths}
}

// SetConfigFile uses an explicit config file instead of searching for one
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// SetSearchPaths replaces the directories searched for raytracer.yaml
func (l *Loader) SetSearchPaths(paths ...string) {
	l.searchPaths = paths
}

// BindFlags records every flag the user explicitly changed.
// Unchanged flags are skipped so their defaults never shadow env or file values.
func (l *Loader) BindFlags(flags *pflag.FlagSet) {
	flags.Visit(func(flag *pflag.Flag) {
		if key, ok := flagKeys[flag.Name]; ok {
			l.v.Set(key, flag.Value.String())
		}
	})
}

// Set overrides a single key with the highest precedence
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// ConfigFileUsed returns the config file that was read, if any
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Load reads all sources, decodes them and validates the result
func (l *Loader) Load() (*RenderConfig, error) {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName(ConfigName)
		l.v.SetConfigType("yaml")
		for _, path := range l.searchPaths {
			l.v.AddConfigPath(path)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, errorsmod.Wrapf(core.ErrInvalidConfig, "error reading config file: %v", err)
		}
	}

	var cfg RenderConfig
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToFloatSliceHook,
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := l.v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, errorsmod.Wrapf(core.ErrInvalidConfig, "error decoding config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// stringToFloatSliceHook decodes "x,y,z" strings from flags and env vars into vectors
func stringToFloatSliceHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]float64{}) {
		return data, nil
	}

	raw := strings.Trim(strings.TrimSpace(data.(string)), "[]")
	if raw == "" {
		return []float64{}, nil
	}

	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errorsmod.Wrapf(core.ErrInvalidConfig, "invalid vector component %q", part)
		}
		values = append(values, value)
	}
	return values, nil
}
