// Package config layers the minirt command's settings: built-in defaults,
// an optional YAML config file, MINIRT_* environment variables, command-line
// flags and finally positional arguments.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gogpu/minirt"
)

// EnvPrefix is the prefix of environment variables read by BindFlags.
const EnvPrefix = "MINIRT"

// DefaultOutput is the image written when no output path is configured.
const DefaultOutput = "raytracing.jpg"

// Errors returned by ApplyArgs and Validate.
var (
	ErrInvalidArgument = errors.New("config: invalid argument")
	ErrInvalidLogging  = errors.New("config: invalid logging settings")
)

// LoggingConfig controls the command's log output.
type LoggingConfig struct {
	Level  slog.Level `yaml:"level"`
	Format string     `yaml:"format"`

	// File, when set, receives the log through a rotating writer instead
	// of stderr.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max-size-mb"`
	MaxBackups int    `yaml:"max-backups"`
}

// Config is the fully resolved command configuration.
type Config struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	Samples  int `yaml:"samples"`
	Workers  int `yaml:"workers"`
	TileSize int `yaml:"tile-size"`

	Strategy minirt.Strategy   `yaml:"strategy"`
	Edges    minirt.EdgePolicy `yaml:"edges"`

	Output      string `yaml:"output"`
	SceneFile   string `yaml:"scene-file"`
	MetricsFile string `yaml:"metrics-file"`

	Logging LoggingConfig `yaml:"logging"`
}

// BindFlags registers every setting on flagSet and returns a viper instance
// bound to those flags and to the MINIRT_* environment.
func BindFlags(flagSet *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	defs := minirt.DefaultOptions()

	flagSet.IntP("width", "", defs.Width, "Horizontal resolution in pixels.")
	flagSet.IntP("height", "", defs.Height, "Vertical resolution in pixels.")
	flagSet.IntP("samples", "s", defs.Samples, "Samples per pixel.")
	flagSet.IntP("workers", "j", defs.Workers, "Number of worker goroutines.")
	flagSet.IntP("tile-size", "", defs.TileSize, "Tile edge length in pixels for the dynamic strategy.")
	flagSet.StringP("strategy", "", defs.Strategy.String(), "Work distribution: 'dynamic' (tile queue) or 'static' (row bands).")
	flagSet.StringP("edges", "", defs.Edges.String(), "Remainder handling: 'crop' leaves pixels past the last full tile or band black, 'cover' renders them.")
	flagSet.StringP("output", "o", DefaultOutput, "Output image path. The format follows the extension (.jpg, .png, .bmp, .tiff).")
	flagSet.StringP("scene-file", "", "", "YAML or JSON scene file. The built-in scene is used when empty.")
	flagSet.StringP("metrics-file", "", "", "Write run metrics in Prometheus text format to this file.")
	flagSet.StringP("log-level", "", "info", "Log level: debug, info, warn or error.")
	flagSet.StringP("log-format", "", "text", "Log format: 'text' or 'json'.")
	flagSet.StringP("log-file", "", "", "Write logs to this file, rotating it as it grows.")
	flagSet.IntP("log-max-size-mb", "", 100, "Rotate the log file after this many megabytes.")
	flagSet.IntP("log-max-backups", "", 3, "Number of rotated log files to keep.")

	bindings := map[string]string{
		"width":               "width",
		"height":              "height",
		"samples":             "samples",
		"workers":             "workers",
		"tile-size":           "tile-size",
		"strategy":            "strategy",
		"edges":               "edges",
		"output":              "output",
		"scene-file":          "scene-file",
		"metrics-file":        "metrics-file",
		"logging.level":       "log-level",
		"logging.format":      "log-format",
		"logging.file":        "log-file",
		"logging.max-size-mb": "log-max-size-mb",
		"logging.max-backups": "log-max-backups",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flagSet.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding flag %q: %w", flag, err)
		}
	}
	return v, nil
}

// DecodeHook is used by viper while building the Config.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

// Load reads configFile (if not empty) into v and decodes the layered
// settings into a Config.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error while reading the config file: %w", err)
		}
	}

	var c Config
	err := v.Unmarshal(&c, viper.DecodeHook(DecodeHook()), func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return Config{}, fmt.Errorf("error while unmarshaling the config: %w", err)
	}
	return c, nil
}

// positional names the positional arguments in order.
var positional = []string{"width", "height", "samples", "workers"}

// ApplyArgs overrides c with positional arguments:
//
//	width height samples workers [scene-file]
//
// Any prefix may be given. Non-numeric values fail with ErrInvalidArgument.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) > len(positional)+1 {
		return fmt.Errorf("%w: expected at most %d arguments, got %d", ErrInvalidArgument, len(positional)+1, len(args))
	}

	targets := []*int{&c.Width, &c.Height, &c.Samples, &c.Workers}
	for i, arg := range args {
		if i == len(positional) {
			c.SceneFile = arg
			break
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: %s %q is not an integer", ErrInvalidArgument, positional[i], arg)
		}
		*targets[i] = n
	}
	return nil
}

// Options returns the render options described by c.
func (c Config) Options() minirt.Options {
	return minirt.Options{
		Width:    c.Width,
		Height:   c.Height,
		Samples:  c.Samples,
		Workers:  c.Workers,
		TileSize: c.TileSize,
		Strategy: c.Strategy,
		Edges:    c.Edges,
	}
}

// Validate checks every setting.
func (c Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if _, err := minirt.FormatFromPath(c.Output); err != nil {
		return fmt.Errorf("output %q: %w", c.Output, err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidLogging, c.Logging.Format)
	}
	if c.Logging.File != "" && (c.Logging.MaxSizeMB <= 0 || c.Logging.MaxBackups < 0) {
		return fmt.Errorf("%w: log rotation needs a positive size and non-negative backups", ErrInvalidLogging)
	}
	return nil
}
