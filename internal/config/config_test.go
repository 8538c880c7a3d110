package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/minirt"
)

func load(t *testing.T, configFile string, args ...string) (Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v, err := BindFlags(fs)
	require.NoError(t, err)
	require.NoError(t, fs.Parse(args))
	return Load(v, configFile)
}

func TestLoad_Defaults(t *testing.T) {
	c, err := load(t, "")
	require.NoError(t, err)

	assert.Equal(t, minirt.DefaultOptions(), c.Options())
	assert.Equal(t, DefaultOutput, c.Output)
	assert.Empty(t, c.SceneFile)
	assert.Equal(t, slog.LevelInfo, c.Logging.Level)
	assert.Equal(t, "text", c.Logging.Format)
	assert.NoError(t, c.Validate())
}

func TestLoad_Flags(t *testing.T) {
	c, err := load(t, "",
		"--width=320", "--height", "200", "-s", "4", "-j", "8",
		"--tile-size=16", "--strategy=static", "--edges=cover",
		"--output=out.png", "--log-level=debug", "--log-format=json")
	require.NoError(t, err)

	assert.Equal(t, minirt.Options{
		Width:    320,
		Height:   200,
		Samples:  4,
		Workers:  8,
		TileSize: 16,
		Strategy: minirt.StrategyStatic,
		Edges:    minirt.EdgeCover,
	}, c.Options())
	assert.Equal(t, "out.png", c.Output)
	assert.Equal(t, slog.LevelDebug, c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
}

func TestLoad_ConfigFileAndPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minirt.yaml")
	content := `
width: 800
height: 400
workers: 6
strategy: static
logging:
  level: warn
  file: /tmp/minirt.log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := load(t, path, "--workers=2")
	require.NoError(t, err)

	assert.Equal(t, 800, c.Width)
	assert.Equal(t, 400, c.Height)
	assert.Equal(t, 2, c.Workers, "flags override the config file")
	assert.Equal(t, minirt.StrategyStatic, c.Strategy)
	assert.Equal(t, slog.LevelWarn, c.Logging.Level)
	assert.Equal(t, "/tmp/minirt.log", c.Logging.File)
	assert.Equal(t, 100, c.Logging.MaxSizeMB)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("MINIRT_WORKERS", "12")
	t.Setenv("MINIRT_EDGES", "cover")

	c, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, 12, c.Workers)
	assert.Equal(t, minirt.EdgeCover, c.Edges)
}

func TestLoad_Errors(t *testing.T) {
	_, err := load(t, "", "--strategy=round-robin")
	assert.Error(t, err)

	_, err = load(t, "", "--edges=wrap")
	assert.Error(t, err)

	_, err = load(t, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config file")
}

func TestApplyArgs(t *testing.T) {
	c, err := load(t, "")
	require.NoError(t, err)

	require.NoError(t, c.ApplyArgs([]string{"800", "600", "4", "8", "scene.yaml"}))
	assert.Equal(t, 800, c.Width)
	assert.Equal(t, 600, c.Height)
	assert.Equal(t, 4, c.Samples)
	assert.Equal(t, 8, c.Workers)
	assert.Equal(t, "scene.yaml", c.SceneFile)

	c2, err := load(t, "", "--workers=3")
	require.NoError(t, err)
	require.NoError(t, c2.ApplyArgs([]string{"100"}))
	assert.Equal(t, 100, c2.Width)
	assert.Equal(t, minirt.DefaultHeight, c2.Height)
	assert.Equal(t, 3, c2.Workers)
}

func TestApplyArgs_Invalid(t *testing.T) {
	var c Config

	err := c.ApplyArgs([]string{"800", "tall"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorContains(t, err, "height")

	err = c.ApplyArgs([]string{"1", "2", "3", "4", "scene", "extra"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestValidate(t *testing.T) {
	base, err := load(t, "")
	require.NoError(t, err)

	c := base
	c.Workers = 0
	assert.ErrorIs(t, c.Validate(), minirt.ErrInvalidWorkers)

	c = base
	c.Output = "image.webp"
	assert.ErrorIs(t, c.Validate(), minirt.ErrUnknownFormat)

	c = base
	c.Logging.Format = "xml"
	assert.ErrorIs(t, c.Validate(), ErrInvalidLogging)

	c = base
	c.Logging.File = "minirt.log"
	c.Logging.MaxSizeMB = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidLogging)
}
