package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/minirt"
)

func TestDefault(t *testing.T) {
	s := Default()

	require.NoError(t, s.Validate())
	assert.Len(t, s.Spheres, 7)
	assert.Len(t, s.Lights, 3)
	assert.Equal(t, DefaultRecursionLimit, s.RecursionLimit)
	assert.Equal(t, V(0, 0, -20), s.Camera.Position)
}

func TestScene_CloneIsDeep(t *testing.T) {
	s := Default()
	c := s.Clone()

	c.Spheres[0].Radius = 42
	c.Lights[0].Color = minirt.White

	assert.Equal(t, 1.0, s.Spheres[0].Radius)
	assert.Equal(t, minirt.Gray(0.8), s.Lights[0].Color)
}

func TestScene_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Scene)
	}{
		{"zero radius", func(s *Scene) { s.Spheres[1].Radius = 0 }},
		{"transparency above one", func(s *Scene) { s.Spheres[0].Material.Transparency = 1.5 }},
		{"transparent without ior", func(s *Scene) { s.Spheres[0].Material.IOR = 0 }},
		{"negative recursion", func(s *Scene) { s.RecursionLimit = -1 }},
		{"degenerate camera", func(s *Scene) { s.Camera.Target = s.Camera.Position }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidScene)
		})
	}
}

const yamlScene = `
background: {r: 0.1, g: 0.2, b: 0.3}
ambient: {r: 0.1, g: 0.1, b: 0.1}
camera:
  position: {x: 0, y: 0, z: -10}
  target: {x: 0, y: 0, z: 0}
spheres:
  - center: {x: 0, y: 0, z: 5}
    radius: 2
    material:
      diffuse: {r: 1, g: 0, b: 0}
      specular: {r: 0.2, g: 0.2, b: 0.2}
      shininess: 20
lights:
  - position: {x: 0, y: 5, z: -10}
    color: {r: 1, g: 1, b: 1}
`

const jsonScene = `{
  "background": {"r": 0.1, "g": 0.2, "b": 0.3},
  "recursion_limit": 4,
  "camera": {"position": {"x": 0, "y": 0, "z": -10}, "target": {"x": 0, "y": 0, "z": 1}},
  "spheres": [{"center": {"x": 0, "y": 0, "z": 5}, "radius": 2,
               "material": {"diffuse": {"r": 0, "g": 1, "b": 0}, "transparency": 0.5, "ior": 1.5}}],
  "lights": [{"position": {"x": 0, "y": 5, "z": -10}, "color": {"r": 1, "g": 1, "b": 1}}]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	s, err := Load(writeFile(t, "scene.yaml", yamlScene))
	require.NoError(t, err)

	require.Len(t, s.Spheres, 1)
	assert.Equal(t, 2.0, s.Spheres[0].Radius)
	assert.Equal(t, minirt.Color{R: 1}, s.Spheres[0].Material.Diffuse)
	assert.Equal(t, minirt.Color{R: 0.1, G: 0.2, B: 0.3}, s.Background)
	assert.Equal(t, DefaultRecursionLimit, s.RecursionLimit)
	assert.Equal(t, V(0, 0, -10), s.Camera.Position)
}

func TestLoad_JSON(t *testing.T) {
	s, err := Load(writeFile(t, "scene.json", jsonScene))
	require.NoError(t, err)

	require.Len(t, s.Spheres, 1)
	assert.Equal(t, 0.5, s.Spheres[0].Material.Transparency)
	assert.Equal(t, 1.5, s.Spheres[0].Material.IOR)
	assert.Equal(t, 4, s.RecursionLimit)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "scene.toml", "x = 1"))
	assert.ErrorContains(t, err, "unsupported scene format")

	_, err = Load(writeFile(t, "scene.yaml", "spheres: [oops"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = Load(writeFile(t, "scene.json", "{"))
	assert.ErrorContains(t, err, "failed to parse JSON")

	bad := `camera: {position: {z: -1}, target: {z: 1}}
spheres: [{radius: -1}]`
	_, err = Load(writeFile(t, "bad.yml", bad))
	assert.ErrorIs(t, err, ErrInvalidScene)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, Save(path, Default()))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}
