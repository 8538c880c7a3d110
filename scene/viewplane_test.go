package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/minirt"
)

func redBall() Scene {
	return Scene{
		Spheres: []Sphere{{
			Center:   V(0, 0, 10),
			Radius:   2,
			Material: Material{Diffuse: minirt.Color{R: 1}, Shininess: 10},
		}},
		Lights:         []PointLight{{Position: V(0, 0, -20), Color: minirt.White}},
		Background:     minirt.Color{B: 0.5},
		RecursionLimit: 3,
		Camera:         Camera{Position: V(0, 0, -20), Target: V(0, 0, 0)},
	}
}

func TestNewViewPlane(t *testing.T) {
	vp := NewViewPlane(600, 400)

	assert.Equal(t, 600, vp.ResX)
	assert.Equal(t, 400, vp.ResY)
	assert.InDelta(t, 4.0/3.0, vp.SizeX, 1e-12)
	assert.InDelta(t, 4.0/3.0, vp.SizeY, 1e-12)
	assert.Equal(t, 5.0, vp.Distance)
}

func TestSamplePoint(t *testing.T) {
	x, y := samplePoint(0)
	assert.Equal(t, 0.5, x)
	assert.Equal(t, 0.5, y)

	for i := range 64 {
		x, y := samplePoint(i)
		require.True(t, x >= 0 && x < 1)
		require.True(t, y >= 0 && y < 1)
	}
}

func TestComputePixel_HitAndMiss(t *testing.T) {
	s := redBall()
	vp := NewViewPlane(40, 40)

	center := vp.ComputePixel(s, 20, 20, 1)
	assert.Greater(t, center.R, 0.5)
	assert.Zero(t, center.B)

	corner := vp.ComputePixel(s, 0, 0, 1)
	assert.Equal(t, s.Background, corner)
}

func TestComputePixel_Shadow(t *testing.T) {
	s := redBall()
	// A second sphere between the light and the ball blocks direct light.
	s.Spheres = append(s.Spheres, Sphere{Center: V(0, 0, -15), Radius: 1, Material: Material{}})
	s.Camera = Camera{Position: V(0, 0, -10), Target: V(0, 0, 0)}
	s.Ambient = minirt.Gray(0.1)

	c := NewViewPlane(40, 40).ComputePixel(s, 20, 20, 1)
	assert.InDelta(t, 0.1, c.R, 1e-9, "only ambient light should reach the ball")
}

func TestComputePixel_Deterministic(t *testing.T) {
	s := Default()
	vp := NewViewPlane(60, 60)

	for _, p := range [][2]int{{30, 30}, {10, 45}, {52, 8}} {
		a := vp.ComputePixel(s, p[0], p[1], 4)
		b := vp.ComputePixel(s.Clone(), p[0], p[1], 4)
		assert.Equal(t, a, b)
	}
}

func TestShade_RenderEquivalence(t *testing.T) {
	cfg := Config{Scene: Default(), View: NewViewPlane(60, 60)}

	var reference *minirt.Image
	for _, workers := range []int{1, 2, 4, 8} {
		for _, strategy := range []minirt.Strategy{minirt.StrategyDynamic, minirt.StrategyStatic} {
			opts := minirt.DefaultOptions()
			opts.Width, opts.Height = 60, 60
			opts.Samples = 2
			opts.Workers = workers
			opts.Strategy = strategy

			res, err := minirt.Render(opts, cfg, Shade)
			require.NoError(t, err)
			if reference == nil {
				reference = res.Image
				continue
			}
			assert.Truef(t, reference.Equal(res.Image), "%s with %d workers differs", strategy, workers)
		}
	}
}
