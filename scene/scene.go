// Package scene is the sphere-and-point-light world rendered by the minirt
// command. It provides the immutable scene value handed to every worker and a
// pure per-pixel function suitable for minirt.Render.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/minirt"
)

// ErrInvalidScene is wrapped by every validation failure.
var ErrInvalidScene = errors.New("scene: invalid scene")

// DefaultRecursionLimit bounds reflection and refraction depth when a scene
// does not set one.
const DefaultRecursionLimit = 20

// Material describes how a surface responds to light.
type Material struct {
	// Diffuse is the Lambertian color.
	Diffuse minirt.Color `yaml:"diffuse" json:"diffuse"`

	// Specular tints highlights and scales mirror reflection.
	Specular minirt.Color `yaml:"specular" json:"specular"`

	// Shininess is the Phong exponent.
	Shininess float64 `yaml:"shininess" json:"shininess"`

	// Transparency is the fraction of light transmitted through the surface.
	Transparency float64 `yaml:"transparency" json:"transparency"`

	// IOR is the index of refraction used for transmitted rays.
	IOR float64 `yaml:"ior" json:"ior"`
}

// Transparent returns a copy of m that transmits the given fraction of light
// with refraction index ior.
func (m Material) Transparent(transparency, ior float64) Material {
	m.Transparency = transparency
	m.IOR = ior
	return m
}

// Sphere is the only primitive.
type Sphere struct {
	Center   Vec3     `yaml:"center" json:"center"`
	Radius   float64  `yaml:"radius" json:"radius"`
	Material Material `yaml:"material" json:"material"`
}

// PointLight emits Color uniformly from Position.
type PointLight struct {
	Position Vec3         `yaml:"position" json:"position"`
	Color    minirt.Color `yaml:"color" json:"color"`
}

// Camera looks from Position towards Target with +Y up.
type Camera struct {
	Position Vec3 `yaml:"position" json:"position"`
	Target   Vec3 `yaml:"target" json:"target"`
}

// basis returns the right, up and forward unit vectors of the camera.
func (c Camera) basis() (right, up, forward Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	if forward == (Vec3{}) {
		forward = V(0, 0, 1)
	}
	worldUp := V(0, 1, 0)
	right = worldUp.Cross(forward).Normalize()
	if right == (Vec3{}) {
		right = V(1, 0, 0)
	}
	up = forward.Cross(right)
	return right, up, forward
}

// Scene is the immutable world description.
type Scene struct {
	Spheres        []Sphere     `yaml:"spheres" json:"spheres"`
	Lights         []PointLight `yaml:"lights" json:"lights"`
	Background     minirt.Color `yaml:"background" json:"background"`
	Ambient        minirt.Color `yaml:"ambient" json:"ambient"`
	RecursionLimit int          `yaml:"recursion_limit" json:"recursion_limit"`
	Camera         Camera       `yaml:"camera" json:"camera"`
}

// Clone returns a deep copy of s.
func (s Scene) Clone() Scene {
	s.Spheres = slices.Clone(s.Spheres)
	s.Lights = slices.Clone(s.Lights)
	return s
}

// Validate checks that the scene can be rendered.
func (s Scene) Validate() error {
	for i, sp := range s.Spheres {
		if sp.Radius <= 0 {
			return fmt.Errorf("%w: sphere %d has radius %g", ErrInvalidScene, i, sp.Radius)
		}
		if sp.Material.Transparency < 0 || sp.Material.Transparency > 1 {
			return fmt.Errorf("%w: sphere %d has transparency %g", ErrInvalidScene, i, sp.Material.Transparency)
		}
		if sp.Material.Transparency > 0 && sp.Material.IOR <= 0 {
			return fmt.Errorf("%w: sphere %d is transparent with ior %g", ErrInvalidScene, i, sp.Material.IOR)
		}
	}
	if s.RecursionLimit < 0 {
		return fmt.Errorf("%w: negative recursion limit %d", ErrInvalidScene, s.RecursionLimit)
	}
	if s.Camera.Position == s.Camera.Target {
		return fmt.Errorf("%w: camera position equals target", ErrInvalidScene)
	}
	return nil
}

// Default returns the built-in demo scene: seven spheres lit by three point
// lights.
func Default() Scene {
	red := minirt.Color{R: 1, G: 0.2, B: 0.2}
	blue := minirt.Color{R: 0.2, G: 0.2, B: 1}
	green := minirt.Color{R: 0.2, G: 1, B: 0.2}
	white := minirt.Gray(0.8)
	yellow := minirt.Color{R: 1, G: 1, B: 0.2}

	metallicRed := Material{Diffuse: red, Specular: white, Shininess: 50}
	mirrorBlack := Material{Diffuse: minirt.Gray(0), Specular: minirt.Gray(0.9), Shininess: 1000}
	matteWhite := Material{Diffuse: minirt.Gray(0.7), Specular: minirt.Gray(0.3), Shininess: 1}
	metallicYellow := Material{Diffuse: yellow, Specular: white, Shininess: 250}
	transparentGreen := Material{Diffuse: green.Scale(0.8), Specular: minirt.Gray(0.2), Shininess: 1}.Transparent(1.0, 1.03)
	transparentBlue := Material{Diffuse: blue.Scale(0.4), Specular: minirt.Gray(0.6), Shininess: 1}.Transparent(0.9, 0.7)

	return Scene{
		Spheres: []Sphere{
			{Center: V(0, -2, 7), Radius: 1, Material: transparentBlue},
			{Center: V(-3, 2, 11), Radius: 2, Material: metallicRed},
			{Center: V(0, 2, 8), Radius: 1, Material: mirrorBlack},
			{Center: V(1.5, -0.5, 7), Radius: 1, Material: transparentGreen},
			{Center: V(-2, -1, 6), Radius: 0.7, Material: metallicYellow},
			{Center: V(2.2, 0.5, 9), Radius: 1.2, Material: matteWhite},
			{Center: V(4, -1, 10), Radius: 0.7, Material: metallicRed},
		},
		Lights: []PointLight{
			{Position: V(-15, 0, -15), Color: white},
			{Position: V(1, 1, 0), Color: blue},
			{Position: V(0, -10, 6), Color: red},
		},
		Background:     minirt.Color{R: 0.05, G: 0.05, B: 0.08},
		Ambient:        minirt.Gray(0.1),
		RecursionLimit: DefaultRecursionLimit,
		Camera:         Camera{Position: V(0, 0, -20), Target: V(0, 0, 0)},
	}
}
