package scene

import (
	"math"

	"github.com/gogpu/minirt"
)

// View-plane geometry of the default camera: a 4×4 backdrop at distance 15
// seen through a plane at distance 5.
const (
	BackgroundSize     = 4.0
	BackgroundDistance = 15.0
	ViewPlaneDistance  = 5.0
)

const (
	// epsilon offsets secondary rays from the surface they leave.
	epsilon = 1e-6

	// minWeight stops recursion once a ray can no longer change the pixel
	// noticeably.
	minWeight = 1.0 / 512
)

// ViewPlane maps pixel coordinates to primary rays.
type ViewPlane struct {
	ResX, ResY   int
	SizeX, SizeY float64
	Distance     float64
}

// NewViewPlane returns the default view plane for a resX×resY image.
func NewViewPlane(resX, resY int) ViewPlane {
	size := BackgroundSize * ViewPlaneDistance / BackgroundDistance
	return ViewPlane{
		ResX:     resX,
		ResY:     resY,
		SizeX:    size,
		SizeY:    size,
		Distance: ViewPlaneDistance,
	}
}

// samplePoint returns the sub-pixel offset of sample i. The offsets follow
// the R2 low-discrepancy sequence, so sample 0 is the pixel center and the
// result depends only on i.
func samplePoint(i int) (float64, float64) {
	const (
		a1 = 0.7548776662466927
		a2 = 0.5698402909980532
	)
	_, fx := math.Modf(0.5 + a1*float64(i))
	_, fy := math.Modf(0.5 + a2*float64(i))
	return fx, fy
}

// ComputePixel returns the color of pixel (x, y), averaged over samples
// primary rays. It reads s and never modifies it.
func (vp ViewPlane) ComputePixel(s Scene, x, y, samples int) minirt.Color {
	samples = max(samples, 1)
	right, up, forward := s.Camera.basis()

	var sum minirt.Color
	for i := range samples {
		fx, fy := samplePoint(i)
		px := (float64(x)+fx)/float64(vp.ResX)*vp.SizeX - vp.SizeX/2
		py := vp.SizeY/2 - (float64(y)+fy)/float64(vp.ResY)*vp.SizeY

		dir := right.Scale(px).Add(up.Scale(py)).Add(forward.Scale(vp.Distance)).Normalize()
		sum = sum.Add(s.trace(s.Camera.Position, dir, 0, 1))
	}
	return sum.Scale(1 / float64(samples))
}

// hit finds the nearest sphere intersected by the ray beyond epsilon.
func (s Scene) hit(origin, dir Vec3) (idx int, t float64) {
	idx, t = -1, math.Inf(1)
	for i, sp := range s.Spheres {
		oc := origin.Sub(sp.Center)
		b := oc.Dot(dir)
		c := oc.Dot(oc) - sp.Radius*sp.Radius
		disc := b*b - c
		if disc < 0 {
			continue
		}
		sq := math.Sqrt(disc)
		for _, root := range [2]float64{-b - sq, -b + sq} {
			if root > epsilon && root < t {
				idx, t = i, root
				break
			}
		}
	}
	return idx, t
}

// trace follows one ray and returns the light arriving along it. weight is
// the largest factor by which the result can still reach the pixel.
func (s Scene) trace(origin, dir Vec3, depth int, weight float64) minirt.Color {
	idx, t := s.hit(origin, dir)
	if idx < 0 {
		return s.Background
	}

	sp := s.Spheres[idx]
	m := sp.Material
	p := origin.Add(dir.Scale(t))
	n := p.Sub(sp.Center).Normalize()

	eta := 1 / m.IOR
	if dir.Dot(n) > 0 {
		n = n.Scale(-1)
		eta = m.IOR
	}

	c := s.Ambient.Mul(m.Diffuse)
	for _, l := range s.Lights {
		toLight := l.Position.Sub(p)
		dist := toLight.Length()
		ldir := toLight.Scale(1 / dist)

		if blocker, bt := s.hit(p, ldir); blocker >= 0 && bt < dist {
			continue
		}

		if diff := n.Dot(ldir); diff > 0 {
			c = c.Add(m.Diffuse.Mul(l.Color).Scale(diff))
		}
		if spec := reflect(ldir.Scale(-1), n).Dot(dir.Scale(-1)); spec > 0 && m.Shininess > 0 {
			c = c.Add(m.Specular.Mul(l.Color).Scale(math.Pow(spec, m.Shininess)))
		}
	}

	if depth >= s.RecursionLimit {
		return c
	}

	if w := weight * maxComponent(m.Specular); w >= minWeight {
		r := s.trace(p, reflect(dir, n).Normalize(), depth+1, w)
		c = c.Add(r.Mul(m.Specular))
	}

	if w := weight * m.Transparency; w >= minWeight {
		if tdir, ok := refract(dir, n, eta); ok {
			through := s.trace(p, tdir.Normalize(), depth+1, w)
			c = c.Scale(1 - m.Transparency).Add(through.Scale(m.Transparency))
		}
	}
	return c
}

func maxComponent(c minirt.Color) float64 {
	return max(c.R, c.G, c.B)
}

// Config bundles everything a worker needs to shade pixels. It is the scene
// value passed to minirt.Render.
type Config struct {
	Scene Scene
	View  ViewPlane
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Scene = c.Scene.Clone()
	return c
}

// Shade is the minirt.RenderFunc for a Config.
func Shade(c Config, x, y, samples int) minirt.Color {
	return c.View.ComputePixel(c.Scene, x, y, samples)
}
