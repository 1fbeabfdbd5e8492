package cityposter

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var chalkTint = colorful.Color{R: 245 / 255.0, G: 245 / 255.0, B: 248 / 255.0}

// RenderPastel is the finishing layer: a flat chalky veil whose per-pixel
// Gaussian grain perturbs both tone and coverage. Composited over the
// color layers it pulls the poster toward pastel tones, lighter and
// flatter with a slight grain. Intensity controls veil coverage and grain
// magnitude; intensity 0 yields an empty layer.
func RenderPastel(res int, intensity float64, seed int64) *image.NRGBA {
	c := newFcanvas(res, res)
	if intensity <= 0 {
		return c.toNRGBA()
	}
	rng := newRand(seed, "pastel")

	grain := make([]float64, res*res)
	for i := range grain {
		grain[i] = rng.NormFloat64()
	}
	// Recenter and rescale the sample so the veil's overall brightness
	// depends only on intensity, not on the draw.
	mean, std := stat.MeanStdDev(grain, nil)
	floats.AddConst(-mean, grain)
	sigma := 0.12 * intensity
	if std > 0 {
		floats.Scale(sigma/std, grain)
	}

	baseAlpha := 0.18 * intensity
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			g := grain[y*res+x]
			col := colorful.Color{
				R: min(1.0, max(0.0, chalkTint.R+g)),
				G: min(1.0, max(0.0, chalkTint.G+g)),
				B: min(1.0, max(0.0, chalkTint.B+g)),
			}
			c.over(x, y, col, min(1.0, max(0.0, baseAlpha+g*0.5)))
		}
	}
	return c.toNRGBA()
}
