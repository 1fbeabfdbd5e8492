package cityposter

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

var paperWhite = colorful.Color{R: 1, G: 1, B: 1}

// RenderWatercolor scatters feathered palette-colored ellipses in several
// rounds so overlaps blend like diffusing pigment, then blurs the result.
// Round count, blob count, size and ink saturation scale with intensity;
// intensity 0 yields an empty layer.
func RenderWatercolor(res int, palette []colorful.Color, intensity float64, seed int64) *image.NRGBA {
	c := newFcanvas(res, res)
	if intensity <= 0 {
		return c.toNRGBA()
	}
	rng := newRand(seed, "watercolor")

	rounds := 1 + int(intensity*3)
	perRound := 8 + int(intensity*20)
	maxR := float64(res) * (0.12 + 0.25*intensity)
	// Weak intensity waters the pigment down toward the paper.
	dilution := 0.4 * (1.0 - intensity)

	for n0 := 0; n0 < rounds; n0++ {
		for n1 := 0; n1 < perRound; n1++ {
			col := palette[rng.Intn(len(palette))].BlendRgb(paperWhite, dilution)
			cx := rng.Float64() * float64(res)
			cy := rng.Float64() * float64(res)
			rx := maxR * (0.25 + 0.75*rng.Float64())
			ry := maxR * (0.25 + 0.75*rng.Float64())
			alpha := 0.27 + 0.43*rng.Float64()
			c.fillEllipse(cx, cy, rx, ry, col, alpha, 0.35)
		}
	}

	c.boxBlur(max(1, int(float64(res)*(0.008+0.02*intensity))))
	return c.toNRGBA()
}
