package cityposter

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// mistTint is the cool near-white the fog wash leans toward.
var mistTint = colorful.Color{R: 235 / 255.0, G: 238 / 255.0, B: 247 / 255.0}

// RenderMist places seeded soft radial glow blobs over a low-frequency
// wash and softens the whole layer, so no hard boundary survives. Blob
// count, radius and wash alpha all grow monotonically with intensity;
// intensity 0 yields an empty layer.
func RenderMist(res int, palette []colorful.Color, intensity float64, seed int64) *image.NRGBA {
	c := newFcanvas(res, res)
	if intensity <= 0 {
		return c.toNRGBA()
	}
	rng := newRand(seed, "mist")
	n := int(intensity * 18)

	// Broad wash first, glows on top of it.
	field := noiseField(res, 10, rng)
	washAlpha := 0.28 * intensity
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			a := field[y*res+x] * washAlpha
			c.over(x, y, mistTint, a)
		}
	}

	maxR := float64(res) * (0.10 + 0.25*intensity)
	strength := 0.25 + 0.30*intensity
	for n0 := 0; n0 < n; n0++ {
		cx := rng.Float64() * float64(res)
		cy := rng.Float64() * float64(res)
		r := maxR * (0.4 + 0.6*rng.Float64())
		col := palette[rng.Intn(len(palette))].BlendRgb(mistTint, 0.35)
		glowBlob(c, cx, cy, r, col, strength)
	}

	radius := max(2, res/48)
	c.boxBlur(radius)
	c.boxBlur(radius)
	return c.toNRGBA()
}

// glowBlob composites a radial gradient with quadratic alpha falloff.
func glowBlob(c *fcanvas, cx, cy, r float64, col colorful.Color, strength float64) {
	x0 := clampInt(int(cx-r), 0, c.w-1)
	x1 := clampInt(int(cx+r), 0, c.w-1)
	y0 := clampInt(int(cy-r), 0, c.h-1)
	y1 := clampInt(int(cy+r), 0, c.h-1)
	r2 := r * r
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d2 := dx*dx + dy*dy
			if d2 >= r2 {
				continue
			}
			t := 1.0 - d2/r2
			c.over(x, y, col, strength*t*t)
		}
	}
}
