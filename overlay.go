package cityposter

import (
	"image"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// CityStyle selects the topmost decorative pattern of the poster.
type CityStyle string

const (
	StyleWaves     CityStyle = "waves"
	StyleNeon      CityStyle = "neon"
	StylePixelGrid CityStyle = "pixelgrid"
	StyleArches    CityStyle = "arches"
	StyleChaos     CityStyle = "chaos"
	StyleFog       CityStyle = "fog"
)

type overlayFunc func(c *fcanvas, palette []colorful.Color, intensity float64, rng *rand.Rand)

// Closed dispatch table; doubles as the style validator.
var overlayRenderers = map[CityStyle]overlayFunc{
	StyleWaves:     drawWaves,
	StyleNeon:      drawNeon,
	StylePixelGrid: drawPixelGrid,
	StyleArches:    drawArches,
	StyleChaos:     drawChaos,
	StyleFog:       drawFog,
}

// Styles lists the valid city styles in a fixed order.
func Styles() []CityStyle {
	return []CityStyle{StyleWaves, StyleNeon, StylePixelGrid, StyleArches, StyleChaos, StyleFog}
}

// RenderOverlay draws the semi-transparent accent layer for the given
// style. Every style shares the same contract: a res×res NRGBA layer,
// deterministic in (res, style, palette, intensity, seed). Unknown styles
// are rejected by RenderConfig validation before this is reached.
func RenderOverlay(res int, style CityStyle, palette []colorful.Color, intensity float64, seed int64) *image.NRGBA {
	c := newFcanvas(res, res)
	draw, ok := overlayRenderers[style]
	if !ok {
		return c.toNRGBA()
	}
	draw(c, palette, intensity, newRand(seed, "overlay/"+string(style)))
	c.boxBlur(max(1, c.w/256))
	return c.toNRGBA()
}

func pick(palette []colorful.Color, rng *rand.Rand) colorful.Color {
	return palette[rng.Intn(len(palette))]
}

// pickVivid brightens the sampled color the way neon signage pops against
// the soft base layers.
func pickVivid(palette []colorful.Color, rng *rand.Rand) colorful.Color {
	col := pick(palette, rng)
	return colorful.Color{
		R: min(1.0, col.R*1.2),
		G: min(1.0, col.G*1.2),
		B: min(1.0, col.B*1.2),
	}
}

// drawWaves lays horizontal sinusoidal dashed bands across the lower half.
func drawWaves(c *fcanvas, palette []colorful.Color, intensity float64, rng *rand.Rand) {
	w := float64(c.w)
	h := float64(c.h)
	sc := w / 1024
	alpha := (40 + 90*intensity) / 255
	width := (6 + 20*intensity) * sc
	for i := 0; i < 4; i++ {
		col := pick(palette, rng)
		y0 := h * (0.35 + 0.4*float64(i)/4)
		for x := 0.0; x < w; x += 8 * sc {
			y := y0 + math.Sin(x/(45*sc)+float64(i))*18*sc
			c.strokeLine(x, y, x+12*sc, y, width, col, alpha)
		}
	}
}

// drawNeon drops vivid vertical bars of varying height, signage-like.
func drawNeon(c *fcanvas, palette []colorful.Color, intensity float64, rng *rand.Rand) {
	sc := float64(c.w) / 1024
	n := 6 + int(10*intensity)
	alpha := (120 + 120*intensity) / 255
	for n0 := 0; n0 < n; n0++ {
		col := pickVivid(palette, rng)
		x := rng.Intn(c.w)
		top := rng.Intn(max(c.h/10, 1))
		bottom := c.h*6/10 + rng.Intn(max(c.h*4/10, 1))
		width := max(int(float64(6+rng.Intn(9))*sc), 2)
		c.fillRect(x, top, x+width, bottom, col, alpha)
	}
}

// drawPixelGrid fills a coarse grid with randomly lit jittered cells.
func drawPixelGrid(c *fcanvas, palette []colorful.Color, intensity float64, rng *rand.Rand) {
	cell := max(c.w/64, 4)
	threshold := 0.2 + 0.3*intensity
	alpha := (80 + 120*intensity) / 255
	for y := 0; y < c.h; y += cell {
		for x := 0; x < c.w; x += cell {
			if rng.Float64() >= threshold {
				continue
			}
			c.fillRect(x, y, x+cell, y+cell, pickVivid(palette, rng), alpha)
		}
	}
}

// drawArches renders three arch silhouettes: a rectangle body capped by a
// half ellipse, sized relative to the canvas.
func drawArches(c *fcanvas, palette []colorful.Color, intensity float64, rng *rand.Rand) {
	w := float64(c.w)
	h := float64(c.h)
	alpha := (70 + 100*intensity) / 255
	baseY := h * 0.8
	width := w * 0.18
	gap := w * 0.05
	for i := 0; i < 3; i++ {
		col := pick(palette, rng)
		cx := w*0.2 + float64(i)*(width+gap)
		top := h * (0.4 + 0.1*rng.Float64())
		mid := (top + baseY) / 2
		c.fillRect(int(cx-width/2), int(mid), int(cx+width/2), int(baseY), col, alpha)
		c.fillEllipse(cx, mid, width/2, (baseY-top)/2, col, alpha, 0)
	}
}

// drawChaos scatters jagged angular strokes, denser with intensity.
func drawChaos(c *fcanvas, palette []colorful.Color, intensity float64, rng *rand.Rand) {
	sc := float64(c.w) / 1024
	n := 30 + int(40*intensity)
	alpha := (60 + 150*intensity) / 255
	for n0 := 0; n0 < n; n0++ {
		col := pickVivid(palette, rng)
		x1 := rng.Float64() * float64(c.w)
		y1 := rng.Float64() * float64(c.h)
		x2 := x1 + (rng.Float64()*220-110)*sc
		y2 := y1 + (rng.Float64()*180-90)*sc
		width := max((1+rng.Float64()*3)*sc, 1)
		c.strokeLine(x1, y1, x2, y2, width, col, alpha)
	}
}

// drawFog pours a broad low-frequency translucent wash over the whole
// canvas. Flatter and wider than the mist layer's glow blobs.
func drawFog(c *fcanvas, palette []colorful.Color, intensity float64, rng *rand.Rand) {
	field := noiseField(c.w, 8, rng)
	strength := 0.35 + 0.4*intensity
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			v := field[y*c.w+x]
			col := colorful.Color{R: v, G: v, B: v}
			c.over(x, y, col, v*strength)
		}
	}
}
