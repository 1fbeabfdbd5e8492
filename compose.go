package cityposter

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// BaseGradient paints the opaque canvas every layer sits on: a diagonal
// blend of the first two palette colors pulled toward the third by a
// radial falloff, stronger at higher intensity. Blending runs in Lab space
// so the ramp stays perceptually even.
func BaseGradient(res int, palette []colorful.Color, intensity float64) *image.RGBA {
	c1, c2, c3 := spreadPalette(palette)
	out := image.NewRGBA(image.Rect(0, 0, res, res))
	half := float64(res) / 2
	maxD := 0.75 * float64(res)
	denom := float64(max(res-1, 1))
	for y := 0; y < res; y++ {
		ty := float64(y) / denom
		for x := 0; x < res; x++ {
			tx := float64(x) / denom
			dx := float64(x) - half
			dy := float64(y) - half
			d := min(1.0, max(0.0, math.Sqrt(dx*dx+dy*dy)/maxD))
			diag := c1.BlendLab(c2, (tx+ty)/2)
			factor := (1.0 - d) * (0.3 + 0.7*intensity)
			col := diag.BlendLab(c3, factor).Clamped()
			out.SetRGBA(x, y, color.RGBA{
				clamp8(col.R * 255),
				clamp8(col.G * 255),
				clamp8(col.B * 255),
				255,
			})
		}
	}
	return out
}

// spreadPalette pads short palettes the way the original generator did, so
// the gradient always has three anchors.
func spreadPalette(palette []colorful.Color) (c1, c2, c3 colorful.Color) {
	switch len(palette) {
	case 0:
		n := moodPalettes[MoodNeutral]
		return n[0], n[1], n[2]
	case 1:
		return palette[0], palette[0], palette[0]
	case 2:
		return palette[0], palette[1], palette[0]
	default:
		return palette[0], palette[1], palette[2]
	}
}

// Compose flattens the layer stack onto the base canvas, bottom to top,
// with standard source-over compositing and a per-layer opacity. The order
// is fixed by the caller: mist under watercolor, pastel as the finishing
// veil, style overlay on top. Output is opaque RGB sized exactly like the
// base.
func Compose(base *image.RGBA, layers []*image.NRGBA, opacities []float64) *image.RGBA {
	b := base.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := base.PixOffset(x, y)
			outR := float64(base.Pix[src])
			outG := float64(base.Pix[src+1])
			outB := float64(base.Pix[src+2])
			// Bottom -> top, source-over, like LayerBuilder reconstruction.
			for i, layer := range layers {
				off := layer.PixOffset(x, y)
				a := float64(layer.Pix[off+3]) / 255.0 * opacities[i]
				if a == 0 {
					continue
				}
				oneMinusA := 1 - a
				outR = a*float64(layer.Pix[off]) + oneMinusA*outR
				outG = a*float64(layer.Pix[off+1]) + oneMinusA*outG
				outB = a*float64(layer.Pix[off+2]) + oneMinusA*outB
			}
			dst := out.PixOffset(x, y)
			out.Pix[dst] = clamp8(outR)
			out.Pix[dst+1] = clamp8(outG)
			out.Pix[dst+2] = clamp8(outB)
			out.Pix[dst+3] = 255 // Opaque result over fixed background.
		}
	}
	return out
}
