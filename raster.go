package cityposter

import (
	"image"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// fcanvas is a premultiplied RGBA float buffer, interleaved like the raw
// image types: len(pix) = w*h*4. Renderers accumulate into it and convert
// to NRGBA once at the end, so repeated blending never quantizes.
type fcanvas struct {
	w, h int
	pix  []float64
}

func newFcanvas(w, h int) *fcanvas {
	return &fcanvas{w: w, h: h, pix: make([]float64, w*h*4)}
}

func (c *fcanvas) offset(x, y int) int {
	return (y*c.w + x) * 4
}

// over composites a straight-alpha color onto the pixel, source-over.
func (c *fcanvas) over(x, y int, col colorful.Color, a float64) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h || a <= 0 {
		return
	}
	a = min(1.0, a)
	off := c.offset(x, y)
	inv := 1.0 - a
	c.pix[off] = col.R*a + c.pix[off]*inv
	c.pix[off+1] = col.G*a + c.pix[off+1]*inv
	c.pix[off+2] = col.B*a + c.pix[off+2]*inv
	c.pix[off+3] = a + c.pix[off+3]*inv
}

// toNRGBA un-premultiplies into a straight-alpha image.
func (c *fcanvas) toNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, c.w, c.h))
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			off := c.offset(x, y)
			a := c.pix[off+3]
			if a <= 0 {
				continue
			}
			inv := 1.0 / a
			dst := out.PixOffset(x, y)
			out.Pix[dst] = clamp8(c.pix[off] * inv * 255)
			out.Pix[dst+1] = clamp8(c.pix[off+1] * inv * 255)
			out.Pix[dst+2] = clamp8(c.pix[off+2] * inv * 255)
			out.Pix[dst+3] = clamp8(min(1.0, a) * 255)
		}
	}
	return out
}

// boxBlur runs a separable sliding-window box blur over all four channels.
// Premultiplied storage keeps dark halos from forming around soft shapes.
// Two passes of it approximate a Gaussian well enough for washes and glows.
func (c *fcanvas) boxBlur(radius int) {
	if radius <= 0 {
		return
	}
	tmp := make([]float64, len(c.pix))
	window := float64(2*radius + 1)

	// Horizontal pass: c.pix -> tmp.
	for y := 0; y < c.h; y++ {
		row := y * c.w * 4
		var sum [4]float64
		for x := -radius; x <= radius; x++ {
			off := row + clampInt(x, 0, c.w-1)*4
			for ch := 0; ch < 4; ch++ {
				sum[ch] += c.pix[off+ch]
			}
		}
		for x := 0; x < c.w; x++ {
			off := row + x*4
			for ch := 0; ch < 4; ch++ {
				tmp[off+ch] = sum[ch] / window
			}
			addOff := row + clampInt(x+radius+1, 0, c.w-1)*4
			subOff := row + clampInt(x-radius, 0, c.w-1)*4
			for ch := 0; ch < 4; ch++ {
				sum[ch] += c.pix[addOff+ch] - c.pix[subOff+ch]
			}
		}
	}

	// Vertical pass: tmp -> c.pix.
	stride := c.w * 4
	for x := 0; x < c.w; x++ {
		col := x * 4
		var sum [4]float64
		for y := -radius; y <= radius; y++ {
			off := clampInt(y, 0, c.h-1)*stride + col
			for ch := 0; ch < 4; ch++ {
				sum[ch] += tmp[off+ch]
			}
		}
		for y := 0; y < c.h; y++ {
			off := y*stride + col
			for ch := 0; ch < 4; ch++ {
				c.pix[off+ch] = sum[ch] / window
			}
			addOff := clampInt(y+radius+1, 0, c.h-1)*stride + col
			subOff := clampInt(y-radius, 0, c.h-1)*stride + col
			for ch := 0; ch < 4; ch++ {
				sum[ch] += tmp[addOff+ch] - tmp[subOff+ch]
			}
		}
	}
}

// fillEllipse stamps an axis-aligned ellipse with a feathered rim. feather
// is the fraction of the normalized radius over which alpha falls to zero;
// 0 gives a hard edge.
func (c *fcanvas) fillEllipse(cx, cy, rx, ry float64, col colorful.Color, alpha, feather float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	x0 := int(math.Floor(cx - rx))
	x1 := int(math.Ceil(cx + rx))
	y0 := int(math.Floor(cy - ry))
	y1 := int(math.Ceil(cy + ry))
	inner := 1.0 - feather
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			d := math.Sqrt(dx*dx + dy*dy)
			if d >= 1 {
				continue
			}
			a := alpha
			if feather > 0 && d > inner {
				a *= 1.0 - (d-inner)/feather
			}
			c.over(x, y, col, a)
		}
	}
}

func (c *fcanvas) fillRect(x0, y0, x1, y1 int, col colorful.Color, alpha float64) {
	x0 = clampInt(x0, 0, c.w)
	x1 = clampInt(x1, 0, c.w)
	y0 = clampInt(y0, 0, c.h)
	y1 = clampInt(y1, 0, c.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.over(x, y, col, alpha)
		}
	}
}

// strokeLine stamps discs along the segment, which reads as a thick line
// once the overlay gets its softening blur.
func (c *fcanvas) strokeLine(x1, y1, x2, y2, width float64, col colorful.Color, alpha float64) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	r := max(width/2, 0.5)
	steps := max(int(length/max(r, 1.0))*2, 1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.fillDisc(x1+dx*t, y1+dy*t, r, col, alpha)
	}
}

// fillDisc writes a hard disc without compositing overlap between stamps,
// so a stroked line keeps uniform alpha along its length.
func (c *fcanvas) fillDisc(cx, cy, r float64, col colorful.Color, alpha float64) {
	x0 := clampInt(int(cx-r), 0, c.w-1)
	x1 := clampInt(int(cx+r)+1, 0, c.w-1)
	y0 := clampInt(int(cy-r), 0, c.h-1)
	y1 := clampInt(int(cy+r)+1, 0, c.h-1)
	r2 := r * r
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			off := c.offset(x, y)
			if c.pix[off+3] >= alpha {
				continue
			}
			c.pix[off] = col.R * alpha
			c.pix[off+1] = col.G * alpha
			c.pix[off+2] = col.B * alpha
			c.pix[off+3] = alpha
		}
	}
}

// noiseField renders uniform noise at a coarse cell resolution and
// upscales it with Catmull-Rom interpolation, giving the smooth
// low-frequency field the fog and mist washes are built from.
func noiseField(res, cells int, rng *rand.Rand) []float64 {
	cells = max(cells, 2)
	low := image.NewGray(image.Rect(0, 0, cells, cells))
	for i := range low.Pix {
		low.Pix[i] = uint8(rng.Intn(256))
	}
	high := image.NewGray(image.Rect(0, 0, res, res))
	xdraw.CatmullRom.Scale(high, high.Bounds(), low, low.Bounds(), xdraw.Src, nil)

	out := make([]float64, res*res)
	for i, v := range high.Pix {
		out[i] = float64(v) / 255.0
	}
	return out
}

func clamp8(v float64) uint8 {
	return uint8(max(0, min(255, v)))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
