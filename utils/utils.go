// Package utils holds helpers around the poster pipeline: extracting the
// palette a finished poster actually rendered (for caller-side reports)
// and writing images to disk. The generator core never touches the
// filesystem; everything here belongs to the calling application side of
// the boundary.
package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ExtractRenderedPalette pulls the k most prominent, mutually distinct
// colors out of a generated poster. This is a reporting aid: the mood
// palette says what the generator aimed for, this says what the blending
// actually produced.
func ExtractRenderedPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	switch method {
	case PaletteMethodKMeans:
		p := kmeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned empty palette, falling back to dominantcolor")
		return dominantPalette(img, k)
	default:
		return dominantPalette(img, k)
	}
}

func dominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	candidates := dominantcolor.FindWeight(img, max(k*4, 12))
	if len(candidates) == 0 {
		return nil
	}
	cols := make([]colorful.Color, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		cols = append(cols, col.Clamped())
	}
	return pickDistinct(cols, k)
}

func kmeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	// Subsample so kmeans stays tractable on full-size posters.
	const maxSamples = 12000
	step := 1
	if n := b.Dx() * b.Dy(); n > maxSamples {
		step = int(math.Sqrt(float64(n)/maxSamples)) + 1
	}
	dataset := make(clusters.Observations, 0, maxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*3, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	// Most populated clusters first, so prominent tones win.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	cols := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		cols = append(cols, colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped())
	}
	return pickDistinct(cols, k)
}

// pickDistinct walks candidates in prominence order and keeps colors at
// least a minimum Lab distance away from everything already kept, so the
// reported palette doesn't collapse into shades of one wash.
func pickDistinct(cands []colorful.Color, k int) []colorful.Color {
	const minDist = 6.0 // Lab units
	out := make([]colorful.Color, 0, k)
	for _, c := range cands {
		if len(out) == k {
			break
		}
		ok := true
		for _, kept := range out {
			if labDist(c, kept) < minDist {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	// Backfill from the remaining candidates if the filter was too strict.
	for _, c := range cands {
		if len(out) == k {
			break
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func labDist(a, b colorful.Color) float64 {
	l1, a1, b1 := a.Lab()
	l2, a2, b2 := b.Lab()
	dl := (l1 - l2) * 100
	da := (a1 - a2) * 100
	db := (b1 - b2) * 100
	return math.Sqrt(dl*dl + da*da + db*db)
}

// SortPaletteByBrightness orders colors darkest to brightest, the usual
// presentation order for a palette strip.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ya := luminance(a)
		yb := luminance(b)
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// SaveImage writes a PNG. PNG encoding lives out here on purpose: the
// generator core hands back raw rasters only.
func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SavePalette writes the palette as a strip of square tiles.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		tile := color.RGBA{
			R: uint8(max(0, min(255, c.R*255))),
			G: uint8(max(0, min(255, c.G*255))),
			B: uint8(max(0, min(255, c.B*255))),
			A: 255,
		}
		for y := 0; y < tileSize; y++ {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, tile)
			}
		}
	}
	return SaveImage(img, filename)
}
