package utils

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// posterLike builds a small image with enough tonal variety to exercise
// both palette extractors.
func posterLike(t *testing.T) *image.RGBA {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 8),
				G: uint8(y * 8),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func TestExtractRenderedPalette(t *testing.T) {
	img := posterLike(t)
	for _, method := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		t.Run(method.String(), func(t *testing.T) {
			p := ExtractRenderedPalette(img, 4, method)
			require.NotEmpty(t, p)
			assert.LessOrEqual(t, len(p), 4)
			for _, c := range p {
				assert.True(t, c.IsValid(), "extracted color out of gamut: %v", c)
			}
		})
	}
}

func TestExtractRenderedPaletteZeroK(t *testing.T) {
	assert.Nil(t, ExtractRenderedPalette(posterLike(t), 0, PaletteMethodDominantColor))
}

func TestSortPaletteByBrightness(t *testing.T) {
	p := []colorful.Color{
		{R: 1, G: 1, B: 1},
		{R: 0, G: 0, B: 0},
		{R: 0.5, G: 0.5, B: 0.5},
	}
	SortPaletteByBrightness(p)
	require.Equal(t, colorful.Color{R: 0, G: 0, B: 0}, p[0])
	require.Equal(t, colorful.Color{R: 1, G: 1, B: 1}, p[2])
}

func TestSaveImageAndPalette(t *testing.T) {
	dir := t.TempDir()

	imgPath := filepath.Join(dir, "poster.png")
	require.NoError(t, SaveImage(posterLike(t), imgPath))
	f, err := os.Open(imgPath)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), decoded.Bounds())

	palette := []colorful.Color{{R: 1}, {G: 1}, {B: 1}}
	palPath := filepath.Join(dir, "palette.png")
	require.NoError(t, SavePalette(palette, 16, palPath))
	pf, err := os.Open(palPath)
	require.NoError(t, err)
	defer pf.Close()
	strip, err := png.Decode(pf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 48, 16), strip.Bounds())
}

func TestSavePaletteEmpty(t *testing.T) {
	assert.Error(t, SavePalette(nil, 16, filepath.Join(t.TempDir(), "nope.png")))
}
