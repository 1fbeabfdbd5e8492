package cityposter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() RenderConfig {
	cfg := DefaultConfig()
	cfg.Resolution = testRes
	return cfg
}

func TestGenerateDeterministic(t *testing.T) {
	text := "rain over the harbor, everyone gone"
	a, err := Generate(text, smallConfig())
	require.NoError(t, err)
	b, err := Generate(text, smallConfig())
	require.NoError(t, err)

	assert.Equal(t, a.Seed, b.Seed)
	assert.Equal(t, a.Signature, b.Signature)
	assert.Equal(t, a.Image.Pix, b.Image.Pix, "repeated generation must be byte-identical")
}

func TestGenerateEmptyText(t *testing.T) {
	poster, err := Generate("", smallConfig())
	require.NoError(t, err)
	assert.Equal(t, MoodNeutral, poster.Signature.Mood)
	assert.Equal(t, testRes, poster.Image.Bounds().Dx())
	assert.Equal(t, testRes, poster.Image.Bounds().Dy())
}

func TestGenerateOutputShape(t *testing.T) {
	cfg := smallConfig()
	cfg.Resolution = 97
	poster, err := Generate("sunshine and home", cfg)
	require.NoError(t, err)

	b := poster.Image.Bounds()
	require.Equal(t, 97, b.Dx())
	require.Equal(t, 97, b.Dy())
	for i := 3; i < len(poster.Image.Pix); i += 4 {
		if poster.Image.Pix[i] != 255 {
			t.Fatalf("transparent pixel survived compositing at byte %d", i)
		}
	}
}

func TestGenerateSeedOverride(t *testing.T) {
	s := int64(31337)
	cfg := smallConfig()
	cfg.Seed = &s

	a, err := Generate("sunshine and home", cfg)
	require.NoError(t, err)
	b, err := Generate("rain, I lost everything", cfg)
	require.NoError(t, err)

	assert.Equal(t, s, a.Seed)
	assert.Equal(t, s, b.Seed)
	// Moods (and therefore palettes) still come from the text.
	assert.NotEqual(t, a.Signature.Mood, b.Signature.Mood)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RenderConfig)
	}{
		{"zero resolution", func(c *RenderConfig) { c.Resolution = 0 }},
		{"negative resolution", func(c *RenderConfig) { c.Resolution = -5 }},
		{"unknown style", func(c *RenderConfig) { c.Style = "vaporwave" }},
		{"opacity above one", func(c *RenderConfig) { c.MistOpacity = 1.5 }},
		{"negative opacity", func(c *RenderConfig) { c.OverlayOpacity = -0.1 }},
		{"NaN opacity", func(c *RenderConfig) { c.PastelOpacity = math.NaN() }},
		{"infinite opacity", func(c *RenderConfig) { c.WatercolorOpacity = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.mutate(&cfg)
			_, err := Generate("any text", cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestPosterReport(t *testing.T) {
	poster, err := Generate("sunshine and home", smallConfig())
	require.NoError(t, err)
	assert.Equal(t, "detected mood: warm mood, intensity 0.54 (keywords: sun, home)", poster.Report())
}

func TestTextNeverFails(t *testing.T) {
	for _, text := range []string{"", " ", "!!!", "도시의 기억, 비 오는 밤", "a very very long memory " + string(make([]byte, 1000))} {
		_, err := Generate(text, smallConfig())
		require.NoError(t, err)
	}
}
