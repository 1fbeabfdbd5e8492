package cityposter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeMoodCategories(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Mood
	}{
		{"warm keywords", "sunshine and home", MoodWarm},
		{"melancholic keywords", "rain, I lost everything", MoodMelancholic},
		{"tense keywords", "running late through dark traffic", MoodTense},
		{"empty text", "", MoodNeutral},
		{"no keyword match", "el puente sobre el agua", MoodNeutral},
		{"tie breaks toward warm", "sun and rain", MoodWarm},
		{"case and whitespace insensitive", "  SUNSHINE AND HOME  ", MoodWarm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := AnalyzeMood(tt.text)
			assert.Equal(t, tt.want, sig.Mood)
		})
	}
}

func TestMoodSignatureShape(t *testing.T) {
	for _, text := range []string{"", "sunshine and home", "rain and snow, alone!", "noise noise noise!!!"} {
		sig := AnalyzeMood(text)
		require.GreaterOrEqual(t, len(sig.Palette), 3)
		require.LessOrEqual(t, len(sig.Palette), 5)
		assert.GreaterOrEqual(t, sig.Intensity, 0.0)
		assert.LessOrEqual(t, sig.Intensity, 1.0)
	}
}

func TestAnalyzeMoodDeterministic(t *testing.T) {
	a := AnalyzeMood("rain on the harbor, gone now")
	b := AnalyzeMood("rain on the harbor, gone now")
	assert.Equal(t, a, b)
}

func TestIntensityGrowsWithSignal(t *testing.T) {
	calm := AnalyzeMood("rain")
	loud := AnalyzeMood("rain and snow, cold and alone, everything gone!!")
	assert.Greater(t, loud.Intensity, calm.Intensity)
}

func TestEmptyTextDefaults(t *testing.T) {
	sig := AnalyzeMood("")
	assert.Equal(t, MoodNeutral, sig.Mood)
	assert.Equal(t, moodPalettes[MoodNeutral], sig.Palette)
	assert.Empty(t, sig.Keywords)
}

func TestDescribe(t *testing.T) {
	sig := AnalyzeMood("sunshine and home")
	assert.Equal(t, "warm mood, intensity 0.54", sig.Describe())
}
