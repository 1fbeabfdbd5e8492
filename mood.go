package cityposter

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Mood is the coarse emotional category detected in a memory text.
type Mood int

const (
	MoodWarm Mood = iota
	MoodMelancholic
	MoodTense
	MoodNeutral
)

func (m Mood) String() string {
	switch m {
	case MoodWarm:
		return "warm"
	case MoodMelancholic:
		return "melancholic"
	case MoodTense:
		return "tense"
	default:
		return "neutral"
	}
}

// MoodSignature is the analysis result that drives every renderer.
// Derived once per generation and never mutated afterwards.
type MoodSignature struct {
	Mood      Mood
	Palette   []colorful.Color
	Intensity float64 // [0,1], scales effect density/strength
	Keywords  []string
}

// Keyword sets are matched as substrings of the normalized text, so "sun"
// also fires on "sunshine". Scoring order doubles as the tie-break order.
var moodKeywords = [3][]string{
	MoodWarm:        {"sun", "love", "home", "warm", "spring", "smile", "friend", "cozy", "light", "golden"},
	MoodMelancholic: {"rain", "lost", "gone", "cold", "winter", "alone", "goodbye", "empty", "snow", "grey"},
	MoodTense:       {"fear", "run", "dark", "crowd", "noise", "rush", "panic", "late", "traffic", "storm"},
}

var moodPalettes = [4][]colorful.Color{
	MoodWarm:        {hex("#FFE3C2"), hex("#FFB7C5"), hex("#FFF5D6"), hex("#FFD08A")},
	MoodMelancholic: {hex("#A9C8FF"), hex("#D5E0F2"), hex("#6E8BB5"), hex("#8FA8CC")},
	MoodTense:       {hex("#F8E078"), hex("#FF9E6B"), hex("#F4F1E8"), hex("#E86A4A")},
	MoodNeutral:     {hex("#C8DCE6"), hex("#E6F0F5"), hex("#B4C8D2")},
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("bad palette constant %q: %v", s, err))
	}
	return c
}

// AnalyzeMood maps a memory text to a mood, its palette and an intensity
// scalar. Pure: equal input always yields an equal signature, empty or
// unmatched text degrades to neutral with the default palette.
func AnalyzeMood(text string) MoodSignature {
	norm := normalizeText(text)

	best := MoodNeutral
	bestScore := 0
	var hits []string
	for m, words := range moodKeywords {
		score := 0
		var matched []string
		for _, w := range words {
			if strings.Contains(norm, w) {
				score++
				matched = append(matched, w)
			}
		}
		// Strict > keeps the warm > melancholic > tense > neutral tie-break.
		if score > bestScore {
			bestScore = score
			best = Mood(m)
			hits = matched
		}
	}

	return MoodSignature{
		Mood:      best,
		Palette:   clonePalette(moodPalettes[best]),
		Intensity: moodIntensity(norm, bestScore),
		Keywords:  hits,
	}
}

// Describe renders the signature the way the original report showed it,
// e.g. "warm mood, intensity 0.54".
func (s MoodSignature) Describe() string {
	return fmt.Sprintf("%s mood, intensity %.2f", s.Mood, s.Intensity)
}

func normalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// moodIntensity derives the [0,1] effect strength from keyword hits and
// exclamatory punctuation. No randomness: the mapping stays inspectable.
func moodIntensity(norm string, hits int) float64 {
	punct := strings.Count(norm, "!") + strings.Count(norm, "?")
	v := 0.3 + 0.12*float64(hits) + 0.04*float64(punct)
	return min(1.0, max(0.0, v))
}

func clonePalette(p []colorful.Color) []colorful.Color {
	out := make([]colorful.Color, len(p))
	copy(out, p)
	return out
}
