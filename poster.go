package cityposter

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidConfig marks a RenderConfig rejected before any rendering.
	ErrInvalidConfig = errors.New("invalid render config")
	// ErrRenderFailure marks an unexpected failure inside a layer renderer.
	ErrRenderFailure = errors.New("render failure")
)

// RenderConfig carries the caller-tunable parameters of one generation.
// Text never lives here: the memory text is a separate argument and can
// never make generation fail.
type RenderConfig struct {
	// Resolution is the square poster side in pixels.
	Resolution int
	// Style selects the topmost decorative overlay.
	Style CityStyle
	// Per-layer blend opacities, all in [0,1].
	MistOpacity       float64
	WatercolorOpacity float64
	PastelOpacity     float64
	OverlayOpacity    float64
	// Seed overrides the text-derived seed when non-nil.
	Seed *int64
}

func DefaultConfig() RenderConfig {
	return RenderConfig{
		Resolution:        1024,
		Style:             StyleWaves,
		MistOpacity:       0.6,
		WatercolorOpacity: 0.85,
		PastelOpacity:     0.5,
		OverlayOpacity:    0.7,
	}
}

// Validate reports the first problem found, wrapped in ErrInvalidConfig.
func (c RenderConfig) Validate() error {
	if c.Resolution <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %d", ErrInvalidConfig, c.Resolution)
	}
	if _, ok := overlayRenderers[c.Style]; !ok {
		return fmt.Errorf("%w: unknown city style %q", ErrInvalidConfig, c.Style)
	}
	opacities := []struct {
		name string
		v    float64
	}{
		{"mist", c.MistOpacity},
		{"watercolor", c.WatercolorOpacity},
		{"pastel", c.PastelOpacity},
		{"overlay", c.OverlayOpacity},
	}
	for _, o := range opacities {
		if math.IsNaN(o.v) || math.IsInf(o.v, 0) || o.v < 0 || o.v > 1 {
			return fmt.Errorf("%w: %s opacity %v out of [0,1]", ErrInvalidConfig, o.name, o.v)
		}
	}
	return nil
}

// Poster is the sole artifact of a generation run: the flattened image
// plus the signature and seed that produced it, for caller-side reporting.
type Poster struct {
	Image     *image.RGBA
	Signature MoodSignature
	Seed      int64
}

// Report is the one-line summary the original app showed next to the
// poster, e.g. `detected mood: warm, intensity 0.54 (keywords: sun, home)`.
func (p *Poster) Report() string {
	if len(p.Signature.Keywords) == 0 {
		return fmt.Sprintf("detected mood: %s", p.Signature.Describe())
	}
	return fmt.Sprintf("detected mood: %s (keywords: %s)",
		p.Signature.Describe(), strings.Join(p.Signature.Keywords, ", "))
}

// Generate runs the whole pipeline: analyze the text, derive the seed,
// render the four layers, composite them over the base gradient. The
// pipeline is pure; two calls with equal text and config produce
// byte-identical posters. Layers are independent pure computations and
// render in parallel.
func Generate(text string, cfg RenderConfig) (*Poster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sig := AnalyzeMood(text)
	seed := DeriveSeed(text, cfg.Seed)
	res := cfg.Resolution

	var (
		base                         *image.RGBA
		mist, watercolor, pastel, ov *image.NRGBA
	)
	var g errgroup.Group
	g.Go(renderStep("base", func() {
		base = BaseGradient(res, sig.Palette, sig.Intensity)
	}))
	g.Go(renderStep("mist", func() {
		mist = RenderMist(res, sig.Palette, sig.Intensity, seed)
	}))
	g.Go(renderStep("watercolor", func() {
		watercolor = RenderWatercolor(res, sig.Palette, sig.Intensity, seed)
	}))
	g.Go(renderStep("pastel", func() {
		pastel = RenderPastel(res, sig.Intensity, seed)
	}))
	g.Go(renderStep(string(cfg.Style), func() {
		ov = RenderOverlay(res, cfg.Style, sig.Palette, sig.Intensity, seed)
	}))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	img := Compose(base,
		[]*image.NRGBA{mist, watercolor, pastel, ov},
		[]float64{cfg.MistOpacity, cfg.WatercolorOpacity, cfg.PastelOpacity, cfg.OverlayOpacity},
	)
	return &Poster{Image: img, Signature: sig, Seed: seed}, nil
}

// renderStep wraps a renderer so a panic (huge allocations, index bugs)
// surfaces as ErrRenderFailure instead of tearing the caller down. No
// partial poster ever escapes: any failed step fails the whole run.
func renderStep(name string, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %s: %v", ErrRenderFailure, name, r)
			}
		}()
		fn()
		return nil
	}
}
