package particles

// Variant selects the particle shape and motion family.
type Variant string

const (
	VariantDust    Variant = "dust"    // Slow drifting motes
	VariantAsh     Variant = "ash"     // Falling flakes, respawn at the top
	VariantStreaks Variant = "streaks" // Fast elongated slivers
	VariantNone    Variant = "none"    // Field renders nothing
)

// Config describes a day's particle field.
type Config struct {
	Variant Variant
	Palette []string // Fill styles, one picked per particle
	Density float64  // Particles per 10k square pixels
	Size    float64  // Base radius, px
	Speed   float64  // Velocity multiplier
	Opacity float64  // Alpha ceiling before score scaling
}

// DefaultConfig is the ambient dust used when a day specifies nothing.
var DefaultConfig = Config{
	Variant: VariantDust,
	Palette: []string{"rgba(180,190,210,1)", "rgba(140,150,170,1)", "rgba(200,205,220,1)"},
	Density: 0.5,
	Size:    1.6,
	Speed:   1,
	Opacity: 0.45,
}

// MaxParticles bounds the pool no matter what density and viewport ask for.
const MaxParticles = 240

// FlickerMaxScore gates the per-frame transparency flicker: fields only
// flicker once coherence has dropped to half.
const FlickerMaxScore = 50

// Normalize fills zero values from the defaults.
func (c Config) Normalize() Config {
	d := DefaultConfig
	if c.Variant == "" {
		c.Variant = d.Variant
	}
	if len(c.Palette) == 0 {
		c.Palette = d.Palette
	}
	if c.Density <= 0 {
		c.Density = d.Density
	}
	if c.Size <= 0 {
		c.Size = d.Size
	}
	if c.Speed <= 0 {
		c.Speed = d.Speed
	}
	if c.Opacity <= 0 {
		c.Opacity = d.Opacity
	}
	return c
}

// equal reports whether two configs describe the same field. Used to skip
// pool rebuilds when content changes but the field does not.
func (c Config) equal(o Config) bool {
	if c.Variant != o.Variant || c.Density != o.Density || c.Size != o.Size ||
		c.Speed != o.Speed || c.Opacity != o.Opacity || len(c.Palette) != len(o.Palette) {
		return false
	}
	for i := range c.Palette {
		if c.Palette[i] != o.Palette[i] {
			return false
		}
	}
	return true
}
