package narrative

import (
	"time"

	"github.com/RBarkerArt/delta7-sub000/coherence"
)

// Config enumerates the corruption and typewriter tunables.
type Config struct {
	// Ambient corruption
	MaxCharSubChance  float64 // Per-character substitution chance at score 0
	GhostFraction     float64 // Fraction of substitutions that use block glyphs
	MaxDriftChance    float64 // Per-word semantic drift chance at score 0
	RedactionToken    string  // Replacement for drifted words
	GlyphSet          string  // Substitution glyph pool
	GhostGlyphs       string  // Block-drawing glyph pool
	WhisperChance     float64 // Per-tick hidden phrase splice chance below FRAGMENTED
	WhisperVocabulary []string
	EchoMaxChance     float64 // Duplicate-echo chance at score 0
	JitterMaxSpacing  float64 // Letter-spacing jitter ceiling, em

	// Typewriter
	BaseTick         time.Duration // Per-character reveal delay baseline
	SlowFactor       float64       // Tick multiplier when score < SlowBelowScore
	SlowBelowScore   float64
	VariancePerUnit  time.Duration // Random extra delay per point of lost score
	ExtraJitter      time.Duration // Additional jitter ceiling when score < JitterBelowScore
	JitterBelowScore float64
	GlitchMinChance  float64       // Glitch-then-correct chance at score 100
	GlitchMaxChance  float64       // Glitch-then-correct chance at score 0
	AdvanceBase      time.Duration // Auto-advance delay baseline
	AdvancePerUnit   time.Duration // Extra advance delay per point of lost score
}

// DefaultConfig is the tuned baseline for both behaviors.
var DefaultConfig = Config{
	MaxCharSubChance: 0.16,
	GhostFraction:    0.3,
	MaxDriftChance:   0.22,
	RedactionToken:   "█████",
	GlyphSet:         "#%&@?!/\\|<>^~*+=;:",
	GhostGlyphs:      "░▒▓█",
	WhisperChance:    0.08,
	WhisperVocabulary: []string{
		"still here",
		"under the noise",
		"do you remember",
		"it is thinning",
		"hold the line",
	},
	EchoMaxChance:    0.25,
	JitterMaxSpacing: 0.18,

	BaseTick:         30 * time.Millisecond,
	SlowFactor:       1.5,
	SlowBelowScore:   40,
	VariancePerUnit:  400 * time.Microsecond,
	ExtraJitter:      25 * time.Millisecond,
	JitterBelowScore: 70,
	GlitchMinChance:  0.01,
	GlitchMaxChance:  0.15,
	AdvanceBase:      900 * time.Millisecond,
	AdvancePerUnit:   12 * time.Millisecond,
}

// RerollPeriods is the ambient corruption re-roll period per tier. Each
// draw is jittered ±30% around these.
var RerollPeriods = map[coherence.Tier]time.Duration{
	coherence.Stable:     5000 * time.Millisecond,
	coherence.Recovering: 3400 * time.Millisecond,
	coherence.Fraying:    2200 * time.Millisecond,
	coherence.Fragmented: 1300 * time.Millisecond,
	coherence.Critical:   800 * time.Millisecond,
}

// RerollJitter is the spread applied to every re-roll period draw.
const RerollJitter = 0.3

// Normalize fills zero values from the defaults.
func (c Config) Normalize() Config {
	d := DefaultConfig
	if c.MaxCharSubChance <= 0 {
		c.MaxCharSubChance = d.MaxCharSubChance
	}
	if c.GhostFraction <= 0 {
		c.GhostFraction = d.GhostFraction
	}
	if c.MaxDriftChance <= 0 {
		c.MaxDriftChance = d.MaxDriftChance
	}
	if c.RedactionToken == "" {
		c.RedactionToken = d.RedactionToken
	}
	if c.GlyphSet == "" {
		c.GlyphSet = d.GlyphSet
	}
	if c.GhostGlyphs == "" {
		c.GhostGlyphs = d.GhostGlyphs
	}
	if c.WhisperChance <= 0 {
		c.WhisperChance = d.WhisperChance
	}
	if len(c.WhisperVocabulary) == 0 {
		c.WhisperVocabulary = d.WhisperVocabulary
	}
	if c.EchoMaxChance <= 0 {
		c.EchoMaxChance = d.EchoMaxChance
	}
	if c.JitterMaxSpacing <= 0 {
		c.JitterMaxSpacing = d.JitterMaxSpacing
	}
	if c.BaseTick <= 0 {
		c.BaseTick = d.BaseTick
	}
	if c.SlowFactor <= 0 {
		c.SlowFactor = d.SlowFactor
	}
	if c.SlowBelowScore <= 0 {
		c.SlowBelowScore = d.SlowBelowScore
	}
	if c.VariancePerUnit <= 0 {
		c.VariancePerUnit = d.VariancePerUnit
	}
	if c.ExtraJitter <= 0 {
		c.ExtraJitter = d.ExtraJitter
	}
	if c.JitterBelowScore <= 0 {
		c.JitterBelowScore = d.JitterBelowScore
	}
	if c.GlitchMinChance <= 0 {
		c.GlitchMinChance = d.GlitchMinChance
	}
	if c.GlitchMaxChance <= 0 {
		c.GlitchMaxChance = d.GlitchMaxChance
	}
	if c.AdvanceBase <= 0 {
		c.AdvanceBase = d.AdvanceBase
	}
	if c.AdvancePerUnit <= 0 {
		c.AdvancePerUnit = d.AdvancePerUnit
	}
	return c
}
