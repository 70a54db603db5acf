package audio

import (
	"github.com/RBarkerArt/delta7-sub000/coherence"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

// TierPreset defines the synthesis targets for one coherence tier. Each
// Base/Span pair is interpolated by in-tier severity: value = Base +
// severity*Span, so the sound keeps moving inside a tier instead of
// stepping only at breakpoints.
type TierPreset struct {
	Name     string
	Waveform string // Hum oscillator shape for this tier

	HumFreqBase float64 // Hum base frequency, Hz
	HumFreqSpan float64

	CutoffBase float64 // Low-pass cutoff, Hz
	CutoffSpan float64

	QBase float64 // Filter resonance
	QSpan float64

	LFODepthBase float64 // Gain modulation depth
	LFODepthSpan float64

	LFORateBase float64 // Modulation rate, Hz
	LFORateSpan float64

	HumGainBase float64 // Hum voice gain
	HumGainSpan float64

	// Click character
	ClickFreq         float64 // Click oscillator frequency, Hz
	ClickDetune       float64 // Random detune range, cents
	DoubleClickChance float64 // Probability of the glitchy echo click
}

// TierPresets is the five-branch tuning table every score-dependent audio
// formula reads from. The hum thins from sawtooth to sine once the tier
// drops to FRAGMENTED.
var TierPresets = map[coherence.Tier]*TierPreset{
	coherence.Stable: {
		Name:         "stable",
		Waveform:     platform.WaveSawtooth,
		HumFreqBase:  55, HumFreqSpan: -3,
		CutoffBase: 1100, CutoffSpan: -200,
		QBase: 0.7, QSpan: 0.3,
		LFODepthBase: 0.015, LFODepthSpan: 0.01,
		LFORateBase: 0.06, LFORateSpan: 0.02,
		HumGainBase: 0.1, HumGainSpan: 0.01,
		ClickFreq: 1000, ClickDetune: 0, DoubleClickChance: 0,
	},
	coherence.Recovering: {
		Name:         "recovering",
		Waveform:     platform.WaveSawtooth,
		HumFreqBase:  52, HumFreqSpan: -4,
		CutoffBase: 850, CutoffSpan: -250,
		QBase: 1.2, QSpan: 0.8,
		LFODepthBase: 0.03, LFODepthSpan: 0.03,
		LFORateBase: 0.09, LFORateSpan: 0.06,
		HumGainBase: 0.11, HumGainSpan: 0.015,
		ClickFreq: 900, ClickDetune: 8, DoubleClickChance: 0.02,
	},
	coherence.Fraying: {
		Name:         "fraying",
		Waveform:     platform.WaveSawtooth,
		HumFreqBase:  48, HumFreqSpan: -5,
		CutoffBase: 600, CutoffSpan: -220,
		QBase: 2.2, QSpan: 1.3,
		LFODepthBase: 0.07, LFODepthSpan: 0.05,
		LFORateBase: 0.16, LFORateSpan: 0.14,
		HumGainBase: 0.12, HumGainSpan: 0.02,
		ClickFreq: 760, ClickDetune: 25, DoubleClickChance: 0.07,
	},
	coherence.Fragmented: {
		Name:         "fragmented",
		Waveform:     platform.WaveSine,
		HumFreqBase:  43, HumFreqSpan: -5,
		CutoffBase: 380, CutoffSpan: -140,
		QBase: 3.8, QSpan: 1.6,
		LFODepthBase: 0.13, LFODepthSpan: 0.08,
		LFORateBase: 0.32, LFORateSpan: 0.28,
		HumGainBase: 0.14, HumGainSpan: 0.025,
		ClickFreq: 620, ClickDetune: 60, DoubleClickChance: 0.15,
	},
	coherence.Critical: {
		Name:         "critical",
		Waveform:     platform.WaveSine,
		HumFreqBase:  38, HumFreqSpan: -6,
		CutoffBase: 240, CutoffSpan: -110,
		QBase: 5.5, QSpan: 2.5,
		LFODepthBase: 0.22, LFODepthSpan: 0.12,
		LFORateBase: 0.65, LFORateSpan: 0.55,
		HumGainBase: 0.16, HumGainSpan: 0.03,
		ClickFreq: 480, ClickDetune: 110, DoubleClickChance: 0.15,
	},
}

// PresetFor returns the tuning preset for a score's tier.
func PresetFor(score float64) (*TierPreset, coherence.Reading) {
	r := coherence.Classify(score)
	return TierPresets[r.Tier], r
}
