package audio

// Config enumerates every tunable the engine recognizes. Values are
// validated by Normalize at the point the config enters the engine; the
// defaults live in consts.go.
type Config struct {
	// Master settings
	MasterVolume     float64 // 0.0 - 1.0
	RampTimeConstant float64 // Seconds; exponential approach constant for retuning
	MuteRampSeconds  float64 // Mute/unmute gain ramp length

	// Persistent hum graph
	HumVolume     float64 // Hum voice gain ceiling
	HarmonicRatio float64 // Harmonic oscillator frequency multiple of the hum
	HarmonicGain  float64 // Harmonic voice gain

	// Click transient
	ClickVolume      float64 // Peak click gain
	ClickSeconds     float64 // Click envelope length
	DoubleClickDelay float64 // Gap before the echo click, seconds

	// Breath surge transient
	BreathSurgeMaxScore float64 // Surges refuse to fire above this score
	SurgeSeconds        float64 // Noise burst length
	SurgeVolume         float64 // Peak surge gain
	SurgeCutoff         float64 // Low-pass cutoff shaping the burst

	// Signal noise transient
	SignalNoiseSeconds float64 // Burst length
	SignalNoiseVolume  float64 // Peak gain
	SignalNoiseCenter  float64 // Bandpass center frequency
	SignalNoiseQ       float64 // Bandpass resonance

	// Blip transient
	BlipVolume   float64 // Peak blip gain
	BlipSeconds  float64 // Blip envelope length
	BlipBaseFreq float64 // Blip frequency floor; rises with score

	// Temporal shift sweep
	SweepSeconds   float64 // Sweep length
	SweepVolume    float64 // Peak sweep gain
	SweepStartFreq float64 // Sweep origin frequency
	SweepEndFreq   float64 // Sweep destination frequency
}

// Normalize fills zero or out-of-range values from the defaults so a
// partially specified config still behaves.
func (c Config) Normalize() Config {
	d := DefaultConfig
	if c.MasterVolume <= 0 || c.MasterVolume > 1 {
		c.MasterVolume = d.MasterVolume
	}
	if c.RampTimeConstant <= 0 {
		c.RampTimeConstant = d.RampTimeConstant
	}
	if c.MuteRampSeconds <= 0 {
		c.MuteRampSeconds = d.MuteRampSeconds
	}
	if c.HumVolume <= 0 {
		c.HumVolume = d.HumVolume
	}
	if c.HarmonicRatio <= 0 {
		c.HarmonicRatio = d.HarmonicRatio
	}
	if c.HarmonicGain <= 0 {
		c.HarmonicGain = d.HarmonicGain
	}
	if c.ClickVolume <= 0 {
		c.ClickVolume = d.ClickVolume
	}
	if c.ClickSeconds <= 0 {
		c.ClickSeconds = d.ClickSeconds
	}
	if c.DoubleClickDelay <= 0 {
		c.DoubleClickDelay = d.DoubleClickDelay
	}
	if c.BreathSurgeMaxScore <= 0 {
		c.BreathSurgeMaxScore = d.BreathSurgeMaxScore
	}
	if c.SurgeSeconds <= 0 {
		c.SurgeSeconds = d.SurgeSeconds
	}
	if c.SurgeVolume <= 0 {
		c.SurgeVolume = d.SurgeVolume
	}
	if c.SurgeCutoff <= 0 {
		c.SurgeCutoff = d.SurgeCutoff
	}
	if c.SignalNoiseSeconds <= 0 {
		c.SignalNoiseSeconds = d.SignalNoiseSeconds
	}
	if c.SignalNoiseVolume <= 0 {
		c.SignalNoiseVolume = d.SignalNoiseVolume
	}
	if c.SignalNoiseCenter <= 0 {
		c.SignalNoiseCenter = d.SignalNoiseCenter
	}
	if c.SignalNoiseQ <= 0 {
		c.SignalNoiseQ = d.SignalNoiseQ
	}
	if c.BlipVolume <= 0 {
		c.BlipVolume = d.BlipVolume
	}
	if c.BlipSeconds <= 0 {
		c.BlipSeconds = d.BlipSeconds
	}
	if c.BlipBaseFreq <= 0 {
		c.BlipBaseFreq = d.BlipBaseFreq
	}
	if c.SweepSeconds <= 0 {
		c.SweepSeconds = d.SweepSeconds
	}
	if c.SweepVolume <= 0 {
		c.SweepVolume = d.SweepVolume
	}
	if c.SweepStartFreq <= 0 {
		c.SweepStartFreq = d.SweepStartFreq
	}
	if c.SweepEndFreq <= 0 {
		c.SweepEndFreq = d.SweepEndFreq
	}
	return c
}
