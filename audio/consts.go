package audio

// DefaultConfig is the tuned baseline. The breath surge gate is the one
// value that diverged between tunings of the source material; 50 is the
// strict variant, kept adjustable through Config.BreathSurgeMaxScore.
var DefaultConfig = Config{
	// Master settings
	MasterVolume:     0.7,
	RampTimeConstant: 1.5,
	MuteRampSeconds:  0.35,

	// Persistent hum graph
	HumVolume:     0.16,
	HarmonicRatio: 2.0,
	HarmonicGain:  0.05,

	// Click transient
	ClickVolume:      0.18,
	ClickSeconds:     0.06,
	DoubleClickDelay: 0.07,

	// Breath surge transient
	BreathSurgeMaxScore: 50,
	SurgeSeconds:        1.4,
	SurgeVolume:         0.22,
	SurgeCutoff:         900,

	// Signal noise transient
	SignalNoiseSeconds: 0.35,
	SignalNoiseVolume:  0.12,
	SignalNoiseCenter:  2400,
	SignalNoiseQ:       8,

	// Blip transient
	BlipVolume:   0.1,
	BlipSeconds:  0.09,
	BlipBaseFreq: 440,

	// Temporal shift sweep
	SweepSeconds:   1.8,
	SweepVolume:    0.25,
	SweepStartFreq: 1200,
	SweepEndFreq:   80,
}
