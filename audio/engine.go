// Package audio owns the single persistent synthesis graph and every
// one-shot transient sound. Nothing else in the repository touches audio
// nodes; the engine is handed an AudioContext capability and keeps it for
// its whole lifetime.
package audio

import (
	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

// State is the engine lifecycle.
type State int

const (
	Uninitialized State = iota
	Ready
	Disposed
)

// Targets is the last set of parameter values the engine asked the graph to
// ramp toward. It is the inspectable half of the synthesis state; the node
// graph itself is private.
type Targets struct {
	Waveform     string
	Frequency    float64
	FilterCutoff float64
	FilterQ      float64
	LFODepth     float64
	LFORate      float64
	HumGain      float64
}

// Engine drives the ambient hum and fires transients. It is constructed
// explicitly by the presentation root and disposed with it; there is no
// package-level instance.
type Engine struct {
	ctx   platform.AudioContext
	cfg   Config
	rng   *common.SeededRNG
	state State
	muted bool

	// Persistent graph, built once on the first successful Init.
	humOsc       platform.Oscillator
	humFilter    platform.BiquadFilter
	humGain      platform.Gain
	harmonicOsc  platform.Oscillator
	harmonicGain platform.Gain
	lfo          platform.Oscillator
	lfoDepth     platform.Gain
	masterGain   platform.Gain

	lastScore float64
	targets   Targets
}

// NewEngine creates an engine bound to ctx. A nil ctx is allowed and means
// the host has no audio capability: Init will report false and every play
// call stays a no-op.
func NewEngine(ctx platform.AudioContext, cfg Config, rng *common.SeededRNG) *Engine {
	return &Engine{
		ctx:       ctx,
		cfg:       cfg.Normalize(),
		rng:       rng,
		lastScore: 100,
	}
}

// State reports the lifecycle state.
func (e *Engine) State() State { return e.state }

// Muted reports whether output is currently muted.
func (e *Engine) Muted() bool { return e.muted }

// Targets returns the last parameter set the graph was asked to approach.
func (e *Engine) Targets() Targets { return e.targets }

// Init brings the engine to Ready. Must be called from a user gesture so
// autoplay policies allow the context to run. Idempotent: when already
// Ready it only resumes a suspended context. Returns false when the host
// has no audio capability or graph construction failed; the engine stays
// Uninitialized and Init may be retried.
func (e *Engine) Init() (ok bool) {
	if e.state == Disposed {
		return false
	}
	if e.state == Ready {
		if e.ctx.State() == platform.StateSuspended {
			e.ctx.Resume()
		}
		return true
	}
	if e.ctx == nil {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	if e.ctx.State() == platform.StateSuspended {
		e.ctx.Resume()
	}
	e.buildGraph()
	e.state = Ready
	e.retune(e.lastScore)
	return true
}

// buildGraph assembles the persistent hum graph: hum oscillator through a
// low-pass filter into the hum gain, a harmonic voice at a fixed multiple
// of the hum frequency, and a slow LFO modulating the hum gain. Everything
// sums into the master gain.
func (e *Engine) buildGraph() {
	now := e.ctx.CurrentTime()

	e.masterGain = e.ctx.CreateGain()
	e.masterGain.Gain().SetValue(e.cfg.MasterVolume)
	e.masterGain.Connect(e.ctx.Destination())

	e.humGain = e.ctx.CreateGain()
	e.humGain.Gain().SetValue(0)
	e.humGain.Connect(e.masterGain)

	e.humFilter = e.ctx.CreateBiquadFilter()
	e.humFilter.SetFilterType(platform.FilterLowpass)
	e.humFilter.Connect(e.humGain)

	e.humOsc = e.ctx.CreateOscillator()
	e.humOsc.SetWaveform(platform.WaveSawtooth)
	e.humOsc.Connect(e.humFilter)

	e.harmonicGain = e.ctx.CreateGain()
	e.harmonicGain.Gain().SetValue(e.cfg.HarmonicGain)
	e.harmonicGain.Connect(e.masterGain)

	e.harmonicOsc = e.ctx.CreateOscillator()
	e.harmonicOsc.SetWaveform(platform.WaveSine)
	e.harmonicOsc.Connect(e.harmonicGain)

	e.lfoDepth = e.ctx.CreateGain()
	e.lfoDepth.Gain().SetValue(0)
	e.lfoDepth.ConnectParam(e.humGain.Gain())

	e.lfo = e.ctx.CreateOscillator()
	e.lfo.SetWaveform(platform.WaveSine)
	e.lfo.Connect(e.lfoDepth)

	e.humOsc.Start(now)
	e.harmonicOsc.Start(now)
	e.lfo.Start(now)
}

// SetCoherence re-targets the persistent graph for a new score. The graph
// is never rebuilt: every continuous parameter is approached with an
// exponential ramp so back-to-back calls stay click-free. Safe to call in
// any state; the score is remembered for a later Init.
func (e *Engine) SetCoherence(score float64) {
	e.lastScore = score
	if e.state != Ready {
		return
	}
	e.retune(score)
}

func (e *Engine) retune(score float64) {
	preset, reading := PresetFor(score)
	sev := reading.Severity

	prevWave := e.targets.Waveform
	e.targets = Targets{
		Waveform:     preset.Waveform,
		Frequency:    preset.HumFreqBase + sev*preset.HumFreqSpan,
		FilterCutoff: preset.CutoffBase + sev*preset.CutoffSpan,
		FilterQ:      preset.QBase + sev*preset.QSpan,
		LFODepth:     preset.LFODepthBase + sev*preset.LFODepthSpan,
		LFORate:      preset.LFORateBase + sev*preset.LFORateSpan,
		HumGain:      preset.HumGainBase + sev*preset.HumGainSpan,
	}
	if e.targets.HumGain > e.cfg.HumVolume {
		e.targets.HumGain = e.cfg.HumVolume
	}

	now := e.ctx.CurrentTime()
	tc := e.cfg.RampTimeConstant

	// Waveform is a discrete switch; only touch it on an actual change so
	// the oscillator phase is left alone otherwise.
	if e.targets.Waveform != prevWave {
		e.humOsc.SetWaveform(e.targets.Waveform)
	}

	e.humOsc.Frequency().SetTargetAtTime(e.targets.Frequency, now, tc)
	e.harmonicOsc.Frequency().SetTargetAtTime(e.targets.Frequency*e.cfg.HarmonicRatio, now, tc)
	e.humFilter.Frequency().SetTargetAtTime(e.targets.FilterCutoff, now, tc)
	e.humFilter.Q().SetTargetAtTime(e.targets.FilterQ, now, tc)
	e.lfoDepth.Gain().SetTargetAtTime(e.targets.LFODepth, now, tc)
	e.lfo.Frequency().SetTargetAtTime(e.targets.LFORate, now, tc)
	e.humGain.Gain().SetTargetAtTime(e.targets.HumGain, now, tc)
}

// SetMuted ramps the master gain instead of disconnecting, so muting never
// clicks. Playback calls check the flag and become no-ops while muted.
func (e *Engine) SetMuted(muted bool) {
	e.muted = muted
	if e.state != Ready {
		return
	}
	now := e.ctx.CurrentTime()
	target := 0.0
	if !muted {
		target = e.cfg.MasterVolume
	}
	g := e.masterGain.Gain()
	g.CancelScheduledValues(now)
	g.SetValueAtTime(g.Value(), now)
	g.LinearRampToValueAtTime(target, now+e.cfg.MuteRampSeconds)
}

// Dispose stops the persistent oscillators and closes the context. The
// context is closed even when the engine never reached Ready; the host may
// have built it eagerly before any gesture arrived. The engine is unusable
// afterwards.
func (e *Engine) Dispose() {
	if e.state == Disposed {
		return
	}
	if e.state == Ready {
		now := e.ctx.CurrentTime()
		e.humOsc.Stop(now)
		e.harmonicOsc.Stop(now)
		e.lfo.Stop(now)
	}
	if e.ctx != nil {
		e.ctx.Close()
	}
	e.state = Disposed
}

// canPlay gates every transient: never error, just stay silent when the
// engine isn't in a state to make sound.
func (e *Engine) canPlay() bool {
	return e.state == Ready && !e.muted
}
