package audio

import "github.com/RBarkerArt/delta7-sub000/platform"

// Transient one-shots. Each call builds its own short-lived node graph,
// schedules its stop time, and lets the nodes become collectable. The
// persistent hum graph is never touched from here. A node-creation panic
// mid-build is swallowed: a missing sound must never break playback.

const silentFloor = 0.0001

// PlayClick fires the per-character click. Timbre follows the tier: a
// single confident square at STABLE, detuned and sometimes echoed with a
// second glitch click as coherence falls.
func (e *Engine) PlayClick(score float64) {
	if !e.canPlay() {
		return
	}
	defer swallow()

	preset, _ := PresetFor(score)
	now := e.ctx.CurrentTime()
	e.clickAt(preset, now)

	if e.rng.Chance(preset.DoubleClickChance) {
		e.clickAt(preset, now+e.cfg.DoubleClickDelay)
	}
}

func (e *Engine) clickAt(preset *TierPreset, at float64) {
	osc := e.ctx.CreateOscillator()
	osc.SetWaveform(platform.WaveSquare)
	osc.Frequency().SetValueAtTime(preset.ClickFreq, at)
	if preset.ClickDetune > 0 {
		osc.Detune().SetValueAtTime(e.rng.RandomFloat(-preset.ClickDetune, preset.ClickDetune), at)
	}

	gain := e.ctx.CreateGain()
	gain.Gain().SetValueAtTime(e.cfg.ClickVolume, at)
	gain.Gain().LinearRampToValueAtTime(silentFloor, at+e.cfg.ClickSeconds)

	osc.Connect(gain)
	gain.Connect(e.masterGain)
	osc.Start(at)
	osc.Stop(at + e.cfg.ClickSeconds + 0.01)
}

// PlayBreathSurge fires the low filtered-noise swell. Surges only happen
// under duress: above Config.BreathSurgeMaxScore the call refuses and stays
// silent.
func (e *Engine) PlayBreathSurge(score float64) {
	if !e.canPlay() || score > e.cfg.BreathSurgeMaxScore {
		return
	}
	defer swallow()

	now := e.ctx.CurrentTime()
	dur := e.cfg.SurgeSeconds

	src := e.noiseSource(dur, 1)

	filter := e.ctx.CreateBiquadFilter()
	filter.SetFilterType(platform.FilterLowpass)
	filter.Frequency().SetValueAtTime(e.cfg.SurgeCutoff, now)

	gain := e.ctx.CreateGain()
	gain.Gain().SetValueAtTime(silentFloor, now)
	gain.Gain().LinearRampToValueAtTime(e.cfg.SurgeVolume, now+dur*0.4)
	gain.Gain().LinearRampToValueAtTime(silentFloor, now+dur)

	src.Connect(filter)
	filter.Connect(gain)
	gain.Connect(e.masterGain)
	src.Start(now)
	src.Stop(now + dur)
}

// PlaySignalNoise fires a short band-limited static burst, harsher as the
// score falls.
func (e *Engine) PlaySignalNoise(score float64) {
	if !e.canPlay() {
		return
	}
	defer swallow()

	now := e.ctx.CurrentTime()
	dur := e.cfg.SignalNoiseSeconds

	src := e.noiseSource(dur, 0.6)

	filter := e.ctx.CreateBiquadFilter()
	filter.SetFilterType(platform.FilterBandpass)
	// Wander the band center downward with degradation.
	center := e.cfg.SignalNoiseCenter * (0.4 + 0.6*score/100)
	filter.Frequency().SetValueAtTime(center, now)
	filter.Q().SetValueAtTime(e.cfg.SignalNoiseQ, now)

	gain := e.ctx.CreateGain()
	gain.Gain().SetValueAtTime(e.cfg.SignalNoiseVolume, now)
	gain.Gain().LinearRampToValueAtTime(silentFloor, now+dur)

	src.Connect(filter)
	filter.Connect(gain)
	gain.Connect(e.masterGain)
	src.Start(now)
	src.Stop(now + dur)
}

// PlayBlip fires a small sine ping, pitched up with the score.
func (e *Engine) PlayBlip(score float64) {
	if !e.canPlay() {
		return
	}
	defer swallow()

	now := e.ctx.CurrentTime()

	osc := e.ctx.CreateOscillator()
	osc.SetWaveform(platform.WaveSine)
	osc.Frequency().SetValueAtTime(e.cfg.BlipBaseFreq*(1+score/200), now)

	gain := e.ctx.CreateGain()
	gain.Gain().SetValueAtTime(e.cfg.BlipVolume, now)
	gain.Gain().LinearRampToValueAtTime(silentFloor, now+e.cfg.BlipSeconds)

	osc.Connect(gain)
	gain.Connect(e.masterGain)
	osc.Start(now)
	osc.Stop(now + e.cfg.BlipSeconds + 0.01)
}

// PlayTemporalShift fires the long downward sweep used on transition
// events (a narrative day change).
func (e *Engine) PlayTemporalShift() {
	if !e.canPlay() {
		return
	}
	defer swallow()

	now := e.ctx.CurrentTime()
	dur := e.cfg.SweepSeconds

	osc := e.ctx.CreateOscillator()
	osc.SetWaveform(platform.WaveSawtooth)
	osc.Frequency().SetValueAtTime(e.cfg.SweepStartFreq, now)
	osc.Frequency().LinearRampToValueAtTime(e.cfg.SweepEndFreq, now+dur)

	filter := e.ctx.CreateBiquadFilter()
	filter.SetFilterType(platform.FilterLowpass)
	filter.Frequency().SetValueAtTime(e.cfg.SweepStartFreq*2, now)
	filter.Frequency().LinearRampToValueAtTime(e.cfg.SweepEndFreq*2, now+dur)

	gain := e.ctx.CreateGain()
	gain.Gain().SetValueAtTime(silentFloor, now)
	gain.Gain().LinearRampToValueAtTime(e.cfg.SweepVolume, now+0.1)
	gain.Gain().LinearRampToValueAtTime(silentFloor, now+dur)

	osc.Connect(filter)
	filter.Connect(gain)
	gain.Connect(e.masterGain)
	osc.Start(now)
	osc.Stop(now + dur)
}

// noiseSource builds a one-shot buffer source filled with exponentially
// decaying noise from the injected RNG.
func (e *Engine) noiseSource(seconds, decay float64) platform.BufferSource {
	rate := e.ctx.SampleRate()
	length := int(rate * seconds)
	if length < 1 {
		length = 1
	}

	buf := e.ctx.CreateBuffer(1, length, rate)
	for i := 0; i < length; i++ {
		progress := float64(i) / float64(length)
		envelope := 1 - progress*decay
		buf.SetSample(0, i, (e.rng.Random()*2-1)*envelope)
	}

	src := e.ctx.CreateBufferSource()
	src.SetBuffer(buf)
	return src
}

// swallow drops a panic from a transient's node construction.
func swallow() {
	_ = recover()
}
