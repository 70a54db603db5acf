package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

func newTestEngine() (*Engine, *platform.MemoryAudioContext) {
	ctx := platform.NewMemoryAudioContext()
	e := NewEngine(ctx, Config{}, common.NewSeededRNG(42))
	return e, ctx
}

// humOsc is the first oscillator built by the persistent graph.
func humOsc(ctx *platform.MemoryAudioContext) *platform.MemoryOscillator {
	return ctx.Oscillators[0]
}

func TestEngine_InitBuildsPersistentGraph(t *testing.T) {
	e, ctx := newTestEngine()

	require.True(t, e.Init())
	assert.Equal(t, Ready, e.State())

	// Hum, harmonic, LFO: all started, none stopped.
	require.Len(t, ctx.Oscillators, 3)
	assert.Equal(t, 3, ctx.RunningOscillators())
}

func TestEngine_InitIdempotent(t *testing.T) {
	e, ctx := newTestEngine()

	require.True(t, e.Init())
	require.True(t, e.Init())

	// No second graph.
	assert.Len(t, ctx.Oscillators, 3)
}

func TestEngine_InitResumesSuspendedContext(t *testing.T) {
	ctx := platform.NewSuspendedMemoryAudioContext()
	e := NewEngine(ctx, Config{}, common.NewSeededRNG(42))

	require.True(t, e.Init())
	assert.Equal(t, platform.StateRunning, ctx.State())

	// A later gesture re-invoking Init on an already-ready engine resumes
	// again instead of rebuilding.
	ctx.Resume()
	require.True(t, e.Init())
	assert.Len(t, ctx.Oscillators, 3)
}

func TestEngine_InitWithoutCapability(t *testing.T) {
	e := NewEngine(nil, Config{}, common.NewSeededRNG(42))

	assert.False(t, e.Init())
	assert.Equal(t, Uninitialized, e.State())

	// Play calls on an uninitialized engine are silent no-ops.
	e.PlayClick(50)
	e.PlayBreathSurge(10)
	e.SetCoherence(30)
}

func TestEngine_InitFailureIsRetryable(t *testing.T) {
	e, ctx := newTestEngine()
	ctx.FailNodeCreation = true

	assert.False(t, e.Init())
	assert.Equal(t, Uninitialized, e.State())

	ctx.FailNodeCreation = false
	assert.True(t, e.Init())
	assert.Equal(t, Ready, e.State())
}

func TestEngine_SetCoherenceAlwaysRamps(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	e.SetCoherence(70)
	e.SetCoherence(65)
	e.SetCoherence(10)

	// Every frequency move on the live hum oscillator must be an
	// exponential approach, never a step.
	events := humOsc(ctx).Freq.Events
	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.Equal(t, "setTarget", ev.Kind)
		assert.Equal(t, DefaultConfig.RampTimeConstant, ev.TimeConstant)
	}
}

func TestEngine_WaveformFollowsTier(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	e.SetCoherence(90)
	assert.Equal(t, platform.WaveSawtooth, humOsc(ctx).Waveform)
	assert.Equal(t, platform.WaveSawtooth, e.Targets().Waveform)

	e.SetCoherence(45)
	assert.Equal(t, platform.WaveSawtooth, humOsc(ctx).Waveform)

	e.SetCoherence(39)
	assert.Equal(t, platform.WaveSine, humOsc(ctx).Waveform)
	assert.Equal(t, platform.WaveSine, e.Targets().Waveform)
}

func TestEngine_WaveformSetOnlyOnChange(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())
	sets := humOsc(ctx).WaveformSets

	// Retunes inside the sawtooth band leave the oscillator's waveform
	// alone so its phase is undisturbed.
	e.SetCoherence(90)
	e.SetCoherence(85)
	e.SetCoherence(45)
	assert.Equal(t, sets, humOsc(ctx).WaveformSets)

	// Crossing into the sine band is the one move that touches it.
	e.SetCoherence(30)
	assert.Equal(t, sets+1, humOsc(ctx).WaveformSets)
	assert.Equal(t, platform.WaveSine, humOsc(ctx).Waveform)
}

func TestEngine_SeverityMovesTargetsInsideTier(t *testing.T) {
	e, _ := newTestEngine()
	require.True(t, e.Init())

	e.SetCoherence(79)
	top := e.Targets()
	e.SetCoherence(61)
	bottom := e.Targets()

	// Deeper into the band the cutoff keeps falling; no step at the edges
	// only.
	assert.Less(t, bottom.FilterCutoff, top.FilterCutoff)
	assert.Greater(t, bottom.LFODepth, top.LFODepth)
}

func TestEngine_ScoreBeforeInitIsRemembered(t *testing.T) {
	e, ctx := newTestEngine()

	e.SetCoherence(10)
	require.True(t, e.Init())

	assert.Equal(t, platform.WaveSine, humOsc(ctx).Waveform)
}

func TestEngine_MuteRampsMasterGain(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	e.SetMuted(true)
	master := &ctx.Gains[0].Amp
	last := master.LastEvent()
	assert.Equal(t, "linearRamp", last.Kind)
	assert.Equal(t, 0.0, last.Value)

	e.SetMuted(false)
	last = master.LastEvent()
	assert.Equal(t, "linearRamp", last.Kind)
	assert.Equal(t, DefaultConfig.MasterVolume, last.Value)
}

func TestEngine_DisposeStopsEverything(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	e.Dispose()

	assert.Equal(t, Disposed, e.State())
	assert.Equal(t, 0, ctx.RunningOscillators())
	assert.Equal(t, platform.StateClosed, ctx.State())

	// A disposed engine never comes back.
	assert.False(t, e.Init())
	e.PlayClick(50)
	assert.Len(t, ctx.Oscillators, 3)
}

func TestEngine_DisposeWithoutInitClosesContext(t *testing.T) {
	e, ctx := newTestEngine()

	// The host built the context eagerly but the gesture never arrived.
	e.Dispose()
	assert.Equal(t, Disposed, e.State())
	assert.Equal(t, platform.StateClosed, ctx.State())
	assert.False(t, e.Init())

	// Disposing again is a no-op, and a capability-less engine is safe too.
	e.Dispose()
	none := NewEngine(nil, Config{}, common.NewSeededRNG(42))
	none.Dispose()
	assert.Equal(t, Disposed, none.State())
}

func TestConfig_NormalizeFillsDefaults(t *testing.T) {
	cfg := Config{BreathSurgeMaxScore: 60}.Normalize()

	assert.Equal(t, 60.0, cfg.BreathSurgeMaxScore)
	assert.Equal(t, DefaultConfig.MasterVolume, cfg.MasterVolume)
	assert.Equal(t, DefaultConfig.RampTimeConstant, cfg.RampTimeConstant)
}
