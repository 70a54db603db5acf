package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

func TestPlayClick_BeforeInitIsSilent(t *testing.T) {
	e, ctx := newTestEngine()

	e.PlayClick(50)
	assert.Empty(t, ctx.Oscillators)
}

func TestPlayClick_MutedIsSilent(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())
	e.SetMuted(true)

	e.PlayClick(50)
	assert.Len(t, ctx.Oscillators, 3)
}

func TestPlayClick_BuildsOneShotGraph(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	// At a STABLE score the double-click chance is zero: exactly one click
	// oscillator on top of the persistent three.
	e.PlayClick(100)
	require.Len(t, ctx.Oscillators, 4)

	click := ctx.Oscillators[3]
	assert.Equal(t, platform.WaveSquare, click.Waveform)
	assert.True(t, click.Started)
	assert.True(t, click.Stopped)

	// The click gain decays to the silent floor instead of cutting.
	clickGain := ctx.Gains[len(ctx.Gains)-1]
	last := clickGain.Amp.LastEvent()
	assert.Equal(t, "linearRamp", last.Kind)
	assert.InDelta(t, silentFloor, last.Value, 1e-9)
}

func TestPlayClick_DoubleClickUnderDegradation(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	// At CRITICAL the echo chance is 0.15 per click; across many clicks the
	// seeded stream must produce at least one echo pair.
	for i := 0; i < 60; i++ {
		e.PlayClick(5)
	}
	clicks := len(ctx.Oscillators) - 3
	assert.Greater(t, clicks, 60)
}

func TestPlayBreathSurge_GatedByScore(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	e.PlayBreathSurge(80)
	assert.Empty(t, ctx.BufferSources, "surge must refuse above the gate")

	e.PlayBreathSurge(30)
	require.Len(t, ctx.BufferSources, 1)
	assert.True(t, ctx.BufferSources[0].Started)
}

func TestPlayBreathSurge_GateIsConfigurable(t *testing.T) {
	ctx := platform.NewMemoryAudioContext()
	e := NewEngine(ctx, Config{BreathSurgeMaxScore: 70}, common.NewSeededRNG(42))
	require.True(t, e.Init())

	e.PlayBreathSurge(65)
	assert.Len(t, ctx.BufferSources, 1)
}

func TestNoiseSource_SamplesStayBounded(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	e.PlayBreathSurge(10)
	require.Len(t, ctx.BufferSources, 1)

	buf := ctx.BufferSources[0].Buffer.(*platform.MemoryBuffer)
	require.NotEmpty(t, buf.Channels[0])
	for i, v := range buf.Channels[0] {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d = %v out of [-1,1]", i, v)
		}
	}
}

func TestPlaySignalNoise_CenterFallsWithScore(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	e.PlaySignalNoise(100)
	e.PlaySignalNoise(0)

	high := ctx.Filters[1].Freq.LastEvent().Value
	low := ctx.Filters[2].Freq.LastEvent().Value
	assert.Less(t, low, high)
}

func TestPlayTemporalShift_SweepsDown(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	e.PlayTemporalShift()
	require.Len(t, ctx.Oscillators, 4)

	sweep := ctx.Oscillators[3]
	assert.Equal(t, platform.WaveSawtooth, sweep.Waveform)
	last := sweep.Freq.LastEvent()
	assert.Equal(t, "linearRamp", last.Kind)
	assert.Equal(t, DefaultConfig.SweepEndFreq, last.Value)
}

func TestTransients_SwallowNodeFailures(t *testing.T) {
	e, ctx := newTestEngine()
	require.True(t, e.Init())

	// Audio system dies mid-session: transients must go silent, not panic,
	// and the engine must stay usable.
	ctx.FailNodeCreation = true
	e.PlayClick(50)
	e.PlayBreathSurge(10)
	e.PlaySignalNoise(50)
	e.PlayBlip(50)
	e.PlayTemporalShift()

	assert.Equal(t, Ready, e.State())

	ctx.FailNodeCreation = false
	e.PlayBlip(50)
	assert.Len(t, ctx.Oscillators, 4)
}
