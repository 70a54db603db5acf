package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RBarkerArt/delta7-sub000/coherence"
	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

type countingShifter struct{ sweeps int }

func (s *countingShifter) PlayTemporalShift() { s.sweeps++ }

func newTestDriver(seed uint32) (*Driver, *platform.ManualScheduler, *countingShifter) {
	sched := platform.NewManualScheduler()
	shifter := &countingShifter{}
	d := NewDriver(sched, common.NewSeededRNG(seed), shifter)
	d.SetSize(800, 600)
	return d, sched, shifter
}

func TestTierGlitches_PaceShrinksTenfold(t *testing.T) {
	stable := tierGlitches[coherence.Stable]
	critical := tierGlitches[coherence.Critical]

	ratio := float64(stable.MeanInterval) / float64(critical.MeanInterval)
	assert.InDelta(t, 10, ratio, 1.5)
	assert.Greater(t, critical.Chance, stable.Chance)

	top := func(g tierGlitch) float64 { return g.Intensities[len(g.Intensities)-1] }
	assert.Greater(t, top(critical), top(stable))
}

func TestDriver_SelfReschedules(t *testing.T) {
	d, sched, _ := newTestDriver(42)

	d.Start()
	require.Equal(t, 1, sched.PendingTimers())

	// Whatever each tick rolls, the chain keeps a next firing queued.
	for i := 0; i < 10; i++ {
		sched.Advance(5 * time.Second)
		assert.GreaterOrEqual(t, sched.PendingTimers(), 1)
	}
}

func TestDriver_FiresUnderDegradation(t *testing.T) {
	d, sched, _ := newTestDriver(42)
	d.SetScore(10)
	d.Start()

	// At CRITICAL the chance is 0.9 per tick and ticks come sub-second:
	// a burst must land quickly.
	fired := false
	for i := 0; i < 100; i++ {
		sched.Advance(100 * time.Millisecond)
		if d.Effects().RGBShift > 0 {
			fired = true
			break
		}
	}
	assert.True(t, fired, "no burst across 10 seconds at CRITICAL")
}

func TestDriver_EffectsClearThemselves(t *testing.T) {
	d, sched, _ := newTestDriver(42)
	d.SetScore(10)
	d.Start()

	for i := 0; i < 200 && d.Effects().RGBShift == 0; i++ {
		sched.Advance(100 * time.Millisecond)
	}
	require.Greater(t, d.Effects().RGBShift, 0.0)

	// Stop the score at STABLE so new bursts get rare, then let the clear
	// timers run out.
	d.SetScore(100)
	cleared := false
	for i := 0; i < 100; i++ {
		sched.Advance(100 * time.Millisecond)
		if d.Effects().RGBShift == 0 {
			cleared = true
			break
		}
	}
	assert.True(t, cleared, "burst never cleared")
}

func TestDriver_ForceCritical(t *testing.T) {
	d, _, shifter := newTestDriver(42)
	d.SetScore(95)

	d.ForceCritical()

	fx := d.Effects()
	assert.Equal(t, 1.0, fx.Intensity, "forced burst must be full intensity")
	assert.Equal(t, maxRGBShift, fx.RGBShift)
	assert.Equal(t, "heavy", fx.Class())
	assert.True(t, fx.Invert, "forced burst must flash")
	assert.Equal(t, 1, shifter.sweeps, "forced burst must play the sweep")
}

func TestDriver_InvertOnlyAtTopIntensity(t *testing.T) {
	d, _, _ := newTestDriver(42)
	d.SetScore(10)

	// Below the tier's top candidate the flash never rolls, no matter how
	// many bursts land.
	for i := 0; i < 300; i++ {
		d.burst(0.55, false)
		require.False(t, d.Effects().Invert, "invert flashed below the top intensity")
	}

	// At the top candidate it is a low-probability roll, so across many
	// bursts it must land at least once.
	flashed := false
	for i := 0; i < 300; i++ {
		d.burst(1, false)
		if d.Effects().Invert {
			flashed = true
			break
		}
	}
	assert.True(t, flashed, "invert never flashed at the top intensity")
}

func TestDriver_EffectsExposeBurstIntensity(t *testing.T) {
	d, sched, _ := newTestDriver(42)
	d.SetScore(10)
	d.Start()

	for i := 0; i < 200 && d.Effects().Intensity == 0; i++ {
		sched.Advance(100 * time.Millisecond)
	}
	fx := d.Effects()
	require.Greater(t, fx.Intensity, 0.0, "no burst across 20 seconds at CRITICAL")

	// The intensity is one of the tier's candidates and the class buckets it
	// for CSS hosts.
	assert.Contains(t, tierGlitches[coherence.Critical].Intensities, fx.Intensity)
	assert.NotEmpty(t, fx.Class())

	// Idle state reads as no class at all.
	assert.Equal(t, "", Effects{}.Class())
}

func TestDriver_TeardownStopsChain(t *testing.T) {
	d, sched, _ := newTestDriver(42)
	d.SetScore(10)
	d.Start()
	sched.Advance(2 * time.Second)

	d.Teardown()
	assert.Equal(t, 0, sched.PendingTimers())
	assert.Equal(t, Effects{}, d.Effects())

	sched.Advance(time.Minute)
	assert.Equal(t, 0, sched.PendingTimers())
	assert.Equal(t, Effects{}, d.Effects())
}

func TestDriver_RenderDrawsActiveEffects(t *testing.T) {
	d, _, _ := newTestDriver(42)
	canvas := platform.NewMemoryCanvas(800, 600)

	// Full coherence, nothing active: render leaves the surface alone.
	d.Render(canvas)
	assert.Equal(t, 0, canvas.Ops)

	d.SetScore(10)
	d.ForceCritical()
	d.Render(canvas)
	assert.Greater(t, canvas.Ops, 0)
}
