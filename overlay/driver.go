// Package overlay drives the full-viewport glitch effects: chromatic
// fringing, scanline tears, and invert flashes fired by a self-rescheduling
// timer whose pace follows the coherence tier.
package overlay

import (
	"time"

	"github.com/RBarkerArt/delta7-sub000/coherence"
	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

// Shifter is the transition sound hook. Satisfied by audio.Engine.
type Shifter interface {
	PlayTemporalShift()
}

// tierGlitch tunes the burst roll for one tier. Intensities are the
// candidate strengths a tick picks from, ascending; the invert flash is
// reserved for the last one.
type tierGlitch struct {
	Chance       float64 // Burst probability per timer tick
	MeanInterval time.Duration
	Intensities  []float64
	Duration     time.Duration // Burst visibility baseline
}

var tierGlitches = map[coherence.Tier]tierGlitch{
	coherence.Stable:     {Chance: 0.06, MeanInterval: 4200 * time.Millisecond, Intensities: []float64{0.05, 0.1, 0.15}, Duration: 90 * time.Millisecond},
	coherence.Recovering: {Chance: 0.18, MeanInterval: 2800 * time.Millisecond, Intensities: []float64{0.1, 0.2, 0.3}, Duration: 120 * time.Millisecond},
	coherence.Fraying:    {Chance: 0.4, MeanInterval: 1600 * time.Millisecond, Intensities: []float64{0.2, 0.35, 0.55}, Duration: 160 * time.Millisecond},
	coherence.Fragmented: {Chance: 0.65, MeanInterval: 800 * time.Millisecond, Intensities: []float64{0.35, 0.55, 0.8}, Duration: 220 * time.Millisecond},
	coherence.Critical:   {Chance: 0.9, MeanInterval: 420 * time.Millisecond, Intensities: []float64{0.55, 0.8, 1}, Duration: 300 * time.Millisecond},
}

const (
	intervalJitter = 0.4
	maxRGBShift    = 14.0 // px at intensity 1
	invertChance   = 0.08 // rolled only for a tier's top intensity
)

// Effects is the currently visible glitch state. Hosts that style via CSS
// read it; Render draws it onto a canvas.
type Effects struct {
	Intensity  float64 // Strength of the live burst, 0 when none is active
	RGBShift   float64 // Chromatic fringe offset, px; 0 when inactive
	TearActive bool
	TearY      float64
	TearHeight float64
	TearShift  float64
	Invert     bool
}

// Class buckets the live burst intensity for hosts that style the overlay
// with CSS classes. Empty when no burst is active.
func (e Effects) Class() string {
	switch {
	case e.Intensity <= 0:
		return ""
	case e.Intensity < 0.25:
		return "faint"
	case e.Intensity < 0.5:
		return "minor"
	case e.Intensity < 0.75:
		return "moderate"
	default:
		return "heavy"
	}
}

// Driver owns the glitch timer chain. Start schedules the first tick; every
// tick rolls a burst and reschedules itself with a jittered tier interval.
type Driver struct {
	sched   platform.Scheduler
	rng     *common.SeededRNG
	shifter Shifter // may be nil

	score         float64
	width, height float64
	effects       Effects

	timer       platform.TimerID
	burstClear  platform.TimerID
	tearClear   platform.TimerID
	invertClear platform.TimerID
}

func NewDriver(sched platform.Scheduler, rng *common.SeededRNG, shifter Shifter) *Driver {
	return &Driver{sched: sched, rng: rng, shifter: shifter, score: 100, width: 1, height: 1}
}

// Start begins the tick cycle. Calling twice restarts the chain.
func (d *Driver) Start() {
	d.sched.ClearTimeout(d.timer)
	d.schedule()
}

// SetScore updates the tier the next tick reads. Pending ticks keep their
// scheduled time; the pace catches up on the next reschedule.
func (d *Driver) SetScore(score float64) { d.score = score }

// SetSize updates the viewport for tear placement and rendering.
func (d *Driver) SetSize(width, height float64) {
	d.width, d.height = width, height
}

// Effects returns the live glitch state.
func (d *Driver) Effects() Effects { return d.effects }

// ForceCritical fires the heaviest possible burst immediately, with the
// invert flash guaranteed, and plays the transition sweep. Used on
// narrative transitions regardless of the current tier.
func (d *Driver) ForceCritical() {
	d.burst(1, true)
	if d.shifter != nil {
		d.shifter.PlayTemporalShift()
	}
}

// Teardown cancels the tick chain and every pending clear.
func (d *Driver) Teardown() {
	d.sched.ClearTimeout(d.timer)
	d.sched.ClearTimeout(d.burstClear)
	d.sched.ClearTimeout(d.tearClear)
	d.sched.ClearTimeout(d.invertClear)
	d.timer, d.burstClear, d.tearClear, d.invertClear = 0, 0, 0, 0
	d.effects = Effects{}
}

func (d *Driver) schedule() {
	g := tierGlitches[coherence.ClassifyTier(d.score)]
	d.timer = d.sched.SetTimeout(d.tick, time.Duration(d.rng.Jitter(float64(g.MeanInterval), intervalJitter)))
}

func (d *Driver) tick() {
	g := tierGlitches[coherence.ClassifyTier(d.score)]
	if d.rng.Chance(g.Chance) {
		d.burst(g.Intensities[d.rng.Pick(len(g.Intensities))], false)
	}
	d.schedule()
}

// burst activates effects scaled by intensity. Each effect clears on its
// own randomized timer so a burst decays raggedly instead of all at once.
// The invert flash only ever rolls for the tier's top intensity.
func (d *Driver) burst(intensity float64, forceInvert bool) {
	g := tierGlitches[coherence.ClassifyTier(d.score)]
	top := g.Intensities[len(g.Intensities)-1]
	dur := float64(g.Duration)

	d.effects.Intensity = intensity
	d.effects.RGBShift = intensity * maxRGBShift
	d.sched.ClearTimeout(d.burstClear)
	d.burstClear = d.sched.SetTimeout(func() {
		d.effects.Intensity = 0
		d.effects.RGBShift = 0
	}, time.Duration(d.rng.Jitter(dur, 0.5)))

	if d.rng.Chance(0.5 * intensity) {
		d.effects.TearActive = true
		d.effects.TearY = d.rng.Random() * d.height
		d.effects.TearHeight = 4 + d.rng.Random()*30*intensity
		d.effects.TearShift = d.rng.RandomFloat(-1, 1) * 40 * intensity
		d.sched.ClearTimeout(d.tearClear)
		d.tearClear = d.sched.SetTimeout(func() {
			d.effects.TearActive = false
		}, time.Duration(d.rng.Jitter(dur*0.7, 0.5)))
	}

	if forceInvert || (intensity >= top && d.rng.Chance(invertChance)) {
		d.effects.Invert = true
		d.sched.ClearTimeout(d.invertClear)
		d.invertClear = d.sched.SetTimeout(func() {
			d.effects.Invert = false
		}, time.Duration(d.rng.Jitter(dur*0.4, 0.3)))
	}
}

// Render paints the active effects plus the persistent scanlines, whose
// weight grows as the score falls.
func (d *Driver) Render(ctx platform.Canvas2D) {
	lost := (100 - d.score) / 100
	if lost < 0 {
		lost = 0
	}

	ctx.Save()

	if lost > 0 {
		ctx.SetGlobalAlpha(0.04 + 0.08*lost)
		ctx.SetFillStyle(Theme.ScanlineColor)
		for y := 0.0; y < d.height; y += Theme.ScanlineSpacing * 2 {
			ctx.FillRect(0, y, d.width, Theme.ScanlineSpacing)
		}
	}

	if d.effects.Intensity > 0 {
		ctx.SetGlobalAlpha(0.05 * d.effects.Intensity)
		ctx.SetFillStyle(Theme.FilterColor)
		ctx.FillRect(0, 0, d.width, d.height)
	}

	if d.effects.RGBShift > 0 {
		ctx.SetCompositeOperation("lighter")
		ctx.SetGlobalAlpha(0.06)
		ctx.SetFillStyle(Theme.RGBRedColor)
		ctx.FillRect(-d.effects.RGBShift, 0, d.width, d.height)
		ctx.SetFillStyle(Theme.RGBCyanColor)
		ctx.FillRect(d.effects.RGBShift, 0, d.width, d.height)
		ctx.SetCompositeOperation("source-over")
	}

	if d.effects.TearActive {
		ctx.SetGlobalAlpha(0.18)
		ctx.SetFillStyle(Theme.TearColor)
		ctx.FillRect(d.effects.TearShift, d.effects.TearY, d.width, d.effects.TearHeight)
	}

	if d.effects.Invert {
		ctx.SetCompositeOperation("difference")
		ctx.SetGlobalAlpha(1)
		ctx.SetFillStyle(Theme.InvertColor)
		ctx.FillRect(0, 0, d.width, d.height)
		ctx.SetCompositeOperation("source-over")
	}

	ctx.Restore()
}
