package narrative

import (
	"time"

	"github.com/RBarkerArt/delta7-sub000/coherence"
	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

// Reroller periodically re-draws the corruption rendering of the visible
// text, so degraded lines keep shimmering instead of freezing on one roll.
// The period follows the tier: leisurely at STABLE, frantic at CRITICAL.
// The text is pulled from a source function on every roll, which keeps the
// cycle independent of the typewriter's much faster mutations.
type Reroller struct {
	sched  platform.Scheduler
	rng    *common.SeededRNG
	corr   *Corruptor
	source func() string

	score   float64
	current Rendering
	timer   platform.TimerID

	// OnChange fires with every fresh rendering.
	OnChange func(Rendering)
}

func NewReroller(sched platform.Scheduler, corr *Corruptor, rng *common.SeededRNG, source func() string) *Reroller {
	return &Reroller{sched: sched, rng: rng, corr: corr, source: source, score: 100}
}

// Current returns the latest rendering.
func (r *Reroller) Current() Rendering { return r.current }

// SetScore updates the score for subsequent rolls and period draws.
func (r *Reroller) SetScore(score float64) { r.score = score }

// Restart cancels the pending roll and begins a fresh cycle with an
// immediate roll. Called on every content push.
func (r *Reroller) Restart() {
	r.sched.ClearTimeout(r.timer)
	r.timer = 0
	r.roll()
}

// Refresh re-renders from the source immediately without disturbing the
// roll cycle. Called when the underlying text mutates between rolls. A
// cleared source notifies too, so hosts learn the line went away.
func (r *Reroller) Refresh() {
	line := r.source()
	if line == "" {
		r.current = Rendering{}
	} else {
		r.current = r.corr.Corrupt(line, r.score)
	}
	if r.OnChange != nil {
		r.OnChange(r.current)
	}
}

// Teardown cancels the pending roll.
func (r *Reroller) Teardown() {
	r.sched.ClearTimeout(r.timer)
	r.timer = 0
}

func (r *Reroller) roll() {
	line := r.source()
	if line == "" {
		r.current = Rendering{}
	} else {
		r.current = r.corr.Corrupt(line, r.score)
	}
	if r.OnChange != nil {
		r.OnChange(r.current)
	}
	r.timer = r.sched.SetTimeout(r.roll, r.period())
}

func (r *Reroller) period() time.Duration {
	base := RerollPeriods[coherence.ClassifyTier(r.score)]
	return time.Duration(r.rng.Jitter(float64(base), RerollJitter))
}
