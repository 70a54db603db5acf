package narrative

import (
	"time"

	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

// Chime is the per-character sound hook. Satisfied by audio.Engine.
type Chime interface {
	PlayClick(score float64)
}

// Typewriter reveals a body line by line, one character per tick. Cadence,
// stutter, and glitch rate all follow the current coherence score. All
// timing runs through the injected scheduler; the typewriter never spawns
// goroutines.
type Typewriter struct {
	sched platform.Scheduler
	cfg   Config
	rng   *common.SeededRNG
	chime Chime // may be nil

	seq   *LineSequence
	score float64

	tickTimer    platform.TimerID
	glitchTimer  platform.TimerID
	advanceTimer platform.TimerID

	// OnChange fires after every visible mutation of the sequence.
	OnChange func()
}

func NewTypewriter(sched platform.Scheduler, cfg Config, rng *common.SeededRNG, chime Chime) *Typewriter {
	return &Typewriter{
		sched: sched,
		cfg:   cfg.Normalize(),
		rng:   rng,
		chime: chime,
		seq:   NewLineSequence(""),
		score: 100,
	}
}

// Sequence returns the live reveal state.
func (t *Typewriter) Sequence() *LineSequence { return t.seq }

// SetScore updates the score read by every subsequent timing draw. Ticks
// already scheduled keep their old delay.
func (t *Typewriter) SetScore(score float64) { t.score = score }

// Start cancels any in-flight reveal and begins typing body from the
// beginning. The previous body's pending ticks never touch the new
// sequence. An empty body completes immediately.
func (t *Typewriter) Start(body string) {
	t.cancel()
	t.seq = NewLineSequence(body)
	if t.seq.IsComplete {
		t.notify()
		return
	}
	t.seq.IsTyping = true
	t.tickTimer = t.sched.SetTimeout(t.tick, t.tickDelay())
	t.notify()
}

// Skip finishes the current body instantly, cancelling all pending timers.
func (t *Typewriter) Skip() {
	t.cancel()
	if len(t.seq.Lines) > 0 {
		t.seq.CurrentLineIndex = len(t.seq.Lines) - 1
		t.seq.DisplayedText = t.seq.CurrentLine()
		t.seq.doneChars = t.seq.totalChars - len([]rune(t.seq.DisplayedText))
	}
	t.seq.IsTyping = false
	t.seq.IsComplete = true
	t.notify()
}

// Teardown cancels every pending timer. The sequence is left as-is.
func (t *Typewriter) Teardown() { t.cancel() }

func (t *Typewriter) cancel() {
	t.sched.ClearTimeout(t.tickTimer)
	t.sched.ClearTimeout(t.glitchTimer)
	t.sched.ClearTimeout(t.advanceTimer)
	t.tickTimer, t.glitchTimer, t.advanceTimer = 0, 0, 0
}

// tick reveals the next character of the current line. Sometimes the wrong
// glyph lands first and is corrected in place half a tick later.
func (t *Typewriter) tick() {
	line := []rune(t.seq.CurrentLine())
	shown := len([]rune(t.seq.DisplayedText))
	if shown >= len(line) {
		t.lineDone()
		return
	}

	delay := t.tickDelay()
	next := string(line[:shown+1])

	if t.rng.Chance(t.glitchChance()) {
		wrong := []rune(t.cfg.GlyphSet)
		t.seq.DisplayedText = string(line[:shown]) + string(wrong[t.rng.Pick(len(wrong))])
		if t.chime != nil {
			t.chime.PlayClick(t.score)
		}
		t.glitchTimer = t.sched.SetTimeout(func() {
			t.seq.DisplayedText = next
			t.notify()
		}, delay/2)
	} else {
		t.seq.DisplayedText = next
	}

	t.tickTimer = t.sched.SetTimeout(t.tick, delay)
	t.notify()
}

func (t *Typewriter) lineDone() {
	if t.seq.CurrentLineIndex >= len(t.seq.Lines)-1 {
		t.seq.IsTyping = false
		t.seq.IsComplete = true
		t.notify()
		return
	}
	t.advanceTimer = t.sched.SetTimeout(func() {
		t.seq.advance()
		t.tickTimer = t.sched.SetTimeout(t.tick, t.tickDelay())
		t.notify()
	}, t.advanceDelay())
}

// tickDelay draws the next per-character delay: slower and shakier as the
// score falls, steady at full coherence.
func (t *Typewriter) tickDelay() time.Duration {
	d := t.cfg.BaseTick
	if t.score < t.cfg.SlowBelowScore {
		d = time.Duration(float64(d) * t.cfg.SlowFactor)
	}
	lost := 100 - t.score
	if lost < 0 {
		lost = 0
	}
	d += time.Duration(t.rng.Random() * lost * float64(t.cfg.VariancePerUnit))
	if t.score < t.cfg.JitterBelowScore {
		d += time.Duration(t.rng.Random() * float64(t.cfg.ExtraJitter))
	}
	return d
}

func (t *Typewriter) advanceDelay() time.Duration {
	lost := 100 - t.score
	if lost < 0 {
		lost = 0
	}
	return t.cfg.AdvanceBase + time.Duration(lost*float64(t.cfg.AdvancePerUnit))
}

// glitchChance interpolates the wrong-glyph probability on the score.
func (t *Typewriter) glitchChance() float64 {
	lost := (100 - t.score) / 100
	if lost < 0 {
		lost = 0
	}
	if lost > 1 {
		lost = 1
	}
	return t.cfg.GlitchMinChance + lost*(t.cfg.GlitchMaxChance-t.cfg.GlitchMinChance)
}

func (t *Typewriter) notify() {
	if t.OnChange != nil {
		t.OnChange()
	}
}
