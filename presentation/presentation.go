// Package presentation is the dependency-injection root. It owns one
// instance of every component, fans the coherence signal out to all of
// them, and drives the shared frame loop. Nothing here is a package-level
// singleton: a Presentation is constructed, run, and torn down explicitly.
package presentation

import (
	"go.uber.org/zap"

	"github.com/RBarkerArt/delta7-sub000/audio"
	"github.com/RBarkerArt/delta7-sub000/coherence"
	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/fragments"
	"github.com/RBarkerArt/delta7-sub000/narrative"
	"github.com/RBarkerArt/delta7-sub000/overlay"
	"github.com/RBarkerArt/delta7-sub000/particles"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

// Signal is the per-update coherence input pushed by the host's driver.
type Signal struct {
	Score           float64
	Tier            coherence.Tier
	IsTransitioning bool
}

// Content is one narrative day's payload.
type Content struct {
	Title     string
	Body      string
	Fragments []fragments.Fragment
}

// Options wires a Presentation. Scheduler, Canvas and RNG are required;
// AudioContext may be nil (the engine stays silent), Pointer may be nil
// (no repulsion), Logger defaults to a nop.
type Options struct {
	Scheduler    platform.Scheduler
	AudioContext platform.AudioContext
	Canvas       platform.Canvas2D
	Pointer      *platform.Pointer
	RNG          *common.SeededRNG
	Logger       *zap.Logger

	AudioConfig     audio.Config
	NarrativeConfig narrative.Config
	ParticleConfig  particles.Config
}

// Presentation owns the whole degradation stack.
type Presentation struct {
	sched   platform.Scheduler
	canvas  platform.Canvas2D
	pointer *platform.Pointer
	log     *zap.Logger

	engine     *audio.Engine
	typewriter *narrative.Typewriter
	reroller   *narrative.Reroller
	field      *particles.Field
	driver     *overlay.Driver
	frags      *fragments.Manager

	title         string
	score         float64
	tier          coherence.Tier
	transitioning bool

	frameID   platform.FrameID
	lastFrame float64
	running   bool
}

// Text layout constants for the canvas rendering path.
const (
	titleFont = "bold 22px monospace"
	bodyFont  = "17px monospace"
	textColor = "rgba(220,225,235,1)"
	echoColor = "rgba(150,160,190,1)"
)

// New builds a Presentation from injected capabilities. No timers start
// until Run.
func New(opts Options) *Presentation {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := audio.NewEngine(opts.AudioContext, opts.AudioConfig, opts.RNG)
	corr := narrative.NewCorruptor(opts.NarrativeConfig, opts.RNG)
	tw := narrative.NewTypewriter(opts.Scheduler, opts.NarrativeConfig, opts.RNG, engine)

	w, h := opts.Canvas.Size()

	p := &Presentation{
		sched:      opts.Scheduler,
		canvas:     opts.Canvas,
		pointer:    opts.Pointer,
		log:        log,
		engine:     engine,
		typewriter: tw,
		field:      particles.NewField(opts.ParticleConfig, opts.RNG, w, h),
		driver:     overlay.NewDriver(opts.Scheduler, opts.RNG, engine),
		frags:      fragments.NewManager(opts.RNG),
		score:      100,
		tier:       coherence.Stable,
	}
	p.reroller = narrative.NewReroller(opts.Scheduler, corr, opts.RNG, func() string {
		return p.typewriter.Sequence().DisplayedText
	})
	tw.OnChange = p.reroller.Refresh
	return p
}

// Engine exposes the audio engine for host mute/init controls.
func (p *Presentation) Engine() *audio.Engine { return p.engine }

// Typewriter exposes the reveal state for hosts that render text themselves.
func (p *Presentation) Typewriter() *narrative.Typewriter { return p.typewriter }

// Overlay exposes the glitch driver for hosts that style effects via CSS.
func (p *Presentation) Overlay() *overlay.Driver { return p.driver }

// InitAudio attempts to bring the audio engine up. Must be called from a
// user gesture handler. Safe to call repeatedly.
func (p *Presentation) InitAudio() bool {
	ok := p.engine.Init()
	if !ok {
		p.log.Debug("audio unavailable, staying silent")
	}
	return ok
}

// Run starts the overlay glitch cycle, the corruption re-roll cycle, and
// the frame loop.
func (p *Presentation) Run() {
	if p.running {
		return
	}
	p.running = true
	p.driver.Start()
	p.reroller.Restart()
	p.lastFrame = p.sched.Now()
	p.frameID = p.sched.RequestFrame(p.frame)
}

// Update fans a coherence signal out to every component. A rising
// IsTransitioning edge fires the forced-critical overlay burst and the
// transition sweep.
func (p *Presentation) Update(s Signal) {
	score := s.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	rising := s.IsTransitioning && !p.transitioning
	p.score = score
	p.tier = coherence.ClassifyTier(score)
	p.transitioning = s.IsTransitioning

	p.engine.SetCoherence(score)
	p.typewriter.SetScore(score)
	p.reroller.SetScore(score)
	p.field.SetScore(score)
	p.driver.SetScore(score)

	if rising {
		p.log.Debug("transition edge", zap.Float64("score", score))
		p.driver.ForceCritical()
	}
}

// SetContent swaps in a new narrative day: the typewriter restarts from
// scratch (pending ticks cancelled first), the fragment set is rebuilt, and
// the corruption cycle starts over.
func (p *Presentation) SetContent(c Content) {
	p.title = c.Title
	p.typewriter.Start(c.Body)
	p.frags.SetFragments(c.Fragments)
	p.reroller.Restart()
}

// Frame runs one simulation-and-draw step at the given timestamp in
// milliseconds. The internal loop calls it; tests and embedding hosts may
// call it directly.
func (p *Presentation) Frame(now float64) {
	dt := (now - p.lastFrame) / 1000
	p.lastFrame = now
	if dt < 0 {
		dt = 0
	}
	if dt > 0.1 {
		dt = 0.1
	}

	w, h := p.canvas.Size()
	p.field.Resize(w, h)
	p.driver.SetSize(w, h)
	if p.pointer != nil {
		p.field.SetPointer(*p.pointer)
	}

	p.field.Step(dt)
	p.frags.Step(dt)

	p.draw(w, h)
}

func (p *Presentation) frame(now float64) {
	p.frameID = p.sched.RequestFrame(p.frame)
	p.Frame(now)
}

func (p *Presentation) draw(w, h float64) {
	ctx := p.canvas
	ctx.ClearRect(0, 0, w, h)

	p.field.Draw(ctx)

	seq := p.typewriter.Sequence()
	progress := seq.Progress()
	p.frags.Draw(ctx, w, h, p.tier, progress, seq.IsComplete)

	p.drawText(ctx, w, h)

	p.driver.Render(ctx)
}

// drawText paints the title and the corrupted view of the revealed line.
// The echo duplicate lands first so the real text sits on top of it.
func (p *Presentation) drawText(ctx platform.Canvas2D, w, h float64) {
	ctx.Save()

	if p.title != "" {
		ctx.SetGlobalAlpha(0.9)
		ctx.SetFillStyle(textColor)
		ctx.SetFont(titleFont)
		ctx.FillText(p.title, w*0.1, h*0.18)
	}

	r := p.reroller.Current()
	if r.Text != "" {
		ctx.SetFont(bodyFont)
		x := w*0.1 + r.SpacingJitter*8
		y := h * 0.4
		if r.Echo {
			ctx.SetGlobalAlpha(0.25)
			ctx.SetFillStyle(echoColor)
			ctx.FillText(r.Text, x+r.EchoOffset, y+r.EchoOffset)
		}
		ctx.SetGlobalAlpha(0.95)
		ctx.SetFillStyle(textColor)
		ctx.FillText(r.Text, x, y)
	}

	ctx.Restore()
}

// Teardown cancels every pending timer and frame and disposes the audio
// engine. The presentation is unusable afterwards.
func (p *Presentation) Teardown() {
	p.running = false
	p.sched.CancelFrame(p.frameID)
	p.typewriter.Teardown()
	p.reroller.Teardown()
	p.driver.Teardown()
	p.engine.Dispose()
	p.log.Debug("presentation torn down")
}
