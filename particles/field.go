// Package particles renders the pooled atmospheric field behind the text.
// Particles are preallocated once per configuration; per-frame work never
// allocates.
package particles

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

// Particle is one pooled mote. Depth scales both speed and size so the
// field reads as layered instead of flat.
type Particle struct {
	X, Y      float64
	VX, VY    float64
	Depth     float64 // 0.3..1
	Size      float64
	Color     int     // Palette index
	Phase     float64 // Per-particle noise offset
	PoolIndex int
}

// Field owns the particle pool for the current configuration.
type Field struct {
	cfg   Config
	rng   *common.SeededRNG
	noise opensimplex.Noise

	pool        []*Particle
	activeCount int
	baseCount   int // Density-derived count before the score surge
	seeded      int // Pool entries spawned since the last reseed

	width, height float64
	score         float64
	pointer       platform.Pointer
	elapsed       float64
}

// Repulsion tuning. Force falls off with the square of distance; both the
// radius and the push scale up as coherence is lost.
const (
	repulseRadius = 110.0
	repulseForce  = 26.0
)

// countSurge is the extra particle fraction activated at score 0.
const countSurge = 0.35

// NewField preallocates the pool and seeds it for cfg.
func NewField(cfg Config, rng *common.SeededRNG, width, height float64) *Field {
	f := &Field{
		rng:    rng,
		noise:  opensimplex.NewNormalized(int64(rng.Seed())),
		width:  width,
		height: height,
		score:  100,
	}
	f.pool = make([]*Particle, MaxParticles)
	for i := range f.pool {
		f.pool[i] = &Particle{PoolIndex: i}
	}
	f.Configure(cfg)
	return f
}

// Configure applies a field configuration. The pool is reseeded only when
// the configuration actually changed; a content swap with an identical
// field keeps every particle where it is.
func (f *Field) Configure(cfg Config) {
	cfg = cfg.Normalize()
	if cfg.equal(f.cfg) {
		return
	}
	f.cfg = cfg
	f.reseed()
}

// Resize updates the viewport and reseeds so density holds.
func (f *Field) Resize(width, height float64) {
	if width == f.width && height == f.height {
		return
	}
	f.width, f.height = width, height
	f.reseed()
}

// SetScore updates the coherence score and re-derives the score-dependent
// parameters: live count, opacity base, repulsion reach.
func (f *Field) SetScore(score float64) {
	f.score = score
	f.applyScore()
}

// SetPointer updates the repulsion source.
func (f *Field) SetPointer(p platform.Pointer) { f.pointer = p }

// ActiveCount reports the live particle count.
func (f *Field) ActiveCount() int { return f.activeCount }

// reseed recomputes the density-derived base count and randomizes the live
// set from scratch. Only configuration and viewport changes land here; score
// moves go through applyScore and leave live particles alone.
func (f *Field) reseed() {
	if f.cfg.Variant == VariantNone {
		f.baseCount = 0
		f.seeded = 0
		f.activeCount = 0
		return
	}
	base := int(f.width * f.height / 10000 * f.cfg.Density)
	if base > MaxParticles {
		base = MaxParticles
	}
	if base < 0 {
		base = 0
	}
	f.baseCount = base
	f.seeded = 0
	f.applyScore()
}

// applyScore derives the live count: the density base plus a mild surge as
// coherence is lost, bounded by the pool. Growth activates more of the
// existing pool and only spawns entries never seeded before; shrinking just
// lowers the count, so surviving particles keep their positions.
func (f *Field) applyScore() {
	if f.cfg.Variant == VariantNone {
		f.activeCount = 0
		return
	}
	want := int(float64(f.baseCount) * (1 + countSurge*f.lost()))
	if want > MaxParticles {
		want = MaxParticles
	}
	for i := f.seeded; i < want; i++ {
		f.spawn(f.pool[i], false)
	}
	if want > f.seeded {
		f.seeded = want
	}
	f.activeCount = want
}

// lost is the normalized coherence deficit, 0 at score 100 and 1 at 0.
func (f *Field) lost() float64 {
	l := (100 - f.score) / 100
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	return l
}

// spawn randomizes a particle. atTop places it just above the viewport,
// used when ash recycles.
func (f *Field) spawn(p *Particle, atTop bool) {
	p.X = f.rng.Random() * f.width
	if atTop {
		p.Y = -f.cfg.Size * 4
	} else {
		p.Y = f.rng.Random() * f.height
	}
	p.Depth = 0.3 + f.rng.Random()*0.7
	p.Size = f.cfg.Size * (0.5 + f.rng.Random())
	p.Color = f.rng.Pick(len(f.cfg.Palette))
	p.Phase = f.rng.Random() * 1000

	switch f.cfg.Variant {
	case VariantAsh:
		p.VX = f.rng.RandomFloat(-4, 4)
		p.VY = 12 + f.rng.Random()*14
	case VariantStreaks:
		p.VX = 60 + f.rng.Random()*80
		p.VY = f.rng.RandomFloat(-6, 6)
	default:
		p.VX = f.rng.RandomFloat(-6, 6)
		p.VY = f.rng.RandomFloat(-6, 6)
	}
}

// Step advances the simulation by dt seconds.
func (f *Field) Step(dt float64) {
	f.elapsed += dt
	for i := 0; i < f.activeCount; i++ {
		f.step(f.pool[i], dt)
	}
}

func (f *Field) step(p *Particle, dt float64) {
	// Noise drift keeps dust from moving in straight lines. Streaks fly
	// straight; their character is speed, not wander.
	if f.cfg.Variant != VariantStreaks {
		drift := f.noise.Eval2(p.Phase, f.elapsed*0.12)*2 - 1
		p.VX += drift * 8 * dt
	}

	speed := f.cfg.Speed * p.Depth
	p.X += p.VX * speed * dt
	p.Y += p.VY * speed * dt

	if f.pointer.Present {
		radius := repulseRadius * (1 + 0.5*f.lost())
		force := repulseForce * f.cfg.Speed * (1 + f.lost())
		dx := p.X - f.pointer.X
		dy := p.Y - f.pointer.Y
		distSq := dx*dx + dy*dy
		if distSq > 1 && distSq < radius*radius {
			push := force / distSq * radius
			dist := math.Sqrt(distSq)
			p.X += dx / dist * push * dt * 60
			p.Y += dy / dist * push * dt * 60
		}
	}

	f.recycle(p)
}

// recycle handles edge behavior: ash respawns at the top, everything else
// wraps around.
func (f *Field) recycle(p *Particle) {
	margin := p.Size * 4
	if f.cfg.Variant == VariantAsh && p.Y > f.height+margin {
		f.spawn(p, true)
		return
	}
	if p.X < -margin {
		p.X = f.width + margin
	} else if p.X > f.width+margin {
		p.X = -margin
	}
	if p.Y < -margin {
		p.Y = f.height + margin
	} else if p.Y > f.height+margin {
		p.Y = -margin
	}
}

// Draw paints every live particle. Opacity climbs mildly as the score
// falls, and below FlickerMaxScore each particle has a small per-frame
// chance of skipping a frame entirely.
func (f *Field) Draw(ctx platform.Canvas2D) {
	if f.activeCount == 0 {
		return
	}
	base := f.cfg.Opacity * (0.5 + 0.5*f.lost())

	ctx.Save()
	for i := 0; i < f.activeCount; i++ {
		p := f.pool[i]
		if f.score <= FlickerMaxScore && f.rng.Chance(0.05) {
			continue
		}
		ctx.SetGlobalAlpha(base * (0.4 + 0.6*p.Depth))
		ctx.SetFillStyle(f.cfg.Palette[p.Color])
		f.drawShape(ctx, p)
	}
	ctx.Restore()
}

func (f *Field) drawShape(ctx platform.Canvas2D, p *Particle) {
	switch f.cfg.Variant {
	case VariantAsh:
		s := p.Size * p.Depth * 2
		ctx.FillRect(p.X-s/2, p.Y-s/2, s, s)
	case VariantStreaks:
		ctx.FillRect(p.X, p.Y, p.Size*p.Depth*10, p.Size*p.Depth*0.8)
	default:
		ctx.BeginPath()
		ctx.Arc(p.X, p.Y, p.Size*p.Depth, 0, 2*math.Pi)
		ctx.Fill()
	}
}
