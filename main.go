//go:build js
// +build js

package main

import (
	"math"
	"time"

	"github.com/gopherjs/gopherjs/js"

	"github.com/RBarkerArt/delta7-sub000/audio"
	"github.com/RBarkerArt/delta7-sub000/coherence"
	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/fragments"
	"github.com/RBarkerArt/delta7-sub000/narrative"
	"github.com/RBarkerArt/delta7-sub000/particles"
	"github.com/RBarkerArt/delta7-sub000/platform"
	"github.com/RBarkerArt/delta7-sub000/presentation"
)

// demoDays is the built-in content the standalone page cycles through.
var demoDays = []presentation.Content{
	{
		Title: "DAY 1 — SUB-000 LOG",
		Body: "The hum settled an hour after waking. Readings hold steady. " +
			"I can still name every corridor from memory.",
		Fragments: []fragments.Fragment{
			{ID: "d1-a", Text: "every corridor", Tier: coherence.Stable, Threshold: 0.2},
			{ID: "d1-b", Text: "an hour after", Tier: coherence.Fraying, Threshold: 0.4},
		},
	},
	{
		Title: "DAY 4 — SUB-000 LOG",
		Body: "Something slips between readings now. The names come slower. " +
			"I wrote them on my arm so the morning version of me believes it.",
		Fragments: []fragments.Fragment{
			{ID: "d4-a", Text: "the morning version", Tier: coherence.Fraying, Threshold: 0.15},
			{ID: "d4-b", Text: "believes it", Tier: coherence.Fragmented, Threshold: 0.3},
		},
	},
	{
		Title: "DAY 9 — SUB-000 LOG",
		Body: "The corridor has no name. The hum is inside the walls or inside me. " +
			"Hold the line. Hold the line.",
		Fragments: []fragments.Fragment{
			{ID: "d9-a", Text: "inside me", Tier: coherence.Fragmented, Threshold: 0.1},
			{ID: "d9-b", Text: "hold the line", Tier: coherence.Critical, Threshold: 0.25},
		},
	},
}

// demoDriver pushes a slow decay/recovery score curve and rotates the days,
// standing in for the real content backend.
type demoDriver struct {
	p       *presentation.Presentation
	sched   platform.Scheduler
	elapsed float64
	day     int
}

const (
	driverStep  = 250 * time.Millisecond
	cycleLength = 90.0 // Seconds for a full 100 -> 10 -> 100 sweep
	dayLength   = 30.0
)

func (d *demoDriver) start() {
	d.p.SetContent(demoDays[0])
	d.tick()
}

func (d *demoDriver) tick() {
	d.elapsed += driverStep.Seconds()

	score := 55 + 45*math.Cos(2*math.Pi*d.elapsed/cycleLength)

	day := int(d.elapsed/dayLength) % len(demoDays)
	transitioning := day != d.day

	d.p.Update(presentation.Signal{
		Score:           score,
		Tier:            coherence.ClassifyTier(score),
		IsTransitioning: transitioning,
	})
	if transitioning {
		d.day = day
		d.p.SetContent(demoDays[day])
	}

	d.sched.SetTimeout(d.tick, driverStep)
}

func main() {
	doc := js.Global.Get("document")
	canvas := doc.Call("getElementById", "c")
	if canvas == nil || canvas == js.Undefined {
		panic("canvas element not found")
	}

	win := js.Global.Get("window")
	w := win.Get("innerWidth").Float()
	h := win.Get("innerHeight").Float()
	canvas.Set("width", w)
	canvas.Set("height", h)

	surface := platform.NewBrowserCanvas(canvas)
	sched := platform.BrowserScheduler{}
	pointer := &platform.Pointer{}
	rng := common.NewSeededRNG(uint32(sched.Now()) | 1)

	// The concrete constructor returns a typed pointer; keep the interface
	// nil when the host has no audio so the engine sees "no capability".
	var actx platform.AudioContext
	if b := platform.NewBrowserAudioContext(); b != nil {
		actx = b
	}

	p := presentation.New(presentation.Options{
		Scheduler:       sched,
		AudioContext:    actx,
		Canvas:          surface,
		Pointer:         pointer,
		RNG:             rng,
		AudioConfig:     audio.DefaultConfig,
		NarrativeConfig: narrative.DefaultConfig,
		ParticleConfig:  particles.DefaultConfig,
	})

	doc.Call("addEventListener", "mousemove", func(e *js.Object) {
		pointer.Set(e.Get("clientX").Float(), e.Get("clientY").Float())
	})
	doc.Call("addEventListener", "mouseleave", func(e *js.Object) {
		pointer.Clear()
	})

	// Autoplay policy: audio can only start from a user gesture. Keep
	// retrying on every gesture until Init succeeds.
	initAudio := func(e *js.Object) {
		if p.InitAudio() {
			p.Engine().PlayBlip(100)
		}
	}
	doc.Call("addEventListener", "pointerdown", initAudio)
	doc.Call("addEventListener", "keydown", initAudio)

	win.Call("addEventListener", "resize", func(e *js.Object) {
		nw := win.Get("innerWidth").Float()
		nh := win.Get("innerHeight").Float()
		canvas.Set("width", nw)
		canvas.Set("height", nh)
		surface.Resize(nw, nh)
	})

	win.Call("addEventListener", "beforeunload", func(e *js.Object) {
		p.Teardown()
	})

	p.Run()
	(&demoDriver{p: p, sched: sched}).start()

	select {}
}
