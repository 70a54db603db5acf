//go:build js
// +build js

package platform

import (
	"time"

	"github.com/gopherjs/gopherjs/js"
)

// --- Web Audio ---

// BrowserAudioContext adapts the Web Audio API to the AudioContext
// capability.
type BrowserAudioContext struct {
	ctx *js.Object
}

// NewBrowserAudioContext constructs a Web Audio context, falling back to the
// webkit-prefixed constructor. Returns nil when the host has no audio
// output capability; callers treat that as "stay silent", not an error.
func NewBrowserAudioContext() *BrowserAudioContext {
	ctor := js.Global.Get("AudioContext")
	if ctor == nil || ctor == js.Undefined {
		ctor = js.Global.Get("webkitAudioContext")
	}
	if ctor == nil || ctor == js.Undefined {
		return nil
	}
	return &BrowserAudioContext{ctx: ctor.New()}
}

func (c *BrowserAudioContext) CurrentTime() float64 { return c.ctx.Get("currentTime").Float() }
func (c *BrowserAudioContext) SampleRate() float64  { return c.ctx.Get("sampleRate").Float() }
func (c *BrowserAudioContext) State() string        { return c.ctx.Get("state").String() }
func (c *BrowserAudioContext) Resume()              { c.ctx.Call("resume") }
func (c *BrowserAudioContext) Close()               { c.ctx.Call("close") }

func (c *BrowserAudioContext) Destination() AudioNode {
	return &browserNode{obj: c.ctx.Get("destination")}
}

func (c *BrowserAudioContext) CreateOscillator() Oscillator {
	return &browserOscillator{browserNode{obj: c.ctx.Call("createOscillator")}}
}

func (c *BrowserAudioContext) CreateGain() Gain {
	return &browserGain{browserNode{obj: c.ctx.Call("createGain")}}
}

func (c *BrowserAudioContext) CreateBiquadFilter() BiquadFilter {
	return &browserFilter{browserNode{obj: c.ctx.Call("createBiquadFilter")}}
}

func (c *BrowserAudioContext) CreateBufferSource() BufferSource {
	return &browserBufferSource{browserNode{obj: c.ctx.Call("createBufferSource")}}
}

func (c *BrowserAudioContext) CreateBuffer(channels, length int, sampleRate float64) AudioBuffer {
	obj := c.ctx.Call("createBuffer", channels, length, sampleRate)
	buf := &browserBuffer{obj: obj, channels: make([]*js.Object, channels)}
	for ch := 0; ch < channels; ch++ {
		buf.channels[ch] = obj.Call("getChannelData", ch)
	}
	return buf
}

type browserNode struct {
	obj *js.Object
}

func (n *browserNode) Connect(dst AudioNode) {
	n.obj.Call("connect", dst.(interface{ raw() *js.Object }).raw())
}

func (n *browserNode) ConnectParam(dst AudioParam) {
	n.obj.Call("connect", dst.(*browserParam).obj)
}

func (n *browserNode) Disconnect() { n.obj.Call("disconnect") }
func (n *browserNode) raw() *js.Object {
	return n.obj
}

func (n *browserNode) param(name string) AudioParam {
	return &browserParam{obj: n.obj.Get(name)}
}

type browserOscillator struct{ browserNode }

func (o *browserOscillator) SetWaveform(w string)  { o.obj.Set("type", w) }
func (o *browserOscillator) Frequency() AudioParam { return o.param("frequency") }
func (o *browserOscillator) Detune() AudioParam    { return o.param("detune") }
func (o *browserOscillator) Start(at float64)      { o.obj.Call("start", at) }
func (o *browserOscillator) Stop(at float64)       { o.obj.Call("stop", at) }

type browserGain struct{ browserNode }

func (g *browserGain) Gain() AudioParam { return g.param("gain") }

type browserFilter struct{ browserNode }

func (f *browserFilter) SetFilterType(t string) { f.obj.Set("type", t) }
func (f *browserFilter) Frequency() AudioParam { return f.param("frequency") }
func (f *browserFilter) Q() AudioParam { return f.param("Q") }

type browserBufferSource struct{ browserNode }

func (s *browserBufferSource) SetBuffer(b AudioBuffer) {
	s.obj.Set("buffer", b.(*browserBuffer).obj)
}
func (s *browserBufferSource) Start(at float64) { s.obj.Call("start", at) }
func (s *browserBufferSource) Stop(at float64)  { s.obj.Call("stop", at) }

type browserBuffer struct {
	obj      *js.Object
	channels []*js.Object
}

func (b *browserBuffer) Length() int         { return b.obj.Get("length").Int() }
func (b *browserBuffer) SampleRate() float64 { return b.obj.Get("sampleRate").Float() }
func (b *browserBuffer) SetSample(channel, i int, v float64) {
	b.channels[channel].SetIndex(i, v)
}

type browserParam struct {
	obj *js.Object
}

func (p *browserParam) Value() float64     { return p.obj.Get("value").Float() }
func (p *browserParam) SetValue(v float64) { p.obj.Set("value", v) }
func (p *browserParam) SetValueAtTime(v, at float64) {
	p.obj.Call("setValueAtTime", v, at)
}
func (p *browserParam) LinearRampToValueAtTime(v, at float64) {
	p.obj.Call("linearRampToValueAtTime", v, at)
}
func (p *browserParam) SetTargetAtTime(v, start, timeConstant float64) {
	p.obj.Call("setTargetAtTime", v, start, timeConstant)
}
func (p *browserParam) CancelScheduledValues(at float64) {
	p.obj.Call("cancelScheduledValues", at)
}

// --- Canvas 2D ---

// BrowserCanvas adapts a canvas 2D context to the Canvas2D capability.
type BrowserCanvas struct {
	ctx           *js.Object
	width, height float64
}

// NewBrowserCanvas wraps a canvas element's 2D context.
func NewBrowserCanvas(canvas *js.Object) *BrowserCanvas {
	return &BrowserCanvas{
		ctx:    canvas.Call("getContext", "2d"),
		width:  canvas.Get("width").Float(),
		height: canvas.Get("height").Float(),
	}
}

func (c *BrowserCanvas) Size() (float64, float64) { return c.width, c.height }

// Resize records new surface dimensions after the host resizes the element.
func (c *BrowserCanvas) Resize(w, h float64) { c.width, c.height = w, h }
func (c *BrowserCanvas) Save()                    { c.ctx.Call("save") }
func (c *BrowserCanvas) Restore()                 { c.ctx.Call("restore") }
func (c *BrowserCanvas) ClearRect(x, y, w, h float64) {
	c.ctx.Call("clearRect", x, y, w, h)
}
func (c *BrowserCanvas) SetGlobalAlpha(a float64) { c.ctx.Set("globalAlpha", a) }
func (c *BrowserCanvas) SetCompositeOperation(op string) {
	c.ctx.Set("globalCompositeOperation", op)
}
func (c *BrowserCanvas) SetFillStyle(style string) { c.ctx.Set("fillStyle", style) }
func (c *BrowserCanvas) FillRect(x, y, w, h float64) {
	c.ctx.Call("fillRect", x, y, w, h)
}
func (c *BrowserCanvas) BeginPath() { c.ctx.Call("beginPath") }
func (c *BrowserCanvas) Arc(x, y, r, start, end float64) {
	c.ctx.Call("arc", x, y, r, start, end)
}
func (c *BrowserCanvas) Fill()                { c.ctx.Call("fill") }
func (c *BrowserCanvas) SetFont(font string) { c.ctx.Set("font", font) }
func (c *BrowserCanvas) FillText(text string, x, y float64) {
	c.ctx.Call("fillText", text, x, y)
}

// --- Scheduler ---

// BrowserScheduler adapts setTimeout/requestAnimationFrame to the Scheduler
// capability.
type BrowserScheduler struct{}

func (BrowserScheduler) Now() float64 {
	return js.Global.Get("performance").Call("now").Float()
}

func (BrowserScheduler) SetTimeout(fn func(), delay time.Duration) TimerID {
	id := js.Global.Call("setTimeout", fn, delay.Milliseconds())
	return TimerID(id.Int())
}

func (BrowserScheduler) ClearTimeout(id TimerID) {
	js.Global.Call("clearTimeout", int(id))
}

func (BrowserScheduler) RequestFrame(fn func(now float64)) FrameID {
	id := js.Global.Call("requestAnimationFrame", func(now *js.Object) {
		fn(now.Float())
	})
	return FrameID(id.Int())
}

func (BrowserScheduler) CancelFrame(id FrameID) {
	js.Global.Call("cancelAnimationFrame", int(id))
}
