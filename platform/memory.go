package platform

// In-memory implementations of the audio and canvas capabilities. They keep
// the core runnable on hosts with no real audio or display, and they record
// everything scheduled against them, which is what the ramp and teardown
// tests inspect.

// ParamEvent is one scheduled operation against a MemoryParam.
type ParamEvent struct {
	Kind         string // "set", "setAt", "linearRamp", "setTarget", "cancel"
	Value        float64
	At           float64
	TimeConstant float64
}

// MemoryParam is an AudioParam that records its schedule.
type MemoryParam struct {
	Name    string
	Current float64
	Events  []ParamEvent
}

func (p *MemoryParam) Value() float64 { return p.Current }

func (p *MemoryParam) SetValue(v float64) {
	p.Current = v
	p.Events = append(p.Events, ParamEvent{Kind: "set", Value: v})
}

func (p *MemoryParam) SetValueAtTime(v, at float64) {
	p.Current = v
	p.Events = append(p.Events, ParamEvent{Kind: "setAt", Value: v, At: at})
}

func (p *MemoryParam) LinearRampToValueAtTime(v, at float64) {
	p.Current = v
	p.Events = append(p.Events, ParamEvent{Kind: "linearRamp", Value: v, At: at})
}

func (p *MemoryParam) SetTargetAtTime(v, start, timeConstant float64) {
	p.Current = v
	p.Events = append(p.Events, ParamEvent{Kind: "setTarget", Value: v, At: start, TimeConstant: timeConstant})
}

func (p *MemoryParam) CancelScheduledValues(at float64) {
	p.Events = append(p.Events, ParamEvent{Kind: "cancel", At: at})
}

// LastEvent returns the most recent event, or a zero event when none exist.
func (p *MemoryParam) LastEvent() ParamEvent {
	if len(p.Events) == 0 {
		return ParamEvent{}
	}
	return p.Events[len(p.Events)-1]
}

// MemoryNode is the common node state shared by every in-memory node kind.
type MemoryNode struct {
	Kind         string
	Connected    []AudioNode
	ParamTargets []AudioParam
	Disconnected bool
}

func (n *MemoryNode) Connect(dst AudioNode)       { n.Connected = append(n.Connected, dst) }
func (n *MemoryNode) ConnectParam(dst AudioParam) { n.ParamTargets = append(n.ParamTargets, dst) }
func (n *MemoryNode) Disconnect()                 { n.Disconnected = true }

// MemoryOscillator is a recording Oscillator.
type MemoryOscillator struct {
	MemoryNode
	Waveform     string
	WaveformSets int
	Freq         MemoryParam
	Det          MemoryParam
	Started      bool
	Stopped      bool
	StartTime    float64
	StopTime     float64
}

func (o *MemoryOscillator) SetWaveform(w string) {
	o.Waveform = w
	o.WaveformSets++
}
func (o *MemoryOscillator) Frequency() AudioParam { return &o.Freq }
func (o *MemoryOscillator) Detune() AudioParam    { return &o.Det }
func (o *MemoryOscillator) Start(at float64)      { o.Started, o.StartTime = true, at }
func (o *MemoryOscillator) Stop(at float64)       { o.Stopped, o.StopTime = true, at }

// MemoryGain is a recording Gain.
type MemoryGain struct {
	MemoryNode
	Amp MemoryParam
}

func (g *MemoryGain) Gain() AudioParam { return &g.Amp }

// MemoryFilter is a recording BiquadFilter.
type MemoryFilter struct {
	MemoryNode
	FilterType string
	Freq       MemoryParam
	Quality    MemoryParam
}

func (f *MemoryFilter) SetFilterType(t string) { f.FilterType = t }
func (f *MemoryFilter) Frequency() AudioParam { return &f.Freq }
func (f *MemoryFilter) Q() AudioParam { return &f.Quality }

// MemoryBuffer stores samples written through SetSample.
type MemoryBuffer struct {
	Channels [][]float64
	Rate     float64
}

func (b *MemoryBuffer) Length() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}
func (b *MemoryBuffer) SampleRate() float64 { return b.Rate }
func (b *MemoryBuffer) SetSample(channel, i int, v float64) {
	b.Channels[channel][i] = v
}

// MemoryBufferSource is a recording BufferSource.
type MemoryBufferSource struct {
	MemoryNode
	Buffer    AudioBuffer
	Started   bool
	Stopped   bool
	StartTime float64
	StopTime  float64
}

func (s *MemoryBufferSource) SetBuffer(b AudioBuffer) { s.Buffer = b }
func (s *MemoryBufferSource) Start(at float64)        { s.Started, s.StartTime = true, at }
func (s *MemoryBufferSource) Stop(at float64)         { s.Stopped, s.StopTime = true, at }

// MemoryAudioContext is an AudioContext that records the graph built against
// it. Time is advanced explicitly with AdvanceTime.
type MemoryAudioContext struct {
	now         float64
	sampleRate  float64
	state       string
	destination MemoryNode

	Oscillators   []*MemoryOscillator
	Gains         []*MemoryGain
	Filters       []*MemoryFilter
	BufferSources []*MemoryBufferSource

	// FailNodeCreation makes every node constructor panic, simulating a
	// host whose audio system died mid-session.
	FailNodeCreation bool
}

// NewMemoryAudioContext creates a running in-memory context at 44.1 kHz.
func NewMemoryAudioContext() *MemoryAudioContext {
	return &MemoryAudioContext{
		sampleRate:  44100,
		state:       StateRunning,
		destination: MemoryNode{Kind: "destination"},
	}
}

// NewSuspendedMemoryAudioContext creates a context that needs Resume first,
// the way browsers gate audio behind a user gesture.
func NewSuspendedMemoryAudioContext() *MemoryAudioContext {
	ctx := NewMemoryAudioContext()
	ctx.state = StateSuspended
	return ctx
}

func (c *MemoryAudioContext) CurrentTime() float64 { return c.now }
func (c *MemoryAudioContext) SampleRate() float64  { return c.sampleRate }
func (c *MemoryAudioContext) State() string        { return c.state }

func (c *MemoryAudioContext) Resume() {
	if c.state == StateSuspended {
		c.state = StateRunning
	}
}

func (c *MemoryAudioContext) Close() { c.state = StateClosed }

// AdvanceTime moves the context clock forward by seconds.
func (c *MemoryAudioContext) AdvanceTime(seconds float64) { c.now += seconds }

func (c *MemoryAudioContext) Destination() AudioNode { return &c.destination }

func (c *MemoryAudioContext) CreateOscillator() Oscillator {
	c.checkCreate()
	o := &MemoryOscillator{MemoryNode: MemoryNode{Kind: "oscillator"}, Waveform: WaveSine}
	c.Oscillators = append(c.Oscillators, o)
	return o
}

func (c *MemoryAudioContext) CreateGain() Gain {
	c.checkCreate()
	g := &MemoryGain{MemoryNode: MemoryNode{Kind: "gain"}, Amp: MemoryParam{Name: "gain", Current: 1}}
	c.Gains = append(c.Gains, g)
	return g
}

func (c *MemoryAudioContext) CreateBiquadFilter() BiquadFilter {
	c.checkCreate()
	f := &MemoryFilter{MemoryNode: MemoryNode{Kind: "filter"}, FilterType: FilterLowpass}
	c.Filters = append(c.Filters, f)
	return f
}

func (c *MemoryAudioContext) CreateBufferSource() BufferSource {
	c.checkCreate()
	s := &MemoryBufferSource{MemoryNode: MemoryNode{Kind: "bufferSource"}}
	c.BufferSources = append(c.BufferSources, s)
	return s
}

func (c *MemoryAudioContext) CreateBuffer(channels, length int, sampleRate float64) AudioBuffer {
	c.checkCreate()
	buf := &MemoryBuffer{Rate: sampleRate, Channels: make([][]float64, channels)}
	for ch := range buf.Channels {
		buf.Channels[ch] = make([]float64, length)
	}
	return buf
}

func (c *MemoryAudioContext) checkCreate() {
	if c.FailNodeCreation {
		panic("memory audio context: node creation disabled")
	}
}

// RunningOscillators counts oscillators that started and were never stopped.
func (c *MemoryAudioContext) RunningOscillators() int {
	n := 0
	for _, o := range c.Oscillators {
		if o.Started && !o.Stopped {
			n++
		}
	}
	return n
}

// MemoryCanvas is a Canvas2D that counts draw operations.
type MemoryCanvas struct {
	W, H      float64
	FillStyle string
	Alpha     float64
	Font      string
	Ops       int
	Texts     []string
}

// NewMemoryCanvas creates a surface of the given size.
func NewMemoryCanvas(w, h float64) *MemoryCanvas {
	return &MemoryCanvas{W: w, H: h, Alpha: 1}
}

func (c *MemoryCanvas) Size() (float64, float64)        { return c.W, c.H }
func (c *MemoryCanvas) Save()                           {}
func (c *MemoryCanvas) Restore()                        {}
func (c *MemoryCanvas) ClearRect(x, y, w, h float64)    { c.Ops++ }
func (c *MemoryCanvas) SetGlobalAlpha(a float64)        { c.Alpha = a }
func (c *MemoryCanvas) SetCompositeOperation(op string) {}
func (c *MemoryCanvas) SetFillStyle(style string)       { c.FillStyle = style }
func (c *MemoryCanvas) FillRect(x, y, w, h float64)     { c.Ops++ }
func (c *MemoryCanvas) BeginPath()                      {}
func (c *MemoryCanvas) Arc(x, y, r, s, e float64)       {}
func (c *MemoryCanvas) Fill()                           { c.Ops++ }
func (c *MemoryCanvas) SetFont(font string)             { c.Font = font }
func (c *MemoryCanvas) FillText(text string, x, y float64) {
	c.Ops++
	c.Texts = append(c.Texts, text)
}
