// Package platform defines the minimal host capabilities the presentation
// core depends on: an audio output context, a 2D drawing surface, a
// cooperative timer/frame scheduler, and the last known pointer position.
// Hosts provide implementations; the core never reaches for the DOM or the
// Web Audio API directly.
package platform

import "time"

// Audio waveform and filter identifiers, matching the Web Audio vocabulary.
const (
	WaveSine     = "sine"
	WaveSquare   = "square"
	WaveSawtooth = "sawtooth"
	WaveTriangle = "triangle"

	FilterLowpass  = "lowpass"
	FilterHighpass = "highpass"
	FilterBandpass = "bandpass"
)

// Audio context lifecycle states.
const (
	StateRunning   = "running"
	StateSuspended = "suspended"
	StateClosed    = "closed"
)

// AudioParam is a schedulable synthesis parameter. Implementations must
// support ramped transitions; the engine never steps a parameter directly
// once the graph is live.
type AudioParam interface {
	Value() float64
	SetValue(v float64)
	SetValueAtTime(v, at float64)
	LinearRampToValueAtTime(v, at float64)
	SetTargetAtTime(v, start, timeConstant float64)
	CancelScheduledValues(at float64)
}

// AudioNode is a node in the synthesis graph.
type AudioNode interface {
	Connect(dst AudioNode)
	ConnectParam(dst AudioParam)
	Disconnect()
}

// Oscillator is a periodic source node.
type Oscillator interface {
	AudioNode
	SetWaveform(w string)
	Frequency() AudioParam
	Detune() AudioParam
	Start(at float64)
	Stop(at float64)
}

// Gain is an amplitude node.
type Gain interface {
	AudioNode
	Gain() AudioParam
}

// BiquadFilter is a second-order filter node.
type BiquadFilter interface {
	AudioNode
	SetFilterType(t string)
	Frequency() AudioParam
	Q() AudioParam
}

// AudioBuffer is a block of raw samples for one-shot noise sources.
type AudioBuffer interface {
	Length() int
	SampleRate() float64
	SetSample(channel, i int, v float64)
}

// BufferSource plays an AudioBuffer once.
type BufferSource interface {
	AudioNode
	SetBuffer(b AudioBuffer)
	Start(at float64)
	Stop(at float64)
}

// AudioContext is the audio output capability. Node constructors may panic
// when the host audio system is unavailable mid-session; callers that build
// short-lived transient graphs are expected to recover.
type AudioContext interface {
	CurrentTime() float64
	SampleRate() float64
	State() string
	Resume()
	Close()
	Destination() AudioNode
	CreateOscillator() Oscillator
	CreateGain() Gain
	CreateBiquadFilter() BiquadFilter
	CreateBufferSource() BufferSource
	CreateBuffer(channels, length int, sampleRate float64) AudioBuffer
}

// Canvas2D is the drawing surface capability, a thin slice of the canvas 2D
// context vocabulary.
type Canvas2D interface {
	Size() (w, h float64)
	Save()
	Restore()
	ClearRect(x, y, w, h float64)
	SetGlobalAlpha(a float64)
	SetCompositeOperation(op string)
	SetFillStyle(style string)
	FillRect(x, y, w, h float64)
	BeginPath()
	Arc(x, y, r, start, end float64)
	Fill()
	SetFont(font string)
	FillText(text string, x, y float64)
}

// TimerID identifies a pending timeout so it can be cancelled. Zero is never
// a valid ID.
type TimerID int

// FrameID identifies a pending animation-frame request.
type FrameID int

// Scheduler is the cooperative timing capability. All callbacks run on the
// host's single logical thread; a callback never interrupts another.
type Scheduler interface {
	// Now returns monotonic time in milliseconds.
	Now() float64
	SetTimeout(fn func(), delay time.Duration) TimerID
	ClearTimeout(id TimerID)
	RequestFrame(fn func(now float64)) FrameID
	CancelFrame(id FrameID)
}

// Pointer is the last known pointer position in surface coordinates. The
// host event handler writes it; the particle field only reads it.
type Pointer struct {
	X, Y    float64
	Present bool
}

// Set records a pointer position.
func (p *Pointer) Set(x, y float64) {
	p.X, p.Y = x, y
	p.Present = true
}

// Clear marks the pointer as having left the surface.
func (p *Pointer) Clear() {
	p.Present = false
}
