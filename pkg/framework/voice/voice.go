// Package voice implements the monophonic voice: one oscillator, one
// note at a time, last-note priority, and a short amplitude ramp on
// every transition so state changes never click.
package voice

import (
	"github.com/deathdisco/sinesynth/pkg/dsp/oscillator"
	"github.com/deathdisco/sinesynth/pkg/midi"
)

// State is the voice lifecycle state.
type State int

const (
	// StateSilent means no note is held and the amplitude has reached 0.
	StateSilent State = iota
	// StateSounding means the voice is rendering a note. This includes
	// the ramp-down after a note off, until the amplitude lands at 0.
	StateSounding
)

func (s State) String() string {
	switch s {
	case StateSilent:
		return "Silent"
	case StateSounding:
		return "Sounding"
	default:
		return "Unknown"
	}
}

// Mono is the single voice of the instrument.
//
// Arbitration is last-note priority: a NoteOn always takes the voice,
// and only the most recently triggered note responds to its NoteOff.
// There is no release envelope; a stolen or released note hands off
// through the amplitude ramp alone. The oscillator phase survives every
// transition, including silence, so retriggers never jump phase.
type Mono struct {
	osc   *oscillator.Oscillator
	ramp  *Ramp
	state State
	note  uint8
}

// NewMono creates a silent voice at the given sample rate.
func NewMono(sampleRate float64) *Mono {
	return &Mono{
		osc:  oscillator.New(sampleRate),
		ramp: NewRamp(sampleRate),
	}
}

// NoteOn assigns the voice to note, ramping toward full amplitude. If a
// note is already sounding it is stolen; the amplitude continues from
// its current level rather than resetting.
func (v *Mono) NoteOn(note uint8) {
	v.state = StateSounding
	v.note = note
	v.osc.SetFrequency(midi.NoteToFrequency(note, 0))
	v.ramp.SetTarget(1.0)
}

// NoteOff starts the ramp to silence if note is the one sounding. An
// Off for a stolen note is stale and ignored.
func (v *Mono) NoteOff(note uint8) {
	if v.state == StateSounding && v.note == note {
		v.ramp.SetTarget(0.0)
	}
}

// Silence ramps the voice to silence regardless of which note is
// sounding (MIDI all-notes-off).
func (v *Mono) Silence() {
	if v.state == StateSounding {
		v.ramp.SetTarget(0.0)
	}
}

// Stop cuts the voice immediately without ramping (MIDI all-sound-off).
// The phase is kept.
func (v *Mono) Stop() {
	v.ramp.Snap(0.0)
	v.state = StateSilent
	v.note = 0
}

// State returns the current lifecycle state.
func (v *Mono) State() State {
	return v.state
}

// IsActive reports whether the voice is producing signal.
func (v *Mono) IsActive() bool {
	return v.state == StateSounding
}

// Note returns the note the voice is assigned to. Only meaningful while
// sounding.
func (v *Mono) Note() uint8 {
	return v.note
}

// Amplitude returns the current ramp level.
func (v *Mono) Amplitude() float64 {
	return v.ramp.Current()
}

// TargetAmplitude returns the level the ramp is moving toward.
func (v *Mono) TargetAmplitude() float64 {
	return v.ramp.Target()
}

// Frequency returns the oscillator frequency in Hz.
func (v *Mono) Frequency() float64 {
	return v.osc.Frequency()
}

// Phase returns the oscillator phase in [0,1).
func (v *Mono) Phase() float64 {
	return v.osc.Phase()
}

// SetSampleRate reconfigures the ramp step and the oscillator increment.
// Phase and amplitude are deliberately kept so a rate change between
// blocks does not click.
func (v *Mono) SetSampleRate(sampleRate float64) {
	v.osc.SetSampleRate(sampleRate)
	v.ramp.SetSampleRate(sampleRate)
}

// Render fills output with the voice signal. While silent the buffer is
// zero-filled without touching the oscillator, so the phase a previous
// note left behind is still there on retrigger.
func (v *Mono) Render(output []float32) {
	if v.state == StateSilent {
		for i := range output {
			output[i] = 0
		}
		return
	}

	for i := range output {
		if v.state == StateSilent {
			output[i] = 0
			continue
		}

		amp := v.ramp.Next()
		if amp == 0 && v.ramp.Target() == 0 {
			// Ramp-down landed: the voice falls silent mid-buffer.
			v.state = StateSilent
			output[i] = 0
			continue
		}

		output[i] = v.osc.Sine() * float32(amp)
	}
}
