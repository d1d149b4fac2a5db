// Package synth implements SineSynth, a monophonic sine instrument
// behind the plugin.Processor boundary.
package synth

import (
	"errors"
	"fmt"

	"github.com/deathdisco/sinesynth/pkg/framework/plugin"
	"github.com/deathdisco/sinesynth/pkg/framework/process"
	"github.com/deathdisco/sinesynth/pkg/framework/voice"
	"github.com/deathdisco/sinesynth/pkg/midi"
)

// ErrInvalidInput is returned by ProcessAudio when the host hands over a
// malformed block: an event offset outside the buffer, a non-positive
// buffer length, or a sample rate that was never set. The failure is
// atomic; no samples are written and no state changes.
var ErrInvalidInput = errors.New("invalid input")

// SineSynth is the instrument: one monophonic voice fed by sample-offset
// note events, rendered block by block on the host's audio thread.
type SineSynth struct {
	voice *voice.Mono
	queue *midi.EventQueue

	sampleRate float64
	active     bool
}

// New creates an uninitialized SineSynth. Initialize must be called
// before the first ProcessAudio.
func New() *SineSynth {
	return &SineSynth{
		queue: midi.NewEventQueue(),
	}
}

// Info implements plugin.Processor.
func (s *SineSynth) Info() plugin.Info {
	return plugin.Info{
		Name:     "SineSynth",
		Vendor:   "DeathDisco",
		Version:  "1.0.0",
		Category: plugin.CategoryInstrument,
		UniqueID: 6667,
	}
}

// Initialize implements plugin.Processor.
func (s *SineSynth) Initialize(sampleRate float64, maxBlockSize int32) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %g", ErrInvalidInput, sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("%w: max block size %d", ErrInvalidInput, maxBlockSize)
	}
	s.sampleRate = sampleRate
	s.voice = voice.NewMono(sampleRate)
	return nil
}

// SetSampleRate implements plugin.Processor. Phase and amplitude are
// preserved across the change.
func (s *SineSynth) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %g", ErrInvalidInput, sampleRate)
	}
	s.sampleRate = sampleRate
	if s.voice != nil {
		s.voice.SetSampleRate(sampleRate)
	}
	return nil
}

// SetActive implements plugin.Processor. Deactivation cuts the voice
// and drops queued events.
func (s *SineSynth) SetActive(active bool) error {
	s.active = active
	if !active {
		if s.voice != nil {
			s.voice.Stop()
		}
		s.queue.Clear()
	}
	return nil
}

// EventQueue returns the input queue a host feeds from its event thread.
func (s *SineSynth) EventQueue() *midi.EventQueue {
	return s.queue
}

// Voice exposes the voice for host-side metering.
func (s *SineSynth) Voice() *voice.Mono {
	return s.voice
}

// ProcessAudio implements plugin.Processor. The block is split at event
// offsets: each sub-range renders with the voice state in effect, then
// the event at its boundary is applied. The mono render goes through
// the context's work buffer and is copied to every output channel.
func (s *SineSynth) ProcessAudio(ctx *process.Context) error {
	if s.voice == nil || s.sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate not set", ErrInvalidInput)
	}

	n := ctx.NumSamples()
	if n <= 0 {
		return fmt.Errorf("%w: buffer length %d", ErrInvalidInput, n)
	}
	if n > ctx.MaxBlockSize() {
		return fmt.Errorf("%w: block of %d samples exceeds the context's %d-sample capacity",
			ErrInvalidInput, n, ctx.MaxBlockSize())
	}

	// Validate the whole event list up front so a bad event cannot
	// leave a half-rendered buffer behind.
	for _, event := range ctx.Events {
		if off := event.SampleOffset(); off < 0 || off >= int32(n) {
			return fmt.Errorf("%w: event offset %d outside block of %d samples",
				ErrInvalidInput, off, n)
		}
	}

	out := ctx.WorkBuffer()
	pos := 0
	for _, event := range ctx.Events {
		off := int(event.SampleOffset())
		if off > pos {
			s.voice.Render(out[pos:off])
			pos = off
		}
		s.HandleEvent(event)
	}
	s.voice.Render(out[pos:])

	for ch := range ctx.Output {
		copy(ctx.Output[ch], out)
	}

	return nil
}

// HandleEvent applies one event to the voice. A NoteOn with velocity 0
// is a NoteOff by MIDI convention; velocity does not otherwise scale
// the voice.
func (s *SineSynth) HandleEvent(event midi.Event) {
	switch e := event.(type) {
	case midi.NoteOnEvent:
		if e.Velocity == 0 {
			s.voice.NoteOff(e.NoteNumber)
		} else {
			s.voice.NoteOn(e.NoteNumber)
		}
	case midi.NoteOffEvent:
		s.voice.NoteOff(e.NoteNumber)
	case midi.ControlChangeEvent:
		switch e.Controller {
		case midi.CCAllNotesOff:
			s.voice.Silence()
		case midi.CCAllSoundOff:
			s.voice.Stop()
		}
	}
}
