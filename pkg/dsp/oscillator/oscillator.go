// Package oscillator provides the sine oscillator that drives the voice.
package oscillator

import "math"

// Oscillator is a phase-accumulator sine generator. The phase lives in
// [0,1) and advances by frequency/sampleRate per sample. Frequency and
// sample-rate changes only recompute the increment; the accumulator is
// never reset from inside the oscillator, so pitch changes stay
// phase-continuous.
type Oscillator struct {
	sampleRate float64
	frequency  float64
	phase      float64
	phaseInc   float64
}

// New creates an oscillator at the given sample rate, tuned to A4.
func New(sampleRate float64) *Oscillator {
	return &Oscillator{
		sampleRate: sampleRate,
		frequency:  440.0,
		phaseInc:   440.0 / sampleRate,
	}
}

// SetFrequency sets the oscillator frequency in Hz.
func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freq
	o.phaseInc = freq / o.sampleRate
}

// Frequency returns the current frequency in Hz.
func (o *Oscillator) Frequency() float64 {
	return o.frequency
}

// SetSampleRate changes the sample rate, keeping frequency and phase.
func (o *Oscillator) SetSampleRate(sampleRate float64) {
	o.sampleRate = sampleRate
	o.phaseInc = o.frequency / sampleRate
}

// Phase returns the current phase in [0,1).
func (o *Oscillator) Phase() float64 {
	return o.phase
}

// SetPhase sets the phase, wrapped into [0,1).
func (o *Oscillator) SetPhase(phase float64) {
	o.phase = phase - math.Floor(phase)
}

// Sine returns sin(2*pi*phase) for the current phase, then advances
// the accumulator by one sample period.
func (o *Oscillator) Sine() float32 {
	sample := float32(math.Sin(2.0 * math.Pi * o.phase))
	o.phase += o.phaseInc
	if o.phase >= 1.0 {
		o.phase -= math.Floor(o.phase)
	}
	return sample
}

// ProcessSine fills buffer with consecutive sine samples - no allocations.
func (o *Oscillator) ProcessSine(buffer []float32) {
	for i := range buffer {
		buffer[i] = o.Sine()
	}
}
