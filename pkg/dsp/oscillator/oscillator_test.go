package oscillator

import (
	"math"
	"testing"
)

func TestPhaseAdvancesByFrequencyOverRate(t *testing.T) {
	const sampleRate = 44100.0
	const freq = 440.0

	osc := New(sampleRate)
	osc.SetFrequency(freq)

	inc := freq / sampleRate
	expected := 0.0
	for i := 0; i < 10000; i++ {
		if math.Abs(osc.Phase()-expected) > 1e-9 {
			t.Fatalf("Sample %d: expected phase %f, got %f", i, expected, osc.Phase())
		}
		osc.Sine()
		expected += inc
		if expected >= 1.0 {
			expected -= math.Floor(expected)
		}
	}
}

func TestSineValues(t *testing.T) {
	osc := New(48000)
	osc.SetFrequency(1000)

	for i := 0; i < 1000; i++ {
		phase := osc.Phase()
		got := osc.Sine()
		expected := float32(math.Sin(2 * math.Pi * phase))
		if math.Abs(float64(got-expected)) > 1e-6 {
			t.Fatalf("Sample %d: expected %f at phase %f, got %f", i, expected, phase, got)
		}
		if got < -1 || got > 1 {
			t.Fatalf("Sample %d out of range: %f", i, got)
		}
	}
}

func TestSetFrequencyKeepsPhase(t *testing.T) {
	osc := New(44100)
	osc.SetFrequency(440)
	for i := 0; i < 123; i++ {
		osc.Sine()
	}

	phase := osc.Phase()
	osc.SetFrequency(880)
	if osc.Phase() != phase {
		t.Errorf("SetFrequency moved phase from %f to %f", phase, osc.Phase())
	}
	if osc.Frequency() != 880 {
		t.Errorf("Expected frequency 880, got %f", osc.Frequency())
	}
}

func TestSetSampleRateKeepsPhaseAndFrequency(t *testing.T) {
	osc := New(44100)
	osc.SetFrequency(440)
	for i := 0; i < 57; i++ {
		osc.Sine()
	}

	phase := osc.Phase()
	osc.SetSampleRate(48000)
	if osc.Phase() != phase {
		t.Errorf("SetSampleRate moved phase from %f to %f", phase, osc.Phase())
	}
	if osc.Frequency() != 440 {
		t.Errorf("SetSampleRate changed frequency to %f", osc.Frequency())
	}

	// The increment follows the new rate.
	before := osc.Phase()
	osc.Sine()
	inc := osc.Phase() - before
	if inc < 0 {
		inc += 1.0
	}
	if math.Abs(inc-440.0/48000.0) > 1e-12 {
		t.Errorf("Expected increment %f, got %f", 440.0/48000.0, inc)
	}
}

func TestSetPhaseWraps(t *testing.T) {
	osc := New(44100)
	osc.SetPhase(2.75)
	if math.Abs(osc.Phase()-0.75) > 1e-12 {
		t.Errorf("Expected phase 0.75, got %f", osc.Phase())
	}
}

func TestProcessSineMatchesSine(t *testing.T) {
	a := New(44100)
	b := New(44100)
	a.SetFrequency(440)
	b.SetFrequency(440)

	buf := make([]float32, 256)
	a.ProcessSine(buf)

	for i := range buf {
		if got := b.Sine(); got != buf[i] {
			t.Fatalf("Sample %d: ProcessSine gave %f, Sine gave %f", i, buf[i], got)
		}
	}
}
