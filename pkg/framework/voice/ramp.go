package voice

// RampSeconds is the time a full 0-to-1 amplitude swing takes. 5ms is
// short enough to feel instant and long enough to avoid audible clicks.
const RampSeconds = 0.005

// Ramp moves an amplitude toward a target by a fixed per-sample step.
// The step is constant, so a retrigger that lands mid-ramp continues
// from the current level instead of restarting. The ramp lands exactly
// on the target and never overshoots.
type Ramp struct {
	current float64
	target  float64
	step    float64
}

// NewRamp creates a ramp sized for the given sample rate, at level 0.
func NewRamp(sampleRate float64) *Ramp {
	r := &Ramp{}
	r.SetSampleRate(sampleRate)
	return r
}

// SetSampleRate resizes the per-sample step. Current level and target
// are kept.
func (r *Ramp) SetSampleRate(sampleRate float64) {
	r.step = 1.0 / (RampSeconds * sampleRate)
}

// SetTarget sets the level the ramp moves toward.
func (r *Ramp) SetTarget(target float64) {
	r.target = target
}

// Target returns the level the ramp is moving toward.
func (r *Ramp) Target() float64 {
	return r.target
}

// Current returns the level without advancing.
func (r *Ramp) Current() float64 {
	return r.current
}

// AtTarget reports whether the ramp has landed.
func (r *Ramp) AtTarget() bool {
	return r.current == r.target
}

// Snap jumps current and target to value, bypassing the ramp.
func (r *Ramp) Snap(value float64) {
	r.current = value
	r.target = value
}

// Next advances one sample toward the target and returns the new level.
func (r *Ramp) Next() float64 {
	if r.current < r.target {
		r.current += r.step
		if r.current > r.target {
			r.current = r.target
		}
	} else if r.current > r.target {
		r.current -= r.step
		if r.current < r.target {
			r.current = r.target
		}
	}
	return r.current
}
