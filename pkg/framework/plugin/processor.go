package plugin

import (
	"github.com/deathdisco/sinesynth/pkg/framework/process"
)

// Processor is the contract a host drives. All calls except
// ProcessAudio happen on the host's setup thread between blocks;
// ProcessAudio runs on the real-time audio thread and must complete
// synchronously without blocking or allocating.
type Processor interface {
	// Info returns the plugin metadata.
	Info() Info

	// Initialize prepares the processor for a sample rate and the
	// largest block the host will request.
	Initialize(sampleRate float64, maxBlockSize int32) error

	// SetSampleRate changes the sample rate between blocks. Running
	// state (phase, amplitude) is preserved.
	SetSampleRate(sampleRate float64) error

	// SetActive is called when processing starts or stops.
	SetActive(active bool) error

	// ProcessAudio renders one block into ctx.Output, applying
	// ctx.Events at their sample offsets. It either fills the whole
	// block or returns an error leaving state untouched.
	ProcessAudio(ctx *process.Context) error
}
