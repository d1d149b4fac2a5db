// Package process provides the render context a host hands to the
// instrument for each block of audio.
package process

import (
	"github.com/deathdisco/sinesynth/pkg/midi"
)

// Context carries everything one render call needs: the output buffers
// to fill, the sample rate in effect for the block, and the note events
// that land inside the block, ordered by sample offset.
//
// A Context is created once at activation and reused for every block so
// the render path never allocates. The host resizes the Output slices
// to the block length before each call and replaces Events wholesale;
// the instrument only reads them.
type Context struct {
	Output     [][]float32
	SampleRate float64
	Events     []midi.Event

	workBuffer []float32
}

// NewContext creates a context with a work buffer sized for the largest
// block the host will request.
func NewContext(maxBlockSize int) *Context {
	return &Context{
		workBuffer: make([]float32, maxBlockSize),
	}
}

// NumSamples returns the number of samples in the current block.
func (c *Context) NumSamples() int {
	if len(c.Output) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumOutputChannels returns the number of output channels.
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// WorkBuffer returns the pre-allocated scratch buffer sliced to the
// current block size - no allocation.
func (c *Context) WorkBuffer() []float32 {
	return c.workBuffer[:c.NumSamples()]
}

// MaxBlockSize returns the largest block this context can carry.
func (c *Context) MaxBlockSize() int {
	return len(c.workBuffer)
}

// Clear zeros the output buffers.
func (c *Context) Clear() {
	for ch := range c.Output {
		for i := range c.Output[ch] {
			c.Output[ch][i] = 0
		}
	}
}
