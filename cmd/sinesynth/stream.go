package main

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/deathdisco/sinesynth/pkg/framework/process"
	"github.com/deathdisco/sinesynth/pkg/synth"
)

const bytesPerSample = 4 // float32 little-endian, one channel

// stream adapts the processor to the pull model of the audio device:
// the player's render goroutine calls Read, which drains queued events
// and renders block by block. Read never blocks or logs; a failed block
// becomes silence and is counted for reporting after the fact.
type stream struct {
	proc    *synth.SineSynth
	ctx     *process.Context
	buf     []float32
	block   int
	dropped atomic.Int64
}

func newStream(proc *synth.SineSynth, sampleRate float64, block int) *stream {
	ctx := process.NewContext(block)
	ctx.SampleRate = sampleRate
	buf := make([]float32, block)
	ctx.Output = [][]float32{buf}
	return &stream{
		proc:  proc,
		ctx:   ctx,
		buf:   buf,
		block: block,
	}
}

func (s *stream) Read(p []byte) (int, error) {
	total := len(p) / bytesPerSample
	queue := s.proc.EventQueue()

	done := 0
	for done < total {
		n := s.block
		if total-done < n {
			n = total - done
		}

		out := s.buf[:n]
		s.ctx.Output[0] = out
		// Events queued with offset 0 land at the start of this block;
		// later offsets carry over into the next one. The drain and the
		// carry-over rebase happen under one queue lock so an event
		// arriving between blocks keeps a valid offset.
		s.ctx.Events = queue.NextBlock(int32(n))

		if err := s.proc.ProcessAudio(s.ctx); err != nil {
			for i := range out {
				out[i] = 0
			}
			s.dropped.Add(1)
		}

		for i, v := range out {
			binary.LittleEndian.PutUint32(p[(done+i)*bytesPerSample:], math.Float32bits(v))
		}
		done += n
	}

	return total * bytesPerSample, nil
}

// DroppedBlocks returns how many blocks were silenced after a render
// error.
func (s *stream) DroppedBlocks() int64 {
	return s.dropped.Load()
}
