// Command sinesynth is a standalone host for the SineSynth instrument:
// it pulls render blocks into the system audio device and feeds note
// events from the computer keyboard or a MIDI input port.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ebitengine/oto/v3"

	"github.com/deathdisco/sinesynth/pkg/framework/debug"
	"github.com/deathdisco/sinesynth/pkg/synth"
)

func main() {
	var (
		sampleRate = flag.Float64("rate", 44100, "sample rate in Hz")
		blockSize  = flag.Int("block", 512, "render block size in samples")
		midiPort   = flag.String("midi", "", "connect to the first MIDI input whose name contains this string")
		listMIDI   = flag.Bool("list-midi", false, "list MIDI input ports and exit")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	debug.SetPrefix("sinesynth")
	if *verbose {
		debug.SetLevel(debug.LogLevelDebug)
	}

	if *listMIDI {
		if err := listMIDIPorts(); err != nil {
			debug.Error("%v", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*sampleRate, *blockSize, *midiPort); err != nil {
		debug.Error("%v", err)
		os.Exit(1)
	}
}

func run(sampleRate float64, blockSize int, midiPort string) error {
	proc := synth.New()
	if err := proc.Initialize(sampleRate, int32(blockSize)); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	if err := proc.SetActive(true); err != nil {
		return err
	}
	defer proc.SetActive(false)

	info := proc.Info()
	debug.Info("%s by %s (v%s), %g Hz, %d-sample blocks",
		info.Name, info.Vendor, info.Version, sampleRate, blockSize)

	stream := newStream(proc, sampleRate, blockSize)

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(sampleRate),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(stream)
	player.Play()
	defer player.Close()

	if midiPort != "" {
		stopMIDI, err := listenMIDI(proc, midiPort)
		if err != nil {
			return err
		}
		defer stopMIDI()
	}

	err = runKeyboard(proc)

	if dropped := stream.DroppedBlocks(); dropped > 0 {
		debug.Warn("%d blocks replaced with silence after render errors", dropped)
	}
	return err
}
