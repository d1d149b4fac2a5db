package main

import (
	"fmt"
	"strings"

	"github.com/eiannone/keyboard"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/deathdisco/sinesynth/pkg/framework/debug"
	"github.com/deathdisco/sinesynth/pkg/midi"
	"github.com/deathdisco/sinesynth/pkg/synth"
)

// keyNotes maps the middle qwerty rows to semitones above the octave
// base, piano style: white keys on a..k, black keys on the row above.
var keyNotes = map[rune]uint8{
	'a': 0, 'w': 1, 's': 2, 'e': 3, 'd': 4, 'f': 5,
	't': 6, 'g': 7, 'y': 8, 'h': 9, 'u': 10, 'j': 11, 'k': 12,
}

// runKeyboard turns key presses into note events until Esc. There are
// no key-release events to read, so a note holds until the next press
// steals the voice or space releases it - which is exactly the
// monophonic arbitration worth demoing.
func runKeyboard(proc *synth.SineSynth) error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	base := uint8(60) // C4
	debug.Info("a..k play notes, z/x shift octave, space releases, esc quits")

	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		switch {
		case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC:
			return nil

		case key == keyboard.KeySpace:
			proc.EventQueue().Add(midi.ControlChangeEvent{
				Controller: midi.CCAllNotesOff,
			})
			debug.Debug("release")

		case char == 'z' && base >= 12:
			base -= 12
			debug.Info("octave down (%s)", midi.NoteNumberToName(base))

		case char == 'x' && base+12 <= 115:
			base += 12
			debug.Info("octave up (%s)", midi.NoteNumberToName(base))

		default:
			if semitone, ok := keyNotes[char]; ok {
				note := base + semitone
				proc.EventQueue().Add(midi.NoteOnEvent{
					NoteNumber: note,
					Velocity:   100,
				})
				debug.Debug("note on %s (%.2f Hz)",
					midi.NoteNumberToName(note), midi.NoteToFrequency(note, 0))
			}
		}
	}
}

// listenMIDI connects to the first input port whose name contains port
// and forwards its note messages to the event queue. The returned stop
// function closes the connection and the driver.
func listenMIDI(proc *synth.SineSynth, port string) (func(), error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("open MIDI driver: %w", err)
	}

	ins, err := drv.Ins()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("scan MIDI inputs: %w", err)
	}

	var in drivers.In
	for _, candidate := range ins {
		if strings.Contains(strings.ToLower(candidate.String()), strings.ToLower(port)) {
			in = candidate
			break
		}
	}
	if in == nil {
		drv.Close()
		return nil, fmt.Errorf("no MIDI input matching %q (try -list-midi)", port)
	}

	if err := in.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("open MIDI input %s: %w", in, err)
	}

	queue := proc.EventQueue()
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			queue.Add(midi.NoteOnEvent{
				BaseEvent:  midi.BaseEvent{EventChannel: ch},
				NoteNumber: key,
				Velocity:   vel,
			})
		case msg.GetNoteEnd(&ch, &key):
			queue.Add(midi.NoteOffEvent{
				BaseEvent:  midi.BaseEvent{EventChannel: ch},
				NoteNumber: key,
			})
		}
	})
	if err != nil {
		in.Close()
		drv.Close()
		return nil, fmt.Errorf("listen on %s: %w", in, err)
	}

	debug.Info("listening on MIDI input %s", in)
	return func() {
		stop()
		in.Close()
		drv.Close()
	}, nil
}

// listMIDIPorts prints the available MIDI input ports.
func listMIDIPorts() error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("open MIDI driver: %w", err)
	}
	defer drv.Close()

	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("scan MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		fmt.Println("no MIDI input ports")
		return nil
	}
	for i, in := range ins {
		fmt.Printf("%d: %s\n", i, in)
	}
	return nil
}
