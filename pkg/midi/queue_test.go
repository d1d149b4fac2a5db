package midi

import (
	"testing"
)

func noteOn(note uint8, offset int32) NoteOnEvent {
	return NoteOnEvent{
		BaseEvent:  BaseEvent{Offset: offset},
		NoteNumber: note,
		Velocity:   100,
	}
}

func noteOff(note uint8, offset int32) NoteOffEvent {
	return NoteOffEvent{
		BaseEvent:  BaseEvent{Offset: offset},
		NoteNumber: note,
	}
}

func TestQueueOrdersByOffset(t *testing.T) {
	q := NewEventQueue()
	q.Add(noteOn(64, 300))
	q.Add(noteOn(60, 0))
	q.Add(noteOff(60, 100))

	events := q.EventsInRange(0, 512)
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}

	offsets := []int32{0, 100, 300}
	for i, event := range events {
		if event.SampleOffset() != offsets[i] {
			t.Errorf("Event %d: expected offset %d, got %d", i, offsets[i], event.SampleOffset())
		}
	}
}

func TestQueueKeepsArrivalOrderOnTies(t *testing.T) {
	q := NewEventQueue()
	q.Add(noteOn(60, 0))
	q.Add(noteOn(64, 0))
	q.Add(noteOn(67, 0))

	events := q.EventsInRange(0, 512)
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}

	notes := []uint8{60, 64, 67}
	for i, event := range events {
		on, ok := event.(NoteOnEvent)
		if !ok {
			t.Fatalf("Event %d is not a NoteOnEvent", i)
		}
		if on.NoteNumber != notes[i] {
			t.Errorf("Event %d: expected note %d, got %d", i, notes[i], on.NoteNumber)
		}
	}
}

func TestQueueEventsInRange(t *testing.T) {
	q := NewEventQueue()
	q.Add(noteOn(60, 0))
	q.Add(noteOn(62, 256))
	q.Add(noteOn(64, 512))

	events := q.EventsInRange(0, 512)
	if len(events) != 2 {
		t.Errorf("Expected 2 events in [0,512), got %d", len(events))
	}

	events = q.EventsInRange(256, 1024)
	if len(events) != 2 {
		t.Errorf("Expected 2 events in [256,1024), got %d", len(events))
	}

	if events := q.EventsInRange(1024, 2048); events != nil {
		t.Errorf("Expected no events in [1024,2048), got %d", len(events))
	}
}

func TestQueueDrain(t *testing.T) {
	q := NewEventQueue()
	q.Add(noteOn(60, 10))
	q.Add(noteOn(62, 600))
	q.Add(noteOff(60, 200))

	drained := q.Drain(512)
	if len(drained) != 2 {
		t.Fatalf("Expected 2 drained events, got %d", len(drained))
	}
	if drained[0].SampleOffset() != 10 || drained[1].SampleOffset() != 200 {
		t.Errorf("Drained events out of order: %v, %v", drained[0], drained[1])
	}

	if q.Size() != 1 {
		t.Fatalf("Expected 1 event left, got %d", q.Size())
	}

	// The leftover event belongs to the next block.
	q.Rebase(-512)
	rest := q.Drain(512)
	if len(rest) != 1 {
		t.Fatalf("Expected 1 event after rebase, got %d", len(rest))
	}
	if rest[0].SampleOffset() != 88 {
		t.Errorf("Expected rebased offset 88, got %d", rest[0].SampleOffset())
	}
}

func TestQueueNextBlock(t *testing.T) {
	q := NewEventQueue()
	q.Add(noteOn(60, 10))
	q.Add(noteOn(62, 600))
	q.Add(noteOff(60, 200))

	block := q.NextBlock(512)
	if len(block) != 2 {
		t.Fatalf("Expected 2 events for the block, got %d", len(block))
	}
	if block[0].SampleOffset() != 10 || block[1].SampleOffset() != 200 {
		t.Errorf("Block events out of order: %v, %v", block[0], block[1])
	}

	// The leftover event was rebased into the next block in the same call.
	next := q.NextBlock(512)
	if len(next) != 1 {
		t.Fatalf("Expected 1 event in the next block, got %d", len(next))
	}
	if next[0].SampleOffset() != 88 {
		t.Errorf("Expected carried-over offset 88, got %d", next[0].SampleOffset())
	}
}

func TestQueueNextBlockKeepsLateArrivalsInRange(t *testing.T) {
	q := NewEventQueue()
	q.Add(noteOn(60, 600))

	if block := q.NextBlock(512); block != nil {
		t.Fatalf("Expected empty first block, got %d events", len(block))
	}

	// An event added after a block was taken belongs to the following
	// block at its own offset. It must never come out shifted down by
	// the block size, which would make the renderer reject the block.
	q.Add(noteOn(69, 0))

	block := q.NextBlock(512)
	if len(block) != 2 {
		t.Fatalf("Expected 2 events in the second block, got %d", len(block))
	}
	for _, event := range block {
		if event.SampleOffset() < 0 {
			t.Fatalf("Event rebased to negative offset: %v", event)
		}
	}
	if block[0].SampleOffset() != 0 || block[1].SampleOffset() != 88 {
		t.Errorf("Expected offsets 0 and 88, got %d and %d",
			block[0].SampleOffset(), block[1].SampleOffset())
	}
}

func TestQueueDrainEmpty(t *testing.T) {
	q := NewEventQueue()
	if drained := q.Drain(512); drained != nil {
		t.Errorf("Expected nil from empty drain, got %d events", len(drained))
	}
}

func TestQueueClear(t *testing.T) {
	q := NewEventQueue()
	q.Add(noteOn(60, 0))
	q.Add(noteOn(64, 0))

	q.Clear()
	if !q.IsEmpty() {
		t.Errorf("Expected empty queue after Clear, size %d", q.Size())
	}
}

func TestQueueAddMultiple(t *testing.T) {
	q := NewEventQueue()
	q.AddMultiple([]Event{noteOn(60, 128), noteOff(60, 0)})

	events := q.EventsInRange(0, 512)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Type() != EventTypeNoteOff {
		t.Errorf("Expected the NoteOff first after sorting, got %v", events[0])
	}
}
