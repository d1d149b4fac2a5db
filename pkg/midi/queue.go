package midi

import (
	"sort"
	"sync"
)

// EventQueue collects events from the host side and hands them to the
// render side in sample-offset order. Events with equal offsets keep
// their arrival order (stable sort), which is the tie-break rule the
// voice relies on.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
	sorted bool
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]Event, 0, 128),
		sorted: true,
	}
}

func (q *EventQueue) Add(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, event)
	q.sorted = false
}

func (q *EventQueue) AddMultiple(events []Event) {
	if len(events) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, events...)
	q.sorted = false
}

// EventsInRange returns a copy of the events with startSample <= offset
// < endSample, in processing order.
func (q *EventQueue) EventsInRange(startSample, endSample int32) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sortLocked()

	if len(q.events) == 0 {
		return nil
	}

	startIdx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() >= startSample
	})

	endIdx := startIdx
	for endIdx < len(q.events) && q.events[endIdx].SampleOffset() < endSample {
		endIdx++
	}

	if startIdx == endIdx {
		return nil
	}

	result := make([]Event, endIdx-startIdx)
	copy(result, q.events[startIdx:endIdx])
	return result
}

// Drain removes every event with offset < upToSample and returns the
// removed events in processing order. Events at or beyond upToSample
// stay queued for a later block.
func (q *EventQueue) Drain(upToSample int32) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sortLocked()

	keepIdx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() >= upToSample
	})
	if keepIdx == 0 {
		return nil
	}

	result := make([]Event, keepIdx)
	copy(result, q.events[:keepIdx])

	copy(q.events, q.events[keepIdx:])
	q.events = q.events[:len(q.events)-keepIdx]
	return result
}

// NextBlock removes and returns the events for a block of n samples
// (offsets < n), shifting the offsets that remain down by n, in one
// critical section. An event added from another goroutine lands either
// before the cut (played in this block) or after it (queued for the
// next at its own offset); it can never be caught between the drain and
// the rebase and end up below zero.
func (q *EventQueue) NextBlock(n int32) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sortLocked()

	keepIdx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() >= n
	})

	var result []Event
	if keepIdx > 0 {
		result = make([]Event, keepIdx)
		copy(result, q.events[:keepIdx])
		copy(q.events, q.events[keepIdx:])
		q.events = q.events[:len(q.events)-keepIdx]
	}

	q.rebaseLocked(-n)
	return result
}

// Rebase shifts every queued offset by delta. A host that queued an
// event one block early rebases by -blockSize before the next render.
func (q *EventQueue) Rebase(delta int32) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.rebaseLocked(delta)
}

func (q *EventQueue) rebaseLocked(delta int32) {
	for i := range q.events {
		switch e := q.events[i].(type) {
		case NoteOnEvent:
			e.Offset += delta
			q.events[i] = e
		case NoteOffEvent:
			e.Offset += delta
			q.events[i] = e
		case ControlChangeEvent:
			e.Offset += delta
			q.events[i] = e
		}
	}
}

func (q *EventQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = q.events[:0]
	q.sorted = true
}

func (q *EventQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

func (q *EventQueue) IsEmpty() bool {
	return q.Size() == 0
}

func (q *EventQueue) sortLocked() {
	if q.sorted {
		return
	}
	sort.SliceStable(q.events, func(i, j int) bool {
		return q.events[i].SampleOffset() < q.events[j].SampleOffset()
	})
	q.sorted = true
}
