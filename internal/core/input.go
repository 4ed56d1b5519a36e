package core

// EventKind is a semantic input, abstracted from physical keys and mouse buttons.
type EventKind int

const (
	EventNone    EventKind = iota
	EventPrimary           // Space, Up, W - start, flap, restart
	EventClick             // Pointer click at logical board coordinates
	EventPause             // P - toggle pause while playing
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "None"
	case EventPrimary:
		return "Primary"
	case EventClick:
		return "Click"
	case EventPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Event is one input delivered by the presentation layer.
// X and Y are only meaningful for EventClick and are in logical board units.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Primary returns a primary-action event.
func Primary() Event {
	return Event{Kind: EventPrimary}
}

// Click returns a pointer-click event at logical coordinates (x, y).
func Click(x, y float64) Event {
	return Event{Kind: EventClick, X: x, Y: y}
}

// Pause returns a pause-toggle event.
func Pause() Event {
	return Event{Kind: EventPause}
}

// DefaultQueueCapacity bounds how many events may pile up between two ticks.
const DefaultQueueCapacity = 16

// EventQueue is a bounded FIFO of input events drained once per tick.
// When full, new events are dropped so a burst of key repeats cannot grow it
// without limit.
type EventQueue struct {
	buf   []Event
	head  int
	count int
}

// NewEventQueue creates a queue holding at most capacity events.
func NewEventQueue(capacity int) *EventQueue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &EventQueue{buf: make([]Event, capacity)}
}

// Push appends an event. Returns false if the queue was full and the event dropped.
func (q *EventQueue) Push(e Event) bool {
	if q.count == len(q.buf) {
		return false
	}
	q.buf[(q.head+q.count)%len(q.buf)] = e
	q.count++
	return true
}

// Drain removes and returns all queued events in arrival order.
func (q *EventQueue) Drain() []Event {
	if q.count == 0 {
		return nil
	}
	out := make([]Event, q.count)
	for i := range out {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.head = 0
	q.count = 0
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return q.count
}
