// Package events holds the chronological record of a replay.
//
// Events live in an arena owned by a Log. Each event keeps the index of its
// predecessor, and the log keeps the indices of both ends of the chain, so
// appends and single steps in either direction are O(1).
package events

// none marks a missing link.
const none = -1

// Event is one recorded step of a simulation.
type Event struct {
	LocationID  int
	Description string

	nextCommand *string
	prev        int
}

// NewEvent builds an event carrying the command that produced it.
func NewEvent(locationID int, description, command string) Event {
	return Event{
		LocationID:  locationID,
		Description: description,
		nextCommand: &command,
		prev:        none,
	}
}

// NewSeedEvent builds an event without a command. Only the first event of a
// replay is built this way.
func NewSeedEvent(locationID int, description string) Event {
	return Event{LocationID: locationID, Description: description, prev: none}
}

// NextCommand returns the command stored with the event, if any.
func (e Event) NextCommand() (string, bool) {
	if e.nextCommand == nil {
		return "", false
	}
	return *e.nextCommand, true
}

// Log is an append-only chain of events.
type Log struct {
	events      []Event
	first, last int
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{first: none, last: none}
}

// Add appends e to the end of the chain and returns its index.
func (l *Log) Add(e Event) int {
	e.prev = l.last
	l.events = append(l.events, e)
	i := len(l.events) - 1
	if l.first == none {
		l.first = i
	}
	l.last = i
	return i
}

// Len returns the number of events in the log.
func (l *Log) Len() int {
	return len(l.events)
}

// First returns the oldest event.
func (l *Log) First() (Event, bool) {
	if l.first == none {
		return Event{}, false
	}
	return l.events[l.first], true
}

// Last returns the newest event.
func (l *Log) Last() (Event, bool) {
	if l.last == none {
		return Event{}, false
	}
	return l.events[l.last], true
}

// IsLast reports whether i is the index of the newest event.
func (l *Log) IsLast(i int) bool {
	return l.last != none && i == l.last
}

// At returns the event stored at index i.
func (l *Log) At(i int) (Event, bool) {
	if i < 0 || i >= len(l.events) {
		return Event{}, false
	}
	return l.events[i], true
}

// Prev returns the index of the predecessor of the event at i.
func (l *Log) Prev(i int) (int, bool) {
	e, ok := l.At(i)
	if !ok || e.prev == none {
		return none, false
	}
	return e.prev, true
}

// Next returns the index of the successor of the event at i. Appends only
// ever happen at the end of the arena, so the successor is the adjacent slot.
func (l *Log) Next(i int) (int, bool) {
	if _, ok := l.At(i); !ok || i == l.last {
		return none, false
	}
	return i + 1, true
}

// Forward calls fn for every event from first to last until fn returns false.
func (l *Log) Forward(fn func(i int, e Event) bool) {
	if l.first == none {
		return
	}
	for i, ok := l.first, true; ok; i, ok = l.Next(i) {
		if !fn(i, l.events[i]) {
			return
		}
	}
}

// Backward calls fn for every event from last to first, following
// predecessor links, until fn returns false.
func (l *Log) Backward(fn func(i int, e Event) bool) {
	if l.last == none {
		return
	}
	for i, ok := l.last, true; ok; i, ok = l.Prev(i) {
		if !fn(i, l.events[i]) {
			return
		}
	}
}

// IDLog returns the location ids of all events in chronological order.
func (l *Log) IDLog() []int {
	ids := make([]int, 0, len(l.events))
	l.Forward(func(_ int, e Event) bool {
		ids = append(ids, e.LocationID)
		return true
	})
	return ids
}

// Events returns a copy of the chain in chronological order.
func (l *Log) Events() []Event {
	out := make([]Event, 0, len(l.events))
	l.Forward(func(_ int, e Event) bool {
		out = append(out, e)
		return true
	})
	return out
}
