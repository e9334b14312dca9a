package game

import "github.com/go-gl/mathgl/mgl32"

// EventKind tags a gameplay event emitted for the UI layer.
type EventKind uint8

const (
	EventKill EventKind = iota
	EventHit
	EventExplosion
	EventRoundStart
	EventRoundEnd
	EventMatchEnd
)

func (k EventKind) String() string {
	switch k {
	case EventKill:
		return "kill"
	case EventHit:
		return "hit"
	case EventExplosion:
		return "explosion"
	case EventRoundStart:
		return "round_start"
	case EventRoundEnd:
		return "round_end"
	case EventMatchEnd:
		return "match_end"
	}
	return "unknown"
}

// Event is a typed gameplay occurrence. Fields that do not apply to a kind
// are left zero.
type Event struct {
	Kind EventKind

	Attacker int32
	Victim   int32
	Weapon   WeaponID
	Damage   int32

	Pos mgl32.Vec3

	Winner Team
	Round  int32
}

// EventQueue collects events during a tick for the UI to drain afterwards.
// It is mutated only by the gameplay tick.
type EventQueue struct {
	events []Event
}

// Emit appends an event to the queue.
func (q *EventQueue) Emit(ev Event) {
	q.events = append(q.events, ev)
}

// Drain returns all queued events and empties the queue. The returned slice
// is only valid until the next Emit.
func (q *EventQueue) Drain() []Event {
	evs := q.events
	q.events = q.events[:0]
	return evs
}

// Len returns the number of undrained events.
func (q *EventQueue) Len() int {
	return len(q.events)
}
