package order

import (
	"time"
)

// StateEvent is one entry of the order's append-only lifecycle audit log.
// Each committed transition records the event name, the state the order was
// in immediately before the transition, and the commit time. The resulting
// sequence is a valid walk on the state machine graph.
//
// The log is never mutated except by the administrative RestoreState
// override, which pops a trailing resume event.
type StateEvent struct {
	name          Event
	previousState State
	at            time.Time
}

// RestoreStateEvent rehydrates a log entry from persistence.
func RestoreStateEvent(name Event, previousState State, at time.Time) StateEvent {
	return StateEvent{name: name, previousState: previousState, at: at}
}

// Name returns the event that caused the transition.
func (e StateEvent) Name() Event { return e.name }

// PreviousState returns the state the order was in before the transition.
func (e StateEvent) PreviousState() State { return e.previousState }

// At returns the commit time of the transition.
func (e StateEvent) At() time.Time { return e.at }
