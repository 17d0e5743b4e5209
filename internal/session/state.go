package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an event has no entry in the
	// transition table for the current state.
	ErrInvalidTransition = errors.New("session: invalid transition")

	ErrUnknownBall       = errors.New("session: unknown ball")
	ErrUnknownCameraMode = errors.New("session: unknown camera mode")
)

type State uint8

const (
	Loading State = iota
	Ready
	Swinging
	Flight
	Putting
	Result
)

var stateNames = [...]string{
	Loading:  "loading",
	Ready:    "ready",
	Swinging: "swing",
	Flight:   "flight",
	Putting:  "putting",
	Result:   "result",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Event drives the transition table.
type Event uint8

const (
	EventInitComplete Event = iota
	EventFailsafe
	EventSwing
	EventLaunch
	EventStopped
	EventPuttingOn
	EventPuttingOff
	EventMulligan
	EventNewHole
)

var eventNames = [...]string{
	EventInitComplete: "init_complete",
	EventFailsafe:     "failsafe",
	EventSwing:        "swing",
	EventLaunch:       "launch",
	EventStopped:      "stopped",
	EventPuttingOn:    "putting_on",
	EventPuttingOff:   "putting_off",
	EventMulligan:     "mulligan",
	EventNewHole:      "new_hole",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", uint8(e))
}

// forced events apply from every state and always re-enter their target.
func (e Event) forced() bool {
	return e == EventMulligan || e == EventNewHole
}

type edge struct {
	from  State
	event Event
}

var transitions = map[edge]State{
	{Loading, EventInitComplete}: Ready,
	{Loading, EventFailsafe}:     Ready,
	{Ready, EventSwing}:          Swinging,
	{Result, EventSwing}:         Swinging,
	{Putting, EventSwing}:        Putting,
	{Swinging, EventLaunch}:      Flight,
	{Flight, EventStopped}:       Result,
	{Putting, EventStopped}:      Result,
	{Ready, EventPuttingOn}:      Putting,
	{Result, EventPuttingOn}:     Putting,
	{Putting, EventPuttingOff}:   Ready,
}

// Next looks up the target state for ev in from.
func Next(from State, ev Event) (State, bool) {
	switch ev {
	case EventMulligan:
		return Ready, true
	case EventNewHole:
		return Loading, true
	}
	to, ok := transitions[edge{from, ev}]
	return to, ok
}
