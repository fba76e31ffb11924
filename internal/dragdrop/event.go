package dragdrop

import (
	"fmt"
	"strings"
)

// Kind identifies an application-facing event.
type Kind int

const (
	// None means "emit nothing" inside a Shape.
	None Kind = iota

	// drag-drop shape
	Enter
	Over
	Drop
	Leave

	// file-drop shape
	Hovered
	Dropped
	Cancelled
)

var kindNames = [...]string{
	None:      "None",
	Enter:     "Enter",
	Over:      "Over",
	Drop:      "Drop",
	Leave:     "Leave",
	Hovered:   "Hovered",
	Dropped:   "Dropped",
	Cancelled: "Cancelled",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// CarriesPaths reports whether events of this kind hold dropped paths.
func (k Kind) CarriesPaths() bool {
	switch k {
	case Enter, Drop, Hovered, Dropped:
		return true
	}
	return false
}

// Position is a pointer location in surface coordinates.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Event is delivered to the application. Paths is owned by the event.
type Event struct {
	Kind     Kind
	Paths    []string
	Position Position
}

func (e Event) String() string {
	switch {
	case e.Kind.CarriesPaths():
		return fmt.Sprintf("%s{paths=[%s], position=%s}", e.Kind, strings.Join(e.Paths, ", "), e.Position)
	case e.Kind == Over:
		return fmt.Sprintf("%s{position=%s}", e.Kind, e.Position)
	default:
		return e.Kind.String()
	}
}

// Sink receives translated events. It returns true when the application
// handled the event and the drag operation should be consumed.
type Sink func(Event) bool

func nopSink(Event) bool { return false }

// Decision is the controller's answer to drag-drop.
type Decision int

const (
	NotHandled Decision = iota
	Handled
)

// Bool maps the decision onto the toolkit's gboolean return.
func (d Decision) Bool() bool {
	return d == Handled
}

func (d Decision) String() string {
	if d == Handled {
		return "Handled"
	}
	return "NotHandled"
}

// Propagation is the controller's answer to drag-failed.
type Propagation int

const (
	// Proceed lets the toolkit run its own failure handling.
	Proceed Propagation = iota
	// Stop suppresses it.
	Stop
)

func (p Propagation) String() string {
	if p == Stop {
		return "Stop"
	}
	return "Proceed"
}

// Reply is what Dispatch hands back to the binding. Signals without a return
// channel always get the zero Reply.
type Reply struct {
	Decision    Decision
	Propagation Propagation
}
