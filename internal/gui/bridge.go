// Package gui provides a desktop drop target that routes dropped files
// through the drag-drop controller.
package gui

import (
	"sync"
	"time"

	"dndbridge/internal/dragdrop"
	"dndbridge/internal/trace"
)

// Bridge turns whole drops, as desktop toolkits deliver them, into the
// signal sequence a web view emits and dispatches it to a controller.
type Bridge struct {
	mu       sync.Mutex
	ctrl     *dragdrop.Controller
	record   bool
	recorded []dragdrop.Signal
	clock    func() uint32
}

// NewBridge feeds ctrl. When record is set every dispatched signal is kept
// so the session can be saved as a trace.
func NewBridge(ctrl *dragdrop.Controller, record bool) *Bridge {
	return &Bridge{
		ctrl:   ctrl,
		record: record,
		clock:  eventTime,
	}
}

// eventTime mimics a toolkit event timestamp. Zero is reserved for cancels.
func eventTime() uint32 {
	t := uint32(time.Now().UnixMilli())
	if t == 0 {
		t = 1
	}
	return t
}

// Drop dispatches motion, the URI-list payload, the leave that precedes
// every drop and finally the drop itself.
func (b *Bridge) Drop(x, y int, uris []string) dragdrop.Decision {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.dispatch(dragdrop.DragMotion{X: x, Y: y})
	b.dispatch(dragdrop.DragDataReceived{Info: dragdrop.URIListInfo, URIs: uris})
	b.dispatch(dragdrop.DragLeave{Time: b.clock()})
	return b.dispatch(dragdrop.DragDrop{X: x, Y: y}).Decision
}

// Cancel dispatches the leave a toolkit sends when the user aborts a drag.
func (b *Bridge) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dispatch(dragdrop.DragLeave{Time: 0})
}

func (b *Bridge) dispatch(sig dragdrop.Signal) dragdrop.Reply {
	if b.record {
		b.recorded = append(b.recorded, sig)
	}
	return b.ctrl.Dispatch(sig)
}

// Signals returns a copy of the recorded signals.
func (b *Bridge) Signals() []dragdrop.Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dragdrop.Signal(nil), b.recorded...)
}

// Trace packages the recorded signals as a named trace.
func (b *Bridge) Trace(name string) *trace.Trace {
	return trace.FromSignals(name, b.Signals())
}
