package trace

import (
	"dndbridge/internal/dragdrop"
	"dndbridge/internal/sink"
)

// Result describes what one replayed signal did.
type Result struct {
	Index  int
	Signal dragdrop.Signal
	Reply  dragdrop.Reply
	Events []dragdrop.Event
	State  dragdrop.State
}

// Player feeds a trace into a fresh controller one signal at a time.
type Player struct {
	trace   *Trace
	signals []dragdrop.Signal
	next    dragdrop.Sink
	opts    []dragdrop.Option

	ctrl *dragdrop.Controller
	rec  *sink.Recorder
	pos  int
}

// NewPlayer prepares t for replay. Events go to next as well as to the
// player; with a nil next every event is answered as handled.
func NewPlayer(t *Trace, next dragdrop.Sink, opts ...dragdrop.Option) (*Player, error) {
	signals, err := t.Signals()
	if err != nil {
		return nil, err
	}
	p := &Player{
		trace:   t,
		signals: signals,
		next:    next,
		opts:    opts,
	}
	p.Reset()
	return p, nil
}

// Reset rewinds to the first signal with a new controller.
func (p *Player) Reset() {
	p.rec = sink.NewRecorder(true)
	deliver := p.rec.Sink
	if p.next != nil {
		next := p.next
		deliver = func(ev dragdrop.Event) bool {
			p.rec.Sink(ev)
			return next(ev)
		}
	}
	p.ctrl = dragdrop.New(deliver, p.opts...)
	p.pos = 0
}

// Trace returns the trace being replayed.
func (p *Player) Trace() *Trace {
	return p.trace
}

// Controller returns the controller signals are fed to.
func (p *Player) Controller() *dragdrop.Controller {
	return p.ctrl
}

// Len is the number of signals in the trace.
func (p *Player) Len() int {
	return len(p.signals)
}

// Signals returns the decoded signals of the trace.
func (p *Player) Signals() []dragdrop.Signal {
	return p.signals
}

// Pos is the index of the next signal.
func (p *Player) Pos() int {
	return p.pos
}

// Done reports whether every signal has been replayed.
func (p *Player) Done() bool {
	return p.pos >= len(p.signals)
}

// Step replays the next signal. It returns false when the trace is done.
func (p *Player) Step() (Result, bool) {
	if p.Done() {
		return Result{}, false
	}
	sig := p.signals[p.pos]
	before := len(p.rec.Events)
	reply := p.ctrl.Dispatch(sig)

	res := Result{
		Index:  p.pos,
		Signal: sig,
		Reply:  reply,
		State:  p.ctrl.State(),
	}
	if n := len(p.rec.Events); n > before {
		res.Events = append([]dragdrop.Event(nil), p.rec.Events[before:n]...)
	}
	p.pos++
	return res, true
}

// Run replays every remaining signal.
func (p *Player) Run() []Result {
	results := make([]Result, 0, len(p.signals)-p.pos)
	for {
		res, ok := p.Step()
		if !ok {
			return results
		}
		results = append(results, res)
	}
}

// Events returns every event delivered so far.
func (p *Player) Events() []dragdrop.Event {
	return p.rec.Events
}

// Replay runs t from start to end and returns the per-signal results.
func Replay(t *Trace, next dragdrop.Sink, opts ...dragdrop.Option) ([]Result, error) {
	p, err := NewPlayer(t, next, opts...)
	if err != nil {
		return nil, err
	}
	return p.Run(), nil
}
