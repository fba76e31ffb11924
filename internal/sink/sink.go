// Package sink provides application-side building blocks for the drag-drop
// event sink: logging, glob filtering of dropped paths, fan-out and
// recording.
package sink

import (
	"dndbridge/internal/config"
	"dndbridge/internal/dragdrop"
	"dndbridge/internal/errors"
	"dndbridge/internal/log"

	"github.com/gobwas/glob"
)

func discard(dragdrop.Event) bool { return false }

// Logging logs every event at info level and forwards it to next.
func Logging(l *log.Logger, next dragdrop.Sink) dragdrop.Sink {
	if next == nil {
		next = discard
	}
	if l == nil {
		l = log.Default()
	}
	return func(ev dragdrop.Event) bool {
		handled := next(ev)
		fields := []log.Field{log.F("event", ev.Kind.String()), log.F("handled", handled)}
		if ev.Kind.CarriesPaths() {
			fields = append(fields, log.F("paths", len(ev.Paths)))
		}
		if ev.Kind.CarriesPaths() || ev.Kind == dragdrop.Over {
			fields = append(fields, log.F("position", ev.Position.String()))
		}
		l.With(fields...).Info(ev.String())
		return handled
	}
}

// Accept forwards only the paths that match at least one of patterns.
// Events that carry paths and keep none are not forwarded and are answered
// as not handled. Patterns use '/' as separator, so "*" stays within one
// directory and "**" crosses them.
func Accept(patterns []string, next dragdrop.Sink) (dragdrop.Sink, error) {
	if next == nil {
		next = discard
	}
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.NewPatternError(p, err)
		}
		matchers = append(matchers, g)
	}
	if len(matchers) == 0 {
		return next, nil
	}

	return func(ev dragdrop.Event) bool {
		if !ev.Kind.CarriesPaths() {
			return next(ev)
		}
		kept := make([]string, 0, len(ev.Paths))
		for _, path := range ev.Paths {
			if matchAny(matchers, path) {
				kept = append(kept, path)
			}
		}
		if len(kept) == 0 {
			return false
		}
		ev.Paths = kept
		return next(ev)
	}, nil
}

func matchAny(matchers []glob.Glob, path string) bool {
	for _, g := range matchers {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Fanout delivers each event to every sink in order and reports whether
// any of them handled it.
func Fanout(sinks ...dragdrop.Sink) dragdrop.Sink {
	return func(ev dragdrop.Event) bool {
		handled := false
		for _, s := range sinks {
			if s == nil {
				continue
			}
			// Each sink gets its own copy of the paths
			cp := ev
			if ev.Paths != nil {
				cp.Paths = append([]string(nil), ev.Paths...)
			}
			if s(cp) {
				handled = true
			}
		}
		return handled
	}
}

// FromConfig wraps next with the filters and logging selected in cfg.
func FromConfig(cfg *config.Config, l *log.Logger, next dragdrop.Sink) (dragdrop.Sink, error) {
	s, err := Accept(cfg.Sink.Accept, next)
	if err != nil {
		return nil, err
	}
	if cfg.Sink.LogEvents {
		s = Logging(l, s)
	}
	return s, nil
}

// Recorder keeps every event it receives. Handled is its answer.
type Recorder struct {
	Events  []dragdrop.Event
	Handled bool
}

// NewRecorder returns a recorder answering handled.
func NewRecorder(handled bool) *Recorder {
	return &Recorder{Handled: handled}
}

// Sink is the recorder as a dragdrop.Sink.
func (r *Recorder) Sink(ev dragdrop.Event) bool {
	r.Events = append(r.Events, ev)
	return r.Handled
}

// Kinds lists the recorded event kinds in order.
func (r *Recorder) Kinds() []dragdrop.Kind {
	kinds := make([]dragdrop.Kind, 0, len(r.Events))
	for _, ev := range r.Events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

// Reset forgets recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
