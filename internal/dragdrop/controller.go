// Package dragdrop turns the drag-and-drop signals of an embedded web view
// into a small set of application events.
//
// The toolkit delivers drag-data-received several times per gesture, fires
// drag-leave both on cancel and right before a drop, and floods drag-motion.
// A Controller absorbs that noise and calls one Sink with Enter, Over, Drop
// and Leave (or Hovered, Dropped and Cancelled with FileDropShape).
//
// A Controller is not safe for concurrent use. Toolkits deliver signals on
// their main thread, one at a time, and every method runs to completion
// before returning.
package dragdrop

import (
	"dndbridge/internal/config"
	"dndbridge/internal/errors"
	"dndbridge/internal/log"
)

// Option configures a Controller
type Option func(*Controller)

// WithShape selects the event vocabulary. The default is DragDropShape.
func WithShape(shape Shape) Option {
	return func(c *Controller) {
		c.shape = shape
	}
}

// WithHover turns Over events on drag-motion on or off.
func WithHover(on bool) Option {
	return func(c *Controller) {
		c.hover = on
	}
}

// WithURIListInfo overrides the payload info value treated as a URI list.
func WithURIListInfo(info int) Option {
	return func(c *Controller) {
		c.uriListInfo = info
	}
}

// WithLogger sends diagnostics to l instead of the default logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// Controller translates raw drag signals for one surface.
type Controller struct {
	session     Session
	sink        Sink
	shape       Shape
	hover       bool
	uriListInfo int
	logger      *log.Logger
}

// New creates a controller delivering to sink. A nil sink discards events
// and answers "not handled".
func New(sink Sink, opts ...Option) *Controller {
	if sink == nil {
		sink = nopSink
	}
	c := &Controller{
		sink:        sink,
		shape:       DragDropShape,
		uriListInfo: URIListInfo,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OptionsFromConfig returns the options selected by the controller section
// of cfg.
func OptionsFromConfig(cfg *config.Config) ([]Option, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	shape, ok := ShapeByName(cfg.Controller.Shape)
	if !ok {
		return nil, errors.NewConfigError("unknown event shape", "controller.shape", errors.InvalidConfig, nil)
	}
	return []Option{
		WithShape(shape),
		WithHover(cfg.Controller.Hover),
		WithURIListInfo(cfg.Controller.URIListInfo),
	}, nil
}

// FromConfig creates a controller with the controller section of cfg.
// Options in opts are applied last.
func FromConfig(cfg *config.Config, sink Sink, opts ...Option) (*Controller, error) {
	base, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(sink, append(base, opts...)...), nil
}

// Shape returns the event vocabulary in use.
func (c *Controller) Shape() Shape {
	return c.shape
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	return c.session.snapshot()
}

// DataReceived handles drag-data-received. Only the URI-list payload is
// used: its paths are captured and an enter event is emitted at the last
// known pointer position. Every other payload is ignored.
func (c *Controller) DataReceived(info int, uris []string) {
	c.trace(SignalDataReceived, log.F("info", info), log.F("uris", len(uris)))
	if info != c.uriListInfo {
		return
	}

	paths := PathsFromURIs(uris)
	c.session.store(paths)
	c.session.enter()
	c.emit(c.shape.Enter, clonePaths(paths), c.session.position)
}

// Motion handles drag-motion. The position is always recorded; an over
// event follows only while inside with hover enabled.
// drag-motion fires on every pointer move, so it is not traced.
func (c *Controller) Motion(x, y int) {
	pos := Position{X: x, Y: y}
	c.session.setPosition(pos)
	if c.session.inside && c.hover {
		c.emit(c.shape.Over, nil, pos)
	}
}

// Drop handles drag-drop. The captured paths move into the drop event and
// the sink's answer is returned. Without an entered payload nothing is
// emitted and the drop is not handled.
func (c *Controller) Drop(x, y int) Decision {
	c.trace(SignalDrop, log.F("x", x), log.F("y", y))
	if !c.session.inside {
		return NotHandled
	}
	paths, ok := c.session.take()
	if !ok {
		return NotHandled
	}
	c.session.leave()

	if c.emit(c.shape.Drop, paths, Position{X: x, Y: y}) {
		return Handled
	}
	return NotHandled
}

// Leave handles drag-leave. A zero time is a cancel: the session resets and
// a leave event is emitted. Any other time is the leave the toolkit sends
// just before drag-drop and is ignored so the drop still sees its paths.
func (c *Controller) Leave(time uint32) {
	c.trace(SignalLeave, log.F("time", time))
	if time != 0 {
		return
	}
	c.session.clear()
	c.session.leave()
	c.emit(c.shape.Leave, nil, Position{})
}

// Begin handles drag-begin.
func (c *Controller) Begin() {
	c.trace(SignalBegin)
}

// End handles drag-end.
func (c *Controller) End() {
	c.trace(SignalEnd)
}

// Failed handles drag-failed. Shapes with a failed event offer it to the
// sink; a sink that handles it resets the session and stops the toolkit's
// own failure handling.
func (c *Controller) Failed() Propagation {
	c.trace(SignalFailed)
	if c.shape.Failed == None {
		return Proceed
	}
	if !c.emit(c.shape.Failed, nil, Position{}) {
		return Proceed
	}
	c.session.clear()
	c.session.leave()
	return Stop
}

// Dispatch routes any raw signal to its handler. Bindings that receive all
// signals through one callback use it instead of the per-signal methods.
func (c *Controller) Dispatch(sig Signal) Reply {
	switch s := sig.(type) {
	case DragDataReceived:
		c.DataReceived(s.Info, s.URIs)
	case DragMotion:
		c.Motion(s.X, s.Y)
	case DragDrop:
		return Reply{Decision: c.Drop(s.X, s.Y)}
	case DragLeave:
		c.Leave(s.Time)
	case DragBegin:
		c.Begin()
	case DragEnd:
		c.End()
	case DragFailed:
		return Reply{Propagation: c.Failed()}
	default:
		if sig != nil {
			c.logger.With(log.F("signal", sig.Name())).Warn("unhandled drag signal")
		}
	}
	return Reply{}
}

func (c *Controller) emit(kind Kind, paths []string, pos Position) bool {
	if kind == None {
		return false
	}
	ev := Event{Kind: kind, Paths: paths, Position: pos}
	handled := c.sink(ev)
	if !log.DebugEnabled() {
		return handled
	}
	c.logger.With(
		log.F("event", kind.String()),
		log.F("paths", len(paths)),
		log.F("position", pos.String()),
		log.F("handled", handled),
	).Debug("drag event")
	return handled
}

func (c *Controller) trace(signal string, fields ...log.Field) {
	if !log.DebugEnabled() {
		return
	}
	state := c.session.snapshot()
	fields = append(fields,
		log.F("signal", signal),
		log.F("inside", state.Inside),
		log.F("pending", state.Pending),
	)
	c.logger.With(fields...).Debug("drag signal")
}

func clonePaths(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}
