package dragdrop

// URIListInfo is the info value the web view passes to drag-data-received
// when the payload is a text/uri-list.
const URIListInfo = 2

// Signal names as the toolkit registers them.
const (
	SignalDataReceived = "drag-data-received"
	SignalMotion       = "drag-motion"
	SignalDrop         = "drag-drop"
	SignalLeave        = "drag-leave"
	SignalBegin        = "drag-begin"
	SignalEnd          = "drag-end"
	SignalFailed       = "drag-failed"
)

// Signal is one raw notification from the rendering surface.
type Signal interface {
	Name() string
}

// DragDataReceived carries the dragged payload. The web view emits it more
// than once per gesture; only the URI-list variant matters.
type DragDataReceived struct {
	Info int
	URIs []string
}

// DragMotion reports the pointer moving over the surface.
type DragMotion struct {
	X, Y int
}

// DragDrop reports the pointer being released over the surface.
type DragDrop struct {
	X, Y int
}

// DragLeave reports the pointer leaving the surface. Time is zero when the
// user cancelled; a non-zero time marks the leave that precedes every drop.
type DragLeave struct {
	Time uint32
}

type DragBegin struct{}

type DragEnd struct{}

// DragFailed reports that the platform drag operation did not complete.
type DragFailed struct{}

func (DragDataReceived) Name() string { return SignalDataReceived }
func (DragMotion) Name() string       { return SignalMotion }
func (DragDrop) Name() string         { return SignalDrop }
func (DragLeave) Name() string        { return SignalLeave }
func (DragBegin) Name() string        { return SignalBegin }
func (DragEnd) Name() string          { return SignalEnd }
func (DragFailed) Name() string       { return SignalFailed }

// SignalNames lists every signal the controller understands.
func SignalNames() []string {
	return []string{
		SignalDataReceived,
		SignalMotion,
		SignalDrop,
		SignalLeave,
		SignalBegin,
		SignalEnd,
		SignalFailed,
	}
}
