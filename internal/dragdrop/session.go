package dragdrop

// Session is the state carried between signals of one surface.
//
// paths is non-empty only between a URI-list payload and the drop or leave
// that resolves it. An empty URI list is stored as captured but empty.
type Session struct {
	paths    []string
	inside   bool
	position Position
}

func (s *Session) store(paths []string) {
	s.paths = paths
}

// take moves the captured paths out. It fails, leaving the session as it
// was, when nothing non-empty is captured.
func (s *Session) take() ([]string, bool) {
	if len(s.paths) == 0 {
		return nil, false
	}
	paths := s.paths
	s.paths = nil
	return paths, true
}

func (s *Session) clear() {
	s.paths = nil
}

func (s *Session) enter() {
	s.inside = true
}

func (s *Session) leave() {
	s.inside = false
}

func (s *Session) setPosition(p Position) {
	s.position = p
}

// Inside reports whether a payload has entered and not yet resolved.
func (s *Session) Inside() bool {
	return s.inside
}

// Position is the last pointer position seen.
func (s *Session) Position() Position {
	return s.position
}

// Pending is the number of captured paths awaiting a drop.
func (s *Session) Pending() int {
	return len(s.paths)
}

// State is a read-only snapshot of a Session.
type State struct {
	Inside   bool
	Position Position
	Pending  int
}

func (s *Session) snapshot() State {
	return State{
		Inside:   s.inside,
		Position: s.position,
		Pending:  len(s.paths),
	}
}
