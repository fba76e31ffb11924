// Package trace reads, writes and replays recorded drag signal sequences.
//
// A trace is a YAML document listing raw toolkit signals in delivery order:
//
//	name: drop two files
//	signals:
//	  - signal: drag-motion
//	    x: 10
//	    y: 20
//	  - signal: drag-data-received
//	    info: 2
//	    uris: ["file:///home/a.txt"]
//	  - signal: drag-leave
//	    time: 1234
//	  - signal: drag-drop
//	    x: 15
//	    y: 25
package trace

import (
	"fmt"
	"os"
	"path/filepath"

	"dndbridge/internal/dragdrop"
	"dndbridge/internal/errors"

	"gopkg.in/yaml.v3"
)

// Step is one signal in a trace file.
type Step struct {
	Name string   `yaml:"signal"`
	Info *int     `yaml:"info,omitempty"`
	URIs []string `yaml:"uris,omitempty"`
	X    int      `yaml:"x,omitempty"`
	Y    int      `yaml:"y,omitempty"`
	Time uint32   `yaml:"time,omitempty"`
}

// Trace is a named sequence of steps.
type Trace struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"signals"`
}

// Parse decodes a trace and checks every step.
func Parse(data []byte) (*Trace, error) {
	var t Trace
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.NewTraceError("invalid trace", -1, errors.InvalidTrace, err)
	}
	if len(t.Steps) == 0 {
		return nil, errors.NewTraceError("trace has no signals", -1, errors.InvalidTrace, nil)
	}
	if _, err := t.Signals(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads and parses the trace at path.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewTraceError(fmt.Sprintf("trace not found: %s", path), -1, errors.TraceNotFound, err)
		}
		return nil, errors.Wrapf(err, "error reading trace %s", path)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "trace %s", path)
	}
	if t.Name == "" {
		t.Name = filepath.Base(path)
	}
	return t, nil
}

// Save writes t to path, creating parent directories.
func Save(t *Trace, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	return nil
}

// Signal converts the step into the controller's signal type.
func (s Step) Signal() (dragdrop.Signal, error) {
	switch s.Name {
	case dragdrop.SignalDataReceived:
		info := dragdrop.URIListInfo
		if s.Info != nil {
			info = *s.Info
		}
		return dragdrop.DragDataReceived{Info: info, URIs: s.URIs}, nil
	case dragdrop.SignalMotion:
		return dragdrop.DragMotion{X: s.X, Y: s.Y}, nil
	case dragdrop.SignalDrop:
		return dragdrop.DragDrop{X: s.X, Y: s.Y}, nil
	case dragdrop.SignalLeave:
		return dragdrop.DragLeave{Time: s.Time}, nil
	case dragdrop.SignalBegin:
		return dragdrop.DragBegin{}, nil
	case dragdrop.SignalEnd:
		return dragdrop.DragEnd{}, nil
	case dragdrop.SignalFailed:
		return dragdrop.DragFailed{}, nil
	}
	return nil, errors.NewTraceError("unknown signal", -1, errors.UnknownSignal, fmt.Errorf("%q", s.Name))
}

// Signals converts every step, reporting the first bad one.
func (t *Trace) Signals() ([]dragdrop.Signal, error) {
	signals := make([]dragdrop.Signal, 0, len(t.Steps))
	for i, step := range t.Steps {
		sig, err := step.Signal()
		if err != nil {
			return nil, errors.NewTraceError("unknown signal", i, errors.UnknownSignal, fmt.Errorf("%q", step.Name))
		}
		signals = append(signals, sig)
	}
	return signals, nil
}

// StepOf converts a signal back into a trace step.
func StepOf(sig dragdrop.Signal) Step {
	step := Step{Name: sig.Name()}
	switch s := sig.(type) {
	case dragdrop.DragDataReceived:
		info := s.Info
		step.Info = &info
		step.URIs = s.URIs
	case dragdrop.DragMotion:
		step.X, step.Y = s.X, s.Y
	case dragdrop.DragDrop:
		step.X, step.Y = s.X, s.Y
	case dragdrop.DragLeave:
		step.Time = s.Time
	}
	return step
}

// FromSignals builds a trace from signals.
func FromSignals(name string, signals []dragdrop.Signal) *Trace {
	t := &Trace{Name: name, Steps: make([]Step, 0, len(signals))}
	for _, sig := range signals {
		t.Steps = append(t.Steps, StepOf(sig))
	}
	return t
}

// Describe renders sig with its arguments, e.g. "drag-motion (10,20)".
func Describe(sig dragdrop.Signal) string {
	switch s := sig.(type) {
	case dragdrop.DragDataReceived:
		return fmt.Sprintf("%s info=%d uris=%d", s.Name(), s.Info, len(s.URIs))
	case dragdrop.DragMotion:
		return fmt.Sprintf("%s (%d,%d)", s.Name(), s.X, s.Y)
	case dragdrop.DragDrop:
		return fmt.Sprintf("%s (%d,%d)", s.Name(), s.X, s.Y)
	case dragdrop.DragLeave:
		return fmt.Sprintf("%s time=%d", s.Name(), s.Time)
	case nil:
		return "<nil>"
	}
	return sig.Name()
}
