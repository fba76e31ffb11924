//go:build !nogui

package gui

import (
	"fmt"

	"dndbridge/internal/config"
	"dndbridge/internal/dragdrop"
	"dndbridge/internal/log"
	"dndbridge/internal/sink"
	"dndbridge/internal/trace"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const appID = "io.github.dndbridge"

// Window is the drop target window
type Window struct {
	fyneApp fyne.App
	win     fyne.Window
	bridge  *Bridge

	statusLabel *widget.Label
	eventList   *widget.List
	events      []string

	cancelButton *widget.Button
	saveButton   *widget.Button
	recordPath   string
}

// NewWindow builds the drop window on a. Dropped files are filtered and
// logged as cfg describes. With a non-empty recordPath the raw signals are
// kept and can be saved as a trace.
func NewWindow(a fyne.App, cfg *config.Config, recordPath string) (*Window, error) {
	w := &Window{
		fyneApp:    a,
		recordPath: recordPath,
	}

	s, err := sink.FromConfig(cfg, log.Default(), w.onEvent)
	if err != nil {
		return nil, err
	}
	ctrl, err := dragdrop.FromConfig(cfg, s)
	if err != nil {
		return nil, err
	}
	w.bridge = NewBridge(ctrl, recordPath != "")

	w.win = a.NewWindow("dndbridge")
	w.win.SetContent(w.build(ctrl.Shape().Name))
	w.win.Resize(fyne.NewSize(480, 360))
	w.win.SetOnDropped(w.handleDrop)

	return w, nil
}

func (w *Window) build(shape string) fyne.CanvasObject {
	w.statusLabel = widget.NewLabel(fmt.Sprintf("Drop files here (%s)", shape))

	w.eventList = widget.NewList(
		func() int { return len(w.events) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(w.events[id])
		},
	)

	w.cancelButton = widget.NewButton("Cancel drag", w.bridge.Cancel)
	w.saveButton = widget.NewButton("Save trace", func() {
		if err := w.SaveTrace(); err != nil {
			log.Errorf("Failed to save trace: %v", err)
			dialog.ShowError(err, w.win)
		}
	})
	if w.recordPath == "" {
		w.saveButton.Disable()
	}

	return container.NewBorder(
		w.statusLabel,
		container.NewHBox(w.cancelButton, w.saveButton),
		nil, nil,
		w.eventList,
	)
}

func (w *Window) handleDrop(pos fyne.Position, uris []fyne.URI) {
	strs := make([]string, 0, len(uris))
	for _, u := range uris {
		strs = append(strs, uriListEntry(u))
	}
	decision := w.bridge.Drop(int(pos.X), int(pos.Y), strs)
	log.Debugf("Window drop of %d uris: %s", len(strs), decision)
}

// uriListEntry renders u as a text/uri-list line. fyne keeps file URIs
// unescaped, so their paths are encoded again before the payload decoder
// sees them.
func uriListEntry(u fyne.URI) string {
	if u.Scheme() == "file" {
		return dragdrop.URIFromPath(u.Path())
	}
	return u.String()
}

// onEvent is the last sink in the chain.
func (w *Window) onEvent(ev dragdrop.Event) bool {
	w.events = append(w.events, ev.String())
	w.statusLabel.SetText(ev.Kind.String())
	w.eventList.Refresh()
	return true
}

// SaveTrace writes the recorded signals to the record path.
func (w *Window) SaveTrace() error {
	if w.recordPath == "" {
		return fmt.Errorf("recording is disabled")
	}
	if err := trace.Save(w.bridge.Trace("gui session"), w.recordPath); err != nil {
		return err
	}
	log.LogWithFields(log.F("file", w.recordPath)).Info("Trace saved")
	return nil
}

// Events returns the rendered events shown in the list.
func (w *Window) Events() []string {
	return w.events
}

// Status returns the status label text.
func (w *Window) Status() string {
	return w.statusLabel.Text
}

// FyneWindow exposes the underlying window.
func (w *Window) FyneWindow() fyne.Window {
	return w.win
}

// Run opens the drop window and blocks until it is closed. A recording is
// saved on exit.
func Run(cfg *config.Config, recordPath string) error {
	w, err := NewWindow(app.NewWithID(appID), cfg, recordPath)
	if err != nil {
		return err
	}
	w.win.ShowAndRun()

	if recordPath != "" {
		return w.SaveTrace()
	}
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
