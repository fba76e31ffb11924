package tui

import (
	"testing"

	"dndbridge/internal/dragdrop"
	"dndbridge/internal/trace"

	alsrt "github.com/alecthomas/assert"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dropTrace = `name: stepper
signals:
  - signal: drag-motion
    x: 10
    y: 20
  - signal: drag-data-received
    uris: ["file:///tmp/a%20b.txt"]
  - signal: drag-leave
    time: 77
  - signal: drag-drop
    x: 11
    y: 21
`

func newTestModel(t *testing.T) *Model {
	t.Helper()
	tr, err := trace.Parse([]byte(dropTrace))
	require.NoError(t, err)
	p, err := trace.NewPlayer(tr, nil)
	require.NoError(t, err)
	return New(p)
}

func press(m *Model, k string) (*Model, tea.Cmd) {
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return model.(*Model), cmd
}

func TestModelInitialization(t *testing.T) {
	m := newTestModel(t)
	assert.Nil(t, m.Init())
	assert.Empty(t, m.Results())
	assert.False(t, m.ShowHelp())

	view := m.View()
	alsrt.Contains(t, view, "stepper")
	alsrt.Contains(t, view, "step 0/4")
	alsrt.Contains(t, view, "drag-motion (10,20)")
}

func TestModelStepping(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, "n")
	require.Len(t, m.Results(), 1)
	assert.Equal(t, dragdrop.Position{X: 10, Y: 20}, m.Results()[0].State.Position)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = model.(*Model)
	require.Len(t, m.Results(), 2)
	require.Len(t, m.Results()[1].Events, 1)
	assert.Equal(t, []string{"/tmp/a b.txt"}, m.Results()[1].Events[0].Paths)
	alsrt.Contains(t, m.View(), "Enter{paths=[/tmp/a b.txt], position=(10,20)}")
	alsrt.Contains(t, m.View(), "inside=true  pending=1")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = model.(*Model)
	alsrt.Equal(t, 3, len(m.Results()))
}

func TestModelRunAndReset(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, "a")
	require.Len(t, m.Results(), 4)
	assert.Equal(t, dragdrop.Handled, m.Results()[3].Reply.Decision)
	alsrt.Equal(t, "End of trace", m.StatusMsg())
	alsrt.Contains(t, m.View(), "Handled")

	m, _ = press(m, "n")
	assert.Len(t, m.Results(), 4, "stepping past the end is a no-op")

	m, _ = press(m, "r")
	assert.Empty(t, m.Results())
	alsrt.Equal(t, "Restarted", m.StatusMsg())
	alsrt.Contains(t, m.View(), "step 0/4")
}

func TestModelKeyHandling(t *testing.T) {
	t.Run("quit on q", func(t *testing.T) {
		m := newTestModel(t)
		_, cmd := press(m, "q")
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
	})

	t.Run("quit on ctrl+c", func(t *testing.T) {
		m := newTestModel(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
	})

	t.Run("toggle help on ?", func(t *testing.T) {
		m := newTestModel(t)
		initial := m.ShowHelp()
		m, _ = press(m, "?")
		alsrt.NotEqual(t, initial, m.ShowHelp())
		alsrt.Contains(t, m.View(), "restart")
		m, _ = press(m, "?")
		alsrt.Equal(t, initial, m.ShowHelp())
	})

	t.Run("unbound keys are ignored", func(t *testing.T) {
		m := newTestModel(t)
		m, cmd := press(m, "z")
		assert.Nil(t, cmd)
		assert.Empty(t, m.Results())
	})
}

func TestWindowSizeMsgHandling(t *testing.T) {
	m := newTestModel(t)
	model, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 100, model.(*Model).help.Width)
}

func TestFileDropShapeView(t *testing.T) {
	tr, err := trace.Parse([]byte(dropTrace))
	require.NoError(t, err)
	p, err := trace.NewPlayer(tr, nil, dragdrop.WithShape(dragdrop.FileDropShape))
	require.NoError(t, err)

	m, _ := press(New(p), "a")
	view := m.View()
	alsrt.Contains(t, view, "shape=file-drop")
	alsrt.Contains(t, view, "Dropped{paths=[/tmp/a b.txt], position=(11,21)}")
}
